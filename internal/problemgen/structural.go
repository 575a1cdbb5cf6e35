package problemgen

import "fmt"

const (
	maxPromptLen      = 500
	maxExplanationLen = 1000
)

// StructuralValidator checks that the prompt and explanation are present,
// within length limits, and fully rendered.
type StructuralValidator struct{}

func (v *StructuralValidator) Name() string { return "structural" }

func (v *StructuralValidator) Validate(p *Problem) *ValidationError {
	if p.Prompt == "" {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "prompt is empty",
		}
	}
	if len(p.Prompt) > maxPromptLen {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("prompt exceeds %d characters", maxPromptLen),
		}
	}
	if ph := placeholderPattern.FindString(p.Prompt); ph != "" {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("prompt has unfilled placeholder %s", ph),
		}
	}
	if p.Explanation == "" {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "explanation is empty",
		}
	}
	if len(p.Explanation) > maxExplanationLen {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("explanation exceeds %d characters", maxExplanationLen),
		}
	}
	return nil
}
