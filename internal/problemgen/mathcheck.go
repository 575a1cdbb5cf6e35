package problemgen

import (
	"fmt"

	"github.com/abhisek/mathdrill/internal/answer"
)

// MathCheckValidator re-derives the problem from its own parameters and
// rejects any drift between the displayed prompt, the metadata and the
// stored answer.
type MathCheckValidator struct {
	Registry *Registry
}

func (v *MathCheckValidator) Name() string { return "math-check" }

func (v *MathCheckValidator) Validate(p *Problem) *ValidationError {
	rebuilt, err := v.Registry.rebuild(p)
	if err != nil {
		return &ValidationError{Validator: v.Name(), Message: err.Error()}
	}
	if !answer.Equal(rebuilt.Answer, p.Answer) {
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("re-derived %s but problem claims %s", rebuilt.Answer, p.Answer),
		}
	}
	if rebuilt.Prompt != p.Prompt {
		return &ValidationError{
			Validator: v.Name(),
			Message:   "prompt does not match its parameters",
		}
	}
	return nil
}
