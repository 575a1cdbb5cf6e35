package problemgen

import (
	"fmt"
	"strings"

	"github.com/abhisek/mathdrill/internal/answer"
)

// AnswerFormatValidator checks that the answer is well formed for its kind:
// positive denominators, non-negative money, composite units that line up,
// and a choice that is one of its distinct options.
type AnswerFormatValidator struct{}

func (v *AnswerFormatValidator) Name() string { return "answer-format" }

func (v *AnswerFormatValidator) Validate(p *Problem) *ValidationError {
	a := p.Answer
	switch a.Kind {
	case answer.KindInt:
		return nil

	case answer.KindFraction:
		if a.Den <= 0 {
			return v.fail(fmt.Sprintf("fraction denominator must be positive, got %d", a.Den))
		}

	case answer.KindMoney:
		if a.Value < 0 {
			return v.fail(fmt.Sprintf("money answer is negative: %s", a))
		}

	case answer.KindComposite:
		if len(a.Parts) == 0 {
			return v.fail("composite answer has no parts")
		}
		if len(a.Units) > 0 && len(a.Units) != len(a.Parts) {
			return v.fail(fmt.Sprintf("composite has %d parts but %d units", len(a.Parts), len(a.Units)))
		}
		for i, part := range a.Parts {
			if part < 0 {
				return v.fail(fmt.Sprintf("composite part %d is negative", i+1))
			}
		}

	case answer.KindChoice:
		if len(a.Options) < 2 {
			return v.fail(fmt.Sprintf("choice needs at least 2 options, got %d", len(a.Options)))
		}
		seen := make(map[string]bool, len(a.Options))
		found := false
		for i, opt := range a.Options {
			key := strings.ToLower(strings.TrimSpace(opt))
			if key == "" {
				return v.fail(fmt.Sprintf("option %d is empty", i+1))
			}
			if seen[key] {
				return v.fail(fmt.Sprintf("duplicate option %q", opt))
			}
			seen[key] = true
			if strings.EqualFold(strings.TrimSpace(a.Text), strings.TrimSpace(opt)) {
				found = true
			}
		}
		if !found {
			return v.fail(fmt.Sprintf("answer %q not found in options", a.Text))
		}

	default:
		return &ValidationError{
			Validator: v.Name(),
			Message:   fmt.Sprintf("unknown answer kind %q", a.Kind),
		}
	}
	return nil
}

// fail builds a retryable error: a fresh sample usually fixes these.
func (v *AnswerFormatValidator) fail(msg string) *ValidationError {
	return &ValidationError{Validator: v.Name(), Message: msg, Retryable: true}
}
