package problemgen

import (
	"strings"
	"testing"

	"github.com/abhisek/mathdrill/internal/answer"
)

func validProblem() *Problem {
	return &Problem{
		TemplateID:  "money-add",
		Prompt:      "Ava buys a kite for $3.50 and a book for $8.00. How much does Ava spend in all?",
		Answer:      answer.Money(1150),
		Explanation: "Add the two prices: $3.50 + $8.00 = $11.50.",
	}
}

func TestStructural_ValidProblem(t *testing.T) {
	v := &StructuralValidator{}
	if err := v.Validate(validProblem()); err != nil {
		t.Fatalf("expected valid, got: %v", err)
	}
}

func TestStructural_EmptyPrompt(t *testing.T) {
	v := &StructuralValidator{}
	p := validProblem()
	p.Prompt = ""
	err := v.Validate(p)
	if err == nil {
		t.Fatal("expected error for empty prompt")
	}
	if err.Validator != "structural" {
		t.Errorf("validator = %q, want structural", err.Validator)
	}
}

func TestStructural_PromptTooLong(t *testing.T) {
	v := &StructuralValidator{}
	p := validProblem()
	p.Prompt = strings.Repeat("a", maxPromptLen+1)
	if err := v.Validate(p); err == nil {
		t.Fatal("expected error for long prompt")
	}
}

func TestStructural_UnfilledPlaceholder(t *testing.T) {
	v := &StructuralValidator{}
	p := validProblem()
	p.Prompt = "{name} buys a kite for $3.50."
	err := v.Validate(p)
	if err == nil {
		t.Fatal("expected error for placeholder")
	}
	if !strings.Contains(err.Message, "{name}") {
		t.Errorf("message %q should name the placeholder", err.Message)
	}
}

func TestStructural_Explanation(t *testing.T) {
	v := &StructuralValidator{}

	p := validProblem()
	p.Explanation = ""
	if err := v.Validate(p); err == nil {
		t.Error("expected error for empty explanation")
	}

	p = validProblem()
	p.Explanation = strings.Repeat("x", maxExplanationLen+1)
	if err := v.Validate(p); err == nil {
		t.Error("expected error for long explanation")
	}
}
