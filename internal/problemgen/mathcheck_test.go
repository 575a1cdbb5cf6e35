package problemgen

import (
	"testing"

	"github.com/abhisek/mathdrill/internal/answer"
)

func moneyAddParams() Params {
	p := NewParams()
	p.Texts["name"] = "Ava"
	p.Texts["item1"] = "kite"
	p.Texts["item2"] = "book"
	p.Ints["price1"] = 350
	p.Ints["price2"] = 800
	return p
}

func builtMoneyAdd(t *testing.T) *Problem {
	t.Helper()
	tmpl, ok := DefaultRegistry().Get("money-add")
	if !ok {
		t.Fatal("money-add not registered")
	}
	p, err := Build(tmpl, moneyAddParams())
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	return p
}

func TestMathCheck_Consistent(t *testing.T) {
	v := &MathCheckValidator{Registry: DefaultRegistry()}
	if err := v.Validate(builtMoneyAdd(t)); err != nil {
		t.Fatalf("expected pass, got %v", err)
	}
}

func TestMathCheck_WrongAnswer(t *testing.T) {
	v := &MathCheckValidator{Registry: DefaultRegistry()}
	p := builtMoneyAdd(t)
	p.Answer = answer.Money(1105)
	err := v.Validate(p)
	if err == nil {
		t.Fatal("expected mismatch error")
	}
	if err.Validator != "math-check" {
		t.Errorf("validator = %q", err.Validator)
	}
}

func TestMathCheck_PromptDrift(t *testing.T) {
	v := &MathCheckValidator{Registry: DefaultRegistry()}
	p := builtMoneyAdd(t)
	p.Prompt = "Ava buys a kite for $3.50 and a book for $9.00. How much does Ava spend in all?"
	if err := v.Validate(p); err == nil {
		t.Fatal("expected prompt drift error")
	}
}

func TestMathCheck_UnknownTemplate(t *testing.T) {
	v := &MathCheckValidator{Registry: DefaultRegistry()}
	p := builtMoneyAdd(t)
	p.TemplateID = "nope"
	if err := v.Validate(p); err == nil {
		t.Fatal("expected unknown template error")
	}
}
