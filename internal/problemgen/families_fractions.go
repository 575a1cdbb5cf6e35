package problemgen

import (
	"fmt"

	"github.com/abhisek/mathdrill/internal/answer"
)

func fractionTemplates() []Template {
	return []Template{
		fracOfSet(),
		fracCompare(),
		fracAddLike(),
		fracHalfSet(),
	}
}

func fracOfSet() Template {
	return Template{
		ID:    "frac-of-set",
		Title: "Fraction of a set",
		Slots: []Slot{
			{Name: "total", Domain: Range(4, 12)},
			{Name: "items", Domain: Words(setItems...), Format: FormatText},
			{Name: "part", Domain: Range(1, 11)},
			{Name: "color", Domain: Words(setColors...), Format: FormatText},
		},
		Constraints: []Constraint{
			{Name: "part smaller than whole", Check: func(p Params) bool { return p.Int("part") < p.Int("total") }},
		},
		Adjust: func(p Params) {
			if part, total := p.Int("part"), p.Int("total"); part >= total {
				p.Ints["part"] = 1 + (part-1)%(total-1)
			}
		},
		Prompt: "There are {total} {items}. {part} of them are {color}. What fraction of the {items} are {color}?",
		Solve: func(p Params) answer.Answer {
			return answer.Frac(p.Int("part"), p.Int("total"))
		},
		Explain: func(p Params) string {
			part, total := p.Int("part"), p.Int("total")
			return fmt.Sprintf("The whole set has %d %s and %d are %s. The fraction is part over whole: %s.",
				total, p.Text("items"), part, p.Text("color"), fracText(part, total))
		},
	}
}

func fracCompare() Template {
	texts := func(p Params) (string, string) {
		return fmt.Sprintf("%d/%d", p.Int("a"), p.Int("b")), fmt.Sprintf("%d/%d", p.Int("c"), p.Int("d"))
	}
	return Template{
		ID:    "frac-compare",
		Title: "Compare two fractions",
		Slots: []Slot{
			{Name: "a", Domain: Range(1, 6)},
			{Name: "b", Domain: Range(6, 12)},
			{Name: "c", Domain: Range(1, 6)},
			{Name: "d", Domain: Range(6, 12)},
		},
		Constraints: []Constraint{
			{Name: "proper fractions", Check: func(p Params) bool {
				return p.Int("a") < p.Int("b") && p.Int("c") < p.Int("d")
			}},
			{Name: "fractions differ", Check: func(p Params) bool {
				return p.Int("a")*p.Int("d") != p.Int("c")*p.Int("b")
			}},
		},
		Prompt: "Which fraction is greater: {a}/{b} or {c}/{d}?",
		Solve: func(p Params) answer.Answer {
			f1, f2 := texts(p)
			if p.Int("a")*p.Int("d") > p.Int("c")*p.Int("b") {
				return answer.Choice(f1, f1, f2)
			}
			return answer.Choice(f2, f1, f2)
		},
		Explain: func(p Params) string {
			a, b, c, d := p.Int("a"), p.Int("b"), p.Int("c"), p.Int("d")
			f1, f2 := texts(p)
			bigger := f1
			if a*d < c*b {
				bigger = f2
			}
			return fmt.Sprintf("Cross-multiply: %d x %d = %d and %d x %d = %d. The larger product belongs to %s, so %s is greater.",
				a, d, a*d, c, b, c*b, bigger, bigger)
		},
	}
}

func fracAddLike() Template {
	return Template{
		ID:    "frac-add-like",
		Title: "Add fractions with like denominators",
		Slots: []Slot{
			{Name: "d", Domain: Range(3, 12)},
			{Name: "a", Domain: Range(1, 6)},
			{Name: "b", Domain: Range(1, 6)},
		},
		Constraints: []Constraint{
			{Name: "sum at most one whole", Check: func(p Params) bool { return p.Int("a")+p.Int("b") <= p.Int("d") }},
		},
		Adjust: func(p Params) {
			d := p.Int("d")
			if a := p.Int("a"); a >= d {
				p.Ints["a"] = 1 + (a-1)%(d-1)
			}
			if a, b := p.Int("a"), p.Int("b"); a+b > d {
				p.Ints["b"] = 1 + (b-1)%(d-a)
			}
		},
		Prompt: "What is {a}/{d} + {b}/{d}?",
		Solve: func(p Params) answer.Answer {
			return answer.Frac(p.Int("a")+p.Int("b"), p.Int("d"))
		},
		Explain: func(p Params) string {
			a, b, d := p.Int("a"), p.Int("b"), p.Int("d")
			return fmt.Sprintf("The denominators match, so add the numerators: %d + %d = %d. Keep the denominator: %s.",
				a, b, a+b, fracText(a+b, d))
		},
	}
}

// fracHalfSet only samples even totals, so it always instantiates.
func fracHalfSet() Template {
	return Template{
		ID:    "frac-half-set",
		Title: "Half of a set",
		Slots: []Slot{
			{Name: "total", Domain: OneOf(2, 4, 6, 8, 10, 12)},
			{Name: "items", Domain: Words(setItems...), Format: FormatText},
		},
		Prompt: "You have {total} {items} and give away half of them. How many {items} do you give away?",
		Solve: func(p Params) answer.Answer {
			return answer.Int(p.Int("total") / 2)
		},
		Explain: func(p Params) string {
			total := p.Int("total")
			return fmt.Sprintf("Half means 1/2 of the set. Split %d into 2 equal groups: %d / 2 = %d.", total, total, total/2)
		},
	}
}
