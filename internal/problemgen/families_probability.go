package problemgen

import (
	"fmt"

	"github.com/abhisek/mathdrill/internal/answer"
)

// dieEvents maps an event description to the faces that satisfy it.
var dieEvents = map[string][]int{
	"an even number":          {2, 4, 6},
	"an odd number":           {1, 3, 5},
	"a number greater than 4": {5, 6},
	"a number less than 3":    {1, 2},
	"a multiple of 3":         {3, 6},
	"a 6":                     {6},
}

// dieEventNames fixes the sampling order of dieEvents.
var dieEventNames = []string{
	"an even number",
	"an odd number",
	"a number greater than 4",
	"a number less than 3",
	"a multiple of 3",
	"a 6",
}

func probabilityTemplates() []Template {
	return []Template{
		probDie(),
		probMarbles(),
		probExpected(),
		probCoin(),
	}
}

func probDie() Template {
	return Template{
		ID:    "prob-die",
		Title: "Rolling a die",
		Slots: []Slot{
			{Name: "event", Domain: Words(dieEventNames...), Format: FormatText},
		},
		Prompt: "You roll a fair six-sided die. What is the probability of rolling {event}? Write your answer as a fraction.",
		Solve: func(p Params) answer.Answer {
			return answer.Frac(int64(len(dieEvents[p.Text("event")])), 6)
		},
		Explain: func(p Params) string {
			faces := dieEvents[p.Text("event")]
			n := int64(len(faces))
			if n == 1 {
				return fmt.Sprintf("A die has 6 equally likely faces. Only %s is %s, so the probability is 1/6.",
					joinInts(faces), p.Text("event"))
			}
			return fmt.Sprintf("A die has 6 equally likely faces. The faces %s are %s, so the probability is %s.",
				joinInts(faces), p.Text("event"), fracText(n, 6))
		},
	}
}

func probMarbles() Template {
	counts := func(p Params) (int64, int64) {
		var c int64
		switch p.Text("color") {
		case "red":
			c = p.Int("red")
		case "blue":
			c = p.Int("blue")
		default:
			c = p.Int("green")
		}
		return c, p.Int("red") + p.Int("blue") + p.Int("green")
	}
	return Template{
		ID:    "prob-marbles",
		Title: "Picking a marble",
		Slots: []Slot{
			{Name: "red", Domain: Range(1, 8)},
			{Name: "blue", Domain: Range(1, 8)},
			{Name: "green", Domain: Range(1, 6)},
			{Name: "color", Domain: Words("red", "blue", "green"), Format: FormatText},
		},
		Distinct: [][]string{{"red", "blue", "green"}},
		Prompt:   "A bag has {red} red, {blue} blue and {green} green marbles. You pick one marble without looking. What is the probability that it is {color}?",
		Solve: func(p Params) answer.Answer {
			c, total := counts(p)
			return answer.Frac(c, total)
		},
		Explain: func(p Params) string {
			c, total := counts(p)
			return fmt.Sprintf("There are %d + %d + %d = %d marbles and %d of them are %s, so the probability is %s.",
				p.Int("red"), p.Int("blue"), p.Int("green"), total, c, p.Text("color"), fracText(c, total))
		},
	}
}

func probExpected() Template {
	return Template{
		ID:    "prob-expected",
		Title: "Expected results of a spinner",
		Slots: []Slot{
			{Name: "sections", Domain: OneOf(4, 5, 6, 8, 10)},
			{Name: "target", Domain: Range(1, 3)},
			{Name: "color", Domain: Words("blue", "yellow", "green"), Format: FormatText},
			{Name: "spins", Domain: OneOf(12, 20, 24, 30, 40, 60, 100, 120)},
		},
		Constraints: []Constraint{
			{Name: "whole-number expectation", Check: func(p Params) bool {
				return (p.Int("spins")*p.Int("target"))%p.Int("sections") == 0
			}},
		},
		Prompt: "A spinner has {sections} equal sections and {target} of them are {color}. If you spin it {spins} times, how many times would you expect it to land on {color}?",
		Solve: func(p Params) answer.Answer {
			return answer.Int(p.Int("spins") * p.Int("target") / p.Int("sections"))
		},
		Explain: func(p Params) string {
			s, t, n := p.Int("sections"), p.Int("target"), p.Int("spins")
			return fmt.Sprintf("The probability of %s is %s. Multiply by the number of spins: %d/%d x %d = %d.",
				p.Text("color"), fracText(t, s), t, s, n, n*t/s)
		},
	}
}

func probCoin() Template {
	return Template{
		ID:    "prob-coin",
		Title: "Tossing a coin",
		Slots: []Slot{
			{Name: "side", Domain: Words("heads", "tails"), Format: FormatText},
		},
		Prompt: "You toss a fair coin. What is the probability that it lands on {side}? Write your answer as a fraction.",
		Solve: func(Params) answer.Answer {
			return answer.Frac(1, 2)
		},
		Explain: func(p Params) string {
			return fmt.Sprintf("A coin has 2 equally likely sides and one of them is %s, so the probability is 1/2.", p.Text("side"))
		},
	}
}
