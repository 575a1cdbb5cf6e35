package problemgen

import (
	"fmt"
	"strconv"

	"github.com/abhisek/mathdrill/internal/answer"
)

// unitScale describes a large unit and how many small units it holds.
type unitScale struct {
	small string
	size  int64
}

var unitScales = map[string]unitScale{
	"hours":   {small: "minutes", size: 60},
	"feet":    {small: "inches", size: 12},
	"yards":   {small: "feet", size: 3},
	"weeks":   {small: "days", size: 7},
	"meters":  {small: "centimeters", size: 100},
	"minutes": {small: "seconds", size: 60},
}

var largeUnits = []string{"hours", "feet", "yards", "weeks", "meters", "minutes"}

// groupings are containers that hold a fixed number of things.
var groupings = []string{"box", "bag", "tray", "pack"}

func conversionTemplates() []Template {
	return []Template{
		convertScale(),
		convertFullGroups(),
		convertGroupsNeeded(),
		convertMinutes(),
		convertHours(),
	}
}

func convertScale() Template {
	scale := func(p Params) unitScale { return unitScales[p.Text("unit")] }
	return Template{
		ID:    "convert-scale",
		Title: "Convert a larger unit to a smaller one",
		Slots: []Slot{
			{Name: "n", Domain: Range(2, 12)},
			{Name: "unit", Domain: Words(largeUnits...), Format: FormatText},
		},
		Prompt: "How many {small} are in {n} {unit}?",
		Derive: func(p Params) map[string]string {
			return map[string]string{"small": scale(p).small}
		},
		Solve: func(p Params) answer.Answer {
			return answer.Int(p.Int("n") * scale(p).size)
		},
		Explain: func(p Params) string {
			s, n := scale(p), p.Int("n")
			return fmt.Sprintf("There are %d %s in 1 %s. Multiply: %d x %d = %d %s.",
				s.size, s.small, singular(p.Text("unit")), n, s.size, n*s.size, s.small)
		},
	}
}

func convertFullGroups() Template {
	return Template{
		ID:    "convert-full-groups",
		Title: "How many full groups",
		Slots: []Slot{
			{Name: "items", Domain: Words(setItems...), Format: FormatText},
			{Name: "n", Domain: Range(20, 99)},
			{Name: "group", Domain: Words(groupings...), Format: FormatText},
			{Name: "size", Domain: Range(3, 9)},
		},
		Constraints: []Constraint{
			{Name: "leftover remains", Check: func(p Params) bool { return p.Int("n")%p.Int("size") != 0 }},
		},
		Prompt: "There are {n} {items}. Each {group} holds {size} {items}. How many {groups} can be filled completely?",
		Derive: func(p Params) map[string]string {
			g := p.Text("group")
			if g == "box" {
				return map[string]string{"groups": "boxes"}
			}
			return map[string]string{"groups": g + "s"}
		},
		Solve: func(p Params) answer.Answer {
			return answer.Int(p.Int("n") / p.Int("size"))
		},
		Explain: func(p Params) string {
			n, size := p.Int("n"), p.Int("size")
			return fmt.Sprintf("Divide: %d / %d = %d remainder %d. Only full ones count, so %d can be filled.",
				n, size, n/size, n%size, n/size)
		},
	}
}

func convertGroupsNeeded() Template {
	return Template{
		ID:    "convert-groups-needed",
		Title: "How many groups are needed",
		Slots: []Slot{
			{Name: "items", Domain: Words(setItems...), Format: FormatText},
			{Name: "n", Domain: Range(20, 99)},
			{Name: "size", Domain: Range(3, 9)},
		},
		Constraints: []Constraint{
			{Name: "leftover remains", Check: func(p Params) bool { return p.Int("n")%p.Int("size") != 0 }},
		},
		Prompt: "You need to pack {n} {items}. Each bag holds {size}. How many bags do you need to pack all of them?",
		Solve: func(p Params) answer.Answer {
			return answer.Int(ceilDiv(p.Int("n"), p.Int("size")))
		},
		Explain: func(p Params) string {
			n, size := p.Int("n"), p.Int("size")
			return fmt.Sprintf("Divide: %d / %d = %d remainder %d. The %d left over still need a bag, so you need %d bags.",
				n, size, n/size, n%size, n%size, ceilDiv(n, size))
		},
	}
}

func convertMinutes() Template {
	return Template{
		ID:    "convert-minutes",
		Title: "Minutes to hours and minutes",
		Slots: []Slot{
			{Name: "name", Domain: Words(learnerNames...), Format: FormatText},
			{Name: "n", Domain: Range(61, 299)},
		},
		Constraints: []Constraint{
			{Name: "not whole hours", Check: func(p Params) bool { return p.Int("n")%60 != 0 }},
		},
		Prompt: "{name} spent {n} minutes on a science project. How long is that in hours and minutes?",
		Solve: func(p Params) answer.Answer {
			n := p.Int("n")
			return answer.Composite(hoursMinutes, n/60, n%60)
		},
		Explain: func(p Params) string {
			n := p.Int("n")
			return fmt.Sprintf("There are 60 minutes in an hour. %d / 60 = %d remainder %d, so %d minutes is %s.",
				n, n/60, n%60, n, hm(n/60, n%60))
		},
	}
}

func convertHours() Template {
	return Template{
		ID:    "convert-hours",
		Title: "Hours to minutes",
		Slots: []Slot{
			{Name: "n", Domain: Range(1, 10)},
		},
		Prompt: "How many minutes are in {n} hours?",
		Solve: func(p Params) answer.Answer {
			return answer.Int(p.Int("n") * 60)
		},
		Explain: func(p Params) string {
			n := p.Int("n")
			return fmt.Sprintf("Each hour has 60 minutes: %d x 60 = %s minutes.", n, strconv.FormatInt(n*60, 10))
		},
	}
}

func singular(unit string) string {
	switch unit {
	case "feet":
		return "foot"
	case "inches":
		return "inch"
	}
	if len(unit) > 1 && unit[len(unit)-1] == 's' {
		return unit[:len(unit)-1]
	}
	return unit
}
