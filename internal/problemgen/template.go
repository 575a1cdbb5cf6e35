package problemgen

import "github.com/abhisek/mathdrill/internal/answer"

// Format controls how a slot value is written into a prompt.
type Format int

const (
	FormatPlain Format = iota // 42
	FormatMoney               // cents rendered as $3.50
	FormatText                // word slots, inserted verbatim
)

// Domain is the set of values a slot can take. Exactly one of Words,
// Values or the Min..Max range is used, checked in that order.
type Domain struct {
	Min, Max int64
	Step     int64 // 0 means 1

	Values []int64
	Words  []string
}

// Range returns the integer domain [min, max].
func Range(min, max int64) Domain { return Domain{Min: min, Max: max} }

// RangeStep returns min, min+step, ... up to max.
func RangeStep(min, max, step int64) Domain { return Domain{Min: min, Max: max, Step: step} }

// OneOf returns a domain of enumerated integers.
func OneOf(values ...int64) Domain { return Domain{Values: values} }

// Words returns a domain of enumerated strings.
func Words(words ...string) Domain { return Domain{Words: words} }

func (d Domain) isText() bool { return len(d.Words) > 0 }

// Slot is one randomly sampled template parameter.
type Slot struct {
	Name   string
	Domain Domain
	Format Format
}

// Constraint rejects sampled parameters that would make a bad problem,
// e.g. "minutes must regroup" or "amounts must differ".
type Constraint struct {
	Name  string
	Check func(p Params) bool
}

// Template is a declarative problem family: slots to sample, constraints
// on the sample, a prompt with {slot} placeholders, and the arithmetic
// that turns the sample into an answer and a worked solution.
type Template struct {
	ID    string
	Title string

	Slots       []Slot
	Constraints []Constraint

	// Distinct lists groups of slots that must all take different values.
	Distinct [][]string

	// Adjust rewrites a fresh sample in place before the constraints are
	// checked, steering values into the constrained region. It must only
	// map slot values onto other values of the same domain. Optional.
	Adjust func(p Params)

	// Prompt uses {name} placeholders for slots and derived values.
	Prompt string

	// Derive computes extra placeholder values from the sample, such as a
	// unit name that depends on a sampled word. Optional.
	Derive func(p Params) map[string]string

	// Solve is the single source of truth for the answer.
	Solve func(p Params) answer.Answer

	// Explain returns the worked solution for the "show solution" panel.
	Explain func(p Params) string
}

// slot returns the named slot definition.
func (t Template) slot(name string) (Slot, bool) {
	for _, s := range t.Slots {
		if s.Name == name {
			return s, true
		}
	}
	return Slot{}, false
}

// satisfied reports whether p passes the distinctness rules and every
// constraint. On failure it returns the name of the first failing rule.
func (t Template) satisfied(p Params) (bool, string) {
	for _, group := range t.Distinct {
		seen := make(map[string]bool, len(group))
		for _, name := range group {
			v := p.String(name)
			if seen[v] {
				return false, "distinct " + name
			}
			seen[v] = true
		}
	}
	for _, c := range t.Constraints {
		if !c.Check(p) {
			return false, c.Name
		}
	}
	return true, ""
}
