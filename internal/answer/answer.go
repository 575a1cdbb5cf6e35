package answer

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind identifies which variant of Answer is populated.
type Kind string

const (
	KindInt       Kind = "int"       // e.g. 42
	KindFraction  Kind = "fraction"  // e.g. 3/6, compared in lowest terms
	KindMoney     Kind = "money"     // e.g. $11.50, stored as cents
	KindComposite Kind = "composite" // e.g. 2 h 35 min
	KindChoice    Kind = "choice"    // one option from a fixed set
)

// Answer is a tagged union over the answer shapes a problem can have.
// Only the fields belonging to Kind are meaningful.
type Answer struct {
	Kind Kind `json:"kind"`

	// Value holds the integer, the fraction numerator, or the amount in cents.
	Value int64 `json:"value,omitempty"`

	// Den is the fraction denominator. Always positive for a valid fraction.
	Den int64 `json:"den,omitempty"`

	// Parts and Units describe a composite answer, most significant unit first.
	Parts []int64  `json:"parts,omitempty"`
	Units []string `json:"units,omitempty"`

	// Text is the selected option of a choice answer; Options is the full set.
	Text    string   `json:"text,omitempty"`
	Options []string `json:"options,omitempty"`
}

// Int returns an integer answer.
func Int(n int64) Answer {
	return Answer{Kind: KindInt, Value: n}
}

// Frac returns a fraction answer. The sign is moved onto the numerator but
// the fraction is not reduced, so Frac(3, 6) keeps reading as 3/6.
func Frac(num, den int64) Answer {
	if den < 0 {
		num, den = -num, -den
	}
	return Answer{Kind: KindFraction, Value: num, Den: den}
}

// Money returns a money answer from an amount in cents.
func Money(cents int64) Answer {
	return Answer{Kind: KindMoney, Value: cents}
}

// Composite returns a mixed-unit answer. units may be nil.
func Composite(units []string, parts ...int64) Answer {
	return Answer{Kind: KindComposite, Parts: parts, Units: units}
}

// Choice returns a choice answer selecting value from options.
func Choice(value string, options ...string) Answer {
	return Answer{Kind: KindChoice, Text: value, Options: options}
}

// Reduced returns the fraction in lowest terms. Other kinds are returned
// unchanged.
func (a Answer) Reduced() Answer {
	if a.Kind != KindFraction || a.Den == 0 {
		return a
	}
	g := gcd(abs(a.Value), a.Den)
	if g == 0 {
		return a
	}
	return Answer{Kind: KindFraction, Value: a.Value / g, Den: a.Den / g}
}

// Equal reports whether a and b represent the same answer. Answers of
// different kinds are never equal.
func Equal(a, b Answer) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindInt, KindMoney:
		return a.Value == b.Value
	case KindFraction:
		if a.Den == 0 || b.Den == 0 {
			return false
		}
		ra, rb := a.Reduced(), b.Reduced()
		return ra.Value == rb.Value && ra.Den == rb.Den
	case KindComposite:
		if len(a.Parts) != len(b.Parts) {
			return false
		}
		for i := range a.Parts {
			if a.Parts[i] != b.Parts[i] {
				return false
			}
		}
		return true
	case KindChoice:
		return strings.EqualFold(strings.TrimSpace(a.Text), strings.TrimSpace(b.Text))
	}
	return false
}

// String renders the canonical form shown to learners. Fractions are shown
// in lowest terms.
func (a Answer) String() string {
	switch a.Kind {
	case KindInt:
		return strconv.FormatInt(a.Value, 10)
	case KindFraction:
		r := a.Reduced()
		if r.Den == 1 {
			return strconv.FormatInt(r.Value, 10)
		}
		return fmt.Sprintf("%d/%d", r.Value, r.Den)
	case KindMoney:
		return FormatCents(a.Value)
	case KindComposite:
		parts := make([]string, len(a.Parts))
		for i, p := range a.Parts {
			if i < len(a.Units) && a.Units[i] != "" {
				parts[i] = fmt.Sprintf("%d %s", p, a.Units[i])
			} else {
				parts[i] = strconv.FormatInt(p, 10)
			}
		}
		return strings.Join(parts, " ")
	case KindChoice:
		return a.Text
	}
	return ""
}

// FormatCents renders an amount of cents as dollars, e.g. 1150 -> "$11.50".
func FormatCents(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s$%d.%02d", sign, cents/100, cents%100)
}

// gcd returns the greatest common divisor of a and b.
// Both a and b must be non-negative.
func gcd(a, b int64) int64 {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}

func abs(n int64) int64 {
	if n < 0 {
		return -n
	}
	return n
}
