package topic

import "github.com/abhisek/mathdrill/internal/difficulty"

// Strand groups related topics on the home screen.
type Strand string

const (
	StrandMoney       Strand = "money"
	StrandProbability Strand = "probability"
	StrandMeasurement Strand = "measurement"
	StrandFractions   Strand = "fractions"
)

// AllStrands returns all strands in display order.
func AllStrands() []Strand {
	return []Strand{
		StrandMoney,
		StrandMeasurement,
		StrandFractions,
		StrandProbability,
	}
}

// StrandDisplayName returns a human-readable name for a strand.
func StrandDisplayName(s Strand) string {
	switch s {
	case StrandMoney:
		return "Money"
	case StrandProbability:
		return "Probability"
	case StrandMeasurement:
		return "Time & Measurement"
	case StrandFractions:
		return "Fractions"
	default:
		return string(s)
	}
}

// FamilyRef enables one problem template from MinLevel upwards.
type FamilyRef struct {
	Template string `yaml:"template"`
	MinLevel int    `yaml:"min_level"`
}

// Topic is one practice activity with its own difficulty track.
type Topic struct {
	ID          string            `yaml:"id"`
	Name        string            `yaml:"name"`
	Description string            `yaml:"description"`
	Strand      Strand            `yaml:"strand"`
	Grade       int               `yaml:"grade"`
	Difficulty  difficulty.Config `yaml:"difficulty"`
	Families    []FamilyRef       `yaml:"families"`

	// Fallback is the template used when a family cannot satisfy its
	// constraints within the retry budget.
	Fallback string `yaml:"fallback"`
}

// FamiliesAt returns the templates enabled at level. Families unlock
// cumulatively, so higher levels see everything lower levels see.
func (t Topic) FamiliesAt(level int) []string {
	var ids []string
	for _, f := range t.Families {
		if f.MinLevel <= level {
			ids = append(ids, f.Template)
		}
	}
	return ids
}

// Templates returns every template the topic references, including the
// fallback, without duplicates.
func (t Topic) Templates() []string {
	seen := make(map[string]bool, len(t.Families)+1)
	var ids []string
	for _, f := range t.Families {
		if !seen[f.Template] {
			seen[f.Template] = true
			ids = append(ids, f.Template)
		}
	}
	if t.Fallback != "" && !seen[t.Fallback] {
		ids = append(ids, t.Fallback)
	}
	return ids
}
