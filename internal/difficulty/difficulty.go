package difficulty

import "fmt"

// Default thresholds observed across topics.
const (
	DefaultPromoteAfter = 3
	DefaultDemoteAfter  = 2
	DefaultMaxLevel     = 4
)

// Config holds the per-topic streak thresholds and level ceiling.
type Config struct {
	// PromoteAfter is the number of consecutive correct answers that
	// moves the level up by one.
	PromoteAfter int `yaml:"promote_after" json:"promote_after"`

	// DemoteAfter is the number of consecutive wrong answers that
	// moves the level down by one.
	DemoteAfter int `yaml:"demote_after" json:"demote_after"`

	// MaxLevel is the highest reachable level. Levels start at 1.
	MaxLevel int `yaml:"max_level" json:"max_level"`
}

// DefaultConfig returns the most common topic configuration.
func DefaultConfig() Config {
	return Config{
		PromoteAfter: DefaultPromoteAfter,
		DemoteAfter:  DefaultDemoteAfter,
		MaxLevel:     DefaultMaxLevel,
	}
}

// ConfigError reports a misconfigured topic. It is fatal at setup time.
type ConfigError struct {
	Field string
	Value int
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("difficulty config: %s must be at least 1, got %d", e.Field, e.Value)
}

// Validate returns a *ConfigError for the first invalid field.
func (c Config) Validate() error {
	switch {
	case c.MaxLevel < 1:
		return &ConfigError{Field: "max_level", Value: c.MaxLevel}
	case c.PromoteAfter < 1:
		return &ConfigError{Field: "promote_after", Value: c.PromoteAfter}
	case c.DemoteAfter < 1:
		return &ConfigError{Field: "demote_after", Value: c.DemoteAfter}
	}
	return nil
}

// State is the mutable part of a controller.
type State struct {
	Level              int `json:"level"`
	ConsecutiveCorrect int `json:"consecutive_correct"`
	ConsecutiveWrong   int `json:"consecutive_wrong"`
}

// ChangeKind describes the effect of a graded attempt on the level.
type ChangeKind string

const (
	NoChange ChangeKind = "none"
	Promoted ChangeKind = "promoted"
	Demoted  ChangeKind = "demoted"
)

// Change is returned by RecordResult. From and To are equal for NoChange.
type Change struct {
	Kind ChangeKind `json:"kind"`
	From int        `json:"from"`
	To   int        `json:"to"`
}

// Changed reports whether the level moved.
func (c Change) Changed() bool { return c.Kind != NoChange }
