package problemgen

// Config controls the behavior of the Generator.
type Config struct {
	// Validators is the ordered list of validators to run on every
	// generated problem. They execute in order; the first failure
	// stops the pipeline and consumes a sampling attempt.
	Validators []Validator

	// MaxAttempts is the sampling budget per template before the
	// generator switches to the topic's fallback template.
	MaxAttempts int
}

// DefaultConfig returns a Config with the standard validator chain.
func DefaultConfig(reg *Registry) Config {
	return Config{
		Validators: []Validator{
			&StructuralValidator{},
			&AnswerFormatValidator{},
			&MathCheckValidator{Registry: reg},
		},
		MaxAttempts: MaxAttempts,
	}
}
