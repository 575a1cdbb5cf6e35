package difficulty

// Controller tracks one topic's level and answer streaks.
// A Controller is owned by a single session and is not safe for concurrent use.
type Controller struct {
	cfg   Config
	state State
}

// New validates cfg and returns a controller at level 1.
func New(cfg Config) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Controller{cfg: cfg, state: State{Level: 1}}, nil
}

// MustNew is like New but panics on an invalid config. Use it only for
// configurations compiled into the binary.
func MustNew(cfg Config) *Controller {
	c, err := New(cfg)
	if err != nil {
		panic(err)
	}
	return c
}

// RecordResult applies one graded attempt and reports any level change.
func (c *Controller) RecordResult(correct bool) Change {
	from := c.state.Level

	if correct {
		c.state.ConsecutiveCorrect++
		c.state.ConsecutiveWrong = 0
		if c.state.ConsecutiveCorrect >= c.cfg.PromoteAfter && c.state.Level < c.cfg.MaxLevel {
			c.state.Level++
			c.state.ConsecutiveCorrect = 0
			return Change{Kind: Promoted, From: from, To: c.state.Level}
		}
		return Change{Kind: NoChange, From: from, To: from}
	}

	c.state.ConsecutiveWrong++
	c.state.ConsecutiveCorrect = 0
	if c.state.ConsecutiveWrong >= c.cfg.DemoteAfter && c.state.Level > 1 {
		c.state.Level--
		c.state.ConsecutiveWrong = 0
		return Change{Kind: Demoted, From: from, To: c.state.Level}
	}
	return Change{Kind: NoChange, From: from, To: from}
}

// Level returns the current level.
func (c *Controller) Level() int { return c.state.Level }

// State returns a copy of the current state.
func (c *Controller) State() State { return c.state }

// Config returns the controller's configuration.
func (c *Controller) Config() Config { return c.cfg }

// UntilPromotion returns how many more consecutive correct answers are
// needed to level up, or 0 at the top level.
func (c *Controller) UntilPromotion() int {
	if c.state.Level >= c.cfg.MaxLevel {
		return 0
	}
	n := c.cfg.PromoteAfter - c.state.ConsecutiveCorrect
	if n < 1 {
		n = 1
	}
	return n
}

// Restore replaces the state, clamping it into the valid range.
func (c *Controller) Restore(s State) {
	s.Level = clamp(s.Level, 1, c.cfg.MaxLevel)
	s.ConsecutiveCorrect = max(s.ConsecutiveCorrect, 0)
	s.ConsecutiveWrong = max(s.ConsecutiveWrong, 0)
	c.state = s
}

// Reset returns the controller to level 1 with empty streaks.
func (c *Controller) Reset() {
	c.state = State{Level: 1}
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
