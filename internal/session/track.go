package session

import (
	"time"

	"github.com/abhisek/mathdrill/internal/difficulty"
	"github.com/abhisek/mathdrill/internal/problemgen"
	"github.com/abhisek/mathdrill/internal/topic"
)

// Track is the in-session progress of one topic. It starts at level 1 and
// is never loaded from stored history.
type Track struct {
	Topic topic.Topic

	// Controller owns the level and the streak counters.
	Controller *difficulty.Controller

	// Current is the unanswered problem, nil between problems.
	Current *problemgen.Problem

	// Revealed is true once the solution of Current was shown.
	Revealed bool

	Attempted int
	Correct   int

	// InvalidInputs counts unreadable answers. They never touch the
	// streaks or Attempted.
	InvalidInputs int

	StartLevel int
	BestLevel  int

	shownAt time.Time
}

func newTrack(t topic.Topic) *Track {
	ctl := difficulty.MustNew(t.Difficulty)
	return &Track{
		Topic:      t,
		Controller: ctl,
		StartLevel: ctl.Level(),
		BestLevel:  ctl.Level(),
	}
}
