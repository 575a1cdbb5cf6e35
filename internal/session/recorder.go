package session

import (
	"context"
	"time"

	"github.com/abhisek/mathdrill/internal/difficulty"
	"github.com/abhisek/mathdrill/internal/problemgen"
)

// Recorder persists session history. Implementations must not assume the
// session will stop on their errors: failures are logged and dropped.
type Recorder interface {
	RecordSessionStart(ctx context.Context, s StartEvent) error
	RecordAttempt(ctx context.Context, a AttemptEvent) error
	RecordSessionEnd(ctx context.Context, e EndEvent) error
}

// StartEvent is emitted once when a session is created.
type StartEvent struct {
	SessionID string
	FrontEnd  string
	Seed      uint64
	At        time.Time
}

// AttemptEvent is emitted for every graded (well-formed) submission.
type AttemptEvent struct {
	SessionID string
	Problem   *problemgen.Problem
	Submitted string
	Correct   bool
	Change    difficulty.Change
	Revealed  bool
	Elapsed   time.Duration
}

// EndEvent is emitted once when the session ends.
type EndEvent struct {
	SessionID string
	FrontEnd  string
	Attempted int
	Correct   int
	Duration  time.Duration
}

// Explainer produces a richer worked solution than the template's own.
type Explainer interface {
	Explain(ctx context.Context, p *problemgen.Problem) (string, error)
}

type nopRecorder struct{}

func (nopRecorder) RecordSessionStart(context.Context, StartEvent) error { return nil }
func (nopRecorder) RecordAttempt(context.Context, AttemptEvent) error    { return nil }
func (nopRecorder) RecordSessionEnd(context.Context, EndEvent) error     { return nil }
