package store

import (
	"context"

	"github.com/abhisek/mathdrill/internal/session"
)

// Recorder persists session activity through an EventRepo.
type Recorder struct {
	repo EventRepo
}

var _ session.Recorder = (*Recorder)(nil)

// NewRecorder returns a session.Recorder backed by repo.
func NewRecorder(repo EventRepo) *Recorder {
	return &Recorder{repo: repo}
}

func (r *Recorder) RecordSessionStart(ctx context.Context, e session.StartEvent) error {
	return r.repo.AppendSessionEvent(ctx, SessionEventData{
		SessionID: e.SessionID,
		Action:    ActionStart,
		FrontEnd:  e.FrontEnd,
		Seed:      e.Seed,
	})
}

func (r *Recorder) RecordAttempt(ctx context.Context, e session.AttemptEvent) error {
	p := e.Problem
	return r.repo.AppendAttempt(ctx, AttemptEventData{
		SessionID:   e.SessionID,
		TopicID:     p.TopicID,
		TemplateID:  p.TemplateID,
		ProblemID:   p.ID,
		Level:       p.Level,
		Prompt:      p.Prompt,
		Expected:    p.Answer.String(),
		Submitted:   e.Submitted,
		Correct:     e.Correct,
		LevelChange: string(e.Change.Kind),
		LevelAfter:  e.Change.To,
		Revealed:    e.Revealed,
		TimeMs:      e.Elapsed.Milliseconds(),
	})
}

func (r *Recorder) RecordSessionEnd(ctx context.Context, e session.EndEvent) error {
	return r.repo.AppendSessionEvent(ctx, SessionEventData{
		SessionID:    e.SessionID,
		Action:       ActionEnd,
		FrontEnd:     e.FrontEnd,
		Attempted:    e.Attempted,
		Correct:      e.Correct,
		DurationSecs: int(e.Duration.Seconds()),
	})
}
