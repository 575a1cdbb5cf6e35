package store

import (
	"context"
	"time"
)

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit     int       // max results (0 = unlimited)
	After     int64     // sequence > After
	From      time.Time // timestamp >= From
	TopicID   string    // only this topic
	SessionID string    // only this session
}

// Session actions.
const (
	ActionStart = "start"
	ActionEnd   = "end"
)

// SessionEventData captures a session start or end.
type SessionEventData struct {
	SessionID    string
	Action       string // ActionStart or ActionEnd
	FrontEnd     string // "tui", "cli" or "http"
	Seed         uint64
	Attempted    int
	Correct      int
	DurationSecs int
}

// AttemptEventData captures one graded answer.
type AttemptEventData struct {
	SessionID   string
	TopicID     string
	TemplateID  string
	ProblemID   string
	Level       int
	Prompt      string
	Expected    string
	Submitted   string
	Correct     bool
	LevelChange string
	LevelAfter  int
	Revealed    bool
	TimeMs      int64
}

// AttemptRecord is a stored attempt with its ordering metadata.
type AttemptRecord struct {
	Sequence  int64
	Timestamp time.Time
	AttemptEventData
}

// SessionRecord summarizes one stored session.
type SessionRecord struct {
	SessionID string
	FrontEnd  string
	StartedAt time.Time
	EndedAt   time.Time // zero while the session is open
	Attempted int
	Correct   int
}

// TopicStats aggregates stored attempts for one topic.
type TopicStats struct {
	TopicID       string
	Attempted     int
	Correct       int
	HighestLevel  int
	LastPracticed time.Time
}

// Accuracy returns Correct/Attempted, or 0 with no attempts.
func (s TopicStats) Accuracy() float64 {
	if s.Attempted == 0 {
		return 0
	}
	return float64(s.Correct) / float64(s.Attempted)
}

// LLMRequestEventData captures the data for a single LLM request event.
type LLMRequestEventData struct {
	Provider     string
	Model        string
	Purpose      string
	InputTokens  int
	OutputTokens int
	LatencyMs    int64
	Success      bool
	ErrorMessage string
}

// LLMUsage totals LLM requests per model.
type LLMUsage struct {
	Model        string
	Requests     int
	Failures     int
	InputTokens  int
	OutputTokens int
}

// EventRepo provides append and query access to domain events.
type EventRepo interface {
	// AppendSessionEvent records a session start or end.
	AppendSessionEvent(ctx context.Context, data SessionEventData) error

	// AppendAttempt records a graded answer.
	AppendAttempt(ctx context.Context, data AttemptEventData) error

	// AppendLLMRequest records an LLM API call event.
	AppendLLMRequest(ctx context.Context, data LLMRequestEventData) error

	// Attempts returns attempts newest first.
	Attempts(ctx context.Context, opts QueryOpts) ([]AttemptRecord, error)

	// TopicStats returns per-topic aggregates ordered by topic ID.
	TopicStats(ctx context.Context) ([]TopicStats, error)

	// Session returns one session, or ErrNotFound.
	Session(ctx context.Context, sessionID string) (*SessionRecord, error)

	// Sessions returns recent sessions newest first.
	Sessions(ctx context.Context, limit int) ([]SessionRecord, error)

	// LLMUsage returns request totals per model.
	LLMUsage(ctx context.Context) ([]LLMUsage, error)
}
