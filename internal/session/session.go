package session

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"sync"
	"time"

	"github.com/abhisek/mathdrill/internal/answer"
	"github.com/abhisek/mathdrill/internal/difficulty"
	"github.com/abhisek/mathdrill/internal/grader"
	"github.com/abhisek/mathdrill/internal/problemgen"
	"github.com/abhisek/mathdrill/internal/topic"
	"github.com/google/uuid"
)

var (
	// ErrNoProblem is returned by Submit and Reveal when the topic has no
	// current problem.
	ErrNoProblem = errors.New("no current problem")

	// ErrUnknownTopic is returned for topic IDs not in the catalog.
	ErrUnknownTopic = errors.New("unknown topic")
)

// Options configures a new Session.
type Options struct {
	// Generator is required. Its catalog defines the available topics.
	Generator *problemgen.Generator

	// Seed fixes the problem sequence. 0 picks a random seed.
	Seed uint64

	// FrontEnd labels recorded sessions: "tui", "cli" or "http".
	FrontEnd string

	Recorder  Recorder
	Explainer Explainer

	// Now overrides the clock in tests.
	Now func() time.Time

	Logger *slog.Logger
}

// Session is the per-learner context: one difficulty track per topic and
// the random source every problem is drawn from. It is safe for
// concurrent use.
type Session struct {
	mu sync.Mutex

	id        string
	frontEnd  string
	startedAt time.Time
	seed      uint64
	ended     bool

	src *rand.PCG
	rng *rand.Rand

	gen     *problemgen.Generator
	catalog *topic.Catalog

	tracks map[string]*Track
	order  []string

	recorder  Recorder
	explainer Explainer
	now       func() time.Time
	log       *slog.Logger
}

// Outcome is the result of a graded submission.
type Outcome struct {
	Correct     bool              `json:"correct"`
	Submitted   answer.Answer     `json:"submitted"`
	Expected    answer.Answer     `json:"expected"`
	Change      difficulty.Change `json:"change"`
	Level       int               `json:"level"`
	Explanation string            `json:"explanation"`
}

// New starts a session and records its start.
func New(ctx context.Context, opts Options) *Session {
	s := newSession(opts)
	s.id = uuid.NewString()
	s.startedAt = s.now()
	if s.seed == 0 {
		s.seed = rand.Uint64()
	}
	s.src = problemgen.NewSource(s.seed)
	s.rng = rand.New(s.src)

	if err := s.recorder.RecordSessionStart(ctx, StartEvent{
		SessionID: s.id,
		FrontEnd:  s.frontEnd,
		Seed:      s.seed,
		At:        s.startedAt,
	}); err != nil {
		s.log.Warn("record session start failed", "session", s.id, "error", err)
	}
	s.log.Debug("session started", "session", s.id, "seed", s.seed, "front_end", s.frontEnd)
	return s
}

func newSession(opts Options) *Session {
	if opts.Generator == nil {
		panic("session: Options.Generator is required")
	}
	s := &Session{
		frontEnd:  opts.FrontEnd,
		seed:      opts.Seed,
		gen:       opts.Generator,
		catalog:   opts.Generator.Catalog(),
		tracks:    make(map[string]*Track),
		recorder:  opts.Recorder,
		explainer: opts.Explainer,
		now:       opts.Now,
		log:       opts.Logger,
	}
	if s.recorder == nil {
		s.recorder = nopRecorder{}
	}
	if s.now == nil {
		s.now = time.Now
	}
	if s.log == nil {
		s.log = slog.Default()
	}
	return s
}

// ID returns the session's UUID.
func (s *Session) ID() string { return s.id }

// Seed returns the seed the problem sequence is drawn from.
func (s *Session) Seed() uint64 { return s.seed }

// StartedAt returns when the session began.
func (s *Session) StartedAt() time.Time { return s.startedAt }

// Catalog returns the topic catalog this session serves.
func (s *Session) Catalog() *topic.Catalog { return s.catalog }

// track returns the topic's track, creating it at level 1 on first use.
// Callers hold s.mu.
func (s *Session) track(topicID string) (*Track, error) {
	if tr, ok := s.tracks[topicID]; ok {
		return tr, nil
	}
	t, err := s.catalog.Get(topicID)
	if err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTopic, topicID)
	}
	tr := newTrack(t)
	s.tracks[topicID] = tr
	s.order = append(s.order, topicID)
	return tr, nil
}

// Next generates a new problem for topicID at the track's current level,
// replacing any unanswered one.
func (s *Session) Next(ctx context.Context, topicID string) (*problemgen.Problem, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tr, err := s.track(topicID)
	if err != nil {
		return nil, err
	}
	p, err := s.gen.Generate(topicID, tr.Controller.Level(), s.rng)
	if err != nil {
		return nil, fmt.Errorf("next problem: %w", err)
	}
	if p.Fallback {
		s.log.Info("served fallback problem", "session", s.id, "topic", topicID, "template", p.TemplateID)
	}
	tr.Current = p
	tr.Revealed = false
	tr.shownAt = s.now()
	return p, nil
}

// Submit grades raw against the current problem of topicID. Unparseable
// input returns the *answer.ParseError and only bumps the track's
// InvalidInputs count.
func (s *Session) Submit(ctx context.Context, topicID, raw string) (*Outcome, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	tr, err := s.existingTrack(topicID)
	if err != nil {
		return nil, err
	}
	p := tr.Current

	res, err := grader.Grade(p.Answer, raw)
	if err != nil {
		if errors.Is(err, answer.ErrInvalidFormat) {
			tr.InvalidInputs++
		}
		return nil, err
	}

	change := tr.Controller.RecordResult(res.Correct)
	tr.Attempted++
	if res.Correct {
		tr.Correct++
	}
	tr.BestLevel = max(tr.BestLevel, tr.Controller.Level())
	tr.Current = nil

	if err := s.recorder.RecordAttempt(ctx, AttemptEvent{
		SessionID: s.id,
		Problem:   p,
		Submitted: raw,
		Correct:   res.Correct,
		Change:    change,
		Revealed:  tr.Revealed,
		Elapsed:   s.now().Sub(tr.shownAt),
	}); err != nil {
		s.log.Warn("record attempt failed", "session", s.id, "topic", topicID, "error", err)
	}
	if change.Changed() {
		s.log.Debug("level changed", "session", s.id, "topic", topicID,
			"change", change.Kind, "from", change.From, "to", change.To)
	}

	return &Outcome{
		Correct:     res.Correct,
		Submitted:   res.Submitted,
		Expected:    p.Answer,
		Change:      change,
		Level:       tr.Controller.Level(),
		Explanation: p.Explanation,
	}, nil
}

// Reveal returns the worked solution for the current problem and marks it
// revealed. The problem can still be answered and counts as usual.
func (s *Session) Reveal(ctx context.Context, topicID string) (string, error) {
	s.mu.Lock()
	tr, err := s.existingTrack(topicID)
	if err != nil {
		s.mu.Unlock()
		return "", err
	}
	tr.Revealed = true
	p := tr.Current
	s.mu.Unlock()

	if s.explainer != nil {
		text, err := s.explainer.Explain(ctx, p)
		if err == nil && text != "" {
			return text, nil
		}
		if err != nil {
			s.log.Debug("explainer failed, using template solution", "template", p.TemplateID, "error", err)
		}
	}
	return p.Explanation, nil
}

// existingTrack returns the track for topicID if it has a current problem.
func (s *Session) existingTrack(topicID string) (*Track, error) {
	if _, err := s.catalog.Get(topicID); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownTopic, topicID)
	}
	tr, ok := s.tracks[topicID]
	if !ok || tr.Current == nil {
		return nil, ErrNoProblem
	}
	return tr, nil
}

// Current returns the unanswered problem for topicID, or nil.
func (s *Session) Current(topicID string) *problemgen.Problem {
	s.mu.Lock()
	defer s.mu.Unlock()
	if tr, ok := s.tracks[topicID]; ok {
		return tr.Current
	}
	return nil
}

// Level returns the topic's current level; untouched topics are at 1.
func (s *Session) Level(topicID string) (int, error) {
	st, err := s.State(topicID)
	return st.Level, err
}

// State returns the topic's difficulty state.
func (s *Session) State(topicID string) (difficulty.State, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if tr, ok := s.tracks[topicID]; ok {
		return tr.Controller.State(), nil
	}
	if _, err := s.catalog.Get(topicID); err != nil {
		return difficulty.State{}, fmt.Errorf("%w: %q", ErrUnknownTopic, topicID)
	}
	return difficulty.State{Level: 1}, nil
}

// UntilPromotion returns how many more correct answers in a row move the
// topic up a level, or 0 at the top level.
func (s *Session) UntilPromotion(topicID string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if tr, ok := s.tracks[topicID]; ok {
		return tr.Controller.UntilPromotion()
	}
	if t, err := s.catalog.Get(topicID); err == nil {
		return difficulty.MustNew(t.Difficulty).UntilPromotion()
	}
	return 0
}

// End records the end of the session and returns its summary. Calling End
// again returns the summary without recording twice.
func (s *Session) End(ctx context.Context) Summary {
	sum := s.Summary()

	s.mu.Lock()
	already := s.ended
	s.ended = true
	s.mu.Unlock()
	if already {
		return sum
	}

	if err := s.recorder.RecordSessionEnd(ctx, EndEvent{
		SessionID: s.id,
		FrontEnd:  s.frontEnd,
		Attempted: sum.Attempted,
		Correct:   sum.Correct,
		Duration:  sum.Duration,
	}); err != nil {
		s.log.Warn("record session end failed", "session", s.id, "error", err)
	}
	s.log.Debug("session ended", "session", s.id, "attempted", sum.Attempted, "correct", sum.Correct)
	return sum
}
