package session

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/abhisek/mathdrill/internal/difficulty"
	"github.com/abhisek/mathdrill/internal/problemgen"
)

// Snapshot is the serializable state of a live session, used to park it
// in a shared store between HTTP requests.
type Snapshot struct {
	ID        string          `json:"id"`
	FrontEnd  string          `json:"front_end"`
	StartedAt time.Time       `json:"started_at"`
	Seed      uint64          `json:"seed"`
	RNG       []byte          `json:"rng"`
	Ended     bool            `json:"ended,omitempty"`
	Tracks    []TrackSnapshot `json:"tracks"`
}

// TrackSnapshot is the serializable state of one Track.
type TrackSnapshot struct {
	TopicID    string              `json:"topic_id"`
	State      difficulty.State    `json:"state"`
	Current    *problemgen.Problem `json:"current,omitempty"`
	Revealed   bool                `json:"revealed,omitempty"`
	Attempted  int                 `json:"attempted"`
	Correct    int                 `json:"correct"`
	Invalid    int                 `json:"invalid_inputs,omitempty"`
	StartLevel int                 `json:"start_level"`
	BestLevel  int                 `json:"best_level"`
	ShownAt    time.Time           `json:"shown_at"`
}

// Snapshot captures the session, including the random source position so
// a restored session continues the same problem sequence.
func (s *Session) Snapshot() (*Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rng, err := s.src.MarshalBinary()
	if err != nil {
		return nil, fmt.Errorf("snapshot rng: %w", err)
	}
	snap := &Snapshot{
		ID:        s.id,
		FrontEnd:  s.frontEnd,
		StartedAt: s.startedAt,
		Seed:      s.seed,
		RNG:       rng,
		Ended:     s.ended,
	}
	for _, id := range s.order {
		tr := s.tracks[id]
		snap.Tracks = append(snap.Tracks, TrackSnapshot{
			TopicID:    id,
			State:      tr.Controller.State(),
			Current:    tr.Current,
			Revealed:   tr.Revealed,
			Attempted:  tr.Attempted,
			Correct:    tr.Correct,
			Invalid:    tr.InvalidInputs,
			StartLevel: tr.StartLevel,
			BestLevel:  tr.BestLevel,
			ShownAt:    tr.shownAt,
		})
	}
	return snap, nil
}

// Restore rebuilds a session from a snapshot without recording a new start.
// opts.Seed is ignored. A stored problem whose answer no longer re-derives
// from its parameters is dropped.
func Restore(snap *Snapshot, opts Options) (*Session, error) {
	s := newSession(opts)
	s.id = snap.ID
	s.frontEnd = snap.FrontEnd
	s.startedAt = snap.StartedAt
	s.seed = snap.Seed
	s.ended = snap.Ended
	s.src = &rand.PCG{}
	if err := s.src.UnmarshalBinary(snap.RNG); err != nil {
		return nil, fmt.Errorf("restore rng: %w", err)
	}
	s.rng = rand.New(s.src)

	for _, ts := range snap.Tracks {
		tr, err := s.track(ts.TopicID)
		if err != nil {
			return nil, fmt.Errorf("restore session %s: %w", snap.ID, err)
		}
		tr.Controller.Restore(ts.State)
		tr.Attempted = ts.Attempted
		tr.Correct = ts.Correct
		tr.InvalidInputs = ts.Invalid
		tr.StartLevel = ts.StartLevel
		tr.BestLevel = ts.BestLevel
		tr.Revealed = ts.Revealed
		tr.shownAt = ts.ShownAt
		if ts.Current != nil {
			if err := s.checkProblem(ts.Current); err != nil {
				s.log.Warn("dropping stored problem", "session", snap.ID, "topic", ts.TopicID, "error", err)
				continue
			}
			tr.Current = ts.Current
		}
	}
	return s, nil
}

func (s *Session) checkProblem(p *problemgen.Problem) error {
	v := &problemgen.MathCheckValidator{Registry: s.gen.Registry()}
	if verr := v.Validate(p); verr != nil {
		return verr
	}
	return nil
}
