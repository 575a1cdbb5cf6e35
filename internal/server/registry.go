package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/abhisek/mathdrill/internal/cache"
	"github.com/abhisek/mathdrill/internal/session"
)

// errUnknownSession is returned for IDs that were never created, were
// deleted, or expired.
var errUnknownSession = errors.New("unknown session")

// Registry parks sessions between requests as snapshots in a cache.Store.
// Each access restores the session, runs one operation and saves it back
// with a fresh TTL.
type Registry struct {
	store cache.Store
	ttl   time.Duration
	opts  session.Options

	mu    sync.Mutex
	locks map[string]*sessionLock
}

// sessionLock serializes requests for one session. refs counts holders and
// waiters; the lock leaves the map when it drops to zero.
type sessionLock struct {
	mu   sync.Mutex
	refs int
}

// NewRegistry stores sessions in st. opts is the template every created or
// restored session is built from.
func NewRegistry(st cache.Store, ttl time.Duration, opts session.Options) *Registry {
	return &Registry{store: st, ttl: ttl, opts: opts, locks: make(map[string]*sessionLock)}
}

func sessionKey(id string) string { return "session:" + id }

// Create starts a session and stores it.
func (r *Registry) Create(ctx context.Context, seed uint64) (*session.Session, error) {
	opts := r.opts
	opts.Seed = seed
	s := session.New(ctx, opts)
	if err := r.save(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// Do loads session id, runs fn on it and saves the result. Calls for the
// same ID are serialized within this process.
func (r *Registry) Do(ctx context.Context, id string, fn func(*session.Session) error) error {
	defer r.lock(id)()

	s, err := r.load(ctx, id)
	if err != nil {
		return err
	}
	fnErr := fn(s)
	if err := r.save(ctx, s); err != nil {
		return err
	}
	return fnErr
}

// End closes session id, records its end and removes it.
func (r *Registry) End(ctx context.Context, id string) (session.Summary, error) {
	defer r.lock(id)()

	s, err := r.load(ctx, id)
	if err != nil {
		return session.Summary{}, err
	}
	sum := s.End(ctx)
	if err := r.store.Delete(ctx, sessionKey(id)); err != nil {
		return sum, fmt.Errorf("delete session: %w", err)
	}
	return sum, nil
}

// lock acquires the lock for id and returns its release func.
func (r *Registry) lock(id string) func() {
	r.mu.Lock()
	l, ok := r.locks[id]
	if !ok {
		l = &sessionLock{}
		r.locks[id] = l
	}
	l.refs++
	r.mu.Unlock()

	l.mu.Lock()
	return func() {
		l.mu.Unlock()
		r.mu.Lock()
		if l.refs--; l.refs == 0 {
			delete(r.locks, id)
		}
		r.mu.Unlock()
	}
}


func (r *Registry) load(ctx context.Context, id string) (*session.Session, error) {
	b, err := r.store.Get(ctx, sessionKey(id))
	if errors.Is(err, cache.ErrMiss) {
		return nil, errUnknownSession
	}
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	var snap session.Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return session.Restore(&snap, r.opts)
}

func (r *Registry) save(ctx context.Context, s *session.Session) error {
	snap, err := s.Snapshot()
	if err != nil {
		return err
	}
	b, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := r.store.Set(ctx, sessionKey(s.ID()), b, r.ttl); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}
