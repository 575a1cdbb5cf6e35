package cache

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"
)

func TestParseURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		wantErr bool
	}{
		{"valid-redis", "redis://localhost:6379", false},
		{"valid-with-db", "redis://localhost:6379/2", false},
		{"tls", "rediss://user:pw@cache.example:6380/0", false},
		{"wrong-scheme", "http://localhost:6379", true},
		{"empty", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseURL(tt.url)
			if (err != nil) != tt.wantErr {
				t.Errorf("ParseURL() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

// exercise runs the Store contract against s.
func exercise(t *testing.T, s Store) {
	t.Helper()
	ctx := context.Background()

	if _, err := s.Get(ctx, "missing"); !errors.Is(err, ErrMiss) {
		t.Fatalf("Get(missing) = %v, want ErrMiss", err)
	}
	if err := s.Set(ctx, "k", []byte("v1"), time.Minute); err != nil {
		t.Fatal(err)
	}
	if err := s.Set(ctx, "k", []byte("v2"), time.Minute); err != nil {
		t.Fatal(err)
	}
	got, err := s.Get(ctx, "k")
	if err != nil || string(got) != "v2" {
		t.Fatalf("Get(k) = %q, %v", got, err)
	}
	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatal(err)
	}
	if _, err := s.Get(ctx, "k"); !errors.Is(err, ErrMiss) {
		t.Fatalf("Get after Delete = %v, want ErrMiss", err)
	}
	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("deleting a missing key: %v", err)
	}
}

func TestMemory(t *testing.T) {
	exercise(t, NewMemory())
}

func TestMemory_Expiry(t *testing.T) {
	m := NewMemory()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }
	ctx := context.Background()

	m.Set(ctx, "short", []byte("x"), time.Second)
	m.Set(ctx, "forever", []byte("y"), 0)

	now = now.Add(time.Second)
	if _, err := m.Get(ctx, "short"); !errors.Is(err, ErrMiss) {
		t.Errorf("expired key returned %v", err)
	}
	if _, err := m.Get(ctx, "forever"); err != nil {
		t.Errorf("ttl 0 should not expire: %v", err)
	}
	if m.Len() != 1 {
		t.Errorf("Len = %d, expired entry should be dropped", m.Len())
	}
}

func TestMemory_SetSweepsExpired(t *testing.T) {
	m := NewMemory()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	m.now = func() time.Time { return now }
	ctx := context.Background()

	for _, k := range []string{"a", "b", "c"} {
		m.Set(ctx, k, []byte(k), time.Second)
	}
	m.Set(ctx, "kept", []byte("k"), 0)

	now = now.Add(time.Second)
	m.Set(ctx, "d", []byte("d"), time.Hour)
	if m.Len() != 5 {
		t.Errorf("Len = %d, sweep should wait for the interval", m.Len())
	}

	now = now.Add(sweepInterval)
	m.Set(ctx, "e", []byte("e"), time.Hour)
	if m.Len() != 3 {
		t.Errorf("Len = %d, want 3 after expired entries are swept", m.Len())
	}
	if _, err := m.Get(ctx, "kept"); err != nil {
		t.Errorf("ttl 0 entry swept: %v", err)
	}
}

func TestMemory_CopiesValues(t *testing.T) {
	m := NewMemory()
	ctx := context.Background()
	buf := []byte("abc")
	m.Set(ctx, "k", buf, 0)
	buf[0] = 'z'
	got, _ := m.Get(ctx, "k")
	got[1] = 'z'
	again, _ := m.Get(ctx, "k")
	if string(again) != "abc" {
		t.Errorf("stored value aliased caller memory: %q", again)
	}
}

func TestOpen_EmptyURLIsMemory(t *testing.T) {
	s, closeFn, err := Open(context.Background(), "", "x:")
	if err != nil {
		t.Fatal(err)
	}
	defer closeFn()
	if _, ok := s.(*Memory); !ok {
		t.Fatalf("Open(\"\") = %T, want *Memory", s)
	}
}

func TestRedis(t *testing.T) {
	url := os.Getenv("REDIS_URL")
	if url == "" {
		t.Skip("REDIS_URL not set")
	}
	r, err := NewRedis(t.Context(), url, "mathdrill-test:")
	if err != nil {
		t.Fatal(err)
	}
	defer r.Close()
	if err := r.HealthCheck(t.Context()); err != nil {
		t.Fatal(err)
	}
	exercise(t, r)
}

func TestNewRedis_UnreachableHost(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping unreachable host test in short mode")
	}
	if _, err := NewRedis(t.Context(), "redis://localhost:59999", ""); err == nil {
		t.Fatal("NewRedis() should fail for an unreachable host")
	}
}
