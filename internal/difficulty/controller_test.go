package difficulty

import (
	"errors"
	"math/rand/v2"
	"testing"
)

func testConfig() Config {
	return Config{PromoteAfter: 3, DemoteAfter: 2, MaxLevel: 4}
}

func TestNew_StartsAtLevelOne(t *testing.T) {
	c, err := New(testConfig())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := c.State(); got != (State{Level: 1}) {
		t.Errorf("initial state = %+v, want level 1 with empty streaks", got)
	}
}

func TestNew_RejectsBadConfig(t *testing.T) {
	tests := []struct {
		cfg   Config
		field string
	}{
		{Config{PromoteAfter: 3, DemoteAfter: 2, MaxLevel: 0}, "max_level"},
		{Config{PromoteAfter: 0, DemoteAfter: 2, MaxLevel: 3}, "promote_after"},
		{Config{PromoteAfter: 3, DemoteAfter: -1, MaxLevel: 3}, "demote_after"},
	}

	for _, tc := range tests {
		_, err := New(tc.cfg)
		var ce *ConfigError
		if !errors.As(err, &ce) {
			t.Errorf("New(%+v) error = %v, want *ConfigError", tc.cfg, err)
			continue
		}
		if ce.Field != tc.field {
			t.Errorf("New(%+v) field = %q, want %q", tc.cfg, ce.Field, tc.field)
		}
	}
}

func TestMustNew_Panics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("MustNew with max_level 0 did not panic")
		}
	}()
	MustNew(Config{PromoteAfter: 1, DemoteAfter: 1, MaxLevel: 0})
}

func TestRecordResult_PromotesAfterThreshold(t *testing.T) {
	c := MustNew(testConfig())

	for i := 0; i < 2; i++ {
		if ch := c.RecordResult(true); ch.Changed() {
			t.Fatalf("answer %d: unexpected change %+v", i+1, ch)
		}
	}
	ch := c.RecordResult(true)
	if ch != (Change{Kind: Promoted, From: 1, To: 2}) {
		t.Fatalf("third correct = %+v, want promotion 1 -> 2", ch)
	}
	if c.State().ConsecutiveCorrect != 0 {
		t.Errorf("consecutive correct after promotion = %d, want 0", c.State().ConsecutiveCorrect)
	}
}

func TestRecordResult_DemotesAfterThreshold(t *testing.T) {
	c := MustNew(testConfig())
	c.Restore(State{Level: 3})

	if ch := c.RecordResult(false); ch.Changed() {
		t.Fatalf("first wrong: unexpected change %+v", ch)
	}
	ch := c.RecordResult(false)
	if ch != (Change{Kind: Demoted, From: 3, To: 2}) {
		t.Fatalf("second wrong = %+v, want demotion 3 -> 2", ch)
	}
	if c.State().ConsecutiveWrong != 0 {
		t.Errorf("consecutive wrong after demotion = %d, want 0", c.State().ConsecutiveWrong)
	}
}

func TestRecordResult_OppositeOutcomeResetsStreak(t *testing.T) {
	c := MustNew(testConfig())

	c.RecordResult(true)
	c.RecordResult(true)
	c.RecordResult(false)
	if s := c.State(); s.ConsecutiveCorrect != 0 || s.ConsecutiveWrong != 1 {
		t.Fatalf("after T,T,F state = %+v, want correct 0 wrong 1", s)
	}

	c.RecordResult(true)
	if s := c.State(); s.ConsecutiveCorrect != 1 || s.ConsecutiveWrong != 0 {
		t.Fatalf("after T,T,F,T state = %+v, want correct 1 wrong 0", s)
	}
	if c.Level() != 1 {
		t.Errorf("level = %d, want 1", c.Level())
	}
}

func TestRecordResult_StaysWithinBounds(t *testing.T) {
	c := MustNew(testConfig())

	for i := 0; i < 10; i++ {
		if ch := c.RecordResult(false); ch.Changed() {
			t.Fatalf("wrong answer at level 1 changed level: %+v", ch)
		}
	}
	if c.Level() != 1 {
		t.Fatalf("level = %d, want 1", c.Level())
	}

	for i := 0; i < 30; i++ {
		c.RecordResult(true)
	}
	if c.Level() != 4 {
		t.Fatalf("level = %d, want max 4", c.Level())
	}
	if ch := c.RecordResult(true); ch.Changed() {
		t.Errorf("correct answer at max changed level: %+v", ch)
	}
}

func TestRecordResult_RandomSequencesRespectBounds(t *testing.T) {
	configs := []Config{
		{PromoteAfter: 2, DemoteAfter: 2, MaxLevel: 3},
		{PromoteAfter: 3, DemoteAfter: 3, MaxLevel: 5},
		{PromoteAfter: 1, DemoteAfter: 1, MaxLevel: 1},
		{PromoteAfter: 1, DemoteAfter: 1, MaxLevel: 2},
	}

	for _, cfg := range configs {
		rng := rand.New(rand.NewPCG(7, uint64(cfg.MaxLevel)))
		c := MustNew(cfg)
		for i := 0; i < 2000; i++ {
			before := c.Level()
			ch := c.RecordResult(rng.IntN(3) > 0)
			lvl := c.Level()
			if lvl < 1 || lvl > cfg.MaxLevel {
				t.Fatalf("config %+v step %d: level %d out of range", cfg, i, lvl)
			}
			if ch.From != before || ch.To != lvl {
				t.Fatalf("config %+v step %d: change %+v does not match %d -> %d", cfg, i, ch, before, lvl)
			}
			if d := lvl - before; d < -1 || d > 1 {
				t.Fatalf("config %+v step %d: level jumped by %d", cfg, i, d)
			}
		}
	}
}

func TestUntilPromotion(t *testing.T) {
	c := MustNew(testConfig())
	if got := c.UntilPromotion(); got != 3 {
		t.Errorf("UntilPromotion() = %d, want 3", got)
	}
	c.RecordResult(true)
	if got := c.UntilPromotion(); got != 2 {
		t.Errorf("UntilPromotion() after one correct = %d, want 2", got)
	}
	c.Restore(State{Level: 4})
	if got := c.UntilPromotion(); got != 0 {
		t.Errorf("UntilPromotion() at max = %d, want 0", got)
	}
}

func TestRestore_Clamps(t *testing.T) {
	c := MustNew(testConfig())
	c.Restore(State{Level: 9, ConsecutiveCorrect: -2, ConsecutiveWrong: 1})
	want := State{Level: 4, ConsecutiveCorrect: 0, ConsecutiveWrong: 1}
	if got := c.State(); got != want {
		t.Errorf("Restore clamp = %+v, want %+v", got, want)
	}
	c.Restore(State{Level: 0})
	if c.Level() != 1 {
		t.Errorf("Restore(level 0) level = %d, want 1", c.Level())
	}
}
