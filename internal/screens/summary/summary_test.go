package summary

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathdrill/internal/i18n"
	"github.com/abhisek/mathdrill/internal/session"
)

func testSummary() session.Summary {
	return session.Summary{
		Duration:  7*time.Minute + 5*time.Second,
		Attempted: 9,
		Correct:   6,
		Accuracy:  6.0 / 9,
		Topics: []session.TopicSummary{
			{TopicID: "money", Name: "Money", Attempted: 6, Correct: 5, Accuracy: 5.0 / 6, StartLevel: 1, EndLevel: 2},
			{TopicID: "fractions", Name: "Fractions", Attempted: 3, Correct: 1, Accuracy: 1.0 / 3, StartLevel: 1, EndLevel: 1},
			{TopicID: "probability", Name: "Probability"},
		},
	}
}

func TestView(t *testing.T) {
	s := New(context.Background(), testSummary())
	view := s.View(80, 24)
	for _, want := range []string{"6 of 9 correct (67%)", "7:05", "Money", "L1 → L2", "6 problems", "3 problems"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q:\n%s", want, view)
		}
	}
	if strings.Contains(view, "Probability") {
		t.Error("untouched topic should not be listed")
	}
}

func TestView_Spanish(t *testing.T) {
	s := New(i18n.Context("es"), testSummary())
	if got := s.Title(); got == "Session summary" {
		t.Errorf("title not translated: %q", got)
	}
}

func TestQuitKeys(t *testing.T) {
	for _, k := range []tea.KeyPressMsg{
		{Code: tea.KeyEnter},
		{Code: tea.KeyEscape},
		{Code: 'q', Text: "q"},
	} {
		_, cmd := New(context.Background(), testSummary()).Update(k)
		if cmd == nil {
			t.Fatalf("%s: no command", k.String())
		}
		if _, ok := cmd().(tea.QuitMsg); !ok {
			t.Errorf("%s: want quit", k.String())
		}
	}
}

func TestKeyHints(t *testing.T) {
	if len(New(context.Background(), testSummary()).KeyHints()) == 0 {
		t.Error("expected key hints")
	}
}
