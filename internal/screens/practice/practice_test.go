package practice

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathdrill/internal/problemgen"
	"github.com/abhisek/mathdrill/internal/screen"
	"github.com/abhisek/mathdrill/internal/session"
)

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func typeText(t *testing.T, s *Screen, text string) {
	t.Helper()
	for _, r := range text {
		s.Update(keyPress(r))
	}
}

// newScreen returns a practice screen with its first problem loaded.
func newScreen(t *testing.T, topicID string) (*Screen, *session.Session) {
	t.Helper()
	ctx := context.Background()
	sess := session.New(ctx, session.Options{Generator: problemgen.NewDefault(), Seed: 3, FrontEnd: "test"})
	tp, err := sess.Catalog().Get(topicID)
	if err != nil {
		t.Fatal(err)
	}
	s := New(ctx, sess, tp)
	msg := s.Init()()
	s.Update(msg)
	if s.problem == nil {
		t.Fatalf("no problem after init: %+v", msg)
	}
	return s, sess
}

func TestInit_LoadsProblem(t *testing.T) {
	s, sess := newScreen(t, "money")
	if s.problem != sess.Current("money") {
		t.Error("screen problem differs from session current")
	}
	if s.Title() != "Money Word Problems" {
		t.Errorf("Title = %q", s.Title())
	}
	if !strings.Contains(s.Status(), "Level 1 of 4") {
		t.Errorf("Status = %q", s.Status())
	}
	if !strings.Contains(s.View(80, 24), s.problem.Prompt[:10]) {
		t.Error("view does not show the prompt")
	}
}

func TestInit_ReusesPendingProblem(t *testing.T) {
	s, sess := newScreen(t, "fractions")
	again := New(context.Background(), sess, s.topic)
	again.Update(again.Init()())
	if again.problem.ID != s.problem.ID {
		t.Error("returning to a topic should keep its unanswered problem")
	}
}

func TestSubmit_Correct(t *testing.T) {
	s, sess := newScreen(t, "money")
	typeText(t, s, s.problem.Answer.String())

	var scr screen.Screen = s
	scr.Update(specialKey(tea.KeyEnter))

	if s.outcome == nil || !s.outcome.Correct {
		t.Fatalf("outcome = %+v", s.outcome)
	}
	if !strings.Contains(s.View(80, 24), "Correct!") {
		t.Error("feedback not shown")
	}
	if st, _ := sess.State("money"); st.ConsecutiveCorrect != 1 {
		t.Errorf("streak = %d, want 1", st.ConsecutiveCorrect)
	}

	// Enter moves on to a new problem.
	_, cmd := s.Update(specialKey(tea.KeyEnter))
	if cmd == nil {
		t.Fatal("no command for next problem")
	}
	prev := s.problem.ID
	s.Update(cmd())
	if s.outcome != nil || s.problem.ID == prev {
		t.Error("expected a fresh problem")
	}
}

func TestSubmit_InvalidFormatKeepsProblem(t *testing.T) {
	s, sess := newScreen(t, "money")
	typeText(t, s, "lots")
	s.Update(specialKey(tea.KeyEnter))

	if s.outcome != nil {
		t.Fatal("unreadable input must not be graded")
	}
	if !strings.Contains(s.formatErr, `"lots"`) {
		t.Errorf("formatErr = %q", s.formatErr)
	}
	if sum := sess.Summary(); sum.Attempted != 0 {
		t.Errorf("attempted = %d, want 0", sum.Attempted)
	}
}

func TestSubmit_WrongShowsSolution(t *testing.T) {
	s, _ := newScreen(t, "unit-conversion")
	typeText(t, s, "0")
	s.Update(specialKey(tea.KeyEnter))

	if s.outcome == nil || s.outcome.Correct {
		t.Fatalf("outcome = %+v", s.outcome)
	}
	view := s.View(80, 40)
	if !strings.Contains(view, "Not quite") {
		t.Errorf("view missing feedback:\n%s", view)
	}
}

func TestReveal(t *testing.T) {
	s, _ := newScreen(t, "elapsed-time")
	_, cmd := s.Update(keyPress('?'))
	if cmd == nil {
		t.Fatal("? on empty input should reveal")
	}
	s.Update(cmd())
	if s.solution != s.problem.Explanation {
		t.Errorf("solution = %q", s.solution)
	}
	if !strings.Contains(s.View(80, 40), "Solution") {
		t.Error("solution panel not shown")
	}
}

func TestQuestionMarkWhileTyping(t *testing.T) {
	s, _ := newScreen(t, "money")
	typeText(t, s, "1")
	s.Update(keyPress('?'))
	if s.revealing || s.solution != "" {
		t.Error("? after typing should not reveal")
	}
}

func TestKeyHints(t *testing.T) {
	s, _ := newScreen(t, "money")
	if len(s.KeyHints()) != 3 {
		t.Errorf("answering hints = %v", s.KeyHints())
	}
	typeText(t, s, s.problem.Answer.String())
	s.Update(specialKey(tea.KeyEnter))
	if len(s.KeyHints()) != 2 {
		t.Errorf("feedback hints = %v", s.KeyHints())
	}
}
