package cmd

import (
	"context"
	"strings"
	"testing"

	"github.com/abhisek/mathdrill/internal/i18n"
	"github.com/abhisek/mathdrill/internal/problemgen"
	"github.com/abhisek/mathdrill/internal/session"
)

// correctAnswers replays a session with the same seed, answering every
// problem correctly, and returns the answers in order.
func correctAnswers(t *testing.T, topicID string, seed uint64, n int) []string {
	t.Helper()
	ctx := context.Background()
	twin := session.New(ctx, session.Options{Generator: problemgen.NewDefault(), Seed: seed})
	var out []string
	for range n {
		p, err := twin.Next(ctx, topicID)
		if err != nil {
			t.Fatal(err)
		}
		out = append(out, p.Answer.String())
		if _, err := twin.Submit(ctx, topicID, p.Answer.String()); err != nil {
			t.Fatal(err)
		}
	}
	return out
}

func newDrillSession(ctx context.Context, seed uint64) *session.Session {
	return session.New(ctx, session.Options{Generator: problemgen.NewDefault(), Seed: seed, FrontEnd: "cli"})
}

func TestDrill_AllCorrect(t *testing.T) {
	ctx := i18n.Context("en")
	answers := correctAnswers(t, "money", 42, 4)

	// An unreadable answer and a solution request before the real answers.
	input := "lots\n" + answers[0] + "\n?\n" + strings.Join(answers[1:], "\n") + "\n"

	var out strings.Builder
	sum, err := drill(ctx, newDrillSession(ctx, 42), "money", 4, strings.NewReader(input), &out)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Attempted != 4 || sum.Correct != 4 {
		t.Errorf("summary = %d/%d, want 4/4", sum.Correct, sum.Attempted)
	}

	text := out.String()
	for _, want := range []string{
		`I couldn't read "lots"`,
		"Type an amount like $4.25",
		"Solution",
		"Level up! You are now on level 2.",
		"── 4/4 · Level 2 of 4 ──",
		"Session summary",
		"4 of 4 correct (100%)",
		"L1 → L2",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestDrill_WrongAnswer(t *testing.T) {
	ctx := i18n.Context("en")
	var out strings.Builder
	sum, err := drill(ctx, newDrillSession(ctx, 9), "unit-conversion", 1, strings.NewReader("0\n"), &out)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Attempted != 1 || sum.Correct != 0 {
		t.Errorf("summary = %d/%d, want 0/1", sum.Correct, sum.Attempted)
	}
	if !strings.Contains(out.String(), "Not quite. The answer is") {
		t.Errorf("output:\n%s", out.String())
	}
}

func TestDrill_EndOfInput(t *testing.T) {
	ctx := i18n.Context("en")
	var out strings.Builder
	sum, err := drill(ctx, newDrillSession(ctx, 1), "fractions", 3, strings.NewReader(""), &out)
	if err != nil {
		t.Fatal(err)
	}
	if sum.Attempted != 0 {
		t.Errorf("attempted = %d, want 0", sum.Attempted)
	}
	if !strings.Contains(out.String(), "Session summary") {
		t.Error("summary should be printed when input ends early")
	}
}

func TestDrill_Spanish(t *testing.T) {
	ctx := i18n.Context("es")
	answers := correctAnswers(t, "probability", 5, 1)
	var out strings.Builder
	if _, err := drill(ctx, newDrillSession(ctx, 5), "probability", 1, strings.NewReader(answers[0]+"\n"), &out); err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{"¡Correcto!", "Resumen de la sesión"} {
		if !strings.Contains(out.String(), want) {
			t.Errorf("output missing %q", want)
		}
	}
}

func TestDrill_UnknownTopic(t *testing.T) {
	ctx := context.Background()
	_, err := drill(ctx, newDrillSession(ctx, 1), "algebra", 1, strings.NewReader(""), &strings.Builder{})
	if err == nil {
		t.Error("expected an error for an unknown topic")
	}
}
