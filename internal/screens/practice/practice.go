// Package practice is the screen where one topic is drilled.
package practice

import (
	"context"
	"errors"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathdrill/internal/answer"
	"github.com/abhisek/mathdrill/internal/difficulty"
	"github.com/abhisek/mathdrill/internal/i18n"
	"github.com/abhisek/mathdrill/internal/problemgen"
	"github.com/abhisek/mathdrill/internal/screen"
	"github.com/abhisek/mathdrill/internal/session"
	"github.com/abhisek/mathdrill/internal/topic"
	"github.com/abhisek/mathdrill/internal/ui/components"
	"github.com/abhisek/mathdrill/internal/ui/layout"
	"github.com/abhisek/mathdrill/internal/ui/theme"
)

type problemMsg struct {
	problem *problemgen.Problem
	err     error
}

type solutionMsg struct {
	problemID string
	text      string
	err       error
}

// Screen drills one topic: problem, answer, feedback, repeat.
type Screen struct {
	ctx   context.Context
	sess  *session.Session
	topic topic.Topic

	problem   *problemgen.Problem
	input     components.AnswerInput
	formatErr string
	solution  string
	revealing bool

	outcome *session.Outcome
	errMsg  string
}

var (
	_ screen.Screen          = (*Screen)(nil)
	_ screen.KeyHintProvider = (*Screen)(nil)
	_ screen.StatusProvider  = (*Screen)(nil)
)

// New creates a practice screen for t. ctx carries the localizer.
func New(ctx context.Context, sess *session.Session, t topic.Topic) *Screen {
	return &Screen{
		ctx:   ctx,
		sess:  sess,
		topic: t,
		input: components.NewAnswerInput(""),
	}
}

func (s *Screen) Init() tea.Cmd {
	return s.nextProblem()
}

func (s *Screen) Title() string { return s.topic.Name }

// Status shows the level in the header.
func (s *Screen) Status() string {
	lvl, _ := s.sess.Level(s.topic.ID)
	return i18n.Td(s.ctx, "Level", map[string]any{"Level": lvl, "Max": s.topic.Difficulty.MaxLevel})
}

func (s *Screen) KeyHints() []layout.KeyHint {
	if s.outcome != nil {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Next problem"},
			{Key: "Esc", Description: "Topics"},
		}
	}
	return []layout.KeyHint{
		{Key: "Enter", Description: "Check"},
		{Key: "?", Description: "Show solution"},
		{Key: "Esc", Description: "Topics"},
	}
}

// nextProblem asks the session for a fresh problem. A pending unanswered
// problem from an earlier visit is reused.
func (s *Screen) nextProblem() tea.Cmd {
	ctx, sess, id := s.ctx, s.sess, s.topic.ID
	return func() tea.Msg {
		if p := sess.Current(id); p != nil {
			return problemMsg{problem: p}
		}
		p, err := sess.Next(ctx, id)
		return problemMsg{problem: p, err: err}
	}
}

func (s *Screen) reveal() tea.Cmd {
	ctx, sess, id, pid := s.ctx, s.sess, s.topic.ID, s.problem.ID
	return func() tea.Msg {
		text, err := sess.Reveal(ctx, id)
		return solutionMsg{problemID: pid, text: text, err: err}
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case problemMsg:
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil
		}
		s.problem = msg.problem
		s.outcome = nil
		s.solution = ""
		s.formatErr = ""
		s.input = components.NewAnswerInput(i18n.FormatHint(s.ctx, msg.problem.Answer))
		return s, nil

	case solutionMsg:
		s.revealing = false
		if s.problem == nil || msg.problemID != s.problem.ID {
			return s, nil
		}
		if msg.err != nil {
			s.errMsg = msg.err.Error()
			return s, nil
		}
		s.solution = msg.text
		return s, nil

	case tea.KeyPressMsg:
		return s.handleKey(msg)
	}

	if s.problem != nil && s.outcome == nil {
		var cmd tea.Cmd
		s.input, cmd = s.input.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *Screen) handleKey(msg tea.KeyPressMsg) (screen.Screen, tea.Cmd) {
	if s.problem == nil {
		return s, nil
	}
	if s.outcome != nil {
		if msg.String() == "enter" || msg.String() == "space" {
			return s, s.nextProblem()
		}
		return s, nil
	}

	switch msg.String() {
	case "enter":
		return s.submit()
	case "?":
		if strings.TrimSpace(s.input.Value()) == "" {
			if s.solution == "" && !s.revealing {
				s.revealing = true
				return s, s.reveal()
			}
			return s, nil
		}
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *Screen) submit() (screen.Screen, tea.Cmd) {
	raw := s.input.Value()
	if strings.TrimSpace(raw) == "" {
		return s, nil
	}
	out, err := s.sess.Submit(s.ctx, s.topic.ID, raw)
	var perr *answer.ParseError
	switch {
	case errors.As(err, &perr):
		s.formatErr = i18n.Td(s.ctx, "InvalidFormat", map[string]any{"Input": perr.Input}) +
			" " + i18n.FormatHint(s.ctx, s.problem.Answer)
		return s, nil
	case err != nil:
		s.errMsg = err.Error()
		return s, nil
	}
	s.formatErr = ""
	s.outcome = out
	return s, nil
}

func (s *Screen) View(width, height int) string {
	cw := layout.ContentWidth(width)
	if s.errMsg != "" {
		return layout.Center(theme.Incorrect.Render("\n"+s.errMsg), width)
	}
	if s.problem == nil {
		return layout.Center(theme.Hint.Render("\n…"), width)
	}

	var b strings.Builder
	b.WriteString(s.meter())
	b.WriteString("\n\n")
	b.WriteString(theme.Prompt.Width(cw).Render(s.problem.Prompt))
	b.WriteString("\n\n")

	if s.outcome == nil {
		b.WriteString(s.input.View())
		b.WriteString("\n")
		if s.formatErr != "" {
			b.WriteString(lipgloss.NewStyle().Foreground(theme.Accent).Width(cw).Render(s.formatErr))
		} else {
			b.WriteString(theme.Hint.Render(i18n.T(s.ctx, "RevealHint")))
		}
		b.WriteString("\n")
	} else {
		b.WriteString(s.feedback(cw))
	}

	if s.solution != "" && s.outcome == nil {
		b.WriteString("\n")
		b.WriteString(theme.SolutionCard.Width(cw).Render(
			theme.Heading.Render(i18n.T(s.ctx, "Solution")) + "\n" + s.solution))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func (s *Screen) meter() string {
	st, _ := s.sess.State(s.topic.ID)
	m := components.LevelMeter{
		Level:    st.Level,
		MaxLevel: s.topic.Difficulty.MaxLevel,
		Streak:   st.ConsecutiveCorrect,
		Needed:   s.topic.Difficulty.PromoteAfter,
	}
	line := m.View()
	if n := s.sess.UntilPromotion(s.topic.ID); n > 0 {
		line += "  " + theme.Hint.Render(i18n.Tp(s.ctx, "UntilPromotion", n))
	} else {
		line += "  " + theme.Hint.Render(i18n.T(s.ctx, "TopLevel"))
	}
	return line
}

func (s *Screen) feedback(cw int) string {
	out := s.outcome
	var b strings.Builder
	if out.Correct {
		b.WriteString(theme.Correct.Render(i18n.T(s.ctx, "Correct")))
	} else {
		b.WriteString(theme.Incorrect.Render(
			i18n.Td(s.ctx, "Incorrect", map[string]any{"Answer": out.Expected.String()})))
		b.WriteString("\n\n")
		b.WriteString(theme.SolutionCard.Width(cw).Render(
			theme.Heading.Render(i18n.T(s.ctx, "Solution")) + "\n" + out.Explanation))
	}
	b.WriteString("\n")

	switch out.Change.Kind {
	case difficulty.Promoted:
		b.WriteString("\n" + theme.Banner.Render(i18n.Td(s.ctx, "LevelUp", map[string]any{"Level": out.Change.To})) + "\n")
	case difficulty.Demoted:
		b.WriteString("\n" + theme.Banner.Render(i18n.Td(s.ctx, "LevelDown", map[string]any{"Level": out.Change.To})) + "\n")
	}
	return b.String()
}
