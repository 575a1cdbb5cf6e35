// Package summary shows the results of a finished session.
package summary

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathdrill/internal/i18n"
	"github.com/abhisek/mathdrill/internal/screen"
	"github.com/abhisek/mathdrill/internal/session"
	"github.com/abhisek/mathdrill/internal/ui/components"
	"github.com/abhisek/mathdrill/internal/ui/layout"
	"github.com/abhisek/mathdrill/internal/ui/theme"
)

// Screen displays a session.Summary. Any of Enter, Esc or q quits.
type Screen struct {
	ctx     context.Context
	summary session.Summary
}

var (
	_ screen.Screen          = (*Screen)(nil)
	_ screen.KeyHintProvider = (*Screen)(nil)
)

// New creates a summary screen.
func New(ctx context.Context, sum session.Summary) *Screen {
	return &Screen{ctx: ctx, summary: sum}
}

func (s *Screen) Init() tea.Cmd { return nil }

func (s *Screen) Title() string { return i18n.T(s.ctx, "SummaryTitle") }

func (s *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{{Key: "Enter", Description: "Quit"}}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if k, ok := msg.(tea.KeyPressMsg); ok {
		switch k.String() {
		case "enter", "esc", "q":
			return s, tea.Quit
		}
	}
	return s, nil
}

func (s *Screen) View(width, height int) string {
	sum := s.summary
	cw := layout.ContentWidth(width)

	var b strings.Builder
	b.WriteString(theme.Title.Render(i18n.T(s.ctx, "Goodbye")))
	b.WriteString("\n\n")
	b.WriteString(theme.Body.Render(i18n.Td(s.ctx, "SummaryTotals", map[string]any{
		"Correct":   sum.Correct,
		"Attempted": sum.Attempted,
		"Percent":   i18n.Percent(sum.Accuracy),
	})))
	b.WriteString("  ")
	b.WriteString(theme.Hint.Render(formatDuration(sum.Duration.Seconds())))
	b.WriteString("\n\n")

	nameWidth := 0
	for _, t := range sum.Topics {
		nameWidth = max(nameWidth, lipgloss.Width(t.Name))
	}
	for _, t := range sum.Topics {
		if t.Attempted == 0 {
			continue
		}
		levels := fmt.Sprintf("L%d", t.EndLevel)
		style := theme.Body
		if t.EndLevel != t.StartLevel {
			levels = fmt.Sprintf("L%d → L%d", t.StartLevel, t.EndLevel)
			if t.EndLevel > t.StartLevel {
				style = theme.Correct
			} else {
				style = theme.Incorrect
			}
		}
		line := fmt.Sprintf("%-*s  %-12s  %-9s  ", nameWidth, t.Name,
			i18n.Tp(s.ctx, "ProblemsAttempted", t.Attempted), levels)
		bar := components.ProgressBar{Percent: t.Accuracy, Width: max(cw-lipgloss.Width(line)-6, 4)}
		b.WriteString(style.Render(line) + bar.View())
		b.WriteString("\n")
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

func formatDuration(secs float64) string {
	n := int(secs)
	return fmt.Sprintf("%d:%02d", n/60, n%60)
}
