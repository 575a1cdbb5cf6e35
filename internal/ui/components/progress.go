package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathdrill/internal/ui/theme"
)

// LevelMeter shows the level out of its maximum and the run of correct
// answers towards the next promotion.
type LevelMeter struct {
	Level, MaxLevel int
	Streak, Needed  int
}

// View renders e.g. "Level 2/4  ●●○".
func (m LevelMeter) View() string {
	level := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render(fmt.Sprintf("Level %d/%d", m.Level, m.MaxLevel))
	if m.Level >= m.MaxLevel || m.Needed <= 0 {
		return level + "  " + lipgloss.NewStyle().Foreground(theme.Accent).Render("★")
	}
	filled := min(max(m.Streak, 0), m.Needed)
	dots := lipgloss.NewStyle().Foreground(theme.Success).Render(strings.Repeat("●", filled)) +
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("○", m.Needed-filled))
	return level + "  " + dots
}

// ProgressBar is a horizontal bar for ratios such as accuracy.
type ProgressBar struct {
	Percent float64
	Width   int
}

// View renders the bar followed by the whole percentage.
func (p ProgressBar) View() string {
	w := max(p.Width, 4)
	filled := min(max(int(float64(w)*p.Percent), 0), w)
	return lipgloss.NewStyle().Background(theme.Secondary).Render(strings.Repeat(" ", filled)) +
		lipgloss.NewStyle().Background(theme.Border).Render(strings.Repeat(" ", w-filled)) +
		lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf(" %3d%%", int(p.Percent*100+0.5)))
}
