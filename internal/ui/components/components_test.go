package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func key(code rune) tea.KeyPressMsg { return tea.KeyPressMsg{Code: code} }

func TestMenu_SkipsHeadings(t *testing.T) {
	var picked string
	pick := func(s string) func() tea.Cmd {
		return func() tea.Cmd { picked = s; return nil }
	}
	m := NewMenu([]MenuItem{
		{Label: "Money", Heading: true},
		{Label: "Money", Action: pick("money")},
		{Label: "Fractions", Heading: true},
		{Label: "Fractions", Action: pick("fractions")},
	})
	if m.Selected != 1 {
		t.Fatalf("initial selection = %d, want 1", m.Selected)
	}

	m, _ = m.Update(key(tea.KeyDown))
	if m.Selected != 3 {
		t.Errorf("down moved to %d, want 3", m.Selected)
	}
	m, _ = m.Update(key(tea.KeyDown))
	if m.Selected != 3 {
		t.Errorf("down past the end moved to %d", m.Selected)
	}
	m, _ = m.Update(key(tea.KeyUp))
	if m.Selected != 1 {
		t.Errorf("up moved to %d, want 1", m.Selected)
	}
	m, _ = m.Update(key(tea.KeyUp))
	if m.Selected != 1 {
		t.Errorf("up onto a heading moved to %d", m.Selected)
	}

	m, _ = m.Update(key(tea.KeyEnd))
	m.Update(key(tea.KeyEnter))
	if picked != "fractions" {
		t.Errorf("picked %q, want fractions", picked)
	}
}

func TestLevelMeter(t *testing.T) {
	tests := []struct {
		m    LevelMeter
		want []string
	}{
		{LevelMeter{Level: 1, MaxLevel: 4, Streak: 2, Needed: 3}, []string{"Level 1/4", "●●", "○"}},
		{LevelMeter{Level: 2, MaxLevel: 4, Streak: 0, Needed: 3}, []string{"Level 2/4", "○○○"}},
		{LevelMeter{Level: 4, MaxLevel: 4, Streak: 5, Needed: 3}, []string{"Level 4/4", "★"}},
	}
	for _, tt := range tests {
		got := tt.m.View()
		for _, w := range tt.want {
			if !strings.Contains(got, w) {
				t.Errorf("%+v: %q missing %q", tt.m, got, w)
			}
		}
	}
}

func TestProgressBar(t *testing.T) {
	if got := (ProgressBar{Percent: 0.75, Width: 10}).View(); !strings.Contains(got, "75%") {
		t.Errorf("view = %q", got)
	}
}
