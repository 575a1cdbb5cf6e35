package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/mathdrill/internal/ui/theme"
)

// MenuItem is one row of a Menu. Heading rows group the rows below them
// and cannot be selected.
type MenuItem struct {
	Label   string
	Detail  string
	Heading bool
	Action  func() tea.Cmd
}

// Menu is a vertical list navigated with the arrow keys.
type Menu struct {
	Items    []MenuItem
	Selected int
}

// NewMenu selects the first selectable item.
func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1}
	m.move(0, 1)
	return m
}

// move selects the next selectable item from start in direction dir.
func (m *Menu) move(start, dir int) {
	for i := start; i >= 0 && i < len(m.Items); i += dir {
		if !m.Items[i].Heading {
			m.Selected = i
			return
		}
	}
}

// Update handles navigation and runs the selected action on Enter.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok {
		return m, nil
	}
	switch kmsg.String() {
	case "up", "k":
		m.move(m.Selected-1, -1)
	case "down", "j":
		m.move(m.Selected+1, 1)
	case "home":
		m.move(0, 1)
	case "end":
		m.move(len(m.Items)-1, -1)
	case "enter":
		if m.Selected >= 0 && m.Selected < len(m.Items) {
			if a := m.Items[m.Selected].Action; a != nil {
				return m, a()
			}
		}
	}
	return m, nil
}

// View renders the menu.
func (m Menu) View() string {
	var b strings.Builder
	for i, item := range m.Items {
		switch {
		case item.Heading:
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(theme.Heading.Render(item.Label))
		case i == m.Selected:
			b.WriteString(theme.Selected.Render("  ▸ " + item.Label))
		default:
			b.WriteString(theme.Unselected.Render("    " + item.Label))
		}
		if item.Detail != "" {
			b.WriteString("  " + theme.Hint.Render(item.Detail))
		}
		b.WriteString("\n")
	}
	return b.String()
}
