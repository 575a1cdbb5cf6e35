// Package home is the topic picker shown when the TUI starts.
package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/mathdrill/internal/i18n"
	"github.com/abhisek/mathdrill/internal/router"
	"github.com/abhisek/mathdrill/internal/screen"
	"github.com/abhisek/mathdrill/internal/screens/practice"
	"github.com/abhisek/mathdrill/internal/screens/summary"
	"github.com/abhisek/mathdrill/internal/session"
	"github.com/abhisek/mathdrill/internal/topic"
	"github.com/abhisek/mathdrill/internal/ui/components"
	"github.com/abhisek/mathdrill/internal/ui/layout"
	"github.com/abhisek/mathdrill/internal/ui/theme"
)

const finishLabel = "Finish session"

// Screen lists the catalogue grouped by strand.
type Screen struct {
	ctx    context.Context
	sess   *session.Session
	menu   components.Menu
	topics map[int]topic.Topic // menu index -> topic
}

var (
	_ screen.Screen          = (*Screen)(nil)
	_ screen.KeyHintProvider = (*Screen)(nil)
)

// New builds the menu from the session's catalogue.
func New(ctx context.Context, sess *session.Session) *Screen {
	h := &Screen{ctx: ctx, sess: sess, topics: make(map[int]topic.Topic)}

	cat := sess.Catalog()
	var items []components.MenuItem
	for _, strand := range cat.Strands() {
		items = append(items, components.MenuItem{Label: topic.StrandDisplayName(strand), Heading: true})
		for _, t := range cat.ByStrand(strand) {
			h.topics[len(items)] = t
			items = append(items, components.MenuItem{
				Label:  t.Name,
				Action: func() tea.Cmd { return router.Push(practice.New(ctx, sess, t)) },
			})
		}
	}
	items = append(items,
		components.MenuItem{Label: "", Heading: true},
		components.MenuItem{Label: finishLabel, Action: h.finish},
	)
	h.menu = components.NewMenu(items)
	return h
}

// finish ends the session and replaces the picker with the summary.
func (h *Screen) finish() tea.Cmd {
	return router.Replace(summary.New(h.ctx, h.sess.End(h.ctx)))
}

func (h *Screen) Init() tea.Cmd { return nil }

func (h *Screen) Title() string { return "Topics" }

func (h *Screen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Choose"},
		{Key: "Enter", Description: "Practice"},
		{Key: "q", Description: "Finish"},
	}
}

func (h *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if k, ok := msg.(tea.KeyPressMsg); ok && k.String() == "q" {
		return h, h.finish()
	}
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *Screen) View(width, height int) string {
	h.refreshLevels()

	cw := layout.ContentWidth(width)
	var b strings.Builder
	b.WriteString(theme.Title.Render("What shall we practise?"))
	b.WriteString("\n\n")
	b.WriteString(h.menu.View())

	if t, ok := h.topics[h.menu.Selected]; ok && t.Description != "" {
		b.WriteString("\n")
		b.WriteString(theme.Hint.Width(cw).Render(t.Description))
	}
	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

// refreshLevels shows each topic's current level next to its name.
func (h *Screen) refreshLevels() {
	for i, t := range h.topics {
		st, err := h.sess.State(t.ID)
		if err != nil {
			continue
		}
		h.menu.Items[i].Detail = i18n.Td(h.ctx, "Level", map[string]any{"Level": st.Level, "Max": t.Difficulty.MaxLevel})
	}
}
