package home

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/examdraft/internal/draft"
	"github.com/abhisek/examdraft/internal/router"
	"github.com/abhisek/examdraft/internal/screen"
	"github.com/abhisek/examdraft/internal/screens/progress"
	"github.com/abhisek/examdraft/internal/screens/tableedit"
	"github.com/abhisek/examdraft/internal/ui/components"
	"github.com/abhisek/examdraft/internal/ui/layout"
)

// HomeScreen lists the draft's sections with their table and selection
// status.
type HomeScreen struct {
	env    *screen.Env
	menu   components.Menu
	status string
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(env *screen.Env) *HomeScreen {
	h := &HomeScreen{env: env}
	h.refresh()
	return h
}

// refresh rebuilds the menu from the draft, keeping the cursor.
func (h *HomeScreen) refresh() {
	selected := h.menu.Selected
	items := make([]components.MenuItem, 0, len(h.env.Draft.Sections)+1)
	for _, s := range h.env.Draft.Sections {
		sec := s
		badge, ok := sectionBadge(sec)
		items = append(items, components.MenuItem{
			Label: sectionLabel(sec),
			Badge: badge,
			Ok:    ok,
			Action: func() tea.Cmd {
				return func() tea.Msg {
					return router.PushScreenMsg{Screen: tableedit.New(h.env, sec)}
				}
			},
		})
	}
	items = append(items, components.MenuItem{Label: "Quit", Action: func() tea.Cmd { return tea.Quit }})

	h.menu = components.NewMenu(items, menuWidth)
	h.menu.Select(selected)
}

func (h *HomeScreen) Init() tea.Cmd {
	h.refresh()
	return nil
}

func (h *HomeScreen) Title() string {
	return "Sections"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Edit table"},
		{Key: "p", Description: "Progress"},
		{Key: "s", Description: "Save"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

// selectedSection returns the section under the cursor, if any.
func (h *HomeScreen) selectedSection() *draft.Section {
	if h.menu.Selected < len(h.env.Draft.Sections) {
		return h.env.Draft.Sections[h.menu.Selected]
	}
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.SavedMsg:
		if msg.Err != nil {
			h.status = "Save failed: " + msg.Err.Error()
		} else {
			h.status = fmt.Sprintf("Saved revision %d", msg.Revision)
		}
		return h, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "p":
			if sec := h.selectedSection(); sec != nil {
				return h, func() tea.Msg {
					return router.PushScreenMsg{Screen: progress.New(sec)}
				}
			}
			return h, nil
		case "s":
			cmd := h.env.SaveCmd()
			if cmd == nil {
				h.status = "No store configured"
			}
			return h, cmd
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) View(width, height int) string {
	cw := contentWidth(width)

	var parts []string
	parts = append(parts, renderDraftCard(h.env.Draft, cw))
	if len(h.env.Draft.Sections) == 0 {
		parts = append(parts, renderEmpty(cw))
	}
	parts = append(parts, h.menu.View())
	if issues := h.env.Draft.Issues(); len(issues) > 0 {
		parts = append(parts, renderIssues(issues, cw, layout.IsCompactHeight(height+layout.HeaderHeight+layout.FooterHeight)))
	}
	if h.status != "" {
		parts = append(parts, renderStatus(h.status))
	}
	return renderPage(strings.Join(parts, "\n\n"), width, height)
}
