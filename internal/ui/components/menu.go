package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/examdraft/internal/ui/theme"
)

// MenuItem is one row of a Menu. Badge is rendered right-aligned and
// styled by Ok.
type MenuItem struct {
	Label  string
	Badge  string
	Ok     bool
	Action func() tea.Cmd
}

// Menu is a vertical list with a wrapping cursor.
type Menu struct {
	Items    []MenuItem
	Selected int
	Width    int
}

func NewMenu(items []MenuItem, width int) Menu {
	return Menu{Items: items, Width: width}
}

// Select moves the cursor to i, clamped to the item range.
func (m *Menu) Select(i int) {
	switch {
	case len(m.Items) == 0:
		m.Selected = 0
	case i < 0:
		m.Selected = 0
	case i >= len(m.Items):
		m.Selected = len(m.Items) - 1
	default:
		m.Selected = i
	}
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyPressMsg)
	if !ok || len(m.Items) == 0 {
		return m, nil
	}

	n := len(m.Items)
	switch kmsg.String() {
	case "up", "k":
		m.Selected = (m.Selected - 1 + n) % n
	case "down", "j":
		m.Selected = (m.Selected + 1) % n
	case "home":
		m.Selected = 0
	case "end":
		m.Selected = n - 1
	case "enter":
		if a := m.Items[m.Selected].Action; a != nil {
			return m, a()
		}
	}
	return m, nil
}

func (m Menu) View() string {
	lines := make([]string, 0, len(m.Items))
	for i, item := range m.Items {
		prefix, style := "    ", theme.Unselected
		if i == m.Selected {
			prefix, style = "  ▸ ", theme.Selected
		}
		label := style.Render(prefix + item.Label)
		if item.Badge == "" {
			lines = append(lines, label)
			continue
		}

		badge := theme.Incorrect.Render(item.Badge)
		if item.Ok {
			badge = theme.Correct.Render(item.Badge)
		}
		gap := m.Width - lipgloss.Width(label) - lipgloss.Width(badge)
		if gap < 2 {
			gap = 2
		}
		lines = append(lines, label+strings.Repeat(" ", gap)+badge)
	}
	return strings.Join(lines, "\n")
}
