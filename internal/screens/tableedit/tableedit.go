// Package tableedit is the interactive editor for a section's quota table.
package tableedit

import (
	"fmt"
	"strconv"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/examdraft/internal/draft"
	"github.com/abhisek/examdraft/internal/quota"
	"github.com/abhisek/examdraft/internal/router"
	"github.com/abhisek/examdraft/internal/screen"
	"github.com/abhisek/examdraft/internal/screens/progress"
	"github.com/abhisek/examdraft/internal/ui/components"
	"github.com/abhisek/examdraft/internal/ui/layout"
	"github.com/abhisek/examdraft/internal/ui/theme"
)

// TableEditScreen moves a cursor over a section's table and overwrites one
// cell at a time, revalidating after every edit.
type TableEditScreen struct {
	env     *screen.Env
	section *draft.Section
	row     int
	col     int
	result  quota.Result
	input   components.NumberInput
	editing bool
	status  string
}

var _ screen.Screen = (*TableEditScreen)(nil)

// New creates an editor for section.
func New(env *screen.Env, section *draft.Section) *TableEditScreen {
	return &TableEditScreen{
		env:     env,
		section: section,
		result:  section.Validate(),
	}
}

func (s *TableEditScreen) Init() tea.Cmd {
	s.result = s.section.Validate()
	return nil
}

func (s *TableEditScreen) Title() string {
	return "Table · " + s.section.Name
}

// CapturingInput keeps Esc inside the editor while a value is typed.
func (s *TableEditScreen) CapturingInput() bool {
	return s.editing
}

func (s *TableEditScreen) KeyHints() []layout.KeyHint {
	if s.editing {
		return []layout.KeyHint{
			{Key: "Enter", Description: "Apply"},
			{Key: "Esc", Description: "Cancel"},
		}
	}
	return []layout.KeyHint{
		{Key: "←↑↓→", Description: "Move"},
		{Key: "+/-", Description: "Adjust"},
		{Key: "0-9", Description: "Type"},
		{Key: "g", Description: "Regenerate"},
		{Key: "s", Description: "Save"},
		{Key: "p", Description: "Progress"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *TableEditScreen) field() quota.Field {
	return quota.Fields()[s.col]
}

func (s *TableEditScreen) current() (quota.Row, bool) {
	if s.row < 0 || s.row >= len(s.section.Table.Rows) {
		return quota.Row{}, false
	}
	return s.section.Table.Rows[s.row], true
}

func (s *TableEditScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case screen.SavedMsg:
		if msg.Err != nil {
			s.status = "Save failed: " + msg.Err.Error()
		} else {
			s.status = fmt.Sprintf("Saved revision %d", msg.Revision)
		}
		return s, nil

	case tea.KeyMsg:
		if s.editing {
			return s.updateInput(msg)
		}
		return s.updateGrid(msg)
	}
	return s, nil
}

func (s *TableEditScreen) updateGrid(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()
	switch key {
	case "up", "k":
		if s.row > 0 {
			s.row--
		}
	case "down", "j":
		if s.row < len(s.section.Table.Rows)-1 {
			s.row++
		}
	case "left", "h":
		if s.col > 0 {
			s.col--
		}
	case "right", "l", "tab":
		if s.col < len(quota.Fields())-1 {
			s.col++
		}
	case "+", "=":
		s.adjust(1)
	case "-", "_":
		s.adjust(-1)
	case "enter":
		if r, ok := s.current(); ok {
			s.startInput(strconv.Itoa(r.Get(s.field())))
		}
	case "g":
		if err := s.section.Generate(s.env.Gen); err != nil {
			s.status = err.Error()
		} else {
			s.status = "Table regenerated"
			s.edited()
		}
	case "s":
		cmd := s.env.SaveCmd()
		if cmd == nil {
			s.status = "No store configured"
			return s, nil
		}
		s.status = "Saving..."
		return s, cmd
	case "p":
		// Progress takes the editor's place; Esc from it returns to the sections.
		sec := s.section
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: progress.New(sec)} }
	default:
		if len(key) == 1 && key[0] >= '0' && key[0] <= '9' {
			if _, ok := s.current(); ok {
				s.startInput(key)
			}
		}
	}
	return s, nil
}

func (s *TableEditScreen) updateInput(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	switch msg.String() {
	case "esc":
		s.editing = false
		return s, nil
	case "enter":
		v, ok := s.input.Parse()
		if !ok {
			return s, nil
		}
		s.editing = false
		s.set(v)
		return s, nil
	}
	var cmd tea.Cmd
	s.input, cmd = s.input.Update(msg)
	return s, cmd
}

func (s *TableEditScreen) startInput(initial string) {
	s.input = components.NewNumberInput(s.field().Label(), 0, maxCell)
	s.input.Reset(initial)
	s.editing = true
}

func (s *TableEditScreen) adjust(delta int) {
	r, ok := s.current()
	if !ok {
		return
	}
	v := r.Get(s.field()) + delta
	if v < 0 {
		v = 0
	}
	s.set(v)
}

func (s *TableEditScreen) set(v int) {
	r, ok := s.current()
	if !ok {
		return
	}
	res, err := s.section.EditRow(r.Code, s.field(), v)
	if err != nil {
		s.status = err.Error()
		return
	}
	s.result = res
	s.status = fmt.Sprintf("%s %s = %d", r.Code, s.field().Label(), v)
	s.env.Draft.Touch()
}

func (s *TableEditScreen) edited() {
	s.result = s.section.Validate()
	s.env.Draft.Touch()
}

func (s *TableEditScreen) View(width, height int) string {
	var b strings.Builder
	compact := layout.IsCompactWidth(width)

	b.WriteString(s.renderTable(compact))
	b.WriteString("\n\n")
	b.WriteString(s.renderResult())

	if s.editing {
		b.WriteString("\n\n")
		b.WriteString(s.input.View())
	}
	if s.status != "" {
		b.WriteString("\n\n")
		b.WriteString(theme.Hint.Render(s.status))
	}

	return lipgloss.NewStyle().Padding(1, 2).Render(b.String())
}

const cellWidth = 8

// maxCell bounds typed values; no quota comes close.
const maxCell = 999

func (s *TableEditScreen) renderTable(compact bool) string {
	nameWidth := 22
	if compact {
		nameWidth = 0
	}

	var b strings.Builder
	head := fmt.Sprintf("%-8s", "Chapter")
	if nameWidth > 0 {
		head += fmt.Sprintf("%-*s", nameWidth, "Name")
	}
	for _, f := range quota.Fields() {
		head += fmt.Sprintf("%*s", cellWidth, f.Label())
	}
	b.WriteString(theme.ColumnHeader.Render(head))
	b.WriteString("\n")

	for i, r := range s.section.Table.Rows {
		line := theme.Body.Render(fmt.Sprintf("%-8s", r.Code))
		if nameWidth > 0 {
			line += theme.Subtitle.Render(fmt.Sprintf("%-*s", nameWidth, truncate(r.Name, nameWidth-2)))
		}
		for j, f := range quota.Fields() {
			cell := fmt.Sprintf("%*d", cellWidth, r.Get(f))
			if i == s.row && j == s.col {
				line += theme.Cursor.Render(cell)
			} else {
				line += theme.Body.Render(cell)
			}
		}
		if r.DifficultySum() != r.Total() {
			line += theme.Incorrect.Render("  ✗")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	one, two := s.section.Table.Sums()
	easy, medium, hard := s.section.Table.RequiredDifficulty()
	label := fmt.Sprintf("%-8s", "Total")
	if nameWidth > 0 {
		label += strings.Repeat(" ", nameWidth)
	}
	b.WriteString(theme.ColumnHeader.Render(label))
	b.WriteString(sumCell(one, quota.DivisionOneTotal) + sumCell(two, quota.DivisionTwoTotal))
	b.WriteString(theme.ColumnHeader.Render(fmt.Sprintf("%*d%*d%*d", cellWidth, easy, cellWidth, medium, cellWidth, hard)))
	return b.String()
}

func sumCell(got, want int) string {
	cell := fmt.Sprintf("%*d", cellWidth, got)
	if got != want {
		return theme.Incorrect.Render(cell)
	}
	return theme.Correct.Render(cell)
}

func (s *TableEditScreen) renderResult() string {
	if s.result.Valid {
		return theme.Correct.Render("✓ Table is valid")
	}
	lines := make([]string, 0, len(s.result.Errors))
	for _, e := range s.result.Errors {
		lines = append(lines, theme.Incorrect.Render("✗ ")+theme.Body.Render(e))
	}
	return strings.Join(lines, "\n")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
