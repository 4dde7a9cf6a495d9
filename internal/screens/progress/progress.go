// Package progress shows how far a section's selection is from its quotas.
package progress

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/examdraft/internal/draft"
	"github.com/abhisek/examdraft/internal/quota"
	"github.com/abhisek/examdraft/internal/router"
	"github.com/abhisek/examdraft/internal/screen"
	"github.com/abhisek/examdraft/internal/selection"
	"github.com/abhisek/examdraft/internal/ui/components"
	"github.com/abhisek/examdraft/internal/ui/layout"
	"github.com/abhisek/examdraft/internal/ui/theme"
)

// ProgressScreen renders live selection progress and the final verdict.
type ProgressScreen struct {
	section *draft.Section
	summary selection.Summary
	verdict selection.FinalResult
}

var _ screen.Screen = (*ProgressScreen)(nil)

// New creates a progress screen for section.
func New(section *draft.Section) *ProgressScreen {
	p := &ProgressScreen{section: section}
	p.refresh()
	return p
}

func (p *ProgressScreen) refresh() {
	p.summary = p.section.Progress()
	p.verdict = p.section.Verdict()
}

func (p *ProgressScreen) Init() tea.Cmd {
	p.refresh()
	return nil
}

func (p *ProgressScreen) Title() string {
	return "Progress · " + p.section.Name
}

func (p *ProgressScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Back"},
		{Key: "Esc", Description: "Back"},
	}
}

func (p *ProgressScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc", "q":
			return p, func() tea.Msg { return router.PopScreenMsg{} }
		}
	}
	return p, nil
}

func (p *ProgressScreen) View(width, height int) string {
	barWidth := (width - 8) / 2
	if barWidth < 20 {
		barWidth = 20
	}

	var sections []string

	sections = append(sections, theme.Title.Render("Divisions"))
	sections = append(sections,
		components.NewProgressBar("Division 1", p.summary.DivisionOne, quota.DivisionOneTotal, barWidth*2).View(),
		components.NewProgressBar("Division 2", p.summary.DivisionTwo, quota.DivisionTwoTotal, barWidth*2).View(),
	)

	sections = append(sections, "", theme.Title.Render("Chapters"))
	for _, code := range p.summary.Order {
		cp := p.summary.Chapters[code]
		mark := "  "
		if cp.Complete() {
			mark = theme.Correct.Render("✓ ")
		}
		one := components.NewProgressBar(fmt.Sprintf("%-7s D1", code), cp.SelectedOne, cp.RequiredOne, barWidth)
		two := components.NewProgressBar("D2", cp.SelectedTwo, cp.RequiredTwo, barWidth-4)
		sections = append(sections, mark+one.View()+"  "+two.View())
	}
	if n := p.summary.Unassigned(); n > 0 {
		sections = append(sections, theme.Warning.Render(fmt.Sprintf("  %d question(s) outside this section's chapters", n)))
	}

	if !layout.IsCompactHeight(height + layout.HeaderHeight + layout.FooterHeight) {
		sections = append(sections, "", theme.Title.Render("Difficulty"))
		for _, d := range selection.Difficulties() {
			band := p.summary.Difficulty[d]
			sections = append(sections, components.NewProgressBar(fmt.Sprintf("%-10s", d.Label()), band.Selected, band.Required, barWidth*2).View())
		}
	}

	sections = append(sections, "", p.renderVerdict())

	return lipgloss.NewStyle().Padding(1, 2).Render(strings.Join(sections, "\n"))
}

func (p *ProgressScreen) renderVerdict() string {
	var lines []string
	if p.verdict.IsValid {
		lines = append(lines, theme.Correct.Render("✓ Selection meets every quota"))
	} else {
		lines = append(lines, theme.Incorrect.Render(fmt.Sprintf("✗ %d problem(s)", len(p.verdict.Errors))))
		for _, e := range p.verdict.Errors {
			lines = append(lines, theme.Body.Render("  "+e))
		}
	}
	for _, w := range p.verdict.Warnings {
		lines = append(lines, theme.Warning.Render("! "+w))
	}
	return strings.Join(lines, "\n")
}
