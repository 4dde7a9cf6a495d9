package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/examdraft/internal/draft"
	"github.com/abhisek/examdraft/internal/quota"
	"github.com/abhisek/examdraft/internal/ui/theme"
)

// contentWidth returns the uniform inner width used for all blocks.
func contentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 90 {
		w = 90
	}
	if w < 20 {
		w = 20
	}
	return w
}

const menuWidth = 72

// sectionLabel summarizes a section in one menu line.
func sectionLabel(s *draft.Section) string {
	p := s.Progress()
	return fmt.Sprintf("%-14s %2d chapters   selected %2d/%d",
		s.Name, len(s.Chapters), p.Total, quota.DivisionOneTotal+quota.DivisionTwoTotal)
}

// sectionBadge reports the first unmet condition of a section, or ready.
func sectionBadge(s *draft.Section) (string, bool) {
	switch {
	case len(s.Table.Rows) == 0:
		return "no table", false
	case !s.Validate().Valid:
		return "table ✗", false
	case !s.Verdict().IsValid:
		return "selecting", false
	default:
		return "ready ✓", true
	}
}

func renderDraftCard(d *draft.Draft, cw int) string {
	title := theme.Title.Render(d.Code)
	desc := ""
	if d.Description != "" {
		desc = "\n" + theme.Subtitle.Render(d.Description)
	}
	meta := theme.Hint.Render(fmt.Sprintf("%d section(s) · format %s · updated %s",
		len(d.Sections), d.FormatVersion, d.UpdatedAt.Local().Format("2006-01-02 15:04")))
	return theme.Card.Width(cw).Render(title + desc + "\n" + meta)
}

func renderEmpty(cw int) string {
	return lipgloss.NewStyle().Width(cw).Render(
		theme.Hint.Render("No sections yet. Add one with `examdraft section add`."))
}

// renderIssues lists the draft's blocking problems, capped in compact mode.
func renderIssues(issues []string, cw int, compact bool) string {
	limit := 8
	if compact {
		limit = 3
	}
	lines := []string{theme.Incorrect.Render(fmt.Sprintf("%d issue(s) before export", len(issues)))}
	for i, issue := range issues {
		if i == limit {
			lines = append(lines, theme.Hint.Render(fmt.Sprintf("… and %d more", len(issues)-limit)))
			break
		}
		lines = append(lines, theme.Body.Render("  "+issue))
	}
	return lipgloss.NewStyle().Width(cw).Render(strings.Join(lines, "\n"))
}

func renderStatus(s string) string {
	return theme.Hint.Render(s)
}

// renderPage centers content horizontally in the content area.
func renderPage(content string, width, height int) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Padding(1, 2).
		Render(content)
}
