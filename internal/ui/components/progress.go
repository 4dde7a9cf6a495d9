package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/examdraft/internal/ui/theme"
)

// ProgressBar displays a horizontal count-against-target bar.
type ProgressBar struct {
	Label    string
	Current  int
	Target   int
	Width    int
	ShowFrac bool
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, current, target, width int) ProgressBar {
	return ProgressBar{
		Label:    label,
		Current:  current,
		Target:   target,
		Width:    width,
		ShowFrac: true,
	}
}

// Percent returns current/target clamped to [0, 1]. A zero target counts
// as complete.
func (p ProgressBar) Percent() float64 {
	if p.Target <= 0 {
		return 1
	}
	f := float64(p.Current) / float64(p.Target)
	if f > 1 {
		return 1
	}
	if f < 0 {
		return 0
	}
	return f
}

// View renders the progress bar. An overfilled bar is drawn in the error
// color.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += theme.Body.Render(p.Label) + "  "
	}

	labelWidth := lipgloss.Width(result)
	fracWidth := 0
	if p.ShowFrac {
		fracWidth = 8 // "  12/20"
	}

	barWidth := p.Width - labelWidth - fracWidth
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * p.Percent())
	if filled > barWidth {
		filled = barWidth
	}
	empty := barWidth - filled

	fill := theme.ProgressFilled
	if p.Current > p.Target {
		fill = theme.ProgressOver
	}
	result += fill.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", empty))

	if p.ShowFrac {
		style := lipgloss.NewStyle().Foreground(theme.TextDim)
		if p.Current == p.Target {
			style = lipgloss.NewStyle().Foreground(theme.Success)
		}
		result += style.Render(fmt.Sprintf("  %d/%d", p.Current, p.Target))
	}

	return result
}
