// Package layout draws the frame around every screen: a header bar with
// the draft status, the content area and a footer of key hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/examdraft/internal/ui/theme"
)

// The quota table needs roughly 80 columns to render without wrapping.
const (
	MinWidth  = 80
	MinHeight = 24

	HeaderHeight = 3
	FooterHeight = 3

	CompactWidthThreshold  = 100
	CompactHeightThreshold = 30
)

// KeyHint is one "key description" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

func IsCompactWidth(width int) bool {
	return width < CompactWidthThreshold
}

func IsCompactHeight(height int) bool {
	return height < CompactHeightThreshold
}

func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

func RenderMinSizeMessage(width, height int) string {
	return lipgloss.NewStyle().
		Align(lipgloss.Center, lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(fmt.Sprintf(
			"The quota table needs at least %d×%d.\nThis terminal is %d×%d.",
			MinWidth, MinHeight, width, height,
		))
}

// bar renders a full-width bordered strip.
func bar(content string, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}

// spread places left, center and right in inner columns, keeping center
// centered when there is room.
func spread(left, center, right string, inner int) string {
	lw, cw, rw := lipgloss.Width(left), lipgloss.Width(center), lipgloss.Width(right)
	leftGap := max((inner-cw)/2-lw, 1)
	rightGap := max(inner-lw-leftGap-cw-rw, 1)
	return left + strings.Repeat(" ", leftGap) + center + strings.Repeat(" ", rightGap) + right
}

// RenderHeader shows the app name, the screen breadcrumb and the draft
// code with its readiness mark.
func RenderHeader(title, code string, ready bool, width int) string {
	left := theme.Title.Render("  Examdraft")
	center := theme.Body.Render(title)

	mark := theme.Warning.Render("○ draft")
	if ready {
		mark = theme.Correct.Render("● ready")
	}
	right := theme.Subtitle.Render(code) + "  " + mark

	return bar(spread(left, center, right, max(width-4, 0)), width)
}

// RenderFooter shows key hints. A non-empty notice replaces them so that
// confirmations cannot be missed.
func RenderFooter(hints []KeyHint, notice string, width int) string {
	if notice != "" {
		return bar("  "+theme.Warning.Render(notice), width)
	}
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts, theme.Body.Bold(true).Render(h.Key)+" "+theme.Subtitle.Render(h.Description))
	}
	return bar("  "+strings.Join(parts, "   "), width)
}

// RenderFrame stacks header, content and footer, sizing the content to
// fill the remaining height.
func RenderFrame(header, content, footer string, width, height int) string {
	ch := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	body := lipgloss.NewStyle().Width(width).Height(ch).Render(content)
	return header + "\n" + body + "\n" + footer
}
