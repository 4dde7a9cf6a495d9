// Package theme holds the colors and text styles shared by every screen.
// Tables dominate the editor, so the palette favors contrast over color.
package theme

import "charm.land/lipgloss/v2"

var (
	Primary = lipgloss.Color("#60A5FA") // blue, cursor and titles
	Fill    = lipgloss.Color("#2DD4BF") // teal, progress under target
	Accent  = lipgloss.Color("#FBBF24") // amber, warnings
	Success = lipgloss.Color("#4ADE80")
	Error   = lipgloss.Color("#F87171")
	Text    = lipgloss.Color("#E5E7EB")
	TextDim = lipgloss.Color("#9CA3AF")
	BgCard  = lipgloss.Color("#111827")
	Border  = lipgloss.Color("#374151")
)

// Text styles.
var (
	Title        = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	Subtitle     = lipgloss.NewStyle().Foreground(TextDim)
	Body         = lipgloss.NewStyle().Foreground(Text)
	Hint         = lipgloss.NewStyle().Foreground(TextDim).Italic(true)
	ColumnHeader = lipgloss.NewStyle().Foreground(TextDim).Bold(true).Underline(true)
	Card         = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(Border).Padding(0, 1)
)

// Selection and validation states. Correct and Incorrect mark quotas that
// are met or broken; Warning marks soft difficulty mismatches.
var (
	Selected   = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	Unselected = lipgloss.NewStyle().Foreground(Text)
	Cursor     = lipgloss.NewStyle().Background(Primary).Foreground(BgCard).Bold(true)
	Correct    = lipgloss.NewStyle().Foreground(Success).Bold(true)
	Incorrect  = lipgloss.NewStyle().Foreground(Error).Bold(true)
	Warning    = lipgloss.NewStyle().Foreground(Accent)
)

// Progress bar cells: under target, over target and empty.
var (
	ProgressFilled = lipgloss.NewStyle().Background(Fill)
	ProgressOver   = lipgloss.NewStyle().Background(Error)
	ProgressEmpty  = lipgloss.NewStyle().Background(Border)
)
