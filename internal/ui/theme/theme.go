package theme

import (
	"charm.land/lipgloss/v2"
)

// Color palette — calm, classroom-adjacent
var (
	Primary   = lipgloss.Color("#3B82F6") // Blue
	Secondary = lipgloss.Color("#10B981") // Emerald
	Accent    = lipgloss.Color("#F59E0B") // Amber
	Success   = lipgloss.Color("#22C55E") // Green
	Error     = lipgloss.Color("#EF4444") // Red
	Warning   = lipgloss.Color("#F97316") // Orange
	Text      = lipgloss.Color("#F9FAFB") // Near white
	TextDim   = lipgloss.Color("#9CA3AF") // Gray
	BgCard    = lipgloss.Color("#1F2937") // Dark slate
	Border    = lipgloss.Color("#374151") // Slate
)

// Typography
var (
	Title = lipgloss.NewStyle().
		Bold(true).
		Foreground(Primary).
		Align(lipgloss.Center)

	Subtitle = lipgloss.NewStyle().
			Foreground(TextDim).
			Align(lipgloss.Center)

	Body = lipgloss.NewStyle().
		Foreground(Text)

	Hint = lipgloss.NewStyle().
		Foreground(TextDim).
		Italic(true)
)

// Inline text styles used by screen views.
var (
	Heading     = lipgloss.NewStyle().Bold(true).Foreground(Primary)
	BodyText    = lipgloss.NewStyle().Foreground(Text)
	DimText     = lipgloss.NewStyle().Foreground(TextDim)
	AccentText  = lipgloss.NewStyle().Foreground(Accent)
	WarningText = lipgloss.NewStyle().Foreground(Warning)
	SuccessText = lipgloss.NewStyle().Foreground(Success)
	ErrorText   = lipgloss.NewStyle().Foreground(Error)
)

// States
var (
	Selected = lipgloss.NewStyle().
			Foreground(Primary).
			Bold(true)

	Unselected = lipgloss.NewStyle().
			Foreground(Text)

	Correct = lipgloss.NewStyle().
		Foreground(Success).
		Bold(true)

	Incorrect = lipgloss.NewStyle().
			Foreground(Error).
			Bold(true)

	Card = lipgloss.NewStyle().
		Background(BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(Border).
		Padding(1, 2)
)
