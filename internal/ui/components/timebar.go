package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/kurso-app/kurso/internal/ui/theme"
)

// RenderTimeBar renders the countdown as "M:SS" plus a shrinking bar.
// The bar turns to the warning color once low is true.
func RenderTimeBar(remaining, total, width int, low bool) string {
	if total <= 0 {
		total = 1
	}
	if remaining < 0 {
		remaining = 0
	}

	mins := remaining / 60
	secs := remaining % 60
	clock := fmt.Sprintf("%d:%02d", mins, secs)

	barWidth := width - len(clock) - 4
	if barWidth < 10 {
		return lipgloss.NewStyle().Foreground(timeColor(low)).Bold(low).Render(clock)
	}

	filled := barWidth * remaining / total
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)

	return lipgloss.NewStyle().Foreground(timeColor(low)).Bold(low).Render(clock) +
		"  " +
		lipgloss.NewStyle().Foreground(timeColor(low)).Render(bar)
}

func timeColor(low bool) color.Color {
	if low {
		return theme.Warning
	}
	return theme.Secondary
}
