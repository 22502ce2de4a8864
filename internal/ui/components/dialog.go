package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/kurso-app/kurso/internal/ui/theme"
)

// RenderConfirm renders a centered yes/no dialog. The calling screen
// owns the Y/N key handling.
func RenderConfirm(width int, title, detail, yesLabel, noLabel string) string {
	var b strings.Builder
	b.WriteString("\n\n\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Bold(true).
		Render(title))
	b.WriteString("\n")
	if detail != "" {
		b.WriteString(lipgloss.NewStyle().
			Width(width).
			Align(lipgloss.Center).
			Foreground(theme.TextDim).
			Render(detail))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Success).
		Render("[Y] " + yesLabel))
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Render("[N] " + noLabel))

	return b.String()
}
