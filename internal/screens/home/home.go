// Package home implements the landing screen.
package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/kurso-app/kurso/internal/router"
	"github.com/kurso-app/kurso/internal/screen"
	"github.com/kurso-app/kurso/internal/screens"
	"github.com/kurso-app/kurso/internal/screens/catalog"
	"github.com/kurso-app/kurso/internal/screens/history"
	"github.com/kurso-app/kurso/internal/ui/components"
	"github.com/kurso-app/kurso/internal/ui/layout"
	"github.com/kurso-app/kurso/internal/ui/theme"
)

const wordmark = `
  ██╗  ██╗██╗   ██╗██████╗ ███████╗ ██████╗
  ██║ ██╔╝██║   ██║██╔══██╗██╔════╝██╔═══██╗
  █████╔╝ ██║   ██║██████╔╝███████╗██║   ██║
  ██╔═██╗ ██║   ██║██╔══██╗╚════██║██║   ██║
  ██║  ██╗╚██████╔╝██║  ██║███████║╚██████╔╝
  ╚═╝  ╚═╝ ╚═════╝ ╚═╝  ╚═╝╚══════╝ ╚═════╝`

// HomeScreen is the landing screen with the main menu and a short
// summary of recent local activity.
type HomeScreen struct {
	menu      components.Menu
	attempts  int
	passed    int
	haveStats bool
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)

// New creates the home screen.
func New(deps screens.Deps) *HomeScreen {
	s := &HomeScreen{}

	if deps.Attempts != nil {
		if recent, err := deps.Attempts.Recent(context.Background(), 50); err == nil {
			s.haveStats = true
			s.attempts = len(recent)
			for _, a := range recent {
				if a.Passed {
					s.passed++
				}
			}
		}
	}

	s.menu = components.NewMenu([]components.MenuItem{
		{Label: "BROWSE COURSES", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: catalog.New(deps)}
			}
		}},
		{Label: "HISTORY", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: history.New(deps.Attempts)}
			}
		}},
		{Label: "QUIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	})
	return s
}

func (s *HomeScreen) Init() tea.Cmd { return nil }

func (s *HomeScreen) Title() string { return "Home" }

func (s *HomeScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *HomeScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Foreground(theme.Primary).Render(wordmark))
	b.WriteString("\n")
	b.WriteString(theme.DimText.Render("  learn from your terminal"))
	b.WriteString("\n\n")

	if s.haveStats && s.attempts > 0 {
		b.WriteString(theme.DimText.Render(fmt.Sprintf(
			"  %d recent attempt(s), %d passed", s.attempts, s.passed)))
		b.WriteString("\n\n")
	}

	b.WriteString(s.menu.View())
	return b.String()
}
