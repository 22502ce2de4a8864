// Package catalog implements the course catalog screen.
package catalog

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/kurso-app/kurso/internal/api"
	"github.com/kurso-app/kurso/internal/router"
	"github.com/kurso-app/kurso/internal/screen"
	"github.com/kurso-app/kurso/internal/screens"
	"github.com/kurso-app/kurso/internal/screens/course"
	"github.com/kurso-app/kurso/internal/ui/layout"
	"github.com/kurso-app/kurso/internal/ui/theme"
)

type catalogLoadedMsg struct {
	Courses []api.Course
	Err     error
}

// CatalogScreen lists every course on the platform.
type CatalogScreen struct {
	deps     screens.Deps
	courses  []api.Course
	selected int
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*CatalogScreen)(nil)
var _ screen.KeyHintProvider = (*CatalogScreen)(nil)

// New creates the catalog screen.
func New(deps screens.Deps) *CatalogScreen {
	return &CatalogScreen{deps: deps}
}

func (s *CatalogScreen) Init() tea.Cmd {
	deps := s.deps
	return func() tea.Msg {
		courses, err := deps.Courses.ListCourses(context.Background())
		return catalogLoadedMsg{Courses: courses, Err: err}
	}
}

func (s *CatalogScreen) Title() string { return "Courses" }

func (s *CatalogScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Open"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *CatalogScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case catalogLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.courses = msg.Courses
		}
		s.loaded = true
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
		case "down", "j":
			if s.selected < len(s.courses)-1 {
				s.selected++
			}
		case "enter":
			if s.loaded && len(s.courses) > 0 {
				next := course.New(s.deps, s.courses[s.selected].ID, "")
				return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
			}
		}
	}
	return s, nil
}

func (s *CatalogScreen) View(width, height int) string {
	if s.errMsg != "" {
		return theme.ErrorText.Render("\n\n  Could not load courses: " + s.errMsg)
	}
	if !s.loaded {
		return theme.DimText.Render("\n\n  Loading courses...")
	}
	if len(s.courses) == 0 {
		return theme.DimText.Render("\n\n  No courses available yet.")
	}

	var b strings.Builder
	b.WriteString("\n")
	for i, c := range s.courses {
		line := "    " + c.Title
		style := theme.BodyText
		if i == s.selected {
			line = "  ▸ " + c.Title
			style = theme.Heading
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
		if c.Description != "" {
			b.WriteString(theme.DimText.Render("      " + c.Description))
			b.WriteString("\n")
		}
	}
	return b.String()
}
