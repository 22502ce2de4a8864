// Package course implements the course detail screen: description,
// enrollment progress and the course's quiz list.
package course

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/kurso-app/kurso/internal/api"
	"github.com/kurso-app/kurso/internal/router"
	"github.com/kurso-app/kurso/internal/screen"
	"github.com/kurso-app/kurso/internal/screens"
	"github.com/kurso-app/kurso/internal/screens/session"
	"github.com/kurso-app/kurso/internal/ui/layout"
	"github.com/kurso-app/kurso/internal/ui/theme"
)

type courseLoadedMsg struct {
	Course     *api.Course
	Quizzes    []api.QuizSummary
	Enrollment *api.Enrollment
	Err        error
}

// CourseScreen shows one course and lets the learner open its quizzes.
type CourseScreen struct {
	deps     screens.Deps
	courseID string

	course     *api.Course
	quizzes    []api.QuizSummary
	enrollment *api.Enrollment
	selected   int
	loaded     bool
	notice     string
	errMsg     string
}

var _ screen.Screen = (*CourseScreen)(nil)
var _ screen.KeyHintProvider = (*CourseScreen)(nil)

// New creates the course screen. notice is shown above the content,
// used by the not-enrolled redirect.
func New(deps screens.Deps, courseID, notice string) *CourseScreen {
	return &CourseScreen{deps: deps, courseID: courseID, notice: notice}
}

func (s *CourseScreen) Init() tea.Cmd {
	deps := s.deps
	courseID := s.courseID
	return func() tea.Msg {
		ctx := context.Background()

		course, err := deps.Courses.GetCourse(ctx, courseID)
		if err != nil {
			return courseLoadedMsg{Err: err}
		}
		quizzes, err := deps.Courses.ListQuizzes(ctx, courseID)
		if err != nil {
			return courseLoadedMsg{Err: err}
		}
		enrollment, err := deps.Enrollments.GetEnrollment(ctx, deps.UserID, courseID)
		if err != nil {
			return courseLoadedMsg{Err: err}
		}
		return courseLoadedMsg{Course: course, Quizzes: quizzes, Enrollment: enrollment}
	}
}

func (s *CourseScreen) Title() string {
	if s.course != nil {
		return s.course.Title
	}
	return "Course"
}

func (s *CourseScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Take quiz"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *CourseScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case courseLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.course = msg.Course
			s.quizzes = msg.Quizzes
			s.enrollment = msg.Enrollment
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
			if s.selected < len(s.quizzes)-1 {
				s.selected++
			}
		case "enter":
			return s.openQuiz()
		}
	}
	return s, nil
}

// openQuiz pushes the quiz session screen for the selected quiz. The
// session screen re-checks the enrollment itself; the early notice
// here just saves a round trip for learners who are clearly not
// enrolled.
func (s *CourseScreen) openQuiz() (screen.Screen, tea.Cmd) {
	if !s.loaded || len(s.quizzes) == 0 {
		return s, nil
	}
	if s.enrollment == nil {
		s.notice = "Enroll in this course to take its quizzes."
		return s, nil
	}

	deps := s.deps
	quizID := s.quizzes[s.selected].ID
	next := session.New(session.Deps{
		Deps: deps,
		CourseScreen: func(courseID, notice string) screen.Screen {
			return New(deps, courseID, notice)
		},
	}, s.courseID, quizID)
	return s, func() tea.Msg { return router.PushScreenMsg{Screen: next} }
}

func (s *CourseScreen) View(width, height int) string {
	if s.errMsg != "" {
		return theme.ErrorText.Render("\n\n  Could not load the course: " + s.errMsg)
	}
	if !s.loaded {
		return theme.DimText.Render("\n\n  Loading course...")
	}

	var b strings.Builder
	b.WriteString("\n")
	if s.notice != "" {
		b.WriteString(theme.WarningText.Render("  ⚠ " + s.notice))
		b.WriteString("\n\n")
	}

	b.WriteString(theme.Heading.Render("  " + s.course.Title))
	b.WriteString("\n")
	if s.course.Description != "" {
		b.WriteString(theme.DimText.Render("  " + s.course.Description))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	if s.enrollment != nil {
		b.WriteString(theme.BodyText.Render(fmt.Sprintf("  Progress: %d%%", s.enrollment.Progress)))
	} else {
		b.WriteString(theme.DimText.Render("  Not enrolled"))
	}
	b.WriteString("\n\n")

	if len(s.quizzes) == 0 {
		b.WriteString(theme.DimText.Render("  This course has no quizzes yet."))
		return b.String()
	}

	b.WriteString(theme.DimText.Render("  Quizzes"))
	b.WriteString("\n")
	for i, q := range s.quizzes {
		line := "    " + q.Title
		style := theme.BodyText
		if i == s.selected {
			line = "  ▸ " + q.Title
			style = theme.Heading
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
