package session

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/kurso-app/kurso/internal/quiz"
	"github.com/kurso-app/kurso/internal/ui/components"
	"github.com/kurso-app/kurso/internal/ui/theme"
)

func (s *Screen) View(width, height int) string {
	switch {
	case s.errMsg != "":
		return s.viewError(width)
	case s.loading():
		return "\n\n  " + s.spin.View()
	}

	if s.confirming {
		n := s.sess.UnansweredCount()
		return components.RenderConfirm(width,
			fmt.Sprintf("%d question(s) still unanswered", n),
			"Submit the quiz anyway?",
			"Submit now", "Keep working")
	}

	switch s.sess.Phase {
	case quiz.PhaseAwaitingConfirm:
		return s.viewOverview(width)
	case quiz.PhaseSubmitting:
		return "\n\n  " + s.spin.View()
	case quiz.PhaseCompleted:
		return s.viewResult(width)
	default:
		return s.viewQuestion(width)
	}
}

func (s *Screen) viewError(width int) string {
	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(theme.ErrorText.Render("  Could not load the quiz."))
	b.WriteString("\n\n")
	b.WriteString(theme.DimText.Render("  " + s.errMsg))
	b.WriteString("\n\n")
	b.WriteString(theme.DimText.Render("  Press r to try again."))
	return b.String()
}

// viewOverview is the pre-start card: what the learner is about to
// take and the time budget. The clock is not running yet.
func (s *Screen) viewOverview(width int) string {
	q := s.sess.Quiz

	var b strings.Builder
	b.WriteString("\n")
	b.WriteString(theme.Heading.Render("  " + q.Title))
	b.WriteString("\n")
	if s.course != nil {
		b.WriteString(theme.DimText.Render("  " + s.course.Title))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	mins := s.sess.InitialSeconds / 60
	secs := s.sess.InitialSeconds % 60
	budget := fmt.Sprintf("%d min", mins)
	if secs != 0 {
		budget = fmt.Sprintf("%d min %d s", mins, secs)
	}

	rows := []string{
		fmt.Sprintf("Questions      %d", len(q.Questions)),
		fmt.Sprintf("Time limit     %s", budget),
		fmt.Sprintf("Passing score  %.0f%%", q.PassingScore),
	}
	for _, row := range rows {
		b.WriteString(theme.BodyText.Render("  " + row))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(theme.DimText.Render("  The countdown starts when you begin. Running out of"))
	b.WriteString("\n")
	b.WriteString(theme.DimText.Render("  time submits whatever you have answered."))
	b.WriteString("\n\n")
	b.WriteString(theme.AccentText.Render("  Press enter to begin."))
	return b.String()
}

func (s *Screen) viewQuestion(width int) string {
	q := s.sess.Quiz
	question := q.Questions[s.cursor]

	var b strings.Builder
	b.WriteString("\n  ")
	b.WriteString(components.RenderTimeBar(
		s.sess.RemainingSeconds, s.sess.InitialSeconds, width-4,
		s.sess.RemainingSeconds <= quiz.LowTimeThreshold))
	b.WriteString("\n")

	if s.notice != "" {
		b.WriteString(theme.WarningText.Render("  ⚠ " + s.notice))
		b.WriteString("\n")
	}
	b.WriteString("\n")

	b.WriteString(theme.DimText.Render(fmt.Sprintf("  Question %d of %d", s.cursor+1, len(q.Questions))))
	b.WriteString("   ")
	b.WriteString(s.renderIndex())
	b.WriteString("\n\n")

	b.WriteString(theme.BodyText.Bold(true).Render("  " + question.Prompt))
	b.WriteString("\n\n")

	selected := s.selectedValue(s.cursor)
	for i, opt := range question.Options {
		marker := "○"
		style := theme.BodyText
		if opt == selected {
			marker = "●"
			style = lipgloss.NewStyle().Foreground(theme.Secondary)
		}
		line := fmt.Sprintf("  %s %d. %s", marker, i+1, opt)
		if i == s.optCursor {
			line = "▸" + line[1:]
			style = style.Bold(true)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(theme.DimText.Render(fmt.Sprintf(
		"  %d of %d answered", s.sess.AnsweredCount(), len(q.Questions))))
	return b.String()
}

// renderIndex is the compact question index: answered questions are
// filled, the current one bracketed.
func (s *Screen) renderIndex() string {
	var parts []string
	for i := range s.sess.Quiz.Questions {
		mark := "○"
		if s.sess.Answered(i) {
			mark = "●"
		}
		if i == s.cursor {
			parts = append(parts, theme.AccentText.Render("["+mark+"]"))
		} else {
			parts = append(parts, theme.DimText.Render(mark))
		}
	}
	return strings.Join(parts, " ")
}

func (s *Screen) viewResult(width int) string {
	res := s.sess.Result
	q := s.sess.Quiz

	var b strings.Builder
	b.WriteString("\n")
	if res.Passed {
		b.WriteString(theme.SuccessText.Bold(true).Render("  ✓ PASSED"))
	} else {
		b.WriteString(theme.ErrorText.Bold(true).Render("  ✗ FAILED"))
	}
	b.WriteString(theme.DimText.Render(fmt.Sprintf("   %.0f%% (needed %.0f%%)  ·  %d/%d correct",
		res.Score, q.PassingScore, res.CorrectCount, res.TotalQuestions)))
	b.WriteString("\n\n")

	question := q.Questions[s.cursor]
	fb := res.FeedbackFor(s.cursor)

	b.WriteString(theme.DimText.Render(fmt.Sprintf("  Question %d of %d", s.cursor+1, len(q.Questions))))
	b.WriteString("   ")
	b.WriteString(s.renderReviewIndex())
	b.WriteString("\n\n")

	b.WriteString(theme.BodyText.Bold(true).Render("  " + question.Prompt))
	b.WriteString("\n\n")

	answer, answered := s.sess.Answers[s.cursor]
	switch {
	case !answered:
		b.WriteString(theme.DimText.Render("  Not answered"))
	case fb != nil && fb.Correct:
		b.WriteString(theme.SuccessText.Render("  ✓ Your answer: " + answer))
	default:
		b.WriteString(theme.ErrorText.Render("  ✗ Your answer: " + answer))
	}
	b.WriteString("\n")
	if fb != nil && fb.CorrectAnswer != "" {
		b.WriteString(theme.SuccessText.Render("    Correct answer: " + fb.CorrectAnswer))
		b.WriteString("\n")
	}

	if s.sess.CanRetry() {
		b.WriteString("\n")
		b.WriteString(theme.AccentText.Render("  Press r to try again with a fresh attempt."))
	}
	return b.String()
}

// renderReviewIndex marks each question correct or wrong.
func (s *Screen) renderReviewIndex() string {
	res := s.sess.Result
	var parts []string
	for i := range s.sess.Quiz.Questions {
		mark := "✗"
		style := theme.ErrorText
		if fb := res.FeedbackFor(i); fb != nil && fb.Correct {
			mark = "✓"
			style = theme.SuccessText
		}
		if i == s.cursor {
			parts = append(parts, theme.AccentText.Render("["+mark+"]"))
		} else {
			parts = append(parts, style.Render(mark))
		}
	}
	return strings.Join(parts, " ")
}

// selectedValue returns the recorded answer value for question i, or
// empty when unanswered.
func (s *Screen) selectedValue(i int) string {
	return s.sess.Answers[i]
}
