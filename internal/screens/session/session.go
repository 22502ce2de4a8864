// Package session implements the quiz-taking screen: loading, the
// start confirmation, the timed attempt itself, submission and the
// result review.
package session

import (
	"context"
	"log"
	"maps"
	"sync"
	"time"

	tea "charm.land/bubbletea/v2"
	"github.com/google/uuid"

	"github.com/kurso-app/kurso/internal/api"
	"github.com/kurso-app/kurso/internal/quiz"
	"github.com/kurso-app/kurso/internal/router"
	"github.com/kurso-app/kurso/internal/screen"
	"github.com/kurso-app/kurso/internal/screens"
	"github.com/kurso-app/kurso/internal/store"
	"github.com/kurso-app/kurso/internal/ui/components"
	"github.com/kurso-app/kurso/internal/ui/layout"
)

// Deps are the collaborators a quiz session needs.
type Deps struct {
	screens.Deps

	// CourseScreen builds the course screen used for the not-enrolled
	// redirect. Injected as a factory to keep the screen packages from
	// importing each other.
	CourseScreen func(courseID, notice string) screen.Screen
}

// Screen drives one quiz attempt from load to result.
type Screen struct {
	deps     Deps
	courseID string
	quizID   string

	sess       *quiz.Session
	course     *api.Course
	enrollment *api.Enrollment

	spin       components.Spinner
	cursor     int  // current question index
	optCursor  int  // highlighted option within the current question
	confirming bool // unanswered-questions dialog is open
	tickGen    int  // current tick chain; bumped whenever the chain restarts
	notice     string
	errMsg     string
}

var _ screen.Screen = (*Screen)(nil)
var _ screen.KeyHintProvider = (*Screen)(nil)

// New creates the screen for one quiz. Loading starts on Init.
func New(deps Deps, courseID, quizID string) *Screen {
	return &Screen{
		deps:     deps,
		courseID: courseID,
		quizID:   quizID,
		spin:     components.NewSpinner("Loading quiz..."),
	}
}

func (s *Screen) Title() string { return "Quiz" }

func popScreen() tea.Msg { return router.PopScreenMsg{} }

func (s *Screen) Init() tea.Cmd {
	return tea.Batch(s.spin.Init(), s.loadCmd())
}

// loadCmd checks the enrollment precondition, then fetches the quiz and
// course concurrently. The first failing fetch cancels the other.
func (s *Screen) loadCmd() tea.Cmd {
	deps := s.deps
	courseID, quizID := s.courseID, s.quizID

	return func() tea.Msg {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		enr, err := deps.Enrollments.GetEnrollment(ctx, deps.UserID, courseID)
		if err != nil {
			return loadedMsg{Err: err}
		}
		if enr == nil {
			return loadedMsg{NotEnrolled: true}
		}

		var (
			wg         sync.WaitGroup
			q          *quiz.Quiz
			c          *api.Course
			qErr, cErr error
		)
		wg.Add(2)
		go func() {
			defer wg.Done()
			q, qErr = deps.Quizzes.GetQuiz(ctx, quizID)
			if qErr != nil {
				cancel()
			}
		}()
		go func() {
			defer wg.Done()
			c, cErr = deps.Courses.GetCourse(ctx, courseID)
			if cErr != nil {
				cancel()
			}
		}()
		wg.Wait()

		if qErr != nil {
			return loadedMsg{Err: qErr}
		}
		if cErr != nil {
			return loadedMsg{Err: cErr}
		}
		return loadedMsg{Quiz: q, Course: c, Enrollment: enr}
	}
}

// tickCmd schedules the next countdown tick, stamped with the session
// and tick chain it belongs to.
func (s *Screen) tickCmd() tea.Cmd {
	id := s.sess.ID
	gen := s.tickGen
	return tea.Tick(time.Second, func(time.Time) tea.Msg {
		return tickMsg{SessionID: id, Gen: gen}
	})
}

func (s *Screen) submitCmd(trigger quiz.SubmitTrigger) tea.Cmd {
	quizzes := s.deps.Quizzes
	req := api.SubmitRequest{
		QuizID:  s.quizID,
		UserID:  s.deps.UserID,
		Answers: maps.Clone(s.sess.Answers),
	}
	return func() tea.Msg {
		res, err := quizzes.Submit(context.Background(), req)
		return gradedMsg{Result: res, Trigger: trigger, Err: err}
	}
}

// saveProgressCmd bumps the course progress after a graded attempt.
// Best effort: a failure is logged and never surfaced to the learner.
// The cached enrollment is only advanced once the write succeeds, so a
// failed update cannot make a later attempt bump from an unsaved value.
func (s *Screen) saveProgressCmd() tea.Cmd {
	if s.enrollment == nil {
		return nil
	}
	next := quiz.AdvanceProgress(s.enrollment.Progress)

	enrollments := s.deps.Enrollments
	userID, courseID := s.deps.UserID, s.courseID
	return func() tea.Msg {
		err := enrollments.UpdateProgress(context.Background(), userID, courseID, next)
		return progressSavedMsg{Progress: next, Err: err}
	}
}

// recordAttemptCmd appends the graded attempt to local history. Best
// effort like progress.
func (s *Screen) recordAttemptCmd(trigger quiz.SubmitTrigger) tea.Cmd {
	if s.deps.Attempts == nil {
		return nil
	}

	triggerName := "manual"
	if trigger == quiz.TriggerTimeout {
		triggerName = "timeout"
	}
	courseTitle := ""
	if s.course != nil {
		courseTitle = s.course.Title
	}
	data := store.AttemptData{
		SessionID:      s.sess.ID,
		QuizID:         s.quizID,
		CourseID:       s.courseID,
		QuizTitle:      s.sess.Quiz.Title,
		CourseTitle:    courseTitle,
		Score:          s.sess.Result.Score,
		CorrectCount:   s.sess.Result.CorrectCount,
		TotalQuestions: s.sess.Result.TotalQuestions,
		Passed:         s.sess.Result.Passed,
		DurationSecs:   s.sess.InitialSeconds - s.sess.RemainingSeconds,
		Trigger:        triggerName,
	}

	attempts := s.deps.Attempts
	return func() tea.Msg {
		return attemptRecordedMsg{Err: attempts.Append(context.Background(), data)}
	}
}

func (s *Screen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case loadedMsg:
		return s.handleLoaded(msg)

	case tickMsg:
		return s.handleTick(msg)

	case gradedMsg:
		return s.handleGraded(msg)

	case progressSavedMsg:
		if msg.Err != nil {
			log.Printf("session: progress update failed: %v", msg.Err)
		} else if s.enrollment != nil {
			s.enrollment.Progress = msg.Progress
		}
		return s, nil

	case attemptRecordedMsg:
		if msg.Err != nil {
			log.Printf("session: history write failed: %v", msg.Err)
		}
		return s, nil

	case tea.KeyMsg:
		return s.handleKey(msg)
	}

	if s.loading() || (s.sess != nil && s.sess.Phase == quiz.PhaseSubmitting) {
		var cmd tea.Cmd
		s.spin, cmd = s.spin.Update(msg)
		return s, cmd
	}
	return s, nil
}

func (s *Screen) loading() bool {
	return s.sess == nil && s.errMsg == ""
}

func (s *Screen) handleLoaded(msg loadedMsg) (screen.Screen, tea.Cmd) {
	if msg.Err != nil {
		s.errMsg = msg.Err.Error()
		return s, nil
	}
	if msg.NotEnrolled {
		next := s.deps.CourseScreen(s.courseID, "Enroll in this course to take its quizzes.")
		return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
	}

	s.course = msg.Course
	s.enrollment = msg.Enrollment
	s.sess = quiz.NewSession(msg.Quiz, uuid.NewString())
	return s, nil
}

func (s *Screen) handleTick(msg tickMsg) (screen.Screen, tea.Cmd) {
	// A tick from a torn-down or replaced session, or from a chain
	// superseded by a restart, is stale; drop it and do not
	// reschedule.
	if s.sess == nil || msg.SessionID != s.sess.ID || msg.Gen != s.tickGen || s.sess.Phase != quiz.PhaseInProgress {
		return s, nil
	}

	out := s.sess.Tick()
	if out.Warn {
		s.notice = "Less than a minute left!"
	}
	if out.Expired {
		if ok, _ := s.sess.RequestSubmit(quiz.TriggerTimeout); ok {
			s.confirming = false
			s.spin = components.NewSpinner("Time's up - submitting...")
			return s, tea.Batch(s.spin.Init(), s.submitCmd(quiz.TriggerTimeout))
		}
		return s, nil
	}
	return s, s.tickCmd()
}

func (s *Screen) handleGraded(msg gradedMsg) (screen.Screen, tea.Cmd) {
	if s.sess == nil || s.sess.Phase != quiz.PhaseSubmitting {
		return s, nil
	}

	if msg.Err != nil {
		s.sess.FailSubmit()
		s.notice = "Submission failed - check your connection and try again."
		log.Printf("session: submit failed: %v", msg.Err)
		// Resume the countdown under a new generation: the tick that
		// was pending when the submit started would otherwise double
		// the rate once it fires and reschedules.
		s.tickGen++
		return s, s.tickCmd()
	}

	s.sess.CompleteSubmit(msg.Result)
	s.notice = ""
	s.cursor = 0
	s.optCursor = 0
	return s, tea.Batch(s.saveProgressCmd(), s.recordAttemptCmd(msg.Trigger))
}

func (s *Screen) handleKey(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	key := msg.String()

	if s.errMsg != "" {
		switch key {
		case "r":
			s.errMsg = ""
			s.spin = components.NewSpinner("Loading quiz...")
			return s, s.Init()
		case "esc":
			return s, popScreen
		}
		return s, nil
	}

	if s.loading() {
		if key == "esc" {
			return s, popScreen
		}
		return s, nil
	}

	if s.confirming {
		switch key {
		case "y", "enter":
			s.confirming = false
			if s.sess.ResolveConfirm(true) {
				s.spin = components.NewSpinner("Submitting...")
				return s, tea.Batch(s.spin.Init(), s.submitCmd(quiz.TriggerManual))
			}
		case "n", "esc":
			s.confirming = false
			s.sess.ResolveConfirm(false)
		}
		return s, nil
	}

	switch s.sess.Phase {
	case quiz.PhaseAwaitingConfirm:
		switch key {
		case "enter", "s":
			s.sess.Start(time.Now())
			return s, s.tickCmd()
		case "esc":
			return s, popScreen
		}

	case quiz.PhaseInProgress:
		return s.handleProgressKey(key)

	case quiz.PhaseCompleted:
		return s.handleReviewKey(key)
	}

	// PhaseSubmitting ignores input.
	return s, nil
}

func (s *Screen) handleProgressKey(key string) (screen.Screen, tea.Cmd) {
	options := s.sess.Quiz.Questions[s.cursor].Options

	switch key {
	case "up", "k":
		if s.optCursor > 0 {
			s.optCursor--
		}
	case "down", "j":
		if s.optCursor < len(options)-1 {
			s.optCursor++
		}
	case "enter", "space":
		s.sess.Select(s.cursor, options[s.optCursor])
		s.advanceQuestion()
	case "1", "2", "3", "4", "5", "6", "7", "8", "9":
		idx := int(key[0] - '1')
		if idx < len(options) {
			s.sess.Select(s.cursor, options[idx])
			s.advanceQuestion()
		}
	case "right", "n", "tab":
		s.gotoQuestion(s.cursor + 1)
	case "left", "p":
		s.gotoQuestion(s.cursor - 1)
	case "s":
		ok, needsConfirm := s.sess.RequestSubmit(quiz.TriggerManual)
		if needsConfirm {
			s.confirming = true
			return s, nil
		}
		if ok {
			s.spin = components.NewSpinner("Submitting...")
			return s, tea.Batch(s.spin.Init(), s.submitCmd(quiz.TriggerManual))
		}
	case "esc":
		// Abandoning discards the session; the stamped tick protects
		// against the pending timer.
		return s, popScreen
	}
	return s, nil
}

func (s *Screen) handleReviewKey(key string) (screen.Screen, tea.Cmd) {
	switch key {
	case "right", "n", "down", "j":
		s.gotoQuestion(s.cursor + 1)
	case "left", "p", "up", "k":
		s.gotoQuestion(s.cursor - 1)
	case "r":
		if s.sess.CanRetry() {
			s.sess = s.sess.Retry(uuid.NewString())
			s.cursor = 0
			s.optCursor = 0
			s.notice = ""
		}
	case "esc":
		return s, popScreen
	}
	return s, nil
}

// advanceQuestion moves to the next question after a selection,
// staying on the last one when there is no next.
func (s *Screen) advanceQuestion() {
	if s.cursor < len(s.sess.Quiz.Questions)-1 {
		s.gotoQuestion(s.cursor + 1)
	} else {
		s.optCursor = s.selectedOption(s.cursor)
	}
}

// gotoQuestion jumps to question i and aligns the option cursor with
// any recorded answer.
func (s *Screen) gotoQuestion(i int) {
	if i < 0 || i >= len(s.sess.Quiz.Questions) {
		return
	}
	s.cursor = i
	s.optCursor = s.selectedOption(i)
}

// selectedOption returns the option index of the recorded answer for
// question i, or 0 when unanswered.
func (s *Screen) selectedOption(i int) int {
	answer, ok := s.sess.Answers[i]
	if !ok {
		return 0
	}
	for j, opt := range s.sess.Quiz.Questions[i].Options {
		if opt == answer {
			return j
		}
	}
	return 0
}

func (s *Screen) KeyHints() []layout.KeyHint {
	if s.errMsg != "" {
		return []layout.KeyHint{{Key: "r", Description: "retry"}, {Key: "esc", Description: "back"}}
	}
	if s.sess == nil {
		return []layout.KeyHint{{Key: "esc", Description: "back"}}
	}
	if s.confirming {
		return []layout.KeyHint{{Key: "y", Description: "submit anyway"}, {Key: "n", Description: "keep working"}}
	}

	switch s.sess.Phase {
	case quiz.PhaseAwaitingConfirm:
		return []layout.KeyHint{{Key: "enter", Description: "begin"}, {Key: "esc", Description: "back"}}
	case quiz.PhaseInProgress:
		return []layout.KeyHint{
			{Key: "↑/↓", Description: "option"},
			{Key: "enter", Description: "answer"},
			{Key: "←/→", Description: "question"},
			{Key: "s", Description: "submit"},
		}
	case quiz.PhaseCompleted:
		hints := []layout.KeyHint{{Key: "←/→", Description: "review"}}
		if s.sess.CanRetry() {
			hints = append(hints, layout.KeyHint{Key: "r", Description: "retry"})
		}
		return append(hints, layout.KeyHint{Key: "esc", Description: "back"})
	}
	return nil
}
