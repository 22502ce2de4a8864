package session

import (
	"context"
	"errors"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/kurso-app/kurso/internal/api"
	"github.com/kurso-app/kurso/internal/quiz"
	"github.com/kurso-app/kurso/internal/router"
	"github.com/kurso-app/kurso/internal/screen"
	"github.com/kurso-app/kurso/internal/screens"
	"github.com/kurso-app/kurso/internal/store"
)

// mockQuizAPI implements api.QuizAPI for testing.
type mockQuizAPI struct {
	quiz      *quiz.Quiz
	result    *quiz.Result
	submitErr error
	submits   []api.SubmitRequest
}

func (m *mockQuizAPI) GetQuiz(_ context.Context, _ string) (*quiz.Quiz, error) {
	return m.quiz, nil
}

func (m *mockQuizAPI) Submit(_ context.Context, req api.SubmitRequest) (*quiz.Result, error) {
	m.submits = append(m.submits, req)
	if m.submitErr != nil {
		return nil, m.submitErr
	}
	return m.result, nil
}

// mockCourseAPI implements api.CourseAPI for testing.
type mockCourseAPI struct {
	course *api.Course
}

func (m *mockCourseAPI) GetCourse(_ context.Context, _ string) (*api.Course, error) {
	return m.course, nil
}
func (m *mockCourseAPI) ListCourses(_ context.Context) ([]api.Course, error) { return nil, nil }
func (m *mockCourseAPI) ListQuizzes(_ context.Context, _ string) ([]api.QuizSummary, error) {
	return nil, nil
}

// mockEnrollmentAPI implements api.EnrollmentAPI for testing.
type mockEnrollmentAPI struct {
	enrollment *api.Enrollment
	updates    []int
	updateErr  error
}

func (m *mockEnrollmentAPI) GetEnrollment(_ context.Context, _, _ string) (*api.Enrollment, error) {
	return m.enrollment, nil
}

func (m *mockEnrollmentAPI) UpdateProgress(_ context.Context, _, _ string, percent int) error {
	m.updates = append(m.updates, percent)
	return m.updateErr
}

// mockAttemptRepo implements store.AttemptRepo for testing.
type mockAttemptRepo struct {
	appended []store.AttemptData
}

func (m *mockAttemptRepo) Append(_ context.Context, data store.AttemptData) error {
	m.appended = append(m.appended, data)
	return nil
}
func (m *mockAttemptRepo) Recent(_ context.Context, _ int) ([]store.Attempt, error) {
	return nil, nil
}
func (m *mockAttemptRepo) ForQuiz(_ context.Context, _ string) ([]store.Attempt, error) {
	return nil, nil
}

// stubScreen stands in for the course screen in redirect tests.
type stubScreen struct{}

func (stubScreen) Init() tea.Cmd                           { return nil }
func (stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return stubScreen{}, nil }
func (stubScreen) View(int, int) string                    { return "" }
func (stubScreen) Title() string                           { return "stub" }

func keyPress(r rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: r, Text: string(r)}
}

func specialKey(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func testQuiz() *quiz.Quiz {
	return &quiz.Quiz{
		ID:           "quiz-1",
		CourseID:     "course-1",
		Title:        "Go Basics",
		PassingScore: 70,
		TimeLimit:    5,
		Questions: []quiz.Question{
			{Prompt: "Q1", Options: []string{"a", "b", "c"}},
			{Prompt: "Q2", Options: []string{"x", "y", "z"}},
		},
	}
}

func testScreen() (*Screen, *mockQuizAPI, *mockEnrollmentAPI, *mockAttemptRepo) {
	quizzes := &mockQuizAPI{
		quiz: testQuiz(),
		result: &quiz.Result{
			Score:          100,
			TotalQuestions: 2,
			CorrectCount:   2,
			Passed:         true,
		},
	}
	enrollments := &mockEnrollmentAPI{
		enrollment: &api.Enrollment{UserID: "learner-1", CourseID: "course-1", Progress: 40},
	}
	attempts := &mockAttemptRepo{}

	deps := Deps{
		Deps: screens.Deps{
			Quizzes:     quizzes,
			Courses:     &mockCourseAPI{course: &api.Course{ID: "course-1", Title: "Go"}},
			Enrollments: enrollments,
			Attempts:    attempts,
			UserID:      "learner-1",
		},
		CourseScreen: func(_, _ string) screen.Screen {
			return stubScreen{}
		},
	}
	return New(deps, "course-1", "quiz-1"), quizzes, enrollments, attempts
}

// loaded drives the screen through a successful load.
func loaded(s *Screen) *Screen {
	scr, _ := s.Update(loadedMsg{
		Quiz:       testQuiz(),
		Course:     &api.Course{ID: "course-1", Title: "Go"},
		Enrollment: &api.Enrollment{UserID: "learner-1", CourseID: "course-1", Progress: 40},
	})
	return scr.(*Screen)
}

// started drives the screen through load plus the start confirmation.
func started(s *Screen) *Screen {
	s = loaded(s)
	scr, _ := s.Update(specialKey(tea.KeyEnter))
	return scr.(*Screen)
}

func TestLoad_CreatesUnstartedSession(t *testing.T) {
	s, _, _, _ := testScreen()
	s = loaded(s)

	if s.sess == nil {
		t.Fatal("expected session after load")
	}
	if s.sess.Phase != quiz.PhaseAwaitingConfirm {
		t.Errorf("phase = %v, want PhaseAwaitingConfirm", s.sess.Phase)
	}
	if s.sess.RemainingSeconds != 300 {
		t.Errorf("remaining = %d, want 300", s.sess.RemainingSeconds)
	}
}

func TestLoad_NotEnrolledRedirects(t *testing.T) {
	s, _, _, _ := testScreen()

	_, cmd := s.Update(loadedMsg{NotEnrolled: true})
	if cmd == nil {
		t.Fatal("expected a redirect command")
	}
	if _, ok := cmd().(router.ReplaceScreenMsg); !ok {
		t.Errorf("expected ReplaceScreenMsg, got %T", cmd())
	}
	if s.sess != nil {
		t.Error("no session should exist without an enrollment")
	}
}

func TestLoad_ErrorIsTerminal(t *testing.T) {
	s, _, _, _ := testScreen()

	scr, _ := s.Update(loadedMsg{Err: errors.New("boom")})
	s = scr.(*Screen)
	if s.errMsg == "" {
		t.Error("expected error message")
	}
	if s.View(80, 24) == "" {
		t.Error("expected non-empty error view")
	}
}

func TestStart_BeginsCountdown(t *testing.T) {
	s, _, _, _ := testScreen()
	s = loaded(s)

	scr, cmd := s.Update(specialKey(tea.KeyEnter))
	s = scr.(*Screen)
	if s.sess.Phase != quiz.PhaseInProgress {
		t.Errorf("phase = %v, want PhaseInProgress", s.sess.Phase)
	}
	if cmd == nil {
		t.Error("expected a tick to be scheduled")
	}
}

func TestTick_StaleSessionIDDropped(t *testing.T) {
	s, _, _, _ := testScreen()
	s = started(s)
	before := s.sess.RemainingSeconds

	_, cmd := s.Update(tickMsg{SessionID: "someone-else"})
	if s.sess.RemainingSeconds != before {
		t.Error("stale tick must not consume time")
	}
	if cmd != nil {
		t.Error("stale tick must not reschedule")
	}
}

func TestTick_CountsDownAndReschedules(t *testing.T) {
	s, _, _, _ := testScreen()
	s = started(s)
	before := s.sess.RemainingSeconds

	_, cmd := s.Update(tickMsg{SessionID: s.sess.ID})
	if s.sess.RemainingSeconds != before-1 {
		t.Errorf("remaining = %d, want %d", s.sess.RemainingSeconds, before-1)
	}
	if cmd == nil {
		t.Error("expected the next tick to be scheduled")
	}
}

func TestTick_ExpiryAutoSubmits(t *testing.T) {
	s, quizzes, _, _ := testScreen()
	s = started(s)
	s.sess.RemainingSeconds = 1

	_, cmd := s.Update(tickMsg{SessionID: s.sess.ID})
	if s.sess.Phase != quiz.PhaseSubmitting {
		t.Fatalf("phase = %v, want PhaseSubmitting", s.sess.Phase)
	}
	if cmd == nil {
		t.Fatal("expected a submit command")
	}

	// Run the batch: one of the commands performs the submission.
	runCmds(t, s, cmd)
	if len(quizzes.submits) != 1 {
		t.Fatalf("submits = %d, want 1", len(quizzes.submits))
	}
	if s.sess.Phase != quiz.PhaseCompleted {
		t.Errorf("phase = %v, want PhaseCompleted", s.sess.Phase)
	}
}

func TestSubmit_UnansweredNeedsConfirmation(t *testing.T) {
	s, quizzes, _, _ := testScreen()
	s = started(s)

	scr, _ := s.Update(keyPress('s'))
	s = scr.(*Screen)
	if !s.confirming {
		t.Fatal("expected the unanswered-questions dialog")
	}
	if s.sess.Phase != quiz.PhaseInProgress {
		t.Error("declining must not leave PhaseInProgress")
	}

	// Decline keeps the attempt going.
	scr, _ = s.Update(keyPress('n'))
	s = scr.(*Screen)
	if s.confirming {
		t.Error("dialog should close on decline")
	}
	if len(quizzes.submits) != 0 {
		t.Error("declined submit must not reach the backend")
	}

	// Accept proceeds.
	scr, _ = s.Update(keyPress('s'))
	s = scr.(*Screen)
	_, cmd := s.Update(keyPress('y'))
	if s.sess.Phase != quiz.PhaseSubmitting {
		t.Errorf("phase = %v, want PhaseSubmitting", s.sess.Phase)
	}
	if cmd == nil {
		t.Error("expected a submit command")
	}
}

func TestSubmit_AllAnsweredSkipsConfirmation(t *testing.T) {
	s, _, _, _ := testScreen()
	s = started(s)
	s.sess.Select(0, "a")
	s.sess.Select(1, "y")

	scr, cmd := s.Update(keyPress('s'))
	s = scr.(*Screen)
	if s.confirming {
		t.Error("fully answered submit must not be gated")
	}
	if s.sess.Phase != quiz.PhaseSubmitting {
		t.Errorf("phase = %v, want PhaseSubmitting", s.sess.Phase)
	}
	if cmd == nil {
		t.Error("expected a submit command")
	}
}

func TestSubmit_FailureKeepsSessionRecoverable(t *testing.T) {
	s, quizzes, _, _ := testScreen()
	quizzes.submitErr = errors.New("network down")
	s = started(s)
	s.sess.Select(0, "a")
	s.sess.Select(1, "y")

	scr, cmd := s.Update(keyPress('s'))
	s = scr.(*Screen)

	var graded tea.Msg
	for _, m := range drain(cmd) {
		if _, ok := m.(gradedMsg); ok {
			graded = m
		}
	}
	if graded == nil {
		t.Fatal("expected a grading response")
	}
	scr, cmd = s.Update(graded)
	s = scr.(*Screen)

	if s.sess.Phase != quiz.PhaseInProgress {
		t.Errorf("phase = %v, want PhaseInProgress after failed submit", s.sess.Phase)
	}
	if s.sess.Answers[0] != "a" || s.sess.Answers[1] != "y" {
		t.Error("answers must survive a failed submit")
	}
	if s.notice == "" {
		t.Error("expected a failure notice")
	}
	if cmd == nil {
		t.Error("countdown should resume after a failed submit")
	}
}

func TestSubmit_FailureInvalidatesPendingTick(t *testing.T) {
	s, quizzes, _, _ := testScreen()
	quizzes.submitErr = errors.New("connection refused")
	s = started(s)
	s.sess.Select(0, "a")
	s.sess.Select(1, "y")

	// The running chain has a tick in flight when the submit starts.
	pending := tickMsg{SessionID: s.sess.ID, Gen: s.tickGen}

	scr, cmd := s.Update(keyPress('s'))
	s = scr.(*Screen)
	var graded tea.Msg
	for _, m := range drain(cmd) {
		if _, ok := m.(gradedMsg); ok {
			graded = m
		}
	}
	scr, cmd = s.Update(graded)
	s = scr.(*Screen)
	if cmd == nil {
		t.Fatal("countdown should resume after a failed submit")
	}
	before := s.sess.RemainingSeconds

	// The pre-submit tick arrives late: it must neither consume time
	// nor keep its chain alive, or the clock would drop 2 per second.
	_, stale := s.Update(pending)
	if s.sess.RemainingSeconds != before {
		t.Error("superseded tick must not consume time")
	}
	if stale != nil {
		t.Error("superseded tick must not reschedule")
	}

	// The resumed chain counts down at the normal rate.
	_, next := s.Update(tickMsg{SessionID: s.sess.ID, Gen: s.tickGen})
	if s.sess.RemainingSeconds != before-1 {
		t.Errorf("remaining = %d, want %d", s.sess.RemainingSeconds, before-1)
	}
	if next == nil {
		t.Error("expected the resumed chain to reschedule")
	}
}

func TestProgress_FailedUpdateLeavesCachedValue(t *testing.T) {
	s, _, enrollments, _ := testScreen()
	enrollments.updateErr = errors.New("backend down")
	s = started(s)
	s.sess.Select(0, "a")
	s.sess.Select(1, "y")

	scr, cmd := s.Update(keyPress('s'))
	s = scr.(*Screen)
	runCmds(t, s, cmd)

	if len(enrollments.updates) != 1 || enrollments.updates[0] != 50 {
		t.Errorf("progress updates = %v, want [50]", enrollments.updates)
	}
	if s.enrollment.Progress != 40 {
		t.Errorf("cached progress = %d, want 40 after a failed update", s.enrollment.Progress)
	}
}

func TestGraded_RecordsProgressAndHistory(t *testing.T) {
	s, _, enrollments, attempts := testScreen()
	s = started(s)
	s.sess.Select(0, "a")
	s.sess.Select(1, "y")

	scr, cmd := s.Update(keyPress('s'))
	s = scr.(*Screen)
	runCmds(t, s, cmd)

	if len(enrollments.updates) != 1 || enrollments.updates[0] != 50 {
		t.Errorf("progress updates = %v, want [50]", enrollments.updates)
	}
	if s.enrollment.Progress != 50 {
		t.Errorf("cached progress = %d, want 50 after a saved update", s.enrollment.Progress)
	}
	if len(attempts.appended) != 1 {
		t.Fatalf("attempts appended = %d, want 1", len(attempts.appended))
	}
	got := attempts.appended[0]
	if got.QuizID != "quiz-1" || !got.Passed || got.Trigger != "manual" {
		t.Errorf("unexpected attempt record: %+v", got)
	}
}

func TestRetry_OnlyAfterFailedResult(t *testing.T) {
	s, quizzes, _, _ := testScreen()
	quizzes.result = &quiz.Result{Score: 50, TotalQuestions: 2, CorrectCount: 1, Passed: false}
	s = started(s)
	s.sess.Select(0, "a")
	s.sess.Select(1, "y")
	oldID := s.sess.ID

	scr, cmd := s.Update(keyPress('s'))
	s = scr.(*Screen)
	runCmds(t, s, cmd)
	if s.sess.Phase != quiz.PhaseCompleted {
		t.Fatalf("phase = %v, want PhaseCompleted", s.sess.Phase)
	}

	scr, _ = s.Update(keyPress('r'))
	s = scr.(*Screen)
	if s.sess.Phase != quiz.PhaseAwaitingConfirm {
		t.Errorf("retry phase = %v, want PhaseAwaitingConfirm", s.sess.Phase)
	}
	if s.sess.ID == oldID {
		t.Error("retry must create a fresh session")
	}
	if len(s.sess.Answers) != 0 {
		t.Error("retry must clear answers")
	}
}

func TestAnswer_DigitSelectsAndAdvances(t *testing.T) {
	s, _, _, _ := testScreen()
	s = started(s)

	scr, _ := s.Update(keyPress('2'))
	s = scr.(*Screen)
	if got := s.sess.Answers[0]; got != "b" {
		t.Errorf("answer = %q, want %q", got, "b")
	}
	if s.cursor != 1 {
		t.Errorf("cursor = %d, want 1", s.cursor)
	}
}

func TestKeyHints_VaryByPhase(t *testing.T) {
	s, _, _, _ := testScreen()
	if len(s.KeyHints()) == 0 {
		t.Error("expected hints while loading")
	}
	s = started(s)
	if len(s.KeyHints()) == 0 {
		t.Error("expected hints in progress")
	}
}

// drain executes a command tree and returns the produced messages,
// flattening batches.
func drain(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		var msgs []tea.Msg
		for _, c := range batch {
			msgs = append(msgs, drain(c)...)
		}
		return msgs
	}
	return []tea.Msg{msg}
}

// runCmds feeds produced session messages back into the screen the way
// the runtime would.
func runCmds(t *testing.T, s *Screen, cmd tea.Cmd) {
	t.Helper()
	for _, msg := range drain(cmd) {
		switch msg.(type) {
		case gradedMsg, progressSavedMsg, attemptRecordedMsg:
			_, next := s.Update(msg)
			runCmds(t, s, next)
		}
	}
}
