package quiz

import (
	"maps"
	"testing"
	"time"
)

func testQuiz(numQuestions, timeLimitMinutes int) *Quiz {
	q := &Quiz{
		ID:           "quiz-1",
		CourseID:     "course-1",
		Title:        "Checkpoint",
		PassingScore: 70,
		TimeLimit:    timeLimitMinutes,
	}
	for i := 0; i < numQuestions; i++ {
		q.Questions = append(q.Questions, Question{
			Prompt:  "prompt",
			Options: []string{"a", "b", "c", "d"},
		})
	}
	return q
}

func startedSession(numQuestions, timeLimitMinutes int) *Session {
	s := NewSession(testQuiz(numQuestions, timeLimitMinutes), "attempt-1")
	s.Start(time.Now())
	return s
}

func TestNewSession_TimeLimit(t *testing.T) {
	s := NewSession(testQuiz(5, 10), "attempt-1")
	if s.RemainingSeconds != 600 {
		t.Errorf("RemainingSeconds = %d, want 600", s.RemainingSeconds)
	}
	if s.Phase != PhaseAwaitingConfirm {
		t.Errorf("Phase = %v, want PhaseAwaitingConfirm", s.Phase)
	}
}

func TestNewSession_FallbackBudget(t *testing.T) {
	// No time limit: 2 minutes per question.
	s := NewSession(testQuiz(5, 0), "attempt-1")
	if s.RemainingSeconds != 600 {
		t.Errorf("RemainingSeconds = %d, want 600 (120s * 5 questions)", s.RemainingSeconds)
	}
}

func TestTick_OnlyWhileInProgress(t *testing.T) {
	s := NewSession(testQuiz(3, 1), "attempt-1")

	s.Tick()
	if s.RemainingSeconds != 60 {
		t.Errorf("tick before start mutated clock: %d, want 60", s.RemainingSeconds)
	}

	s.Start(time.Now())
	s.Tick()
	if s.RemainingSeconds != 59 {
		t.Errorf("RemainingSeconds = %d, want 59", s.RemainingSeconds)
	}

	s.Phase = PhaseSubmitting
	s.Tick()
	if s.RemainingSeconds != 59 {
		t.Errorf("tick while submitting mutated clock: %d, want 59", s.RemainingSeconds)
	}
}

func TestTick_MonotonicNeverNegative(t *testing.T) {
	s := startedSession(1, 0) // 120 seconds
	expired := 0
	for i := 0; i < 300; i++ {
		out := s.Tick()
		if out.Expired {
			expired++
			// Simulate the auto-submit the screen performs.
			s.RequestSubmit(TriggerTimeout)
		}
		if s.RemainingSeconds < 0 {
			t.Fatalf("RemainingSeconds went negative: %d", s.RemainingSeconds)
		}
	}
	if expired != 1 {
		t.Errorf("Expired fired %d times, want exactly 1", expired)
	}
	if s.RemainingSeconds != 0 {
		t.Errorf("RemainingSeconds = %d, want 0", s.RemainingSeconds)
	}
}

func TestTick_WarningFiresOnce(t *testing.T) {
	s := startedSession(1, 2) // 120 seconds
	warns := 0
	warnedAt := -1
	for i := 0; i < 119; i++ {
		if out := s.Tick(); out.Warn {
			warns++
			warnedAt = s.RemainingSeconds
		}
	}
	if warns != 1 {
		t.Fatalf("warning fired %d times, want exactly 1", warns)
	}
	if warnedAt != 60 {
		t.Errorf("warning fired at %d seconds remaining, want 60", warnedAt)
	}
}

func TestTick_WarningRearmsOnRetryOnly(t *testing.T) {
	s := startedSession(1, 2)
	for i := 0; i < 119; i++ {
		s.Tick()
	}
	if !s.LowTimeWarned {
		t.Fatal("expected LowTimeWarned to be latched")
	}

	fresh := s.Retry("attempt-2")
	if fresh.LowTimeWarned {
		t.Error("retry must re-arm the low-time warning")
	}
}

func TestSelect_OverwritesAndIdempotent(t *testing.T) {
	s := startedSession(3, 1)

	s.Select(0, "a")
	s.Select(0, "b")
	if got := s.Answers[0]; got != "b" {
		t.Errorf("Answers[0] = %q, want %q (overwrite)", got, "b")
	}

	before := maps.Clone(s.Answers)
	s.Select(0, "b")
	if !maps.Equal(before, s.Answers) {
		t.Error("re-selecting the same option changed the answer map")
	}
	if len(s.Answers) != 1 {
		t.Errorf("len(Answers) = %d, want 1", len(s.Answers))
	}
}

func TestSelect_OutOfRangeIgnored(t *testing.T) {
	s := startedSession(3, 1)
	s.Select(-1, "a")
	s.Select(3, "a")
	if len(s.Answers) != 0 {
		t.Errorf("out-of-range selection recorded: %v", s.Answers)
	}
}

func TestSelect_InertAfterResult(t *testing.T) {
	s := startedSession(3, 1)
	s.Select(0, "a")

	s.RequestSubmit(TriggerTimeout)
	s.CompleteSubmit(&Result{Score: 33.3, TotalQuestions: 3, CorrectCount: 1})

	before := maps.Clone(s.Answers)
	s.Select(1, "b")
	s.Select(0, "c")
	if !maps.Equal(before, s.Answers) {
		t.Errorf("Answers mutated after result: %v, want %v", s.Answers, before)
	}
}

func TestDerivedCounts(t *testing.T) {
	s := startedSession(5, 1)
	s.Select(0, "a")
	s.Select(2, "c")

	if got := s.AnsweredCount(); got != 2 {
		t.Errorf("AnsweredCount = %d, want 2", got)
	}
	if got := s.UnansweredCount(); got != 3 {
		t.Errorf("UnansweredCount = %d, want 3", got)
	}
	if s.Answered(1) {
		t.Error("Answered(1) = true for an absent key")
	}
}

func TestRequestSubmit_GateBlocksWithTimeLeft(t *testing.T) {
	s := startedSession(5, 0)
	s.Select(0, "a")
	s.Select(1, "b")
	s.RemainingSeconds = 120

	ok, needsConfirm := s.RequestSubmit(TriggerManual)
	if ok || !needsConfirm {
		t.Fatalf("RequestSubmit = (%v, %v), want (false, true)", ok, needsConfirm)
	}
	if s.Phase != PhaseInProgress {
		t.Errorf("Phase = %v, want PhaseInProgress while gated", s.Phase)
	}

	// Declining leaves everything untouched.
	before := maps.Clone(s.Answers)
	if s.ResolveConfirm(false) {
		t.Error("declined confirmation must not proceed")
	}
	if s.Phase != PhaseInProgress {
		t.Errorf("Phase after decline = %v, want PhaseInProgress", s.Phase)
	}
	if !maps.Equal(before, s.Answers) {
		t.Error("decline mutated answers")
	}

	// Accepting proceeds.
	if !s.ResolveConfirm(true) {
		t.Error("accepted confirmation must proceed")
	}
	if s.Phase != PhaseSubmitting {
		t.Errorf("Phase after accept = %v, want PhaseSubmitting", s.Phase)
	}
}

func TestRequestSubmit_SkipsGateNearZero(t *testing.T) {
	s := startedSession(5, 0)
	s.Select(0, "a")
	s.RemainingSeconds = 5

	ok, needsConfirm := s.RequestSubmit(TriggerManual)
	if !ok || needsConfirm {
		t.Errorf("RequestSubmit = (%v, %v), want (true, false) with %ds left", ok, needsConfirm, s.RemainingSeconds)
	}
}

func TestRequestSubmit_TimeoutNeverGated(t *testing.T) {
	s := startedSession(5, 0)
	s.RemainingSeconds = 120 // plenty of time, zero answers

	ok, needsConfirm := s.RequestSubmit(TriggerTimeout)
	if !ok || needsConfirm {
		t.Errorf("RequestSubmit(timeout) = (%v, %v), want (true, false)", ok, needsConfirm)
	}
}

func TestRequestSubmit_AllAnsweredProceeds(t *testing.T) {
	s := startedSession(2, 1)
	s.Select(0, "a")
	s.Select(1, "b")

	ok, needsConfirm := s.RequestSubmit(TriggerManual)
	if !ok || needsConfirm {
		t.Errorf("RequestSubmit = (%v, %v), want (true, false) with all answered", ok, needsConfirm)
	}
}

func TestFailSubmit_Recoverable(t *testing.T) {
	s := startedSession(2, 1)
	s.Select(0, "a")
	s.Select(1, "b")
	s.RequestSubmit(TriggerManual)

	s.FailSubmit()
	if s.Phase != PhaseInProgress {
		t.Errorf("Phase = %v, want PhaseInProgress after failed grading call", s.Phase)
	}
	if len(s.Answers) != 2 {
		t.Errorf("answers lost on failed submit: %v", s.Answers)
	}
}

func TestRetry_ResetsCleanly(t *testing.T) {
	s := startedSession(4, 2)
	s.Select(0, "a")
	for s.RemainingSeconds > 0 {
		if out := s.Tick(); out.Expired {
			s.RequestSubmit(TriggerTimeout)
		}
	}
	s.CompleteSubmit(&Result{Score: 25, TotalQuestions: 4, CorrectCount: 1, Passed: false})

	if !s.CanRetry() {
		t.Fatal("expected CanRetry after a failed result")
	}

	fresh := s.Retry("attempt-2")
	if len(fresh.Answers) != 0 {
		t.Errorf("fresh Answers = %v, want empty", fresh.Answers)
	}
	if fresh.Phase != PhaseAwaitingConfirm {
		t.Errorf("fresh Phase = %v, want PhaseAwaitingConfirm", fresh.Phase)
	}
	if fresh.RemainingSeconds != s.InitialSeconds {
		t.Errorf("fresh RemainingSeconds = %d, want %d", fresh.RemainingSeconds, s.InitialSeconds)
	}
}

func TestCanRetry_OnlyAfterFailure(t *testing.T) {
	s := startedSession(2, 1)
	s.Select(0, "a")
	s.Select(1, "b")
	s.RequestSubmit(TriggerManual)
	s.CompleteSubmit(&Result{Score: 100, TotalQuestions: 2, CorrectCount: 2, Passed: true})

	if s.CanRetry() {
		t.Error("CanRetry = true after a passing result")
	}
}

func TestAdvanceProgress_Cap(t *testing.T) {
	tests := []struct {
		current, want int
	}{
		{0, 10},
		{50, 60},
		{90, 100},
		{95, 100},
		{100, 100},
	}
	for _, tt := range tests {
		if got := AdvanceProgress(tt.current); got != tt.want {
			t.Errorf("AdvanceProgress(%d) = %d, want %d", tt.current, got, tt.want)
		}
	}
}

func TestResult_FeedbackFor(t *testing.T) {
	r := &Result{Feedback: []Feedback{
		{QuestionIndex: 0, Correct: true},
		{QuestionIndex: 2, Correct: false, CorrectAnswer: "b"},
	}}

	if fb := r.FeedbackFor(2); fb == nil || fb.CorrectAnswer != "b" {
		t.Errorf("FeedbackFor(2) = %+v, want wrong answer revealing %q", fb, "b")
	}
	if fb := r.FeedbackFor(1); fb != nil {
		t.Errorf("FeedbackFor(1) = %+v, want nil", fb)
	}
}
