package session

import (
	"github.com/kurso-app/kurso/internal/api"
	"github.com/kurso-app/kurso/internal/quiz"
)

// loadedMsg carries the joined result of the enrollment check and the
// concurrent quiz/course fetches.
type loadedMsg struct {
	Quiz       *quiz.Quiz
	Course     *api.Course
	Enrollment *api.Enrollment

	// NotEnrolled means the precondition failed: no session is created
	// and the learner is redirected to the course page.
	NotEnrolled bool

	Err error
}

// tickMsg is the one-second countdown tick. SessionID ties the tick to
// the session that scheduled it, so a tick that outlives its session
// (navigation away, retry) is dropped instead of mutating fresh state.
// Gen identifies the tick chain within a session: a failed submit
// restarts the countdown under a new generation, so the tick that was
// pending before the submit cannot run alongside the resumed chain.
type tickMsg struct {
	SessionID string
	Gen       int
}

// gradedMsg is the grading collaborator's response.
type gradedMsg struct {
	Result  *quiz.Result
	Trigger quiz.SubmitTrigger
	Err     error
}

// progressSavedMsg reports the best-effort course-progress update.
// Progress is the value that was written; the cached enrollment only
// adopts it once the write succeeded.
type progressSavedMsg struct {
	Progress int
	Err      error
}

// attemptRecordedMsg reports the best-effort local history write.
type attemptRecordedMsg struct {
	Err error
}
