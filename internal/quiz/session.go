package quiz

import "time"

// Phase is the lifecycle state of a single quiz attempt.
type Phase int

const (
	PhaseLoading         Phase = iota // Fetching quiz and course data
	PhaseAwaitingConfirm              // Loaded; clock does not run until the learner starts
	PhaseInProgress                   // Countdown active, answers mutable
	PhaseSubmitting                   // Grading request in flight
	PhaseCompleted                    // Result available, session read-only
	PhaseError                        // Load failed; terminal
)

// Fallback budget when a quiz defines no time limit: two minutes per question.
const FallbackSecondsPerQuestion = 120

// LowTimeThreshold is the remaining-seconds mark at which the one-shot
// "time almost up" warning fires.
const LowTimeThreshold = 60

// SkipConfirmThreshold is the remaining-seconds mark at or below which a
// manual submit skips the unanswered-questions confirmation.
const SkipConfirmThreshold = 10

// SubmitTrigger distinguishes how a submission was initiated.
type SubmitTrigger int

const (
	TriggerManual  SubmitTrigger = iota
	TriggerTimeout               // countdown hit zero; never gated
)

// TickOutcome reports the side effects of a one-second tick.
type TickOutcome struct {
	// Warn is true on the single tick where remaining time first
	// reaches the low-time threshold.
	Warn bool
	// Expired is true on the tick where the countdown reaches zero;
	// the caller must auto-submit.
	Expired bool
}

// Session is the in-memory state of one quiz attempt. It is created
// fresh on every navigation to a quiz and discarded on navigation away;
// Retry builds a new Session rather than rewinding this one.
type Session struct {
	Quiz *Quiz

	// ID is the attempt UUID, used for local history bookkeeping.
	ID string

	// Answers maps question index to the chosen option value. A missing
	// key means unanswered; membership is the only test for it.
	Answers map[int]string

	// RemainingSeconds decreases only while Phase is PhaseInProgress.
	RemainingSeconds int

	// InitialSeconds is the countdown starting value, kept so Retry can
	// restore it.
	InitialSeconds int

	Phase  Phase
	Result *Result

	// LowTimeWarned latches after the low-time warning fires; it never
	// re-arms within a session.
	LowTimeWarned bool

	// StartedAt is set when the learner confirms the start.
	StartedAt time.Time
}

// NewSession builds a fresh attempt for q in the awaiting-confirmation
// phase. The countdown value comes from the quiz's time limit, or the
// per-question fallback when the quiz is unbounded.
func NewSession(q *Quiz, id string) *Session {
	secs := q.TimeLimit * 60
	if q.TimeLimit <= 0 {
		secs = FallbackSecondsPerQuestion * len(q.Questions)
	}
	return &Session{
		Quiz:             q,
		ID:               id,
		Answers:          make(map[int]string),
		RemainingSeconds: secs,
		InitialSeconds:   secs,
		Phase:            PhaseAwaitingConfirm,
	}
}

// Start confirms the attempt and begins consuming time.
func (s *Session) Start(now time.Time) {
	if s.Phase != PhaseAwaitingConfirm {
		return
	}
	s.Phase = PhaseInProgress
	s.StartedAt = now
}

// Tick advances the countdown by one second. It is a no-op outside
// PhaseInProgress, so a stale timer firing into an ended session cannot
// mutate it.
func (s *Session) Tick() TickOutcome {
	if s.Phase != PhaseInProgress || s.RemainingSeconds <= 0 {
		return TickOutcome{}
	}

	s.RemainingSeconds--

	var out TickOutcome
	if !s.LowTimeWarned && s.RemainingSeconds <= LowTimeThreshold {
		s.LowTimeWarned = true
		out.Warn = true
	}
	if s.RemainingSeconds == 0 {
		out.Expired = true
	}
	return out
}

// Select records the chosen option value for question i, overwriting
// any prior selection. Once a result exists the session is read-only
// and Select is inert.
func (s *Session) Select(i int, option string) {
	if s.Result != nil || s.Phase != PhaseInProgress {
		return
	}
	if i < 0 || i >= len(s.Quiz.Questions) {
		return
	}
	s.Answers[i] = option
}

// Answered reports whether question i has a recorded answer.
func (s *Session) Answered(i int) bool {
	_, ok := s.Answers[i]
	return ok
}

// AnsweredCount is derived from the answer map on every call; it is
// never stored.
func (s *Session) AnsweredCount() int {
	return len(s.Answers)
}

// UnansweredCount is the complement of AnsweredCount.
func (s *Session) UnansweredCount() int {
	return len(s.Quiz.Questions) - len(s.Answers)
}

// RequestSubmit gates a submission attempt. It returns needsConfirm
// when the learner must approve submitting with unanswered questions:
// only for manual submits with more than SkipConfirmThreshold seconds
// left on the clock. Timeout-triggered submits are never gated. When
// needsConfirm is false and ok is true the session has moved to
// PhaseSubmitting.
func (s *Session) RequestSubmit(trigger SubmitTrigger) (ok, needsConfirm bool) {
	if s.Phase != PhaseInProgress {
		return false, false
	}
	if trigger == TriggerManual && s.UnansweredCount() > 0 && s.RemainingSeconds > SkipConfirmThreshold {
		return false, true
	}
	s.Phase = PhaseSubmitting
	return true, false
}

// ResolveConfirm completes a gated submission. Declining returns the
// session to PhaseInProgress with answers untouched.
func (s *Session) ResolveConfirm(accept bool) (proceed bool) {
	if s.Phase != PhaseInProgress {
		return false
	}
	if !accept {
		return false
	}
	s.Phase = PhaseSubmitting
	return true
}

// CompleteSubmit installs the graded result and freezes the session.
func (s *Session) CompleteSubmit(r *Result) {
	if s.Phase != PhaseSubmitting {
		return
	}
	s.Result = r
	s.Phase = PhaseCompleted
}

// FailSubmit returns the session to PhaseInProgress after a grading
// call failure so the learner can retry without losing answers.
func (s *Session) FailSubmit() {
	if s.Phase != PhaseSubmitting {
		return
	}
	s.Phase = PhaseInProgress
}

// CanRetry reports whether a fresh attempt may be started: only after a
// completed, failed result.
func (s *Session) CanRetry() bool {
	return s.Phase == PhaseCompleted && s.Result != nil && !s.Result.Passed
}

// Retry returns a brand-new session for the same quiz: empty answers,
// unconfirmed, countdown back at the initial value, warning re-armed.
func (s *Session) Retry(id string) *Session {
	return NewSession(s.Quiz, id)
}
