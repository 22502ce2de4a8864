package store

import (
	"context"
	"time"
)

// AttemptData is the payload for recording one graded attempt.
type AttemptData struct {
	SessionID      string
	QuizID         string
	CourseID       string
	QuizTitle      string
	CourseTitle    string
	Score          float64
	CorrectCount   int
	TotalQuestions int
	Passed         bool
	DurationSecs   int
	Trigger        string // "manual" or "timeout"
}

// Attempt is a recorded attempt as read back for the history view.
type Attempt struct {
	Sequence  int64
	Timestamp time.Time
	AttemptData
}

// AttemptRepo stores and queries local attempt history.
type AttemptRepo interface {
	// Append records a graded attempt. Best-effort bookkeeping: the
	// caller logs failures and moves on.
	Append(ctx context.Context, data AttemptData) error

	// Recent returns up to limit attempts, newest first.
	Recent(ctx context.Context, limit int) ([]Attempt, error)

	// ForQuiz returns all attempts at one quiz, newest first.
	ForQuiz(ctx context.Context, quizID string) ([]Attempt, error)
}
