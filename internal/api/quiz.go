package api

import (
	"context"
	"fmt"
	"net/url"

	"github.com/kurso-app/kurso/internal/quiz"
)

// QuizAPI is the grading collaborator consumed by the quiz screen.
// Scoring arithmetic lives entirely behind it.
type QuizAPI interface {
	GetQuiz(ctx context.Context, quizID string) (*quiz.Quiz, error)
	Submit(ctx context.Context, req SubmitRequest) (*quiz.Result, error)
}

// SubmitRequest packages one attempt for grading. Answers is sparse:
// unanswered questions are simply absent.
type SubmitRequest struct {
	QuizID  string         `json:"quiz_id"`
	UserID  string         `json:"user_id"`
	Answers map[int]string `json:"answers"`
}

// GetQuiz fetches a quiz definition. The raw payload is checked against
// the quiz JSON Schema before decoding, so a malformed backend response
// fails loudly here rather than as a nil-field panic mid-session.
func (c *Client) GetQuiz(ctx context.Context, quizID string) (*quiz.Quiz, error) {
	path := "/api/quizzes/" + url.PathEscape(quizID)

	raw, err := c.getRawRetry(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("fetch quiz %s: %w", quizID, err)
	}

	q, err := decodeQuiz(raw)
	if err != nil {
		return nil, fmt.Errorf("quiz %s: %w", quizID, err)
	}
	return q, nil
}

// Submit delegates grading to the backend and returns the result. Not
// retried: the UI keeps the session recoverable on failure instead.
func (c *Client) Submit(ctx context.Context, req SubmitRequest) (*quiz.Result, error) {
	var result quiz.Result
	path := "/api/quizzes/" + url.PathEscape(req.QuizID) + "/submit"
	if err := c.postJSON(ctx, "POST", path, req, &result); err != nil {
		return nil, fmt.Errorf("submit quiz %s: %w", req.QuizID, err)
	}
	return &result, nil
}
