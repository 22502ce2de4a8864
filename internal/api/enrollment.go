package api

import (
	"context"
	"errors"
	"fmt"
	"net/url"
)

// Enrollment links a learner to a course with a progress percentage.
type Enrollment struct {
	UserID   string `json:"user_id"`
	CourseID string `json:"course_id"`
	Progress int    `json:"progress"` // 0-100
}

// EnrollmentAPI serves enrollment lookups and the best-effort progress
// bookkeeping performed after a graded attempt.
type EnrollmentAPI interface {
	// GetEnrollment returns (nil, nil) when the learner is not
	// enrolled in the course.
	GetEnrollment(ctx context.Context, userID, courseID string) (*Enrollment, error)
	UpdateProgress(ctx context.Context, userID, courseID string, percent int) error
}

// GetEnrollment looks up the learner's enrollment in a course. Absence
// is a normal outcome, not an error.
func (c *Client) GetEnrollment(ctx context.Context, userID, courseID string) (*Enrollment, error) {
	var e Enrollment
	path := "/api/enrollments/" + url.PathEscape(userID) + "/" + url.PathEscape(courseID)
	if err := c.getJSON(ctx, path, &e); err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("fetch enrollment: %w", err)
	}
	return &e, nil
}

// UpdateProgress writes the learner's course progress.
func (c *Client) UpdateProgress(ctx context.Context, userID, courseID string, percent int) error {
	path := "/api/enrollments/" + url.PathEscape(userID) + "/" + url.PathEscape(courseID) + "/progress"
	body := struct {
		Progress int `json:"progress"`
	}{Progress: percent}
	if err := c.postJSON(ctx, "PUT", path, body, nil); err != nil {
		return fmt.Errorf("update progress: %w", err)
	}
	return nil
}
