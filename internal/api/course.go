package api

import (
	"context"
	"fmt"
	"net/url"
)

// Course is the catalog metadata for a course.
type Course struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// QuizSummary is a quiz reference as listed under a course.
type QuizSummary struct {
	ID    string `json:"id"`
	Title string `json:"title"`
}

// CourseAPI serves course metadata.
type CourseAPI interface {
	GetCourse(ctx context.Context, courseID string) (*Course, error)
	ListCourses(ctx context.Context) ([]Course, error)
	ListQuizzes(ctx context.Context, courseID string) ([]QuizSummary, error)
}

// GetCourse fetches one course's metadata.
func (c *Client) GetCourse(ctx context.Context, courseID string) (*Course, error) {
	var course Course
	if err := c.getJSON(ctx, "/api/courses/"+url.PathEscape(courseID), &course); err != nil {
		return nil, fmt.Errorf("fetch course %s: %w", courseID, err)
	}
	return &course, nil
}

// ListCourses fetches the course catalog.
func (c *Client) ListCourses(ctx context.Context) ([]Course, error) {
	var courses []Course
	if err := c.getJSON(ctx, "/api/courses", &courses); err != nil {
		return nil, fmt.Errorf("fetch courses: %w", err)
	}
	return courses, nil
}

// ListQuizzes fetches the quizzes belonging to a course.
func (c *Client) ListQuizzes(ctx context.Context, courseID string) ([]QuizSummary, error) {
	var quizzes []QuizSummary
	path := "/api/courses/" + url.PathEscape(courseID) + "/quizzes"
	if err := c.getJSON(ctx, path, &quizzes); err != nil {
		return nil, fmt.Errorf("fetch quizzes for course %s: %w", courseID, err)
	}
	return quizzes, nil
}
