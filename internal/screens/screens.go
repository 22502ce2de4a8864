// Package screens hosts the application screens. Deps is the shared
// dependency bundle they are constructed with.
package screens

import (
	"github.com/kurso-app/kurso/internal/api"
	"github.com/kurso-app/kurso/internal/store"
)

// Deps bundles the backend clients and local storage handed to each
// screen. Attempts may be nil, which disables local history.
type Deps struct {
	Quizzes     api.QuizAPI
	Courses     api.CourseAPI
	Enrollments api.EnrollmentAPI
	Attempts    store.AttemptRepo
	UserID      string
}
