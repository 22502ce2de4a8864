package quiz

// Quiz is a quiz definition as served by the platform backend. It is
// immutable once loaded for a session.
type Quiz struct {
	ID           string     `json:"id"`
	CourseID     string     `json:"course_id"`
	Title        string     `json:"title"`
	Questions    []Question `json:"questions"`
	PassingScore float64    `json:"passing_score"` // percentage threshold
	TimeLimit    int        `json:"time_limit"`    // minutes, 0 = no limit
}

// Question is a single-select multiple choice question. The correct
// answer is compared by option value, not index.
type Question struct {
	Prompt        string   `json:"prompt"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"correct_answer,omitempty"`
}

// Result is the graded outcome of an attempt, produced by the backend's
// grading endpoint. The correct answer appears in feedback only for
// wrong or unanswered questions.
type Result struct {
	Score          float64    `json:"score"` // percentage 0-100
	TotalQuestions int        `json:"total_questions"`
	CorrectCount   int        `json:"correct_count"`
	Passed         bool       `json:"passed"`
	Feedback       []Feedback `json:"feedback"`
}

// Feedback is per-question grading detail.
type Feedback struct {
	QuestionIndex int    `json:"question_index"`
	Correct       bool   `json:"correct"`
	CorrectAnswer string `json:"correct_answer,omitempty"`
}

// FeedbackFor returns the feedback entry for question index i, or nil.
func (r *Result) FeedbackFor(i int) *Feedback {
	for j := range r.Feedback {
		if r.Feedback[j].QuestionIndex == i {
			return &r.Feedback[j]
		}
	}
	return nil
}

// ProgressIncrement is the flat course-progress bump applied after a
// completed attempt.
const ProgressIncrement = 10

// AdvanceProgress returns the enrollment progress after a completed
// attempt, capped at 100.
func AdvanceProgress(current int) int {
	next := current + ProgressIncrement
	if next > 100 {
		return 100
	}
	return next
}
