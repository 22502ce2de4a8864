package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kurso-app/kurso/internal/quiz"
)

const validQuizJSON = `{
	"id": "q1",
	"course_id": "c1",
	"title": "Unit 1 checkpoint",
	"passing_score": 70,
	"time_limit": 10,
	"questions": [
		{"prompt": "2+2?", "options": ["3", "4", "5", "6"]},
		{"prompt": "3+3?", "options": ["5", "6", "7", "8"]}
	]
}`

func TestGetQuiz_ValidPayload(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/quizzes/q1", r.URL.Path)
		w.Write([]byte(validQuizJSON))
	}))

	q, err := c.GetQuiz(context.Background(), "q1")
	require.NoError(t, err)
	assert.Equal(t, "q1", q.ID)
	assert.Equal(t, "c1", q.CourseID)
	assert.Len(t, q.Questions, 2)
	assert.Equal(t, float64(70), q.PassingScore)
	assert.Equal(t, 10, q.TimeLimit)
}

func TestGetQuiz_RejectsMalformedPayloads(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"not json", `{{{`},
		{"missing questions", `{"id":"q1","course_id":"c1","passing_score":70}`},
		{"empty questions", `{"id":"q1","course_id":"c1","passing_score":70,"questions":[]}`},
		{"question without options", `{"id":"q1","course_id":"c1","passing_score":70,"questions":[{"prompt":"?"}]}`},
		{"single option", `{"id":"q1","course_id":"c1","passing_score":70,"questions":[{"prompt":"?","options":["a"]}]}`},
		{"score out of range", `{"id":"q1","course_id":"c1","passing_score":150,"questions":[{"prompt":"?","options":["a","b"]}]}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.Write([]byte(tt.body))
			}))
			_, err := c.GetQuiz(context.Background(), "q1")
			require.Error(t, err)
		})
	}
}

// gradeHandler is a stand-in grading endpoint implementing the
// documented contract: percentage score against the answer key, pass
// at the quiz's threshold, correct answers revealed only for wrong or
// unanswered questions.
func gradeHandler(t *testing.T, key []string, passingScore float64) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req SubmitRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		result := quiz.Result{TotalQuestions: len(key)}
		for i, correct := range key {
			fb := quiz.Feedback{QuestionIndex: i}
			if got, ok := req.Answers[i]; ok && got == correct {
				fb.Correct = true
				result.CorrectCount++
			} else {
				fb.CorrectAnswer = correct
			}
			result.Feedback = append(result.Feedback, fb)
		}
		result.Score = float64(result.CorrectCount) / float64(len(key)) * 100
		result.Passed = result.Score >= passingScore

		json.NewEncoder(w).Encode(result)
	})
}

func TestSubmit_ScoringBoundary(t *testing.T) {
	key := []string{"a", "a", "a", "a", "a", "a", "a", "a", "a", "a"}

	submitN := func(t *testing.T, n int) *quiz.Result {
		c := testClient(t, gradeHandler(t, key, 70))
		answers := make(map[int]string)
		for i := 0; i < n; i++ {
			answers[i] = "a"
		}
		res, err := c.Submit(context.Background(), SubmitRequest{
			QuizID:  "q1",
			UserID:  "user-1",
			Answers: answers,
		})
		require.NoError(t, err)
		return res
	}

	t.Run("7 of 10 passes at threshold 70", func(t *testing.T) {
		res := submitN(t, 7)
		assert.Equal(t, 70.0, res.Score)
		assert.True(t, res.Passed)
	})

	t.Run("6 of 10 fails", func(t *testing.T) {
		res := submitN(t, 6)
		assert.Equal(t, 60.0, res.Score)
		assert.False(t, res.Passed)
	})
}

func TestSubmit_FeedbackRevealsOnlyWrong(t *testing.T) {
	c := testClient(t, gradeHandler(t, []string{"a", "b", "c"}, 70))

	res, err := c.Submit(context.Background(), SubmitRequest{
		QuizID: "q1",
		UserID: "user-1",
		Answers: map[int]string{
			0: "a", // right
			1: "x", // wrong
			// 2 unanswered
		},
	})
	require.NoError(t, err)

	require.Len(t, res.Feedback, 3)
	assert.True(t, res.Feedback[0].Correct)
	assert.Empty(t, res.Feedback[0].CorrectAnswer, "correct answers must not be revealed for right answers")
	assert.Equal(t, "b", res.Feedback[1].CorrectAnswer)
	assert.Equal(t, "c", res.Feedback[2].CorrectAnswer)
}
