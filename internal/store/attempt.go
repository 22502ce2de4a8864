package store

import (
	"context"
	"fmt"

	"github.com/kurso-app/kurso/ent"
	"github.com/kurso-app/kurso/ent/attemptevent"
)

type attemptRepo struct {
	client *ent.Client
	seq    *sequenceCounter
}

var _ AttemptRepo = (*attemptRepo)(nil)

func (r *attemptRepo) Append(ctx context.Context, data AttemptData) error {
	seqNum, err := r.seq.Next(ctx)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.client.AttemptEvent.Create().
		SetSequence(seqNum).
		SetSessionID(data.SessionID).
		SetQuizID(data.QuizID).
		SetCourseID(data.CourseID).
		SetQuizTitle(data.QuizTitle).
		SetCourseTitle(data.CourseTitle).
		SetScore(data.Score).
		SetCorrectCount(data.CorrectCount).
		SetTotalQuestions(data.TotalQuestions).
		SetPassed(data.Passed).
		SetDurationSecs(data.DurationSecs).
		SetTrigger(data.Trigger).
		Save(ctx)
	if err != nil {
		return fmt.Errorf("save attempt event: %w", err)
	}
	return nil
}

func (r *attemptRepo) Recent(ctx context.Context, limit int) ([]Attempt, error) {
	q := r.client.AttemptEvent.Query().
		Order(ent.Desc(attemptevent.FieldSequence))
	if limit > 0 {
		q = q.Limit(limit)
	}
	rows, err := q.All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	return fromRows(rows), nil
}

func (r *attemptRepo) ForQuiz(ctx context.Context, quizID string) ([]Attempt, error) {
	rows, err := r.client.AttemptEvent.Query().
		Where(attemptevent.QuizID(quizID)).
		Order(ent.Desc(attemptevent.FieldSequence)).
		All(ctx)
	if err != nil {
		return nil, fmt.Errorf("query attempts for quiz %s: %w", quizID, err)
	}
	return fromRows(rows), nil
}

func fromRows(rows []*ent.AttemptEvent) []Attempt {
	out := make([]Attempt, 0, len(rows))
	for _, row := range rows {
		out = append(out, Attempt{
			Sequence:  row.Sequence,
			Timestamp: row.Timestamp,
			AttemptData: AttemptData{
				SessionID:      row.SessionID,
				QuizID:         row.QuizID,
				CourseID:       row.CourseID,
				QuizTitle:      row.QuizTitle,
				CourseTitle:    row.CourseTitle,
				Score:          row.Score,
				CorrectCount:   row.CorrectCount,
				TotalQuestions: row.TotalQuestions,
				Passed:         row.Passed,
				DurationSecs:   row.DurationSecs,
				Trigger:        row.Trigger,
			},
		})
	}
	return out
}
