package store

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) AttemptRepo {
	t.Helper()
	st, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = st.Close() })

	repo, err := st.AttemptRepo()
	require.NoError(t, err)
	return repo
}

func sample(session, quizID string, score float64, passed bool) AttemptData {
	return AttemptData{
		SessionID:      session,
		QuizID:         quizID,
		CourseID:       "c1",
		QuizTitle:      "Checkpoint",
		CourseTitle:    "Algebra",
		Score:          score,
		CorrectCount:   int(score / 10),
		TotalQuestions: 10,
		Passed:         passed,
		DurationSecs:   90,
		Trigger:        "manual",
	}
}

func TestAttemptRepo_AppendAndRecent(t *testing.T) {
	repo := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, sample("s1", "q1", 60, false)))
	require.NoError(t, repo.Append(ctx, sample("s2", "q1", 70, true)))
	require.NoError(t, repo.Append(ctx, sample("s3", "q2", 90, true)))

	attempts, err := repo.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, attempts, 2)

	// Newest first.
	assert.Equal(t, "s3", attempts[0].SessionID)
	assert.Equal(t, "s2", attempts[1].SessionID)
	assert.Greater(t, attempts[0].Sequence, attempts[1].Sequence)
}

func TestAttemptRepo_ForQuiz(t *testing.T) {
	repo := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, repo.Append(ctx, sample("s1", "q1", 60, false)))
	require.NoError(t, repo.Append(ctx, sample("s2", "q2", 80, true)))
	require.NoError(t, repo.Append(ctx, sample("s3", "q1", 70, true)))

	attempts, err := repo.ForQuiz(ctx, "q1")
	require.NoError(t, err)
	require.Len(t, attempts, 2)
	assert.Equal(t, "s3", attempts[0].SessionID)
	assert.True(t, attempts[0].Passed)
	assert.Equal(t, 70.0, attempts[0].Score)
}
