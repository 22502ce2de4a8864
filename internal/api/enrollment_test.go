package api

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnrollment_Found(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/enrollments/user-1/c1", r.URL.Path)
		w.Write([]byte(`{"user_id":"user-1","course_id":"c1","progress":40}`))
	}))

	e, err := c.GetEnrollment(context.Background(), "user-1", "c1")
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, 40, e.Progress)
}

func TestGetEnrollment_AbsenceIsNotAnError(t *testing.T) {
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	e, err := c.GetEnrollment(context.Background(), "user-1", "c1")
	require.NoError(t, err)
	assert.Nil(t, e)
}

func TestUpdateProgress(t *testing.T) {
	var gotMethod, gotPath string
	var gotBody struct {
		Progress int `json:"progress"`
	}
	c := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusNoContent)
	}))

	require.NoError(t, c.UpdateProgress(context.Background(), "user-1", "c1", 100))
	assert.Equal(t, "PUT", gotMethod)
	assert.Equal(t, "/api/enrollments/user-1/c1/progress", gotPath)
	assert.Equal(t, 100, gotBody.Progress)
}
