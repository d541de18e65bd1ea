package server

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goalwing/goalwing/internal/app"
	"github.com/goalwing/goalwing/internal/retry"
	"github.com/goalwing/goalwing/models"
	"github.com/goalwing/goalwing/store"
)

func newTestServer(t *testing.T) (*httptest.Server, store.GoalStore) {
	t.Helper()

	st := store.NewMemoryGoalStore()
	creator := &app.Creator{
		Store: st,
		Retry: retry.Policy{MaxAttempts: 1, BaseDelay: time.Millisecond, Sleep: func(time.Duration) {}},
	}
	srv := New(0, st, creator)
	ts := httptest.NewServer(srv.registerRoutes())
	t.Cleanup(ts.Close)
	return ts, st
}

func createTestGoal(t *testing.T, ts *httptest.Server, title string, period int) models.Goal {
	t.Helper()

	body := fmt.Sprintf(`{"title":%q,"period":%d,"startDate":"2025-01-01"}`, title, period)
	resp, err := http.Post(ts.URL+"/api/goals", "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var created struct {
		Goal models.Goal `json:"goal"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&created))
	return created.Goal
}

func TestServer_CreateGoal(t *testing.T) {
	ts, _ := newTestServer(t)

	goal := createTestGoal(t, ts, "learn Go", 5)
	assert.NotEmpty(t, goal.ID)
	assert.Equal(t, "learn Go", goal.Title)
	assert.Equal(t, "2025-01-05", goal.EndDate)
	assert.Len(t, goal.DailyTasks, 5)
}

func TestServer_CreateGoal_Validation(t *testing.T) {
	ts, _ := newTestServer(t)

	cases := []struct {
		name string
		body string
	}{
		{"missing title", `{"period":5,"startDate":"2025-01-01"}`},
		{"zero period", `{"title":"g","period":0,"startDate":"2025-01-01"}`},
		{"bad date", `{"title":"g","period":5,"startDate":"nope"}`},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			resp, err := http.Post(ts.URL+"/api/goals", "application/json", bytes.NewBufferString(tc.body))
			require.NoError(t, err)
			defer func() { _ = resp.Body.Close() }()
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		})
	}
}

func TestServer_ListGoals(t *testing.T) {
	ts, _ := newTestServer(t)

	createTestGoal(t, ts, "first", 3)
	createTestGoal(t, ts, "second", 3)

	resp, err := http.Get(ts.URL + "/api/goals")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var summaries []struct {
		Goal    models.Goal `json:"goal"`
		Percent int         `json:"percent"`
		Band    string      `json:"band"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&summaries))
	require.Len(t, summaries, 2)
	assert.Equal(t, "second", summaries[0].Goal.Title, "newest goal should come first")
	assert.Equal(t, 0, summaries[0].Percent)
	assert.Equal(t, "low", summaries[0].Band)
}

func TestServer_GetGoal_NotFound(t *testing.T) {
	ts, _ := newTestServer(t)

	resp, err := http.Get(ts.URL + "/api/goals/no-such-id")
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestServer_ToggleTask(t *testing.T) {
	ts, _ := newTestServer(t)
	goal := createTestGoal(t, ts, "toggle me", 3)

	taskID := goal.DailyTasks[0].Tasks[0].ID
	body := fmt.Sprintf(`{"date":"2025-01-01","taskId":%q}`, taskID)

	resp, err := http.Post(ts.URL+"/api/goals/"+goal.ID+"/toggle", "application/json", bytes.NewBufferString(body))
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var toggled models.Goal
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&toggled))
	assert.True(t, toggled.DailyTasks[0].Tasks[0].Completed)

	t.Run("missing fields", func(t *testing.T) {
		resp, err := http.Post(ts.URL+"/api/goals/"+goal.ID+"/toggle", "application/json", bytes.NewBufferString(`{}`))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	})

	t.Run("unknown goal", func(t *testing.T) {
		resp, err := http.Post(ts.URL+"/api/goals/nope/toggle", "application/json", bytes.NewBufferString(body))
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	})
}

func TestServer_Progress(t *testing.T) {
	ts, st := newTestServer(t)
	goal := createTestGoal(t, ts, "progress", 3)

	// Complete every task on the first day.
	for _, task := range goal.DailyTasks[0].Tasks {
		_, err := st.ToggleTask(goal.ID, "2025-01-01", task.ID)
		require.NoError(t, err)
	}

	t.Run("overall", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/goals/" + goal.ID + "/progress")
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got struct {
			Done    int    `json:"done"`
			Total   int    `json:"total"`
			Percent int    `json:"percent"`
			Band    string `json:"band"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, 3, got.Done)
		assert.Equal(t, 9, got.Total)
		assert.Equal(t, 33, got.Percent)
		assert.Equal(t, "low", got.Band)
	})

	t.Run("day", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/goals/" + goal.ID + "/progress/day?date=2025-01-01")
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var got struct {
			Done    int    `json:"done"`
			Total   int    `json:"total"`
			Percent int    `json:"percent"`
			Band    string `json:"band"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&got))
		assert.Equal(t, 3, got.Done)
		assert.Equal(t, 3, got.Total)
		assert.Equal(t, 100, got.Percent)
		assert.Equal(t, "done", got.Band)
	})

	t.Run("recent series", func(t *testing.T) {
		resp, err := http.Get(ts.URL + "/api/goals/" + goal.ID + "/progress/recent?n=5&anchor=2025-01-03")
		require.NoError(t, err)
		defer func() { _ = resp.Body.Close() }()
		require.Equal(t, http.StatusOK, resp.StatusCode)

		var series []struct {
			Date string `json:"date"`
			Done int    `json:"done"`
		}
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&series))
		require.Len(t, series, 5)
		assert.Equal(t, "2025-01-03", series[4].Date)
		assert.Equal(t, "2024-12-30", series[0].Date)
		assert.Equal(t, 0, series[0].Done, "days before the goal are zero-filled")
	})
}

func TestServer_DeleteGoal(t *testing.T) {
	ts, _ := newTestServer(t)
	goal := createTestGoal(t, ts, "delete me", 3)

	req, err := http.NewRequest(http.MethodDelete, ts.URL+"/api/goals/"+goal.ID, nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	getResp, err := http.Get(ts.URL + "/api/goals/" + goal.ID)
	require.NoError(t, err)
	defer func() { _ = getResp.Body.Close() }()
	assert.Equal(t, http.StatusNotFound, getResp.StatusCode)
}

func TestServer_CORS(t *testing.T) {
	ts, _ := newTestServer(t)

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/api/goals", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}
