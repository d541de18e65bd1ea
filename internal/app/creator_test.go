package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goalwing/goalwing/internal/retry"
	"github.com/goalwing/goalwing/store"
	"github.com/goalwing/goalwing/types"
)

// stubGenerator returns a canned plan or error and counts calls.
type stubGenerator struct {
	plan  types.RawPlan
	err   error
	calls int
}

func (g *stubGenerator) GeneratePlan(ctx context.Context, req types.PlanRequest) (types.RawPlan, error) {
	g.calls++
	if g.err != nil {
		return types.RawPlan{}, g.err
	}
	return g.plan, nil
}

func noSleep(time.Duration) {}

func testCreator(gen *stubGenerator) *Creator {
	c := &Creator{
		Store: store.NewMemoryGoalStore(),
		Retry: retry.Policy{MaxAttempts: 3, BaseDelay: time.Millisecond, Sleep: noSleep},
	}
	if gen != nil {
		c.Generator = gen
	}
	return c
}

func TestCreator_CreateGoal_ServiceSuccess(t *testing.T) {
	gen := &stubGenerator{
		plan: types.FlatPlan([]types.TaskOutput{
			{Text: "task a", Minutes: 20},
			{Text: "task b"},
		}),
	}
	c := testCreator(gen)

	goal, genErr, err := c.CreateGoal(context.Background(), CreateGoalInput{
		Title:     "learn Go",
		Period:    3,
		StartDate: "2025-01-01",
	})
	require.NoError(t, err)
	assert.Nil(t, genErr)
	assert.Equal(t, 1, gen.calls)

	assert.Equal(t, "2025-01-03", goal.EndDate)
	require.Len(t, goal.DailyTasks, 3)
	// Flat plans distribute round-robin over the source list.
	assert.Equal(t, "task a", goal.DailyTasks[0].Tasks[0].Title)
	assert.Equal(t, "task b", goal.DailyTasks[0].Tasks[1].Title)
	assert.Equal(t, "task a", goal.DailyTasks[0].Tasks[2].Title)
	assert.Equal(t, "task b", goal.DailyTasks[1].Tasks[0].Title)

	// Minutes default when the source carries none.
	assert.Equal(t, 20, goal.DailyTasks[0].Tasks[0].Minutes)
	assert.Equal(t, 30, goal.DailyTasks[0].Tasks[1].Minutes)
}

func TestCreator_CreateGoal_FallsBackToTemplate(t *testing.T) {
	gen := &stubGenerator{err: errors.New("connection refused")}
	c := testCreator(gen)

	goal, genErr, err := c.CreateGoal(context.Background(), CreateGoalInput{
		Title:     "learn Go",
		Period:    30,
		StartDate: "2025-01-01",
	})
	require.NoError(t, err)
	require.NotNil(t, genErr)
	assert.Equal(t, 3, genErr.Attempts)
	assert.Contains(t, genErr.Error(), "connection refused")
	assert.Equal(t, 3, gen.calls, "generator should be retried before falling back")

	// The template plan still produces a full 30-day schedule.
	require.Len(t, goal.DailyTasks, 30)
	for _, day := range goal.DailyTasks {
		assert.Len(t, day.Tasks, 3)
		for _, task := range day.Tasks {
			assert.False(t, task.Completed)
		}
	}

	// The goal was persisted despite the generation failure.
	goals, listErr := c.Store.ListGoals()
	require.NoError(t, listErr)
	assert.Len(t, goals, 1)
}

func TestCreator_CreateGoal_NoGenerator(t *testing.T) {
	c := testCreator(nil)

	goal, genErr, err := c.CreateGoal(context.Background(), CreateGoalInput{
		Title:     "short sprint",
		Period:    5,
		StartDate: "2025-03-01",
	})
	require.NoError(t, err)
	assert.Nil(t, genErr, "local template is not a fallback when no service is configured")
	require.Len(t, goal.DailyTasks, 5)
}

func TestCreator_CreateGoal_Validation(t *testing.T) {
	c := testCreator(nil)

	cases := []struct {
		name  string
		input CreateGoalInput
	}{
		{"empty title", CreateGoalInput{Period: 5, StartDate: "2025-01-01"}},
		{"zero period", CreateGoalInput{Title: "g", Period: 0, StartDate: "2025-01-01"}},
		{"bad start date", CreateGoalInput{Title: "g", Period: 5, StartDate: "not-a-date"}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, _, err := c.CreateGoal(context.Background(), tc.input)
			require.Error(t, err)
			assert.True(t, errors.Is(err, types.ErrValidation))
		})
	}

	goals, err := c.Store.ListGoals()
	require.NoError(t, err)
	assert.Empty(t, goals, "rejected input must not be persisted")
}

func TestCreator_RoundRobinCoversEveryDay(t *testing.T) {
	// Two source tasks over three days: the pattern wraps without gaps.
	gen := &stubGenerator{
		plan: types.FlatPlan([]types.TaskOutput{
			{Text: "a"},
			{Text: "b"},
		}),
	}
	c := testCreator(gen)

	goal, _, err := c.CreateGoal(context.Background(), CreateGoalInput{
		Title:     "wrap",
		Period:    3,
		StartDate: "2025-01-01",
	})
	require.NoError(t, err)

	var titles [][]string
	for _, day := range goal.DailyTasks {
		var row []string
		for _, task := range day.Tasks {
			row = append(row, task.Title)
		}
		titles = append(titles, row)
	}
	assert.Equal(t, [][]string{
		{"a", "b", "a"},
		{"b", "a", "b"},
		{"a", "b", "a"},
	}, titles)
}
