package models

import (
	"errors"
	"testing"
	"time"

	"github.com/goalwing/goalwing/types"
)

func validGoal(t *testing.T) Goal {
	t.Helper()

	return Goal{
		ID:          "a6f1b2c3-4d5e-4f60-8a7b-9c0d1e2f3a4b",
		Title:       "Learn Go",
		Description: "Learn Go",
		Period:      3,
		StartDate:   "2025-01-01",
		EndDate:     "2025-01-03",
		DailyTasks: []DayPlan{
			{Date: "2025-01-01", Tasks: []Task{{ID: "2025-01-01-0", Title: "Read", Minutes: 30}}},
			{Date: "2025-01-02", Tasks: []Task{{ID: "2025-01-02-0", Title: "Practice", Minutes: 30}}},
			{Date: "2025-01-03", Tasks: []Task{{ID: "2025-01-03-0", Title: "Review", Minutes: 30}}},
		},
		CreatedAt: time.Now().UTC(),
	}
}

func TestGoalValidate_OK(t *testing.T) {
	g := validGoal(t)
	if err := g.Validate(); err != nil {
		t.Fatalf("Validate failed for a well-formed goal: %v", err)
	}
}

func TestGoalValidate_PeriodMismatch(t *testing.T) {
	g := validGoal(t)
	g.DailyTasks = g.DailyTasks[:2]

	err := g.Validate()
	if err == nil {
		t.Fatal("expected error when day-plan count differs from period")
	}
	if !errors.Is(err, types.ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestGoalValidate_EndDateArithmetic(t *testing.T) {
	g := validGoal(t)
	g.EndDate = "2025-01-04"

	if err := g.Validate(); err == nil {
		t.Fatal("expected error when endDate != startDate + period - 1")
	}
}

func TestGoalValidate_GaplessDates(t *testing.T) {
	g := validGoal(t)
	g.DailyTasks[1].Date = "2025-01-05"

	if err := g.Validate(); err == nil {
		t.Fatal("expected error for a gap in the schedule dates")
	}
}

func TestGoalValidate_DuplicateTaskIDsWithinDay(t *testing.T) {
	g := validGoal(t)
	g.DailyTasks[0].Tasks = append(g.DailyTasks[0].Tasks, Task{ID: "2025-01-01-0", Title: "Dup", Minutes: 30})

	if err := g.Validate(); err == nil {
		t.Fatal("expected error for duplicate task IDs within one day")
	}
}

func TestGoalValidate_CrossDayDuplicateIDsAllowed(t *testing.T) {
	g := validGoal(t)
	g.DailyTasks[1].Tasks[0].ID = g.DailyTasks[0].Tasks[0].ID

	// Task ID uniqueness is scoped to a single day.
	if err := g.Validate(); err != nil {
		t.Fatalf("cross-day duplicate IDs should be permitted: %v", err)
	}
}

func TestAddDays(t *testing.T) {
	got, err := AddDays("2025-01-30", 3)
	if err != nil {
		t.Fatalf("AddDays failed: %v", err)
	}
	if got != "2025-02-02" {
		t.Errorf("AddDays crossed the month wrong: got %s, want 2025-02-02", got)
	}

	if _, err := AddDays("not-a-date", 1); err == nil {
		t.Error("expected error for malformed date")
	}
}

func TestGoalDay(t *testing.T) {
	g := validGoal(t)

	if d := g.Day("2025-01-02"); d == nil || d.Tasks[0].Title != "Practice" {
		t.Errorf("Day lookup returned wrong plan: %+v", d)
	}
	if d := g.Day("2024-12-31"); d != nil {
		t.Errorf("Day lookup for an out-of-range date should be nil, got %+v", d)
	}
}
