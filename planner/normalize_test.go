package planner

import (
	"errors"
	"fmt"
	"reflect"
	"testing"

	"github.com/goalwing/goalwing/models"
	"github.com/goalwing/goalwing/types"
)

func flatTasks(n int) []types.TaskOutput {
	tasks := make([]types.TaskOutput, 0, n)
	for i := 0; i < n; i++ {
		tasks = append(tasks, types.TaskOutput{Text: fmt.Sprintf("task %d", i)})
	}
	return tasks
}

func TestNormalize_CoverageInvariant(t *testing.T) {
	for _, period := range []int{1, 3, 7, 30} {
		schedule, err := Normalize(types.FlatPlan(flatTasks(4)), "2025-01-01", period)
		if err != nil {
			t.Fatalf("period %d: Normalize failed: %v", period, err)
		}
		if len(schedule) != period {
			t.Fatalf("period %d: got %d day plans, want %d", period, len(schedule), period)
		}
		for i, day := range schedule {
			want, _ := models.AddDays("2025-01-01", i)
			if day.Date != want {
				t.Errorf("period %d day %d: date %s, want %s (gapless ascending)", period, i, day.Date, want)
			}
		}
	}
}

func TestNormalize_RoundRobinSourceIndex(t *testing.T) {
	src := flatTasks(4)
	schedule, err := Normalize(types.FlatPlan(src), "2025-03-01", 5)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	for i, day := range schedule {
		if len(day.Tasks) != tasksPerDay {
			t.Fatalf("day %d: got %d tasks, want %d", i, len(day.Tasks), tasksPerDay)
		}
		for j, task := range day.Tasks {
			want := src[(i*tasksPerDay+j)%len(src)].Text
			if task.Title != want {
				t.Errorf("day %d task %d: title %q, want %q", i, j, task.Title, want)
			}
		}
	}
}

func TestNormalize_Deterministic(t *testing.T) {
	raw := types.FlatPlan(flatTasks(7))
	a, err := Normalize(raw, "2025-01-01", 10)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	b, err := Normalize(raw, "2025-01-01", 10)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	if !reflect.DeepEqual(a, b) {
		t.Error("re-running normalization on identical inputs changed the output")
	}
}

// Creating a goal from a 2-item raw list over 3 days cycles the source
// as 0,1,0 / 1,0,1 / 0,1,0 per the (i*3+j) mod 2 rule.
func TestNormalize_TwoSourceTasksOverThreeDays(t *testing.T) {
	src := []types.TaskOutput{{Text: "a"}, {Text: "b"}}
	schedule, err := Normalize(types.FlatPlan(src), "2025-01-01", 3)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	wantDates := []string{"2025-01-01", "2025-01-02", "2025-01-03"}
	wantTitles := [][]string{
		{"a", "b", "a"},
		{"b", "a", "b"},
		{"a", "b", "a"},
	}
	for i, day := range schedule {
		if day.Date != wantDates[i] {
			t.Errorf("day %d: date %s, want %s", i, day.Date, wantDates[i])
		}
		for j, task := range day.Tasks {
			if task.Title != wantTitles[i][j] {
				t.Errorf("day %d task %d: title %q, want %q", i, j, task.Title, wantTitles[i][j])
			}
		}
	}
}

func TestNormalize_FreshPlanCompletionReset(t *testing.T) {
	daily := types.DailyPlan([]types.RawDayPlan{
		{Date: "2025-01-01", Tasks: []types.RawTask{
			{ID: "t1", Title: "Done already", Completed: true},
			{Text: "Via text field", Completed: true},
		}},
	})

	schedule, err := Normalize(daily, "2025-01-01", 1)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	for _, task := range schedule[0].Tasks {
		if task.Completed {
			t.Errorf("task %q: completed flag must be reset on a fresh plan", task.ID)
		}
	}
}

func TestNormalize_DailyFieldDefaults(t *testing.T) {
	daily := types.DailyPlan([]types.RawDayPlan{
		{Date: "2025-01-01", Tasks: []types.RawTask{
			{ID: "keep-me", Title: "Titled", Minutes: 45},
			{Text: "text not title"},
			{},
		}},
	})

	schedule, err := Normalize(daily, "2025-01-01", 2)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}

	tasks := schedule[0].Tasks
	if tasks[0].ID != "keep-me" || tasks[0].Minutes != 45 {
		t.Errorf("provided fields must pass through: %+v", tasks[0])
	}
	if tasks[1].Title != "text not title" {
		t.Errorf("text should be used when title is absent: %+v", tasks[1])
	}
	if tasks[1].ID != "2025-01-01-1" {
		t.Errorf("missing ID should be synthesized from date and index, got %q", tasks[1].ID)
	}
	if tasks[2].Title != "Task" || tasks[2].Minutes != models.DefaultTaskMinutes {
		t.Errorf("empty task should fall back to defaults: %+v", tasks[2])
	}

	// The second day had no source entry: present but empty.
	if schedule[1].Date != "2025-01-02" || len(schedule[1].Tasks) != 0 {
		t.Errorf("uncovered day should be empty, got %+v", schedule[1])
	}
}

func TestNormalize_EmptyDailyShape(t *testing.T) {
	schedule, err := Normalize(types.DailyPlan(nil), "2025-01-01", 3)
	if err != nil {
		t.Fatalf("empty daily plan should be accepted: %v", err)
	}
	if len(schedule) != 3 {
		t.Fatalf("got %d day plans, want 3", len(schedule))
	}
	for _, day := range schedule {
		if len(day.Tasks) != 0 {
			t.Errorf("day %s: expected zero tasks", day.Date)
		}
	}
}

func TestNormalize_Rejections(t *testing.T) {
	cases := []struct {
		name      string
		raw       types.RawPlan
		startDate string
		period    int
	}{
		{"zero period", types.FlatPlan(flatTasks(2)), "2025-01-01", 0},
		{"negative period", types.FlatPlan(flatTasks(2)), "2025-01-01", -1},
		{"empty flat list", types.FlatPlan(nil), "2025-01-01", 3},
		{"bad start date", types.FlatPlan(flatTasks(2)), "01/01/2025", 3},
		{"untagged shape", types.RawPlan{}, "2025-01-01", 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Normalize(tc.raw, tc.startDate, tc.period)
			if err == nil {
				t.Fatal("expected error")
			}
			if !errors.Is(err, types.ErrValidation) {
				t.Errorf("expected ErrValidation, got %v", err)
			}
		})
	}
}

func TestNormalize_SyntheticIDsUniquePerDay(t *testing.T) {
	schedule, err := Normalize(types.FlatPlan(flatTasks(1)), "2025-01-01", 2)
	if err != nil {
		t.Fatalf("Normalize failed: %v", err)
	}
	for _, day := range schedule {
		seen := map[string]bool{}
		for _, task := range day.Tasks {
			if seen[task.ID] {
				t.Errorf("day %s: duplicate synthesized ID %q", day.Date, task.ID)
			}
			seen[task.ID] = true
		}
	}
}
