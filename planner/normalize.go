package planner

import (
	"fmt"

	"github.com/goalwing/goalwing/models"
	"github.com/goalwing/goalwing/types"
)

// tasksPerDay is how many tasks a flat list contributes to each day.
const tasksPerDay = 3

// Normalize converts a raw plan into the canonical day-indexed schedule
// covering exactly period consecutive days from startDate.
//
// A flat list is assigned round-robin, tasksPerDay per day: day i's task j
// sources index (i*tasksPerDay+j) mod len(tasks). When the list is shorter
// than period*tasksPerDay the source tasks repeat, so every day has content
// even for short template lists.
//
// Every produced task starts with completed=false: normalization is a
// creation-time operation, and a fresh plan carries no completion state
// regardless of what the source claimed.
func Normalize(raw types.RawPlan, startDate string, period int) ([]models.DayPlan, error) {
	if period <= 0 {
		return nil, fmt.Errorf("%w: period must be positive, got %d", types.ErrValidation, period)
	}
	if _, err := models.ParseDate(startDate); err != nil {
		return nil, err
	}

	switch raw.Shape {
	case types.PlanDaily:
		return normalizeDaily(raw.Daily, startDate, period)
	case types.PlanFlat:
		return assignRoundRobin(raw.Flat, startDate, period)
	default:
		return nil, fmt.Errorf("%w: unknown plan shape %q", types.ErrValidation, raw.Shape)
	}
}

// normalizeDaily passes an already day-indexed plan through with
// field-level normalization only. The schedule still spans exactly period
// days from startDate; dates the source did not cover get empty task
// lists, and source entries outside the range are dropped.
func normalizeDaily(days []types.RawDayPlan, startDate string, period int) ([]models.DayPlan, error) {
	byDate := make(map[string][]types.RawTask, len(days))
	for _, d := range days {
		byDate[d.Date] = d.Tasks
	}

	schedule := make([]models.DayPlan, 0, period)
	for i := 0; i < period; i++ {
		date, err := models.AddDays(startDate, i)
		if err != nil {
			return nil, err
		}
		raw := byDate[date]
		tasks := make([]models.Task, 0, len(raw))
		for idx, rt := range raw {
			tasks = append(tasks, models.Task{
				ID:        taskID(rt.ID, date, idx),
				Title:     taskTitle(rt.Title, rt.Text),
				Minutes:   taskMinutes(rt.Minutes),
				Completed: false,
			})
		}
		schedule = append(schedule, models.DayPlan{Date: date, Tasks: tasks})
	}
	return schedule, nil
}

func assignRoundRobin(flat []types.TaskOutput, startDate string, period int) ([]models.DayPlan, error) {
	if len(flat) == 0 {
		return nil, fmt.Errorf("%w: no tasks to distribute across days", types.ErrValidation)
	}

	schedule := make([]models.DayPlan, 0, period)
	for i := 0; i < period; i++ {
		date, err := models.AddDays(startDate, i)
		if err != nil {
			return nil, err
		}
		tasks := make([]models.Task, 0, tasksPerDay)
		for k := 0; k < tasksPerDay; k++ {
			pick := flat[(i*tasksPerDay+k)%len(flat)]
			tasks = append(tasks, models.Task{
				ID:        fmt.Sprintf("%s-%d", date, k),
				Title:     taskTitle(pick.Text, ""),
				Minutes:   taskMinutes(pick.Minutes),
				Completed: false,
			})
		}
		schedule = append(schedule, models.DayPlan{Date: date, Tasks: tasks})
	}
	return schedule, nil
}

func taskID(id, date string, idx int) string {
	if id != "" {
		return id
	}
	return fmt.Sprintf("%s-%d", date, idx)
}

func taskTitle(title, text string) string {
	if title != "" {
		return title
	}
	if text != "" {
		return text
	}
	return "Task"
}

func taskMinutes(m int) int {
	if m > 0 {
		return m
	}
	return models.DefaultTaskMinutes
}
