package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/goalwing/goalwing/types"
)

// DateLayout is the calendar-date format used throughout the schedule.
const DateLayout = "2006-01-02"

// DefaultTaskMinutes is the estimated effort assigned when source data
// carries no estimate.
const DefaultTaskMinutes = 30

// Task is one unit of work scoped to a single day. Its ID is unique
// within that day's task list only; cross-day duplicates carry no meaning.
type Task struct {
	ID        string `json:"id" validate:"required"`
	Title     string `json:"title" validate:"required"`
	Minutes   int    `json:"minutes" validate:"required,gt=0"`
	Completed bool   `json:"completed"`
}

// DayPlan is the ordered set of tasks assigned to one calendar date
// within a goal's schedule. Task order is display order only.
type DayPlan struct {
	Date  string `json:"date" validate:"required,datetime=2006-01-02"`
	Tasks []Task `json:"tasks" validate:"dive"`
}

// Goal is a user-defined objective spanning a fixed calendar period with
// a day-by-day task schedule. ID, Period, StartDate and EndDate are
// immutable after creation; only task state inside DailyTasks may change.
type Goal struct {
	ID          string             `json:"id" validate:"required,uuid4"`
	Title       string             `json:"title" validate:"required"`
	Description string             `json:"description,omitempty"`
	Period      int                `json:"period" validate:"required,gt=0"`
	StartDate   string             `json:"startDate" validate:"required,datetime=2006-01-02"`
	EndDate     string             `json:"endDate" validate:"required,datetime=2006-01-02"`
	DailyTasks  []DayPlan          `json:"dailyTasks" validate:"dive"`
	Tasks       []types.TaskOutput `json:"tasks,omitempty"` // pre-normalization source, audit only
	CreatedAt   time.Time          `json:"createdAt" validate:"required"`
}

// GoalList is the serialized collection shape of the durable store: the
// whole list is read and written as one value.
type GoalList struct {
	Goals      []Goal `json:"goals" validate:"dive"`
	TotalCount int    `json:"totalCount"`
}

// global validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateStruct performs validation on any struct that has validation tags.
func ValidateStruct(s interface{}) error {
	if validate == nil {
		validate = validator.New()
	}
	err := validate.Struct(s)
	if err != nil {
		validationErrors := err.(validator.ValidationErrors)
		var errorMessages []string
		for _, e := range validationErrors {
			errorMessages = append(errorMessages, fmt.Sprintf("field '%s' failed rule '%s' (value: '%v')", e.StructNamespace(), e.Tag(), e.Value()))
		}
		return fmt.Errorf("%w: %s", types.ErrValidation, strings.Join(errorMessages, "; "))
	}
	return nil
}

// ParseDate parses an ISO yyyy-MM-dd date string.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad date %q: %v", types.ErrValidation, s, err)
	}
	return t, nil
}

// AddDays returns the ISO date n days after the given ISO date.
func AddDays(date string, n int) (string, error) {
	t, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return t.AddDate(0, 0, n).Format(DateLayout), nil
}

// Day returns the DayPlan for the given date, or nil when the goal has no
// entry for it.
func (g *Goal) Day(date string) *DayPlan {
	for i := range g.DailyTasks {
		if g.DailyTasks[i].Date == date {
			return &g.DailyTasks[i]
		}
	}
	return nil
}

// Validate checks tag-level rules plus the structural schedule invariants:
// exactly Period day plans, strictly increasing gapless dates from
// StartDate, EndDate arithmetic, and per-day task-ID uniqueness.
func (g *Goal) Validate() error {
	if err := ValidateStruct(g); err != nil {
		return err
	}
	if len(g.DailyTasks) != g.Period {
		return fmt.Errorf("%w: goal has %d day plans, want %d (one per day of the period)", types.ErrValidation, len(g.DailyTasks), g.Period)
	}
	wantEnd, err := AddDays(g.StartDate, g.Period-1)
	if err != nil {
		return err
	}
	if g.EndDate != wantEnd {
		return fmt.Errorf("%w: endDate %s does not equal startDate + %d days (%s)", types.ErrValidation, g.EndDate, g.Period-1, wantEnd)
	}
	for i := range g.DailyTasks {
		wantDate, err := AddDays(g.StartDate, i)
		if err != nil {
			return err
		}
		if g.DailyTasks[i].Date != wantDate {
			return fmt.Errorf("%w: day %d has date %s, want %s (dates must be gapless and ascending)", types.ErrValidation, i, g.DailyTasks[i].Date, wantDate)
		}
		seen := make(map[string]struct{}, len(g.DailyTasks[i].Tasks))
		for _, task := range g.DailyTasks[i].Tasks {
			if _, dup := seen[task.ID]; dup {
				return fmt.Errorf("%w: duplicate task ID %q on %s", types.ErrValidation, task.ID, g.DailyTasks[i].Date)
			}
			seen[task.ID] = struct{}{}
		}
	}
	return nil
}
