package types

// TaskOutput is a single task as produced by the remote generation service
// or the local stage template. It is the pre-normalization ("raw") shape:
// stage metadata is display grouping only and does not survive into the
// canonical day-indexed schedule.
type TaskOutput struct {
	Text      string `json:"text"`
	Stage     int    `json:"stage,omitempty"`
	StageName string `json:"stageName,omitempty"`
	DayRange  string `json:"dayRange,omitempty"`
	Minutes   int    `json:"minutes,omitempty"`
}

// RawTask is a task inside an already day-indexed raw plan. Any field may
// be missing; the normalizer fills defaults.
type RawTask struct {
	ID        string `json:"id,omitempty"`
	Title     string `json:"title,omitempty"`
	Text      string `json:"text,omitempty"`
	Minutes   int    `json:"minutes,omitempty"`
	Completed bool   `json:"completed,omitempty"`
}

// RawDayPlan is one day of an already day-indexed raw plan.
type RawDayPlan struct {
	Date  string    `json:"date"`
	Tasks []RawTask `json:"tasks"`
}

// PlanShape discriminates the two raw plan shapes the normalizer accepts.
// The producer (remote client or template generator) tags its output, so
// the normalizer dispatches on the tag instead of probing the data.
type PlanShape string

const (
	// PlanFlat is an ordered task list to be distributed across days.
	PlanFlat PlanShape = "flat"
	// PlanDaily is a plan that already carries per-day task lists.
	PlanDaily PlanShape = "daily"
)

// RawPlan is the tagged union of the two raw plan shapes.
type RawPlan struct {
	Shape PlanShape    `json:"shape"`
	Flat  []TaskOutput `json:"flat,omitempty"`
	Daily []RawDayPlan `json:"daily,omitempty"`
}

// FlatPlan wraps an ordered task list as a flat raw plan.
func FlatPlan(tasks []TaskOutput) RawPlan {
	return RawPlan{Shape: PlanFlat, Flat: tasks}
}

// DailyPlan wraps day-indexed entries as a daily raw plan.
func DailyPlan(days []RawDayPlan) RawPlan {
	return RawPlan{Shape: PlanDaily, Daily: days}
}

// PlanRequest describes one plan-generation request to the remote service.
type PlanRequest struct {
	Goal      string `json:"goal"`
	Period    int    `json:"period"`
	StartDate string `json:"startDate"`
	EndDate   string `json:"endDate"`
}
