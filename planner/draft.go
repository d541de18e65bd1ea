package planner

import (
	"fmt"

	"github.com/goalwing/goalwing/types"
)

// DraftTask is one entry of a pre-persistence draft. Draft IDs are local
// to the draft; they never survive into the persisted schedule.
type DraftTask struct {
	ID        int
	Text      string
	Completed bool
	Stage     int
	StageName string
	DayRange  string
}

// Draft holds a generated task list while the user edits it before the
// goal is created. All editing (add, edit, delete) happens here; once a
// goal is persisted only completion toggles mutate its schedule.
type Draft struct {
	tasks  []DraftTask
	nextID int
}

// NewDraft wraps a raw task list for editing.
func NewDraft(raw []types.TaskOutput) *Draft {
	d := &Draft{nextID: 1}
	for _, t := range raw {
		d.tasks = append(d.tasks, DraftTask{
			ID:        d.nextID,
			Text:      t.Text,
			Stage:     t.Stage,
			StageName: t.StageName,
			DayRange:  t.DayRange,
		})
		d.nextID++
	}
	return d
}

// Tasks returns a copy of the draft's current task list.
func (d *Draft) Tasks() []DraftTask {
	out := make([]DraftTask, len(d.tasks))
	copy(out, d.tasks)
	return out
}

// Len returns the number of tasks in the draft.
func (d *Draft) Len() int {
	return len(d.tasks)
}

// Toggle flips the completed flag of one draft task. Returns false when
// the ID does not exist.
func (d *Draft) Toggle(id int) bool {
	for i := range d.tasks {
		if d.tasks[i].ID == id {
			d.tasks[i].Completed = !d.tasks[i].Completed
			return true
		}
	}
	return false
}

// Edit replaces a draft task's text. Empty text is rejected.
func (d *Draft) Edit(id int, text string) error {
	if text == "" {
		return fmt.Errorf("%w: task text must not be empty", types.ErrValidation)
	}
	for i := range d.tasks {
		if d.tasks[i].ID == id {
			d.tasks[i].Text = text
			return nil
		}
	}
	return fmt.Errorf("%w: draft task %d", types.ErrNotFound, id)
}

// Delete removes a draft task. Returns false when the ID does not exist.
func (d *Draft) Delete(id int) bool {
	for i := range d.tasks {
		if d.tasks[i].ID == id {
			d.tasks = append(d.tasks[:i], d.tasks[i+1:]...)
			return true
		}
	}
	return false
}

// Add appends a new unstaged task and returns it.
func (d *Draft) Add(text string) DraftTask {
	return d.add(text, 0, stageRoutine, "")
}

// AddToStage appends a new task under the named stage and returns it.
func (d *Draft) AddToStage(text string, stage int, dayRange string) DraftTask {
	name := stageName(stage)
	return d.add(text, stage, name, dayRange)
}

func (d *Draft) add(text string, stage int, name, dayRange string) DraftTask {
	task := DraftTask{
		ID:        d.nextID,
		Text:      text,
		Stage:     stage,
		StageName: name,
		DayRange:  dayRange,
	}
	d.nextID++
	d.tasks = append(d.tasks, task)
	return task
}

// TaskOutputs converts the draft back into the raw shape the normalizer
// accepts.
func (d *Draft) TaskOutputs() []types.TaskOutput {
	out := make([]types.TaskOutput, 0, len(d.tasks))
	for _, t := range d.tasks {
		out = append(out, types.TaskOutput{
			Text:      t.Text,
			Stage:     t.Stage,
			StageName: t.StageName,
			DayRange:  t.DayRange,
		})
	}
	return out
}

func stageName(stage int) string {
	switch stage {
	case 1:
		return stageFoundation
	case 2:
		return stagePractice
	case 3:
		return stageAdvancement
	default:
		return fmt.Sprintf("Stage %d", stage)
	}
}
