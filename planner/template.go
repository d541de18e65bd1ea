// Package planner turns a goal and period into a canonical day-indexed
// schedule: a local stage template stands in when the remote generation
// service is unavailable, and the normalizer converts either producer's
// raw output into per-day task lists.
package planner

import (
	"fmt"

	"github.com/goalwing/goalwing/types"
)

const (
	// stageSplitThreshold is the shortest period that gets the 3-stage split.
	stageSplitThreshold = 9
	tasksPerStage       = 3
)

const (
	stageFoundation  = "Foundation"
	stagePractice    = "Practice"
	stageAdvancement = "Advancement"
	stageRoutine     = "Routine"
)

// GenerateTemplate produces the local fallback task list for a goal.
// Periods of 9 days or more are split into three stages of
// ceil(period/3), ceil(period/3) and the remainder; shorter periods get a
// flat routine list. Deterministic: identical inputs yield identical output.
func GenerateTemplate(goalText string, period int) ([]types.TaskOutput, error) {
	if period <= 0 {
		return nil, fmt.Errorf("%w: period must be positive, got %d", types.ErrValidation, period)
	}
	if period < stageSplitThreshold {
		return routineTasks(period), nil
	}
	return stagedTasks(goalText, period), nil
}

func stagedTasks(goalText string, period int) []types.TaskOutput {
	s1 := (period + 2) / 3
	s2 := s1
	s3 := period - s1 - s2
	if s3 < 0 {
		// Unreachable at the current threshold (s3 >= 2 for period >= 9),
		// but the remainder must never go negative.
		s3 = 0
	}

	stage1Range := fmt.Sprintf("1-%d", s1)
	stage2Range := fmt.Sprintf("%d-%d", s1+1, s1+s2)
	stage3Range := fmt.Sprintf("%d-%d", s1+s2+1, period)

	tasks := make([]types.TaskOutput, 0, 3*tasksPerStage)
	appendStage := func(stage int, name, dayRange string, texts [tasksPerStage]string) {
		for _, text := range texts {
			tasks = append(tasks, types.TaskOutput{
				Text:      text,
				Stage:     stage,
				StageName: name,
				DayRange:  dayRange,
			})
		}
	}

	appendStage(1, stageFoundation, stage1Range, [tasksPerStage]string{
		fmt.Sprintf("Days %s: learn the core concepts and theory behind %s", stage1Range, goalText),
		fmt.Sprintf("Days %s: read foundational material for 30 minutes each day", stage1Range),
		fmt.Sprintf("Days %s: organize notes and build a knowledge outline", stage1Range),
	})
	appendStage(2, stagePractice, stage2Range, [tasksPerStage]string{
		fmt.Sprintf("Days %s: start hands-on practice with a small project", stage2Range),
		fmt.Sprintf("Days %s: complete a daily exercise to cement the basics", stage2Range),
		fmt.Sprintf("Days %s: review earlier material and close any gaps", stage2Range),
	})
	if s3 > 0 {
		appendStage(3, stageAdvancement, stage3Range, [tasksPerStage]string{
			fmt.Sprintf("Days %s: build a capstone project that ties everything together", stage3Range),
			fmt.Sprintf("Days %s: dig into the advanced side of %s", stage3Range, goalText),
			fmt.Sprintf("Days %s: write up what you learned and plan the next goal", stage3Range),
		})
	}
	return tasks
}

func routineTasks(period int) []types.TaskOutput {
	dayRange := fmt.Sprintf("1-%d", period)
	texts := []string{
		"Read the relevant documentation for 30 minutes",
		"Complete one small practice project",
		"Review yesterday's material",
		"Organize and update study notes",
		"Finish the daily coding exercise",
	}
	tasks := make([]types.TaskOutput, 0, len(texts))
	for _, text := range texts {
		tasks = append(tasks, types.TaskOutput{
			Text:      text,
			Stage:     0,
			StageName: stageRoutine,
			DayRange:  dayRange,
		})
	}
	return tasks
}
