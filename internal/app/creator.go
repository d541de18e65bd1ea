// Package app holds the goal-creation flow shared by the CLI and the
// HTTP server: generate a raw plan (remote service with retries, local
// template as fallback), normalize it into a day-indexed schedule, and
// persist the result.
package app

import (
	"context"
	"fmt"

	"github.com/goalwing/goalwing/internal/retry"
	"github.com/goalwing/goalwing/llm"
	"github.com/goalwing/goalwing/models"
	"github.com/goalwing/goalwing/planner"
	"github.com/goalwing/goalwing/store"
	"github.com/goalwing/goalwing/types"
)

// TemplateAdvisory is surfaced to the user when the remote service failed
// and the built-in stage template was used instead.
const TemplateAdvisory = "plan generation service unavailable; used the built-in stage template instead"

// CreateGoalInput is the user-supplied part of a new goal.
type CreateGoalInput struct {
	Title       string
	Description string
	Period      int
	StartDate   string
}

// Creator runs the create-goal flow. Generator may be nil, in which case
// plans always come from the local template.
type Creator struct {
	Store     store.GoalStore
	Generator llm.PlanGenerator
	Retry     retry.Policy
}

// GeneratePlan produces a raw plan for the input. It tries the remote
// service first, retrying per the policy; when every attempt fails it
// falls back to the local stage template. The returned GenerationError is
// non-nil exactly when the fallback was used: the failure is recoverable,
// so it is reported alongside a valid plan rather than instead of one.
func (c *Creator) GeneratePlan(ctx context.Context, input CreateGoalInput) (types.RawPlan, *types.GenerationError, error) {
	if input.Title == "" {
		return types.RawPlan{}, nil, fmt.Errorf("%w: goal title is required", types.ErrValidation)
	}
	if input.Period <= 0 {
		return types.RawPlan{}, nil, fmt.Errorf("%w: period must be positive, got %d", types.ErrValidation, input.Period)
	}
	endDate, err := models.AddDays(input.StartDate, input.Period-1)
	if err != nil {
		return types.RawPlan{}, nil, err
	}

	if c.Generator == nil {
		plan, err := c.templatePlan(input)
		return plan, nil, err
	}

	req := types.PlanRequest{
		Goal:      input.Title,
		Period:    input.Period,
		StartDate: input.StartDate,
		EndDate:   endDate,
	}

	var plan types.RawPlan
	genErr := c.Retry.Do(ctx, func() error {
		var opErr error
		plan, opErr = c.Generator.GeneratePlan(ctx, req)
		return opErr
	})
	if genErr == nil {
		return plan, nil, nil
	}

	attempts := c.Retry.MaxAttempts
	if attempts <= 0 {
		attempts = retry.DefaultMaxAttempts
	}
	fallback, err := c.templatePlan(input)
	if err != nil {
		return types.RawPlan{}, nil, err
	}
	return fallback, &types.GenerationError{Attempts: attempts, Err: genErr}, nil
}

func (c *Creator) templatePlan(input CreateGoalInput) (types.RawPlan, error) {
	tasks, err := planner.GenerateTemplate(input.Title, input.Period)
	if err != nil {
		return types.RawPlan{}, err
	}
	return types.FlatPlan(tasks), nil
}

// Persist normalizes a raw plan into the day-indexed schedule and stores
// the goal. The raw flat tasks are kept on the goal for audit.
func (c *Creator) Persist(input CreateGoalInput, plan types.RawPlan) (models.Goal, error) {
	schedule, err := planner.Normalize(plan, input.StartDate, input.Period)
	if err != nil {
		return models.Goal{}, err
	}
	endDate, err := models.AddDays(input.StartDate, input.Period-1)
	if err != nil {
		return models.Goal{}, err
	}

	return c.Store.CreateGoal(store.CreateGoalParams{
		Title:       input.Title,
		Description: input.Description,
		Period:      input.Period,
		StartDate:   input.StartDate,
		EndDate:     endDate,
		Schedule:    schedule,
		RawTasks:    plan.Flat,
	})
}

// CreateGoal runs the full flow: generate, normalize, persist. The
// returned GenerationError is non-nil when the local template stood in
// for the remote service; the goal is still created.
func (c *Creator) CreateGoal(ctx context.Context, input CreateGoalInput) (models.Goal, *types.GenerationError, error) {
	plan, genErr, err := c.GeneratePlan(ctx, input)
	if err != nil {
		return models.Goal{}, nil, err
	}
	goal, err := c.Persist(input, plan)
	if err != nil {
		return models.Goal{}, nil, err
	}
	return goal, genErr, nil
}
