package store

import (
	"github.com/goalwing/goalwing/models"
	"github.com/goalwing/goalwing/types"
)

// CreateGoalParams carries everything the store needs to mint a new goal.
// ID and CreatedAt are store-generated; the schedule must already be
// normalized to one DayPlan per day of the period.
type CreateGoalParams struct {
	Title       string
	Description string
	Period      int
	StartDate   string
	EndDate     string
	Schedule    []models.DayPlan
	RawTasks    []types.TaskOutput
}

// GoalStore defines the interface for goal persistence.
// It outlines the contract for managing the goal collection, including
// creation, lookup, per-day task toggling, deletion, backup, restore,
// and resource cleanup.
type GoalStore interface {
	// Initialize configures the store with necessary parameters, such as
	// file path and data format. It should be called before any other
	// store operations.
	Initialize(config map[string]string) error

	// CreateGoal adds a new goal to the store. The store assigns the ID
	// and creation timestamp and validates the schedule before saving.
	// The created goal is prepended, so listings run newest first.
	CreateGoal(params CreateGoalParams) (models.Goal, error)

	// ListGoals retrieves all goals, newest first.
	ListGoals() ([]models.Goal, error)

	// GetGoal retrieves a goal by its unique identifier.
	// It returns types.ErrNotFound when no goal has that ID.
	GetGoal(id string) (models.Goal, error)

	// ToggleTask flips the completion state of one task on one day of a
	// goal's schedule. An unknown goal, date, or task ID returns
	// types.ErrNotFound; the schedule never grows a phantom entry.
	ToggleTask(goalID, date, taskID string) (models.Goal, error)

	// DeleteGoal removes a goal from the store by its unique identifier.
	// It returns types.ErrNotFound when no goal has that ID.
	DeleteGoal(id string) error

	// DeleteAllGoals removes all goals from the store.
	// This is a destructive operation.
	DeleteAllGoals() error

	// Backup creates a backup of the current goal data to the specified
	// destination path.
	Backup(destinationPath string) error

	// Restore replaces the current goal data with data from the specified
	// source path. This operation may be destructive to current data.
	Restore(sourcePath string) error

	// Close releases any resources held by the store, such as file locks.
	Close() error
}
