package store

import (
	"fmt"
	"sync"
	"time"

	"github.com/goalwing/goalwing/models"
	"github.com/goalwing/goalwing/types"
)

// MemoryGoalStore is an in-memory GoalStore. It backs the HTTP server
// tests and any caller that wants goal semantics without a data file.
type MemoryGoalStore struct {
	mu    sync.RWMutex
	goals []models.Goal
}

// NewMemoryGoalStore creates an empty in-memory store.
func NewMemoryGoalStore() *MemoryGoalStore {
	return &MemoryGoalStore{}
}

// Initialize is a no-op for the in-memory store.
func (s *MemoryGoalStore) Initialize(config map[string]string) error {
	return nil
}

func (s *MemoryGoalStore) indexOf(id string) int {
	for i := range s.goals {
		if s.goals[i].ID == id {
			return i
		}
	}
	return -1
}

// CreateGoal adds a new goal, assigning its ID and creation timestamp.
func (s *MemoryGoalStore) CreateGoal(params CreateGoalParams) (models.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	goal := models.Goal{
		ID:          generateID(),
		Title:       params.Title,
		Description: params.Description,
		Period:      params.Period,
		StartDate:   params.StartDate,
		EndDate:     params.EndDate,
		DailyTasks:  params.Schedule,
		Tasks:       params.RawTasks,
		CreatedAt:   time.Now().UTC(),
	}

	if err := goal.Validate(); err != nil {
		return models.Goal{}, fmt.Errorf("validation failed for new goal: %w", err)
	}

	s.goals = append([]models.Goal{goal}, s.goals...)
	return goal, nil
}

// ListGoals retrieves all goals, newest first.
func (s *MemoryGoalStore) ListGoals() ([]models.Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.Goal, len(s.goals))
	copy(out, s.goals)
	return out, nil
}

// GetGoal retrieves a goal by ID.
func (s *MemoryGoalStore) GetGoal(id string) (models.Goal, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return models.Goal{}, fmt.Errorf("%w: goal with ID %s", types.ErrNotFound, id)
	}
	return s.goals[idx], nil
}

// ToggleTask flips the completion state of one task on one day. An
// unknown goal, date, or task ID is reported as not found.
func (s *MemoryGoalStore) ToggleTask(goalID, date, taskID string) (models.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(goalID)
	if idx < 0 {
		return models.Goal{}, fmt.Errorf("%w: goal with ID %s", types.ErrNotFound, goalID)
	}

	goal := s.goals[idx]
	day := goal.Day(date)
	if day == nil {
		return models.Goal{}, fmt.Errorf("%w: goal %s has no day %s", types.ErrNotFound, goalID, date)
	}
	toggled := false
	for ti := range day.Tasks {
		if day.Tasks[ti].ID == taskID {
			day.Tasks[ti].Completed = !day.Tasks[ti].Completed
			toggled = true
		}
	}
	if !toggled {
		return models.Goal{}, fmt.Errorf("%w: no task %s on %s", types.ErrNotFound, taskID, date)
	}
	s.goals[idx] = goal
	return goal, nil
}

// DeleteGoal removes a goal by ID.
func (s *MemoryGoalStore) DeleteGoal(id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	idx := s.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: goal with ID %s", types.ErrNotFound, id)
	}
	s.goals = append(s.goals[:idx], s.goals[idx+1:]...)
	return nil
}

// DeleteAllGoals removes all goals.
func (s *MemoryGoalStore) DeleteAllGoals() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.goals = nil
	return nil
}

// Backup is not supported by the in-memory store.
func (s *MemoryGoalStore) Backup(destinationPath string) error {
	return fmt.Errorf("%w: in-memory store does not support backup: %s", types.ErrStorage, destinationPath)
}

// Restore is not supported by the in-memory store.
func (s *MemoryGoalStore) Restore(sourcePath string) error {
	return fmt.Errorf("%w: in-memory store does not support restore: %s", types.ErrStorage, sourcePath)
}

// Close is a no-op for the in-memory store.
func (s *MemoryGoalStore) Close() error {
	return nil
}

// Verify interface compliance at compile time
var _ GoalStore = (*MemoryGoalStore)(nil)
