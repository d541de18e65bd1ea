package store

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/gofrs/flock"
	"github.com/google/uuid"
	yaml "gopkg.in/yaml.v3"

	"github.com/goalwing/goalwing/models"
	"github.com/goalwing/goalwing/types"
)

const (
	defaultDataFile   = "goals.json"
	dataFileKey       = "dataFile"
	dataFileFormatKey = "dataFileFormat"
	defaultDataFormat = "json"
	formatJSON        = "json"
	formatYAML        = "yaml"
	formatTOML        = "toml"
	checksumSuffix    = ".checksum"
)

// FileGoalStore implements the GoalStore interface using a file backend.
// It supports JSON, YAML, and TOML formats and uses file-level locking.
// Goals are kept as an ordered slice, newest first, because listing order
// is part of the store's contract.
type FileGoalStore struct {
	filePath string
	goals    []models.Goal
	flk      *flock.Flock
	format   string
}

// NewFileGoalStore creates a new instance of FileGoalStore.
// It does not initialize the store; Initialize must be called separately.
func NewFileGoalStore() *FileGoalStore {
	return &FileGoalStore{}
}

// Initialize configures the FileGoalStore.
// It expects a 'dataFile' key in the config map specifying the path to the
// data file, defaulting to 'goals.json' in the current working directory.
// It loads existing goals from the file if it exists and establishes a
// file lock.
func (s *FileGoalStore) Initialize(config map[string]string) error {
	if val, ok := config[dataFileKey]; ok && val != "" {
		s.filePath = val
	} else {
		s.filePath = defaultDataFile
	}

	if val, ok := config[dataFileFormatKey]; ok && val != "" {
		formatLower := strings.ToLower(val)
		switch formatLower {
		case formatJSON, formatYAML, formatTOML:
			s.format = formatLower
		default:
			return fmt.Errorf("unsupported dataFileFormat: %s. Supported formats are json, yaml, toml", val)
		}
	} else {
		s.format = defaultDataFormat
	}

	// If filePath was the default and format is not JSON, swap the extension.
	if s.filePath == defaultDataFile && s.format != formatJSON {
		ext := filepath.Ext(s.filePath)
		s.filePath = strings.TrimSuffix(s.filePath, ext) + "." + s.format
	}

	dir := filepath.Dir(s.filePath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	s.flk = flock.New(s.filePath)

	locked, err := s.flk.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire initial lock for %s: %w", s.filePath, err)
	}
	if !locked {
		// Another process holds the lock; block until initialization can run.
		if err := s.flk.Lock(); err != nil {
			return fmt.Errorf("failed to acquire blocking initial lock for %s: %w", s.filePath, err)
		}
	}
	defer func() { _ = s.flk.Unlock() }()

	s.goals = nil
	return s.loadGoalsFromFileInternal()
}

// calculateChecksum computes the SHA256 checksum of the given data.
func calculateChecksum(data []byte) string {
	hasher := sha256.New()
	hasher.Write(data) // Write never returns an error
	return hex.EncodeToString(hasher.Sum(nil))
}

// loadGoalsFromFileInternal reads goals from the file, verifies checksum,
// and unmarshals. Assumes the file lock is already held.
func (s *FileGoalStore) loadGoalsFromFileInternal() error {
	checksumFilePath := s.filePath + checksumSuffix

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.goals = nil
			// If data file doesn't exist, checksum file shouldn't either.
			_ = os.Remove(checksumFilePath)
			if f, createErr := os.OpenFile(s.filePath, os.O_CREATE|os.O_RDWR, 0o644); createErr != nil {
				return fmt.Errorf("%w: failed to create data file %s: %v", types.ErrStorage, s.filePath, createErr)
			} else {
				_ = f.Close()
			}
			if err := os.WriteFile(checksumFilePath, []byte(calculateChecksum([]byte{})), 0o644); err != nil {
				// Non-critical; the next save will attempt to create it.
				fmt.Printf("Warning: could not write initial checksum file %s: %v\n", checksumFilePath, err)
			}
			return nil
		}
		return fmt.Errorf("%w: failed to read data file %s: %v", types.ErrStorage, s.filePath, err)
	}

	// Verify checksum if checksum file exists
	if _, err := os.Stat(checksumFilePath); err == nil {
		expectedChecksumBytes, readErr := os.ReadFile(checksumFilePath)
		if readErr != nil {
			return fmt.Errorf("%w: failed to read checksum file %s: %v", types.ErrStorage, checksumFilePath, readErr)
		}
		expectedChecksum := strings.TrimSpace(string(expectedChecksumBytes))
		actualChecksum := calculateChecksum(data)

		if actualChecksum != expectedChecksum {
			return fmt.Errorf("%w: checksum mismatch for %s: expected %s, got %s. File is corrupt or tampered", types.ErrStorage, s.filePath, expectedChecksum, actualChecksum)
		}
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("%w: error checking checksum file %s: %v", types.ErrStorage, checksumFilePath, err)
	}
	// If the checksum file does not exist but the data file does, this is
	// pre-checksum data. Allow loading it; the next save creates a checksum.

	if len(data) == 0 {
		_ = os.WriteFile(checksumFilePath, []byte(calculateChecksum([]byte{})), 0o644) // best effort
		s.goals = nil
		return nil
	}

	var goalList models.GoalList
	switch s.format {
	case formatJSON:
		if err := json.Unmarshal(data, &goalList); err != nil {
			return fmt.Errorf("%w: failed to unmarshal JSON from %s: %v", types.ErrStorage, s.filePath, err)
		}
	case formatYAML:
		if err := yaml.Unmarshal(data, &goalList); err != nil {
			return fmt.Errorf("%w: failed to unmarshal YAML from %s: %v", types.ErrStorage, s.filePath, err)
		}
	case formatTOML:
		if err := toml.Unmarshal(data, &goalList); err != nil {
			return fmt.Errorf("%w: failed to unmarshal TOML from %s: %v", types.ErrStorage, s.filePath, err)
		}
	default:
		return fmt.Errorf("unsupported data format for loading: %s", s.format)
	}

	s.goals = goalList.Goals
	return nil
}

// saveGoalsToFileInternal writes goals to file, then writes its checksum.
// Assumes the file lock is already held.
func (s *FileGoalStore) saveGoalsToFileInternal() error {
	goalList := models.GoalList{
		Goals:      s.goals,
		TotalCount: len(s.goals),
	}
	if goalList.Goals == nil {
		goalList.Goals = []models.Goal{}
	}

	var marshaledData []byte
	var err error

	switch s.format {
	case formatJSON:
		marshaledData, err = json.MarshalIndent(goalList, "", "  ")
	case formatYAML:
		marshaledData, err = yaml.Marshal(goalList)
	case formatTOML:
		buf := new(bytes.Buffer)
		if encodeErr := toml.NewEncoder(buf).Encode(goalList); encodeErr == nil {
			marshaledData = buf.Bytes()
		} else {
			err = fmt.Errorf("failed to marshal TOML: %w", encodeErr)
		}
	default:
		return fmt.Errorf("unsupported data format for saving: %s", s.format)
	}

	if err != nil {
		return fmt.Errorf("%w: failed to marshal goals to %s: %v", types.ErrStorage, s.format, err)
	}

	tempFilePath := s.filePath + ".tmp"
	checksumFilePath := s.filePath + checksumSuffix
	tempChecksumFilePath := checksumFilePath + ".tmp"

	defer func() { _ = os.Remove(tempFilePath) }()
	defer func() { _ = os.Remove(tempChecksumFilePath) }()

	if err := os.WriteFile(tempFilePath, marshaledData, 0o644); err != nil {
		return fmt.Errorf("%w: failed to write to temporary data file %s: %v", types.ErrStorage, tempFilePath, err)
	}

	actualChecksum := calculateChecksum(marshaledData)
	if err := os.WriteFile(tempChecksumFilePath, []byte(actualChecksum), 0o644); err != nil {
		return fmt.Errorf("%w: failed to write to temporary checksum file %s: %v", types.ErrStorage, tempChecksumFilePath, err)
	}

	// Atomically move data file and then checksum file
	if err := os.Rename(tempFilePath, s.filePath); err != nil {
		return fmt.Errorf("%w: failed to rename temporary data file %s to %s: %v", types.ErrStorage, tempFilePath, s.filePath, err)
	}
	if err := os.Rename(tempChecksumFilePath, checksumFilePath); err != nil {
		return fmt.Errorf("%w: data file %s updated but checksum file %s was not; store may be inconsistent: %v", types.ErrStorage, s.filePath, checksumFilePath, err)
	}

	return nil
}

// generateID creates a new universally unique identifier string.
func generateID() string {
	return uuid.NewString()
}

// indexOf returns the position of the goal with the given ID, or -1.
func (s *FileGoalStore) indexOf(id string) int {
	for i := range s.goals {
		if s.goals[i].ID == id {
			return i
		}
	}
	return -1
}

// CreateGoal adds a new goal to the store.
// It assigns the ID and creation timestamp, validates the full schedule,
// and prepends the goal so listings run newest first.
func (s *FileGoalStore) CreateGoal(params CreateGoalParams) (models.Goal, error) {
	if err := s.flk.Lock(); err != nil {
		return models.Goal{}, fmt.Errorf("%w: could not lock file for create: %v", types.ErrStorage, err)
	}
	defer func() { _ = s.flk.Unlock() }()

	// Reload state from disk so concurrent processes see each other's writes.
	if err := s.loadGoalsFromFileInternal(); err != nil {
		return models.Goal{}, fmt.Errorf("failed to reload goals before create: %w", err)
	}

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

	if err := s.saveGoalsToFileInternal(); err != nil {
		// Reloading from the unchanged file is the simplest rollback.
		_ = s.loadGoalsFromFileInternal()
		return models.Goal{}, fmt.Errorf("failed to save new goal: %w", err)
	}

	return goal, nil
}

// ListGoals retrieves all goals, newest first.
func (s *FileGoalStore) ListGoals() ([]models.Goal, error) {
	if err := s.flk.Lock(); err != nil {
		return nil, fmt.Errorf("%w: failed to acquire lock for ListGoals: %v", types.ErrStorage, err)
	}
	defer func() { _ = s.flk.Unlock() }()

	if err := s.loadGoalsFromFileInternal(); err != nil {
		return nil, fmt.Errorf("failed to load goals for ListGoals: %w", err)
	}

	out := make([]models.Goal, len(s.goals))
	copy(out, s.goals)
	return out, nil
}

// GetGoal retrieves a goal by its unique identifier.
func (s *FileGoalStore) GetGoal(id string) (models.Goal, error) {
	if err := s.flk.Lock(); err != nil {
		return models.Goal{}, fmt.Errorf("%w: failed to acquire lock for GetGoal: %v", types.ErrStorage, err)
	}
	defer func() { _ = s.flk.Unlock() }()

	if err := s.loadGoalsFromFileInternal(); err != nil {
		return models.Goal{}, fmt.Errorf("failed to load goals for GetGoal: %w", err)
	}

	idx := s.indexOf(id)
	if idx < 0 {
		return models.Goal{}, fmt.Errorf("%w: goal with ID %s", types.ErrNotFound, id)
	}
	return s.goals[idx], nil
}

// ToggleTask flips the completion state of one task on one day of a goal's
// schedule and persists the result. An unknown goal, date, or task ID is
// reported as not found; nothing is written and no phantom entry appears.
func (s *FileGoalStore) ToggleTask(goalID, date, taskID string) (models.Goal, error) {
	if err := s.flk.Lock(); err != nil {
		return models.Goal{}, fmt.Errorf("%w: could not lock file for toggle: %v", types.ErrStorage, err)
	}
	defer func() { _ = s.flk.Unlock() }()

	if err := s.loadGoalsFromFileInternal(); err != nil {
		return models.Goal{}, fmt.Errorf("failed to reload goals before toggle: %w", err)
	}

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

	if err := s.saveGoalsToFileInternal(); err != nil {
		_ = s.loadGoalsFromFileInternal()
		return models.Goal{}, fmt.Errorf("failed to save toggled goal: %w", err)
	}

	return goal, nil
}

// DeleteGoal removes a goal from the store by its unique identifier.
func (s *FileGoalStore) DeleteGoal(id string) error {
	if err := s.flk.Lock(); err != nil {
		return fmt.Errorf("%w: could not lock file for delete: %v", types.ErrStorage, err)
	}
	defer func() { _ = s.flk.Unlock() }()

	if err := s.loadGoalsFromFileInternal(); err != nil {
		return fmt.Errorf("failed to reload goals before delete: %w", err)
	}

	idx := s.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("%w: goal with ID %s", types.ErrNotFound, id)
	}

	s.goals = append(s.goals[:idx], s.goals[idx+1:]...)

	if err := s.saveGoalsToFileInternal(); err != nil {
		_ = s.loadGoalsFromFileInternal()
		return fmt.Errorf("failed to save after deleting goal: %w", err)
	}

	return nil
}

// DeleteAllGoals removes all goals from the store.
// This is a destructive operation; the command layer should have already
// confirmed with the user.
func (s *FileGoalStore) DeleteAllGoals() error {
	if err := s.flk.Lock(); err != nil {
		return fmt.Errorf("%w: failed to acquire lock for DeleteAllGoals: %v", types.ErrStorage, err)
	}
	defer func() { _ = s.flk.Unlock() }()

	s.goals = nil

	if err := s.saveGoalsToFileInternal(); err != nil {
		return fmt.Errorf("failed to clear data file by saving empty goal list: %w", err)
	}
	return nil
}

// Backup creates a backup of the current goal data to the specified
// destination path.
func (s *FileGoalStore) Backup(destinationPath string) error {
	if err := s.flk.Lock(); err != nil {
		return fmt.Errorf("%w: failed to acquire lock for backup: %v", types.ErrStorage, err)
	}
	defer func() { _ = s.flk.Unlock() }()

	input, err := os.ReadFile(s.filePath)
	if err != nil {
		return fmt.Errorf("%w: failed to read source file %s for backup: %v", types.ErrStorage, s.filePath, err)
	}

	if err = os.WriteFile(destinationPath, input, 0o644); err != nil {
		return fmt.Errorf("%w: failed to write backup file to %s: %v", types.ErrStorage, destinationPath, err)
	}
	// The backup does not copy the .checksum file; a restore regenerates it
	// on the next save.
	return nil
}

// Restore replaces the current goal data with data from the specified
// source path. The old checksum file is removed; a new one is generated
// on the next successful save.
func (s *FileGoalStore) Restore(sourcePath string) error {
	if err := s.flk.Lock(); err != nil {
		return fmt.Errorf("%w: failed to acquire lock for restore: %v", types.ErrStorage, err)
	}
	defer func() { _ = s.flk.Unlock() }()

	sourceData, err := os.ReadFile(sourcePath)
	if err != nil {
		return fmt.Errorf("%w: failed to read source backup file %s: %v", types.ErrStorage, sourcePath, err)
	}

	tempFilePath := s.filePath + ".tmp_restore"
	defer func() { _ = os.Remove(tempFilePath) }()

	if err = os.WriteFile(tempFilePath, sourceData, 0o644); err != nil {
		return fmt.Errorf("%w: failed to write restored data to temporary file %s: %v", types.ErrStorage, tempFilePath, err)
	}

	if err = os.Rename(tempFilePath, s.filePath); err != nil {
		return fmt.Errorf("%w: failed to atomically replace file %s with restored data from %s: %v", types.ErrStorage, s.filePath, sourcePath, err)
	}

	checksumFilePath := s.filePath + checksumSuffix
	_ = os.Remove(checksumFilePath) // best effort

	return s.loadGoalsFromFileInternal()
}

// Close releases any resources held by the store, such as file locks.
// flock.Unlock() is idempotent and can be called even if the lock is not
// held by this process.
func (s *FileGoalStore) Close() error {
	if s.flk != nil {
		return s.flk.Unlock()
	}
	return nil
}

// Verify interface compliance at compile time
var _ GoalStore = (*FileGoalStore)(nil)
