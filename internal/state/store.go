package state

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/danieljhkim/roadplan/internal/fsops"
)

// StateStore provides an interface for persisting plan sessions and the
// committed stroke baseline.
type StateStore interface {
	// LoadPlan loads the session with the given name.
	// Returns os.ErrNotExist if the session doesn't exist.
	LoadPlan(name string) (*PlanState, error)

	// SavePlan saves the session atomically.
	SavePlan(name string, state *PlanState) error

	// DeletePlan deletes the session file.
	DeletePlan(name string) error

	// ListPlans returns the names of all saved sessions, sorted.
	ListPlans() ([]string, error)

	// LoadBuilt loads the committed baseline. A missing file yields an empty baseline.
	LoadBuilt() (*BuiltState, error)

	// SaveBuilt saves the committed baseline atomically.
	SaveBuilt(state *BuiltState) error
}

// FileStateStore implements StateStore using JSON files on disk.
type FileStateStore struct {
	fs        fsops.FS
	plansDir  string
	builtPath string
}

// NewFileStateStore creates a new FileStateStore.
func NewFileStateStore(fs fsops.FS, plansDir, builtPath string) *FileStateStore {
	return &FileStateStore{
		fs:        fs,
		plansDir:  plansDir,
		builtPath: builtPath,
	}
}

func (s *FileStateStore) planPath(name string) (string, error) {
	if err := s.fs.ValidateIdentifier(name); err != nil {
		return "", fmt.Errorf("invalid plan name: %w", err)
	}
	return filepath.Join(s.plansDir, name+".json"), nil
}

// LoadPlan loads the session with the given name.
func (s *FileStateStore) LoadPlan(name string) (*PlanState, error) {
	path, err := s.planPath(name)
	if err != nil {
		return nil, err
	}

	data, err := s.fs.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, os.ErrNotExist
		}
		return nil, fmt.Errorf("failed to read plan state: %w", err)
	}

	var state PlanState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal plan state: %w", err)
	}
	if state.Version != SchemaVersion {
		return nil, fmt.Errorf("%w: plan %s has version %d", ErrUnsupportedSchema, name, state.Version)
	}

	return &state, nil
}

// SavePlan saves the session atomically.
func (s *FileStateStore) SavePlan(name string, state *PlanState) error {
	path, err := s.planPath(name)
	if err != nil {
		return err
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal plan state: %w", err)
	}

	if err := s.fs.AtomicWrite(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write plan state: %w", err)
	}

	return nil
}

// DeletePlan deletes the session file.
func (s *FileStateStore) DeletePlan(name string) error {
	path, err := s.planPath(name)
	if err != nil {
		return err
	}

	if err := s.fs.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to delete plan state: %w", err)
	}

	return nil
}

// ListPlans returns the names of all saved sessions, sorted.
func (s *FileStateStore) ListPlans() ([]string, error) {
	files, err := s.fs.ReadDir(s.plansDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}

	names := make([]string, 0, len(files))
	for _, f := range files {
		if name, ok := strings.CutSuffix(f, ".json"); ok {
			names = append(names, name)
		}
	}
	return names, nil
}

// LoadBuilt loads the committed baseline.
func (s *FileStateStore) LoadBuilt() (*BuiltState, error) {
	data, err := s.fs.ReadFile(s.builtPath)
	if err != nil {
		if os.IsNotExist(err) {
			return NewBuiltState(), nil
		}
		return nil, fmt.Errorf("failed to read built state: %w", err)
	}

	var state BuiltState
	if err := json.Unmarshal(data, &state); err != nil {
		return nil, fmt.Errorf("failed to unmarshal built state: %w", err)
	}
	if state.Version != SchemaVersion {
		return nil, fmt.Errorf("%w: built store has version %d", ErrUnsupportedSchema, state.Version)
	}

	return &state, nil
}

// SaveBuilt saves the committed baseline atomically.
func (s *FileStateStore) SaveBuilt(state *BuiltState) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal built state: %w", err)
	}

	if err := s.fs.AtomicWrite(s.builtPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write built state: %w", err)
	}

	return nil
}
