// Package engine provides the core business logic for roadplan operations.
//
// The engine package acts as the orchestration layer between CLI commands and
// lower-level operations. It loads plan sessions and the committed stroke
// store, runs intents through the planner, and persists the results.
//
// Key components:
//   - Engine: Main orchestrator that coordinates all operations
//   - Init/Discard: Creates and removes plan sessions
//   - Apply: Applies one intent to a session
//   - Commit: Folds a session into the committed store
//   - Status/Preview: Reports on a session
package engine

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"os"

	"go.uber.org/zap"

	"github.com/danieljhkim/roadplan/internal/clock"
	"github.com/danieljhkim/roadplan/internal/config"
	"github.com/danieljhkim/roadplan/internal/fsops"
	"github.com/danieljhkim/roadplan/internal/geom"
	"github.com/danieljhkim/roadplan/internal/hash"
	"github.com/danieljhkim/roadplan/internal/plan"
	"github.com/danieljhkim/roadplan/internal/planner"
	"github.com/danieljhkim/roadplan/internal/state"
)

// DefaultPlan is the session used when no plan name is given.
const DefaultPlan = "default"

// Engine orchestrates all roadplan operations.
// It is the main API surface called by the CLI.
type Engine struct {
	stateStore  state.StateStore
	fs          fsops.FS
	hasher      hash.Hasher
	clock       clock.Clock
	configPaths config.Paths
	cfg         *config.Config
	planner     *planner.Planner
	log         *zap.Logger
	newID       func() plan.BuiltRef
}

// New creates a new Engine with the given dependencies. A nil cfg means
// defaults; a nil logger discards output.
func New(
	stateStore state.StateStore,
	fs fsops.FS,
	hasher hash.Hasher,
	clk clock.Clock,
	paths config.Paths,
	cfg *config.Config,
	logger *zap.Logger,
) *Engine {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		stateStore:  stateStore,
		fs:          fs,
		hasher:      hasher,
		clock:       clk,
		configPaths: paths,
		cfg:         cfg,
		planner:     planner.New(logger.Named("planner")),
		log:         logger,
		newID:       plan.NewBuiltRef,
	}
}

// planName validates name, substituting DefaultPlan when empty.
func (e *Engine) planName(name string) (string, error) {
	if name == "" {
		name = DefaultPlan
	}
	if err := e.fs.ValidateIdentifier(name); err != nil {
		return "", fmt.Errorf("%w: %v", ErrValidation, err)
	}
	return name, nil
}

// loadSession loads the named session. When it does not exist and create is
// set, a fresh one is returned with exists=false.
func (e *Engine) loadSession(name string, create bool) (ps *state.PlanState, exists bool, err error) {
	ps, err = e.stateStore.LoadPlan(name)
	if err == nil {
		return ps, true, nil
	}
	if !errors.Is(err, os.ErrNotExist) {
		return nil, false, fmt.Errorf("failed to load plan %s: %w", name, err)
	}
	if !create {
		return nil, false, fmt.Errorf("%w: plan %s", ErrNotFound, name)
	}
	return state.NewPlanState(name, e.clock.Now()), false, nil
}

func (e *Engine) loadBuilt() (*plan.BuiltStrokes, error) {
	bs, err := e.stateStore.LoadBuilt()
	if err != nil {
		return nil, fmt.Errorf("failed to load built strokes: %w", err)
	}
	built, err := bs.BuiltStrokes()
	if err != nil {
		return nil, fmt.Errorf("failed to load built strokes: %w", err)
	}
	return built, nil
}

// revision fingerprints the plan content of a step, ignoring timestamps.
func (e *Engine) revision(step plan.PlanStep) (string, error) {
	data, err := json.Marshal(state.FromStep(step))
	if err != nil {
		return "", fmt.Errorf("failed to encode plan revision: %w", err)
	}
	return e.hasher.HashBytes(data), nil
}

func finite(points ...geom.Point) bool {
	for _, p := range points {
		if !geom.IsFinite(p) {
			return false
		}
	}
	return true
}

func finiteScalars(values ...float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
