package engine

import (
	"context"
	"fmt"

	"github.com/danieljhkim/roadplan/internal/state"
)

// InitRequest represents a request to start a plan session.
type InitRequest struct {
	// Plan is the session name (DefaultPlan if empty)
	Plan string

	// Force replaces an existing session
	Force bool
}

// InitResult represents the result of starting a plan session.
type InitResult struct {
	// Plan is the session name
	Plan string `json:"plan"`

	// Path is the session file
	Path string `json:"path"`

	// Replaced is true when an existing session was overwritten
	Replaced bool `json:"replaced"`
}

// Init creates an empty plan session.
func (e *Engine) Init(ctx context.Context, req *InitRequest) (*InitResult, error) {
	name, err := e.planName(req.Plan)
	if err != nil {
		return nil, err
	}

	_, exists, err := e.loadSession(name, true)
	if err != nil {
		return nil, err
	}
	if exists && !req.Force {
		return nil, fmt.Errorf("%w: %s (use --force to replace it)", ErrPlanExists, name)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	if err := e.fs.MkdirAll(e.configPaths.Plans, 0755); err != nil {
		return nil, fmt.Errorf("failed to create plans directory: %w", err)
	}
	if err := e.stateStore.SavePlan(name, state.NewPlanState(name, e.clock.Now())); err != nil {
		return nil, fmt.Errorf("failed to save plan %s: %w", name, err)
	}

	return &InitResult{
		Plan:     name,
		Path:     e.configPaths.PlanFile(name),
		Replaced: exists,
	}, nil
}
