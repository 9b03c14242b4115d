package engine

import (
	"context"
	"fmt"
)

// DiscardRequest represents a request to drop a plan session.
type DiscardRequest struct {
	// Plan is the session name (DefaultPlan if empty)
	Plan string
}

// DiscardResult represents the result of dropping a plan session.
type DiscardResult struct {
	// Plan is the session name
	Plan string `json:"plan"`

	// Existed is false when there was nothing to discard
	Existed bool `json:"existed"`
}

// Discard deletes a plan session without touching the committed store.
func (e *Engine) Discard(ctx context.Context, req *DiscardRequest) (*DiscardResult, error) {
	name, err := e.planName(req.Plan)
	if err != nil {
		return nil, err
	}

	existed, err := e.fs.Exists(e.configPaths.PlanFile(name))
	if err != nil {
		return nil, fmt.Errorf("failed to check plan %s: %w", name, err)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := e.stateStore.DeletePlan(name); err != nil {
		return nil, fmt.Errorf("failed to discard plan %s: %w", name, err)
	}

	return &DiscardResult{Plan: name, Existed: existed}, nil
}
