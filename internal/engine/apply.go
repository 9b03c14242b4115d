package engine

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/danieljhkim/roadplan/internal/config"
	"github.com/danieljhkim/roadplan/internal/plan"
)

// ApplyRequest represents a request to apply one intent to a plan session.
type ApplyRequest struct {
	// Plan is the session name (DefaultPlan if empty)
	Plan string

	// Intent is the edit to apply
	Intent plan.Intent

	// Settings overrides the configured editor settings when set
	Settings *config.Settings

	// DryRun computes the result without saving it
	DryRun bool
}

// ApplyResult represents the result of applying an intent.
type ApplyResult struct {
	// Plan is the session name
	Plan string

	// Intent is the kind of the applied intent
	Intent string

	// Started is true when the session did not exist before
	Started bool

	// RevisionBefore and RevisionAfter fingerprint the plan content
	RevisionBefore string
	RevisionAfter  string

	// Changed is true when the plan content differs after the intent
	Changed bool

	// DryRun is true when nothing was saved
	DryRun bool

	// Step is the resulting plan step
	Step plan.PlanStep
}

// Apply loads the session (or starts an empty one), runs the intent through
// the planner against the committed strokes and saves the resulting step.
func (e *Engine) Apply(ctx context.Context, req *ApplyRequest) (*ApplyResult, error) {
	name, err := e.planName(req.Plan)
	if err != nil {
		return nil, err
	}
	if err := validateIntent(req.Intent); err != nil {
		return nil, err
	}

	ps, exists, err := e.loadSession(name, true)
	if err != nil {
		return nil, err
	}
	current, err := ps.Step()
	if err != nil {
		return nil, fmt.Errorf("failed to decode plan %s: %w", name, err)
	}
	built, err := e.loadBuilt()
	if err != nil {
		return nil, err
	}

	settings := e.cfg.Settings
	if req.Settings != nil {
		settings = *req.Settings
	}

	before, err := e.revision(current)
	if err != nil {
		return nil, err
	}
	current.Intent = req.Intent
	next := e.planner.Apply(current, built, settings)
	after, err := e.revision(next)
	if err != nil {
		return nil, err
	}

	result := &ApplyResult{
		Plan:           name,
		Intent:         req.Intent.Kind(),
		Started:        !exists,
		RevisionBefore: before,
		RevisionAfter:  after,
		Changed:        before != after,
		DryRun:         req.DryRun,
		Step:           next,
	}

	e.log.Info("applied intent",
		zap.String("plan", name),
		zap.String("intent", result.Intent),
		zap.Int("new_strokes", len(next.Delta.NewStrokes)),
		zap.Int("strokes_to_destroy", len(next.Delta.StrokesToDestroy)),
		zap.Int("selections", len(next.Selections)),
		zap.Bool("changed", result.Changed),
		zap.Bool("dry_run", req.DryRun))

	if req.DryRun {
		return result, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	ps.SetStep(next)
	ps.UpdatedAt = e.clock.Now()
	if err := e.stateStore.SavePlan(name, ps); err != nil {
		return nil, fmt.Errorf("failed to save plan %s: %w", name, err)
	}

	return result, nil
}

// validateIntent rejects intents the planner cannot meaningfully apply.
func validateIntent(intent plan.Intent) error {
	switch in := intent.(type) {
	case nil:
		return fmt.Errorf("%w: no intent given", ErrValidation)
	case plan.NewRoad:
		if !finite(in.Points...) {
			return fmt.Errorf("%w: road points must be finite", ErrValidation)
		}
	case plan.ContinueRoad:
		if len(in.ContinueFrom) == 0 {
			return fmt.Errorf("%w: no stroke to continue", ErrValidation)
		}
		for _, c := range in.ContinueFrom {
			if c.Index < 0 {
				return fmt.Errorf("%w: negative stroke index %d", ErrValidation, c.Index)
			}
		}
		if !finite(in.AdditionalPoints...) || !finite(in.StartReferencePoint) {
			return fmt.Errorf("%w: continuation points must be finite", ErrValidation)
		}
	case plan.Select:
		if !finiteScalars(in.Start, in.End) {
			return fmt.Errorf("%w: selection range must be finite", ErrValidation)
		}
	case plan.MoveSelection:
		if !finite(in.Delta) {
			return fmt.Errorf("%w: move delta must be finite", ErrValidation)
		}
	}
	return nil
}
