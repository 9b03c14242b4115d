package engine

import (
	"context"
	"fmt"
	"sort"

	"go.uber.org/zap"

	"github.com/danieljhkim/roadplan/internal/plan"
	"github.com/danieljhkim/roadplan/internal/state"
)

// CommitRequest represents a request to commit a plan session.
type CommitRequest struct {
	// Plan is the session name (DefaultPlan if empty)
	Plan string

	// DryRun shows what would be committed without actually committing
	DryRun bool
}

// CommitResult represents the result of a commit operation.
type CommitResult struct {
	// Plan is the session name
	Plan string

	// Created are the refs assigned to the plan's new strokes, in stroke order
	Created []plan.BuiltRef

	// Destroyed are the committed refs removed by the plan, sorted
	Destroyed []plan.BuiltRef

	// BuiltStrokes is the size of the committed store after the commit
	BuiltStrokes int

	// DryRun is true when nothing was saved
	DryRun bool
}

// Commit folds the session's delta into the committed store and resets the
// session to an empty step.
func (e *Engine) Commit(ctx context.Context, req *CommitRequest) (*CommitResult, error) {
	name, err := e.planName(req.Plan)
	if err != nil {
		return nil, err
	}

	ps, _, err := e.loadSession(name, false)
	if err != nil {
		return nil, err
	}
	step, err := ps.Step()
	if err != nil {
		return nil, fmt.Errorf("failed to decode plan %s: %w", name, err)
	}
	if step.Delta.IsEmpty() {
		return nil, fmt.Errorf("%w: plan %s has no changes", ErrNothingToCommit, name)
	}

	built, err := e.loadBuilt()
	if err != nil {
		return nil, err
	}

	next, created := built.Commit(step.Delta, e.newID)
	result := &CommitResult{
		Plan:         name,
		Created:      created,
		Destroyed:    destroyedRefs(step.Delta),
		BuiltStrokes: next.Len(),
		DryRun:       req.DryRun,
	}
	for _, ref := range result.Destroyed {
		if _, ok := built.Get(ref); !ok {
			e.log.Warn("destroyed stroke no longer committed", zap.String("plan", name), zap.String("stroke", ref.String()))
		}
	}
	if req.DryRun {
		return result, nil
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	now := e.clock.Now()
	if err := e.stateStore.SaveBuilt(state.FromBuilt(next, now)); err != nil {
		return nil, fmt.Errorf("failed to save built strokes: %w", err)
	}
	ps.SetStep(plan.NewPlanStep())
	ps.UpdatedAt = now
	if err := e.stateStore.SavePlan(name, ps); err != nil {
		return nil, fmt.Errorf("failed to reset plan %s: %w", name, err)
	}

	e.log.Info("committed plan",
		zap.String("plan", name),
		zap.Int("created", len(created)),
		zap.Int("destroyed", len(result.Destroyed)),
		zap.Int("built_strokes", next.Len()))

	return result, nil
}

func destroyedRefs(delta plan.PlanDelta) []plan.BuiltRef {
	refs := make([]plan.BuiltRef, 0, len(delta.StrokesToDestroy))
	for ref := range delta.StrokesToDestroy {
		refs = append(refs, ref)
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].Less(refs[j]) })
	return refs
}
