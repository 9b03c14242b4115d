package planner

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/danieljhkim/roadplan/internal/config"
	"github.com/danieljhkim/roadplan/internal/plan"
)

// Planner applies intents to plan steps.
type Planner struct {
	log *zap.Logger
}

// New creates a Planner that reports diagnostics to logger.
// A nil logger discards them.
func New(logger *zap.Logger) *Planner {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Planner{log: logger}
}

// Apply applies current.Intent using a planner without diagnostics.
func Apply(current plan.PlanStep, built *plan.BuiltStrokes, settings config.Settings) plan.PlanStep {
	return New(nil).Apply(current, built, settings)
}

// Apply returns the plan step that results from applying current.Intent.
//
// current is never modified. built may be nil only for intents whose
// NeedsBuilt reports false; anything else is a programming error and panics.
func (p *Planner) Apply(current plan.PlanStep, built *plan.BuiltStrokes, settings config.Settings) plan.PlanStep {
	intent := current.Intent
	if intent == nil {
		intent = plan.None{}
	}
	if intent.NeedsBuilt() && built == nil {
		panic(fmt.Sprintf("planner: intent %s requires built strokes", intent.Kind()))
	}

	p.log.Debug("applying intent",
		zap.String("intent", intent.Kind()),
		zap.Int("new_strokes", len(current.Delta.NewStrokes)),
		zap.Int("selections", len(current.Selections)))

	switch in := intent.(type) {
	case plan.None:
		return current.Clone()
	case plan.NewRoad:
		return p.newRoad(in, current, settings)
	case plan.ContinueRoad:
		return p.continueRoad(in.ContinueFrom, in.AdditionalPoints, in.StartReferencePoint, current.Delta.Clone())
	case plan.Select:
		return p.selectRange(in, current, built, settings)
	case plan.MaximizeSelection:
		return p.maximizeSelection(current, built)
	case plan.MoveSelection:
		return p.moveSelection(in, current, built)
	case plan.DeleteSelection:
		return p.deleteSelection(current, built)
	case plan.CreateNextLane:
		return p.createNextLane(current, built)
	default:
		panic(fmt.Sprintf("planner: unhandled intent %T", intent))
	}
}

// emptyStep is the result shape of handlers that clear the selection.
func emptyStep(delta plan.PlanDelta) plan.PlanStep {
	return plan.PlanStep{
		Delta:      delta,
		Selections: make(plan.Selections),
		Intent:     plan.None{},
	}
}
