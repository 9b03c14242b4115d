package planner

import (
	"go.uber.org/zap"

	"github.com/danieljhkim/roadplan/internal/lane"
	"github.com/danieljhkim/roadplan/internal/plan"
)

// nextLaneTolerance decides when a derived lane duplicates a selected one.
const nextLaneTolerance = 0.1

// createNextLane adds a lane one lane spacing beside every selected range,
// unless a selected range already runs there.
func (p *Planner) createNextLane(current plan.PlanStep, built *plan.BuiltStrokes) plan.PlanStep {
	var selected []lane.Stroke
	for _, ref := range current.Selections.Refs() {
		stroke, err := plan.Resolve(ref, current.Delta, built)
		if err != nil {
			p.log.Debug("skipping stale selection", zap.Stringer("stroke", ref), zap.Error(err))
			continue
		}
		r := current.Selections[ref]
		if sub, ok := stroke.Subsection(r.Start, r.End); ok {
			selected = append(selected, sub)
		}
	}

	delta := current.Delta.Clone()
	for _, sub := range selected {
		candidate, err := sub.OffsetBy(plan.LaneDistance)
		if err != nil {
			p.log.Debug("offset lane is malformed", zap.Error(err))
			continue
		}
		if coincidesWithAny(candidate, selected) {
			continue
		}
		delta.NewStrokes = append(delta.NewStrokes, candidate)
	}

	return emptyStep(delta)
}

func coincidesWithAny(candidate lane.Stroke, strokes []lane.Stroke) bool {
	for _, s := range strokes {
		if candidate.IsRoughlyWithin(s, nextLaneTolerance) {
			return true
		}
	}
	return false
}
