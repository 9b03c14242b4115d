package planner

import (
	"math"

	"go.uber.org/zap"

	"github.com/danieljhkim/roadplan/internal/lane"
	"github.com/danieljhkim/roadplan/internal/plan"
)

// moveSelection translates every selected range, reconciles the connectors
// of ranges that end next to each other and rebuilds the affected strokes.
// Committed strokes are never edited in place: the edited copy becomes a new
// stroke and the original is marked for destruction.
func (p *Planner) moveSelection(intent plan.MoveSelection, current plan.PlanStep, built *plan.BuiltStrokes) plan.PlanStep {
	next := current.Clone()
	next.Selections = make(plan.Selections)

	var refs []plan.StrokeRef
	moved := make(map[plan.StrokeRef]*lane.MovedSubsection, len(current.Selections))
	for _, ref := range current.Selections.Refs() {
		stroke, err := plan.Resolve(ref, current.Delta, built)
		if err != nil {
			p.log.Warn("dropping stale selection from move", zap.Stringer("stroke", ref), zap.Error(err))
			continue
		}
		r := current.Selections[ref]
		m := stroke.WithSubsectionMoved(r.Start, r.End, intent.Delta)
		moved[ref] = &m
		refs = append(refs, ref)
	}

	alignments, skipped := orderAlignments(connectorAlignments(refs, moved))
	if skipped > 0 {
		p.log.Warn("skipping cyclic connector alignments", zap.Int("cycle_size", skipped))
	}
	for _, a := range alignments {
		p.log.Debug("aligning connector",
			zap.Stringer("stroke", a.align.ref),
			zap.Stringer("side", a.align.side),
			zap.Stringer("to_stroke", a.to.ref),
			zap.Stringer("to_side", a.to.side))
		applyAlignment(a, moved)
	}

	for _, ref := range refs {
		m := moved[ref]
		stroke, err := lane.NewStroke(m.Nodes())
		if err != nil {
			p.log.Warn("dropping moved selection", zap.Stringer("stroke", ref), zap.Error(err))
			continue
		}

		start, okStart := stroke.Project(m.Moved[0].Position)
		end, okEnd := stroke.Project(m.Moved[len(m.Moved)-1].Position)
		if !okStart || !okEnd {
			p.log.Warn("dropping moved selection that no longer projects", zap.Stringer("stroke", ref))
			continue
		}

		target := ref
		if ref.IsNew() {
			next.Delta.NewStrokes[ref.Index] = stroke
		} else {
			original, _ := built.Get(ref.Built)
			next.Delta.StrokesToDestroy[ref.Built] = original.Clone()
			next.Delta.NewStrokes = append(next.Delta.NewStrokes, stroke)
			target = plan.NewStrokeRef(len(next.Delta.NewStrokes) - 1)
		}
		next.Selections[target] = plan.Range{Start: math.Min(start, end), End: math.Max(start, end)}
	}

	return next
}
