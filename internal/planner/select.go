package planner

import (
	"math"

	"go.uber.org/zap"

	"github.com/danieljhkim/roadplan/internal/config"
	"github.com/danieljhkim/roadplan/internal/geom"
	"github.com/danieljhkim/roadplan/internal/lane"
	"github.com/danieljhkim/roadplan/internal/plan"
)

const (
	// parallelPositionTolerance is how far a parallel lane's projected
	// endpoints may be from the clicked endpoints.
	parallelPositionTolerance = 60.0

	// parallelDirectionTolerance bounds the difference between unit
	// directions at matching endpoints.
	parallelDirectionTolerance = 0.1
)

// refStroke pairs a stroke with the reference it was resolved from.
type refStroke struct {
	ref    plan.StrokeRef
	stroke lane.Stroke
}

// allStrokes lists new strokes by index followed by built strokes in ref order.
func allStrokes(delta plan.PlanDelta, built *plan.BuiltStrokes) []refStroke {
	out := make([]refStroke, 0, len(delta.NewStrokes)+built.Len())
	for i, s := range delta.NewStrokes {
		out = append(out, refStroke{ref: plan.NewStrokeRef(i), stroke: s})
	}
	for _, ref := range built.Refs() {
		s, _ := built.Get(ref)
		out = append(out, refStroke{ref: plan.BuiltStrokeRef(ref), stroke: s})
	}
	return out
}

func (p *Planner) selectRange(intent plan.Select, current plan.PlanStep, built *plan.BuiltStrokes, settings config.Settings) plan.PlanStep {
	next := current.Clone()
	next.Intent = plan.None{}

	stroke, err := plan.Resolve(intent.Ref, current.Delta, built)
	if err != nil {
		p.log.Debug("ignoring selection", zap.Stringer("stroke", intent.Ref), zap.Error(err))
		return next
	}

	start, end := clampRange(intent.Start, intent.End, stroke.Length())
	next.Selections[intent.Ref] = plan.Range{Start: start, End: end}
	if !settings.SelectParallel {
		return next
	}

	startPos, startDir := stroke.Along(start), stroke.DirectionAlong(start)
	endPos, endDir := stroke.Along(end), stroke.DirectionAlong(end)

	for _, other := range allStrokes(current.Delta, built) {
		if other.ref == intent.Ref || other.stroke.Len() < 2 {
			continue
		}
		r, ok := parallelRange(other.stroke, startPos, startDir, endPos, endDir, settings.SelectOpposite)
		if !ok {
			continue
		}
		p.log.Debug("selecting parallel lane",
			zap.Stringer("stroke", other.ref),
			zap.Float64("start", r.Start),
			zap.Float64("end", r.End))
		next.Selections[other.ref] = r
	}

	return next
}

// clampRange orders start and end and clamps both to [0, length].
func clampRange(start, end, length float64) (float64, float64) {
	if start > end {
		start, end = end, start
	}
	return math.Max(0, math.Min(length, start)), math.Max(0, math.Min(length, end))
}

// parallelRange finds the range of other that runs alongside the clicked
// range. Lanes running the opposite way match only when opposite is set.
func parallelRange(other lane.Stroke, startPos, startDir, endPos, endDir geom.Point, opposite bool) (plan.Range, bool) {
	path := other.Path()
	startOn, ok := path.Project(startPos)
	if !ok {
		return plan.Range{}, false
	}
	endOn, ok := path.Project(endPos)
	if !ok {
		return plan.Range{}, false
	}

	if !geom.IsRoughlyWithin(path.Along(startOn), startPos, parallelPositionTolerance) ||
		!geom.IsRoughlyWithin(path.Along(endOn), endPos, parallelPositionTolerance) {
		return plan.Range{}, false
	}

	startDirOn, endDirOn := path.DirectionAlong(startOn), path.DirectionAlong(endOn)
	var matches bool
	switch {
	case startOn < endOn:
		matches = geom.IsRoughlyWithin(startDirOn, startDir, parallelDirectionTolerance) &&
			geom.IsRoughlyWithin(endDirOn, endDir, parallelDirectionTolerance)
	case opposite:
		matches = geom.IsRoughlyWithin(startDirOn, geom.Neg(startDir), parallelDirectionTolerance) &&
			geom.IsRoughlyWithin(endDirOn, geom.Neg(endDir), parallelDirectionTolerance)
	}
	if !matches {
		return plan.Range{}, false
	}
	return plan.Range{Start: math.Min(startOn, endOn), End: math.Max(startOn, endOn)}, true
}

// maximizeSelection grows every selection to its whole stroke. Selections
// whose stroke no longer resolves keep their range.
func (p *Planner) maximizeSelection(current plan.PlanStep, built *plan.BuiltStrokes) plan.PlanStep {
	next := current.Clone()
	for ref := range current.Selections {
		stroke, err := plan.Resolve(ref, current.Delta, built)
		if err != nil {
			p.log.Debug("keeping stale selection", zap.Stringer("stroke", ref), zap.Error(err))
			continue
		}
		next.Selections[ref] = plan.Range{Start: 0, End: stroke.Length()}
	}
	return next
}
