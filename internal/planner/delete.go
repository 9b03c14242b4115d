package planner

import (
	"sort"

	"go.uber.org/zap"

	"github.com/danieljhkim/roadplan/internal/lane"
	"github.com/danieljhkim/roadplan/internal/plan"
)

// deleteSelection cuts every selected range out of its stroke. The parts
// before and after the range survive as new strokes; the original is
// removed from the new strokes, or marked for destruction if committed.
func (p *Planner) deleteSelection(current plan.PlanStep, built *plan.BuiltStrokes) plan.PlanStep {
	delta := current.Delta.Clone()
	var fragments []lane.Stroke
	var removeNew []int

	for _, ref := range current.Selections.Refs() {
		stroke, err := plan.Resolve(ref, current.Delta, built)
		if err != nil {
			p.log.Debug("skipping stale selection", zap.Stringer("stroke", ref), zap.Error(err))
			continue
		}
		r := current.Selections[ref]

		if before, ok := stroke.Subsection(0, r.Start); ok {
			fragments = append(fragments, before)
		}
		if after, ok := stroke.Subsection(r.End, stroke.Length()); ok {
			fragments = append(fragments, after)
		}

		if ref.IsNew() {
			removeNew = append(removeNew, ref.Index)
		} else {
			delta.StrokesToDestroy[ref.Built] = stroke.Clone()
		}
	}

	sort.Sort(sort.Reverse(sort.IntSlice(removeNew)))
	for _, idx := range removeNew {
		delta.NewStrokes = append(delta.NewStrokes[:idx], delta.NewStrokes[idx+1:]...)
	}
	delta.NewStrokes = append(delta.NewStrokes, fragments...)

	p.log.Debug("deleted selection",
		zap.Int("removed", len(removeNew)),
		zap.Int("fragments", len(fragments)))

	return emptyStep(delta)
}
