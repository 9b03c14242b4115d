package plan

import (
	"fmt"
	"sort"

	"github.com/danieljhkim/roadplan/internal/lane"
)

const (
	// LaneDistance is the spacing between adjacent same-direction lanes.
	LaneDistance = 5.0

	// CenterLaneDistance is the gap between the innermost lanes of opposite
	// directions; each sits half of it away from the road centerline.
	CenterLaneDistance = 6.0
)

// PlanDelta is the set of edits a plan makes on top of the committed strokes.
type PlanDelta struct {
	// NewStrokes are strokes authored in this plan
	NewStrokes []lane.Stroke

	// StrokesToDestroy are committed strokes this plan removes or replaces,
	// keyed by their committed reference
	StrokesToDestroy map[BuiltRef]lane.Stroke
}

// NewPlanDelta creates an empty delta.
func NewPlanDelta() PlanDelta {
	return PlanDelta{
		NewStrokes:       []lane.Stroke{},
		StrokesToDestroy: make(map[BuiltRef]lane.Stroke),
	}
}

// Clone returns a deep copy of the delta.
func (d PlanDelta) Clone() PlanDelta {
	out := PlanDelta{
		NewStrokes:       make([]lane.Stroke, len(d.NewStrokes)),
		StrokesToDestroy: make(map[BuiltRef]lane.Stroke, len(d.StrokesToDestroy)),
	}
	for i, s := range d.NewStrokes {
		out.NewStrokes[i] = s.Clone()
	}
	for ref, s := range d.StrokesToDestroy {
		out.StrokesToDestroy[ref] = s.Clone()
	}
	return out
}

// IsEmpty reports whether the delta changes nothing.
func (d PlanDelta) IsEmpty() bool {
	return len(d.NewStrokes) == 0 && len(d.StrokesToDestroy) == 0
}

// Range is an arc-length interval on a stroke.
type Range struct {
	Start float64
	End   float64
}

// Selections maps selected strokes to their selected range.
type Selections map[StrokeRef]Range

// Clone returns a copy of the selections.
func (s Selections) Clone() Selections {
	out := make(Selections, len(s))
	for ref, r := range s {
		out[ref] = r
	}
	return out
}

// Refs returns the selected refs in StrokeRef.Less order.
func (s Selections) Refs() []StrokeRef {
	refs := make([]StrokeRef, 0, len(s))
	for ref := range s {
		refs = append(refs, ref)
	}
	SortRefs(refs)
	return refs
}

// BuiltStrokes is a read-only view of the committed strokes.
type BuiltStrokes struct {
	mapping map[BuiltRef]lane.Stroke
}

// NewBuiltStrokes wraps the given strokes. The map is copied.
func NewBuiltStrokes(strokes map[BuiltRef]lane.Stroke) *BuiltStrokes {
	mapping := make(map[BuiltRef]lane.Stroke, len(strokes))
	for ref, s := range strokes {
		mapping[ref] = s.Clone()
	}
	return &BuiltStrokes{mapping: mapping}
}

// Get returns the committed stroke for ref.
func (b *BuiltStrokes) Get(ref BuiltRef) (lane.Stroke, bool) {
	s, ok := b.mapping[ref]
	return s, ok
}

// Len returns the number of committed strokes.
func (b *BuiltStrokes) Len() int {
	return len(b.mapping)
}

// Refs returns all committed refs in a stable order.
func (b *BuiltStrokes) Refs() []BuiltRef {
	refs := make([]BuiltRef, 0, len(b.mapping))
	for ref := range b.mapping {
		refs = append(refs, ref)
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].Less(refs[j]) })
	return refs
}

// Strokes returns a copy of the underlying mapping.
func (b *BuiltStrokes) Strokes() map[BuiltRef]lane.Stroke {
	out := make(map[BuiltRef]lane.Stroke, len(b.mapping))
	for ref, s := range b.mapping {
		out[ref] = s.Clone()
	}
	return out
}

// Commit folds delta into a new baseline: destroyed strokes are dropped and
// every new stroke is stored under a reference drawn from newID. The
// receiver is left unchanged. The created refs are returned in the order of
// delta.NewStrokes.
func (b *BuiltStrokes) Commit(delta PlanDelta, newID func() BuiltRef) (*BuiltStrokes, []BuiltRef) {
	next := b.Strokes()
	for ref := range delta.StrokesToDestroy {
		delete(next, ref)
	}
	created := make([]BuiltRef, 0, len(delta.NewStrokes))
	for _, s := range delta.NewStrokes {
		ref := newID()
		next[ref] = s.Clone()
		created = append(created, ref)
	}
	return &BuiltStrokes{mapping: next}, created
}

// Resolve looks up the stroke a ref currently points at. New refs resolve
// against delta, built refs against built (which may be nil).
func Resolve(ref StrokeRef, delta PlanDelta, built *BuiltStrokes) (lane.Stroke, error) {
	if ref.IsNew() {
		if ref.Index < 0 || ref.Index >= len(delta.NewStrokes) {
			return lane.Stroke{}, fmt.Errorf("new stroke %d out of range (have %d)", ref.Index, len(delta.NewStrokes))
		}
		return delta.NewStrokes[ref.Index], nil
	}
	if built == nil {
		return lane.Stroke{}, fmt.Errorf("built stroke %s requested without built strokes", ref.Built)
	}
	s, ok := built.Get(ref.Built)
	if !ok {
		return lane.Stroke{}, fmt.Errorf("built stroke %s not found", ref.Built)
	}
	return s, nil
}

// PlanStep is one immutable snapshot of the plan being edited.
type PlanStep struct {
	// Delta is the accumulated edit
	Delta PlanDelta

	// Selections are the currently selected ranges
	Selections Selections

	// Intent is the pending user intent
	Intent Intent
}

// NewPlanStep creates an empty step with no pending intent.
func NewPlanStep() PlanStep {
	return PlanStep{
		Delta:      NewPlanDelta(),
		Selections: make(Selections),
		Intent:     None{},
	}
}

// Clone returns a deep copy of the step.
func (s PlanStep) Clone() PlanStep {
	intent := s.Intent
	if intent == nil {
		intent = None{}
	}
	return PlanStep{
		Delta:      s.Delta.Clone(),
		Selections: s.Selections.Clone(),
		Intent:     intent.clone(),
	}
}
