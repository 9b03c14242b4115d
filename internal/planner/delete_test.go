package planner

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danieljhkim/roadplan/internal/config"
	"github.com/danieljhkim/roadplan/internal/geom"
	"github.com/danieljhkim/roadplan/internal/lane"
	"github.com/danieljhkim/roadplan/internal/plan"
)

func TestDeleteSelection_SplitsStroke(t *testing.T) {
	current := stepWith(eastward(t, 0, 100, 0))
	current.Selections[plan.NewStrokeRef(0)] = plan.Range{Start: 30, End: 70}
	current.Intent = plan.DeleteSelection{}

	next := newPlanner(t).Apply(current, noBuilt(), config.DefaultSettings())

	// The split original is removed and only its two fragments remain.
	// Removing it is a deliberate change: the editor this engine comes from
	// never populated its removal list, so originals stayed beside their
	// fragments.
	require.Len(t, next.Delta.NewStrokes, 2)
	if diff := cmp.Diff([]geom.Point{geom.Pt(0, 0), geom.Pt(30, 0)}, positions(next.Delta.NewStrokes[0]), approx); diff != "" {
		t.Errorf("before fragment mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]geom.Point{geom.Pt(70, 0), geom.Pt(100, 0)}, positions(next.Delta.NewStrokes[1]), approx); diff != "" {
		t.Errorf("after fragment mismatch (-want +got):\n%s", diff)
	}
	assert.Empty(t, next.Selections)
	assert.Equal(t, plan.KindNone, next.Intent.Kind())
}

func TestDeleteSelection_WholeStroke(t *testing.T) {
	current := stepWith(eastward(t, 0, 100, 0))
	current.Selections[plan.NewStrokeRef(0)] = plan.Range{Start: 0, End: 100}
	current.Intent = plan.DeleteSelection{}

	next := newPlanner(t).Apply(current, noBuilt(), config.DefaultSettings())

	assert.Empty(t, next.Delta.NewStrokes)
}

func TestDeleteSelection_RemovesIndicesFromTheBack(t *testing.T) {
	current := stepWith(
		eastward(t, 0, 100, 0),
		eastward(t, 0, 100, 5),
		eastward(t, 0, 100, 10),
	)
	current.Selections[plan.NewStrokeRef(0)] = plan.Range{Start: 0, End: 100}
	current.Selections[plan.NewStrokeRef(2)] = plan.Range{Start: 50, End: 100}
	current.Intent = plan.DeleteSelection{}

	next := newPlanner(t).Apply(current, noBuilt(), config.DefaultSettings())

	require.Len(t, next.Delta.NewStrokes, 2)
	if diff := cmp.Diff([]geom.Point{geom.Pt(0, 5), geom.Pt(100, 5)}, positions(next.Delta.NewStrokes[0]), approx); diff != "" {
		t.Errorf("untouched stroke mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]geom.Point{geom.Pt(0, 10), geom.Pt(50, 10)}, positions(next.Delta.NewStrokes[1]), approx); diff != "" {
		t.Errorf("fragment mismatch (-want +got):\n%s", diff)
	}
}

func TestDeleteSelection_BuiltStrokeIsDestroyed(t *testing.T) {
	original := eastward(t, 0, 100, 0)
	built := plan.NewBuiltStrokes(map[plan.BuiltRef]lane.Stroke{builtID: original})
	current := plan.NewPlanStep()
	current.Selections[plan.BuiltStrokeRef(builtID)] = plan.Range{Start: 30, End: 70}
	current.Intent = plan.DeleteSelection{}

	next := newPlanner(t).Apply(current, built, config.DefaultSettings())

	assert.Len(t, next.Delta.NewStrokes, 2)
	destroyed, ok := next.Delta.StrokesToDestroy[builtID]
	require.True(t, ok)
	assert.Equal(t, original.Nodes(), destroyed.Nodes())
}

func TestDeleteSelection_FragmentsCoverTheRest(t *testing.T) {
	stroke := mustStroke(t, east(0, 0), lane.Node{Position: geom.Pt(60, 40), Direction: geom.Pt(0, 1)})
	length := stroke.Length()
	start, end := 0.25*length, 0.6*length

	current := stepWith(stroke)
	current.Selections[plan.NewStrokeRef(0)] = plan.Range{Start: start, End: end}
	current.Intent = plan.DeleteSelection{}

	next := newPlanner(t).Apply(current, noBuilt(), config.DefaultSettings())

	require.Len(t, next.Delta.NewStrokes, 2)
	before, after := next.Delta.NewStrokes[0], next.Delta.NewStrokes[1]
	assert.InDelta(t, start, before.Length(), 1e-6)
	assert.InDelta(t, length-end, after.Length(), 1e-6)
	assert.True(t, geom.IsRoughlyWithin(before.Last().Position, stroke.Along(start), 1e-6))
	assert.True(t, geom.IsRoughlyWithin(after.First().Position, stroke.Along(end), 1e-6))
}
