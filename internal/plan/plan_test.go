package plan

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danieljhkim/roadplan/internal/geom"
	"github.com/danieljhkim/roadplan/internal/lane"
)

func straight(t *testing.T, y float64) lane.Stroke {
	t.Helper()
	s, err := lane.NewStroke([]lane.Node{
		{Position: geom.Pt(0, y), Direction: geom.Pt(1, 0)},
		{Position: geom.Pt(100, y), Direction: geom.Pt(1, 0)},
	})
	require.NoError(t, err)
	return s
}

func sequentialIDs() func() BuiltRef {
	n := 0
	return func() BuiltRef {
		n++
		var id uuid.UUID
		id[15] = byte(n)
		return BuiltRef(id)
	}
}

func TestStrokeRef_ParseAndString(t *testing.T) {
	built := NewBuiltRef()

	tests := []struct {
		in   string
		want StrokeRef
	}{
		{in: "new:3", want: NewStrokeRef(3)},
		{in: "7", want: NewStrokeRef(7)},
		{in: built.String(), want: BuiltStrokeRef(built)},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseStrokeRef(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, "new:3", NewStrokeRef(3).String())
	assert.Equal(t, built.String(), BuiltStrokeRef(built).String())

	for _, bad := range []string{"", "new:-1", "new:x", "not-a-uuid"} {
		_, err := ParseStrokeRef(bad)
		assert.Error(t, err, bad)
	}
}

func TestStrokeRef_Less(t *testing.T) {
	ids := sequentialIDs()
	a, b := ids(), ids()

	refs := []StrokeRef{BuiltStrokeRef(b), NewStrokeRef(2), BuiltStrokeRef(a), NewStrokeRef(0)}
	SortRefs(refs)

	assert.Equal(t, []StrokeRef{NewStrokeRef(0), NewStrokeRef(2), BuiltStrokeRef(a), BuiltStrokeRef(b)}, refs)
}

func TestBuiltRef_JSONMapKey(t *testing.T) {
	ref := NewBuiltRef()
	data, err := json.Marshal(map[BuiltRef]int{ref: 1})
	require.NoError(t, err)
	assert.JSONEq(t, `{"`+ref.String()+`":1}`, string(data))

	var decoded map[BuiltRef]int
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, 1, decoded[ref])
}

func TestPlanDelta_CloneIsDeep(t *testing.T) {
	delta := NewPlanDelta()
	delta.NewStrokes = append(delta.NewStrokes, straight(t, 0))
	ref := NewBuiltRef()
	delta.StrokesToDestroy[ref] = straight(t, 5)

	clone := delta.Clone()
	assert.True(t, clone.NewStrokes[0].Append(lane.Node{Position: geom.Pt(150, 0), Direction: geom.Pt(1, 0)}))
	delete(clone.StrokesToDestroy, ref)

	assert.Equal(t, 2, delta.NewStrokes[0].Len())
	assert.Contains(t, delta.StrokesToDestroy, ref)
	assert.False(t, delta.IsEmpty())
	assert.True(t, NewPlanDelta().IsEmpty())
}

func TestBuiltStrokes_Commit(t *testing.T) {
	ids := sequentialIDs()
	keep, destroy := ids(), ids()
	built := NewBuiltStrokes(map[BuiltRef]lane.Stroke{
		keep:    straight(t, 0),
		destroy: straight(t, 5),
	})

	delta := NewPlanDelta()
	delta.StrokesToDestroy[destroy] = straight(t, 5)
	delta.NewStrokes = append(delta.NewStrokes, straight(t, 10), straight(t, 15))

	next, created := built.Commit(delta, ids)

	require.Len(t, created, 2)
	assert.Equal(t, 3, next.Len())
	_, ok := next.Get(destroy)
	assert.False(t, ok)
	s, ok := next.Get(created[1])
	require.True(t, ok)
	assert.Equal(t, geom.Pt(0, 15), s.First().Position)

	assert.Equal(t, 2, built.Len(), "commit leaves the receiver unchanged")
	assert.Equal(t, []BuiltRef{keep, created[0], created[1]}, next.Refs())
}

func TestResolve(t *testing.T) {
	ref := NewBuiltRef()
	built := NewBuiltStrokes(map[BuiltRef]lane.Stroke{ref: straight(t, 5)})
	delta := NewPlanDelta()
	delta.NewStrokes = append(delta.NewStrokes, straight(t, 0))

	s, err := Resolve(NewStrokeRef(0), delta, built)
	require.NoError(t, err)
	assert.Equal(t, geom.Pt(0, 0), s.First().Position)

	s, err = Resolve(BuiltStrokeRef(ref), delta, built)
	require.NoError(t, err)
	assert.Equal(t, geom.Pt(0, 5), s.First().Position)

	_, err = Resolve(NewStrokeRef(1), delta, built)
	assert.Error(t, err)
	_, err = Resolve(BuiltStrokeRef(NewBuiltRef()), delta, built)
	assert.Error(t, err)
	_, err = Resolve(BuiltStrokeRef(ref), delta, nil)
	assert.Error(t, err)
}

func TestPlanStep_Clone(t *testing.T) {
	step := NewPlanStep()
	step.Delta.NewStrokes = append(step.Delta.NewStrokes, straight(t, 0))
	step.Selections[NewStrokeRef(0)] = Range{Start: 1, End: 2}
	points := []geom.Point{geom.Pt(0, 0), geom.Pt(10, 0)}
	step.Intent = NewRoad{Points: points}

	clone := step.Clone()
	clone.Selections[NewStrokeRef(0)] = Range{Start: 5, End: 6}
	clone.Intent.(NewRoad).Points[0] = geom.Pt(9, 9)

	assert.Equal(t, Range{Start: 1, End: 2}, step.Selections[NewStrokeRef(0)])
	assert.Equal(t, geom.Pt(0, 0), points[0])
}

func TestIntent_NeedsBuilt(t *testing.T) {
	tests := []struct {
		intent Intent
		want   bool
	}{
		{None{}, false},
		{NewRoad{}, false},
		{ContinueRoad{}, false},
		{Select{}, true},
		{MaximizeSelection{}, true},
		{MoveSelection{}, true},
		{DeleteSelection{}, true},
		{CreateNextLane{}, true},
	}
	for _, tt := range tests {
		t.Run(tt.intent.Kind(), func(t *testing.T) {
			assert.Equal(t, tt.want, tt.intent.NeedsBuilt())
		})
	}
}
