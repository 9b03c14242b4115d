package state

import (
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danieljhkim/roadplan/internal/geom"
	"github.com/danieljhkim/roadplan/internal/lane"
	"github.com/danieljhkim/roadplan/internal/plan"
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

func sampleStep(t *testing.T) (plan.PlanStep, plan.BuiltRef) {
	t.Helper()
	destroyed := plan.NewBuiltRef()
	step := plan.NewPlanStep()
	step.Delta.NewStrokes = append(step.Delta.NewStrokes, straight(t, 0), straight(t, 5))
	step.Delta.StrokesToDestroy[destroyed] = straight(t, 20)
	step.Selections[plan.NewStrokeRef(1)] = plan.Range{Start: 10, End: 40}
	step.Selections[plan.BuiltStrokeRef(destroyed)] = plan.Range{Start: 0, End: 100}
	step.Intent = plan.MoveSelection{Delta: geom.Pt(0, 3)}
	return step, destroyed
}

func TestPlanState_StepRoundTrip(t *testing.T) {
	step, destroyed := sampleStep(t)

	ps := FromStep(step)
	ps.Name = "downtown"
	data, err := json.Marshal(ps)
	require.NoError(t, err)

	var decoded PlanState
	require.NoError(t, json.Unmarshal(data, &decoded))
	got, err := decoded.Step()
	require.NoError(t, err)

	require.Len(t, got.Delta.NewStrokes, 2)
	assert.Equal(t, geom.Pt(0, 5), got.Delta.NewStrokes[1].First().Position)
	assert.Contains(t, got.Delta.StrokesToDestroy, destroyed)
	assert.Equal(t, step.Selections, got.Selections)
	assert.Equal(t, step.Intent, got.Intent)
}

func TestFromStep_SelectionsAreSorted(t *testing.T) {
	step, destroyed := sampleStep(t)

	ps := FromStep(step)

	require.Len(t, ps.Selections, 2)
	assert.Equal(t, "new:1", ps.Selections[0].Stroke)
	assert.Equal(t, destroyed.String(), ps.Selections[1].Stroke)
}

func TestPlanState_SetStepKeepsMetadata(t *testing.T) {
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	ps := NewPlanState("downtown", created)
	step, _ := sampleStep(t)

	ps.SetStep(step)

	assert.Equal(t, "downtown", ps.Name)
	assert.Equal(t, created, ps.CreatedAt)
	assert.Len(t, ps.NewStrokes, 2)
	assert.Equal(t, plan.KindMoveSelection, ps.Intent.Kind)
}

func TestPlanState_RejectsOtherVersions(t *testing.T) {
	ps := NewPlanState("old", time.Now())
	ps.Version = 99

	_, err := ps.Step()
	assert.True(t, errors.Is(err, ErrUnsupportedSchema))

	bs := NewBuiltState()
	bs.Version = 0
	_, err = bs.BuiltStrokes()
	assert.True(t, errors.Is(err, ErrUnsupportedSchema))
}

func TestPlanState_BadSelectionRef(t *testing.T) {
	ps := NewPlanState("bad", time.Now())
	ps.Selections = append(ps.Selections, SelectionRecord{Stroke: "nonsense"})

	_, err := ps.Step()
	assert.Error(t, err)
}

func TestIntentRecord_RoundTrip(t *testing.T) {
	built := plan.NewBuiltRef()
	intents := []plan.Intent{
		plan.None{},
		plan.NewRoad{Points: []geom.Point{geom.Pt(0, 0), geom.Pt(50, 0)}},
		plan.ContinueRoad{
			ContinueFrom:        []plan.Continuation{{Index: 0, Mode: plan.Append}, {Index: 2, Mode: plan.Prepend}},
			AdditionalPoints:    []geom.Point{geom.Pt(150, 20)},
			StartReferencePoint: geom.Pt(100, 0),
		},
		plan.Select{Ref: plan.BuiltStrokeRef(built), Start: 5, End: 25},
		plan.MaximizeSelection{},
		plan.MoveSelection{Delta: geom.Pt(-4, 9)},
		plan.DeleteSelection{},
		plan.CreateNextLane{},
	}
	for _, intent := range intents {
		t.Run(intent.Kind(), func(t *testing.T) {
			rec := EncodeIntent(intent)
			assert.Equal(t, intent.Kind(), rec.Kind)

			got, err := rec.Decode()
			require.NoError(t, err)
			assert.Equal(t, intent, got)
		})
	}
}

func TestIntentRecord_JSONKeys(t *testing.T) {
	rec := EncodeIntent(plan.ContinueRoad{
		ContinueFrom:        []plan.Continuation{{Index: 1, Mode: plan.Prepend}},
		AdditionalPoints:    []geom.Point{geom.Pt(150, 20)},
		StartReferencePoint: geom.Pt(100, -5),
	})

	data, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.JSONEq(t, `{
		"kind": "continue_road",
		"points": [{"x":150,"y":20}],
		"continueFrom": [{"index":1,"mode":"prepend"}],
		"startReferencePoint": {"x":100,"y":-5}
	}`, string(data))

	var decoded IntentRecord
	require.NoError(t, json.Unmarshal(data, &decoded))
	got, err := decoded.Decode()
	require.NoError(t, err)
	assert.Equal(t, geom.Pt(100, -5), got.(plan.ContinueRoad).StartReferencePoint)
}

func TestIntentRecord_DecodeErrors(t *testing.T) {
	tests := []IntentRecord{
		{Kind: "teleport"},
		{Kind: plan.KindSelect, Stroke: "new:-2"},
		{Kind: plan.KindContinueRoad, ContinueFrom: []ContinuationRecord{{Index: 0, Mode: "sideways"}}},
	}
	for _, rec := range tests {
		_, err := rec.Decode()
		assert.Error(t, err, rec.Kind)
	}

	got, err := IntentRecord{}.Decode()
	require.NoError(t, err)
	assert.Equal(t, plan.None{}, got)
	assert.Equal(t, plan.KindNone, EncodeIntent(nil).Kind)
}
