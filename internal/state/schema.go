package state

import (
	"errors"
	"fmt"
	"time"

	"github.com/danieljhkim/roadplan/internal/lane"
	"github.com/danieljhkim/roadplan/internal/plan"
)

// SchemaVersion is the version written into every persisted document.
const SchemaVersion = 1

// ErrUnsupportedSchema indicates a document written by an incompatible version.
var ErrUnsupportedSchema = errors.New("unsupported state schema version")

// PlanState represents a persisted plan session.
type PlanState struct {
	// Version is the schema version of the document
	Version int `json:"version"`

	// Name is the session name, also the file stem
	Name string `json:"name"`

	// NewStrokes are the strokes authored in the session, in index order
	NewStrokes []lane.Stroke `json:"newStrokes"`

	// StrokesToDestroy maps committed refs to the stroke they referred to
	StrokesToDestroy map[plan.BuiltRef]lane.Stroke `json:"strokesToDestroy"`

	// Selections are the selected ranges, sorted by stroke reference
	Selections []SelectionRecord `json:"selections"`

	// Intent is the last applied intent
	Intent IntentRecord `json:"intent"`

	// CreatedAt is when the session was started
	CreatedAt time.Time `json:"createdAt"`

	// UpdatedAt is when the session was last saved
	UpdatedAt time.Time `json:"updatedAt"`
}

// SelectionRecord is one selected range.
type SelectionRecord struct {
	// Stroke is the reference in StrokeRef.String form ("new:<i>" or a UUID)
	Stroke string `json:"stroke"`

	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// NewPlanState creates an empty session.
func NewPlanState(name string, now time.Time) *PlanState {
	return &PlanState{
		Version:          SchemaVersion,
		Name:             name,
		NewStrokes:       []lane.Stroke{},
		StrokesToDestroy: make(map[plan.BuiltRef]lane.Stroke),
		Selections:       []SelectionRecord{},
		Intent:           IntentRecord{Kind: plan.KindNone},
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}

// FromStep builds the persisted form of step. Metadata is left to the caller.
func FromStep(step plan.PlanStep) PlanState {
	ps := PlanState{
		Version:          SchemaVersion,
		NewStrokes:       make([]lane.Stroke, 0, len(step.Delta.NewStrokes)),
		StrokesToDestroy: make(map[plan.BuiltRef]lane.Stroke, len(step.Delta.StrokesToDestroy)),
		Selections:       make([]SelectionRecord, 0, len(step.Selections)),
		Intent:           EncodeIntent(step.Intent),
	}
	for _, s := range step.Delta.NewStrokes {
		ps.NewStrokes = append(ps.NewStrokes, s.Clone())
	}
	for ref, s := range step.Delta.StrokesToDestroy {
		ps.StrokesToDestroy[ref] = s.Clone()
	}
	for _, ref := range step.Selections.Refs() {
		r := step.Selections[ref]
		ps.Selections = append(ps.Selections, SelectionRecord{Stroke: ref.String(), Start: r.Start, End: r.End})
	}
	return ps
}

// SetStep replaces the plan content of ps with step, keeping its metadata.
func (ps *PlanState) SetStep(step plan.PlanStep) {
	fresh := FromStep(step)
	ps.Version = fresh.Version
	ps.NewStrokes = fresh.NewStrokes
	ps.StrokesToDestroy = fresh.StrokesToDestroy
	ps.Selections = fresh.Selections
	ps.Intent = fresh.Intent
}

// Step converts the persisted session back into a plan step.
func (ps *PlanState) Step() (plan.PlanStep, error) {
	if ps.Version != SchemaVersion {
		return plan.PlanStep{}, fmt.Errorf("%w: %d", ErrUnsupportedSchema, ps.Version)
	}

	step := plan.NewPlanStep()
	for _, s := range ps.NewStrokes {
		step.Delta.NewStrokes = append(step.Delta.NewStrokes, s.Clone())
	}
	for ref, s := range ps.StrokesToDestroy {
		step.Delta.StrokesToDestroy[ref] = s.Clone()
	}
	for _, sel := range ps.Selections {
		ref, err := plan.ParseStrokeRef(sel.Stroke)
		if err != nil {
			return plan.PlanStep{}, fmt.Errorf("failed to decode selection: %w", err)
		}
		step.Selections[ref] = plan.Range{Start: sel.Start, End: sel.End}
	}
	intent, err := ps.Intent.Decode()
	if err != nil {
		return plan.PlanStep{}, fmt.Errorf("failed to decode intent: %w", err)
	}
	step.Intent = intent
	return step, nil
}

// BuiltState represents the persisted committed-stroke baseline.
type BuiltState struct {
	// Version is the schema version of the document
	Version int `json:"version"`

	// Strokes maps committed refs to their strokes
	Strokes map[plan.BuiltRef]lane.Stroke `json:"strokes"`

	// UpdatedAt is when the baseline was last committed to
	UpdatedAt time.Time `json:"updatedAt,omitempty"`
}

// NewBuiltState creates an empty baseline.
func NewBuiltState() *BuiltState {
	return &BuiltState{
		Version: SchemaVersion,
		Strokes: make(map[plan.BuiltRef]lane.Stroke),
	}
}

// FromBuilt builds the persisted form of a baseline.
func FromBuilt(built *plan.BuiltStrokes, now time.Time) *BuiltState {
	return &BuiltState{
		Version:   SchemaVersion,
		Strokes:   built.Strokes(),
		UpdatedAt: now,
	}
}

// BuiltStrokes converts the persisted baseline into plan.BuiltStrokes.
func (bs *BuiltState) BuiltStrokes() (*plan.BuiltStrokes, error) {
	if bs.Version != SchemaVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedSchema, bs.Version)
	}
	return plan.NewBuiltStrokes(bs.Strokes), nil
}
