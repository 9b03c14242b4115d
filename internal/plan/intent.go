package plan

import "github.com/danieljhkim/roadplan/internal/geom"

// Intent kinds as used in persisted state and on the command line.
const (
	KindNone              = "none"
	KindNewRoad           = "new_road"
	KindContinueRoad      = "continue_road"
	KindSelect            = "select"
	KindMaximizeSelection = "maximize_selection"
	KindMoveSelection     = "move_selection"
	KindDeleteSelection   = "delete_selection"
	KindCreateNextLane    = "create_next_lane"
)

// Intent is a pending user edit. The set of variants is closed; the planner
// matches on them exhaustively.
type Intent interface {
	// Kind returns the stable name of the variant.
	Kind() string

	// NeedsBuilt reports whether applying the intent requires the committed strokes.
	NeedsBuilt() bool

	clone() Intent
}

// ContinuationMode tells which end of a stroke is extended.
type ContinuationMode int

const (
	// Append extends the tail, heading forward.
	Append ContinuationMode = iota

	// Prepend extends the head, heading backwards.
	Prepend
)

// String returns "append" or "prepend".
func (m ContinuationMode) String() string {
	if m == Prepend {
		return "prepend"
	}
	return "append"
}

// Continuation names a new stroke, by its index in PlanDelta.NewStrokes,
// and the end it is extended at. Only strokes authored in the plan can be
// continued.
type Continuation struct {
	Index int
	Mode  ContinuationMode
}

// None is the absence of an intent.
type None struct{}

// NewRoad draws a fresh road through Points.
type NewRoad struct {
	Points []geom.Point
}

// ContinueRoad extends existing new strokes through AdditionalPoints,
// starting from StartReferencePoint.
type ContinueRoad struct {
	ContinueFrom        []Continuation
	AdditionalPoints    []geom.Point
	StartReferencePoint geom.Point
}

// Select selects [Start, End] on Ref.
type Select struct {
	Ref   StrokeRef
	Start float64
	End   float64
}

// MaximizeSelection grows every selection to its whole stroke.
type MaximizeSelection struct{}

// MoveSelection translates every selected range by Delta.
type MoveSelection struct {
	Delta geom.Point
}

// DeleteSelection removes every selected range.
type DeleteSelection struct{}

// CreateNextLane adds a lane beside every selected range.
type CreateNextLane struct{}

func (None) Kind() string              { return KindNone }
func (NewRoad) Kind() string           { return KindNewRoad }
func (ContinueRoad) Kind() string      { return KindContinueRoad }
func (Select) Kind() string            { return KindSelect }
func (MaximizeSelection) Kind() string { return KindMaximizeSelection }
func (MoveSelection) Kind() string     { return KindMoveSelection }
func (DeleteSelection) Kind() string   { return KindDeleteSelection }
func (CreateNextLane) Kind() string    { return KindCreateNextLane }

func (None) NeedsBuilt() bool              { return false }
func (NewRoad) NeedsBuilt() bool           { return false }
func (ContinueRoad) NeedsBuilt() bool      { return false }
func (Select) NeedsBuilt() bool            { return true }
func (MaximizeSelection) NeedsBuilt() bool { return true }
func (MoveSelection) NeedsBuilt() bool     { return true }
func (DeleteSelection) NeedsBuilt() bool   { return true }
func (CreateNextLane) NeedsBuilt() bool    { return true }

func (i None) clone() Intent { return i }

func (i NewRoad) clone() Intent {
	return NewRoad{Points: append([]geom.Point(nil), i.Points...)}
}

func (i ContinueRoad) clone() Intent {
	return ContinueRoad{
		ContinueFrom:        append([]Continuation(nil), i.ContinueFrom...),
		AdditionalPoints:    append([]geom.Point(nil), i.AdditionalPoints...),
		StartReferencePoint: i.StartReferencePoint,
	}
}

func (i Select) clone() Intent            { return i }
func (i MaximizeSelection) clone() Intent { return i }
func (i MoveSelection) clone() Intent     { return i }
func (i DeleteSelection) clone() Intent   { return i }
func (i CreateNextLane) clone() Intent    { return i }
