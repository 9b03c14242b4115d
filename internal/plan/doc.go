// Package plan defines the data model of a road plan being edited.
//
// A plan is a sequence of immutable PlanStep snapshots. Each step holds the
// PlanDelta (strokes authored in the plan and committed strokes it
// destroys), the current Selections, and the pending Intent. Strokes are
// addressed through StrokeRef, which points either into the delta's new
// strokes or at a committed stroke in BuiltStrokes.
package plan
