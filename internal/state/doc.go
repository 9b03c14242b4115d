// Package state manages persistence of plan sessions and committed strokes.
//
// A plan session is one named, in-progress edit: the strokes authored so
// far, the committed strokes it replaces, the current selections and the
// last applied intent. The committed store is the baseline every session is
// edited against. Both are persisted as versioned JSON documents under the
// roadplan root (~/.roadplan by default).
//
// Key concepts:
//   - PlanState: the on-disk form of a plan.PlanStep plus session metadata
//   - IntentRecord: a flat, tagged encoding of the closed plan.Intent set
//   - BuiltState: the on-disk form of the committed stroke baseline
//   - StateStore: Interface for persisting and loading sessions and the baseline
package state
