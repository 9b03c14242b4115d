// Package planner applies user intents to a road plan.
//
// The planner is a pure state transition: given the current plan step, the
// committed strokes and the editor settings it returns the next plan step.
// It never mutates its inputs, performs no I/O, and reports recoverable
// problems (degenerate points, malformed strokes, stale references) by
// omission and a log line rather than an error.
//
// Key responsibilities:
//   - Dispatch each intent variant to its handler
//   - Draw new roads and continue existing lanes, rolling back malformed nodes
//   - Resolve clicked ranges into selections, including parallel lanes
//   - Move selected ranges and reconcile the connectors between them
//   - Delete selected ranges and derive neighbouring lanes
package planner
