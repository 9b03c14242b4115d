// Package lane models lane centerlines as strokes of oriented nodes.
//
// A stroke is well-formed when each pair of consecutive nodes can be joined
// by a biarc. Edits that would break this are rolled back (Append, Prepend)
// or rejected (NewStroke) rather than stored.
package lane
