// Package geom provides the 2D geometry used to describe lane centerlines.
//
// Curves are built from straight lines and circular arcs, which keeps
// parallel offsets exact: the offset of an arc is a concentric arc.
//
// Key components:
//   - Point: gg's 2D point or vector, with lane frame helpers (Orthogonal, ToBasis)
//   - XY: the JSON form of a Point
//   - Segment: a line or arc parametrised by arc length
//   - Biarc: fits one or two arcs between two oriented points
//   - Path: a continuous chain of segments with projection and subsectioning
//
// All lengths and offsets are in world units; directions are unit vectors.
package geom
