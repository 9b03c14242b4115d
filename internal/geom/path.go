package geom

import (
	"errors"
	"fmt"
	"math"
)

// ErrDiscontinuous is returned when consecutive segments do not touch.
var ErrDiscontinuous = errors.New("path segments are not continuous")

// Path is a continuous sequence of segments, parametrised by arc length.
type Path struct {
	segments []Segment
	length   float64
}

// NewPath creates a path from segments that join end to start.
func NewPath(segments ...Segment) (Path, error) {
	var length float64
	for i, seg := range segments {
		if i > 0 && !IsRoughlyWithin(segments[i-1].End(), seg.Start(), MinStartToEnd) {
			return Path{}, fmt.Errorf("%w: segment %d starts at %v, previous ends at %v",
				ErrDiscontinuous, i, seg.Start(), segments[i-1].End())
		}
		length += seg.Length()
	}
	return Path{segments: segments, length: length}, nil
}

// Segments returns a copy of the segments of the path.
func (p Path) Segments() []Segment {
	out := make([]Segment, len(p.segments))
	copy(out, p.segments)
	return out
}

// IsEmpty reports whether the path has no segments.
func (p Path) IsEmpty() bool {
	return len(p.segments) == 0
}

// Length returns the total arc length.
func (p Path) Length() float64 {
	return p.length
}

// locate finds the segment containing arc length t and the offset into it.
func (p Path) locate(t float64) (Segment, float64) {
	t = math.Max(0, math.Min(p.length, t))
	for _, seg := range p.segments {
		if t <= seg.Length() {
			return seg, t
		}
		t -= seg.Length()
	}
	last := p.segments[len(p.segments)-1]
	return last, last.Length()
}

// Along returns the point at arc length t, clamped to the path.
// An empty path returns the zero point.
func (p Path) Along(t float64) Point {
	if p.IsEmpty() {
		return Point{}
	}
	seg, offset := p.locate(t)
	return seg.Along(offset)
}

// DirectionAlong returns the unit tangent at arc length t, clamped to the path.
func (p Path) DirectionAlong(t float64) Point {
	if p.IsEmpty() {
		return Point{}
	}
	seg, offset := p.locate(t)
	return seg.DirectionAlong(offset)
}

// Project returns the arc length of the closest point on the path whose
// perpendicular passes through pt. It fails when no segment admits one.
func (p Path) Project(pt Point) (float64, bool) {
	var (
		best     float64
		bestDist = math.Inf(1)
		found    bool
		offset   float64
	)
	for _, seg := range p.segments {
		if t, ok := seg.Project(pt); ok {
			if dist := seg.Along(t).Distance(pt); dist < bestDist {
				best, bestDist, found = offset+t, dist, true
			}
		}
		offset += seg.Length()
	}
	return best, found
}

// Subsection returns the part of the path between arc lengths start and end.
// Pieces shorter than MinStartToEnd are dropped; it fails if nothing remains.
func (p Path) Subsection(start, end float64) (Path, bool) {
	var (
		pieces []Segment
		offset float64
	)
	for _, seg := range p.segments {
		segStart, segEnd := offset, offset+seg.Length()
		offset = segEnd
		if segEnd <= start || segStart >= end {
			continue
		}
		piece, ok := seg.Subsection(math.Max(start, segStart)-segStart, math.Min(end, segEnd)-segStart)
		if ok {
			pieces = append(pieces, piece)
		}
	}
	if len(pieces) == 0 {
		return Path{}, false
	}
	path, err := NewPath(pieces...)
	if err != nil {
		return Path{}, false
	}
	return path, true
}
