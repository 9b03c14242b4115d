package geom

import "math"

const (
	// MinStartToEnd is the shortest segment that is still considered a segment.
	// Reference points closer than this are treated as the same point.
	MinStartToEnd = 0.1

	// Thickness is the slack allowed when projecting onto a segment.
	Thickness = 0.001

	// DirectionTolerance bounds how far a segment's end direction may be
	// from the requested one when fitting segments between two nodes.
	DirectionTolerance = 0.01
)

// Segment is either a straight line or a circular arc, parametrised by
// arc length from its start.
type Segment struct {
	start  Point
	end    Point
	length float64

	// direction is the unit direction of a straight segment.
	direction Point

	// center and radius describe an arc. radius is signed: positive arcs turn
	// towards the start direction's Orthogonal(), negative arcs turn away.
	// A zero radius marks a straight segment.
	center Point
	radius float64
}

// Line creates a straight segment between two points.
// It fails if the points are closer than MinStartToEnd.
func Line(start, end Point) (Segment, bool) {
	d := end.Sub(start)
	length := d.Length()
	if length < MinStartToEnd {
		return Segment{}, false
	}
	return Segment{
		start:     start,
		end:       end,
		length:    length,
		direction: d.Mul(1 / length),
	}, true
}

// ArcWithDirection creates the segment that leaves start heading along dir
// and ends at end. The result is a straight line when dir already points at
// end, otherwise the unique circular arc tangent to dir at start.
// It fails when start and end nearly coincide or end lies straight behind start.
func ArcWithDirection(start, dir, end Point) (Segment, bool) {
	d := end.Sub(start)
	chord := d.Length()
	if chord < MinStartToEnd {
		return Segment{}, false
	}
	dir = dir.Normalize()
	if dir == (Point{}) {
		return Segment{}, false
	}

	if IsRoughlyWithin(dir, d.Mul(1/chord), Thickness) {
		return Line(start, end)
	}

	n := Orthogonal(dir)
	nd := n.Dot(d)
	if math.Abs(nd) < Thickness*chord {
		// end is directly behind start; no finite circle fits
		return Segment{}, false
	}

	radius := d.Dot(d) / (2 * nd)
	center := start.Add(n.Mul(radius))

	fromCenter := start.Sub(center)
	toCenter := end.Sub(center)
	sweep := math.Atan2(fromCenter.Cross(toCenter), fromCenter.Dot(toCenter))
	if radius > 0 && sweep < 0 {
		sweep += 2 * math.Pi
	} else if radius < 0 && sweep > 0 {
		sweep -= 2 * math.Pi
	}

	return Segment{
		start:  start,
		end:    end,
		length: math.Abs(radius * sweep),
		center: center,
		radius: radius,
	}, true
}

// Start returns the starting point of the segment.
func (s Segment) Start() Point {
	return s.start
}

// End returns the ending point of the segment.
func (s Segment) End() Point {
	return s.end
}

// Length returns the arc length of the segment.
func (s Segment) Length() float64 {
	return s.length
}

// IsArc reports whether the segment is curved.
func (s Segment) IsArc() bool {
	return s.radius != 0
}

// StartDirection returns the unit tangent at the start.
func (s Segment) StartDirection() Point {
	return s.DirectionAlong(0)
}

// EndDirection returns the unit tangent at the end.
func (s Segment) EndDirection() Point {
	return s.DirectionAlong(s.length)
}

func (s Segment) clamp(t float64) float64 {
	return math.Max(0, math.Min(s.length, t))
}

// Along returns the point at arc length t, clamped to the segment.
func (s Segment) Along(t float64) Point {
	t = s.clamp(t)
	if !s.IsArc() {
		return s.start.Add(s.direction.Mul(t))
	}
	angle := t / s.radius
	return s.center.Add(s.start.Sub(s.center).Rotate(angle))
}

// DirectionAlong returns the unit tangent at arc length t, clamped to the segment.
func (s Segment) DirectionAlong(t float64) Point {
	t = s.clamp(t)
	if !s.IsArc() {
		return s.direction
	}
	radial := s.start.Sub(s.center).Rotate(t / s.radius).Normalize()
	if s.radius > 0 {
		return Orthogonal(radial)
	}
	return Neg(Orthogonal(radial))
}

// Project returns the arc length of the point on the segment closest to p,
// if the perpendicular foot of p lies on the segment.
func (s Segment) Project(p Point) (float64, bool) {
	if !s.IsArc() {
		t := p.Sub(s.start).Dot(s.direction)
		if t < -Thickness || t > s.length+Thickness {
			return 0, false
		}
		return s.clamp(t), true
	}

	v := p.Sub(s.center)
	if v.Length() < Thickness {
		return 0, false
	}
	fromCenter := s.start.Sub(s.center)
	angle := math.Atan2(fromCenter.Cross(v), fromCenter.Dot(v))
	if s.radius < 0 {
		angle = -angle
	}
	if angle < 0 {
		angle += 2 * math.Pi
	}

	r := math.Abs(s.radius)
	switch {
	case angle*r <= s.length+Thickness:
		return s.clamp(angle * r), true
	case (2*math.Pi-angle)*r <= Thickness:
		return 0, true
	default:
		return 0, false
	}
}

// Subsection returns the part of the segment between arc lengths start and end.
func (s Segment) Subsection(start, end float64) (Segment, bool) {
	start, end = s.clamp(start), s.clamp(end)
	if end-start < MinStartToEnd {
		return Segment{}, false
	}
	if !s.IsArc() {
		return Line(s.Along(start), s.Along(end))
	}
	return ArcWithDirection(s.Along(start), s.DirectionAlong(start), s.Along(end))
}

// Biarc joins p1 (heading t1) to p2 (arriving with heading t2) using one
// arc if it happens to arrive with t2, otherwise two arcs meeting tangentially
// at the point that gives both arcs equal tangent lengths.
func Biarc(p1, t1, p2, t2 Point) ([]Segment, bool) {
	t1, t2 = t1.Normalize(), t2.Normalize()
	if single, ok := ArcWithDirection(p1, t1, p2); ok &&
		IsRoughlyWithin(single.EndDirection(), t2, DirectionTolerance) {
		return []Segment{single}, true
	}

	v := p2.Sub(p1)
	if v.Length() < MinStartToEnd {
		return nil, false
	}
	t := t1.Add(t2)
	vt := v.Dot(t)
	denom := 2 * (1 - t1.Dot(t2))

	var d float64
	if math.Abs(denom) < 1e-9 {
		if math.Abs(vt) < 1e-9 {
			return nil, false
		}
		d = v.Dot(v) / (2 * vt)
	} else {
		d = (-vt + math.Sqrt(vt*vt+denom*v.Dot(v))) / denom
	}
	if !(d > 0) {
		return nil, false
	}

	joint := p1.Add(t1.Mul(d)).Add(p2.Sub(t2.Mul(d))).Mul(0.5)
	first, ok := ArcWithDirection(p1, t1, joint)
	if !ok {
		return nil, false
	}
	second, ok := ArcWithDirection(joint, first.EndDirection(), p2)
	if !ok || !IsRoughlyWithin(second.EndDirection(), t2, 10*DirectionTolerance) {
		return nil, false
	}
	return []Segment{first, second}, true
}
