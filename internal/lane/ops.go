package lane

import (
	"math"

	"github.com/danieljhkim/roadplan/internal/geom"
)

// ConnectorLength is how much unmoved stroke a moved subsection may claim
// on each side to transition back to the unmoved part.
const ConnectorLength = 10.0

// MovedSubsection is a stroke split around a moved range.
//
// Reassembling Before, BeforeConnector, Moved, AfterConnector and After in
// that order yields the edited stroke. Connectors are nil when the moved
// range reaches the corresponding end of the stroke.
type MovedSubsection struct {
	Before          []Node
	BeforeConnector *Node
	Moved           []Node
	AfterConnector  *Node
	After           []Node
}

// Nodes reassembles the full node sequence.
func (m MovedSubsection) Nodes() []Node {
	nodes := make([]Node, 0, len(m.Before)+len(m.Moved)+len(m.After)+2)
	nodes = append(nodes, m.Before...)
	if m.BeforeConnector != nil {
		nodes = append(nodes, *m.BeforeConnector)
	}
	nodes = append(nodes, m.Moved...)
	if m.AfterConnector != nil {
		nodes = append(nodes, *m.AfterConnector)
	}
	return append(nodes, m.After...)
}

// Subsection returns the part of the stroke between arc lengths start and end.
// It fails if the range is shorter than geom.MinStartToEnd.
func (s Stroke) Subsection(start, end float64) (Stroke, bool) {
	sub, ok := s.Path().Subsection(start, end)
	if !ok {
		return Stroke{}, false
	}
	segments := sub.Segments()
	nodes := make([]Node, 0, len(segments)+1)
	for _, seg := range segments {
		nodes = append(nodes, Node{Position: seg.Start(), Direction: seg.StartDirection()})
	}
	last := segments[len(segments)-1]
	nodes = append(nodes, Node{Position: last.End(), Direction: last.EndDirection()})

	stroke, err := NewStroke(nodes)
	if err != nil {
		return Stroke{}, false
	}
	return stroke, true
}

// WithSubsectionMoved splits the stroke around [start, end] and translates
// that range by delta. Where unmoved stroke remains on a side, up to
// ConnectorLength of it is given up and a connector node is placed halfway
// between the unmoved cut and the moved range, keeping the boundary tangent.
func (s Stroke) WithSubsectionMoved(start, end float64, delta geom.Point) MovedSubsection {
	length := s.Length()
	start = math.Max(0, math.Min(length, start))
	end = math.Max(start, math.Min(length, end))

	var m MovedSubsection
	if sub, ok := s.Subsection(start, end); ok {
		m.Moved = sub.Nodes()
	} else {
		m.Moved = []Node{s.NodeAt(start)}
	}
	for i := range m.Moved {
		m.Moved[i].Position = m.Moved[i].Position.Add(delta)
	}

	if start > geom.MinStartToEnd {
		cut := start - math.Min(ConnectorLength, start)
		if before, ok := s.Subsection(0, cut); ok {
			m.Before = before.Nodes()
		} else {
			m.Before = []Node{s.NodeAt(0)}
		}
		connector := Node{
			Position:  s.Along(cut).Lerp(m.Moved[0].Position, 0.5),
			Direction: s.DirectionAlong(start),
		}
		m.BeforeConnector = &connector
	}

	if length-end > geom.MinStartToEnd {
		cut := end + math.Min(ConnectorLength, length-end)
		if after, ok := s.Subsection(cut, length); ok {
			m.After = after.Nodes()
		} else {
			m.After = []Node{s.NodeAt(length)}
		}
		connector := Node{
			Position:  m.Moved[len(m.Moved)-1].Position.Lerp(s.Along(cut), 0.5),
			Direction: s.DirectionAlong(end),
		}
		m.AfterConnector = &connector
	}

	return m
}

// OffsetBy shifts every node sideways by distance along its own
// perpendicular, keeping directions.
func (s Stroke) OffsetBy(distance float64) (Stroke, error) {
	nodes := s.Nodes()
	for i := range nodes {
		nodes[i].Position = nodes[i].Position.Add(geom.Orthogonal(nodes[i].Direction).Mul(distance))
	}
	return NewStroke(nodes)
}

// IsRoughlyWithin reports whether both strokes trace the same lane in the
// same direction, up to tolerance.
func (s Stroke) IsRoughlyWithin(other Stroke, tolerance float64) bool {
	return s.nodesNear(other, tolerance) && other.nodesNear(s, tolerance)
}

// nodesNear reports whether every node of s lies on other.
func (s Stroke) nodesNear(other Stroke, tolerance float64) bool {
	path := other.Path()
	for _, n := range s.nodes {
		if path.IsEmpty() {
			only := other.nodes[0]
			if !geom.IsRoughlyWithin(only.Position, n.Position, tolerance) ||
				!geom.IsRoughlyWithin(only.Direction, n.Direction, tolerance) {
				return false
			}
			continue
		}
		t, ok := path.Project(n.Position)
		if !ok ||
			!geom.IsRoughlyWithin(path.Along(t), n.Position, tolerance) ||
			!geom.IsRoughlyWithin(path.DirectionAlong(t), n.Direction, tolerance) {
			return false
		}
	}
	return true
}
