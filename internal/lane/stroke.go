package lane

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/danieljhkim/roadplan/internal/geom"
)

var (
	// ErrEmptyStroke indicates a stroke without nodes.
	ErrEmptyStroke = errors.New("stroke has no nodes")

	// ErrMalformedStroke indicates two consecutive nodes cannot be joined.
	ErrMalformedStroke = errors.New("stroke is not well-formed")
)

// Node is a single sample of a lane centerline.
type Node struct {
	// Position is the location of the node
	Position geom.Point

	// Direction is the unit tangent of the lane at Position
	Direction geom.Point
}

// Stroke is a lane centerline given as an ordered, non-empty list of nodes.
// Consecutive nodes are joined by biarcs.
type Stroke struct {
	nodes []Node
}

// NewStroke creates a stroke from nodes, rejecting empty or malformed input.
func NewStroke(nodes []Node) (Stroke, error) {
	if len(nodes) == 0 {
		return Stroke{}, ErrEmptyStroke
	}
	s := Stroke{nodes: append([]Node(nil), nodes...)}
	if i := s.firstBrokenJoint(); i >= 0 {
		return Stroke{}, fmt.Errorf("%w: cannot join node %d to node %d", ErrMalformedStroke, i, i+1)
	}
	return s, nil
}

// WithSingleNode creates a stroke consisting of one node.
func WithSingleNode(node Node) Stroke {
	return Stroke{nodes: []Node{node}}
}

// Nodes returns a copy of the stroke's nodes.
func (s Stroke) Nodes() []Node {
	return append([]Node(nil), s.nodes...)
}

// Len returns the number of nodes.
func (s Stroke) Len() int {
	return len(s.nodes)
}

// First returns the head node.
func (s Stroke) First() Node {
	return s.nodes[0]
}

// Last returns the tail node.
func (s Stroke) Last() Node {
	return s.nodes[len(s.nodes)-1]
}

// Clone returns a stroke that shares no memory with s.
func (s Stroke) Clone() Stroke {
	return Stroke{nodes: s.Nodes()}
}

// Append adds node at the tail. The insertion is undone and false is
// returned if it would leave the stroke malformed.
func (s *Stroke) Append(node Node) bool {
	s.nodes = append(s.nodes, node)
	if !s.WellFormed() {
		s.nodes = s.nodes[:len(s.nodes)-1]
		return false
	}
	return true
}

// Prepend adds node at the head, with the same rollback rule as Append.
func (s *Stroke) Prepend(node Node) bool {
	s.nodes = append([]Node{node}, s.nodes...)
	if !s.WellFormed() {
		s.nodes = s.nodes[1:]
		return false
	}
	return true
}

// WellFormed reports whether every pair of consecutive nodes can be joined.
func (s Stroke) WellFormed() bool {
	return len(s.nodes) > 0 && s.firstBrokenJoint() < 0
}

// firstBrokenJoint returns the index of the first node that cannot be
// joined to its successor, or -1.
func (s Stroke) firstBrokenJoint() int {
	for i := 0; i+1 < len(s.nodes); i++ {
		a, b := s.nodes[i], s.nodes[i+1]
		if _, ok := geom.Biarc(a.Position, a.Direction, b.Position, b.Direction); !ok {
			return i
		}
	}
	return -1
}

// Path returns the continuous curve through all nodes. A single-node
// stroke has an empty path.
func (s Stroke) Path() geom.Path {
	var segments []geom.Segment
	for i := 0; i+1 < len(s.nodes); i++ {
		a, b := s.nodes[i], s.nodes[i+1]
		segs, ok := geom.Biarc(a.Position, a.Direction, b.Position, b.Direction)
		if !ok {
			break
		}
		segments = append(segments, segs...)
	}
	path, err := geom.NewPath(segments...)
	if err != nil {
		return geom.Path{}
	}
	return path
}

// Length returns the arc length of the stroke.
func (s Stroke) Length() float64 {
	return s.Path().Length()
}

// Along returns the position at arc length t.
func (s Stroke) Along(t float64) geom.Point {
	path := s.Path()
	if path.IsEmpty() {
		return s.nodes[0].Position
	}
	return path.Along(t)
}

// DirectionAlong returns the direction at arc length t.
func (s Stroke) DirectionAlong(t float64) geom.Point {
	path := s.Path()
	if path.IsEmpty() {
		return s.nodes[0].Direction
	}
	return path.DirectionAlong(t)
}

// Project returns the arc length on the stroke closest to p.
// A single-node stroke only projects points within geom.MinStartToEnd of its node.
func (s Stroke) Project(p geom.Point) (float64, bool) {
	path := s.Path()
	if path.IsEmpty() {
		return 0, geom.IsRoughlyWithin(s.nodes[0].Position, p, geom.MinStartToEnd)
	}
	return path.Project(p)
}

// NodeAt samples the stroke at arc length t.
func (s Stroke) NodeAt(t float64) Node {
	return Node{Position: s.Along(t), Direction: s.DirectionAlong(t)}
}

// nodeJSON is the persisted form of a Node.
type nodeJSON struct {
	Position  geom.XY `json:"position"`
	Direction geom.XY `json:"direction"`
}

// MarshalJSON encodes the stroke as its node list.
func (s Stroke) MarshalJSON() ([]byte, error) {
	nodes := make([]nodeJSON, len(s.nodes))
	for i, n := range s.nodes {
		nodes[i] = nodeJSON{Position: geom.ToXY(n.Position), Direction: geom.ToXY(n.Direction)}
	}
	return json.Marshal(struct {
		Nodes []nodeJSON `json:"nodes"`
	}{Nodes: nodes})
}

// UnmarshalJSON decodes a node list and validates it.
func (s *Stroke) UnmarshalJSON(data []byte) error {
	var raw struct {
		Nodes []nodeJSON `json:"nodes"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	nodes := make([]Node, len(raw.Nodes))
	for i, n := range raw.Nodes {
		nodes[i] = Node{Position: n.Position.Point(), Direction: n.Direction.Point()}
	}
	stroke, err := NewStroke(nodes)
	if err != nil {
		return err
	}
	*s = stroke
	return nil
}
