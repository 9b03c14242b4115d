package planner

import (
	"github.com/danieljhkim/roadplan/internal/geom"
	"github.com/danieljhkim/roadplan/internal/lane"
	"github.com/danieljhkim/roadplan/internal/plan"
)

const (
	// connectorProximity is how close two moved range ends must be for
	// their connectors to be aligned.
	connectorProximity = 7.0

	// sameDirectionOffset separates aligned connectors of lanes running the same way.
	sameDirectionOffset = 5.0

	// opposingOffset separates aligned connectors of lanes running opposite ways.
	opposingOffset = 6.0
)

type connectorSide int

const (
	beforeSide connectorSide = iota
	afterSide
)

func (s connectorSide) String() string {
	if s == afterSide {
		return "after"
	}
	return "before"
}

// connectorKey names one connector of one moved selection.
type connectorKey struct {
	ref  plan.StrokeRef
	side connectorSide
}

// alignment places connector align relative to connector to.
type alignment struct {
	align connectorKey
	to    connectorKey
}

// closeAndRightOf reports whether x lies near y and on the right-hand side
// of y when looking along x's direction.
func closeAndRightOf(x, y lane.Node) bool {
	return geom.IsRoughlyWithin(x.Position, y.Position, connectorProximity) &&
		x.Position.Sub(y.Position).Dot(geom.Orthogonal(x.Direction)) > 0
}

// connectorAlignments collects the alignments between moved selections
// whose moved ends meet. refs fixes the scan order. A constraint is not
// added when its mirror image is already present.
func connectorAlignments(refs []plan.StrokeRef, moved map[plan.StrokeRef]*lane.MovedSubsection) []alignment {
	var out []alignment
	add := func(a, b connectorKey) {
		for _, existing := range out {
			if existing == (alignment{align: b, to: a}) || existing == (alignment{align: a, to: b}) {
				return
			}
		}
		out = append(out, alignment{align: a, to: b})
	}

	for _, refA := range refs {
		for _, refB := range refs {
			if refA == refB {
				continue
			}
			a, b := moved[refA], moved[refB]
			aFirst, aLast := a.Moved[0], a.Moved[len(a.Moved)-1]
			bFirst, bLast := b.Moved[0], b.Moved[len(b.Moved)-1]

			if a.BeforeConnector != nil && b.BeforeConnector != nil && closeAndRightOf(aFirst, bFirst) {
				add(connectorKey{refA, beforeSide}, connectorKey{refB, beforeSide})
			}
			if a.BeforeConnector != nil && b.AfterConnector != nil && closeAndRightOf(aFirst, bLast) {
				add(connectorKey{refA, beforeSide}, connectorKey{refB, afterSide})
			}
			if a.AfterConnector != nil && b.AfterConnector != nil && closeAndRightOf(aLast, bLast) {
				add(connectorKey{refA, afterSide}, connectorKey{refB, afterSide})
			}
			if a.AfterConnector != nil && b.BeforeConnector != nil && closeAndRightOf(aLast, bFirst) {
				add(connectorKey{refA, afterSide}, connectorKey{refB, beforeSide})
			}
		}
	}
	return out
}

// orderAlignments sorts alignments so that every connector is finalized
// before another connector is aligned to it. The sort is stable: among
// ready alignments the earliest one goes first. Alignments that take part
// in, or depend on, a cycle are left out; their count is returned.
func orderAlignments(alignments []alignment) ([]alignment, int) {
	n := len(alignments)
	indegree := make([]int, n)
	dependents := make([][]int, n)
	for i := range alignments {
		for j := range alignments {
			if i != j && alignments[i].to == alignments[j].align {
				indegree[i]++
				dependents[j] = append(dependents[j], i)
			}
		}
	}

	done := make([]bool, n)
	ordered := make([]alignment, 0, n)
	for {
		next := -1
		for i := 0; i < n; i++ {
			if !done[i] && indegree[i] == 0 {
				next = i
				break
			}
		}
		if next < 0 {
			break
		}
		done[next] = true
		ordered = append(ordered, alignments[next])
		for _, d := range dependents[next] {
			indegree[d]--
		}
	}
	return ordered, n - len(ordered)
}

// connector returns the connector named by key. It must exist.
func connector(moved map[plan.StrokeRef]*lane.MovedSubsection, key connectorKey) *lane.Node {
	m := moved[key.ref]
	if key.side == afterSide {
		return m.AfterConnector
	}
	return m.BeforeConnector
}

// applyAlignment turns the aligned connector parallel to its target and
// places it one lane spacing to the target's side, wider for lanes that
// run against each other.
func applyAlignment(a alignment, moved map[plan.StrokeRef]*lane.MovedSubsection) {
	target := *connector(moved, a.to)
	aligned := connector(moved, a.align)

	sign := 1.0
	if aligned.Direction.Dot(target.Direction) < 0 {
		sign = -1.0
	}
	distance := sameDirectionOffset
	if sign < 0 {
		distance = opposingOffset
	}

	aligned.Direction = target.Direction.Mul(sign)
	aligned.Position = target.Position.Add(geom.Orthogonal(aligned.Direction).Mul(distance))
}
