package planner

import (
	"go.uber.org/zap"

	"github.com/danieljhkim/roadplan/internal/config"
	"github.com/danieljhkim/roadplan/internal/geom"
	"github.com/danieljhkim/roadplan/internal/lane"
	"github.com/danieljhkim/roadplan/internal/plan"
)

// newRoad seeds one single-node stroke per lane at the first point and
// continues all of them through the remaining points.
func (p *Planner) newRoad(intent plan.NewRoad, current plan.PlanStep, settings config.Settings) plan.PlanStep {
	delta := current.Delta.Clone()
	points := intent.Points
	if len(points) < 2 || geom.IsRoughlyWithin(points[0], points[1], geom.MinStartToEnd) {
		p.log.Debug("new road needs two distinct points", zap.Int("points", len(points)))
		return emptyStep(delta)
	}

	direction := points[1].Sub(points[0]).Normalize()
	offset := func(laneIdx int) geom.Point {
		return geom.Orthogonal(direction).Mul(plan.CenterLaneDistance/2 + plan.LaneDistance*float64(laneIdx))
	}

	base := len(delta.NewStrokes)
	perSide := settings.NLanesPerSide
	var continueFrom []plan.Continuation

	for i := 0; i < perSide; i++ {
		delta.NewStrokes = append(delta.NewStrokes, lane.WithSingleNode(lane.Node{
			Position:  points[0].Add(offset(i)),
			Direction: direction,
		}))
		continueFrom = append(continueFrom, plan.Continuation{Index: base + i, Mode: plan.Append})
	}

	if settings.CreateBothSides {
		for i := 0; i < perSide; i++ {
			delta.NewStrokes = append(delta.NewStrokes, lane.WithSingleNode(lane.Node{
				Position:  points[0].Sub(offset(i)),
				Direction: geom.Neg(direction),
			}))
			continueFrom = append(continueFrom, plan.Continuation{Index: base + perSide + i, Mode: plan.Prepend})
		}
	}

	p.log.Debug("starting new road",
		zap.Int("lanes", len(continueFrom)),
		zap.Int("points", len(points)))

	return p.continueRoad(continueFrom, points[1:], points[0], delta)
}

// continueRoad extends the strokes in continueFrom through points, starting
// from the reference point start. delta is owned by the caller and modified.
func (p *Planner) continueRoad(continueFrom []plan.Continuation, points []geom.Point, start geom.Point, delta plan.PlanDelta) plan.PlanStep {
	previous := start

	for _, next := range points {
		if geom.IsRoughlyWithin(next, previous, geom.MinStartToEnd) {
			continue
		}

		for _, c := range continueFrom {
			if c.Index < 0 || c.Index >= len(delta.NewStrokes) {
				p.log.Debug("skipping continuation of unknown stroke", zap.Int("index", c.Index))
				continue
			}
			stroke := &delta.NewStrokes[c.Index]

			node, ok := continuationNode(*stroke, c.Mode, previous, next)
			if !ok {
				p.log.Debug("no arc towards continuation point",
					zap.Int("index", c.Index),
					zap.Stringer("mode", c.Mode))
				continue
			}

			var kept bool
			if c.Mode == plan.Prepend {
				kept = stroke.Prepend(node)
			} else {
				kept = stroke.Append(node)
			}
			if !kept {
				p.log.Debug("rolled back malformed continuation",
					zap.Int("index", c.Index),
					zap.Stringer("mode", c.Mode))
			}
		}

		previous = next
	}

	return emptyStep(delta)
}

// continuationNode computes the node that continues stroke when the road's
// reference point advances from previous to next. The new node keeps the
// terminal node's offset from the reference point, expressed in the local
// frame of the travel direction.
func continuationNode(stroke lane.Stroke, mode plan.ContinuationMode, previous, next geom.Point) (lane.Node, bool) {
	terminal := stroke.Last()
	heading := terminal.Direction
	if mode == plan.Prepend {
		terminal = stroke.First()
		heading = geom.Neg(terminal.Direction)
	}

	arc, ok := geom.ArcWithDirection(previous, heading, next)
	if !ok {
		return lane.Node{}, false
	}
	direction := arc.EndDirection()
	if mode == plan.Prepend {
		direction = geom.Neg(direction)
	}

	position := next.Add(geom.FromBasis(geom.ToBasis(terminal.Position.Sub(previous), terminal.Direction), direction))
	return lane.Node{Position: position, Direction: direction}, true
}
