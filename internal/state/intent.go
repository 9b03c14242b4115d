package state

import (
	"fmt"

	"github.com/danieljhkim/roadplan/internal/geom"
	"github.com/danieljhkim/roadplan/internal/plan"
)

// IntentRecord is the persisted form of a plan.Intent. Kind selects the
// variant; only the fields of that variant are set.
type IntentRecord struct {
	// Kind is one of the plan.Kind* names
	Kind string `json:"kind"`

	// Points are the road points (new_road) or additional points (continue_road)
	Points []geom.XY `json:"points,omitempty"`

	// ContinueFrom lists the strokes extended by continue_road
	ContinueFrom []ContinuationRecord `json:"continueFrom,omitempty"`

	// StartReferencePoint is the point continue_road starts from
	StartReferencePoint *geom.XY `json:"startReferencePoint,omitempty"`

	// Stroke is the selected reference (select)
	Stroke string `json:"stroke,omitempty"`

	Start float64 `json:"start,omitempty"`
	End   float64 `json:"end,omitempty"`

	// Delta is the translation (move_selection)
	Delta *geom.XY `json:"delta,omitempty"`
}

// ContinuationRecord is the persisted form of a plan.Continuation.
type ContinuationRecord struct {
	Index int    `json:"index"`
	Mode  string `json:"mode"`
}

// EncodeIntent converts an intent into its record. A nil intent encodes as none.
func EncodeIntent(intent plan.Intent) IntentRecord {
	switch in := intent.(type) {
	case plan.NewRoad:
		return IntentRecord{Kind: plan.KindNewRoad, Points: encodePoints(in.Points)}
	case plan.ContinueRoad:
		rec := IntentRecord{
			Kind:   plan.KindContinueRoad,
			Points: encodePoints(in.AdditionalPoints),
		}
		start := geom.ToXY(in.StartReferencePoint)
		rec.StartReferencePoint = &start
		for _, c := range in.ContinueFrom {
			rec.ContinueFrom = append(rec.ContinueFrom, ContinuationRecord{Index: c.Index, Mode: c.Mode.String()})
		}
		return rec
	case plan.Select:
		return IntentRecord{Kind: plan.KindSelect, Stroke: in.Ref.String(), Start: in.Start, End: in.End}
	case plan.MaximizeSelection:
		return IntentRecord{Kind: plan.KindMaximizeSelection}
	case plan.MoveSelection:
		delta := geom.ToXY(in.Delta)
		return IntentRecord{Kind: plan.KindMoveSelection, Delta: &delta}
	case plan.DeleteSelection:
		return IntentRecord{Kind: plan.KindDeleteSelection}
	case plan.CreateNextLane:
		return IntentRecord{Kind: plan.KindCreateNextLane}
	default:
		return IntentRecord{Kind: plan.KindNone}
	}
}

// Decode converts the record back into an intent.
func (r IntentRecord) Decode() (plan.Intent, error) {
	switch r.Kind {
	case "", plan.KindNone:
		return plan.None{}, nil
	case plan.KindNewRoad:
		return plan.NewRoad{Points: decodePoints(r.Points)}, nil
	case plan.KindContinueRoad:
		in := plan.ContinueRoad{AdditionalPoints: decodePoints(r.Points)}
		if r.StartReferencePoint != nil {
			in.StartReferencePoint = r.StartReferencePoint.Point()
		}
		for _, c := range r.ContinueFrom {
			mode, err := ParseContinuationMode(c.Mode)
			if err != nil {
				return nil, err
			}
			in.ContinueFrom = append(in.ContinueFrom, plan.Continuation{Index: c.Index, Mode: mode})
		}
		return in, nil
	case plan.KindSelect:
		ref, err := plan.ParseStrokeRef(r.Stroke)
		if err != nil {
			return nil, err
		}
		return plan.Select{Ref: ref, Start: r.Start, End: r.End}, nil
	case plan.KindMaximizeSelection:
		return plan.MaximizeSelection{}, nil
	case plan.KindMoveSelection:
		var delta geom.Point
		if r.Delta != nil {
			delta = r.Delta.Point()
		}
		return plan.MoveSelection{Delta: delta}, nil
	case plan.KindDeleteSelection:
		return plan.DeleteSelection{}, nil
	case plan.KindCreateNextLane:
		return plan.CreateNextLane{}, nil
	default:
		return nil, fmt.Errorf("unknown intent kind %q", r.Kind)
	}
}

func encodePoints(points []geom.Point) []geom.XY {
	if points == nil {
		return nil
	}
	out := make([]geom.XY, len(points))
	for i, p := range points {
		out[i] = geom.ToXY(p)
	}
	return out
}

func decodePoints(points []geom.XY) []geom.Point {
	if points == nil {
		return nil
	}
	out := make([]geom.Point, len(points))
	for i, p := range points {
		out[i] = p.Point()
	}
	return out
}

// ParseContinuationMode parses "append" or "prepend".
func ParseContinuationMode(s string) (plan.ContinuationMode, error) {
	switch s {
	case "append", "":
		return plan.Append, nil
	case "prepend":
		return plan.Prepend, nil
	default:
		return plan.Append, fmt.Errorf("invalid continuation mode %q (want append or prepend)", s)
	}
}
