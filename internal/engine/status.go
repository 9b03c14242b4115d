package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/danieljhkim/roadplan/internal/geom"
	"github.com/danieljhkim/roadplan/internal/lane"
	"github.com/danieljhkim/roadplan/internal/plan"
)

// StatusRequest represents a request for plan status.
type StatusRequest struct {
	// Plan is the session name (DefaultPlan if empty)
	Plan string
}

// StrokeInfo describes one stroke of a plan.
type StrokeInfo struct {
	Ref    string  `json:"ref"`
	Nodes  int     `json:"nodes"`
	Length float64 `json:"length"`
	From   geom.XY `json:"from"`
	To     geom.XY `json:"to"`
}

func strokeInfo(ref string, s lane.Stroke) StrokeInfo {
	info := StrokeInfo{Ref: ref, Nodes: s.Len(), Length: s.Length()}
	if s.Len() > 0 {
		info.From = geom.ToXY(s.First().Position)
		info.To = geom.ToXY(s.Last().Position)
	}
	return info
}

// SelectionInfo describes one selected range.
type SelectionInfo struct {
	Ref   string  `json:"ref"`
	Start float64 `json:"start"`
	End   float64 `json:"end"`
}

// StatusResult represents the current state of a plan session.
type StatusResult struct {
	// Plan is the session name
	Plan string `json:"plan"`

	// Exists is false when the session has not been started
	Exists bool `json:"exists"`

	// Path is the session file
	Path string `json:"path"`

	// Checksum is the hash of the session file on disk
	Checksum string `json:"checksum,omitempty"`

	// Revision fingerprints the plan content
	Revision string `json:"revision,omitempty"`

	CreatedAt time.Time `json:"createdAt,omitzero"`
	UpdatedAt time.Time `json:"updatedAt,omitzero"`

	// Intent is the kind of the last applied intent
	Intent string `json:"intent"`

	// NewStrokes are the strokes authored in the plan
	NewStrokes []StrokeInfo `json:"newStrokes"`

	// Destroyed are the committed strokes the plan removes
	Destroyed []StrokeInfo `json:"destroyed"`

	// Selections are the selected ranges
	Selections []SelectionInfo `json:"selections"`

	// BuiltStrokes is the size of the committed store
	BuiltStrokes int `json:"builtStrokes"`

	// Plans lists every saved session
	Plans []string `json:"plans"`
}

// Status reports the content of a plan session and the committed store.
func (e *Engine) Status(ctx context.Context, req *StatusRequest) (*StatusResult, error) {
	name, err := e.planName(req.Plan)
	if err != nil {
		return nil, err
	}

	ps, exists, err := e.loadSession(name, true)
	if err != nil {
		return nil, err
	}
	step, err := ps.Step()
	if err != nil {
		return nil, fmt.Errorf("failed to decode plan %s: %w", name, err)
	}
	built, err := e.loadBuilt()
	if err != nil {
		return nil, err
	}
	plans, err := e.stateStore.ListPlans()
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}

	result := &StatusResult{
		Plan:         name,
		Exists:       exists,
		Path:         e.configPaths.PlanFile(name),
		Intent:       step.Intent.Kind(),
		NewStrokes:   []StrokeInfo{},
		Destroyed:    []StrokeInfo{},
		Selections:   []SelectionInfo{},
		BuiltStrokes: built.Len(),
		Plans:        plans,
	}
	if exists {
		result.CreatedAt = ps.CreatedAt
		result.UpdatedAt = ps.UpdatedAt
		checksum, err := e.hasher.HashFile(result.Path)
		if err != nil {
			return nil, fmt.Errorf("failed to hash plan file: %w", err)
		}
		result.Checksum = checksum
	}
	result.Revision, err = e.revision(step)
	if err != nil {
		return nil, err
	}

	for i, s := range step.Delta.NewStrokes {
		result.NewStrokes = append(result.NewStrokes, strokeInfo(plan.NewStrokeRef(i).String(), s))
	}
	for _, ref := range destroyedRefs(step.Delta) {
		result.Destroyed = append(result.Destroyed, strokeInfo(ref.String(), step.Delta.StrokesToDestroy[ref]))
	}
	for _, ref := range step.Selections.Refs() {
		r := step.Selections[ref]
		result.Selections = append(result.Selections, SelectionInfo{Ref: ref.String(), Start: r.Start, End: r.End})
	}

	return result, nil
}
