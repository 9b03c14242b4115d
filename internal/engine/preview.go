package engine

import (
	"context"
	"fmt"
	"io"

	"github.com/danieljhkim/roadplan/internal/preview"
)

// PreviewRequest represents a request to render a plan session.
type PreviewRequest struct {
	// Plan is the session name (DefaultPlan if empty)
	Plan string

	// Out receives the PNG
	Out io.Writer

	// Width and Height override the configured canvas when positive
	Width  int
	Height int
}

// PreviewResult represents the result of rendering a plan session.
type PreviewResult struct {
	Plan   string
	Width  int
	Height int
}

// Preview renders the session over the committed strokes as a PNG.
// A session that was never started renders the committed strokes alone.
func (e *Engine) Preview(ctx context.Context, req *PreviewRequest) (*PreviewResult, error) {
	name, err := e.planName(req.Plan)
	if err != nil {
		return nil, err
	}
	if req.Out == nil {
		return nil, fmt.Errorf("%w: no output for preview", ErrValidation)
	}

	ps, _, err := e.loadSession(name, true)
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

	opts := preview.FromConfig(e.cfg.Preview)
	if req.Width > 0 {
		opts.Width = req.Width
	}
	if req.Height > 0 {
		opts.Height = req.Height
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := preview.Render(req.Out, step, built, opts); err != nil {
		return nil, fmt.Errorf("failed to render plan %s: %w", name, err)
	}

	return &PreviewResult{Plan: name, Width: opts.Width, Height: opts.Height}, nil
}
