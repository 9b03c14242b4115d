// Package preview rasterises a plan step over the committed baseline.
//
// Committed strokes are drawn grey, or red when the plan destroys them. New
// strokes are blue and selected ranges are overdrawn in orange. World
// coordinates have y pointing up; the image is flipped accordingly.
package preview

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/gogpu/gg"

	"github.com/danieljhkim/roadplan/internal/config"
	"github.com/danieljhkim/roadplan/internal/geom"
	"github.com/danieljhkim/roadplan/internal/lane"
	"github.com/danieljhkim/roadplan/internal/plan"
)

// ErrInvalidCanvas indicates a non-positive canvas size.
var ErrInvalidCanvas = errors.New("preview canvas must have positive size")

// sampleSpacing is the arc length between polyline samples.
const sampleSpacing = 1.0

type rgb struct{ r, g, b float64 }

var (
	background = gg.RGB(1, 1, 1)
	builtColor = rgb{0.6, 0.6, 0.6}
	doomed     = rgb{0.85, 0.2, 0.2}
	newColor   = rgb{0.15, 0.35, 0.85}
	selected   = rgb{1, 0.55, 0}
)

// Options controls the raster size and stroke widths.
type Options struct {
	Width     int
	Height    int
	Margin    float64
	LineWidth float64
}

// FromConfig converts the preview section of the config file.
func FromConfig(cfg config.PreviewConfig) Options {
	return Options{Width: cfg.Width, Height: cfg.Height, Margin: cfg.Margin, LineWidth: cfg.LineWidth}
}

// Bounds is an axis-aligned box in world coordinates.
type Bounds struct {
	Min, Max geom.Point
}

// Empty reports whether nothing was added to the box.
func (b Bounds) Empty() bool {
	return b.Min.X > b.Max.X
}

func emptyBounds() Bounds {
	inf := math.Inf(1)
	return Bounds{Min: geom.Pt(inf, inf), Max: geom.Pt(-inf, -inf)}
}

func (b *Bounds) add(p geom.Point) {
	b.Min = geom.Pt(math.Min(b.Min.X, p.X), math.Min(b.Min.Y, p.Y))
	b.Max = geom.Pt(math.Max(b.Max.X, p.X), math.Max(b.Max.Y, p.Y))
}

// StrokeBounds returns the box around every visible stroke of step and built.
func StrokeBounds(step plan.PlanStep, built *plan.BuiltStrokes) Bounds {
	b := emptyBounds()
	visit := func(s lane.Stroke) {
		for _, p := range samples(s, 0, s.Length()) {
			b.add(p)
		}
	}
	if built != nil {
		for _, ref := range built.Refs() {
			s, _ := built.Get(ref)
			visit(s)
		}
	}
	for _, s := range step.Delta.NewStrokes {
		visit(s)
	}
	return b
}

// viewport maps world points into pixel space, keeping the aspect ratio.
type viewport struct {
	scale float64
	m     gg.Matrix
}

func newViewport(scale float64, origin geom.Point, height float64) viewport {
	m := gg.Translate(0, height).
		Multiply(gg.Scale(scale, -scale)).
		Multiply(gg.Translate(-origin.X, -origin.Y))
	return viewport{scale: scale, m: m}
}

func fit(b Bounds, opts Options) viewport {
	w := float64(opts.Width) - 2*opts.Margin
	h := float64(opts.Height) - 2*opts.Margin
	if b.Empty() || w <= 0 || h <= 0 {
		return newViewport(1, geom.Pt(-opts.Margin, -opts.Margin), float64(opts.Height))
	}

	span := b.Max.Sub(b.Min)
	scale := math.Inf(1)
	if span.X > 0 {
		scale = w / span.X
	}
	if span.Y > 0 {
		scale = math.Min(scale, h/span.Y)
	}
	if math.IsInf(scale, 1) {
		scale = 1
	}

	// Center the content in the unused space.
	center := b.Min.Add(span.Mul(0.5))
	half := geom.Pt(float64(opts.Width), float64(opts.Height)).Mul(0.5 / scale)
	return newViewport(scale, center.Sub(half), float64(opts.Height))
}

// pixel flips y so that world y grows upwards.
func (v viewport) pixel(p geom.Point) geom.Point {
	return v.m.TransformPoint(p)
}

// Render draws step over built and writes a PNG to w.
func Render(w io.Writer, step plan.PlanStep, built *plan.BuiltStrokes, opts Options) error {
	if opts.Width <= 0 || opts.Height <= 0 {
		return fmt.Errorf("%w: %dx%d", ErrInvalidCanvas, opts.Width, opts.Height)
	}
	if opts.LineWidth <= 0 {
		opts.LineWidth = 1
	}

	dc := gg.NewContext(opts.Width, opts.Height)
	defer func() {
		_ = dc.Close()
	}()
	dc.ClearWithColor(background)
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)

	vp := fit(StrokeBounds(step, built), opts)
	r := renderer{dc: dc, vp: vp, width: opts.LineWidth}

	if built != nil {
		for _, ref := range built.Refs() {
			s, _ := built.Get(ref)
			c := builtColor
			if _, ok := step.Delta.StrokesToDestroy[ref]; ok {
				c = doomed
			}
			if err := r.stroke(s, 0, s.Length(), c, 1); err != nil {
				return err
			}
		}
	}
	for _, s := range step.Delta.NewStrokes {
		if err := r.stroke(s, 0, s.Length(), newColor, 1); err != nil {
			return err
		}
		if err := r.nodes(s, newColor); err != nil {
			return err
		}
	}
	for _, ref := range step.Selections.Refs() {
		s, err := plan.Resolve(ref, step.Delta, built)
		if err != nil {
			continue
		}
		sel := step.Selections[ref]
		if err := r.stroke(s, sel.Start, sel.End, selected, 2); err != nil {
			return err
		}
	}

	if err := dc.EncodePNG(w); err != nil {
		return fmt.Errorf("failed to encode preview: %w", err)
	}
	return nil
}

type renderer struct {
	dc    *gg.Context
	vp    viewport
	width float64
}

func (r renderer) stroke(s lane.Stroke, start, end float64, c rgb, widthFactor float64) error {
	pts := samples(s, start, end)
	if len(pts) < 2 {
		return nil
	}
	r.dc.SetRGB(c.r, c.g, c.b)
	r.dc.SetLineWidth(r.width * widthFactor)
	r.dc.NewSubPath()
	first := r.vp.pixel(pts[0])
	r.dc.MoveTo(first.X, first.Y)
	for _, p := range pts[1:] {
		q := r.vp.pixel(p)
		r.dc.LineTo(q.X, q.Y)
	}
	if err := r.dc.Stroke(); err != nil {
		return fmt.Errorf("failed to draw stroke: %w", err)
	}
	return nil
}

func (r renderer) nodes(s lane.Stroke, c rgb) error {
	r.dc.SetRGB(c.r, c.g, c.b)
	for _, n := range s.Nodes() {
		at := r.vp.pixel(n.Position)
		r.dc.DrawCircle(at.X, at.Y, r.width*1.5)
		if err := r.dc.Fill(); err != nil {
			return fmt.Errorf("failed to draw node: %w", err)
		}
	}
	return nil
}

// samples returns points along s between arc lengths start and end.
func samples(s lane.Stroke, start, end float64) []geom.Point {
	if end < start {
		start, end = end, start
	}
	n := int(math.Ceil((end - start) / sampleSpacing))
	if n < 1 {
		return []geom.Point{s.Along(start)}
	}
	pts := make([]geom.Point, 0, n+1)
	for i := 0; i <= n; i++ {
		pts = append(pts, s.Along(start+(end-start)*float64(i)/float64(n)))
	}
	return pts
}
