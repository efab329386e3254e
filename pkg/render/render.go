package render

import (
	"image"

	"github.com/fogleman/gg"

	"github.com/matzehuels/voronoigen/pkg/errors"
	"github.com/matzehuels/voronoigen/pkg/geometry"
	"github.com/matzehuels/voronoigen/pkg/params"
	"github.com/matzehuels/voronoigen/pkg/rng"
	"github.com/matzehuels/voronoigen/pkg/sampling"
)

// Label style defaults.
const (
	DefaultLabelColor     uint8 = 255
	DefaultLabelThickness       = 2
)

// LabelStyle controls how facet boundaries are stroked on the label canvas.
type LabelStyle struct {
	Color     uint8
	Thickness int
}

// DefaultLabelStyle returns white strokes two pixels wide.
func DefaultLabelStyle() LabelStyle {
	return LabelStyle{Color: DefaultLabelColor, Thickness: DefaultLabelThickness}
}

// NewLabelStyle reads color and thickness from a label_info block, falling
// back to the defaults for absent keys.
func NewLabelStyle(p params.Params) (LabelStyle, error) {
	c, err := p.ColorOr("label_info", "color", DefaultLabelColor)
	if err != nil {
		return LabelStyle{}, err
	}
	th, err := p.IntOr("label_info", "thickness", DefaultLabelThickness)
	if err != nil {
		return LabelStyle{}, err
	}
	if th <= 0 {
		return LabelStyle{}, errors.Configuration("label_info.thickness must be a positive integer, got %d", th)
	}
	return LabelStyle{Color: c, Thickness: th}, nil
}

// Renderer draws facets onto width×height canvases.
type Renderer struct {
	Width  int
	Height int
}

// NewRenderer returns a renderer for a width×height canvas.
func NewRenderer(width, height int) *Renderer {
	return &Renderer{Width: width, Height: height}
}

// RenderImage fills each facet with one gray draw, in facet order.
func (r *Renderer) RenderImage(s *rng.Stream, facets []geometry.Facet, gray sampling.GraySampler) *image.Gray {
	canvas := NewCanvas(r.Width, r.Height)
	for _, f := range facets {
		value := gray.Sample(s)
		r.fillFacet(canvas, f, value)
	}
	return canvas
}

// fillFacet rasterizes one facet on a context sized to its bounding box.
func (r *Renderer) fillFacet(canvas *image.Gray, f geometry.Facet, value uint8) {
	if len(f.Vertices) < 3 {
		return
	}
	minX, minY, maxX, maxY := f.Bounds()
	minX, minY = max(minX, 0), max(minY, 0)
	maxX, maxY = min(maxX, r.Width-1), min(maxY, r.Height-1)
	if minX > maxX || minY > maxY {
		return
	}

	dc := newMask(maxX-minX+1, maxY-minY+1)
	dc.Translate(float64(-minX)+0.5, float64(-minY)+0.5)
	tracePolygon(dc, f.Vertices)
	dc.Fill()
	Stamp(canvas, dc, image.Pt(minX, minY), FillThreshold, value)
}

// RenderLabel strokes every facet boundary as a closed polyline.
func (r *Renderer) RenderLabel(facets []geometry.Facet, style LabelStyle) *image.Gray {
	canvas := NewCanvas(r.Width, r.Height)
	dc := newMask(r.Width, r.Height)
	dc.Translate(0.5, 0.5)
	dc.SetLineWidth(float64(style.Thickness))
	dc.SetLineJoin(gg.LineJoinRound)
	dc.SetLineCap(gg.LineCapRound)
	for _, f := range facets {
		if len(f.Vertices) < 2 {
			continue
		}
		tracePolygon(dc, f.Vertices)
	}
	dc.Stroke()
	Stamp(canvas, dc, image.Point{}, StrokeThreshold, style.Color)
	return canvas
}

func tracePolygon(dc *gg.Context, vertices []geometry.Point) {
	dc.NewSubPath()
	dc.MoveTo(float64(vertices[0].X), float64(vertices[0].Y))
	for _, v := range vertices[1:] {
		dc.LineTo(float64(v.X), float64(v.Y))
	}
	dc.ClosePath()
}
