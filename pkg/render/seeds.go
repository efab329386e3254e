package render

import (
	"image"

	"github.com/matzehuels/voronoigen/pkg/geometry"
)

// DrawSeeds returns a copy of canvas with a filled circle of the given
// radius stamped at every seed point.
func DrawSeeds(canvas *image.Gray, points []geometry.Point, radius float64, value uint8) *image.Gray {
	out := Clone(canvas)
	b := out.Bounds()
	dc := newMask(b.Dx(), b.Dy())
	dc.Translate(0.5, 0.5)
	for _, p := range points {
		dc.DrawCircle(float64(p.X), float64(p.Y), radius)
	}
	dc.Fill()
	Stamp(out, dc, image.Point{}, StrokeThreshold, value)
	return out
}
