package render

import (
	"image"

	"github.com/fogleman/gg"
)

// Coverage thresholds applied to gg's antialiased output.
const (
	// FillThreshold paints any touched pixel.
	FillThreshold uint8 = 1
	// StrokeThreshold paints pixels covered by at least a third, which keeps
	// one-pixel strokes 8-connected at every slope.
	StrokeThreshold uint8 = 0x55
)

// NewCanvas returns a zeroed width×height canvas.
func NewCanvas(width, height int) *image.Gray {
	return image.NewGray(image.Rect(0, 0, width, height))
}

// Clone copies src into a new canvas whose bounds start at (0,0).
func Clone(src *image.Gray) *image.Gray {
	b := src.Bounds()
	dst := NewCanvas(b.Dx(), b.Dy())
	for y := range b.Dy() {
		row := src.Pix[src.PixOffset(b.Min.X, b.Min.Y+y):]
		copy(dst.Pix[y*dst.Stride:y*dst.Stride+b.Dx()], row[:b.Dx()])
	}
	return dst
}

// Stamp writes value into dst wherever the gg context's alpha reaches
// threshold. The context's pixel (0,0) maps to dst pixel off; pixels that
// fall outside dst are ignored.
func Stamp(dst *image.Gray, dc *gg.Context, off image.Point, threshold, value uint8) {
	mask, ok := dc.Image().(*image.RGBA)
	if !ok {
		return
	}
	area := mask.Bounds().Add(off).Intersect(dst.Bounds())
	for y := area.Min.Y; y < area.Max.Y; y++ {
		for x := area.Min.X; x < area.Max.X; x++ {
			if mask.Pix[mask.PixOffset(x-off.X, y-off.Y)+3] >= threshold {
				dst.Pix[dst.PixOffset(x, y)] = value
			}
		}
	}
}

// newMask returns a transparent gg context painting opaque white.
func newMask(width, height int) *gg.Context {
	dc := gg.NewContext(max(width, 1), max(height, 1))
	dc.SetRGBA(1, 1, 1, 1)
	return dc
}
