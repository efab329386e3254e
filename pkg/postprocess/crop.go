package postprocess

import (
	"image"

	"github.com/matzehuels/voronoigen/pkg/errors"
	"github.com/matzehuels/voronoigen/pkg/params"
	"github.com/matzehuels/voronoigen/pkg/render"
	"github.com/matzehuels/voronoigen/pkg/rng"
)

// Crop extracts the centred Width×Height region of a canvas.
type Crop struct {
	Width  int
	Height int
}

func newCrop(p params.Params) (Stage, error) {
	v := string(KindCrop)
	w, err := p.IntOr(v, "crop_width", 2560)
	if err != nil {
		return nil, err
	}
	h, err := p.IntOr(v, "crop_height", 1536)
	if err != nil {
		return nil, err
	}
	if w <= 0 || h <= 0 {
		return nil, errors.Configuration("crop size must be positive, got %dx%d", w, h)
	}
	return Crop{Width: w, Height: h}, nil
}

// Apply implements Stage. It fails with a DIMENSION error when the crop is
// larger than the canvas in either direction.
func (c Crop) Apply(_ *rng.Stream, canvas *image.Gray) (*image.Gray, error) {
	b := canvas.Bounds()
	if c.Width > b.Dx() || c.Height > b.Dy() {
		return nil, errors.Dimension("crop size %dx%d exceeds canvas %dx%d", c.Width, c.Height, b.Dx(), b.Dy())
	}
	top := b.Min.Y + (b.Dy()-c.Height)/2
	left := b.Min.X + (b.Dx()-c.Width)/2
	region := image.Rect(left, top, left+c.Width, top+c.Height)
	return render.Clone(canvas.SubImage(region).(*image.Gray)), nil
}
