package postprocess

import (
	"image"

	"github.com/fogleman/gg"

	"github.com/matzehuels/voronoigen/pkg/errors"
	"github.com/matzehuels/voronoigen/pkg/params"
	"github.com/matzehuels/voronoigen/pkg/render"
	"github.com/matzehuels/voronoigen/pkg/rng"
)

// maskThreshold paints pixels at least half covered by an ellipse.
const maskThreshold uint8 = 0x80

// EllipticalMask paints a random number of solid ellipses, simulating
// local occlusion defects. The count is drawn from [MinNum, MaxNum] and each
// semi-axis from [MinSize, MaxSize], all inclusive.
type EllipticalMask struct {
	MinNum, MaxNum   int
	MinSize, MaxSize int
	Color            uint8
}

func newEllipticalMask(p params.Params) (Stage, error) {
	v := string(KindEllipticalMask)
	m := EllipticalMask{}
	var err error
	if m.MinNum, err = p.IntOr(v, "min_num", 0); err != nil {
		return nil, err
	}
	if m.MaxNum, err = p.IntOr(v, "max_num", 10); err != nil {
		return nil, err
	}
	if m.MinSize, err = p.IntOr(v, "min_size", 10); err != nil {
		return nil, err
	}
	if m.MaxSize, err = p.IntOr(v, "max_size", 40); err != nil {
		return nil, err
	}
	if m.Color, err = p.ColorOr(v, "color", 0); err != nil {
		return nil, err
	}
	if m.MinNum < 0 || m.MinNum > m.MaxNum {
		return nil, errors.Configuration("elliptical_mask needs 0 <= min_num <= max_num, got %d..%d", m.MinNum, m.MaxNum)
	}
	if m.MinSize < 0 || m.MinSize > m.MaxSize {
		return nil, errors.Configuration("elliptical_mask needs 0 <= min_size <= max_size, got %d..%d", m.MinSize, m.MaxSize)
	}
	return m, nil
}

// Apply implements Stage.
func (m EllipticalMask) Apply(s *rng.Stream, canvas *image.Gray) (*image.Gray, error) {
	out := render.Clone(canvas)
	n := s.IntRange(m.MinNum, m.MaxNum)
	if n == 0 {
		return out, nil
	}

	w, h := out.Bounds().Dx(), out.Bounds().Dy()
	dc := gg.NewContext(w, h)
	dc.SetRGBA(1, 1, 1, 1)
	dc.Translate(0.5, 0.5)
	for range n {
		cx, cy := s.IntN(w), s.IntN(h)
		rx := s.IntRange(m.MinSize, m.MaxSize)
		ry := s.IntRange(m.MinSize, m.MaxSize)
		dc.NewSubPath()
		dc.DrawEllipse(float64(cx), float64(cy), float64(rx), float64(ry))
	}
	dc.Fill()
	render.Stamp(out, dc, image.Point{}, maskThreshold, m.Color)
	return out, nil
}
