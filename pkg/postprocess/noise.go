package postprocess

import (
	"image"
	"math"

	"github.com/matzehuels/voronoigen/pkg/errors"
	"github.com/matzehuels/voronoigen/pkg/params"
	"github.com/matzehuels/voronoigen/pkg/render"
	"github.com/matzehuels/voronoigen/pkg/rng"
)

// GaussianNoise adds independent N(Mean, Std²) noise to every pixel.
type GaussianNoise struct {
	Mean float64
	Std  float64
}

func newGaussianNoise(p params.Params) (Stage, error) {
	v := string(KindGaussianNoise)
	mean, err := p.FloatOr(v, "mean", 0)
	if err != nil {
		return nil, err
	}
	std, err := p.FloatOr(v, "std", 20)
	if err != nil {
		return nil, err
	}
	if std < 0 {
		return nil, errors.Configuration("gaussian_noise std must not be negative, got %v", std)
	}
	return GaussianNoise{Mean: mean, Std: std}, nil
}

// Apply implements Stage. Pixels are visited row-major, one draw each.
func (g GaussianNoise) Apply(s *rng.Stream, canvas *image.Gray) (*image.Gray, error) {
	out := render.Clone(canvas)
	for i, v := range out.Pix {
		out.Pix[i] = clampRound(float64(v) + s.Normal(g.Mean, g.Std))
	}
	return out, nil
}

// addField adds a per-pixel offset field (row-major, canvas-sized) to a copy
// of canvas.
func addField(canvas *image.Gray, field []float64) *image.Gray {
	out := render.Clone(canvas)
	w := out.Bounds().Dx()
	for y := range out.Bounds().Dy() {
		row := out.Pix[y*out.Stride : y*out.Stride+w]
		for x, v := range row {
			row[x] = clampRound(float64(v) + field[y*w+x])
		}
	}
	return out
}

// clampRound clips v to [0,255] and rounds it to the nearest intensity.
func clampRound(v float64) uint8 {
	return uint8(math.Round(math.Max(0, math.Min(255, v))))
}
