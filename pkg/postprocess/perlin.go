package postprocess

import (
	"image"
	"math"

	"gonum.org/v1/gonum/floats"

	"github.com/matzehuels/voronoigen/pkg/errors"
	"github.com/matzehuels/voronoigen/pkg/params"
	"github.com/matzehuels/voronoigen/pkg/rng"
)

// PerlinNoise adds coherent gradient noise. ResY and ResX are the number of
// noise periods along the canvas height and width. The field is rescaled by
// its own observed minimum and maximum to [-Range, Range] before being added.
type PerlinNoise struct {
	ResX  int
	ResY  int
	Range float64
}

func newPerlinNoise(p params.Params) (Stage, error) {
	v := string(KindPerlinNoise)
	res := []int{32, 32}
	if p.Has("res") {
		var err error
		if res, err = p.IntList(v, "res"); err != nil {
			return nil, err
		}
	}
	if len(res) != 2 || res[0] <= 0 || res[1] <= 0 {
		return nil, errors.Configuration("perlin_noise.res must be two positive integers [rows, cols], got %v", res)
	}
	noiseRange, err := p.FloatOr(v, "noise_range", 20)
	if err != nil {
		return nil, err
	}
	if noiseRange < 0 {
		return nil, errors.Configuration("perlin_noise.noise_range must not be negative, got %v", noiseRange)
	}
	return PerlinNoise{ResY: res[0], ResX: res[1], Range: noiseRange}, nil
}

// Apply implements Stage.
func (p PerlinNoise) Apply(s *rng.Stream, canvas *image.Gray) (*image.Gray, error) {
	b := canvas.Bounds()
	field := perlinField(s, b.Dx(), b.Dy(), p.ResX, p.ResY)
	rescale(field, p.Range)
	return addField(canvas, field), nil
}

// rescale maps field linearly from its observed [min, max] onto
// [-r, r]. A flat field becomes all zeros.
func rescale(field []float64, r float64) {
	if len(field) == 0 {
		return
	}
	lo, hi := floats.Min(field), floats.Max(field)
	if hi == lo {
		for i := range field {
			field[i] = 0
		}
		return
	}
	scale := 2 * r / (hi - lo)
	for i, v := range field {
		field[i] = -r + (v-lo)*scale
	}
}

// perlinField samples 2D gradient noise over a width×height grid with resY
// lattice cells vertically and resX horizontally. Lattice gradient angles are
// drawn row-major from s, (resY+1)×(resX+1) of them. Output is row-major and
// roughly within [-1, 1].
func perlinField(s *rng.Stream, width, height, resX, resY int) []float64 {
	cols := resX + 1
	gx := make([]float64, (resY+1)*cols)
	gy := make([]float64, len(gx))
	for i := range gx {
		angle := 2 * math.Pi * s.Float64()
		gx[i], gy[i] = math.Cos(angle), math.Sin(angle)
	}

	field := make([]float64, width*height)
	for i := range height {
		u := float64(i) * float64(resY) / float64(height)
		ci := int(u)
		fu := u - float64(ci)
		tu := fade(fu)
		for j := range width {
			v := float64(j) * float64(resX) / float64(width)
			cj := int(v)
			fv := v - float64(cj)
			tv := fade(fv)

			g00, g10 := ci*cols+cj, (ci+1)*cols+cj
			g01, g11 := g00+1, g10+1
			n00 := fu*gx[g00] + fv*gy[g00]
			n10 := (fu-1)*gx[g10] + fv*gy[g10]
			n01 := fu*gx[g01] + (fv-1)*gy[g01]
			n11 := (fu-1)*gx[g11] + (fv-1)*gy[g11]

			n0 := n00*(1-tu) + tu*n10
			n1 := n01*(1-tu) + tu*n11
			field[i*width+j] = math.Sqrt2 * ((1-tv)*n0 + tv*n1)
		}
	}
	return field
}

// fade is the quintic smoothstep 6t^5 - 15t^4 + 10t^3.
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}
