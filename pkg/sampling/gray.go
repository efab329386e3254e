package sampling

import (
	"math"
	"slices"

	"github.com/matzehuels/voronoigen/pkg/errors"
	"github.com/matzehuels/voronoigen/pkg/params"
	"github.com/matzehuels/voronoigen/pkg/rng"
)

// GrayMethod names a gray-value distribution.
type GrayMethod string

const (
	GrayUniform  GrayMethod = "uniform"
	GrayGaussian GrayMethod = "gaussian"
)

// GraySampler draws one intensity in [0,255] per call.
type GraySampler interface {
	Sample(s *rng.Stream) uint8
}

var graySamplers = map[GrayMethod]func(params.Params) (GraySampler, error){
	GrayUniform:  func(params.Params) (GraySampler, error) { return Uniform{}, nil },
	GrayGaussian: newGaussian,
}

// GrayMethods returns the registered gray-value distributions, sorted.
func GrayMethods() []GrayMethod {
	methods := make([]GrayMethod, 0, len(graySamplers))
	for m := range graySamplers {
		methods = append(methods, m)
	}
	slices.Sort(methods)
	return methods
}

// NewGraySampler builds the gray sampler registered under method.
func NewGraySampler(method GrayMethod, p params.Params) (GraySampler, error) {
	ctor, ok := graySamplers[method]
	if !ok {
		return nil, errors.UnknownVariant("gray value distribution", string(method))
	}
	return ctor(p)
}

// Uniform draws integers uniformly from [0,255].
type Uniform struct{}

// Sample implements GraySampler.
func (Uniform) Sample(s *rng.Stream) uint8 {
	return uint8(s.IntN(256))
}

// Gaussian draws from N(Mean, Std²), rejecting rounded draws outside [0,255].
//
// The rejection loop has no cap: a mean far outside [0,255] with a small std
// will spin indefinitely.
type Gaussian struct {
	Mean float64
	Std  float64
}

func newGaussian(p params.Params) (GraySampler, error) {
	variant := string(GrayGaussian)
	mean, err := p.FloatOr(variant, "mean", 128)
	if err != nil {
		return nil, err
	}
	std, err := p.FloatOr(variant, "std", 32)
	if err != nil {
		return nil, err
	}
	if std < 0 {
		return nil, errors.Configuration("gaussian std must not be negative, got %v", std)
	}
	return Gaussian{Mean: mean, Std: std}, nil
}

// Sample implements GraySampler.
func (g Gaussian) Sample(s *rng.Stream) uint8 {
	for {
		v := math.Round(s.Normal(g.Mean, g.Std))
		if v >= 0 && v <= 255 {
			return uint8(v)
		}
	}
}
