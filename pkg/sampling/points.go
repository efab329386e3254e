// Package sampling provides the seed-point samplers and the per-region gray
// value samplers. Variants are selected by name from registries, so adding
// one means registering a new constructor rather than touching call sites.
package sampling

import (
	"slices"

	"github.com/matzehuels/voronoigen/pkg/errors"
	"github.com/matzehuels/voronoigen/pkg/geometry"
	"github.com/matzehuels/voronoigen/pkg/params"
	"github.com/matzehuels/voronoigen/pkg/rng"
)

// PointMethod names a point-generation variant.
type PointMethod string

const (
	PointRandom      PointMethod = "random"
	PointPoissonDisk PointMethod = "poisson_disk"
)

// DefaultMaxAttempts is the Poisson-disk failure budget used when the
// configuration does not set one.
const DefaultMaxAttempts = 100

// PointSampler draws a seed-point set for a width×height canvas. The dynamic
// parameters carry the per-diagram arguments of the variant.
type PointSampler interface {
	Sample(s *rng.Stream, width, height int, dynamic params.Params) ([]geometry.Point, error)
}

var pointSamplers = map[PointMethod]func() PointSampler{
	PointRandom:      func() PointSampler { return UniformRandom{} },
	PointPoissonDisk: func() PointSampler { return PoissonDisk{} },
}

// PointMethods returns the registered point-generation methods, sorted.
func PointMethods() []PointMethod {
	methods := make([]PointMethod, 0, len(pointSamplers))
	for m := range pointSamplers {
		methods = append(methods, m)
	}
	slices.Sort(methods)
	return methods
}

// NewPointSampler returns the sampler registered under method.
func NewPointSampler(method PointMethod) (PointSampler, error) {
	ctor, ok := pointSamplers[method]
	if !ok {
		return nil, errors.UnknownVariant("point generation method", string(method))
	}
	return ctor(), nil
}

// UniformRandom draws points_num independent points uniformly over the canvas.
type UniformRandom struct{}

// Sample implements PointSampler.
func (UniformRandom) Sample(s *rng.Stream, width, height int, dynamic params.Params) ([]geometry.Point, error) {
	n, err := dynamic.Int(string(PointRandom), "points_num")
	if err != nil {
		return nil, err
	}
	if n < 0 {
		return nil, errors.Configuration("points_num must not be negative, got %d", n)
	}
	points := make([]geometry.Point, n)
	for i := range points {
		points[i] = randomPoint(s, width, height)
	}
	return points, nil
}

// PoissonDisk performs dart-throwing blue-noise sampling. Candidates closer
// than min_distance to an accepted point are rejected; sampling stops after
// max_attempts consecutive rejections, so the result size varies.
type PoissonDisk struct{}

// Sample implements PointSampler.
func (PoissonDisk) Sample(s *rng.Stream, width, height int, dynamic params.Params) ([]geometry.Point, error) {
	variant := string(PointPoissonDisk)
	minDistance, err := dynamic.Float(variant, "min_distance")
	if err != nil {
		return nil, err
	}
	maxAttempts, err := dynamic.Int(variant, "max_attempts")
	if err != nil {
		return nil, err
	}

	minDistSq := minDistance * minDistance
	var points []geometry.Point
	for attempts := 0; attempts < maxAttempts; {
		candidate := randomPoint(s, width, height)
		if len(points) == 0 || farFromAll(candidate, points, minDistSq) {
			points = append(points, candidate)
			attempts = 0
			continue
		}
		attempts++
	}
	return points, nil
}

func farFromAll(p geometry.Point, points []geometry.Point, minDistSq float64) bool {
	for _, q := range points {
		if float64(geometry.DistSq(p, q)) < minDistSq {
			return false
		}
	}
	return true
}

func randomPoint(s *rng.Stream, width, height int) geometry.Point {
	x := s.IntN(width)
	y := s.IntN(height)
	return geometry.Point{X: x, Y: y}
}
