// Package postprocess implements the configurable post-processing pipeline
// applied to a rendered image/label pair.
//
// A [Pipeline] is built from ordered [Descriptor]s. Each descriptor names a
// stage [Kind] from the registry, its parameters, and a [Scope] saying which
// canvas it transforms. Stages never mutate their input canvas; each call
// returns a new one.
//
// Execution order for every pair:
//
//  1. Stages scoped "both", in declared order, each applied to the image and
//     then to the label as two independent calls (random draws differ).
//  2. All other stages, in declared order, on the image only. The "label"
//     scope is accepted for compatibility with existing configurations and
//     behaves like "image"; the label canvas is only ever changed by "both".
//
// All random draws come from the stream passed to [Pipeline.Process].
package postprocess

import (
	"image"
	"slices"

	"github.com/matzehuels/voronoigen/pkg/errors"
	"github.com/matzehuels/voronoigen/pkg/params"
	"github.com/matzehuels/voronoigen/pkg/rng"
)

// Stage transforms one canvas into a new canvas.
type Stage interface {
	Apply(s *rng.Stream, canvas *image.Gray) (*image.Gray, error)
}

// Kind names a stage variant.
type Kind string

const (
	KindCrop           Kind = "crop"
	KindEllipticalMask Kind = "elliptical_mask"
	KindGaussianNoise  Kind = "gaussian_noise"
	KindPerlinNoise    Kind = "perlin_noise"
)

// Scope selects the canvases a stage applies to.
type Scope string

const (
	ScopeImage Scope = "image"
	ScopeLabel Scope = "label" // runs in the image pass
	ScopeBoth  Scope = "both"
)

// Scopes lists the valid scopes in declaration order.
var Scopes = []Scope{ScopeImage, ScopeLabel, ScopeBoth}

// Descriptor declares one stage of a pipeline.
type Descriptor struct {
	Type   Kind
	Params params.Params
	Scope  Scope
}

var registry = map[Kind]func(params.Params) (Stage, error){
	KindCrop:           newCrop,
	KindEllipticalMask: newEllipticalMask,
	KindGaussianNoise:  newGaussianNoise,
	KindPerlinNoise:    newPerlinNoise,
}

// Kinds returns the registered stage kinds, sorted.
func Kinds() []Kind {
	kinds := make([]Kind, 0, len(registry))
	for k := range registry {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}

// NewStage builds the stage registered under kind.
func NewStage(kind Kind, p params.Params) (Stage, error) {
	ctor, ok := registry[kind]
	if !ok {
		return nil, errors.UnknownVariant("post-processor", string(kind))
	}
	if p == nil {
		p = params.Params{}
	}
	return ctor(p)
}
