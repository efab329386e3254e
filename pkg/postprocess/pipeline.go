package postprocess

import (
	"fmt"
	"image"

	"github.com/matzehuels/voronoigen/pkg/errors"
	"github.com/matzehuels/voronoigen/pkg/rng"
)

type namedStage struct {
	kind  Kind
	index int
	stage Stage
}

// Pipeline applies scoped stages to an image/label pair.
type Pipeline struct {
	both  []namedStage
	image []namedStage
}

// New builds a pipeline from descriptors. Unknown kinds fail with
// UNKNOWN_VARIANT and unknown scopes with CONFIGURATION. Every scope other
// than "both" joins the image pass, "label" included.
func New(descs []Descriptor) (*Pipeline, error) {
	p := &Pipeline{}
	for i, d := range descs {
		stage, err := NewStage(d.Type, d.Params)
		if err != nil {
			return nil, fmt.Errorf("post_processors[%d]: %w", i, err)
		}
		ns := namedStage{kind: d.Type, index: i, stage: stage}
		switch d.Scope {
		case ScopeBoth:
			p.both = append(p.both, ns)
		case ScopeImage, ScopeLabel:
			p.image = append(p.image, ns)
		default:
			return nil, errors.Configuration("post_processors[%d].apply_to must be one of %v, got %q", i, Scopes, d.Scope)
		}
	}
	return p, nil
}

// Len returns the number of stages.
func (p *Pipeline) Len() int {
	return len(p.both) + len(p.image)
}

// Process runs every stage and returns the transformed pair. The inputs are
// left untouched. It fails with DIMENSION if the outputs end up with
// different sizes.
func (p *Pipeline) Process(s *rng.Stream, img, lbl *image.Gray) (*image.Gray, *image.Gray, error) {
	var err error
	for _, ns := range p.both {
		if img, err = ns.apply(s, img); err != nil {
			return nil, nil, err
		}
		if lbl, err = ns.apply(s, lbl); err != nil {
			return nil, nil, err
		}
	}
	for _, ns := range p.image {
		if img, err = ns.apply(s, img); err != nil {
			return nil, nil, err
		}
	}

	if ib, lb := img.Bounds().Size(), lbl.Bounds().Size(); ib != lb {
		return nil, nil, errors.Dimension("image %dx%d and label %dx%d differ after post-processing", ib.X, ib.Y, lb.X, lb.Y)
	}
	return img, lbl, nil
}

func (ns namedStage) apply(s *rng.Stream, canvas *image.Gray) (*image.Gray, error) {
	out, err := ns.stage.Apply(s, canvas)
	if err != nil {
		return nil, fmt.Errorf("%s (post_processors[%d]): %w", ns.kind, ns.index, err)
	}
	return out, nil
}
