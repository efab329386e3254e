package pipeline

import (
	"image"
	"io"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/voronoigen/pkg/config"
	"github.com/matzehuels/voronoigen/pkg/errors"
	"github.com/matzehuels/voronoigen/pkg/geometry"
	"github.com/matzehuels/voronoigen/pkg/params"
	"github.com/matzehuels/voronoigen/pkg/postprocess"
	"github.com/matzehuels/voronoigen/pkg/render"
	"github.com/matzehuels/voronoigen/pkg/rng"
	"github.com/matzehuels/voronoigen/pkg/sampling"
)

// Generator produces image/label pairs for one configuration. All variant
// lookups happen in NewGenerator, so an unknown method name fails before any
// diagram is drawn.
//
// A Generator holds no random state; the stream is passed to every call.
type Generator struct {
	Width  int
	Height int
	Points sampling.PointSampler
	Gray   sampling.GraySampler
	Label  render.LabelStyle
	Post   *postprocess.Pipeline
	Logger *log.Logger

	partitioner *geometry.Partitioner
	renderer    *render.Renderer
}

// Diagram is one generated pair together with the geometry it was drawn from.
type Diagram struct {
	Points []geometry.Point
	Facets []geometry.Facet
	Image  *image.Gray
	Label  *image.Gray
}

// NewGenerator builds a generator from a decoded configuration.
func NewGenerator(cfg *config.Config) (*Generator, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return nil, errors.Configuration("canvas size must be positive, got %dx%d", cfg.Width, cfg.Height)
	}
	points, err := sampling.NewPointSampler(sampling.PointMethod(cfg.PointGeneration.Method))
	if err != nil {
		return nil, err
	}
	gray, err := sampling.NewGraySampler(sampling.GrayMethod(cfg.ImageInfo.Method), cfg.ImageInfo.Params)
	if err != nil {
		return nil, err
	}
	label, err := render.NewLabelStyle(cfg.LabelInfo)
	if err != nil {
		return nil, err
	}
	post, err := postprocess.New(cfg.Descriptors())
	if err != nil {
		return nil, err
	}
	return &Generator{
		Width:       cfg.Width,
		Height:      cfg.Height,
		Points:      points,
		Gray:        gray,
		Label:       label,
		Post:        post,
		Logger:      log.NewWithOptions(io.Discard, log.Options{}),
		partitioner: geometry.NewPartitioner(cfg.Width, cfg.Height),
		renderer:    render.NewRenderer(cfg.Width, cfg.Height),
	}, nil
}

// Generate draws one image/label pair. The dynamic parameters carry the
// per-diagram sampler arguments (points_num, or min_distance and
// max_attempts).
func (g *Generator) Generate(s *rng.Stream, dynamic params.Params) (*image.Gray, *image.Gray, error) {
	d, err := g.GenerateDiagram(s, dynamic)
	if err != nil {
		return nil, nil, err
	}
	return d.Image, d.Label, nil
}

// GenerateDiagram is Generate but also returns the seed points and facets.
func (g *Generator) GenerateDiagram(s *rng.Stream, dynamic params.Params) (*Diagram, error) {
	points, err := g.Points.Sample(s, g.Width, g.Height, dynamic)
	if err != nil {
		return nil, err
	}
	facets, err := g.partitioner.Partition(points)
	if err != nil {
		return nil, err
	}

	img := g.renderer.RenderImage(s, facets, g.Gray)
	lbl := g.renderer.RenderLabel(facets, g.Label)
	img, lbl, err = g.Post.Process(s, img, lbl)
	if err != nil {
		return nil, err
	}

	g.logger().Debug("generated diagram",
		"points", len(points),
		"facets", len(facets),
		"size", img.Bounds().Size())

	return &Diagram{Points: points, Facets: facets, Image: img, Label: lbl}, nil
}

func (g *Generator) logger() *log.Logger {
	if g.Logger == nil {
		return log.NewWithOptions(io.Discard, log.Options{})
	}
	return g.Logger
}
