package pipeline

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/voronoigen/pkg/config"
	"github.com/matzehuels/voronoigen/pkg/errors"
	"github.com/matzehuels/voronoigen/pkg/observability"
	"github.com/matzehuels/voronoigen/pkg/rng"
	"github.com/matzehuels/voronoigen/pkg/tile"
)

// Sink receives generated tile pairs. Indices start at 0 for every split and
// increase by one per pair.
type Sink interface {
	Write(ctx context.Context, split string, index int, img, lbl *image.Gray) error
}

// SinkFunc adapts a function to the Sink interface.
type SinkFunc func(ctx context.Context, split string, index int, img, lbl *image.Gray) error

// Write implements Sink.
func (f SinkFunc) Write(ctx context.Context, split string, index int, img, lbl *image.Gray) error {
	return f(ctx, split, index, img, lbl)
}

// Runner drives a Generator over the datatype splits of a configuration.
//
// Diagrams within a split run strictly in sequence because they share the
// split's random stream. The context is checked between diagrams; a diagram
// that has started always completes or fails on its own.
type Runner struct {
	Config    *config.Config
	Generator *Generator
	Tiler     *tile.Tiler
	Sink      Sink
	Logger    *log.Logger
}

// NewRunner creates a runner for cfg that writes pairs to sink.
// If logger is nil, log.Default() is used.
func NewRunner(cfg *config.Config, sink Sink, logger *log.Logger) (*Runner, error) {
	gen, err := NewGenerator(cfg)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = log.Default()
	}
	gen.Logger = logger

	var tiler *tile.Tiler
	if cfg.Split != nil {
		tiler = tile.New(cfg.Split.Width, cfg.Split.Height)
	}
	return &Runner{
		Config:    cfg,
		Generator: gen,
		Tiler:     tiler,
		Sink:      sink,
		Logger:    logger,
	}, nil
}

// Run generates every requested split in name order. It stops at the first
// error; pairs already written stay written.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
	if err := opts.ValidateAndSetDefaults(r.Config); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}

	start := time.Now()
	result := &Result{}
	for _, name := range opts.Splits {
		stats, err := r.runSplit(ctx, name, opts.Logger)
		result.Pairs += stats.Pairs
		if err != nil {
			return result, fmt.Errorf("split %s: %w", name, err)
		}
		result.Splits = append(result.Splits, stats)
	}
	result.Duration = time.Since(start)
	return result, nil
}

// RunSplit generates a single split.
func (r *Runner) RunSplit(ctx context.Context, name string) (SplitStats, error) {
	opts := Options{Splits: []string{name}, Logger: r.Logger}
	if err := opts.ValidateAndSetDefaults(r.Config); err != nil {
		return SplitStats{}, err
	}
	return r.runSplit(ctx, name, opts.Logger)
}

func (r *Runner) runSplit(ctx context.Context, name string, logger *log.Logger) (stats SplitStats, err error) {
	dt := r.Config.DatatypeInfo[name]
	stats = SplitStats{Name: name, Seed: dt.Seed}
	hooks := observability.Generation()

	start := time.Now()
	hooks.OnSplitStart(ctx, name, dt.DiagramNum, dt.Seed)
	defer func() {
		stats.Duration = time.Since(start)
		hooks.OnSplitComplete(ctx, name, stats.Pairs, stats.Duration, err)
	}()

	logger.Info("generating split", "split", name, "diagrams", dt.DiagramNum, "seed", dt.Seed)

	stream := rng.New(dt.Seed)
	for i := range dt.DiagramNum {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		diagramStart := time.Now()
		pairs, points, err := r.diagram(ctx, stream, name, i, stats.Pairs)
		stats.Pairs += pairs
		hooks.OnDiagramComplete(ctx, name, i, pairs, time.Since(diagramStart), err)
		if err != nil {
			return stats, fmt.Errorf("diagram %d: %w", i, err)
		}
		stats.Diagrams++
		stats.Points += points
	}

	logger.Info("split complete",
		"split", name,
		"pairs", stats.Pairs,
		"duration", time.Since(start).Round(time.Millisecond))
	return stats, nil
}

// diagram generates diagram i, tiles it and writes the tiles starting at
// pair index next. It returns the number of pairs written and seed points
// drawn.
func (r *Runner) diagram(ctx context.Context, s *rng.Stream, split string, i, next int) (pairs, points int, err error) {
	dynamic, err := r.Config.PointGeneration.DynamicParams(i)
	if err != nil {
		return 0, 0, err
	}
	d, err := r.Generator.GenerateDiagram(s, dynamic)
	if err != nil {
		return 0, 0, err
	}
	imgs, lbls, err := r.Tiler.Split(d.Image, d.Label)
	if err != nil {
		return 0, len(d.Points), err
	}
	if r.Sink == nil {
		return len(imgs), len(d.Points), nil
	}
	for k := range imgs {
		if err := r.Sink.Write(ctx, split, next+k, imgs[k], lbls[k]); err != nil {
			return k, len(d.Points), err
		}
	}
	return len(imgs), len(d.Points), nil
}

// Preview regenerates diagram index of a split exactly as Run draws it,
// replaying the split's stream through the diagrams before it. The diagram
// is not tiled and nothing is written to the sink.
func (r *Runner) Preview(ctx context.Context, split string, index int) (*Diagram, error) {
	dt, ok := r.Config.DatatypeInfo[split]
	if !ok {
		return nil, errors.Configuration("unknown split %q (configured: %v)", split, r.Config.SplitNames())
	}
	if index < 0 || index >= dt.DiagramNum {
		return nil, errors.Configuration("diagram index %d out of range for split %s (diagram_num %d)", index, split, dt.DiagramNum)
	}

	stream := rng.New(dt.Seed)
	for i := 0; ; i++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		dynamic, err := r.Config.PointGeneration.DynamicParams(i)
		if err != nil {
			return nil, err
		}
		d, err := r.Generator.GenerateDiagram(stream, dynamic)
		if err != nil {
			return nil, fmt.Errorf("diagram %d: %w", i, err)
		}
		if i == index {
			return d, nil
		}
	}
}
