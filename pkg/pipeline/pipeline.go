// Package pipeline provides the dataset generation pipeline for voronoigen.
//
// This package implements the complete sample → partition → render →
// post-process → tile pipeline that the CLI commands share. By centralizing
// this logic, generate and preview produce identical diagrams for the same
// configuration and seed.
//
// # Architecture
//
// A [Generator] produces one image/label pair per call:
//
//  1. Sample: draw seed points with the configured point sampler
//  2. Partition: compute the bounded Voronoi facets of those points
//  3. Render: fill facets on the image canvas, stroke them on the label canvas
//  4. Post-process: run the configured stages over both canvases
//
// A [Runner] drives a Generator over every datatype split, cuts each pair
// into tiles and hands the tiles to a [Sink].
//
// # Determinism
//
// Every split owns one random stream seeded from its configured seed. All
// draws of a split come from that stream in a fixed order (points, facet
// grays, post-processing stages), so the same configuration always produces
// byte-identical datasets. Splits do not share state and can be regenerated
// individually.
//
// # Usage
//
//	runner, err := pipeline.NewRunner(cfg, writer, logger)
//	if err != nil {
//	    return err
//	}
//	result, err := runner.Run(ctx, pipeline.Options{})
package pipeline

import (
	"io"
	"slices"
	"time"

	"github.com/charmbracelet/log"

	"github.com/matzehuels/voronoigen/pkg/config"
	"github.com/matzehuels/voronoigen/pkg/errors"
)

// =============================================================================
// Default Values
// =============================================================================

const (
	// DefaultSeedRadius is the dot radius used when drawing seed points for
	// previews.
	DefaultSeedRadius = 3.0

	// DefaultSeedValue is the intensity of preview seed dots.
	DefaultSeedValue uint8 = 255
)

// =============================================================================
// Options - Run Configuration
// =============================================================================

// Options restricts and instruments a batch run.
type Options struct {
	// Splits limits the run to the named datatype splits. Empty means all
	// configured splits.
	Splits []string

	// Logger overrides the runner's logger for this run.
	Logger *log.Logger

	// validated tracks whether ValidateAndSetDefaults has been called.
	validated bool
}

// Result contains the outputs of a batch run.
type Result struct {
	// Splits holds per-split statistics in processing order.
	Splits []SplitStats

	// Pairs is the total number of image/label pairs handed to the sink.
	Pairs int

	// Duration is the wall time of the whole run.
	Duration time.Duration
}

// SplitStats describes the generation of one datatype split.
type SplitStats struct {
	Name     string
	Seed     int64
	Diagrams int
	Pairs    int
	Points   int
	Duration time.Duration
}

// =============================================================================
// Options Methods
// =============================================================================

// ValidateAndSetDefaults checks the requested splits against the
// configuration and fills in defaults. It is idempotent.
func (o *Options) ValidateAndSetDefaults(cfg *config.Config) error {
	if o.validated {
		return nil
	}
	names := cfg.SplitNames()
	if len(names) == 0 {
		return errors.Configuration("datatype_info defines no splits")
	}
	if len(o.Splits) == 0 {
		o.Splits = names
	}
	for _, name := range o.Splits {
		if !slices.Contains(names, name) {
			return errors.Configuration("unknown split %q (configured: %v)", name, names)
		}
	}
	o.Splits = slices.Clone(o.Splits)
	slices.Sort(o.Splits)
	o.Splits = slices.Compact(o.Splits)

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	o.validated = true
	return nil
}
