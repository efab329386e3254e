package cli

import (
	"context"
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/matzehuels/voronoigen/pkg/errors"
	"github.com/matzehuels/voronoigen/pkg/io"
	"github.com/matzehuels/voronoigen/pkg/pipeline"
	"github.com/matzehuels/voronoigen/pkg/render"
)

// Preview file names.
const (
	previewImage = "image.png"
	previewLabel = "label.png"
	previewSeeds = "seeds.png"
)

// previewOpts holds the command-line flags for the preview command.
type previewOpts struct {
	out   string // directory the three PNGs are written to
	split string // datatype split whose stream is replayed
	index int    // diagram index within the split
}

// previewCommand creates the preview command.
func (c *CLI) previewCommand() *cobra.Command {
	var opts previewOpts

	cmd := &cobra.Command{
		Use:   "preview [config]",
		Short: "Render one diagram with its seed points",
		Long: `Render one diagram with its seed points.

The diagram is drawn exactly as generate would draw it for the given split
and index, but it is neither tiled nor written to the dataset layout. Three
files are written to the output directory:

  image.png   the post-processed gray image
  label.png   the boundary label
  seeds.png   the label with the seed points stamped on it`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPreview(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVar(&opts.out, "out", "preview", "output directory")
	cmd.Flags().StringVar(&opts.split, "split", "", "datatype split (default: first split by name)")
	cmd.Flags().IntVar(&opts.index, "index", 0, "diagram index within the split")

	return cmd
}

// runPreview regenerates one diagram and writes the preview files.
func (c *CLI) runPreview(ctx context.Context, path string, opts previewOpts) error {
	_, cfg, err := c.loadConfig(path)
	if err != nil {
		return err
	}
	if opts.split == "" {
		names := cfg.SplitNames()
		if len(names) == 0 {
			return errors.Configuration("datatype_info defines no splits")
		}
		opts.split = names[0]
	}
	if err := errors.ValidateOutputDir(opts.out); err != nil {
		return err
	}

	runner, err := pipeline.NewRunner(cfg, nil, c.Logger)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}

	spinner := newSpinnerWithContext(ctx, fmt.Sprintf("Rendering %s diagram %d...", opts.split, opts.index))
	spinner.Start()
	d, err := runner.Preview(ctx, opts.split, opts.index)
	if err != nil {
		spinner.StopWithError("Preview failed")
		return err
	}
	spinner.Stop()

	if err := os.MkdirAll(opts.out, 0o755); err != nil {
		return errors.Wrap(errors.ErrCodeInternal, err, "create %s", opts.out)
	}
	seeds := render.DrawSeeds(d.Label, d.Points, pipeline.DefaultSeedRadius, pipeline.DefaultSeedValue)
	outputs := []struct {
		name string
		img  *image.Gray
	}{
		{previewImage, d.Image},
		{previewLabel, d.Label},
		{previewSeeds, seeds},
	}

	printSuccess("Preview of %s diagram %d", opts.split, opts.index)
	for _, o := range outputs {
		target := filepath.Join(opts.out, o.name)
		if _, err := io.SavePNG(target, o.img); err != nil {
			return err
		}
		printFile(target)
	}
	printStats(
		fmt.Sprintf("%d points", len(d.Points)),
		fmt.Sprintf("%d facets", len(d.Facets)),
		fmt.Sprintf("%dx%d", d.Image.Bounds().Dx(), d.Image.Bounds().Dy()),
	)
	return nil
}
