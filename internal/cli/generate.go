package cli

import (
	"context"
	"fmt"
	"os"
	"sync"
	"sync/atomic"
	"time"

	"github.com/spf13/cobra"

	"github.com/matzehuels/voronoigen/pkg/buildinfo"
	"github.com/matzehuels/voronoigen/pkg/config"
	"github.com/matzehuels/voronoigen/pkg/errors"
	"github.com/matzehuels/voronoigen/pkg/io"
	"github.com/matzehuels/voronoigen/pkg/observability"
	"github.com/matzehuels/voronoigen/pkg/pipeline"
)

// generateOpts holds the command-line flags for the generate command.
type generateOpts struct {
	force     bool     // overwrite an existing output directory without asking
	outputDir string   // overrides voronoi.output_dir
	splits    []string // restrict the run to these datatype splits
}

// generateCommand creates the generate command.
func (c *CLI) generateCommand() *cobra.Command {
	var opts generateOpts

	cmd := &cobra.Command{
		Use:   "generate [config]",
		Short: "Generate an image/label dataset from a configuration",
		Long: `Generate an image/label dataset from a configuration.

The configuration is validated first; any error stops the command before a
file is written. Pairs are written as 8-bit gray PNGs to
<output_dir>/<split>/images/<n>.png and <output_dir>/<split>/labels/<n>.png,
followed by a manifest.json describing the run.

If the output directory already exists you are asked before writing into it.
Without a terminal, --force is required.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runGenerate(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().BoolVarP(&opts.force, "force", "f", false, "write into an existing output directory without asking")
	cmd.Flags().StringVarP(&opts.outputDir, "output-dir", "o", "", "output directory (default: voronoi.output_dir)")
	cmd.Flags().StringSliceVarP(&opts.splits, "split", "s", nil, "only generate these splits (comma-separated)")

	return cmd
}

// runGenerate validates the configuration, runs every split and writes the manifest.
func (c *CLI) runGenerate(ctx context.Context, path string, opts generateOpts) error {
	_, cfg, err := c.loadConfig(path)
	if err != nil {
		return err
	}
	if opts.outputDir != "" {
		cfg.OutputDir = opts.outputDir
	}

	proceed, err := confirmOverwrite(cfg.OutputDir, opts.force)
	if err != nil {
		return err
	}
	if !proceed {
		printInfo("Aborted, %s left unchanged", cfg.OutputDir)
		return nil
	}

	runOpts := pipeline.Options{Splits: opts.splits, Logger: c.Logger}
	if err := runOpts.ValidateAndSetDefaults(cfg); err != nil {
		return err
	}

	writer := io.NewDatasetWriter(cfg.OutputDir)
	if err := writer.Prepare(runOpts.Splits); err != nil {
		return err
	}
	runner, err := pipeline.NewRunner(cfg, writer, c.Logger)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}

	spinner := newSpinnerWithContext(ctx, "Generating dataset...")
	written := &byteCounter{}
	observability.SetGenerationHooks(newSpinnerHooks(spinner))
	observability.SetOutputHooks(written)
	defer observability.Reset()

	prog := newProgress(c.Logger)
	spinner.Start()
	result, err := runner.Run(ctx, runOpts)
	if err != nil {
		spinner.StopWithError("Generation failed")
		return err
	}
	spinner.Stop()
	prog.done(fmt.Sprintf("Generated %d pairs", result.Pairs))

	width, height := pairSize(cfg)
	manifest := io.NewManifest(result, buildinfo.Version, path, width, height)
	if err := io.WriteManifest(cfg.OutputDir, manifest); err != nil {
		return err
	}

	printSuccess("Dataset complete")
	printKeyValue("Config", path)
	printKeyValue("Output", cfg.OutputDir)
	printKeyValue("Run ID", manifest.RunID)
	fmt.Println(splitTable(result.Splits))
	printStats(
		fmt.Sprintf("%d pairs", result.Pairs),
		fmt.Sprintf("%dx%d", width, height),
		formatBytes(written.Load()),
		result.Duration.Round(time.Millisecond).String(),
	)
	printNewline()
	printNextStep("Inspect a diagram", appName+" preview "+path+" --out preview")

	return nil
}

// pairSize returns the size of the stored pairs: the tile size when the
// canvas is split, the post-processed canvas size otherwise.
func pairSize(cfg *config.Config) (width, height int) {
	if cfg.Split != nil {
		return cfg.Split.Width, cfg.Split.Height
	}
	return cfg.FinalSize()
}

// confirmOverwrite decides whether generation may write into dir.
func confirmOverwrite(dir string, force bool) (bool, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) || force {
		return true, nil
	}
	if !isInteractive() {
		return false, errors.Configuration("output directory %s already exists (use --force to overwrite)", dir)
	}
	return confirm(fmt.Sprintf("Output directory %s already exists. Overwrite?", dir), os.Stdin, os.Stdout)
}

// =============================================================================
// Progress Hooks
// =============================================================================

// spinnerHooks reports per-diagram progress on a spinner, e.g. "train 12/100".
type spinnerHooks struct {
	observability.NoopGenerationHooks

	spinner *Spinner
	mu      sync.Mutex
	totals  map[string]int
}

func newSpinnerHooks(s *Spinner) *spinnerHooks {
	return &spinnerHooks{spinner: s, totals: map[string]int{}}
}

func (h *spinnerHooks) OnSplitStart(_ context.Context, split string, diagrams int, _ int64) {
	h.mu.Lock()
	h.totals[split] = diagrams
	h.mu.Unlock()
	h.spinner.SetMessage(progressMessage(split, 0, diagrams))
}

func (h *spinnerHooks) OnDiagramComplete(_ context.Context, split string, index, _ int, _ time.Duration, err error) {
	if err != nil {
		return
	}
	h.mu.Lock()
	total := h.totals[split]
	h.mu.Unlock()
	h.spinner.SetMessage(progressMessage(split, index+1, total))
}

func progressMessage(split string, done, total int) string {
	return fmt.Sprintf("%s %d/%d", split, done, total)
}

// byteCounter sums the PNG bytes written during a run.
type byteCounter struct {
	observability.NoopOutputHooks
	atomic.Int64
}

func (b *byteCounter) OnPairWritten(_ context.Context, _ string, _ int, n int64, _ time.Duration, err error) {
	if err == nil {
		b.Add(n)
	}
}

// formatBytes renders n with a binary unit, e.g. "1.5 MiB".
func formatBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
