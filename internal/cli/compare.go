package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/voronoigen/pkg/io"
)

// maxListed caps the number of file names printed per category.
const maxListed = 10

// compareCommand creates the compare command.
func (c *CLI) compareCommand() *cobra.Command {
	var subfolders []string

	cmd := &cobra.Command{
		Use:   "compare [base] [test]",
		Short: "Compare two generated datasets pixel by pixel",
		Long: `Compare two generated datasets pixel by pixel.

PNG files with the same name under each subfolder are decoded and compared.
Files present in only one dataset and missing subfolders are reported but do
not fail the comparison. The command exits with status 1 when any common
file differs.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runCompare(cmd.Context(), args[0], args[1], subfolders)
		},
	}

	cmd.Flags().StringSliceVar(&subfolders, "subfolders", io.DefaultSubfolders, "subfolders to compare (comma-separated)")

	return cmd
}

// runCompare compares base and test and prints the report.
func (c *CLI) runCompare(ctx context.Context, base, test string, subfolders []string) error {
	spinner := newSpinnerWithContext(ctx, "Comparing datasets...")
	spinner.Start()
	report, err := io.CompareFolders(ctx, base, test, subfolders)
	spinner.Stop()
	if err != nil {
		return err
	}
	c.Logger.Debug("compare finished", "checked", report.Checked, "mismatches", len(report.Mismatches))

	for _, w := range report.Warnings {
		printWarning("%s", w)
	}
	printFileList("Only in base", report.OnlyInBase)
	printFileList("Only in test", report.OnlyInTest)

	if !report.Match() {
		for _, m := range report.Mismatches {
			printError("%s/%s: %s", m.Subfolder, m.Name, m.Reason)
		}
		printStats(
			fmt.Sprintf("%d identical", report.Checked),
			fmt.Sprintf("%d different", len(report.Mismatches)),
		)
		return &ExitError{Code: exitInvalid}
	}

	printSuccess("All %d common files are identical", report.Checked)
	return nil
}

// printFileList prints up to maxListed names under a heading.
func printFileList(heading string, names []string) {
	if len(names) == 0 {
		return
	}
	printInfo("%s (%d)", heading, len(names))
	for i, name := range names {
		if i == maxListed {
			printDetail("... and %d more", len(names)-maxListed)
			break
		}
		printDetail("%s", name)
	}
}
