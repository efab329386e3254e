package cli

import (
	"github.com/spf13/cobra"

	"github.com/matzehuels/voronoigen/pkg/config"
)

// validateCommand creates the validate command.
func (c *CLI) validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [config]",
		Short: "Check a configuration file",
		Long: `Check a YAML or TOML configuration file.

Every error and warning is listed, not just the first one. The command exits
with status 1 when the configuration cannot be used for generation.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			src, err := config.Load(args[0])
			if err != nil {
				return err
			}
			if !reportValidation(src) {
				return &ExitError{Code: exitInvalid}
			}
			printSuccess("Configuration is valid")
			printFile(src.Path)
			return nil
		},
	}
}

// reportValidation prints the validation result of src and reports whether
// it is usable.
func reportValidation(src *config.Source) bool {
	result := src.Validate()
	for _, msg := range result.Errors {
		printError("%s", msg)
	}
	for _, msg := range result.Warnings {
		printWarning("%s", msg)
	}
	if !result.Valid {
		printDetail("%d error(s) in %s", len(result.Errors), src.Path)
	}
	return result.Valid
}

// loadConfig reads, validates and decodes the configuration at path.
func (c *CLI) loadConfig(path string) (*config.Source, *config.Config, error) {
	src, err := config.Load(path)
	if err != nil {
		return nil, nil, err
	}
	if !reportValidation(src) {
		return nil, nil, &ExitError{Code: exitInvalid}
	}
	cfg, err := src.Decode()
	if err != nil {
		return nil, nil, err
	}
	c.Logger.Debug("loaded config", "path", path, "format", src.Format, "width", cfg.Width, "height", cfg.Height)
	return src, cfg, nil
}
