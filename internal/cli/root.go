// Package cli provides the Cobra command structure for shapecells.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/shapestone/shape-cells/internal/config"
	"github.com/shapestone/shape-cells/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// options carries the global flags and the configuration they resolve to.
type options struct {
	configPath string
	debug      bool
	bufferSize int

	cfg *config.Config
}

// NewRootCommand creates the root shapecells command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	opts := &options{}

	rootCmd := &cobra.Command{
		Use:   "shapecells",
		Short: "Split delimited text into cells",
		Long: `shapecells tokenizes comma-separated text with a streaming, quote-aware
scanner and prints the resulting rows, tokenizer statistics, or typed
summaries of a single column.

Input is read from the file given as argument, or from stdin.`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return opts.load(cmd)
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().StringVar(&opts.configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().BoolVar(&opts.debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().IntVar(&opts.bufferSize, "buffer-size", 0,
		"initial buffer size in bytes (overrides config)")

	// Add subcommands.
	rootCmd.AddCommand(newRowsCommand(opts))
	rootCmd.AddCommand(newStatsCommand(opts))
	rootCmd.AddCommand(newColumnCommand(opts))
	rootCmd.AddCommand(newVersionCommand(info))

	return rootCmd
}

// load resolves the configuration from file, environment and flags.
func (o *options) load(cmd *cobra.Command) error {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("buffer-size") {
		cfg.BufferSize = o.bufferSize
		if err := cfg.Validate(); err != nil {
			return err
		}
	}
	if o.debug {
		cfg.LogLevel = "debug"
	}

	logging.SetLevel(cfg.LogLevel)
	o.cfg = cfg

	logging.Default().Debug("configuration loaded",
		logging.FieldPath, o.configPath,
		logging.FieldBufferSize, cfg.BufferSize,
		logging.FieldFormat, cfg.Format,
	)
	return nil
}
