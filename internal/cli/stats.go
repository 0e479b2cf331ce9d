package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/shapestone/shape-cells/pkg/cells"
)

func newStatsCommand(opts *options) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats [file]",
		Short: "Print tokenizer statistics for a delimited file",
		Long: `Tokenize the input without keeping any cell and print the number of
bytes, cells and rows, how often the buffer grew, and its final capacity.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, closeInput, err := openInput(cmd, args)
			if err != nil {
				return err
			}
			defer closeInput() //nolint:errcheck // read-only input

			parser := cells.NewParser(opts.cfg.BufferSize)
			stats, err := parser.ParseStats(cmd.Context(), input, cells.HandlerFuncs{})
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "bytes:    %d\n", stats.BytesRead)
			fmt.Fprintf(out, "cells:    %d\n", stats.Cells)
			fmt.Fprintf(out, "rows:     %d\n", stats.Rows)
			fmt.Fprintf(out, "growths:  %d\n", stats.Growths)
			fmt.Fprintf(out, "capacity: %d\n", stats.Capacity)
			return nil
		},
	}

	return cmd
}
