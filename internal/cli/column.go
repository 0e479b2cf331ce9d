package cli

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/shapestone/shape-cells/internal/logging"
	"github.com/shapestone/shape-cells/pkg/cellreader"
	"github.com/shapestone/shape-cells/pkg/cells"
)

// columnSummary accumulates typed values of one column.
type columnSummary struct {
	Values  int
	Empty   int
	Invalid int
	Sum     float64
	Min     float64
	Max     float64
}

func (s *columnSummary) add(v float64) {
	if s.Values == 0 || v < s.Min {
		s.Min = v
	}
	if s.Values == 0 || v > s.Max {
		s.Max = v
	}
	s.Values++
	s.Sum += v
}

// Mean returns the arithmetic mean, or NaN without values.
func (s *columnSummary) Mean() float64 {
	if s.Values == 0 {
		return math.NaN()
	}
	return s.Sum / float64(s.Values)
}

func newColumnCommand(opts *options) *cobra.Command {
	var skipHeader bool

	cmd := &cobra.Command{
		Use:   "column <index> [file]",
		Short: "Summarize one numeric column",
		Long: `Read the zero-based column <index> of every row as a number and print
the count, sum, minimum, maximum and mean. Empty cells and configured null
values are counted separately; cells that are not numbers are reported and
skipped without stopping the scan.`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			index, err := strconv.Atoi(args[0])
			if err != nil || index < 0 {
				return fmt.Errorf("invalid column index %q", args[0])
			}

			input, closeInput, err := openInput(cmd, args[1:])
			if err != nil {
				return err
			}
			defer closeInput() //nolint:errcheck // read-only input

			pc := cellreader.NewParsingContext()
			defer pc.Release()
			pc.TrimSpace = opts.cfg.TrimSpace
			pc.NullValues = opts.cfg.NullValues

			summary, err := summarizeColumn(cmd, input, index, skipHeader, opts.cfg.BufferSize, pc)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "values:  %d\n", summary.Values)
			fmt.Fprintf(out, "empty:   %d\n", summary.Empty)
			fmt.Fprintf(out, "invalid: %d\n", summary.Invalid)
			if summary.Values > 0 {
				fmt.Fprintf(out, "sum:     %s\n", formatFloat(summary.Sum))
				fmt.Fprintf(out, "min:     %s\n", formatFloat(summary.Min))
				fmt.Fprintf(out, "max:     %s\n", formatFloat(summary.Max))
				fmt.Fprintf(out, "mean:    %s\n", formatFloat(summary.Mean()))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&skipHeader, "header", false, "skip the first row")

	return cmd
}

func summarizeColumn(
	cmd *cobra.Command,
	input io.Reader,
	index int,
	skipHeader bool,
	bufferSize int,
	pc *cellreader.ParsingContext,
) (*columnSummary, error) {
	logger := logging.FromContext(cmd.Context())
	summary := &columnSummary{}

	var (
		reader cellreader.Float64Reader
		row    int
		col    int
	)

	handler := cells.HandlerFuncs{
		Cell: func(buf []byte, offset, length int) error {
			defer func() { col++ }()
			if col != index || (skipHeader && row == 0) {
				return nil
			}

			value, err := reader.Read(buf, offset, length, pc)
			var formatErr *cellreader.FormatError
			switch {
			case errors.As(err, &formatErr):
				summary.Invalid++
				logger.Warn("skipping cell",
					logging.FieldRow, row+1,
					logging.FieldColumn, index,
					logging.FieldError, formatErr,
				)
			case err != nil:
				return err
			case value == nil:
				summary.Empty++
			default:
				summary.add(*value)
			}
			return nil
		},
		Row: func() error {
			row++
			col = 0
			return nil
		},
	}

	parser := cells.NewParser(bufferSize)
	if err := parser.ParseContext(cmd.Context(), input, handler); err != nil {
		return nil, err
	}

	logger.Debug("column summarized",
		logging.FieldColumn, index,
		logging.FieldValues, summary.Values,
		logging.FieldEmpty, summary.Empty,
		logging.FieldInvalid, summary.Invalid,
	)
	return summary, nil
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
