package cli

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/shapestone/shape-cells/internal/config"
	"github.com/shapestone/shape-cells/pkg/cells"
)

func newRowsCommand(opts *options) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "rows [file]",
		Short: "Print the rows of a delimited file",
		Long: `Print every row of the input, one per line.

Formats:
  json  a JSON array of decoded cells per row
  tsv   decoded cells joined by tabs, with tabs and newlines escaped
  ast   rows rebuilt from the Shape AST, prefixed by their index`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("format") {
				opts.cfg.Format = strings.ToLower(format)
				if err := opts.cfg.Validate(); err != nil {
					return err
				}
			}
			return runRows(cmd, args, opts.cfg)
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", config.FormatJSON, "output format: json, tsv, ast")

	return cmd
}

func runRows(cmd *cobra.Command, args []string, cfg *config.Config) error {
	input, closeInput, err := openInput(cmd, args)
	if err != nil {
		return err
	}
	defer closeInput() //nolint:errcheck // read-only input

	out := bufio.NewWriter(cmd.OutOrStdout())
	defer out.Flush() //nolint:errcheck // flushed explicitly below

	parser := cells.NewParser(cfg.BufferSize)

	switch cfg.Format {
	case config.FormatAST:
		builder := cells.NewASTBuilder()
		if err := parser.ParseContext(cmd.Context(), input, builder); err != nil {
			return err
		}
		rows, err := cells.NodeToRows(builder.Node())
		if err != nil {
			return err
		}
		for i, row := range rows {
			line, err := json.Marshal(row)
			if err != nil {
				return fmt.Errorf("encode row %d: %w", i, err)
			}
			fmt.Fprintf(out, "record %d: %s\n", i, line)
		}
	default:
		writer := &rowWriter{out: out, format: cfg.Format}
		if err := parser.ParseContext(cmd.Context(), input, writer); err != nil {
			return err
		}
	}

	return out.Flush()
}

// rowWriter streams rows to out as they are completed, so memory use does not
// depend on the number of rows.
type rowWriter struct {
	out    io.Writer
	format string
	row    []string
	open   bool
}

func (w *rowWriter) NewCell(buf []byte, offset, length int) error {
	w.row = append(w.row, string(cells.Unquote(buf[offset:offset+length])))
	w.open = true
	return nil
}

func (w *rowWriter) EndOfRow() error {
	defer func() {
		w.row = w.row[:0]
		w.open = false
	}()

	if w.format == config.FormatTSV {
		escaped := make([]string, len(w.row))
		for i, cell := range w.row {
			escaped[i] = tsvEscaper.Replace(cell)
		}
		_, err := fmt.Fprintln(w.out, strings.Join(escaped, "\t"))
		return err
	}

	line, err := json.Marshal(w.row)
	if err != nil {
		return fmt.Errorf("encode row: %w", err)
	}
	_, err = fmt.Fprintf(w.out, "%s\n", line)
	return err
}

func (w *rowWriter) End() error {
	if w.open {
		return w.EndOfRow()
	}
	return nil
}

//nolint:gochecknoglobals // Read-only replacer.
var tsvEscaper = strings.NewReplacer("\\", "\\\\", "\t", "\\t", "\n", "\\n", "\r", "\\r")
