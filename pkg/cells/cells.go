// Package cells splits delimited text streams into cells.
//
// A Parser reads from an io.Reader into a reusable buffer and feeds the new
// bytes to a quote-aware state machine. Every cell and row boundary is
// reported synchronously to a CellHandler:
//
//	NewCell(buf, offset, length)  once per cell, left to right
//	EndOfRow()                    after the last cell of each terminated row
//	End()                         exactly once, after the input is exhausted
//
// Cells are views into the parser's buffer, quotes included. They are only
// valid for the duration of the callback; copy the bytes to keep them.
// Unquote decodes a quoted cell.
//
// # Example
//
//	p := cells.NewParser(4096)
//	rows := &cells.RowCollector{}
//	if err := p.Parse(file, rows); err != nil {
//	    // handle error
//	}
//	for _, row := range rows.Rows() {
//	    fmt.Println(row)
//	}
//
// # Quoting
//
// Only ',' separates cells and only '\n' terminates rows. A quote opens a
// quoted cell only when it is the first byte of the cell; inside a quoted
// cell separators and terminators are payload and "" stands for one quote.
// A quote in the middle of an unquoted cell is ordinary payload and is not
// reported as an error.
package cells

import "github.com/shapestone/shape-cells/internal/scanner"

// DefaultBufferSize is the initial buffer capacity used when NewParser is
// given a non-positive size.
const DefaultBufferSize = 4096

// Unquote returns the payload of a raw cell. Unquoted cells are returned
// unchanged. For a quoted cell the enclosing quotes are removed and each ""
// becomes one quote. The result aliases cell when no escape is present, so it
// shares the cell's lifetime.
func Unquote(cell []byte) []byte {
	return scanner.Unquote(cell)
}

// AppendUnquoted appends the decoded payload of cell to dst.
func AppendUnquoted(dst, cell []byte) []byte {
	return scanner.AppendUnquoted(dst, cell)
}
