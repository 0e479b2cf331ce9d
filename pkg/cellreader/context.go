package cellreader

import (
	"bytes"

	"github.com/shapestone/shape-cells/internal/scanner"
)

// DefaultNullValues lists cell texts commonly used for absent values. They
// only take effect when assigned to ParsingContext.NullValues.
var DefaultNullValues = []string{"NULL", "null", "nil", "N/A", "n/a", "NA", "na", "-"}

// ParsingContext is caller-owned state shared by typed readers during one
// parse. It is not safe for concurrent use and is not reset between cells.
//
// A nil *ParsingContext is valid and behaves like the zero value without
// scratch reuse.
type ParsingContext struct {
	// TrimSpace trims ASCII white space around the payload before conversion.
	TrimSpace bool
	// Raw disables quote decoding; readers then see the cell bytes as scanned.
	Raw bool
	// NullValues are additional texts that Read maps to the null value.
	// An empty cell is always null.
	NullValues []string

	scratch []byte
}

// NewParsingContext returns a context with pooled scratch storage. Call
// Release when the parse is done.
func NewParsingContext() *ParsingContext {
	return &ParsingContext{scratch: getScratch()}
}

// Release returns the scratch storage to the pool. The context stays usable.
func (pc *ParsingContext) Release() {
	if pc == nil {
		return
	}
	putScratch(pc.scratch)
	pc.scratch = nil
}

// Text returns the payload of buf[offset:offset+length]. Quoted cells are
// decoded into the context's scratch storage, so the result is only valid
// until the next call on the same context.
func (pc *ParsingContext) Text(buf []byte, offset, length int) []byte {
	cell := buf[offset : offset+length]
	if pc == nil {
		return scanner.Unquote(cell)
	}
	if !pc.Raw && len(cell) > 0 && cell[0] == scanner.Quote {
		pc.scratch = scanner.AppendUnquoted(pc.scratch[:0], cell)
		cell = pc.scratch
	}
	if pc.TrimSpace {
		cell = bytes.TrimSpace(cell)
	}
	return cell
}

// isNull reports whether text stands for an absent value.
func (pc *ParsingContext) isNull(text []byte) bool {
	if len(text) == 0 {
		return true
	}
	if pc == nil {
		return false
	}
	for _, nv := range pc.NullValues {
		if string(text) == nv {
			return true
		}
	}
	return false
}
