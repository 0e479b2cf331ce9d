// Package cellreader converts raw cells into typed values.
//
// Each reader implements CellValueReader for its result type. Nullable
// results are pointers: an empty cell reads as nil without attempting a
// conversion. Readers for scalar types also offer a primitive method
// (ReadFloat64, ReadInt64, ...) for callers that already know the cell is not
// empty and want to avoid the pointer allocation.
//
//	pc := cellreader.NewParsingContext()
//	defer pc.Release()
//
//	var prices cellreader.Float64Reader
//	handler := cells.HandlerFuncs{
//	    Cell: func(buf []byte, offset, length int) error {
//	        price, err := prices.Read(buf, offset, length, pc)
//	        ...
//	    },
//	}
package cellreader

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// CellValueReader interprets the cell buf[offset:offset+length] as a T.
type CellValueReader[T any] interface {
	Read(buf []byte, offset, length int, pc *ParsingContext) (T, error)
}

// ReaderFunc adapts a function to CellValueReader.
type ReaderFunc[T any] func(buf []byte, offset, length int, pc *ParsingContext) (T, error)

// Read implements CellValueReader.
func (f ReaderFunc[T]) Read(buf []byte, offset, length int, pc *ParsingContext) (T, error) {
	return f(buf, offset, length, pc)
}

// Float32ValueReader is a nullable float32 reader with a primitive variant.
type Float32ValueReader interface {
	CellValueReader[*float32]
	ReadFloat32(buf []byte, offset, length int, pc *ParsingContext) (float32, error)
}

// Float64ValueReader is a nullable float64 reader with a primitive variant.
type Float64ValueReader interface {
	CellValueReader[*float64]
	ReadFloat64(buf []byte, offset, length int, pc *ParsingContext) (float64, error)
}

// Int64ValueReader is a nullable int64 reader with a primitive variant.
type Int64ValueReader interface {
	CellValueReader[*int64]
	ReadInt64(buf []byte, offset, length int, pc *ParsingContext) (int64, error)
}

// BoolValueReader is a nullable bool reader with a primitive variant.
type BoolValueReader interface {
	CellValueReader[*bool]
	ReadBool(buf []byte, offset, length int, pc *ParsingContext) (bool, error)
}

// ErrInvalidBool indicates a cell that is not a recognized boolean literal.
var ErrInvalidBool = errors.New("invalid boolean literal")

// FormatError reports a cell whose bytes are not a valid literal for the
// target type. It only concerns that cell; tokenization is unaffected.
type FormatError struct {
	// Offset and Length locate the raw cell in the buffer it was read from.
	Offset int
	Length int
	// Text is a copy of the payload that failed to convert.
	Text string
	// Type names the target type.
	Type string
	// Err is the underlying conversion error.
	Err error
}

// Error returns a formatted error message with the cell position.
func (e *FormatError) Error() string {
	return fmt.Sprintf("cannot read %q at offset %d (length %d) as %s: %v",
		e.Text, e.Offset, e.Length, e.Type, e.Err)
}

// Unwrap returns the underlying error.
func (e *FormatError) Unwrap() error {
	return e.Err
}

func formatError(offset, length int, text []byte, typ string, err error) *FormatError {
	// strconv keeps its input in the error; detach it from the cell buffer.
	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		numErr.Num = strings.Clone(numErr.Num)
	}
	return &FormatError{
		Offset: offset,
		Length: length,
		Text:   string(text),
		Type:   typ,
		Err:    err,
	}
}
