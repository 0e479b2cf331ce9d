package cells

import "fmt"

// ReadError reports a failure of the byte source. The parse is aborted and
// no partial results are recovered.
type ReadError struct {
	// Offset is the number of bytes read from the source before the failure.
	Offset int64
	// Err is the underlying error.
	Err error
}

// Error returns a formatted error message with the source offset.
func (e *ReadError) Error() string {
	return fmt.Sprintf("read error after byte %d: %v", e.Offset, e.Err)
}

// Unwrap returns the underlying error.
func (e *ReadError) Unwrap() error {
	return e.Err
}
