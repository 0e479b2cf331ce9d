package cells

import (
	"context"
	"errors"
	"io"

	"github.com/charmbracelet/log"

	"github.com/shapestone/shape-cells/internal/buffer"
	"github.com/shapestone/shape-cells/internal/logging"
	"github.com/shapestone/shape-cells/internal/scanner"
)

// Option configures a Parser.
type Option func(*Parser)

// WithLogger sets the logger used for debug output. Without it the parser
// uses the logger carried by the context, or the package default.
func WithLogger(logger *log.Logger) Option {
	return func(p *Parser) {
		p.logger = logger
	}
}

// Stats summarizes one parse.
type Stats struct {
	// BytesRead is the number of bytes read from the source.
	BytesRead int64
	// Cells is the number of cells emitted.
	Cells int64
	// Rows counts terminated rows plus a trailing unterminated row.
	Rows int64
	// Growths is the number of times the buffer doubled.
	Growths int
	// Capacity is the buffer capacity at the end of the parse.
	Capacity int
}

// Parser tokenizes byte streams. The zero value is not usable; call
// NewParser. A Parser holds no per-parse state, so it may be reused and
// shared between goroutines.
type Parser struct {
	bufferSize int
	logger     *log.Logger
}

// NewParser creates a Parser whose buffer starts at bufferSize bytes.
// Non-positive sizes select DefaultBufferSize.
func NewParser(bufferSize int, opts ...Option) *Parser {
	if bufferSize <= 0 {
		bufferSize = DefaultBufferSize
	}
	p := &Parser{bufferSize: bufferSize}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// BufferSize returns the initial buffer capacity.
func (p *Parser) BufferSize() int {
	return p.bufferSize
}

// Parse reads r until end of stream and reports every cell and row boundary
// to h. Read failures are returned as *ReadError. A handler error aborts the
// parse without further reads and is returned unchanged.
func (p *Parser) Parse(r io.Reader, h CellHandler) error {
	_, err := p.ParseStats(context.Background(), r, h)
	return err
}

// ParseContext is Parse with cooperative cancellation: ctx is checked before
// every read from r.
func (p *Parser) ParseContext(ctx context.Context, r io.Reader, h CellHandler) error {
	_, err := p.ParseStats(ctx, r, h)
	return err
}

// ParseStats parses like ParseContext and also returns counters describing
// the parse. The counters are valid up to the point of failure when an error
// is returned.
func (p *Parser) ParseStats(ctx context.Context, r io.Reader, h CellHandler) (Stats, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := p.logger
	if logger == nil {
		logger = logging.FromContext(ctx)
	}

	buf := buffer.New(p.bufferSize)
	sc := scanner.New()
	counter := &countingHandler{next: h}

	var stats Stats
	snapshot := func() Stats {
		stats.Cells = counter.cells
		stats.Rows = counter.rows
		stats.Capacity = buf.Cap()
		return stats
	}

	for {
		if err := ctx.Err(); err != nil {
			return snapshot(), err
		}

		from := buf.Len()
		n, readErr := buf.Fill(r)
		stats.BytesRead += int64(n)

		if n > 0 {
			if err := sc.Scan(buf.Bytes(), from, buf.Len(), counter); err != nil {
				return snapshot(), err
			}
			buf.Consume(sc.CellStart())
			if buf.Free() == 0 {
				reclaim(buf, sc, &stats, logger)
			}
		}

		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				break
			}
			return snapshot(), &ReadError{Offset: stats.BytesRead, Err: readErr}
		}
	}

	if err := sc.Finish(buf.Bytes(), buf.Len(), counter); err != nil {
		return snapshot(), err
	}
	counter.flush()

	if err := h.End(); err != nil {
		return snapshot(), err
	}

	logger.Debug("parse complete",
		logging.FieldBytesRead, stats.BytesRead,
		logging.FieldCells, counter.cells,
		logging.FieldRows, counter.rows,
		logging.FieldGrowths, stats.Growths,
		logging.FieldCapacity, buf.Cap(),
	)

	return snapshot(), nil
}

// reclaim makes room in a full buffer by dropping the emitted prefix or, when
// the pending cell fills more than half of it, doubling the capacity.
func reclaim(buf *buffer.Buffer, sc *scanner.Scanner, stats *Stats, logger *log.Logger) {
	leftover := buf.Leftover()
	shift, grew := buf.CompactOrGrow()
	sc.Shift(shift)
	if grew {
		stats.Growths++
		logger.Debug("buffer grown",
			logging.FieldCapacity, buf.Cap(),
			logging.FieldLeftover, leftover,
		)
	}
}
