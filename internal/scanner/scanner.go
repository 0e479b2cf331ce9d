// Package scanner implements the quote-aware state machine that finds cell
// and row boundaries in delimited text.
//
// The scanner never copies or rewrites input. It reports each cell as an
// offset/length pair into the caller's buffer, quotes included; decoding a
// quoted cell is left to the consumer.
package scanner

// Control bytes recognized by the scanner. Every other byte is payload.
const (
	Separator  byte = ','
	Terminator byte = '\n'
	Quote      byte = '"'
)

// Handler receives the boundaries found by a Scanner.
// A non-nil error stops the scan and is returned to the caller unchanged.
type Handler interface {
	NewCell(buf []byte, offset, length int) error
	EndOfRow() error
}

// Scanner tracks the quoting state and the start of the pending cell across
// successive chunks of the same buffer.
type Scanner struct {
	state     State
	cellStart int
	last      byte
}

// New returns a Scanner in the Normal state with the pending cell at offset 0.
func New() *Scanner {
	return &Scanner{}
}

// State returns the current quoting state.
func (s *Scanner) State() State {
	return s.state
}

// CellStart returns the buffer offset of the first byte of the pending cell.
// Every byte before it has been emitted and may be discarded.
func (s *Scanner) CellStart() int {
	return s.cellStart
}

// Scan feeds buf[from:to] through the state machine. Bytes before from must
// have been scanned by earlier calls; bytes from CellStart onward must still
// be in place.
func (s *Scanner) Scan(buf []byte, from, to int, h Handler) error {
	for i := from; i < to; i++ {
		switch buf[i] {
		case Quote:
			s.quote(i)
		case Separator:
			if s.state != InQuote {
				if err := s.newCell(buf, i, h); err != nil {
					return err
				}
			}
		case Terminator:
			if s.state != InQuote {
				if err := s.newCell(buf, i, h); err != nil {
					return err
				}
				if err := h.EndOfRow(); err != nil {
					return err
				}
			}
		}
	}

	if to > from {
		s.last = buf[to-1]
	}
	return nil
}

// quote applies the quote transition for a quote byte at offset i.
// A quote in the middle of an unquoted cell is kept as payload.
func (s *Scanner) quote(i int) {
	switch {
	case i == s.cellStart:
		s.state = InQuote
	case s.state == InQuote:
		s.state = JustClosedQuote
	case s.state == JustClosedQuote:
		s.state = InQuote
	}
}

func (s *Scanner) newCell(buf []byte, i int, h Handler) error {
	start := s.cellStart
	s.cellStart = i + 1
	s.state = Normal
	return h.NewCell(buf, start, i-start)
}

// Shift moves the pending cell n bytes towards the start of the buffer.
// Call it after the buffer discarded its first n bytes.
func (s *Scanner) Shift(n int) {
	s.cellStart -= n
}

// Finish emits the trailing cell once the input is exhausted. length is the
// number of valid bytes in buf. A cell is emitted when unemitted bytes remain
// or when the input ended right after a separator.
func (s *Scanner) Finish(buf []byte, length int, h Handler) error {
	start := s.cellStart
	trailing := start < length || s.last == Separator
	s.Reset()
	if !trailing {
		return nil
	}
	return h.NewCell(buf, start, length-start)
}

// Reset returns the scanner to its initial state.
func (s *Scanner) Reset() {
	s.state = Normal
	s.cellStart = 0
	s.last = 0
}
