package cells

// CellHandler receives tokenizer events. Calls are synchronous and in input
// order. Returning an error stops the parse; the error is returned by Parse
// and End is not called.
type CellHandler interface {
	// NewCell delivers the raw bytes buf[offset:offset+length] of one cell.
	// The slice is only valid until NewCell returns.
	NewCell(buf []byte, offset, length int) error
	// EndOfRow follows the last cell of a row ended by a terminator.
	EndOfRow() error
	// End is delivered once after the input is exhausted.
	End() error
}

// HandlerFuncs adapts plain functions to CellHandler. Nil fields ignore the
// corresponding event.
type HandlerFuncs struct {
	Cell func(buf []byte, offset, length int) error
	Row  func() error
	Done func() error
}

// NewCell implements CellHandler.
func (f HandlerFuncs) NewCell(buf []byte, offset, length int) error {
	if f.Cell == nil {
		return nil
	}
	return f.Cell(buf, offset, length)
}

// EndOfRow implements CellHandler.
func (f HandlerFuncs) EndOfRow() error {
	if f.Row == nil {
		return nil
	}
	return f.Row()
}

// End implements CellHandler.
func (f HandlerFuncs) End() error {
	if f.Done == nil {
		return nil
	}
	return f.Done()
}

// countingHandler forwards events and keeps the counters reported in Stats.
type countingHandler struct {
	next     CellHandler
	cells    int64
	rows     int64
	rowCells int
}

func (c *countingHandler) NewCell(buf []byte, offset, length int) error {
	c.cells++
	c.rowCells++
	return c.next.NewCell(buf, offset, length)
}

func (c *countingHandler) EndOfRow() error {
	c.rows++
	c.rowCells = 0
	return c.next.EndOfRow()
}

// flush counts an unterminated trailing row.
func (c *countingHandler) flush() {
	if c.rowCells > 0 {
		c.rows++
		c.rowCells = 0
	}
}
