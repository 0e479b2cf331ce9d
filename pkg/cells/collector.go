package cells

import "io"

// RowCollector is a CellHandler that decodes and copies every cell into
// string rows. A trailing row without terminator is kept when End arrives.
type RowCollector struct {
	rows [][]string
	row  []string
	open bool
}

// NewCell implements CellHandler.
func (c *RowCollector) NewCell(buf []byte, offset, length int) error {
	c.row = append(c.row, string(Unquote(buf[offset:offset+length])))
	c.open = true
	return nil
}

// EndOfRow implements CellHandler.
func (c *RowCollector) EndOfRow() error {
	c.rows = append(c.rows, c.row)
	c.row = nil
	c.open = false
	return nil
}

// End implements CellHandler.
func (c *RowCollector) End() error {
	if c.open {
		return c.EndOfRow()
	}
	return nil
}

// Rows returns the collected rows.
func (c *RowCollector) Rows() [][]string {
	if c.rows == nil {
		return [][]string{}
	}
	return c.rows
}

// Reset drops the collected rows so the collector can be reused.
func (c *RowCollector) Reset() {
	c.rows = nil
	c.row = nil
	c.open = false
}

// ReadAll parses r with a buffer of bufferSize bytes and returns every row.
func ReadAll(r io.Reader, bufferSize int) ([][]string, error) {
	rows := &RowCollector{}
	if err := NewParser(bufferSize).Parse(r, rows); err != nil {
		return nil, err
	}
	return rows.Rows(), nil
}
