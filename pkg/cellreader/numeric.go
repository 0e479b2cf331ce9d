package cellreader

import "strconv"

// Float32Reader reads float32 values.
type Float32Reader struct{}

// Read implements CellValueReader. Empty and null cells read as nil.
func (r Float32Reader) Read(buf []byte, offset, length int, pc *ParsingContext) (*float32, error) {
	if length == 0 {
		return nil, nil
	}
	text := pc.Text(buf, offset, length)
	if pc.isNull(text) {
		return nil, nil
	}
	v, err := parseFloat32(text, offset, length)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// ReadFloat32 reads a non-empty cell as a float32.
func (r Float32Reader) ReadFloat32(buf []byte, offset, length int, pc *ParsingContext) (float32, error) {
	return parseFloat32(pc.Text(buf, offset, length), offset, length)
}

func parseFloat32(text []byte, offset, length int) (float32, error) {
	f, err := strconv.ParseFloat(unsafeString(text), 32)
	if err != nil {
		return 0, formatError(offset, length, text, "float32", err)
	}
	return float32(f), nil
}

// Float64Reader reads float64 values.
type Float64Reader struct{}

// Read implements CellValueReader. Empty and null cells read as nil.
func (r Float64Reader) Read(buf []byte, offset, length int, pc *ParsingContext) (*float64, error) {
	if length == 0 {
		return nil, nil
	}
	text := pc.Text(buf, offset, length)
	if pc.isNull(text) {
		return nil, nil
	}
	v, err := parseFloat64(text, offset, length)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// ReadFloat64 reads a non-empty cell as a float64.
func (r Float64Reader) ReadFloat64(buf []byte, offset, length int, pc *ParsingContext) (float64, error) {
	return parseFloat64(pc.Text(buf, offset, length), offset, length)
}

func parseFloat64(text []byte, offset, length int) (float64, error) {
	f, err := strconv.ParseFloat(unsafeString(text), 64)
	if err != nil {
		return 0, formatError(offset, length, text, "float64", err)
	}
	return f, nil
}

// IntReader reads int64 values.
type IntReader struct {
	// Base is the numeric base for parsing (default: 10)
	Base int
}

// Read implements CellValueReader. Empty and null cells read as nil.
func (r IntReader) Read(buf []byte, offset, length int, pc *ParsingContext) (*int64, error) {
	if length == 0 {
		return nil, nil
	}
	text := pc.Text(buf, offset, length)
	if pc.isNull(text) {
		return nil, nil
	}
	v, err := r.parse(text, offset, length)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// ReadInt64 reads a non-empty cell as an int64.
func (r IntReader) ReadInt64(buf []byte, offset, length int, pc *ParsingContext) (int64, error) {
	return r.parse(pc.Text(buf, offset, length), offset, length)
}

func (r IntReader) parse(text []byte, offset, length int) (int64, error) {
	base := r.Base
	if base == 0 {
		base = 10
	}
	i, err := strconv.ParseInt(unsafeString(text), base, 64)
	if err != nil {
		return 0, formatError(offset, length, text, "int64", err)
	}
	return i, nil
}
