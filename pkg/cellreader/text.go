package cellreader

import "strings"

// StringReader reads decoded cells as strings. An empty cell reads as "".
type StringReader struct{}

// Read implements CellValueReader.
func (StringReader) Read(buf []byte, offset, length int, pc *ParsingContext) (string, error) {
	if length == 0 {
		return "", nil
	}
	return string(pc.Text(buf, offset, length)), nil
}

// BytesReader copies decoded cells out of the parser's buffer so they can be
// kept past the callback. An empty cell reads as nil.
type BytesReader struct{}

// Read implements CellValueReader.
func (BytesReader) Read(buf []byte, offset, length int, pc *ParsingContext) ([]byte, error) {
	if length == 0 {
		return nil, nil
	}
	text := pc.Text(buf, offset, length)
	out := make([]byte, len(text))
	copy(out, text)
	return out, nil
}

// BoolReader reads bool values.
// Recognizes: true/false, 1/0, yes/no, y/n, on/off, t/f (case-insensitive)
type BoolReader struct{}

// Read implements CellValueReader. Empty and null cells read as nil.
func (r BoolReader) Read(buf []byte, offset, length int, pc *ParsingContext) (*bool, error) {
	if length == 0 {
		return nil, nil
	}
	text := pc.Text(buf, offset, length)
	if pc.isNull(text) {
		return nil, nil
	}
	v, err := parseBool(text, offset, length)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// ReadBool reads a non-empty cell as a bool.
func (r BoolReader) ReadBool(buf []byte, offset, length int, pc *ParsingContext) (bool, error) {
	return parseBool(pc.Text(buf, offset, length), offset, length)
}

func parseBool(text []byte, offset, length int) (bool, error) {
	switch strings.ToLower(unsafeString(text)) {
	case "true", "1", "yes", "y", "on", "t":
		return true, nil
	case "false", "0", "no", "n", "off", "f":
		return false, nil
	default:
		return false, formatError(offset, length, text, "bool", ErrInvalidBool)
	}
}

// Compile-time interface checks.
var (
	_ CellValueReader[string] = StringReader{}
	_ CellValueReader[[]byte] = BytesReader{}
	_ Float32ValueReader      = Float32Reader{}
	_ Float64ValueReader      = Float64Reader{}
	_ Int64ValueReader        = IntReader{}
	_ BoolValueReader         = BoolReader{}
)
