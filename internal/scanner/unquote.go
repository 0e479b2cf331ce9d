package scanner

// Unquote returns the payload of a raw cell. Cells that do not start with a
// quote are returned unchanged. For quoted cells the enclosing quotes are
// dropped and every "" pair becomes a single quote. The result aliases cell
// unless an escaped pair or a re-opened quote forces a copy.
func Unquote(cell []byte) []byte {
	if len(cell) == 0 || cell[0] != Quote {
		return cell
	}
	body := cell[1:]
	end := len(body) - 1
	for i, c := range body {
		if c == Quote && i != end {
			return AppendUnquoted(nil, cell)
		}
	}
	if end >= 0 && body[end] == Quote {
		return body[:end]
	}
	// Unterminated quote: everything after the opening quote is payload.
	return body
}

// AppendUnquoted appends the payload of a raw cell to dst and returns the
// extended slice. Decoding follows the scanner's quote transitions: a quote
// directly after a closing quote is a literal quote, a later quote re-opens
// the quoted section, and bytes between a closing quote and the end of the
// cell are kept as payload.
func AppendUnquoted(dst, cell []byte) []byte {
	if len(cell) == 0 || cell[0] != Quote {
		return append(dst, cell...)
	}

	state := InQuote
	closedAt := -1
	for i := 1; i < len(cell); i++ {
		c := cell[i]
		if c != Quote {
			dst = append(dst, c)
			continue
		}
		switch state {
		case InQuote:
			state = JustClosedQuote
			closedAt = i
		case JustClosedQuote:
			if closedAt == i-1 {
				dst = append(dst, Quote)
			}
			state = InQuote
		}
	}
	return dst
}
