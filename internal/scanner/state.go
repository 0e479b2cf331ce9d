package scanner

import "fmt"

// State is the quoting state of the cell currently being scanned.
type State int

const (
	// Normal is the state outside any quoted section.
	Normal State = iota
	// InQuote means the scanner is inside a quoted cell; separators and
	// terminators are payload.
	InQuote
	// JustClosedQuote follows a quote seen while InQuote. The next byte decides
	// whether it closed the cell or started an escaped "" pair.
	JustClosedQuote
)

// String returns the string representation of State.
func (s State) String() string {
	switch s {
	case Normal:
		return "normal"
	case InQuote:
		return "in-quote"
	case JustClosedQuote:
		return "just-closed-quote"
	default:
		return fmt.Sprintf("State(%d)", int(s))
	}
}
