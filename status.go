package streamjson

// Status is the outcome of a single lexer or writer step.
//
// Errors are values here, not exceptions: every lexer and writer call
// returns a Status alongside whatever event or fragment it produced, so
// that neither engine ever needs to allocate to report failure.
type Status int

// The closed set of statuses a Lexer or Writer step can return.
const (
	StatusSuccess Status = iota
	// StatusFailure is reached end of input cleanly, after a complete
	// top-level value. Despite the name, callers should treat it as a
	// non-erroneous end-of-stream signal.
	StatusFailure
	// StatusRetry is internal to the lexer's lookahead protocol (see
	// Lexer.ReadByte) and must never be observed by a caller.
	StatusRetry
	StatusNoData
	StatusOverflow
	StatusUnderflow
	StatusBadWrite
	StatusExpectedColon
	StatusExpectedComma
	StatusExpectedContinuation
	StatusExpectedDecimal
	StatusExpectedDigit
	StatusExpectedExponent
	StatusExpectedHex
	StatusExpectedLiteral
	StatusExpectedPrintable
	StatusExpectedQuote
	StatusExpectedStringEscape
	StatusExpectedUTF16Hi
	StatusExpectedUTF16Lo
	StatusExpectedUTF8
	StatusExpectedValue
	numStatuses
)

var statusStrings = [numStatuses]string{
	"Success",
	"Non-fatal failure",
	"Reached end of value",
	"Unexpected end of input",
	"Stack overflow",
	"Stack underflow",
	"Failed write",
	"Expected ':'",
	"Expected ','",
	"Expected continuation byte",
	"Expected '.'",
	"Expected digit",
	"Expected '+', '-', or digit",
	"Expected 0-9 or A-F or a-f",
	"Expected false, null, or true",
	"Expected printable character",
	"Expected '\"'",
	"Expected string escape",
	"Expected high surrogate escape",
	"Expected low surrogate escape",
	"Expected valid UTF-8 byte",
	"Expected value",
}

// String returns a human-readable description of the status, in English,
// capitalized and without a trailing period. Returns "<unknown>" for a
// value outside the closed set.
func (s Status) String() string {
	if s < 0 || s >= numStatuses {
		return "<unknown>"
	}
	return statusStrings[s]
}
