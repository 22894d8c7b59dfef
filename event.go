package streamjson

// EventKind classifies what, if anything, a lexer step produced.
type EventKind int

const (
	// EventNothing means the input byte was consumed with no observable
	// effect, e.g. whitespace or an intermediate escape character.
	EventNothing EventKind = iota
	// EventStart means a value has begun. Kind and Flags describe it, and
	// Flags&FlagHasBytes indicates up to four content bytes are available
	// (the first character of a number or literal).
	EventStart
	// EventEnd means the current value has ended. For literals, the final
	// character is carried via FlagHasBytes. A number's terminating
	// delimiter is not carried; it is re-read against the parent value.
	EventEnd
	// EventDoubleEnd means a single input byte ended both the innermost
	// value (a number or literal) and its containing array or object in
	// one step. Kind names the container; the inner value's kind is
	// implicit.
	EventDoubleEnd
	// EventBytes carries one UTF-8 character (1-4 bytes) of a string,
	// number, or literal body.
	EventBytes
)

func (e EventKind) String() string {
	switch e {
	case EventNothing:
		return "nothing"
	case EventStart:
		return "start"
	case EventEnd:
		return "end"
	case EventDoubleEnd:
		return "double-end"
	case EventBytes:
		return "bytes"
	default:
		return "<unknown>"
	}
}

// Flags is a bit set of metadata attached to a Result, describing the role
// of the value a Start event begins, or whether an event carries bytes.
type Flags uint8

const (
	// FlagIsMemberName marks a Start event for an object member's name.
	FlagIsMemberName Flags = 1 << iota
	// FlagIsMemberValue marks a Start event for an object member's value.
	FlagIsMemberValue
	// FlagIsElement marks a Start event for an array element.
	FlagIsElement
	// FlagIsFirst marks the first member or element of its container.
	FlagIsFirst
	// FlagHasBytes marks that the event carries content in its associated
	// byte buffer.
	FlagHasBytes
)

// Has reports whether all bits of want are set in f.
func (f Flags) Has(want Flags) bool {
	return f&want == want
}

// Result is the tuple returned by a single lexer step: a status, the event
// it produced (if any), the value kind the event concerns (meaningful only
// for Start, End, and DoubleEnd), and flags describing the event.
type Result struct {
	Status Status
	Event  EventKind
	Kind   Kind
	Flags  Flags
}
