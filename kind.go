package streamjson

// Kind is the type category of a JSON value: an object, array, string,
// number, or one of the three literal keywords (false, null, true).
type Kind int

// The closed set of value kinds. Kind zero is never assigned to a value; it
// appears only in Results that don't carry a Kind (e.g. EventNothing).
const (
	_ Kind = iota
	KindObject
	KindArray
	KindString
	KindNumber
	KindLiteral
	numKinds
)

var kindStrings = [numKinds]string{
	"<none>",
	"object",
	"array",
	"string",
	"number",
	"literal",
}

// String returns the lowercase name of the kind, or "<unknown>" for a value
// outside the closed set.
func (k Kind) String() string {
	if k < 0 || k >= numKinds {
		return "<unknown>"
	}
	return kindStrings[k]
}
