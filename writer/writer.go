// Package writer implements the streaming JSON writer: the mirror image of
// package lexer, mapping a sequence of parse Results into UTF-8 output
// fragments tagged with the structural prefix (delimiter/whitespace) the
// caller should emit before each one. It holds only a few words of state
// and never allocates.
//
// Grounded on _examples/original_source/src/writer.c, in the same
// table-driven, struct-returning style as package lexer.
package writer

import (
	sj "github.com/mcvoid/streamjson"
	"github.com/mcvoid/streamjson/internal/codec"
)

// Prefix is the structural delimiter a TextOutput fragment should be
// preceded by. The writer never emits whitespace itself; indentation and
// spacing around the delimiter are a caller policy (see the pipe tool's
// terse flag).
type Prefix int

const (
	PrefixNone Prefix = iota
	PrefixObjectStart
	PrefixArrayStart
	PrefixObjectEnd
	PrefixArrayEnd
	PrefixMemberColon
	PrefixMemberComma
	PrefixArrayComma
	numPrefixes
)

var prefixStrings = [numPrefixes]string{
	"none",
	"object-start",
	"array-start",
	"object-end",
	"array-end",
	"member-colon",
	"member-comma",
	"array-comma",
}

func (p Prefix) String() string {
	if p < 0 || p >= numPrefixes {
		return "<unknown>"
	}
	return prefixStrings[p]
}

// TextOutput is one step's output: a status, a container depth, and a UTF-8
// byte fragment (possibly empty) to write after the delimiter implied by
// Prefix. Depth is the container depth at emission time for fragments built
// with a Prefix (container and value starts, container ends) and for
// \u00XX control-character escapes; other fragments leave Depth at 0.
type TextOutput struct {
	Status sj.Status
	Depth  int
	Bytes  []byte
	Prefix Prefix
}

// Writer holds the handful of working fields needed to map Results to
// output: the current nesting depth, and the kind/flags of the most
// recently started value. The kind decides whether a Bytes event is escaped
// as string content and which scalar a DoubleEnd closes first; prefixes
// come from each Start Result's own flags.
type Writer struct {
	depth    int
	topKind  sj.Kind
	topFlags sj.Flags
	buf      [8]byte
}

// New returns a writer ready to accept the first Result of a stream.
func New() *Writer {
	return &Writer{}
}

func emitNothing() TextOutput {
	return TextOutput{Status: sj.StatusSuccess}
}

func (w *Writer) emitByte(b byte) TextOutput {
	w.buf[0] = b
	return TextOutput{Status: sj.StatusSuccess, Bytes: w.buf[:1]}
}

func (w *Writer) emitSep(prefix Prefix, depth int, b byte) TextOutput {
	w.buf[0] = b
	return TextOutput{Status: sj.StatusSuccess, Depth: depth, Bytes: w.buf[:1], Prefix: prefix}
}

func (w *Writer) emitPair(a, b byte) TextOutput {
	w.buf[0] = a
	w.buf[1] = b
	return TextOutput{Status: sj.StatusSuccess, Bytes: w.buf[:2]}
}

// prefixFor derives the prefix tag for a Start event from its flags, per
// the mapping rules: member value always gets a colon; first member/element
// opens its container, later ones get a comma.
func prefixFor(flags sj.Flags) Prefix {
	switch {
	case flags.Has(sj.FlagIsMemberValue):
		return PrefixMemberColon
	case flags.Has(sj.FlagIsMemberName):
		if flags.Has(sj.FlagIsFirst) {
			return PrefixObjectStart
		}
		return PrefixMemberComma
	case flags.Has(sj.FlagIsElement):
		if flags.Has(sj.FlagIsFirst) {
			return PrefixArrayStart
		}
		return PrefixArrayComma
	}
	return PrefixNone
}

func (w *Writer) onStart(kind sj.Kind, flags sj.Flags, head byte) TextOutput {
	w.topKind = kind
	w.topFlags = flags
	prefix := prefixFor(flags)

	switch kind {
	case sj.KindObject:
		out := w.emitSep(prefix, w.depth, '{')
		w.depth++
		return out
	case sj.KindArray:
		out := w.emitSep(prefix, w.depth, '[')
		w.depth++
		return out
	case sj.KindString:
		return w.emitSep(prefix, w.depth, '"')
	}

	return w.emitSep(prefix, w.depth, head)
}

func (w *Writer) onByte(b byte) TextOutput {
	if w.topKind != sj.KindString {
		return w.emitByte(b)
	}

	switch b {
	case '"', '\\':
		return w.emitPair('\\', b)
	case '\b':
		return w.emitPair('\\', 'b')
	case '\f':
		return w.emitPair('\\', 'f')
	case '\n':
		return w.emitPair('\\', 'n')
	case '\r':
		return w.emitPair('\\', 'r')
	case '\t':
		return w.emitPair('\\', 't')
	}

	if b >= 0x20 {
		return w.emitByte(b)
	}

	w.buf[0] = '\\'
	w.buf[1] = 'u'
	w.buf[2] = '0'
	w.buf[3] = '0'
	w.buf[4] = codec.HexDigit(b >> 4)
	w.buf[5] = codec.HexDigit(b & 0x0F)
	return TextOutput{Status: sj.StatusSuccess, Depth: w.depth, Bytes: w.buf[:6]}
}

func (w *Writer) onEnd(kind sj.Kind, tail byte) TextOutput {
	w.topFlags = 0

	switch kind {
	case sj.KindObject:
		w.depth--
		return w.emitSep(PrefixObjectEnd, w.depth, '}')
	case sj.KindArray:
		w.depth--
		return w.emitSep(PrefixArrayEnd, w.depth, ']')
	case sj.KindString:
		return w.emitByte('"')
	}

	if tail != 0 {
		return w.emitByte(tail)
	}
	return emitNothing()
}

// WriteResult consumes one Result, as produced by lexer.Lexer.ReadByte (or
// any equivalent producer), and returns the TextOutput it implies.
func (w *Writer) WriteResult(r sj.Result, data []byte) TextOutput {
	head := func() byte {
		if r.Flags.Has(sj.FlagHasBytes) && len(data) > 0 {
			return data[0]
		}
		return 0
	}

	switch r.Event {
	case sj.EventStart:
		return w.onStart(r.Kind, r.Flags, head())
	case sj.EventEnd:
		return w.onEnd(r.Kind, head())
	case sj.EventDoubleEnd:
		w.onEnd(w.topKind, 0)
		return w.onEnd(r.Kind, 0)
	case sj.EventBytes:
		if len(data) == 1 {
			return w.onByte(data[0])
		}
		return TextOutput{Status: sj.StatusSuccess, Bytes: data}
	}

	return emitNothing()
}
