// Package lexer implements the streaming JSON lexer: a pushdown automaton
// that consumes one input byte at a time and emits zero or one parse event
// per byte, validating JSON syntax (including UTF-16 surrogate-pair escapes
// and the number grammar) without ever materializing a document tree.
//
// Grounded on _examples/original_source/src/lexer.c, with the table-driven
// per-state-handler shape adapted from _examples/mcvoid-json/parser.go's
// stateTransitionTable/consumeCharacter design.
package lexer

import (
	sj "github.com/mcvoid/streamjson"
	"github.com/mcvoid/streamjson/internal/codec"
)

// state is one lexer stack frame: the state expected from the next input
// byte at this level of nesting. One byte per frame, matching the budget
// in the design this module is grounded on.
type state uint8

const (
	stateStart state = iota
	stateElemFirst
	stateElemSep
	stateElemNext
	stateMemNameFirst
	stateMemNameSep
	stateMemValueStart
	stateMemSep
	stateMemNext
	stateString
	stateStringEsc
	stateStringEscHex
	stateStringEscLo
	stateNumIntStart
	stateNumIntCont
	stateNumIntEnd
	stateNumFracStart
	stateNumFracCont
	stateNumExpStart
	stateNumExpIntStart
	stateNumExpIntCont
	stateFalse
	stateNull
	stateTrue
	numStates
)

// eof is passed to ReadByte in place of a byte value to signal the end of
// input, mirroring fgetc's -1 convention.
const eof = -1

// Lexer holds the pushdown automaton's state: the nesting stack (one state
// byte per level, carved out of the caller's memory with no further
// allocation) plus a small fixed header of working fields.
type Lexer struct {
	stack    []byte // caller-owned; stack[i] holds the state at level i
	top      int
	value    uint32
	length   uint32
	flags    sj.Flags
	numBytes int
	buf      [4]byte
}

// New installs a lexer over stack, which becomes the nesting stack: one
// byte of stack is needed per level of value nesting the input will use.
// Returns nil if stack cannot hold even the outermost frame.
//
// Go's runtime makes the source project's single "header + stack" memory
// blob unnecessary: the header here is ordinary struct fields, and stack is
// used as-is for frames, so no internal allocation happens on the hot path.
func New(stack []byte) *Lexer {
	if len(stack) < 1 {
		return nil
	}
	stack[0] = byte(stateStart)
	return &Lexer{stack: stack}
}

// LastBytes returns the bytes of the most recently produced event, if any.
// The returned slice is a view into the lexer's internal buffer and is
// valid only until the next call to ReadByte.
func (l *Lexer) LastBytes() []byte {
	return l.buf[:l.numBytes]
}

// ReadByte advances the automaton by one input byte, or by EOF if c is
// negative (following fgetc's convention). It returns the Result of that
// step: a Status, the Event produced (if any), and the value Kind and
// Flags the event concerns.
//
// On any Status other than StatusSuccess, StatusRetry, or StatusFailure,
// the lexer's internal state is undefined for further input; the caller
// must discard it and start over with a fresh Lexer.
func (l *Lexer) ReadByte(c int) sj.Result {
	r := l.processByte(c)
	if r.Status != sj.StatusRetry {
		return r
	}

	// The byte that just delimited a number or literal has not actually
	// been consumed yet (one-byte lookahead). Run it again against the
	// now-popped parent frame; if that step also ends a value, the two
	// ends fuse into a single DoubleEnd.
	second := l.processByte(c)
	r.Status = second.Status
	if r.Event == sj.EventEnd && second.Event == sj.EventEnd {
		r.Kind = second.Kind
		r.Event = sj.EventDoubleEnd
	}
	return r
}

func (l *Lexer) processByte(c int) sj.Result {
	// frame is this byte's own level of nesting, captured before dispatch.
	// A handler may push a child value (e.g. a number inside an array)
	// before it transitions its own state; capturing frame up front lets
	// reset/change target this level even after l.top has moved on to the
	// child, the same way the source project's handlers take a frame
	// pointer fixed at dispatch time rather than re-deriving it from the
	// lexer's current top.
	frame := l.top
	top := state(l.stack[frame])

	if c < 0 {
		return l.atEOF(top)
	}

	b := byte(c)
	if codec.IsSpace(b) && top <= stateMemNext {
		return sj.Result{Status: sj.StatusSuccess}
	}

	return handlers[top](l, frame, b)
}

// atEOF implements the four cases in which EOF mid-number at the top level
// is a successful end of input, and the general NoData/Failure split
// otherwise.
func (l *Lexer) atEOF(top state) sj.Result {
	if l.top == 1 {
		switch top {
		case stateNumIntCont, stateNumIntEnd, stateNumFracCont, stateNumExpIntCont:
			return l.pop(sj.KindNumber, sj.StatusSuccess, 0)
		}
	}

	if top == stateStart {
		return sj.Result{Status: sj.StatusFailure}
	}
	return sj.Result{Status: sj.StatusNoData}
}

/*
 * Stack changes
 */

func (l *Lexer) push(kind sj.Kind, flags sj.Flags, next state, first byte) sj.Result {
	if l.top+1 >= len(l.stack) {
		return sj.Result{Status: sj.StatusOverflow}
	}

	l.top++
	l.stack[l.top] = byte(next)
	l.flags = flags

	result := sj.Result{Status: sj.StatusSuccess, Event: sj.EventStart, Kind: kind, Flags: flags}
	if first != 0 {
		l.length = 1
		l.numBytes = 1
		l.buf[0] = first
		result.Flags |= sj.FlagHasBytes
	} else {
		l.length = 0
		l.numBytes = 0
	}
	return result
}

func (l *Lexer) pop(kind sj.Kind, success sj.Status, last byte) sj.Result {
	l.buf[0] = last
	flags := sj.Flags(0)
	if last != 0 {
		l.numBytes = 1
		flags = sj.FlagHasBytes
	} else {
		l.numBytes = 0
	}

	status := sj.StatusUnderflow
	if l.top > 0 {
		l.top--
		status = success
	}

	l.length = 0
	l.flags = 0
	return sj.Result{Status: status, Event: sj.EventEnd, Kind: kind, Flags: flags}
}

/*
 * State transition helpers
 */

func (l *Lexer) reset(frame int, next state, flags sj.Flags) sj.Result {
	l.stack[frame] = byte(next)
	l.flags = flags
	return sj.Result{Status: sj.StatusSuccess}
}

func (l *Lexer) resetIf(frame int, next state, flags sj.Flags, r sj.Result) sj.Result {
	if r.Status == sj.StatusSuccess {
		l.stack[frame] = byte(next)
		l.flags = flags
	}
	return r
}

func (l *Lexer) change(frame int, next state) sj.Result {
	l.stack[frame] = byte(next)
	return sj.Result{Status: sj.StatusSuccess}
}

func (l *Lexer) changeIf(frame int, next state, r sj.Result) sj.Result {
	if r.Status == sj.StatusSuccess {
		l.stack[frame] = byte(next)
	}
	return r
}

func (l *Lexer) byteChange(frame int, next state, c byte) sj.Result {
	l.stack[frame] = byte(next)
	return l.byte(c)
}

func (l *Lexer) byte(c byte) sj.Result {
	l.buf[0] = c
	l.numBytes = 1
	return sj.Result{Status: sj.StatusSuccess, Event: sj.EventBytes, Flags: sj.FlagHasBytes}
}

func (l *Lexer) codepoint(code rune) sj.Result {
	l.numBytes = codec.UTF8FromCodepoint(l.buf[:4], code)
	if l.numBytes == 0 {
		return sj.Result{Status: sj.StatusExpectedUTF8}
	}
	return sj.Result{Status: sj.StatusSuccess, Event: sj.EventBytes, Flags: sj.FlagHasBytes}
}

/*
 * Values
 */

func (l *Lexer) eatValue(flags sj.Flags, c byte) sj.Result {
	switch c {
	case '"':
		return l.push(sj.KindString, flags, stateString, 0)
	case '-':
		return l.push(sj.KindNumber, flags, stateNumIntStart, c)
	case '0':
		return l.push(sj.KindNumber, flags, stateNumIntEnd, c)
	case '[':
		return l.push(sj.KindArray, flags, stateElemFirst, 0)
	case '{':
		return l.push(sj.KindObject, flags, stateMemNameFirst, 0)
	case 'f':
		return l.push(sj.KindLiteral, flags, stateFalse, c)
	case 'n':
		return l.push(sj.KindLiteral, flags, stateNull, c)
	case 't':
		return l.push(sj.KindLiteral, flags, stateTrue, c)
	}

	if codec.IsDigit(c) {
		return l.push(sj.KindNumber, flags, stateNumIntCont, c)
	}
	return sj.Result{Status: sj.StatusExpectedValue}
}

func eatStart(l *Lexer, frame int, c byte) sj.Result {
	return l.eatValue(0, c)
}

/*
 * Arrays
 */

func eatElemFirst(l *Lexer, frame int, c byte) sj.Result {
	if c == ']' {
		return l.pop(sj.KindArray, sj.StatusSuccess, 0)
	}
	return l.resetIf(frame, stateElemSep, sj.FlagIsElement, l.eatValue(sj.FlagIsElement|sj.FlagIsFirst, c))
}

func eatElemSep(l *Lexer, frame int, c byte) sj.Result {
	switch c {
	case ']':
		return l.pop(sj.KindArray, sj.StatusSuccess, 0)
	case ',':
		return l.reset(frame, stateElemNext, sj.FlagIsElement)
	}
	return sj.Result{Status: sj.StatusExpectedComma}
}

func eatElemNext(l *Lexer, frame int, c byte) sj.Result {
	return l.changeIf(frame, stateElemSep, l.eatValue(sj.FlagIsElement, c))
}

/*
 * Objects
 */

func eatMemNameFirst(l *Lexer, frame int, c byte) sj.Result {
	if c == '}' {
		return l.pop(sj.KindObject, sj.StatusSuccess, 0)
	}
	if c != '"' {
		return sj.Result{Status: sj.StatusExpectedQuote}
	}
	return l.changeIf(frame, stateMemNameSep, l.push(sj.KindString, sj.FlagIsFirst|sj.FlagIsMemberName, stateString, 0))
}

func eatMemNameSep(l *Lexer, frame int, c byte) sj.Result {
	if c == ':' {
		return l.reset(frame, stateMemValueStart, sj.FlagIsMemberValue)
	}
	return sj.Result{Status: sj.StatusExpectedColon}
}

func eatMemValueStart(l *Lexer, frame int, c byte) sj.Result {
	return l.changeIf(frame, stateMemSep, l.eatValue(sj.FlagIsMemberValue, c))
}

func eatMemSep(l *Lexer, frame int, c byte) sj.Result {
	switch c {
	case ',':
		return l.reset(frame, stateMemNext, 0)
	case '}':
		return l.pop(sj.KindObject, sj.StatusSuccess, 0)
	}
	return sj.Result{Status: sj.StatusExpectedComma}
}

func eatMemNext(l *Lexer, frame int, c byte) sj.Result {
	if c != '"' {
		return sj.Result{Status: sj.StatusExpectedQuote}
	}
	return l.changeIf(frame, stateMemNameSep, l.push(sj.KindString, sj.FlagIsMemberName, stateString, 0))
}

/*
 * Strings
 */

func eatString(l *Lexer, frame int, c byte) sj.Result {
	switch {
	case c == '"':
		return l.pop(sj.KindString, sj.StatusSuccess, 0)
	case c == '\\':
		return l.change(frame, stateStringEsc)
	case c < 0x20:
		return l.pop(sj.KindString, sj.StatusExpectedPrintable, 0)
	}
	return l.byte(c)
}

func eatStringEsc(l *Lexer, frame int, c byte) sj.Result {
	switch c {
	case '"', '/', '\\':
		return l.byteChange(frame, stateString, c)
	case 'b':
		return l.byteChange(frame, stateString, '\b')
	case 'f':
		return l.byteChange(frame, stateString, '\f')
	case 'n':
		return l.byteChange(frame, stateString, '\n')
	case 'r':
		return l.byteChange(frame, stateString, '\r')
	case 't':
		return l.byteChange(frame, stateString, '\t')
	case 'u':
		l.length = 0
		return l.change(frame, stateStringEscHex)
	}
	return sj.Result{Status: sj.StatusExpectedStringEscape}
}

func eatStringEscHex(l *Lexer, frame int, c byte) sj.Result {
	nibble, ok := codec.HexNibble(c)
	if !ok {
		return sj.Result{Status: sj.StatusExpectedHex}
	}

	if l.length == 0 {
		l.value = uint32(nibble)
	} else {
		l.value = (l.value << 4) | uint32(nibble)
	}
	l.length++
	if l.length < 4 {
		return sj.Result{Status: sj.StatusSuccess}
	}

	if l.value >= 0xDC00 && l.value <= 0xDFFF {
		return sj.Result{Status: sj.StatusExpectedUTF16Hi} // lone low surrogate
	}
	if l.value >= 0xD800 && l.value <= 0xDBFF {
		// High surrogate: wait for the following low surrogate escape.
		return l.change(frame, stateStringEscLo)
	}

	e := l.codepoint(rune(l.value))
	l.length = 0
	l.stack[frame] = byte(stateString)
	return e
}

func eatStringEscLo(l *Lexer, frame int, c byte) sj.Result {
	if (l.length == 4 && c == '\\') || (l.length == 5 && c == 'u') {
		l.length++
		return sj.Result{Status: sj.StatusSuccess}
	}

	nibble, ok := codec.HexNibble(c)
	if !ok {
		return sj.Result{Status: sj.StatusExpectedHex}
	}

	l.value = (l.value << 4) | uint32(nibble)
	l.length++
	if l.length < 10 {
		return sj.Result{Status: sj.StatusSuccess}
	}

	hi := uint16(l.value >> 16)
	lo := uint16(l.value & 0xFFFF)
	codepoint := codec.UTF16SurrogatesCodepoint(hi, lo)
	if lo < 0xDC00 || lo > 0xDFFF {
		return sj.Result{Status: sj.StatusExpectedUTF16Lo}
	}

	e := l.codepoint(codepoint)
	l.length = 0
	l.stack[frame] = byte(stateString)
	return e
}

/*
 * Numbers
 */

func eatNumIntStart(l *Lexer, frame int, c byte) sj.Result {
	switch {
	case c == '0':
		return l.byteChange(frame, stateNumIntEnd, c)
	case codec.IsDigit(c):
		return l.byteChange(frame, stateNumIntCont, c)
	}
	return sj.Result{Status: sj.StatusExpectedDigit}
}

func eatNumIntEnd(l *Lexer, frame int, c byte) sj.Result {
	switch {
	case codec.IsDelimiter(c):
		return l.pop(sj.KindNumber, sj.StatusRetry, 0)
	case c == '.':
		return l.byteChange(frame, stateNumFracStart, c)
	case c == 'E' || c == 'e':
		return l.byteChange(frame, stateNumExpStart, c)
	}
	return sj.Result{Status: sj.StatusExpectedDecimal}
}

func eatNumIntCont(l *Lexer, frame int, c byte) sj.Result {
	if codec.IsDigit(c) {
		return l.byte(c)
	}
	return eatNumIntEnd(l, frame, c)
}

func eatNumFracStart(l *Lexer, frame int, c byte) sj.Result {
	if codec.IsDigit(c) {
		return l.byteChange(frame, stateNumFracCont, c)
	}
	return sj.Result{Status: sj.StatusExpectedDigit}
}

func eatNumFracCont(l *Lexer, frame int, c byte) sj.Result {
	switch {
	case codec.IsDigit(c):
		return l.byte(c)
	case c == 'e':
		// Only the lowercase form is accepted after a fraction; an
		// uppercase 'E' here falls through to the Retry/pop path below,
		// same as any other delimiter.
		return l.byteChange(frame, stateNumExpStart, c)
	}
	return l.pop(sj.KindNumber, sj.StatusRetry, 0)
}

func eatNumExpStart(l *Lexer, frame int, c byte) sj.Result {
	if c == '+' || c == '-' {
		return l.byteChange(frame, stateNumExpIntStart, c)
	}
	return eatNumExpIntStart(l, frame, c)
}

func eatNumExpIntStart(l *Lexer, frame int, c byte) sj.Result {
	if codec.IsDigit(c) {
		return l.byteChange(frame, stateNumExpIntCont, c)
	}
	return sj.Result{Status: sj.StatusExpectedDigit}
}

func eatNumExpIntCont(l *Lexer, frame int, c byte) sj.Result {
	switch {
	case codec.IsDigit(c):
		return l.byte(c)
	case codec.IsDelimiter(c):
		return l.pop(sj.KindNumber, sj.StatusRetry, 0)
	}
	return l.pop(sj.KindNumber, sj.StatusExpectedDigit, 0)
}

/*
 * Literals
 */

func (l *Lexer) eatLiteral(word string, c byte) sj.Result {
	if c != word[l.length] {
		return sj.Result{Status: sj.StatusExpectedLiteral}
	}
	l.length++
	if int(l.length) == len(word) {
		return l.pop(sj.KindLiteral, sj.StatusSuccess, c)
	}
	return l.byte(c)
}

func eatFalse(l *Lexer, frame int, c byte) sj.Result { return l.eatLiteral("false", c) }
func eatNull(l *Lexer, frame int, c byte) sj.Result  { return l.eatLiteral("null", c) }
func eatTrue(l *Lexer, frame int, c byte) sj.Result  { return l.eatLiteral("true", c) }

type handlerFunc func(*Lexer, int, byte) sj.Result

var handlers = [numStates]handlerFunc{
	stateStart:          eatStart,
	stateElemFirst:      eatElemFirst,
	stateElemSep:        eatElemSep,
	stateElemNext:       eatElemNext,
	stateMemNameFirst:   eatMemNameFirst,
	stateMemNameSep:     eatMemNameSep,
	stateMemValueStart:  eatMemValueStart,
	stateMemSep:         eatMemSep,
	stateMemNext:        eatMemNext,
	stateString:         eatString,
	stateStringEsc:      eatStringEsc,
	stateStringEscHex:   eatStringEscHex,
	stateStringEscLo:    eatStringEscLo,
	stateNumIntStart:    eatNumIntStart,
	stateNumIntCont:     eatNumIntCont,
	stateNumIntEnd:      eatNumIntEnd,
	stateNumFracStart:   eatNumFracStart,
	stateNumFracCont:    eatNumFracCont,
	stateNumExpStart:    eatNumExpStart,
	stateNumExpIntStart: eatNumExpIntStart,
	stateNumExpIntCont:  eatNumExpIntCont,
	stateFalse:          eatFalse,
	stateNull:           eatNull,
	stateTrue:           eatTrue,
}
