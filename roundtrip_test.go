package streamjson_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sj "github.com/mcvoid/streamjson"
	"github.com/mcvoid/streamjson/lexer"
	"github.com/mcvoid/streamjson/writer"
)

// pipeTerse runs input through a Lexer/Writer pair exactly the way
// cmd/streamjson-pipe does in terse mode, rebuilding the comma/colon
// separators the writer leaves to its caller, and returns the reassembled
// text and the final Status. It stops as soon as the single top-level value
// closes, the same way the pipe tool counts a completed value rather than
// treating the lexer's subsequent "no more input expected" Failure as an
// error.
func pipeTerse(t *testing.T, input string, stackSize int) (string, sj.Status) {
	t.Helper()
	l := lexer.New(make([]byte, stackSize))
	require.NotNil(t, l)
	w := writer.New()

	var out []byte
	depth := 0
	for i := 0; ; i++ {
		b := -1
		if i < len(input) {
			b = int(input[i])
		}
		r := l.ReadByte(b)
		if r.Status != sj.StatusSuccess {
			return string(out), r.Status
		}

		switch r.Event {
		case sj.EventStart:
			depth++
		case sj.EventEnd:
			depth--
		case sj.EventDoubleEnd:
			depth -= 2
		}

		to := w.WriteResult(r, l.LastBytes())
		switch to.Prefix {
		case writer.PrefixMemberColon:
			out = append(out, ':')
		case writer.PrefixMemberComma, writer.PrefixArrayComma:
			out = append(out, ',')
		}
		out = append(out, to.Bytes...)

		if depth == 0 && r.Event != sj.EventNothing {
			return string(out), sj.StatusSuccess
		}
	}
}

// TestRoundTripPreservesStructure feeds a document through the streaming
// lexer/writer pair and confirms that decoding the rewritten text with the
// standard library's own json.Unmarshal produces the same value as decoding
// the original, proving the streaming path didn't silently lose or reorder
// anything on the way through. encoding/json shares no code, table, or
// state with lexer/writer, so this is an independent check rather than a
// tautology against the engine under test.
func TestRoundTripPreservesStructure(t *testing.T) {
	docs := []string{
		`null`,
		`true`,
		`false`,
		`42`,
		`-17`,
		`3.25`,
		`1e3`,
		`"hello"`,
		`"line\nbreak"`,
		`"é"`,
		`[]`,
		`{}`,
		`[1,2,3]`,
		`{"a":1,"b":2}`,
		`{"items":[{"id":1},{"id":2}],"ok":true,"note":null}`,
		`[[1,2],[3,4]]`,
		`{"nested":{"deep":{"value":[1,"two",3.0,false]}}}`,
	}

	for _, doc := range docs {
		t.Run(doc, func(t *testing.T) {
			rewritten, status := pipeTerse(t, doc, 64)
			require.Equal(t, sj.StatusSuccess, status, "rewrite of %q failed", doc)

			var original, again interface{}
			require.NoError(t, json.Unmarshal([]byte(doc), &original))
			require.NoError(t, json.Unmarshal([]byte(rewritten), &again), "rewritten text %q did not parse", rewritten)

			assert.Equal(t, original, again)
		})
	}
}

// TestRoundTripStackTooSmall confirms a stack sized for flat documents
// rejects one that nests deeper than it can hold, rather than silently
// truncating or corrupting output.
func TestRoundTripStackTooSmall(t *testing.T) {
	_, status := pipeTerse(t, `[[[[1]]]]`, 3)
	assert.Equal(t, sj.StatusOverflow, status)
}
