package main

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sj "github.com/mcvoid/streamjson"
	"github.com/mcvoid/streamjson/writer"
)

func TestPipeStateUpdateDepth(t *testing.T) {
	p := &pipeState{}

	assert.False(t, p.updateDepth(sj.Result{Event: sj.EventStart}))
	assert.Equal(t, 1, p.depth)

	assert.False(t, p.updateDepth(sj.Result{Event: sj.EventStart}))
	assert.Equal(t, 2, p.depth)

	assert.False(t, p.updateDepth(sj.Result{Event: sj.EventEnd}))
	assert.Equal(t, 1, p.depth)

	assert.True(t, p.updateDepth(sj.Result{Event: sj.EventEnd}))
	assert.Equal(t, 0, p.depth)
}

func TestPipeStateUpdateDepthDoubleEnd(t *testing.T) {
	p := &pipeState{depth: 2}
	assert.True(t, p.updateDepth(sj.Result{Event: sj.EventDoubleEnd}))
	assert.Equal(t, 0, p.depth)
}

func TestWriteOutputTerseOmitsNewlines(t *testing.T) {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)

	require.NoError(t, writeOutput(w, writer.TextOutput{Prefix: writer.PrefixArrayStart, Depth: 1, Bytes: []byte("[")}, true))
	require.NoError(t, writeOutput(w, writer.TextOutput{Prefix: writer.PrefixArrayComma, Depth: 1, Bytes: []byte("2")}, true))
	require.NoError(t, w.Flush())

	assert.Equal(t, "[,2", buf.String())
}

func TestWriteOutputPrettyAddsNewlinesAndIndent(t *testing.T) {
	var buf bytes.Buffer
	w := bufio.NewWriter(&buf)

	require.NoError(t, writeOutput(w, writer.TextOutput{Prefix: writer.PrefixObjectStart, Depth: 1, Bytes: []byte("{")}, false))
	require.NoError(t, writeOutput(w, writer.TextOutput{Prefix: writer.PrefixMemberColon, Depth: 1, Bytes: []byte("1")}, false))
	require.NoError(t, w.Flush())

	assert.Equal(t, "\n  {: 1", buf.String())
}

func TestPipeExitCodes(t *testing.T) {
	t.Run("single value succeeds", func(t *testing.T) {
		var out bytes.Buffer
		code := pipe(strings.NewReader(`{"a":1}`), &out, 64, true)
		assert.Equal(t, 0, code)
		// The pipe tool appends one newline per completed top-level value,
		// even in terse mode; only the internal indentation is suppressed.
		assert.Equal(t, "{\"a\":1}\n", out.String())
	})

	t.Run("empty input is a data error", func(t *testing.T) {
		var out bytes.Buffer
		code := pipe(strings.NewReader(``), &out, 64, true)
		assert.Equal(t, exDataErr, code)
	})

	t.Run("unterminated object is a data error", func(t *testing.T) {
		// No top-level value ever completes, so this takes the
		// zero-values branch rather than reporting the underlying
		// StatusNoData a trailing EOF produces.
		var out bytes.Buffer
		code := pipe(strings.NewReader(`{`), &out, 64, true)
		assert.Equal(t, exDataErr, code)
	})

	t.Run("overflow after a complete value reports shifted status", func(t *testing.T) {
		// The first "[1]" fully completes (one level of array, one of
		// number fits in a stack of 3), so numValues is already 1 when
		// the second value's extra nesting overflows; that earns the
		// precise int(status)+100 exit code instead of exDataErr.
		var out bytes.Buffer
		code := pipe(strings.NewReader(`[1][[2]]`), &out, 3, true)
		assert.Equal(t, int(sj.StatusOverflow)+100, code)
	})
}
