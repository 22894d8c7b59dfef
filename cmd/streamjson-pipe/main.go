// Command streamjson-pipe reads a JSON document byte by byte through
// package lexer and writes it back out through package writer, the
// reference driver for the streaming reader/writer pair.
//
// Grounded on _examples/original_source/tools/sajs-pipe.c: the flags,
// output formatting, and exit codes below are a direct port of that
// tool's parse_args/write_prefix/run functions, with cobra doing the
// argument parsing the original hand-rolls.
package main

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	sj "github.com/mcvoid/streamjson"
	"github.com/mcvoid/streamjson/lexer"
	"github.com/mcvoid/streamjson/writer"
)

const defaultStackSize = 1024

// exDataErr mirrors the BSD sysexits.h EX_DATAERR code the original tool
// returns when the input holds zero or more than one top-level value.
const exDataErr = 65

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	var (
		outPath   string
		terse     bool
		stackSize int
	)

	exitCode := 0

	cmd := &cobra.Command{
		Use:           "streamjson-pipe [input]",
		Short:         "Read and write JSON through the streaming lexer/writer pair",
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, cmdArgs []string) error {
			in := os.Stdin
			if len(cmdArgs) == 1 {
				f, err := os.Open(cmdArgs[0])
				if err != nil {
					return fmt.Errorf("failed to open input: %w", err)
				}
				defer f.Close()
				in = f
			}

			out := io.Writer(os.Stdout)
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("failed to open output: %w", err)
				}
				defer f.Close()
				out = f
			}

			if stackSize <= 0 {
				return fmt.Errorf("invalid stack size %d", stackSize)
			}

			exitCode = pipe(in, out, stackSize, terse)
			return nil
		},
	}

	cmd.Flags().StringVarP(&outPath, "output", "o", "", "write output to FILE instead of stdout")
	cmd.Flags().BoolVarP(&terse, "terse", "t", false, "write terse output without newlines")
	cmd.Flags().IntVarP(&stackSize, "stack-size", "k", defaultStackSize, "bytes of nesting stack to allocate")
	cmd.SetArgs(args)

	if err := cmd.Execute(); err != nil {
		log.Error().Err(err).Msg("streamjson-pipe")
		return 1
	}
	return exitCode
}

// pipeState tracks the bits of mutable state run() needs across bytes that
// aren't already held by the lexer or writer: container nesting depth (for
// indentation) and how many complete top-level values have been seen.
type pipeState struct {
	depth     int
	numValues int
	terse     bool
}

// updateDepth adjusts depth for a Start/End/DoubleEnd event and reports
// whether this step closed the outermost, top-level value.
func (p *pipeState) updateDepth(r sj.Result) bool {
	switch r.Event {
	case sj.EventStart:
		p.depth++
	case sj.EventEnd:
		p.depth--
		return p.depth == 0
	case sj.EventDoubleEnd:
		p.depth -= 2
		return p.depth == 0
	}
	return false
}

func pipe(in io.Reader, out io.Writer, stackSize int, terse bool) int {
	stack := make([]byte, stackSize)
	l := lexer.New(stack)
	if l == nil {
		log.Error().Msg("stack too small")
		return int(sj.StatusOverflow) + 100
	}

	w := writer.New()
	state := &pipeState{terse: terse}
	bw := bufio.NewWriter(out)
	r := bufio.NewReader(in)

	status := sj.StatusSuccess
	offset := 0
	for status == sj.StatusSuccess {
		c, err := r.ReadByte()
		b := -1
		if err == nil {
			b = int(c)
		} else if err != io.EOF {
			log.Error().Err(err).Int("offset", offset).Msg("read failed")
			return int(sj.StatusBadWrite) + 100
		}

		result := l.ReadByte(b)
		status = result.Status
		offset++
		if status != sj.StatusSuccess {
			break
		}

		isTopEnd := state.updateDepth(result)
		textOut := w.WriteResult(result, l.LastBytes())
		if err := writeOutput(bw, textOut, state.terse); err != nil {
			log.Error().Err(err).Int("offset", offset).Msg("write failed")
			return int(sj.StatusBadWrite) + 100
		}

		if isTopEnd {
			state.numValues++
			if _, err := bw.WriteString("\n"); err != nil {
				log.Error().Err(err).Msg("write failed")
				return int(sj.StatusBadWrite) + 100
			}
		}
	}

	if status > sj.StatusFailure {
		log.Error().Int("offset", offset).Str("status", status.String()).Msg("parse error")
	}

	if err := bw.Flush(); err != nil {
		log.Error().Err(err).Msg("flush failed")
		return int(sj.StatusBadWrite) + 100
	}

	switch {
	case state.numValues != 1:
		return exDataErr
	case status == sj.StatusFailure:
		return 0
	default:
		return int(status) + 100
	}
}

// writeNewline writes a newline followed by two spaces of indentation per
// level of depth.
func writeNewline(w *bufio.Writer, depth int) error {
	if err := w.WriteByte('\n'); err != nil {
		return err
	}
	for i := 0; i < depth; i++ {
		if _, err := w.WriteString("  "); err != nil {
			return err
		}
	}
	return nil
}

// writePrefix writes the delimiter and whitespace implied by a TextOutput's
// Prefix, in normal or terse mode.
func writePrefix(w *bufio.Writer, out writer.TextOutput, terse bool) error {
	switch out.Prefix {
	case writer.PrefixNone:
		return nil

	case writer.PrefixObjectStart, writer.PrefixArrayStart, writer.PrefixObjectEnd, writer.PrefixArrayEnd:
		if terse {
			return nil
		}
		return writeNewline(w, out.Depth)

	case writer.PrefixMemberColon:
		if terse {
			return w.WriteByte(':')
		}
		_, err := w.WriteString(": ")
		return err

	case writer.PrefixMemberComma, writer.PrefixArrayComma:
		if err := w.WriteByte(','); err != nil {
			return err
		}
		if terse {
			return nil
		}
		return writeNewline(w, out.Depth)
	}
	return nil
}

// writeOutput writes one TextOutput fragment, prefix then bytes.
func writeOutput(w *bufio.Writer, out writer.TextOutput, terse bool) error {
	if err := writePrefix(w, out, terse); err != nil {
		return err
	}
	if len(out.Bytes) == 0 {
		return nil
	}
	_, err := w.Write(out.Bytes)
	return err
}

func init() {
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}
