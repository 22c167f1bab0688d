package rewrite

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
)

// MaxLineSize bounds a single line. Generated bundles can carry very long minified lines.
const MaxLineSize = 512 * 1024 * 1024

var (
	// ErrRead wraps failures reading the input stream.
	ErrRead = errors.New("read input")
	// ErrWrite wraps failures writing the output stream.
	ErrWrite = errors.New("write output")
)

// Stats describes a completed pass.
type Stats struct {
	LinesRead    int
	LinesWritten int
	Rewrites     int
	// Final is the state at end of input. Anything but Reading means a
	// block was left open and its lines were discarded.
	Final State
}

// Rewrite streams r through a Rewriter and writes every emitted line to w.
// Line terminators are kept as they are in the input.
func Rewrite(r io.Reader, w io.Writer) (Stats, error) {
	var stats Stats

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), MaxLineSize)
	scanner.Split(ScanLinesKeepEOL)

	rw := New()
	for scanner.Scan() {
		stats.LinesRead++
		before := rw.State()
		out, ok := rw.Next(scanner.Text())
		if !ok {
			continue
		}
		if before == EmitCaptured {
			stats.Rewrites++
		}
		if _, err := io.WriteString(w, out); err != nil {
			stats.Final = rw.State()
			return stats, fmt.Errorf("%w: %w", ErrWrite, err)
		}
		stats.LinesWritten++
	}
	stats.Final = rw.State()
	if err := scanner.Err(); err != nil {
		return stats, fmt.Errorf("%w: %w", ErrRead, err)
	}
	return stats, nil
}

// ScanLinesKeepEOL is a bufio.SplitFunc like bufio.ScanLines that leaves the
// trailing "\n" (and any "\r" before it) on the token.
func ScanLinesKeepEOL(data []byte, atEOF bool) (advance int, token []byte, err error) {
	if atEOF && len(data) == 0 {
		return 0, nil, nil
	}
	if i := bytes.IndexByte(data, '\n'); i >= 0 {
		return i + 1, data[:i+1], nil
	}
	if atEOF {
		return len(data), data, nil
	}
	return 0, nil, nil
}
