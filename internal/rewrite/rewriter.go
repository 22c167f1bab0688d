package rewrite

import (
	"strings"
	"unicode/utf8"
)

const (
	// BlockStartMarker opens the static initializer block that gets collapsed.
	BlockStartMarker = "static {"

	// MemberMarker introduces the member assignment kept from inside the block.
	MemberMarker = "this."

	// ReplacementPrefix starts the emitted line, followed by a single space.
	ReplacementPrefix = "static"
)

// State is the position of a Rewriter in the static block pattern.
type State int

const (
	Reading State = iota
	CapturingStatic
	EmitCaptured
)

func (s State) String() string {
	switch s {
	case Reading:
		return "reading"
	case CapturingStatic:
		return "capturing-static"
	case EmitCaptured:
		return "emit-captured"
	default:
		return "unknown"
	}
}

// Rewriter collapses a static initializer block into a single static field line.
//
// Lines between the block start and the member assignment are dropped on purpose,
// and so is the one line following the assignment (usually the closing brace).
type Rewriter struct {
	state    State
	captured string
}

// New returns a Rewriter in the Reading state.
func New() *Rewriter {
	return &Rewriter{state: Reading}
}

// Next consumes one line, terminator included, and returns the text to write if any.
func (rw *Rewriter) Next(line string) (string, bool) {
	switch rw.state {
	case Reading:
		idx := strings.Index(line, BlockStartMarker)
		if idx < 0 {
			return line, true
		}
		// one column per character preceding the marker
		indent := strings.Repeat(" ", utf8.RuneCountInString(line[:idx]))
		rw.captured = indent + ReplacementPrefix + " "
		rw.state = CapturingStatic
		return "", false

	case CapturingStatic:
		idx := strings.Index(line, MemberMarker)
		if idx < 0 {
			return "", false
		}
		rw.captured += line[idx+len(MemberMarker):]
		rw.state = EmitCaptured
		return "", false

	case EmitCaptured:
		out := rw.captured
		rw.captured = ""
		rw.state = Reading
		return out, true
	}
	return "", false
}

// State reports the current state.
func (rw *Rewriter) State() State {
	return rw.state
}

// Pending returns the fragment captured so far, empty while Reading.
func (rw *Rewriter) Pending() string {
	return rw.captured
}
