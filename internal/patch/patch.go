// Package patch applies the static block rewrite to a file on disk and swaps
// the result into place with a rename.
package patch

import (
	"bufio"
	"errors"
	"fmt"

	"fixstatic/internal/rewrite"
)

const (
	// DefaultSource is the generated bundle being patched, relative to the project root.
	DefaultSource = "node_modules/web-ifc/web-ifc-api-node.js"

	// DefaultTemp receives the rewritten content before it is renamed over DefaultSource.
	DefaultTemp = "/tmp/web-ifc-api-node.js"
)

var (
	ErrSourceUnreadable = errors.New("source unreadable")
	ErrTempWrite        = errors.New("temporary file write failed")
	// ErrReplace leaves the temporary file in place and the source untouched.
	ErrReplace = errors.New("replace failed")
)

// Target names the file to patch and where the rewritten copy is staged.
type Target struct {
	Source string
	Temp   string
}

func DefaultTarget() Target {
	return Target{Source: DefaultSource, Temp: DefaultTemp}
}

// Apply rewrites t.Source into t.Temp, then renames t.Temp over t.Source.
//
// Both files are closed before the rename is attempted. Nothing is cleaned up
// on failure: a partially written temporary file stays where it is.
func Apply(fsys FS, t Target) (rewrite.Stats, error) {
	stats, err := writeTemp(fsys, t)
	if err != nil {
		return stats, err
	}
	if err := fsys.Rename(t.Temp, t.Source); err != nil {
		return stats, fmt.Errorf("%w: %w", ErrReplace, err)
	}
	return stats, nil
}

func writeTemp(fsys FS, t Target) (stats rewrite.Stats, err error) {
	tmp, err := fsys.Create(t.Temp)
	if err != nil {
		return stats, fmt.Errorf("%w: %w", ErrTempWrite, err)
	}
	defer func() {
		if cerr := tmp.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("%w: %w", ErrTempWrite, cerr)
		}
	}()

	src, err := fsys.Open(t.Source)
	if err != nil {
		return stats, fmt.Errorf("%w: %w", ErrSourceUnreadable, err)
	}
	defer src.Close()

	w := bufio.NewWriter(tmp)
	stats, err = rewrite.Rewrite(src, w)
	if err != nil {
		if errors.Is(err, rewrite.ErrWrite) {
			return stats, fmt.Errorf("%w: %w", ErrTempWrite, err)
		}
		return stats, fmt.Errorf("%w: %w", ErrSourceUnreadable, err)
	}
	if err := w.Flush(); err != nil {
		return stats, fmt.Errorf("%w: %w", ErrTempWrite, err)
	}
	return stats, nil
}
