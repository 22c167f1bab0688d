package patch

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"sync"
)

// FS abstracts the three filesystem operations a patch needs.
type FS interface {
	Open(name string) (io.ReadCloser, error)
	Create(name string) (io.WriteCloser, error)
	Rename(oldpath, newpath string) error
}

// OSFS implements FS on the real filesystem.
type OSFS struct{}

func (OSFS) Open(name string) (io.ReadCloser, error) {
	return os.Open(name)
}

// Create truncates or creates name for writing.
func (OSFS) Create(name string) (io.WriteCloser, error) {
	return os.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, 0o644)
}

func (OSFS) Rename(oldpath, newpath string) error {
	return os.Rename(oldpath, newpath)
}

// MemFS implements FS in memory (no disk I/O). Files become visible on Close,
// and Rename swaps the content in a single step.
type MemFS struct {
	mu    sync.Mutex
	files map[string][]byte

	// Fault injection, keyed by operation.
	OpenErr   error
	CreateErr error
	WriteErr  error
	RenameErr error
}

func NewMemFS() *MemFS {
	return &MemFS{files: make(map[string][]byte)}
}

// WriteFile stores a copy of data under name.
func (m *MemFS) WriteFile(name string, data []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.files[name] = append([]byte(nil), data...)
}

// ReadFile returns a copy of the content stored under name.
func (m *MemFS) ReadFile(name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[name]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return append([]byte(nil), data...), nil
}

// Exists reports whether name is present.
func (m *MemFS) Exists(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.files[name]
	return ok
}

func (m *MemFS) Open(name string) (io.ReadCloser, error) {
	if m.OpenErr != nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: m.OpenErr}
	}
	data, err := m.ReadFile(name)
	if err != nil {
		return nil, err
	}
	return io.NopCloser(bytes.NewReader(data)), nil
}

func (m *MemFS) Create(name string) (io.WriteCloser, error) {
	if m.CreateErr != nil {
		return nil, &fs.PathError{Op: "open", Path: name, Err: m.CreateErr}
	}
	m.WriteFile(name, nil)
	return &memFile{fs: m, name: name}, nil
}

func (m *MemFS) Rename(oldpath, newpath string) error {
	if m.RenameErr != nil {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: m.RenameErr}
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.files[oldpath]
	if !ok {
		return &os.LinkError{Op: "rename", Old: oldpath, New: newpath, Err: fs.ErrNotExist}
	}
	m.files[newpath] = data
	delete(m.files, oldpath)
	return nil
}

type memFile struct {
	fs     *MemFS
	name   string
	buf    bytes.Buffer
	closed bool
}

func (f *memFile) Write(p []byte) (int, error) {
	if f.closed {
		return 0, fs.ErrClosed
	}
	if f.fs.WriteErr != nil {
		return 0, fmt.Errorf("write %s: %w", f.name, f.fs.WriteErr)
	}
	return f.buf.Write(p)
}

func (f *memFile) Close() error {
	if f.closed {
		return fs.ErrClosed
	}
	f.closed = true
	f.fs.WriteFile(f.name, f.buf.Bytes())
	return nil
}
