// Package fsutil narrows the filesystem down to the calls the snapshot
// writer makes, so exports can be tested without touching disk.
package fsutil

import (
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// FS is the surface the snapshot writer works against. DiskFS is the real
// thing; MemFS keeps everything in memory for tests.
type FS interface {
	// WriteFile writes data to the named file, creating it if necessary.
	WriteFile(name string, data []byte, perm os.FileMode) error

	// MkdirAll creates a directory and all necessary parents.
	MkdirAll(path string, perm os.FileMode) error

	// ReadFile returns the contents of the named file.
	ReadFile(name string) ([]byte, error)

	// Exists reports whether a file or directory exists.
	Exists(name string) bool
}

// DiskFS passes every call straight through to the os package.
type DiskFS struct{}

func (DiskFS) WriteFile(name string, data []byte, perm os.FileMode) error {
	return os.WriteFile(name, data, perm)
}

func (DiskFS) MkdirAll(path string, perm os.FileMode) error {
	return os.MkdirAll(path, perm)
}

func (DiskFS) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(name)
}

func (DiskFS) Exists(name string) bool {
	_, err := os.Stat(name)
	return err == nil
}

// MemFS holds written files in memory. Paths are cleaned on every call, so
// "a//b" and "a/b" name the same file. Permission bits are accepted and
// discarded.
type MemFS struct {
	mu    sync.Mutex
	blobs map[string][]byte
	dirs  map[string]bool
}

// NewMemFS returns an empty in-memory filesystem.
func NewMemFS() *MemFS {
	return &MemFS{
		blobs: make(map[string][]byte),
		dirs:  make(map[string]bool),
	}
}

func (m *MemFS) WriteFile(name string, data []byte, _ os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[filepath.Clean(name)] = append([]byte(nil), data...)
	return nil
}

func (m *MemFS) MkdirAll(path string, _ os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for p := filepath.Clean(path); p != "."; {
		m.dirs[p] = true
		parent := filepath.Dir(p)
		if parent == p {
			break
		}
		p = parent
	}
	return nil
}

func (m *MemFS) ReadFile(name string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.blobs[filepath.Clean(name)]
	if !ok {
		return nil, &fs.PathError{Op: "open", Path: name, Err: fs.ErrNotExist}
	}
	return append([]byte(nil), data...), nil
}

func (m *MemFS) Exists(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	name = filepath.Clean(name)
	_, ok := m.blobs[name]
	return ok || m.dirs[name]
}
