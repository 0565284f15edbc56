// Package storage provides the file-system capability used by the exporter.
// Every component that touches files receives a Provider instead of reaching for
// the os package, so exports can run against an in-memory file system in tests.
package storage

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"

	billy "github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
)

// Provider is the file-system capability.
type Provider interface {
	Exists(path string) (bool, error)
	IsDir(path string) bool
	// List returns the names of the regular files in dir, sorted.
	List(dir string) ([]string, error)
	MkdirAll(path string) error
	ReadFile(path string) ([]byte, error)
	WriteFile(path string, data []byte) error
	Move(src, dst string) error
	Copy(src, dst string) error
	Remove(path string) error
	RemoveAll(path string) error
}

// FS implements Provider on top of a billy file system.
type FS struct {
	fs billy.Filesystem
}

// New wraps a billy file system.
func New(fs billy.Filesystem) *FS {
	return &FS{fs: fs}
}

// NewOS returns a Provider for the host file system.
func NewOS() *FS {
	return New(osfs.New("/"))
}

// NewMemory returns a Provider backed by an in-memory file system.
func NewMemory() *FS {
	return New(memfs.New())
}

func abs(path string) string {
	if p, err := filepath.Abs(path); err == nil {
		return p
	}
	return filepath.Clean(path)
}

// Exists reports whether path exists.
func (s *FS) Exists(path string) (bool, error) {
	_, err := s.fs.Stat(abs(path))
	if err == nil {
		return true, nil
	}
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	return false, err
}

// IsDir reports whether path is an existing directory.
func (s *FS) IsDir(path string) bool {
	fi, err := s.fs.Stat(abs(path))
	return err == nil && fi.IsDir()
}

// List returns the names of the regular files in dir, sorted.
func (s *FS) List(dir string) ([]string, error) {
	entries, err := s.fs.ReadDir(abs(dir))
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// MkdirAll creates path and its parents.
func (s *FS) MkdirAll(path string) error {
	return s.fs.MkdirAll(abs(path), 0o750)
}

// ReadFile reads a whole file.
func (s *FS) ReadFile(path string) ([]byte, error) {
	return util.ReadFile(s.fs, abs(path))
}

// WriteFile writes data to path, creating parent directories.
func (s *FS) WriteFile(path string, data []byte) error {
	p := abs(path)
	if err := s.fs.MkdirAll(filepath.Dir(p), 0o750); err != nil {
		return fmt.Errorf("create parent of %s: %w", path, err)
	}
	return util.WriteFile(s.fs, p, data, 0o640)
}

// create truncates or creates path for writing, creating parent directories.
func (s *FS) create(path string) (io.WriteCloser, error) {
	p := abs(path)
	if err := s.fs.MkdirAll(filepath.Dir(p), 0o750); err != nil {
		return nil, fmt.Errorf("create parent of %s: %w", path, err)
	}
	return s.fs.Create(p)
}

// Move renames src to dst, replacing dst. When a rename is not possible the file
// is copied and the source removed.
func (s *FS) Move(src, dst string) error {
	from, to := abs(src), abs(dst)
	if err := s.fs.MkdirAll(filepath.Dir(to), 0o750); err != nil {
		return fmt.Errorf("create parent of %s: %w", dst, err)
	}
	if err := s.fs.Rename(from, to); err == nil {
		return nil
	}
	if err := s.Copy(from, to); err != nil {
		return fmt.Errorf("move %s: %w", src, err)
	}
	return s.fs.Remove(from)
}

// Copy copies the file src to dst, creating parent directories.
func (s *FS) Copy(src, dst string) error {
	in, err := s.fs.Open(abs(src))
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer func() { _ = in.Close() }()

	out, err := s.create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return fmt.Errorf("copy %s: %w", src, err)
	}
	return out.Close()
}

// Remove deletes a file or an empty directory.
func (s *FS) Remove(path string) error {
	return s.fs.Remove(abs(path))
}

// RemoveAll deletes path and everything below it.
func (s *FS) RemoveAll(path string) error {
	return util.RemoveAll(s.fs, abs(path))
}

var _ Provider = (*FS)(nil)
