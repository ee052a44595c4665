// Package upload stores files posted by the frontend's Upload element and
// resolves the values the frontend later submits for them.
package upload

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
)

// Upload package errors.
var (
	// ErrInvalidName indicates a file name that cannot be stored.
	ErrInvalidName = errors.New("upload: invalid file name")

	// ErrTooLarge indicates a file over the store's size limit.
	ErrTooLarge = errors.New("upload: file too large")

	// ErrNoFileName indicates an upload value without a file name.
	ErrNoFileName = errors.New("upload: no file name in value")
)

// Store writes uploaded files into a single folder.
type Store struct {
	dir     string
	maxSize int64
}

// NewStore creates dir if needed. A maxSize of zero disables the size limit.
func NewStore(dir string, maxSize int64) (*Store, error) {
	if dir == "" {
		return nil, fmt.Errorf("upload: empty folder")
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("upload: resolve folder: %w", err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("upload: create folder: %w", err)
	}
	return &Store{dir: abs, maxSize: maxSize}, nil
}

// Dir returns the absolute upload folder.
func (s *Store) Dir() string {
	return s.dir
}

// MaxSize returns the size limit in bytes, zero meaning unlimited.
func (s *Store) MaxSize() int64 {
	return s.maxSize
}

// Save stores a multipart file under its base name and returns that name.
func (s *Store) Save(fh *multipart.FileHeader) (string, error) {
	f, err := fh.Open()
	if err != nil {
		return "", fmt.Errorf("upload: open %s: %w", fh.Filename, err)
	}
	defer f.Close()
	return s.SaveReader(fh.Filename, f)
}

// SaveReader stores r under the base name of name, replacing any existing
// file, and returns that name.
func (s *Store) SaveReader(name string, r io.Reader) (string, error) {
	name, err := cleanName(name)
	if err != nil {
		return "", err
	}

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return "", fmt.Errorf("upload: create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	src := r
	if s.maxSize > 0 {
		src = io.LimitReader(r, s.maxSize+1)
	}
	n, err := io.Copy(tmp, src)
	if cerr := tmp.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return "", fmt.Errorf("upload: write %s: %w", name, err)
	}
	if s.maxSize > 0 && n > s.maxSize {
		return "", fmt.Errorf("%w: %s exceeds %d bytes", ErrTooLarge, name, s.maxSize)
	}

	if err := os.Rename(tmp.Name(), filepath.Join(s.dir, name)); err != nil {
		return "", fmt.Errorf("upload: store %s: %w", name, err)
	}
	return name, nil
}

// Location returns the path of a stored file.
func (s *Store) Location(name string) (string, error) {
	name, err := cleanName(name)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.dir, name), nil
}

// Resolve returns the stored path for an upload value submitted by the
// frontend. See FileName for the accepted shapes.
func (s *Store) Resolve(raw []byte) (string, error) {
	name, ok := FileName(raw)
	if !ok {
		return "", ErrNoFileName
	}
	return s.Location(name)
}

func cleanName(name string) (string, error) {
	base := filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	switch base {
	case "", ".", "..", "/":
		return "", fmt.Errorf("%w: %q", ErrInvalidName, name)
	}
	return base, nil
}
