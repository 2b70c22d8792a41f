package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

var ErrInvalidFilename = errors.New("invalid filename")

// IOError reports a failed write to the blob directory (disk full, permissions...).
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("write %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// FileStore keeps uploaded resumes as plain files under Root.
type FileStore struct {
	Root string
}

// NewFileStore creates root if needed.
func NewFileStore(root string) (*FileStore, error) {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, &IOError{Path: root, Err: err}
	}
	return &FileStore{Root: root}, nil
}

// Save writes content to Root/<base name of filename> and returns that path.
// An existing file with the same name is overwritten.
func (s *FileStore) Save(ctx context.Context, filename string, content io.Reader) (string, error) {
	name, err := sanitizeFilename(filename)
	if err != nil {
		return "", err
	}
	if err := ctx.Err(); err != nil {
		return "", err
	}

	path := filepath.Join(s.Root, name)

	f, err := os.Create(path)
	if err != nil {
		return "", &IOError{Path: path, Err: err}
	}

	if _, err := io.Copy(f, content); err != nil {
		f.Close()
		return "", &IOError{Path: path, Err: err}
	}
	if err := f.Close(); err != nil {
		return "", &IOError{Path: path, Err: err}
	}

	return path, nil
}

// Exists reports whether a blob previously returned by Save is present.
func (s *FileStore) Exists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.Mode().IsRegular()
}

func sanitizeFilename(filename string) (string, error) {
	// clients may send Windows paths; treat both separators as directory boundaries
	name := strings.ReplaceAll(filename, `\`, "/")
	name = filepath.Base(filepath.FromSlash(name))
	name = strings.TrimSpace(name)

	switch name {
	case "", ".", "..", string(filepath.Separator):
		return "", fmt.Errorf("%w: %q", ErrInvalidFilename, filename)
	}
	return name, nil
}
