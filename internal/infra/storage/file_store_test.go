package storage

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileStoreSave(t *testing.T) {
	root := filepath.Join(t.TempDir(), "resumes")
	store, err := NewFileStore(root)
	require.NoError(t, err)

	content := []byte("%PDF-1.4 jane doe resume")
	path, err := store.Save(context.Background(), "cv.pdf", bytes.NewReader(content))
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "cv.pdf"), path)
	assert.True(t, store.Exists(path))

	stored, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, content, stored)
}

func TestFileStoreSaveOverwrites(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	first, err := store.Save(context.Background(), "cv.pdf", bytes.NewReader([]byte("first version")))
	require.NoError(t, err)
	second, err := store.Save(context.Background(), "cv.pdf", bytes.NewReader([]byte("v2")))
	require.NoError(t, err)

	assert.Equal(t, first, second)
	stored, err := os.ReadFile(second)
	require.NoError(t, err)
	assert.Equal(t, "v2", string(stored))
}

func TestFileStoreSaveStripsDirectories(t *testing.T) {
	root := t.TempDir()
	store, err := NewFileStore(root)
	require.NoError(t, err)

	for _, name := range []string{"../../etc/passwd", `..\..\boot.ini`, "/abs/path/cv.pdf"} {
		path, err := store.Save(context.Background(), name, bytes.NewReader([]byte("x")))
		require.NoError(t, err, name)
		assert.Equal(t, root, filepath.Dir(path), name)
	}
}

func TestFileStoreSaveRejectsEmptyNames(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	for _, name := range []string{"", "  ", ".", "..", "/", "dir/.."} {
		_, err := store.Save(context.Background(), name, bytes.NewReader(nil))
		assert.ErrorIs(t, err, ErrInvalidFilename, "name %q", name)
	}
}

func TestFileStoreSaveIOError(t *testing.T) {
	root := t.TempDir()
	store, err := NewFileStore(root)
	require.NoError(t, err)

	// a directory in the way of the target file makes the create fail
	require.NoError(t, os.Mkdir(filepath.Join(root, "taken"), 0o755))

	_, err = store.Save(context.Background(), "taken", bytes.NewReader([]byte("x")))
	var ioErr *IOError
	require.True(t, errors.As(err, &ioErr), "expected IOError, got %v", err)
	assert.Equal(t, filepath.Join(root, "taken"), ioErr.Path)
}

func TestFileStoreSaveCanceled(t *testing.T) {
	store, err := NewFileStore(t.TempDir())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err = store.Save(ctx, "cv.pdf", bytes.NewReader([]byte("x")))
	assert.ErrorIs(t, err, context.Canceled)
}
