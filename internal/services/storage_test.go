package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSpoolWritesAndReleases(t *testing.T) {
	storage := NewStorageService(t.TempDir())

	path, release, err := storage.Spool([]byte("%PDF-1.4"))
	require.NoError(t, err)
	assert.Equal(t, storage.Dir(), filepath.Dir(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4", string(data))

	release()
	release()

	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestSpoolMissingDirectory(t *testing.T) {
	storage := NewStorageService(filepath.Join(t.TempDir(), "missing"))

	_, release, err := storage.Spool([]byte("x"))
	require.Error(t, err)
	release()

	require.NoError(t, storage.EnsureUploadDir())
	path, release, err := storage.Spool([]byte("x"))
	require.NoError(t, err)
	defer release()
	assert.FileExists(t, path)
}
