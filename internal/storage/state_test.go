package storage_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khadamat/webgate/internal/storage"
)

func newFileStore(t *testing.T) (*storage.FileStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "state.json")
	s, err := storage.NewFileStore(path)
	require.NoError(t, err)
	return s, path
}

func TestFileStore_ReadAbsentKeyIsEmpty(t *testing.T) {
	s, _ := newFileStore(t)

	assert.Empty(t, s.Read(storage.KeyAuthToken))
}

func TestFileStore_WriteThenRead(t *testing.T) {
	s, _ := newFileStore(t)

	require.NoError(t, s.Write(storage.KeyAuthToken, "tok-1"))
	require.NoError(t, s.Write(storage.KeyLanguage, "ar"))

	assert.Equal(t, "tok-1", s.Read(storage.KeyAuthToken))
	assert.Equal(t, "ar", s.Read(storage.KeyLanguage))
}

func TestFileStore_SurvivesReopen(t *testing.T) {
	s, path := newFileStore(t)
	require.NoError(t, s.Write(storage.KeyAuthToken, "tok-2"))
	require.NoError(t, s.Write(storage.KeyLanguage, "en"))

	reopened, err := storage.NewFileStore(path)
	require.NoError(t, err)

	assert.Equal(t, "tok-2", reopened.Read(storage.KeyAuthToken), "state must survive a restart")
	assert.Equal(t, "en", reopened.Read(storage.KeyLanguage))
}

func TestFileStore_DeleteRemovesPersistedKey(t *testing.T) {
	s, path := newFileStore(t)
	require.NoError(t, s.Write(storage.KeyAuthToken, "tok-3"))

	require.NoError(t, s.Delete(storage.KeyAuthToken))
	assert.Empty(t, s.Read(storage.KeyAuthToken))

	reopened, err := storage.NewFileStore(path)
	require.NoError(t, err)
	assert.Empty(t, reopened.Read(storage.KeyAuthToken), "deletion must reach the file")
}

func TestFileStore_DeleteAbsentKeyIsNoop(t *testing.T) {
	s, path := newFileStore(t)

	require.NoError(t, s.Delete("never-written"))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "a pure no-op must not create the file")
}

func TestFileStore_RejectsCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := storage.NewFileStore(path)
	assert.Error(t, err)
}
