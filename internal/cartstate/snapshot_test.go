package cartstate_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vogelpark/storefront/internal/cartstate"
)

func newFileStore(t *testing.T, path string) *cartstate.FileSnapshotStore {
	t.Helper()
	store, err := cartstate.NewFileSnapshotStore(path)
	require.NoError(t, err)
	return store
}

func TestNewFileSnapshotStoreRequiresPath(t *testing.T) {
	_, err := cartstate.NewFileSnapshotStore("")
	assert.Error(t, err)
}

func TestFileSnapshotStoreRoundtrip(t *testing.T) {
	store := newFileStore(t, filepath.Join(t.TempDir(), "state", "cart.json"))

	_, ok, err := store.Load()
	require.NoError(t, err)
	assert.False(t, ok, "missing file should read as absent")

	require.NoError(t, store.Save(`[{"idproducts":"a","quantity":2}]`))

	value, ok, err := store.Load()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, `[{"idproducts":"a","quantity":2}]`, value)
}

func TestFileSnapshotStoreSaveOverwrites(t *testing.T) {
	store := newFileStore(t, filepath.Join(t.TempDir(), "cart.json"))

	require.NoError(t, store.Save("first"))
	require.NoError(t, store.Save("second"))

	value, ok, err := store.Load()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "second", value)
}

func TestFileSnapshotStoreSaveLeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	store := newFileStore(t, filepath.Join(dir, "cart.json"))

	require.NoError(t, store.Save("[]"))

	names, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, names, 1)
	assert.Equal(t, "cart.json", names[0].Name())
}

func TestFileSnapshotStoreClear(t *testing.T) {
	store := newFileStore(t, filepath.Join(t.TempDir(), "cart.json"))

	// clearing a snapshot that never existed is fine
	require.NoError(t, store.Clear())

	require.NoError(t, store.Save("[]"))
	require.NoError(t, store.Clear())

	_, ok, err := store.Load()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemorySnapshotStore(t *testing.T) {
	store := cartstate.NewMemorySnapshotStore()

	_, ok, err := store.Load()
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, store.Save("[]"))

	value, ok, err := store.Load()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "[]", value)

	require.NoError(t, store.Clear())

	_, ok, err = store.Load()
	require.NoError(t, err)
	assert.False(t, ok)
}
