package storage_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nadcreations/invoicious/internal/storage"
)

func setup(t *testing.T) *storage.SnapshotStore {
	t.Helper()
	store, err := storage.NewSnapshotStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })
	return store
}

func TestSaveAndLoad(t *testing.T) {
	store := setup(t)

	require.NoError(t, store.Save(storage.KeyClients, []byte(`[{"name":"Acme"}]`)))

	data, err := store.Load(storage.KeyClients)
	require.NoError(t, err)
	assert.Equal(t, `[{"name":"Acme"}]`, string(data))
}

func TestSaveOverwrites(t *testing.T) {
	store := setup(t)

	require.NoError(t, store.Save(storage.KeyInvoices, []byte(`[1]`)))
	require.NoError(t, store.Save(storage.KeyInvoices, []byte(`[1,2]`)))

	data, err := store.Load(storage.KeyInvoices)
	require.NoError(t, err)
	assert.Equal(t, `[1,2]`, string(data))
}

func TestLoadMissingKey(t *testing.T) {
	store := setup(t)

	data, err := store.Load("never-saved")
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestDelete(t *testing.T) {
	store := setup(t)

	require.NoError(t, store.Save(storage.KeyProjects, []byte(`[]`)))
	require.NoError(t, store.Delete(storage.KeyProjects))

	data, err := store.Load(storage.KeyProjects)
	require.NoError(t, err)
	assert.Nil(t, data)
}

func TestDeleteAll(t *testing.T) {
	store := setup(t)

	keys := []string{storage.KeyClients, storage.KeyInvoices, storage.KeyTimeEntries}
	for _, key := range keys {
		require.NoError(t, store.Save(key, []byte(`[]`)))
	}

	require.NoError(t, store.DeleteAll())

	for _, key := range keys {
		data, err := store.Load(key)
		require.NoError(t, err)
		assert.Nil(t, data, "key %s should be gone", key)
	}
}

func TestFileBackedStoreCreatesParentDirs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "ledger.db")

	store, err := storage.NewSnapshotStore(path)
	require.NoError(t, err)
	defer store.Close()

	require.NoError(t, store.Save(storage.KeyBusinessInfo, []byte(`{}`)))

	data, err := store.Load(storage.KeyBusinessInfo)
	require.NoError(t, err)
	assert.Equal(t, `{}`, string(data))
}
