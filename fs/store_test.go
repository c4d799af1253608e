package fs_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/dosTaiyaki/linklist"
	"github.com/dosTaiyaki/linklist/fs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Story: File-backed key-value storage
// Each key lives in its own JSON file and is replaced atomically.

func TestStore_GetMissingKey(t *testing.T) {
	t.Parallel()

	// Given an empty directory
	store := fs.NewStore(t.TempDir())

	// When I read a key that was never set
	_, err := store.Get(context.Background(), linklist.DefaultKey)

	// Then ENOTFOUND is returned
	assert.Equal(t, linklist.ENOTFOUND, linklist.ErrorCode(err))
}

func TestStore_SetThenGet(t *testing.T) {
	t.Parallel()

	// Given a store in a directory that does not exist yet
	dir := filepath.Join(t.TempDir(), "nested", "linklist")
	store := fs.NewStore(dir)

	// When I set a value and read it back
	require.NoError(t, store.Set(context.Background(), "links", []byte(`[1]`)))
	got, err := store.Get(context.Background(), "links")

	// Then the value is returned
	require.NoError(t, err)
	assert.Equal(t, []byte(`[1]`), got)

	// And it is stored in <dir>/<key>.json
	data, err := os.ReadFile(filepath.Join(dir, "links.json"))
	require.NoError(t, err)
	assert.Equal(t, `[1]`, string(data))
}

func TestStore_SetReplacesWithoutLeftovers(t *testing.T) {
	t.Parallel()

	// Given a key with an existing value
	dir := t.TempDir()
	store := fs.NewStore(dir)
	require.NoError(t, store.Set(context.Background(), "links", []byte(`["old","longer value"]`)))

	// When I overwrite it with a shorter value
	require.NoError(t, store.Set(context.Background(), "links", []byte(`[]`)))

	// Then only the new content remains
	got, err := store.Get(context.Background(), "links")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(got))

	// And no temporary files are left behind
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "links.json", entries[0].Name())
}

func TestStore_RejectsUnsafeKeys(t *testing.T) {
	t.Parallel()

	store := fs.NewStore(t.TempDir())

	for _, key := range []string{"", ".", "..", "../escape", `a\b`, "a/b"} {
		err := store.Set(context.Background(), key, []byte(`[]`))
		assert.Equal(t, linklist.EINVALID, linklist.ErrorCode(err), "key %q", key)

		_, err = store.Get(context.Background(), key)
		assert.Equal(t, linklist.EINVALID, linklist.ErrorCode(err), "key %q", key)
	}
}

func TestStore_HonorsCanceledContext(t *testing.T) {
	t.Parallel()

	store := fs.NewStore(t.TempDir())
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, store.Set(ctx, "links", []byte(`[]`)), context.Canceled)
	_, err := store.Get(ctx, "links")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestWriteFile(t *testing.T) {
	t.Parallel()

	t.Run("creates parent directories", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "a", "b", "export.json")
		require.NoError(t, fs.WriteFile(path, []byte("data")))

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "data", string(data))
	})

	t.Run("fails when the target is a directory", func(t *testing.T) {
		t.Parallel()

		dir := t.TempDir()
		require.NoError(t, os.Mkdir(filepath.Join(dir, "taken"), 0755))

		err := fs.WriteFile(filepath.Join(dir, "taken"), []byte("data"))
		require.Error(t, err)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)
		assert.Len(t, entries, 1)
	})
}
