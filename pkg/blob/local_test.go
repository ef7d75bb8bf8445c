package blob

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorePutAndDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, "http://localhost:3000")
	require.NoError(t, err)

	ref, err := store.Put(context.Background(), []byte("file body"), "notes.txt")
	require.NoError(t, err)
	assert.Equal(t, ".txt", filepath.Ext(ref), "ref keeps the original extension")

	data, err := os.ReadFile(filepath.Join(dir, ref))
	require.NoError(t, err)
	assert.Equal(t, "file body", string(data))

	require.NoError(t, store.Delete(context.Background(), ref))
	_, err = os.Stat(filepath.Join(dir, ref))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStoreDeleteMissingIsNoop(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "http://localhost:3000")
	require.NoError(t, err)

	assert.NoError(t, store.Delete(context.Background(), "does-not-exist.pdf"))
}

func TestLocalStoreDeleteRejectsPathTraversal(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStore(dir, "http://localhost:3000")
	require.NoError(t, err)

	outside := filepath.Join(t.TempDir(), "victim.txt")
	require.NoError(t, os.WriteFile(outside, []byte("keep me"), 0644))

	// The traversal ref is reduced to its base name, so the outside file survives.
	_ = store.Delete(context.Background(), "../"+filepath.Base(filepath.Dir(outside))+"/victim.txt")
	_, err = os.Stat(outside)
	assert.NoError(t, err)
}

func TestLocalStoreURLFor(t *testing.T) {
	store, err := NewLocalStore(t.TempDir(), "http://localhost:3000/")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:3000/uploads/abc.pdf", store.URLFor("abc.pdf"))
	assert.Equal(t, "http://localhost:3000/uploads/abc.pdf", store.URLFor("../../abc.pdf"))
}
