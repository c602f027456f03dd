package storage_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/backoffice-api/internal/domain"
	"github.com/jhoicas/backoffice-api/internal/domain/storagekey"
	"github.com/jhoicas/backoffice-api/internal/infrastructure/storage"
)

func TestLocalStore_SaveOpenDelete(t *testing.T) {
	root := t.TempDir()
	st, err := storage.NewLocalStore(root)
	require.NoError(t, err)
	ctx := context.Background()

	key, err := storagekey.For(7, "", "invoice.pdf")
	require.NoError(t, err)
	require.NoError(t, st.Save(ctx, key, strings.NewReader("%PDF-1.4 eerste")))

	_, err = os.Stat(filepath.Join(root, "project_7", "invoice.pdf"))
	require.NoError(t, err)

	// Last write wins.
	require.NoError(t, st.Save(ctx, key, strings.NewReader("%PDF-1.4 tweede")))
	rc, err := st.Open(ctx, key)
	require.NoError(t, err)
	body, err := io.ReadAll(rc)
	require.NoError(t, rc.Close())
	require.NoError(t, err)
	assert.Equal(t, "%PDF-1.4 tweede", string(body))

	require.NoError(t, st.Delete(ctx, key))
	_, err = st.Open(ctx, key)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLocalStore_Missing(t *testing.T) {
	st, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	_, err = st.Open(ctx, "project_7/missing.pdf")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.ErrorIs(t, st.Delete(ctx, "project_7/missing.pdf"), domain.ErrNotFound)
}

func TestLocalStore_NoTempFilesLeft(t *testing.T) {
	root := t.TempDir()
	st, err := storage.NewLocalStore(root)
	require.NoError(t, err)

	require.NoError(t, st.Save(context.Background(), "project_1/offertes/a.txt", strings.NewReader("a")))

	entries, err := os.ReadDir(filepath.Join(root, "project_1", "offertes"))
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a.txt", entries[0].Name())
}

func TestLocalStore_KeysOutsideRoot(t *testing.T) {
	base := t.TempDir()
	secret := filepath.Join(base, "secret.txt")
	require.NoError(t, os.WriteFile(secret, []byte("geheim"), 0o600))

	st, err := storage.NewLocalStore(filepath.Join(base, "uploads"))
	require.NoError(t, err)
	ctx := context.Background()

	for _, key := range []string{"../secret.txt", "project_1/../../secret.txt", secret, ".", ""} {
		_, err := st.Open(ctx, key)
		assert.ErrorIs(t, err, domain.ErrNotFound, key)
		assert.ErrorIs(t, st.Delete(ctx, key), domain.ErrNotFound, key)
		assert.ErrorIs(t, st.Save(ctx, key, strings.NewReader("x")), domain.ErrNotFound, key)
	}

	body, err := os.ReadFile(secret)
	require.NoError(t, err)
	assert.Equal(t, "geheim", string(body))
}
