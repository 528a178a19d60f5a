package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greencred/lending-service/internal/apperrors"
)

func stores(t *testing.T) map[string]ObjectStore {
	t.Helper()
	fs, err := NewFSStore(t.TempDir())
	require.NoError(t, err)
	return map[string]ObjectStore{
		"memory":     NewMemoryStore(),
		"filesystem": fs,
	}
}

func TestObjectStore_PutGetDelete(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			data := []byte("annual sustainability report")

			obj, err := store.Put(ctx, "acme/esg-document-1.txt", data, map[string]string{
				"company-name": "acme",
			})
			require.NoError(t, err)
			assert.Equal(t, "acme/esg-document-1.txt", obj.Key)
			assert.Equal(t, int64(len(data)), obj.Size)

			got, err := store.Get(ctx, "acme/esg-document-1.txt")
			require.NoError(t, err)
			assert.Equal(t, data, got)

			require.NoError(t, store.Delete(ctx, "acme/esg-document-1.txt"))

			_, err = store.Get(ctx, "acme/esg-document-1.txt")
			assert.True(t, apperrors.IsNotFound(err))
		})
	}
}

func TestObjectStore_GetMissing(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := store.Get(context.Background(), "nowhere/missing.pdf")
			assert.True(t, apperrors.IsNotFound(err))

			err = store.Delete(context.Background(), "nowhere/missing.pdf")
			assert.True(t, apperrors.IsNotFound(err))
		})
	}
}

func TestObjectStore_ListByPrefix(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			_, err := store.Put(ctx, "acme/doc-b.txt", []byte("b"), nil)
			require.NoError(t, err)
			_, err = store.Put(ctx, "acme/doc-a.txt", []byte("a"), nil)
			require.NoError(t, err)
			_, err = store.Put(ctx, "other/doc-c.txt", []byte("c"), nil)
			require.NoError(t, err)

			objs, err := store.List(ctx, "acme/")
			require.NoError(t, err)
			require.Len(t, objs, 2)
			assert.Equal(t, "acme/doc-a.txt", objs[0].Key)
			assert.Equal(t, "acme/doc-b.txt", objs[1].Key)
		})
	}
}

func TestFSStore_RejectsTraversalKeys(t *testing.T) {
	fs, err := NewFSStore(t.TempDir())
	require.NoError(t, err)

	for _, key := range []string{"../escape.txt", "/abs.txt", "a/../../b.txt"} {
		_, err := fs.Put(context.Background(), key, []byte("x"), nil)
		assert.True(t, apperrors.IsValidation(err), "key %q must be rejected", key)
	}
}

func TestTokenSigner_RoundTrip(t *testing.T) {
	signer := NewTokenSigner("test-secret", time.Minute)

	token, err := signer.Sign("acme/report.pdf")
	require.NoError(t, err)

	assert.NoError(t, signer.Verify(token, "acme/report.pdf"))
	assert.Error(t, signer.Verify(token, "acme/other.pdf"), "token is bound to one key")
}

func TestTokenSigner_RejectsWrongKeyAndExpiry(t *testing.T) {
	signer := NewTokenSigner("test-secret", time.Minute)
	other := NewTokenSigner("different-secret", time.Minute)

	token, err := signer.Sign("acme/report.pdf")
	require.NoError(t, err)
	assert.Error(t, other.Verify(token, "acme/report.pdf"))

	expired := NewTokenSigner("test-secret", -time.Minute)
	token, err = expired.Sign("acme/report.pdf")
	require.NoError(t, err)
	assert.Error(t, expired.Verify(token, "acme/report.pdf"))
}
