package storage

import (
	"bytes"
	"context"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalStorageRoundTrip(t *testing.T) {
	signer := NewSignedURLSigner("secret", time.Hour)
	store, err := NewLocalStorage(t.TempDir(), signer, "/api/v1/media/")
	require.NoError(t, err)
	ctx := context.Background()

	payload := []byte("not really a png")
	require.NoError(t, store.Put(ctx, "djs/holly.png", bytes.NewReader(payload), int64(len(payload)), "image/png"))

	obj, err := store.Get(ctx, "djs/holly.png")
	require.NoError(t, err)
	body, err := io.ReadAll(obj.Body)
	require.NoError(t, err)
	require.NoError(t, obj.Body.Close())
	assert.Equal(t, payload, body)
	assert.Equal(t, int64(len(payload)), obj.ContentLength)
	assert.Equal(t, "image/png", obj.ContentType)

	link, err := store.URL(ctx, "djs/holly.png")
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(link, "/api/v1/media/"))
	key, err := store.KeyFromToken(strings.TrimPrefix(link, "/api/v1/media/"))
	require.NoError(t, err)
	assert.Equal(t, "djs/holly.png", key)

	require.NoError(t, store.Delete(ctx, "djs/holly.png"))
	_, err = store.Get(ctx, "djs/holly.png")
	assert.ErrorIs(t, err, ErrObjectNotFound)
	require.NoError(t, store.Delete(ctx, "djs/holly.png"))
}

func TestLocalStorageConfinesKeys(t *testing.T) {
	dir := t.TempDir()
	store, err := NewLocalStorage(dir, nil, "/media")
	require.NoError(t, err)

	path, err := store.resolve("../../etc/passwd")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(path, dir))

	_, err = store.resolve("")
	assert.Error(t, err)

	_, err = store.URL(context.Background(), "x")
	assert.Error(t, err)
}
