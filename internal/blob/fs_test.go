package blob

import (
	"bytes"
	"context"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFS_PutOpen(t *testing.T) {
	ctx := context.Background()
	store, err := NewFS(t.TempDir())
	require.NoError(t, err)

	require.NoError(t, store.Put(ctx, "profile_pics/u1.jpg", "image/jpeg", bytes.NewReader([]byte("first"))))
	require.NoError(t, store.Put(ctx, "profile_pics/u1.jpg", "image/jpeg", bytes.NewReader([]byte("second"))))

	obj, err := store.Open(ctx, "profile_pics/u1.jpg")
	require.NoError(t, err)
	defer obj.Body.Close()

	body, err := io.ReadAll(obj.Body)
	require.NoError(t, err)
	assert.Equal(t, "second", string(body))
	assert.Equal(t, "image/jpeg", obj.ContentType)
	assert.Equal(t, int64(6), obj.Size)
}

func TestFS_OpenMissing(t *testing.T) {
	store, err := NewFS(t.TempDir())
	require.NoError(t, err)

	_, err = store.Open(context.Background(), "profile_pics/nobody.jpg")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = store.Open(context.Background(), "profile_pics")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestFS_KeysStayInsideRoot(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	store, err := NewFS(root)
	require.NoError(t, err)

	require.NoError(t, store.Put(ctx, "../../escape.txt", "text/plain", bytes.NewReader([]byte("x"))))

	obj, err := store.Open(ctx, "escape.txt")
	require.NoError(t, err)
	obj.Body.Close()
}
