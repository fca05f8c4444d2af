package filestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/velostore/storefront/pkg/errors"
)

func TestFileStore_SetGetRoundTrip(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "cart", []byte(`{"version":1,"items":[]}`)))

	got, err := s.Get(ctx, "cart")
	require.NoError(t, err)
	assert.JSONEq(t, `{"version":1,"items":[]}`, string(got))
}

func TestFileStore_GetMissingKey(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	_, err = s.Get(context.Background(), "missing")
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestFileStore_SetOverwrites(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "cart", []byte("first")))
	require.NoError(t, s.Set(ctx, "cart", []byte("second")))

	got, err := s.Get(ctx, "cart")
	require.NoError(t, err)
	assert.Equal(t, "second", string(got))
}

func TestFileStore_Delete(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "cart", []byte("x")))
	require.NoError(t, s.Delete(ctx, "cart"))

	_, err = s.Get(ctx, "cart")
	require.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestFileStore_DeleteAbsentKeyIsNoError(t *testing.T) {
	s, err := New(t.TempDir())
	require.NoError(t, err)

	assert.NoError(t, s.Delete(context.Background(), "never-written"))
}

func TestFileStore_SanitizesKeyIntoFileName(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "../evil/key", []byte("x")))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "___evil_key.json", entries[0].Name())

	got, err := s.Get(ctx, "../evil/key")
	require.NoError(t, err)
	assert.Equal(t, "x", string(got))
}

func TestFileStore_LeavesNoTempFilesBehind(t *testing.T) {
	dir := t.TempDir()
	s, err := New(dir)
	require.NoError(t, err)

	require.NoError(t, s.Set(context.Background(), "cart", []byte("x")))

	matches, err := filepath.Glob(filepath.Join(dir, "*.tmp-*"))
	require.NoError(t, err)
	assert.Empty(t, matches)
}
