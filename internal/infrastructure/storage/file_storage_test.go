package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestDocumentStore_SaveAndRead(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	store := NewDocumentStore(dir, zap.NewNop())

	t.Run("creates parent directories", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "exports/2024-01/report.xlsx", []byte("data")))
		assert.FileExists(t, filepath.Join(dir, "exports", "2024-01", "report.xlsx"))
		assert.True(t, store.Exists(ctx, "exports/2024-01/report.xlsx"))

		content, err := store.Read(ctx, "exports/2024-01/report.xlsx")
		require.NoError(t, err)
		assert.Equal(t, []byte("data"), content)
	})

	t.Run("overwrites existing file", func(t *testing.T) {
		require.NoError(t, store.Save(ctx, "a.txt", []byte("original")))
		require.NoError(t, store.Save(ctx, "a.txt", []byte("updated")))

		content, err := os.ReadFile(filepath.Join(dir, "a.txt"))
		require.NoError(t, err)
		assert.Equal(t, []byte("updated"), content)
	})

	t.Run("directories are not documents", func(t *testing.T) {
		assert.False(t, store.Exists(ctx, "exports"))
	})
}

func TestDocumentStore_RejectsTraversal(t *testing.T) {
	ctx := context.Background()
	store := NewDocumentStore(t.TempDir(), zap.NewNop())

	for _, path := range []string{"../escape.txt", "a/../../escape.txt", "."} {
		err := store.Save(ctx, path, []byte("x"))
		assert.ErrorIs(t, err, ErrPathEscapes, path)
		assert.False(t, store.Exists(ctx, path), path)
	}
}

func TestDocumentStore_DeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	store := NewDocumentStore(t.TempDir(), zap.NewNop())

	require.NoError(t, store.Save(ctx, "gone.txt", []byte("x")))
	require.NoError(t, store.Delete(ctx, "gone.txt"))
	assert.False(t, store.Exists(ctx, "gone.txt"))
	assert.NoError(t, store.Delete(ctx, "gone.txt"))
}

func TestSafeName(t *testing.T) {
	tests := map[string]string{
		"Business Trip - New York": "Business-Trip-New-York",
		"../../etc/passwd":         "etc-passwd",
		"  ":                       "untitled",
		"Q1_review":                "Q1_review",
	}
	for in, want := range tests {
		assert.Equal(t, want, SafeName(in), in)
	}
}
