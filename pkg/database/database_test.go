package database

import (
	"context"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestBuildDSN(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"", "file::memory:?cache=shared&_busy_timeout=5000&_foreign_keys=on"},
		{"data/expenses.db", "file:data/expenses.db?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on"},
		{"file:test?mode=memory", "file:test?mode=memory&_busy_timeout=5000&_foreign_keys=on"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, buildDSN(tt.path), tt.path)
	}
}

func TestLoadMigrations_Ordered(t *testing.T) {
	fsys := fstest.MapFS{
		"m/002_second.sql": {Data: []byte("CREATE TABLE b (id TEXT);")},
		"m/001_first.sql":  {Data: []byte("CREATE TABLE a (id TEXT);")},
		"m/README.md":      {Data: []byte("ignored")},
	}

	migrations, err := LoadMigrations(fsys, "m")
	require.NoError(t, err)
	require.Len(t, migrations, 2)
	assert.Equal(t, 1, migrations[0].Version)
	assert.Equal(t, "first", migrations[0].Name)
	assert.Equal(t, 2, migrations[1].Version)
}

func TestMigrator_AppliesOnce(t *testing.T) {
	ctx := context.Background()
	logger := zap.NewNop()
	db, err := New(Config{Path: "file:migrator_test?mode=memory&cache=shared"}, logger)
	require.NoError(t, err)
	defer db.Close()

	fsys := fstest.MapFS{
		"m/001_first.sql": {Data: []byte("CREATE TABLE a (id TEXT);")},
	}
	m := NewMigrator(db, logger)
	require.NoError(t, m.RunMigrations(ctx, fsys, "m"))
	require.NoError(t, m.RunMigrations(ctx, fsys, "m"), "second run skips applied versions")

	var count int
	require.NoError(t, db.QueryRowContext(ctx, "SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 1, count)
}
