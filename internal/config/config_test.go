package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, StoreMemory, cfg.Store.Backend)
	assert.True(t, cfg.Store.Seed)
	assert.Equal(t, "file::memory:?cache=shared", cfg.Database.Path)
	assert.Equal(t, "John Smith", cfg.App.User)
	assert.Equal(t, 3, cfg.App.RecentReports)
	assert.False(t, cfg.Messaging.Enabled)
}

func TestLoad_FileAndEnvironment(t *testing.T) {
	path := writeConfig(t, `
server:
  port: 9090
  read_timeout: 5s
store:
  backend: sqlite
database:
  path: data/test.db
app:
  user: Sarah Johnson
`)
	t.Setenv("EXPENSE_SERVER_PORT", "9191")
	t.Setenv("EXPENSE_LOGGER_LEVEL", "debug")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9191, cfg.Server.Port, "environment wins over the file")
	assert.Equal(t, 5*time.Second, cfg.Server.ReadTimeout)
	assert.Equal(t, StoreSQLite, cfg.Store.Backend)
	assert.Equal(t, "data/test.db", cfg.Database.Path)
	assert.Equal(t, "Sarah Johnson", cfg.App.User)
	assert.Equal(t, "debug", cfg.Logger.Level)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLoad_InvalidBackend(t *testing.T) {
	path := writeConfig(t, "store:\n  backend: postgres\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store.backend")
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		return Config{
			Server: ServerConfig{Port: 8080},
			Store:  StoreConfig{Backend: StoreMemory},
			Export: ExportConfig{BaseDir: "data"},
			App:    AppConfig{User: "John Smith", RecentReports: 3},
		}
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"valid", func(*Config) {}, ""},
		{"bad port", func(c *Config) { c.Server.Port = 0 }, "server.port"},
		{"sqlite without path", func(c *Config) { c.Store.Backend = StoreSQLite }, "database.path"},
		{"no export dir", func(c *Config) { c.Export.BaseDir = "" }, "export.base_dir"},
		{"messaging without url", func(c *Config) { c.Messaging = MessagingConfig{Enabled: true, Exchange: "x"} }, "messaging.url"},
		{"blank user", func(c *Config) { c.App.User = "  " }, "app.user"},
		{"negative recent", func(c *Config) { c.App.RecentReports = -1 }, "app.recent_reports"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestToContainerConfig(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)

	cc := cfg.ToContainerConfig()
	assert.Equal(t, cfg.Store.Backend, cc.Store.Backend)
	assert.Equal(t, cfg.Database.Path, cc.Database.Path)
	assert.Equal(t, cfg.Export.Dir, cc.Export.Dir)
	assert.Equal(t, cfg.App.User, cc.App.User)
	assert.NoError(t, cc.Validate())
}
