// Package container provides dependency injection and lifecycle management
// for the expense companion following Clean Architecture principles.
package container

import (
	"fmt"
	"time"

	"github.com/garyjia/expense-companion/pkg/database"
)

// Store backends
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Config holds all configuration for the Container.
// It aggregates configurations for all subsystems.
type Config struct {
	// Store selects and seeds the entity store
	Store StoreConfig

	// Database configuration, used by the sqlite backend
	Database DatabaseConfig

	// Export configuration
	Export ExportConfig

	// Messaging configuration
	Messaging MessagingConfig

	// Server configuration
	Server ServerConfig

	// App holds screen behaviour
	App AppConfig
}

// StoreConfig holds entity store settings.
type StoreConfig struct {
	// Backend is "memory" or "sqlite"
	Backend string

	// Seed loads the demo data set at startup
	Seed bool
}

// DatabaseConfig holds database connection settings.
type DatabaseConfig struct {
	// Path to SQLite database file or a file: DSN
	Path string

	// MaxOpenConns is the maximum number of open connections
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections
	MaxIdleConns int

	// ConnMaxLifetime is the maximum connection lifetime
	ConnMaxLifetime time.Duration
}

// ExportConfig holds report export settings.
type ExportConfig struct {
	// BaseDir roots the document store
	BaseDir string

	// Dir is where workbooks go, relative to BaseDir
	Dir string
}

// MessagingConfig holds AMQP publisher settings.
type MessagingConfig struct {
	Enabled  bool
	URL      string
	Exchange string
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	// Host to bind to
	Host string

	// Port to listen on
	Port int

	// ReadTimeout for HTTP server
	ReadTimeout time.Duration

	// WriteTimeout for HTTP server
	WriteTimeout time.Duration
}

// AppConfig holds behaviour of the screens.
type AppConfig struct {
	// User is the account the API acts as by default
	User string

	// RecentReports caps the dashboard's recent lists
	RecentReports int
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Backend: BackendMemory,
			Seed:    true,
		},
		Database: DatabaseConfig{
			Path:            database.MemoryDSN,
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 5 * time.Minute,
		},
		Export: ExportConfig{
			BaseDir: "data",
			Dir:     "exports",
		},
		Messaging: MessagingConfig{
			Exchange: "expense.events",
		},
		Server: ServerConfig{
			Host:         "0.0.0.0",
			Port:         8080,
			ReadTimeout:  30 * time.Second,
			WriteTimeout: 30 * time.Second,
		},
		App: AppConfig{
			User:          "John Smith",
			RecentReports: 3,
		},
	}
}

// Validate checks that required configuration values are present.
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendMemory:
	case BackendSQLite:
		if c.Database.Path == "" {
			return fmt.Errorf("database.path is required")
		}
	default:
		return fmt.Errorf("unknown store backend %q", c.Store.Backend)
	}

	if c.Export.BaseDir == "" {
		return fmt.Errorf("export.base_dir is required")
	}

	if c.Messaging.Enabled && (c.Messaging.URL == "" || c.Messaging.Exchange == "") {
		return fmt.Errorf("messaging.url and messaging.exchange are required")
	}

	if c.App.User == "" {
		return fmt.Errorf("app.user is required")
	}

	return nil
}
