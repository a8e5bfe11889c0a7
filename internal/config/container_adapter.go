package config

import (
	"github.com/garyjia/expense-companion/internal/container"
)

// ToContainerConfig converts the application Config to a container.Config.
// This provides a bridge between the file-based config loaded by viper
// and the container's configuration structure.
func (c *Config) ToContainerConfig() *container.Config {
	return &container.Config{
		Store: container.StoreConfig{
			Backend: c.Store.Backend,
			Seed:    c.Store.Seed,
		},
		Database: container.DatabaseConfig{
			Path:            c.Database.Path,
			MaxOpenConns:    c.Database.MaxOpenConns,
			MaxIdleConns:    c.Database.MaxIdleConns,
			ConnMaxLifetime: c.Database.ConnMaxLifetime,
		},
		Export: container.ExportConfig{
			BaseDir: c.Export.BaseDir,
			Dir:     c.Export.Dir,
		},
		Messaging: container.MessagingConfig{
			Enabled:  c.Messaging.Enabled,
			URL:      c.Messaging.URL,
			Exchange: c.Messaging.Exchange,
		},
		Server: container.ServerConfig{
			Host:         c.Server.Host,
			Port:         c.Server.Port,
			ReadTimeout:  c.Server.ReadTimeout,
			WriteTimeout: c.Server.WriteTimeout,
		},
		App: container.AppConfig{
			User:          c.App.User,
			RecentReports: c.App.RecentReports,
		},
	}
}
