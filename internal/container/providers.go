package container

import (
	"context"
	"fmt"
	"path"
	"time"

	"go.uber.org/zap"

	"github.com/garyjia/expense-companion/internal/application/dispatcher"
	"github.com/garyjia/expense-companion/internal/application/draft"
	"github.com/garyjia/expense-companion/internal/application/port"
	"github.com/garyjia/expense-companion/internal/application/service"
	"github.com/garyjia/expense-companion/internal/infrastructure/export"
	"github.com/garyjia/expense-companion/internal/infrastructure/messaging"
	"github.com/garyjia/expense-companion/internal/infrastructure/persistence/memory"
	"github.com/garyjia/expense-companion/internal/infrastructure/persistence/seed"
	"github.com/garyjia/expense-companion/internal/infrastructure/persistence/sqlite"
	"github.com/garyjia/expense-companion/internal/infrastructure/storage"
	"github.com/garyjia/expense-companion/pkg/database"
	"github.com/garyjia/expense-companion/pkg/utils"
)

// StoreBundle holds the entity store and what it was built on.
type StoreBundle struct {
	Store port.Store

	// DB is nil for the memory backend
	DB *database.DB

	// Reset replaces the store contents with the demo data
	Reset func(ctx context.Context) error
}

// StorageBundle holds storage-related components.
type StorageBundle struct {
	FileStorage *storage.DocumentStore
	Writer      port.ReportWriter
}

// ServiceDeps holds dependencies for creating services.
type ServiceDeps struct {
	Store      port.Store
	Writer     port.ReportWriter
	Dispatcher service.EventDispatcher
	App        AppConfig
	Logger     service.Logger
	Clock      func() time.Time
}

// ProvideStore opens the configured backend and loads the demo data when asked.
func ProvideStore(ctx context.Context, cfg *Config, logger *zap.Logger) (*StoreBundle, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	switch cfg.Store.Backend {
	case BackendMemory:
		data := seed.Data{}
		if cfg.Store.Seed {
			data = seed.Default()
		}
		store := memory.New(data)
		return &StoreBundle{
			Store: store.Port(),
			Reset: func(context.Context) error {
				store.Reset(seed.Default())
				return nil
			},
		}, nil

	case BackendSQLite:
		db, err := database.New(database.Config{
			Path:            cfg.Database.Path,
			MaxOpenConns:    cfg.Database.MaxOpenConns,
			MaxIdleConns:    cfg.Database.MaxIdleConns,
			ConnMaxLifetime: cfg.Database.ConnMaxLifetime,
		}, logger)
		if err != nil {
			return nil, err
		}
		if err := sqlite.Migrate(ctx, db, logger); err != nil {
			db.Close()
			return nil, fmt.Errorf("failed to run migrations: %w", err)
		}

		store := sqlite.NewStore(db.DB, logger)
		if cfg.Store.Seed {
			if err := store.Reset(ctx, seed.Default()); err != nil {
				db.Close()
				return nil, err
			}
		}
		return &StoreBundle{
			Store: store.Port(),
			DB:    db,
			Reset: func(ctx context.Context) error {
				return store.Reset(ctx, seed.Default())
			},
		}, nil

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

// ProvideStorage creates the document store and the workbook writer on top of it.
func ProvideStorage(cfg *ExportConfig, logger *zap.Logger) (*StorageBundle, error) {
	if cfg == nil {
		return nil, fmt.Errorf("export config is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	files := storage.NewDocumentStore(cfg.BaseDir, logger)
	dir := cfg.Dir
	if dir == "" {
		dir = "."
	}
	return &StorageBundle{
		FileStorage: files,
		Writer:      export.NewWorkbookWriter(files, path.Clean(dir), logger),
	}, nil
}

// ProvidePublisher connects the AMQP publisher. It returns nil when messaging is disabled.
func ProvidePublisher(cfg *MessagingConfig, logger *zap.Logger) (*messaging.Publisher, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, nil
	}
	return messaging.NewPublisher(cfg.URL, cfg.Exchange, logger)
}

// ProvideDispatcher creates the event dispatcher. Every event is audit
// logged inline. When a publisher is given, events are also published from
// the deferred worker so a slow broker never delays a command.
func ProvideDispatcher(logger *utils.KVLogger, publisher dispatcher.Publisher) (dispatcher.Dispatcher, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	disp := dispatcher.NewDispatcher(dispatcher.WithLogger(logger))
	disp.SubscribeAll("audit-log", dispatcher.AuditLogHandler(logger))
	if publisher != nil {
		disp.SubscribeAll("amqp-publish", dispatcher.PublishHandler(publisher), dispatcher.Deferred())
	}
	return disp, nil
}

// ProvideServices creates all application services.
func ProvideServices(deps *ServiceDeps) (*ServiceBundle, error) {
	if deps == nil {
		return nil, fmt.Errorf("service dependencies are required")
	}
	if deps.Logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	s := deps.Store

	expenses := service.NewExpenseService(s.Expenses, deps.Dispatcher, deps.Logger, deps.Clock)
	reports := service.NewReportService(s, deps.Dispatcher, deps.Logger, deps.Clock)

	return &ServiceBundle{
		Session:   service.NewSessionService(deps.Logger),
		Dashboard: service.NewDashboardService(s.Reports, deps.App.RecentReports, deps.Logger, deps.Clock),
		Expenses:  expenses,
		Reports:   reports,
		Approvals: service.NewApprovalService(s.Reports, s.Expenses, s.Decisions, s.Comments, s.Tx, deps.Dispatcher, deps.Logger),
		Receipts:  service.NewReceiptService(s.Receipts, s.Expenses, deps.Dispatcher, deps.Logger, deps.Clock),
		Cards:     service.NewCardService(s.Cards, deps.Logger),
		Export:    service.NewExportService(reports, deps.Writer, deps.Logger),
	}, nil
}

// ProvideDrafts creates the per-screen report drafts.
func ProvideDrafts(services *ServiceBundle, clock func() time.Time) (*draft.Set, error) {
	if services == nil {
		return nil, fmt.Errorf("services are required")
	}
	return service.NewDraftSet(services.Expenses, services.Cards, clock)
}
