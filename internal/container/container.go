package container

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"github.com/garyjia/expense-companion/internal/application/dispatcher"
	"github.com/garyjia/expense-companion/internal/application/draft"
	"github.com/garyjia/expense-companion/internal/application/port"
	"github.com/garyjia/expense-companion/internal/application/service"
	"github.com/garyjia/expense-companion/internal/infrastructure/messaging"
	"github.com/garyjia/expense-companion/pkg/database"
	"github.com/garyjia/expense-companion/pkg/utils"
)

// Container manages all application dependencies and lifecycle.
// It follows Clean Architecture principles with ordered initialization
// and reverse-order teardown.
type Container struct {
	config *Config
	logger *zap.Logger
	kv     *utils.KVLogger
	clock  func() time.Time

	// Infrastructure - Data
	db    *database.DB
	store port.Store
	reset func(ctx context.Context) error

	// Infrastructure - Storage
	storage *StorageBundle

	// Infrastructure - Messaging
	publisher *messaging.Publisher

	// Application
	dispatcher dispatcher.Dispatcher
	services   *ServiceBundle
	drafts     *draft.Set

	// Lifecycle
	mu     sync.RWMutex
	ready  atomic.Bool
	closed atomic.Bool
}

// ServiceBundle groups all application services.
type ServiceBundle struct {
	Session   service.SessionService
	Dashboard service.DashboardService
	Expenses  service.ExpenseService
	Reports   service.ReportService
	Approvals service.ApprovalService
	Receipts  service.ReceiptService
	Cards     service.CardService
	Export    service.ExportService
}

// HealthStatus represents the health of all components.
type HealthStatus struct {
	Overall    bool                       `json:"overall"`
	Components map[string]ComponentHealth `json:"components"`
}

// ComponentHealth represents health of a single component.
type ComponentHealth struct {
	Healthy bool   `json:"healthy"`
	Message string `json:"message,omitempty"`
}

// Option customises a Container
type Option func(*Container)

// WithClock fixes the time source of the services and drafts
func WithClock(clock func() time.Time) Option {
	return func(c *Container) {
		c.clock = clock
	}
}

// NewContainer creates a new container from configuration.
// It does not initialize components - call Start() to initialize.
func NewContainer(cfg *Config, logger *zap.Logger, opts ...Option) (*Container, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	c := &Container{
		config: cfg,
		logger: logger,
		kv:     utils.NewKVLogger(logger),
		clock:  time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// Start initializes all components.
// Components are initialized in dependency order:
// 1. Entity store
// 2. Document storage and export
// 3. Event publisher and dispatcher
// 4. Application services and report drafts
func (c *Container) Start(ctx context.Context) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed.Load() {
		return fmt.Errorf("container has been closed")
	}
	if c.ready.Load() {
		return fmt.Errorf("container already started")
	}

	c.logger.Info("Starting container initialization", zap.String("store", c.config.Store.Backend))

	if err := c.initStore(ctx); err != nil {
		return fmt.Errorf("failed to initialize store: %w", err)
	}
	c.logger.Info("Entity store initialized")

	if err := c.initStorage(); err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	c.logger.Info("Storage initialized")

	if err := c.initDispatcher(); err != nil {
		c.closeStore()
		return fmt.Errorf("failed to initialize dispatcher: %w", err)
	}
	c.logger.Info("Dispatcher initialized", zap.Bool("publishing", c.publisher != nil))

	if err := c.initServices(); err != nil {
		c.closeStore()
		return fmt.Errorf("failed to initialize services: %w", err)
	}
	c.logger.Info("Application services initialized")

	c.ready.Store(true)
	c.logger.Info("Container started successfully")

	return nil
}

// Close gracefully shuts down all components in reverse order.
func (c *Container) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.closed.Load() {
		return fmt.Errorf("container already closed")
	}

	c.logger.Info("Closing container")

	var errs []error

	// Step 1: Close dispatcher (reverse of step 3)
	if c.dispatcher != nil {
		if err := c.dispatcher.Close(); err != nil {
			c.logger.Error("Failed to close dispatcher", zap.Error(err))
			errs = append(errs, fmt.Errorf("close dispatcher: %w", err))
		} else {
			c.logger.Info("Dispatcher closed")
		}
	}

	// Step 2: Close publisher
	if c.publisher != nil {
		if err := c.publisher.Close(); err != nil {
			c.logger.Error("Failed to close publisher", zap.Error(err))
			errs = append(errs, fmt.Errorf("close publisher: %w", err))
		} else {
			c.logger.Info("Publisher closed")
		}
	}

	// Step 3: Close database (reverse of step 1)
	if err := c.closeStore(); err != nil {
		errs = append(errs, err)
	}

	c.closed.Store(true)
	c.ready.Store(false)

	if len(errs) > 0 {
		c.logger.Error("Container closed with errors", zap.Int("error_count", len(errs)))
		return fmt.Errorf("container closed with %d errors", len(errs))
	}

	c.logger.Info("Container closed successfully")
	return nil
}

func (c *Container) closeStore() error {
	if c.db == nil {
		return nil
	}
	err := c.db.Close()
	c.db = nil
	if err != nil {
		c.logger.Error("Failed to close database", zap.Error(err))
		return fmt.Errorf("close database: %w", err)
	}
	c.logger.Info("Database closed")
	return nil
}

// Ready returns true when all components are initialized.
func (c *Container) Ready() bool {
	return c.ready.Load()
}

// Health returns health status of all components.
func (c *Container) Health() *HealthStatus {
	c.mu.RLock()
	defer c.mu.RUnlock()

	status := &HealthStatus{
		Overall:    true,
		Components: make(map[string]ComponentHealth),
	}
	set := func(name string, h ComponentHealth) {
		status.Components[name] = h
		if !h.Healthy {
			status.Overall = false
		}
	}

	switch {
	case c.store.Expenses == nil:
		set("store", ComponentHealth{Healthy: false, Message: "not initialized"})
	case c.db != nil:
		if err := c.db.Ping(); err != nil {
			set("store", ComponentHealth{Healthy: false, Message: fmt.Sprintf("ping failed: %v", err)})
		} else {
			set("store", ComponentHealth{Healthy: true, Message: BackendSQLite})
		}
	default:
		set("store", ComponentHealth{Healthy: true, Message: BackendMemory})
	}

	if c.dispatcher != nil {
		set("dispatcher", ComponentHealth{Healthy: true})
	} else {
		set("dispatcher", ComponentHealth{Healthy: false, Message: "not initialized"})
	}

	if c.config.Messaging.Enabled {
		set("publisher", ComponentHealth{Healthy: c.publisher != nil})
	}

	if c.services != nil {
		set("services", ComponentHealth{Healthy: true})
	} else {
		set("services", ComponentHealth{Healthy: false, Message: "not initialized"})
	}

	return status
}

// Services returns the application services. Only valid after Start.
func (c *Container) Services() *ServiceBundle {
	return c.services
}

// Drafts returns the report drafts of the expense and credit-card screens.
func (c *Container) Drafts() *draft.Set {
	return c.drafts
}

// Files returns the document store exports are written to.
func (c *Container) Files() port.FileStorage {
	return c.storage.FileStorage
}

// Logger returns the key/value logger handed to the services.
func (c *Container) Logger() *utils.KVLogger {
	return c.kv
}

// Reset reloads the demo data into the store.
func (c *Container) Reset(ctx context.Context) error {
	if c.reset == nil {
		return fmt.Errorf("container not started")
	}
	return c.reset(ctx)
}

// Config returns the container configuration.
func (c *Container) Config() *Config {
	return c.config
}

func (c *Container) initStore(ctx context.Context) error {
	bundle, err := ProvideStore(ctx, c.config, c.logger)
	if err != nil {
		return err
	}
	c.store = bundle.Store
	c.db = bundle.DB
	c.reset = bundle.Reset
	return nil
}

func (c *Container) initStorage() error {
	bundle, err := ProvideStorage(&c.config.Export, c.logger)
	if err != nil {
		return err
	}
	c.storage = bundle
	return nil
}

func (c *Container) initDispatcher() error {
	publisher, err := ProvidePublisher(&c.config.Messaging, c.logger)
	if err != nil {
		return err
	}

	var pub dispatcher.Publisher
	if publisher != nil {
		c.publisher = publisher
		pub = publisher
	}

	disp, err := ProvideDispatcher(c.kv, pub)
	if err != nil {
		return err
	}
	c.dispatcher = disp
	return nil
}

func (c *Container) initServices() error {
	services, err := ProvideServices(&ServiceDeps{
		Store:      c.store,
		Writer:     c.storage.Writer,
		Dispatcher: c.dispatcher,
		App:        c.config.App,
		Logger:     c.kv,
		Clock:      c.clock,
	})
	if err != nil {
		return err
	}
	c.services = services

	drafts, err := ProvideDrafts(services, c.clock)
	if err != nil {
		return err
	}
	c.drafts = drafts
	return nil
}
