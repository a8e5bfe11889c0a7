// Package http provides HTTP server adapter for the application layer.
// This is a thin adapter layer that translates HTTP requests to application service calls.
package http

import (
	"context"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/garyjia/expense-companion/internal/application/draft"
	"github.com/garyjia/expense-companion/internal/application/port"
	"github.com/garyjia/expense-companion/internal/application/service"
)

// Logger interface for logging operations
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	// User is the account acting on the API when no X-User-Name header is sent
	User string
}

// DefaultServerConfig returns default server configuration
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Host:         "0.0.0.0",
		Port:         8080,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
	}
}

// Services bundles everything the handlers call into
type Services struct {
	Session   service.SessionService
	Dashboard service.DashboardService
	Expenses  service.ExpenseService
	Reports   service.ReportService
	Approvals service.ApprovalService
	Receipts  service.ReceiptService
	Cards     service.CardService
	Export    service.ExportService
	Drafts    *draft.Set
	Files     port.FileStorage
	// Reset reloads the demo data; nil disables the admin route
	Reset func(ctx context.Context) error
}

// Server is the HTTP server adapter
type Server struct {
	config     ServerConfig
	httpServer *http.Server
	router     *gin.Engine
	services   Services
	logger     Logger

	// commands run one at a time, as they would on a single screen
	mu sync.Mutex
}

// NewServer creates a new HTTP server with the given services
func NewServer(config ServerConfig, services Services, logger Logger) *Server {
	gin.SetMode(gin.ReleaseMode)

	server := &Server{
		config:   config,
		router:   gin.New(),
		services: services,
		logger:   logger,
	}

	server.setupMiddleware()
	server.setupRoutes()

	return server
}

// setupMiddleware configures middleware for the router
func (s *Server) setupMiddleware() {
	s.router.Use(gin.Recovery())
	s.router.Use(s.loggingMiddleware())
}

// loggingMiddleware creates a logging middleware
func (s *Server) loggingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		s.logger.Info("HTTP request",
			"method", method,
			"path", path,
			"status", c.Writer.Status(),
			"latency", time.Since(start).String(),
			"client_ip", c.ClientIP(),
		)
	}
}

// serialize holds the command lock for the whole request so store reads and
// draft state never interleave with another request's writes
func (s *Server) serialize() gin.HandlerFunc {
	return func(c *gin.Context) {
		s.mu.Lock()
		defer s.mu.Unlock()
		c.Next()
	}
}

// setupRoutes configures all HTTP routes
func (s *Server) setupRoutes() {
	h := NewHandlers(s.services, s.config.User, s.logger)

	s.router.GET("/health", h.HealthCheck)

	api := s.router.Group("/api", s.serialize())
	{
		api.POST("/session", h.Login)
		api.GET("/dashboard", h.Dashboard)

		api.GET("/expenses", h.ListExpenses)
		api.GET("/expenses/summary", h.ExpenseSummary)
		api.GET("/expenses/:id", h.GetExpense)
		api.POST("/expenses", h.CreateExpense)
		api.PUT("/expenses/:id", h.UpdateExpense)
		api.DELETE("/expenses/:id", h.DeleteExpense)

		api.GET("/reports", h.ListReports)
		api.GET("/reports/:id", h.GetReport)
		api.POST("/reports/:id/approve", h.ApproveReport)
		api.POST("/reports/:id/reject", h.RejectReport)
		api.POST("/reports/:id/comments", h.AddComment)
		api.GET("/reports/:id/export", h.ExportReport)

		api.GET("/receipts", h.ListReceipts)
		api.POST("/receipts", h.AddReceipt)
		api.GET("/receipts/:id", h.GetReceipt)
		api.PUT("/receipts/:id/amount", h.ConfirmReceiptAmount)
		api.PUT("/receipts/:id/expense", h.AttachReceipt)

		api.GET("/cards", h.ListCards)

		drafts := api.Group("/drafts/:source")
		{
			drafts.GET("", h.GetDraft)
			drafts.POST("/toggle/:id", h.ToggleDraftItem)
			drafts.POST("/open", h.OpenDraft)
			drafts.PUT("/form", h.UpdateDraftForm)
			drafts.POST("/confirm", h.ConfirmDraft)
			drafts.POST("/cancel", h.CancelDraft)
		}

		if s.services.Reset != nil {
			api.POST("/admin/reset", h.ResetData)
		}
	}
}

// Start starts the HTTP server
func (s *Server) Start(ctx context.Context) error {
	addr := s.Address()

	s.httpServer = &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.config.ReadTimeout,
		WriteTimeout: s.config.WriteTimeout,
	}

	s.logger.Info("Starting HTTP server", "address", addr)

	errCh := make(chan error, 1)
	go func() {
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		s.logger.Info("HTTP server shutdown requested")
		return s.Stop()
	case err := <-errCh:
		s.logger.Error("HTTP server error", "error", err)
		return err
	}
}

// Stop gracefully stops the HTTP server
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}

	s.logger.Info("Stopping HTTP server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		s.logger.Error("HTTP server shutdown error", "error", err)
		return err
	}

	s.logger.Info("HTTP server stopped")
	return nil
}

// Router returns the underlying gin router (for testing)
func (s *Server) Router() *gin.Engine {
	return s.router
}

// Address returns the server address
func (s *Server) Address() string {
	return fmt.Sprintf("%s:%d", s.config.Host, s.config.Port)
}
