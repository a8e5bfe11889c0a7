package http

import (
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/garyjia/expense-companion/internal/application/draft"
	"github.com/garyjia/expense-companion/internal/application/service"
	"github.com/garyjia/expense-companion/internal/domain/derive"
	"github.com/garyjia/expense-companion/internal/domain/entity"
	"github.com/garyjia/expense-companion/internal/domain/status"
)

// UserHeader overrides the configured acting user for one request
const UserHeader = "X-User-Name"

// Handlers contains all HTTP request handlers
type Handlers struct {
	services Services
	user     string
	logger   Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(services Services, user string, logger Logger) *Handlers {
	return &Handlers{
		services: services,
		user:     user,
		logger:   logger,
	}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status    string `json:"status"`
	Timestamp string `json:"timestamp"`
	Version   string `json:"version"`
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	h.ok(c, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Version:   "1.0.0",
	})
}

// ResetData handles POST /api/admin/reset
func (h *Handlers) ResetData(c *gin.Context) {
	if err := h.services.Reset(c.Request.Context()); err != nil {
		h.fail(c, "reset data", err)
		return
	}
	h.logger.Info("Demo data reloaded")
	h.ok(c, gin.H{"reset": true})
}

func (h *Handlers) currentUser(c *gin.Context) string {
	if user := strings.TrimSpace(c.GetHeader(UserHeader)); user != "" {
		return user
	}
	return h.user
}

func (h *Handlers) ok(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Response{Success: true, Data: data})
}

func (h *Handlers) created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{Success: true, Data: data})
}

func (h *Handlers) badRequest(c *gin.Context, message string) {
	c.JSON(http.StatusBadRequest, Response{Success: false, Error: message})
}

// fail maps an application error onto a status code and the message shown to the user
func (h *Handlers) fail(c *gin.Context, action string, err error) {
	code, message := classify(err)
	if code >= http.StatusInternalServerError {
		h.logger.Error("Request failed", "action", action, "error", err)
	}
	c.JSON(code, Response{Success: false, Error: message})
}

func classify(err error) (int, string) {
	var ve *service.ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, ve.Message
	case draft.IsValidation(err):
		return http.StatusBadRequest, draftMessage(err)
	case service.IsNotFound(err), errors.Is(err, draft.ErrUnknownItem):
		return http.StatusNotFound, err.Error()
	case errors.Is(err, service.ErrReportNotPending),
		errors.Is(err, service.ErrAlreadyLinked),
		errors.Is(err, draft.ErrDraftOpen),
		errors.Is(err, draft.ErrNoDraftOpen):
		return http.StatusConflict, err.Error()
	case errors.Is(err, service.ErrDeleteUnsupported):
		return http.StatusNotImplemented, err.Error()
	default:
		return http.StatusInternalServerError, "internal error"
	}
}

// draftMessage strips the detail wrapped around a draft validation sentinel
func draftMessage(err error) string {
	for _, target := range []error{
		draft.ErrEmptySelection,
		draft.ErrMissingName,
		draft.ErrMissingBusinessPurpose,
		draft.ErrInvalidDate,
		draft.ErrUnknownSource,
		draft.ErrDuplicateItem,
	} {
		if errors.Is(err, target) {
			return target.Error()
		}
	}
	return err.Error()
}

// parseCriteria reads the list filters shared by the expense, receipt and
// report screens: category (repeatable or comma separated), from, to, min,
// max, tab and status
func parseCriteria(c *gin.Context) (derive.Criteria, error) {
	var criteria derive.Criteria

	var categories []string
	for _, raw := range c.QueryArray("category") {
		for _, label := range strings.Split(raw, ",") {
			categories = append(categories, strings.TrimSpace(label))
		}
	}
	criteria.Categories = derive.NewCategorySet(categories...)

	for _, bound := range []struct {
		key string
		dst *string
	}{
		{"from", &criteria.StartDate},
		{"to", &criteria.EndDate},
	} {
		raw := strings.TrimSpace(c.Query(bound.key))
		if raw == "" {
			continue
		}
		if _, err := time.Parse(entity.DateLayout, raw); err != nil {
			return criteria, errors.New(bound.key + " must be a date as YYYY-MM-DD")
		}
		*bound.dst = raw
	}

	for _, bound := range []struct {
		key string
		dst **float64
	}{
		{"min", &criteria.MinAmount},
		{"max", &criteria.MaxAmount},
	} {
		raw := strings.TrimSpace(c.Query(bound.key))
		if raw == "" {
			continue
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return criteria, errors.New(bound.key + " must be a number")
		}
		*bound.dst = &v
	}

	if raw := c.Query("tab"); raw != "" {
		tab, err := status.ParseCategory(raw)
		if err != nil {
			return criteria, err
		}
		criteria.StatusCategory = tab
	}
	if raw := c.Query("status"); raw != "" {
		s, err := status.Parse(raw)
		if err != nil {
			return criteria, err
		}
		criteria.Status = s
	}
	return criteria, nil
}
