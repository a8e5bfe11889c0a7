package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/garyjia/expense-companion/internal/domain/event"
)

// Logger interface for minimal logging dependency
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

// EventDispatcher is the part of the dispatcher the services use
type EventDispatcher interface {
	Dispatch(ctx context.Context, evt *event.Event) error
}

var (
	ErrReportNotFound    = errors.New("report not found")
	ErrReportNotPending  = errors.New("report is not pending")
	ErrExpenseNotFound   = errors.New("expense not found")
	ErrReceiptNotFound   = errors.New("receipt not found")
	ErrCardNotFound      = errors.New("card transaction not found")
	ErrDeleteUnsupported = errors.New("deleting expenses is not supported")
	ErrAlreadyLinked     = errors.New("expense already belongs to a report")
	ErrInvalidInput      = errors.New("invalid input")
)

// ValidationError is a user-correctable input problem. Message is shown as is.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Message
	}
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Unwrap lets callers match any validation failure with errors.Is(err, ErrInvalidInput)
func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

func invalid(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// IsValidation reports whether err is a ValidationError
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err names a missing record
func IsNotFound(err error) bool {
	return errors.Is(err, ErrReportNotFound) ||
		errors.Is(err, ErrExpenseNotFound) ||
		errors.Is(err, ErrReceiptNotFound) ||
		errors.Is(err, ErrCardNotFound)
}

// emit dispatches evt after a successful write. Subscriber failures are
// logged and never undo the committed change.
func emit(ctx context.Context, d EventDispatcher, logger Logger, evt *event.Event) {
	if d == nil {
		return
	}
	if err := d.Dispatch(ctx, evt); err != nil {
		logger.Error("Failed to dispatch event", "error", err, "event_type", evt.Type, "aggregate_id", evt.AggregateID)
	}
}
