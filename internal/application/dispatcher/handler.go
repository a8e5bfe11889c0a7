package dispatcher

import (
	"context"

	"github.com/garyjia/expense-companion/internal/domain/event"
)

// Handler processes domain events
type Handler func(ctx context.Context, evt *event.Event) error

// Publisher is the subset of an outbound event transport the dispatcher needs
type Publisher interface {
	Publish(ctx context.Context, evt *event.Event) error
}

// AuditLogHandler writes every event to the log
func AuditLogHandler(logger Logger) Handler {
	return func(ctx context.Context, evt *event.Event) error {
		logger.Info("Domain event",
			"event_type", evt.Type,
			"event_id", evt.ID,
			"aggregate_id", evt.AggregateID,
			"actor", evt.Actor,
			"correlation_id", evt.CorrelationID,
		)
		return nil
	}
}

// PublishHandler forwards events to publisher
func PublishHandler(publisher Publisher) Handler {
	return func(ctx context.Context, evt *event.Event) error {
		return publisher.Publish(ctx, evt)
	}
}
