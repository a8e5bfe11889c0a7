// Package messaging forwards domain events to a RabbitMQ topic exchange.
package messaging

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"

	"github.com/garyjia/expense-companion/internal/application/port"
	"github.com/garyjia/expense-companion/internal/domain/event"
)

const publishTimeout = 5 * time.Second

// channel is the part of *amqp091.Channel the publisher uses
type channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp091.Table) error
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp091.Publishing) error
	Close() error
}

// Message is the wire form of a published event
type Message struct {
	ID            string                 `json:"id"`
	Type          string                 `json:"type"`
	AggregateID   string                 `json:"aggregate_id"`
	Actor         string                 `json:"actor,omitempty"`
	CorrelationID string                 `json:"correlation_id,omitempty"`
	Payload       map[string]interface{} `json:"payload"`
	OccurredAt    time.Time              `json:"occurred_at"`
}

// NewMessage converts a domain event to its wire form
func NewMessage(evt *event.Event) Message {
	return Message{
		ID:            evt.ID,
		Type:          evt.Type.String(),
		AggregateID:   evt.AggregateID,
		Actor:         evt.Actor,
		CorrelationID: evt.CorrelationID,
		Payload:       evt.Payload,
		OccurredAt:    evt.Timestamp,
	}
}

// Publisher implements port.EventPublisher. Events are routed by their type,
// so consumers bind queues with keys like "report.*".
type Publisher struct {
	conn     *amqp091.Connection
	channel  channel
	exchange string
	logger   *zap.Logger
}

// NewPublisher dials url and declares a durable topic exchange
func NewPublisher(url, exchange string, logger *zap.Logger) (*Publisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	p, err := newPublisher(ch, exchange, logger)
	if err != nil {
		conn.Close()
		return nil, err
	}
	p.conn = conn

	logger.Info("Event publisher connected", zap.String("exchange", exchange))
	return p, nil
}

func newPublisher(ch channel, exchange string, logger *zap.Logger) (*Publisher, error) {
	err := ch.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		ch.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}
	return &Publisher{channel: ch, exchange: exchange, logger: logger}, nil
}

// Publish sends evt as a persistent JSON message
func (p *Publisher) Publish(ctx context.Context, evt *event.Event) error {
	body, err := json.Marshal(NewMessage(evt))
	if err != nil {
		return fmt.Errorf("marshal message: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	err = p.channel.PublishWithContext(ctx,
		p.exchange,        // exchange
		evt.Type.String(), // routing key
		false,             // mandatory
		false,             // immediate
		amqp091.Publishing{
			ContentType:   "application/json",
			DeliveryMode:  amqp091.Persistent,
			MessageId:     evt.ID,
			CorrelationId: evt.CorrelationID,
			Type:          evt.Type.String(),
			Timestamp:     evt.Timestamp,
			Body:          body,
		},
	)
	if err != nil {
		p.logger.Error("Failed to publish event",
			zap.String("event_type", evt.Type.String()),
			zap.String("event_id", evt.ID),
			zap.Error(err))
		return fmt.Errorf("publish message: %w", err)
	}

	p.logger.Debug("Published event",
		zap.String("event_type", evt.Type.String()),
		zap.String("aggregate_id", evt.AggregateID),
		zap.String("exchange", p.exchange))
	return nil
}

// Close closes the channel and the connection
func (p *Publisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}

var _ port.EventPublisher = (*Publisher)(nil)
