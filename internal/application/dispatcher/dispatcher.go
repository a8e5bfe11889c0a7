// Package dispatcher fans domain events out to subscribers.
//
// Inline subscribers run inside Dispatch in subscription order, and the first
// failure is returned to the service that raised the event. Deferred
// subscribers run later on a single background worker, in the order events
// were dispatched, so an outbound transport never holds up a command.
package dispatcher

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/garyjia/expense-companion/internal/domain/event"
)

// DefaultQueueSize bounds the deferred delivery queue
const DefaultQueueSize = 256

// ErrClosed is returned by Dispatch and Close once the dispatcher is closed
var ErrClosed = errors.New("dispatcher is closed")

// Dispatcher routes events to registered handlers
type Dispatcher interface {
	// SubscribeAll registers the same named handler for every known event type
	SubscribeAll(name string, handler Handler, opts ...SubscribeOption)

	// Dispatch runs inline handlers and queues deferred ones.
	// Deferred handler failures are logged, never returned.
	Dispatch(ctx context.Context, evt *event.Event) error

	// Close stops accepting events and drains the deferred queue
	Close() error
}

// Logger interface for minimal logging dependency
type Logger interface {
	Info(msg string, keysAndValues ...interface{})
	Error(msg string, keysAndValues ...interface{})
}

type subscription struct {
	name     string
	handler  Handler
	deferred bool
}

// SubscribeOption configures one subscription
type SubscribeOption func(*subscription)

// Deferred moves a handler off the caller's path onto the background worker
func Deferred() SubscribeOption {
	return func(s *subscription) { s.deferred = true }
}

type delivery struct {
	ctx context.Context
	evt *event.Event
	sub subscription
}

type eventDispatcher struct {
	mu        sync.RWMutex
	handlers  map[event.Type][]subscription
	logger    Logger
	queueSize int
	queue     chan delivery
	done      chan struct{}
	closed    bool
}

// Option configures the dispatcher
type Option func(*eventDispatcher)

// WithLogger sets a logger for the dispatcher
func WithLogger(logger Logger) Option {
	return func(d *eventDispatcher) {
		d.logger = logger
	}
}

// WithQueueSize bounds the number of deferred deliveries waiting for the worker.
// Deliveries beyond it are dropped and logged.
func WithQueueSize(n int) Option {
	return func(d *eventDispatcher) {
		if n > 0 {
			d.queueSize = n
		}
	}
}

// NewDispatcher creates a dispatcher and starts its deferred worker
func NewDispatcher(opts ...Option) Dispatcher {
	d := &eventDispatcher{
		handlers:  make(map[event.Type][]subscription),
		logger:    nopLogger{},
		queueSize: DefaultQueueSize,
		done:      make(chan struct{}),
	}
	for _, opt := range opts {
		opt(d)
	}
	if d.logger == nil {
		d.logger = nopLogger{}
	}

	d.queue = make(chan delivery, d.queueSize)
	go d.run()
	return d
}

func (d *eventDispatcher) SubscribeAll(name string, handler Handler, opts ...SubscribeOption) {
	sub := subscription{name: name, handler: handler}
	for _, opt := range opts {
		opt(&sub)
	}

	d.mu.Lock()
	for _, t := range event.All() {
		d.handlers[t] = append(d.handlers[t], sub)
	}
	d.mu.Unlock()

	d.logger.Info("Handler registered", "handler_name", name, "deferred", sub.deferred)
}

func (d *eventDispatcher) Dispatch(ctx context.Context, evt *event.Event) error {
	var inline []subscription

	// deferred deliveries are queued under the read lock so Close cannot
	// close the queue underneath a send
	d.mu.RLock()
	if d.closed {
		d.mu.RUnlock()
		return ErrClosed
	}
	for _, sub := range d.handlers[evt.Type] {
		if !sub.deferred {
			inline = append(inline, sub)
			continue
		}
		d.enqueue(delivery{ctx: context.WithoutCancel(ctx), evt: evt, sub: sub})
	}
	d.mu.RUnlock()

	for _, sub := range inline {
		if err := d.invoke(ctx, evt, sub); err != nil {
			d.logger.Error("Handler error",
				"event_type", evt.Type,
				"event_id", evt.ID,
				"handler_name", sub.name,
				"error", err,
			)
			return fmt.Errorf("handler %s failed: %w", sub.name, err)
		}
	}
	return nil
}

func (d *eventDispatcher) enqueue(job delivery) {
	select {
	case d.queue <- job:
	default:
		d.logger.Error("Deferred queue full, event dropped",
			"event_type", job.evt.Type,
			"event_id", job.evt.ID,
			"handler_name", job.sub.name,
		)
	}
}

func (d *eventDispatcher) run() {
	defer close(d.done)
	for job := range d.queue {
		if err := d.invoke(job.ctx, job.evt, job.sub); err != nil {
			d.logger.Error("Deferred handler error",
				"event_type", job.evt.Type,
				"event_id", job.evt.ID,
				"handler_name", job.sub.name,
				"error", err,
			)
		}
	}
}

func (d *eventDispatcher) Close() error {
	d.mu.Lock()
	if d.closed {
		d.mu.Unlock()
		return ErrClosed
	}
	d.closed = true
	pending := len(d.queue)
	close(d.queue)
	d.mu.Unlock()

	d.logger.Info("Closing dispatcher, draining deferred queue", "pending", pending)
	<-d.done
	d.logger.Info("Dispatcher closed")
	return nil
}

// invoke runs a handler, turning a panic into an error
func (d *eventDispatcher) invoke(ctx context.Context, evt *event.Event, sub subscription) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("handler panic: %v", r)
		}
	}()
	return sub.handler(ctx, evt)
}

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}
