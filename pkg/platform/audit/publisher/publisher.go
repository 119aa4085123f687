// Package publisher emits audit events to a Store, synchronously or through
// a bounded buffer drained by a background worker.
package publisher

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"

	audit "tailscan/pkg/platform/audit"
	"tailscan/pkg/requestcontext"
)

const (
	drainBatch    = 64
	drainInterval = 50 * time.Millisecond
)

// Publisher fills in event defaults and hands events to a store.
type Publisher struct {
	store   audit.Store
	logger  *slog.Logger
	metrics *Metrics

	buffer *RingBuffer
	wake   chan struct{}
	stop   chan struct{}
	wg     sync.WaitGroup
	once   sync.Once
}

// Option configures the Publisher.
type Option func(*Publisher)

// WithLogger sets a logger for error reporting.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Publisher) { p.logger = logger }
}

// WithMetrics sets the metrics collector.
func WithMetrics(m *Metrics) Option {
	return func(p *Publisher) { p.metrics = m }
}

// WithAsyncBuffer makes Emit non-blocking. Events are buffered and written
// by a background worker; when the buffer is full the oldest is dropped.
func WithAsyncBuffer(capacity int) Option {
	return func(p *Publisher) { p.buffer = NewRingBuffer(capacity) }
}

// NewPublisher creates a publisher over store.
func NewPublisher(store audit.Store, opts ...Option) *Publisher {
	p := &Publisher{
		store:  store,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.buffer != nil {
		p.wake = make(chan struct{}, 1)
		p.stop = make(chan struct{})
		p.wg.Add(1)
		go p.run()
	}
	return p
}

// Emit records an event. In async mode it never blocks on the store and
// never returns a store error.
func (p *Publisher) Emit(ctx context.Context, event audit.Event) error {
	if event.ID == "" {
		event.ID = uuid.NewString()
	}
	if event.Timestamp.IsZero() {
		event.Timestamp = requestcontext.Now(ctx)
	}
	if event.RequestID == "" {
		event.RequestID = requestcontext.RequestID(ctx)
	}
	if event.Category == "" {
		event.Category = audit.AuditEvent(event.Action).Category()
	}

	if p.buffer == nil {
		return p.persist(ctx, event)
	}
	if p.buffer.Enqueue(event) {
		p.metrics.IncDropped()
	}
	select {
	case p.wake <- struct{}{}:
	default:
	}
	return nil
}

func (p *Publisher) persist(ctx context.Context, event audit.Event) error {
	if err := p.store.Append(ctx, event); err != nil {
		p.metrics.IncPersistFailure()
		p.logger.ErrorContext(ctx, "failed to persist audit event",
			"action", event.Action,
			"tail_number", event.TailNumber,
			"error", err,
		)
		return err
	}
	p.metrics.IncPublished(string(event.Category))
	return nil
}

func (p *Publisher) run() {
	defer p.wg.Done()
	ticker := time.NewTicker(drainInterval)
	defer ticker.Stop()
	for {
		select {
		case <-p.stop:
			p.drain()
			return
		case <-p.wake:
			p.drain()
		case <-ticker.C:
			p.drain()
		}
	}
}

func (p *Publisher) drain() {
	for {
		batch := p.buffer.DequeueBatch(drainBatch)
		if len(batch) == 0 {
			return
		}
		for _, event := range batch {
			// failures are logged and counted in persist
			_ = p.persist(context.Background(), event)
		}
	}
}

// Close flushes buffered events and stops the worker.
func (p *Publisher) Close() {
	if p.buffer == nil {
		return
	}
	p.once.Do(func() {
		close(p.stop)
		p.wg.Wait()
	})
}
