package events

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/gofrs/uuid"
	"go.uber.org/zap"
)

// ===============================
// EVENT INTERFACE
// ===============================

// Event represents a domain event
type Event interface {
	GetEventID() string
	GetEventType() string
	GetTimestamp() time.Time
	GetUserID() *uuid.UUID
}

// BaseEvent provides common event functionality
type BaseEvent struct {
	EventID   string     `json:"event_id"`
	EventType string     `json:"event_type"`
	Timestamp time.Time  `json:"timestamp"`
	UserID    *uuid.UUID `json:"user_id,omitempty"`
}

// GetEventID returns the event ID
func (e *BaseEvent) GetEventID() string { return e.EventID }

// GetEventType returns the event type
func (e *BaseEvent) GetEventType() string { return e.EventType }

// GetTimestamp returns the event timestamp
func (e *BaseEvent) GetTimestamp() time.Time { return e.Timestamp }

// GetUserID returns the user ID associated with the event
func (e *BaseEvent) GetUserID() *uuid.UUID { return e.UserID }

// NewBaseEvent stamps a fresh event envelope
func NewBaseEvent(eventType string, userID *uuid.UUID) BaseEvent {
	id, _ := uuid.NewV4()
	return BaseEvent{
		EventID:   id.String(),
		EventType: eventType,
		Timestamp: time.Now(),
		UserID:    userID,
	}
}

// ===============================
// EVENT BUS
// ===============================

// Handler processes one event. Handler errors are logged, never propagated
// to the publisher: side effects (email, cache invalidation) must not block
// the core operation that emitted the event.
type Handler func(ctx context.Context, event Event) error

// EventBus defines publish/subscribe for domain events
type EventBus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType string, handler Handler)
	Close()
}

// inMemoryBus dispatches events to subscribers on background goroutines
type inMemoryBus struct {
	mu       sync.RWMutex
	handlers map[string][]Handler
	logger   *zap.Logger
	wg       sync.WaitGroup
	closed   bool
}

// NewInMemoryBus creates the in-process event bus
func NewInMemoryBus(logger *zap.Logger) EventBus {
	return &inMemoryBus{
		handlers: make(map[string][]Handler),
		logger:   logger,
	}
}

// Subscribe registers a handler for an event type
func (b *inMemoryBus) Subscribe(eventType string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[eventType] = append(b.handlers[eventType], handler)
}

// Publish dispatches the event to all handlers asynchronously.
// The returned error only covers publishing itself, not handler outcomes.
func (b *inMemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	defer b.mu.RUnlock()

	if b.closed {
		return fmt.Errorf("event bus is closed")
	}

	handlers := b.handlers[event.GetEventType()]
	if len(handlers) == 0 {
		b.logger.Debug("No handlers for event", zap.String("event_type", event.GetEventType()))
		return nil
	}

	for _, handler := range handlers {
		h := handler
		b.wg.Add(1)
		go func() {
			defer b.wg.Done()
			// Detach from the request context so in-flight side effects
			// survive the originating request completing.
			hctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
			defer cancel()

			if err := h(hctx, event); err != nil {
				b.logger.Warn("Event handler failed",
					zap.String("event_type", event.GetEventType()),
					zap.String("event_id", event.GetEventID()),
					zap.Error(err),
				)
			}
		}()
	}

	return nil
}

// Close waits for in-flight handlers to finish
func (b *inMemoryBus) Close() {
	b.mu.Lock()
	b.closed = true
	b.mu.Unlock()
	b.wg.Wait()
}
