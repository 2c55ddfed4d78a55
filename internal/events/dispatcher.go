package events

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
)

// EventHandler reacts to a published event.
type EventHandler func(context.Context, Event) error

// Dispatcher fans domain events out to subscribers.
type Dispatcher interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType EventType, handler EventHandler)
}

type inMemoryDispatcher struct {
	mu       sync.RWMutex
	handlers map[EventType][]EventHandler
}

// NewInMemoryDispatcher returns a synchronous, process-local dispatcher.
func NewInMemoryDispatcher() Dispatcher {
	return &inMemoryDispatcher{handlers: make(map[EventType][]EventHandler)}
}

// Publish runs every subscriber of event.Type in subscription order. A failing
// or panicking subscriber does not stop the rest; failures come back joined.
func (d *inMemoryDispatcher) Publish(ctx context.Context, event Event) error {
	d.mu.RLock()
	handlers := slices.Clone(d.handlers[event.Type])
	d.mu.RUnlock()

	var errs []error
	for i, handle := range handlers {
		if err := invoke(ctx, handle, event); err != nil {
			errs = append(errs, fmt.Errorf("%s subscriber %d: %w", event.Type, i, err))
		}
	}
	return errors.Join(errs...)
}

func (d *inMemoryDispatcher) Subscribe(eventType EventType, handler EventHandler) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.handlers[eventType] = append(d.handlers[eventType], handler)
}

func invoke(ctx context.Context, handle EventHandler, event Event) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic: %v", r)
		}
	}()
	return handle(ctx, event)
}
