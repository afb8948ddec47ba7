package testkit

import (
	"context"
	"sync"

	"github.com/osse101/PigFarmBot_Go/internal/event"
)

// RecordingBus captures published events and forwards them to subscribers.
type RecordingBus struct {
	*event.MemoryBus

	mu     sync.Mutex
	events []event.Event
}

// NewRecordingBus returns an empty recorder.
func NewRecordingBus() *RecordingBus {
	return &RecordingBus{MemoryBus: event.NewMemoryBus()}
}

func (b *RecordingBus) Publish(ctx context.Context, e event.Event) error {
	b.mu.Lock()
	b.events = append(b.events, e)
	b.mu.Unlock()
	return b.MemoryBus.Publish(ctx, e)
}

// Types lists the published event types in order.
func (b *RecordingBus) Types() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	out := make([]string, len(b.events))
	for i, e := range b.events {
		out[i] = string(e.Type)
	}
	return out
}

// Last returns the most recent event of type t.
func (b *RecordingBus) Last(t string) (event.Event, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for i := len(b.events) - 1; i >= 0; i-- {
		if string(b.events[i].Type) == t {
			return b.events[i], true
		}
	}
	return event.Event{}, false
}
