// Package testbus provides test utilities for the event bus.
// It wraps a real Bus with event recording and assertion helpers.
package testbus

import (
	"sync"
	"testing"

	"github.com/rs/zerolog"

	"github.com/hay-kot/tsk/internal/core/eventbus"
)

// Bus wraps a real event bus with event recording for tests.
type Bus struct {
	*eventbus.Bus

	mu     sync.Mutex
	events []eventbus.Event
}

// New creates a test bus subscribed to every event type for recording.
// Subscriptions are cleared when the test completes.
func New(t *testing.T) *Bus {
	t.Helper()

	tb := &Bus{Bus: eventbus.NewBus(zerolog.Nop())}

	for _, eventType := range eventbus.Types() {
		tb.Subscribe(eventType, "testbus.recorder", tb.record)
	}

	t.Cleanup(tb.Clear)

	return tb
}

func (b *Bus) record(event eventbus.Event) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, event)
}

// Events returns a copy of all recorded events in publish order.
func (b *Bus) Events() []eventbus.Event {
	b.mu.Lock()
	defer b.mu.Unlock()

	out := make([]eventbus.Event, len(b.events))
	copy(out, b.events)
	return out
}

// Reset discards recorded events.
func (b *Bus) Reset() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = nil
}

// Count returns how many events of the given type were recorded.
func (b *Bus) Count(eventType eventbus.EventType) int {
	b.mu.Lock()
	defer b.mu.Unlock()

	n := 0
	for _, e := range b.events {
		if e.Type == eventType {
			n++
		}
	}
	return n
}

// AssertPublished fails the test unless at least one event of the given
// type was recorded. It returns the first matching event.
func (b *Bus) AssertPublished(t *testing.T, eventType eventbus.EventType) eventbus.Event {
	t.Helper()

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, e := range b.events {
		if e.Type == eventType {
			return e
		}
	}

	t.Fatalf("expected event %q to be published, recorded %d events", eventType, len(b.events))
	return eventbus.Event{}
}

// AssertNotPublished fails the test if any event of the given type was recorded.
func (b *Bus) AssertNotPublished(t *testing.T, eventType eventbus.EventType) {
	t.Helper()

	b.mu.Lock()
	defer b.mu.Unlock()

	for _, e := range b.events {
		if e.Type == eventType {
			t.Fatalf("expected no %q event, but one was published", eventType)
		}
	}
}
