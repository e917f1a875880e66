package eventbus

import (
	"fmt"
	"sync"

	"github.com/rs/zerolog"
)

// Handler consumes one published event.
type Handler func(Event)

// subscription binds a named handler to an event type. Names give handlers
// a stable identity: funcs are not comparable in Go, so idempotent
// subscribe and unsubscribe key on the (type, name) pair.
type subscription struct {
	name    string
	handler Handler
}

// Bus is a synchronous publish/subscribe broker. It is safe for concurrent
// use: one mutex guards the subscription map, and Publish holds it only
// long enough to snapshot the handler list for the event's type. Handlers
// therefore run outside the lock and may subscribe or unsubscribe during
// their own invocation without corrupting the in-flight dispatch.
//
// A Bus is process-scoped state with an explicit constructor and Clear
// teardown; inject it, don't make it a package global.
type Bus struct {
	mu   sync.Mutex
	subs map[EventType][]subscription
	log  zerolog.Logger
}

// NewBus creates an empty bus. Handler panics are logged on the given logger.
func NewBus(log zerolog.Logger) *Bus {
	return &Bus{
		subs: make(map[EventType][]subscription),
		log:  log.With().Str("component", "eventbus").Logger(),
	}
}

// Subscribe registers a named handler for an event type. Subscribing the
// same name twice for the same type is a no-op, never a duplicate entry.
func (b *Bus) Subscribe(eventType EventType, name string, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for _, sub := range b.subs[eventType] {
		if sub.name == name {
			return
		}
	}
	b.subs[eventType] = append(b.subs[eventType], subscription{name: name, handler: handler})
}

// Unsubscribe removes a named handler for an event type. It reports whether
// a removal actually occurred.
func (b *Bus) Unsubscribe(eventType EventType, name string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()

	subs := b.subs[eventType]
	for i, sub := range subs {
		if sub.name == name {
			b.subs[eventType] = append(subs[:i:i], subs[i+1:]...)
			return true
		}
	}
	return false
}

// Publish dispatches an event to every handler subscribed to its type, in
// subscription order. A handler that panics is contained and logged;
// dispatch continues to the remaining handlers, and Publish never
// propagates a handler failure to the caller.
func (b *Bus) Publish(event Event) {
	b.mu.Lock()
	snapshot := make([]subscription, len(b.subs[event.Type]))
	copy(snapshot, b.subs[event.Type])
	b.mu.Unlock()

	for _, sub := range snapshot {
		b.invoke(sub, event)
	}
}

func (b *Bus) invoke(sub subscription, event Event) {
	defer func() {
		if r := recover(); r != nil {
			b.log.Error().
				Str("event", string(event.Type)).
				Str("subscriber", sub.name).
				Str("panic", fmt.Sprint(r)).
				Msg("subscriber panicked")
		}
	}()
	sub.handler(event)
}

// SubscriberCount returns the number of handlers registered for a type.
func (b *Bus) SubscriberCount(eventType EventType) int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs[eventType])
}

// Clear drops every subscription. Called once at session teardown.
func (b *Bus) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.subs = make(map[EventType][]subscription)
}
