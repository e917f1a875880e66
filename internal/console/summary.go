package console

import (
	"fmt"
	"strings"
	"sync"

	"github.com/hay-kot/tsk/internal/core/eventbus"
)

// subscriberName identifies the summary's bus subscription.
const subscriberName = "console.summary"

// Summary observes bus events for the end-of-session report. It never
// queries the store; everything it reports was announced on the bus.
type Summary struct {
	mu     sync.Mutex
	counts map[eventbus.EventType]int
}

// NewSummary creates an empty summary.
func NewSummary() *Summary {
	return &Summary{counts: map[eventbus.EventType]int{}}
}

// Attach subscribes the summary to every event type.
func (s *Summary) Attach(bus *eventbus.Bus) {
	for _, eventType := range eventbus.Types() {
		bus.Subscribe(eventType, subscriberName, s.observe)
	}
}

// Detach removes the summary's subscriptions.
func (s *Summary) Detach(bus *eventbus.Bus) {
	for _, eventType := range eventbus.Types() {
		bus.Unsubscribe(eventType, subscriberName)
	}
}

func (s *Summary) observe(e eventbus.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.counts[e.Type]++
}

// Render produces the one-line session report.
func (s *Summary) Render() string {
	s.mu.Lock()
	defer s.mu.Unlock()

	parts := make([]string, 0, 6)
	for _, entry := range []struct {
		eventType eventbus.EventType
		verb      string
	}{
		{eventbus.EventTaskAdded, "added"},
		{eventbus.EventTaskCompleted, "completed"},
		{eventbus.EventTaskReopened, "reopened"},
		{eventbus.EventTaskUpdated, "updated"},
		{eventbus.EventTaskDeleted, "deleted"},
		{eventbus.EventUndoPerformed, "undone"},
	} {
		if n := s.counts[entry.eventType]; n > 0 {
			parts = append(parts, fmt.Sprintf("%d %s", n, entry.verb))
		}
	}

	if len(parts) == 0 {
		return "no changes this session"
	}
	return "session summary: " + strings.Join(parts, ", ")
}
