// Package eventbus provides a typed publish/subscribe event bus for
// cross-component communication within tsk.
package eventbus

import (
	"time"

	"github.com/hay-kot/tsk/internal/core/task"
)

// EventType identifies a kind of domain event.
type EventType string

// The closed set of domain events command execution can produce.
const (
	// Keep list sorted A-Z
	EventTaskAdded     EventType = "task.added"
	EventTaskCompleted EventType = "task.completed"
	EventTaskDeleted   EventType = "task.deleted"
	EventTaskReopened  EventType = "task.reopened"
	EventTaskUpdated   EventType = "task.updated"
	EventUndoPerformed EventType = "undo.performed"
)

// Types returns every event type, for subscribers that want them all.
func Types() []EventType {
	return []EventType{
		EventTaskAdded,
		EventTaskCompleted,
		EventTaskDeleted,
		EventTaskReopened,
		EventTaskUpdated,
		EventUndoPerformed,
	}
}

// Event is a fact about a domain mutation. It is published once and never
// mutated afterwards.
type Event struct {
	Type      EventType
	Timestamp time.Time
	Payload   any
}

// New creates a timestamped event.
func New(eventType EventType, payload any) Event {
	return Event{
		Type:      eventType,
		Timestamp: time.Now(),
		Payload:   payload,
	}
}

// TaskAddedPayload is emitted when a task is created.
type TaskAddedPayload struct {
	Task task.Task
}

// TaskCompletedPayload is emitted when a task is marked done.
type TaskCompletedPayload struct {
	Task task.Task
}

// TaskReopenedPayload is emitted when a completed task is reopened.
type TaskReopenedPayload struct {
	Task task.Task
}

// TaskDeletedPayload is emitted when a task is deleted. Task holds the
// state just before deletion.
type TaskDeletedPayload struct {
	Task task.Task
}

// TaskUpdatedPayload is emitted when a task's title or description changes.
type TaskUpdatedPayload struct {
	Task           task.Task
	OldTitle       string
	OldDescription string
}

// UndoPerformedPayload is emitted when a prior mutation is reversed.
// Undone names the event type of the reversed mutation.
type UndoPerformedPayload struct {
	Undone EventType
	Task   task.Task
}
