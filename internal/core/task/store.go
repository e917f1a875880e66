package task

import (
	"context"
	"errors"
	"fmt"

	"github.com/bmatcuk/doublestar/v4"
)

var (
	// ErrNotFound is returned when a task does not exist.
	ErrNotFound = errors.New("task not found")
	// ErrExists is returned by Restore when the task id is already in use.
	ErrExists = errors.New("task id already exists")
)

// ListFilter controls which tasks List returns.
type ListFilter struct {
	// Done filters by completion state. Nil means all states.
	Done *bool
	// TagPatterns are doublestar globs matched against task tags.
	// Empty means no tag filtering; a task matches if any tag matches
	// any pattern.
	TagPatterns []string
}

// Matches reports whether a task passes the filter.
func (f ListFilter) Matches(t Task) (bool, error) {
	if f.Done != nil && t.Done != *f.Done {
		return false, nil
	}

	if len(f.TagPatterns) == 0 {
		return true, nil
	}

	for _, pattern := range f.TagPatterns {
		for _, tag := range t.Tags {
			ok, err := doublestar.Match(pattern, tag)
			if err != nil {
				return false, fmt.Errorf("match tag pattern %q: %w", pattern, err)
			}
			if ok {
				return true, nil
			}
		}
	}
	return false, nil
}

// Store defines task persistence. Implementations assign ids on Create and
// keep them stable for the life of the store.
type Store interface {
	// Create persists a new task, assigning the next id and timestamps.
	Create(ctx context.Context, t *Task) error

	// Get returns a task by id. Returns ErrNotFound if missing.
	Get(ctx context.Context, id int) (Task, error)

	// List returns tasks matching the filter, ordered by id ascending.
	List(ctx context.Context, filter ListFilter) ([]Task, error)

	// Update overwrites an existing task. Returns ErrNotFound if missing.
	Update(ctx context.Context, t Task) error

	// Delete removes a task by id. Returns ErrNotFound if missing.
	Delete(ctx context.Context, id int) error

	// Restore reinserts a previously deleted task under its original id.
	// Returns ErrExists if the id is occupied.
	Restore(ctx context.Context, t Task) error
}
