// Package memory implements task.Store in process memory. It is the
// reference implementation used by tests and by sessions run with
// persistence disabled.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/hay-kot/tsk/internal/core/task"
)

// Store is an in-memory task store.
type Store struct {
	mu     sync.RWMutex
	tasks  map[int]task.Task
	nextID int
}

var _ task.Store = (*Store)(nil)

// New creates an empty in-memory store. IDs start at 1.
func New() *Store {
	return &Store{tasks: map[int]task.Task{}, nextID: 1}
}

// Create assigns the next id and timestamps, then persists the task.
func (s *Store) Create(ctx context.Context, t *task.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	t.ID = s.nextID
	s.nextID++

	now := time.Now()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now

	s.tasks[t.ID] = *t
	return nil
}

// Get returns a task by id.
func (s *Store) Get(ctx context.Context, id int) (task.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, ok := s.tasks[id]
	if !ok {
		return task.Task{}, task.ErrNotFound
	}
	return t, nil
}

// List returns tasks matching the filter, ordered by id ascending.
func (s *Store) List(ctx context.Context, filter task.ListFilter) ([]task.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]task.Task, 0, len(s.tasks))
	for _, t := range s.tasks {
		ok, err := filter.Matches(t)
		if err != nil {
			return nil, err
		}
		if ok {
			out = append(out, t)
		}
	}

	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Update overwrites an existing task and bumps its UpdatedAt.
func (s *Store) Update(ctx context.Context, t task.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[t.ID]; !ok {
		return task.ErrNotFound
	}
	t.UpdatedAt = time.Now()
	s.tasks[t.ID] = t
	return nil
}

// Delete removes a task by id.
func (s *Store) Delete(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[id]; !ok {
		return task.ErrNotFound
	}
	delete(s.tasks, id)
	return nil
}

// Restore reinserts a deleted task under its original id. The id counter
// never moves backwards, so restored ids cannot collide with future ones.
func (s *Store) Restore(ctx context.Context, t task.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.tasks[t.ID]; ok {
		return task.ErrExists
	}
	s.tasks[t.ID] = t
	if t.ID >= s.nextID {
		s.nextID = t.ID + 1
	}
	return nil
}
