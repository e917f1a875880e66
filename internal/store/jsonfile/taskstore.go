// Package jsonfile implements task.Store backed by a single JSON file.
// Every operation loads and rewrites the whole file; task counts in a
// console session are small enough that this stays simple and safe.
package jsonfile

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/hay-kot/tsk/internal/core/task"
)

// taskFile is the root JSON structure stored on disk.
type taskFile struct {
	NextID int         `json:"next_id"`
	Tasks  []task.Task `json:"tasks"`
}

// TaskStore implements task.Store using a JSON file for persistence.
type TaskStore struct {
	path string
	mu   sync.RWMutex
}

var _ task.Store = (*TaskStore)(nil)

// NewTaskStore creates a JSON file task store at the given path. The file
// is created on first write.
func NewTaskStore(path string) *TaskStore {
	return &TaskStore{path: path}
}

// Create assigns the next id and timestamps, then persists the task.
func (s *TaskStore) Create(ctx context.Context, t *task.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil {
		return err
	}

	t.ID = file.NextID
	file.NextID++

	now := time.Now()
	if t.CreatedAt.IsZero() {
		t.CreatedAt = now
	}
	t.UpdatedAt = now

	file.Tasks = append(file.Tasks, *t)
	return s.save(file)
}

// Get returns a task by id. Returns task.ErrNotFound if missing.
func (s *TaskStore) Get(ctx context.Context, id int) (task.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := s.load()
	if err != nil {
		return task.Task{}, err
	}

	for _, t := range file.Tasks {
		if t.ID == id {
			return t, nil
		}
	}
	return task.Task{}, task.ErrNotFound
}

// List returns tasks matching the filter, ordered by id ascending.
func (s *TaskStore) List(ctx context.Context, filter task.ListFilter) ([]task.Task, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	file, err := s.load()
	if err != nil {
		return nil, err
	}

	var out []task.Task
	for _, t := range file.Tasks {
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
func (s *TaskStore) Update(ctx context.Context, t task.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil {
		return err
	}

	for i := range file.Tasks {
		if file.Tasks[i].ID == t.ID {
			t.UpdatedAt = time.Now()
			file.Tasks[i] = t
			return s.save(file)
		}
	}
	return task.ErrNotFound
}

// Delete removes a task by id.
func (s *TaskStore) Delete(ctx context.Context, id int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil {
		return err
	}

	for i := range file.Tasks {
		if file.Tasks[i].ID == id {
			file.Tasks = append(file.Tasks[:i], file.Tasks[i+1:]...)
			return s.save(file)
		}
	}
	return task.ErrNotFound
}

// Restore reinserts a deleted task under its original id.
func (s *TaskStore) Restore(ctx context.Context, t task.Task) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	file, err := s.load()
	if err != nil {
		return err
	}

	for _, have := range file.Tasks {
		if have.ID == t.ID {
			return task.ErrExists
		}
	}

	file.Tasks = append(file.Tasks, t)
	if t.ID >= file.NextID {
		file.NextID = t.ID + 1
	}
	return s.save(file)
}

// load reads the file, returning an empty structure if it does not exist.
func (s *TaskStore) load() (taskFile, error) {
	file := taskFile{NextID: 1}

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return file, nil
		}
		return file, fmt.Errorf("read task file: %w", err)
	}

	if err := json.Unmarshal(data, &file); err != nil {
		return file, fmt.Errorf("parse task file: %w", err)
	}
	if file.NextID < 1 {
		file.NextID = 1
	}
	return file, nil
}

// save writes the file atomically via a temp file rename.
func (s *TaskStore) save(file taskFile) error {
	data, err := json.MarshalIndent(file, "", "  ")
	if err != nil {
		return fmt.Errorf("encode task file: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write task file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("replace task file: %w", err)
	}
	return nil
}
