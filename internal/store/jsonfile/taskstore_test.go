package jsonfile

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/tsk/internal/core/task"
)

func newTestStore(t *testing.T) (*TaskStore, string) {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tasks.json")
	return NewTaskStore(path), path
}

func TestTaskStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	item := task.Task{Title: "persisted", Tags: []string{"home"}}
	require.NoError(t, s.Create(ctx, &item))
	assert.Equal(t, 1, item.ID)

	got, err := s.Get(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "persisted", got.Title)
	assert.Equal(t, []string{"home"}, got.Tags)
}

func TestTaskStore_SurvivesReopen(t *testing.T) {
	ctx := context.Background()
	s, path := newTestStore(t)

	item := task.Task{Title: "durable"}
	require.NoError(t, s.Create(ctx, &item))

	reopened := NewTaskStore(path)
	got, err := reopened.Get(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "durable", got.Title)

	// The id sequence continues where the previous instance stopped.
	next := task.Task{Title: "next"}
	require.NoError(t, reopened.Create(ctx, &next))
	assert.Equal(t, item.ID+1, next.ID)
}

func TestTaskStore_MissingFileIsEmpty(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	tasks, err := s.List(ctx, task.ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, tasks)

	_, err = s.Get(ctx, 1)
	assert.ErrorIs(t, err, task.ErrNotFound)
}

func TestTaskStore_CorruptFile(t *testing.T) {
	ctx := context.Background()
	s, path := newTestStore(t)

	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	_, err := s.List(ctx, task.ListFilter{})
	assert.Error(t, err)
}

func TestTaskStore_DeleteAndRestore(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	item := task.Task{Title: "doomed"}
	require.NoError(t, s.Create(ctx, &item))
	require.NoError(t, s.Delete(ctx, item.ID))

	_, err := s.Get(ctx, item.ID)
	assert.ErrorIs(t, err, task.ErrNotFound)

	require.NoError(t, s.Restore(ctx, item))
	got, err := s.Get(ctx, item.ID)
	require.NoError(t, err)
	assert.Equal(t, "doomed", got.Title)
	assert.ErrorIs(t, s.Restore(ctx, item), task.ErrExists)
}

func TestTaskStore_UpdateMissing(t *testing.T) {
	ctx := context.Background()
	s, _ := newTestStore(t)

	assert.ErrorIs(t, s.Update(ctx, task.Task{ID: 5, Title: "ghost"}), task.ErrNotFound)
}
