// Package tsk wires the command interpretation pipeline to the task domain:
// parsed commands are executed against the store, undo history is recorded,
// and domain events are published on the bus.
package tsk

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/hay-kot/tsk/internal/core/config"
	"github.com/hay-kot/tsk/internal/core/eventbus"
	"github.com/hay-kot/tsk/internal/core/parser"
	"github.com/hay-kot/tsk/internal/core/session"
	"github.com/hay-kot/tsk/internal/core/task"
)

// ErrNothingToUndo is returned when undo runs with an empty history.
var ErrNothingToUndo = errors.New("nothing to undo")

// FilterError marks an unrecognized list filter. It is degradable: the
// recovery manager may choose to list without a filter instead.
type FilterError struct {
	Name string
}

func (e *FilterError) Error() string {
	return fmt.Sprintf("unknown filter %q", e.Name)
}

// PreconditionError marks an undo whose target changed since the action
// was recorded.
type PreconditionError struct {
	Label  string
	Reason string
}

func (e *PreconditionError) Error() string {
	return fmt.Sprintf("cannot undo %s: %s", e.Label, e.Reason)
}

// NotFoundError marks a command referencing a task id that does not exist.
type NotFoundError struct {
	ID int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("no task with id %d", e.ID)
}

// StateError marks a command that is well-formed but inapplicable to the
// task's current state, e.g. completing an already completed task.
type StateError struct {
	ID     int
	Reason string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("task %d %s", e.ID, e.Reason)
}

// undoEntry records one reversible mutation. Before/After hold the task
// state around the mutation; the zero Task stands in for "did not exist".
type undoEntry struct {
	Event  eventbus.EventType
	Before task.Task
	After  task.Task
	At     time.Time
}

// Label describes the entry for disambiguation prompts and diagnostics.
func (u undoEntry) Label() string {
	switch u.Event {
	case eventbus.EventTaskAdded:
		return fmt.Sprintf("added task %d %q", u.After.ID, u.After.Title)
	case eventbus.EventTaskCompleted:
		return fmt.Sprintf("completed task %d %q", u.After.ID, u.After.Title)
	case eventbus.EventTaskReopened:
		return fmt.Sprintf("reopened task %d %q", u.After.ID, u.After.Title)
	case eventbus.EventTaskDeleted:
		return fmt.Sprintf("deleted task %d %q", u.Before.ID, u.Before.Title)
	case eventbus.EventTaskUpdated:
		return fmt.Sprintf("updated task %d %q", u.After.ID, u.After.Title)
	default:
		return string(u.Event)
	}
}

// Result is the outcome of one executed command.
type Result struct {
	Message string
	// Tasks and ShowTasks carry list output.
	Tasks     []task.Task
	ShowTasks bool
	// Candidates is non-empty when undo needs disambiguation. The command
	// did not execute; the caller must prompt for a selection.
	Candidates []session.Candidate
	// Degraded marks a result produced through a best-effort fallback.
	Degraded bool
}

// maxUndoCandidates bounds how many history entries a disambiguation
// prompt offers.
const maxUndoCandidates = 9

// Executor runs validated commands against the task store. Every mutation
// publishes exactly one event; queries publish none.
type Executor struct {
	store task.Store
	bus   *eventbus.Bus
	cfg   *config.Config
	log   zerolog.Logger

	undo []undoEntry
}

// NewExecutor creates an executor bound to a store and bus.
func NewExecutor(store task.Store, bus *eventbus.Bus, cfg *config.Config, log zerolog.Logger) *Executor {
	return &Executor{
		store: store,
		bus:   bus,
		cfg:   cfg,
		log:   log.With().Str("component", "executor").Logger(),
	}
}

// Execute runs one valid parse result. Callers must not pass invalid
// results; the parser already rejected those.
func (e *Executor) Execute(ctx context.Context, res parser.ParseResult) (Result, error) {
	switch res.Command {
	case parser.CommandAdd:
		return e.execAdd(ctx, res)
	case parser.CommandList:
		return e.execList(ctx, res)
	case parser.CommandDelete:
		return e.execDelete(ctx, res)
	case parser.CommandComplete:
		return e.execComplete(ctx, res)
	case parser.CommandIncomplete:
		return e.execIncomplete(ctx, res)
	case parser.CommandUpdate:
		return e.execUpdate(ctx, res)
	case parser.CommandUndo:
		return e.execUndo(ctx)
	default:
		return Result{}, fmt.Errorf("command %q is not executable", res.Command)
	}
}

// Describe names the target of a command for confirmation prompts.
func (e *Executor) Describe(ctx context.Context, res parser.ParseResult) string {
	if id := res.ID(); id != 0 {
		if t, err := e.store.Get(ctx, id); err == nil {
			return fmt.Sprintf("%s task %d %q", res.Command, t.ID, t.Title)
		}
		return fmt.Sprintf("%s task %d", res.Command, id)
	}
	return string(res.Command)
}

func (e *Executor) execAdd(ctx context.Context, res parser.ParseResult) (Result, error) {
	t := task.Task{
		Title: res.Title(),
		Tags:  res.Tags(),
	}
	if desc, ok := res.Description(); ok {
		t.Description = desc
	}

	if err := e.store.Create(ctx, &t); err != nil {
		return Result{}, e.storeErr(err, 0)
	}

	e.record(undoEntry{Event: eventbus.EventTaskAdded, After: t})
	e.bus.Publish(eventbus.New(eventbus.EventTaskAdded, eventbus.TaskAddedPayload{Task: t}))
	e.log.Info().Int("id", t.ID).Str("title", t.Title).Msg("task added")

	return Result{Message: fmt.Sprintf("added task %d: %q", t.ID, t.Title)}, nil
}

func (e *Executor) execList(ctx context.Context, res parser.ParseResult) (Result, error) {
	name, explicit := res.Filter()
	if !explicit {
		name = e.cfg.List.Default
	}

	filter, ok := e.resolveFilter(name)
	if !ok {
		return Result{}, &FilterError{Name: name}
	}

	tasks, err := e.store.List(ctx, filter)
	if err != nil {
		return Result{}, e.storeErr(err, 0)
	}

	word := "tasks"
	if len(tasks) == 1 {
		word = "task"
	}
	return Result{
		Message:   fmt.Sprintf("%d %s", len(tasks), word),
		Tasks:     tasks,
		ShowTasks: true,
	}, nil
}

// ListUnfiltered is the graceful-degradation path for an unknown filter.
func (e *Executor) ListUnfiltered(ctx context.Context) (Result, error) {
	tasks, err := e.store.List(ctx, task.ListFilter{})
	if err != nil {
		return Result{}, e.storeErr(err, 0)
	}
	return Result{
		Message:   fmt.Sprintf("%d tasks", len(tasks)),
		Tasks:     tasks,
		ShowTasks: true,
		Degraded:  true,
	}, nil
}

// resolveFilter maps a filter name to a concrete ListFilter. Built-ins
// first, then saved filters from configuration.
func (e *Executor) resolveFilter(name string) (task.ListFilter, bool) {
	done := true
	pending := false

	switch name {
	case "", "all":
		return task.ListFilter{}, true
	case "pending":
		return task.ListFilter{Done: &pending}, true
	case "done":
		return task.ListFilter{Done: &done}, true
	}

	saved, ok := e.cfg.Filters[name]
	if !ok {
		return task.ListFilter{}, false
	}
	return task.ListFilter{Done: saved.Done, TagPatterns: saved.Tags}, true
}

func (e *Executor) execDelete(ctx context.Context, res parser.ParseResult) (Result, error) {
	id := res.ID()

	prior, err := e.store.Get(ctx, id)
	if err != nil {
		return Result{}, e.storeErr(err, id)
	}
	if err := e.store.Delete(ctx, id); err != nil {
		return Result{}, e.storeErr(err, id)
	}

	e.record(undoEntry{Event: eventbus.EventTaskDeleted, Before: prior})
	e.bus.Publish(eventbus.New(eventbus.EventTaskDeleted, eventbus.TaskDeletedPayload{Task: prior}))
	e.log.Info().Int("id", id).Msg("task deleted")

	return Result{Message: fmt.Sprintf("deleted task %d: %q", id, prior.Title)}, nil
}

func (e *Executor) execComplete(ctx context.Context, res parser.ParseResult) (Result, error) {
	id := res.ID()

	prior, err := e.store.Get(ctx, id)
	if err != nil {
		return Result{}, e.storeErr(err, id)
	}
	if prior.Done {
		return Result{}, &StateError{ID: id, Reason: "is already completed"}
	}

	updated := prior
	updated.Done = true
	now := time.Now()
	updated.CompletedAt = &now

	if err := e.store.Update(ctx, updated); err != nil {
		return Result{}, e.storeErr(err, id)
	}

	e.record(undoEntry{Event: eventbus.EventTaskCompleted, Before: prior, After: updated})
	e.bus.Publish(eventbus.New(eventbus.EventTaskCompleted, eventbus.TaskCompletedPayload{Task: updated}))
	e.log.Info().Int("id", id).Msg("task completed")

	return Result{Message: fmt.Sprintf("completed task %d: %q", id, updated.Title)}, nil
}

func (e *Executor) execIncomplete(ctx context.Context, res parser.ParseResult) (Result, error) {
	id := res.ID()

	prior, err := e.store.Get(ctx, id)
	if err != nil {
		return Result{}, e.storeErr(err, id)
	}
	if !prior.Done {
		return Result{}, &StateError{ID: id, Reason: "is not completed"}
	}

	updated := prior
	updated.Done = false
	updated.CompletedAt = nil

	if err := e.store.Update(ctx, updated); err != nil {
		return Result{}, e.storeErr(err, id)
	}

	e.record(undoEntry{Event: eventbus.EventTaskReopened, Before: prior, After: updated})
	e.bus.Publish(eventbus.New(eventbus.EventTaskReopened, eventbus.TaskReopenedPayload{Task: updated}))
	e.log.Info().Int("id", id).Msg("task reopened")

	return Result{Message: fmt.Sprintf("reopened task %d: %q", id, updated.Title)}, nil
}

func (e *Executor) execUpdate(ctx context.Context, res parser.ParseResult) (Result, error) {
	id := res.ID()

	prior, err := e.store.Get(ctx, id)
	if err != nil {
		return Result{}, e.storeErr(err, id)
	}

	updated := prior
	updated.Title = res.Title()
	if desc, ok := res.Description(); ok {
		updated.Description = desc
	}

	if err := e.store.Update(ctx, updated); err != nil {
		return Result{}, e.storeErr(err, id)
	}

	e.record(undoEntry{Event: eventbus.EventTaskUpdated, Before: prior, After: updated})
	e.bus.Publish(eventbus.New(eventbus.EventTaskUpdated, eventbus.TaskUpdatedPayload{
		Task:           updated,
		OldTitle:       prior.Title,
		OldDescription: prior.Description,
	}))
	e.log.Info().Int("id", id).Msg("task updated")

	return Result{Message: fmt.Sprintf("updated task %d: %q", id, updated.Title)}, nil
}

func (e *Executor) execUndo(ctx context.Context) (Result, error) {
	if len(e.undo) == 0 {
		return Result{}, ErrNothingToUndo
	}

	if e.cfg.Undo.Choose == config.UndoChoosePrompt && len(e.undo) > 1 {
		return Result{Candidates: e.undoCandidates()}, nil
	}

	return e.applyUndo(ctx, len(e.undo)-1)
}

// ExecuteCandidate reverses the history entry picked during
// disambiguation. selection is the 1-based candidate index: candidate 1 is
// the most recent entry.
func (e *Executor) ExecuteCandidate(ctx context.Context, selection int) (Result, error) {
	if selection < 1 || selection > len(e.undo) {
		return Result{}, ErrNothingToUndo
	}
	return e.applyUndo(ctx, len(e.undo)-selection)
}

// undoCandidates lists recent history entries, newest first.
func (e *Executor) undoCandidates() []session.Candidate {
	n := len(e.undo)
	if n > maxUndoCandidates {
		n = maxUndoCandidates
	}

	candidates := make([]session.Candidate, 0, n)
	for i := 0; i < n; i++ {
		entry := e.undo[len(e.undo)-1-i]
		candidates = append(candidates, session.Candidate{Index: i + 1, Label: entry.Label()})
	}
	return candidates
}

// applyUndo reverses the history entry at index. The entry is removed only
// when the reversal succeeds; a failed undo leaves history intact so the
// failure is reported, not silently discarded.
func (e *Executor) applyUndo(ctx context.Context, index int) (Result, error) {
	entry := e.undo[index]

	undone, err := e.reverse(ctx, entry)
	if err != nil {
		return Result{}, err
	}

	e.undo = append(e.undo[:index], e.undo[index+1:]...)
	e.bus.Publish(eventbus.New(eventbus.EventUndoPerformed, eventbus.UndoPerformedPayload{
		Undone: entry.Event,
		Task:   undone,
	}))
	e.log.Info().Str("undone", string(entry.Event)).Int("id", undone.ID).Msg("undo performed")

	return Result{Message: fmt.Sprintf("undid %s", entry.Label())}, nil
}

// reverse applies the inverse mutation for one history entry, verifying
// the target still looks the way the entry recorded it.
func (e *Executor) reverse(ctx context.Context, entry undoEntry) (task.Task, error) {
	switch entry.Event {
	case eventbus.EventTaskAdded:
		cur, err := e.store.Get(ctx, entry.After.ID)
		if err != nil {
			return task.Task{}, &PreconditionError{Label: entry.Label(), Reason: "the task no longer exists"}
		}
		if cur.Title != entry.After.Title {
			return task.Task{}, &PreconditionError{Label: entry.Label(), Reason: "the task changed since"}
		}
		if err := e.store.Delete(ctx, cur.ID); err != nil {
			return task.Task{}, e.storeErr(err, cur.ID)
		}
		return cur, nil

	case eventbus.EventTaskCompleted:
		cur, err := e.store.Get(ctx, entry.After.ID)
		if err != nil {
			return task.Task{}, &PreconditionError{Label: entry.Label(), Reason: "the task no longer exists"}
		}
		if !cur.Done {
			return task.Task{}, &PreconditionError{Label: entry.Label(), Reason: "the task is no longer completed"}
		}
		if err := e.store.Update(ctx, entry.Before); err != nil {
			return task.Task{}, e.storeErr(err, entry.Before.ID)
		}
		return entry.Before, nil

	case eventbus.EventTaskReopened:
		cur, err := e.store.Get(ctx, entry.After.ID)
		if err != nil {
			return task.Task{}, &PreconditionError{Label: entry.Label(), Reason: "the task no longer exists"}
		}
		if cur.Done {
			return task.Task{}, &PreconditionError{Label: entry.Label(), Reason: "the task was completed again"}
		}
		if err := e.store.Update(ctx, entry.Before); err != nil {
			return task.Task{}, e.storeErr(err, entry.Before.ID)
		}
		return entry.Before, nil

	case eventbus.EventTaskUpdated:
		cur, err := e.store.Get(ctx, entry.After.ID)
		if err != nil {
			return task.Task{}, &PreconditionError{Label: entry.Label(), Reason: "the task no longer exists"}
		}
		if cur.Title != entry.After.Title || cur.Description != entry.After.Description {
			return task.Task{}, &PreconditionError{Label: entry.Label(), Reason: "the task changed since"}
		}
		if err := e.store.Update(ctx, entry.Before); err != nil {
			return task.Task{}, e.storeErr(err, entry.Before.ID)
		}
		return entry.Before, nil

	case eventbus.EventTaskDeleted:
		if err := e.store.Restore(ctx, entry.Before); err != nil {
			if errors.Is(err, task.ErrExists) {
				return task.Task{}, &PreconditionError{Label: entry.Label(), Reason: "the task id was reused"}
			}
			return task.Task{}, e.storeErr(err, entry.Before.ID)
		}
		return entry.Before, nil

	default:
		return task.Task{}, fmt.Errorf("cannot reverse event %q", entry.Event)
	}
}

// record appends an undo entry, pruning the oldest past the limit.
func (e *Executor) record(entry undoEntry) {
	entry.At = time.Now()
	e.undo = append(e.undo, entry)

	if limit := e.cfg.Undo.Limit; limit > 0 && len(e.undo) > limit {
		e.undo = e.undo[len(e.undo)-limit:]
	}
}

// storeErr maps store failures to user-facing errors. ErrNotFound becomes
// a NotFoundError; anything else is unexpected and surfaces as-is for the
// interpreter to treat as a data-integrity failure.
func (e *Executor) storeErr(err error, id int) error {
	if errors.Is(err, task.ErrNotFound) {
		return &NotFoundError{ID: id}
	}
	return err
}
