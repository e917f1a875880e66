package tsk

import (
	"context"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hay-kot/tsk/internal/core/config"
	"github.com/hay-kot/tsk/internal/core/eventbus/testbus"
	"github.com/hay-kot/tsk/internal/core/session"
	"github.com/hay-kot/tsk/internal/store/memory"
)

func newTestInterpreter(t *testing.T, cfg config.Config) *Interpreter {
	t.Helper()
	tb := testbus.New(t)
	executor := NewExecutor(memory.New(), tb.Bus, &cfg, zerolog.Nop())
	return NewInterpreter(executor, &cfg, zerolog.Nop())
}

func TestInterpreter_Session(t *testing.T) {
	ctx := context.Background()
	it := newTestInterpreter(t, config.DefaultConfig())

	out := it.Feed(ctx, `add "Buy milk" <errand>`)
	assert.False(t, out.IsError)
	assert.Equal(t, `added task 1: "Buy milk"`, out.Message)
	assert.Equal(t, session.StateIdle, out.State)

	// Synonyms resolve before parsing.
	out = it.Feed(ctx, "done 1")
	assert.False(t, out.IsError)
	assert.Equal(t, `completed task 1: "Buy milk"`, out.Message)

	out = it.Feed(ctx, "list all")
	assert.True(t, out.ShowTasks)
	require.Len(t, out.Tasks, 1)

	// Destructive commands ask first.
	out = it.Feed(ctx, "remove 1")
	assert.Equal(t, session.StateAwaitingConfirmation, out.State)
	assert.Contains(t, out.Prompt, `delete task 1 "Buy milk"`)
	assert.Contains(t, out.Prompt, "(y/n)")

	out = it.Feed(ctx, "y")
	assert.False(t, out.IsError)
	assert.Equal(t, `deleted task 1: "Buy milk"`, out.Message)
	assert.Equal(t, session.StateIdle, out.State)

	out = it.Feed(ctx, "exit")
	assert.True(t, out.Done)

	// A finished session stays finished.
	out = it.Feed(ctx, `add "Too late"`)
	assert.True(t, out.Done)
}

func TestInterpreter_InvalidInput(t *testing.T) {
	ctx := context.Background()
	it := newTestInterpreter(t, config.DefaultConfig())

	out := it.Feed(ctx, "add no quotes here")
	assert.True(t, out.IsError)
	assert.Contains(t, out.Message, "no quotes around title")
	assert.Equal(t, session.StateIdle, out.State)

	out = it.Feed(ctx, "frobnicate")
	assert.True(t, out.IsError)
	assert.Contains(t, out.Message, "unknown command")

	out = it.Feed(ctx, `add "unterminated`)
	assert.True(t, out.IsError)
}

func TestInterpreter_BlankLines(t *testing.T) {
	ctx := context.Background()
	it := newTestInterpreter(t, config.DefaultConfig())

	out := it.Feed(ctx, "   ")
	assert.False(t, out.IsError)
	assert.Empty(t, out.Message)
	assert.Equal(t, session.StateIdle, out.State)
}

func TestInterpreter_ConfirmationFlow(t *testing.T) {
	ctx := context.Background()
	it := newTestInterpreter(t, config.DefaultConfig())

	out := it.Feed(ctx, `add "Keep me"`)
	require.False(t, out.IsError)

	out = it.Feed(ctx, "delete 1")
	require.Equal(t, session.StateAwaitingConfirmation, out.State)

	// Anything outside the grammar re-prompts without losing the pending
	// command.
	out = it.Feed(ctx, "maybe")
	assert.True(t, out.IsError)
	assert.Contains(t, out.Message, "not a confirmation")
	assert.Equal(t, session.StateAwaitingConfirmation, out.State)

	// Help is reachable mid-confirmation.
	out = it.Feed(ctx, "help")
	assert.True(t, out.ShowHelp)
	assert.Equal(t, session.StateAwaitingConfirmation, out.State)

	out = it.Feed(ctx, "n")
	assert.Equal(t, "cancelled", out.Message)
	assert.Equal(t, session.StateIdle, out.State)

	// The task survived the declined delete.
	out = it.Feed(ctx, "list all")
	require.Len(t, out.Tasks, 1)
}

func TestInterpreter_UnknownFilterDegrades(t *testing.T) {
	ctx := context.Background()
	it := newTestInterpreter(t, config.DefaultConfig())

	out := it.Feed(ctx, `add "Visible"`)
	require.False(t, out.IsError)

	// First occurrence degrades to an unfiltered list.
	out = it.Feed(ctx, "list bogus")
	assert.False(t, out.IsError)
	assert.Contains(t, out.Message, `unknown filter "bogus"`)
	assert.Contains(t, out.Message, "showing all tasks instead")
	assert.True(t, out.ShowTasks)
	require.Len(t, out.Tasks, 1)

	// The identical failure repeated back to back is reported, not retried.
	out = it.Feed(ctx, "list bogus")
	assert.True(t, out.IsError)
	assert.False(t, out.ShowTasks)

	// A successful command resets the repeat tracker.
	out = it.Feed(ctx, "list all")
	require.False(t, out.IsError)
	out = it.Feed(ctx, "list bogus")
	assert.False(t, out.IsError)
	assert.True(t, out.ShowTasks)
}

func TestInterpreter_UndoErrors(t *testing.T) {
	ctx := context.Background()
	it := newTestInterpreter(t, config.DefaultConfig())

	out := it.Feed(ctx, "undo")
	assert.True(t, out.IsError)
	assert.Equal(t, "nothing to undo", out.Message)
	assert.Equal(t, session.StateIdle, out.State)
}

func TestInterpreter_UndoDisambiguation(t *testing.T) {
	ctx := context.Background()

	cfg := config.DefaultConfig()
	cfg.Undo.Choose = config.UndoChoosePrompt
	it := newTestInterpreter(t, cfg)

	require.False(t, it.Feed(ctx, `add "First"`).IsError)
	require.False(t, it.Feed(ctx, `add "Second"`).IsError)

	out := it.Feed(ctx, "undo")
	assert.Equal(t, session.StateAwaitingDisambiguation, out.State)
	assert.Contains(t, out.Prompt, "undo which action?")
	assert.Contains(t, out.Prompt, `1) added task 2 "Second"`)
	assert.Contains(t, out.Prompt, `2) added task 1 "First"`)

	// Out-of-range selections re-prompt.
	out = it.Feed(ctx, "5")
	assert.True(t, out.IsError)
	assert.Contains(t, out.Message, "pick a number between 1 and 2")
	assert.Equal(t, session.StateAwaitingDisambiguation, out.State)

	out = it.Feed(ctx, "2")
	assert.False(t, out.IsError)
	assert.Contains(t, out.Message, `added task 1 "First"`)
	assert.Equal(t, session.StateIdle, out.State)

	out = it.Feed(ctx, "list all")
	require.Len(t, out.Tasks, 1)
	assert.Equal(t, "Second", out.Tasks[0].Title)
}

func TestInterpreter_ConfiguredSynonyms(t *testing.T) {
	ctx := context.Background()

	cfg := config.DefaultConfig()
	cfg.Synonyms = map[string][]string{"delete": {"nuke"}}
	it := newTestInterpreter(t, cfg)

	require.False(t, it.Feed(ctx, `add "Target"`).IsError)

	out := it.Feed(ctx, "nuke 1")
	assert.Equal(t, session.StateAwaitingConfirmation, out.State)
	assert.Contains(t, out.Prompt, "delete task 1")
}

func TestInterpreter_StateErrorReprompts(t *testing.T) {
	ctx := context.Background()
	it := newTestInterpreter(t, config.DefaultConfig())

	require.False(t, it.Feed(ctx, `add "Done twice"`).IsError)
	require.False(t, it.Feed(ctx, "complete 1").IsError)

	out := it.Feed(ctx, "complete 1")
	assert.True(t, out.IsError)
	assert.Contains(t, out.Message, "already completed")
	assert.False(t, out.Fatal)
	assert.Equal(t, session.StateIdle, out.State)
}

func TestInterpreter_Help(t *testing.T) {
	ctx := context.Background()
	it := newTestInterpreter(t, config.DefaultConfig())

	for _, line := range []string{"help", "?", "--help", "h"} {
		out := it.Feed(ctx, line)
		assert.True(t, out.ShowHelp, "line %q", line)
		assert.False(t, out.IsError)
	}
}
