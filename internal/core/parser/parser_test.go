package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse_Add(t *testing.T) {
	t.Run("title only", func(t *testing.T) {
		res := Parse(`add "Buy milk"`)

		require.True(t, res.Valid)
		assert.Equal(t, CommandAdd, res.Command)
		assert.Equal(t, "Buy milk", res.Title())
		_, hasDesc := res.Description()
		assert.False(t, hasDesc)
	})

	t.Run("title description and tags", func(t *testing.T) {
		res := Parse(`add "Buy milk" "From the corner shop" <errand> <urgent>`)

		require.True(t, res.Valid)
		assert.Equal(t, "Buy milk", res.Title())
		desc, ok := res.Description()
		require.True(t, ok)
		assert.Equal(t, "From the corner shop", desc)
		assert.Equal(t, []string{"errand", "urgent"}, res.Tags())
	})

	t.Run("backtick title", func(t *testing.T) {
		res := Parse("add `Buy milk`")
		require.True(t, res.Valid)
		assert.Equal(t, "Buy milk", res.Title())
	})

	t.Run("missing title", func(t *testing.T) {
		res := Parse("add")

		require.False(t, res.Valid)
		assert.Contains(t, res.Err, "title")
		assert.Empty(t, res.Params)
	})

	t.Run("unquoted title", func(t *testing.T) {
		res := Parse("add Buy milk")

		require.False(t, res.Valid)
		assert.Contains(t, res.Err, "no quotes around title")
		assert.Empty(t, res.Params)
	})

	t.Run("empty title", func(t *testing.T) {
		res := Parse(`add ""`)
		require.False(t, res.Valid)
		assert.Contains(t, res.Err, "empty")
	})

	t.Run("bare word after title", func(t *testing.T) {
		res := Parse(`add "Buy milk" urgent`)
		require.False(t, res.Valid)
		assert.Contains(t, res.Err, "unexpected argument")
	})
}

func TestParse_List(t *testing.T) {
	res := Parse("list")
	require.True(t, res.Valid)
	_, hasFilter := res.Filter()
	assert.False(t, hasFilter)

	res = Parse("list all")
	require.True(t, res.Valid)
	filter, ok := res.Filter()
	require.True(t, ok)
	assert.Equal(t, "all", filter)

	res = Parse("list all done")
	require.False(t, res.Valid)
	assert.Contains(t, res.Err, "at most one filter")
}

func TestParse_IdentifierCommands(t *testing.T) {
	for _, cmd := range []CommandType{CommandDelete, CommandComplete, CommandIncomplete} {
		t.Run(string(cmd), func(t *testing.T) {
			res := Parse(string(cmd) + " 12")
			require.True(t, res.Valid)
			assert.Equal(t, cmd, res.Command)
			assert.Equal(t, 12, res.ID())

			res = Parse(string(cmd))
			require.False(t, res.Valid)
			assert.Contains(t, res.Err, "requires a task id")

			res = Parse(string(cmd) + " abc")
			require.False(t, res.Valid)
			assert.Contains(t, res.Err, "must be a number")

			res = Parse(string(cmd) + " 1 2")
			require.False(t, res.Valid)
			assert.Contains(t, res.Err, "exactly one")
		})
	}
}

func TestParse_Update(t *testing.T) {
	t.Run("title and description", func(t *testing.T) {
		res := Parse(`update 1 "New title" "New description"`)

		require.True(t, res.Valid)
		assert.Equal(t, CommandUpdate, res.Command)
		assert.Equal(t, 1, res.ID())
		assert.Equal(t, "New title", res.Title())
		desc, ok := res.Description()
		require.True(t, ok)
		assert.Equal(t, "New description", desc)
	})

	t.Run("title only", func(t *testing.T) {
		res := Parse(`update 3 "Renamed"`)
		require.True(t, res.Valid)
		assert.Equal(t, 3, res.ID())
		assert.Equal(t, "Renamed", res.Title())
	})

	t.Run("missing arguments", func(t *testing.T) {
		res := Parse("update 1")
		require.False(t, res.Valid)
		assert.Contains(t, res.Err, "quoted title")
	})

	t.Run("unquoted title", func(t *testing.T) {
		res := Parse("update 1 newtitle")
		require.False(t, res.Valid)
		assert.Contains(t, res.Err, "no quotes around title")
	})

	t.Run("bad id", func(t *testing.T) {
		res := Parse(`update one "Title"`)
		require.False(t, res.Valid)
		assert.Contains(t, res.Err, "must be a number")
	})
}

func TestParse_NoArgCommands(t *testing.T) {
	for _, cmd := range []CommandType{CommandUndo, CommandHelp, CommandQuit} {
		res := Parse(string(cmd))
		require.True(t, res.Valid, "command %s", cmd)
		assert.Equal(t, cmd, res.Command)

		res = Parse(string(cmd) + " extra")
		require.False(t, res.Valid)
		assert.Contains(t, res.Err, "no arguments")
	}
}

func TestParse_Unknown(t *testing.T) {
	res := Parse("frobnicate 12")

	require.False(t, res.Valid)
	assert.Equal(t, CommandUnknown, res.Command)
	assert.Contains(t, res.Err, "unknown command")
	assert.Empty(t, res.Params)
}

func TestParse_StructuralFailure(t *testing.T) {
	res := Parse(`add "unterminated`)

	require.False(t, res.Valid)
	assert.Equal(t, ErrClassStructural, res.ErrClass)
	assert.NotEmpty(t, res.Err)
	assert.Empty(t, res.Params)
}

func TestParse_InvalidAlwaysCarriesMessage(t *testing.T) {
	inputs := []string{"add", "add x", "delete", "delete x", "update", "nonsense", `add "x`}
	for _, input := range inputs {
		res := Parse(input)
		require.False(t, res.Valid, "input %q", input)
		assert.NotEmpty(t, res.Err, "input %q", input)
		assert.Empty(t, res.Params, "input %q", input)
	}
}
