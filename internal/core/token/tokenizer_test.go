package token

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func texts(tokens []Token) []string {
	if tokens == nil {
		return nil
	}
	out := make([]string, len(tokens))
	for i, t := range tokens {
		out[i] = t.Text
	}
	return out
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []string
	}{
		{
			name:  "bare words",
			input: "add buy milk",
			want:  []string{"add", "buy", "milk"},
		},
		{
			name:  "double quoted title with tags",
			input: `add "Title" <tag1> <tag2>`,
			want:  []string{"add", "Title", "<tag1>", "<tag2>"},
		},
		{
			name:  "multiple whitespace collapses",
			input: "list    all \t now",
			want:  []string{"list", "all", "now"},
		},
		{
			name:  "mixed quote kinds in one line",
			input: "add \"First\" 'Second' `Third`",
			want:  []string{"add", "First", "Second", "Third"},
		},
		{
			name:  "quoted text keeps inner whitespace",
			input: `add "Buy  milk   today"`,
			want:  []string{"add", "Buy  milk   today"},
		},
		{
			name:  "other delimiters are literal inside a quote",
			input: `add "a 'b' <c>"`,
			want:  []string{"add", "a 'b' <c>"},
		},
		{
			name:  "apostrophe inside a bare word stays literal",
			input: "add don't",
			want:  []string{"add", "don't"},
		},
		{
			name:  "empty line",
			input: "   ",
			want:  nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tokens, err := Tokenize(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.want, texts(tokens))
		})
	}
}

func TestTokenize_QuoteStylesAreEquivalent(t *testing.T) {
	inputs := []string{
		`add "A" "B"`,
		`add 'A' 'B'`,
		"add `A` `B`",
	}

	for _, input := range inputs {
		tokens, err := Tokenize(input)
		require.NoError(t, err)
		assert.Equal(t, []string{"add", "A", "B"}, texts(tokens), "input %q", input)
	}
}

func TestTokenize_Kinds(t *testing.T) {
	tokens, err := Tokenize("add \"A\" 'B' `C` <urgent>")
	require.NoError(t, err)
	require.Len(t, tokens, 5)

	assert.Equal(t, KindBare, tokens[0].Kind)
	assert.Equal(t, KindDouble, tokens[1].Kind)
	assert.Equal(t, KindSingle, tokens[2].Kind)
	assert.Equal(t, KindBacktick, tokens[3].Kind)
	assert.Equal(t, KindTag, tokens[4].Kind)

	assert.True(t, tokens[1].Quoted())
	assert.False(t, tokens[0].Quoted())
	assert.False(t, tokens[4].Quoted(), "tags are not quoted text")

	assert.Equal(t, "<urgent>", tokens[4].Text, "tags keep their delimiters")
	assert.Equal(t, "urgent", tokens[4].TagName())
	assert.Equal(t, "A", tokens[1].Text, "quotes are stripped")
}

func TestTokenize_UnterminatedGroups(t *testing.T) {
	inputs := []string{
		`add "no closing`,
		`add 'no closing`,
		"add `no closing",
		"add <tag",
	}

	for _, input := range inputs {
		_, err := Tokenize(input)
		assert.ErrorIs(t, err, ErrUnterminatedGroup, "input %q", input)
	}
}

func TestTokenize_Restartable(t *testing.T) {
	// Same input twice yields the same result; no shared state between calls.
	first, err := Tokenize(`add "A" <t>`)
	require.NoError(t, err)
	second, err := Tokenize(`add "A" <t>`)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
