// Package token splits raw command lines into lexical tokens.
package token

// Kind classifies how a token was delimited in the input.
type Kind int

const (
	// KindBare is an unquoted word.
	KindBare Kind = iota
	// KindDouble is text wrapped in double quotes. Delimiters are stripped.
	KindDouble
	// KindSingle is text wrapped in single quotes. Delimiters are stripped.
	KindSingle
	// KindBacktick is text wrapped in backticks. Delimiters are stripped.
	KindBacktick
	// KindTag is an angle-bracket tag like <urgent>. Delimiters are kept.
	KindTag
)

// Token is one lexical unit of a command line.
type Token struct {
	Text string
	Kind Kind
}

// Quoted reports whether the token came from any of the three quote styles.
// Tags are not quoted: their delimiters survive into Text.
func (t Token) Quoted() bool {
	switch t.Kind {
	case KindDouble, KindSingle, KindBacktick:
		return true
	default:
		return false
	}
}

// TagName returns the tag text without its angle brackets.
// Returns the raw text unchanged for non-tag tokens.
func (t Token) TagName() string {
	if t.Kind != KindTag {
		return t.Text
	}
	return t.Text[1 : len(t.Text)-1]
}
