package token

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrUnterminatedGroup is returned when a quote or tag opens but never closes
// before the end of the line.
var ErrUnterminatedGroup = errors.New("unterminated group")

// groupKind maps an opening delimiter to the token kind and closing rune.
func groupKind(open rune) (Kind, rune, bool) {
	switch open {
	case '"':
		return KindDouble, '"', true
	case '\'':
		return KindSingle, '\'', true
	case '`':
		return KindBacktick, '`', true
	case '<':
		return KindTag, '>', true
	default:
		return KindBare, 0, false
	}
}

// Tokenize splits one line into tokens, honoring double, single, and backtick
// quoting plus angle-bracket tags. Quoted text loses its delimiters; tags keep
// theirs. A delimiter opens a group only at the start of a token, so apostrophes
// inside bare words stay literal. Tokenize keeps no state between calls.
func Tokenize(line string) ([]Token, error) {
	var tokens []Token

	runes := []rune(line)
	i := 0

	for i < len(runes) {
		if unicode.IsSpace(runes[i]) {
			i++
			continue
		}

		if kind, closer, ok := groupKind(runes[i]); ok {
			text, next, err := scanGroup(runes, i, closer)
			if err != nil {
				return nil, err
			}
			if kind == KindTag {
				text = string(runes[i]) + text + string(closer)
			}
			tokens = append(tokens, Token{Text: text, Kind: kind})
			i = next
			continue
		}

		text, next := scanBare(runes, i)
		tokens = append(tokens, Token{Text: text, Kind: KindBare})
		i = next
	}

	return tokens, nil
}

// scanGroup consumes a delimited group starting at the opener index.
// Returns the inner text and the index just past the closing delimiter.
func scanGroup(runes []rune, start int, closer rune) (string, int, error) {
	var sb strings.Builder
	for i := start + 1; i < len(runes); i++ {
		if runes[i] == closer {
			return sb.String(), i + 1, nil
		}
		sb.WriteRune(runes[i])
	}
	return "", 0, fmt.Errorf("%w: %q opened at column %d", ErrUnterminatedGroup, runes[start], start+1)
}

// scanBare consumes a run of non-whitespace runes.
func scanBare(runes []rune, start int) (string, int) {
	i := start
	for i < len(runes) && !unicode.IsSpace(runes[i]) {
		i++
	}
	return string(runes[start:i]), i
}
