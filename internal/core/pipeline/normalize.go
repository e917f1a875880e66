package pipeline

import (
	"strings"
	"unicode"
)

// Synonym maps alternate spellings onto one canonical verb.
type Synonym struct {
	Canonical string
	Aliases   []string
}

// synonymTable is the built-in substitution table. Order is preserved:
// earlier entries win when an alias appears twice. Matching is exact per
// verb word, never substring, so "completely" is not rewritten.
var synonymTable = []Synonym{
	{Canonical: "complete", Aliases: []string{"done", "finish", "complete", "c"}},
	{Canonical: "incomplete", Aliases: []string{"reopen", "open", "incomplete", "i"}},
	{Canonical: "delete", Aliases: []string{"remove", "del", "delete", "d"}},
	{Canonical: "list", Aliases: []string{"view", "list", "l"}},
	{Canonical: "update", Aliases: []string{"edit", "update"}},
	{Canonical: "undo", Aliases: []string{"revert", "undo"}},
	{Canonical: "help", Aliases: []string{"h", "?", "--help", "help"}},
	{Canonical: "quit", Aliases: []string{"exit", "quit", "q"}},
}

// Normalizer canonicalizes input lines: trims surrounding whitespace,
// lower-cases the verb, and maps synonyms onto canonical verbs. Extra
// synonyms from configuration are consulted after the built-in table.
// Normalization is idempotent.
type Normalizer struct {
	table []Synonym
}

// NewNormalizer builds a normalizer from the built-in table plus any
// configured extras.
func NewNormalizer(extra ...Synonym) *Normalizer {
	table := make([]Synonym, 0, len(synonymTable)+len(extra))
	table = append(table, synonymTable...)
	table = append(table, extra...)
	return &Normalizer{table: table}
}

// Stage returns the normalizer as a pipeline stage rewriting Context.Line.
func (n *Normalizer) Stage() Stage {
	return func(ctx *Context, next Handler) error {
		ctx.Line = n.Normalize(ctx.Line)
		return next(ctx)
	}
}

// Normalize canonicalizes one line. Substitution applies to the verb
// position only: rewriting synonym words later in the line would corrupt
// quoted free text. The remainder of the line is left untouched; the
// tokenizer collapses inter-token whitespace.
func (n *Normalizer) Normalize(line string) string {
	line = strings.TrimSpace(line)
	if line == "" {
		return ""
	}

	verb := line
	rest := ""
	if i := strings.IndexFunc(line, unicode.IsSpace); i >= 0 {
		verb = line[:i]
		rest = strings.TrimSpace(line[i:])
	}

	verb = n.canonical(strings.ToLower(verb))

	if rest == "" {
		return verb
	}
	return verb + " " + rest
}

// canonical resolves a lower-cased verb through the table. Unrecognized
// verbs pass through unchanged; each verb is resolved exactly once, so a
// canonical form produced by one entry is never re-matched by a later one.
func (n *Normalizer) canonical(verb string) string {
	for _, syn := range n.table {
		for _, alias := range syn.Aliases {
			if verb == alias {
				return syn.Canonical
			}
		}
	}
	return verb
}
