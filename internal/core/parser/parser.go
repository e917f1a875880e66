package parser

import (
	"fmt"
	"strconv"

	"github.com/hay-kot/tsk/internal/core/token"
)

// Parse tokenizes a normalized line, classifies the command, and validates
// argument arity and shape. Malformed user input never panics or returns an
// error value: the failure is captured in the result. Only tokenizer-level
// structural failures are marked ErrClassStructural.
func Parse(line string) ParseResult {
	tokens, err := token.Tokenize(line)
	if err != nil {
		return structural(err.Error())
	}

	if len(tokens) == 0 {
		return invalid(CommandUnknown, "no command given")
	}

	verb := tokens[0]
	if verb.Kind != token.KindBare {
		return invalid(CommandUnknown, fmt.Sprintf("command name %q must not be quoted", verb.Text))
	}

	args := tokens[1:]

	switch CommandType(verb.Text) {
	case CommandAdd:
		return parseAdd(args)
	case CommandList:
		return parseList(args)
	case CommandDelete:
		return parseIdentifier(CommandDelete, args)
	case CommandComplete:
		return parseIdentifier(CommandComplete, args)
	case CommandIncomplete:
		return parseIdentifier(CommandIncomplete, args)
	case CommandUpdate:
		return parseUpdate(args)
	case CommandUndo:
		return parseNoArgs(CommandUndo, args)
	case CommandHelp:
		return parseNoArgs(CommandHelp, args)
	case CommandQuit:
		return parseNoArgs(CommandQuit, args)
	default:
		return invalid(CommandUnknown, fmt.Sprintf("unknown command %q (try \"help\")", verb.Text))
	}
}

// parseAdd validates: add "<title>" ["<description>"] [<tag> ...]
func parseAdd(args []token.Token) ParseResult {
	if len(args) == 0 {
		return invalid(CommandAdd, "add requires a title: add \"<title>\"")
	}
	if !args[0].Quoted() {
		return invalid(CommandAdd, fmt.Sprintf("no quotes around title %q: wrap it in \"...\", '...' or `...`", args[0].Text))
	}
	if args[0].Text == "" {
		return invalid(CommandAdd, "title cannot be empty")
	}

	params := map[string]any{ParamTitle: args[0].Text}
	rest := args[1:]

	if len(rest) > 0 && rest[0].Quoted() {
		params[ParamDescription] = rest[0].Text
		rest = rest[1:]
	}

	var tags []string
	for _, tok := range rest {
		if tok.Kind != token.KindTag {
			return invalid(CommandAdd, fmt.Sprintf("unexpected argument %q: tags must be written as <tag>", tok.Text))
		}
		tags = append(tags, tok.TagName())
	}
	if len(tags) > 0 {
		params[ParamTags] = tags
	}

	return valid(CommandAdd, params)
}

// parseList validates: list [<filter>]
func parseList(args []token.Token) ParseResult {
	switch len(args) {
	case 0:
		return valid(CommandList, nil)
	case 1:
		if args[0].Kind != token.KindBare {
			return invalid(CommandList, fmt.Sprintf("list filter %q must be a bare word", args[0].Text))
		}
		return valid(CommandList, map[string]any{ParamFilter: args[0].Text})
	default:
		return invalid(CommandList, "list expects at most one filter keyword")
	}
}

// parseIdentifier validates commands of the shape: <verb> <id>
func parseIdentifier(cmd CommandType, args []token.Token) ParseResult {
	if len(args) == 0 {
		return invalid(cmd, fmt.Sprintf("%s requires a task id: %s <id>", cmd, cmd))
	}
	if len(args) > 1 {
		return invalid(cmd, fmt.Sprintf("%s expects exactly one task id", cmd))
	}

	id, ok := parseID(args[0])
	if !ok {
		return invalid(cmd, fmt.Sprintf("task id must be a number, got %q", args[0].Text))
	}

	return valid(cmd, map[string]any{ParamID: id})
}

// parseUpdate validates: update <id> "<title>" ["<description>"]
func parseUpdate(args []token.Token) ParseResult {
	if len(args) < 2 {
		return invalid(CommandUpdate, "update requires a task id and a quoted title: update <id> \"<title>\"")
	}

	id, ok := parseID(args[0])
	if !ok {
		return invalid(CommandUpdate, fmt.Sprintf("task id must be a number, got %q", args[0].Text))
	}
	if !args[1].Quoted() {
		return invalid(CommandUpdate, fmt.Sprintf("no quotes around title %q: wrap it in \"...\", '...' or `...`", args[1].Text))
	}
	if args[1].Text == "" {
		return invalid(CommandUpdate, "title cannot be empty")
	}

	params := map[string]any{ParamID: id, ParamTitle: args[1].Text}

	switch len(args) {
	case 2:
	case 3:
		if !args[2].Quoted() {
			return invalid(CommandUpdate, fmt.Sprintf("no quotes around description %q", args[2].Text))
		}
		params[ParamDescription] = args[2].Text
	default:
		return invalid(CommandUpdate, "update takes at most a title and a description")
	}

	return valid(CommandUpdate, params)
}

func parseNoArgs(cmd CommandType, args []token.Token) ParseResult {
	if len(args) > 0 {
		return invalid(cmd, fmt.Sprintf("%s takes no arguments", cmd))
	}
	return valid(cmd, nil)
}

func parseID(tok token.Token) (int, bool) {
	if tok.Kind != token.KindBare {
		return 0, false
	}
	id, err := strconv.Atoi(tok.Text)
	if err != nil {
		return 0, false
	}
	return id, true
}
