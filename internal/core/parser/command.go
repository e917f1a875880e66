// Package parser classifies normalized command lines into structured,
// immutable parse results.
package parser

// CommandType is the closed set of recognized verbs. Lines reach the parser
// already normalized, so synonyms ("done", "finish", ...) never appear here.
type CommandType string

const (
	CommandAdd        CommandType = "add"
	CommandList       CommandType = "list"
	CommandDelete     CommandType = "delete"
	CommandComplete   CommandType = "complete"
	CommandIncomplete CommandType = "incomplete"
	CommandUpdate     CommandType = "update"
	CommandUndo       CommandType = "undo"
	CommandHelp       CommandType = "help"
	CommandQuit       CommandType = "quit"
	CommandUnknown    CommandType = "unknown"
)

// Mutating reports whether the command changes task state when executed.
// Queries and session commands never publish task events.
func (c CommandType) Mutating() bool {
	switch c {
	case CommandAdd, CommandDelete, CommandComplete, CommandIncomplete, CommandUpdate, CommandUndo:
		return true
	default:
		return false
	}
}
