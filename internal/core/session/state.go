// Package session tracks the interaction mode of one command-line session
// and gates which parsed commands are currently acceptable.
package session

import "strings"

// State is the current interaction mode.
type State string

const (
	// StateIdle accepts any command.
	StateIdle State = "idle"
	// StateAwaitingConfirmation accepts only yes/no-equivalent input.
	StateAwaitingConfirmation State = "awaiting_confirmation"
	// StateAwaitingDisambiguation accepts only a candidate selection.
	StateAwaitingDisambiguation State = "awaiting_disambiguation"
	// StateExiting is terminal; no further input is accepted.
	StateExiting State = "exiting"
)

// Decision classifies a confirmation reply.
type Decision int

const (
	DecisionUnrecognized Decision = iota
	DecisionYes
	DecisionNo
)

// ConfirmGrammar is the configurable yes/no vocabulary for confirmation
// prompts. Matching is case-insensitive on the whole trimmed line.
type ConfirmGrammar struct {
	Yes []string
	No  []string
}

// DefaultConfirmGrammar accepts y/yes and n/no.
func DefaultConfirmGrammar() ConfirmGrammar {
	return ConfirmGrammar{
		Yes: []string{"y", "yes"},
		No:  []string{"n", "no"},
	}
}

// Classify matches a reply against the grammar.
func (g ConfirmGrammar) Classify(line string) Decision {
	reply := strings.ToLower(strings.TrimSpace(line))
	for _, word := range g.Yes {
		if reply == strings.ToLower(word) {
			return DecisionYes
		}
	}
	for _, word := range g.No {
		if reply == strings.ToLower(word) {
			return DecisionNo
		}
	}
	return DecisionUnrecognized
}
