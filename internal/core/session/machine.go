package session

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog"

	"github.com/hay-kot/tsk/internal/core/parser"
	"github.com/hay-kot/tsk/internal/core/recovery"
)

// Action is what the caller must do after a transition.
type Action int

const (
	// ActionNone: nothing to execute (terminal state, or input consumed).
	ActionNone Action = iota
	// ActionExecute: run Step.Result against the executor.
	ActionExecute
	// ActionPrompt: ask the user the confirmation question for Step.Result.
	ActionPrompt
	// ActionExecutePending: confirmation granted; run Step.Result (the
	// command that originally requested confirmation).
	ActionExecutePending
	// ActionCancelPending: confirmation declined; report cancellation.
	ActionCancelPending
	// ActionHelp: show help text. Accepted from every non-terminal state.
	ActionHelp
	// ActionExit: the session is over; stop reading input.
	ActionExit
	// ActionSelectCandidate: disambiguation resolved; Step.Selection holds
	// the 1-based candidate index for Step.Result.
	ActionSelectCandidate
	// ActionReject: input not acceptable in the current state. Step.Reject
	// carries the classification for the recovery manager.
	ActionReject
)

// Candidate is one option offered while awaiting disambiguation.
type Candidate struct {
	Index int
	Label string
}

// Step is the outcome of one transition. The transition function is total:
// every (state, input) pair yields exactly one Step.
type Step struct {
	State     State
	Action    Action
	Result    parser.ParseResult
	Selection int
	Reject    recovery.Failure
}

// Machine gates parsed commands by session state. It is driven by a single
// input loop and is not safe for concurrent use.
type Machine struct {
	state       State
	confirm     ConfirmGrammar
	destructive map[parser.CommandType]bool

	pending    parser.ParseResult
	candidates []Candidate

	log zerolog.Logger
}

// NewMachine creates a machine in StateIdle. The destructive set names the
// commands that require confirmation before execution.
func NewMachine(confirm ConfirmGrammar, destructive []parser.CommandType, log zerolog.Logger) *Machine {
	d := make(map[parser.CommandType]bool, len(destructive))
	for _, cmd := range destructive {
		d[cmd] = true
	}
	return &Machine{
		state:       StateIdle,
		confirm:     confirm,
		destructive: d,
		log:         log.With().Str("component", "session").Logger(),
	}
}

// State returns the current interaction mode.
func (m *Machine) State() State { return m.state }

// Candidates returns the options offered while awaiting disambiguation.
func (m *Machine) Candidates() []Candidate { return m.candidates }

// BeginDisambiguation moves to StateAwaitingDisambiguation for a command
// that executed ambiguously. The pending result is re-run once the user
// picks a candidate.
func (m *Machine) BeginDisambiguation(res parser.ParseResult, candidates []Candidate) {
	m.pending = res
	m.candidates = candidates
	m.transition(StateAwaitingDisambiguation)
}

// Step advances the machine by one input line. res is the parse of the
// normalized line; raw is the normalized line itself, needed because
// confirmation replies ("y", "no") are not commands.
func (m *Machine) Step(res parser.ParseResult, raw string) Step {
	switch m.state {
	case StateIdle:
		return m.stepIdle(res, raw)
	case StateAwaitingConfirmation:
		return m.stepConfirmation(res, raw)
	case StateAwaitingDisambiguation:
		return m.stepDisambiguation(res, raw)
	default: // StateExiting
		return Step{State: m.state, Action: ActionNone}
	}
}

func (m *Machine) stepIdle(res parser.ParseResult, raw string) Step {
	if !res.Valid {
		return m.reject(recovery.KindInvalidCommand, raw, res.Err)
	}

	switch {
	case res.Command == parser.CommandHelp:
		return Step{State: m.state, Action: ActionHelp}

	case res.Command == parser.CommandQuit:
		m.transition(StateExiting)
		return Step{State: m.state, Action: ActionExit}

	case m.destructive[res.Command]:
		m.pending = res
		m.transition(StateAwaitingConfirmation)
		return Step{State: m.state, Action: ActionPrompt, Result: res}

	default:
		return Step{State: m.state, Action: ActionExecute, Result: res}
	}
}

func (m *Machine) stepConfirmation(res parser.ParseResult, raw string) Step {
	if res.Valid && res.Command == parser.CommandHelp {
		return Step{State: m.state, Action: ActionHelp}
	}

	switch m.confirm.Classify(raw) {
	case DecisionYes:
		pending := m.clearPending()
		m.transition(StateIdle)
		return Step{State: m.state, Action: ActionExecutePending, Result: pending}

	case DecisionNo:
		pending := m.clearPending()
		m.transition(StateIdle)
		return Step{State: m.state, Action: ActionCancelPending, Result: pending}

	default:
		return m.reject(recovery.KindConfirmationFailure, raw,
			fmt.Sprintf("%q is not a confirmation: answer %s", strings.TrimSpace(raw), m.confirm.describe()))
	}
}

func (m *Machine) stepDisambiguation(res parser.ParseResult, raw string) Step {
	if res.Valid && res.Command == parser.CommandHelp {
		return Step{State: m.state, Action: ActionHelp}
	}

	selection, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || selection < 1 || selection > len(m.candidates) {
		return m.reject(recovery.KindAmbiguousCommand, raw,
			fmt.Sprintf("pick a number between 1 and %d", len(m.candidates)))
	}

	pending := m.clearPending()
	m.transition(StateIdle)
	return Step{State: m.state, Action: ActionSelectCandidate, Result: pending, Selection: selection}
}

// reject surfaces unacceptable input without advancing the state.
func (m *Machine) reject(kind recovery.Kind, input, msg string) Step {
	return Step{
		State:  m.state,
		Action: ActionReject,
		Reject: recovery.Failure{Kind: kind, Input: input, Message: msg},
	}
}

func (m *Machine) clearPending() parser.ParseResult {
	pending := m.pending
	m.pending = parser.ParseResult{}
	m.candidates = nil
	return pending
}

func (m *Machine) transition(next State) {
	if next == m.state {
		return
	}
	m.log.Debug().Str("from", string(m.state)).Str("to", string(next)).Msg("state transition")
	m.state = next
}

// describe renders the accepted confirmation vocabulary for diagnostics.
func (g ConfirmGrammar) describe() string {
	return strings.Join(g.Yes, "/") + " or " + strings.Join(g.No, "/")
}
