// Package recovery classifies failures arising anywhere in the command
// pipeline and selects a recovery behavior for each. Failures are values,
// not control-flow panics: callers hand a classified failure to the
// manager and act on the decision it returns.
package recovery

import "github.com/rs/zerolog"

// Kind is the failure taxonomy. These are classifications, not error types:
// the same Go error can surface under different kinds depending on where in
// the session it arose.
type Kind string

const (
	// KindInvalidCommand: the parser rejected the line.
	KindInvalidCommand Kind = "invalid_command"
	// KindAmbiguousCommand: the command was valid but underspecified and
	// more than one interpretation is plausible.
	KindAmbiguousCommand Kind = "ambiguous_command"
	// KindConfirmationFailure: input while awaiting confirmation matched
	// neither the yes nor the no grammar.
	KindConfirmationFailure Kind = "confirmation_failure"
	// KindUndoFailure: nothing to undo, or the undo target's preconditions
	// changed since the action was recorded.
	KindUndoFailure Kind = "undo_failure"
	// KindDataIntegrity: a domain-layer invariant was not met. Reported
	// verbatim; never repaired here.
	KindDataIntegrity Kind = "data_integrity_violation"
)

// Behavior is the recovery strategy selected for a failure.
type Behavior int

const (
	// BehaviorReprompt re-prompts the user with session state unchanged.
	BehaviorReprompt Behavior = iota
	// BehaviorDegrade proceeds with a best-effort default.
	BehaviorDegrade
	// BehaviorFail surfaces a hard failure message; no safe default exists.
	BehaviorFail
)

// Failure is one classified pipeline failure.
type Failure struct {
	Kind    Kind
	Input   string // the line that produced the failure
	Message string // diagnostic naming the violated rule

	// Degradable marks failures with a safe best-effort default, e.g.
	// an unrecognized list filter treated as "no filter". Fallback
	// describes the default for the user.
	Degradable bool
	Fallback   string
}

// Decision is the manager's selected handling for a failure.
type Decision struct {
	Behavior Behavior
	Message  string
	// Repeated is true when the identical failure was just handled for the
	// same input. The caller must report it verbatim instead of retrying.
	Repeated bool
}

// Manager selects recovery behaviors and enforces the retry bound: the same
// failure for the same input is never automatically retried more than once.
type Manager struct {
	log  zerolog.Logger
	last *Failure
}

// NewManager creates a recovery manager.
func NewManager(log zerolog.Logger) *Manager {
	return &Manager{log: log.With().Str("component", "recovery").Logger()}
}

// Handle classifies a failure into a decision. Repeated identical failures
// (same kind, input, and message) are flagged so the caller reports them
// verbatim rather than looping through degradation again.
func (m *Manager) Handle(f Failure) Decision {
	repeated := m.last != nil && *m.last == f
	m.last = &f

	decision := Decision{Message: f.Message, Repeated: repeated}

	switch {
	case f.Kind == KindDataIntegrity:
		decision.Behavior = BehaviorFail
	case f.Degradable && !repeated:
		decision.Behavior = BehaviorDegrade
		decision.Message = f.Message + " (" + f.Fallback + ")"
	default:
		decision.Behavior = BehaviorReprompt
	}

	m.log.Debug().
		Str("kind", string(f.Kind)).
		Str("input", f.Input).
		Bool("repeated", repeated).
		Int("behavior", int(decision.Behavior)).
		Msg("failure handled")

	return decision
}

// Reset clears the repeat tracker. Called after any successfully executed
// command so an old failure does not suppress degradation later.
func (m *Manager) Reset() {
	m.last = nil
}
