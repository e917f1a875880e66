package recovery

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func newTestManager() *Manager {
	return NewManager(zerolog.Nop())
}

func TestHandle_RepromptKinds(t *testing.T) {
	m := newTestManager()

	for _, kind := range []Kind{KindInvalidCommand, KindAmbiguousCommand, KindConfirmationFailure, KindUndoFailure} {
		d := m.Handle(Failure{Kind: kind, Input: "x " + string(kind), Message: "nope"})
		assert.Equal(t, BehaviorReprompt, d.Behavior, "kind %s", kind)
		assert.Equal(t, "nope", d.Message)
		assert.False(t, d.Repeated)
	}
}

func TestHandle_DataIntegrityIsHardFailure(t *testing.T) {
	m := newTestManager()

	d := m.Handle(Failure{Kind: KindDataIntegrity, Input: "complete 1", Message: "store invariant broken"})

	assert.Equal(t, BehaviorFail, d.Behavior)
	assert.Equal(t, "store invariant broken", d.Message, "integrity violations are reported verbatim")
}

func TestHandle_Degradation(t *testing.T) {
	m := newTestManager()

	d := m.Handle(Failure{
		Kind:       KindInvalidCommand,
		Input:      "list everything",
		Message:    `unknown filter "everything"`,
		Degradable: true,
		Fallback:   "showing all tasks",
	})

	assert.Equal(t, BehaviorDegrade, d.Behavior)
	assert.Contains(t, d.Message, "showing all tasks")
}

func TestHandle_RepeatedFailureIsNotRetried(t *testing.T) {
	m := newTestManager()

	f := Failure{
		Kind:       KindInvalidCommand,
		Input:      "list everything",
		Message:    `unknown filter "everything"`,
		Degradable: true,
		Fallback:   "showing all tasks",
	}

	first := m.Handle(f)
	assert.Equal(t, BehaviorDegrade, first.Behavior)
	assert.False(t, first.Repeated)

	second := m.Handle(f)
	assert.True(t, second.Repeated)
	assert.Equal(t, BehaviorReprompt, second.Behavior, "identical failure is never degraded twice in a row")
	assert.Equal(t, f.Message, second.Message, "repeated failures are reported verbatim")
}

func TestHandle_DifferentInputIsNotARepeat(t *testing.T) {
	m := newTestManager()

	m.Handle(Failure{Kind: KindInvalidCommand, Input: "add", Message: "missing title"})
	d := m.Handle(Failure{Kind: KindInvalidCommand, Input: "add x", Message: "no quotes around title"})

	assert.False(t, d.Repeated)
}

func TestReset(t *testing.T) {
	m := newTestManager()

	f := Failure{Kind: KindConfirmationFailure, Input: "maybe", Message: "answer yes or no"}
	m.Handle(f)
	m.Reset()

	d := m.Handle(f)
	assert.False(t, d.Repeated, "a successful command clears the repeat tracker")
}
