package tsk

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/rs/zerolog"

	"github.com/hay-kot/tsk/internal/core/config"
	"github.com/hay-kot/tsk/internal/core/parser"
	"github.com/hay-kot/tsk/internal/core/pipeline"
	"github.com/hay-kot/tsk/internal/core/recovery"
	"github.com/hay-kot/tsk/internal/core/session"
	"github.com/hay-kot/tsk/internal/core/task"
)

// Outcome is what one input line produced. The console renders it; nothing
// in here knows about terminals.
type Outcome struct {
	// State is the session state after the line was handled. Callers use it
	// to pick the prompt for the next read.
	State session.State
	// Done means the session ended and no more input should be read.
	Done bool

	Message string
	IsError bool
	// Fatal marks an unrecoverable failure. The caller should stop the
	// session and surface the message.
	Fatal bool

	ShowHelp bool
	// Prompt is a question awaiting an answer on the next line.
	Prompt string

	Tasks     []task.Task
	ShowTasks bool
}

// Interpreter drives one interactive session: each input line flows through
// the normalization pipeline, the parser, the state machine, and finally the
// executor, with failures routed through the recovery manager.
//
// An Interpreter is driven by a single input loop and is not safe for
// concurrent use.
type Interpreter struct {
	executor *Executor
	machine  *session.Machine
	recovery *recovery.Manager
	stages   []pipeline.Stage
	confirm  session.ConfirmGrammar
	log      zerolog.Logger
}

// NewInterpreter wires a session from configuration.
func NewInterpreter(executor *Executor, cfg *config.Config, log zerolog.Logger) *Interpreter {
	confirm := session.ConfirmGrammar{Yes: cfg.Confirm.Yes, No: cfg.Confirm.No}

	destructive := make([]parser.CommandType, 0, len(cfg.Destructive))
	for _, name := range cfg.Destructive {
		destructive = append(destructive, parser.CommandType(name))
	}

	normalizer := pipeline.NewNormalizer(synonymsFromConfig(cfg.Synonyms)...)

	return &Interpreter{
		executor: executor,
		machine:  session.NewMachine(confirm, destructive, log),
		recovery: recovery.NewManager(log),
		stages:   []pipeline.Stage{normalizer.Stage()},
		confirm:  confirm,
		log:      log.With().Str("component", "interpreter").Logger(),
	}
}

// synonymsFromConfig flattens configured synonyms into table entries. Keys
// are sorted so the substitution order is stable across runs.
func synonymsFromConfig(m map[string][]string) []pipeline.Synonym {
	if len(m) == 0 {
		return nil
	}

	canonicals := make([]string, 0, len(m))
	for canonical := range m {
		canonicals = append(canonicals, canonical)
	}
	sort.Strings(canonicals)

	out := make([]pipeline.Synonym, 0, len(canonicals))
	for _, canonical := range canonicals {
		out = append(out, pipeline.Synonym{Canonical: canonical, Aliases: m[canonical]})
	}
	return out
}

// State returns the current session state.
func (i *Interpreter) State() session.State { return i.machine.State() }

// Feed handles one input line and returns what to show the user.
func (i *Interpreter) Feed(ctx context.Context, raw string) Outcome {
	if i.machine.State() == session.StateExiting {
		return Outcome{State: session.StateExiting, Done: true}
	}

	// Blank lines are ignored in every state rather than reported as
	// unparseable input.
	if strings.TrimSpace(raw) == "" {
		return Outcome{State: i.machine.State()}
	}

	pctx := pipeline.NewContext(raw)

	var res parser.ParseResult
	handler := pipeline.Chain(func(c *pipeline.Context) error {
		res = parser.Parse(c.Line)
		return nil
	}, i.stages...)

	if err := handler(pctx); err != nil {
		return Outcome{State: i.machine.State(), IsError: true, Message: err.Error()}
	}

	step := i.machine.Step(res, pctx.Line)

	switch step.Action {
	case session.ActionNone:
		return Outcome{State: step.State}

	case session.ActionHelp:
		return Outcome{State: step.State, ShowHelp: true}

	case session.ActionExit:
		return Outcome{State: step.State, Done: true}

	case session.ActionPrompt:
		return Outcome{State: step.State, Prompt: i.confirmPrompt(ctx, step.Result)}

	case session.ActionCancelPending:
		i.recovery.Reset()
		return Outcome{State: step.State, Message: "cancelled"}

	case session.ActionExecute, session.ActionExecutePending:
		result, err := i.executor.Execute(ctx, step.Result)
		return i.settle(ctx, step, pctx.Line, result, err)

	case session.ActionSelectCandidate:
		result, err := i.executor.ExecuteCandidate(ctx, step.Selection)
		return i.settle(ctx, step, pctx.Line, result, err)

	case session.ActionReject:
		decision := i.recovery.Handle(step.Reject)
		return Outcome{State: step.State, IsError: true, Message: decision.Message}

	default:
		return Outcome{State: step.State, IsError: true, Message: fmt.Sprintf("unhandled action %d", step.Action)}
	}
}

// settle turns an execution result into an outcome, routing errors through
// the recovery manager.
func (i *Interpreter) settle(ctx context.Context, step session.Step, line string, result Result, err error) Outcome {
	if err != nil {
		return i.recover(ctx, line, err)
	}

	if len(result.Candidates) > 0 {
		i.machine.BeginDisambiguation(step.Result, result.Candidates)
		return Outcome{State: i.machine.State(), Prompt: renderCandidates(result.Candidates)}
	}

	i.recovery.Reset()
	return Outcome{
		State:     i.machine.State(),
		Message:   result.Message,
		Tasks:     result.Tasks,
		ShowTasks: result.ShowTasks,
	}
}

// recover classifies an execution error and applies the selected behavior.
// An unknown list filter is degradable: on first occurrence the list runs
// again without the filter. Everything unclassified is a data-integrity
// failure and ends the session.
func (i *Interpreter) recover(ctx context.Context, line string, err error) Outcome {
	var (
		filterErr   *FilterError
		notFoundErr *NotFoundError
		precondErr  *PreconditionError
		stateErr    *StateError
	)

	switch {
	case errors.As(err, &filterErr):
		decision := i.recovery.Handle(recovery.Failure{
			Kind:       recovery.KindInvalidCommand,
			Input:      line,
			Message:    filterErr.Error(),
			Degradable: true,
			Fallback:   "showing all tasks instead",
		})
		if decision.Behavior == recovery.BehaviorDegrade {
			result, lerr := i.executor.ListUnfiltered(ctx)
			if lerr != nil {
				return i.fatal(lerr)
			}
			return Outcome{
				State:     i.machine.State(),
				Message:   decision.Message,
				Tasks:     result.Tasks,
				ShowTasks: true,
			}
		}
		return Outcome{State: i.machine.State(), IsError: true, Message: decision.Message}

	case errors.Is(err, ErrNothingToUndo):
		decision := i.recovery.Handle(recovery.Failure{
			Kind:    recovery.KindUndoFailure,
			Input:   line,
			Message: err.Error(),
		})
		return Outcome{State: i.machine.State(), IsError: true, Message: decision.Message}

	case errors.As(err, &precondErr):
		decision := i.recovery.Handle(recovery.Failure{
			Kind:    recovery.KindUndoFailure,
			Input:   line,
			Message: precondErr.Error(),
		})
		return Outcome{State: i.machine.State(), IsError: true, Message: decision.Message}

	case errors.As(err, &notFoundErr):
		decision := i.recovery.Handle(recovery.Failure{
			Kind:    recovery.KindInvalidCommand,
			Input:   line,
			Message: notFoundErr.Error(),
		})
		return Outcome{State: i.machine.State(), IsError: true, Message: decision.Message}

	case errors.As(err, &stateErr):
		decision := i.recovery.Handle(recovery.Failure{
			Kind:    recovery.KindInvalidCommand,
			Input:   line,
			Message: stateErr.Error(),
		})
		return Outcome{State: i.machine.State(), IsError: true, Message: decision.Message}

	default:
		return i.fatal(err)
	}
}

func (i *Interpreter) fatal(err error) Outcome {
	decision := i.recovery.Handle(recovery.Failure{
		Kind:    recovery.KindDataIntegrity,
		Message: err.Error(),
	})
	i.log.Error().Err(err).Msg("unrecoverable failure")
	return Outcome{
		State:   i.machine.State(),
		IsError: true,
		Fatal:   decision.Behavior == recovery.BehaviorFail,
		Message: decision.Message,
	}
}

// confirmPrompt renders the confirmation question for a pending command.
func (i *Interpreter) confirmPrompt(ctx context.Context, res parser.ParseResult) string {
	return fmt.Sprintf("%s? (%s/%s)", i.executor.Describe(ctx, res), i.confirm.Yes[0], i.confirm.No[0])
}

// renderCandidates lists undo options, newest first.
func renderCandidates(candidates []session.Candidate) string {
	var b strings.Builder
	b.WriteString("undo which action?")
	for _, c := range candidates {
		fmt.Fprintf(&b, "\n  %d) %s", c.Index, c.Label)
	}
	return b.String()
}
