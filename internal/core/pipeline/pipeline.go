// Package pipeline runs raw input lines through an ordered chain of
// processing stages before they reach the command parser.
package pipeline

// Context is the mutable record threaded through the stage chain.
// Raw is the line exactly as typed; Line is the current working form that
// stages rewrite in place. Annotations carries stage-specific notes.
type Context struct {
	Raw         string
	Line        string
	Annotations map[string]string
}

// NewContext builds a context for one input line.
func NewContext(raw string) *Context {
	return &Context{
		Raw:         raw,
		Line:        raw,
		Annotations: map[string]string{},
	}
}

// Handler is the continuation a stage invokes to pass control down the chain.
type Handler func(*Context) error

// Stage receives the context and the rest of the chain. A stage may mutate
// the context before calling next, or return without calling it to
// short-circuit the remaining stages.
type Stage func(ctx *Context, next Handler) error

// Chain composes stages around a final handler. Stages run in the order
// given: the first stage sees the context first.
func Chain(final Handler, stages ...Stage) Handler {
	handler := final
	for i := len(stages) - 1; i >= 0; i-- {
		stage := stages[i]
		next := handler
		handler = func(ctx *Context) error {
			return stage(ctx, next)
		}
	}
	return handler
}
