package tsk

import (
	"github.com/rs/zerolog"

	"github.com/hay-kot/tsk/internal/core/config"
	"github.com/hay-kot/tsk/internal/core/eventbus"
	"github.com/hay-kot/tsk/internal/core/task"
)

// App bundles the long-lived services one session needs. It is assembled
// once at startup and handed to the commands.
type App struct {
	Config      *config.Config
	Bus         *eventbus.Bus
	Store       task.Store
	Executor    *Executor
	Interpreter *Interpreter
	Log         zerolog.Logger
}

// NewApp wires an application from its parts.
func NewApp(cfg *config.Config, store task.Store, bus *eventbus.Bus, log zerolog.Logger) *App {
	executor := NewExecutor(store, bus, cfg, log)
	return &App{
		Config:      cfg,
		Bus:         bus,
		Store:       store,
		Executor:    executor,
		Interpreter: NewInterpreter(executor, cfg, log),
		Log:         log,
	}
}
