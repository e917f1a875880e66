package commands

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/tsk/internal/console"
)

type ConsoleCmd struct {
	flags *Flags
}

// NewConsoleCmd creates a new console command
func NewConsoleCmd(flags *Flags) *ConsoleCmd {
	return &ConsoleCmd{flags: flags}
}

// Register adds the console command to the application
func (cmd *ConsoleCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "console",
		Usage:     "Open the interactive console",
		UsageText: "tsk console",
		Description: `Starts an interactive session. Type commands at the prompt; type "help"
for the command reference and "quit" to leave.

When stdin is not a terminal, lines are read from the pipe instead.`,
		Action: cmd.run,
	})

	return app
}

func (cmd *ConsoleCmd) run(ctx context.Context, c *cli.Command) error {
	return console.New(cmd.flags.App).Run(ctx)
}
