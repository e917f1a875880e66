package commands

import (
	"context"
	"strings"

	"github.com/urfave/cli/v3"

	"github.com/hay-kot/tsk/internal/console"
)

type ExecCmd struct {
	flags *Flags
}

// NewExecCmd creates a new exec command
func NewExecCmd(flags *Flags) *ExecCmd {
	return &ExecCmd{flags: flags}
}

// Register adds the exec command to the application
func (cmd *ExecCmd) Register(app *cli.Command) *cli.Command {
	app.Commands = append(app.Commands, &cli.Command{
		Name:      "exec",
		Usage:     "Run console commands non-interactively",
		UsageText: `tsk exec 'add "Buy milk"' 'list all'`,
		Description: `Runs each argument as one console command and exits. Useful for
scripting and for one-off changes without opening the console.

Confirmation prompts still apply: follow a destructive command with its
answer, e.g. tsk exec 'delete 3' y`,
		Action: cmd.run,
	})

	return app
}

func (cmd *ExecCmd) run(ctx context.Context, c *cli.Command) error {
	lines := c.Args().Slice()
	if len(lines) == 0 {
		return nil
	}

	return console.New(cmd.flags.App).RunLines(ctx, strings.NewReader(strings.Join(lines, "\n")))
}
