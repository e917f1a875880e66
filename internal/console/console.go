// Package console runs the interactive session: it reads lines, feeds them
// to the interpreter, and renders outcomes to the terminal.
package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/chzyer/readline"
	"github.com/rs/zerolog"
	"golang.org/x/term"

	"github.com/hay-kot/tsk/internal/core/session"
	"github.com/hay-kot/tsk/internal/core/styles"
	"github.com/hay-kot/tsk/internal/core/task"
	"github.com/hay-kot/tsk/internal/tsk"
)

// Console owns one interactive session over stdin/stdout.
type Console struct {
	app *tsk.App
	out io.Writer
	log zerolog.Logger
}

// New creates a console writing to stdout.
func New(app *tsk.App) *Console {
	return &Console{
		app: app,
		out: os.Stdout,
		log: app.Log.With().Str("component", "console").Logger(),
	}
}

// Run reads input until the session ends. With a terminal on stdin it uses
// readline for history and line editing; otherwise it consumes lines from
// the pipe.
func (c *Console) Run(ctx context.Context) error {
	summary := NewSummary()
	summary.Attach(c.app.Bus)
	defer summary.Detach(c.app.Bus)

	var err error
	if term.IsTerminal(int(os.Stdin.Fd())) {
		err = c.runInteractive(ctx)
	} else {
		err = c.RunLines(ctx, os.Stdin)
	}

	fmt.Fprintln(c.out, summary.Render())
	return err
}

func (c *Console) runInteractive(ctx context.Context) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:            c.prompt(),
		HistoryFile:       filepath.Join(c.app.Config.DataDir, "history"),
		InterruptPrompt:   "^C",
		EOFPrompt:         "quit",
		HistorySearchFold: true,
		Stdin:             readline.NewCancelableStdin(os.Stdin),
		Stdout:            os.Stdout,
		Stderr:            os.Stderr,
	})
	if err != nil {
		return fmt.Errorf("initialize readline: %w", err)
	}
	defer rl.Close()

	fmt.Fprintln(c.out, styles.Title.Render("tsk")+" "+styles.Muted.Render("interactive todo"))
	fmt.Fprintln(c.out, styles.Muted.Render(`type "help" for commands, "quit" to leave`))

	for {
		rl.SetPrompt(c.prompt())

		line, err := rl.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			// Ctrl+C on an empty line ends the session; otherwise it
			// discards the current input.
			if len(line) == 0 {
				return nil
			}
			continue
		}
		if errors.Is(err, io.EOF) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("read line: %w", err)
		}

		out := c.app.Interpreter.Feed(ctx, line)
		c.render(out)

		if out.Fatal {
			return errors.New(out.Message)
		}
		if out.Done {
			return nil
		}
	}
}

// RunLines feeds lines from a reader, used for piped stdin and the exec
// command. The session ends at EOF or on quit.
func (c *Console) RunLines(ctx context.Context, r io.Reader) error {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		out := c.app.Interpreter.Feed(ctx, scanner.Text())
		c.render(out)

		if out.Fatal {
			return errors.New(out.Message)
		}
		if out.Done {
			return nil
		}
	}
	return scanner.Err()
}

// prompt reflects the session state so a pending question is visible even
// after the screen scrolled.
func (c *Console) prompt() string {
	switch c.app.Interpreter.State() {
	case session.StateAwaitingConfirmation:
		return styles.Prompt.Render("confirm> ")
	case session.StateAwaitingDisambiguation:
		return styles.Prompt.Render("choose> ")
	default:
		return styles.Prompt.Render("tsk> ")
	}
}

func (c *Console) render(out tsk.Outcome) {
	switch {
	case out.ShowHelp:
		fmt.Fprint(c.out, RenderHelp())

	case out.IsError:
		fmt.Fprintln(c.out, styles.Error.Render(out.Message))

	default:
		if out.Prompt != "" {
			fmt.Fprintln(c.out, styles.Warning.Render(out.Prompt))
		}
		if out.ShowTasks {
			fmt.Fprint(c.out, renderTasks(out.Tasks))
		}
		if out.Message != "" {
			fmt.Fprintln(c.out, out.Message)
		}
	}
}

// renderTasks formats a task listing, one task per line with an indented
// description beneath when present.
func renderTasks(tasks []task.Task) string {
	if len(tasks) == 0 {
		return styles.Muted.Render("no tasks") + "\n"
	}

	var b strings.Builder
	for _, t := range tasks {
		mark := styles.Muted.Render(styles.MarkPending)
		title := styles.Title.Render(t.Title)
		if t.Done {
			mark = styles.Success.Render(styles.MarkDone)
			title = styles.DoneTitle.Render(t.Title)
		}

		fmt.Fprintf(&b, "%s %s %s", styles.ID.Render(fmt.Sprintf("%3d", t.ID)), mark, title)
		for _, tag := range t.Tags {
			b.WriteString(" " + styles.Tag.Render("<"+tag+">"))
		}
		b.WriteString("\n")

		if t.Description != "" {
			fmt.Fprintf(&b, "        %s\n", styles.Muted.Render(t.Description))
		}
	}
	return b.String()
}
