package console

import "github.com/charmbracelet/glamour"

const helpText = `# tsk

Titles and descriptions go in quotes. Double, single, and backtick quotes
are interchangeable. Tags are written in angle brackets.

## Commands

| command | example |
|---|---|
| add | ` + "`" + `add "Buy milk" "From the corner store" <errand>` + "`" + ` |
| list | ` + "`" + `list` + "`" + `, ` + "`" + `list all` + "`" + `, ` + "`" + `list done` + "`" + ` |
| complete | ` + "`" + `complete 3` + "`" + ` |
| incomplete | ` + "`" + `incomplete 3` + "`" + ` |
| update | ` + "`" + `update 3 "New title" "New description"` + "`" + ` |
| delete | ` + "`" + `delete 3` + "`" + ` |
| undo | ` + "`" + `undo` + "`" + ` |
| help | ` + "`" + `help` + "`" + ` |
| quit | ` + "`" + `quit` + "`" + ` |

Common shorthands work too: ` + "`" + `done` + "`" + ` for complete, ` + "`" + `remove` + "`" + ` for
delete, ` + "`" + `view` + "`" + ` for list, ` + "`" + `exit` + "`" + ` for quit.

Deleting asks for confirmation first. ` + "`" + `undo` + "`" + ` reverses the most recent
change. Named filters from your config file work anywhere a filter does:
` + "`" + `list myfilter` + "`" + `.
`

// RenderHelp renders the help text for the terminal. Rendering failures
// fall back to the raw markdown.
func RenderHelp() string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(80),
	)
	if err != nil {
		return helpText
	}

	out, err := r.Render(helpText)
	if err != nil {
		return helpText
	}
	return out
}
