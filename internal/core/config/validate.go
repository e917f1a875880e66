package config

import (
	"fmt"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hay-kot/criterio"
)

// knownCommands are the canonical verbs configuration may reference.
var knownCommands = map[string]bool{
	"add":        true,
	"list":       true,
	"delete":     true,
	"complete":   true,
	"incomplete": true,
	"update":     true,
	"undo":       true,
	"help":       true,
	"quit":       true,
}

// Validate performs structural validation of the configuration.
func (c *Config) Validate() error {
	return criterio.ValidateStruct(
		c.validateConfirm(),
		c.validateDestructive(),
		c.validateSynonyms(),
		c.validateUndo(),
		c.validateList(),
		c.validateFilters(),
	)
}

// validateConfirm checks the yes/no vocabularies are usable and disjoint.
func (c *Config) validateConfirm() error {
	var errs criterio.FieldErrorsBuilder

	if len(c.Confirm.Yes) == 0 {
		errs = errs.Append("confirm.yes", fmt.Errorf("at least one word is required"))
	}
	if len(c.Confirm.No) == 0 {
		errs = errs.Append("confirm.no", fmt.Errorf("at least one word is required"))
	}

	yes := make(map[string]bool, len(c.Confirm.Yes))
	for _, w := range c.Confirm.Yes {
		yes[strings.ToLower(w)] = true
	}
	for _, w := range c.Confirm.No {
		if yes[strings.ToLower(w)] {
			errs = errs.Append("confirm.no", fmt.Errorf("%q appears in both yes and no", w))
		}
	}

	return errs.ToError()
}

func (c *Config) validateDestructive() error {
	var errs criterio.FieldErrorsBuilder
	for i, cmd := range c.Destructive {
		if !knownCommands[cmd] {
			errs = errs.Append(fmt.Sprintf("destructive[%d]", i), fmt.Errorf("unknown command %q", cmd))
		}
	}
	return errs.ToError()
}

// validateSynonyms checks that extra synonyms target known canonical verbs
// and do not shadow canonical verbs themselves.
func (c *Config) validateSynonyms() error {
	var errs criterio.FieldErrorsBuilder
	for canonical, aliases := range c.Synonyms {
		if !knownCommands[canonical] {
			errs = errs.Append("synonyms."+canonical, fmt.Errorf("unknown command %q", canonical))
			continue
		}
		for i, alias := range aliases {
			if knownCommands[alias] && alias != canonical {
				errs = errs.Append(fmt.Sprintf("synonyms.%s[%d]", canonical, i),
					fmt.Errorf("%q is a command and cannot be an alias", alias))
			}
		}
	}
	return errs.ToError()
}

func (c *Config) validateUndo() error {
	var errs criterio.FieldErrorsBuilder
	if c.Undo.Choose != UndoChooseLatest && c.Undo.Choose != UndoChoosePrompt {
		errs = errs.Append("undo.choose", fmt.Errorf("must be %q or %q, got %q", UndoChooseLatest, UndoChoosePrompt, c.Undo.Choose))
	}
	if c.Undo.Limit < 0 {
		errs = errs.Append("undo.limit", fmt.Errorf("must not be negative"))
	}
	return errs.ToError()
}

func (c *Config) validateList() error {
	switch c.List.Default {
	case "pending", "all":
		return nil
	default:
		return criterio.NewFieldErrors("list.default", fmt.Errorf("must be \"pending\" or \"all\", got %q", c.List.Default))
	}
}

// validateFilters checks saved filter tag patterns are valid doublestar globs.
func (c *Config) validateFilters() error {
	var errs criterio.FieldErrorsBuilder
	for name, filter := range c.Filters {
		if name == "all" || name == "pending" || name == "done" {
			errs = errs.Append("filters."+name, fmt.Errorf("%q shadows a built-in filter", name))
		}
		for i, pattern := range filter.Tags {
			if !doublestar.ValidatePattern(pattern) {
				errs = errs.Append(fmt.Sprintf("filters.%s.tags[%d]", name, i),
					fmt.Errorf("invalid pattern %q", pattern))
			}
		}
	}
	return errs.ToError()
}
