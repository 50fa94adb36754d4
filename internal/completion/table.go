package completion

import (
	"context"
	"slices"

	"github.com/NikitaCOEUR/mycli/internal/derrors"
	"github.com/NikitaCOEUR/mycli/internal/logger"
)

// Table is a Provider backed by an ordered option table.
// Each option has either a static value list or a dynamic source.
type Table struct {
	name    string
	options []Option
	index   map[string]int
	log     *logger.Logger
}

// NewTable builds a table for command name. Option names must be non-empty and unique.
func NewTable(name string, options ...Option) (*Table, error) {
	if name == "" {
		return nil, derrors.NewValidationError("name", "command name is empty", nil)
	}

	t := &Table{
		name:    name,
		options: make([]Option, 0, len(options)),
		index:   make(map[string]int, len(options)),
		log:     logger.Discard(),
	}

	for _, opt := range options {
		if opt.Name == "" {
			return nil, derrors.NewValidationError(name, "option name is empty", nil)
		}
		if _, exists := t.index[opt.Name]; exists {
			return nil, derrors.NewAlreadyExistsError(name+"/"+opt.Name, "option registered twice for command "+name)
		}
		t.index[opt.Name] = len(t.options)
		t.options = append(t.options, opt)
	}

	return t, nil
}

// Name returns the command name
func (t *Table) Name() string {
	return t.name
}

// AllOptions returns every option name in registration order
func (t *Table) AllOptions() []string {
	names := make([]string, len(t.options))
	for i, opt := range t.options {
		names[i] = opt.Name
	}
	return names
}

// Options returns the option names containing word, ignoring case
func (t *Table) Options(word string) []string {
	return FilterFold(t.AllOptions(), word)
}

// Source returns the candidate source registered for option
func (t *Table) Source(option string) (Source, bool) {
	i, ok := t.index[option]
	if !ok {
		return nil, false
	}
	return t.options[i].Source, true
}

// Candidates returns the values of option matching word.
// Dynamic source failures are logged and reported as no candidates.
// Asking for an option the table does not own is a programming error and panics.
func (t *Table) Candidates(ctx context.Context, option, word string) []string {
	src, ok := t.Source(option)
	if !ok {
		panic(derrors.NewNotFoundError(t.name+"/"+option, "option "+option+" is not registered for command "+t.name))
	}

	values, err := lookup(ctx, src, word)
	if err != nil {
		t.log.Debug().
			Str("command", t.name).
			Str("option", option).
			Str("word", word).
			Err(err).
			Msg("Candidate source failed")
		return []string{}
	}

	if values == nil {
		return []string{}
	}
	return slices.Clone(values)
}
