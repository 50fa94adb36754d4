// Package completion resolves shell completion requests for mycli commands.
//
// A request is (word under cursor, whole line, cursor offset). The line is
// re-tokenized, the command and option being completed are identified, and the
// matching Provider supplies option names or option values.
package completion

import "context"

// Provider supplies completion data for one command
type Provider interface {
	// Name returns the command name, unique within a Registry
	Name() string

	// AllOptions returns every option the command accepts, in registration order
	AllOptions() []string

	// Options returns the options containing word, ignoring case
	Options(word string) []string

	// Candidates returns the values for option matching word. It may block on
	// network or subprocess I/O and must honour ctx. Failures are never returned:
	// a provider that cannot answer returns an empty slice, which makes the
	// resolver suggest option names instead.
	Candidates(ctx context.Context, option, word string) []string
}
