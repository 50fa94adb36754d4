package completion

import (
	"context"
	"slices"
	"time"

	"github.com/NikitaCOEUR/mycli/internal/logger"
)

// DefaultProviderTimeout bounds a single value lookup. A lookup that runs
// longer yields no candidates.
const DefaultProviderTimeout = 3 * time.Second

// Resolver turns a partially typed command line into completion candidates.
// It keeps no state between calls and is safe for concurrent use.
type Resolver struct {
	registry *Registry
	timeout  time.Duration
	log      *logger.Logger
}

// ResolverOption configures a Resolver
type ResolverOption func(*Resolver)

// WithTimeout overrides DefaultProviderTimeout. Zero or negative disables the bound.
func WithTimeout(d time.Duration) ResolverOption {
	return func(r *Resolver) {
		r.timeout = d
	}
}

// WithResolverLogger sets the logger used for debug traces
func WithResolverLogger(log *logger.Logger) ResolverOption {
	return func(r *Resolver) {
		if log != nil {
			r.log = log
		}
	}
}

// NewResolver creates a resolver over registry. The registry is read, never modified.
func NewResolver(registry *Registry, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		registry: registry,
		timeout:  DefaultProviderTimeout,
		log:      logger.Discard(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve returns the candidates for word given the line typed so far and the
// cursor offset in runes. It never fails; no suggestion is an empty slice.
func (r *Resolver) Resolve(ctx context.Context, word, line string, cursor int) []string {
	tokens := Tokens(line, cursor)
	if len(tokens) > 0 {
		// Drop the program name
		tokens = tokens[1:]
	}

	if len(tokens) == 0 {
		return r.commandNames(word)
	}

	cmd, ok := r.registry.Lookup(tokens[0])
	if !ok {
		// Unknown command, or the command name is still being typed
		return r.commandNames(word)
	}

	if len(tokens) == 1 {
		return FilterFold(cmd.Options(word), word)
	}

	options := cmd.AllOptions()

	// The last token is an option waiting for its value
	if last := tokens[len(tokens)-1]; slices.Contains(options, last) {
		return r.valuesFor(ctx, cmd, last, tokens, options, word)
	}

	// The value of the option before it is being typed
	if prev := tokens[len(tokens)-2]; slices.Contains(options, prev) && word != "" {
		return r.valuesFor(ctx, cmd, prev, tokens, options, word)
	}

	return FilterFold(without(options, tokens), word)
}

// valuesFor asks the provider for option values and falls back to the options
// not used yet when there are none
func (r *Resolver) valuesFor(ctx context.Context, cmd Provider, option string, tokens, options []string, word string) []string {
	lookupCtx := ctx
	if r.timeout > 0 {
		var cancel context.CancelFunc
		lookupCtx, cancel = context.WithTimeout(ctx, r.timeout)
		defer cancel()
	}

	start := time.Now()
	values := FilterFold(cmd.Candidates(lookupCtx, option, word), word)

	r.log.Debug().
		Str("command", cmd.Name()).
		Str("option", option).
		Str("word", word).
		Int("values", len(values)).
		Dur("elapsed", time.Since(start)).
		Msg("Looked up option values")

	if len(values) == 0 {
		return FilterFold(without(options, tokens), word)
	}
	return values
}

func (r *Resolver) commandNames(word string) []string {
	return filterExact(r.registry.Names(), word)
}
