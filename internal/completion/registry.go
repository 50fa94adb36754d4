package completion

import (
	"iter"
	"slices"

	"github.com/NikitaCOEUR/mycli/internal/derrors"
	"github.com/NikitaCOEUR/mycli/internal/logger"
)

// Registry is the ordered set of command providers.
//
// Commands are registered at startup. Once a Resolver starts serving requests the
// registry must not change, which is what lets concurrent requests read it
// without locking.
type Registry struct {
	providers []Provider
	log       *logger.Logger
}

// RegistryOption configures a Registry
type RegistryOption func(*Registry)

// WithLogger sets the logger handed to tables created by Register
func WithLogger(log *logger.Logger) RegistryOption {
	return func(r *Registry) {
		if log != nil {
			r.log = log
		}
	}
}

// NewRegistry creates an empty registry
func NewRegistry(opts ...RegistryOption) *Registry {
	r := &Registry{log: logger.Discard()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Register adds a table-backed command
func (r *Registry) Register(name string, options ...Option) error {
	table, err := NewTable(name, options...)
	if err != nil {
		return err
	}
	table.log = r.log.Component("table")
	return r.Add(table)
}

// MustRegister is like Register but panics on a duplicate or invalid table.
// It is meant for tables compiled into the binary.
func (r *Registry) MustRegister(name string, options ...Option) {
	if err := r.Register(name, options...); err != nil {
		panic(err)
	}
}

// Add appends a provider. Command names must be unique.
func (r *Registry) Add(p Provider) error {
	name := p.Name()
	if name == "" {
		return derrors.NewValidationError("name", "command name is empty", nil)
	}
	if _, exists := r.Lookup(name); exists {
		return derrors.NewAlreadyExistsError(name, "command "+name+" is already registered")
	}
	r.providers = append(r.providers, p)
	return nil
}

// Lookup finds a provider by exact command name.
// A linear scan is fine: a launcher has a handful of commands.
func (r *Registry) Lookup(name string) (Provider, bool) {
	for _, p := range r.providers {
		if p.Name() == name {
			return p, true
		}
	}
	return nil, false
}

// Names returns the command names in registration order
func (r *Registry) Names() []string {
	names := make([]string, len(r.providers))
	for i, p := range r.providers {
		names[i] = p.Name()
	}
	return names
}

// All iterates over the providers in registration order
func (r *Registry) All() iter.Seq[Provider] {
	return slices.Values(r.providers)
}

// Len returns the number of registered commands
func (r *Registry) Len() int {
	return len(r.providers)
}
