package config

import (
	"github.com/NikitaCOEUR/mycli/internal/cache"
	"github.com/NikitaCOEUR/mycli/internal/completion"
	"github.com/NikitaCOEUR/mycli/internal/derrors"
	"github.com/NikitaCOEUR/mycli/internal/logger"
	"github.com/NikitaCOEUR/mycli/internal/sources"
)

// source compiles the option's value source. Dynamic sources of options with a
// cache duration go through c when it is set.
func (o Option) source(command string, c *cache.Cache) (completion.Source, error) {
	kinds := 0
	if len(o.Values) > 0 {
		kinds++
	}
	if o.HTTP != nil {
		kinds++
	}
	if o.Exec != nil {
		kinds++
	}
	if kinds > 1 {
		return nil, derrors.NewValidationError(o.Name, "values, http and exec are mutually exclusive", nil)
	}

	switch {
	case o.HTTP != nil:
		src, err := sources.NewHTTP(sources.HTTPConfig{
			URL:       o.HTTP.URL,
			Format:    o.HTTP.Format,
			Query:     o.HTTP.Query,
			Headers:   o.HTTP.Headers,
			SkipEmpty: o.HTTP.SkipEmpty,
			Quote:     o.Quote,
		})
		if err != nil {
			return nil, err
		}
		return o.dynamic(command, c, src.Request, src.Candidates), nil
	case o.Exec != nil:
		src, err := sources.NewExec(sources.ExecConfig{
			Run:   o.Exec.Run,
			Env:   o.Exec.Env,
			Quote: o.Quote,
		})
		if err != nil {
			return nil, err
		}
		return o.dynamic(command, c, src.Request, src.Candidates), nil
	case len(o.Values) > 0:
		return completion.Values(o.Values...), nil
	default:
		return completion.None(), nil
	}
}

// dynamic caches fn per request, so words that render the same URL or
// command line share an entry
func (o Option) dynamic(command string, c *cache.Cache, key cache.KeyFunc, fn cache.Func) completion.Source {
	if c == nil || o.Cache <= 0 {
		return completion.Func(fn)
	}
	return completion.Func(c.Wrap(command, o.Name, o.Cache, key, fn))
}

// BuildOption configures Build
type BuildOption func(*buildOptions)

type buildOptions struct {
	cache *cache.Cache
}

// WithCache serves the dynamic sources of options that set a cache
// duration from c
func WithCache(c *cache.Cache) BuildOption {
	return func(o *buildOptions) {
		o.cache = c
	}
}

// Build compiles cfg into a registry, keeping command and option order.
// Any defect in the table fails the whole build.
func Build(cfg *Config, log *logger.Logger, opts ...BuildOption) (*completion.Registry, error) {
	if log == nil {
		log = logger.Discard()
	}
	var bo buildOptions
	for _, opt := range opts {
		opt(&bo)
	}

	registry := completion.NewRegistry(completion.WithLogger(log))
	for _, cmd := range cfg.Commands {
		options := make([]completion.Option, 0, len(cmd.Options))
		for _, opt := range cmd.Options {
			src, err := opt.source(cmd.Name, bo.cache)
			if err != nil {
				return nil, derrors.NewConfigurationError(cmd.Name+"/"+opt.Name, "invalid option source", err)
			}
			options = append(options, completion.Option{Name: opt.Name, Source: src})
		}

		if err := registry.Register(cmd.Name, options...); err != nil {
			return nil, derrors.NewConfigurationError(cmd.Name, "invalid command", err)
		}
	}

	log.Debug().
		Int("commands", registry.Len()).
		Strs("files", cfg.Files).
		Msg("Command table built")

	return registry, nil
}
