package cli

import (
	"time"

	"github.com/NikitaCOEUR/mycli/internal/cache"
	"github.com/NikitaCOEUR/mycli/internal/completion"
	"github.com/NikitaCOEUR/mycli/internal/config"
	"github.com/NikitaCOEUR/mycli/internal/logger"
)

// resolveConfigPath returns the table file to load and whether it must exist.
// An explicit path must exist; the default user file is optional.
func resolveConfigPath(path string) (string, bool) {
	if path != "" {
		return path, true
	}
	defaultPath, err := config.DefaultConfigPath()
	if err != nil {
		return "", false
	}
	return defaultPath, false
}

// loadConfig loads the built-in table merged with the user's one
func loadConfig(path string) (*config.Config, error) {
	resolved, required := resolveConfigPath(path)
	return config.Load(resolved, required)
}

// newResolver builds the registry from cfg and wraps it in a resolver.
// timeout overrides the table's timeout when positive.
func newResolver(cfg *config.Config, timeout time.Duration, log *logger.Logger, opts ...config.BuildOption) (*completion.Resolver, error) {
	registry, err := config.Build(cfg, log.Component("config"), opts...)
	if err != nil {
		return nil, err
	}

	resolverOpts := []completion.ResolverOption{completion.WithResolverLogger(log.Component("resolver"))}
	switch {
	case timeout > 0:
		resolverOpts = append(resolverOpts, completion.WithTimeout(timeout))
	case cfg.Timeout > 0:
		resolverOpts = append(resolverOpts, completion.WithTimeout(cfg.Timeout))
	}

	return completion.NewResolver(registry, resolverOpts...), nil
}

// levelFor picks the flag level, then the table's, then warn
func levelFor(flag string, cfg *config.Config) string {
	if flag != "" {
		return flag
	}
	if cfg != nil && cfg.LogLevel != "" {
		return cfg.LogLevel
	}
	return "warn"
}

// openCache opens the candidate cache. Completion keeps working without it,
// so failures only produce a debug line and a nil cache.
func openCache(log *logger.Logger) *cache.Cache {
	path, err := cache.DefaultPath()
	if err != nil {
		log.Debug().Err(err).Msg("Candidate cache disabled")
		return nil
	}
	c, err := cache.New(path)
	if err != nil {
		log.Debug().Err(err).Str("path", path).Msg("Candidate cache disabled")
		return nil
	}
	return c
}

// usesCache reports whether any option of cfg caches its values
func usesCache(cfg *config.Config) bool {
	for _, cmd := range cfg.Commands {
		for _, opt := range cmd.Options {
			if opt.Cache > 0 {
				return true
			}
		}
	}
	return false
}
