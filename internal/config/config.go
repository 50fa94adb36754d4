// Package config handles loading of mycli command tables.
//
// A table file lists commands, their options and where option values come from:
// a fixed list, an HTTP suggest endpoint or a local query command. The built-in
// table is embedded in the binary and a user file is merged on top of it.
package config

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/NikitaCOEUR/mycli/internal/derrors"
)

const (
	// ConfigName is the name of the user command table
	ConfigName = "commands.yml"

	// BuiltinPath names the embedded table in Files
	BuiltinPath = "<builtin>"
)

//go:embed defaults.yml
var defaultsYAML []byte

// HTTP describes a suggest endpoint option source
type HTTP struct {
	URL       string            `koanf:"url"`
	Format    string            `koanf:"format"`
	Query     string            `koanf:"query"`
	Headers   map[string]string `koanf:"headers"`
	SkipEmpty bool              `koanf:"skip_empty"`
}

// Exec describes a local query command option source
type Exec struct {
	Run string   `koanf:"run"`
	Env []string `koanf:"env"`
}

// Option is one option of a command and its value source.
// At most one of Values, HTTP and Exec is set; none means a flag without value.
type Option struct {
	Name   string   `koanf:"name"`
	Values []string `koanf:"values"`
	HTTP   *HTTP    `koanf:"http"`
	Exec   *Exec    `koanf:"exec"`
	Quote  bool     `koanf:"quote"`
	// Cache keeps dynamic results on disk for that long; zero disables it
	Cache time.Duration `koanf:"cache"`
}

// Kind returns the source kind: static, http, exec or none
func (o Option) Kind() string {
	switch {
	case o.HTTP != nil:
		return "http"
	case o.Exec != nil:
		return "exec"
	case len(o.Values) > 0:
		return "static"
	default:
		return "none"
	}
}

// Command is a command of the launcher with its ordered options
type Command struct {
	Name        string   `koanf:"name"`
	Description string   `koanf:"description"`
	Options     []Option `koanf:"options"`
}

// Config represents a mycli command table
type Config struct {
	Timeout        time.Duration `koanf:"timeout"`
	LogLevel       string        `koanf:"log_level"`
	IgnoreDefaults bool          `koanf:"ignore_defaults"`
	Commands       []Command     `koanf:"commands"`

	// Files lists where the table was read from, in merge order
	Files []string `koanf:"-"`
}

// Command finds a command by name
func (c *Config) Command(name string) (Command, bool) {
	for _, cmd := range c.Commands {
		if cmd.Name == name {
			return cmd, true
		}
	}
	return Command{}, false
}

// parserFor picks the koanf parser from the file extension
func parserFor(path string) (koanf.Parser, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yml", ".yaml":
		return yaml.Parser(), nil
	case ".toml":
		return toml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
}

// Parse decodes a table. path only selects the format.
func Parse(path string, content []byte) (*Config, error) {
	parser, err := parserFor(path)
	if err != nil {
		return nil, derrors.NewConfigurationError(path, "cannot parse command table", err)
	}

	// Isolated instance per file so keys never leak between loads
	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(content), parser); err != nil {
		return nil, derrors.NewConfigurationError(path, "failed to load config", err)
	}

	cfg := &Config{Commands: []Command{}}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, derrors.NewConfigurationError(path, "failed to unmarshal config", err)
	}
	cfg.Files = []string{path}

	return cfg, nil
}

// LoadFile reads and parses a table file
func LoadFile(path string) (*Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, derrors.NewConfigurationError(path, "cannot read command table", err)
	}
	return Parse(path, content)
}

// Default returns the embedded table
func Default() *Config {
	cfg, err := Parse(BuiltinPath+".yml", defaultsYAML)
	if err != nil {
		// The embedded table is covered by tests
		panic(err)
	}
	cfg.Files = []string{BuiltinPath}
	return cfg
}

// DefaultYAML returns the embedded table source, used as a starting point by users
func DefaultYAML() []byte {
	return defaultsYAML
}

// Load returns the embedded table merged with the file at path.
// A missing file is only an error when required is set.
func Load(path string, required bool) (*Config, error) {
	base := Default()
	if path == "" {
		return base, nil
	}

	if _, err := os.Stat(path); os.IsNotExist(err) {
		if required {
			return nil, derrors.NewConfigurationError(path, "config file not found", err)
		}
		return base, nil
	}

	user, err := LoadFile(path)
	if err != nil {
		return nil, err
	}

	return Merge(base, user), nil
}

// Merge merges base and override tables, override taking precedence.
// A command defined in both is replaced in place; new commands are appended.
// If override has IgnoreDefaults set, base is dropped.
func Merge(base, override *Config) *Config {
	if override.IgnoreDefaults {
		return override
	}

	merged := &Config{
		Timeout:  base.Timeout,
		LogLevel: base.LogLevel,
		Commands: make([]Command, 0, len(base.Commands)+len(override.Commands)),
		Files:    append(append([]string{}, base.Files...), override.Files...),
	}
	if override.Timeout != 0 {
		merged.Timeout = override.Timeout
	}
	if override.LogLevel != "" {
		merged.LogLevel = override.LogLevel
	}

	replaced := make(map[string]bool, len(override.Commands))
	for _, cmd := range base.Commands {
		if o, ok := override.Command(cmd.Name); ok {
			merged.Commands = append(merged.Commands, o)
			replaced[cmd.Name] = true
			continue
		}
		merged.Commands = append(merged.Commands, cmd)
	}
	for _, cmd := range override.Commands {
		if !replaced[cmd.Name] {
			merged.Commands = append(merged.Commands, cmd)
		}
	}

	return merged
}

// DefaultConfigPath returns the path to the user command table
func DefaultConfigPath() (string, error) {
	// Try XDG_CONFIG_HOME first
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}

	return filepath.Join(configHome, "mycli", ConfigName), nil
}
