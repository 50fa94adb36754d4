package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/NikitaCOEUR/mycli/internal/derrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func commandNames(cfg *Config) []string {
	names := make([]string, len(cfg.Commands))
	for i, cmd := range cfg.Commands {
		names[i] = cmd.Name
	}
	return names
}

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, []string{BuiltinPath}, cfg.Files)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.Equal(t,
		[]string{"search", "share", "edit", "view", "google", "swdt", "gh-issues"},
		commandNames(cfg),
	)

	search, ok := cfg.Command("search")
	require.True(t, ok)
	require.Len(t, search.Options, 3)
	assert.Equal(t, "--category", search.Options[0].Name)
	assert.Equal(t, []string{"books", "movies", "music"}, search.Options[0].Values)
	assert.Equal(t, "static", search.Options[0].Kind())

	edit, _ := cfg.Command("edit")
	assert.Equal(t, "--backup", edit.Options[2].Name)
	assert.Equal(t, "none", edit.Options[2].Kind())

	google, _ := cfg.Command("google")
	require.NotNil(t, google.Options[0].HTTP)
	assert.Equal(t, "xml", google.Options[0].HTTP.Format)
	assert.True(t, google.Options[0].HTTP.SkipEmpty)
	assert.True(t, google.Options[0].Quote)

	swdt, _ := cfg.Command("swdt")
	require.NotNil(t, swdt.Options[0].Exec)
	assert.Equal(t, "exec", swdt.Options[0].Kind())

	issues, _ := cfg.Command("gh-issues")
	require.NotNil(t, issues.Options[0].HTTP)
	assert.Equal(t, "2022-11-28", issues.Options[0].HTTP.Headers["X-GitHub-Api-Version"])
	assert.Equal(t, 10*time.Minute, issues.Options[0].Cache)
}

func TestDefault_PassesValidation(t *testing.T) {
	result, err := ValidateWithSchema("defaults.yml", DefaultYAML())
	require.NoError(t, err)
	assert.True(t, result.Valid, "%v", result.Errors)

	assert.True(t, Check(Default()).Valid)
}

func TestParse_Formats(t *testing.T) {
	tests := []struct {
		name    string
		path    string
		content string
	}{
		{
			name: "yaml",
			path: "commands.yml",
			content: `
timeout: 500ms
commands:
  - name: deploy
    options:
      - name: --env
        values: [staging, production]
      - name: --dry-run
`,
		},
		{
			name: "toml",
			path: "commands.toml",
			content: `
timeout = "500ms"

[[commands]]
name = "deploy"

[[commands.options]]
name = "--env"
values = ["staging", "production"]

[[commands.options]]
name = "--dry-run"
`,
		},
		{
			name: "json",
			path: "commands.json",
			content: `{
  "timeout": "500ms",
  "commands": [
    {"name": "deploy", "options": [
      {"name": "--env", "values": ["staging", "production"]},
      {"name": "--dry-run"}
    ]}
  ]
}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := Parse(tt.path, []byte(tt.content))
			require.NoError(t, err)

			assert.Equal(t, 500*time.Millisecond, cfg.Timeout)
			require.Len(t, cfg.Commands, 1)
			deploy := cfg.Commands[0]
			assert.Equal(t, "deploy", deploy.Name)
			require.Len(t, deploy.Options, 2)
			assert.Equal(t, []string{"staging", "production"}, deploy.Options[0].Values)
			assert.Equal(t, "none", deploy.Options[1].Kind())
		})
	}
}

func TestParse_Errors(t *testing.T) {
	_, err := Parse("commands.ini", []byte("x=1"))
	var cfgErr *derrors.ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "commands.ini", cfgErr.Path)

	_, err = Parse("commands.yml", []byte("commands: [[["))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	tmpDir := t.TempDir()

	t.Run("missing optional file", func(t *testing.T) {
		cfg, err := Load(filepath.Join(tmpDir, "absent.yml"), false)
		require.NoError(t, err)
		assert.Equal(t, []string{BuiltinPath}, cfg.Files)
		assert.Len(t, cfg.Commands, 7)
	})

	t.Run("missing required file", func(t *testing.T) {
		_, err := Load(filepath.Join(tmpDir, "absent.yml"), true)
		var cfgErr *derrors.ConfigurationError
		assert.True(t, errors.As(err, &cfgErr))
	})

	t.Run("empty path", func(t *testing.T) {
		cfg, err := Load("", true)
		require.NoError(t, err)
		assert.Len(t, cfg.Commands, 7)
	})

	t.Run("user file merged", func(t *testing.T) {
		path := filepath.Join(tmpDir, "commands.yml")
		content := `
log_level: debug
commands:
  - name: search
    options:
      - name: --lang
        values: [en, fr]
  - name: deploy
    options:
      - name: --env
        values: [staging]
`
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))

		cfg, err := Load(path, true)
		require.NoError(t, err)
		assert.Equal(t, []string{BuiltinPath, path}, cfg.Files)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, 3*time.Second, cfg.Timeout)
		assert.Equal(t,
			[]string{"search", "share", "edit", "view", "google", "swdt", "gh-issues", "deploy"},
			commandNames(cfg),
		)

		search, _ := cfg.Command("search")
		require.Len(t, search.Options, 1)
		assert.Equal(t, "--lang", search.Options[0].Name)
	})

	t.Run("invalid user file", func(t *testing.T) {
		path := filepath.Join(tmpDir, "broken.json")
		require.NoError(t, os.WriteFile(path, []byte("{"), 0644))

		_, err := Load(path, false)
		assert.Error(t, err)
	})
}

func TestMerge_IgnoreDefaults(t *testing.T) {
	override := &Config{
		IgnoreDefaults: true,
		Commands:       []Command{{Name: "only"}},
		Files:          []string{"user.yml"},
	}

	merged := Merge(Default(), override)
	assert.Equal(t, []string{"only"}, commandNames(merged))
	assert.Equal(t, []string{"user.yml"}, merged.Files)
}

func TestMerge_KeepsBase(t *testing.T) {
	base := &Config{Timeout: time.Second, LogLevel: "info", Commands: []Command{{Name: "a"}, {Name: "b"}}}
	override := &Config{Commands: []Command{{Name: "c"}, {Name: "a", Description: "new"}}}

	merged := Merge(base, override)
	assert.Equal(t, []string{"a", "b", "c"}, commandNames(merged))
	assert.Equal(t, "new", merged.Commands[0].Description)
	assert.Equal(t, time.Second, merged.Timeout)
	assert.Equal(t, "info", merged.LogLevel)

	// base is left untouched
	assert.Equal(t, "", base.Commands[0].Description)
}

func TestDefaultConfigPath(t *testing.T) {
	t.Run("XDG_CONFIG_HOME", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
		path, err := DefaultConfigPath()
		require.NoError(t, err)
		assert.Equal(t, "/tmp/xdg/mycli/commands.yml", path)
	})

	t.Run("home fallback", func(t *testing.T) {
		t.Setenv("XDG_CONFIG_HOME", "")
		t.Setenv("HOME", "/tmp/home")
		path, err := DefaultConfigPath()
		require.NoError(t, err)
		assert.Equal(t, "/tmp/home/.config/mycli/commands.yml", path)
	})
}
