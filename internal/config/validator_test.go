package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestValidate_ValidConfig(t *testing.T) {
	path := writeConfig(t, "commands.yml", `commands:
  - name: gh-issues
    options:
      - name: --issue
        http:
          url: https://api.github.com/repos/o/r/issues
          query: '.[] | "#\(.number)"'
  - name: edit
    options:
      - name: --mode
        values: [read, write]
      - name: --backup
`)

	result, err := Validate(path)
	require.NoError(t, err)
	assert.True(t, result.Valid)
	assert.Len(t, result.Errors, 0)
}

func TestValidate_FileNotFound(t *testing.T) {
	_, err := Validate("/nonexistent/path/commands.yml")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "config file not found")
}

func TestValidate_InvalidSyntax(t *testing.T) {
	path := writeConfig(t, "commands.yml", `commands:
  - name: x
  invalid yaml here [[[
`)

	result, err := Validate(path)
	require.NoError(t, err)
	assert.False(t, result.Valid)
	assert.Equal(t, "syntax", result.Errors[0].Field)
}

func TestValidate_SemanticErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		field   string
		message string
	}{
		{
			name: "duplicate command",
			content: `commands:
  - name: search
  - name: search
`,
			field:   "commands/search",
			message: "more than once",
		},
		{
			name: "duplicate option",
			content: `commands:
  - name: view
    options:
      - name: --sort
      - name: --sort
`,
			field:   "commands/view/--sort",
			message: "more than once",
		},
		{
			name: "two sources",
			content: `commands:
  - name: view
    options:
      - name: --sort
        values: [name]
        exec:
          run: ls
`,
			field:   "commands/view/--sort",
			message: "mutually exclusive",
		},
		{
			name: "bad jq query",
			content: `commands:
  - name: gh
    options:
      - name: --issue
        http:
          url: https://example.com
          query: '.[ |'
`,
			field:   "commands/gh/--issue",
			message: "invalid jq query",
		},
		{
			name: "bad run line",
			content: `commands:
  - name: swdt
    options:
      - name: --name
        exec:
          run: "pwsh -c 'unterminated"
`,
			field:   "commands/swdt/--name",
			message: "invalid command line",
		},
		{
			name: "cache on static values",
			content: `commands:
  - name: view
    options:
      - name: --sort
        values: [name, date]
        cache: 1h
`,
			field:   "commands/view/--sort",
			message: "http and exec",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := Validate(writeConfig(t, "commands.yml", tt.content))
			require.NoError(t, err)
			assert.False(t, result.Valid)
			require.NotEmpty(t, result.Errors)
			assert.Equal(t, tt.field, result.Errors[0].Field)
			assert.Contains(t, result.Errors[0].Message, tt.message)
		})
	}
}

func TestCheck_EmptyNames(t *testing.T) {
	result := Check(&Config{Commands: []Command{
		{Name: " "},
		{Name: "x", Options: []Option{{Name: ""}}},
	}})

	assert.False(t, result.Valid)
	require.Len(t, result.Errors, 2)
	assert.Equal(t, "commands/0", result.Errors[0].Field)
	assert.Equal(t, "commands/x/options/0", result.Errors[1].Field)
}

func TestCheck_NegativeTimeout(t *testing.T) {
	result := Check(&Config{Timeout: -1})
	assert.False(t, result.Valid)
	assert.Equal(t, "timeout", result.Errors[0].Field)
}
