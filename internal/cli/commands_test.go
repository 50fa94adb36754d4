package cli

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommands(t *testing.T) {
	path := writeUserConfig(t, `commands:
  - name: deploy
    description: Ship it
    options:
      - name: --env
        values: [staging, production]
`)

	output, err := captureOutput(t, func() error {
		return Commands("", nil)
	})
	require.NoError(t, err)

	assert.Contains(t, output, "Commands (8):")
	assert.Contains(t, output, "<builtin>")
	assert.Contains(t, output, path)
	assert.Contains(t, output, "Ship it")
	assert.Contains(t, output, "staging, production")
	assert.Contains(t, output, "[http]")
	assert.Contains(t, output, "(cached 10m0s)")
	assert.Contains(t, output, "candidates.json")
	assert.Contains(t, output, "(0 entries, 0 B)")
}

func TestCommands_Filtered(t *testing.T) {
	isolateConfig(t)

	output, err := captureOutput(t, func() error {
		return Commands("", []string{"edit"})
	})
	require.NoError(t, err)

	assert.Contains(t, output, "Commands (1):")
	assert.Contains(t, output, "--backup")
	assert.NotContains(t, output, "--platform")
}

func TestCommands_MissingConfig(t *testing.T) {
	isolateConfig(t)

	_, err := captureOutput(t, func() error {
		return Commands("/nonexistent/commands.yml", nil)
	})
	assert.Error(t, err)
}
