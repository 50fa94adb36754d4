// Package setup installs the mycli completion hook into shell startup files.
package setup

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/NikitaCOEUR/mycli/internal/derrors"
	"github.com/NikitaCOEUR/mycli/internal/shell"
)

const (
	// HookMarkerStart is the starting marker for the mycli hook in RC files
	HookMarkerStart = "# mycli shell hook - START"
	// HookMarkerEnd is the ending marker for the mycli hook in RC files
	HookMarkerEnd = "# mycli shell hook - END"
)

// Result represents the result of a setup operation
type Result struct {
	RCFile  string
	Updated bool
	Message string
}

// GetRCFilePath returns the startup file mycli edits for the given shell
func GetRCFilePath(shellName string) (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}

	switch shell.Normalize(shellName) {
	case shell.Bash:
		return filepath.Join(home, ".bashrc"), nil
	case shell.Zsh:
		return filepath.Join(home, ".zshrc"), nil
	case shell.Fish:
		return filepath.Join(configHome(home), "fish", "config.fish"), nil
	case shell.PowerShell:
		if runtime.GOOS == "windows" {
			return filepath.Join(home, "Documents", "PowerShell", "Microsoft.PowerShell_profile.ps1"), nil
		}
		return filepath.Join(configHome(home), "powershell", "Microsoft.PowerShell_profile.ps1"), nil
	default:
		return "", derrors.NewNotFoundError(shellName, fmt.Sprintf("unsupported shell: %s (use bash, zsh, fish or pwsh)", shellName))
	}
}

func configHome(home string) string {
	if dir := os.Getenv("XDG_CONFIG_HOME"); dir != "" {
		return dir
	}
	return filepath.Join(home, ".config")
}

// InstallHook installs or updates the hook of program for shellName
func InstallHook(shellName, program string) (*Result, error) {
	strategy, err := SelectInstallStrategy(shellName, program)
	if err != nil {
		return nil, err
	}

	if strategy.IsInstalled() && !strategy.NeedsUpdate() {
		return &Result{
			RCFile:  strategy.GetRCFile(),
			Updated: false,
			Message: strategy.GetMessage() + "\n✓ Shell completion is up to date",
		}, nil
	}

	if err := strategy.Install(); err != nil {
		return nil, fmt.Errorf("failed to install hook: %w", err)
	}

	return &Result{
		RCFile:  strategy.GetRCFile(),
		Updated: true,
		Message: strategy.GetMessage() + "\n✓ Restart your shell to enable completion",
	}, nil
}

// IsHookInstalled reports whether any strategy has installed the hook
func IsHookInstalled(shellName, program string) (bool, error) {
	strategies, err := allStrategies(shellName, program)
	if err != nil {
		return false, err
	}
	for _, s := range strategies {
		if s.IsInstalled() {
			return true, nil
		}
	}
	return false, nil
}

// UninstallHook removes the hook wherever it was installed
func UninstallHook(shellName, program string) (*Result, error) {
	rcFile, err := GetRCFilePath(shellName)
	if err != nil {
		return nil, err
	}

	strategies, err := allStrategies(shellName, program)
	if err != nil {
		return nil, err
	}

	result := &Result{RCFile: rcFile}
	for _, s := range strategies {
		if !s.IsInstalled() {
			continue
		}
		if err := s.Uninstall(); err != nil {
			return nil, fmt.Errorf("failed to uninstall: %w", err)
		}
		if result.Message != "" {
			result.Message += "\n"
		}
		result.Message += s.GetMessage()
		result.Updated = true
	}

	if !result.Updated {
		result.Message = fmt.Sprintf("✓ %s hook is not installed", program)
	}
	return result, nil
}
