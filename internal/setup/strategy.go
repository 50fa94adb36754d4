package setup

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/NikitaCOEUR/mycli/internal/shell"
)

// InstallStrategy defines the interface for different hook installation strategies
type InstallStrategy interface {
	// Install installs the hook using the strategy
	Install() error
	// Uninstall removes the hook
	Uninstall() error
	// IsInstalled checks if the hook is currently installed
	IsInstalled() bool
	// NeedsUpdate checks if the hook needs to be updated
	NeedsUpdate() bool
	// GetMessage returns a user-friendly message about the installation
	GetMessage() string
	// GetRCFile returns the RC file path (if applicable)
	GetRCFile() string
}

// SelectInstallStrategy selects the best installation strategy for the given shell.
// A drop-in file is preferred when the shell loads it without touching the RC file.
func SelectInstallStrategy(shellName, program string) (InstallStrategy, error) {
	dropIn, err := NewDropInStrategy(shellName, program)
	if err != nil {
		return nil, err
	}
	if dropIn.IsSupported() {
		return dropIn, nil
	}
	return NewRCBlockStrategy(shellName, program)
}

func allStrategies(shellName, program string) ([]InstallStrategy, error) {
	dropIn, err := NewDropInStrategy(shellName, program)
	if err != nil {
		return nil, err
	}
	block, err := NewRCBlockStrategy(shellName, program)
	if err != nil {
		return nil, err
	}
	return []InstallStrategy{dropIn, block}, nil
}

// RCBlockStrategy keeps a marked block in the RC file that evaluates
// `<program> hook <shell>` at shell startup
type RCBlockStrategy struct {
	shell   string
	program string
	rcFile  string
	message string
}

// NewRCBlockStrategy creates a new RC block strategy
func NewRCBlockStrategy(shellName, program string) (*RCBlockStrategy, error) {
	rcFile, err := GetRCFilePath(shellName)
	if err != nil {
		return nil, err
	}
	return &RCBlockStrategy{shell: shell.Normalize(shellName), program: program, rcFile: rcFile}, nil
}

// block returns the marked section, markers included
func (s *RCBlockStrategy) block() string {
	var line string
	switch s.shell {
	case shell.Fish:
		line = fmt.Sprintf("%s hook fish | source", s.program)
	case shell.PowerShell:
		line = fmt.Sprintf("%s hook pwsh | Out-String | Invoke-Expression", s.program)
	default:
		line = fmt.Sprintf(`eval "$(%s hook %s)"`, s.program, s.shell)
	}
	return HookMarkerStart + "\n" + line + "\n" + HookMarkerEnd + "\n"
}

func (s *RCBlockStrategy) read() string {
	data, err := os.ReadFile(s.rcFile)
	if err != nil {
		return ""
	}
	return string(data)
}

// Install writes the block, replacing an older one
func (s *RCBlockStrategy) Install() error {
	content := removeMarkedSection(s.read(), HookMarkerStart, HookMarkerEnd)
	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	if content != "" {
		content += "\n"
	}
	content += s.block()

	if err := os.MkdirAll(filepath.Dir(s.rcFile), 0755); err != nil {
		return fmt.Errorf("failed to create %s: %w", filepath.Dir(s.rcFile), err)
	}
	if err := atomicWrite(s.rcFile, []byte(content)); err != nil {
		return err
	}

	s.message = fmt.Sprintf("✓ Hook added to %s", s.rcFile)
	return nil
}

// Uninstall removes the block
func (s *RCBlockStrategy) Uninstall() error {
	content := removeMarkedSection(s.read(), HookMarkerStart, HookMarkerEnd)
	if err := atomicWrite(s.rcFile, []byte(content)); err != nil {
		return err
	}
	s.message = fmt.Sprintf("✓ Removed hook from %s", s.rcFile)
	return nil
}

// IsInstalled checks if the RC file has the markers
func (s *RCBlockStrategy) IsInstalled() bool {
	return containsMarkers(s.read(), HookMarkerStart, HookMarkerEnd)
}

// NeedsUpdate checks if the block differs from the current one
func (s *RCBlockStrategy) NeedsUpdate() bool {
	return !strings.Contains(s.read(), s.block())
}

// GetMessage returns a user-friendly message
func (s *RCBlockStrategy) GetMessage() string {
	if s.message == "" {
		return fmt.Sprintf("✓ Hook found in %s", s.rcFile)
	}
	return s.message
}

// GetRCFile returns the RC file path
func (s *RCBlockStrategy) GetRCFile() string {
	return s.rcFile
}
