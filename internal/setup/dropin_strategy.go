package setup

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/NikitaCOEUR/mycli/internal/shell"
)

// DropInStrategy writes the completion script into a directory the shell
// loads by itself: fish's completions directory, or ~/.bashrc.d and ~/.zshrc.d
// when the RC file sources them
type DropInStrategy struct {
	shell      string
	program    string
	dropInDir  string
	dropInFile string
	rcFile     string
	autoloaded bool
	message    string
}

// NewDropInStrategy creates a new drop-in strategy
func NewDropInStrategy(shellName, program string) (*DropInStrategy, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get home directory: %w", err)
	}

	rcFile, err := GetRCFilePath(shellName)
	if err != nil {
		return nil, err
	}

	shellName = shell.Normalize(shellName)
	s := &DropInStrategy{shell: shellName, program: program, rcFile: rcFile}
	switch shellName {
	case shell.Fish:
		s.dropInDir = filepath.Join(configHome(home), "fish", "completions")
		s.dropInFile = filepath.Join(s.dropInDir, program+".fish")
		s.autoloaded = true
	default:
		s.dropInDir = filepath.Join(home, fmt.Sprintf(".%src.d", shellName))
		s.dropInFile = filepath.Join(s.dropInDir, program+".sh")
	}
	return s, nil
}

// IsSupported checks if the shell loads the drop-in directory
func (s *DropInStrategy) IsSupported() bool {
	if s.autoloaded {
		return true
	}
	if s.shell == shell.PowerShell {
		return false
	}

	data, err := os.ReadFile(s.rcFile)
	if err != nil {
		return false
	}
	return strings.Contains(string(data), fmt.Sprintf(".%src.d", s.shell))
}

func (s *DropInStrategy) script() (string, error) {
	gen, err := shell.NewCodeGenerator(s.shell)
	if err != nil {
		return "", err
	}
	return gen.Generate(s.program), nil
}

// Install installs the hook using drop-in directory
func (s *DropInStrategy) Install() error {
	code, err := s.script()
	if err != nil {
		return err
	}

	if err := os.MkdirAll(s.dropInDir, 0755); err != nil {
		return fmt.Errorf("failed to create drop-in directory: %w", err)
	}
	if err := atomicWrite(s.dropInFile, []byte(code)); err != nil {
		return fmt.Errorf("failed to create drop-in file: %w", err)
	}

	s.message = fmt.Sprintf("✓ Hook installed to %s\n✓ No modification to %s needed!", s.dropInFile, s.rcFile)
	return nil
}

// Uninstall removes the drop-in file
func (s *DropInStrategy) Uninstall() error {
	if err := os.Remove(s.dropInFile); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove drop-in file: %w", err)
	}

	s.message = fmt.Sprintf("✓ Removed %s", s.dropInFile)
	return nil
}

// IsInstalled checks if the drop-in file exists
func (s *DropInStrategy) IsInstalled() bool {
	_, err := os.Stat(s.dropInFile)
	return err == nil
}

// NeedsUpdate checks if the script on disk is the one this build generates
func (s *DropInStrategy) NeedsUpdate() bool {
	current, err := os.ReadFile(s.dropInFile)
	if err != nil {
		return true
	}
	expected, err := s.script()
	if err != nil {
		return true
	}
	return string(current) != expected
}

// GetMessage returns a user-friendly message
func (s *DropInStrategy) GetMessage() string {
	if s.message == "" {
		return fmt.Sprintf("✓ Hook found in %s", s.dropInFile)
	}
	return s.message
}

// GetRCFile returns the RC file path
func (s *DropInStrategy) GetRCFile() string {
	return s.rcFile
}
