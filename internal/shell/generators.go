// Package shell generates the scripts that hook mycli into a shell's completion
// system. Every script forwards the current word, the line up to the cursor and
// the cursor offset to `mycli complete` and offers its output lines as candidates.
package shell

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/NikitaCOEUR/mycli/internal/derrors"
)

// Supported shell names
const (
	Bash       = "bash"
	Zsh        = "zsh"
	Fish       = "fish"
	PowerShell = "pwsh"
)

//go:embed templates/bash.tmpl
var bashTemplate string

//go:embed templates/zsh.tmpl
var zshTemplate string

//go:embed templates/fish.tmpl
var fishTemplate string

//go:embed templates/pwsh.tmpl
var pwshTemplate string

// CodeGenerator is an interface for shell-specific completion code generation
type CodeGenerator interface {
	// Generate returns the integration script for program
	Generate(program string) string
	// Name returns the shell name (bash, zsh, etc.)
	Name() string
}

// templateGenerator fills a template with the program name and a function-safe
// variant of it
type templateGenerator struct {
	name     string
	template string
}

func (g *templateGenerator) Name() string {
	return g.name
}

func (g *templateGenerator) Generate(program string) string {
	return fmt.Sprintf(g.template, program, funcName(program))
}

// NewCodeGenerator returns the generator for shell. pwsh and powershell are synonyms.
func NewCodeGenerator(shell string) (CodeGenerator, error) {
	switch Normalize(shell) {
	case Bash:
		return &templateGenerator{name: Bash, template: bashTemplate}, nil
	case Zsh:
		return &templateGenerator{name: Zsh, template: zshTemplate}, nil
	case Fish:
		return &templateGenerator{name: Fish, template: fishTemplate}, nil
	case PowerShell:
		return &templateGenerator{name: PowerShell, template: pwshTemplate}, nil
	default:
		return nil, derrors.NewNotFoundError(shell, fmt.Sprintf("unsupported shell: %s (supported: %s)", shell, strings.Join(Supported(), ", ")))
	}
}

// Normalize lowercases name and maps powershell to pwsh
func Normalize(name string) string {
	name = strings.ToLower(name)
	if name == "powershell" {
		return PowerShell
	}
	return name
}

// Supported lists the shells a script can be generated for
func Supported() []string {
	return []string{Bash, Zsh, Fish, PowerShell}
}

// Detect guesses the user's shell from $SHELL, defaulting to bash
func Detect() string {
	name := Normalize(strings.TrimSuffix(filepath.Base(os.Getenv("SHELL")), ".exe"))
	for _, s := range Supported() {
		if name == s {
			return s
		}
	}
	return Bash
}

// funcName turns program into a shell function identifier
func funcName(program string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			return r
		default:
			return '_'
		}
	}, filepath.Base(program))
}
