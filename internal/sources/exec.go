package sources

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"strings"
	"text/template"
	"time"

	"github.com/NikitaCOEUR/mycli/internal/derrors"
	"mvdan.cc/sh/v3/shell"
)

// MaxOutputSize is the maximum size of command output (1MB)
const MaxOutputSize = 1024 * 1024

// waitDelay bounds the wait for the output pipes once the command is killed
const waitDelay = 100 * time.Millisecond

// ExecConfig describes a local query command
type ExecConfig struct {
	Run   string   // command line split like a POSIX shell, each field a template
	Env   []string // extra KEY=VALUE pairs added to the inherited environment
	Quote bool     // double-quote candidates containing spaces
}

// ExecSource runs a command and reads one candidate per output line
type ExecSource struct {
	command string
	args    []*template.Template
	env     []string
	quote   bool
}

// NewExec compiles cfg into a source.
// The command line is split once here; $VAR outside single quotes is expanded
// from the environment at that point.
func NewExec(cfg ExecConfig) (*ExecSource, error) {
	fields, err := shell.Fields(cfg.Run, nil)
	if err != nil {
		return nil, derrors.NewValidationError("exec.run", "invalid command line", err)
	}
	if len(fields) == 0 {
		return nil, derrors.NewValidationError("exec.run", "command is empty", nil)
	}

	args := make([]*template.Template, 0, len(fields)-1)
	for i, field := range fields[1:] {
		tmpl, err := parseTemplate(fmt.Sprintf("arg%d", i), field)
		if err != nil {
			return nil, derrors.NewValidationError("exec.run", "invalid argument template", err)
		}
		args = append(args, tmpl)
	}

	return &ExecSource{
		command: fields[0],
		args:    args,
		env:     cfg.Env,
		quote:   cfg.Quote,
	}, nil
}

// Command returns the program that will be run
func (s *ExecSource) Command() string {
	return s.command
}

// Request returns the command line Candidates runs for word, its fields
// separated by NUL
func (s *ExecSource) Request(word string) (string, error) {
	args, err := s.render(word)
	if err != nil {
		return "", err
	}
	return strings.Join(append([]string{s.command}, args...), "\x00"), nil
}

func (s *ExecSource) render(word string) ([]string, error) {
	args := make([]string, len(s.args))
	for i, tmpl := range s.args {
		arg, err := render(tmpl, word)
		if err != nil {
			return nil, err
		}
		args[i] = arg
	}
	return args, nil
}

// Candidates runs the command for word
func (s *ExecSource) Candidates(ctx context.Context, word string) ([]string, error) {
	args, err := s.render(word)
	if err != nil {
		return nil, derrors.NewSourceError("exec", "failed to render argument", err)
	}

	var env []string
	if len(s.env) > 0 {
		env = append(os.Environ(), s.env...)
	}

	output, err := execWithContext(ctx, env, s.command, args...)
	if err != nil {
		return nil, derrors.NewSourceError("exec", "query command failed", err)
	}

	candidates, err := parseLines(output)
	if err != nil {
		return nil, derrors.NewSourceError("exec", "failed to read command output", err)
	}
	if s.quote {
		candidates = quote(candidates)
	}
	return candidates, nil
}

// execWithContext runs a command bound to ctx and returns its stdout.
// If env is nil, the command inherits the current process environment.
func execWithContext(ctx context.Context, env []string, tool string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, tool, args...)
	// Children left holding stdout must not outlive the deadline
	cmd.WaitDelay = waitDelay
	if env != nil {
		cmd.Env = env
	}

	output, err := cmd.Output()
	if err != nil {
		if errors.Is(ctx.Err(), context.DeadlineExceeded) {
			return nil, fmt.Errorf("command timeout: %w", err)
		}
		return nil, err
	}

	if len(output) > MaxOutputSize {
		return output[:MaxOutputSize], nil
	}

	return output, nil
}
