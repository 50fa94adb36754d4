// Package main is the entry point for the mycli launcher.
package main

import (
	"context"
	"fmt"
	"os"

	mycli "github.com/NikitaCOEUR/mycli/internal/cli"
	"github.com/NikitaCOEUR/mycli/internal/trace"
	"github.com/NikitaCOEUR/mycli/pkg/version"
	"github.com/urfave/cli/v3"
)

const programName = "mycli"

func newApp() *cli.Command {
	return &cli.Command{
		Name:    programName,
		Usage:   "Personal command launcher with shell completion",
		Version: version.Version,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error), defaults to the table's or warn",
				Sources: cli.EnvVars("MYCLI_LOG_LEVEL"),
			},
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Command table file (default: $XDG_CONFIG_HOME/mycli/commands.yml)",
				Sources: cli.EnvVars("MYCLI_CONFIG"),
			},
		},
		Commands: []*cli.Command{
			{
				Name:  "complete",
				Usage: "Print completion candidates for a command line",
				// Called by the shell scripts from `mycli hook`
				// Word and line come after "--" so empty values and trailing
				// spaces reach the resolver untouched.
				Hidden:    true,
				ArgsUsage: "-- <word> <line>",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "cursor",
						Value: -1,
						Usage: "Cursor offset in characters (default: end of line)",
					},
					&cli.DurationFlag{
						Name:    "timeout",
						Usage:   "Upper bound for a single value lookup",
						Sources: cli.EnvVars("MYCLI_TIMEOUT"),
					},
				},
				Action: func(ctx context.Context, cmd *cli.Command) error {
					return mycli.Complete(ctx, mycli.CompleteParams{
						ConfigPath: cmd.String("config"),
						LogLevel:   cmd.String("log-level"),
						Word:       cmd.Args().Get(0),
						Line:       cmd.Args().Get(1),
						Cursor:     cmd.Int("cursor"),
						Timeout:    cmd.Duration("timeout"),
					})
				},
			},
			{
				Name:      "commands",
				Usage:     "Show the command table and where option values come from",
				ArgsUsage: "[command...]",
				Action: func(_ context.Context, cmd *cli.Command) error {
					return mycli.Commands(cmd.String("config"), cmd.Args().Slice())
				},
			},
			{
				Name:      "validate",
				Usage:     "Validate a mycli command table",
				ArgsUsage: "[config-file]",
				Action: func(_ context.Context, cmd *cli.Command) error {
					configPath := cmd.String("config")
					if cmd.Args().Len() > 0 {
						configPath = cmd.Args().Get(0)
					}
					return mycli.Validate(configPath)
				},
			},
			{
				Name:      "schema",
				Usage:     "Display or export the JSON Schema for mycli command tables",
				ArgsUsage: "[output-file]",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "output",
						Aliases: []string{"o"},
						Usage:   "Output file path (prints to stdout if not specified)",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					outputPath := cmd.String("output")
					if outputPath == "" && cmd.Args().Len() > 0 {
						outputPath = cmd.Args().Get(0)
					}
					return mycli.Schema(outputPath)
				},
			},
			{
				Name:  "init",
				Usage: "Write the built-in command table to the user config file",
				Action: func(_ context.Context, cmd *cli.Command) error {
					return mycli.Init(cmd.String("config"))
				},
			},
			{
				Name:  "setup",
				Usage: "Install the completion hook in the shell startup files",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "shell",
						Value:   "auto",
						Usage:   "Shell type: bash, zsh, fish, pwsh or auto",
						Sources: cli.EnvVars("MYCLI_SHELL"),
					},
					&cli.BoolFlag{
						Name:  "uninstall",
						Usage: "Remove the hook instead of installing it",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					return mycli.Setup(cmd.String("shell"), programName, cmd.Bool("uninstall"))
				},
			},
			{
				Name:  "clean",
				Usage: "Remove cached option values",
				Flags: []cli.Flag{
					&cli.DurationFlag{
						Name:  "older-than",
						Usage: "Only remove entries stored at least this long ago",
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					return mycli.Clean(cmd.Duration("older-than"))
				},
			},
			{
				Name:  "hook",
				Usage: "Print the shell completion script",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "shell",
						Value:   "auto",
						Usage:   "Shell type: bash, zsh, fish, pwsh or auto",
						Sources: cli.EnvVars("MYCLI_SHELL"),
					},
				},
				Action: func(_ context.Context, cmd *cli.Command) error {
					shell := cmd.String("shell")
					if cmd.Args().Len() > 0 {
						shell = cmd.Args().Get(0)
					}
					return mycli.Hook(shell, programName)
				},
			},
		},
	}
}

func main() {
	stopTrace := trace.Init()
	err := newApp().Run(context.Background(), os.Args)
	stopTrace()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
