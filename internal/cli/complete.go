// Package cli implements the mycli subcommands.
package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/NikitaCOEUR/mycli/internal/completion"
	"github.com/NikitaCOEUR/mycli/internal/config"
	"github.com/NikitaCOEUR/mycli/internal/logger"
	"github.com/NikitaCOEUR/mycli/internal/timing"
	"github.com/NikitaCOEUR/mycli/internal/trace"
)

// CompleteParams contains parameters for the Complete command
type CompleteParams struct {
	ConfigPath string
	LogLevel   string
	Word       string        // word being completed
	Line       string        // full line, program name included
	Cursor     int           // cursor offset in runes, negative means end of line
	Timeout    time.Duration // per lookup, zero keeps the table's
}

// Complete prints one candidate per line for the current completion request.
// It is called by the shell on every keystroke, so it never returns an error:
// a broken table or a failing source produces no output and a log line on stderr.
func Complete(ctx context.Context, params CompleteParams) error {
	timer := timing.NewTimer()
	ctx, endTask := trace.Task(ctx, "complete")
	defer endTask()

	log := logger.New(levelFor(params.LogLevel, nil), os.Stderr)

	endRegion := trace.Region(ctx, "load")
	cfg, err := loadConfig(params.ConfigPath)
	endRegion()
	if err != nil {
		log.Warn().Err(err).Msg("Cannot load command table")
		return nil
	}
	if params.LogLevel == "" && cfg.LogLevel != "" {
		log = logger.New(cfg.LogLevel, os.Stderr)
	}
	timer.Mark("load")

	var opts []config.BuildOption
	if usesCache(cfg) {
		if c := openCache(log.Component("cache")); c != nil {
			opts = append(opts, config.WithCache(c))
		}
	}

	endRegion = trace.Region(ctx, "build")
	resolver, err := newResolver(cfg, params.Timeout, log, opts...)
	endRegion()
	if err != nil {
		log.Warn().Err(err).Msg("Cannot build command table")
		return nil
	}
	timer.Mark("build")

	cursor := params.Cursor
	if cursor < 0 {
		cursor = len([]rune(params.Line))
	}

	trace.Log(ctx, "line", params.Line)
	endRegion = trace.Region(ctx, "resolve")
	result := resolver.Complete(ctx, completion.Request{
		Word:   params.Word,
		Line:   params.Line,
		Cursor: cursor,
	})
	endRegion()
	timer.Mark("resolve")
	timer.Log(log, "Completion timings")

	for _, candidate := range result.Candidates {
		fmt.Println(candidate)
	}

	return nil
}
