//go:build dev

// Package trace records runtime traces of completion requests in dev builds.
//
// Each `mycli complete` run is one "complete" task with three regions: "load"
// reads the command tables, "build" compiles the sources and opens the cache,
// "resolve" runs the resolver, http and exec lookups included. The raw line is
// attached to the task under the "line" category. A slow Tab press shows up as
// a long resolve region in `go tool trace`, next to the goroutine that waited
// on the source.
//
//	go build -tags dev ./cmd/mycli
//	MYCLI_TRACE=trace.out mycli complete -- '' 'mycli gh-issues --issue '
//	go tool trace trace.out
package trace

import (
	"context"
	"fmt"
	"os"
	"runtime/trace"
	"sync"
	"sync/atomic"
)

// EnvVar names the file the trace is written to
const EnvVar = "MYCLI_TRACE"

var (
	mu     sync.Mutex
	out    *os.File
	active atomic.Bool
)

// Init starts tracing to the file named by MYCLI_TRACE. mycli's main calls it
// around the whole command run and calls the returned stop function before
// exiting. Without MYCLI_TRACE both are no-ops. A trace file that cannot be
// created is reported on stderr and the command runs untraced.
func Init() func() {
	path := os.Getenv(EnvVar)
	if path == "" {
		return func() {}
	}

	mu.Lock()
	defer mu.Unlock()

	f, err := os.Create(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "mycli: cannot create trace file %s: %v\n", path, err)
		return func() {}
	}
	if err := trace.Start(f); err != nil {
		fmt.Fprintf(os.Stderr, "mycli: cannot start trace: %v\n", err)
		_ = f.Close()
		return func() {}
	}
	out = f
	active.Store(true)

	return stop
}

func stop() {
	mu.Lock()
	defer mu.Unlock()

	if active.Swap(false) {
		trace.Stop()
	}
	if out != nil {
		_ = out.Close()
		out = nil
	}
}

// Task opens the task of one completion request
func Task(ctx context.Context, name string) (context.Context, func()) {
	if !active.Load() {
		return ctx, func() {}
	}
	ctx, task := trace.NewTask(ctx, name)
	return ctx, task.End
}

// Region opens a phase of the current request; call the result to close it
func Region(ctx context.Context, regionType string) func() {
	if !active.Load() {
		return func() {}
	}
	return trace.StartRegion(ctx, regionType).End
}

// Log attaches message to the task in ctx
func Log(ctx context.Context, category, message string) {
	if active.Load() {
		trace.Log(ctx, category, message)
	}
}

// IsEnabled reports whether MYCLI_TRACE started a trace
func IsEnabled() bool {
	return active.Load()
}
