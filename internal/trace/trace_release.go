//go:build !dev

// Package trace records runtime traces of completion requests in dev builds.
// Release builds get these no-op stubs.
package trace

import "context"

// EnvVar names the file the trace is written to
const EnvVar = "MYCLI_TRACE"

// Init is a no-op in release builds
func Init() func() {
	return func() {}
}

// Task returns ctx unchanged in release builds
func Task(ctx context.Context, _ string) (context.Context, func()) {
	return ctx, func() {}
}

// Region is a no-op in release builds
func Region(_ context.Context, _ string) func() {
	return func() {}
}

// Log is a no-op in release builds
func Log(_ context.Context, _, _ string) {
}

// IsEnabled always reports false in release builds
func IsEnabled() bool {
	return false
}
