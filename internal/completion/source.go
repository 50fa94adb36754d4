package completion

import (
	"context"
	"fmt"
	"slices"

	"github.com/NikitaCOEUR/mycli/internal/trace"
)

// Source produces value candidates for a single option
type Source interface {
	Candidates(ctx context.Context, word string) ([]string, error)
}

// SourceFunc is a dynamic source computed on every request
type SourceFunc func(ctx context.Context, word string) ([]string, error)

// Candidates calls f
func (f SourceFunc) Candidates(ctx context.Context, word string) ([]string, error) {
	return f(ctx, word)
}

// staticSource is a fixed list filtered by case-insensitive substring
type staticSource []string

func (s staticSource) Candidates(_ context.Context, word string) ([]string, error) {
	return FilterFold(s, word), nil
}

// Values returns a static source
func Values(values ...string) Source {
	return staticSource(slices.Clone(values))
}

// None returns a source with no values, for boolean flags
func None() Source {
	return staticSource(nil)
}

// Func returns a dynamic source
func Func(fn func(ctx context.Context, word string) ([]string, error)) Source {
	return SourceFunc(fn)
}

// IsStatic reports whether src is a fixed list (nil counts as an empty list)
func IsStatic(src Source) bool {
	if src == nil {
		return true
	}
	_, ok := src.(staticSource)
	return ok
}

// StaticValues returns the fixed values of a static source, nil otherwise
func StaticValues(src Source) []string {
	if s, ok := src.(staticSource); ok {
		return slices.Clone([]string(s))
	}
	return nil
}

// Option binds an option name to its candidate source.
// A nil Source behaves like None.
type Option struct {
	Name   string
	Source Source
}

type sourceResult struct {
	values []string
	err    error
}

// lookup runs src and converts panics and deadline expiry into errors.
// Dynamic sources run in their own goroutine so one that ignores ctx cannot hold
// the caller past the deadline; its late result is discarded.
func lookup(ctx context.Context, src Source, word string) ([]string, error) {
	if src == nil {
		return []string{}, nil
	}
	if IsStatic(src) {
		return src.Candidates(ctx, word)
	}

	defer trace.Region(ctx, "source")()

	resultChan := make(chan sourceResult, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				resultChan <- sourceResult{err: fmt.Errorf("source panicked: %v", r)}
			}
		}()
		values, err := src.Candidates(ctx, word)
		resultChan <- sourceResult{values: values, err: err}
	}()

	select {
	case res := <-resultChan:
		if res.err != nil {
			return nil, res.err
		}
		return res.values, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("source timed out: %w", ctx.Err())
	}
}
