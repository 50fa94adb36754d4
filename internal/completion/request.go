package completion

import (
	"context"
	"time"
)

// Request is one completion event sent by the shell integration
type Request struct {
	Word   string // Word under the cursor, possibly empty
	Line   string // Whole input line, program name included
	Cursor int    // Cursor offset in runes
}

// Result represents the answer to a Request
type Result struct {
	Candidates []string
	Elapsed    time.Duration
}

// Complete resolves req and records how long it took
func (r *Resolver) Complete(ctx context.Context, req Request) Result {
	start := time.Now()
	candidates := r.Resolve(ctx, req.Word, req.Line, req.Cursor)
	result := Result{
		Candidates: candidates,
		Elapsed:    time.Since(start),
	}

	r.log.Debug().
		Str("word", req.Word).
		Str("line", req.Line).
		Int("cursor", req.Cursor).
		Int("candidates", len(result.Candidates)).
		Dur("elapsed", result.Elapsed).
		Msg("Resolved completion request")

	return result
}
