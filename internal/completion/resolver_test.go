package completion

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// sampleRegistry mirrors the launcher's built-in sample commands
func sampleRegistry(t *testing.T) *Registry {
	t.Helper()

	r := NewRegistry()
	require.NoError(t, r.Register("search",
		Option{Name: "--category", Source: Values("books", "movies", "music")},
		Option{Name: "--sort", Source: Values("relevance", "date", "popularity")},
		Option{Name: "--filter", Source: Values("free", "paid", "all")},
	))
	require.NoError(t, r.Register("share",
		Option{Name: "--platform", Source: Values("facebook", "twitter", "linkedin")},
		Option{Name: "--visibility", Source: Values("public", "private", "friends")},
		Option{Name: "--tag", Source: Values("fun", "education", "promotion")},
	))
	require.NoError(t, r.Register("edit",
		Option{Name: "--file", Source: Values("document1", "document2", "document3")},
		Option{Name: "--mode", Source: Values("read", "write", "append")},
		Option{Name: "--backup", Source: None()},
	))
	require.NoError(t, r.Register("view",
		Option{Name: "--layout", Source: Values("grid", "list", "detail")},
		Option{Name: "--sort", Source: Values("name", "date", "size")},
		Option{Name: "--filter", Source: Values("all", "folders", "files")},
	))
	return r
}

func resolve(t *testing.T, r *Resolver, word, line string) []string {
	t.Helper()
	return r.Resolve(context.Background(), word, line, len([]rune(line)))
}

func TestResolve_CommandNames(t *testing.T) {
	r := NewResolver(sampleRegistry(t))

	t.Run("empty line", func(t *testing.T) {
		assert.Equal(t, []string{"search", "share", "edit", "view"}, r.Resolve(context.Background(), "", "", 0))
	})

	t.Run("program name only", func(t *testing.T) {
		assert.Equal(t, []string{"search", "share", "edit", "view"}, resolve(t, r, "", "mycli "))
	})

	t.Run("partial command name", func(t *testing.T) {
		assert.Equal(t, []string{"search", "share"}, resolve(t, r, "s", "mycli s"))
		assert.Equal(t, []string{"edit"}, resolve(t, r, "ed", "mycli ed"))
	})

	t.Run("command names are case sensitive", func(t *testing.T) {
		assert.Empty(t, resolve(t, r, "S", "mycli S"))
	})

	t.Run("unknown command", func(t *testing.T) {
		assert.Empty(t, resolve(t, r, "zz", "mycli zz"))
		assert.Equal(t, []string{"search", "share", "edit", "view"}, resolve(t, r, "", "mycli nope "))
	})
}

func TestResolve_OptionNames(t *testing.T) {
	r := NewResolver(sampleRegistry(t))

	t.Run("all options after the command", func(t *testing.T) {
		assert.Equal(t, []string{"--file", "--mode", "--backup"}, resolve(t, r, "", "mycli edit "))
	})

	t.Run("partial option", func(t *testing.T) {
		assert.Equal(t, []string{"--mode"}, resolve(t, r, "--m", "mycli edit --m"))
	})

	t.Run("option filter ignores case", func(t *testing.T) {
		assert.Equal(t, []string{"--category"}, resolve(t, r, "--CAT", "mycli search --CAT"))
	})

	t.Run("used options are not suggested again", func(t *testing.T) {
		assert.Equal(t, []string{"--sort", "--filter"}, resolve(t, r, "", "mycli search --category books "))
	})

	t.Run("command typed without a trailing space", func(t *testing.T) {
		assert.Empty(t, resolve(t, r, "edit", "mycli edit"))
	})
}

func TestResolve_OptionValues(t *testing.T) {
	r := NewResolver(sampleRegistry(t))

	t.Run("values after an option", func(t *testing.T) {
		assert.Equal(t, []string{"read", "write", "append"}, resolve(t, r, "", "mycli edit --mode "))
	})

	t.Run("partial value", func(t *testing.T) {
		assert.Equal(t, []string{"write"}, resolve(t, r, "w", "mycli edit --mode w"))
	})

	t.Run("value filter ignores case", func(t *testing.T) {
		assert.Equal(t, []string{"books"}, resolve(t, r, "BOO", "mycli search --category BOO"))
	})

	t.Run("no matching value falls back to unused options", func(t *testing.T) {
		assert.Empty(t, resolve(t, r, "BOO", "mycli share --tag BOO"))
		assert.Equal(t, []string{"--visibility"}, resolve(t, r, "vis", "mycli share --tag vis"))
	})

	t.Run("boolean flag falls back to unused options", func(t *testing.T) {
		assert.Equal(t, []string{"--file", "--mode"}, resolve(t, r, "", "mycli edit --backup "))
	})

	t.Run("completed value suggests remaining options", func(t *testing.T) {
		assert.Equal(t, []string{"--file", "--backup"}, resolve(t, r, "", "mycli edit --mode write "))
	})

	t.Run("options with the same name in another command", func(t *testing.T) {
		assert.Equal(t, []string{"name", "date", "size"}, resolve(t, r, "", "mycli view --sort "))
	})
}

func TestResolve_SpecCursor(t *testing.T) {
	r := NewResolver(sampleRegistry(t))

	// Cursor before the end: the text after it is ignored
	got := r.Resolve(context.Background(), "", "mycli edit --mode write", 18)
	assert.Equal(t, []string{"read", "write", "append"}, got)
}

func TestResolve_DynamicSource(t *testing.T) {
	var gotWord string
	reg := NewRegistry()
	require.NoError(t, reg.Register("google",
		Option{Name: "--query", Source: Func(func(_ context.Context, word string) ([]string, error) {
			gotWord = word
			if word == "" {
				return nil, nil
			}
			return []string{`"golang generics"`, `"golang iter"`, `"rust"`}, nil
		})},
		Option{Name: "--lucky", Source: None()},
	))
	r := NewResolver(reg)

	assert.Equal(t, []string{`"golang generics"`, `"golang iter"`}, resolve(t, r, "golang", "mycli google --query golang"))
	assert.Equal(t, "golang", gotWord)

	// Empty word gives no suggestions, so unused options are offered
	assert.Equal(t, []string{"--lucky"}, resolve(t, r, "", "mycli google --query "))
}

func TestResolve_DynamicFailures(t *testing.T) {
	tests := []struct {
		name string
		src  Source
	}{
		{
			name: "error",
			src: Func(func(context.Context, string) ([]string, error) {
				return nil, errors.New("connection refused")
			}),
		},
		{
			name: "panic",
			src: Func(func(context.Context, string) ([]string, error) {
				panic("boom")
			}),
		},
		{
			name: "honours cancellation",
			src: Func(func(ctx context.Context, _ string) ([]string, error) {
				<-ctx.Done()
				return nil, ctx.Err()
			}),
		},
		{
			name: "ignores cancellation",
			src: Func(func(context.Context, string) ([]string, error) {
				time.Sleep(2 * time.Second)
				return []string{"late"}, nil
			}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg := NewRegistry()
			require.NoError(t, reg.Register("swdt", Option{Name: "--name", Source: tt.src}))
			r := NewResolver(reg, WithTimeout(50*time.Millisecond))

			start := time.Now()
			got := resolve(t, r, "wo", "mycli swdt --name wo")
			assert.Empty(t, got)
			assert.NotNil(t, got)
			assert.Less(t, time.Since(start), time.Second)
		})
	}
}

func TestResolve_SafetyNetFilter(t *testing.T) {
	reg := NewRegistry()
	require.NoError(t, reg.Register("swdt",
		Option{Name: "--name", Source: Func(func(context.Context, string) ([]string, error) {
			return []string{"Work", "Home", "Network"}, nil
		})},
	))
	r := NewResolver(reg)

	assert.Equal(t, []string{"Work", "Network"}, resolve(t, r, "wor", "mycli swdt --name wor"))
}

func TestResolve_Concurrent(t *testing.T) {
	r := NewResolver(sampleRegistry(t))

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.Equal(t, []string{"write"}, resolve(t, r, "w", "mycli edit --mode w"))
		}()
	}
	wg.Wait()
}

func TestComplete_Result(t *testing.T) {
	r := NewResolver(sampleRegistry(t))

	result := r.Complete(context.Background(), Request{Word: "", Line: "mycli view ", Cursor: 11})
	assert.Equal(t, []string{"--layout", "--sort", "--filter"}, result.Candidates)
	assert.GreaterOrEqual(t, result.Elapsed, time.Duration(0))
}
