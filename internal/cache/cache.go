// Package cache keeps the results of dynamic candidate sources between
// completion requests. Every keystroke starts a new mycli process, so the
// entries live in a JSON file under $XDG_CACHE_HOME.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/NikitaCOEUR/mycli/pkg/version"
)

// Entry represents the cached candidates of one lookup
type Entry struct {
	Key        string    `json:"key"`
	Candidates []string  `json:"candidates"`
	Timestamp  time.Time `json:"timestamp"`
	Version    string    `json:"version"`
}

// Func is a candidate lookup, the shape of a dynamic source
type Func func(ctx context.Context, word string) ([]string, error)

// KeyFunc names the request a lookup makes for word, such as the rendered
// URL. Words that produce the same request share an entry.
type KeyFunc func(word string) (string, error)

// Cache manages the persistent candidate cache
type Cache struct {
	path    string
	mu      sync.RWMutex
	entries map[string]*Entry
	now     func() time.Time
}

// New creates a new cache instance backed by path
func New(path string) (*Cache, error) {
	c := &Cache{
		path:    path,
		entries: make(map[string]*Entry),
		now:     time.Now,
	}

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, err
	}

	if err := c.load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to load cache %s: %w", path, err)
	}

	return c, nil
}

// DefaultPath returns $XDG_CACHE_HOME/mycli/candidates.json
func DefaultPath() (string, error) {
	cacheHome := os.Getenv("XDG_CACHE_HOME")
	if cacheHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to get home directory: %w", err)
		}
		cacheHome = filepath.Join(home, ".cache")
	}
	return filepath.Join(cacheHome, "mycli", "candidates.json"), nil
}

// Key builds the entry key of a lookup
func Key(command, option, request string) string {
	return command + "\x00" + option + "\x00" + request
}

// Get retrieves an entry from cache
func (c *Cache) Get(key string) (*Entry, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, found := c.entries[key]
	return entry, found
}

// Fresh returns the cached candidates of key if they were stored by this
// version less than ttl ago
func (c *Cache) Fresh(key string, ttl time.Duration) ([]string, bool) {
	entry, found := c.Get(key)
	if !found || entry.Version != version.Version {
		return nil, false
	}
	if c.now().Sub(entry.Timestamp) >= ttl {
		return nil, false
	}
	return slices.Clone(entry.Candidates), true
}

// Set stores candidates under key and persists the cache
func (c *Cache) Set(key string, candidates []string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = &Entry{
		Key:        key,
		Candidates: slices.Clone(candidates),
		Timestamp:  c.now(),
		Version:    version.Version,
	}
	return c.persist()
}

// Len returns the number of entries
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear removes all entries from cache
func (c *Cache) Clear() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]*Entry)
	return c.persist()
}

// Prune removes entries older than maxAge and returns how many were dropped
func (c *Cache) Prune(maxAge time.Duration) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for key, entry := range c.entries {
		if c.now().Sub(entry.Timestamp) >= maxAge {
			delete(c.entries, key)
			removed++
		}
	}
	if removed == 0 {
		return 0, nil
	}
	return removed, c.persist()
}

// Wrap returns fn with its successful results cached under command, option
// and the request key names for each word, for ttl. A nil key uses the word
// itself. Failures are never cached and a key error bypasses the cache.
func (c *Cache) Wrap(command, option string, ttl time.Duration, key KeyFunc, fn Func) Func {
	if key == nil {
		key = func(word string) (string, error) { return word, nil }
	}
	return func(ctx context.Context, word string) ([]string, error) {
		request, err := key(word)
		if err != nil {
			return fn(ctx, word)
		}

		entry := Key(command, option, request)
		if candidates, ok := c.Fresh(entry, ttl); ok {
			return candidates, nil
		}

		candidates, err := fn(ctx, word)
		if err != nil {
			return nil, err
		}
		// A cache that cannot be written only costs the next lookup
		_ = c.Set(entry, candidates)
		return candidates, nil
	}
}

// load reads cache from disk
func (c *Cache) load() error {
	data, err := os.ReadFile(c.path)
	if err != nil {
		return err
	}

	var entries map[string]*Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return err
	}
	if entries == nil {
		entries = make(map[string]*Entry)
	}

	c.entries = entries
	return nil
}

// persist writes cache to disk through a temp file, so a concurrent
// completion process never reads a half-written file
func (c *Cache) persist() error {
	data, err := json.MarshalIndent(c.entries, "", "  ")
	if err != nil {
		return err
	}

	tmpFile, err := os.CreateTemp(filepath.Dir(c.path), ".mycli-cache-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmpFile.Name()

	if _, err := tmpFile.Write(data); err != nil {
		_ = tmpFile.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to write cache: %w", err)
	}
	if err := tmpFile.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0600); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("failed to set permissions: %w", err)
	}

	return os.Rename(tmpName, c.path)
}
