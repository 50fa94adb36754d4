package cli

import (
	"fmt"
	"time"

	"github.com/NikitaCOEUR/mycli/internal/cache"
)

// Clean empties the candidate cache. A positive olderThan only drops the
// entries stored at least that long ago.
func Clean(olderThan time.Duration) error {
	path, err := cache.DefaultPath()
	if err != nil {
		return err
	}

	c, err := cache.New(path)
	if err != nil {
		return err
	}

	if olderThan > 0 {
		removed, err := c.Prune(olderThan)
		if err != nil {
			return fmt.Errorf("failed to prune cache: %w", err)
		}
		fmt.Printf("✅ Removed %d cached lookup(s) older than %s\n", removed, olderThan)
		return nil
	}

	count := c.Len()
	if err := c.Clear(); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	fmt.Printf("✅ Removed %d cached lookup(s)\n", count)
	return nil
}
