package cache

import (
	"encoding/json"
	"os"
	"time"

	"github.com/NikitaCOEUR/mycli/pkg/version"
)

// Info summarizes a cache file
type Info struct {
	Path         string
	Size         int64
	TotalEntries int
	// StaleEntries were written by another mycli version and never hit
	StaleEntries int
	Oldest       time.Time
}

// GetCacheInfo reads the cache file at cachePath. A missing file is an empty
// cache; an unreadable one only reports its size.
func GetCacheInfo(cachePath string) (*Info, error) {
	stat, err := os.Stat(cachePath)
	if os.IsNotExist(err) {
		return &Info{Path: cachePath}, nil
	}
	if err != nil {
		return nil, err
	}

	result := &Info{Path: cachePath, Size: stat.Size()}

	data, err := os.ReadFile(cachePath)
	if err != nil {
		return result, nil
	}
	var entries map[string]*Entry
	if json.Unmarshal(data, &entries) != nil {
		return result, nil
	}

	for _, entry := range entries {
		if entry == nil {
			continue
		}
		result.TotalEntries++
		if entry.Version != version.Version {
			result.StaleEntries++
		}
		if result.Oldest.IsZero() || entry.Timestamp.Before(result.Oldest) {
			result.Oldest = entry.Timestamp
		}
	}
	return result, nil
}
