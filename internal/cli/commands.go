package cli

import (
	"fmt"

	"github.com/NikitaCOEUR/mycli/internal/cache"
	"github.com/NikitaCOEUR/mycli/internal/view"
)

// Commands prints the merged command table. names restricts the output.
func Commands(configPath string, names []string) error {
	cfg, err := loadConfig(configPath)
	if err != nil {
		return err
	}

	data := view.Collect(cfg, names...)
	if path, err := cache.DefaultPath(); err == nil {
		if info, err := cache.GetCacheInfo(path); err == nil {
			data.Cache = &view.CacheInfo{
				Path:    info.Path,
				Size:    info.Size,
				Entries: info.TotalEntries,
				Stale:   info.StaleEntries,
			}
		}
	}

	fmt.Print(view.Render(data))
	return nil
}
