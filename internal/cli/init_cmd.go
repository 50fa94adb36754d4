package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/NikitaCOEUR/mycli/internal/config"
	"github.com/NikitaCOEUR/mycli/internal/derrors"
)

// Init writes the built-in command table to the user config file as a starting point
func Init(configPath string) error {
	if configPath == "" {
		defaultPath, err := config.DefaultConfigPath()
		if err != nil {
			return derrors.NewConfigurationError("", "failed to get config path", err)
		}
		configPath = defaultPath
	}

	if err := os.MkdirAll(filepath.Dir(configPath), 0755); err != nil {
		return derrors.NewConfigurationError(configPath, "failed to create config directory", err)
	}

	if _, err := os.Stat(configPath); err == nil {
		return derrors.NewAlreadyExistsError(configPath, fmt.Sprintf("config file already exists: %s", configPath))
	}

	if err := os.WriteFile(configPath, config.DefaultYAML(), 0644); err != nil {
		return derrors.NewConfigurationError(configPath, "failed to write config file", err)
	}

	fmt.Printf("✅ Created %s\n", configPath)
	return nil
}
