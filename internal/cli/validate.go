package cli

import (
	"fmt"

	"github.com/NikitaCOEUR/mycli/internal/config"
)

// Validate validates a mycli command table, the user's one by default
func Validate(configPath string) error {
	if configPath == "" {
		defaultPath, err := config.DefaultConfigPath()
		if err != nil {
			return err
		}
		configPath = defaultPath
	}

	fmt.Printf("Validating: %s\n\n", configPath)

	result, err := config.Validate(configPath)
	if err != nil {
		return err
	}

	if result.Valid {
		// Also make sure it still builds once merged with the built-in commands
		cfg, err := config.Load(configPath, true)
		if err == nil {
			_, err = config.Build(cfg, nil)
		}
		if err != nil {
			fmt.Println("❌ Configuration cannot be merged with the built-in commands:")
			fmt.Printf("1. %v\n", err)
			return fmt.Errorf("validation failed")
		}

		fmt.Println("✅ Configuration is valid!")
		return nil
	}

	fmt.Println("❌ Configuration has errors:")
	for i, validationErr := range result.Errors {
		fmt.Printf("%d. [%s] %s\n", i+1, validationErr.Field, validationErr.Message)
	}

	fmt.Printf("\nFound %d error(s)\n", len(result.Errors))

	return fmt.Errorf("validation failed")
}
