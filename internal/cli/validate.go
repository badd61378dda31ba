package cli

import (
	"fmt"
	"os"

	"github.com/NikitaCOEUR/looptimer/internal/config"
)

// Validate validates a looptimer configuration file
func Validate(configPath string) error {
	// If no path provided, look for the nearest config file
	if configPath == "" {
		currentDir, err := os.Getwd()
		if err != nil {
			return fmt.Errorf("failed to get current directory: %w", err)
		}

		found, ok := config.Find(currentDir)
		if !ok {
			return fmt.Errorf("no config file found in current directory or its parents")
		}
		configPath = found
	}

	fmt.Printf("Validating: %s\n\n", configPath)

	// Schema first, then the checks the schema cannot express
	result, err := config.Validate(configPath)
	if err != nil {
		return err
	}

	if result.Valid {
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
