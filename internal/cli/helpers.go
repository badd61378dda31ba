// Package cli implements the looptimer commands.
package cli

import (
	"os"

	"github.com/NikitaCOEUR/looptimer/internal/config"
	"github.com/NikitaCOEUR/looptimer/internal/logger"
)

const defaultLogLevel = "warn"

// newLogger creates the diagnostic logger on stderr
func newLogger(level string) *logger.Logger {
	if level == "" {
		level = defaultLogLevel
	}
	return logger.New(level, os.Stderr)
}

// loadConfig loads path, or the nearest config file above the current directory
func loadConfig(path string) (*config.Config, error) {
	currentDir, err := os.Getwd()
	if err != nil {
		return nil, err
	}
	return config.LoadOrDefault(path, currentDir)
}

// pickLevel returns the first non-empty level
func pickLevel(levels ...string) string {
	for _, l := range levels {
		if l != "" {
			return l
		}
	}
	return defaultLogLevel
}
