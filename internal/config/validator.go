package config

import (
	"fmt"
	"os"

	"github.com/NikitaCOEUR/looptimer/internal/logger"
	"github.com/NikitaCOEUR/looptimer/internal/report"
)

// ValidationError represents a validation error with details
type ValidationError struct {
	Field   string
	Message string
}

// ValidationResult contains the results of config validation
type ValidationResult struct {
	Valid  bool
	Errors []ValidationError
}

func (r *ValidationResult) add(field, message string) {
	r.Valid = false
	r.Errors = append(r.Errors, ValidationError{Field: field, Message: message})
}

func (r *ValidationResult) addf(field, format string, args ...interface{}) {
	r.add(field, fmt.Sprintf(format, args...))
}

// Validate checks a config file: schema first, then the semantic rules
// the loader cannot express (template syntax, log level).
func Validate(path string) (*ValidationResult, error) {
	content, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return nil, fmt.Errorf("config file not found: %s", path)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	result, err := ValidateWithSchema(path, content)
	if err != nil {
		return nil, err
	}
	if !result.Valid {
		return result, nil
	}

	cfg, err := Load(path)
	if err != nil {
		result.addf("syntax", "Failed to parse config: %v", err)
		return result, nil
	}

	if cfg.Prefix == "" {
		result.add("prefix", "Prefix must not be empty")
	}
	if cfg.All < 0 {
		result.add("all", "Interval must not be negative")
	}
	for name, interval := range cfg.Timers {
		if name == "" {
			result.add("timers", "Timer name is empty")
		}
		if interval < 0 {
			result.add("timers/"+name, "Interval must not be negative")
		}
	}
	if cfg.LogLevel != "" && !logger.ValidLevel(cfg.LogLevel) {
		result.addf("log_level", "Unknown log level: %s", cfg.LogLevel)
	}
	if _, err := report.ParseSummary(cfg.Summary); err != nil {
		result.addf("summary", "Invalid summary template: %v", err)
	}

	return result, nil
}
