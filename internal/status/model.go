package status

import (
	"time"

	"github.com/NikitaCOEUR/looptimer/internal/config"
)

// Data contains all the information to display in status
type Data struct {
	// Header
	CurrentDir string
	Version    string

	// Configuration
	ConfigPath  string
	ConfigError string
	Prefix      string
	All         int
	Margin      time.Duration
	Summary     string
	LogLevel    string

	// Environment variables matching the prefix, sorted by name
	EnvVars []EnvVar

	// Timers resolved through the sampling rules, sorted by name
	Timers []config.Resolution

	// Tracing
	TraceEnabled bool
	TraceFile    string
}

// EnvVar is one sampling variable found in the environment
type EnvVar struct {
	Name  string
	Value string
}

// Enabled returns the number of timers that record
func (d *Data) Enabled() int {
	n := 0
	for _, t := range d.Timers {
		if t.Enabled() {
			n++
		}
	}
	return n
}
