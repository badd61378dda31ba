package cli

import (
	"fmt"

	"github.com/NikitaCOEUR/looptimer/internal/status"
)

// StatusParams contains parameters for the Status command
type StatusParams struct {
	ConfigPath string
	Timers     []string
	LogLevel   string
}

// Status displays which timers would record and why
func Status(params StatusParams) error {
	data, err := status.Collect(params.ConfigPath, params.Timers, newLogger(params.LogLevel))
	if err != nil {
		return fmt.Errorf("failed to collect status data: %w", err)
	}

	output := status.Render(data)
	fmt.Println(output)

	return nil
}
