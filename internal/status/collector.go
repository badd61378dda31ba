// Package status collects and displays how looptimer would sample timers
// in the current environment.
package status

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/NikitaCOEUR/looptimer/internal/config"
	"github.com/NikitaCOEUR/looptimer/internal/logger"
	"github.com/NikitaCOEUR/looptimer/internal/trace"
	"github.com/NikitaCOEUR/looptimer/pkg/version"
)

// Collect gathers sampling information. configPath may be empty to search
// upward from the current directory; timers are resolved in addition to
// those named by the config file and the environment.
func Collect(configPath string, timers []string, log *logger.Logger) (*Data, error) {
	currentDir, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("failed to get current directory: %w", err)
	}
	return CollectFrom(currentDir, configPath, timers, log)
}

// CollectFrom is Collect searching for a config file from dir
func CollectFrom(dir, configPath string, timers []string, log *logger.Logger) (*Data, error) {
	environ := os.Environ()
	data := &Data{
		CurrentDir:   dir,
		Version:      version.Version,
		EnvVars:      make([]EnvVar, 0),
		Timers:       make([]config.Resolution, 0),
		TraceEnabled: trace.IsEnabled(),
		TraceFile:    lookup(environ, trace.EnvVar),
	}

	cfg, err := config.LoadOrDefault(configPath, dir)
	if err != nil {
		// Still report env-driven sampling when the file is broken
		data.ConfigError = err.Error()
		cfg = config.Default()
	}
	data.ConfigPath = cfg.Path
	data.Prefix = cfg.Prefix
	data.All = cfg.All
	data.Margin = cfg.Margin
	data.Summary = cfg.Summary
	data.LogLevel = cfg.LogLevel

	sampling, err := config.NewSampling(cfg, log)
	if err != nil {
		return nil, fmt.Errorf("failed to read sampling environment: %w", err)
	}

	names := make(map[string]struct{})
	for _, name := range timers {
		names[name] = struct{}{}
	}
	for name := range cfg.Timers {
		names[name] = struct{}{}
	}

	allKey := sampling.Prefix() + config.AllName
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok || !strings.HasPrefix(key, sampling.Prefix()) {
			continue
		}
		data.EnvVars = append(data.EnvVars, EnvVar{Name: key, Value: value})
		if key == allKey {
			continue
		}
		if name := strings.TrimPrefix(key, sampling.Prefix()); !hasFold(names, name) {
			names[name] = struct{}{}
		}
	}
	sort.Slice(data.EnvVars, func(i, j int) bool { return data.EnvVars[i].Name < data.EnvVars[j].Name })

	for name := range names {
		if name == "" {
			continue
		}
		data.Timers = append(data.Timers, sampling.Resolve(name))
	}
	sort.Slice(data.Timers, func(i, j int) bool { return data.Timers[i].Timer < data.Timers[j].Timer })

	return data, nil
}

// hasFold reports whether names already holds name, ignoring case
func hasFold(names map[string]struct{}, name string) bool {
	for n := range names {
		if strings.EqualFold(n, name) {
			return true
		}
	}
	return false
}

func lookup(environ []string, key string) string {
	for _, kv := range environ {
		if k, v, ok := strings.Cut(kv, "="); ok && k == key {
			return v
		}
	}
	return ""
}
