// Package config resolves which timers record and how reports are produced.
//
// Sampling intervals come from the environment first (<prefix><TIMER> then
// <prefix>ALL) and from an optional .looptimer file second.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"

	"github.com/NikitaCOEUR/looptimer/internal/derrors"
)

const (
	// DefaultPrefix prefixes every sampling environment variable
	DefaultPrefix = "LOOPTIMER_TIMER_"
	// AllName is appended to the prefix for the fallback variable
	AllName = "ALL"
	// DefaultMargin groups trace events closer than this under one timestamp
	DefaultMargin = 10 * time.Microsecond
)

// SupportedConfigNames contains supported configuration file names (in order of preference)
var SupportedConfigNames = []string{
	".looptimer.yml",
	".looptimer.yaml",
	".looptimer.toml",
	".looptimer.json",
}

// Config is the content of a .looptimer file
type Config struct {
	// Path is the file the config was loaded from, empty for defaults
	Path     string
	Prefix   string
	All      int
	Timers   map[string]int
	Margin   time.Duration
	Summary  string
	LogLevel string
}

// Default returns the configuration used when no file is present
func Default() *Config {
	return &Config{
		Prefix: DefaultPrefix,
		Timers: make(map[string]int),
		Margin: DefaultMargin,
	}
}

// Load reads and parses a configuration file
func Load(path string) (*Config, error) {
	parser, err := parserFor(path)
	if err != nil {
		return nil, derrors.NewConfigurationError(path, "unsupported config format", err)
	}

	k := koanf.New(".")
	if err := k.Load(file.Provider(path), parser); err != nil {
		return nil, derrors.NewConfigurationError(path, "failed to load config", err)
	}

	return fromKoanf(k, path)
}

// Parse reads a configuration from memory. format is a file extension
// such as "yml", ".toml" or "json".
func Parse(data []byte, format string) (*Config, error) {
	parser, err := parserFor("config." + strings.TrimPrefix(format, "."))
	if err != nil {
		return nil, derrors.NewConfigurationError("", "unsupported config format", err)
	}

	k := koanf.New(".")
	if err := k.Load(rawbytes.Provider(data), parser); err != nil {
		return nil, derrors.NewConfigurationError("", "failed to parse config", err)
	}

	return fromKoanf(k, "")
}

func parserFor(path string) (koanf.Parser, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yml", ".yaml":
		return yaml.Parser(), nil
	case ".toml":
		return toml.Parser(), nil
	case ".json":
		return json.Parser(), nil
	default:
		return nil, fmt.Errorf("unsupported config format: %s", ext)
	}
}

func fromKoanf(k *koanf.Koanf, path string) (*Config, error) {
	cfg := Default()
	cfg.Path = path

	if k.Exists("prefix") {
		cfg.Prefix = k.String("prefix")
	}
	cfg.All = k.Int("all")
	for name, interval := range k.IntMap("timers") {
		cfg.Timers[name] = interval
	}
	cfg.Summary = k.String("summary")
	cfg.LogLevel = k.String("log_level")

	if raw := k.String("margin"); raw != "" {
		margin, err := time.ParseDuration(raw)
		if err != nil {
			return nil, derrors.NewConfigurationError(path, "invalid margin", err)
		}
		if margin < 0 {
			return nil, derrors.NewConfigurationError(path, "margin must not be negative", nil)
		}
		cfg.Margin = margin
	}

	return cfg, nil
}

// Find returns the nearest config file from dir up to the filesystem root
func Find(dir string) (string, bool) {
	currentDir := dir
	for {
		for _, name := range SupportedConfigNames {
			path := filepath.Join(currentDir, name)
			if _, err := os.Stat(path); err == nil {
				return path, true
			}
		}

		parent := filepath.Dir(currentDir)
		if parent == currentDir {
			return "", false
		}
		currentDir = parent
	}
}

// LoadOrDefault loads path, or the nearest config above dir when path is
// empty, or the defaults when nothing is found
func LoadOrDefault(path, dir string) (*Config, error) {
	if path == "" {
		found, ok := Find(dir)
		if !ok {
			return Default(), nil
		}
		path = found
	}
	return Load(path)
}
