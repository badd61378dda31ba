package config

import (
	"strconv"
	"strings"

	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/v2"

	"github.com/NikitaCOEUR/looptimer/internal/logger"
)

// Source tells where a timer's interval was found
type Source int

const (
	// SourceNone means no setting applies; the timer is disabled
	SourceNone Source = iota
	// SourceEnvTimer is the timer's own environment variable
	SourceEnvTimer
	// SourceEnvAll is the fallback environment variable
	SourceEnvAll
	// SourceFileTimer is the timers map of the config file
	SourceFileTimer
	// SourceFileAll is the all key of the config file
	SourceFileAll
)

// String returns a human readable source label
func (s Source) String() string {
	switch s {
	case SourceEnvTimer:
		return "env"
	case SourceEnvAll:
		return "env (all)"
	case SourceFileTimer:
		return "file"
	case SourceFileAll:
		return "file (all)"
	default:
		return "none"
	}
}

// Resolution is the outcome of looking up one timer
type Resolution struct {
	Timer    string
	Interval int
	Source   Source
	// Key is the variable or config key that decided the interval
	Key string
	// Raw is the unparsed setting, kept for diagnostics
	Raw string
}

// Enabled reports whether the timer records
func (r Resolution) Enabled() bool {
	return r.Interval > 0
}

// Sampling decides the report interval of each timer. The environment is
// read again on every Resolve, so a timer sees the variables set when its
// state is created.
type Sampling struct {
	prefix string
	file   *Config
	log    *logger.Logger
}

// NewSampling checks that the environment variables starting with cfg.Prefix
// can be loaded. A nil cfg uses the defaults; a nil log discards diagnostics.
func NewSampling(cfg *Config, log *logger.Logger) (*Sampling, error) {
	if cfg == nil {
		cfg = Default()
	}
	if log == nil {
		log = logger.Nop()
	}
	prefix := cfg.Prefix
	if prefix == "" {
		prefix = DefaultPrefix
	}

	s := &Sampling{
		prefix: prefix,
		file:   cfg,
		log:    log,
	}
	if _, err := s.environ(); err != nil {
		return nil, err
	}
	return s, nil
}

// environ loads the variables currently set under the prefix
func (s *Sampling) environ() (*koanf.Koanf, error) {
	k := koanf.New(".")
	if err := k.Load(env.Provider(s.prefix, ".", func(key string) string { return key }), nil); err != nil {
		return nil, err
	}
	return k, nil
}

// FromEnv returns a sampling that only consults the environment
func FromEnv(prefix string) *Sampling {
	cfg := Default()
	if prefix != "" {
		cfg.Prefix = prefix
	}
	s, err := NewSampling(cfg, nil)
	if err != nil {
		// the env provider only reads os.Environ; keep the timer disabled
		return &Sampling{prefix: cfg.Prefix, file: cfg, log: logger.Nop()}
	}
	return s
}

// Prefix returns the environment prefix in use
func (s *Sampling) Prefix() string {
	return s.prefix
}

// Config returns the file configuration backing this sampling
func (s *Sampling) Config() *Config {
	return s.file
}

// Interval returns the report interval of timer; 0 disables recording
func (s *Sampling) Interval(timer string) int {
	return s.Resolve(timer).Interval
}

// Resolve looks up timer in precedence order: env timer, env all, file timer, file all
func (s *Sampling) Resolve(timer string) Resolution {
	res := Resolution{Timer: timer}

	vars, err := s.environ()
	if err != nil {
		s.log.Warn().Str("prefix", s.prefix).Err(err).Msg("failed to read sampling environment")
		vars = koanf.New(".")
	}

	if key := s.prefix + strings.ToUpper(timer); vars.String(key) != "" {
		res.Source, res.Key, res.Raw = SourceEnvTimer, key, vars.String(key)
		res.Interval = s.parse(key, res.Raw)
	} else if key := s.prefix + AllName; vars.String(key) != "" {
		res.Source, res.Key, res.Raw = SourceEnvAll, key, vars.String(key)
		res.Interval = s.parse(key, res.Raw)
	} else if v, ok := s.file.Timers[timer]; ok {
		res.Source, res.Key, res.Raw = SourceFileTimer, "timers."+timer, strconv.Itoa(v)
		res.Interval = max(v, 0)
	} else if s.file.All != 0 {
		res.Source, res.Key, res.Raw = SourceFileAll, "all", strconv.Itoa(s.file.All)
		res.Interval = max(s.file.All, 0)
	}

	if s.log.Enabled("debug") {
		s.log.Debug().
			Str("timer", timer).
			Int("interval", res.Interval).
			Str("source", res.Source.String()).
			Str("key", res.Key).
			Msg("timer sampling resolved")
	}

	return res
}

func (s *Sampling) parse(key, raw string) int {
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		s.log.Warn().Str("key", key).Str("value", raw).Err(err).Msg("ignoring invalid sampling interval")
		return 0
	}
	return max(n, 0)
}
