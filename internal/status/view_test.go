package status

import (
	"strings"
	"testing"
	"time"

	"github.com/NikitaCOEUR/looptimer/internal/config"
	"github.com/stretchr/testify/assert"
)

func TestRender_EmptyData(t *testing.T) {
	data := &Data{
		CurrentDir: "/test/dir",
		Version:    "1.0.0",
		Prefix:     config.DefaultPrefix,
		Margin:     10 * time.Microsecond,
		EnvVars:    make([]EnvVar, 0),
		Timers:     make([]config.Resolution, 0),
	}

	output := Render(data)

	assert.Contains(t, output, "Current directory:")
	assert.Contains(t, output, "/test/dir")
	assert.Contains(t, output, "Version:")
	assert.Contains(t, output, "1.0.0")
	assert.Contains(t, output, "Configuration:")
	assert.Contains(t, output, "No configuration file found")
	assert.Contains(t, output, "Prefix:")
	assert.Contains(t, output, "10µs")
	assert.Contains(t, output, "No LOOPTIMER_TIMER_* variables set")
	assert.Contains(t, output, "No timers configured")
	assert.Contains(t, output, "Tracing:")
	assert.Contains(t, output, "Disabled")
	assert.NotContains(t, output, "All timers:")
	assert.NotContains(t, output, "Summary:")
}

func TestRender_Timers(t *testing.T) {
	data := &Data{
		CurrentDir: "/test/dir",
		Version:    "dev",
		ConfigPath: "/test/dir/.looptimer.yml",
		Prefix:     "APP_",
		All:        10,
		LogLevel:   "debug",
		Summary:    "{{ .Timer }} took {{ .MeanMs }}ms on average over {{ .Iterations }} iterations",
		EnvVars:    []EnvVar{{Name: "APP_ANIMATE", Value: "2"}},
		Timers: []config.Resolution{
			{Timer: "Animate", Interval: 2, Source: config.SourceEnvTimer, Key: "APP_ANIMATE"},
			{Timer: "Collide", Interval: 0, Source: config.SourceNone},
			{Timer: "Render", Interval: 10, Source: config.SourceFileAll, Key: "all"},
		},
	}

	output := Render(data)

	assert.Contains(t, output, "/test/dir/.looptimer.yml")
	assert.Contains(t, output, "every 10 iterations")
	assert.Contains(t, output, "Log level:")
	assert.Contains(t, output, "...")
	assert.Contains(t, output, "APP_ANIMATE=2")
	assert.Contains(t, output, "✓ every 2 iterations")
	assert.Contains(t, output, "(env: APP_ANIMATE)")
	assert.Contains(t, output, "✗ disabled")
	assert.Contains(t, output, "(none)")
	assert.Contains(t, output, "(file (all): all)")
	assert.Contains(t, output, "2 of 3 timers recording")

	animate := strings.Index(output, "Animate")
	render := strings.Index(output, "Render ")
	assert.Less(t, animate, render)
}

func TestRender_ConfigError(t *testing.T) {
	data := &Data{
		ConfigError: "failed to load config",
		Prefix:      config.DefaultPrefix,
	}

	output := Render(data)
	assert.Contains(t, output, "✗ failed to load config")
}

func TestRender_Trace(t *testing.T) {
	enabled := Render(&Data{TraceEnabled: true, TraceFile: "/tmp/trace.out"})
	assert.Contains(t, enabled, "Writing runtime trace to")
	assert.Contains(t, enabled, "/tmp/trace.out")

	release := Render(&Data{TraceFile: "/tmp/trace.out"})
	assert.Contains(t, release, "built without -tags dev")
}

func TestTruncateString(t *testing.T) {
	assert.Equal(t, "short", truncateString("short", 10))
	assert.Equal(t, "abcd...", truncateString("abcdefghij", 7))
}
