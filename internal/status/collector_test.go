package status

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/NikitaCOEUR/looptimer/internal/config"
	"github.com/NikitaCOEUR/looptimer/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollectFrom_ConfigAndEnv(t *testing.T) {
	dir := t.TempDir()
	content := `prefix: LTSTATUS_
all: 8
timers:
  Animate: 2
  Collide: 0
margin: 25us
log_level: debug
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".looptimer.yml"), []byte(content), 0644))
	t.Setenv("LTSTATUS_COLLIDE", "4")
	t.Setenv("LTSTATUS_RENDER", "6")

	data, err := CollectFrom(dir, "", []string{"Physics", "animate"}, logger.Nop())
	require.NoError(t, err)

	assert.Equal(t, dir, data.CurrentDir)
	assert.Equal(t, filepath.Join(dir, ".looptimer.yml"), data.ConfigPath)
	assert.Empty(t, data.ConfigError)
	assert.Equal(t, "LTSTATUS_", data.Prefix)
	assert.Equal(t, 8, data.All)
	assert.Equal(t, 25*time.Microsecond, data.Margin)
	assert.Equal(t, "debug", data.LogLevel)

	assert.Equal(t, []EnvVar{
		{Name: "LTSTATUS_COLLIDE", Value: "4"},
		{Name: "LTSTATUS_RENDER", Value: "6"},
	}, data.EnvVars)

	byName := make(map[string]config.Resolution)
	for _, r := range data.Timers {
		byName[r.Timer] = r
	}

	assert.Equal(t, 2, byName["Animate"].Interval)
	assert.Equal(t, config.SourceFileTimer, byName["Animate"].Source)
	assert.Equal(t, 4, byName["Collide"].Interval)
	assert.Equal(t, config.SourceEnvTimer, byName["Collide"].Source)
	assert.Equal(t, 6, byName["RENDER"].Interval)
	assert.Equal(t, 8, byName["Physics"].Interval)
	assert.Equal(t, config.SourceFileAll, byName["Physics"].Source)
	assert.Equal(t, 8, byName["animate"].Interval, "file timer keys are case sensitive")
	assert.Equal(t, config.SourceFileAll, byName["animate"].Source)

	assert.Len(t, data.Timers, 5)
	assert.Equal(t, 5, data.Enabled())
	for i := 1; i < len(data.Timers); i++ {
		assert.Less(t, data.Timers[i-1].Timer, data.Timers[i].Timer)
	}
}

func TestCollectFrom_NoConfig(t *testing.T) {
	dir := t.TempDir()

	data, err := CollectFrom(dir, filepath.Join(dir, "missing.yml"), []string{"Animate"}, nil)
	require.NoError(t, err)

	assert.NotEmpty(t, data.ConfigError)
	assert.Equal(t, config.DefaultPrefix, data.Prefix)
	require.Len(t, data.Timers, 1)
	assert.Equal(t, "Animate", data.Timers[0].Timer)
}

func TestCollect(t *testing.T) {
	t.Chdir(t.TempDir())

	data, err := Collect("", nil, logger.Nop())
	require.NoError(t, err)
	assert.NotEmpty(t, data.CurrentDir)
	assert.NotEmpty(t, data.Version)
}
