package main

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	app := newApp()
	app.Writer = &out
	err := app.Run(context.Background(), append([]string{"looptimer"}, args...))
	return out.String(), err
}

func TestApp_Commands(t *testing.T) {
	app := newApp()

	names := make([]string, 0, len(app.Commands))
	for _, cmd := range app.Commands {
		names = append(names, cmd.Name)
	}
	assert.ElementsMatch(t, []string{"demo", "status", "validate", "schema"}, names)
}

func TestApp_Demo(t *testing.T) {
	t.Chdir(t.TempDir())

	out, err := run(t, "--log-level", "error", "demo", "-n", "3", "-i", "2")
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(out, "==== Animate ===="))
	assert.Equal(t, 1, strings.Count(out, "==== Collision ===="))
}

func TestApp_DemoInvalidIterations(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := run(t, "demo", "--iterations", "0")
	require.Error(t, err)
}

func TestApp_Schema(t *testing.T) {
	path := filepath.Join(t.TempDir(), "schema.json")

	_, err := run(t, "schema", "-o", path)
	require.NoError(t, err)

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(content), `"timers"`)
}

func TestApp_Validate(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".looptimer.yml")
	require.NoError(t, os.WriteFile(path, []byte("all: 5\n"), 0644))

	_, err := run(t, "validate", path)
	require.NoError(t, err)

	_, err = run(t, "--config", path, "validate")
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte("all: -5\n"), 0644))
	_, err = run(t, "validate", path)
	require.Error(t, err)
}

func TestApp_Status(t *testing.T) {
	t.Chdir(t.TempDir())

	_, err := run(t, "status", "Animate")
	require.NoError(t, err)
}
