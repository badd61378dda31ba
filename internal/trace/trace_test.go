package trace

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestInit_WithoutEnv(t *testing.T) {
	t.Setenv(EnvVar, "")

	cleanup := Init()
	assert.NotNil(t, cleanup)
	assert.False(t, IsEnabled())
	cleanup()
}

func TestBegin_InactiveIsNoop(t *testing.T) {
	t.Setenv(EnvVar, "")

	end := Begin("Animate")
	assert.NotNil(t, end)
	end()
	Log("looptimer", "ignored")
}
