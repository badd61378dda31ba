package derrors

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNestingError_EmptyStack(t *testing.T) {
	err := NewNestingError(EmptyStack, "Animate", "")

	assert.Equal(t, "NESTING_ERROR", err.Code())
	assert.Equal(t, EmptyStack, err.Reason)
	assert.Equal(t, "Animate", err.Timer)
	assert.Contains(t, err.Error(), "end(Animate)")
	assert.Contains(t, err.Error(), "no timer")
	assert.Nil(t, errors.Unwrap(err))
}

func TestNestingError_Mismatch(t *testing.T) {
	err := NewNestingError(Mismatch, "U", "T")

	assert.Equal(t, Mismatch, err.Reason)
	assert.Equal(t, "T", err.Expected)
	assert.Equal(t, "end(U) does not match last begin(T)", err.Error())
}

func TestNestingError_As(t *testing.T) {
	var wrapped error = fmt.Errorf("recorder: %w", NewNestingError(Mismatch, "a", "b"))

	var nestErr *NestingError
	assert.True(t, errors.As(wrapped, &nestErr))
	assert.Equal(t, "a", nestErr.Timer)

	var coded LooptimerError
	assert.True(t, errors.As(wrapped, &coded))
	assert.Equal(t, "NESTING_ERROR", coded.Code())
}

func TestNestingReason_String(t *testing.T) {
	assert.Equal(t, "empty stack", EmptyStack.String())
	assert.Equal(t, "mismatch", Mismatch.String())
}

func TestConfigurationError(t *testing.T) {
	cause := fmt.Errorf("invalid YAML")
	err := NewConfigurationError("/path/to/.looptimer.yml", "failed to parse config", cause)

	assert.Equal(t, "CONFIG_ERROR", err.Code())
	assert.Equal(t, "/path/to/.looptimer.yml", err.Path)
	assert.Contains(t, err.Error(), "failed to parse config")
	assert.Contains(t, err.Error(), "invalid YAML")
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestValidationError(t *testing.T) {
	cause := fmt.Errorf("negative interval")
	err := NewValidationError("timers/Animate", "validation failed", cause)

	assert.Equal(t, "VALIDATION_ERROR", err.Code())
	assert.Equal(t, "timers/Animate", err.Field)
	assert.Contains(t, err.Error(), "validation failed")
	assert.Equal(t, cause, errors.Unwrap(err))
}

func TestTemplateError(t *testing.T) {
	cause := fmt.Errorf("unexpected }")
	err := NewTemplateError("{{ .Timer }", "failed to parse summary template", cause)

	assert.Equal(t, "TEMPLATE_ERROR", err.Code())
	assert.Equal(t, "{{ .Timer }", err.Template)
	assert.Contains(t, err.Error(), "unexpected }")
}

func TestErrorWithoutCause(t *testing.T) {
	err := NewConfigurationError("/cfg", "simple error message", nil)

	assert.Equal(t, "simple error message", err.Error())
	assert.Nil(t, errors.Unwrap(err))
}

func TestErrorChaining(t *testing.T) {
	rootCause := fmt.Errorf("root cause")
	validationErr := NewValidationError("margin", "bad margin", rootCause)
	configErr := NewConfigurationError("/config", "config error", validationErr)

	unwrapped := errors.Unwrap(configErr)
	assert.Equal(t, validationErr, unwrapped)

	unwrapped = errors.Unwrap(unwrapped)
	assert.Equal(t, rootCause, unwrapped)
}
