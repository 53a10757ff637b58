package validation

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askk-pro/karyayana/internal/domain"
)

func TestValidateTaskName(t *testing.T) {
	tv := NewTimerValidator()

	assert.NoError(t, tv.ValidateTaskName("Pomodoro"))
	assert.NoError(t, tv.ValidateTaskName("  padded  "))

	assert.Error(t, tv.ValidateTaskName(""))
	assert.Error(t, tv.ValidateTaskName("   "))
	assert.Error(t, tv.ValidateTaskName(strings.Repeat("x", 256)))
	assert.NoError(t, tv.ValidateTaskName(strings.Repeat("x", 255)))
}

func TestGetValidTaskName(t *testing.T) {
	tv := NewTimerValidator()

	name, err := tv.GetValidTaskName("  Deep work  ")
	require.NoError(t, err)
	assert.Equal(t, "Deep work", name)

	_, err = tv.GetValidTaskName("   ")
	assert.Error(t, err)
	assert.True(t, IsValidationError(err))
}

func TestValidateDuration(t *testing.T) {
	tv := NewTimerValidator()

	assert.NoError(t, tv.ValidateDuration(0, 25, 0))
	assert.NoError(t, tv.ValidateDuration(0, 0, 1))
	assert.NoError(t, tv.ValidateDuration(100, 0, 0))

	// Zero total duration is unusable.
	assert.Error(t, tv.ValidateDuration(0, 0, 0))

	// Component ranges.
	assert.Error(t, tv.ValidateDuration(-1, 0, 0))
	assert.Error(t, tv.ValidateDuration(0, 60, 0))
	assert.Error(t, tv.ValidateDuration(0, 0, 60))
	assert.Error(t, tv.ValidateDuration(0, -1, 0))
}

func TestValidateRepeat(t *testing.T) {
	tv := NewTimerValidator()

	assert.NoError(t, tv.ValidateRepeat(false, 0))
	assert.NoError(t, tv.ValidateRepeat(false, -5))
	assert.NoError(t, tv.ValidateRepeat(true, 30))

	assert.Error(t, tv.ValidateRepeat(true, 0))
	assert.Error(t, tv.ValidateRepeat(true, -1))
}

func TestValidateAppearance(t *testing.T) {
	tv := NewTimerValidator()

	// Empty values are allowed; defaults are applied by the caller.
	assert.NoError(t, tv.ValidateAppearance("", "", "", ""))
	assert.NoError(t, tv.ValidateAppearance("#f59e0b", "#fbbf24", "mono", "text-2xl"))
	assert.NoError(t, tv.ValidateAppearance("#AABBCC", "", "serif", "text-lg"))

	assert.Error(t, tv.ValidateAppearance("f59e0b", "", "", ""))
	assert.Error(t, tv.ValidateAppearance("#f59e0", "", "", ""))
	assert.Error(t, tv.ValidateAppearance("#gggggg", "", "", ""))
	assert.Error(t, tv.ValidateAppearance("", "", "comic-sans", ""))
	assert.Error(t, tv.ValidateAppearance("", "", "", "text-9xl"))
}

func TestValidateTimerID(t *testing.T) {
	tv := NewTimerValidator()

	assert.NoError(t, tv.ValidateTimerID("abc-123"))
	assert.Error(t, tv.ValidateTimerID(""))
	assert.Error(t, tv.ValidateTimerID("   "))
}

func TestValidateTimer(t *testing.T) {
	tv := NewTimerValidator()

	valid := domain.Timer{
		TaskName:     "Pomodoro",
		Minutes:      25,
		TotalSeconds: 1500,
	}
	assert.NoError(t, tv.ValidateTimer(valid))

	inconsistent := valid
	inconsistent.TotalSeconds = 1501
	err := tv.ValidateTimer(inconsistent)
	require.Error(t, err)
	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.NotEmpty(t, validationErr.GetFieldErrors("total_seconds"))

	bothModes := valid
	bothModes.IsRepeating = true
	bothModes.RepeatInterval = 10
	bothModes.IsNegative = true
	err = tv.ValidateTimer(bothModes)
	require.Error(t, err)
	validationErr, ok = err.(*ValidationError)
	require.True(t, ok)
	assert.NotEmpty(t, validationErr.GetFieldErrors("is_repeating"))
}

func TestValidationErrorMessageAggregation(t *testing.T) {
	tv := NewTimerValidator()

	err := tv.ValidateTimer(domain.Timer{})
	require.Error(t, err)

	validationErr, ok := err.(*ValidationError)
	require.True(t, ok)
	assert.True(t, validationErr.HasErrors())
	assert.NotEmpty(t, validationErr.GetUserFriendlyMessage())
	assert.NotEmpty(t, validationErr.GetFieldErrors("task_name"))
}
