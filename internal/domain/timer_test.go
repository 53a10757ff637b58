package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func runningTimer(totalSeconds int, startMillis int64) Timer {
	return Timer{
		ID:               "t1",
		TaskName:         "Test timer",
		TotalSeconds:     totalSeconds,
		RemainingSeconds: totalSeconds,
		IsActive:         true,
		StartTimestamp:   startMillis,
	}
}

func TestRemainingIdleTimer(t *testing.T) {
	timer := Timer{TotalSeconds: 120, RemainingSeconds: 45}

	// An inactive timer is frozen at the stored remaining value.
	assert.Equal(t, 45, timer.Remaining(time.Now().UnixMilli()))
	assert.Equal(t, 45, timer.Remaining(0))
}

func TestRemainingRunningTimer(t *testing.T) {
	start := int64(1_000_000)
	timer := runningTimer(120, start)

	assert.Equal(t, 120, timer.Remaining(start))
	assert.Equal(t, 90, timer.Remaining(start+30_000))
	assert.Equal(t, 0, timer.Remaining(start+120_000))

	// Sub-second progress truncates toward the higher remaining value.
	assert.Equal(t, 120, timer.Remaining(start+999))
	assert.Equal(t, 119, timer.Remaining(start+1_000))
}

func TestRemainingFloorsWithFutureStart(t *testing.T) {
	now := int64(1_000_000)

	// A duration-shrinking edit rebases the start timestamp past now.
	// Elapsed time must floor, not truncate toward zero, or the
	// sub-second phase reads one second high.
	timer := runningTimer(60, now+2_000)
	assert.Equal(t, 62, timer.Remaining(now))

	timer = runningTimer(60, now+1_500)
	assert.Equal(t, 62, timer.Remaining(now))

	timer = runningTimer(60, now+999)
	assert.Equal(t, 61, timer.Remaining(now))
}

func TestRemainingClampsAtZero(t *testing.T) {
	start := int64(1_000_000)
	timer := runningTimer(60, start)

	// Long past the deadline, e.g. after a machine suspend.
	assert.Equal(t, 0, timer.Remaining(start+3_600_000))
}

func TestRemainingOvertimeGoesNegative(t *testing.T) {
	start := int64(1_000_000)
	timer := runningTimer(60, start)
	timer.IsNegative = true

	assert.Equal(t, 10, timer.Remaining(start+50_000))
	assert.Equal(t, 0, timer.Remaining(start+60_000))
	assert.Equal(t, -30, timer.Remaining(start+90_000))
}

func TestRemainingPausedTimer(t *testing.T) {
	start := int64(1_000_000)
	timer := runningTimer(120, start)
	timer.IsPaused = true
	timer.RemainingSeconds = 85

	// Paused timers report the frozen snapshot no matter how late it is.
	assert.Equal(t, 85, timer.Remaining(start+999_000))
}

func TestRemainingAfterResume(t *testing.T) {
	start := int64(1_000_000)
	timer := runningTimer(120, start)

	// Ran 35s, paused 40s, then resumed: the pause window is excluded.
	timer.TotalPausedDuration = 40
	now := start + (35+40)*1000
	assert.Equal(t, 85, timer.Remaining(now))
}

func TestRemainingZeroStartTimestamp(t *testing.T) {
	timer := runningTimer(60, 0)

	// A running timer without a recorded start behaves as started now.
	assert.Equal(t, 60, timer.Remaining(5_000_000))
}

func TestState(t *testing.T) {
	now := int64(1_000_000)

	idle := Timer{TotalSeconds: 60, RemainingSeconds: 60}
	assert.Equal(t, StateIdle, idle.State(now))

	completed := Timer{TotalSeconds: 60, RemainingSeconds: 0}
	assert.Equal(t, StateCompleted, completed.State(now))

	running := runningTimer(60, now)
	assert.Equal(t, StateRunning, running.State(now))

	paused := runningTimer(60, now)
	paused.IsPaused = true
	assert.Equal(t, StatePaused, paused.State(now))

	overtime := runningTimer(60, now-90_000)
	overtime.IsNegative = true
	assert.Equal(t, StateOvertime, overtime.State(now))
}

func TestSetDuration(t *testing.T) {
	var timer Timer
	timer.SetDuration(1, 30, 15)

	assert.Equal(t, 1, timer.Hours)
	assert.Equal(t, 30, timer.Minutes)
	assert.Equal(t, 15, timer.Seconds)
	assert.Equal(t, 5415, timer.TotalSeconds)
}

func TestRepeatAndOvertimeAreMutuallyExclusive(t *testing.T) {
	var timer Timer

	timer.SetRepeating(true, 30)
	assert.True(t, timer.IsRepeating)
	assert.Equal(t, 30, timer.RepeatInterval)

	timer.SetNegative(true)
	assert.True(t, timer.IsNegative)
	assert.False(t, timer.IsRepeating)
	assert.Equal(t, 0, timer.RepeatInterval)

	timer.SetRepeating(true, 10)
	assert.True(t, timer.IsRepeating)
	assert.False(t, timer.IsNegative)
}

func TestClearRunState(t *testing.T) {
	timer := runningTimer(60, 1_000_000)
	timer.IsPaused = true
	timer.PauseTimestamp = 1_030_000
	timer.TotalPausedDuration = 12
	timer.RemainingSeconds = 48

	timer.ClearRunState()

	assert.False(t, timer.IsActive)
	assert.False(t, timer.IsPaused)
	assert.Zero(t, timer.StartTimestamp)
	assert.Zero(t, timer.PauseTimestamp)
	assert.Zero(t, timer.TotalPausedDuration)
	// Remaining is untouched; stop keeps it, reset restores it separately.
	assert.Equal(t, 48, timer.RemainingSeconds)
}

func TestIsValid(t *testing.T) {
	valid := Timer{TaskName: "ok", Hours: 0, Minutes: 1, Seconds: 0, TotalSeconds: 60}
	assert.True(t, valid.IsValid())

	noName := valid
	noName.TaskName = ""
	assert.False(t, noName.IsValid())

	inconsistent := valid
	inconsistent.TotalSeconds = 61
	assert.False(t, inconsistent.IsValid())

	zeroDuration := Timer{TaskName: "ok"}
	assert.False(t, zeroDuration.IsValid())

	pausedButInactive := valid
	pausedButInactive.IsPaused = true
	assert.False(t, pausedButInactive.IsValid())

	bothModes := valid
	bothModes.IsRepeating = true
	bothModes.IsNegative = true
	assert.False(t, bothModes.IsValid())
}

func TestTotalSeconds(t *testing.T) {
	assert.Equal(t, 0, TotalSeconds(0, 0, 0))
	assert.Equal(t, 90, TotalSeconds(0, 1, 30))
	assert.Equal(t, 3600, TotalSeconds(1, 0, 0))
	assert.Equal(t, 86399, TotalSeconds(23, 59, 59))
}
