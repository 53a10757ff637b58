package domain

import (
	"time"
)

// TimerState represents the lifecycle state of a timer.
type TimerState string

const (
	StateIdle      TimerState = "idle"
	StateRunning   TimerState = "running"
	StatePaused    TimerState = "paused"
	StateCompleted TimerState = "completed"
	StateOvertime  TimerState = "overtime"
)

// Default appearance values applied when a timer is created without
// explicit customization.
const (
	DefaultPrimaryColor   = "#f59e0b"
	DefaultSecondaryColor = "#fbbf24"
	DefaultFontFamily     = "mono"
	DefaultFontSize       = "text-2xl"
)

// Timer represents a countdown timer in the domain model.
// Run-state is tracked with wall-clock millisecond timestamps rather than
// tick counters: remaining time is always recomputed from StartTimestamp and
// TotalPausedDuration, so a suspended process or unmounted display surface
// never drifts the countdown.
type Timer struct {
	ID       string
	TaskName string

	Hours        int
	Minutes      int
	Seconds      int
	TotalSeconds int

	// Remaining is the last persisted remaining value in seconds. For a
	// running timer it is a snapshot; Remaining() is authoritative.
	RemainingSeconds int

	IsActive bool
	IsPaused bool

	SoundID   string
	SoundURL  string
	SoundName string

	IsRepeating    bool
	RepeatInterval int // seconds between completion and automatic restart
	IsNegative     bool
	IsMuted        bool

	PrimaryColor   string
	SecondaryColor string
	FontFamily     string
	FontSize       string

	// StartTimestamp and PauseTimestamp are ms since epoch; zero means unset.
	StartTimestamp      int64
	PauseTimestamp      int64
	TotalPausedDuration int // cumulative paused seconds since last start

	DisplayOrder int

	CreatedAt     time.Time
	UpdatedAt     time.Time
	LastStartedAt *time.Time
	LastPausedAt  *time.Time
}

// State derives the lifecycle state from the run-state flags.
func (t Timer) State(nowMillis int64) TimerState {
	if !t.IsActive {
		if t.RemainingSeconds == 0 && t.TotalSeconds > 0 {
			return StateCompleted
		}
		return StateIdle
	}
	if t.IsPaused {
		return StatePaused
	}
	if t.IsNegative && t.Remaining(nowMillis) < 0 {
		return StateOvertime
	}
	return StateRunning
}

// Remaining computes the seconds left on the timer at the given wall-clock
// instant. It is the single shared implementation used by both the display
// surfaces and the background monitor; the two must never disagree.
//
// A stopped or paused timer is frozen at its stored remaining value. A running
// timer derives elapsed time from the start timestamp minus accumulated paused
// time. Overtime timers are never clamped at zero.
func (t Timer) Remaining(nowMillis int64) int {
	if !t.IsActive || t.IsPaused {
		return t.RemainingSeconds
	}

	start := t.StartTimestamp
	if start == 0 {
		start = nowMillis
	}
	// Floored division: a duration-shrinking edit can rebase the start
	// timestamp past now, and truncation would read one second high there.
	deltaMillis := nowMillis - start
	elapsedSeconds := deltaMillis / 1000
	if deltaMillis < 0 && deltaMillis%1000 != 0 {
		elapsedSeconds--
	}
	elapsed := int(elapsedSeconds) - t.TotalPausedDuration

	if t.IsNegative {
		return t.TotalSeconds - elapsed
	}
	remaining := t.TotalSeconds - elapsed
	if remaining < 0 {
		return 0
	}
	return remaining
}

// SetDuration updates the duration components and keeps TotalSeconds
// consistent with them.
func (t *Timer) SetDuration(hours, minutes, seconds int) {
	t.Hours = hours
	t.Minutes = minutes
	t.Seconds = seconds
	t.TotalSeconds = TotalSeconds(hours, minutes, seconds)
}

// SetRepeating enables or disables repeat mode. Repeat and overtime modes are
// mutually exclusive; enabling one clears the other.
func (t *Timer) SetRepeating(repeating bool, intervalSeconds int) {
	t.IsRepeating = repeating
	t.RepeatInterval = intervalSeconds
	if repeating {
		t.IsNegative = false
	}
}

// SetNegative enables or disables overtime mode, clearing repeat mode when
// enabled.
func (t *Timer) SetNegative(negative bool) {
	t.IsNegative = negative
	if negative {
		t.IsRepeating = false
		t.RepeatInterval = 0
	}
}

// ClearRunState resets all run-state fields. Stopping and resetting both go
// through here; only reset additionally restores RemainingSeconds.
func (t *Timer) ClearRunState() {
	t.IsActive = false
	t.IsPaused = false
	t.StartTimestamp = 0
	t.PauseTimestamp = 0
	t.TotalPausedDuration = 0
}

// IsValid checks the cross-field invariants of the timer.
func (t Timer) IsValid() bool {
	if t.TaskName == "" {
		return false
	}
	if t.TotalSeconds != TotalSeconds(t.Hours, t.Minutes, t.Seconds) {
		return false
	}
	if t.TotalSeconds <= 0 {
		return false
	}
	if t.IsPaused && !t.IsActive {
		return false
	}
	if t.IsRepeating && t.IsNegative {
		return false
	}
	return true
}

// TotalSeconds derives the configured duration from its components.
func TotalSeconds(hours, minutes, seconds int) int {
	return hours*3600 + minutes*60 + seconds
}
