package sqlite

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askk-pro/karyayana/internal/errors"
)

func setupTestDB(t *testing.T) *SQLiteRepository {
	repo, err := NewMemory()
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func testTimer(id, name string) *Timer {
	return &Timer{
		ID:               id,
		TaskName:         name,
		Minutes:          25,
		TotalSeconds:     1500,
		RemainingSeconds: 1500,
		PrimaryColor:     "#f59e0b",
		SecondaryColor:   "#fbbf24",
		FontFamily:       "mono",
		FontSize:         "text-2xl",
	}
}

func TestCreateAndGetTimer(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	timer := testTimer("timer-1", "Pomodoro")
	timer.SoundURL = "file:///sounds/bell.mp3"
	timer.SoundName = "Bell"
	require.NoError(t, repo.CreateTimer(ctx, timer))

	retrieved, err := repo.GetTimer(ctx, "timer-1")
	require.NoError(t, err)
	assert.Equal(t, "Pomodoro", retrieved.TaskName)
	assert.Equal(t, 25, retrieved.Minutes)
	assert.Equal(t, 1500, retrieved.TotalSeconds)
	assert.Equal(t, 1500, retrieved.RemainingSeconds)
	assert.Equal(t, "file:///sounds/bell.mp3", retrieved.SoundURL)
	assert.Equal(t, "Bell", retrieved.SoundName)
	assert.False(t, retrieved.IsActive)
	assert.Zero(t, retrieved.StartTimestamp)
	assert.Nil(t, retrieved.LastStartedAt)
	assert.False(t, retrieved.CreatedAt.IsZero())
}

func TestGetTimerNotFound(t *testing.T) {
	repo := setupTestDB(t)

	_, err := repo.GetTimer(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
}

func TestCreateTimerAssignsDisplayOrder(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	first := testTimer("timer-1", "First")
	require.NoError(t, repo.CreateTimer(ctx, first))
	assert.Equal(t, 1, first.DisplayOrder)

	second := testTimer("timer-2", "Second")
	require.NoError(t, repo.CreateTimer(ctx, second))
	assert.Equal(t, 2, second.DisplayOrder)

	// An explicit order is kept as given.
	explicit := testTimer("timer-3", "Pinned")
	explicit.DisplayOrder = 9
	require.NoError(t, repo.CreateTimer(ctx, explicit))
	assert.Equal(t, 9, explicit.DisplayOrder)
}

func TestListTimersOrdering(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	for _, name := range []string{"A", "B", "C"} {
		require.NoError(t, repo.CreateTimer(ctx, testTimer("timer-"+name, name)))
	}

	require.NoError(t, repo.UpdateDisplayOrder(ctx, []DisplayOrder{
		{ID: "timer-C", Order: 1},
		{ID: "timer-A", Order: 2},
		{ID: "timer-B", Order: 3},
	}))

	timers, err := repo.ListTimers(ctx)
	require.NoError(t, err)
	require.Len(t, timers, 3)
	assert.Equal(t, "C", timers[0].TaskName)
	assert.Equal(t, "A", timers[1].TaskName)
	assert.Equal(t, "B", timers[2].TaskName)
}

func TestListRunningTimers(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	idle := testTimer("timer-idle", "Idle")
	require.NoError(t, repo.CreateTimer(ctx, idle))

	running := testTimer("timer-running", "Running")
	running.IsActive = true
	running.StartTimestamp = time.Now().UnixMilli()
	require.NoError(t, repo.CreateTimer(ctx, running))

	paused := testTimer("timer-paused", "Paused")
	paused.IsActive = true
	paused.IsPaused = true
	paused.StartTimestamp = time.Now().UnixMilli()
	paused.PauseTimestamp = time.Now().UnixMilli()
	require.NoError(t, repo.CreateTimer(ctx, paused))

	timers, err := repo.ListRunningTimers(ctx)
	require.NoError(t, err)
	require.Len(t, timers, 1)
	assert.Equal(t, "Running", timers[0].TaskName)
	assert.NotZero(t, timers[0].StartTimestamp)
}

func TestUpdateTimer(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	timer := testTimer("timer-1", "Pomodoro")
	require.NoError(t, repo.CreateTimer(ctx, timer))

	now := time.Now()
	timer.IsActive = true
	timer.StartTimestamp = now.UnixMilli()
	timer.TotalPausedDuration = 12
	timer.LastStartedAt = &now
	require.NoError(t, repo.UpdateTimer(ctx, timer))

	retrieved, err := repo.GetTimer(ctx, "timer-1")
	require.NoError(t, err)
	assert.True(t, retrieved.IsActive)
	assert.Equal(t, now.UnixMilli(), retrieved.StartTimestamp)
	assert.Equal(t, 12, retrieved.TotalPausedDuration)
	require.NotNil(t, retrieved.LastStartedAt)
	assert.Equal(t, now.Unix(), retrieved.LastStartedAt.Unix())
}

func TestUpdateTimerWritesCallerUpdatedAt(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	timer := testTimer("timer-1", "Pomodoro")
	require.NoError(t, repo.CreateTimer(ctx, timer))

	// The audit timestamp comes from the caller's clock, not the store's.
	updatedAt := time.Date(2025, 6, 1, 9, 30, 0, 0, time.UTC)
	timer.UpdatedAt = updatedAt
	require.NoError(t, repo.UpdateTimer(ctx, timer))

	retrieved, err := repo.GetTimer(ctx, "timer-1")
	require.NoError(t, err)
	assert.True(t, retrieved.UpdatedAt.Equal(updatedAt))
}

func TestUpdateTimerNotFound(t *testing.T) {
	repo := setupTestDB(t)

	err := repo.UpdateTimer(context.Background(), testTimer("missing", "Ghost"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
}

func TestDeleteTimerCascadesSessions(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	timer := testTimer("timer-1", "Pomodoro")
	require.NoError(t, repo.CreateTimer(ctx, timer))
	require.NoError(t, repo.CreateSession(ctx, &TimerSession{
		ID:        "session-1",
		TimerID:   "timer-1",
		StartedAt: time.Now(),
	}))

	require.NoError(t, repo.DeleteTimer(ctx, "timer-1"))

	_, err := repo.GetTimer(ctx, "timer-1")
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))

	sessions, err := repo.ListSessions(ctx, "timer-1")
	require.NoError(t, err)
	assert.Empty(t, sessions)
}

func TestDeleteTimerNotFound(t *testing.T) {
	repo := setupTestDB(t)

	err := repo.DeleteTimer(context.Background(), "missing")
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
}

func TestSessionLifecycle(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	require.NoError(t, repo.CreateTimer(ctx, testTimer("timer-1", "Pomodoro")))

	started := time.Now().Add(-25 * time.Minute)
	require.NoError(t, repo.CreateSession(ctx, &TimerSession{
		ID:        "session-1",
		TimerID:   "timer-1",
		StartedAt: started,
	}))

	sessions, err := repo.ListSessions(ctx, "timer-1")
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	assert.True(t, sessions[0].EndedAt == nil)

	ended := time.Now()
	require.NoError(t, repo.CloseSession(ctx, "timer-1", ended, 1500, true))

	sessions, err = repo.ListSessions(ctx, "timer-1")
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	require.NotNil(t, sessions[0].EndedAt)
	assert.Equal(t, 1500, sessions[0].DurationSeconds)
	assert.True(t, sessions[0].Completed)

	// Closing again is a no-op; there is no open session left.
	require.NoError(t, repo.CloseSession(ctx, "timer-1", ended, 0, false))
	sessions, err = repo.ListSessions(ctx, "timer-1")
	require.NoError(t, err)
	assert.Equal(t, 1500, sessions[0].DurationSeconds)
}

func TestSettings(t *testing.T) {
	repo := setupTestDB(t)
	ctx := context.Background()

	// Seeded by the initial migration.
	value, err := repo.GetSetting(ctx, "global_mute")
	require.NoError(t, err)
	assert.Equal(t, "false", value)

	require.NoError(t, repo.SetSetting(ctx, "global_mute", "true"))
	value, err = repo.GetSetting(ctx, "global_mute")
	require.NoError(t, err)
	assert.Equal(t, "true", value)

	_, err = repo.GetSetting(ctx, "does_not_exist")
	require.Error(t, err)
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
}

func TestCurrentTimestamp(t *testing.T) {
	repo := setupTestDB(t)

	millis, err := repo.CurrentTimestamp(context.Background())
	require.NoError(t, err)

	// The store clock and the process clock should agree within seconds.
	diff := time.Now().UnixMilli() - millis
	if diff < 0 {
		diff = -diff
	}
	assert.Less(t, diff, int64(10_000))
}
