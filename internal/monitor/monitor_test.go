package monitor

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/askk-pro/karyayana/internal/clock"
	"github.com/askk-pro/karyayana/internal/notify"
	"github.com/askk-pro/karyayana/internal/repository/sqlite"
)

// recordingNotifier captures shown notifications and their handles.
type recordingNotifier struct {
	mu        sync.Mutex
	shown     []notify.Notification
	cancelled []string
}

type recordedHandle struct {
	notifier *recordingNotifier
	timerID  string
}

func (h recordedHandle) Cancel() {
	h.notifier.mu.Lock()
	defer h.notifier.mu.Unlock()
	h.notifier.cancelled = append(h.notifier.cancelled, h.timerID)
}

func (n *recordingNotifier) Show(notification notify.Notification) (notify.Handle, error) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.shown = append(n.shown, notification)
	return recordedHandle{notifier: n, timerID: notification.TimerID}, nil
}

func (n *recordingNotifier) shownCount() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.shown)
}

// recordingPlayer captures playback requests.
type recordingPlayer struct {
	mu         sync.Mutex
	played     []string
	stopped    []string
	stoppedAll int
}

func (p *recordingPlayer) Play(timerID, url string, onEnded func()) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.played = append(p.played, url)
	return nil
}

func (p *recordingPlayer) Stop(timerID string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stopped = append(p.stopped, timerID)
}

func (p *recordingPlayer) StopAll() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.stoppedAll++
}

func setupMonitor(t *testing.T) (*Monitor, *clock.Fake, sqlite.Repository, *recordingNotifier, *recordingPlayer) {
	repo, err := sqlite.NewMemory()
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })

	fake := clock.NewFake(time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC))
	notifier := &recordingNotifier{}
	player := &recordingPlayer{}
	return New(repo, fake, notifier, player), fake, repo, notifier, player
}

func createRunning(t *testing.T, repo sqlite.Repository, fake *clock.Fake, id string, totalSeconds int) *sqlite.Timer {
	now := fake.Now()
	timer := &sqlite.Timer{
		ID:               id,
		TaskName:         "Timer " + id,
		Seconds:          totalSeconds % 60,
		Minutes:          totalSeconds / 60,
		TotalSeconds:     totalSeconds,
		RemainingSeconds: totalSeconds,
		IsActive:         true,
		SoundURL:         "file:///sounds/bell.mp3",
		PrimaryColor:     "#f59e0b",
		SecondaryColor:   "#fbbf24",
		FontFamily:       "mono",
		FontSize:         "text-2xl",
		StartTimestamp:   fake.NowMillis(),
		LastStartedAt:    &now,
	}
	require.NoError(t, repo.CreateTimer(context.Background(), timer))
	require.NoError(t, repo.CreateSession(context.Background(), &sqlite.TimerSession{
		ID:        "session-" + id,
		TimerID:   id,
		StartedAt: now,
	}))
	return timer
}

func TestScanCompletesExpiredTimer(t *testing.T) {
	mon, fake, repo, notifier, player := setupMonitor(t)
	ctx := context.Background()

	createRunning(t, repo, fake, "t1", 60)

	// Not yet due.
	fake.Advance(59 * time.Second)
	require.NoError(t, mon.Scan(ctx))
	assert.Zero(t, notifier.shownCount())

	// Due now.
	fake.Advance(1 * time.Second)
	require.NoError(t, mon.Scan(ctx))
	require.Equal(t, 1, notifier.shownCount())
	assert.Equal(t, "Timer t1", notifier.shown[0].Title)
	assert.Equal(t, []string{"file:///sounds/bell.mp3"}, player.played)

	// Final state persisted.
	stored, err := repo.GetTimer(ctx, "t1")
	require.NoError(t, err)
	assert.False(t, stored.IsActive)
	assert.Zero(t, stored.RemainingSeconds)
	assert.Zero(t, stored.StartTimestamp)

	// Session closed as completed.
	sessions, err := repo.ListSessions(ctx, "t1")
	require.NoError(t, err)
	require.Len(t, sessions, 1)
	require.NotNil(t, sessions[0].EndedAt)
	assert.True(t, sessions[0].Completed)
	assert.Equal(t, 60, sessions[0].DurationSeconds)
}

func TestCompletionFiresExactlyOnce(t *testing.T) {
	mon, fake, repo, notifier, _ := setupMonitor(t)
	ctx := context.Background()

	createRunning(t, repo, fake, "t1", 30)
	fake.Advance(30 * time.Second)

	require.NoError(t, mon.Scan(ctx))
	require.NoError(t, mon.Scan(ctx))
	require.NoError(t, mon.Scan(ctx))

	assert.Equal(t, 1, notifier.shownCount())
}

func TestClearCompletedReArmsDetection(t *testing.T) {
	mon, fake, repo, notifier, _ := setupMonitor(t)
	ctx := context.Background()

	timer := createRunning(t, repo, fake, "t1", 30)
	fake.Advance(30 * time.Second)
	require.NoError(t, mon.Scan(ctx))
	require.Equal(t, 1, notifier.shownCount())

	// A fresh start re-arms detection for the next run.
	mon.ClearCompleted("t1")
	timer.IsActive = true
	timer.RemainingSeconds = 30
	timer.StartTimestamp = fake.NowMillis()
	require.NoError(t, repo.UpdateTimer(ctx, timer))

	fake.Advance(30 * time.Second)
	require.NoError(t, mon.Scan(ctx))
	assert.Equal(t, 2, notifier.shownCount())
}

func TestOvertimeTimerNeverCompletes(t *testing.T) {
	mon, fake, repo, notifier, _ := setupMonitor(t)
	ctx := context.Background()

	timer := createRunning(t, repo, fake, "t1", 60)
	timer.IsNegative = true
	require.NoError(t, repo.UpdateTimer(ctx, timer))

	fake.Advance(2 * time.Hour)
	require.NoError(t, mon.Scan(ctx))

	assert.Zero(t, notifier.shownCount())
	stored, err := repo.GetTimer(ctx, "t1")
	require.NoError(t, err)
	assert.True(t, stored.IsActive)
}

func TestMutedTimerSkipsAudioButNotifies(t *testing.T) {
	mon, fake, repo, notifier, player := setupMonitor(t)
	ctx := context.Background()

	timer := createRunning(t, repo, fake, "t1", 30)
	timer.IsMuted = true
	require.NoError(t, repo.UpdateTimer(ctx, timer))

	fake.Advance(30 * time.Second)
	require.NoError(t, mon.Scan(ctx))

	assert.Equal(t, 1, notifier.shownCount())
	assert.Empty(t, player.played)
}

func TestGlobalMuteSkipsAudio(t *testing.T) {
	mon, fake, repo, _, player := setupMonitor(t)
	ctx := context.Background()

	require.NoError(t, repo.SetSetting(ctx, "global_mute", "true"))
	createRunning(t, repo, fake, "t1", 30)

	fake.Advance(30 * time.Second)
	require.NoError(t, mon.Scan(ctx))

	assert.Empty(t, player.played)
}

func TestRepeatingTimerRestarts(t *testing.T) {
	mon, fake, repo, notifier, _ := setupMonitor(t)
	ctx := context.Background()

	timer := createRunning(t, repo, fake, "t1", 30)
	timer.IsRepeating = true
	timer.RepeatInterval = 10
	require.NoError(t, repo.UpdateTimer(ctx, timer))

	fake.Advance(30 * time.Second)
	require.NoError(t, mon.Scan(ctx))
	require.Equal(t, 1, notifier.shownCount())

	// The interval elapses and the restart fires.
	fake.Advance(10 * time.Second)
	require.NoError(t, mon.restart(ctx, "t1"))

	stored, err := repo.GetTimer(ctx, "t1")
	require.NoError(t, err)
	assert.True(t, stored.IsActive)
	assert.Equal(t, 30, stored.RemainingSeconds)
	assert.Equal(t, fake.NowMillis(), stored.StartTimestamp)
	assert.Zero(t, stored.TotalPausedDuration)

	// A second session was opened for the new run.
	sessions, err := repo.ListSessions(ctx, "t1")
	require.NoError(t, err)
	assert.Len(t, sessions, 2)

	// Detection is re-armed; the new run completes again.
	fake.Advance(30 * time.Second)
	require.NoError(t, mon.Scan(ctx))
	assert.Equal(t, 2, notifier.shownCount())

	// Discard the pending wall-clock restart before the store closes.
	mon.CancelCompletion("t1")
}

func TestRestartSkipsStoppedOrDeletedTimers(t *testing.T) {
	mon, fake, repo, _, _ := setupMonitor(t)
	ctx := context.Background()

	// Deleted in the meantime: not an error.
	require.NoError(t, mon.restart(ctx, "missing"))

	// Stopped non-repeating timer stays idle.
	timer := createRunning(t, repo, fake, "t1", 30)
	timer.IsActive = false
	require.NoError(t, repo.UpdateTimer(ctx, timer))
	require.NoError(t, mon.restart(ctx, "t1"))

	stored, err := repo.GetTimer(ctx, "t1")
	require.NoError(t, err)
	assert.False(t, stored.IsActive)
}

func TestCancelCompletionDismissesEffects(t *testing.T) {
	mon, fake, repo, notifier, player := setupMonitor(t)
	ctx := context.Background()

	createRunning(t, repo, fake, "t1", 30)
	fake.Advance(30 * time.Second)
	require.NoError(t, mon.Scan(ctx))
	require.Equal(t, 1, notifier.shownCount())

	mon.CancelCompletion("t1")

	assert.Equal(t, []string{"t1"}, notifier.cancelled)
	assert.Equal(t, []string{"t1"}, player.stopped)
}

func TestStatusEventsCarrySoonestTitle(t *testing.T) {
	mon, fake, repo, _, _ := setupMonitor(t)
	ctx := context.Background()

	events := mon.Subscribe(4)

	// No running timers: idle title.
	require.NoError(t, mon.Scan(ctx))
	event := <-events
	assert.Equal(t, EventStatus, event.Kind)
	assert.Equal(t, IdleTitle, event.Title)

	createRunning(t, repo, fake, "slow", 600)
	createRunning(t, repo, fake, "soon", 90)

	fake.Advance(5 * time.Second)
	require.NoError(t, mon.Scan(ctx))
	event = <-events
	assert.Equal(t, "01:25 - Timer soon", event.Title)
}

func TestRestartFromSiblingProcessReArmsDetection(t *testing.T) {
	mon, fake, repo, notifier, _ := setupMonitor(t)
	ctx := context.Background()

	timer := createRunning(t, repo, fake, "t1", 30)
	fake.Advance(30 * time.Second)
	require.NoError(t, mon.Scan(ctx))
	require.Equal(t, 1, notifier.shownCount())

	// A `ky start` in another process writes fresh run-state straight to
	// the shared store; this monitor never sees a ClearCompleted call.
	fake.Advance(5 * time.Second)
	timer.IsActive = true
	timer.RemainingSeconds = 30
	timer.StartTimestamp = fake.NowMillis()
	require.NoError(t, repo.UpdateTimer(ctx, timer))

	fake.Advance(30 * time.Second)
	require.NoError(t, mon.Scan(ctx))
	assert.Equal(t, 2, notifier.shownCount())
}

func TestTitlePrefersClosestByAbsoluteValue(t *testing.T) {
	mon, fake, repo, _, _ := setupMonitor(t)
	ctx := context.Background()

	over := createRunning(t, repo, fake, "over", 60)
	over.IsNegative = true
	require.NoError(t, repo.UpdateTimer(ctx, over))
	createRunning(t, repo, fake, "count", 950)

	events := mon.Subscribe(4)

	// Overtime at -880s must not displace a countdown 10s from finishing.
	fake.Advance(940 * time.Second)
	require.NoError(t, mon.Scan(ctx))
	event := <-events
	assert.Equal(t, "00:10 - Timer count", event.Title)

	// Once the countdown completes in this pass, the overtime timer is the
	// only one still running and the title falls back to it.
	fake.Advance(10 * time.Second)
	require.NoError(t, mon.Scan(ctx))
	event = <-events
	assert.Equal(t, EventCompleted, event.Kind)
	event = <-events
	assert.Equal(t, "-14:50 - Timer over", event.Title)
}

func TestOvertimeTitleShowsNegativeCountdown(t *testing.T) {
	mon, fake, repo, _, _ := setupMonitor(t)
	ctx := context.Background()

	timer := createRunning(t, repo, fake, "t1", 60)
	timer.IsNegative = true
	require.NoError(t, repo.UpdateTimer(ctx, timer))

	events := mon.Subscribe(4)
	fake.Advance(90 * time.Second)
	require.NoError(t, mon.Scan(ctx))

	event := <-events
	assert.Equal(t, "-00:30 - Timer t1", event.Title)
}

func TestFormatCountdown(t *testing.T) {
	assert.Equal(t, "00:00", FormatCountdown(0))
	assert.Equal(t, "00:05", FormatCountdown(5))
	assert.Equal(t, "01:30", FormatCountdown(90))
	assert.Equal(t, "25:00", FormatCountdown(1500))
	assert.Equal(t, "90:00", FormatCountdown(5400))
	assert.Equal(t, "-00:30", FormatCountdown(-30))
}
