// Package monitor runs the background completion scan. It re-derives every
// running timer's remaining time from the persisted wall-clock timestamps
// once a second, fires completion side effects exactly once per run, and
// publishes the soonest-timer window title.
package monitor

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/askk-pro/karyayana/internal/clock"
	"github.com/askk-pro/karyayana/internal/domain"
	"github.com/askk-pro/karyayana/internal/errors"
	"github.com/askk-pro/karyayana/internal/logging"
	"github.com/askk-pro/karyayana/internal/notify"
	"github.com/askk-pro/karyayana/internal/repository/sqlite"
	"github.com/askk-pro/karyayana/internal/services"
)

// DefaultScanInterval is the cadence of the completion scan.
const DefaultScanInterval = time.Second

// IdleTitle is published when no timer is running.
const IdleTitle = "KaryaYana"

// Monitor is the background completion watcher. It implements
// services.CompletionEffects so the lifecycle controller can cancel pending
// side effects synchronously during stop, reset, start and delete.
type Monitor struct {
	repo     sqlite.Repository
	clock    clock.Clock
	notifier notify.Notifier
	player   notify.Player
	mapper   *domain.Mapper
	interval time.Duration
	events   *eventHub

	mu sync.Mutex
	// fired records the StartTimestamp of the run a completion was fired
	// for, so a fresh start seen in the store re-arms detection even when
	// it was written by another process.
	fired    map[string]int64
	restarts map[string]*time.Timer
	handles  map[string]notify.Handle
	focus    func(timerID string)
}

var _ services.CompletionEffects = (*Monitor)(nil)

// New creates a Monitor. The notifier and player may be headless
// implementations on platforms without the corresponding facility.
func New(repo sqlite.Repository, clk clock.Clock, notifier notify.Notifier, player notify.Player) *Monitor {
	return &Monitor{
		repo:     repo,
		clock:    clk,
		notifier: notifier,
		player:   player,
		mapper:   domain.NewMapper(),
		interval: DefaultScanInterval,
		events:   &eventHub{},
		fired:    make(map[string]int64),
		restarts: make(map[string]*time.Timer),
		handles:  make(map[string]notify.Handle),
	}
}

// SetScanInterval overrides the scan cadence. Call before Run.
func (m *Monitor) SetScanInterval(interval time.Duration) {
	if interval > 0 {
		m.interval = interval
	}
}

// SetFocusHandler registers the callback invoked when a completion
// notification is clicked.
func (m *Monitor) SetFocusHandler(focus func(timerID string)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.focus = focus
}

// Subscribe registers an observer for monitor events.
func (m *Monitor) Subscribe(buffer int) <-chan Event {
	return m.events.subscribe(buffer)
}

// Run scans until the context is cancelled. A failed scan is logged and the
// next tick proceeds normally; one bad pass must not kill the watcher.
func (m *Monitor) Run(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			m.shutdown()
			return
		case <-ticker.C:
			if err := m.Scan(ctx); err != nil {
				logging.Errorf("completion scan: %v\n", err)
			}
		}
	}
}

// Scan performs one pass: detect newly completed timers, fire their side
// effects, and publish the current window title.
func (m *Monitor) Scan(ctx context.Context) error {
	dbTimers, err := m.repo.ListRunningTimers(ctx)
	if err != nil {
		return err
	}

	now := m.clock.Now()
	nowMillis := m.clock.NowMillis()
	timers := m.mapper.Timer.FromDatabaseSlice(dbTimers)

	for i := range timers {
		timer := &timers[i]
		// Overtime timers keep counting below zero and never complete.
		if timer.IsNegative {
			continue
		}
		if timer.Remaining(nowMillis) > 0 {
			continue
		}
		if m.alreadyFired(timer) {
			continue
		}
		if err := m.complete(ctx, timer, now); err != nil {
			logging.Errorf("complete timer %s: %v\n", timer.ID, err)
		}
	}

	m.events.emit(Event{Kind: EventStatus, Title: m.title(timers, nowMillis), At: now})
	return nil
}

// CancelCompletion implements services.CompletionEffects. It cancels any
// scheduled repeat restart, dismisses the outstanding notification and stops
// the timer's completion audio.
func (m *Monitor) CancelCompletion(timerID string) {
	m.mu.Lock()
	if restart, ok := m.restarts[timerID]; ok {
		restart.Stop()
		delete(m.restarts, timerID)
	}
	handle := m.handles[timerID]
	delete(m.handles, timerID)
	m.mu.Unlock()

	if handle != nil {
		handle.Cancel()
	}
	m.player.Stop(timerID)
}

// ClearCompleted implements services.CompletionEffects. It re-arms completion
// detection so the timer's next run can complete again.
func (m *Monitor) ClearCompleted(timerID string) {
	m.mu.Lock()
	delete(m.fired, timerID)
	m.mu.Unlock()
}

// StopAllAudio implements services.CompletionEffects.
func (m *Monitor) StopAllAudio() {
	m.player.StopAll()
}

// alreadyFired reports whether the timer's current run has already had its
// completion fired. A start timestamp newer than the guarded one means a
// fresh run was begun, possibly by a sibling CLI process writing straight to
// the shared store, and detection is re-armed from that persisted state.
func (m *Monitor) alreadyFired(timer *domain.Timer) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	startedAt, ok := m.fired[timer.ID]
	if !ok {
		return false
	}
	if timer.StartTimestamp != startedAt {
		delete(m.fired, timer.ID)
		return false
	}
	return true
}

// complete fires the side effects for one finished timer: persist the final
// state, close the session as completed, notify, play audio, and schedule the
// repeat restart when configured. The fired guard is set before any effect so
// a slow effect cannot double-fire on the next tick.
func (m *Monitor) complete(ctx context.Context, timer *domain.Timer, now time.Time) error {
	m.mu.Lock()
	if _, ok := m.fired[timer.ID]; ok {
		m.mu.Unlock()
		return nil
	}
	m.fired[timer.ID] = timer.StartTimestamp
	m.mu.Unlock()

	timer.ClearRunState()
	timer.RemainingSeconds = 0
	timer.UpdatedAt = now

	dbTimer := m.mapper.Timer.ToDatabase(*timer)
	if err := m.repo.UpdateTimer(ctx, &dbTimer); err != nil {
		// Leave the guard set; retrying against a broken store every
		// second would stack up side effects once it recovers.
		return err
	}

	if err := m.repo.CloseSession(ctx, timer.ID, now, timer.TotalSeconds, true); err != nil {
		logging.Errorf("close session for timer %s: %v\n", timer.ID, err)
	}

	m.notifyCompletion(timer)
	m.playCompletion(ctx, timer)

	if timer.IsRepeating && timer.RepeatInterval > 0 {
		m.scheduleRestart(timer.ID, time.Duration(timer.RepeatInterval)*time.Second)
	}

	m.events.emit(Event{Kind: EventCompleted, Timer: timer, At: now})
	logging.Debugf("timer %s (%q) completed\n", timer.ID, timer.TaskName)
	return nil
}

func (m *Monitor) notifyCompletion(timer *domain.Timer) {
	handle, err := m.notifier.Show(notify.Notification{
		TimerID: timer.ID,
		Title:   timer.TaskName,
		Body:    "Time's up!",
		OnClick: m.focusTimer,
		OnClose: m.player.Stop,
	})
	if err != nil {
		logging.Errorf("%v\n", errors.NewNotificationError(timer.ID, err))
		return
	}
	if handle != nil {
		m.mu.Lock()
		m.handles[timer.ID] = handle
		m.mu.Unlock()
	}
}

func (m *Monitor) playCompletion(ctx context.Context, timer *domain.Timer) {
	if timer.SoundURL == "" || timer.IsMuted {
		return
	}
	if muted, err := m.globalMute(ctx); err != nil {
		logging.Errorf("read global mute: %v\n", err)
		return
	} else if muted {
		return
	}

	if err := m.player.Play(timer.ID, timer.SoundURL, nil); err != nil {
		logging.Errorf("%v\n", errors.NewPlaybackError(timer.SoundURL, err))
	}
}

func (m *Monitor) globalMute(ctx context.Context) (bool, error) {
	value, err := m.repo.GetSetting(ctx, services.SettingGlobalMute)
	if err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return false, nil
		}
		return false, err
	}
	return value == "true", nil
}

func (m *Monitor) scheduleRestart(timerID string, delay time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if existing, ok := m.restarts[timerID]; ok {
		existing.Stop()
	}
	m.restarts[timerID] = time.AfterFunc(delay, func() {
		if err := m.restart(context.Background(), timerID); err != nil {
			logging.Errorf("restart timer %s: %v\n", timerID, err)
		}
	})
}

// restart begins a fresh run of a repeating timer after its interval has
// elapsed. The timer may have been stopped, edited or deleted in the
// meantime; restart only proceeds if it is still a repeating idle timer.
func (m *Monitor) restart(ctx context.Context, timerID string) error {
	m.mu.Lock()
	delete(m.restarts, timerID)
	m.mu.Unlock()

	dbTimer, err := m.repo.GetTimer(ctx, timerID)
	if err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return nil
		}
		return err
	}
	timer := m.mapper.Timer.FromDatabase(*dbTimer)
	if !timer.IsRepeating || timer.IsActive {
		return nil
	}

	now := m.clock.Now()
	nowMillis := m.clock.NowMillis()

	timer.IsActive = true
	timer.IsPaused = false
	timer.StartTimestamp = nowMillis
	timer.PauseTimestamp = 0
	timer.TotalPausedDuration = 0
	timer.RemainingSeconds = timer.TotalSeconds
	timer.LastStartedAt = &now
	timer.UpdatedAt = now

	updated := m.mapper.Timer.ToDatabase(timer)
	if err := m.repo.UpdateTimer(ctx, &updated); err != nil {
		return err
	}

	m.ClearCompleted(timerID)

	session := sqlite.TimerSession{
		ID:        uuid.New().String(),
		TimerID:   timerID,
		StartedAt: now,
	}
	if err := m.repo.CreateSession(ctx, &session); err != nil {
		logging.Errorf("open session for timer %s: %v\n", timerID, err)
	}

	m.events.emit(Event{Kind: EventRestarted, Timer: &timer, At: now})
	logging.Debugf("timer %s restarted after repeat interval\n", timerID)
	return nil
}

func (m *Monitor) focusTimer(timerID string) {
	m.mu.Lock()
	focus := m.focus
	m.mu.Unlock()
	if focus != nil {
		focus(timerID)
	}
}

// title formats the window title from the soonest-to-finish running timer.
// Closeness is the absolute value of remaining so an overtime timer deep
// below zero cannot displace a countdown about to finish.
func (m *Monitor) title(timers []domain.Timer, nowMillis int64) string {
	var soonest *domain.Timer
	soonestRemaining := 0
	for i := range timers {
		if !timers[i].IsActive {
			// Completed earlier in this pass.
			continue
		}
		remaining := timers[i].Remaining(nowMillis)
		if soonest == nil || abs(remaining) < abs(soonestRemaining) {
			soonest = &timers[i]
			soonestRemaining = remaining
		}
	}
	if soonest == nil {
		return IdleTitle
	}
	return fmt.Sprintf("%s - %s", FormatCountdown(soonestRemaining), soonest.TaskName)
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

// FormatCountdown renders seconds as MM:SS, with a leading minus for
// overtime.
func FormatCountdown(seconds int) string {
	sign := ""
	if seconds < 0 {
		sign = "-"
		seconds = -seconds
	}
	return fmt.Sprintf("%s%02d:%02d", sign, seconds/60, seconds%60)
}

func (m *Monitor) shutdown() {
	m.mu.Lock()
	for id, restart := range m.restarts {
		restart.Stop()
		delete(m.restarts, id)
	}
	handles := make([]notify.Handle, 0, len(m.handles))
	for id, handle := range m.handles {
		handles = append(handles, handle)
		delete(m.handles, id)
	}
	m.mu.Unlock()

	for _, handle := range handles {
		handle.Cancel()
	}
	m.player.StopAll()
	m.events.closeAll()
}
