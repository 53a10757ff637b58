package services

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/google/uuid"

	"github.com/askk-pro/karyayana/internal/clock"
	"github.com/askk-pro/karyayana/internal/domain"
	"github.com/askk-pro/karyayana/internal/errors"
	"github.com/askk-pro/karyayana/internal/logging"
	"github.com/askk-pro/karyayana/internal/repository/sqlite"
	"github.com/askk-pro/karyayana/internal/validation"
)

// SettingGlobalMute is the app_settings key holding the global mute flag.
const SettingGlobalMute = "global_mute"

// timerService implements the TimerService interface. Every transition is a
// read-modify-write against the store under a single mutex, so concurrent
// callers (user actions and the background monitor's restart path) serialize
// instead of clobbering each other's run-state.
type timerService struct {
	repo      sqlite.Repository
	validator *validation.TimerValidator
	mapper    *domain.Mapper
	clock     clock.Clock
	publisher *publisher

	mu      sync.Mutex
	effects CompletionEffects
}

// NewTimerService creates a new timer lifecycle controller.
func NewTimerService(repo sqlite.Repository, clk clock.Clock) TimerService {
	return &timerService{
		repo:      repo,
		validator: validation.NewTimerValidator(),
		mapper:    domain.NewMapper(),
		clock:     clk,
		publisher: &publisher{},
	}
}

// SetCompletionEffects registers the background monitor's cancellation hook.
func (s *timerService) SetCompletionEffects(effects CompletionEffects) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.effects = effects
}

// Subscribe registers a change event observer.
func (s *timerService) Subscribe(buffer int) <-chan ChangeEvent {
	return s.publisher.Subscribe(buffer)
}

// Close shuts down event delivery.
func (s *timerService) Close() {
	s.publisher.CloseSubscribers()
}

// CreateTimer validates the configuration, fills in defaults and persists the
// new timer. The timer only exists once the insert has succeeded; a failed
// insert leaves no trace.
func (s *timerService) CreateTimer(ctx context.Context, config TimerConfig) (*domain.Timer, error) {
	taskName, err := s.validator.GetValidTaskName(config.TaskName)
	if err != nil {
		return nil, err
	}
	if err := s.validator.ValidateDuration(config.Hours, config.Minutes, config.Seconds); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateRepeat(config.IsRepeating, config.RepeatInterval); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateAppearance(config.PrimaryColor, config.SecondaryColor, config.FontFamily, config.FontSize); err != nil {
		return nil, err
	}
	if config.IsRepeating && config.IsNegative {
		return nil, errors.NewInvalidInputError("isNegative", config.IsNegative, "repeat and overtime modes are mutually exclusive")
	}

	now := s.clock.Now()
	timer := domain.Timer{
		ID:             uuid.New().String(),
		TaskName:       taskName,
		SoundID:        config.SoundID,
		SoundURL:       config.SoundURL,
		SoundName:      config.SoundName,
		PrimaryColor:   defaultIfEmpty(config.PrimaryColor, domain.DefaultPrimaryColor),
		SecondaryColor: defaultIfEmpty(config.SecondaryColor, domain.DefaultSecondaryColor),
		FontFamily:     defaultIfEmpty(config.FontFamily, domain.DefaultFontFamily),
		FontSize:       defaultIfEmpty(config.FontSize, domain.DefaultFontSize),
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	timer.SetDuration(config.Hours, config.Minutes, config.Seconds)
	timer.RemainingSeconds = timer.TotalSeconds
	timer.SetNegative(config.IsNegative)
	if config.IsRepeating {
		timer.SetRepeating(true, config.RepeatInterval)
	}

	dbTimer := s.mapper.Timer.ToDatabase(timer)
	if err := s.repo.CreateTimer(ctx, &dbTimer); err != nil {
		return nil, err
	}
	// Read back so the assigned display order is reflected.
	timer.DisplayOrder = dbTimer.DisplayOrder

	s.publisher.emit(ChangeEvent{Type: ChangeCreated, TimerID: timer.ID, Timer: &timer, At: now})
	logging.Debugf("created timer %s (%q, %ds)\n", timer.ID, timer.TaskName, timer.TotalSeconds)
	return &timer, nil
}

// CreateTimerFromJSON creates a timer from a JSON document using the timer
// export field names.
func (s *timerService) CreateTimerFromJSON(ctx context.Context, data []byte) (*domain.Timer, error) {
	var config TimerConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, errors.NewInvalidInputError("json", string(data), "invalid timer document: "+err.Error())
	}
	return s.CreateTimer(ctx, config)
}

// GetTimer retrieves a single timer by ID.
func (s *timerService) GetTimer(ctx context.Context, id string) (*domain.Timer, error) {
	if err := s.validator.ValidateTimerID(id); err != nil {
		return nil, err
	}
	dbTimer, err := s.repo.GetTimer(ctx, id)
	if err != nil {
		return nil, err
	}
	timer := s.mapper.Timer.FromDatabase(*dbTimer)
	return &timer, nil
}

// ListTimers retrieves all timers in display order.
func (s *timerService) ListTimers(ctx context.Context) ([]domain.Timer, error) {
	dbTimers, err := s.repo.ListTimers(ctx)
	if err != nil {
		return nil, err
	}
	return s.mapper.Timer.FromDatabaseSlice(dbTimers), nil
}

// StartTimer begins a fresh countdown. The start instant is recorded as a
// wall-clock timestamp; remaining time is derived from it from here on, never
// from ticks. Starting also opens a work session and re-arms completion
// detection for the timer.
func (s *timerService) StartTimer(ctx context.Context, id string) (*domain.Timer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	timer, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if timer.IsActive && !timer.IsPaused {
		return timer, nil
	}

	now := s.clock.Now()
	nowMillis := s.clock.NowMillis()

	timer.IsActive = true
	timer.IsPaused = false
	timer.StartTimestamp = nowMillis
	timer.PauseTimestamp = 0
	timer.TotalPausedDuration = 0
	timer.RemainingSeconds = timer.TotalSeconds
	timer.LastStartedAt = &now

	if err := s.persist(ctx, timer); err != nil {
		return nil, err
	}

	if s.effects != nil {
		s.effects.CancelCompletion(id)
		s.effects.ClearCompleted(id)
	}

	session := sqlite.TimerSession{
		ID:        uuid.New().String(),
		TimerID:   id,
		StartedAt: now,
	}
	if err := s.repo.CreateSession(ctx, &session); err != nil {
		// The countdown is already running; session history is best effort.
		logging.Errorf("open session for timer %s: %v\n", id, err)
	}

	s.publisher.emit(ChangeEvent{Type: ChangeStarted, TimerID: id, Timer: timer, At: now})
	return timer, nil
}

// TogglePause pauses a running timer or resumes a paused one. Pausing freezes
// the stored remaining value; resuming folds the paused interval into the
// accumulated pause duration so the derived remaining picks up where the
// pause left off.
func (s *timerService) TogglePause(ctx context.Context, id string) (*domain.Timer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	timer, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if !timer.IsActive {
		return nil, errors.NewInvalidInputError("id", id, "timer is not running")
	}

	now := s.clock.Now()
	nowMillis := s.clock.NowMillis()

	var change ChangeType
	if timer.IsPaused {
		pausedFor := int((nowMillis - timer.PauseTimestamp) / 1000)
		timer.TotalPausedDuration += pausedFor
		timer.PauseTimestamp = 0
		timer.IsPaused = false
		change = ChangeResumed
	} else {
		timer.RemainingSeconds = timer.Remaining(nowMillis)
		timer.IsPaused = true
		timer.PauseTimestamp = nowMillis
		timer.LastPausedAt = &now
		change = ChangePaused
	}

	if err := s.persist(ctx, timer); err != nil {
		return nil, err
	}

	s.publisher.emit(ChangeEvent{Type: change, TimerID: id, Timer: timer, At: now})
	return timer, nil
}

// StopTimer halts the countdown, freezing the remaining value where it stands.
// Stop does not restore the full duration; that is what reset is for.
func (s *timerService) StopTimer(ctx context.Context, id string) (*domain.Timer, error) {
	return s.halt(ctx, id, false)
}

// ResetTimer halts the countdown and restores the remaining value to the full
// configured duration.
func (s *timerService) ResetTimer(ctx context.Context, id string) (*domain.Timer, error) {
	return s.halt(ctx, id, true)
}

func (s *timerService) halt(ctx context.Context, id string, restore bool) (*domain.Timer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	timer, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	nowMillis := s.clock.NowMillis()

	wasActive := timer.IsActive
	remaining := timer.Remaining(nowMillis)
	timer.ClearRunState()
	if restore {
		timer.RemainingSeconds = timer.TotalSeconds
	} else {
		timer.RemainingSeconds = remaining
	}

	if err := s.persist(ctx, timer); err != nil {
		return nil, err
	}

	if s.effects != nil {
		s.effects.CancelCompletion(id)
		s.effects.ClearCompleted(id)
	}

	if wasActive {
		elapsed := timer.TotalSeconds - remaining
		if elapsed < 0 {
			elapsed = 0
		}
		if err := s.repo.CloseSession(ctx, id, now, elapsed, false); err != nil {
			logging.Errorf("close session for timer %s: %v\n", id, err)
		}
	}

	change := ChangeStopped
	if restore {
		change = ChangeReset
	}
	s.publisher.emit(ChangeEvent{Type: change, TimerID: id, Timer: timer, At: now})
	return timer, nil
}

// EditTimer applies user edits. Name, sound, appearance and mode changes take
// effect immediately. A duration change on an idle timer also resets the
// remaining value; on a running or paused timer the start timestamp is
// rebased so the in-flight remaining is undisturbed and the new duration only
// fully applies on the next start.
func (s *timerService) EditTimer(ctx context.Context, id string, edit TimerEdit) (*domain.Timer, error) {
	taskName, err := s.validator.GetValidTaskName(edit.TaskName)
	if err != nil {
		return nil, err
	}
	if err := s.validator.ValidateDuration(edit.Hours, edit.Minutes, edit.Seconds); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateRepeat(edit.IsRepeating, edit.RepeatInterval); err != nil {
		return nil, err
	}
	if err := s.validator.ValidateAppearance(edit.PrimaryColor, edit.SecondaryColor, edit.FontFamily, edit.FontSize); err != nil {
		return nil, err
	}
	if edit.IsRepeating && edit.IsNegative {
		return nil, errors.NewInvalidInputError("isNegative", edit.IsNegative, "repeat and overtime modes are mutually exclusive")
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	timer, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	now := s.clock.Now()
	nowMillis := s.clock.NowMillis()
	remaining := timer.Remaining(nowMillis)

	timer.TaskName = taskName
	timer.SoundID = edit.SoundID
	timer.SoundURL = edit.SoundURL
	timer.SoundName = edit.SoundName
	if edit.PrimaryColor != "" {
		timer.PrimaryColor = edit.PrimaryColor
	}
	if edit.SecondaryColor != "" {
		timer.SecondaryColor = edit.SecondaryColor
	}
	if edit.FontFamily != "" {
		timer.FontFamily = edit.FontFamily
	}
	if edit.FontSize != "" {
		timer.FontSize = edit.FontSize
	}
	timer.SetNegative(edit.IsNegative)
	if edit.IsRepeating {
		timer.SetRepeating(true, edit.RepeatInterval)
	} else {
		timer.SetRepeating(false, 0)
	}

	newTotal := domain.TotalSeconds(edit.Hours, edit.Minutes, edit.Seconds)
	if newTotal != timer.TotalSeconds {
		timer.SetDuration(edit.Hours, edit.Minutes, edit.Seconds)
		if timer.IsActive {
			// Rebase the start instant so the derived remaining is
			// exactly what it was before the edit.
			timer.StartTimestamp = nowMillis - int64(newTotal-remaining)*1000
			timer.TotalPausedDuration = 0
			if timer.IsPaused {
				timer.PauseTimestamp = nowMillis
			}
			timer.RemainingSeconds = remaining
		} else {
			timer.RemainingSeconds = newTotal
		}
	}

	if err := s.persist(ctx, timer); err != nil {
		return nil, err
	}

	s.publisher.emit(ChangeEvent{Type: ChangeUpdated, TimerID: id, Timer: timer, At: now})
	return timer, nil
}

// DeleteTimer removes a timer and its session history. Any pending completion
// side effects are cancelled once the delete has been persisted.
func (s *timerService) DeleteTimer(ctx context.Context, id string) error {
	if err := s.validator.ValidateTimerID(id); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.repo.DeleteTimer(ctx, id); err != nil {
		return err
	}
	if s.effects != nil {
		s.effects.CancelCompletion(id)
	}

	s.publisher.emit(ChangeEvent{Type: ChangeDeleted, TimerID: id, At: s.clock.Now()})
	return nil
}

// Reorder persists a new display order. The given IDs are assigned positions
// 1..n in one transaction.
func (s *timerService) Reorder(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	orders := make([]sqlite.DisplayOrder, len(ids))
	for i, id := range ids {
		if err := s.validator.ValidateTimerID(id); err != nil {
			return err
		}
		orders[i] = sqlite.DisplayOrder{ID: id, Order: i + 1}
	}

	if err := s.repo.UpdateDisplayOrder(ctx, orders); err != nil {
		return err
	}

	s.publisher.emit(ChangeEvent{Type: ChangeReordered, At: s.clock.Now()})
	return nil
}

// ToggleMute flips the per-timer mute flag. The mute state is consulted at
// playback time, so muting a timer before it completes suppresses its audio.
func (s *timerService) ToggleMute(ctx context.Context, id string) (*domain.Timer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	timer, err := s.load(ctx, id)
	if err != nil {
		return nil, err
	}

	timer.IsMuted = !timer.IsMuted
	if err := s.persist(ctx, timer); err != nil {
		return nil, err
	}

	s.publisher.emit(ChangeEvent{Type: ChangeMuteToggled, TimerID: id, Timer: timer, At: s.clock.Now()})
	return timer, nil
}

// ToggleGlobalMute flips the application-wide mute setting. Turning it on
// also silences any audio already playing.
func (s *timerService) ToggleGlobalMute(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	muted, err := s.globalMute(ctx)
	if err != nil {
		return false, err
	}

	muted = !muted
	if err := s.repo.SetSetting(ctx, SettingGlobalMute, boolSetting(muted)); err != nil {
		return false, err
	}
	if muted && s.effects != nil {
		s.effects.StopAllAudio()
	}

	s.publisher.emit(ChangeEvent{Type: ChangeGlobalMute, GlobalMute: muted, At: s.clock.Now()})
	return muted, nil
}

// IsGlobalMuted reports the application-wide mute setting.
func (s *timerService) IsGlobalMuted(ctx context.Context) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.globalMute(ctx)
}

func (s *timerService) globalMute(ctx context.Context) (bool, error) {
	value, err := s.repo.GetSetting(ctx, SettingGlobalMute)
	if err != nil {
		if errors.IsErrorType(err, errors.ErrorTypeNotFound) {
			return false, nil
		}
		return false, err
	}
	return value == "true", nil
}

func (s *timerService) load(ctx context.Context, id string) (*domain.Timer, error) {
	if err := s.validator.ValidateTimerID(id); err != nil {
		return nil, err
	}
	dbTimer, err := s.repo.GetTimer(ctx, id)
	if err != nil {
		return nil, err
	}
	timer := s.mapper.Timer.FromDatabase(*dbTimer)
	return &timer, nil
}

func (s *timerService) persist(ctx context.Context, timer *domain.Timer) error {
	timer.UpdatedAt = s.clock.Now()
	dbTimer := s.mapper.Timer.ToDatabase(*timer)
	return s.repo.UpdateTimer(ctx, &dbTimer)
}

func defaultIfEmpty(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}

func boolSetting(b bool) string {
	if b {
		return "true"
	}
	return "false"
}
