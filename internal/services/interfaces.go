package services

import (
	"context"

	"github.com/askk-pro/karyayana/internal/domain"
)

// TimerConfig carries the user-supplied fields for timer creation. The JSON
// tags match the timer export format, so JSON-authored timers unmarshal
// directly into it.
type TimerConfig struct {
	TaskName       string `json:"taskName"`
	Hours          int    `json:"hours"`
	Minutes        int    `json:"minutes"`
	Seconds        int    `json:"seconds"`
	SoundID        string `json:"soundId,omitempty"`
	SoundURL       string `json:"soundUrl,omitempty"`
	SoundName      string `json:"soundName,omitempty"`
	IsRepeating    bool   `json:"isRepeating,omitempty"`
	RepeatInterval int    `json:"repeatInterval,omitempty"`
	IsNegative     bool   `json:"isNegative,omitempty"`
	PrimaryColor   string `json:"primaryColor,omitempty"`
	SecondaryColor string `json:"secondaryColor,omitempty"`
	FontFamily     string `json:"fontFamily,omitempty"`
	FontSize       string `json:"fontSize,omitempty"`
}

// TimerEdit carries the fields of an edit operation. Name, sound, appearance
// and mode fields apply immediately; duration changes never disturb an
// in-flight countdown and only take full effect on the next start.
type TimerEdit struct {
	TaskName       string
	Hours          int
	Minutes        int
	Seconds        int
	SoundID        string
	SoundURL       string
	SoundName      string
	IsRepeating    bool
	RepeatInterval int
	IsNegative     bool
	PrimaryColor   string
	SecondaryColor string
	FontFamily     string
	FontSize       string
}

// CompletionEffects is the hook the background monitor registers with the
// lifecycle controller so lifecycle transitions can cancel pending completion
// side effects synchronously.
type CompletionEffects interface {
	// CancelCompletion cancels any scheduled repeat restart, outstanding
	// notification and in-flight completion audio for the timer.
	CancelCompletion(timerID string)
	// ClearCompleted re-arms completion detection for the timer.
	ClearCompleted(timerID string)
	// StopAllAudio silences all playing completion audio.
	StopAllAudio()
}

// TimerService is the timer lifecycle controller. Every mutation is persisted
// before the updated state is exposed; the relational store is the single
// source of truth.
type TimerService interface {
	// Creation
	CreateTimer(ctx context.Context, config TimerConfig) (*domain.Timer, error)
	CreateTimerFromJSON(ctx context.Context, data []byte) (*domain.Timer, error)

	// Reads
	GetTimer(ctx context.Context, id string) (*domain.Timer, error)
	ListTimers(ctx context.Context) ([]domain.Timer, error)

	// Lifecycle transitions
	StartTimer(ctx context.Context, id string) (*domain.Timer, error)
	TogglePause(ctx context.Context, id string) (*domain.Timer, error)
	StopTimer(ctx context.Context, id string) (*domain.Timer, error)
	ResetTimer(ctx context.Context, id string) (*domain.Timer, error)
	EditTimer(ctx context.Context, id string, edit TimerEdit) (*domain.Timer, error)
	DeleteTimer(ctx context.Context, id string) error
	Reorder(ctx context.Context, ids []string) error

	// Mute handling
	ToggleMute(ctx context.Context, id string) (*domain.Timer, error)
	ToggleGlobalMute(ctx context.Context) (bool, error)
	IsGlobalMuted(ctx context.Context) (bool, error)

	// Observer registration
	Subscribe(buffer int) <-chan ChangeEvent
	Close()

	// SetCompletionEffects registers the background monitor's cancellation
	// hook. Wired once at startup.
	SetCompletionEffects(effects CompletionEffects)
}

// SoundService exposes the read-only Sound contract the timer core needs.
type SoundService interface {
	GetSound(ctx context.Context, id string) (*domain.Sound, error)
	ListSounds(ctx context.Context) ([]domain.Sound, error)
}
