// Package notify defines the contracts for the OS notification and audio
// playback collaborators. The timer core depends only on these interfaces;
// platform bindings live outside of it.
package notify

import (
	"github.com/askk-pro/karyayana/internal/logging"
)

// Handle references a delivered notification so it can be cancelled later.
type Handle interface {
	// Cancel dismisses the notification if it is still visible.
	Cancel()
}

// Notification carries the content of a completion notification. The
// callbacks mirror the desktop behavior: clicking focuses the timer, closing
// the notification stops any still-playing completion audio.
type Notification struct {
	TimerID string
	Title   string
	Body    string
	OnClick func(timerID string)
	OnClose func(timerID string)
}

// Notifier shows OS-level notifications.
type Notifier interface {
	// Show delivers a completion notification and returns a cancellable
	// handle. Implementations on platforms without notification support
	// return (nil, nil); completion handling proceeds without it.
	Show(n Notification) (Handle, error)
}

// Player plays completion sounds. Playback is tracked per timer id so that
// stop/reset/mute can silence a specific timer's audio.
type Player interface {
	// Play starts playback of the sound at url for the given timer. onEnded
	// is invoked when playback finishes naturally.
	Play(timerID, url string, onEnded func()) error
	// Stop silences any playing audio for the given timer.
	Stop(timerID string)
	// StopAll silences every playing sound. Used by global mute.
	StopAll()
}

// LogNotifier is a headless Notifier that records deliveries in the debug log.
type LogNotifier struct{}

type logHandle struct {
	timerID string
}

func (h logHandle) Cancel() {
	logging.Debugf("notification cancelled: %s\n", h.timerID)
}

// Show implements Notifier.
func (LogNotifier) Show(n Notification) (Handle, error) {
	logging.Debugf("notification: %s - %s (%s)\n", n.Title, n.Body, n.TimerID)
	return logHandle{timerID: n.TimerID}, nil
}

// NopPlayer is a headless Player for environments without audio output.
type NopPlayer struct{}

// Play implements Player.
func (NopPlayer) Play(timerID, url string, onEnded func()) error {
	logging.Debugf("play sound %s for timer %s\n", url, timerID)
	if onEnded != nil {
		onEnded()
	}
	return nil
}

// Stop implements Player.
func (NopPlayer) Stop(timerID string) {}

// StopAll implements Player.
func (NopPlayer) StopAll() {}
