package notify

import (
	"github.com/gen2brain/beeep"
)

// BeeepNotifier delivers OS notifications through the desktop notification
// daemon. The platform APIs it wraps expose neither click callbacks nor
// programmatic dismissal, so Show returns a nil handle and the click and
// close hooks stay idle.
type BeeepNotifier struct {
	appIcon string
}

// NewBeeepNotifier creates a desktop notifier. appIcon may be empty.
func NewBeeepNotifier(appIcon string) *BeeepNotifier {
	return &BeeepNotifier{appIcon: appIcon}
}

// Show implements Notifier.
func (n *BeeepNotifier) Show(notification Notification) (Handle, error) {
	if err := beeep.Notify(notification.Title, notification.Body, n.appIcon); err != nil {
		return nil, err
	}
	return nil, nil
}

// BeepPlayer sounds the system alert tone for completions. It cannot decode
// the timer's configured sound file, so every completion plays the same
// short beep and Stop has nothing to silence.
type BeepPlayer struct{}

// Play implements Player.
func (BeepPlayer) Play(timerID, url string, onEnded func()) error {
	if err := beeep.Beep(beeep.DefaultFreq, beeep.DefaultDuration); err != nil {
		return err
	}
	if onEnded != nil {
		onEnded()
	}
	return nil
}

// Stop implements Player.
func (BeepPlayer) Stop(timerID string) {}

// StopAll implements Player.
func (BeepPlayer) StopAll() {}
