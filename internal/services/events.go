package services

import (
	"sync"
	"time"

	"github.com/askk-pro/karyayana/internal/domain"
)

// ChangeType identifies what kind of timer mutation an event describes.
type ChangeType string

const (
	ChangeCreated     ChangeType = "created"
	ChangeUpdated     ChangeType = "updated"
	ChangeStarted     ChangeType = "started"
	ChangePaused      ChangeType = "paused"
	ChangeResumed     ChangeType = "resumed"
	ChangeStopped     ChangeType = "stopped"
	ChangeReset       ChangeType = "reset"
	ChangeDeleted     ChangeType = "deleted"
	ChangeReordered   ChangeType = "reordered"
	ChangeCompleted   ChangeType = "completed"
	ChangeMuteToggled ChangeType = "mute_toggled"
	ChangeGlobalMute  ChangeType = "global_mute"
)

// ChangeEvent is published to subscribers after a mutation has been
// persisted. Display surfaces react to these instead of polling the store.
type ChangeEvent struct {
	Type       ChangeType
	TimerID    string
	Timer      *domain.Timer
	GlobalMute bool
	At         time.Time
}

// publisher fans ChangeEvents out to registered observer channels. Sends are
// non-blocking; a slow subscriber misses events rather than stalling the
// lifecycle controller.
type publisher struct {
	mu       sync.Mutex
	channels []chan ChangeEvent
}

// Subscribe registers a new observer channel.
func (p *publisher) Subscribe(buffer int) <-chan ChangeEvent {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan ChangeEvent, buffer)
	p.mu.Lock()
	p.channels = append(p.channels, ch)
	p.mu.Unlock()
	return ch
}

// CloseSubscribers closes all observer channels.
func (p *publisher) CloseSubscribers() {
	p.mu.Lock()
	channels := p.channels
	p.channels = nil
	p.mu.Unlock()

	for _, ch := range channels {
		close(ch)
	}
}

func (p *publisher) emit(event ChangeEvent) {
	p.mu.Lock()
	channels := append([]chan ChangeEvent(nil), p.channels...)
	p.mu.Unlock()

	for _, ch := range channels {
		select {
		case ch <- event:
		default:
		}
	}
}
