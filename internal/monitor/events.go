package monitor

import (
	"sync"
	"time"

	"github.com/askk-pro/karyayana/internal/domain"
)

// EventKind identifies what a monitor event describes.
type EventKind string

const (
	// EventStatus is emitted every scan with the current window title.
	EventStatus EventKind = "status"
	// EventCompleted is emitted once per completion of a running timer.
	EventCompleted EventKind = "completed"
	// EventRestarted is emitted when a repeating timer restarts itself.
	EventRestarted EventKind = "restarted"
)

// Event is published to monitor subscribers. Status events carry the title;
// completion and restart events carry the affected timer.
type Event struct {
	Kind  EventKind
	Title string
	Timer *domain.Timer
	At    time.Time
}

type eventHub struct {
	mu       sync.Mutex
	channels []chan Event
}

func (h *eventHub) subscribe(buffer int) <-chan Event {
	if buffer <= 0 {
		buffer = 1
	}
	ch := make(chan Event, buffer)
	h.mu.Lock()
	h.channels = append(h.channels, ch)
	h.mu.Unlock()
	return ch
}

func (h *eventHub) closeAll() {
	h.mu.Lock()
	channels := h.channels
	h.channels = nil
	h.mu.Unlock()

	for _, ch := range channels {
		close(ch)
	}
}

func (h *eventHub) emit(event Event) {
	h.mu.Lock()
	channels := append([]chan Event(nil), h.channels...)
	h.mu.Unlock()

	for _, ch := range channels {
		select {
		case ch <- event:
		default:
		}
	}
}
