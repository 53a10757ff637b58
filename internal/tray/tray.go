// Package tray renders the system tray surface: the live countdown title for
// the soonest-to-finish timer and a small control menu.
package tray

import (
	"fyne.io/systray"

	"github.com/askk-pro/karyayana/internal/monitor"
)

// Callbacks defines tray action handlers.
type Callbacks struct {
	OnToggleGlobalMute func()
	OnQuit             func()
}

// Manager handles system tray state. It is a passive consumer of monitor
// events; all timer mutations go through the lifecycle controller via the
// callbacks.
type Manager struct {
	events    <-chan monitor.Event
	callbacks Callbacks

	statusItem *systray.MenuItem
	muteItem   *systray.MenuItem
	quitItem   *systray.MenuItem
	muted      bool
}

// New creates a tray manager fed by the given monitor event stream.
func New(events <-chan monitor.Event, callbacks Callbacks) *Manager {
	return &Manager{
		events:    events,
		callbacks: callbacks,
	}
}

// Run blocks driving the tray event loop until Quit is selected. Must run on
// the main goroutine on platforms that require it.
func (m *Manager) Run() {
	systray.Run(m.onReady, m.onExit)
}

// Quit tears the tray down and unblocks Run.
func (m *Manager) Quit() {
	systray.Quit()
}

// SetMuted updates the mute menu label to reflect the global mute state.
func (m *Manager) SetMuted(muted bool) {
	m.muted = muted
	if m.muteItem == nil {
		return
	}
	if muted {
		m.muteItem.SetTitle("Unmute all sounds")
	} else {
		m.muteItem.SetTitle("Mute all sounds")
	}
}

func (m *Manager) onReady() {
	systray.SetTitle(monitor.IdleTitle)
	systray.SetTooltip("Countdown timers")

	m.statusItem = systray.AddMenuItem("No timer running", "Soonest timer")
	m.statusItem.Disable()
	systray.AddSeparator()
	m.muteItem = systray.AddMenuItem("Mute all sounds", "Toggle global mute")
	m.quitItem = systray.AddMenuItem("Quit", "Exit the application")
	m.SetMuted(m.muted)

	go m.loop()
}

func (m *Manager) onExit() {
	if m.callbacks.OnQuit != nil {
		m.callbacks.OnQuit()
	}
}

func (m *Manager) loop() {
	for {
		select {
		case event, ok := <-m.events:
			if !ok {
				return
			}
			m.handle(event)
		case <-m.muteItem.ClickedCh:
			if m.callbacks.OnToggleGlobalMute != nil {
				m.callbacks.OnToggleGlobalMute()
			}
		case <-m.quitItem.ClickedCh:
			systray.Quit()
			return
		}
	}
}

func (m *Manager) handle(event monitor.Event) {
	switch event.Kind {
	case monitor.EventStatus:
		systray.SetTitle(event.Title)
		if event.Title == monitor.IdleTitle {
			m.statusItem.SetTitle("No timer running")
		} else {
			m.statusItem.SetTitle(event.Title)
		}
	case monitor.EventCompleted:
		if event.Timer != nil {
			m.statusItem.SetTitle(event.Timer.TaskName + " finished")
		}
	}
}
