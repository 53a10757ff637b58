package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/askk-pro/karyayana/internal/config"
	"github.com/askk-pro/karyayana/internal/logging"
	"github.com/askk-pro/karyayana/internal/monitor"
	"github.com/askk-pro/karyayana/internal/notify"
	"github.com/askk-pro/karyayana/internal/tray"
)

// RunCommand handles the run command: the long-lived desktop surface with
// the background completion monitor and the system tray.
type RunCommand struct {
	app *App
}

// NewRunCommand creates a new run command handler
func NewRunCommand(app *App) *RunCommand {
	return &RunCommand{app: app}
}

// completionNotifier picks the notification backend. Disabled notifications
// fall back to the debug log so completions stay traceable.
func completionNotifier(cfg *config.Config) notify.Notifier {
	if cfg.Notifications.Enabled {
		return notify.NewBeeepNotifier("")
	}
	return notify.LogNotifier{}
}

// completionPlayer picks the audio backend. Richer platform audio bindings
// plug in here; the beep player is the lowest common denominator.
func completionPlayer(cfg *config.Config) notify.Player {
	if cfg.Audio.Enabled {
		return notify.BeepPlayer{}
	}
	return notify.NopPlayer{}
}

// Execute blocks until the tray's Quit item or a termination signal.
func (c *RunCommand) Execute(ctx context.Context) error {
	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Compare the store's clock with the process clock at startup; a large
	// skew would show up as wrong remaining values on recovered timers.
	if storeMillis, err := c.app.repo.CurrentTimestamp(ctx); err == nil {
		logging.Debugf("store clock skew: %dms\n", c.app.clock.NowMillis()-storeMillis)
	}

	mon := monitor.New(c.app.repo, c.app.clock,
		completionNotifier(c.app.config), completionPlayer(c.app.config))
	mon.SetScanInterval(c.app.config.Monitor.ScanInterval)
	c.app.timers.SetCompletionEffects(mon)

	go mon.Run(ctx)

	muted, err := c.app.timers.IsGlobalMuted(ctx)
	if err != nil {
		return c.app.errors.Handle("read global mute", err)
	}

	var manager *tray.Manager
	manager = tray.New(mon.Subscribe(8), tray.Callbacks{
		OnToggleGlobalMute: func() {
			if m, err := c.app.timers.ToggleGlobalMute(context.Background()); err == nil {
				manager.SetMuted(m)
			} else {
				logging.Errorf("toggle global mute: %v\n", err)
			}
		},
		OnQuit: cancel,
	})
	manager.SetMuted(muted)

	go func() {
		<-ctx.Done()
		manager.Quit()
	}()

	manager.Run()
	return nil
}
