package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/askk-pro/karyayana/internal/monitor"
)

// LifecycleCommand handles the start, pause, stop and reset commands
type LifecycleCommand struct {
	app *App
	out io.Writer
}

// NewLifecycleCommand creates a new lifecycle command handler
func NewLifecycleCommand(app *App) *LifecycleCommand {
	return &LifecycleCommand{app: app, out: os.Stdout}
}

// Start begins a countdown
func (c *LifecycleCommand) Start(ctx context.Context, ref string) error {
	timer, err := resolveTimer(ctx, c.app, ref)
	if err != nil {
		return c.app.errors.Handle("start timer", err)
	}

	started, err := c.app.timers.StartTimer(ctx, timer.ID)
	if err != nil {
		return c.app.errors.Handle("start timer", err)
	}

	fmt.Fprintf(c.out, "Started %s (%s)\n", started.TaskName, monitor.FormatCountdown(started.TotalSeconds))
	return nil
}

// Pause toggles a running timer between paused and running
func (c *LifecycleCommand) Pause(ctx context.Context, ref string) error {
	timer, err := resolveTimer(ctx, c.app, ref)
	if err != nil {
		return c.app.errors.Handle("pause timer", err)
	}

	toggled, err := c.app.timers.TogglePause(ctx, timer.ID)
	if err != nil {
		return c.app.errors.Handle("pause timer", err)
	}

	if toggled.IsPaused {
		fmt.Fprintf(c.out, "Paused %s at %s\n", toggled.TaskName, monitor.FormatCountdown(toggled.RemainingSeconds))
	} else {
		fmt.Fprintf(c.out, "Resumed %s at %s\n", toggled.TaskName, monitor.FormatCountdown(toggled.Remaining(c.app.clock.NowMillis())))
	}
	return nil
}

// Stop halts a timer, keeping the remaining time where it stands
func (c *LifecycleCommand) Stop(ctx context.Context, ref string) error {
	timer, err := resolveTimer(ctx, c.app, ref)
	if err != nil {
		return c.app.errors.Handle("stop timer", err)
	}

	stopped, err := c.app.timers.StopTimer(ctx, timer.ID)
	if err != nil {
		return c.app.errors.Handle("stop timer", err)
	}

	fmt.Fprintf(c.out, "Stopped %s at %s\n", stopped.TaskName, monitor.FormatCountdown(stopped.RemainingSeconds))
	return nil
}

// Reset halts a timer and restores its full duration
func (c *LifecycleCommand) Reset(ctx context.Context, ref string) error {
	timer, err := resolveTimer(ctx, c.app, ref)
	if err != nil {
		return c.app.errors.Handle("reset timer", err)
	}

	reset, err := c.app.timers.ResetTimer(ctx, timer.ID)
	if err != nil {
		return c.app.errors.Handle("reset timer", err)
	}

	fmt.Fprintf(c.out, "Reset %s to %s\n", reset.TaskName, monitor.FormatCountdown(reset.RemainingSeconds))
	return nil
}
