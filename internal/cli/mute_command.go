package cli

import (
	"context"
	"fmt"
	"io"
	"os"
)

// MuteCommand handles the mute command
type MuteCommand struct {
	app *App
	out io.Writer
}

// NewMuteCommand creates a new mute command handler
func NewMuteCommand(app *App) *MuteCommand {
	return &MuteCommand{app: app, out: os.Stdout}
}

// Execute toggles the mute flag of one timer
func (c *MuteCommand) Execute(ctx context.Context, ref string) error {
	timer, err := resolveTimer(ctx, c.app, ref)
	if err != nil {
		return c.app.errors.Handle("mute timer", err)
	}

	toggled, err := c.app.timers.ToggleMute(ctx, timer.ID)
	if err != nil {
		return c.app.errors.Handle("mute timer", err)
	}

	if toggled.IsMuted {
		fmt.Fprintf(c.out, "Muted %s\n", toggled.TaskName)
	} else {
		fmt.Fprintf(c.out, "Unmuted %s\n", toggled.TaskName)
	}
	return nil
}

// ExecuteGlobal toggles the application-wide mute setting
func (c *MuteCommand) ExecuteGlobal(ctx context.Context) error {
	muted, err := c.app.timers.ToggleGlobalMute(ctx)
	if err != nil {
		return c.app.errors.Handle("toggle global mute", err)
	}

	if muted {
		fmt.Fprintln(c.out, "All sounds muted")
	} else {
		fmt.Fprintln(c.out, "All sounds unmuted")
	}
	return nil
}
