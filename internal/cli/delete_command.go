package cli

import (
	"context"
	"fmt"
	"io"
	"os"
)

// DeleteCommand handles the delete command
type DeleteCommand struct {
	app *App
	out io.Writer
}

// NewDeleteCommand creates a new delete command handler
func NewDeleteCommand(app *App) *DeleteCommand {
	return &DeleteCommand{app: app, out: os.Stdout}
}

// Execute runs the delete command
func (c *DeleteCommand) Execute(ctx context.Context, ref string) error {
	timer, err := resolveTimer(ctx, c.app, ref)
	if err != nil {
		return c.app.errors.Handle("delete timer", err)
	}

	if err := c.app.timers.DeleteTimer(ctx, timer.ID); err != nil {
		return c.app.errors.Handle("delete timer", err)
	}

	fmt.Fprintf(c.out, "Deleted %s\n", timer.TaskName)
	return nil
}
