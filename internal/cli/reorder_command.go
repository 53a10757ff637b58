package cli

import (
	"context"
	"fmt"
	"io"
	"os"
)

// ReorderCommand handles the reorder command
type ReorderCommand struct {
	app *App
	out io.Writer
}

// NewReorderCommand creates a new reorder command handler
func NewReorderCommand(app *App) *ReorderCommand {
	return &ReorderCommand{app: app, out: os.Stdout}
}

// Execute runs the reorder command. The given references are assigned display
// positions in the order they appear; timers not mentioned keep their
// relative order after the listed ones.
func (c *ReorderCommand) Execute(ctx context.Context, refs []string) error {
	timers, err := c.app.timers.ListTimers(ctx)
	if err != nil {
		return c.app.errors.Handle("reorder timers", err)
	}

	ids := make([]string, 0, len(timers))
	seen := make(map[string]bool, len(timers))
	for _, ref := range refs {
		timer, err := resolveTimer(ctx, c.app, ref)
		if err != nil {
			return c.app.errors.Handle("reorder timers", err)
		}
		if seen[timer.ID] {
			continue
		}
		ids = append(ids, timer.ID)
		seen[timer.ID] = true
	}
	for _, timer := range timers {
		if !seen[timer.ID] {
			ids = append(ids, timer.ID)
		}
	}

	if err := c.app.timers.Reorder(ctx, ids); err != nil {
		return c.app.errors.Handle("reorder timers", err)
	}

	fmt.Fprintf(c.out, "Reordered %d timers\n", len(ids))
	return nil
}
