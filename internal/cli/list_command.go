package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/askk-pro/karyayana/internal/domain"
	"github.com/askk-pro/karyayana/internal/monitor"
)

// ListCommand handles the list command
type ListCommand struct {
	app *App
	out io.Writer
}

// NewListCommand creates a new list command handler
func NewListCommand(app *App) *ListCommand {
	return &ListCommand{app: app, out: os.Stdout}
}

// Execute runs the list command
func (c *ListCommand) Execute(ctx context.Context) error {
	timers, err := c.app.timers.ListTimers(ctx)
	if err != nil {
		return c.app.errors.Handle("list timers", err)
	}

	if len(timers) == 0 {
		fmt.Fprintln(c.out, "No timers yet. Create one with: ky create")
		return nil
	}

	nowMillis := c.app.clock.NowMillis()
	for _, timer := range timers {
		fmt.Fprintln(c.out, formatTimerLine(timer, nowMillis))
	}
	return nil
}

// formatTimerLine prints one line per timer:
// order. [state] remaining/total name (modes) id
func formatTimerLine(timer domain.Timer, nowMillis int64) string {
	state := timer.State(nowMillis)
	remaining := monitor.FormatCountdown(timer.Remaining(nowMillis))
	total := monitor.FormatCountdown(timer.TotalSeconds)

	var modes []string
	if timer.IsRepeating {
		modes = append(modes, fmt.Sprintf("repeats every %ds", timer.RepeatInterval))
	}
	if timer.IsNegative {
		modes = append(modes, "overtime")
	}
	if timer.IsMuted {
		modes = append(modes, "muted")
	}

	line := fmt.Sprintf("%2d. [%-9s] %s / %s  %s", timer.DisplayOrder, state, remaining, total, timer.TaskName)
	if len(modes) > 0 {
		line += " (" + strings.Join(modes, ", ") + ")"
	}
	return line + "  " + shortID(timer.ID)
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
