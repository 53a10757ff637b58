package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/askk-pro/karyayana/internal/monitor"
)

// SessionsCommand handles the sessions command
type SessionsCommand struct {
	app *App
	out io.Writer
}

// NewSessionsCommand creates a new sessions command handler
func NewSessionsCommand(app *App) *SessionsCommand {
	return &SessionsCommand{app: app, out: os.Stdout}
}

// Execute lists the work session history of one timer
func (c *SessionsCommand) Execute(ctx context.Context, ref string) error {
	timer, err := resolveTimer(ctx, c.app, ref)
	if err != nil {
		return c.app.errors.Handle("list sessions", err)
	}

	sessions, err := c.app.repo.ListSessions(ctx, timer.ID)
	if err != nil {
		return c.app.errors.Handle("list sessions", err)
	}

	if len(sessions) == 0 {
		fmt.Fprintf(c.out, "No sessions recorded for %s\n", timer.TaskName)
		return nil
	}

	fmt.Fprintf(c.out, "Sessions for %s:\n", timer.TaskName)
	for _, session := range sessions {
		ended := "running"
		if session.EndedAt != nil {
			ended = session.EndedAt.Local().Format(time.TimeOnly)
		}
		status := "stopped"
		if session.Completed {
			status = "completed"
		} else if session.EndedAt == nil {
			status = "open"
		}
		fmt.Fprintf(c.out, "  %s - %s  %s (%s)\n",
			session.StartedAt.Local().Format("2006-01-02 15:04:05"),
			ended,
			monitor.FormatCountdown(session.DurationSeconds),
			status)
	}
	return nil
}
