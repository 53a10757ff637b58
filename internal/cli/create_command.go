package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/askk-pro/karyayana/internal/services"
)

// CreateOptions carries the flag values of the create command
type CreateOptions struct {
	Hours          int
	Minutes        int
	Seconds        int
	SoundURL       string
	SoundName      string
	RepeatInterval int
	Negative       bool
	PrimaryColor   string
	SecondaryColor string
	FontFamily     string
	FontSize       string
	JSONFile       string
}

// CreateCommand handles the create command
type CreateCommand struct {
	app *App
	out io.Writer
}

// NewCreateCommand creates a new create command handler
func NewCreateCommand(app *App) *CreateCommand {
	return &CreateCommand{app: app, out: os.Stdout}
}

// Execute runs the create command
func (c *CreateCommand) Execute(ctx context.Context, taskName string, opts CreateOptions) error {
	if opts.JSONFile != "" {
		return c.createFromJSON(ctx, opts.JSONFile)
	}

	config := services.TimerConfig{
		TaskName:       taskName,
		Hours:          opts.Hours,
		Minutes:        opts.Minutes,
		Seconds:        opts.Seconds,
		SoundURL:       opts.SoundURL,
		SoundName:      opts.SoundName,
		IsRepeating:    opts.RepeatInterval > 0,
		RepeatInterval: opts.RepeatInterval,
		IsNegative:     opts.Negative,
		PrimaryColor:   opts.PrimaryColor,
		SecondaryColor: opts.SecondaryColor,
		FontFamily:     opts.FontFamily,
		FontSize:       opts.FontSize,
	}

	timer, err := c.app.timers.CreateTimer(ctx, config)
	if err != nil {
		return c.app.errors.Handle("create timer", err)
	}

	fmt.Fprintf(c.out, "Created timer %s (%s, %02d:%02d:%02d)\n",
		timer.ID, timer.TaskName, timer.Hours, timer.Minutes, timer.Seconds)
	return nil
}

// createFromJSON creates a timer from a JSON document, read from the given
// file or from stdin when the path is "-".
func (c *CreateCommand) createFromJSON(ctx context.Context, path string) error {
	var data []byte
	var err error
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return fmt.Errorf("failed to read timer document: %w", err)
	}

	timer, err := c.app.timers.CreateTimerFromJSON(ctx, data)
	if err != nil {
		return c.app.errors.Handle("create timer", err)
	}

	fmt.Fprintf(c.out, "Created timer %s (%s, %02d:%02d:%02d)\n",
		timer.ID, timer.TaskName, timer.Hours, timer.Minutes, timer.Seconds)
	return nil
}
