package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/askk-pro/karyayana/internal/services"
)

// EditOptions carries the flag values of the edit command. Unset flags keep
// the timer's current value.
type EditOptions struct {
	TaskName       *string
	Hours          *int
	Minutes        *int
	Seconds        *int
	SoundURL       *string
	SoundName      *string
	RepeatInterval *int
	Negative       *bool
	PrimaryColor   *string
	SecondaryColor *string
	FontFamily     *string
	FontSize       *string
}

// EditCommand handles the edit command
type EditCommand struct {
	app *App
	out io.Writer
}

// NewEditCommand creates a new edit command handler
func NewEditCommand(app *App) *EditCommand {
	return &EditCommand{app: app, out: os.Stdout}
}

// Execute runs the edit command, merging the provided flags over the timer's
// current configuration.
func (c *EditCommand) Execute(ctx context.Context, ref string, opts EditOptions) error {
	timer, err := resolveTimer(ctx, c.app, ref)
	if err != nil {
		return c.app.errors.Handle("edit timer", err)
	}

	edit := services.TimerEdit{
		TaskName:       timer.TaskName,
		Hours:          timer.Hours,
		Minutes:        timer.Minutes,
		Seconds:        timer.Seconds,
		SoundID:        timer.SoundID,
		SoundURL:       timer.SoundURL,
		SoundName:      timer.SoundName,
		IsRepeating:    timer.IsRepeating,
		RepeatInterval: timer.RepeatInterval,
		IsNegative:     timer.IsNegative,
		PrimaryColor:   timer.PrimaryColor,
		SecondaryColor: timer.SecondaryColor,
		FontFamily:     timer.FontFamily,
		FontSize:       timer.FontSize,
	}

	if opts.TaskName != nil {
		edit.TaskName = *opts.TaskName
	}
	if opts.Hours != nil {
		edit.Hours = *opts.Hours
	}
	if opts.Minutes != nil {
		edit.Minutes = *opts.Minutes
	}
	if opts.Seconds != nil {
		edit.Seconds = *opts.Seconds
	}
	if opts.SoundURL != nil {
		edit.SoundURL = *opts.SoundURL
	}
	if opts.SoundName != nil {
		edit.SoundName = *opts.SoundName
	}
	if opts.RepeatInterval != nil {
		edit.RepeatInterval = *opts.RepeatInterval
		edit.IsRepeating = *opts.RepeatInterval > 0
	}
	if opts.Negative != nil {
		edit.IsNegative = *opts.Negative
	}
	if opts.PrimaryColor != nil {
		edit.PrimaryColor = *opts.PrimaryColor
	}
	if opts.SecondaryColor != nil {
		edit.SecondaryColor = *opts.SecondaryColor
	}
	if opts.FontFamily != nil {
		edit.FontFamily = *opts.FontFamily
	}
	if opts.FontSize != nil {
		edit.FontSize = *opts.FontSize
	}

	updated, err := c.app.timers.EditTimer(ctx, timer.ID, edit)
	if err != nil {
		return c.app.errors.Handle("edit timer", err)
	}

	fmt.Fprintf(c.out, "Updated %s (%02d:%02d:%02d)\n", updated.TaskName, updated.Hours, updated.Minutes, updated.Seconds)
	if updated.IsActive && updated.TotalSeconds != timer.TotalSeconds {
		fmt.Fprintln(c.out, "The new duration applies in full on the next start.")
	}
	return nil
}
