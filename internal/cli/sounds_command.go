package cli

import (
	"context"
	"fmt"
	"io"
	"os"
)

// SoundsCommand handles the sounds command
type SoundsCommand struct {
	app *App
	out io.Writer
}

// NewSoundsCommand creates a new sounds command handler
func NewSoundsCommand(app *App) *SoundsCommand {
	return &SoundsCommand{app: app, out: os.Stdout}
}

// Execute lists the available completion sounds
func (c *SoundsCommand) Execute(ctx context.Context) error {
	sounds, err := c.app.sounds.ListSounds(ctx)
	if err != nil {
		return c.app.errors.Handle("list sounds", err)
	}

	if len(sounds) == 0 {
		fmt.Fprintln(c.out, "No sounds in the catalog")
		return nil
	}

	for _, sound := range sounds {
		fmt.Fprintf(c.out, "%s  %s (%.1fs)  %s\n", shortID(sound.ID), sound.Name, sound.Duration, sound.URL)
	}
	return nil
}
