package cli

import (
	"context"
	"strings"

	"github.com/askk-pro/karyayana/internal/domain"
	"github.com/askk-pro/karyayana/internal/errors"
)

// resolveTimer finds a timer by full ID, unique ID prefix, or exact task
// name. Command arguments accept any of the three.
func resolveTimer(ctx context.Context, app *App, ref string) (*domain.Timer, error) {
	timers, err := app.timers.ListTimers(ctx)
	if err != nil {
		return nil, err
	}

	var match *domain.Timer
	matches := 0
	for i := range timers {
		timer := &timers[i]
		if timer.ID == ref || timer.TaskName == ref {
			return timer, nil
		}
		if strings.HasPrefix(timer.ID, ref) {
			match = timer
			matches++
		}
	}

	switch matches {
	case 1:
		return match, nil
	case 0:
		return nil, errors.NewNotFoundError("timer", ref)
	default:
		return nil, errors.NewInvalidInputError("timer", ref, "ambiguous timer reference, use a longer ID prefix")
	}
}
