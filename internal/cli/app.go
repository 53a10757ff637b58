package cli

import (
	"github.com/askk-pro/karyayana/internal/clock"
	"github.com/askk-pro/karyayana/internal/config"
	"github.com/askk-pro/karyayana/internal/repository/sqlite"
	"github.com/askk-pro/karyayana/internal/services"
)

// App bundles the wired services the command handlers operate on.
type App struct {
	config *config.Config
	repo   sqlite.Repository
	clock  clock.Clock
	timers services.TimerService
	sounds services.SoundService
	errors *ErrorHandler
}

// NewApp creates a CLI application instance backed by the configured database.
func NewApp(cfg *config.Config) (*App, error) {
	repo, err := config.CreateRepository(cfg)
	if err != nil {
		return nil, err
	}
	return newApp(cfg, repo), nil
}

// NewAppWithRepository creates a CLI application instance on an existing
// repository. Used by tests with an in-memory database.
func NewAppWithRepository(cfg *config.Config, repo sqlite.Repository) *App {
	return newApp(cfg, repo)
}

func newApp(cfg *config.Config, repo sqlite.Repository) *App {
	clk := clock.System()
	return &App{
		config: cfg,
		repo:   repo,
		clock:  clk,
		timers: services.NewTimerService(repo, clk),
		sounds: services.NewSoundService(repo),
		errors: NewErrorHandler(),
	}
}

// Close releases the application's resources.
func (a *App) Close() error {
	a.timers.Close()
	return a.repo.Close()
}
