package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/askk-pro/karyayana/internal/config"
)

// RootCommand represents the base command when called without any subcommands
type RootCommand struct {
	cmd    *cobra.Command
	config *config.Config
	app    *App
}

// NewRootCommand creates the root cobra command with global flags
func NewRootCommand(cfg *config.Config) *RootCommand {
	root := &RootCommand{
		config: cfg,
	}

	root.cmd = &cobra.Command{
		Use:   "ky",
		Short: "Desktop countdown timers with repeat and overtime modes",
		Long: `KaryaYana (ky) keeps multiple named countdown timers with completion
sounds and notifications. Remaining time is derived from wall-clock
timestamps, so timers stay accurate across restarts and suspends.

EXAMPLES:
  ky run                                   # Run the tray surface and completion monitor
  ky create "Pomodoro" -m 25               # Create a 25 minute timer
  ky create --json timer.json              # Create a timer from a JSON document
  ky start pomodoro                        # Start by name, ID or ID prefix
  ky pause pomodoro                        # Pause, or resume when paused
  ky stop pomodoro                         # Stop, keeping the remaining time
  ky reset pomodoro                        # Stop and restore the full duration
  ky list                                  # List timers in display order
  ky mute pomodoro                         # Toggle one timer's sound
  ky mute --global                         # Toggle all sounds
  ky sessions pomodoro                     # Show a timer's run history

CONFIGURATION:
  Configuration follows this priority order: command-line flags > environment variables > config file > defaults

  Database Configuration:
    KY_DB_DIR                              Database directory (default: ~/.karyayana)
    KY_DB_FILENAME                         Database filename (default: karyayana.db)

  Monitor Configuration:
    KY_MONITOR_SCAN_INTERVAL               Completion scan cadence (default: 1s)

  Notification Configuration:
    KY_NOTIFICATIONS_ENABLED               Desktop notifications (default: true)
    KY_AUDIO_ENABLED                       Completion audio (default: true)

  Application Configuration:
    KY_APP_TIMEOUT                         Command timeout (default: 30s)
    KY_APP_VERBOSE                         Enable verbose output (default: false)

  A YAML config file at ~/.karyayana/config.yaml is applied before the
  environment.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return root.getConfigFromFlags()
		},
	}

	root.addGlobalFlags()
	root.addSubcommands()

	return root
}

// Execute runs the root command
func (r *RootCommand) Execute() error {
	return r.cmd.Execute()
}

// Close releases the lazily created application resources
func (r *RootCommand) Close() error {
	if r.app == nil {
		return nil
	}
	return r.app.Close()
}

// getApp creates the application on first use, after flag overrides have been
// applied to the configuration.
func (r *RootCommand) getApp() (*App, error) {
	if r.app != nil {
		return r.app, nil
	}
	app, err := NewApp(r.config)
	if err != nil {
		return nil, err
	}
	r.app = app
	return app, nil
}

// addGlobalFlags adds global configuration flags
func (r *RootCommand) addGlobalFlags() {
	flags := r.cmd.PersistentFlags()

	flags.String("db-dir", "", "Database directory (overrides KY_DB_DIR)")
	flags.String("db-filename", "", "Database filename (overrides KY_DB_FILENAME)")
	flags.Duration("scan-interval", 0, "Completion scan cadence (overrides KY_MONITOR_SCAN_INTERVAL)")
	flags.Duration("app-timeout", 0, "Command timeout (overrides KY_APP_TIMEOUT)")
	flags.Bool("verbose", false, "Enable verbose output (overrides KY_APP_VERBOSE)")
}

// addSubcommands adds all CLI subcommands to the root command
func (r *RootCommand) addSubcommands() {
	runCmd := &cobra.Command{
		Use:   "run",
		Short: "Run the completion monitor and tray surface",
		Long:  "Run the long-lived desktop surface: the one second completion scan, desktop notifications and the system tray countdown title.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.getApp()
			if err != nil {
				return err
			}
			return NewRunCommand(app).Execute(context.Background())
		},
	}

	var createOpts CreateOptions
	createCmd := &cobra.Command{
		Use:   "create [task name]",
		Short: "Create a new timer",
		Long: `Create a new countdown timer. The duration is given with the
--hours, --minutes and --seconds flags and must be at least one second.

A repeating timer (--repeat) restarts itself after the given number of
seconds once it completes. An overtime timer (--negative) keeps counting
below zero instead of completing. The two modes are mutually exclusive.

With --json, the timer is read from a JSON document instead (use "-" for
stdin) and all other flags are ignored.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.getApp()
			if err != nil {
				return err
			}
			taskName := ""
			if len(args) > 0 {
				taskName = args[0]
			}
			if taskName == "" && createOpts.JSONFile == "" {
				return fmt.Errorf("task name or --json required")
			}
			ctx, cancel := r.commandContext()
			defer cancel()
			return NewCreateCommand(app).Execute(ctx, taskName, createOpts)
		},
	}
	createFlags := createCmd.Flags()
	createFlags.IntVarP(&createOpts.Hours, "hours", "H", 0, "Duration hours")
	createFlags.IntVarP(&createOpts.Minutes, "minutes", "m", 0, "Duration minutes")
	createFlags.IntVarP(&createOpts.Seconds, "seconds", "s", 0, "Duration seconds")
	createFlags.StringVar(&createOpts.SoundURL, "sound-url", "", "Completion sound URL")
	createFlags.StringVar(&createOpts.SoundName, "sound-name", "", "Completion sound display name")
	createFlags.IntVar(&createOpts.RepeatInterval, "repeat", 0, "Restart automatically after this many seconds")
	createFlags.BoolVar(&createOpts.Negative, "negative", false, "Count below zero instead of completing")
	createFlags.StringVar(&createOpts.PrimaryColor, "primary-color", "", "Primary display color (#rrggbb)")
	createFlags.StringVar(&createOpts.SecondaryColor, "secondary-color", "", "Secondary display color (#rrggbb)")
	createFlags.StringVar(&createOpts.FontFamily, "font-family", "", "Display font family (mono, sans, serif)")
	createFlags.StringVar(&createOpts.FontSize, "font-size", "", "Display font size (text-lg .. text-4xl)")
	createFlags.StringVar(&createOpts.JSONFile, "json", "", "Create from a JSON document (\"-\" reads stdin)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List timers in display order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.getApp()
			if err != nil {
				return err
			}
			ctx, cancel := r.commandContext()
			defer cancel()
			return NewListCommand(app).Execute(ctx)
		},
	}

	startCmd := &cobra.Command{
		Use:   "start [timer]",
		Short: "Start a timer",
		Long:  "Start a fresh countdown for the timer, referenced by ID, ID prefix or task name.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.getApp()
			if err != nil {
				return err
			}
			ctx, cancel := r.commandContext()
			defer cancel()
			return NewLifecycleCommand(app).Start(ctx, args[0])
		},
	}

	pauseCmd := &cobra.Command{
		Use:   "pause [timer]",
		Short: "Pause or resume a running timer",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.getApp()
			if err != nil {
				return err
			}
			ctx, cancel := r.commandContext()
			defer cancel()
			return NewLifecycleCommand(app).Pause(ctx, args[0])
		},
	}

	stopCmd := &cobra.Command{
		Use:   "stop [timer]",
		Short: "Stop a timer, keeping the remaining time",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.getApp()
			if err != nil {
				return err
			}
			ctx, cancel := r.commandContext()
			defer cancel()
			return NewLifecycleCommand(app).Stop(ctx, args[0])
		},
	}

	resetCmd := &cobra.Command{
		Use:   "reset [timer]",
		Short: "Stop a timer and restore its full duration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.getApp()
			if err != nil {
				return err
			}
			ctx, cancel := r.commandContext()
			defer cancel()
			return NewLifecycleCommand(app).Reset(ctx, args[0])
		},
	}

	var editOpts EditOptions
	var editTaskName string
	var editHours, editMinutes, editSeconds, editRepeat int
	var editNegative bool
	var editSoundURL, editSoundName, editPrimary, editSecondary, editFontFamily, editFontSize string
	editCmd := &cobra.Command{
		Use:   "edit [timer]",
		Short: "Edit a timer's configuration",
		Long: `Edit a timer. Only the given flags change; everything else keeps its
current value. Changing the duration of a running timer does not disturb
the in-flight countdown; the new duration applies in full on the next
start.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.getApp()
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("name") {
				editOpts.TaskName = &editTaskName
			}
			if flags.Changed("hours") {
				editOpts.Hours = &editHours
			}
			if flags.Changed("minutes") {
				editOpts.Minutes = &editMinutes
			}
			if flags.Changed("seconds") {
				editOpts.Seconds = &editSeconds
			}
			if flags.Changed("repeat") {
				editOpts.RepeatInterval = &editRepeat
			}
			if flags.Changed("negative") {
				editOpts.Negative = &editNegative
			}
			if flags.Changed("sound-url") {
				editOpts.SoundURL = &editSoundURL
			}
			if flags.Changed("sound-name") {
				editOpts.SoundName = &editSoundName
			}
			if flags.Changed("primary-color") {
				editOpts.PrimaryColor = &editPrimary
			}
			if flags.Changed("secondary-color") {
				editOpts.SecondaryColor = &editSecondary
			}
			if flags.Changed("font-family") {
				editOpts.FontFamily = &editFontFamily
			}
			if flags.Changed("font-size") {
				editOpts.FontSize = &editFontSize
			}
			ctx, cancel := r.commandContext()
			defer cancel()
			return NewEditCommand(app).Execute(ctx, args[0], editOpts)
		},
	}
	editFlags := editCmd.Flags()
	editFlags.StringVar(&editTaskName, "name", "", "New task name")
	editFlags.IntVarP(&editHours, "hours", "H", 0, "New duration hours")
	editFlags.IntVarP(&editMinutes, "minutes", "m", 0, "New duration minutes")
	editFlags.IntVarP(&editSeconds, "seconds", "s", 0, "New duration seconds")
	editFlags.IntVar(&editRepeat, "repeat", 0, "Restart automatically after this many seconds (0 disables)")
	editFlags.BoolVar(&editNegative, "negative", false, "Count below zero instead of completing")
	editFlags.StringVar(&editSoundURL, "sound-url", "", "Completion sound URL")
	editFlags.StringVar(&editSoundName, "sound-name", "", "Completion sound display name")
	editFlags.StringVar(&editPrimary, "primary-color", "", "Primary display color (#rrggbb)")
	editFlags.StringVar(&editSecondary, "secondary-color", "", "Secondary display color (#rrggbb)")
	editFlags.StringVar(&editFontFamily, "font-family", "", "Display font family (mono, sans, serif)")
	editFlags.StringVar(&editFontSize, "font-size", "", "Display font size (text-lg .. text-4xl)")

	deleteCmd := &cobra.Command{
		Use:   "delete [timer]",
		Short: "Delete a timer and its session history",
		Long:  "Delete a timer and all of its recorded sessions. This operation cannot be undone.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.getApp()
			if err != nil {
				return err
			}
			ctx, cancel := r.commandContext()
			defer cancel()
			return NewDeleteCommand(app).Execute(ctx, args[0])
		},
	}

	reorderCmd := &cobra.Command{
		Use:   "reorder [timer]...",
		Short: "Change the display order of timers",
		Long:  "Assign display positions in the order the timers are listed. Timers not mentioned keep their relative order after the listed ones.",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.getApp()
			if err != nil {
				return err
			}
			ctx, cancel := r.commandContext()
			defer cancel()
			return NewReorderCommand(app).Execute(ctx, args)
		},
	}

	var muteGlobal bool
	muteCmd := &cobra.Command{
		Use:   "mute [timer]",
		Short: "Toggle a timer's sound, or all sounds with --global",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.getApp()
			if err != nil {
				return err
			}
			ctx, cancel := r.commandContext()
			defer cancel()
			if muteGlobal {
				return NewMuteCommand(app).ExecuteGlobal(ctx)
			}
			if len(args) == 0 {
				return fmt.Errorf("timer reference or --global required")
			}
			return NewMuteCommand(app).Execute(ctx, args[0])
		},
	}
	muteCmd.Flags().BoolVar(&muteGlobal, "global", false, "Toggle the application-wide mute")

	sessionsCmd := &cobra.Command{
		Use:   "sessions [timer]",
		Short: "Show a timer's run history",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.getApp()
			if err != nil {
				return err
			}
			ctx, cancel := r.commandContext()
			defer cancel()
			return NewSessionsCommand(app).Execute(ctx, args[0])
		},
	}

	soundsCmd := &cobra.Command{
		Use:   "sounds",
		Short: "List the available completion sounds",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := r.getApp()
			if err != nil {
				return err
			}
			ctx, cancel := r.commandContext()
			defer cancel()
			return NewSoundsCommand(app).Execute(ctx)
		},
	}

	r.cmd.AddCommand(
		runCmd,
		createCmd,
		listCmd,
		startCmd,
		pauseCmd,
		stopCmd,
		resetCmd,
		editCmd,
		deleteCmd,
		reorderCmd,
		muteCmd,
		sessionsCmd,
		soundsCmd,
	)
}

// commandContext returns a context bounded by the configured command timeout
func (r *RootCommand) commandContext() (context.Context, context.CancelFunc) {
	timeout := 30 * time.Second
	if r.config != nil {
		timeout = r.config.Application.Timeout
	}
	return context.WithTimeout(context.Background(), timeout)
}

// getConfigFromFlags updates the configuration with values from command-line flags
func (r *RootCommand) getConfigFromFlags() error {
	if r.config == nil {
		return fmt.Errorf("configuration not initialized")
	}

	flags := r.cmd.PersistentFlags()

	if dbDir, _ := flags.GetString("db-dir"); dbDir != "" {
		r.config.Database.Dir = dbDir
	}
	if dbFilename, _ := flags.GetString("db-filename"); dbFilename != "" {
		r.config.Database.Filename = dbFilename
	}
	if interval, _ := flags.GetDuration("scan-interval"); interval > 0 {
		r.config.Monitor.ScanInterval = interval
	}
	if timeout, _ := flags.GetDuration("app-timeout"); timeout > 0 {
		r.config.Application.Timeout = timeout
	}
	if verbose, _ := flags.GetBool("verbose"); verbose {
		r.config.Application.Verbose = verbose
	}

	return r.config.Validate()
}
