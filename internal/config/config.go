package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"
)

// Config holds all configuration options for the timer application
type Config struct {
	Database      DatabaseConfig      `yaml:"database"`
	Monitor       MonitorConfig       `yaml:"monitor"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Audio         AudioConfig         `yaml:"audio"`
	Application   ApplicationConfig   `yaml:"application"`
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Dir            string `yaml:"dir" env:"KY_DB_DIR"`
	Filename       string `yaml:"filename" env:"KY_DB_FILENAME"`
	DirPermissions uint32 `yaml:"dir_permissions" env:"KY_DB_DIR_PERMISSIONS"`
}

// MonitorConfig holds completion scan configuration
type MonitorConfig struct {
	ScanInterval time.Duration `yaml:"scan_interval" env:"KY_MONITOR_SCAN_INTERVAL"`
}

// NotificationsConfig holds OS notification configuration
type NotificationsConfig struct {
	Enabled bool `yaml:"enabled" env:"KY_NOTIFICATIONS_ENABLED"`
}

// AudioConfig holds completion audio configuration
type AudioConfig struct {
	Enabled bool `yaml:"enabled" env:"KY_AUDIO_ENABLED"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `yaml:"timeout" env:"KY_APP_TIMEOUT"`
	Verbose bool          `yaml:"verbose" env:"KY_APP_VERBOSE"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultDBDir := filepath.Join(homeDir, ".karyayana")

	return &Config{
		Database: DatabaseConfig{
			Dir:            defaultDBDir,
			Filename:       "karyayana.db",
			DirPermissions: 0755,
		},
		Monitor: MonitorConfig{
			ScanInterval: time.Second,
		},
		Notifications: NotificationsConfig{
			Enabled: true,
		},
		Audio: AudioConfig{
			Enabled: true,
		},
		Application: ApplicationConfig{
			Timeout: 30 * time.Second,
			Verbose: false,
		},
	}
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// GetConfigFilePath returns the path of the optional config file
func (c *Config) GetConfigFilePath() string {
	return filepath.Join(c.Database.Dir, "config.yaml")
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Database configuration
	if dir := os.Getenv("KY_DB_DIR"); dir != "" {
		c.Database.Dir = dir
	}
	if filename := os.Getenv("KY_DB_FILENAME"); filename != "" {
		c.Database.Filename = filename
	}
	if perms := os.Getenv("KY_DB_DIR_PERMISSIONS"); perms != "" {
		if p, err := strconv.ParseUint(perms, 8, 32); err == nil {
			c.Database.DirPermissions = uint32(p)
		}
	}

	// Monitor configuration
	if interval := os.Getenv("KY_MONITOR_SCAN_INTERVAL"); interval != "" {
		if d, err := time.ParseDuration(interval); err == nil {
			c.Monitor.ScanInterval = d
		}
	}

	// Notification and audio configuration
	if enabled := os.Getenv("KY_NOTIFICATIONS_ENABLED"); enabled != "" {
		if b, err := strconv.ParseBool(enabled); err == nil {
			c.Notifications.Enabled = b
		}
	}
	if enabled := os.Getenv("KY_AUDIO_ENABLED"); enabled != "" {
		if b, err := strconv.ParseBool(enabled); err == nil {
			c.Audio.Enabled = b
		}
	}

	// Application configuration
	if timeout := os.Getenv("KY_APP_TIMEOUT"); timeout != "" {
		if d, err := time.ParseDuration(timeout); err == nil {
			c.Application.Timeout = d
		}
	}
	if verbose := os.Getenv("KY_APP_VERBOSE"); verbose != "" {
		if b, err := strconv.ParseBool(verbose); err == nil {
			c.Application.Verbose = b
		}
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	if c.Database.Dir == "" {
		return &ConfigError{Field: "database.dir", Message: "database directory cannot be empty"}
	}
	if c.Database.Filename == "" {
		return &ConfigError{Field: "database.filename", Message: "database filename cannot be empty"}
	}
	if c.Monitor.ScanInterval <= 0 {
		return &ConfigError{Field: "monitor.scan_interval", Message: "scan interval must be positive"}
	}
	if c.Monitor.ScanInterval > time.Minute {
		return &ConfigError{Field: "monitor.scan_interval", Message: "scan interval above one minute makes completion detection too coarse"}
	}
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}
	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
