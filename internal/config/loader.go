package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Loader handles loading configuration from multiple sources
type Loader struct {
	config *Config
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{
		config: NewConfig(),
	}
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with the optional YAML config file
// 3. Override with environment variables
func (l *Loader) Load() (*Config, error) {
	if err := l.config.LoadFromFile(l.config.GetConfigFilePath()); err != nil {
		return nil, err
	}

	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// LoadFromFile overlays configuration from a YAML file. A missing file is not
// an error; the config file is optional.
func (c *Config) LoadFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return &ConfigError{Field: "file", Message: "read config file: " + err.Error()}
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return &ConfigError{Field: "file", Message: "parse config file: " + err.Error()}
	}
	return nil
}

// Durations are written in Go syntax ("1s", "500ms") in the config file.

// UnmarshalYAML implements yaml.Unmarshaler. Keys absent from the file keep
// their current values.
func (m *MonitorConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		ScanInterval string `yaml:"scan_interval"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	if raw.ScanInterval != "" {
		d, err := time.ParseDuration(raw.ScanInterval)
		if err != nil {
			return &ConfigError{Field: "monitor.scan_interval", Message: "parse duration: " + err.Error()}
		}
		m.ScanInterval = d
	}
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (m MonitorConfig) MarshalYAML() (interface{}, error) {
	return map[string]string{"scan_interval": m.ScanInterval.String()}, nil
}

// UnmarshalYAML implements yaml.Unmarshaler. Keys absent from the file keep
// their current values.
func (a *ApplicationConfig) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Timeout string `yaml:"timeout"`
		Verbose *bool  `yaml:"verbose"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}
	if raw.Timeout != "" {
		d, err := time.ParseDuration(raw.Timeout)
		if err != nil {
			return &ConfigError{Field: "application.timeout", Message: "parse duration: " + err.Error()}
		}
		a.Timeout = d
	}
	if raw.Verbose != nil {
		a.Verbose = *raw.Verbose
	}
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (a ApplicationConfig) MarshalYAML() (interface{}, error) {
	return map[string]interface{}{
		"timeout": a.Timeout.String(),
		"verbose": a.Verbose,
	}, nil
}

// Save writes the configuration to its YAML config file.
func (c *Config) Save() error {
	data, err := yaml.Marshal(c)
	if err != nil {
		return &ConfigError{Field: "file", Message: "marshal config: " + err.Error()}
	}
	if err := os.MkdirAll(c.Database.Dir, os.FileMode(c.Database.DirPermissions)); err != nil {
		return &ConfigError{Field: "database.dir", Message: "create config directory: " + err.Error()}
	}
	if err := os.WriteFile(c.GetConfigFilePath(), data, 0644); err != nil {
		return &ConfigError{Field: "file", Message: "write config file: " + err.Error()}
	}
	return nil
}
