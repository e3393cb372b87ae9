package config

import (
	"fmt"
	"strings"

	"github.com/nibzard/simplydone/internal/logging"
	"github.com/nibzard/simplydone/internal/persist"
	"github.com/nibzard/simplydone/internal/slot"
)

// ConfigSource represents where a configuration value came from.
type ConfigSource string

const (
	SourceDefault  ConfigSource = "default"
	SourceUserFile ConfigSource = "user file"
	SourceProjFile ConfigSource = "project file"
	SourceEnv      ConfigSource = "environment"
	SourceFlag     ConfigSource = "flag"
)

// ConfigWithSources holds configuration along with source information for each field.
type ConfigWithSources struct {
	Config  *Config
	Sources map[string]ConfigSource
	// Files lists the config files that were read, in load order.
	Files []string
}

// Default values.
const (
	DefaultDataDir       = "~/.simplydone"
	DefaultLogDir        = "~/.simplydone/logs"
	DefaultStorageKey    = persist.DefaultKey
	DefaultBackend       = slot.BackendFile
	DefaultLogLevel      = "info"
	DefaultLogFormat     = "text"
	DefaultLogTimestamps = true
)

// Config holds the full configuration for simplydone.
type Config struct {
	// Storage
	DataDir    string `toml:"data_dir"`
	StorageKey string `toml:"storage_key"`
	Backend    string `toml:"backend"`
	DSN        string `toml:"dsn"`

	// Logging
	LogDir        string `toml:"log_dir"`
	LogLevel      string `toml:"log_level"`
	LogFormat     string `toml:"log_format"`
	LogTimestamps bool   `toml:"log_timestamps"`
	LogCaller     bool   `toml:"log_caller"`
}

var (
	validLogLevels  = []string{"debug", "info", "warn", "error"}
	validLogFormats = []string{"text", "json", "logfmt"}
)

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if !slot.ValidBackend(c.Backend) {
		return fmt.Errorf("invalid backend %q, must be one of: %s", c.Backend, strings.Join(slot.Backends(), ", "))
	}
	if strings.TrimSpace(c.StorageKey) == "" {
		return fmt.Errorf("storage_key must not be empty")
	}
	if c.Backend == slot.BackendPostgres && c.DSN == "" {
		return fmt.Errorf("backend postgres requires dsn")
	}
	if c.Backend == slot.BackendFile && c.DataDir == "" {
		return fmt.Errorf("backend file requires data_dir")
	}
	if c.Backend == slot.BackendSQLite && c.DataDir == "" && c.DSN == "" {
		return fmt.Errorf("backend sqlite requires data_dir or dsn")
	}
	if !contains(validLogLevels, strings.ToLower(c.LogLevel)) {
		return fmt.Errorf("invalid log_level %q, must be one of: %s", c.LogLevel, strings.Join(validLogLevels, ", "))
	}
	if !contains(validLogFormats, strings.ToLower(c.LogFormat)) {
		return fmt.Errorf("invalid log_format %q, must be one of: %s", c.LogFormat, strings.Join(validLogFormats, ", "))
	}
	return nil
}

// SlotOptions returns the options for opening the storage slot.
func (c *Config) SlotOptions() slot.Options {
	return slot.Options{
		Backend: c.Backend,
		Dir:     c.DataDir,
		DSN:     c.DSN,
	}
}

// LoggingOptions returns the options for the run logger.
func (c *Config) LoggingOptions() logging.Options {
	opts := logging.DefaultOptions()
	opts.Level = c.LogLevel
	opts.Format = c.LogFormat
	opts.ReportTimestamp = c.LogTimestamps
	opts.ReportCaller = c.LogCaller
	return opts
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}
