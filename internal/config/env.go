package config

import (
	"fmt"
	"os"
	"strconv"
)

// Environment variable names.
const (
	EnvDataDir       = "SIMPLYDONE_DATA_DIR"
	EnvStorageKey    = "SIMPLYDONE_STORAGE_KEY"
	EnvBackend       = "SIMPLYDONE_BACKEND"
	EnvDSN           = "SIMPLYDONE_DSN"
	EnvLogDir        = "SIMPLYDONE_LOG_DIR"
	EnvLogLevel      = "SIMPLYDONE_LOG_LEVEL"
	EnvLogFormat     = "SIMPLYDONE_LOG_FORMAT"
	EnvLogTimestamps = "SIMPLYDONE_LOG_TIMESTAMPS"
	EnvLogCaller     = "SIMPLYDONE_LOG_CALLER"
)

// loadFromEnv overrides config from environment variables.
func loadFromEnv(cfg *Config, sources map[string]ConfigSource) error {
	strs := []struct {
		env    string
		field  string
		target *string
	}{
		{EnvDataDir, "data_dir", &cfg.DataDir},
		{EnvStorageKey, "storage_key", &cfg.StorageKey},
		{EnvBackend, "backend", &cfg.Backend},
		{EnvDSN, "dsn", &cfg.DSN},
		{EnvLogDir, "log_dir", &cfg.LogDir},
		{EnvLogLevel, "log_level", &cfg.LogLevel},
		{EnvLogFormat, "log_format", &cfg.LogFormat},
	}
	for _, s := range strs {
		if v := os.Getenv(s.env); v != "" {
			*s.target = v
			sources[s.field] = SourceEnv
		}
	}

	bools := []struct {
		env    string
		field  string
		target *bool
	}{
		{EnvLogTimestamps, "log_timestamps", &cfg.LogTimestamps},
		{EnvLogCaller, "log_caller", &cfg.LogCaller},
	}
	for _, b := range bools {
		v := os.Getenv(b.env)
		if v == "" {
			continue
		}
		parsed, err := boolFromString(v)
		if err != nil {
			return fmt.Errorf("%s: %w", b.env, err)
		}
		*b.target = parsed
		sources[b.field] = SourceEnv
	}
	return nil
}

// boolFromString parses a boolean, also accepting yes/no and on/off.
func boolFromString(s string) (bool, error) {
	switch s {
	case "yes", "on", "YES", "ON", "Yes", "On":
		return true, nil
	case "no", "off", "NO", "OFF", "No", "Off":
		return false, nil
	}
	return strconv.ParseBool(s)
}
