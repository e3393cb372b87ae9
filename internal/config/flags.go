package config

import "github.com/spf13/pflag"

// Flag names bound by BindFlags.
const (
	FlagDataDir   = "data-dir"
	FlagKey       = "key"
	FlagBackend   = "backend"
	FlagDSN       = "dsn"
	FlagLogDir    = "log-dir"
	FlagLogLevel  = "log-level"
	FlagLogFormat = "log-format"
)

var flagFields = map[string]string{
	FlagDataDir:   "data_dir",
	FlagKey:       "storage_key",
	FlagBackend:   "backend",
	FlagDSN:       "dsn",
	FlagLogDir:    "log_dir",
	FlagLogLevel:  "log_level",
	FlagLogFormat: "log_format",
}

// BindFlags defines the configuration flags on fs. Only flags the user sets
// override lower-precedence sources.
func BindFlags(fs *pflag.FlagSet) {
	fs.String(FlagDataDir, "", "Data directory for the file and sqlite backends (default "+DefaultDataDir+")")
	fs.String(FlagKey, "", "Storage key holding the task list (default "+DefaultStorageKey+")")
	fs.String(FlagBackend, "", "Storage backend: file, sqlite, postgres, memory (default "+DefaultBackend+")")
	fs.String(FlagDSN, "", "Postgres connection string, or sqlite database path")
	fs.String(FlagLogDir, "", "Log directory (default "+DefaultLogDir+")")
	fs.String(FlagLogLevel, "", "Log level: debug, info, warn, error (default "+DefaultLogLevel+")")
	fs.String(FlagLogFormat, "", "Log format: text, json, logfmt (default "+DefaultLogFormat+")")
}

// applyFlags copies explicitly set flags into cfg.
func applyFlags(cfg *Config, fs *pflag.FlagSet, sources map[string]ConfigSource) error {
	if fs == nil {
		return nil
	}
	targets := map[string]*string{
		FlagDataDir:   &cfg.DataDir,
		FlagKey:       &cfg.StorageKey,
		FlagBackend:   &cfg.Backend,
		FlagDSN:       &cfg.DSN,
		FlagLogDir:    &cfg.LogDir,
		FlagLogLevel:  &cfg.LogLevel,
		FlagLogFormat: &cfg.LogFormat,
	}
	for name, target := range targets {
		if fs.Lookup(name) == nil || !fs.Changed(name) {
			continue
		}
		v, err := fs.GetString(name)
		if err != nil {
			return err
		}
		*target = v
		sources[flagFields[name]] = SourceFlag
	}
	return nil
}
