// Package config tests configuration loading.
package config

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/spf13/pflag"

	"github.com/nibzard/simplydone/internal/slot"
)

// isolate points every config location at fresh temp dirs and clears the
// environment so tests do not see the developer's real config.
func isolate(t *testing.T) (home, project string) {
	t.Helper()
	home = t.TempDir()
	project = t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, ".config"))
	t.Setenv("APPDATA", filepath.Join(home, "AppData"))
	for _, env := range []string{
		EnvDataDir, EnvStorageKey, EnvBackend, EnvDSN, EnvLogDir,
		EnvLogLevel, EnvLogFormat, EnvLogTimestamps, EnvLogCaller,
	} {
		t.Setenv(env, "")
	}
	chdir(t, project)
	return home, project
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestDefaults(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)

	if cfg.StorageKey != "todos" {
		t.Errorf("StorageKey: got %q, want todos", cfg.StorageKey)
	}
	if cfg.Backend != slot.BackendFile {
		t.Errorf("Backend: got %q, want file", cfg.Backend)
	}
	if cfg.DataDir != DefaultDataDir {
		t.Errorf("DataDir: got %q, want %q", cfg.DataDir, DefaultDataDir)
	}
	if !cfg.LogTimestamps {
		t.Error("LogTimestamps: got false, want true")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate: %v", err)
	}
}

func TestLoadDefaults(t *testing.T) {
	home, _ := isolate(t)

	cws, err := LoadWithSources(nil)
	if err != nil {
		t.Fatalf("LoadWithSources: %v", err)
	}
	cfg := cws.Config
	if want := filepath.Join(home, ".simplydone"); cfg.DataDir != want {
		t.Errorf("DataDir: got %q, want %q", cfg.DataDir, want)
	}
	if want := filepath.Join(home, ".simplydone", "logs"); cfg.LogDir != want {
		t.Errorf("LogDir: got %q, want %q", cfg.LogDir, want)
	}
	for _, field := range configFields() {
		if cws.Sources[field] != SourceDefault {
			t.Errorf("source of %s: got %q, want default", field, cws.Sources[field])
		}
	}
	if cws.ConfigFile() != "" {
		t.Errorf("ConfigFile: got %q, want none", cws.ConfigFile())
	}
}

func TestLoadPrecedence(t *testing.T) {
	home, _ := isolate(t)

	writeFile(t, filepath.Join(home, ".simplydone", "simplydone.toml"), `
storage_key = "user-key"
backend = "sqlite"
log_level = "warn"
log_caller = true
`)
	writeFile(t, "simplydone.toml", `
backend = "memory"
log_format = "json"
`)
	t.Setenv(EnvLogLevel, "debug")
	t.Setenv(EnvLogTimestamps, "off")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	BindFlags(fs)
	if err := fs.Parse([]string{"--key", "flag-key"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	cws, err := LoadWithSources(fs)
	if err != nil {
		t.Fatalf("LoadWithSources: %v", err)
	}
	cfg := cws.Config

	tests := []struct {
		field  string
		got    any
		want   any
		source ConfigSource
	}{
		{"storage_key", cfg.StorageKey, "flag-key", SourceFlag},
		{"backend", cfg.Backend, "memory", SourceProjFile},
		{"log_level", cfg.LogLevel, "debug", SourceEnv},
		{"log_format", cfg.LogFormat, "json", SourceProjFile},
		{"log_caller", cfg.LogCaller, true, SourceUserFile},
		{"log_timestamps", cfg.LogTimestamps, false, SourceEnv},
		{"dsn", cfg.DSN, "", SourceDefault},
	}
	for _, tt := range tests {
		t.Run(tt.field, func(t *testing.T) {
			if tt.got != tt.want {
				t.Errorf("value: got %v, want %v", tt.got, tt.want)
			}
			if cws.Sources[tt.field] != tt.source {
				t.Errorf("source: got %q, want %q", cws.Sources[tt.field], tt.source)
			}
		})
	}

	if len(cws.Files) != 2 || cws.ConfigFile() != "simplydone.toml" {
		t.Errorf("files: got %v", cws.Files)
	}
}

func TestLoadDotProjectFile(t *testing.T) {
	isolate(t)
	writeFile(t, ".simplydone.toml", `storage_key = "hidden"`)

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.StorageKey != "hidden" {
		t.Errorf("StorageKey: got %q, want hidden", cfg.StorageKey)
	}
}

func TestLoadXDGUserFile(t *testing.T) {
	if runtime.GOOS != "linux" {
		t.Skip("XDG lookup is linux/BSD only")
	}
	home, _ := isolate(t)
	writeFile(t, filepath.Join(home, ".config", "simplydone", "simplydone.toml"), `storage_key = "xdg"`)

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.StorageKey != "xdg" {
		t.Errorf("StorageKey: got %q, want xdg", cfg.StorageKey)
	}
}

func TestLoadConfigFileErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{"syntax", `backend = `, "loading project config file"},
		{"unknown key", "backend = \"file\"\ncolour = \"red\"", "unknown keys: colour"},
		{"wrong type", `log_caller = "maybe"`, "loading project config file"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			writeFile(t, "simplydone.toml", tt.content)
			_, err := Load(nil)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestLoadFromEnv(t *testing.T) {
	isolate(t)
	t.Setenv(EnvDataDir, "/tmp/sd-data")
	t.Setenv(EnvBackend, "Postgres")
	t.Setenv(EnvDSN, "postgres://localhost/sd")
	t.Setenv(EnvLogCaller, "yes")

	cfg, err := Load(nil)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.DataDir != "/tmp/sd-data" {
		t.Errorf("DataDir: got %q", cfg.DataDir)
	}
	if cfg.Backend != slot.BackendPostgres {
		t.Errorf("Backend: got %q, want postgres", cfg.Backend)
	}
	if cfg.DSN != "postgres://localhost/sd" {
		t.Errorf("DSN: got %q", cfg.DSN)
	}
	if !cfg.LogCaller {
		t.Error("LogCaller: got false, want true")
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate: %v", err)
	}
}

func TestLoadFromEnvBadBool(t *testing.T) {
	isolate(t)
	t.Setenv(EnvLogTimestamps, "sometimes")
	if _, err := Load(nil); err == nil || !strings.Contains(err.Error(), EnvLogTimestamps) {
		t.Errorf("expected %s error, got %v", EnvLogTimestamps, err)
	}
}

func TestFlagsOnlyWhenChanged(t *testing.T) {
	isolate(t)
	t.Setenv(EnvStorageKey, "from-env")

	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	BindFlags(fs)
	if err := fs.Parse([]string{"--backend", "memory"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	cws, err := LoadWithSources(fs)
	if err != nil {
		t.Fatalf("LoadWithSources: %v", err)
	}
	if cws.Config.StorageKey != "from-env" {
		t.Errorf("unset --key overrode env: got %q", cws.Config.StorageKey)
	}
	if cws.Config.Backend != "memory" || cws.Sources["backend"] != SourceFlag {
		t.Errorf("backend: got %q from %q", cws.Config.Backend, cws.Sources["backend"])
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{"defaults", func(c *Config) {}, ""},
		{"unknown backend", func(c *Config) { c.Backend = "redis" }, "invalid backend"},
		{"empty key", func(c *Config) { c.StorageKey = "  " }, "storage_key"},
		{"postgres without dsn", func(c *Config) { c.Backend = slot.BackendPostgres }, "requires dsn"},
		{"postgres with dsn", func(c *Config) { c.Backend = slot.BackendPostgres; c.DSN = "postgres://x" }, ""},
		{"file without dir", func(c *Config) { c.DataDir = "" }, "requires data_dir"},
		{"sqlite with dsn only", func(c *Config) { c.Backend = slot.BackendSQLite; c.DataDir = ""; c.DSN = "/tmp/x.db" }, ""},
		{"sqlite without either", func(c *Config) { c.Backend = slot.BackendSQLite; c.DataDir = "" }, "data_dir or dsn"},
		{"memory without dir", func(c *Config) { c.Backend = slot.BackendMemory; c.DataDir = "" }, ""},
		{"bad level", func(c *Config) { c.LogLevel = "loud" }, "invalid log_level"},
		{"bad format", func(c *Config) { c.LogFormat = "xml" }, "invalid log_format"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &Config{}
			setDefaults(cfg)
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %v does not contain %q", err, tt.wantErr)
			}
		})
	}
}

func TestOptions(t *testing.T) {
	cfg := &Config{}
	setDefaults(cfg)
	cfg.DataDir = "/data"
	cfg.Backend = slot.BackendSQLite
	cfg.LogLevel = "debug"
	cfg.LogCaller = true

	so := cfg.SlotOptions()
	if so.Backend != slot.BackendSQLite || so.Dir != "/data" || so.DSN != "" {
		t.Errorf("SlotOptions: got %+v", so)
	}
	lo := cfg.LoggingOptions()
	if lo.Level != "debug" || lo.Format != "text" || !lo.ReportTimestamp || !lo.ReportCaller {
		t.Errorf("LoggingOptions: got %+v", lo)
	}
}

func TestExampleConfigDecodes(t *testing.T) {
	isolate(t)
	writeFile(t, "simplydone.toml", ExampleConfig())
	cws, err := LoadWithSources(nil)
	if err != nil {
		t.Fatalf("example config does not load: %v", err)
	}
	if err := cws.Config.Validate(); err != nil {
		t.Errorf("example config invalid: %v", err)
	}
	if cws.Sources["backend"] != SourceProjFile {
		t.Errorf("backend source: got %q", cws.Sources["backend"])
	}
}

func TestBoolFromString(t *testing.T) {
	tests := []struct {
		in      string
		want    bool
		wantErr bool
	}{
		{"true", true, false},
		{"1", true, false},
		{"yes", true, false},
		{"ON", true, false},
		{"false", false, false},
		{"0", false, false},
		{"no", false, false},
		{"off", false, false},
		{"maybe", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := boolFromString(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("error: got %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("Cannot get home directory")
	}

	tests := []struct {
		input string
		want  string
	}{
		{"~/test", filepath.Join(home, "test")},
		{"~", home},
		{"/absolute/path", "/absolute/path"},
		{"relative", "relative"},
		{"", ""},
	}
	if runtime.GOOS == "windows" {
		t.Setenv("SIMPLYDONE_TEST_HOME", home)
		tests = append(tests, struct {
			input string
			want  string
		}{`%SIMPLYDONE_TEST_HOME%\logs`, filepath.Join(home, "logs")})
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := expandPath(tt.input)
			if got != tt.want {
				t.Errorf("expandPath(%q): got %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent to testing.T.Chdir in Go 1.24+).
func chdir(t *testing.T, dir string) {
	t.Helper()
	prev, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		t.Fatalf("abs: %v", err)
	}
	t.Setenv("PWD", abs)
	t.Cleanup(func() {
		if err := os.Chdir(prev); err != nil {
			t.Fatalf("chdir back: %v", err)
		}
	})
}
