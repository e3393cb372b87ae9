// Package config resolves where simplydone keeps its task list and how it logs.
//
// Values are layered, later layers winning:
//
//	defaults < user file < project file < SIMPLYDONE_* env < changed CLI flags
//
// The user file is ~/.simplydone/simplydone.toml when present, otherwise
// simplydone.toml in the OS config directory ($XDG_CONFIG_HOME/simplydone on
// Linux). The project file is ./simplydone.toml or ./.simplydone.toml. Only keys
// a file actually sets are applied, and a file with keys this package does not
// know is an error rather than silently ignored.
//
// LoadWithSources reports the layer each value came from, which the config
// command prints. Validate checks that the chosen storage backend has what it
// needs: a data_dir for file and sqlite, a dsn for postgres.
package config
