// Package slot provides the durable key-value slot that holds the serialized
// task list. Each backend maps one string key to one opaque value.
package slot

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
)

// ErrNotFound is returned by Get when the key has never been written.
var ErrNotFound = errors.New("slot: key not found")

// Slot is a durable key-value slot.
type Slot interface {
	// Get returns the stored value or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Put overwrites the value stored under key.
	Put(ctx context.Context, key string, value []byte) error
	// Close releases the backend.
	Close() error
}

// Backend names accepted by Open.
const (
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendMemory   = "memory"
)

// SQLiteFile is the database file name used by the sqlite backend when no
// DSN is configured.
const SQLiteFile = "simplydone.db"

// Backends returns the supported backend names.
func Backends() []string {
	return []string{BackendFile, BackendSQLite, BackendPostgres, BackendMemory}
}

// ValidBackend reports whether name is a supported backend.
func ValidBackend(name string) bool {
	for _, b := range Backends() {
		if b == name {
			return true
		}
	}
	return false
}

// Options selects and configures a backend.
type Options struct {
	// Backend is one of the Backend* constants. Empty means file.
	Backend string
	// Dir is the data directory used by the file and sqlite backends.
	Dir string
	// DSN is the postgres connection string, or an explicit sqlite path.
	DSN string
}

// Open opens the configured backend.
func Open(ctx context.Context, opts Options) (Slot, error) {
	backend := strings.ToLower(strings.TrimSpace(opts.Backend))
	if backend == "" {
		backend = BackendFile
	}

	switch backend {
	case BackendFile:
		if opts.Dir == "" {
			return nil, fmt.Errorf("file backend: data dir is empty")
		}
		return NewFile(opts.Dir), nil
	case BackendSQLite:
		path := opts.DSN
		if path == "" {
			if opts.Dir == "" {
				return nil, fmt.Errorf("sqlite backend: data dir is empty")
			}
			path = filepath.Join(opts.Dir, SQLiteFile)
		}
		return OpenSQLite(ctx, path)
	case BackendPostgres:
		if opts.DSN == "" {
			return nil, fmt.Errorf("postgres backend: dsn is empty")
		}
		return OpenPostgres(ctx, opts.DSN)
	case BackendMemory:
		return NewMemory(), nil
	default:
		return nil, fmt.Errorf("unknown backend %q, must be one of: %s", opts.Backend, strings.Join(Backends(), ", "))
	}
}
