// Package persist mirrors the task list into a durable slot.
//
// Loading never fails: a missing, unreadable or malformed stored value is
// treated as an empty list. Saving serializes the whole list and overwrites
// the slot; failures are reported to the caller, which keeps its in-memory
// state either way.
package persist

import (
	"context"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"

	"github.com/nibzard/simplydone/internal/logging"
	"github.com/nibzard/simplydone/internal/slot"
	"github.com/nibzard/simplydone/internal/todo"
)

// DefaultKey is the storage key used when none is configured.
const DefaultKey = "todos"

// Adapter loads and saves the task list under a single key.
type Adapter struct {
	slot   slot.Slot
	key    string
	logger *log.Logger
}

// New returns an adapter for key in s. An empty key means DefaultKey.
func New(s slot.Slot, key string, logger *log.Logger) *Adapter {
	if key == "" {
		key = DefaultKey
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Adapter{slot: s, key: key, logger: logger}
}

// Key returns the storage key.
func (a *Adapter) Key() string {
	return a.key
}

// Load returns the stored list, or an empty list if there is nothing usable.
func (a *Adapter) Load(ctx context.Context) todo.List {
	l, err := a.Inspect(ctx)
	if err != nil {
		if errors.Is(err, slot.ErrNotFound) {
			a.logger.Debug("no saved task list", "key", a.key)
		} else {
			a.logger.Warn("discarding saved task list", "key", a.key, "err", err)
		}
		return todo.List{}
	}
	a.logger.Debug("loaded task list", "key", a.key, "tasks", len(l))
	return l
}

// Inspect reads and strictly decodes the stored value, returning the reason
// it is unusable. A missing value yields slot.ErrNotFound.
func (a *Adapter) Inspect(ctx context.Context) (todo.List, error) {
	data, err := a.slot.Get(ctx, a.key)
	if err != nil {
		if errors.Is(err, slot.ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("read slot: %w", err)
	}
	l, err := todo.Decode(data)
	if err != nil {
		return nil, err
	}
	return l, nil
}

// Save overwrites the stored value with l.
func (a *Adapter) Save(ctx context.Context, l todo.List) error {
	data, err := todo.Encode(l)
	if err != nil {
		return err
	}
	if err := a.slot.Put(ctx, a.key, data); err != nil {
		return fmt.Errorf("save task list: %w", err)
	}
	a.logger.Debug("saved task list", "key", a.key, "tasks", len(l), "bytes", len(data))
	return nil
}
