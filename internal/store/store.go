// Package store owns the task list and its mutation API.
//
// A Store is the only writer of its list. Every operation computes a new list
// from the current one; when the result differs, the store swaps it in and
// hands it to the Persister. Rejected input and unknown ids leave the list and
// the durable copy untouched. A failed save is logged and remembered, but the
// in-memory list stays authoritative.
package store

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"

	"github.com/nibzard/simplydone/internal/logging"
	"github.com/nibzard/simplydone/internal/todo"
)

// Persister receives the full list after every change.
type Persister interface {
	Save(ctx context.Context, l todo.List) error
}

// IDFunc generates task ids.
type IDFunc func() string

// NewID returns a time-ordered UUIDv7 string.
func NewID() string {
	return uuid.Must(uuid.NewV7()).String()
}

// maxIDAttempts bounds retries when the generator returns a used id.
const maxIDAttempts = 8

// Option configures a Store.
type Option func(*Store)

// WithPersister sets where changes are written.
func WithPersister(p Persister) Option {
	return func(s *Store) {
		s.persister = p
	}
}

// WithIDFunc replaces the id generator.
func WithIDFunc(fn IDFunc) Option {
	return func(s *Store) {
		if fn != nil {
			s.newID = fn
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *log.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Store holds the ordered task list.
type Store struct {
	tasks     todo.List
	newID     IDFunc
	persister Persister
	logger    *log.Logger
	saveErr   error
}

// New returns a store seeded with a copy of initial.
func New(initial todo.List, opts ...Option) *Store {
	s := &Store{
		tasks:  initial.Clone(),
		newID:  NewID,
		logger: logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Tasks returns a copy of the current list.
func (s *Store) Tasks() todo.List {
	return s.tasks.Clone()
}

// Len returns the number of tasks.
func (s *Store) Len() int {
	return len(s.tasks)
}

// Find returns the task with the given id.
func (s *Store) Find(id string) (todo.Task, bool) {
	return s.tasks.Get(id)
}

// SaveErr returns the error of the most recent save, or nil if it succeeded.
func (s *Store) SaveErr() error {
	return s.saveErr
}

// Add appends a new active task. Text that is empty after trimming is
// ignored. The text is stored as given.
func (s *Store) Add(ctx context.Context, text string) (todo.Task, bool) {
	if !todo.ValidText(text) {
		s.logger.Debug("ignored empty task text")
		return todo.Task{}, false
	}

	t := todo.Task{ID: s.freshID(), Text: text}
	next, changed := s.tasks.Append(t)
	if !changed {
		return todo.Task{}, false
	}
	s.commit(ctx, next, "add", t.ID)
	return t, true
}

// Toggle flips the completion state of id.
func (s *Store) Toggle(ctx context.Context, id string) bool {
	next, changed := s.tasks.Toggle(id)
	if !changed {
		s.logger.Debug("toggle of unknown task", "id", id)
		return false
	}
	s.commit(ctx, next, "toggle", id)
	return true
}

// Delete removes id.
func (s *Store) Delete(ctx context.Context, id string) bool {
	next, changed := s.tasks.Delete(id)
	if !changed {
		s.logger.Debug("delete of unknown task", "id", id)
		return false
	}
	s.commit(ctx, next, "delete", id)
	return true
}

// Edit replaces the text of id. Empty text is ignored.
func (s *Store) Edit(ctx context.Context, id, text string) bool {
	next, changed := s.tasks.Edit(id, text)
	if !changed {
		s.logger.Debug("edit ignored", "id", id)
		return false
	}
	s.commit(ctx, next, "edit", id)
	return true
}

func (s *Store) freshID() string {
	for i := 0; i < maxIDAttempts; i++ {
		if id := s.newID(); id != "" && !s.tasks.Has(id) {
			return id
		}
	}
	id := NewID()
	for s.tasks.Has(id) {
		id = NewID()
	}
	return id
}

func (s *Store) commit(ctx context.Context, next todo.List, op, id string) {
	s.tasks = next
	s.logger.Debug("task list changed", "op", op, "id", id, "tasks", len(next))

	if s.persister == nil {
		return
	}
	if err := s.persister.Save(ctx, next.Clone()); err != nil {
		s.saveErr = err
		s.logger.Error("saving task list failed", "op", op, "err", err)
		return
	}
	s.saveErr = nil
}
