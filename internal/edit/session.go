// Package edit implements the inline edit session of a task row.
//
// A Session is either Viewing or Editing. Begin moves it to Editing with a
// draft copied from the task's text. Every way out of Editing goes through
// Resolve: confirming commits the draft, the cancel key discards it, and
// losing focus counts as a commit. Resolving a session that is not editing
// does nothing, so a row can never be resolved twice.
package edit

import (
	"context"

	"github.com/nibzard/simplydone/internal/todo"
)

// State is the state of a Session.
type State int

const (
	Viewing State = iota
	Editing
)

func (s State) String() string {
	if s == Editing {
		return "editing"
	}
	return "viewing"
}

// Resolution says how an edit session ends.
type Resolution int

const (
	Commit Resolution = iota
	Cancel
)

func (r Resolution) String() string {
	if r == Cancel {
		return "cancel"
	}
	return "commit"
}

// Outcome reports what Resolve did.
type Outcome int

const (
	// NotEditing means there was nothing to resolve.
	NotEditing Outcome = iota
	// Committed means the draft was handed to the editor and it changed the task.
	Committed
	// Unchanged means the editor was called but left the task as it was.
	Unchanged
	// Discarded means the draft was empty and the editor was not called.
	Discarded
	// Cancelled means the draft was dropped on request.
	Cancelled
)

func (o Outcome) String() string {
	switch o {
	case Committed:
		return "committed"
	case Unchanged:
		return "unchanged"
	case Discarded:
		return "discarded"
	case Cancelled:
		return "cancelled"
	default:
		return "not editing"
	}
}

// Editor applies a committed draft. *store.Store satisfies it.
type Editor interface {
	Edit(ctx context.Context, id, text string) bool
}

// Session is the edit state of one task row.
type Session struct {
	id    string
	state State
	draft string
}

// NewSession returns a Viewing session for the task id.
func NewSession(id string) *Session {
	return &Session{id: id}
}

// ID returns the task id the session belongs to.
func (s *Session) ID() string { return s.id }

// State returns the current state.
func (s *Session) State() State { return s.state }

// Editing reports whether the session is in the Editing state.
func (s *Session) Editing() bool { return s.state == Editing }

// Draft returns the draft text. It is empty while Viewing.
func (s *Session) Draft() string { return s.draft }

// Begin starts editing with the draft set to current. It returns false and
// keeps the existing draft if the session is already editing.
func (s *Session) Begin(current string) bool {
	if s.state == Editing {
		return false
	}
	s.state = Editing
	s.draft = current
	return true
}

// SetDraft replaces the draft. It is ignored while Viewing.
func (s *Session) SetDraft(text string) {
	if s.state != Editing {
		return
	}
	s.draft = text
}

// Resolve ends the session. On Commit a draft with visible text is passed to
// ed; an empty draft is dropped. The session is Viewing afterwards.
func (s *Session) Resolve(ctx context.Context, r Resolution, ed Editor) Outcome {
	if s.state != Editing {
		return NotEditing
	}
	draft := s.draft
	s.state = Viewing
	s.draft = ""

	if r == Cancel {
		return Cancelled
	}
	if !todo.ValidText(draft) || ed == nil {
		return Discarded
	}
	if ed.Edit(ctx, s.id, draft) {
		return Committed
	}
	return Unchanged
}

// Blur handles loss of focus, which commits.
func (s *Session) Blur(ctx context.Context, ed Editor) Outcome {
	return s.Resolve(ctx, Commit, ed)
}
