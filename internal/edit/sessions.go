package edit

import "github.com/nibzard/simplydone/internal/todo"

// Sessions holds one Session per task id. Rows edit independently.
type Sessions struct {
	byID map[string]*Session
}

// NewSessions returns an empty registry.
func NewSessions() *Sessions {
	return &Sessions{byID: make(map[string]*Session)}
}

// For returns the session for id, creating a Viewing one if needed.
func (ss *Sessions) For(id string) *Session {
	if s, ok := ss.byID[id]; ok {
		return s
	}
	s := NewSession(id)
	ss.byID[id] = s
	return s
}

// Editing reports whether the row id has an open edit.
func (ss *Sessions) Editing(id string) bool {
	s, ok := ss.byID[id]
	return ok && s.Editing()
}

// Drop forgets the session for id without resolving it.
func (ss *Sessions) Drop(id string) {
	delete(ss.byID, id)
}

// Prune drops sessions whose task is no longer in l.
func (ss *Sessions) Prune(l todo.List) {
	for id := range ss.byID {
		if !l.Has(id) {
			delete(ss.byID, id)
		}
	}
}

// Len returns the number of tracked sessions.
func (ss *Sessions) Len() int {
	return len(ss.byID)
}
