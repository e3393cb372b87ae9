package todo

import (
	"fmt"
	"strings"
)

// Task is a single to-do entry.
type Task struct {
	ID        string `json:"id" yaml:"id"`
	Text      string `json:"text" yaml:"text"`
	Completed bool   `json:"completed" yaml:"completed"`
}

// String renders the task as a checkbox line.
func (t Task) String() string {
	mark := " "
	if t.Completed {
		mark = "x"
	}
	return fmt.Sprintf("[%s] %s", mark, t.Text)
}

// List is an ordered task list. Operations return new lists.
type List []Task

// MaxTextLen is the longest task text, in runes, accepted from user input.
const MaxTextLen = 1000

// ValidText reports whether text is acceptable as task text: it must contain
// something other than whitespace.
func ValidText(text string) bool {
	return strings.TrimSpace(text) != ""
}

// Clone returns a copy of l that shares no backing array with it.
func (l List) Clone() List {
	if l == nil {
		return List{}
	}
	out := make(List, len(l))
	copy(out, l)
	return out
}

// Index returns the position of the task with the given id, or -1.
func (l List) Index(id string) int {
	for i := range l {
		if l[i].ID == id {
			return i
		}
	}
	return -1
}

// Get returns the task with the given id.
func (l List) Get(id string) (Task, bool) {
	if i := l.Index(id); i >= 0 {
		return l[i], true
	}
	return Task{}, false
}

// Has reports whether a task with the given id exists.
func (l List) Has(id string) bool {
	return l.Index(id) >= 0
}

// IDs returns the task ids in list order.
func (l List) IDs() []string {
	ids := make([]string, len(l))
	for i := range l {
		ids[i] = l[i].ID
	}
	return ids
}

// Append returns a new list with t added at the end. Tasks with an empty id,
// an id already present, or invalid text are refused.
func (l List) Append(t Task) (List, bool) {
	if t.ID == "" || !ValidText(t.Text) || l.Has(t.ID) {
		return l, false
	}
	out := make(List, len(l), len(l)+1)
	copy(out, l)
	return append(out, t), true
}

// Toggle returns a new list with the completion state of id flipped.
func (l List) Toggle(id string) (List, bool) {
	i := l.Index(id)
	if i < 0 {
		return l, false
	}
	out := l.Clone()
	out[i].Completed = !out[i].Completed
	return out, true
}

// Delete returns a new list without the task id.
func (l List) Delete(id string) (List, bool) {
	i := l.Index(id)
	if i < 0 {
		return l, false
	}
	out := make(List, 0, len(l)-1)
	out = append(out, l[:i]...)
	out = append(out, l[i+1:]...)
	return out, true
}

// Edit returns a new list with the text of id replaced. Invalid text and
// unknown ids leave the list as it is.
func (l List) Edit(id, text string) (List, bool) {
	if !ValidText(text) {
		return l, false
	}
	i := l.Index(id)
	if i < 0 || l[i].Text == text {
		return l, false
	}
	out := l.Clone()
	out[i].Text = text
	return out, true
}

// Counts returns the number of active and completed tasks.
func (l List) Counts() (active, completed int) {
	for _, t := range l {
		if t.Completed {
			completed++
		} else {
			active++
		}
	}
	return active, completed
}

// Equal reports whether two lists hold the same tasks in the same order.
func (l List) Equal(other List) bool {
	if len(l) != len(other) {
		return false
	}
	for i := range l {
		if l[i] != other[i] {
			return false
		}
	}
	return true
}
