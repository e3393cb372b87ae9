package cmd

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"

	"github.com/nibzard/simplydone/internal/todo"
)

// ErrTaskRefRequired indicates no task reference was provided.
var ErrTaskRefRequired = errors.New("task reference required")

// minIDPrefix is the shortest id prefix accepted as a reference.
const minIDPrefix = 4

// resolveTaskRef finds the task a reference points at.
//
// Resolution rules:
// 1. All digits: 1-based position in the full list
// 2. Otherwise an exact task id
// 3. Otherwise a unique id prefix of at least minIDPrefix characters
func resolveTaskRef(l todo.List, ref string) (todo.Task, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return todo.Task{}, ErrTaskRefRequired
	}

	if isAllDigits(ref) {
		n, err := strconv.Atoi(ref)
		if err == nil && n >= 1 && n <= len(l) {
			return l[n-1], nil
		}
	}

	if t, ok := l.Get(ref); ok {
		return t, nil
	}

	if len(ref) >= minIDPrefix {
		var matches []todo.Task
		for _, t := range l {
			if strings.HasPrefix(t.ID, ref) {
				matches = append(matches, t)
			}
		}
		switch len(matches) {
		case 1:
			return matches[0], nil
		case 0:
		default:
			return todo.Task{}, fmt.Errorf("ambiguous task reference: %s matches %d tasks", ref, len(matches))
		}
	}

	return todo.Task{}, fmt.Errorf("task not found: %s", ref)
}

// isAllDigits returns true if s consists only of ASCII digits and is non-empty.
func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r > unicode.MaxASCII || !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
