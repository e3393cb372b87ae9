package edit

import (
	"context"
	"testing"

	"github.com/nibzard/simplydone/internal/store"
	"github.com/nibzard/simplydone/internal/todo"
)

// fakeEditor counts calls and reports a fixed result.
type fakeEditor struct {
	calls  int
	lastID string
	last   string
	result bool
}

func (f *fakeEditor) Edit(ctx context.Context, id, text string) bool {
	f.calls++
	f.lastID = id
	f.last = text
	return f.result
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name       string
		draft      string
		resolution Resolution
		result     bool
		want       Outcome
		wantCalls  int
	}{
		{name: "commit", draft: "new text", resolution: Commit, result: true, want: Committed, wantCalls: 1},
		{name: "commit unchanged", draft: "same", resolution: Commit, result: false, want: Unchanged, wantCalls: 1},
		{name: "commit empty", draft: "", resolution: Commit, want: Discarded},
		{name: "commit whitespace", draft: " \t ", resolution: Commit, want: Discarded},
		{name: "cancel", draft: "new text", resolution: Cancel, want: Cancelled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ed := &fakeEditor{result: tt.result}
			s := NewSession("t1")
			s.Begin("old")
			s.SetDraft(tt.draft)

			got := s.Resolve(context.Background(), tt.resolution, ed)
			if got != tt.want {
				t.Errorf("outcome: got %v, want %v", got, tt.want)
			}
			if ed.calls != tt.wantCalls {
				t.Errorf("editor calls: got %d, want %d", ed.calls, tt.wantCalls)
			}
			if tt.wantCalls > 0 && (ed.lastID != "t1" || ed.last != tt.draft) {
				t.Errorf("editor got (%q, %q)", ed.lastID, ed.last)
			}
			if s.State() != Viewing || s.Draft() != "" {
				t.Errorf("after resolve: state %v draft %q", s.State(), s.Draft())
			}
		})
	}
}

func TestResolveOnlyOnce(t *testing.T) {
	ctx := context.Background()
	ed := &fakeEditor{result: true}
	s := NewSession("t1")
	s.Begin("old")
	s.SetDraft("new")

	if got := s.Resolve(ctx, Commit, ed); got != Committed {
		t.Fatalf("first resolve: got %v", got)
	}
	if got := s.Blur(ctx, ed); got != NotEditing {
		t.Errorf("blur after commit: got %v, want %v", got, NotEditing)
	}
	if got := s.Resolve(ctx, Cancel, ed); got != NotEditing {
		t.Errorf("cancel after commit: got %v, want %v", got, NotEditing)
	}
	if ed.calls != 1 {
		t.Errorf("editor calls: got %d, want 1", ed.calls)
	}
}

func TestBlurCommits(t *testing.T) {
	ed := &fakeEditor{result: true}
	s := NewSession("t1")
	s.Begin("old")
	s.SetDraft("typed then tabbed away")

	if got := s.Blur(context.Background(), ed); got != Committed {
		t.Errorf("blur: got %v, want %v", got, Committed)
	}
	if ed.last != "typed then tabbed away" {
		t.Errorf("editor got %q", ed.last)
	}
}

func TestBeginWhileEditingKeepsDraft(t *testing.T) {
	s := NewSession("t1")
	if !s.Begin("old") {
		t.Fatal("Begin from Viewing returned false")
	}
	s.SetDraft("half typed")
	if s.Begin("old") {
		t.Error("Begin while editing returned true")
	}
	if s.Draft() != "half typed" {
		t.Errorf("draft: got %q", s.Draft())
	}
}

func TestSetDraftWhileViewing(t *testing.T) {
	s := NewSession("t1")
	s.SetDraft("ignored")
	if s.Draft() != "" || s.Editing() {
		t.Errorf("viewing session changed: state %v draft %q", s.State(), s.Draft())
	}
}

func TestCancelLeavesStoreUntouched(t *testing.T) {
	ctx := context.Background()
	st := store.New(nil)
	task, _ := st.Add(ctx, "Fix bug")

	s := NewSession(task.ID)
	s.Begin(task.Text)
	s.SetDraft("Fix critical bug")
	s.Resolve(ctx, Cancel, st)

	if got, _ := st.Find(task.ID); got.Text != "Fix bug" {
		t.Errorf("text: got %q, want %q", got.Text, "Fix bug")
	}
}

func TestCommitThroughStore(t *testing.T) {
	ctx := context.Background()
	st := store.New(nil)
	task, _ := st.Add(ctx, "Fix bug")

	s := NewSession(task.ID)
	s.Begin(task.Text)
	s.SetDraft("Fix critical bug")
	if got := s.Resolve(ctx, Commit, st); got != Committed {
		t.Fatalf("outcome: got %v", got)
	}
	if got, _ := st.Find(task.ID); got.Text != "Fix critical bug" {
		t.Errorf("text: got %q", got.Text)
	}
}

func TestSessionsIndependent(t *testing.T) {
	ctx := context.Background()
	st := store.New(nil)
	a, _ := st.Add(ctx, "a")
	b, _ := st.Add(ctx, "b")

	ss := NewSessions()
	ss.For(a.ID).Begin(a.Text)
	ss.For(b.ID).Begin(b.Text)
	ss.For(a.ID).SetDraft("a2")
	ss.For(b.ID).SetDraft("b2")

	if !ss.Editing(a.ID) || !ss.Editing(b.ID) || ss.Len() != 2 {
		t.Errorf("editing: a %v b %v len %d", ss.Editing(a.ID), ss.Editing(b.ID), ss.Len())
	}

	ss.For(a.ID).Resolve(ctx, Cancel, st)
	if !ss.Editing(b.ID) {
		t.Error("resolving a ended b's session")
	}
	if ss.For(b.ID).Draft() != "b2" {
		t.Errorf("b draft: got %q", ss.For(b.ID).Draft())
	}

	ss.For(b.ID).Resolve(ctx, Commit, st)
	want := todo.List{{ID: a.ID, Text: "a"}, {ID: b.ID, Text: "b2"}}
	if !st.Tasks().Equal(want) {
		t.Errorf("tasks: got %+v, want %+v", st.Tasks(), want)
	}
}

func TestSessionsPrune(t *testing.T) {
	ss := NewSessions()
	ss.For("keep").Begin("x")
	ss.For("gone").Begin("y")

	ss.Prune(todo.List{{ID: "keep", Text: "x"}})
	if ss.Len() != 1 || !ss.Editing("keep") {
		t.Errorf("after prune: len %d, keep editing %v", ss.Len(), ss.Editing("keep"))
	}

	ss.Drop("keep")
	if ss.Len() != 0 {
		t.Errorf("after drop: len %d", ss.Len())
	}
}
