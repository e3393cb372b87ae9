package persist

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/nibzard/simplydone/internal/logging"
	"github.com/nibzard/simplydone/internal/slot"
	"github.com/nibzard/simplydone/internal/todo"
)

// failingSlot fails every operation with err.
type failingSlot struct {
	err error
}

func (f failingSlot) Get(ctx context.Context, key string) ([]byte, error) { return nil, f.err }
func (f failingSlot) Put(ctx context.Context, key string, value []byte) error {
	return f.err
}
func (f failingSlot) Close() error { return nil }

func TestLoadMissing(t *testing.T) {
	a := New(slot.NewMemory(), "", nil)
	if a.Key() != DefaultKey {
		t.Errorf("Key: got %q, want %q", a.Key(), DefaultKey)
	}
	l := a.Load(context.Background())
	if l == nil || len(l) != 0 {
		t.Errorf("Load on empty slot: got %#v", l)
	}
}

func TestSaveThenLoad(t *testing.T) {
	ctx := context.Background()
	s := slot.NewMemory()
	a := New(s, "todos", nil)

	want := todo.List{
		{ID: "1", Text: "Buy groceries"},
		{ID: "2", Text: "Walk the dog", Completed: true},
	}
	if err := a.Save(ctx, want); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got := New(s, "todos", nil).Load(ctx)
	if !got.Equal(want) {
		t.Errorf("Load: got %+v, want %+v", got, want)
	}

	raw, _ := s.Get(ctx, "todos")
	if !strings.HasPrefix(string(raw), "[") {
		t.Errorf("stored value should be a JSON array, got %q", raw)
	}
}

func TestLoadDiscardsMalformed(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"garbage", "not json at all"},
		{"object", `{"todos": []}`},
		{"numeric ids", `[{"id": 1712345678, "text": "x", "completed": false}]`},
		{"partly valid", `[{"id":"a","text":"ok","completed":false},{"id":"b","text":"","completed":false}]`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ctx := context.Background()
			s := slot.NewMemory()
			_ = s.Put(ctx, "todos", []byte(tt.data))

			var buf bytes.Buffer
			logger := logging.New(&buf, logging.Options{Level: "debug"})
			l := New(s, "todos", logger).Load(ctx)
			if l == nil || len(l) != 0 {
				t.Errorf("Load: got %+v, want empty list", l)
			}
			if !strings.Contains(buf.String(), "discarding saved task list") {
				t.Errorf("expected a warning in the log, got %q", buf.String())
			}
		})
	}
}

func TestLoadUnavailableSlot(t *testing.T) {
	a := New(failingSlot{err: errors.New("disk on fire")}, "todos", nil)
	if l := a.Load(context.Background()); len(l) != 0 {
		t.Errorf("Load: got %+v, want empty", l)
	}

	_, err := a.Inspect(context.Background())
	if err == nil || !strings.Contains(err.Error(), "disk on fire") {
		t.Errorf("Inspect: got %v", err)
	}
}

func TestInspect(t *testing.T) {
	ctx := context.Background()
	s := slot.NewMemory()
	a := New(s, "todos", nil)

	if _, err := a.Inspect(ctx); !errors.Is(err, slot.ErrNotFound) {
		t.Errorf("Inspect missing: got %v, want ErrNotFound", err)
	}

	_ = s.Put(ctx, "todos", []byte(`[{"id":"a","text":"x"}]`))
	_, err := a.Inspect(ctx)
	var decodeErr *todo.DecodeError
	if !errors.As(err, &decodeErr) {
		t.Fatalf("Inspect malformed: got %T %v, want *todo.DecodeError", err, err)
	}
}

func TestSaveFailure(t *testing.T) {
	a := New(failingSlot{err: errors.New("quota exceeded")}, "todos", nil)
	err := a.Save(context.Background(), todo.List{{ID: "1", Text: "x"}})
	if err == nil || !strings.Contains(err.Error(), "quota exceeded") {
		t.Errorf("Save: got %v, want quota error", err)
	}
}
