// Package ui provides the terminal interface.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/nibzard/simplydone/internal/edit"
	"github.com/nibzard/simplydone/internal/logging"
	"github.com/nibzard/simplydone/internal/todo"
)

// TaskStore is the task list the TUI reads and mutates. *store.Store
// implements it.
type TaskStore interface {
	Tasks() todo.List
	Add(ctx context.Context, text string) (todo.Task, bool)
	Toggle(ctx context.Context, id string) bool
	Delete(ctx context.Context, id string) bool
	Edit(ctx context.Context, id, text string) bool
	SaveErr() error
}

// TUIOption configures the TUI behavior.
type TUIOption func(*tuiConfig)

type tuiConfig struct {
	filter todo.Filter
	logger *log.Logger
	now    func() time.Time
}

// WithFilter sets the initial filter.
func WithFilter(f todo.Filter) TUIOption {
	return func(c *tuiConfig) {
		c.filter = f
	}
}

// WithLogger sets the logger for UI events.
func WithLogger(logger *log.Logger) TUIOption {
	return func(c *tuiConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}

func withClock(now func() time.Time) TUIOption {
	return func(c *tuiConfig) {
		c.now = now
	}
}

func newTUIConfig(opts []TUIOption) *tuiConfig {
	c := &tuiConfig{
		filter: todo.FilterAll,
		logger: logging.Discard(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// RunTUI runs the interactive task list until the user quits or ctx is done.
func RunTUI(ctx context.Context, tasks TaskStore, opts ...TUIOption) error {
	if !IsTTY(os.Stdout) {
		return fmt.Errorf("tui requires a TTY")
	}

	model := newTUIModel(ctx, tasks, newTUIConfig(opts))
	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithReportFocus(),
		tea.WithContext(ctx),
	)
	_, err := program.Run()
	return err
}

type focusArea int

const (
	focusList focusArea = iota
	focusAdd
	focusEdit
)

const (
	// Screen rows above the first task row: title, blank, add input, blank,
	// filter bar, blank.
	addRow  = 2
	listTop = 6

	doubleClickWindow = 400 * time.Millisecond

	// Columns taken by "> [ ] " before an inline editor.
	rowIndent     = 6
	defaultWidth  = 80
	minInputWidth = 10
)

type tuiModel struct {
	ctx      context.Context
	tasks    TaskStore
	sessions *edit.Sessions
	logger   *log.Logger
	now      func() time.Time

	keys   keyMap
	help   help.Model
	add    textinput.Model
	editor textinput.Model

	focus   focusArea
	editing string
	filter  todo.Filter
	cursor  int

	lastClick    time.Time
	lastClickRow int
}

func newTUIModel(ctx context.Context, tasks TaskStore, c *tuiConfig) *tuiModel {
	add := textinput.New()
	add.Prompt = "+ "
	add.Placeholder = "What needs to be done?"
	add.CharLimit = todo.MaxTextLen

	editor := textinput.New()
	editor.Prompt = ""
	editor.CharLimit = todo.MaxTextLen

	m := &tuiModel{
		ctx:          ctx,
		tasks:        tasks,
		sessions:     edit.NewSessions(),
		logger:       c.logger,
		now:          c.now,
		keys:         defaultKeyMap(),
		help:         help.New(),
		add:          add,
		editor:       editor,
		filter:       c.filter,
		lastClickRow: -1,
	}
	m.resize(defaultWidth)
	return m
}

// resize fits the inputs to a terminal w columns wide. The cursor takes one
// column past the value.
func (m *tuiModel) resize(w int) {
	m.add.Width = max(w-lipgloss.Width(m.add.Prompt)-1, minInputWidth)
	m.editor.Width = max(w-rowIndent-1, minInputWidth)
}

func (m *tuiModel) Init() tea.Cmd {
	return nil
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.help.Width = msg.Width
		m.resize(msg.Width)
		return m, nil
	case tea.BlurMsg:
		m.blurEdit()
		return m, nil
	case tea.MouseMsg:
		return m, m.handleMouse(msg)
	case tea.KeyMsg:
		if key.Matches(msg, m.keys.ForceQuit) {
			m.blurEdit()
			return m, tea.Quit
		}
		switch m.focus {
		case focusEdit:
			return m, m.updateEdit(msg)
		case focusAdd:
			return m, m.updateAdd(msg)
		default:
			return m, m.updateList(msg)
		}
	}

	var cmd tea.Cmd
	switch m.focus {
	case focusAdd:
		m.add, cmd = m.add.Update(msg)
	case focusEdit:
		m.editor, cmd = m.editor.Update(msg)
	}
	return m, cmd
}

func (m *tuiModel) updateList(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.Up):
		m.moveCursor(-1)
	case key.Matches(msg, m.keys.Down):
		m.moveCursor(1)
	case key.Matches(msg, m.keys.Toggle):
		if t, ok := m.selected(); ok {
			m.tasks.Toggle(m.ctx, t.ID)
			m.clampCursor()
		}
	case key.Matches(msg, m.keys.Edit):
		if t, ok := m.selected(); ok {
			return m.beginEdit(t.ID)
		}
	case key.Matches(msg, m.keys.Delete):
		if t, ok := m.selected(); ok {
			m.tasks.Delete(m.ctx, t.ID)
			m.sessions.Prune(m.tasks.Tasks())
			m.clampCursor()
		}
	case key.Matches(msg, m.keys.All):
		m.setFilter(todo.FilterAll)
	case key.Matches(msg, m.keys.Active):
		m.setFilter(todo.FilterActive)
	case key.Matches(msg, m.keys.Completed):
		m.setFilter(todo.FilterCompleted)
	case key.Matches(msg, m.keys.Cycle):
		m.setFilter(m.filter.Next())
	case key.Matches(msg, m.keys.Add):
		return m.focusAddInput()
	}
	return nil
}

func (m *tuiModel) updateAdd(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		if t, ok := m.tasks.Add(m.ctx, m.add.Value()); ok {
			m.logger.Debug("task added", "id", t.ID)
			m.add.Reset()
		}
		return nil
	case key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.Leave):
		m.add.Blur()
		m.focus = focusList
		return nil
	}

	var cmd tea.Cmd
	m.add, cmd = m.add.Update(msg)
	return cmd
}

func (m *tuiModel) updateEdit(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Confirm):
		m.resolveEdit(edit.Commit)
		return nil
	case key.Matches(msg, m.keys.Cancel):
		m.resolveEdit(edit.Cancel)
		return nil
	case key.Matches(msg, m.keys.Leave):
		m.blurEdit()
		switch msg.String() {
		case "up":
			m.moveCursor(-1)
		case "down":
			m.moveCursor(1)
		case "tab", "shift+tab":
			return m.focusAddInput()
		}
		return nil
	}

	before := m.editor.Value()
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	// The draft keeps the stored text until the user changes the input.
	if v := m.editor.Value(); v != before {
		m.sessions.For(m.editing).SetDraft(v)
	}
	return cmd
}

func (m *tuiModel) handleMouse(msg tea.MouseMsg) tea.Cmd {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return nil
	}
	if msg.Y == addRow {
		m.blurEdit()
		return m.focusAddInput()
	}

	visible := m.visible()
	row := msg.Y - listTop
	if row < 0 || row >= len(visible) {
		m.blurEdit()
		return nil
	}

	now := m.now()
	double := row == m.lastClickRow && now.Sub(m.lastClick) <= doubleClickWindow
	m.lastClick, m.lastClickRow = now, row

	id := visible[row].ID
	if id == m.editing {
		return nil
	}
	m.blurEdit()
	if m.focus == focusAdd {
		m.add.Blur()
		m.focus = focusList
	}
	m.cursor = row
	if double {
		m.lastClickRow = -1
		return m.beginEdit(id)
	}
	return nil
}

func (m *tuiModel) focusAddInput() tea.Cmd {
	m.focus = focusAdd
	return m.add.Focus()
}

func (m *tuiModel) beginEdit(id string) tea.Cmd {
	if m.editing == id {
		return nil
	}
	m.blurEdit()

	t, ok := m.tasks.Tasks().Get(id)
	if !ok {
		return nil
	}
	s := m.sessions.For(id)
	s.Begin(t.Text)

	m.editing = id
	m.focus = focusEdit
	m.add.Blur()
	m.editor.SetValue(s.Draft())
	m.editor.CursorEnd()
	return m.editor.Focus()
}

// resolveEdit ends the open edit, if any, with r.
func (m *tuiModel) resolveEdit(r edit.Resolution) edit.Outcome {
	return m.finishEdit(func(s *edit.Session) edit.Outcome {
		return s.Resolve(m.ctx, r, m.tasks)
	})
}

// blurEdit ends the open edit, if any, because focus moved away.
func (m *tuiModel) blurEdit() edit.Outcome {
	return m.finishEdit(func(s *edit.Session) edit.Outcome {
		return s.Blur(m.ctx, m.tasks)
	})
}

func (m *tuiModel) finishEdit(end func(*edit.Session) edit.Outcome) edit.Outcome {
	if m.editing == "" {
		return edit.NotEditing
	}
	id := m.editing
	out := end(m.sessions.For(id))
	m.logger.Debug("edit finished", "id", id, "outcome", out)

	m.sessions.Drop(id)
	m.editing = ""
	m.editor.Blur()
	m.editor.Reset()
	if m.focus == focusEdit {
		m.focus = focusList
	}
	m.clampCursor()
	return out
}

func (m *tuiModel) setFilter(f todo.Filter) {
	if f == m.filter {
		return
	}
	m.filter = f
	m.cursor = 0
	m.clampCursor()
}

func (m *tuiModel) visible() todo.List {
	return m.tasks.Tasks().Filter(m.filter)
}

func (m *tuiModel) selected() (todo.Task, bool) {
	visible := m.visible()
	if m.cursor < 0 || m.cursor >= len(visible) {
		return todo.Task{}, false
	}
	return visible[m.cursor], true
}

func (m *tuiModel) moveCursor(delta int) {
	m.cursor += delta
	m.clampCursor()
}

func (m *tuiModel) clampCursor() {
	n := len(m.visible())
	if m.cursor >= n {
		m.cursor = n - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

// IsTTY returns true if w is a terminal.
func IsTTY(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	info, err := f.Stat()
	if err != nil {
		return false
	}
	return (info.Mode() & os.ModeCharDevice) != 0
}
