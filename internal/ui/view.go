package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nibzard/simplydone/internal/todo"
)

var (
	titleStyle        = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	cursorStyle       = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212"))
	doneStyle         = lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("241"))
	filterStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	filterActiveStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	mutedStyle        = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("241"))
	warnStyle         = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
)

func (m *tuiModel) View() string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("simplydone") + "\n\n")
	b.WriteString(m.add.View() + "\n\n")
	b.WriteString(m.filterBar() + "\n\n")
	m.writeRows(&b)
	b.WriteString("\n")
	m.writeFooter(&b)
	return b.String()
}

func (m *tuiModel) filterBar() string {
	parts := make([]string, 0, len(todo.Filters))
	for i, f := range todo.Filters {
		label := fmt.Sprintf("%d %s", i+1, f.Label())
		if f == m.filter {
			parts = append(parts, filterActiveStyle.Render("["+label+"]"))
			continue
		}
		parts = append(parts, filterStyle.Render(" "+label+" "))
	}
	return strings.Join(parts, " ")
}

func (m *tuiModel) writeRows(b *strings.Builder) {
	all := m.tasks.Tasks()
	visible := all.Filter(m.filter)
	if len(all) == 0 {
		b.WriteString(mutedStyle.Render("No tasks yet!") + "\n")
		return
	}
	if len(visible) == 0 {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("No %s tasks.", strings.ToLower(m.filter.Label()))) + "\n")
		return
	}

	for i, t := range visible {
		cursor := "  "
		if i == m.cursor && m.focus != focusAdd {
			cursor = cursorStyle.Render("> ")
		}
		box := "[ ]"
		if t.Completed {
			box = "[x]"
		}

		text := oneLine(t.Text)
		switch {
		case t.ID == m.editing:
			text = m.editor.View()
		case t.Completed:
			text = doneStyle.Render(text)
		}
		b.WriteString(cursor + box + " " + text + "\n")
	}
}

func (m *tuiModel) writeFooter(b *strings.Builder) {
	active, completed := m.tasks.Tasks().Counts()
	b.WriteString(fmt.Sprintf("%d active, %d completed", active, completed))
	if err := m.tasks.SaveErr(); err != nil {
		b.WriteString("  " + warnStyle.Render("not saved: "+err.Error()))
	}
	b.WriteString("\n\n")
	b.WriteString(m.help.View(m.keys) + "\n")
}

// oneLine keeps a task on a single screen row.
func oneLine(s string) string {
	return strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ").Replace(s)
}
