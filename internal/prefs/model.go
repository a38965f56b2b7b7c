// Package prefs is the terminal preferences screen for the whitelist.
package prefs

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/mj1618/undecorate/internal/model"
)

const maxSuggestions = 5

// Store is the whitelist being edited.
type Store interface {
	List() []string
	Add(id string) error
	Remove(id string) error
	OnExternalChange(cb func([]string)) (cancel func())
}

// listChangedMsg carries the whitelist after a change made anywhere.
type listChangedMsg []string

// Model lists whitelisted applications and lets the user add and remove
// them. Changes made by other processes show up while it runs.
type Model struct {
	store      Store
	changes    chan []string
	unsub      func()
	candidates []string

	ids    []string
	cursor int

	adding      bool
	input       textinput.Model
	suggestions []string
	suggestion  int

	status string
	err    error
	styles Styles
}

// New returns a model editing store. candidates are offered as completions
// when adding an application.
func New(store Store, candidates []string) Model {
	ti := textinput.New()
	ti.Placeholder = "org.gnome.Terminal"
	ti.CharLimit = 256
	ti.Width = 48

	m := Model{
		store:      store,
		changes:    make(chan []string, 1),
		candidates: candidates,
		ids:        store.List(),
		input:      ti,
		styles:     DefaultStyles(),
	}
	ch := m.changes
	m.unsub = store.OnExternalChange(func(ids []string) {
		for {
			select {
			case ch <- ids:
				return
			default:
			}
			// keep only the latest list
			select {
			case <-ch:
			default:
			}
		}
	})
	return m
}

// Close stops listening for whitelist changes.
func (m Model) Close() {
	if m.unsub != nil {
		m.unsub()
	}
}

func (m Model) Init() tea.Cmd {
	return m.waitForChange()
}

func (m Model) waitForChange() tea.Cmd {
	ch := m.changes
	return func() tea.Msg {
		return listChangedMsg(<-ch)
	}
}

// IDs returns the whitelist as currently displayed.
func (m Model) IDs() []string {
	return m.ids
}

// Adding reports whether the add prompt is open.
func (m Model) Adding() bool {
	return m.adding
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case listChangedMsg:
		m.ids = []string(msg)
		m.clampCursor()
		return m, m.waitForChange()
	case tea.KeyMsg:
		if m.adding {
			return m.updateAdding(msg)
		}
		return m.updateList(msg)
	}
	if m.adding {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) updateList(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.ids)-1 {
			m.cursor++
		}
	case "a", "+":
		m.adding = true
		m.err = nil
		m.status = ""
		m.input.Reset()
		m.updateSuggestions()
		return m, m.input.Focus()
	case "d", "x", "delete", "backspace":
		if len(m.ids) == 0 {
			return m, nil
		}
		id := m.ids[m.cursor]
		if err := m.store.Remove(id); err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		m.status = fmt.Sprintf("Removed %s", model.DisplayName(id))
		m.ids = m.store.List()
		m.clampCursor()
	}
	return m, nil
}

func (m Model) updateAdding(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		return m, tea.Quit
	case "esc":
		m.adding = false
		m.input.Blur()
		return m, nil
	case "tab", "shift+tab":
		if len(m.suggestions) == 0 {
			return m, nil
		}
		if msg.String() == "tab" {
			m.suggestion = (m.suggestion + 1) % len(m.suggestions)
		} else {
			if m.suggestion < 0 {
				m.suggestion = 0
			}
			m.suggestion = (m.suggestion - 1 + len(m.suggestions)) % len(m.suggestions)
		}
		m.input.SetValue(m.suggestions[m.suggestion])
		m.input.CursorEnd()
		return m, nil
	case "enter":
		id := model.NormalizeAppID(m.input.Value())
		m.adding = false
		m.input.Blur()
		if id == "" {
			return m, nil
		}
		if err := m.store.Add(id); err != nil {
			m.err = err
			return m, nil
		}
		m.err = nil
		m.status = fmt.Sprintf("Added %s", model.DisplayName(id))
		m.ids = m.store.List()
		for i, v := range m.ids {
			if v == id {
				m.cursor = i
			}
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	m.updateSuggestions()
	return m, cmd
}

// updateSuggestions lists candidates containing the typed text, skipping
// those already whitelisted.
func (m *Model) updateSuggestions() {
	m.suggestions = nil
	m.suggestion = -1
	typed := strings.ToLower(strings.TrimSpace(m.input.Value()))
	for _, c := range m.candidates {
		if m.listed(c) {
			continue
		}
		if typed == "" || strings.Contains(strings.ToLower(c), typed) {
			m.suggestions = append(m.suggestions, c)
		}
	}
}

func (m Model) listed(id string) bool {
	for _, v := range m.ids {
		if v == id {
			return true
		}
	}
	return false
}

func (m *Model) clampCursor() {
	if m.cursor >= len(m.ids) {
		m.cursor = len(m.ids) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
}

func (m Model) View() string {
	var b strings.Builder

	b.WriteString(m.styles.Title.Render("Always undecorated applications"))
	b.WriteString("\n")

	if len(m.ids) == 0 {
		b.WriteString(m.styles.Empty.Render("No applications in whitelist"))
		b.WriteString("\n")
	}
	for i, id := range m.ids {
		line := fmt.Sprintf("%s %s", model.DisplayName(id), m.styles.ID.Render("("+id+")"))
		if i == m.cursor && !m.adding {
			b.WriteString(m.styles.Selected.Render("> ") + line)
		} else {
			b.WriteString(m.styles.Item.Render(line))
		}
		b.WriteString("\n")
	}
	if n := len(m.ids); n == 1 {
		b.WriteString(m.styles.ID.Render("1 application"))
	} else if n > 1 {
		b.WriteString(m.styles.ID.Render(fmt.Sprintf("%d applications", n)))
	}
	b.WriteString("\n")

	if m.adding {
		b.WriteString("\n")
		b.WriteString(m.styles.Input.Render(m.input.View()))
		b.WriteString("\n")
		n := min(len(m.suggestions), maxSuggestions)
		for i := 0; i < n; i++ {
			prefix := "  "
			if i == m.suggestion {
				prefix = "→ "
			}
			b.WriteString(m.styles.Item.Render(prefix + m.suggestions[i]))
			b.WriteString("\n")
		}
		if len(m.suggestions) > n {
			b.WriteString(m.styles.Item.Render("  ..."))
			b.WriteString("\n")
		}
	}

	if m.err != nil {
		b.WriteString(m.styles.Error.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	} else if m.status != "" {
		b.WriteString(m.styles.Status.Render(m.status))
		b.WriteString("\n")
	}

	help := "a: Add • d: Remove • ↑/↓: Move • q: Quit"
	if m.adding {
		help = "Tab: Cycle suggestions • Enter: Add • Esc: Cancel"
	}
	b.WriteString(m.styles.Help.Render(help))
	return b.String()
}

// Run shows the preferences screen until the user quits.
func Run(store Store, candidates []string) error {
	m := New(store, candidates)
	defer m.Close()
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}
