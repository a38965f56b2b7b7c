package prefs

import (
	"errors"
	"slices"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/mj1618/undecorate/internal/logging"
	"github.com/mj1618/undecorate/internal/settings"
	"github.com/mj1618/undecorate/internal/whitelist"
)

func newTestModel(t *testing.T, ids []string, candidates ...string) (Model, *whitelist.Store, *settings.Memory) {
	t.Helper()
	backend := settings.NewMemory(map[string][]string{settings.KeyWhitelist: ids})
	store := whitelist.NewStore(backend, logging.Discard())
	if _, err := store.Load(); err != nil {
		t.Fatal(err)
	}
	m := New(store, candidates)
	t.Cleanup(m.Close)
	return m, store, backend
}

func keys(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func send(t *testing.T, m Model, msgs ...tea.Msg) Model {
	t.Helper()
	for _, msg := range msgs {
		next, _ := m.Update(msg)
		m = next.(Model)
	}
	return m
}

func TestAddApplication(t *testing.T) {
	m, store, _ := newTestModel(t, nil)

	m = send(t, m, keys("a"))
	if !m.Adding() {
		t.Fatal("add prompt not open")
	}
	m = send(t, m, keys("org.gnome.Terminal.desktop"), tea.KeyMsg{Type: tea.KeyEnter})

	if m.Adding() {
		t.Error("add prompt still open")
	}
	if !store.Contains("org.gnome.Terminal") {
		t.Errorf("store = %v", store.List())
	}
	if got := m.IDs(); !slices.Equal(got, []string{"org.gnome.Terminal"}) {
		t.Errorf("IDs = %v", got)
	}
	if !strings.Contains(m.View(), "Added Terminal") {
		t.Errorf("view missing status:\n%s", m.View())
	}
}

func TestAddCancelled(t *testing.T) {
	m, store, _ := newTestModel(t, nil)
	m = send(t, m, keys("a"), keys("foo"), tea.KeyMsg{Type: tea.KeyEsc})
	if m.Adding() {
		t.Error("prompt still open after esc")
	}
	if len(store.List()) != 0 {
		t.Errorf("store = %v", store.List())
	}
}

func TestRemoveSelected(t *testing.T) {
	m, store, _ := newTestModel(t, []string{"org.gnome.Terminal", "org.gnome.Calculator"})

	m = send(t, m, keys("j"), keys("d"))
	if got := store.List(); !slices.Equal(got, []string{"org.gnome.Terminal"}) {
		t.Errorf("store = %v", got)
	}
	m = send(t, m, keys("d"))
	if len(store.List()) != 0 || len(m.IDs()) != 0 {
		t.Errorf("store = %v, ids = %v", store.List(), m.IDs())
	}
	if !strings.Contains(m.View(), "No applications") {
		t.Errorf("view:\n%s", m.View())
	}
	send(t, m, keys("d"))
}

func TestStorageErrorShown(t *testing.T) {
	m, store, backend := newTestModel(t, []string{"org.gnome.Terminal"})
	backend.SetFailWrites(errors.New("read-only file system"))

	m = send(t, m, keys("d"))
	if !store.Contains("org.gnome.Terminal") {
		t.Error("entry removed despite failed write")
	}
	if !strings.Contains(m.View(), "read-only file system") {
		t.Errorf("view missing error:\n%s", m.View())
	}
}

func TestExternalChangeUpdatesList(t *testing.T) {
	m, _, backend := newTestModel(t, []string{"org.gnome.Terminal"})
	wait := m.Init()

	if err := backend.SetStrv(settings.KeyWhitelist, []string{"org.gnome.Calculator", "firefox"}); err != nil {
		t.Fatal(err)
	}
	msg := wait()
	m = send(t, m, msg)

	if got := m.IDs(); !slices.Equal(got, []string{"org.gnome.Calculator", "firefox"}) {
		t.Errorf("IDs = %v", got)
	}
	if !strings.Contains(m.View(), "2 applications") {
		t.Errorf("view:\n%s", m.View())
	}
}

func TestExternalChangesCoalesce(t *testing.T) {
	m, _, backend := newTestModel(t, nil)
	for _, ids := range [][]string{{"a"}, {"a", "b"}, {"a", "b", "c"}} {
		if err := backend.SetStrv(settings.KeyWhitelist, ids); err != nil {
			t.Fatal(err)
		}
	}
	got := m.waitForChange()().(listChangedMsg)
	if !slices.Equal([]string(got), []string{"a", "b", "c"}) {
		t.Errorf("latest = %v", got)
	}
}

func TestSuggestions(t *testing.T) {
	m, _, _ := newTestModel(t, []string{"org.gnome.Terminal"},
		"org.gnome.Terminal", "org.gnome.Calculator", "org.gnome.Calendar", "firefox")

	m = send(t, m, keys("a"), keys("cal"))
	if want := []string{"org.gnome.Calculator", "org.gnome.Calendar"}; !slices.Equal(m.suggestions, want) {
		t.Fatalf("suggestions = %v, want %v", m.suggestions, want)
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyTab}, tea.KeyMsg{Type: tea.KeyTab})
	if got := m.input.Value(); got != "org.gnome.Calendar" {
		t.Errorf("value after two tabs = %q", got)
	}
	m = send(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	if got := m.input.Value(); got != "org.gnome.Calculator" {
		t.Errorf("value after shift+tab = %q", got)
	}
}

func TestQuit(t *testing.T) {
	m, _, _ := newTestModel(t, nil)
	_, cmd := m.Update(keys("q"))
	if cmd == nil {
		t.Fatal("expected quit command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit")
	}
}
