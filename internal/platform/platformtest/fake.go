// Package platformtest provides in-memory window system doubles for tests.
package platformtest

import (
	"fmt"
	"sync"

	"github.com/mj1618/undecorate/internal/platform"
)

// Window is a fake platform.Window. It also implements platform.Focuser
// and records focus calls.
type Window struct {
	mu        sync.Mutex
	ID        uint32
	Title     string
	App       string // desktop entry id, e.g. "org.example.Foo.desktop"
	Kind      platform.WindowType
	decorated bool
	focuses   []uint32
}

// NewWindow returns a decorated normal window.
func NewWindow(id uint32, app string) *Window {
	return &Window{ID: id, App: app, Kind: platform.WindowNormal, decorated: true}
}

func (w *Window) Decorated() bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.decorated
}

// SetDecorated changes the decoration flag the window reports.
func (w *Window) SetDecorated(v bool) {
	w.mu.Lock()
	w.decorated = v
	w.mu.Unlock()
}

func (w *Window) Type() platform.WindowType { return w.Kind }

func (w *Window) Description() string {
	if w.Title == "" {
		return platform.FormatWindowID(w.ID)
	}
	return fmt.Sprintf("%s (%s)", platform.FormatWindowID(w.ID), w.Title)
}

func (w *Window) Focus(ts uint32) error {
	w.mu.Lock()
	w.focuses = append(w.focuses, ts)
	w.mu.Unlock()
	return nil
}

// Focuses returns the timestamps passed to Focus.
func (w *Window) Focuses() []uint32 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]uint32(nil), w.focuses...)
}

// ActivateOnlyWindow is a window that cannot take focus directly and must be
// activated instead.
type ActivateOnlyWindow struct {
	ID          uint32
	App         string
	decorated   bool
	activations []uint32
	mu          sync.Mutex
}

func NewActivateOnlyWindow(id uint32, app string) *ActivateOnlyWindow {
	return &ActivateOnlyWindow{ID: id, App: app, decorated: true}
}

func (w *ActivateOnlyWindow) Decorated() bool           { return w.decorated }
func (w *ActivateOnlyWindow) Type() platform.WindowType { return platform.WindowNormal }
func (w *ActivateOnlyWindow) Description() string       { return platform.FormatWindowID(w.ID) }

func (w *ActivateOnlyWindow) Activate(ts uint32) error {
	w.mu.Lock()
	w.activations = append(w.activations, ts)
	w.mu.Unlock()
	return nil
}

// Activations returns the timestamps passed to Activate.
func (w *ActivateOnlyWindow) Activations() []uint32 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]uint32(nil), w.activations...)
}

// WindowSystem is a fake platform.WindowSystem and platform.AppTracker.
type WindowSystem struct {
	mu      sync.Mutex
	windows []platform.Window
	subs    map[int]func(platform.Window)
	next    int
	Time    uint32
	closed  bool
}

func NewWindowSystem(windows ...platform.Window) *WindowSystem {
	return &WindowSystem{windows: windows, subs: map[int]func(platform.Window){}, Time: 1000}
}

func (s *WindowSystem) Windows() ([]platform.Window, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]platform.Window(nil), s.windows...), nil
}

func (s *WindowSystem) WatchCreated(fn func(platform.Window)) (func(), error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	id := s.next
	s.next++
	s.subs[id] = fn
	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}, nil
}

// Create adds w to the window list and notifies watchers.
func (s *WindowSystem) Create(w platform.Window) {
	s.mu.Lock()
	s.windows = append(s.windows, w)
	subs := make([]func(platform.Window), 0, len(s.subs))
	for _, fn := range s.subs {
		subs = append(subs, fn)
	}
	s.mu.Unlock()
	for _, fn := range subs {
		fn(w)
	}
}

// Watchers returns the number of registered created-window callbacks.
func (s *WindowSystem) Watchers() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.subs)
}

func (s *WindowSystem) CurrentTime() uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.Time
}

func (s *WindowSystem) Close() error {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	return nil
}

// WindowApp implements platform.AppTracker using the App field of the fake
// windows, whatever their type.
func (s *WindowSystem) WindowApp(w platform.Window) (string, error) {
	switch fw := w.(type) {
	case *Window:
		return fw.App, nil
	case *ActivateOnlyWindow:
		return fw.App, nil
	}
	return "", fmt.Errorf("unknown window %s", w.Description())
}

// HintCall is one recorded SetMotifHints call.
type HintCall struct {
	WindowID uint32
	Payload  string
}

// HintSetter records hint calls and flips the matching fake window's
// decoration flag. Err, when set, is returned instead.
type HintSetter struct {
	mu      sync.Mutex
	calls   []HintCall
	Err     error
	Windows *WindowSystem
}

func (h *HintSetter) SetMotifHints(id uint32, payload string) error {
	h.mu.Lock()
	h.calls = append(h.calls, HintCall{WindowID: id, Payload: payload})
	err := h.Err
	h.mu.Unlock()
	if err != nil {
		return err
	}
	if h.Windows != nil {
		ws, _ := h.Windows.Windows()
		for _, w := range ws {
			if fw, ok := w.(*Window); ok && fw.ID == id {
				fw.SetDecorated(payload == platform.MotifDecorationsOn)
			}
		}
	}
	return nil
}

// Calls returns the recorded calls.
func (h *HintSetter) Calls() []HintCall {
	h.mu.Lock()
	defer h.mu.Unlock()
	return append([]HintCall(nil), h.calls...)
}
