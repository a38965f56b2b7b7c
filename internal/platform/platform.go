package platform

import "fmt"

// Window is a live top-level window owned by the host window system.
// Implementations are handles: every accessor queries the host again, so
// the decoration state is never cached.
type Window interface {
	// Decorated reports whether the window manager currently draws
	// decorations for the window.
	Decorated() bool

	// Type classifies the window (normal, desktop, dock, ...).
	Type() WindowType

	// Description is an implementation-defined string that starts with the
	// window's numeric id in base 16, e.g. "0x3a00007 (Terminal)".
	Description() string
}

// Focuser is implemented by windows that can take input focus directly.
type Focuser interface {
	Focus(timestamp uint32) error
}

// Activator is implemented by windows that can be raised and activated.
type Activator interface {
	Activate(timestamp uint32) error
}

// WindowSystem lists windows and reports newly created ones.
type WindowSystem interface {
	// Windows returns every currently managed top-level window.
	Windows() ([]Window, error)

	// WatchCreated registers fn to be called for each new window. The
	// returned cancel func unregisters it.
	WatchCreated(fn func(Window)) (cancel func(), err error)

	// CurrentTime returns the host's current event timestamp.
	CurrentTime() uint32

	Close() error
}

// AppTracker maps a window to the desktop entry id of its owning
// application, e.g. "org.gnome.Terminal.desktop". An empty id with a nil
// error means the window has no owning application.
type AppTracker interface {
	WindowApp(w Window) (string, error)
}

// HintSetter writes a _MOTIF_WM_HINTS payload on a window.
type HintSetter interface {
	SetMotifHints(windowID uint32, payload string) error
}

// FindWindow returns the managed window whose description starts with id.
func FindWindow(ws WindowSystem, id uint32) (Window, error) {
	windows, err := ws.Windows()
	if err != nil {
		return nil, err
	}
	for _, w := range windows {
		if got, err := ParseWindowID(w.Description()); err == nil && got == id {
			return w, nil
		}
	}
	return nil, fmt.Errorf("no window %s", FormatWindowID(id))
}
