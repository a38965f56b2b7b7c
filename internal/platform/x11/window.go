package x11

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
	"github.com/BurntSushi/xgbutil/ewmh"
	"github.com/BurntSushi/xgbutil/xprop"
	"github.com/mj1618/undecorate/internal/platform"
)

// Window is a managed X client window.
type Window struct {
	d     *Display
	id    xproto.Window
	title string
}

var _ platform.Focuser = (*Window)(nil)

// ID returns the X window id.
func (w *Window) ID() uint32 { return uint32(w.id) }

// Title returns the window title read when the window was listed.
func (w *Window) Title() string { return w.title }

// Decorated reports whether the window currently asks for decorations.
// Windows without a decorations hint are decorated.
func (w *Window) Decorated() bool {
	nums, err := xprop.PropValNums(xprop.GetProperty(w.d.X, w.id, platform.MotifHintsProperty))
	if err != nil {
		return true
	}
	return motifDecorated(nums)
}

// Type returns the first _NET_WM_WINDOW_TYPE of the window.
func (w *Window) Type() platform.WindowType {
	types, err := ewmh.WmWindowTypeGet(w.d.X, w.id)
	if err != nil || len(types) == 0 {
		return platform.WindowNormal
	}
	return platform.ParseWindowType(types[0])
}

func (w *Window) Description() string {
	if w.title == "" {
		return platform.FormatWindowID(uint32(w.id))
	}
	return fmt.Sprintf("%s (%s)", platform.FormatWindowID(uint32(w.id)), w.title)
}

// Focus asks the window manager to activate the window, as a pager would.
func (w *Window) Focus(ts uint32) error {
	return ewmh.ActiveWindowReqExtra(w.d.X, w.id, 2, xproto.Timestamp(ts), 0)
}
