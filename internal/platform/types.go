package platform

import (
	"fmt"
	"strconv"
	"strings"
)

// WindowType classifies a window the way EWMH _NET_WM_WINDOW_TYPE does.
type WindowType int

const (
	WindowNormal WindowType = iota
	WindowDesktop
	WindowDock
	WindowDialog
	WindowUtility
	WindowSplash
	WindowMenu
	WindowToolbar
	WindowOther
)

var windowTypeNames = map[WindowType]string{
	WindowNormal:  "normal",
	WindowDesktop: "desktop",
	WindowDock:    "dock",
	WindowDialog:  "dialog",
	WindowUtility: "utility",
	WindowSplash:  "splash",
	WindowMenu:    "menu",
	WindowToolbar: "toolbar",
	WindowOther:   "other",
}

func (t WindowType) String() string {
	if s, ok := windowTypeNames[t]; ok {
		return s
	}
	return "other"
}

// ParseWindowType converts an EWMH atom name ("_NET_WM_WINDOW_TYPE_DESKTOP")
// or a short name ("desktop") to a WindowType. Unknown names map to
// WindowOther.
func ParseWindowType(s string) WindowType {
	name := strings.ToLower(strings.TrimPrefix(s, "_NET_WM_WINDOW_TYPE_"))
	switch name {
	case "normal":
		return WindowNormal
	case "desktop":
		return WindowDesktop
	case "dock":
		return WindowDock
	case "dialog":
		return WindowDialog
	case "utility":
		return WindowUtility
	case "splash":
		return WindowSplash
	case "menu", "dropdown_menu", "popup_menu":
		return WindowMenu
	case "toolbar":
		return WindowToolbar
	default:
		return WindowOther
	}
}

// ParseWindowID extracts the numeric window id from a window description.
// The id is read in base 16 with an optional 0x prefix; anything after the
// leading hex digits is ignored, so "0x3a00007 (Terminal)" yields 0x3a00007.
func ParseWindowID(desc string) (uint32, error) {
	s := strings.TrimSpace(desc)
	s = strings.TrimPrefix(strings.TrimPrefix(s, "0x"), "0X")
	end := 0
	for end < len(s) && isHexDigit(s[end]) {
		end++
	}
	if end == 0 {
		return 0, fmt.Errorf("invalid window description %q: no hex window id", desc)
	}
	v, err := strconv.ParseUint(s[:end], 16, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid window description %q: %w", desc, err)
	}
	return uint32(v), nil
}

// FormatWindowID renders a window id the way descriptions start.
func FormatWindowID(id uint32) string {
	return fmt.Sprintf("0x%x", id)
}

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

// _MOTIF_WM_HINTS payloads: flags=MWM_HINTS_DECORATIONS, functions=0,
// decorations=0 (none) or 1 (all), input mode=0, status=0.
const (
	MotifHintsProperty  = "_MOTIF_WM_HINTS"
	MotifDecorationsOff = "0x2, 0x0, 0x0, 0x0, 0x0"
	MotifDecorationsOn  = "0x2, 0x0, 0x1, 0x0, 0x0"
)
