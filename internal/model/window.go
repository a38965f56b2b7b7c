package model

import (
	"strings"

	"github.com/mj1618/undecorate/internal/platform"
)

// Window is the serializable snapshot of a window, as shown by `list` and
// the list_windows tool.
type Window struct {
	ID          string `yaml:"id"                    json:"id"`
	Title       string `yaml:"title,omitempty"       json:"title,omitempty"`
	Type        string `yaml:"type"                  json:"type"`
	App         string `yaml:"app,omitempty"         json:"app,omitempty"`
	Decorated   bool   `yaml:"decorated"             json:"decorated"`
	Whitelisted bool   `yaml:"whitelisted,omitempty" json:"whitelisted,omitempty"`
}

// NewWindow snapshots w. app is the resolved application identifier, if any.
func NewWindow(w platform.Window, app string, whitelisted bool) Window {
	out := Window{
		ID:          w.Description(),
		Type:        w.Type().String(),
		App:         app,
		Decorated:   w.Decorated(),
		Whitelisted: whitelisted,
	}
	if id, err := platform.ParseWindowID(w.Description()); err == nil {
		out.ID = platform.FormatWindowID(id)
		if _, title, ok := strings.Cut(w.Description(), " ("); ok {
			out.Title = strings.TrimSuffix(title, ")")
		}
	}
	return out
}

// Snapshot describes windows, resolving each window's application and
// whitelist membership.
func Snapshot(windows []platform.Window, resolve func(platform.Window) (string, bool), listed func(string) bool) []Window {
	out := make([]Window, 0, len(windows))
	for _, w := range windows {
		app, ok := resolve(w)
		out = append(out, NewWindow(w, app, ok && listed(app)))
	}
	return out
}
