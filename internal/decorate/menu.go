package decorate

import (
	"errors"
	"fmt"

	"github.com/mj1618/undecorate/internal/platform"
)

// Menu item labels.
const (
	LabelUndecorate          = "Undecorate"
	LabelAlwaysUndecorate    = "Always Undecorate App"
	LabelDecorate            = "Decorate"
	LabelRemoveFromWhitelist = "Remove from Whitelist"
)

// MenuItem is an entry added to a window menu.
type MenuItem interface {
	SetSensitive(sensitive bool)
}

// Menu is the per-window menu being built by the host.
type Menu interface {
	AddSeparator()
	AddAction(label string, activate func() error) MenuItem
}

// MenuAugmenter appends decoration actions to a window menu.
type MenuAugmenter interface {
	AugmentMenu(m Menu, w platform.Window)
}

var _ MenuAugmenter = (*Controller)(nil)

// AugmentMenu appends a separator and the decoration actions that apply to
// w. A stopped controller leaves the menu untouched.
func (c *Controller) AugmentMenu(m Menu, w platform.Window) {
	var decorated, desktop, listed bool
	if err := c.do(func() {
		decorated = w.Decorated()
		desktop = w.Type() == platform.WindowDesktop
		if !decorated {
			_, listed = c.whitelisted(w)
		}
	}); err != nil {
		return
	}

	m.AddSeparator()
	var primary MenuItem
	if decorated {
		primary = m.AddAction(LabelUndecorate, func() error { return c.Undecorate(w) })
		m.AddAction(LabelAlwaysUndecorate, func() error { return c.AlwaysUndecorate(w) })
	} else {
		primary = m.AddAction(LabelDecorate, func() error { return c.Decorate(w) })
		if listed {
			m.AddAction(LabelRemoveFromWhitelist, func() error { return c.RemoveFromWhitelist(w) })
		}
	}
	if desktop {
		primary.SetSensitive(false)
	}
}

var (
	ErrNoSuchAction = errors.New("no such menu action")
	ErrInsensitive  = errors.New("menu action is disabled")
)

// RecordedItem is one entry of a RecordingMenu.
type RecordedItem struct {
	Label     string `yaml:"label,omitempty" json:"label,omitempty"`
	Separator bool   `yaml:"separator,omitempty" json:"separator,omitempty"`
	Sensitive bool   `yaml:"sensitive" json:"sensitive"`

	activate func() error
}

// SetSensitive implements MenuItem.
func (i *RecordedItem) SetSensitive(sensitive bool) {
	i.Sensitive = sensitive
}

// RecordingMenu is a Menu that keeps its entries so they can be listed and
// invoked later by label. The CLI and the MCP server use it in place of a
// real window menu.
type RecordingMenu struct {
	Items []*RecordedItem
}

// AddSeparator implements Menu.
func (m *RecordingMenu) AddSeparator() {
	m.Items = append(m.Items, &RecordedItem{Separator: true})
}

// AddAction implements Menu. Items start out sensitive.
func (m *RecordingMenu) AddAction(label string, activate func() error) MenuItem {
	item := &RecordedItem{Label: label, Sensitive: true, activate: activate}
	m.Items = append(m.Items, item)
	return item
}

// Actions returns the non-separator entries in order.
func (m *RecordingMenu) Actions() []*RecordedItem {
	var out []*RecordedItem
	for _, item := range m.Items {
		if !item.Separator {
			out = append(out, item)
		}
	}
	return out
}

// Labels returns the labels of all actions in order.
func (m *RecordingMenu) Labels() []string {
	var out []string
	for _, item := range m.Actions() {
		out = append(out, item.Label)
	}
	return out
}

// Lookup finds the action with the given label.
func (m *RecordingMenu) Lookup(label string) (*RecordedItem, bool) {
	for _, item := range m.Actions() {
		if item.Label == label {
			return item, true
		}
	}
	return nil, false
}

// Invoke activates the action with the given label.
func (m *RecordingMenu) Invoke(label string) error {
	item, ok := m.Lookup(label)
	if !ok {
		return fmt.Errorf("%w: %q", ErrNoSuchAction, label)
	}
	if !item.Sensitive {
		return fmt.Errorf("%w: %q", ErrInsensitive, label)
	}
	if item.activate == nil {
		return nil
	}
	return item.activate()
}
