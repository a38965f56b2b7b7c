package platform

import (
	"fmt"
	"runtime"
)

// Provider bundles all platform backends for the current session.
type Provider struct {
	Windows WindowSystem
	Tracker AppTracker

	// NativeHints writes decoration hints without spawning xprop. It is
	// nil when the backend has no native implementation.
	NativeHints HintSetter
}

// ErrUnsupported is returned on unsupported platforms.
var ErrUnsupported = fmt.Errorf("undecorate is not supported on %s/%s; supported: linux with an X11 session", runtime.GOOS, runtime.GOARCH)

// NewProviderFunc is set by platform-specific packages via init().
// See internal/platform/x11/init.go for the X11 registration.
var NewProviderFunc func() (*Provider, error)

// NewProvider returns a Provider for the current session.
func NewProvider() (*Provider, error) {
	if NewProviderFunc == nil {
		return nil, ErrUnsupported
	}
	return NewProviderFunc()
}

// Close releases the window system connection.
func (p *Provider) Close() error {
	if p == nil || p.Windows == nil {
		return nil
	}
	return p.Windows.Close()
}
