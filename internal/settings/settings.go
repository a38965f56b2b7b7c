// Package settings persists the daemon's settings and reports changes to
// them, including changes written by other processes.
package settings

import (
	"os"
	"path/filepath"
	"time"
)

// Setting keys.
const (
	KeyWhitelist        = "window-whitelist"
	KeyUndecorateDelay  = "undecorate-delay"
	KeyHintBackend      = "hint-backend"
	KeyIdentityCacheTTL = "identity-cache-ttl"
	KeyNotifyOnError    = "notify-on-error"
	KeyLogLevel         = "log-level"
)

// Hint backends.
const (
	HintBackendXprop  = "xprop"
	HintBackendNative = "native"
)

// Defaults for every key.
var Defaults = map[string]any{
	KeyWhitelist:        []string{},
	KeyUndecorateDelay:  "100ms",
	KeyHintBackend:      HintBackendXprop,
	KeyIdentityCacheTTL: "2s",
	KeyNotifyOnError:    true,
	KeyLogLevel:         "info",
}

// Backend is a key-value settings store with change notifications.
type Backend interface {
	// GetStrv returns the string list stored under key.
	GetStrv(key string) ([]string, error)

	// SetStrv replaces the whole string list stored under key in one write.
	SetStrv(key string, values []string) error

	// Subscribe registers fn to be called with the name of every key whose
	// value changed, whether this process or another one wrote it.
	Subscribe(fn func(key string)) (cancel func())

	Close() error
}

// Config holds the non-list settings.
type Config struct {
	UndecorateDelay  time.Duration `mapstructure:"undecorate-delay"`
	HintBackend      string        `mapstructure:"hint-backend"`
	IdentityCacheTTL time.Duration `mapstructure:"identity-cache-ttl"`
	NotifyOnError    bool          `mapstructure:"notify-on-error"`
	LogLevel         string        `mapstructure:"log-level"`
}

// DefaultConfig returns the configuration used when no file overrides it.
func DefaultConfig() Config {
	return Config{
		UndecorateDelay:  100 * time.Millisecond,
		HintBackend:      HintBackendXprop,
		IdentityCacheTTL: 2 * time.Second,
		NotifyOnError:    true,
		LogLevel:         "info",
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/undecorate/settings.yaml, falling
// back to ~/.config.
func DefaultPath() string {
	dir := os.Getenv("XDG_CONFIG_HOME")
	if dir == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dir = filepath.Join(home, ".config")
		}
	}
	return filepath.Join(dir, "undecorate", "settings.yaml")
}

// subscribers is the callback registry shared by the backends.
type subscribers struct {
	fns  map[int]func(string)
	next int
}

func (s *subscribers) add(fn func(string)) int {
	if s.fns == nil {
		s.fns = make(map[int]func(string))
	}
	id := s.next
	s.next++
	s.fns[id] = fn
	return id
}

func (s *subscribers) snapshot() []func(string) {
	out := make([]func(string), 0, len(s.fns))
	for _, fn := range s.fns {
		out = append(out, fn)
	}
	return out
}

func equalStrv(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
