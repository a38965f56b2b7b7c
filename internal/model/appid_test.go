package model

import "testing"

func TestNormalizeAppID(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"org.gnome.Terminal.desktop", "org.gnome.Terminal"},
		{"org.gnome.Terminal", "org.gnome.Terminal"},
		{"firefox.desktop", "firefox"},
		{"  kitty.desktop ", "kitty"},
		{"my.desktop.app", "my.desktop.app"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeAppID(tt.input); got != tt.want {
			t.Errorf("NormalizeAppID(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"org.gnome.Terminal", "Terminal"},
		{"org.mozilla.firefox", "Firefox"},
		{"kitty", "kitty"},
		{"org.example.", "org.example."},
		{"com.example.émile", "Émile"},
	}
	for _, tt := range tests {
		if got := DisplayName(tt.input); got != tt.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.input, got, tt.want)
		}
	}
}
