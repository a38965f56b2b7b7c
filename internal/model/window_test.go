package model

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/mj1618/undecorate/internal/platform"
	"gopkg.in/yaml.v3"
)

func TestWindow_OmitsEmptyFields(t *testing.T) {
	w := Window{ID: "0x3a00007", Type: "normal", Decorated: true}

	b, err := json.Marshal(w)
	if err != nil {
		t.Fatal(err)
	}
	s := string(b)
	for _, key := range []string{"title", "app", "whitelisted"} {
		if strings.Contains(s, `"`+key+`"`) {
			t.Errorf("JSON should omit empty %q: %s", key, s)
		}
	}
	if !strings.Contains(s, `"decorated":true`) {
		t.Errorf("JSON missing decorated flag: %s", s)
	}
}

func TestWindow_YAMLKeys(t *testing.T) {
	w := Window{ID: "0x1", Type: "desktop", App: "org.example.Foo", Whitelisted: true}

	b, err := yaml.Marshal(w)
	if err != nil {
		t.Fatal(err)
	}
	s := string(b)
	for _, want := range []string{"0x1", "type: desktop", "app: org.example.Foo", "whitelisted: true", "decorated: false"} {
		if !strings.Contains(s, want) {
			t.Errorf("YAML missing %q:\n%s", want, s)
		}
	}
}

type stubWindow struct {
	desc      string
	kind      platform.WindowType
	decorated bool
}

func (w stubWindow) Decorated() bool           { return w.decorated }
func (w stubWindow) Type() platform.WindowType { return w.kind }
func (w stubWindow) Description() string       { return w.desc }

func TestNewWindow(t *testing.T) {
	tests := []struct {
		desc      string
		wantID    string
		wantTitle string
	}{
		{"0x3A00007 (Terminal)", "0x3a00007", "Terminal"},
		{"0x10", "0x10", ""},
		{"3a00007 (Files (2))", "0x3a00007", "Files (2)"},
		{"not a window", "not a window", ""},
	}
	for _, tt := range tests {
		got := NewWindow(stubWindow{desc: tt.desc, kind: platform.WindowDialog}, "org.gnome.Terminal", true)
		if got.ID != tt.wantID || got.Title != tt.wantTitle {
			t.Errorf("NewWindow(%q) = id %q title %q, want %q %q", tt.desc, got.ID, got.Title, tt.wantID, tt.wantTitle)
		}
		if got.Type != "dialog" || got.App != "org.gnome.Terminal" || !got.Whitelisted || got.Decorated {
			t.Errorf("NewWindow(%q) = %+v", tt.desc, got)
		}
	}
}
