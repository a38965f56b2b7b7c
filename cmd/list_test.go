package cmd

import (
	"testing"

	"github.com/mj1618/undecorate/internal/model"
)

func TestListCommand_Flags(t *testing.T) {
	flags := listCmd.Flags()

	tests := []struct {
		name     string
		flagType string
	}{
		{"app", "string"},
		{"whitelisted", "bool"},
	}

	for _, tt := range tests {
		f := flags.Lookup(tt.name)
		if f == nil {
			t.Errorf("expected flag %q not found", tt.name)
			continue
		}
		if f.Value.Type() != tt.flagType {
			t.Errorf("flag %q: expected type %q, got %q", tt.name, tt.flagType, f.Value.Type())
		}
	}
}

func TestFilterWindows(t *testing.T) {
	windows := []model.Window{
		{ID: "0x1", App: "org.gnome.Terminal", Whitelisted: true},
		{ID: "0x2", App: "firefox"},
		{ID: "0x3"},
	}

	tests := []struct {
		name       string
		app        string
		onlyListed bool
		want       []string
	}{
		{"no filter", "", false, []string{"0x1", "0x2", "0x3"}},
		{"app substring", "TERM", false, []string{"0x1"}},
		{"whitelisted", "", true, []string{"0x1"}},
		{"no match", "gimp", false, nil},
	}
	for _, tt := range tests {
		got := filterWindows(windows, tt.app, tt.onlyListed)
		var ids []string
		for _, w := range got {
			ids = append(ids, w.ID)
		}
		if len(ids) != len(tt.want) {
			t.Errorf("%s: got %v, want %v", tt.name, ids, tt.want)
			continue
		}
		for i := range ids {
			if ids[i] != tt.want[i] {
				t.Errorf("%s: got %v, want %v", tt.name, ids, tt.want)
			}
		}
	}
}
