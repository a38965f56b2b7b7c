package cmd

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/mj1618/undecorate/internal/decorate"
	"github.com/mj1618/undecorate/internal/platform"
	"github.com/mj1618/undecorate/internal/platform/platformtest"
)

// fakeSession points the CLI at fake windows and a settings file that
// whitelists their application.
func fakeSession(t *testing.T, windows ...platform.Window) (string, *platformtest.HintSetter) {
	t.Helper()
	cfg := tempConfig(t)
	if err := os.MkdirAll(filepath.Dir(cfg), 0o755); err != nil {
		t.Fatal(err)
	}
	content := "window-whitelist:\n  - org.gnome.Terminal\nhint-backend: native\n"
	if err := os.WriteFile(cfg, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	ws := platformtest.NewWindowSystem(windows...)
	hints := &platformtest.HintSetter{Windows: ws}
	old := platform.NewProviderFunc
	platform.NewProviderFunc = func() (*platform.Provider, error) {
		return &platform.Provider{Windows: ws, Tracker: ws, NativeHints: hints}, nil
	}
	t.Cleanup(func() {
		platform.NewProviderFunc = old
		menuCmd.Flags().Set("invoke", "")
	})
	return cfg, hints
}

func TestMenuCommand_ListDoesNotTouchWindows(t *testing.T) {
	w := platformtest.NewWindow(0x3a00007, "org.gnome.Terminal.desktop")
	other := platformtest.NewWindow(0x3a00009, "org.gnome.Terminal.desktop")
	cfg, hints := fakeSession(t, w, other)

	out, err := runCLI(t, "--config", cfg, "--format", "yaml", "menu", "--window-id", "0x3a00007")
	if err != nil {
		t.Fatal(err)
	}
	if calls := hints.Calls(); len(calls) != 0 {
		t.Errorf("hint calls = %v, want none", calls)
	}
	for _, label := range []string{decorate.LabelUndecorate, decorate.LabelAlwaysUndecorate} {
		if !strings.Contains(out, label) {
			t.Errorf("menu output missing %q:\n%s", label, out)
		}
	}
}

func TestMenuCommand_InvokeHintsOnlyTheWindow(t *testing.T) {
	w := platformtest.NewWindow(0x3a00007, "org.gnome.Terminal.desktop")
	other := platformtest.NewWindow(0x3a00009, "org.gnome.Terminal.desktop")
	cfg, hints := fakeSession(t, w, other)

	if _, err := runCLI(t, "--config", cfg, "--format", "yaml", "menu", "--window-id", "0x3a00007", "--invoke", decorate.LabelUndecorate); err != nil {
		t.Fatal(err)
	}
	var ids []uint32
	for _, c := range hints.Calls() {
		ids = append(ids, c.WindowID)
	}
	if !slices.Equal(ids, []uint32{0x3a00007}) {
		t.Errorf("hinted windows = %#v, want only 0x3a00007", ids)
	}
}
