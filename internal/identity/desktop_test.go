package identity

import (
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/mj1618/undecorate/internal/logging"
)

func writeDesktopEntry(t *testing.T, dir, name, body string) {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestDesktopIndex_Lookup(t *testing.T) {
	user := t.TempDir()
	system := t.TempDir()

	writeDesktopEntry(t, system, "org.gnome.Terminal.desktop", "[Desktop Entry]\nName=Terminal\nExec=gnome-terminal\nType=Application\n")
	writeDesktopEntry(t, system, "code.desktop", "[Desktop Entry]\nName=Visual Studio Code\nExec=code %F\nStartupWMClass=Code\n")
	writeDesktopEntry(t, system, "kde/org.kde.konsole.desktop", "[Desktop Entry]\nName=Konsole\n")
	writeDesktopEntry(t, system, "firefox.desktop", "[Desktop Entry]\nName=Firefox (system)\n")
	writeDesktopEntry(t, user, "firefox.desktop", "[Desktop Entry]\nName=Firefox (user)\n")

	ix := NewDesktopIndex([]string{user, system}, 0, logging.Discard())

	tests := []struct {
		name                 string
		gtk, class, instance string
		want                 string
		wantOK               bool
	}{
		{"gtk application id", "org.gnome.Terminal", "Gnome-terminal", "gnome-terminal-server", "org.gnome.Terminal.desktop", true},
		{"startup wm class", "", "Code", "code", "code.desktop", true},
		{"lowercased class", "", "Firefox", "Navigator", "firefox.desktop", true},
		{"instance", "", "Unknown", "firefox", "firefox.desktop", true},
		{"subdirectory id", "org.kde.konsole", "", "", "kde-org.kde.konsole.desktop", true},
		{"no match", "", "xterm", "xterm", "", false},
	}
	for _, tt := range tests {
		got, ok := ix.Lookup(tt.gtk, tt.class, tt.instance)
		if ok != tt.wantOK || got != tt.want {
			t.Errorf("%s: Lookup = (%q, %v), want (%q, %v)", tt.name, got, ok, tt.want, tt.wantOK)
		}
	}
	if ix.Len() != 4 {
		t.Errorf("Len() = %d, want 4 (user entry shadows system firefox)", ix.Len())
	}
	want := []string{"code.desktop", "firefox.desktop", "kde-org.kde.konsole.desktop", "org.gnome.Terminal.desktop"}
	if got := ix.IDs(); !slices.Equal(got, want) {
		t.Errorf("IDs() = %v, want %v", got, want)
	}
}

func TestDesktopIndex_RebuildsAfterTTL(t *testing.T) {
	dir := t.TempDir()
	ix := NewDesktopIndex([]string{dir}, time.Millisecond, logging.Discard())

	if _, ok := ix.Lookup("org.example.Foo", "", ""); ok {
		t.Fatal("empty index matched")
	}
	writeDesktopEntry(t, dir, "org.example.Foo.desktop", "[Desktop Entry]\nName=Foo\n")
	time.Sleep(5 * time.Millisecond)

	if id, ok := ix.Lookup("org.example.Foo", "", ""); !ok || id != "org.example.Foo.desktop" {
		t.Errorf("Lookup after rebuild = (%q, %v)", id, ok)
	}
}

func TestApplicationDirs(t *testing.T) {
	t.Setenv("XDG_DATA_HOME", "/home/u/.local/share")
	t.Setenv("XDG_DATA_DIRS", "/usr/local/share:/usr/share")

	dirs := ApplicationDirs()
	want := []string{
		"/home/u/.local/share/applications",
		"/usr/local/share/applications",
		"/usr/share/applications",
	}
	if len(dirs) != len(want) {
		t.Fatalf("ApplicationDirs() = %v", dirs)
	}
	for i := range want {
		if dirs[i] != want[i] {
			t.Errorf("dirs[%d] = %q, want %q", i, dirs[i], want[i])
		}
	}
}
