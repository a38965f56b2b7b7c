package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/mj1618/undecorate/internal/logging"
)

func openTestFile(t *testing.T) *File {
	t.Helper()
	path := filepath.Join(t.TempDir(), "undecorate", "settings.yaml")
	f, err := OpenFile(path, logging.Discard())
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { f.Close() })
	return f
}

func TestOpenFile_CreatesDefaults(t *testing.T) {
	f := openTestFile(t)

	b, err := os.ReadFile(f.Path())
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(b), KeyWhitelist) {
		t.Errorf("settings file missing %s:\n%s", KeyWhitelist, b)
	}

	got, err := f.GetStrv(KeyWhitelist)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("default whitelist = %v, want empty", got)
	}

	cfg, err := f.Config()
	if err != nil {
		t.Fatal(err)
	}
	if cfg != DefaultConfig() {
		t.Errorf("Config() = %+v, want %+v", cfg, DefaultConfig())
	}
}

func TestFile_SetStrvPersists(t *testing.T) {
	f := openTestFile(t)
	var keys []string
	f.Subscribe(func(key string) { keys = append(keys, key) })

	if err := f.SetStrv(KeyWhitelist, []string{"org.example.Foo", "kitty"}); err != nil {
		t.Fatal(err)
	}
	if len(keys) != 1 || keys[0] != KeyWhitelist {
		t.Errorf("own write notifications = %v", keys)
	}

	// A second handle on the same file sees the list.
	other, err := OpenFile(f.Path(), logging.Discard())
	if err != nil {
		t.Fatal(err)
	}
	defer other.Close()
	got, _ := other.GetStrv(KeyWhitelist)
	if strings.Join(got, ",") != "org.example.Foo,kitty" {
		t.Errorf("reopened whitelist = %v", got)
	}

	// Other settings survive the rewrite.
	cfg, err := other.Config()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.UndecorateDelay != 100*time.Millisecond {
		t.Errorf("undecorate-delay = %v after rewrite", cfg.UndecorateDelay)
	}
}

func TestFile_ConfigFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "settings.yaml")
	content := "window-whitelist: [a]\nundecorate-delay: 250ms\nhint-backend: native\nnotify-on-error: false\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	f, err := OpenFile(path, logging.Discard())
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()

	cfg, err := f.Config()
	if err != nil {
		t.Fatal(err)
	}
	if cfg.UndecorateDelay != 250*time.Millisecond {
		t.Errorf("UndecorateDelay = %v", cfg.UndecorateDelay)
	}
	if cfg.HintBackend != HintBackendNative {
		t.Errorf("HintBackend = %q", cfg.HintBackend)
	}
	if cfg.NotifyOnError {
		t.Error("NotifyOnError should be false")
	}
	if cfg.IdentityCacheTTL != 2*time.Second {
		t.Errorf("IdentityCacheTTL default lost: %v", cfg.IdentityCacheTTL)
	}
}

func TestFile_WatchSeesExternalWrites(t *testing.T) {
	f := openTestFile(t)
	if err := f.Watch(); err != nil {
		t.Fatal(err)
	}

	changed := make(chan string, 16)
	f.Subscribe(func(key string) { changed <- key })

	// Another process rewrites the file.
	content := "window-whitelist:\n  - org.example.Bar\nundecorate-delay: 100ms\n"
	if err := os.WriteFile(f.Path(), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	deadline := time.After(5 * time.Second)
	for {
		select {
		case key := <-changed:
			if key != KeyWhitelist {
				continue
			}
			got, _ := f.GetStrv(KeyWhitelist)
			if len(got) != 1 || got[0] != "org.example.Bar" {
				t.Fatalf("whitelist after external write = %v", got)
			}
			return
		case <-deadline:
			t.Fatal("no change notification for external write")
		}
	}
}

func TestFile_SetStrvLeavesNoTempFiles(t *testing.T) {
	f := openTestFile(t)
	for i := 0; i < 3; i++ {
		if err := f.SetStrv(KeyWhitelist, []string{fmt.Sprint("org.example.App", i)}); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := os.ReadDir(filepath.Dir(f.Path()))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 || entries[0].Name() != filepath.Base(f.Path()) {
		var names []string
		for _, e := range entries {
			names = append(names, e.Name())
		}
		t.Errorf("settings dir = %v, want only %s", names, filepath.Base(f.Path()))
	}
	got, _ := f.GetStrv(KeyWhitelist)
	if len(got) != 1 || got[0] != "org.example.App2" {
		t.Errorf("GetStrv = %v", got)
	}
}

func TestFile_WatcherNeverSeesPartialWrite(t *testing.T) {
	daemon := openTestFile(t)
	if err := daemon.Watch(); err != nil {
		t.Fatal(err)
	}
	var notified, empty atomic.Int32
	daemon.Subscribe(func(key string) {
		if key != KeyWhitelist {
			return
		}
		notified.Add(1)
		if got, _ := daemon.GetStrv(KeyWhitelist); len(got) == 0 {
			empty.Add(1)
		}
	})

	editor, err := OpenFile(daemon.Path(), logging.Discard())
	if err != nil {
		t.Fatal(err)
	}
	defer editor.Close()

	const writes = 200
	var list []string
	for i := 0; i < writes; i++ {
		list = append(list, fmt.Sprintf("org.example.App%d", i))
		if err := editor.SetStrv(KeyWhitelist, list); err != nil {
			t.Fatal(err)
		}
	}

	deadline := time.Now().Add(5 * time.Second)
	for {
		got, _ := daemon.GetStrv(KeyWhitelist)
		if len(got) == writes {
			break
		}
		if time.Now().After(deadline) {
			t.Fatalf("daemon whitelist has %d entries, want %d", len(got), writes)
		}
		time.Sleep(10 * time.Millisecond)
	}
	if n := empty.Load(); n != 0 {
		t.Errorf("daemon saw an empty whitelist %d times in %d notifications", n, notified.Load())
	}
}
