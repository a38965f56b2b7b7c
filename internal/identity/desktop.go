package identity

import (
	"bytes"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/mj1618/undecorate/internal/model"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// DesktopIndex maps window class hints to installed desktop entry ids, the
// way the shell's window tracker does. It is rebuilt lazily once older than
// its TTL.
type DesktopIndex struct {
	mu        sync.Mutex
	dirs      []string
	ttl       time.Duration
	builtAt   time.Time
	ids       map[string]string // lowercased id -> id, both with .desktop
	byWMClass map[string]string // StartupWMClass -> id
	log       logrus.FieldLogger
}

// ApplicationDirs returns $XDG_DATA_HOME/applications followed by
// <dir>/applications for every $XDG_DATA_DIRS entry, in lookup priority.
func ApplicationDirs() []string {
	var dirs []string
	dataHome := os.Getenv("XDG_DATA_HOME")
	if dataHome == "" {
		if home, err := os.UserHomeDir(); err == nil {
			dataHome = filepath.Join(home, ".local", "share")
		}
	}
	if dataHome != "" {
		dirs = append(dirs, filepath.Join(dataHome, "applications"))
	}
	dataDirs := os.Getenv("XDG_DATA_DIRS")
	if dataDirs == "" {
		dataDirs = "/usr/local/share:/usr/share"
	}
	for _, d := range filepath.SplitList(dataDirs) {
		if d != "" {
			dirs = append(dirs, filepath.Join(d, "applications"))
		}
	}
	return dirs
}

// NewDesktopIndex returns an index over dirs, highest priority first. A ttl
// of 0 builds the index once.
func NewDesktopIndex(dirs []string, ttl time.Duration, log logrus.FieldLogger) *DesktopIndex {
	return &DesktopIndex{dirs: dirs, ttl: ttl, log: log}
}

// Lookup returns the desktop entry id (with .desktop) for a window carrying
// the given GTK application id and WM_CLASS class/instance, trying in order:
// the GTK application id, StartupWMClass, then the lowercased class and
// instance as entry ids.
func (ix *DesktopIndex) Lookup(gtkAppID, wmClass, wmInstance string) (string, bool) {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.refreshLocked()

	if gtkAppID != "" {
		if id, ok := ix.ids[strings.ToLower(gtkAppID+model.DesktopSuffix)]; ok {
			return id, true
		}
	}
	if wmClass != "" {
		if id, ok := ix.byWMClass[wmClass]; ok {
			return id, true
		}
	}
	for _, name := range []string{wmClass, wmInstance} {
		if name == "" {
			continue
		}
		if id, ok := ix.ids[strings.ToLower(name+model.DesktopSuffix)]; ok {
			return id, true
		}
	}
	return "", false
}

// IDs returns every indexed desktop entry id, sorted.
func (ix *DesktopIndex) IDs() []string {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.refreshLocked()
	out := make([]string, 0, len(ix.ids))
	for _, id := range ix.ids {
		out = append(out, id)
	}
	slices.Sort(out)
	return out
}

// Len returns the number of indexed entries.
func (ix *DesktopIndex) Len() int {
	ix.mu.Lock()
	defer ix.mu.Unlock()
	ix.refreshLocked()
	return len(ix.ids)
}

func (ix *DesktopIndex) refreshLocked() {
	if ix.ids != nil && (ix.ttl == 0 || time.Since(ix.builtAt) < ix.ttl) {
		return
	}
	ids := make(map[string]string)
	byWMClass := make(map[string]string)

	for _, dir := range ix.dirs {
		_ = filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if d == nil {
					return fs.SkipDir
				}
				return nil
			}
			if d.IsDir() || !strings.HasSuffix(d.Name(), model.DesktopSuffix) {
				return nil
			}
			rel, err := filepath.Rel(dir, path)
			if err != nil {
				return nil
			}
			id := strings.ReplaceAll(filepath.ToSlash(rel), "/", "-")
			key := strings.ToLower(id)
			if _, seen := ids[key]; seen {
				return nil
			}
			ids[key] = id

			wmClass, err := readStartupWMClass(path)
			if err != nil {
				ix.log.WithError(err).WithField("file", path).Debug("skipping unreadable desktop entry")
				return nil
			}
			if wmClass != "" {
				if _, taken := byWMClass[wmClass]; !taken {
					byWMClass[wmClass] = id
				}
			}
			return nil
		})
	}

	ix.ids = ids
	ix.byWMClass = byWMClass
	ix.builtAt = time.Now()
}

// readStartupWMClass parses a desktop entry with viper's ini codec and
// returns its [Desktop Entry] StartupWMClass.
func readStartupWMClass(path string) (string, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return "", err
	}
	v := viper.New()
	v.SetConfigType("ini")
	if err := v.ReadConfig(bytes.NewReader(b)); err != nil {
		return "", err
	}
	return strings.TrimSpace(v.GetString("desktop entry.startupwmclass")), nil
}
