package settings

import (
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// File is a Backend persisted as a YAML file. Changes made by other
// processes are picked up through an fsnotify watch on the file's
// directory once Watch has been called.
type File struct {
	mu       sync.Mutex
	path     string
	v        *viper.Viper
	snapshot map[string]string
	subs     subscribers
	watcher  *fsnotify.Watcher
	log      logrus.FieldLogger
}

// OpenFile opens the settings file at path, creating it with defaults when
// it does not exist.
func OpenFile(path string, log logrus.FieldLogger) (*File, error) {
	path = filepath.Clean(path)
	v := newViper(path)

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create settings dir: %w", err)
		}
		if err := v.WriteConfigAs(path); err != nil {
			return nil, fmt.Errorf("create settings file %s: %w", path, err)
		}
	}
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read settings file %s: %w", path, err)
	}

	f := &File{
		path:     path,
		v:        v,
		snapshot: make(map[string]string),
		log:      log.WithField("settings", path),
	}
	for key := range Defaults {
		f.snapshot[key] = f.fingerprint(key)
	}
	return f, nil
}

func newViper(path string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	for key, value := range Defaults {
		v.SetDefault(key, value)
	}
	return v
}

// Path returns the settings file location.
func (f *File) Path() string { return f.path }

func (f *File) GetStrv(key string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string{}, f.v.GetStringSlice(key)...), nil
}

// SetStrv rewrites the whole file with key replaced. The live viper instance
// is never Set directly: viper overrides would shadow later reloads.
// Once the new file is in place the call succeeds; readers in other
// processes see either the old or the new contents, never a partial file.
func (f *File) SetStrv(key string, values []string) error {
	f.mu.Lock()
	w := viper.New()
	for _, k := range f.v.AllKeys() {
		w.Set(k, f.v.Get(k))
	}
	if values == nil {
		values = []string{}
	}
	w.Set(key, values)
	data, err := yaml.Marshal(w.AllSettings())
	if err != nil {
		f.mu.Unlock()
		return fmt.Errorf("encode settings: %w", err)
	}
	if err := writeFileAtomic(f.path, data); err != nil {
		f.mu.Unlock()
		return fmt.Errorf("write settings file %s: %w", f.path, err)
	}
	if err := f.v.ReadConfig(bytes.NewReader(data)); err != nil {
		f.log.WithError(err).Warn("settings written but not reloaded")
	}
	changed := f.refreshLocked(key)
	fns := f.subs.snapshot()
	f.mu.Unlock()

	if changed {
		for _, fn := range fns {
			fn(key)
		}
	}
	return nil
}

// writeFileAtomic replaces path with data through a temporary file in the
// same directory.
func writeFileAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return err
	}
	name := tmp.Name()
	defer os.Remove(name)

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(name, 0o644); err != nil {
		return err
	}
	return os.Rename(name, path)
}

// Config decodes the scalar settings.
func (f *File) Config() (Config, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	cfg := DefaultConfig()
	if err := f.v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("decode settings: %w", err)
	}
	return cfg, nil
}

func (f *File) Subscribe(fn func(key string)) func() {
	f.mu.Lock()
	id := f.subs.add(fn)
	f.mu.Unlock()
	return func() {
		f.mu.Lock()
		delete(f.subs.fns, id)
		f.mu.Unlock()
	}
}

// Watch starts reporting changes written by other processes. The directory
// is watched rather than the file so editors that replace the file on save
// are still seen.
func (f *File) Watch() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.watcher != nil {
		return nil
	}
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create settings watcher: %w", err)
	}
	if err := w.Add(filepath.Dir(f.path)); err != nil {
		_ = w.Close()
		return fmt.Errorf("watch %s: %w", filepath.Dir(f.path), err)
	}
	f.watcher = w
	go f.watchLoop(w)
	return nil
}

func (f *File) watchLoop(w *fsnotify.Watcher) {
	for {
		select {
		case ev, ok := <-w.Events:
			if !ok {
				return
			}
			if filepath.Clean(ev.Name) != f.path {
				continue
			}
			if ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) {
				f.reload()
			}
		case err, ok := <-w.Errors:
			if !ok {
				return
			}
			f.log.WithError(err).Warn("settings watcher error")
		}
	}
}

func (f *File) reload() {
	f.mu.Lock()
	if err := f.v.ReadInConfig(); err != nil {
		f.mu.Unlock()
		// Half-written files are common while another process saves.
		f.log.WithError(err).Debug("settings reload failed")
		return
	}
	var changed []string
	for key := range Defaults {
		if f.refreshLocked(key) {
			changed = append(changed, key)
		}
	}
	fns := f.subs.snapshot()
	f.mu.Unlock()

	for _, key := range changed {
		f.log.WithField("key", key).Debug("setting changed")
		for _, fn := range fns {
			fn(key)
		}
	}
}

// refreshLocked updates the stored fingerprint of key and reports whether
// it differs from the previous one.
func (f *File) refreshLocked(key string) bool {
	fp := f.fingerprint(key)
	if f.snapshot[key] == fp {
		return false
	}
	f.snapshot[key] = fp
	return true
}

func (f *File) fingerprint(key string) string {
	b, err := yaml.Marshal(f.v.Get(key))
	if err != nil {
		return fmt.Sprint(f.v.Get(key))
	}
	return string(b)
}

func (f *File) Close() error {
	f.mu.Lock()
	w := f.watcher
	f.watcher = nil
	f.mu.Unlock()
	if w == nil {
		return nil
	}
	return w.Close()
}
