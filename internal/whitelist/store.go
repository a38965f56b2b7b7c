// Package whitelist keeps the in-memory copy of the "always undecorate"
// application list in step with persisted settings.
package whitelist

import (
	"slices"
	"sync"

	"github.com/mj1618/undecorate/internal/settings"
	"github.com/sirupsen/logrus"
)

// Store owns the in-memory whitelist. Every mutation writes the whole list
// through to the backend in a single call before the in-memory copy is
// updated.
type Store struct {
	backend settings.Backend
	key     string
	log     logrus.FieldLogger

	// writeMu serializes mutations. It is held across backend writes, which
	// may deliver change notifications synchronously; those only take mu.
	writeMu sync.Mutex

	mu        sync.RWMutex
	ids       []string
	listeners map[int]func([]string)
	next      int
	unsub     func()
}

// NewStore returns a store for the window-whitelist key of backend. Call
// Load before use.
func NewStore(backend settings.Backend, log logrus.FieldLogger) *Store {
	s := &Store{
		backend:   backend,
		key:       settings.KeyWhitelist,
		log:       log,
		listeners: make(map[int]func([]string)),
	}
	s.unsub = backend.Subscribe(s.onBackendChange)
	return s
}

// Load reads the persisted list into memory and returns it.
func (s *Store) Load() ([]string, error) {
	ids, err := s.backend.GetStrv(s.key)
	if err != nil {
		return nil, &StorageError{Op: "load", Key: s.key, Err: err}
	}
	s.mu.Lock()
	s.ids = ids
	s.mu.Unlock()
	return slices.Clone(ids), nil
}

// List returns a copy of the in-memory whitelist in insertion order.
func (s *Store) List() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Clone(s.ids)
}

// Contains reports whether id is whitelisted. Matching is exact.
func (s *Store) Contains(id string) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return slices.Contains(s.ids, id)
}

// Add appends id and persists the list. It is a no-op when id is present.
func (s *Store) Add(id string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	cur := s.List()
	if slices.Contains(cur, id) {
		return nil
	}
	return s.commit("add", append(cur, id))
}

// Remove deletes the first occurrence of id and persists the list. It is a
// no-op when id is absent.
func (s *Store) Remove(id string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	cur := s.List()
	i := slices.Index(cur, id)
	if i < 0 {
		return nil
	}
	return s.commit("remove", slices.Delete(cur, i, i+1))
}

// Replace persists ids as the whole whitelist. Duplicates are dropped,
// keeping the first occurrence.
func (s *Store) Replace(ids []string) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	next := make([]string, 0, len(ids))
	for _, id := range ids {
		if id != "" && !slices.Contains(next, id) {
			next = append(next, id)
		}
	}
	return s.commit("replace", next)
}

func (s *Store) commit(op string, next []string) error {
	if err := s.backend.SetStrv(s.key, next); err != nil {
		s.log.WithError(err).WithField("op", op).Error("whitelist write failed")
		return &StorageError{Op: op, Key: s.key, Err: err}
	}
	s.mu.Lock()
	s.ids = next
	s.mu.Unlock()
	return nil
}

// OnExternalChange registers cb to run whenever the persisted whitelist
// changes, including through this store's own writes. The store has already
// reloaded its in-memory copy when cb runs.
func (s *Store) OnExternalChange(cb func([]string)) (cancel func()) {
	s.mu.Lock()
	id := s.next
	s.next++
	s.listeners[id] = cb
	s.mu.Unlock()
	return func() {
		s.mu.Lock()
		delete(s.listeners, id)
		s.mu.Unlock()
	}
}

func (s *Store) onBackendChange(key string) {
	if key != s.key {
		return
	}
	ids, err := s.backend.GetStrv(s.key)
	if err != nil {
		s.log.WithError(err).Error("whitelist reload failed")
		return
	}

	s.mu.Lock()
	s.ids = ids
	cbs := make([]func([]string), 0, len(s.listeners))
	for _, cb := range s.listeners {
		cbs = append(cbs, cb)
	}
	s.mu.Unlock()

	for _, cb := range cbs {
		cb(slices.Clone(ids))
	}
}

// Close detaches the store from the backend and releases the list.
func (s *Store) Close() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.unsub != nil {
		s.unsub()
		s.unsub = nil
	}
	s.ids = nil
	s.listeners = make(map[int]func([]string))
}
