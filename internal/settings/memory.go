package settings

import (
	"sync"
)

// Memory is an in-process Backend. Writes notify subscribers synchronously.
type Memory struct {
	mu     sync.Mutex
	values map[string][]string
	subs   subscribers

	// failWrites, when set, is returned by SetStrv without storing.
	failWrites error
}

// NewMemory returns a Memory backend seeded with initial values.
func NewMemory(initial map[string][]string) *Memory {
	m := &Memory{values: make(map[string][]string)}
	for k, v := range initial {
		m.values[k] = append([]string(nil), v...)
	}
	return m
}

func (m *Memory) GetStrv(key string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string{}, m.values[key]...), nil
}

func (m *Memory) SetStrv(key string, values []string) error {
	m.mu.Lock()
	if m.failWrites != nil {
		err := m.failWrites
		m.mu.Unlock()
		return err
	}
	changed := !equalStrv(m.values[key], values)
	m.values[key] = append([]string(nil), values...)
	fns := m.subs.snapshot()
	m.mu.Unlock()

	if changed {
		for _, fn := range fns {
			fn(key)
		}
	}
	return nil
}

// SetFailWrites makes subsequent writes fail with err (nil clears it).
func (m *Memory) SetFailWrites(err error) {
	m.mu.Lock()
	m.failWrites = err
	m.mu.Unlock()
}

func (m *Memory) Subscribe(fn func(key string)) func() {
	m.mu.Lock()
	id := m.subs.add(fn)
	m.mu.Unlock()
	return func() {
		m.mu.Lock()
		delete(m.subs.fns, id)
		m.mu.Unlock()
	}
}

func (m *Memory) Close() error { return nil }
