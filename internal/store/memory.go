package store

import "sync"

// Memory is an in-memory backend used in tests and as a fallback when no
// durable backend is wanted.
type Memory struct {
	mu     sync.RWMutex
	values map[string]string
}

// NewMemory creates an empty in-memory backend.
func NewMemory() *Memory {
	return &Memory{values: make(map[string]string)}
}

func (m *Memory) Get(key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.values[key]
	return v, ok, nil
}

func (m *Memory) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}

func (m *Memory) DeleteAll(keys ...string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, k := range keys {
		delete(m.values, k)
	}
	return nil
}

func (m *Memory) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values = nil
	return nil
}
