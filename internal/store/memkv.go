package store

import (
	"context"
	"sync"
)

// MemKV is an in-memory KVStore used in tests and as a fallback when no
// database is available. It is safe for concurrent use.
type MemKV struct {
	mu   sync.Mutex
	data map[string]string

	// FailOps, when non-empty, makes the named operations return a
	// StorageError. Used to exercise degraded-storage paths in tests.
	FailOps map[string]error
}

var _ KVStore = (*MemKV)(nil)

// NewMemKV creates an empty in-memory store.
func NewMemKV() *MemKV {
	return &MemKV{data: make(map[string]string)}
}

func (m *MemKV) fail(op, key string) error {
	if err, ok := m.FailOps[op]; ok {
		return &StorageError{Op: op, Key: key, Err: err}
	}
	return nil
}

func (m *MemKV) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("get", key); err != nil {
		return "", false, err
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemKV) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("set", key); err != nil {
		return err
	}
	m.data[key] = value
	return nil
}

func (m *MemKV) Remove(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if err := m.fail("remove", key); err != nil {
		return err
	}
	delete(m.data, key)
	return nil
}

func (m *MemKV) MultiRemove(_ context.Context, keys []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, key := range keys {
		if err := m.fail("multi-remove", key); err != nil {
			return err
		}
		delete(m.data, key)
	}
	return nil
}
