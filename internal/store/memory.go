package store

import (
	"context"
	"sync"
)

// MemoryStorage keeps the blob in memory. SaveErr, when set, makes every
// Save fail with it.
type MemoryStorage struct {
	mu      sync.Mutex
	data    []byte
	saves   int
	SaveErr error
}

func NewMemoryStorage(initial []byte) *MemoryStorage {
	m := &MemoryStorage{}
	if initial != nil {
		m.data = append([]byte(nil), initial...)
	}
	return m
}

func (m *MemoryStorage) Load(ctx context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, ErrNotFound
	}
	return append([]byte(nil), m.data...), nil
}

func (m *MemoryStorage) Save(ctx context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.SaveErr != nil {
		return m.SaveErr
	}
	m.data = append([]byte(nil), data...)
	m.saves++
	return nil
}

// Saves counts successful saves.
func (m *MemoryStorage) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
