package storage

import (
	"context"
	"strconv"
	"sync"
)

// MemoryStore keeps values in process memory. It is used for tests and for
// the "memory" driver, where nothing survives a restart.
type MemoryStore struct {
	mu     sync.RWMutex
	data   map[string]string
	closed bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: make(map[string]string)}
}

func (m *MemoryStore) Get(ctx context.Context, key string) (string, bool, error) {
	if err := ctx.Err(); err != nil {
		return "", false, wrapErr("get", key, err)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.closed {
		return "", false, wrapErr("get", key, ErrClosed)
	}
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *MemoryStore) Set(ctx context.Context, key, value string) error {
	if err := ctx.Err(); err != nil {
		return wrapErr("set", key, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return wrapErr("set", key, ErrClosed)
	}
	m.data[key] = value
	return nil
}

func (m *MemoryStore) Remove(ctx context.Context, key string) error {
	if err := ctx.Err(); err != nil {
		return wrapErr("remove", key, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return wrapErr("remove", key, ErrClosed)
	}
	delete(m.data, key)
	return nil
}

func (m *MemoryStore) Incr(ctx context.Context, key string, delta int64) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, wrapErr("incr", key, err)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return 0, wrapErr("incr", key, ErrClosed)
	}
	cur, _ := strconv.ParseInt(m.data[key], 10, 64)
	cur += delta
	m.data[key] = strconv.FormatInt(cur, 10)
	return cur, nil
}

func (m *MemoryStore) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}
