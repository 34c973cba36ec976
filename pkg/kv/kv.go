// Package kv is the small key-value contract the cart and locale state persist through.
package kv

import (
	"context"
	"strings"
	"sync"
)

// Store is a string key-value store. Get reports a missing key with ok=false, not an error.
type Store interface {
	Get(ctx context.Context, key string) (value string, ok bool, err error)
	Set(ctx context.Context, key, value string) error
	Del(ctx context.Context, key string) error
}

// Memory is a process-local Store. The zero value is not usable; call NewMemory.
type Memory struct {
	mu   sync.RWMutex
	data map[string]string
}

func NewMemory() *Memory {
	return &Memory{data: make(map[string]string)}
}

func (m *Memory) Get(_ context.Context, key string) (string, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok, nil
}

func (m *Memory) Set(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *Memory) Del(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

// Len returns the number of stored keys.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.data)
}

type scoped struct {
	base   Store
	prefix string
}

// Scoped prefixes every key with prefix + ":".
func Scoped(base Store, prefix string) Store {
	prefix = strings.TrimRight(strings.TrimSpace(prefix), ":")
	if prefix == "" {
		return base
	}
	return &scoped{base: base, prefix: prefix}
}

func (s *scoped) key(k string) string {
	return s.prefix + ":" + k
}

func (s *scoped) Get(ctx context.Context, key string) (string, bool, error) {
	return s.base.Get(ctx, s.key(key))
}

func (s *scoped) Set(ctx context.Context, key, value string) error {
	return s.base.Set(ctx, s.key(key), value)
}

func (s *scoped) Del(ctx context.Context, key string) error {
	return s.base.Del(ctx, s.key(key))
}

// Sessions hands out one Store per browser session, all backed by the same base store.
type Sessions struct {
	base   Store
	prefix string
}

func NewSessions(base Store, prefix string) *Sessions {
	return &Sessions{base: base, prefix: prefix}
}

// ForSession returns the Store for sessionID.
func (s *Sessions) ForSession(sessionID string) Store {
	return Scoped(s.base, s.prefix+":"+strings.TrimSpace(sessionID))
}
