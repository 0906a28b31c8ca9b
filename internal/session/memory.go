package session

import (
	"context"
	"sync"
	"time"

	"github.com/streamatlas/stream-atlas/internal/model"
)

// Memory is the in-memory Store backing for single-process deployments.
// Expired entries are dropped on read; PurgeExpired sweeps the rest and is
// meant to run on a ticker from main.
type Memory struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
}

type memoryEntry struct {
	user      model.User
	expiresAt time.Time
}

var _ Store = (*Memory)(nil)

func NewMemory() *Memory {
	return &Memory{entries: make(map[string]memoryEntry)}
}

func (m *Memory) Put(_ context.Context, token string, u model.User, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[token] = memoryEntry{user: u, expiresAt: time.Now().Add(ttl)}
	return nil
}

func (m *Memory) Get(_ context.Context, token string) (model.User, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	e, ok := m.entries[token]
	if !ok {
		return model.User{}, false, nil
	}
	if time.Now().After(e.expiresAt) {
		delete(m.entries, token)
		return model.User{}, false, nil
	}
	return e.user, true, nil
}

func (m *Memory) Delete(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.entries, token)
	return nil
}

// PurgeExpired removes every expired entry and returns how many were
// dropped.
func (m *Memory) PurgeExpired() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	now := time.Now()
	n := 0
	for token, e := range m.entries {
		if now.After(e.expiresAt) {
			delete(m.entries, token)
			n++
		}
	}
	return n
}

// Len reports the number of live entries, expired ones included until the
// next sweep.
func (m *Memory) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.entries)
}
