// Package registry provides the process-local refresh token registry used
// when no store-backed implementation is configured.
package registry

import (
	"context"
	"sync"
)

// Memory is a mutex-guarded in-process token set. It satisfies the same
// contract as the Redis-backed registry but does not survive restarts.
type Memory struct {
	mu     sync.Mutex
	tokens map[string]struct{}
}

func NewMemory() *Memory {
	return &Memory{tokens: make(map[string]struct{})}
}

func (m *Memory) Register(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokens[token] = struct{}{}
	return nil
}

func (m *Memory) IsActive(_ context.Context, token string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.tokens[token]
	return ok, nil
}

func (m *Memory) Revoke(_ context.Context, token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.tokens, token)
	return nil
}
