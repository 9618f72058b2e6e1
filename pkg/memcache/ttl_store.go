// Package mem holds short-lived key/value state: revoked tokens and cached
// chat answers. Redis backs it when configured, a process-local map otherwise.
package mem

import (
	"context"
	"sync"
	"time"
)

type TTLStore interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error

	// Get returns the value for key if present and not expired.
	Get(ctx context.Context, key string) (string, bool, error)

	Delete(ctx context.Context, key string) error
}

// RevokedTokenKey marks a token id as logged out until the token expires.
func RevokedTokenKey(jti string) string {
	return "revoked:" + jti
}

type entry struct {
	value     string
	expiresAt time.Time
}

type MemoryStore struct {
	mu    sync.RWMutex
	data  map[string]entry
	clock func() time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		data:  make(map[string]entry),
		clock: time.Now,
	}
}

func (s *MemoryStore) Set(_ context.Context, key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.clock()
	s.data[key] = entry{
		value:     value,
		expiresAt: now.Add(ttl),
	}

	if len(s.data) > 10000 {
		for k, e := range s.data {
			if now.After(e.expiresAt) {
				delete(s.data, k)
			}
		}
	}
	return nil
}

func (s *MemoryStore) Get(_ context.Context, key string) (string, bool, error) {
	s.mu.RLock()
	e, ok := s.data[key]
	s.mu.RUnlock()

	if !ok {
		return "", false, nil
	}
	if s.clock().After(e.expiresAt) {
		s.mu.Lock()
		delete(s.data, key)
		s.mu.Unlock()
		return "", false, nil
	}
	return e.value, true, nil
}

func (s *MemoryStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}
