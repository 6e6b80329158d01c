package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"sync"
	"time"
)

// ContentCacheStore holds serialized read-model payloads keyed by
// namespace and request key. Misses are never errors.
type ContentCacheStore interface {
	Get(ctx context.Context, namespace, key string) ([]byte, bool, error)
	Set(ctx context.Context, namespace, key string, payload []byte, ttl time.Duration) error
	InvalidateNamespace(ctx context.Context, namespace string) error
}

type NoopContentCacheStore struct{}

func NewNoopContentCacheStore() *NoopContentCacheStore {
	return &NoopContentCacheStore{}
}

func (s *NoopContentCacheStore) Get(context.Context, string, string) ([]byte, bool, error) {
	return nil, false, nil
}

func (s *NoopContentCacheStore) Set(context.Context, string, string, []byte, time.Duration) error {
	return nil
}

func (s *NoopContentCacheStore) InvalidateNamespace(context.Context, string) error {
	return nil
}

type inMemoryContentEntry struct {
	payload   []byte
	expiresAt time.Time
}

type InMemoryContentCacheStore struct {
	mu    sync.RWMutex
	store map[string]map[string]inMemoryContentEntry
}

func NewInMemoryContentCacheStore() *InMemoryContentCacheStore {
	return &InMemoryContentCacheStore{
		store: make(map[string]map[string]inMemoryContentEntry),
	}
}

func (s *InMemoryContentCacheStore) Get(_ context.Context, namespace, key string) ([]byte, bool, error) {
	now := time.Now().UTC()
	s.mu.RLock()
	ns, ok := s.store[namespace]
	if !ok {
		s.mu.RUnlock()
		return nil, false, nil
	}
	entry, ok := ns[key]
	s.mu.RUnlock()
	if !ok {
		return nil, false, nil
	}
	if now.After(entry.expiresAt) {
		s.mu.Lock()
		if ns2, ok2 := s.store[namespace]; ok2 {
			delete(ns2, key)
			if len(ns2) == 0 {
				delete(s.store, namespace)
			}
		}
		s.mu.Unlock()
		return nil, false, nil
	}
	return entry.payload, true, nil
}

func (s *InMemoryContentCacheStore) Set(_ context.Context, namespace, key string, payload []byte, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	ns, ok := s.store[namespace]
	if !ok {
		ns = make(map[string]inMemoryContentEntry)
		s.store[namespace] = ns
	}
	ns[key] = inMemoryContentEntry{
		payload:   payload,
		expiresAt: time.Now().UTC().Add(ttl),
	}
	return nil
}

func (s *InMemoryContentCacheStore) InvalidateNamespace(_ context.Context, namespace string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.store, namespace)
	return nil
}

func normalizeToken(token string) string {
	return strings.ToLower(strings.TrimSpace(token))
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(normalizeToken(token)))
	return hex.EncodeToString(sum[:])
}
