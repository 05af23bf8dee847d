package service

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"time"

	appErrors "github.com/noah-isme/planify-web/pkg/errors"
)

// memoryCache is an in-memory CacheRepository.
type memoryCache struct {
	mu      sync.Mutex
	values  map[string][]byte
	ttls    map[string]time.Duration
	deleted []string
}

func newMemoryCache() *memoryCache {
	return &memoryCache{values: map[string][]byte{}, ttls: map[string]time.Duration{}}
}

func (m *memoryCache) Get(ctx context.Context, key string, dest interface{}) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	raw, ok := m.values[key]
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = raw
	m.ttls[key] = ttl
	return nil
}

func (m *memoryCache) DeleteByPattern(ctx context.Context, pattern string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	prefix := strings.TrimSuffix(pattern, "*")
	for k := range m.values {
		if strings.HasPrefix(k, prefix) {
			delete(m.values, k)
			m.deleted = append(m.deleted, k)
		}
	}
	return nil
}

func (m *memoryCache) expireFresh() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for k := range m.values {
		if !strings.HasSuffix(k, staleSuffix) {
			delete(m.values, k)
		}
	}
}
