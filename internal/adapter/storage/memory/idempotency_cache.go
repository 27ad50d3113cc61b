package memory

import (
	"context"
	"sync"
)

// IdempotencyCache implements ports.IdempotencyCache with an in-process map.
// Entries never expire and the first write for a key wins for the lifetime
// of the process.
type IdempotencyCache struct {
	mu      sync.RWMutex
	entries map[string][]byte
}

// NewIdempotencyCache creates an empty IdempotencyCache.
func NewIdempotencyCache() *IdempotencyCache {
	return &IdempotencyCache{entries: make(map[string][]byte)}
}

// Get returns the cached payload, or nil, nil on a miss.
func (c *IdempotencyCache) Get(_ context.Context, key string) ([]byte, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	payload, ok := c.entries[key]
	if !ok {
		return nil, nil
	}
	out := make([]byte, len(payload))
	copy(out, payload)
	return out, nil
}

// Set stores the payload under key. An already-stored key is left untouched.
func (c *IdempotencyCache) Set(_ context.Context, key string, value []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, ok := c.entries[key]; ok {
		return nil
	}
	stored := make([]byte, len(value))
	copy(stored, value)
	c.entries[key] = stored
	return nil
}
