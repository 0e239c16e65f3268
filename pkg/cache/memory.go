package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"
)

const memoryDefaultTTL = 24 * time.Hour

// MemoryCache is a map-backed Client used in tests and local development.
// It is not safe for concurrent use.
type MemoryCache struct {
	store map[string]cacheItem
}

type cacheItem struct {
	value      string
	expiration time.Time
}

// NewMemoryCache creates an empty in-memory cache.
func NewMemoryCache() *MemoryCache {
	return &MemoryCache{
		store: make(map[string]cacheItem),
	}
}

// Get retrieves a value, expiring stale entries on read.
func (m *MemoryCache) Get(ctx context.Context, key string) (string, error) {
	item, exists := m.store[key]
	if !exists {
		return "", fmt.Errorf("key not found")
	}

	if time.Now().After(item.expiration) {
		delete(m.store, key)
		return "", fmt.Errorf("key expired")
	}

	return item.value, nil
}

// Set stores a value. Structured values are stored as JSON; an expiration of
// zero falls back to the default TTL.
func (m *MemoryCache) Set(ctx context.Context, key string, value interface{}, expiration time.Duration) error {
	var strValue string
	switch v := value.(type) {
	case string:
		strValue = v
	case []byte:
		strValue = string(v)
	default:
		data, err := json.Marshal(value)
		if err != nil {
			return fmt.Errorf("failed to marshal value: %w", err)
		}
		strValue = string(data)
	}

	exp := time.Now().Add(expiration)
	if expiration == 0 {
		exp = time.Now().Add(memoryDefaultTTL)
	}

	m.store[key] = cacheItem{
		value:      strValue,
		expiration: exp,
	}

	return nil
}

// Delete removes keys.
func (m *MemoryCache) Delete(ctx context.Context, keys ...string) error {
	for _, key := range keys {
		delete(m.store, key)
	}
	return nil
}

// Exists counts how many of the given keys are present.
func (m *MemoryCache) Exists(ctx context.Context, keys ...string) (int64, error) {
	count := int64(0)
	for _, key := range keys {
		if _, exists := m.store[key]; exists {
			count++
		}
	}
	return count, nil
}

// Increment bumps a counter key, creating it at 1 when absent.
func (m *MemoryCache) Increment(ctx context.Context, key string) (int64, error) {
	item, exists := m.store[key]
	if !exists {
		m.Set(ctx, key, "1", memoryDefaultTTL)
		return 1, nil
	}

	var current int64
	fmt.Sscanf(item.value, "%d", &current)
	current++

	m.Set(ctx, key, fmt.Sprintf("%d", current), memoryDefaultTTL)
	return current, nil
}

// Expire resets the expiration on an existing key.
func (m *MemoryCache) Expire(ctx context.Context, key string, expiration time.Duration) error {
	item, exists := m.store[key]
	if !exists {
		return fmt.Errorf("key not found")
	}

	item.expiration = time.Now().Add(expiration)
	m.store[key] = item
	return nil
}

// Close drops all entries.
func (m *MemoryCache) Close() error {
	m.store = make(map[string]cacheItem)
	return nil
}
