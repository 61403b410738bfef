package views

import (
	"context"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"
)

// RedisStore backs the anonymous dedup window with TTL keys. SET NX with
// an expiry gives the mark-and-check in one round trip, so the window is
// enforced server-side and shared by every app process.
type RedisStore struct {
	c *redis.Client
}

func NewRedisStore(addr, password string, db int) *RedisStore {
	return &RedisStore{c: redis.NewClient(&redis.Options{Addr: addr, Password: password, DB: db})}
}

// NewRedisStoreFromClient wraps an existing client, used by tests.
func NewRedisStoreFromClient(c *redis.Client) *RedisStore {
	return &RedisStore{c: c}
}

func (s *RedisStore) MarkOnce(ctx context.Context, key string, window time.Duration) (bool, error) {
	return s.c.SetNX(ctx, key, 1, window).Result()
}

// MemoryStore is a process-local DedupStore for development runs without
// Redis. Expired entries are dropped lazily on access.
type MemoryStore struct {
	mu      sync.Mutex
	entries map[string]time.Time
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{entries: make(map[string]time.Time)}
}

func (s *MemoryStore) MarkOnce(ctx context.Context, key string, window time.Duration) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	if exp, ok := s.entries[key]; ok && exp.After(now) {
		return false, nil
	}
	s.entries[key] = now.Add(window)
	return true, nil
}
