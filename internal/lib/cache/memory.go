package cache

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/rs/zerolog"
)

type memoryEntry struct {
	data       []byte
	expiration time.Time
}

// MemoryCache is a process-local cache with a fixed time to live per entry.
// Expired entries are never returned; the sweeper started by Start removes
// them from memory.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
	now     func() time.Time
	logger  *zerolog.Logger

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once
}

func NewMemoryCache(ttl time.Duration, logger *zerolog.Logger) *MemoryCache {
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
		now:     time.Now,
		logger:  logger,
	}
}

func (c *MemoryCache) Get(_ context.Context, key string, dest any) (bool, error) {
	c.mu.RLock()
	entry, found := c.entries[key]
	c.mu.RUnlock()

	if !found || c.now().After(entry.expiration) {
		return false, nil
	}

	if err := json.Unmarshal(entry.data, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (c *MemoryCache) Set(_ context.Context, key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.entries[key] = memoryEntry{data: data, expiration: c.now().Add(c.ttl)}
	c.mu.Unlock()
	return nil
}

func (c *MemoryCache) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	for _, key := range keys {
		delete(c.entries, key)
	}
	c.mu.Unlock()
	return nil
}

// Len returns the number of stored entries, expired ones included.
func (c *MemoryCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// CleanupExpired removes every expired entry and returns how many were dropped.
func (c *MemoryCache) CleanupExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	removed := 0
	for key, entry := range c.entries {
		if now.After(entry.expiration) {
			delete(c.entries, key)
			removed++
		}
	}
	return removed
}

// Start launches the periodic sweeper. It must be paired with Stop.
func (c *MemoryCache) Start(interval time.Duration) {
	c.stop = make(chan struct{})
	c.done = make(chan struct{})

	go func() {
		defer close(c.done)

		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				if removed := c.CleanupExpired(); removed > 0 && c.logger != nil {
					c.logger.Debug().Int("removed", removed).Msg("cache sweep")
				}
			case <-c.stop:
				return
			}
		}
	}()
}

// Stop halts the sweeper and waits for it to exit. Safe to call more than once
// and without a prior Start.
func (c *MemoryCache) Stop() {
	c.stopOnce.Do(func() {
		if c.stop == nil {
			return
		}
		close(c.stop)
		<-c.done
	})
}
