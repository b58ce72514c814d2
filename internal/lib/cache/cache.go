// Package cache provides a small key/value cache used to avoid repeated user
// lookups. Values are stored as JSON so the memory and Redis backends behave
// the same way: callers always get a fresh copy back.
package cache

import (
	"context"
	"fmt"
	"strings"
)

// Cache is implemented by MemoryCache and RedisCache.
type Cache interface {
	// Get decodes the value stored under key into dest and reports whether
	// the key was present.
	Get(ctx context.Context, key string, dest any) (bool, error)
	Set(ctx context.Context, key string, value any) error
	Delete(ctx context.Context, keys ...string) error
}

// UserIDKey and UserEmailKey build the keys under which a user is cached.
func UserIDKey(id int64) string {
	return fmt.Sprintf("user_id_%d", id)
}

func UserEmailKey(email string) string {
	return "user_email_" + strings.ToLower(strings.TrimSpace(email))
}
