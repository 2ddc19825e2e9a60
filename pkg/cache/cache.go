// Package cache provides content-addressed caching for solved power-flow
// results and rendered artifacts.
//
// Keys are derived from the canonical JSON of the inputs, so a cache entry
// is valid exactly as long as the network and solver options are unchanged.
// Three backends are provided: FileCache for CLI usage, RedisCache for
// shared deployments, and NullCache to disable caching.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Cache is the interface all backends implement.
type Cache interface {
	// Get retrieves a value. The second return reports a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value with an optional TTL (zero means no expiry).
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// SolveKey builds the cache key for a power-flow solve from the canonical
// network JSON and the solver options.
func SolveKey(networkJSON []byte, opts any) string {
	return hashKey("solve", string(networkJSON), opts)
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	// Full SHA-256 to avoid collisions between similar networks.
	return fmt.Sprintf("%s:%s", prefix, Hash(data))
}

// Hash computes a SHA-256 hash of data as a 64-character hex string.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
