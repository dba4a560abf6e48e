// Package cache provides byte-level caching of ghost transform
// results.
//
// Transforming a document is deterministic: the same input document,
// selection, and engine configuration always yield the same output.
// That makes transform results safe to cache by content hash. The
// package ships three backends:
//
//   - FileCache: directory-backed, for CLI usage
//   - RedisCache: shared cache for server deployments
//   - NullCache: caching disabled
//
// Keys are built with [TransformKey], which hashes the document bytes
// together with every input that affects the output.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

// Cache stores opaque byte values under string keys with optional TTL.
// Implementations must treat a missing key as a miss, not an error.
type Cache interface {
	// Get retrieves a value. The second return value reports a hit.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set stores a value. ttl <= 0 means no expiration.
	Set(ctx context.Context, key string, data []byte, ttl time.Duration) error

	// Delete removes a value. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error

	// Close releases backend resources.
	Close() error
}

// TransformKeyOpts are the inputs, besides the document itself, that
// affect a transform result. Two runs with equal document bytes and
// equal opts produce byte-identical output.
type TransformKeyOpts struct {
	Selection    []string // selected root node IDs, in order
	CornerRadius float64
	BaseOpacity  float64
	MinOpacity   float64
	MaxOpacity   float64
}

// TransformKey builds a cache key for a ghost transform from the
// document content hash and the transform options.
func TransformKey(docHash string, opts TransformKeyOpts) string {
	return hashKey("ghost", docHash, opts)
}

// Hash computes a SHA-256 hash of the input data.
// Returns the full 64-character hex string.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// hashKey generates a cache key by hashing the components.
// The key format is: prefix:hash(parts...)
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(sum[:]))
}
