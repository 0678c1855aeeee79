// Package idempotency remembers responses by (route, client key) so retried
// requests can be answered without executing them twice.
//
// The three Guard operations are each atomic for a single entry, but callers
// compose them without a lock: two concurrent first submissions of the same
// key may both execute. Entries expire after the configured TTL.
package idempotency

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

const DefaultTTL = 24 * time.Hour

// Guard stores request fingerprints and their serialized responses.
type Guard interface {
	// TryGet returns the cached response for (route, key) if one exists.
	TryGet(ctx context.Context, route, key string) ([]byte, bool, error)
	// IsConsistent reports whether no entry exists or the stored hash equals hash.
	IsConsistent(ctx context.Context, route, key, hash string) (bool, error)
	// Save stores or overwrites the entry for (route, key).
	Save(ctx context.Context, route, key, hash string, response []byte) error
}

type entry struct {
	Hash     string `json:"hash"`
	Response []byte `json:"response"`
}

func entryKey(route, key string) string {
	return fmt.Sprintf("idem:%s:%s", route, key)
}

// RequestHash fingerprints a normalized request as the hex SHA-256 of its
// JSON encoding. Struct field order makes the encoding stable.
func RequestHash(normalized interface{}) (string, error) {
	payload, err := json.Marshal(normalized)
	if err != nil {
		return "", fmt.Errorf("failed to encode request for hashing: %w", err)
	}
	sum := sha256.Sum256(payload)
	return hex.EncodeToString(sum[:]), nil
}
