package repository

import (
	"context"
	"time"
)

// StateStore abstracts ephemeral key-value state: refresh-token JTIs and
// password-reset tokens. Implementations: Redis (production) or in-memory (single instance, tests).
// Get and Take return (nil, nil) for missing or expired keys.
type StateStore interface {
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Get(ctx context.Context, key string) ([]byte, error)
	// Take returns the value and deletes the key in one step, for one-time tokens.
	Take(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}
