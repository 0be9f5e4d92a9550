package repository

import (
	"context"
	"time"
)

// SessionRepository stores opaque values per (session, key).
type SessionRepository interface {
	// Get returns the stored value and whether it exists.
	Get(ctx context.Context, sid, key string) ([]byte, bool, error)
	Set(ctx context.Context, sid, key string, value []byte) error
	Delete(ctx context.Context, sid, key string) error
	// Clear removes every key of the session.
	Clear(ctx context.Context, sid string) error
}

// Purger is implemented by backends that need expired sessions removed
// explicitly.
type Purger interface {
	Purge(ctx context.Context, before time.Time) (int64, error)
}
