// Package session implements the session registry: an opaque token mapped
// to the user snapshot hydrated at login. The registry is an interface with
// pluggable backings so single-process deployments can run on the in-memory
// map while multi-process ones share sessions through Redis. Entries carry
// a TTL; expiry and logout both purge, which is a deliberate divergence
// from the legacy registry that retained every entry for the process
// lifetime.
package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/streamatlas/stream-atlas/internal/model"
)

// Store maps opaque tokens to user snapshots.
type Store interface {
	// Put stores (or overwrites) the snapshot under token for ttl.
	Put(ctx context.Context, token string, u model.User, ttl time.Duration) error
	// Get resolves a token. The boolean is false for unknown or expired
	// tokens; that is an anonymous caller, not an error.
	Get(ctx context.Context, token string) (model.User, bool, error)
	// Delete purges the entry. Deleting an absent token is a no-op.
	Delete(ctx context.Context, token string) error
}

// NewToken returns a process-unique opaque session token. The legacy
// server handed out GUIDs; a v4 UUID keeps that shape.
func NewToken() string {
	return uuid.NewString()
}
