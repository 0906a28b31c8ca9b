// Package service holds the application services sitting between the HTTP
// handlers and the repositories: the identity/session service and the
// interaction service for wishlist and review mutations.
package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/streamatlas/stream-atlas/internal/model"
	"github.com/streamatlas/stream-atlas/internal/repository"
	"github.com/streamatlas/stream-atlas/internal/session"
)

// ErrUnauthenticated is returned when a presented session token resolves to
// no user. The legacy server silently no-oped in that case; surfacing the
// error lets the caller decide how to present it.
var ErrUnauthenticated = errors.New("unauthenticated")

// UserStore is the slice of the user repository the services need.
type UserStore interface {
	GetByUsername(ctx context.Context, username string) (model.User, error)
	Create(ctx context.Context, username string) (int64, error)
	LoadWishlist(ctx context.Context, userID int64) ([]int64, error)
}

// Identity resolves or creates users by name and manages their sessions.
type Identity struct {
	users    UserStore
	sessions session.Store
	ttl      time.Duration
}

func NewIdentity(users UserStore, sessions session.Store, ttl time.Duration) *Identity {
	return &Identity{users: users, sessions: sessions, ttl: ttl}
}

// Login resolves the username, creating the user on first sight, hydrates
// the wishlist and issues a fresh session token. The lookup-then-create is
// not atomic; concurrent first logins with the same new name may both
// insert, and later lookups settle on the first row.
func (s *Identity) Login(ctx context.Context, username string) (model.User, string, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return model.User{}, "", fmt.Errorf("login: empty username: %w", repository.ErrInvalidInput)
	}

	u, err := s.users.GetByUsername(ctx, username)
	switch {
	case errors.Is(err, repository.ErrNotFound):
		id, cerr := s.users.Create(ctx, username)
		if cerr != nil {
			return model.User{}, "", fmt.Errorf("login: %w", cerr)
		}
		u = model.User{ID: id, Username: username, Wishlist: []int64{}}
	case err != nil:
		return model.User{}, "", fmt.Errorf("login: %w", err)
	default:
		wl, werr := s.users.LoadWishlist(ctx, u.ID)
		if werr != nil {
			return model.User{}, "", fmt.Errorf("login: %w", werr)
		}
		u.Wishlist = wl
	}

	token := session.NewToken()
	if err := s.sessions.Put(ctx, token, u, s.ttl); err != nil {
		return model.User{}, "", fmt.Errorf("login: %w", err)
	}
	return u, token, nil
}

// Current resolves a session token to its user snapshot. A false boolean
// means an anonymous caller, not a failure.
func (s *Identity) Current(ctx context.Context, token string) (model.User, bool, error) {
	if token == "" {
		return model.User{}, false, nil
	}
	return s.sessions.Get(ctx, token)
}

// Logout purges the registry entry so the token can no longer be presented.
func (s *Identity) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Delete(ctx, token)
}
