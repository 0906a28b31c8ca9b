package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/streamatlas/stream-atlas/internal/model"
	"github.com/streamatlas/stream-atlas/internal/repository"
	"github.com/streamatlas/stream-atlas/internal/session"
)

// fakeUserStore is an in-memory UserStore used by the service tests.
type fakeUserStore struct {
	mu          sync.Mutex
	nextID      int64
	byName      map[string]model.User
	wishlists   map[int64][]int64
	createCalls int
}

func newFakeUserStore() *fakeUserStore {
	return &fakeUserStore{
		byName:    make(map[string]model.User),
		wishlists: make(map[int64][]int64),
	}
}

func (f *fakeUserStore) GetByUsername(_ context.Context, username string) (model.User, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	u, ok := f.byName[username]
	if !ok {
		return model.User{}, repository.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserStore) Create(_ context.Context, username string) (int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	f.createCalls++
	f.byName[username] = model.User{ID: f.nextID, Username: username}
	return f.nextID, nil
}

func (f *fakeUserStore) LoadWishlist(_ context.Context, userID int64) ([]int64, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	wl := f.wishlists[userID]
	out := make([]int64, len(wl))
	copy(out, wl)
	return out, nil
}

func (f *fakeUserStore) setWishlist(userID int64, ids ...int64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.wishlists[userID] = ids
}

func TestLoginCreatesUserOnFirstSight(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserStore()
	ident := NewIdentity(users, session.NewMemory(), time.Minute)

	u, token, err := ident.Login(ctx, "alice")
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.Equal(t, "alice", u.Username)
	require.Empty(t, u.Wishlist)
	require.Equal(t, 1, users.createCalls)
}

func TestLoginIsIdempotentPerUsername(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserStore()
	ident := NewIdentity(users, session.NewMemory(), time.Minute)

	first, _, err := ident.Login(ctx, "alice")
	require.NoError(t, err)
	second, _, err := ident.Login(ctx, "alice")
	require.NoError(t, err)

	require.Equal(t, first.ID, second.ID)
	require.Equal(t, 1, users.createCalls, "existing user must not be re-created")
}

func TestLoginHydratesWishlist(t *testing.T) {
	ctx := context.Background()
	users := newFakeUserStore()
	ident := NewIdentity(users, session.NewMemory(), time.Minute)

	u, _, err := ident.Login(ctx, "bob")
	require.NoError(t, err)
	users.setWishlist(u.ID, 3, 9)

	again, _, err := ident.Login(ctx, "bob")
	require.NoError(t, err)
	require.Equal(t, []int64{3, 9}, again.Wishlist)
}

func TestLoginRejectsEmptyUsername(t *testing.T) {
	ident := NewIdentity(newFakeUserStore(), session.NewMemory(), time.Minute)

	_, _, err := ident.Login(context.Background(), "   ")
	require.ErrorIs(t, err, repository.ErrInvalidInput)
}

func TestCurrentResolvesIssuedToken(t *testing.T) {
	ctx := context.Background()
	ident := NewIdentity(newFakeUserStore(), session.NewMemory(), time.Minute)

	u, token, err := ident.Login(ctx, "carol")
	require.NoError(t, err)

	got, ok, err := ident.Current(ctx, token)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, u.ID, got.ID)

	// Anonymous and unknown callers resolve to absent, not errors.
	_, ok, err = ident.Current(ctx, "")
	require.NoError(t, err)
	require.False(t, ok)
	_, ok, err = ident.Current(ctx, "bogus")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestLogoutPurgesSession(t *testing.T) {
	ctx := context.Background()
	ident := NewIdentity(newFakeUserStore(), session.NewMemory(), time.Minute)

	_, token, err := ident.Login(ctx, "dave")
	require.NoError(t, err)
	require.NoError(t, ident.Logout(ctx, token))

	_, ok, err := ident.Current(ctx, token)
	require.NoError(t, err)
	require.False(t, ok)

	// Logging out without a session is a no-op.
	require.NoError(t, ident.Logout(ctx, ""))
}
