package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"

	"github.com/streamatlas/stream-atlas/internal/model"
	"github.com/streamatlas/stream-atlas/internal/repository"
	"github.com/streamatlas/stream-atlas/internal/service"
	"github.com/streamatlas/stream-atlas/internal/session"
)

// stubUserStore returns one fixed user for any name.
type stubUserStore struct{}

func (stubUserStore) GetByUsername(_ context.Context, username string) (model.User, error) {
	if username == "alice" {
		return model.User{ID: 1, Username: "alice"}, nil
	}
	return model.User{}, repository.ErrNotFound
}

func (stubUserStore) Create(_ context.Context, _ string) (int64, error) { return 1, nil }

func (stubUserStore) LoadWishlist(_ context.Context, _ int64) ([]int64, error) {
	return []int64{}, nil
}

func newContext(t *testing.T, mutate func(*http.Request)) echo.Context {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if mutate != nil {
		mutate(req)
	}
	return echo.New().NewContext(req, httptest.NewRecorder())
}

func TestSessionTokenPrefersCookie(t *testing.T) {
	c := newContext(t, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: SessionCookie, Value: "from-cookie"})
		r.Header.Set("Authorization", "Bearer from-header")
	})
	require.Equal(t, "from-cookie", SessionToken(c))
}

func TestSessionTokenFallsBackToBearer(t *testing.T) {
	c := newContext(t, func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer from-header")
	})
	require.Equal(t, "from-header", SessionToken(c))

	require.Empty(t, SessionToken(newContext(t, nil)))
}

func TestSessionIdentityStashesResolvedUser(t *testing.T) {
	ident := service.NewIdentity(stubUserStore{}, session.NewMemory(), time.Minute)
	_, token, err := ident.Login(context.Background(), "alice")
	require.NoError(t, err)

	var got model.User
	var ok bool
	h := SessionIdentity(ident)(func(c echo.Context) error {
		got, ok = CurrentUser(c)
		return nil
	})

	c := newContext(t, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: SessionCookie, Value: token})
	})
	require.NoError(t, h(c))
	require.True(t, ok)
	require.Equal(t, "alice", got.Username)
}

func TestSessionIdentityLeavesAnonymousAlone(t *testing.T) {
	ident := service.NewIdentity(stubUserStore{}, session.NewMemory(), time.Minute)

	var ok bool
	h := SessionIdentity(ident)(func(c echo.Context) error {
		_, ok = CurrentUser(c)
		return nil
	})

	// No token at all.
	require.NoError(t, h(newContext(t, nil)))
	require.False(t, ok)

	// A token no session resolves.
	c := newContext(t, func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: SessionCookie, Value: "expired-or-bogus"})
	})
	require.NoError(t, h(c))
	require.False(t, ok)
}
