package session

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/streamatlas/stream-atlas/internal/model"
)

func TestMemoryPutGetDelete(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	token := NewToken()
	u := model.User{ID: 1, Username: "alice", Wishlist: []int64{4}}
	require.NoError(t, m.Put(ctx, token, u, time.Minute))

	got, ok, err := m.Get(ctx, token)
	require.NoError(t, err)
	require.True(t, ok)
	require.Equal(t, u, got)

	require.NoError(t, m.Delete(ctx, token))
	_, ok, err = m.Get(ctx, token)
	require.NoError(t, err)
	require.False(t, ok)

	// Deleting an absent token is a no-op.
	require.NoError(t, m.Delete(ctx, token))
}

func TestMemoryUnknownTokenIsAnonymous(t *testing.T) {
	m := NewMemory()
	_, ok, err := m.Get(context.Background(), "no-such-token")
	require.NoError(t, err)
	require.False(t, ok)
}

func TestMemoryExpiry(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.Put(ctx, "t", model.User{ID: 1}, -time.Second))
	_, ok, err := m.Get(ctx, "t")
	require.NoError(t, err)
	require.False(t, ok, "expired entry must read as anonymous")
}

func TestMemoryPurgeExpired(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	require.NoError(t, m.Put(ctx, "dead", model.User{ID: 1}, -time.Second))
	require.NoError(t, m.Put(ctx, "live", model.User{ID: 2}, time.Minute))

	require.Equal(t, 1, m.PurgeExpired())
	require.Equal(t, 1, m.Len())

	_, ok, err := m.Get(ctx, "live")
	require.NoError(t, err)
	require.True(t, ok)
}

func TestMemoryConcurrentIssue(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	const n = 64
	tokens := make([]string, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tok := NewToken()
			tokens[i] = tok
			_ = m.Put(ctx, tok, model.User{ID: int64(i)}, time.Minute)
		}(i)
	}
	wg.Wait()

	require.Equal(t, n, m.Len())
	seen := make(map[string]bool, n)
	for i, tok := range tokens {
		require.NotEmpty(t, tok)
		require.False(t, seen[tok], "tokens must be process-unique")
		seen[tok] = true

		u, ok, err := m.Get(ctx, tok)
		require.NoError(t, err)
		require.True(t, ok)
		require.Equal(t, int64(i), u.ID)
	}
}
