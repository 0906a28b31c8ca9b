package model

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseMediaTypeAcceptsBothSpellings(t *testing.T) {
	cases := []struct {
		in   string
		want MediaType
	}{
		{"Movie", TypeMovie},
		{"Movies", TypeMovie},
		{"movie", TypeMovie},
		{" movies ", TypeMovie},
		{"Series", TypeSeries},
		{"series", TypeSeries},
		{"Game", TypeGame},
		{"Games", TypeGame},
		{"GAMES", TypeGame},
	}
	for _, tc := range cases {
		got, ok := ParseMediaType(tc.in)
		require.True(t, ok, "expected %q to parse", tc.in)
		require.Equal(t, tc.want, got)
	}
}

func TestParseMediaTypeRejectsUnknown(t *testing.T) {
	for _, in := range []string{"", "Book", "movi", "seriess"} {
		_, ok := ParseMediaType(in)
		require.False(t, ok, "expected %q to be rejected", in)
	}
}

func TestSameEntityNeedsIDAndType(t *testing.T) {
	a := MediaItem{ID: 7, Type: TypeMovie}
	require.True(t, a.SameEntity(MediaItem{ID: 7, Type: TypeMovie}))
	// The same numeric id under another type is a different entity.
	require.False(t, a.SameEntity(MediaItem{ID: 7, Type: TypeGame}))
	require.False(t, a.SameEntity(MediaItem{ID: 8, Type: TypeMovie}))
}

func TestHasWished(t *testing.T) {
	u := User{ID: 1, Username: "alice", Wishlist: []int64{3, 9}}
	require.True(t, u.HasWished(3))
	require.False(t, u.HasWished(4))
	require.False(t, User{}.HasWished(3))
}
