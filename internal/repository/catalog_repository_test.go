package repository

import (
	"database/sql"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDigitsOrDefault(t *testing.T) {
	cases := []struct {
		in   string
		def  int
		want int
	}{
		{"148", 120, 148},
		{"148 min", 120, 148},
		{"8 seasons", 1, 8},
		{"abc", 120, 120},
		{"", 1, 1},
		{"about 2 hours 30", 120, 230}, // digits collapse, legacy quirk
		{"0", 120, 0},
		{"2147483647", 1, 2147483647},
		{"2147483648", 1, 1},             // 32-bit overflow falls back
		{"99999999999999999999", 120, 120}, // long digit run falls back
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, digitsOrDefault(tc.in, tc.def), "input %q", tc.in)
	}
}

func TestSplitGenreList(t *testing.T) {
	require.Equal(t, []string{}, splitGenreList(sql.NullString{}))
	require.Equal(t, []string{}, splitGenreList(sql.NullString{Valid: true, String: ""}))
	require.Equal(t,
		[]string{"Comedy", "Drama"},
		splitGenreList(sql.NullString{Valid: true, String: "Comedy, Drama"}))
	require.Equal(t,
		[]string{"Action"},
		splitGenreList(sql.NullString{Valid: true, String: "Action"}))
}
