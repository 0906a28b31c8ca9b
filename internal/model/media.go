package model

import "strings"

// MediaType is the discriminant that tells which concrete catalog table a
// unified record came from. The legacy UI used plural spellings ("Movies",
// "Games") while the database stores the singular form; ParseMediaType is
// the single place where both are accepted.
type MediaType string

const (
	TypeMovie  MediaType = "Movie"
	TypeSeries MediaType = "Series"
	TypeGame   MediaType = "Game"
)

// AllMediaTypes lists the known discriminants in home-page section order.
var AllMediaTypes = []MediaType{TypeMovie, TypeSeries, TypeGame}

// ParseMediaType canonicalizes a user-supplied type string. Both the plural
// UI spelling and the stored singular spelling resolve to the same value.
// The boolean is false for anything else.
func ParseMediaType(s string) (MediaType, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "movie", "movies":
		return TypeMovie, true
	case "series":
		return TypeSeries, true
	case "game", "games":
		return TypeGame, true
	}
	return "", false
}

func (t MediaType) String() string { return string(t) }

// MediaItem is the unified read shape over movies, series and games.
// ID is unique only within a type; the stable identity is (ID, Type).
type MediaItem struct {
	ID          int64     `json:"id"`
	Type        MediaType `json:"type"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Year        int       `json:"year"`
	// ExtraInfo is type-specific free text: duration minutes for a movie,
	// season count for a series, platform name for a game.
	ExtraInfo string `json:"extra_info"`
	// Creator unifies director / network / developer.
	Creator string `json:"creator"`
	// Genres is alphabetically sorted and deduplicated by the aggregation
	// step; empty when nothing is linked.
	Genres []string `json:"genres"`
}

// SameEntity reports whether two items refer to the same catalog row.
func (m MediaItem) SameEntity(o MediaItem) bool {
	return m.ID == o.ID && m.Type == o.Type
}

// Review is an insert-only record; repeat reviews by the same user for the
// same item are all retained.
type Review struct {
	UserID    int64     `json:"user_id"`
	MediaID   int64     `json:"media_id"`
	MediaType MediaType `json:"media_type"`
	Rating    int       `json:"rating"`
	Text      string    `json:"text"`
}

// Stats carries the dashboard aggregates. TopTitle is "None" when no
// reviews exist; among tied titles any maximal one may be reported.
type Stats struct {
	UserCount   int    `json:"user_count"`
	MovieCount  int    `json:"movie_count"`
	SeriesCount int    `json:"series_count"`
	GameCount   int    `json:"game_count"`
	TopTitle    string `json:"top_title"`
}
