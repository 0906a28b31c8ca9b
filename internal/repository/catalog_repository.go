package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"math"
	"strings"
	"unicode"

	"github.com/streamatlas/stream-atlas/internal/model"
)

// CatalogRepo executes composed read queries against the unified media view
// and routes type-specific writes to the underlying tables.
type CatalogRepo struct{ DB *sql.DB }

func NewCatalogRepo(db *sql.DB) *CatalogRepo { return &CatalogRepo{DB: db} }

// FetchByType returns all items of one media type with their aggregated
// genre lists. Used for the home-page sections, one call per type.
func (r *CatalogRepo) FetchByType(ctx context.Context, t model.MediaType) ([]model.MediaItem, error) {
	return r.fetch(ctx, mediaFilter{Type: t})
}

// FetchFiltered returns items matching the optional search text (title,
// creator or linked actor name, case-insensitive substring) and the optional
// genre text (substring over the aggregated genre string). Both filters
// combine with AND; neither returns the whole grouped catalog.
func (r *CatalogRepo) FetchFiltered(ctx context.Context, search, genre string) ([]model.MediaItem, error) {
	return r.fetch(ctx, mediaFilter{Search: search, Genre: genre})
}

func (r *CatalogRepo) fetch(ctx context.Context, f mediaFilter) ([]model.MediaItem, error) {
	query, args := buildMediaQuery(f)

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("fetch media: %w", err)
	}
	defer rows.Close()

	out := []model.MediaItem{}
	for rows.Next() {
		var (
			item      model.MediaItem
			typ       string
			genreList sql.NullString
		)
		if err := rows.Scan(
			&item.ID,
			&typ,
			&item.Title,
			&item.Description,
			&item.Year,
			&item.ExtraInfo,
			&item.Creator,
			&genreList,
		); err != nil {
			return nil, fmt.Errorf("scan media row: %w", err)
		}
		item.Type = model.MediaType(typ)
		item.Genres = splitGenreList(genreList)
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("fetch media: %w", err)
	}
	return out, nil
}

func splitGenreList(s sql.NullString) []string {
	if !s.Valid || s.String == "" {
		return []string{}
	}
	return strings.Split(s.String, ", ")
}

// Insert creates a new catalog row. The extra1 field is interpreted per
// type: digits become duration minutes for a movie (default 120) or a
// season count for a series (default 1); a game takes it verbatim as the
// platform name. extra2 is the creator (director / network / developer).
// Movies and games start with rating 0; a series starts with end_year 0.
//
// genresText is a comma-separated list of genre names; each name is
// upserted into genres and linked through media_genres in the same
// transaction. The legacy system accepted this parameter and silently
// dropped it; the linkage is completed here.
func (r *CatalogRepo) Insert(ctx context.Context, t model.MediaType, title, description string, year int, extra1, extra2, genresText string) error {
	title = strings.TrimSpace(title)
	if title == "" {
		return fmt.Errorf("insert media: empty title: %w", ErrInvalidInput)
	}

	tx, err := r.DB.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("insert media: begin: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	var res sql.Result
	switch t {
	case model.TypeMovie:
		duration := digitsOrDefault(extra1, 120)
		res, err = tx.ExecContext(ctx,
			"INSERT INTO movies (title, description, release_year, duration_mins, director, rating) VALUES (?,?,?,?,?,0)",
			title, description, year, duration, extra2)
	case model.TypeSeries:
		seasons := digitsOrDefault(extra1, 1)
		res, err = tx.ExecContext(ctx,
			"INSERT INTO series (title, description, start_year, seasons, network, end_year) VALUES (?,?,?,?,?,0)",
			title, description, year, seasons, extra2)
	case model.TypeGame:
		res, err = tx.ExecContext(ctx,
			"INSERT INTO games (title, description, release_year, platform, developer, rating) VALUES (?,?,?,?,?,0)",
			title, description, year, extra1, extra2)
	default:
		return fmt.Errorf("insert media: unknown type %q: %w", t, ErrInvalidInput)
	}
	if err != nil {
		return fmt.Errorf("insert %s: %w", strings.ToLower(t.String()), err)
	}

	mediaID, err := res.LastInsertId()
	if err != nil {
		return fmt.Errorf("insert media: last insert id: %w", err)
	}

	if err := linkGenres(ctx, tx, mediaID, t, genresText); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("insert media: commit: %w", err)
	}
	return nil
}

// linkGenres upserts each comma-separated genre name and links it to the
// new item. The ON DUPLICATE KEY trick makes LastInsertId return the
// existing genre_id when the name is already present.
func linkGenres(ctx context.Context, tx *sql.Tx, mediaID int64, t model.MediaType, genresText string) error {
	for _, name := range strings.Split(genresText, ",") {
		name = strings.TrimSpace(name)
		if name == "" {
			continue
		}
		res, err := tx.ExecContext(ctx,
			"INSERT INTO genres (name) VALUES (?) ON DUPLICATE KEY UPDATE genre_id = LAST_INSERT_ID(genre_id)",
			name)
		if err != nil {
			return fmt.Errorf("upsert genre %q: %w", name, err)
		}
		genreID, err := res.LastInsertId()
		if err != nil {
			return fmt.Errorf("upsert genre %q: last insert id: %w", name, err)
		}
		if _, err := tx.ExecContext(ctx,
			"INSERT IGNORE INTO media_genres (media_id, media_type, genre_id) VALUES (?,?,?)",
			mediaID, string(t), genreID); err != nil {
			return fmt.Errorf("link genre %q: %w", name, err)
		}
	}
	return nil
}

// digitsOrDefault collects the digit characters of s into an integer,
// falling back to def when s contains no digits. "8 seasons" -> 8,
// "abc" -> def. This mirrors the legacy parser, quirks included: "2h30m"
// collapses to 230. A digit run that would overflow a 32-bit value also
// falls back to def, matching the legacy parse failure.
func digitsOrDefault(s string, def int) int {
	n := 0
	seen := false
	for _, r := range s {
		if unicode.IsDigit(r) {
			d := int(r - '0')
			if n > (math.MaxInt32-d)/10 {
				return def
			}
			n = n*10 + d
			seen = true
		}
	}
	if !seen {
		return def
	}
	return n
}

// Stats computes the dashboard aggregates: four independent counts plus the
// most-reviewed title. Ties are broken by storage order; callers must not
// rely on which of the maximal titles is returned.
func (r *CatalogRepo) Stats(ctx context.Context) (model.Stats, error) {
	var s model.Stats

	counts := []struct {
		query string
		dst   *int
	}{
		{"SELECT COUNT(*) FROM users", &s.UserCount},
		{"SELECT COUNT(*) FROM movies", &s.MovieCount},
		{"SELECT COUNT(*) FROM series", &s.SeriesCount},
		{"SELECT COUNT(*) FROM games", &s.GameCount},
	}
	for _, c := range counts {
		if err := r.DB.QueryRowContext(ctx, c.query).Scan(c.dst); err != nil {
			return model.Stats{}, fmt.Errorf("stats count: %w", err)
		}
	}

	err := r.DB.QueryRowContext(ctx, `
		SELECT m.title
		FROM reviews r
		JOIN v_all_media m ON m.id = r.media_id AND m.type = r.media_type
		GROUP BY m.title
		ORDER BY COUNT(*) DESC
		LIMIT 1`).Scan(&s.TopTitle)
	if errors.Is(err, sql.ErrNoRows) {
		s.TopTitle = "None"
	} else if err != nil {
		return model.Stats{}, fmt.Errorf("stats top title: %w", err)
	}

	return s, nil
}
