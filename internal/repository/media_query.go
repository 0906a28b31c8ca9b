package repository

import (
	"strings"

	"github.com/streamatlas/stream-atlas/internal/model"
)

// mediaFilter defines the optional predicates applied to the unified media
// view. Zero values mean "no filter".
type mediaFilter struct {
	Type   model.MediaType // exact discriminant match
	Search string          // substring vs title, creator or a linked actor name
	Genre  string          // substring vs the aggregated genre string
}

// genreAgg renders the per-item genre list: alphabetically sorted,
// deduplicated, joined with ", ". Grouping by the full identity tuple is
// what collapses the joined rows back into one row per item.
const genreAgg = "GROUP_CONCAT(DISTINCT g.name ORDER BY g.name SEPARATOR ', ')"

const mediaGroupBy = "m.id, m.title, m.description, m.release_year, m.extra_info, m.creator, m.type"

// buildMediaQuery composes a single parameterized SELECT against v_all_media.
// Untrusted values only ever travel through the args slice.
//
// The genre predicate is a HAVING substring match over the aggregated genre
// string, not an exact match against individual genre names. A filter of
// "com" therefore matches "Comedy" but can also match across a boundary in
// "Sitcom, Edy". That is the documented legacy semantics, kept on purpose.
func buildMediaQuery(f mediaFilter) (string, []any) {
	where := []string{}
	args := []any{}

	if f.Type != "" {
		where = append(where, "m.type = ?")
		args = append(args, string(f.Type))
	}
	if f.Search != "" {
		q := "%" + strings.ToLower(f.Search) + "%"
		where = append(where, `(
			LOWER(m.title) LIKE ?
			OR LOWER(m.creator) LIKE ?
			OR EXISTS (
				SELECT 1 FROM media_actors ma
				JOIN actors a ON a.actor_id = ma.actor_id
				WHERE ma.media_id = m.id AND ma.media_type = m.type AND LOWER(a.name) LIKE ?
			)
		)`)
		args = append(args, q, q, q)
	}

	cond := "1=1"
	if len(where) > 0 {
		cond = strings.Join(where, " AND ")
	}

	sqlText := `SELECT
			m.id,
			m.type,
			m.title,
			m.description,
			m.release_year,
			m.extra_info,
			m.creator,
			` + genreAgg + ` AS genre_list
		FROM v_all_media m
		LEFT JOIN media_genres mg ON mg.media_id = m.id AND mg.media_type = m.type
		LEFT JOIN genres g ON g.genre_id = mg.genre_id
		WHERE ` + cond + `
		GROUP BY ` + mediaGroupBy

	if f.Genre != "" {
		sqlText += `
		HAVING LOWER(` + genreAgg + `) LIKE ?`
		args = append(args, "%"+strings.ToLower(f.Genre)+"%")
	}

	return sqlText, args
}
