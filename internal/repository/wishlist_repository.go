package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/streamatlas/stream-atlas/internal/model"
)

// WishlistRepo persists wishlist membership keyed by
// (user_id, media_id, media_type).
type WishlistRepo struct{ DB *sql.DB }

func NewWishlistRepo(db *sql.DB) *WishlistRepo { return &WishlistRepo{DB: db} }

// Toggle flips membership for the key and returns the resulting state:
// true when the entry is now present, false when it was removed.
//
// The legacy implementation did a SELECT COUNT then INSERT or DELETE, which
// under concurrency can double-insert. Here the DELETE itself is the
// membership check, and the fallback INSERT IGNORE is guarded by the unique
// key, so the relation can never hold more than one row per key no matter
// how toggles interleave.
func (r *WishlistRepo) Toggle(ctx context.Context, userID, mediaID int64, t model.MediaType) (bool, error) {
	res, err := r.DB.ExecContext(ctx,
		"DELETE FROM wishlist WHERE user_id=? AND media_id=? AND media_type=?",
		userID, mediaID, string(t))
	if err != nil {
		return false, fmt.Errorf("wishlist toggle delete: %w", err)
	}
	deleted, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("wishlist toggle: rows affected: %w", err)
	}
	if deleted > 0 {
		return false, nil
	}

	// Nothing to delete: the entry is absent, add it. A concurrent toggle
	// may have inserted first; INSERT IGNORE treats that as already-present.
	if _, err := r.DB.ExecContext(ctx,
		"INSERT IGNORE INTO wishlist (user_id, media_id, media_type) VALUES (?,?,?)",
		userID, mediaID, string(t)); err != nil {
		return false, fmt.Errorf("wishlist toggle insert: %w", err)
	}
	return true, nil
}

// Has reports current membership for the key.
func (r *WishlistRepo) Has(ctx context.Context, userID, mediaID int64, t model.MediaType) (bool, error) {
	var one int
	err := r.DB.QueryRowContext(ctx,
		"SELECT 1 FROM wishlist WHERE user_id=? AND media_id=? AND media_type=? LIMIT 1",
		userID, mediaID, string(t)).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("wishlist has: %w", err)
	}
	return true, nil
}
