package repository

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/streamatlas/stream-atlas/internal/model"
)

// ReviewRepo persists review rows. Reviews are insert-only; there is no
// update or delete path and repeat reviews are all retained.
type ReviewRepo struct{ DB *sql.DB }

func NewReviewRepo(db *sql.DB) *ReviewRepo { return &ReviewRepo{DB: db} }

// Add inserts a review row.
func (r *ReviewRepo) Add(ctx context.Context, rv model.Review) error {
	_, err := r.DB.ExecContext(ctx,
		"INSERT INTO reviews (user_id, media_id, media_type, rating, comment) VALUES (?,?,?,?,?)",
		rv.UserID, rv.MediaID, string(rv.MediaType), rv.Rating, rv.Text)
	if err != nil {
		return fmt.Errorf("add review: %w", err)
	}
	return nil
}
