package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/streamatlas/stream-atlas/internal/model"
)

// UserRepo mirrors the 'users' table plus the per-user wishlist rows.
type UserRepo struct{ DB *sql.DB }

func NewUserRepo(db *sql.DB) *UserRepo { return &UserRepo{DB: db} }

// GetByUsername fetches a user by trimmed username. The wishlist is not
// hydrated here; callers combine this with LoadWishlist.
func (r *UserRepo) GetByUsername(ctx context.Context, username string) (model.User, error) {
	username = strings.TrimSpace(username)
	var u model.User
	err := r.DB.QueryRowContext(ctx,
		"SELECT user_id, username FROM users WHERE username=? LIMIT 1",
		username).Scan(&u.ID, &u.Username)
	if errors.Is(err, sql.ErrNoRows) {
		return model.User{}, ErrNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("get user by username: %w", err)
	}
	return u, nil
}

// Create inserts a user and returns its ID. Usernames are intended-unique
// but the login path is lookup-then-create, so two concurrent first logins
// with the same name can both insert; the first returned row wins on the
// next lookup.
func (r *UserRepo) Create(ctx context.Context, username string) (int64, error) {
	res, err := r.DB.ExecContext(ctx,
		"INSERT INTO users (username) VALUES (?)",
		strings.TrimSpace(username))
	if err != nil {
		return 0, fmt.Errorf("create user: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("create user: last insert id: %w", err)
	}
	return id, nil
}

// LoadWishlist returns the media ids saved by the user. The media type is
// intentionally not loaded; the in-memory wishlist is an id set only.
func (r *UserRepo) LoadWishlist(ctx context.Context, userID int64) ([]int64, error) {
	rows, err := r.DB.QueryContext(ctx,
		"SELECT media_id FROM wishlist WHERE user_id=?",
		userID)
	if err != nil {
		return nil, fmt.Errorf("load wishlist: %w", err)
	}
	defer rows.Close()

	out := []int64{}
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan wishlist row: %w", err)
		}
		out = append(out, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load wishlist: %w", err)
	}
	return out, nil
}
