package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/streamatlas/stream-atlas/internal/model"
	"github.com/streamatlas/stream-atlas/internal/queue"
	"github.com/streamatlas/stream-atlas/internal/repository"
	"github.com/streamatlas/stream-atlas/internal/session"
)

// Rating bounds for submitted reviews. The legacy system stored any
// integer; out-of-range values are rejected here.
const (
	MinRating = 1
	MaxRating = 5
)

// WishlistStore is the slice of the wishlist repository the interaction
// service needs.
type WishlistStore interface {
	Toggle(ctx context.Context, userID, mediaID int64, t model.MediaType) (bool, error)
	Has(ctx context.Context, userID, mediaID int64, t model.MediaType) (bool, error)
}

// ReviewStore persists submitted reviews.
type ReviewStore interface {
	Add(ctx context.Context, rv model.Review) error
}

// Publisher emits activity events. Failures are the publisher's problem;
// the interaction flow never depends on them.
type Publisher func(ctx context.Context, ev queue.ActivityEvent) error

// Interaction implements the session-scoped mutations: wishlist toggling
// and review submission.
type Interaction struct {
	wishlist WishlistStore
	reviews  ReviewStore
	users    UserStore
	sessions session.Store
	ttl      time.Duration
	publish  Publisher // may be nil
}

func NewInteraction(wishlist WishlistStore, reviews ReviewStore, users UserStore, sessions session.Store, ttl time.Duration, publish Publisher) *Interaction {
	return &Interaction{
		wishlist: wishlist,
		reviews:  reviews,
		users:    users,
		sessions: sessions,
		ttl:      ttl,
		publish:  publish,
	}
}

// ToggleWishlist flips wishlist membership for the caller's user and
// returns the resulting state (true = now wished). After a successful
// toggle the session snapshot is re-hydrated so same-session reads see the
// new wishlist without a fresh login.
func (s *Interaction) ToggleWishlist(ctx context.Context, token string, mediaID int64, mediaType string) (bool, error) {
	u, ok, err := s.sessions.Get(ctx, token)
	if err != nil {
		return false, fmt.Errorf("toggle wishlist: %w", err)
	}
	if !ok {
		return false, ErrUnauthenticated
	}

	t, ok := model.ParseMediaType(mediaType)
	if !ok {
		return false, fmt.Errorf("toggle wishlist: unknown media type %q: %w", mediaType, repository.ErrInvalidInput)
	}

	added, err := s.wishlist.Toggle(ctx, u.ID, mediaID, t)
	if err != nil {
		return false, fmt.Errorf("toggle wishlist: %w", err)
	}

	s.rehydrate(ctx, token, u)
	s.emit(ctx, queue.ActivityEvent{
		Kind:       queue.KindWishlistToggled,
		UserID:     u.ID,
		Username:   u.Username,
		MediaID:    mediaID,
		MediaType:  t.String(),
		Added:      added,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})
	return added, nil
}

// HasWished reports current persisted wishlist membership for the caller.
// Unlike the session snapshot, which drops the media type, this consults the
// precise (user, media, type) key.
func (s *Interaction) HasWished(ctx context.Context, token string, mediaID int64, mediaType string) (bool, error) {
	u, ok, err := s.sessions.Get(ctx, token)
	if err != nil {
		return false, fmt.Errorf("wishlist status: %w", err)
	}
	if !ok {
		return false, ErrUnauthenticated
	}

	t, ok := model.ParseMediaType(mediaType)
	if !ok {
		return false, fmt.Errorf("wishlist status: unknown media type %q: %w", mediaType, repository.ErrInvalidInput)
	}

	has, err := s.wishlist.Has(ctx, u.ID, mediaID, t)
	if err != nil {
		return false, fmt.Errorf("wishlist status: %w", err)
	}
	return has, nil
}

// AddReview inserts a review for the caller's user. Ratings outside
// [MinRating, MaxRating] are rejected. Reviews are insert-only; repeat
// submissions for the same item are all retained.
func (s *Interaction) AddReview(ctx context.Context, token string, mediaID int64, mediaType string, rating int, text string) error {
	u, ok, err := s.sessions.Get(ctx, token)
	if err != nil {
		return fmt.Errorf("add review: %w", err)
	}
	if !ok {
		return ErrUnauthenticated
	}

	t, ok := model.ParseMediaType(mediaType)
	if !ok {
		return fmt.Errorf("add review: unknown media type %q: %w", mediaType, repository.ErrInvalidInput)
	}
	if rating < MinRating || rating > MaxRating {
		return fmt.Errorf("add review: rating %d out of range %d..%d: %w",
			rating, MinRating, MaxRating, repository.ErrInvalidInput)
	}

	if err := s.reviews.Add(ctx, model.Review{
		UserID:    u.ID,
		MediaID:   mediaID,
		MediaType: t,
		Rating:    rating,
		Text:      text,
	}); err != nil {
		return fmt.Errorf("add review: %w", err)
	}

	s.emit(ctx, queue.ActivityEvent{
		Kind:       queue.KindReviewSubmitted,
		UserID:     u.ID,
		Username:   u.Username,
		MediaID:    mediaID,
		MediaType:  t.String(),
		Rating:     rating,
		OccurredAt: time.Now().UTC().Format(time.RFC3339),
	})
	return nil
}

// rehydrate refreshes the stored session snapshot with the current
// wishlist. Best effort: a failed refresh leaves the old snapshot in place
// and the mutation itself stands.
func (s *Interaction) rehydrate(ctx context.Context, token string, u model.User) {
	wl, err := s.users.LoadWishlist(ctx, u.ID)
	if err != nil {
		log.Printf("session rehydrate failed for user %d: %v", u.ID, err)
		return
	}
	u.Wishlist = wl
	if err := s.sessions.Put(ctx, token, u, s.ttl); err != nil {
		log.Printf("session rehydrate store failed for user %d: %v", u.ID, err)
	}
}

func (s *Interaction) emit(ctx context.Context, ev queue.ActivityEvent) {
	if s.publish == nil {
		return
	}
	_ = s.publish(ctx, ev) // errors already logged by the publisher
}
