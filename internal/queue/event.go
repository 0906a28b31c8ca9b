// Package queue defines message payloads exchanged over the message broker
// and the background consumer that records them.
package queue

// ActivityQueueName is the durable queue carrying user activity events.
const ActivityQueueName = "media.activity"

// Activity kinds.
const (
	KindWishlistToggled = "wishlist.toggled"
	KindReviewSubmitted = "review.submitted"
)

// ActivityEvent is published when a user mutates per-user state. It carries
// enough information for downstream consumers to log or trigger analytics
// without querying the primary database.
type ActivityEvent struct {
	Kind       string `json:"kind"`
	UserID     int64  `json:"user_id"`
	Username   string `json:"username"`
	MediaID    int64  `json:"media_id"`
	MediaType  string `json:"media_type"`
	Added      bool   `json:"added,omitempty"`  // wishlist.toggled only
	Rating     int    `json:"rating,omitempty"` // review.submitted only
	OccurredAt string `json:"occurred_at"`
}
