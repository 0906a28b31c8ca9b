package model

// User represents an application user record as stored in the `users`
// table, together with the wishlist hydrated at login time.
//
// Fields:
//  ID       – primary key identifier, assigned on first login.
//  Username – display name; intended-unique (the login path does a
//             lookup-then-create, so uniqueness is not atomically enforced).
//  Wishlist – media ids saved by the user. The media type is kept only in
//             the wishlist table, not in this in-memory set, mirroring the
//             legacy behavior.
type User struct {
	ID       int64   `json:"id"`       // users.user_id
	Username string  `json:"username"` // users.username
	Wishlist []int64 `json:"wishlist"` // wishlist.media_id per user
}

// HasWished reports whether mediaID is in the hydrated wishlist snapshot.
// Because the snapshot drops the media type, an id shared across types
// reads as wished for all of them; persistence keeps the precise key.
func (u User) HasWished(mediaID int64) bool {
	for _, id := range u.Wishlist {
		if id == mediaID {
			return true
		}
	}
	return false
}
