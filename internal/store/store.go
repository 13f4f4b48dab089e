// package store provides token persistence for authenticated members
package store

import (
	"time"
)

// TokenRecord holds the credentials captured for one member during the OAuth
// callback. Re-authentication overwrites the previous record for that member.
type TokenRecord struct {
	MemberID    string    `json:"member_id"`
	AccessToken string    `json:"access_token"`
	AuthorURN   string    `json:"author_urn"`
	CreatedAt   time.Time `json:"created_at"`
	ExpiresAt   time.Time `json:"expires_at"` // zero when the provider omits expiry
}

// Expired reports whether the record carries an expiry in the past.
// Records without an expiry never report expired.
func (r TokenRecord) Expired() bool {
	return !r.ExpiresAt.IsZero() && time.Now().After(r.ExpiresAt)
}

// SessionStore maps provider member IDs to their token records.
//
// A store holds at most the set of members who completed the OAuth callback
// while it existed. [MemoryStore] lives for the process; [SQLiteStore]
// survives restarts.
type SessionStore interface {
	// Put inserts or overwrites the record keyed by its member ID.
	Put(record TokenRecord) error

	// Get retrieves a member's record.
	// Wraps [shared.ErrSessionNotFound] when no record exists.
	Get(memberID string) (TokenRecord, error)

	// Delete removes a member's record. Deleting an absent record is not an error.
	Delete(memberID string) error

	// Count reports how many members currently hold records.
	Count() (int, error)

	// List returns every stored record, ordered by member ID.
	List() ([]TokenRecord, error)
}
