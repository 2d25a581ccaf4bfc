package session

import "time"

// Session represents one successful Twitter login. CredentialBlob is
// the sealed (encrypted) serialization of the Twitter cookie jar; the
// row is created on login, read on every authorization step and
// resolved API call, and deleted on logout. It is never mutated
// otherwise.
type Session struct {
	SessionID      string
	Username       string
	CredentialBlob []byte
	CreatedAt      time.Time
	LastSeenAt     time.Time
}
