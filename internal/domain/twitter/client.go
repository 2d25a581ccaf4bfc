package twitter

import "context"

// Credentials is the serializable session state of a logged-in Twitter
// account: cookie name to value. This is the plaintext form of a
// session's credential blob.
type Credentials map[string]string

// Client is the opaque capability handle onto the unofficial Twitter
// web API. Implementations hold browser-style session cookies; every
// network call accepts a context.
type Client interface {
	// Login authenticates with username/email/password and an optional
	// TOTP secret, populating the client's cookie state.
	Login(ctx context.Context, username, email, password, mfaSecret string) error

	// Cookies snapshots the current session cookie state.
	Cookies() Credentials

	// SetCookies restores previously captured session cookie state.
	SetCookies(creds Credentials)

	// CurrentUser fetches the authenticated account.
	CurrentUser(ctx context.Context) (*User, error)

	// LatestTimeline fetches the most recent home timeline tweets.
	LatestTimeline(ctx context.Context) ([]*Tweet, error)
}

// Dialer constructs fresh, unauthenticated clients. The resolver dials
// one per request and loads the session's cookies into it.
type Dialer interface {
	Dial() Client
}

// DialerFunc adapts a function to the Dialer interface.
type DialerFunc func() Client

// Dial implements Dialer.
func (f DialerFunc) Dial() Client { return f() }
