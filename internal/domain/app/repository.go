package app

import "context"

// Repository defines the persistence contract for Applications.
//
// The mutating operations are each a single-row update that also
// touches last_used_at. They succeed silently when client_id is
// unknown; callers validate existence first.
type Repository interface {
	// Create durably inserts a new registration.
	Create(ctx context.Context, app *Application) error

	// GetByClientID returns the app with the given public client_id.
	// Returns errors.ErrAppNotFound if no such app exists.
	GetByClientID(ctx context.Context, clientID string) (*Application, error)

	// GetByAccessToken returns the app whose live access token equals
	// token. Returns errors.ErrAppNotFound if no app holds that token.
	GetByAccessToken(ctx context.Context, token string) (*Application, error)

	// AttachSession binds a human login session to the app.
	AttachSession(ctx context.Context, clientID, sessionID string) error

	// SetAuthorizationCode overwrites the single currently-valid
	// authorization code.
	SetAuthorizationCode(ctx context.Context, clientID, code string) error

	// SetAccessToken overwrites the single currently-valid access
	// token and clears the stored authorization code, consuming it.
	SetAccessToken(ctx context.Context, clientID, token string) error

	// Touch updates last_used_at only.
	Touch(ctx context.Context, clientID string) error
}
