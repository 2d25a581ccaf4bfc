package session

import "context"

// Repository defines the persistence contract for Sessions.
type Repository interface {
	// Create durably inserts a new session.
	Create(ctx context.Context, s *Session) error

	// GetByID returns the session with the given opaque ID.
	// Returns errors.ErrSessionNotFound if no such session exists.
	GetByID(ctx context.Context, sessionID string) (*Session, error)

	// Delete removes the session. Deleting an unknown ID is not an
	// error; logout is idempotent.
	Delete(ctx context.Context, sessionID string) error

	// Touch updates last_seen_at only.
	Touch(ctx context.Context, sessionID string) error
}
