package postgres

import (
	"context"

	"github.com/sekai-soft/yurikamome/internal/domain/session"
	apperrors "github.com/sekai-soft/yurikamome/pkg/errors"
)

// SessionRepository persists Twitter login sessions.
type SessionRepository struct {
	db *DB
}

func NewSessionRepository(db *DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, s *session.Session) error {
	_, err := r.db.Pool.Exec(ctx, `
		INSERT INTO sessions (session_id, username, credential_blob, created_at, last_seen_at)
		VALUES ($1, $2, $3, $4, $5)`,
		s.SessionID, s.Username, s.CredentialBlob, s.CreatedAt, s.LastSeenAt,
	)
	return apperrors.Wrap(err, "failed to create session")
}

func (r *SessionRepository) GetByID(ctx context.Context, sessionID string) (*session.Session, error) {
	var s session.Session
	err := r.db.Pool.QueryRow(ctx, `
		SELECT session_id, username, credential_blob, created_at, last_seen_at
		FROM sessions WHERE session_id = $1`, sessionID).
		Scan(&s.SessionID, &s.Username, &s.CredentialBlob, &s.CreatedAt, &s.LastSeenAt)
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.ErrSessionNotFound
		}
		return nil, apperrors.Wrap(err, "failed to get session")
	}
	return &s, nil
}

// Delete removes the session row. Deleting an unknown session is not an error.
func (r *SessionRepository) Delete(ctx context.Context, sessionID string) error {
	_, err := r.db.Pool.Exec(ctx, `DELETE FROM sessions WHERE session_id = $1`, sessionID)
	return apperrors.Wrap(err, "failed to delete session")
}

func (r *SessionRepository) Touch(ctx context.Context, sessionID string) error {
	_, err := r.db.Pool.Exec(ctx, `
		UPDATE sessions SET last_seen_at = now() WHERE session_id = $1`, sessionID)
	return apperrors.Wrap(err, "failed to touch session")
}
