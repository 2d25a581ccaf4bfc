package postgres

import (
	"context"

	"github.com/jackc/pgx/v5"

	"github.com/sekai-soft/yurikamome/internal/domain/app"
	apperrors "github.com/sekai-soft/yurikamome/pkg/errors"
)

const appColumns = `app_id, name, website, redirect_uris, client_id, client_secret,
	vapid_key, scopes, session_id, authorization_code, access_token,
	created_at, last_used_at`

// AppRepository persists Applications in the apps table.
type AppRepository struct {
	db *DB
}

func NewAppRepository(db *DB) *AppRepository {
	return &AppRepository{db: db}
}

func (r *AppRepository) Create(ctx context.Context, a *app.Application) error {
	_, err := r.db.Pool.Exec(ctx, `
		INSERT INTO apps (`+appColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)`,
		a.AppID, a.Name, a.Website, a.RedirectURIs, a.ClientID, a.ClientSecret,
		a.VapidKey, a.Scopes, a.SessionID, a.AuthorizationCode, a.AccessToken,
		a.CreatedAt, a.LastUsedAt,
	)
	if err != nil {
		if isPgUniqueViolation(err) {
			return apperrors.ErrAppExists
		}
		return apperrors.Wrap(err, "failed to create app")
	}
	return nil
}

func (r *AppRepository) GetByClientID(ctx context.Context, clientID string) (*app.Application, error) {
	row := r.db.Pool.QueryRow(ctx, `
		SELECT `+appColumns+` FROM apps WHERE client_id = $1`, clientID)
	return r.scanApp(row)
}

func (r *AppRepository) GetByAccessToken(ctx context.Context, token string) (*app.Application, error) {
	row := r.db.Pool.QueryRow(ctx, `
		SELECT `+appColumns+` FROM apps WHERE access_token = $1`, token)
	return r.scanApp(row)
}

func (r *AppRepository) AttachSession(ctx context.Context, clientID, sessionID string) error {
	_, err := r.db.Pool.Exec(ctx, `
		UPDATE apps SET session_id = $2, last_used_at = now()
		WHERE client_id = $1`, clientID, sessionID)
	return apperrors.Wrap(err, "failed to attach session")
}

func (r *AppRepository) SetAuthorizationCode(ctx context.Context, clientID, code string) error {
	_, err := r.db.Pool.Exec(ctx, `
		UPDATE apps SET authorization_code = $2, last_used_at = now()
		WHERE client_id = $1`, clientID, code)
	return apperrors.Wrap(err, "failed to set authorization code")
}

// SetAccessToken overwrites the live token and consumes the stored
// authorization code in the same row update.
func (r *AppRepository) SetAccessToken(ctx context.Context, clientID, token string) error {
	_, err := r.db.Pool.Exec(ctx, `
		UPDATE apps SET access_token = $2, authorization_code = NULL, last_used_at = now()
		WHERE client_id = $1`, clientID, token)
	return apperrors.Wrap(err, "failed to set access token")
}

func (r *AppRepository) Touch(ctx context.Context, clientID string) error {
	_, err := r.db.Pool.Exec(ctx, `
		UPDATE apps SET last_used_at = now() WHERE client_id = $1`, clientID)
	return apperrors.Wrap(err, "failed to touch app")
}

func (r *AppRepository) scanApp(row pgx.Row) (*app.Application, error) {
	var a app.Application
	err := row.Scan(
		&a.AppID, &a.Name, &a.Website, &a.RedirectURIs, &a.ClientID, &a.ClientSecret,
		&a.VapidKey, &a.Scopes, &a.SessionID, &a.AuthorizationCode, &a.AccessToken,
		&a.CreatedAt, &a.LastUsedAt,
	)
	if err != nil {
		if isNoRows(err) {
			return nil, apperrors.ErrAppNotFound
		}
		return nil, apperrors.Wrap(err, "failed to scan app")
	}
	return &a, nil
}
