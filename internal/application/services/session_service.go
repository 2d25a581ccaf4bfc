package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/sekai-soft/yurikamome/internal/application/dto"
	"github.com/sekai-soft/yurikamome/internal/domain/app"
	"github.com/sekai-soft/yurikamome/internal/domain/session"
	"github.com/sekai-soft/yurikamome/internal/domain/twitter"
	"github.com/sekai-soft/yurikamome/internal/infrastructure/crypto"
	"github.com/sekai-soft/yurikamome/pkg/errors"
	"github.com/sekai-soft/yurikamome/pkg/logger"
)

// SessionService binds upstream Twitter logins to session rows and
// resolves bearer tokens back to live upstream clients.
type SessionService struct {
	appRepo     app.Repository
	sessionRepo session.Repository
	dialer      twitter.Dialer
	sealer      *crypto.Sealer
	tokenGen    *crypto.TokenGenerator
	logger      logger.Logger
}

// NewSessionService creates a new session service.
func NewSessionService(
	appRepo app.Repository,
	sessionRepo session.Repository,
	dialer twitter.Dialer,
	sealer *crypto.Sealer,
	tokenGen *crypto.TokenGenerator,
	log logger.Logger,
) *SessionService {
	return &SessionService{
		appRepo:     appRepo,
		sessionRepo: sessionRepo,
		dialer:      dialer,
		sealer:      sealer,
		tokenGen:    tokenGen,
		logger:      log.With(logger.Component("session_service")),
	}
}

// Login performs the upstream login and persists the resulting cookie
// jar as a sealed credential blob under a fresh session id.
func (s *SessionService) Login(ctx context.Context, req *dto.TwitterLoginRequest) (*session.Session, error) {
	client := s.dialer.Dial()
	if err := client.Login(ctx, req.Username, req.Email, req.Password, req.MFA); err != nil {
		return nil, err
	}

	serialized, err := json.Marshal(client.Cookies())
	if err != nil {
		return nil, errors.Wrap(err, "failed to serialize credentials")
	}

	sessionID, err := s.tokenGen.GenerateSessionID()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate session id")
	}

	sealed, err := s.sealer.Seal(serialized, sessionID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to seal credentials")
	}

	now := time.Now().UTC()
	sess := &session.Session{
		SessionID:      sessionID,
		Username:       req.Username,
		CredentialBlob: sealed,
		CreatedAt:      now,
		LastSeenAt:     now,
	}
	if err := s.sessionRepo.Create(ctx, sess); err != nil {
		return nil, err
	}

	s.logger.Info("session created", logger.SessionID(sessionID))
	return sess, nil
}

// Load fetches a session row by id.
func (s *SessionService) Load(ctx context.Context, sessionID string) (*session.Session, error) {
	return s.sessionRepo.GetByID(ctx, sessionID)
}

// Logout removes the session row. Unknown ids are ignored so a stale
// cookie still clears cleanly.
func (s *SessionService) Logout(ctx context.Context, sessionID string) error {
	if err := s.sessionRepo.Delete(ctx, sessionID); err != nil {
		return err
	}
	s.logger.Info("session deleted", logger.SessionID(sessionID))
	return nil
}

// Twid extracts the upstream account marker cookie from a session's
// credential blob, shown on the index page.
func (s *SessionService) Twid(sess *session.Session) (string, error) {
	creds, err := s.openCredentials(sess)
	if err != nil {
		return "", err
	}
	return creds["twid"], nil
}

// Resolve maps a bearer token to a live upstream client. Any miss along
// the chain, including an app whose session was deleted after the token
// was issued, collapses to ErrInvalidAccessToken.
func (s *SessionService) Resolve(ctx context.Context, bearerToken string) (twitter.Client, error) {
	if bearerToken == "" {
		return nil, errors.ErrInvalidAccessToken
	}

	a, err := s.appRepo.GetByAccessToken(ctx, bearerToken)
	if err != nil {
		return nil, errors.ErrInvalidAccessToken
	}
	if a.SessionID == nil {
		return nil, errors.ErrInvalidAccessToken
	}

	sess, err := s.sessionRepo.GetByID(ctx, *a.SessionID)
	if err != nil {
		return nil, errors.ErrInvalidAccessToken
	}

	creds, err := s.openCredentials(sess)
	if err != nil {
		s.logger.Warn("credential blob failed to open",
			logger.SessionID(sess.SessionID),
			logger.Error(err),
		)
		return nil, errors.ErrInvalidAccessToken
	}

	client := s.dialer.Dial()
	client.SetCookies(creds)

	if err := s.appRepo.Touch(ctx, a.ClientID); err != nil {
		return nil, err
	}
	if err := s.sessionRepo.Touch(ctx, sess.SessionID); err != nil {
		return nil, err
	}

	return client, nil
}

func (s *SessionService) openCredentials(sess *session.Session) (twitter.Credentials, error) {
	plaintext, err := s.sealer.Open(sess.CredentialBlob, sess.SessionID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to unseal credentials")
	}
	var creds twitter.Credentials
	if err := json.Unmarshal(plaintext, &creds); err != nil {
		return nil, errors.Wrap(err, "failed to decode credentials")
	}
	return creds, nil
}
