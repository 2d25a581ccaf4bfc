package services

import (
	"context"
	"crypto/subtle"
	"net/url"
	"time"

	"github.com/sekai-soft/yurikamome/internal/application/dto"
	"github.com/sekai-soft/yurikamome/internal/domain/app"
	"github.com/sekai-soft/yurikamome/internal/domain/session"
	"github.com/sekai-soft/yurikamome/internal/infrastructure/crypto"
	"github.com/sekai-soft/yurikamome/pkg/errors"
	"github.com/sekai-soft/yurikamome/pkg/logger"
)

// Grant types supported by the token endpoint.
const (
	GrantAuthorizationCode = "authorization_code"
	GrantClientCredentials = "client_credentials"
)

// OAuthService drives the per-app authorization state machine:
// Registered, SessionAttached, CodeIssued, TokenIssued. Re-running the
// authorize step overwrites any previously issued code.
type OAuthService struct {
	appRepo  app.Repository
	tokenGen *crypto.TokenGenerator
	logger   logger.Logger
}

// NewOAuthService creates a new OAuth service.
func NewOAuthService(appRepo app.Repository, tokenGen *crypto.TokenGenerator, log logger.Logger) *OAuthService {
	return &OAuthService{
		appRepo:  appRepo,
		tokenGen: tokenGen,
		logger:   log.With(logger.Component("oauth_service")),
	}
}

// validateAuthorize runs the authorize-time checks in order and returns
// the application they resolve to. The requested scope only has to be a
// subset of the declared set here; the code exchange is stricter.
func (s *OAuthService) validateAuthorize(ctx context.Context, req *dto.AuthorizeRequest) (*app.Application, error) {
	if req.ResponseType != "code" {
		return nil, errors.NewFlowError(errors.CodeInvalidRequest, "response_type must be 'code'")
	}
	if req.ClientID == "" {
		return nil, errors.NewFlowError(errors.CodeInvalidRequest, "client_id is required")
	}

	a, err := s.appRepo.GetByClientID(ctx, req.ClientID)
	if err != nil {
		if errors.Is(err, errors.ErrAppNotFound) {
			return nil, errors.NewFlowError(errors.CodeInvalidClient, "client_id is not found")
		}
		return nil, err
	}

	if req.RedirectURI == "" {
		return nil, errors.NewFlowError(errors.CodeInvalidRequest, "redirect_uri is required")
	}
	if !a.HasRedirectURI(req.RedirectURI) {
		return nil, errors.NewFlowError(errors.CodeInvalidRequest, "redirect_uri is not included in the declared list when app is created")
	}

	if !app.ParseScopes(req.Scope).SubsetOf(a.DeclaredScopes()) {
		return nil, errors.NewFlowError(errors.CodeInvalidScope, "scope is not a subset of the declared set when app is created")
	}

	return a, nil
}

// Authorize validates the authorization request against an active
// session and binds the session to the app, returning what the consent
// page renders. The session-cookie gate runs before this; a missing or
// force-expired session never reaches here.
func (s *OAuthService) Authorize(ctx context.Context, req *dto.AuthorizeRequest, sess *session.Session) (*dto.ConsentView, error) {
	a, err := s.validateAuthorize(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := s.appRepo.AttachSession(ctx, a.ClientID, sess.SessionID); err != nil {
		return nil, err
	}

	s.logger.Info("session attached to app",
		logger.ClientID(a.ClientID),
		logger.SessionID(sess.SessionID),
	)

	return &dto.ConsentView{
		Username:   sess.Username,
		AppName:    a.Name,
		AppWebsite: a.Website,
		AppScopes:  a.Scopes,
	}, nil
}

// ConfirmAuthorize re-validates the request, mints a fresh authorization
// code and stores it on the app, superseding any earlier code. Returns
// the redirect target carrying the code.
func (s *OAuthService) ConfirmAuthorize(ctx context.Context, req *dto.AuthorizeRequest, sessionID string) (string, error) {
	a, err := s.validateAuthorize(ctx, req)
	if err != nil {
		return "", err
	}

	if err := s.appRepo.AttachSession(ctx, a.ClientID, sessionID); err != nil {
		return "", err
	}

	code, err := s.tokenGen.GenerateAuthorizationCode()
	if err != nil {
		return "", errors.Wrap(err, "failed to generate authorization code")
	}
	if err := s.appRepo.SetAuthorizationCode(ctx, a.ClientID, code); err != nil {
		return "", err
	}

	s.logger.Info("authorization code issued", logger.ClientID(a.ClientID))

	target, err := url.Parse(req.RedirectURI)
	if err != nil {
		return "", errors.Wrap(err, "declared redirect_uri does not parse")
	}
	query := target.Query()
	query.Set("code", code)
	target.RawQuery = query.Encode()
	return target.String(), nil
}

// Token exchanges an authorization code or client credentials for an
// access token. Issuing a token overwrites the app's previous token and
// consumes the stored code, so replaying an exchange fails.
func (s *OAuthService) Token(ctx context.Context, req *dto.TokenRequest) (*dto.TokenResponse, error) {
	if req.GrantType != GrantAuthorizationCode && req.GrantType != GrantClientCredentials {
		return nil, errors.NewFlowError(errors.CodeUnsupportedGrant, "grant_type must be 'authorization_code' or 'client_credentials'")
	}

	a, err := s.appRepo.GetByClientID(ctx, req.ClientID)
	if err != nil {
		if errors.Is(err, errors.ErrAppNotFound) {
			return nil, errors.NewFlowError(errors.CodeInvalidClient, "client_id is not found")
		}
		return nil, err
	}

	if subtle.ConstantTimeCompare([]byte(a.ClientSecret), []byte(req.ClientSecret)) != 1 {
		return nil, errors.NewFlowError(errors.CodeInvalidClient, "client_secret is invalid")
	}
	if !a.HasRedirectURI(req.RedirectURI) {
		return nil, errors.NewFlowError(errors.CodeInvalidRequest, "redirect_uri is not included in the declared list when app is created")
	}

	requested := app.ParseScopes(req.Scope)
	declared := a.DeclaredScopes()

	switch req.GrantType {
	case GrantAuthorizationCode:
		if a.AuthorizationCode == nil || subtle.ConstantTimeCompare([]byte(*a.AuthorizationCode), []byte(req.Code)) != 1 {
			return nil, errors.NewFlowError(errors.CodeInvalidGrant, "code is invalid")
		}
		if !requested.Equal(declared) {
			return nil, errors.NewFlowError(errors.CodeInvalidScope, "scope does not match the declared set when app is created")
		}
	case GrantClientCredentials:
		if !requested.SubsetOf(declared) {
			return nil, errors.NewFlowError(errors.CodeInvalidScope, "scope is not a subset of the declared set when app is created")
		}
	}

	token, err := s.tokenGen.GenerateAccessToken()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate access token")
	}
	if err := s.appRepo.SetAccessToken(ctx, a.ClientID, token); err != nil {
		return nil, err
	}

	s.logger.Info("access token issued",
		logger.ClientID(a.ClientID),
		logger.String("grant_type", req.GrantType),
	)

	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		Scope:       requested.String(),
		CreatedAt:   time.Now().Unix(),
	}, nil
}
