package services

import (
	"context"
	"net/url"
	"time"

	"github.com/google/uuid"

	"github.com/sekai-soft/yurikamome/internal/application/dto"
	"github.com/sekai-soft/yurikamome/internal/domain/app"
	"github.com/sekai-soft/yurikamome/internal/infrastructure/crypto"
	"github.com/sekai-soft/yurikamome/pkg/errors"
	"github.com/sekai-soft/yurikamome/pkg/logger"
)

// AppService registers and looks up client applications.
type AppService struct {
	appRepo  app.Repository
	tokenGen *crypto.TokenGenerator
	logger   logger.Logger
}

// NewAppService creates a new app service.
func NewAppService(appRepo app.Repository, tokenGen *crypto.TokenGenerator, log logger.Logger) *AppService {
	return &AppService{
		appRepo:  appRepo,
		tokenGen: tokenGen,
		logger:   log.With(logger.Component("app_service")),
	}
}

// Register creates an application with fresh credentials. client_name
// and redirect_uris arrive percent-encoded from some clients and are
// decoded before storage.
func (s *AppService) Register(ctx context.Context, req *dto.CreateAppRequest) (*dto.CreateAppResponse, error) {
	if req.ClientName == "" {
		return nil, errors.NewFlowError(errors.CodeInvalidRequest, "client_name is required")
	}
	if req.RedirectURIs == "" {
		return nil, errors.NewFlowError(errors.CodeInvalidRequest, "redirect_uris is required")
	}

	clientName := percentDecode(req.ClientName)
	redirectURIs := percentDecode(req.RedirectURIs)

	scopes := req.Scopes
	if scopes == "" {
		scopes = app.DefaultScope
	}
	var website *string
	if req.Website != "" {
		website = &req.Website
	}

	clientSecret, err := s.tokenGen.GenerateClientSecret()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate client secret")
	}
	vapidKey, err := s.tokenGen.GenerateVapidKey()
	if err != nil {
		return nil, errors.Wrap(err, "failed to generate vapid key")
	}

	now := time.Now().UTC()
	a := &app.Application{
		AppID:        uuid.NewString(),
		Name:         clientName,
		Website:      website,
		RedirectURIs: redirectURIs,
		ClientID:     uuid.NewString(),
		ClientSecret: clientSecret,
		VapidKey:     vapidKey,
		Scopes:       scopes,
		CreatedAt:    now,
		LastUsedAt:   now,
	}

	if err := s.appRepo.Create(ctx, a); err != nil {
		return nil, err
	}

	s.logger.Info("app registered",
		logger.ClientID(a.ClientID),
		logger.String("app_name", a.Name),
	)

	return &dto.CreateAppResponse{
		ID:           a.AppID,
		Name:         a.Name,
		Website:      a.Website,
		RedirectURI:  a.RedirectURIs,
		ClientID:     a.ClientID,
		ClientSecret: a.ClientSecret,
		VapidKey:     a.VapidKey,
	}, nil
}

// FindByClientID returns the application or ErrAppNotFound.
func (s *AppService) FindByClientID(ctx context.Context, clientID string) (*app.Application, error) {
	return s.appRepo.GetByClientID(ctx, clientID)
}

// percentDecode unescapes the value, keeping it as-is when the escape
// sequences are malformed. PathUnescape leaves literal '+' characters
// alone, which matters for redirect URIs.
func percentDecode(v string) string {
	decoded, err := url.PathUnescape(v)
	if err != nil {
		return v
	}
	return decoded
}
