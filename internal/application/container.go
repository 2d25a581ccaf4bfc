package application

import (
	"github.com/sekai-soft/yurikamome/config"
	"github.com/sekai-soft/yurikamome/internal/application/services"
	"github.com/sekai-soft/yurikamome/internal/domain/twitter"
	"github.com/sekai-soft/yurikamome/internal/infrastructure/crypto"
	"github.com/sekai-soft/yurikamome/internal/infrastructure/persistence"
	"github.com/sekai-soft/yurikamome/pkg/logger"
)

// Services holds all application services.
type Services struct {
	App     *services.AppService
	OAuth   *services.OAuthService
	Session *services.SessionService
}

// Dependencies holds shared dependencies for services.
type Dependencies struct {
	TokenGen *crypto.TokenGenerator
	Sealer   *crypto.Sealer
	Dialer   twitter.Dialer
}

// NewDependencies creates shared dependencies from config.
func NewDependencies(cfg *config.Config, dialer twitter.Dialer) (*Dependencies, error) {
	sealer, err := crypto.NewSealer(cfg.Security.CredentialSealSecret)
	if err != nil {
		return nil, err
	}
	return &Dependencies{
		TokenGen: crypto.NewTokenGenerator(),
		Sealer:   sealer,
		Dialer:   dialer,
	}, nil
}

// NewServices creates all application services.
func NewServices(repos *persistence.Repositories, deps *Dependencies, log logger.Logger) *Services {
	return &Services{
		App:     services.NewAppService(repos.App, deps.TokenGen, log),
		OAuth:   services.NewOAuthService(repos.App, deps.TokenGen, log),
		Session: services.NewSessionService(repos.App, repos.Session, deps.Dialer, deps.Sealer, deps.TokenGen, log),
	}
}
