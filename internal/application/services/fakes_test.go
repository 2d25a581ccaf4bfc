package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/sekai-soft/yurikamome/internal/domain/app"
	"github.com/sekai-soft/yurikamome/internal/domain/session"
	"github.com/sekai-soft/yurikamome/internal/domain/twitter"
	"github.com/sekai-soft/yurikamome/pkg/errors"
	"github.com/sekai-soft/yurikamome/pkg/logger"
)

func newTestLogger(t *testing.T) logger.Logger {
	t.Helper()
	log, err := logger.New(logger.Config{Level: "error", Environment: "production"})
	require.NoError(t, err)
	return log
}

// fakeAppRepo is an in-memory app.Repository.
type fakeAppRepo struct {
	mu   sync.Mutex
	apps map[string]*app.Application
}

func newFakeAppRepo() *fakeAppRepo {
	return &fakeAppRepo{apps: make(map[string]*app.Application)}
}

func (r *fakeAppRepo) Create(_ context.Context, a *app.Application) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.apps[a.ClientID]; exists {
		return errors.ErrAppExists
	}
	clone := *a
	r.apps[a.ClientID] = &clone
	return nil
}

func (r *fakeAppRepo) GetByClientID(_ context.Context, clientID string) (*app.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	a, ok := r.apps[clientID]
	if !ok {
		return nil, errors.ErrAppNotFound
	}
	clone := *a
	return &clone, nil
}

func (r *fakeAppRepo) GetByAccessToken(_ context.Context, token string) (*app.Application, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.apps {
		if a.AccessToken != nil && *a.AccessToken == token {
			clone := *a
			return &clone, nil
		}
	}
	return nil, errors.ErrAppNotFound
}

func (r *fakeAppRepo) AttachSession(_ context.Context, clientID, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.apps[clientID]; ok {
		a.SessionID = &sessionID
		a.LastUsedAt = time.Now().UTC()
	}
	return nil
}

func (r *fakeAppRepo) SetAuthorizationCode(_ context.Context, clientID, code string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.apps[clientID]; ok {
		a.AuthorizationCode = &code
		a.LastUsedAt = time.Now().UTC()
	}
	return nil
}

func (r *fakeAppRepo) SetAccessToken(_ context.Context, clientID, token string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.apps[clientID]; ok {
		a.AccessToken = &token
		a.AuthorizationCode = nil
		a.LastUsedAt = time.Now().UTC()
	}
	return nil
}

func (r *fakeAppRepo) Touch(_ context.Context, clientID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if a, ok := r.apps[clientID]; ok {
		a.LastUsedAt = time.Now().UTC()
	}
	return nil
}

// fakeSessionRepo is an in-memory session.Repository.
type fakeSessionRepo struct {
	mu       sync.Mutex
	sessions map[string]*session.Session
}

func newFakeSessionRepo() *fakeSessionRepo {
	return &fakeSessionRepo{sessions: make(map[string]*session.Session)}
}

func (r *fakeSessionRepo) Create(_ context.Context, s *session.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *s
	r.sessions[s.SessionID] = &clone
	return nil
}

func (r *fakeSessionRepo) GetByID(_ context.Context, sessionID string) (*session.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[sessionID]
	if !ok {
		return nil, errors.ErrSessionNotFound
	}
	clone := *s
	return &clone, nil
}

func (r *fakeSessionRepo) Delete(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, sessionID)
	return nil
}

func (r *fakeSessionRepo) Touch(_ context.Context, sessionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if s, ok := r.sessions[sessionID]; ok {
		s.LastSeenAt = time.Now().UTC()
	}
	return nil
}

// fakeTwitterClient is a scripted twitter.Client.
type fakeTwitterClient struct {
	loginErr    error
	cookies     twitter.Credentials
	setCookies  twitter.Credentials
	currentUser *twitter.User
	timeline    []*twitter.Tweet
	upstreamErr error
}

func (c *fakeTwitterClient) Login(_ context.Context, _, _, _, _ string) error {
	return c.loginErr
}

func (c *fakeTwitterClient) Cookies() twitter.Credentials {
	return c.cookies
}

func (c *fakeTwitterClient) SetCookies(creds twitter.Credentials) {
	c.setCookies = creds
}

func (c *fakeTwitterClient) CurrentUser(_ context.Context) (*twitter.User, error) {
	if c.upstreamErr != nil {
		return nil, c.upstreamErr
	}
	return c.currentUser, nil
}

func (c *fakeTwitterClient) LatestTimeline(_ context.Context) ([]*twitter.Tweet, error) {
	if c.upstreamErr != nil {
		return nil, c.upstreamErr
	}
	return c.timeline, nil
}

func fakeDialer(client *fakeTwitterClient) twitter.Dialer {
	return twitter.DialerFunc(func() twitter.Client { return client })
}

func fixtureApp() *app.Application {
	return &app.Application{
		AppID:        "app-1",
		Name:         "My App",
		RedirectURIs: "https://example.com/cb",
		ClientID:     "client-1",
		ClientSecret: "secret-1",
		Scopes:       "read write",
	}
}
