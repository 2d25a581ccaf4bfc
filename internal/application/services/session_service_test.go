package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sekai-soft/yurikamome/internal/application/dto"
	"github.com/sekai-soft/yurikamome/internal/domain/twitter"
	"github.com/sekai-soft/yurikamome/internal/infrastructure/crypto"
	"github.com/sekai-soft/yurikamome/pkg/errors"
)

func newSessionFixture(t *testing.T, client *fakeTwitterClient) (*SessionService, *fakeAppRepo, *fakeSessionRepo) {
	t.Helper()
	appRepo := newFakeAppRepo()
	sessionRepo := newFakeSessionRepo()
	sealer, err := crypto.NewSealer("test-secret")
	require.NoError(t, err)

	svc := NewSessionService(appRepo, sessionRepo, fakeDialer(client), sealer, crypto.NewTokenGenerator(), newTestLogger(t))
	return svc, appRepo, sessionRepo
}

func TestSessionLoginSealsCredentials(t *testing.T) {
	client := &fakeTwitterClient{
		cookies: twitter.Credentials{"auth_token": "abc", "ct0": "def", "twid": "u=123"},
	}
	svc, _, sessionRepo := newSessionFixture(t, client)

	sess, err := svc.Login(context.Background(), &dto.TwitterLoginRequest{
		Username: "somebody",
		Email:    "somebody@example.com",
		Password: "hunter2",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, sess.SessionID)
	assert.Equal(t, "somebody", sess.Username)

	stored, err := sessionRepo.GetByID(context.Background(), sess.SessionID)
	require.NoError(t, err)
	// The blob at rest is sealed, not the raw cookie JSON.
	assert.NotContains(t, string(stored.CredentialBlob), "auth_token")

	twid, err := svc.Twid(stored)
	require.NoError(t, err)
	assert.Equal(t, "u=123", twid)
}

func TestSessionLoginPropagatesUpstreamFailure(t *testing.T) {
	client := &fakeTwitterClient{loginErr: errors.ErrUpstream}
	svc, _, sessionRepo := newSessionFixture(t, client)

	_, err := svc.Login(context.Background(), &dto.TwitterLoginRequest{Username: "somebody"})
	require.Error(t, err)
	assert.Empty(t, sessionRepo.sessions)
}

func TestResolve(t *testing.T) {
	client := &fakeTwitterClient{
		cookies: twitter.Credentials{"auth_token": "abc", "twid": "u=123"},
	}
	svc, appRepo, _ := newSessionFixture(t, client)

	sess, err := svc.Login(context.Background(), &dto.TwitterLoginRequest{Username: "somebody"})
	require.NoError(t, err)

	a := fixtureApp()
	require.NoError(t, appRepo.Create(context.Background(), a))
	require.NoError(t, appRepo.AttachSession(context.Background(), a.ClientID, sess.SessionID))
	require.NoError(t, appRepo.SetAccessToken(context.Background(), a.ClientID, "token-1"))

	resolved, err := svc.Resolve(context.Background(), "token-1")
	require.NoError(t, err)
	require.NotNil(t, resolved)
	// The client was rehydrated with the unsealed cookies.
	assert.Equal(t, "abc", client.setCookies["auth_token"])
}

func TestResolveRejections(t *testing.T) {
	client := &fakeTwitterClient{cookies: twitter.Credentials{"auth_token": "abc"}}
	svc, appRepo, sessionRepo := newSessionFixture(t, client)

	sess, err := svc.Login(context.Background(), &dto.TwitterLoginRequest{Username: "somebody"})
	require.NoError(t, err)

	a := fixtureApp()
	require.NoError(t, appRepo.Create(context.Background(), a))
	require.NoError(t, appRepo.AttachSession(context.Background(), a.ClientID, sess.SessionID))
	require.NoError(t, appRepo.SetAccessToken(context.Background(), a.ClientID, "token-1"))

	_, err = svc.Resolve(context.Background(), "")
	assert.ErrorIs(t, err, errors.ErrInvalidAccessToken)

	_, err = svc.Resolve(context.Background(), "unknown-token")
	assert.ErrorIs(t, err, errors.ErrInvalidAccessToken)

	// Deleting the session after token issuance invalidates the token.
	require.NoError(t, sessionRepo.Delete(context.Background(), sess.SessionID))
	_, err = svc.Resolve(context.Background(), "token-1")
	assert.ErrorIs(t, err, errors.ErrInvalidAccessToken)
}

func TestResolveRejectsAppWithoutSession(t *testing.T) {
	client := &fakeTwitterClient{}
	svc, appRepo, _ := newSessionFixture(t, client)

	a := fixtureApp()
	require.NoError(t, appRepo.Create(context.Background(), a))
	require.NoError(t, appRepo.SetAccessToken(context.Background(), a.ClientID, "token-1"))

	_, err := svc.Resolve(context.Background(), "token-1")
	assert.ErrorIs(t, err, errors.ErrInvalidAccessToken)
}

func TestLogoutIsIdempotent(t *testing.T) {
	client := &fakeTwitterClient{cookies: twitter.Credentials{}}
	svc, _, _ := newSessionFixture(t, client)

	sess, err := svc.Login(context.Background(), &dto.TwitterLoginRequest{Username: "somebody"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(context.Background(), sess.SessionID))
	require.NoError(t, svc.Logout(context.Background(), sess.SessionID))

	_, err = svc.Load(context.Background(), sess.SessionID)
	assert.ErrorIs(t, err, errors.ErrSessionNotFound)
}
