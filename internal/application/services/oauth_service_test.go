package services

import (
	"context"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sekai-soft/yurikamome/internal/application/dto"
	"github.com/sekai-soft/yurikamome/internal/domain/app"
	"github.com/sekai-soft/yurikamome/internal/domain/session"
	"github.com/sekai-soft/yurikamome/internal/infrastructure/crypto"
	"github.com/sekai-soft/yurikamome/pkg/errors"
)

func newOAuthFixture(t *testing.T) (*OAuthService, *fakeAppRepo, *app.Application, *session.Session) {
	t.Helper()
	repo := newFakeAppRepo()
	svc := NewOAuthService(repo, crypto.NewTokenGenerator(), newTestLogger(t))

	a := &app.Application{
		AppID:        "app-1",
		Name:         "My App",
		RedirectURIs: "https://example.com/cb",
		ClientID:     "client-1",
		ClientSecret: "secret-1",
		Scopes:       "read write",
		CreatedAt:    time.Now().UTC(),
		LastUsedAt:   time.Now().UTC(),
	}
	require.NoError(t, repo.Create(context.Background(), a))

	sess := &session.Session{SessionID: "sess-1", Username: "somebody"}
	return svc, repo, a, sess
}

func authorizeReq(scope string) *dto.AuthorizeRequest {
	return &dto.AuthorizeRequest{
		ResponseType: "code",
		ClientID:     "client-1",
		RedirectURI:  "https://example.com/cb",
		Scope:        scope,
	}
}

func flowMessage(t *testing.T, err error) string {
	t.Helper()
	fe, ok := errors.AsFlowError(err)
	require.True(t, ok, "expected a flow error, got %v", err)
	return fe.Message
}

func TestAuthorizeAttachesSessionAndReturnsConsent(t *testing.T) {
	svc, repo, _, sess := newOAuthFixture(t)

	view, err := svc.Authorize(context.Background(), authorizeReq("read"), sess)
	require.NoError(t, err)
	assert.Equal(t, "somebody", view.Username)
	assert.Equal(t, "My App", view.AppName)
	assert.Equal(t, "read write", view.AppScopes)

	stored, err := repo.GetByClientID(context.Background(), "client-1")
	require.NoError(t, err)
	require.NotNil(t, stored.SessionID)
	assert.Equal(t, "sess-1", *stored.SessionID)
}

func TestAuthorizeValidation(t *testing.T) {
	svc, repo, _, sess := newOAuthFixture(t)

	tests := []struct {
		name string
		req  *dto.AuthorizeRequest
		want string
	}{
		{
			name: "response_type must be code",
			req: &dto.AuthorizeRequest{
				ResponseType: "token", ClientID: "client-1", RedirectURI: "https://example.com/cb",
			},
			want: "response_type must be 'code'",
		},
		{
			name: "unknown client",
			req: &dto.AuthorizeRequest{
				ResponseType: "code", ClientID: "nope", RedirectURI: "https://example.com/cb",
			},
			want: "client_id is not found",
		},
		{
			name: "undeclared redirect uri",
			req: &dto.AuthorizeRequest{
				ResponseType: "code", ClientID: "client-1", RedirectURI: "https://evil.example.com/cb",
			},
			want: "redirect_uri is not included in the declared list when app is created",
		},
		{
			name: "scope not a subset",
			req: &dto.AuthorizeRequest{
				ResponseType: "code", ClientID: "client-1", RedirectURI: "https://example.com/cb", Scope: "read push",
			},
			want: "scope is not a subset of the declared set when app is created",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Authorize(context.Background(), tt.req, sess)
			assert.Equal(t, tt.want, flowMessage(t, err))
		})
	}

	// No validation failure above touched persisted state.
	stored, err := repo.GetByClientID(context.Background(), "client-1")
	require.NoError(t, err)
	assert.Nil(t, stored.SessionID)
	assert.Nil(t, stored.AuthorizationCode)
}

func TestAuthorizeScopeSubsetAllowed(t *testing.T) {
	svc, _, _, sess := newOAuthFixture(t)

	// Requesting a strict subset at authorize time is fine.
	_, err := svc.Authorize(context.Background(), authorizeReq("read"), sess)
	assert.NoError(t, err)

	// An empty scope defaults to "read", also a subset.
	_, err = svc.Authorize(context.Background(), authorizeReq(""), sess)
	assert.NoError(t, err)
}

func TestConfirmAuthorizeIssuesCode(t *testing.T) {
	svc, repo, _, sess := newOAuthFixture(t)

	target, err := svc.ConfirmAuthorize(context.Background(), authorizeReq("read"), sess.SessionID)
	require.NoError(t, err)

	parsed, err := url.Parse(target)
	require.NoError(t, err)
	assert.Equal(t, "example.com", parsed.Host)
	assert.Equal(t, "/cb", parsed.Path)
	code := parsed.Query().Get("code")
	assert.NotEmpty(t, code)

	stored, err := repo.GetByClientID(context.Background(), "client-1")
	require.NoError(t, err)
	require.NotNil(t, stored.AuthorizationCode)
	assert.Equal(t, code, *stored.AuthorizationCode)
}

func TestConfirmAuthorizeOverwritesPriorCode(t *testing.T) {
	svc, repo, _, sess := newOAuthFixture(t)

	first, err := svc.ConfirmAuthorize(context.Background(), authorizeReq("read"), sess.SessionID)
	require.NoError(t, err)
	second, err := svc.ConfirmAuthorize(context.Background(), authorizeReq("read"), sess.SessionID)
	require.NoError(t, err)
	assert.NotEqual(t, first, second)

	firstCode := queryParam(t, first, "code")
	secondCode := queryParam(t, second, "code")

	stored, err := repo.GetByClientID(context.Background(), "client-1")
	require.NoError(t, err)
	assert.Equal(t, secondCode, *stored.AuthorizationCode)

	// The superseded code is rejected at exchange time.
	_, err = svc.Token(context.Background(), tokenReq(firstCode, "read write"))
	assert.Equal(t, "code is invalid", flowMessage(t, err))
}

func tokenReq(code, scope string) *dto.TokenRequest {
	return &dto.TokenRequest{
		GrantType:    GrantAuthorizationCode,
		ClientID:     "client-1",
		ClientSecret: "secret-1",
		RedirectURI:  "https://example.com/cb",
		Scope:        scope,
		Code:         code,
	}
}

func queryParam(t *testing.T, rawURL, key string) string {
	t.Helper()
	parsed, err := url.Parse(rawURL)
	require.NoError(t, err)
	return parsed.Query().Get(key)
}

func TestTokenAuthorizationCodeFlow(t *testing.T) {
	svc, repo, _, sess := newOAuthFixture(t)

	target, err := svc.ConfirmAuthorize(context.Background(), authorizeReq("read"), sess.SessionID)
	require.NoError(t, err)
	code := queryParam(t, target, "code")

	resp, err := svc.Token(context.Background(), tokenReq(code, "read write"))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, "read write", resp.Scope)
	assert.InDelta(t, time.Now().Unix(), resp.CreatedAt, 5)

	stored, err := repo.GetByClientID(context.Background(), "client-1")
	require.NoError(t, err)
	require.NotNil(t, stored.AccessToken)
	assert.Equal(t, resp.AccessToken, *stored.AccessToken)

	// The exchange consumed the code; replaying it fails.
	_, err = svc.Token(context.Background(), tokenReq(code, "read write"))
	assert.Equal(t, "code is invalid", flowMessage(t, err))
}

func TestTokenScopeAsymmetry(t *testing.T) {
	svc, _, _, sess := newOAuthFixture(t)

	// Authorize accepts the subset...
	target, err := svc.ConfirmAuthorize(context.Background(), authorizeReq("read"), sess.SessionID)
	require.NoError(t, err)
	code := queryParam(t, target, "code")

	// ...but the code exchange demands the exact declared set.
	_, err = svc.Token(context.Background(), tokenReq(code, "read"))
	assert.Equal(t, "scope does not match the declared set when app is created", flowMessage(t, err))

	resp, err := svc.Token(context.Background(), tokenReq(code, "write read"))
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
}

func TestTokenValidation(t *testing.T) {
	svc, _, _, sess := newOAuthFixture(t)

	target, err := svc.ConfirmAuthorize(context.Background(), authorizeReq("read"), sess.SessionID)
	require.NoError(t, err)
	code := queryParam(t, target, "code")

	tests := []struct {
		name   string
		mutate func(*dto.TokenRequest)
		want   string
	}{
		{
			name:   "unsupported grant type",
			mutate: func(r *dto.TokenRequest) { r.GrantType = "password" },
			want:   "grant_type must be 'authorization_code' or 'client_credentials'",
		},
		{
			name:   "unknown client",
			mutate: func(r *dto.TokenRequest) { r.ClientID = "nope" },
			want:   "client_id is not found",
		},
		{
			name:   "wrong secret",
			mutate: func(r *dto.TokenRequest) { r.ClientSecret = "wrong" },
			want:   "client_secret is invalid",
		},
		{
			name:   "undeclared redirect uri",
			mutate: func(r *dto.TokenRequest) { r.RedirectURI = "https://evil.example.com/cb" },
			want:   "redirect_uri is not included in the declared list when app is created",
		},
		{
			name:   "wrong code",
			mutate: func(r *dto.TokenRequest) { r.Code = "bogus" },
			want:   "code is invalid",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := tokenReq(code, "read write")
			tt.mutate(req)
			_, err := svc.Token(context.Background(), req)
			assert.Equal(t, tt.want, flowMessage(t, err))
		})
	}
}

func TestTokenWithoutIssuedCode(t *testing.T) {
	svc, _, _, _ := newOAuthFixture(t)

	_, err := svc.Token(context.Background(), tokenReq("anything", "read write"))
	assert.Equal(t, "code is invalid", flowMessage(t, err))
}

func TestTokenClientCredentials(t *testing.T) {
	svc, _, _, _ := newOAuthFixture(t)

	req := tokenReq("", "read")
	req.GrantType = GrantClientCredentials
	req.Code = ""

	// Subset is enough for client_credentials, no code required.
	resp, err := svc.Token(context.Background(), req)
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.Equal(t, "read", resp.Scope)

	req.Scope = "read push"
	_, err = svc.Token(context.Background(), req)
	assert.Equal(t, "scope is not a subset of the declared set when app is created", flowMessage(t, err))
}

func TestTokenOverwritesPriorToken(t *testing.T) {
	svc, repo, _, _ := newOAuthFixture(t)

	req := tokenReq("", "read")
	req.GrantType = GrantClientCredentials

	first, err := svc.Token(context.Background(), req)
	require.NoError(t, err)
	second, err := svc.Token(context.Background(), req)
	require.NoError(t, err)
	assert.NotEqual(t, first.AccessToken, second.AccessToken)

	// Only the most recent token resolves.
	_, err = repo.GetByAccessToken(context.Background(), first.AccessToken)
	assert.Error(t, err)
	_, err = repo.GetByAccessToken(context.Background(), second.AccessToken)
	assert.NoError(t, err)
}
