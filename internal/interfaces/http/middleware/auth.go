package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/sekai-soft/yurikamome/internal/application/services"
	"github.com/sekai-soft/yurikamome/internal/domain/session"
	"github.com/sekai-soft/yurikamome/internal/domain/twitter"
)

// ContextKey is a type for context keys.
type ContextKey string

const (
	// ContextKeySession is the context key for the loaded session row.
	ContextKeySession ContextKey = "session"
	// ContextKeyTwitterClient is the context key for the resolved upstream client.
	ContextKeyTwitterClient ContextKey = "twitter_client"
)

// SessionCookieName is the browser cookie carrying the session id.
const SessionCookieName = "session_id"

// invalidTokenBody is the fixed 401 body Mastodon clients match on.
var invalidTokenBody = gin.H{"error": "The access token is invalid"}

// AuthMiddleware gates human routes on the session cookie and API
// routes on bearer tokens.
type AuthMiddleware struct {
	sessions *services.SessionService
}

// NewAuthMiddleware creates a new auth middleware.
func NewAuthMiddleware(sessions *services.SessionService) *AuthMiddleware {
	return &AuthMiddleware{sessions: sessions}
}

// LoadSession attaches the session row named by the cookie, when one
// exists. Handlers decide what a missing session means for their route.
func (m *AuthMiddleware) LoadSession() gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(SessionCookieName)
		if err == nil && sessionID != "" {
			if sess, err := m.sessions.Load(c.Request.Context(), sessionID); err == nil {
				c.Set(string(ContextKeySession), sess)
			}
		}
		c.Next()
	}
}

// RequireAccessToken resolves the bearer token to a live upstream
// client and aborts with the fixed 401 body on any miss.
func (m *AuthMiddleware) RequireAccessToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		client, err := m.sessions.Resolve(c.Request.Context(), token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, invalidTokenBody)
			return
		}
		c.Set(string(ContextKeyTwitterClient), client)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return ""
	}
	return parts[1]
}

// GetSession extracts the loaded session row from context.
func GetSession(c *gin.Context) *session.Session {
	if v, exists := c.Get(string(ContextKeySession)); exists {
		if sess, ok := v.(*session.Session); ok {
			return sess
		}
	}
	return nil
}

// GetTwitterClient extracts the resolved upstream client from context.
func GetTwitterClient(c *gin.Context) twitter.Client {
	if v, exists := c.Get(string(ContextKeyTwitterClient)); exists {
		if client, ok := v.(twitter.Client); ok {
			return client
		}
	}
	return nil
}

// GetClientIP extracts the client IP address.
func GetClientIP(c *gin.Context) string {
	ip := c.GetHeader("X-Forwarded-For")
	if ip != "" {
		if idx := strings.Index(ip, ","); idx != -1 {
			ip = strings.TrimSpace(ip[:idx])
		}
		return ip
	}
	return c.ClientIP()
}
