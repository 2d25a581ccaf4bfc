package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

// TokenGenerator provides cryptographically secure token generation.
type TokenGenerator struct{}

// NewTokenGenerator creates a new token generator.
func NewTokenGenerator() *TokenGenerator {
	return &TokenGenerator{}
}

// GenerateToken generates a cryptographically secure random token.
// Returns the token as a URL-safe base64 string.
func (g *TokenGenerator) GenerateToken(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(bytes), nil
}

// GenerateHex generates a random token encoded as lowercase hex.
func (g *TokenGenerator) GenerateHex(length int) (string, error) {
	bytes := make([]byte, length)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	return hex.EncodeToString(bytes), nil
}

// GenerateAuthorizationCode generates an authorization code (256 bits).
func (g *TokenGenerator) GenerateAuthorizationCode() (string, error) {
	return g.GenerateToken(32)
}

// GenerateAccessToken generates an access token (256 bits).
func (g *TokenGenerator) GenerateAccessToken() (string, error) {
	return g.GenerateToken(32)
}

// GenerateClientSecret generates a client secret (128 bits, hex).
func (g *TokenGenerator) GenerateClientSecret() (string, error) {
	return g.GenerateHex(16)
}

// GenerateVapidKey generates the opaque vapid_key returned to clients
// (128 bits, hex).
func (g *TokenGenerator) GenerateVapidKey() (string, error) {
	return g.GenerateHex(16)
}

// GenerateSessionID generates an opaque session cookie value
// (128 bits, hex).
func (g *TokenGenerator) GenerateSessionID() (string, error) {
	return g.GenerateHex(16)
}
