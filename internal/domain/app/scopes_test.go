package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseScopes(t *testing.T) {
	assert.Equal(t, ScopeSet{"read": {}}, ParseScopes(""))
	assert.Equal(t, ScopeSet{"read": {}}, ParseScopes("  "))
	assert.Equal(t, ScopeSet{"read": {}, "write": {}}, ParseScopes("read write"))
	assert.Equal(t, ScopeSet{"read": {}}, ParseScopes("read read"))
}

func TestScopeSetSubsetOf(t *testing.T) {
	declared := ParseScopes("read write follow")

	assert.True(t, ParseScopes("read").SubsetOf(declared))
	assert.True(t, ParseScopes("read write follow").SubsetOf(declared))
	assert.False(t, ParseScopes("read push").SubsetOf(declared))
}

func TestScopeSetEqual(t *testing.T) {
	assert.True(t, ParseScopes("write read").Equal(ParseScopes("read write")))
	assert.False(t, ParseScopes("read").Equal(ParseScopes("read write")))
	assert.False(t, ParseScopes("read write").Equal(ParseScopes("read")))
}

func TestScopeSetString(t *testing.T) {
	assert.Equal(t, "follow read write", ParseScopes("write follow read").String())
}

func TestHasRedirectURI(t *testing.T) {
	a := &Application{RedirectURIs: "https://example.com/cb urn:ietf:wg:oauth:2.0:oob"}

	assert.True(t, a.HasRedirectURI("https://example.com/cb"))
	assert.True(t, a.HasRedirectURI("urn:ietf:wg:oauth:2.0:oob"))
	// Exact entry match only, no prefix or substring matching.
	assert.False(t, a.HasRedirectURI("https://example.com/cb/extra"))
	assert.False(t, a.HasRedirectURI("https://example.com"))
	assert.False(t, a.HasRedirectURI(""))
}
