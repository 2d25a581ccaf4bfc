package app

import (
	"strings"
	"time"
)

// Application represents one registered OAuth client of this service.
// Its code/token/session columns are mutated in place as the broker
// walks the grant flow; only one authorization code and one access
// token are ever live per app.
type Application struct {
	AppID        string
	Name         string
	Website      *string
	RedirectURIs string // stored as submitted, newline/space separated
	ClientID     string
	ClientSecret string
	VapidKey     string
	Scopes       string // space-delimited declared scope set

	SessionID         *string
	AuthorizationCode *string
	AccessToken       *string

	CreatedAt  time.Time
	LastUsedAt time.Time
}

// RedirectURIList splits the stored redirect_uris string into its
// declared entries. Mastodon clients submit multiple URIs separated by
// newlines; matching against an entry is byte-exact.
func (a *Application) RedirectURIList() []string {
	return strings.Fields(a.RedirectURIs)
}

// HasRedirectURI reports whether uri exactly matches a declared entry.
func (a *Application) HasRedirectURI(uri string) bool {
	if uri == "" {
		return false
	}
	for _, declared := range a.RedirectURIList() {
		if declared == uri {
			return true
		}
	}
	return false
}

// DeclaredScopes returns the app's declared scope set.
func (a *Application) DeclaredScopes() ScopeSet {
	return ParseScopes(a.Scopes)
}
