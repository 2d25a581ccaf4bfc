package dto

// CreateAppRequest represents a Mastodon app registration. Clients send
// it as JSON or form data, sometimes with percent-encoded values.
type CreateAppRequest struct {
	ClientName   string `json:"client_name" form:"client_name"`
	RedirectURIs string `json:"redirect_uris" form:"redirect_uris"`
	Scopes       string `json:"scopes" form:"scopes"`
	Website      string `json:"website" form:"website"`
}

// CreateAppResponse represents a registered app with its credentials.
// The singular redirect_uri key echoes the declared list verbatim.
type CreateAppResponse struct {
	ID           string  `json:"id"`
	Name         string  `json:"name"`
	Website      *string `json:"website"`
	RedirectURI  string  `json:"redirect_uri"`
	ClientID     string  `json:"client_id"`
	ClientSecret string  `json:"client_secret"`
	VapidKey     string  `json:"vapid_key"`
}
