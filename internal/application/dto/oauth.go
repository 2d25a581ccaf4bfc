package dto

// AuthorizeRequest represents the OAuth authorization query. The same
// shape arrives as form fields when the consent page is confirmed.
type AuthorizeRequest struct {
	ResponseType string `form:"response_type"`
	ClientID     string `form:"client_id"`
	RedirectURI  string `form:"redirect_uri"`
	Scope        string `form:"scope"`
	ForceLogin   string `form:"force_login"`
	Lang         string `form:"lang"`
}

// ConsentView carries what the authorization page renders.
type ConsentView struct {
	Username   string
	AppName    string
	AppWebsite *string
	AppScopes  string
}

// TokenRequest represents an OAuth token exchange.
type TokenRequest struct {
	GrantType    string `json:"grant_type" form:"grant_type"`
	ClientID     string `json:"client_id" form:"client_id"`
	ClientSecret string `json:"client_secret" form:"client_secret"`
	RedirectURI  string `json:"redirect_uri" form:"redirect_uri"`
	Scope        string `json:"scope" form:"scope"`
	Code         string `json:"code" form:"code"`
}

// TokenResponse represents an issued token.
type TokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	Scope       string `json:"scope"`
	CreatedAt   int64  `json:"created_at"`
}
