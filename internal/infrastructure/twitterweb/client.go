// Package twitterweb talks to the unofficial Twitter web API using the
// same endpoints and headers the official web client uses.
package twitterweb

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/sekai-soft/yurikamome/internal/domain/twitter"
	apperrors "github.com/sekai-soft/yurikamome/pkg/errors"
)

const (
	// Public bearer token of the Twitter web client.
	bearerToken = "AAAAAAAAAAAAAAAAAAAAANRILgAAAAAAnNwIzUejRCOuH5E6I8xnZz4puTs%3D1Zv7ttfk8LF81IUq16cHjhLTvJu4FA33AGWWjCpTnA"

	apiBase       = "https://api.twitter.com"
	guestTokenURL = apiBase + "/1.1/guest/activate.json"
	loginFlowURL  = apiBase + "/1.1/onboarding/task.json"
	verifyURL     = apiBase + "/1.1/account/verify_credentials.json"

	latestTimelineURL    = "https://twitter.com/i/api/graphql/HyuV8ml52TYE5UNQ5aPbVA/HomeLatestTimeline"
	defaultTimelineCount = 20
)

var cookieOrigin = &url.URL{Scheme: "https", Host: "twitter.com"}

// Dialer produces fresh clients, one per request or login.
type Dialer struct {
	Timeout   time.Duration
	UserAgent string
}

func (d *Dialer) Dial() twitter.Client {
	timeout := d.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	userAgent := d.UserAgent
	if userAgent == "" {
		userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0.0.0 Safari/537.36"
	}
	jar, _ := cookiejar.New(nil)
	return &Client{
		httpClient: &http.Client{Timeout: timeout, Jar: jar},
		jar:        jar,
		userAgent:  userAgent,
	}
}

// Client is a stateful upstream client. Credentials live in its cookie
// jar; a logged-in client can be drained with Cookies and rehydrated
// later with SetCookies.
type Client struct {
	httpClient *http.Client
	jar        http.CookieJar
	userAgent  string
	guestToken string
}

// Cookies exports the twitter.com cookies as a flat name/value map.
func (c *Client) Cookies() twitter.Credentials {
	creds := twitter.Credentials{}
	for _, cookie := range c.jar.Cookies(cookieOrigin) {
		creds[cookie.Name] = cookie.Value
	}
	return creds
}

// SetCookies rehydrates the jar from a previously exported map.
func (c *Client) SetCookies(creds twitter.Credentials) {
	cookies := make([]*http.Cookie, 0, len(creds))
	for name, value := range creds {
		cookies = append(cookies, &http.Cookie{
			Name:   name,
			Value:  value,
			Domain: ".twitter.com",
			Path:   "/",
		})
	}
	c.jar.SetCookies(cookieOrigin, cookies)
}

func (c *Client) csrfToken() string {
	for _, cookie := range c.jar.Cookies(cookieOrigin) {
		if cookie.Name == "ct0" {
			return cookie.Value
		}
	}
	return ""
}

func (c *Client) do(ctx context.Context, method, rawURL string, body any, out any) error {
	var reqBody io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return apperrors.Wrap(err, "failed to encode upstream request")
		}
		reqBody = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, rawURL, reqBody)
	if err != nil {
		return apperrors.Wrap(err, "failed to build upstream request")
	}

	req.Header.Set("Authorization", "Bearer "+bearerToken)
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("X-Twitter-Active-User", "yes")
	req.Header.Set("X-Twitter-Client-Language", "en-US")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.guestToken != "" {
		req.Header.Set("X-Guest-Token", c.guestToken)
	}
	if csrf := c.csrfToken(); csrf != "" {
		req.Header.Set("X-Csrf-Token", csrf)
		req.Header.Set("X-Twitter-Auth-Type", "OAuth2Session")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return apperrors.Wrapf(apperrors.ErrUpstream, "request failed: %v", err)
	}
	defer resp.Body.Close()

	payload, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperrors.Wrap(err, "failed to read upstream response")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return apperrors.Wrapf(apperrors.ErrUpstream, "status %d: %s", resp.StatusCode, truncate(payload, 256))
	}

	if out != nil {
		if err := json.Unmarshal(payload, out); err != nil {
			return apperrors.Wrap(err, "failed to decode upstream response")
		}
	}
	return nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
