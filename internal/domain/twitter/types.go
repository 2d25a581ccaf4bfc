package twitter

import "encoding/json"

// User is the full upstream user object shape.
type User struct {
	ID               string `json:"id"`
	CreatedAt        string `json:"created_at"`
	ScreenName       string `json:"screen_name"`
	Name             string `json:"name"`
	ProfileImageURL  string `json:"profile_image_url"`
	ProfileBannerURL string `json:"profile_banner_url"`
}

// LegacyAuthor is the partial, GraphQL-era dictionary shape some
// payloads carry instead of a full user object.
type LegacyAuthor struct {
	RestID string `json:"rest_id"`
	Legacy struct {
		CreatedAt            string `json:"created_at"`
		ScreenName           string `json:"screen_name"`
		Name                 string `json:"name"`
		ProfileImageURLHTTPS string `json:"profile_image_url_https"`
		ProfileBannerURL     string `json:"profile_banner_url"`
	} `json:"legacy"`
}

// Author is the tweet author in either of the two upstream shapes,
// decoded once at the boundary rather than probed at each field access.
// Exactly one of User and Legacy is set for a decoded author; both nil
// means the payload carried no author identity at all.
type Author struct {
	User   *User
	Legacy *LegacyAuthor
}

// IsZero reports whether no identity was present in either shape.
func (a Author) IsZero() bool {
	return a.User == nil && a.Legacy == nil
}

// UnmarshalJSON decodes whichever author shape the payload carries.
// The legacy dictionary shape is recognized by its rest_id/legacy keys.
func (a *Author) UnmarshalJSON(data []byte) error {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(data, &probe); err != nil {
		return err
	}
	if probe == nil {
		return nil
	}

	_, hasRestID := probe["rest_id"]
	_, hasLegacy := probe["legacy"]
	if hasRestID || hasLegacy {
		var legacy LegacyAuthor
		if err := json.Unmarshal(data, &legacy); err != nil {
			return err
		}
		a.Legacy = &legacy
		return nil
	}

	var user User
	if err := json.Unmarshal(data, &user); err != nil {
		return err
	}
	a.User = &user
	return nil
}

// MarshalJSON renders the shape that was decoded.
func (a Author) MarshalJSON() ([]byte, error) {
	switch {
	case a.Legacy != nil:
		return json.Marshal(a.Legacy)
	case a.User != nil:
		return json.Marshal(a.User)
	default:
		return []byte("null"), nil
	}
}

// MediaInfo carries the upstream original_info dimensions.
type MediaInfo struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Media is one attachment on a tweet.
type Media struct {
	IDStr         string    `json:"id_str"`
	Type          string    `json:"type"`
	MediaURLHTTPS string    `json:"media_url_https"`
	OriginalInfo  MediaInfo `json:"original_info"`
}

// Tweet is the upstream tweet object. CreatedAt stays in the upstream
// fixed string format ("Sat Mar 16 23:00:07 +0000 2024") until the
// translation engine canonicalizes it.
type Tweet struct {
	ID                string  `json:"id"`
	FullText          string  `json:"full_text"`
	CreatedAt         string  `json:"created_at"`
	Lang              string  `json:"lang"`
	PossiblySensitive bool    `json:"possibly_sensitive"`
	RetweetCount      int     `json:"retweet_count"`
	FavoriteCount     int     `json:"favorite_count"`
	ReplyCount        int     `json:"reply_count"`
	Media             []Media `json:"media"`
	Author            Author  `json:"user"`
	RetweetedTweet    *Tweet  `json:"retweeted_tweet"`
}
