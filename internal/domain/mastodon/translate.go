package mastodon

import (
	"fmt"
	"time"

	"github.com/sekai-soft/yurikamome/internal/domain/twitter"
)

// placeholderTime fills target timestamp fields that have no upstream
// source.
const placeholderTime = "2023-02-01T00:00:00.000Z"

// TweetToStatus translates an upstream tweet graph into a Status,
// recursing into the retweeted tweet (if any) for the reblog field.
// Missing optional upstream fields map to zero values; an author absent
// in both upstream shapes is an error, since no status can exist
// without an identity.
func TweetToStatus(t *twitter.Tweet, hostURL string) (*Status, error) {
	if t == nil {
		return nil, fmt.Errorf("nil tweet")
	}
	return tweetToStatus(t, hostURL, map[string]bool{})
}

func tweetToStatus(t *twitter.Tweet, hostURL string, seen map[string]bool) (*Status, error) {
	identity, err := resolveAuthor(t.Author)
	if err != nil {
		return nil, fmt.Errorf("tweet %s: %w", t.ID, err)
	}

	createdAt, err := canonicalTimestamp(t.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("tweet %s: %w", t.ID, err)
	}

	account, err := identity.account(hostURL)
	if err != nil {
		return nil, fmt.Errorf("tweet %s: %w", t.ID, err)
	}

	attachments := make([]MediaAttachment, 0, len(t.Media))
	for _, m := range t.Media {
		if att := mediaToAttachment(m); att != nil {
			attachments = append(attachments, *att)
		}
	}

	var reblog *Status
	seen[t.ID] = true
	if rt := t.RetweetedTweet; rt != nil && !seen[rt.ID] {
		reblog, err = tweetToStatus(rt, hostURL, seen)
		if err != nil {
			return nil, err
		}
	}

	return &Status{
		ID:               t.ID,
		URI:              fmt.Sprintf("%s/users/%s/statuses/%s", hostURL, identity.screenName, t.ID),
		CreatedAt:        createdAt,
		Account:          *account,
		Content:          t.FullText,
		Visibility:       "public",
		Sensitive:        t.PossiblySensitive,
		SpoilerText:      "",
		MediaAttachments: attachments,
		Mentions:         []Mention{},
		Tags:             []Tag{},
		Emojis:           []CustomEmoji{},
		ReblogsCount:     t.RetweetCount,
		FavouritesCount:  t.FavoriteCount,
		RepliesCount:     t.ReplyCount,
		URL:              fmt.Sprintf("%s/@%s/statuses/%s", hostURL, identity.screenName, t.ID),
		Reblog:           reblog,
		Language:         t.Lang,
		Text:             t.FullText,
	}, nil
}

// UserToAccount translates a full upstream user object into an Account.
func UserToAccount(u *twitter.User, hostURL string) (*Account, error) {
	if u == nil {
		return nil, fmt.Errorf("nil user")
	}
	identity := authorIdentity{
		userID:      u.ID,
		createdAt:   u.CreatedAt,
		screenName:  u.ScreenName,
		displayName: u.Name,
		avatar:      u.ProfileImageURL,
		header:      u.ProfileBannerURL,
	}
	return identity.account(hostURL)
}

// authorIdentity is the flattened identity extracted from either
// upstream author shape.
type authorIdentity struct {
	userID      string
	createdAt   string
	screenName  string
	displayName string
	avatar      string
	header      string
}

// resolveAuthor flattens the author union, preferring full-object
// fields and falling back to the legacy dictionary shape.
func resolveAuthor(a twitter.Author) (*authorIdentity, error) {
	switch {
	case a.User != nil:
		return &authorIdentity{
			userID:      a.User.ID,
			createdAt:   a.User.CreatedAt,
			screenName:  a.User.ScreenName,
			displayName: a.User.Name,
			avatar:      a.User.ProfileImageURL,
			header:      a.User.ProfileBannerURL,
		}, nil
	case a.Legacy != nil:
		userID := a.Legacy.RestID
		if userID == "" {
			userID = "0"
		}
		return &authorIdentity{
			userID:      userID,
			createdAt:   a.Legacy.Legacy.CreatedAt,
			screenName:  a.Legacy.Legacy.ScreenName,
			displayName: a.Legacy.Legacy.Name,
			avatar:      a.Legacy.Legacy.ProfileImageURLHTTPS,
			header:      a.Legacy.Legacy.ProfileBannerURL,
		}, nil
	default:
		return nil, fmt.Errorf("no author identity in either shape")
	}
}

func (id *authorIdentity) account(hostURL string) (*Account, error) {
	createdAt, err := canonicalTimestamp(id.createdAt)
	if err != nil {
		return nil, fmt.Errorf("author %s: %w", id.userID, err)
	}
	return &Account{
		ID:           id.userID,
		Username:     id.screenName,
		Acct:         id.screenName,
		URL:          fmt.Sprintf("%s/@%s", hostURL, id.screenName),
		DisplayName:  id.displayName,
		Avatar:       id.avatar,
		AvatarStatic: id.avatar,
		Header:       id.header,
		HeaderStatic: id.header,
		Fields:       []Field{},
		Emojis:       []CustomEmoji{},
		CreatedAt:    createdAt,
		LastStatusAt: placeholderTime,
	}, nil
}

// mediaToAttachment translates one media entry. Only photos survive;
// video and gif media are dropped. The original_info dimensions arrive
// transposed, so they are read crosswise.
func mediaToAttachment(m twitter.Media) *MediaAttachment {
	if m.Type != "photo" {
		return nil
	}

	width := m.OriginalInfo.Height
	height := m.OriginalInfo.Width

	var aspect float64
	if height != 0 {
		aspect = float64(width) / float64(height)
	}

	return &MediaAttachment{
		ID:         m.IDStr,
		Type:       "image",
		URL:        m.MediaURLHTTPS,
		PreviewURL: m.MediaURLHTTPS,
		RemoteURL:  m.MediaURLHTTPS,
		Meta: MediaMeta{
			Original: MediaOriginal{
				Width:  width,
				Height: height,
				Size:   fmt.Sprintf("%dx%d", width, height),
				Aspect: aspect,
			},
		},
		Blurhash: "0",
	}
}

// canonicalTimestamp converts the upstream fixed-format timestamp
// ("Sat Mar 16 23:00:07 +0000 2024") to ISO-8601 UTC with a literal
// .000Z suffix. An empty input maps to an empty output; the upstream
// shape omits timestamps it does not know.
func canonicalTimestamp(ts string) (string, error) {
	if ts == "" {
		return "", nil
	}
	parsed, err := time.Parse(time.RubyDate, ts)
	if err != nil {
		return "", fmt.Errorf("malformed timestamp %q: %w", ts, err)
	}
	return parsed.UTC().Format("2006-01-02T15:04:05") + ".000Z", nil
}
