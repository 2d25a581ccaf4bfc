package mastodon

// Account is the Mastodon account projection of a Twitter user.
// Fields with no upstream source hold fixed placeholders or empty
// collections; they are always emitted, never omitted.
type Account struct {
	ID             string        `json:"id"`
	Username       string        `json:"username"`
	Acct           string        `json:"acct"`
	URL            string        `json:"url"`
	DisplayName    string        `json:"display_name"`
	Note           string        `json:"note"`
	Avatar         string        `json:"avatar"`
	AvatarStatic   string        `json:"avatar_static"`
	Header         string        `json:"header"`
	HeaderStatic   string        `json:"header_static"`
	Locked         bool          `json:"locked"`
	Fields         []Field       `json:"fields"`
	Emojis         []CustomEmoji `json:"emojis"`
	Bot            bool          `json:"bot"`
	Group          bool          `json:"group"`
	Discoverable   bool          `json:"discoverable"`
	CreatedAt      string        `json:"created_at"`
	LastStatusAt   string        `json:"last_status_at"`
	StatusesCount  int           `json:"statuses_count"`
	FollowersCount int           `json:"followers_count"`
	FollowingCount int           `json:"following_count"`
}

// Field is a profile metadata field. Never populated from Twitter.
type Field struct {
	Name       string  `json:"name"`
	Value      string  `json:"value"`
	VerifiedAt *string `json:"verified_at"`
}

// CustomEmoji is a custom emoji. Never populated from Twitter.
type CustomEmoji struct {
	Shortcode       string `json:"shortcode"`
	URL             string `json:"url"`
	StaticURL       string `json:"static_url"`
	VisibleInPicker bool   `json:"visible_in_picker"`
}

// Mention is an account mention. Never populated from Twitter.
type Mention struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	URL      string `json:"url"`
	Acct     string `json:"acct"`
}

// Tag is a hashtag reference. Never populated from Twitter.
type Tag struct {
	Name string `json:"name"`
	URL  string `json:"url"`
}

// MediaOriginal describes the full-size rendition of an attachment.
type MediaOriginal struct {
	Width  int     `json:"width"`
	Height int     `json:"height"`
	Size   string  `json:"size"`
	Aspect float64 `json:"aspect"`
}

// MediaMeta wraps attachment renditions.
type MediaMeta struct {
	Original MediaOriginal `json:"original"`
}

// MediaAttachment is the Mastodon projection of photo media.
type MediaAttachment struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	URL         string    `json:"url"`
	PreviewURL  string    `json:"preview_url"`
	RemoteURL   string    `json:"remote_url"`
	Meta        MediaMeta `json:"meta"`
	Description string    `json:"description"`
	Blurhash    string    `json:"blurhash"`
}

// Status is the Mastodon status projection of a tweet. Reblog is nil
// (marshalled as null) unless the tweet is a retweet, in which case it
// holds the fully translated inner status.
type Status struct {
	ID                 string            `json:"id"`
	URI                string            `json:"uri"`
	CreatedAt          string            `json:"created_at"`
	Account            Account           `json:"account"`
	Content            string            `json:"content"`
	Visibility         string            `json:"visibility"`
	Sensitive          bool              `json:"sensitive"`
	SpoilerText        string            `json:"spoiler_text"`
	MediaAttachments   []MediaAttachment `json:"media_attachments"`
	Mentions           []Mention         `json:"mentions"`
	Tags               []Tag             `json:"tags"`
	Emojis             []CustomEmoji     `json:"emojis"`
	ReblogsCount       int               `json:"reblogs_count"`
	FavouritesCount    int               `json:"favourites_count"`
	RepliesCount       int               `json:"replies_count"`
	URL                string            `json:"url"`
	InReplyToID        *string           `json:"in_reply_to_id"`
	InReplyToAccountID *string           `json:"in_reply_to_account_id"`
	Reblog             *Status           `json:"reblog"`
	Poll               *struct{}         `json:"poll"`
	Card               *struct{}         `json:"card"`
	Language           string            `json:"language"`
	Text               string            `json:"text"`
	EditedAt           *string           `json:"edited_at"`
}
