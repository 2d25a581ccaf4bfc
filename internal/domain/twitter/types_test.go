package twitter

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAuthorUnmarshalFullShape(t *testing.T) {
	raw := `{
		"id": "12345",
		"created_at": "Wed Feb 01 10:30:00 +0000 2017",
		"screen_name": "somebody",
		"name": "Some Body",
		"profile_image_url": "https://pbs.twimg.com/profile_images/x.jpg"
	}`

	var a Author
	require.NoError(t, json.Unmarshal([]byte(raw), &a))

	require.NotNil(t, a.User)
	assert.Nil(t, a.Legacy)
	assert.Equal(t, "12345", a.User.ID)
	assert.Equal(t, "somebody", a.User.ScreenName)
	assert.False(t, a.IsZero())
}

func TestAuthorUnmarshalLegacyShape(t *testing.T) {
	raw := `{
		"rest_id": "67890",
		"legacy": {
			"created_at": "Wed Feb 01 10:30:00 +0000 2017",
			"screen_name": "legacyuser",
			"name": "Legacy User",
			"profile_image_url_https": "https://pbs.twimg.com/profile_images/y.jpg"
		}
	}`

	var a Author
	require.NoError(t, json.Unmarshal([]byte(raw), &a))

	require.NotNil(t, a.Legacy)
	assert.Nil(t, a.User)
	assert.Equal(t, "67890", a.Legacy.RestID)
	assert.Equal(t, "legacyuser", a.Legacy.Legacy.ScreenName)
}

func TestAuthorUnmarshalLegacyShapeWithoutRestID(t *testing.T) {
	raw := `{"legacy": {"screen_name": "partial"}}`

	var a Author
	require.NoError(t, json.Unmarshal([]byte(raw), &a))

	require.NotNil(t, a.Legacy)
	assert.Empty(t, a.Legacy.RestID)
	assert.Equal(t, "partial", a.Legacy.Legacy.ScreenName)
}

func TestAuthorUnmarshalNull(t *testing.T) {
	var a Author
	require.NoError(t, json.Unmarshal([]byte("null"), &a))
	assert.True(t, a.IsZero())
}

func TestAuthorMarshalRoundTrip(t *testing.T) {
	legacy := &LegacyAuthor{RestID: "1"}
	legacy.Legacy.ScreenName = "someone"

	out, err := json.Marshal(Author{Legacy: legacy})
	require.NoError(t, err)

	var back Author
	require.NoError(t, json.Unmarshal(out, &back))
	require.NotNil(t, back.Legacy)
	assert.Equal(t, "someone", back.Legacy.Legacy.ScreenName)

	out, err = json.Marshal(Author{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(out))
}

func TestTweetUnmarshalTimelinePayload(t *testing.T) {
	raw := `{
		"id": "1768888888888888888",
		"full_text": "hello",
		"created_at": "Sat Mar 16 23:00:07 +0000 2024",
		"lang": "en",
		"possibly_sensitive": true,
		"retweet_count": 5,
		"favorite_count": 9,
		"reply_count": 1,
		"media": [
			{"id_str": "987", "type": "photo", "media_url_https": "https://pbs.twimg.com/media/z.jpg",
			 "original_info": {"width": 1200, "height": 675}}
		],
		"user": {"rest_id": "67890", "legacy": {"screen_name": "legacyuser"}},
		"retweeted_tweet": null
	}`

	var tweet Tweet
	require.NoError(t, json.Unmarshal([]byte(raw), &tweet))

	assert.Equal(t, "1768888888888888888", tweet.ID)
	assert.True(t, tweet.PossiblySensitive)
	require.Len(t, tweet.Media, 1)
	assert.Equal(t, 1200, tweet.Media[0].OriginalInfo.Width)
	require.NotNil(t, tweet.Author.Legacy)
	assert.Nil(t, tweet.RetweetedTweet)
}
