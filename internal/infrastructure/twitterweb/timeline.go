package twitterweb

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/sekai-soft/yurikamome/internal/domain/twitter"
	apperrors "github.com/sekai-soft/yurikamome/pkg/errors"
)

// CurrentUser fetches the logged-in account.
func (c *Client) CurrentUser(ctx context.Context) (*twitter.User, error) {
	var resp struct {
		IDStr                string `json:"id_str"`
		CreatedAt            string `json:"created_at"`
		ScreenName           string `json:"screen_name"`
		Name                 string `json:"name"`
		ProfileImageURLHTTPS string `json:"profile_image_url_https"`
		ProfileBannerURL     string `json:"profile_banner_url"`
	}
	if err := c.do(ctx, http.MethodGet, verifyURL, nil, &resp); err != nil {
		return nil, err
	}
	return &twitter.User{
		ID:               resp.IDStr,
		CreatedAt:        resp.CreatedAt,
		ScreenName:       resp.ScreenName,
		Name:             resp.Name,
		ProfileImageURL:  resp.ProfileImageURLHTTPS,
		ProfileBannerURL: resp.ProfileBannerURL,
	}, nil
}

// Feature switches the GraphQL endpoint refuses to answer without.
var timelineFeatures = map[string]bool{
	"rweb_tipjar_consumption_enabled":                                         true,
	"responsive_web_graphql_exclude_directive_enabled":                        true,
	"verified_phone_label_enabled":                                            false,
	"creator_subscriptions_tweet_preview_api_enabled":                         true,
	"responsive_web_graphql_timeline_navigation_enabled":                      true,
	"responsive_web_graphql_skip_user_profile_image_extensions_enabled":       false,
	"communities_web_enable_tweet_community_results_fetch":                    true,
	"c9s_tweet_anatomy_moderator_badge_enabled":                               true,
	"tweetypie_unmention_optimization_enabled":                                true,
	"responsive_web_edit_tweet_api_enabled":                                   true,
	"graphql_is_translatable_rweb_tweet_is_translatable_enabled":              true,
	"view_counts_everywhere_api_enabled":                                      true,
	"longform_notetweets_consumption_enabled":                                 true,
	"responsive_web_twitter_article_tweet_consumption_enabled":                true,
	"tweet_awards_web_tipping_enabled":                                        false,
	"creator_subscriptions_quote_tweet_preview_enabled":                       false,
	"freedom_of_speech_not_reach_fetch_enabled":                               true,
	"standardized_nudges_misinfo":                                             true,
	"tweet_with_visibility_results_prefer_gql_limited_actions_policy_enabled": true,
	"rweb_video_timestamps_enabled":                                           true,
	"longform_notetweets_rich_text_read_enabled":                              true,
	"longform_notetweets_inline_media_enabled":                                true,
	"responsive_web_enhance_cards_enabled":                                    false,
}

type gqlUserResult struct {
	Result json.RawMessage `json:"result"`
}

type gqlTweetLegacy struct {
	FullText          string `json:"full_text"`
	CreatedAt         string `json:"created_at"`
	Lang              string `json:"lang"`
	PossiblySensitive bool   `json:"possibly_sensitive"`
	RetweetCount      int    `json:"retweet_count"`
	FavoriteCount     int    `json:"favorite_count"`
	ReplyCount        int    `json:"reply_count"`
	ExtendedEntities  struct {
		Media []twitter.Media `json:"media"`
	} `json:"extended_entities"`
	RetweetedStatusResult struct {
		Result *gqlTweetResult `json:"result"`
	} `json:"retweeted_status_result"`
}

type gqlTweetResult struct {
	Typename string `json:"__typename"`
	RestID   string `json:"rest_id"`
	Core     struct {
		UserResults gqlUserResult `json:"user_results"`
	} `json:"core"`
	Legacy gqlTweetLegacy  `json:"legacy"`
	Tweet  *gqlTweetResult `json:"tweet"`
}

type gqlTimelineResponse struct {
	Data struct {
		Home struct {
			HomeTimelineURT struct {
				Instructions []struct {
					Type    string `json:"type"`
					Entries []struct {
						EntryID string `json:"entryId"`
						Content struct {
							EntryType   string `json:"entryType"`
							ItemContent struct {
								ItemType     string `json:"itemType"`
								TweetResults struct {
									Result *gqlTweetResult `json:"result"`
								} `json:"tweet_results"`
							} `json:"itemContent"`
						} `json:"content"`
					} `json:"entries"`
				} `json:"instructions"`
			} `json:"home_timeline_urt"`
		} `json:"home"`
	} `json:"data"`
}

// LatestTimeline fetches the reverse-chronological home timeline and
// flattens the GraphQL envelope into plain tweets.
func (c *Client) LatestTimeline(ctx context.Context) ([]*twitter.Tweet, error) {
	variables, err := json.Marshal(map[string]any{
		"count":                  defaultTimelineCount,
		"includePromotedContent": false,
		"latestControlAvailable": true,
		"requestContext":         "launch",
	})
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to encode timeline variables")
	}
	features, err := json.Marshal(timelineFeatures)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to encode timeline features")
	}

	query := url.Values{}
	query.Set("variables", string(variables))
	query.Set("features", string(features))

	var resp gqlTimelineResponse
	if err := c.do(ctx, http.MethodGet, latestTimelineURL+"?"+query.Encode(), nil, &resp); err != nil {
		return nil, err
	}
	return flattenTimeline(&resp)
}

// flattenTimeline walks the instruction list and collects the tweets
// carried by TimelineAddEntries entries.
func flattenTimeline(resp *gqlTimelineResponse) ([]*twitter.Tweet, error) {
	var tweets []*twitter.Tweet
	for _, instruction := range resp.Data.Home.HomeTimelineURT.Instructions {
		if instruction.Type != "TimelineAddEntries" {
			continue
		}
		for _, entry := range instruction.Entries {
			item := entry.Content.ItemContent
			if item.ItemType != "TimelineTweet" || item.TweetResults.Result == nil {
				continue
			}
			tweet, err := toDomainTweet(item.TweetResults.Result)
			if err != nil {
				return nil, err
			}
			if tweet != nil {
				tweets = append(tweets, tweet)
			}
		}
	}
	return tweets, nil
}

// toDomainTweet unwraps one GraphQL tweet result. Visibility wrappers
// nest the real tweet one level down; tombstones yield nil.
func toDomainTweet(result *gqlTweetResult) (*twitter.Tweet, error) {
	if result == nil {
		return nil, nil
	}
	if result.Typename == "TweetWithVisibilityResults" {
		return toDomainTweet(result.Tweet)
	}
	if result.Typename != "" && result.Typename != "Tweet" {
		return nil, nil
	}
	if result.RestID == "" {
		return nil, nil
	}

	var author twitter.Author
	if len(result.Core.UserResults.Result) > 0 {
		if err := json.Unmarshal(result.Core.UserResults.Result, &author); err != nil {
			return nil, apperrors.Wrap(err, "failed to decode tweet author")
		}
	}

	tweet := &twitter.Tweet{
		ID:                result.RestID,
		FullText:          result.Legacy.FullText,
		CreatedAt:         result.Legacy.CreatedAt,
		Lang:              result.Legacy.Lang,
		PossiblySensitive: result.Legacy.PossiblySensitive,
		RetweetCount:      result.Legacy.RetweetCount,
		FavoriteCount:     result.Legacy.FavoriteCount,
		ReplyCount:        result.Legacy.ReplyCount,
		Media:             result.Legacy.ExtendedEntities.Media,
		Author:            author,
	}

	if retweeted := result.Legacy.RetweetedStatusResult.Result; retweeted != nil {
		inner, err := toDomainTweet(retweeted)
		if err != nil {
			return nil, err
		}
		tweet.RetweetedTweet = inner
	}

	return tweet, nil
}
