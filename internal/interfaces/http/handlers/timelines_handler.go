package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sekai-soft/yurikamome/internal/domain/mastodon"
	"github.com/sekai-soft/yurikamome/internal/interfaces/http/middleware"
)

// TimelinesHandler serves timeline endpoints over the resolved upstream client.
type TimelinesHandler struct {
	hostURL string
}

// NewTimelinesHandler creates a new timelines handler.
func NewTimelinesHandler(hostURL string) *TimelinesHandler {
	return &TimelinesHandler{hostURL: hostURL}
}

// Home returns the reverse-chronological home timeline as statuses.
// GET /api/v1/timelines/home
func (h *TimelinesHandler) Home(c *gin.Context) {
	client := middleware.GetTwitterClient(c)

	tweets, err := client.LatestTimeline(c.Request.Context())
	if err != nil {
		handleAPIError(c, err)
		return
	}

	statuses := make([]*mastodon.Status, 0, len(tweets))
	for _, tweet := range tweets {
		status, err := mastodon.TweetToStatus(tweet, h.hostURL)
		if err != nil {
			handleAPIError(c, err)
			return
		}
		statuses = append(statuses, status)
	}

	c.JSON(http.StatusOK, statuses)
}
