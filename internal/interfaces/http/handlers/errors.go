package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sekai-soft/yurikamome/pkg/errors"
	"github.com/sekai-soft/yurikamome/pkg/logger"
)

// handleAPIError converts domain errors to JSON responses. All broker
// validation failures are 422 with the single-field error body.
func handleAPIError(c *gin.Context, err error) {
	if fe, ok := errors.AsFlowError(err); ok {
		c.JSON(http.StatusUnprocessableEntity, fe)
		return
	}

	switch {
	case errors.Is(err, errors.ErrInvalidAccessToken):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "The access token is invalid"})
	case errors.Is(err, errors.ErrUpstream):
		logger.FromContext(c.Request.Context()).Error("upstream failure", logger.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "upstream twitter failure"})
	default:
		logger.FromContext(c.Request.Context()).Error("unhandled error", logger.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
	}
}
