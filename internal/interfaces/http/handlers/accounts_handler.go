package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sekai-soft/yurikamome/internal/domain/mastodon"
	"github.com/sekai-soft/yurikamome/internal/interfaces/http/middleware"
)

// AccountsHandler serves account endpoints over the resolved upstream client.
type AccountsHandler struct {
	hostURL string
}

// NewAccountsHandler creates a new accounts handler.
func NewAccountsHandler(hostURL string) *AccountsHandler {
	return &AccountsHandler{hostURL: hostURL}
}

// VerifyCredentials returns the account bound to the bearer token.
// GET /api/v1/accounts/verify_credentials
func (h *AccountsHandler) VerifyCredentials(c *gin.Context) {
	client := middleware.GetTwitterClient(c)

	user, err := client.CurrentUser(c.Request.Context())
	if err != nil {
		handleAPIError(c, err)
		return
	}

	account, err := mastodon.UserToAccount(user, h.hostURL)
	if err != nil {
		handleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, account)
}
