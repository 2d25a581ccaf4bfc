package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sekai-soft/yurikamome/internal/application/dto"
	"github.com/sekai-soft/yurikamome/internal/application/services"
	"github.com/sekai-soft/yurikamome/pkg/errors"
)

// AppsHandler handles Mastodon app registration.
type AppsHandler struct {
	apps *services.AppService
}

// NewAppsHandler creates a new apps handler.
func NewAppsHandler(apps *services.AppService) *AppsHandler {
	return &AppsHandler{apps: apps}
}

// Create registers a client application.
// POST /api/v1/apps
func (h *AppsHandler) Create(c *gin.Context) {
	var req dto.CreateAppRequest
	if err := c.ShouldBind(&req); err != nil {
		handleAPIError(c, errors.NewFlowError(errors.CodeInvalidRequest, "client_name is required"))
		return
	}

	resp, err := h.apps.Register(c.Request.Context(), &req)
	if err != nil {
		handleAPIError(c, err)
		return
	}

	c.JSON(http.StatusOK, resp)
}
