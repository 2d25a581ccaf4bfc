package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/sekai-soft/yurikamome/internal/application/dto"
)

// InstanceHandler serves the static server descriptor.
type InstanceHandler struct {
	instance *dto.Instance
}

// NewInstanceHandler creates a new instance handler.
func NewInstanceHandler(hostURL, email string) *InstanceHandler {
	return &InstanceHandler{instance: dto.NewInstance(hostURL, email)}
}

// Instance returns the server metadata.
// GET /api/v1/instance
func (h *InstanceHandler) Instance(c *gin.Context) {
	c.JSON(http.StatusOK, h.instance)
}
