package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"closet-backend/internal/models"
)

type HealthHandler struct {
	services map[string]bool
	now      func() time.Time
}

// NewHealthHandler reports services as configured at startup.
func NewHealthHandler(services map[string]bool) *HealthHandler {
	return &HealthHandler{services: services, now: time.Now}
}

// Health godoc
// @Summary     Health check
// @Description Returns the server time and which vendor credentials are configured
// @Tags        health
// @Produce     json
// @Success     200 {object} models.HealthResponse
// @Router      /api/health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, models.HealthResponse{
		Status:    "ok",
		Timestamp: h.now().UTC().Format(time.RFC3339Nano),
		Services:  h.services,
	})
}
