package handlers

import (
	"net/http"
	"time"

	"audiodesk/app"

	"github.com/gin-gonic/gin"
)

// HealthHandler handles health check endpoints
type HealthHandler struct {
	app *app.App
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(a *app.App) *HealthHandler {
	return &HealthHandler{app: a}
}

// HealthCheck returns the health status of the service
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   app.Name,
		"version":   app.Version,
		"timestamp": time.Now().Unix(),
	})
}

// APIStatus returns the status of the API
func (h *HealthHandler) APIStatus(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"message":     "audiodesk backend is running",
		"commands":    h.app.Bridge.Commands(),
		"library":     h.app.Library.Root(),
		"subscribers": h.app.Hub.ClientCount(),
	})
}
