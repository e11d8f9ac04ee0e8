package handlers

import (
	"net/http"

	"audiodesk/services"

	"github.com/gin-gonic/gin"
)

// SettingsHandler handles settings-related endpoints
type SettingsHandler struct {
	store services.SettingsStore
}

// NewSettingsHandler creates a new settings handler
func NewSettingsHandler(store services.SettingsStore) *SettingsHandler {
	return &SettingsHandler{store: store}
}

// GetSettings returns the current window settings
func (h *SettingsHandler) GetSettings(c *gin.Context) {
	settings, err := h.store.Load()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "failed to load settings",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, settings)
}

// UpdateSettings updates the window settings
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var newSettings services.WindowSettings
	if err := c.ShouldBindJSON(&newSettings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "invalid settings format",
			"details": err.Error(),
		})
		return
	}

	if err := h.store.Save(&newSettings); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "failed to save settings",
			"details": err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":  "settings updated successfully",
		"settings": newSettings,
	})
}
