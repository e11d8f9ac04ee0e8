package handlers

import (
	"errors"
	"net/http"
	"os"
	"strings"

	"audiodesk/logger"
	"audiodesk/services"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// MediaHandler serves audio files from the media library
type MediaHandler struct {
	library services.LibraryService
}

// NewMediaHandler creates a new media handler
func NewMediaHandler(library services.LibraryService) *MediaHandler {
	return &MediaHandler{
		library: library,
	}
}

// StreamFile streams a library file with support for range requests
func (h *MediaHandler) StreamFile(c *gin.Context) {
	requestedPath := strings.TrimPrefix(c.Param("filepath"), "/")

	// Only audio files can be streamed
	if !services.IsAudioFile(requestedPath) {
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "file extension not allowed",
			"details": "only audio files can be streamed",
		})
		return
	}

	fullPath, err := h.library.ResolvePath(requestedPath)
	if err != nil {
		c.JSON(http.StatusForbidden, gin.H{
			"error":   "path security violation",
			"details": err.Error(),
		})
		return
	}

	file, err := os.Open(fullPath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			c.JSON(http.StatusNotFound, gin.H{
				"error": "file not found",
				"path":  requestedPath,
			})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "file access error",
			"details": err.Error(),
		})
		return
	}
	defer file.Close()

	fileInfo, err := file.Stat()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "file access error",
			"details": err.Error(),
		})
		return
	}

	// Ensure it's a file, not a directory
	if fileInfo.IsDir() {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "path is a directory, not a file",
		})
		return
	}

	logger.Debug("streaming media", zap.String("path", requestedPath), zap.String("range", c.GetHeader("Range")))

	c.Header("Content-Type", h.library.GetContentType(requestedPath))
	c.Header("Cache-Control", "public, max-age=3600")
	// ServeContent handles Range, If-Range and conditional requests
	http.ServeContent(c.Writer, c.Request, fileInfo.Name(), fileInfo.ModTime(), file)
}
