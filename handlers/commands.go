package handlers

import (
	"errors"
	"io"
	"net/http"

	"audiodesk/app"
	"audiodesk/bridge"

	"github.com/gin-gonic/gin"
)

// maxArgsSize bounds the JSON body of a single invocation
const maxArgsSize = 1 << 20

// CommandHandler exposes the command bridge over HTTP
type CommandHandler struct {
	app *app.App
}

// NewCommandHandler creates a new command handler
func NewCommandHandler(a *app.App) *CommandHandler {
	return &CommandHandler{
		app: a,
	}
}

// Invoke runs the command named in the path with the JSON body as arguments.
// Success returns the command's result as the response body.
func (h *CommandHandler) Invoke(c *gin.Context) {
	name := c.Param("command")

	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxArgsSize+1))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "failed to read arguments",
			"details": err.Error(),
		})
		return
	}
	if len(raw) > maxArgsSize {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{
			"error": "arguments too large",
		})
		return
	}

	result, err := h.app.Invoke(c.Request.Context(), name, raw)
	if err != nil {
		c.JSON(statusFor(err), gin.H{
			"error":   err.Error(),
			"command": name,
		})
		return
	}

	c.JSON(http.StatusOK, result)
}

// ListCommands returns the registered command names
func (h *CommandHandler) ListCommands(c *gin.Context) {
	commands := h.app.Bridge.Commands()
	c.JSON(http.StatusOK, gin.H{
		"commands": commands,
		"count":    len(commands),
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, bridge.ErrUnknownCommand):
		return http.StatusNotFound
	case errors.Is(err, bridge.ErrBadArgs):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
