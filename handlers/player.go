package handlers

import (
	"time"

	"audiodesk/logger"
	"audiodesk/services"
	"audiodesk/types"
	"audiodesk/websocket"

	"github.com/gin-gonic/gin"
	gorilla "github.com/gorilla/websocket"
	"go.uber.org/zap"
)

// PlayerHandler pushes player state changes over WebSocket
type PlayerHandler struct {
	player   services.Player
	hub      websocket.Hub
	upgrader gorilla.Upgrader
}

// NewPlayerHandler creates a new player handler
func NewPlayerHandler(player services.Player, hub websocket.Hub, allowedOrigins []string) *PlayerHandler {
	return &PlayerHandler{
		player:   player,
		hub:      hub,
		upgrader: websocket.NewUpgrader(allowedOrigins),
	}
}

// HandleWebSocket subscribes a client to player events. The current state
// is sent first so the client doesn't have to ask for it.
func (h *PlayerHandler) HandleWebSocket(c *gin.Context) {
	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := websocket.NewClient(h.hub, conn)
	client.Send(types.PlayerEvent{
		Type:      "state",
		Action:    "snapshot",
		State:     h.player.State(),
		Timestamp: time.Now(),
	})
	h.hub.RegisterClient(client)

	// Start client pumps
	client.StartPumps()
}
