package cmd

import (
	"context"
	"errors"
	"net/http"
	"time"

	"audiodesk/app"
	"audiodesk/handlers"
	"audiodesk/logger"
	"audiodesk/middleware"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const shutdownTimeout = 5 * time.Second

// NewRouter builds the HTTP router for a
func NewRouter(a *app.App) *gin.Engine {
	gin.SetMode(a.Config.GinMode)

	commandHandler := handlers.NewCommandHandler(a)
	healthHandler := handlers.NewHealthHandler(a)
	mediaHandler := handlers.NewMediaHandler(a.Library)
	settingsHandler := handlers.NewSettingsHandler(a.Settings)
	playerHandler := handlers.NewPlayerHandler(a.Player, a.Hub, a.Config.CORSOrigins)

	r := gin.New()

	// Apply middleware
	r.Use(middleware.Recovery())
	r.Use(middleware.CORS(a.Config.CORSOrigins))
	r.Use(middleware.Logging())

	setupRoutes(r, commandHandler, healthHandler, mediaHandler, settingsHandler, playerHandler)
	return r
}

// setupRoutes configures all the HTTP routes
func setupRoutes(r *gin.Engine, commandHandler *handlers.CommandHandler, healthHandler *handlers.HealthHandler, mediaHandler *handlers.MediaHandler, settingsHandler *handlers.SettingsHandler, playerHandler *handlers.PlayerHandler) {
	// Health check endpoint
	r.GET("/health", healthHandler.HealthCheck)

	apiGroup := r.Group("/api")
	{
		apiGroup.GET("/status", healthHandler.APIStatus)

		// Command bridge
		apiGroup.GET("/commands", commandHandler.ListCommands)
		apiGroup.POST("/invoke/:command", commandHandler.Invoke)

		// Player state push
		apiGroup.GET("/ws/player", playerHandler.HandleWebSocket)

		// Library streaming
		apiGroup.GET("/media/stream/*filepath", mediaHandler.StreamFile)

		// Settings endpoints
		apiGroup.GET("/settings", settingsHandler.GetSettings)
		apiGroup.POST("/settings", settingsHandler.UpdateSettings)
	}
}

// RunServer serves a until ctx is cancelled, then shuts down gracefully
func RunServer(ctx context.Context, a *app.App) error {
	a.Start(ctx)

	srv := &http.Server{
		Addr:              a.Config.Addr(),
		Handler:           NewRouter(a),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("audiodesk backend starting", zap.String("addr", srv.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	logger.Info("audiodesk backend shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
