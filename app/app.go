// Package app wires the backend together: configuration, logging, the
// command bridge and the services behind it.
package app

import (
	"context"
	"fmt"

	"audiodesk/bridge"
	"audiodesk/config"
	"audiodesk/logger"
	"audiodesk/services"
	"audiodesk/websocket"

	"go.uber.org/zap"
)

// Name and Version identify the backend in health responses
const (
	Name    = "audiodesk"
	Version = "0.1.0"
)

// App holds the long-lived components of the backend
type App struct {
	Config   *config.Config
	Bridge   *bridge.Bridge
	Metadata services.MetadataService
	Library  services.LibraryService
	Player   services.Player
	Settings services.SettingsStore
	Hub      websocket.Hub
}

// New builds the application for cfg. The logger is attached only in debug
// mode; otherwise logging is a no-op.
func New(cfg *config.Config) (*App, error) {
	if err := logger.Init(logger.Config{
		Enabled:    cfg.Debug,
		Level:      cfg.LogLevel,
		OutputPath: cfg.LogFile,
	}); err != nil {
		return nil, fmt.Errorf("init logger: %w", err)
	}

	hub := websocket.NewHub()
	metadata := services.NewMetadataService()

	a := &App{
		Config:   cfg,
		Bridge:   bridge.New(),
		Metadata: metadata,
		Library:  services.NewLibraryService(cfg.LibraryPath, metadata),
		Player:   services.NewPlayer(services.WithNotifier(hub)),
		Settings: services.NewSettingsStore(cfg.SettingsPath),
		Hub:      hub,
	}
	a.registerCommands()

	logger.Info("application initialised",
		zap.Strings("commands", a.Bridge.Commands()),
		zap.String("library", cfg.LibraryPath),
	)
	return a, nil
}

// Start runs the background workers until ctx is done
func (a *App) Start(ctx context.Context) {
	go a.Hub.Run(ctx)
}

// Invoke runs a bridge command, logging failures
func (a *App) Invoke(ctx context.Context, name string, raw []byte) (any, error) {
	result, err := a.Bridge.Invoke(ctx, name, raw)
	if err != nil {
		logger.Warn("command failed", zap.String("command", name), zap.Error(err))
		return nil, err
	}
	logger.Debug("command succeeded", zap.String("command", name))
	return result, nil
}
