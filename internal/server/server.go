// Package server exposes the extraction engine over a local HTTP API.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/RiverChu0/TikTokDownloader/internal/cleaner"
	"github.com/RiverChu0/TikTokDownloader/internal/config"
	"github.com/RiverChu0/TikTokDownloader/internal/extract"
	"github.com/RiverChu0/TikTokDownloader/internal/home"
)

// Config holds server configuration.
type Config struct {
	// Host is the address to bind to (default: 127.0.0.1)
	Host string
	// Port is the port to listen on (default: 5555)
	Port string
	// ConfigManager provides configuration with hot-reload support
	ConfigManager *config.Manager
	// HomeDir locates export files
	HomeDir *home.Dir
	// Logger is the structured logger to use
	Logger *slog.Logger
}

// Server is the tiktokdl HTTP server.
type Server struct {
	httpServer *http.Server
	extractor  *extract.Extractor
	configMgr  *config.Manager
	homeDir    *home.Dir
	logger     *slog.Logger
}

// New creates a Server from config, applying defaults.
func New(cfg Config) (*Server, error) {
	if cfg.ConfigManager == nil {
		return nil, fmt.Errorf("config manager is required")
	}
	if cfg.HomeDir == nil {
		return nil, fmt.Errorf("home directory is required")
	}
	if cfg.Host == "" {
		cfg.Host = "127.0.0.1"
	}
	if cfg.Port == "" {
		cfg.Port = "5555"
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}

	appCfg := cfg.ConfigManager.Get()
	s := &Server{
		extractor: extract.New(
			cfg.Logger,
			appCfg.DateLayout,
			cleaner.New(appCfg.Cleaner.MaxNameWidth),
		),
		configMgr: cfg.ConfigManager,
		homeDir:   cfg.HomeDir,
		logger:    cfg.Logger,
	}

	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())
	s.registerRoutes(engine)

	s.httpServer = &http.Server{
		Addr:              net.JoinHostPort(cfg.Host, cfg.Port),
		Handler:           engine,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return s, nil
}

// Start runs the server until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) Start(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server listening", "addr", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	s.logger.Info("shutting down server")
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}
