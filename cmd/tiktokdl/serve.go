package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/RiverChu0/TikTokDownloader/internal/config"
	"github.com/RiverChu0/TikTokDownloader/internal/home"
	"github.com/RiverChu0/TikTokDownloader/internal/server"
)

var (
	serveHost string
	servePort string
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the extraction HTTP server",
	Long: `Start the local HTTP server exposing the extraction engine.

The server provides:
  - POST /api/extract - extract records from a batch of raw items
  - GET  /healthz     - health check

Examples:
  tiktokdl serve                    # Start on default port 5555
  tiktokdl serve --port 3000        # Start on custom port
  tiktokdl serve --host 0.0.0.0     # Bind to all interfaces`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
			Level: slog.LevelInfo,
		}))

		h, err := home.New(homeDir)
		if err != nil {
			return err
		}
		if err := h.EnsureExists(); err != nil {
			return err
		}

		mgr, err := config.NewManager(cfgFile)
		if err != nil {
			return err
		}
		mgr.WatchConfig()

		host := serveHost
		port := servePort
		if host == "" {
			host = mgr.Get().Server.Host
		}
		if port == "" {
			port = mgr.Get().Server.Port
		}

		srv, err := server.New(server.Config{
			Host:          host,
			Port:          port,
			ConfigManager: mgr,
			HomeDir:       h,
			Logger:        logger,
		})
		if err != nil {
			return err
		}

		return srv.Start(ctx)
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveHost, "host", "", "address to bind to (default from config)")
	serveCmd.Flags().StringVar(&servePort, "port", "", "port to listen on (default from config)")

	rootCmd.AddCommand(serveCmd)
}
