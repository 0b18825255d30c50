package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/lehigh-university-libraries/bookmeta/internal/config"
	"github.com/lehigh-university-libraries/bookmeta/internal/extraction"
	"github.com/lehigh-university-libraries/bookmeta/internal/handlers"
)

func newServeCmd() *cobra.Command {
	var port string
	var uploadsDir string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the metadata extraction HTTP service",
		Long: `Starts the bookmeta HTTP service.

Endpoints:
  POST /api/extract        extract metadata from OCR text (JSON)
  POST /api/upload         upload a cover image; runs OCR then extraction
  GET  /api/sessions       list upload sessions
  GET  /api/sessions/{id}  session detail (DELETE removes it)
  GET  /healthcheck

Edits to the config file are applied without a restart.`,
		Example: `  # Start server on the configured port (default 8888)
  bookmeta serve

  # Start server on custom port
  bookmeta serve --port 3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cm, err := loadConfig()
			if err != nil {
				return err
			}
			cfg := cm.Get()
			if port == "" {
				port = cfg.Server.Port
			}

			handler := handlers.New(
				extraction.New(cfg.ToExtractionConfig()),
				newOCRService(cfg),
				handlers.WithUploadsDir(uploadsDir),
				handlers.WithDefaultLayout(cfg.Extraction.DefaultLayout),
			)

			cm.OnChange(func(c *config.Config) {
				handler.SetEngine(extraction.New(c.ToExtractionConfig()))
				slog.Info("Extraction settings reloaded", "height_ratio", c.Extraction.HeightRatio, "noise_tokens", len(c.Extraction.NoiseTokens))
			})
			if cm.ConfigFile() != "" {
				cm.WatchConfig()
			}

			addr := ":" + port
			server := &http.Server{
				Addr:              addr,
				Handler:           handler.Routes(),
				ReadHeaderTimeout: 10 * time.Second,
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Bookmeta service available", "addr", addr, "url", "http://localhost"+addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				// Give server 5 seconds to shut down gracefully
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "", "Port to listen on (overrides server.port)")
	cmd.Flags().StringVar(&uploadsDir, "uploads", "uploads", "Directory for uploaded images")

	return cmd
}
