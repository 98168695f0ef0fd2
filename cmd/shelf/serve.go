package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/shelfhttp/shelf/config"
	"github.com/shelfhttp/shelf/static"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  `Start the shelf HTTP server and serve the configured root directory.`,
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().Int("port", 3000, "HTTP server port")
	serveCmd.Flags().String("index", "", "directory index filename (default: index.html)")
	serveCmd.Flags().Bool("precompressed", false, "serve .br/.zst/.gz sibling files when the client accepts them")

	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.FromContext(cmd.Context())
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(cmd.Context())
	defer cancel()

	handler := static.NewHandler(&static.Config{
		Root:          cfg.Static.Root,
		Path:          cfg.Static.Path,
		Index:         cfg.Static.Index,
		Precompressed: cfg.Static.Precompressed,
		CORS:          cfg.CORS,
	})

	addr := fmt.Sprintf(":%d", cfg.Server.Port)

	server := &http.Server{
		Addr:         addr,
		Handler:      handler.Router(),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
		IdleTimeout:  time.Duration(cfg.Server.IdleTimeout) * time.Second,
	}

	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh

		slog.Info("shutting down server...")
		shutdownCtx, shutdownCancel := context.WithTimeout(
			context.Background(),
			time.Duration(cfg.Server.ShutdownTimeout)*time.Second,
		)
		defer shutdownCancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			slog.Error("server shutdown error", "err", err)
		}
		cancel()
	}()

	slog.Info("starting server",
		"addr", addr,
		"root", cfg.Static.Root,
		"precompressed", cfg.Static.Precompressed,
	)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server error: %w", err)
	}

	<-ctx.Done()
	return nil
}
