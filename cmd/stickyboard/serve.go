package main

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	"github.com/aretw0/stickyboard/internal/config"
	"github.com/aretw0/stickyboard/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the dashboard over HTTP",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		if cfg.Env != config.EnvLocal {
			gin.SetMode(gin.ReleaseMode)
		}
		logger := slog.Default()

		app := openApp()
		defer app.Close()

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if err := app.Start(ctx); err != nil {
			fatal("Error starting storage watcher", err)
		}

		server := web.NewServer(ctx, net.JoinHostPort(cfg.HTTP.Host, cfg.HTTP.Port), app, cfg.Weather.City)

		errs := make(chan error, 1)
		go func() {
			logger.Info("setting up http server", "host", cfg.HTTP.Host, "port", cfg.HTTP.Port)
			if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errs <- err
			}
			close(errs)
		}()

		select {
		case err := <-errs:
			if err != nil {
				fatal("Error serving http", err)
			}
			return
		case <-ctx.Done():
		}

		logger.Info("shutting down http server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("failed to shutdown http server", "error", err)
			return
		}
		logger.Info("shut down http server")
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
