// ABOUTME: CLI command for running the HTTP API server.
// ABOUTME: Seeds the catalog, starts the journey sweep and shuts down gracefully on signals.
package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/gin-gonic/gin"
	"github.com/harperreed/recomp/internal/api"
	"github.com/harperreed/recomp/internal/auth"
	"github.com/harperreed/recomp/internal/catalog"
	"github.com/harperreed/recomp/internal/config"
	"github.com/harperreed/recomp/internal/jobs"
	"github.com/harperreed/recomp/internal/logging"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

var (
	serveAddr     string
	serveNoSeed   bool
	serveInterval time.Duration
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API server",
	Long: `Run the RECOMP HTTP API.

Every route under /api/me requires an HS256 bearer token whose subject is the
user id. Issue tokens with 'recomp token'. GET /healthz is unauthenticated.

On start the built-in catalog is upserted (disable with --no-seed) and a
background job marks journeys past day 90 as completed.

EXAMPLES:

  recomp serve                      # Listen on the configured address (default :8080)
  recomp serve --addr 127.0.0.1:9000`,
	RunE: func(cmd *cobra.Command, args []string) error {
		signer, err := auth.NewSigner(cfg.JWTSecret)
		if err != nil {
			return fmt.Errorf("%w: set jwt_secret in %s or RECOMP_JWT_SECRET", err, config.GetConfigPath())
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if !serveNoSeed {
			c, err := catalog.Builtin()
			if err != nil {
				return err
			}
			if _, err := c.Seed(ctx, db); err != nil {
				return err
			}
		}

		sched, err := jobs.Start(svc, serveInterval)
		if err != nil {
			return err
		}
		defer func() { _ = sched.Stop() }()

		if !cfg.Debug {
			gin.SetMode(gin.ReleaseMode)
		}
		addr := cfg.GetListenAddr()
		if serveAddr != "" {
			addr = serveAddr
		}
		srv := &http.Server{
			Addr:              addr,
			Handler:           api.NewServer(svc, signer).Router(),
			ReadHeaderTimeout: 10 * time.Second,
		}

		errCh := make(chan error, 1)
		go func() { errCh <- srv.ListenAndServe() }()
		logging.Info("api listening", "addr", addr, "backend", cfg.GetBackend())
		color.Green("✓ Listening on %s", addr)

		select {
		case err := <-errCh:
			if !errors.Is(err, http.ErrServerClosed) {
				return fmt.Errorf("server failed: %w", err)
			}
			return nil
		case <-ctx.Done():
		}

		logging.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown: %w", err)
		}
		return nil
	},
}

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "listen address (overrides listen_addr)")
	serveCmd.Flags().BoolVar(&serveNoSeed, "no-seed", false, "skip upserting the built-in catalog")
	serveCmd.Flags().DurationVar(&serveInterval, "sweep-interval", jobs.DefaultInterval, "how often finished journeys are completed")
	rootCmd.AddCommand(serveCmd)
}
