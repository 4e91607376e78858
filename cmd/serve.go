// =============================================================================
// Transfer Payload Converter - Serve Command
// =============================================================================
//
// This file defines the 'serve' command, which runs the web form and JSON API.
//
// COMMAND USAGE:
//   converter serve [--addr :8080]
//
// ROUTES:
//   GET  /              - Web form
//   GET  /healthz       - Liveness
//   GET  /api/catalog   - Error catalog
//   GET  /api/sample    - Sample input
//   POST /api/payload   - Build a payload
//
// The server shuts down gracefully on SIGINT or SIGTERM.
//
// =============================================================================

package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ginjaninja78/transfer-payload-converter/internal/config"
	"github.com/ginjaninja78/transfer-payload-converter/internal/httpapi"
	"github.com/ginjaninja78/transfer-payload-converter/internal/payload"
)

// serveAddr overrides server.addr.
var serveAddr string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the web form and JSON API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		c, err := loadCatalog(cfg)
		if err != nil {
			return err
		}
		if serveAddr != "" {
			cfg.Server.Addr = serveAddr
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		return runServe(ctx, cfg.Server, payload.NewBuilder(c))
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (overrides server.addr)")
}

// runServe serves until ctx is done, then shuts down within the configured
// timeout.
func runServe(ctx context.Context, sc config.ServerConfig, builder *payload.Builder) error {
	srv := &http.Server{
		Addr: sc.Addr,
		Handler: httpapi.NewHandler(httpapi.Options{
			Builder:      builder,
			MaxBodyBytes: sc.MaxBodyBytes,
			Logger:       logger,
		}),
		ReadTimeout:  sc.ReadTimeout,
		WriteTimeout: sc.WriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", sc.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("server failed: %w", err)
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), sc.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	<-errCh
	return nil
}
