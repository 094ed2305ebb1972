package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/existflow/catalyst/internal/logger"
	"github.com/existflow/catalyst/server"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API server",
	Long: `Start the tracker API. The store is created and migrated on start.

Examples:
  catalyst serve
  catalyst serve --addr :9000 --db data/catalyst.db
  catalyst serve --db postgres://localhost:5432/catalyst?sslmode=disable`,
	RunE: runServe,
}

var (
	serveAddr   string
	serveDB     string
	serveDriver string
)

func init() {
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default :8000)")
	serveCmd.Flags().StringVar(&serveDB, "db", "", "SQLite path or postgres:// URL")
	serveCmd.Flags().StringVar(&serveDriver, "driver", "", "Database driver (sqlite, postgres)")
}

func runServe(cmd *cobra.Command, args []string) error {
	if serveAddr != "" {
		cfg.Addr = serveAddr
	}
	if serveDB != "" {
		cfg.DatabaseURL = serveDB
	}
	if serveDriver != "" {
		cfg.DatabaseDriver = serveDriver
	}

	database, err := openStore()
	if err != nil {
		return err
	}
	defer func() {
		_ = database.Close()
		logger.Info("Database closed")
	}()

	generator, err := newGenerator()
	if err != nil {
		return err
	}

	srv := server.New(database, generator, cfg.CORSOrigins)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Catalyst server starting",
			logger.F("addr", cfg.Addr),
			logger.F("driver", string(database.Dialect)))
		errCh <- srv.Start(cfg.Addr)
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(quit)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server failed: %w", err)
		}
		return nil
	case sig := <-quit:
		logger.Info("Shutting down", logger.F("signal", sig.String()))
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("shutdown failed: %w", err)
	}
	return nil
}
