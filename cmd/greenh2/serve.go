package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/greenh2/site-optimizer/internal/adapter/httpapi"
	"github.com/greenh2/site-optimizer/internal/observability"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the optimization HTTP API",
		Long: `Start the HTTP server with the optimization, status, health, and
metrics endpoints.

A reachable database serves real site data; otherwise requests are answered
with simulated results until the database recovers. The schema is created on
startup when the database is reachable, but sample data is only loaded by an
explicit "greenh2 seed".`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe()
		},
	}
}

func runServe() error {
	a, err := newApp(os.Stdout)
	if err != nil {
		return err
	}
	defer a.close()

	metrics := observability.NewMetrics()

	eng, err := a.newEngine(metrics)
	if err != nil {
		return err
	}

	// Create the schema while the database is reachable. A down database is
	// not fatal: the simulator serves until it recovers.
	pingCtx, cancel := context.WithTimeout(context.Background(), a.cfg.DBPingTimeout)
	err = a.store.Ping(pingCtx)
	cancel()
	if err != nil {
		a.logger.Warn("database unreachable at startup, serving simulated results until it recovers", "error", err)
	} else if err := a.store.EnsureSchema(context.Background()); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}

	srv := httpapi.NewServer(a.cfg.HTTPAddr, eng, a.logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("http server error", "error", err)
		}
	}()

	<-ctx.Done()
	a.logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		a.logger.Error("http server shutdown error", "error", err)
	}

	a.logger.Info("shutdown complete")
	return nil
}
