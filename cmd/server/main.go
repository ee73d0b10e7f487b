package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"github.com/thientu9562/identity-management/internal/platform/config"
	"github.com/thientu9562/identity-management/internal/platform/httpserver"
	"github.com/thientu9562/identity-management/internal/platform/logger"
)

const shutdownTimeout = 10 * time.Second

// main loads configuration, wires the application and runs the HTTP server
// next to the background workers until a signal arrives.
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.FromEnv()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	log := logger.New(cfg.LogLevel)
	if cfg.UsingDevSigningKey() {
		log.Warn("using the built-in JWT signing key; set JWT_SIGNING_KEY outside development")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	app, err := build(ctx, cfg, log, prometheus.DefaultRegisterer)
	if err != nil {
		return err
	}
	defer app.close()

	srv := httpserver.New(cfg.Addr, app.router)
	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		log.Info("starting identity-management", "addr", cfg.Addr, "ledger", cfg.LedgerBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	for name, worker := range app.workers {
		g.Go(func() error {
			log.Info("worker started", "worker", name)
			err := worker(ctx)
			if err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("%s: %w", name, err)
			}
			return nil
		})
	}
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		log.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Error("server stopped with error", "error", err)
		return err
	}
	return nil
}

func logClose(log *slog.Logger, name string, fn func() error) {
	if err := fn(); err != nil {
		log.Warn("close failed", "resource", name, "error", err)
	}
}
