package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"expense-api/internal/apperr"
	"expense-api/internal/auth"
	"expense-api/internal/config"
	"expense-api/internal/handlers"
	"expense-api/internal/logging"
	"expense-api/internal/metrics"
	"expense-api/internal/storage"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"
)

func main() {
	if err := run(context.Background(), os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, stdout io.Writer) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger, err := logging.New(stdout, cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		return err
	}

	db, err := storage.NewDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	if cfg.AdminUser != "" {
		if err := bootstrapAdmin(db, cfg.AdminUser, cfg.AdminPassword, logger); err != nil {
			return err
		}
	}

	issuer, err := auth.NewIssuer([]byte(cfg.JWTSecret))
	if err != nil {
		return err
	}

	m := metrics.New()
	h := handlers.NewHandlers(db, issuer, m)

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           setupRouter(h, m, logger, cfg.Origins()),
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      10 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info().Str("addr", srv.Addr).Str("db", cfg.DBPath).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info().Msg("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		return err
	}
	logger.Info().Msg("server stopped")
	return nil
}

func setupRouter(h *handlers.Handlers, m *metrics.Metrics, logger zerolog.Logger, origins []string) http.Handler {
	r := handlers.NewRouter(h)
	r.Handle("/metrics", m.Handler()).Methods(http.MethodGet)
	r.Use(m.Instrument)

	return logging.Middleware(logger)(handlers.CORS(origins)(r))
}

// bootstrapAdmin registers the configured credential unless it already exists.
func bootstrapAdmin(db *storage.DB, username, password string, logger zerolog.Logger) error {
	_, err := auth.NewCredentialStore(db).Register(username, password)
	switch {
	case errors.Is(err, apperr.ErrDuplicateUsername):
		logger.Debug().Str("username", username).Msg("admin user already exists")
		return nil
	case err != nil:
		return fmt.Errorf("failed to create admin user: %w", err)
	}
	logger.Info().Str("username", username).Msg("admin user created")
	return nil
}
