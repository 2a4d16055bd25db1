package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"vet-procedures/internal/adapters/cache/redis"
	pg "vet-procedures/internal/adapters/storage/postgres"
	"vet-procedures/internal/config"
	"vet-procedures/internal/platform/logger"
	"vet-procedures/internal/platform/ratelimit"
	"vet-procedures/internal/router"

	"github.com/spf13/cobra"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Levanta la API HTTP",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			cfg, err := config.Load()
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if addr == "" {
				addr = ":" + cfg.Port
			}

			log := newLogger(cfg)
			app, cleanup, err := wireApp(ctx, cfg, log)
			if err != nil {
				return err
			}
			defer cleanup()

			app.Limiter.StartSweeper(ctx, cfg.RateLimitWindow)

			srv := &http.Server{
				Addr:              addr,
				Handler:           app.Handler,
				ReadHeaderTimeout: 5 * time.Second,
				ReadTimeout:       10 * time.Second,
				WriteTimeout:      60 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				log.Info("starting server", map[string]any{"addr": addr, "env": cfg.Env})
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				if err != nil {
					return fmt.Errorf("server error: %w", err)
				}
				return nil
			case <-ctx.Done():
			}

			log.Info("shutting down", nil)
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "dirección de escucha (default :$PORT)")
	return cmd
}

func newLogger(cfg *config.Config) logger.Logger {
	return logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.LogLevel),
		Format: logger.ParseFormat(cfg.LogFormat),
		App:    cfg.AppName,
	})
}

// wireApp arma el App con Postgres y redis si están configurados.
// cleanup cierra las conexiones abiertas.
func wireApp(ctx context.Context, cfg *config.Config, log logger.Logger) (*router.App, func(), error) {
	var closers []func() error
	cleanup := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			_ = closers[i]()
		}
	}

	opts := router.Options{
		CatalogTTL:        cfg.CatalogTTL,
		AllowedOrigins:    cfg.AllowedOrigins,
		PublicOrigin:      cfg.PublicOrigin,
		TrustProxyHeaders: cfg.TrustProxyHeaders,
		Logger:            log,

		Limiter: ratelimit.New(ratelimit.Config{
			Window:    cfg.RateLimitWindow,
			Max:       cfg.RateLimitMax,
			TableSize: cfg.RateLimitTableSize,
		}),
	}

	if cfg.HasDatabase() {
		db, err := pg.Open(cfg.DatabaseDSN())
		if err != nil {
			return nil, cleanup, fmt.Errorf("open database: %w", err)
		}
		closers = append(closers, db.Close)
		opts.DB = db
	}

	if cfg.RedisURL != "" {
		client, err := redis.NewClient(ctx, cfg.RedisURL)
		if err != nil {
			// sin redis cada réplica mantiene su propio snapshot
			log.Warn("redis unavailable, using per-process snapshot", map[string]any{"error": err.Error()})
		} else {
			closers = append(closers, client.Close)
			opts.SnapshotStore = redis.NewSnapshotStore(client, redis.DefaultKey)
		}
	}

	return router.NewApp(opts), cleanup, nil
}
