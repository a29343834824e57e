// @title vet-clinic API
// @version 1.0
// @description API de gestión de clínica veterinaria.
// @BasePath /api
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"vet-clinic/docs"
	pg "vet-clinic/internal/adapters/storage/postgres"
	"vet-clinic/internal/config"
	"vet-clinic/internal/platform/logger"
	"vet-clinic/internal/router"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	if err := run(); err != nil {
		logger.New(logger.Options{}).Error("fatal", map[string]any{"err": err})
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(logger.Options{
		Level:  logger.ParseLevel(cfg.Log.Level),
		Format: logger.ParseFormat(cfg.Log.Format),
		App:    cfg.Log.App,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var pool *pgxpool.Pool
	if cfg.Database.UsesPostgres() {
		pool, err = openDatabase(ctx, cfg.Database, log)
		if err != nil {
			return err
		}
		defer pool.Close()
	} else {
		log.Warn("using in-memory storage; data is lost on restart", nil)
	}

	docs.SwaggerInfo.BasePath = cfg.Server.BasePath

	srv := &http.Server{
		Addr: cfg.Server.Addr(),
		Handler: router.NewRouter(router.Options{
			Pool:     pool,
			Logger:   log,
			BasePath: cfg.Server.BasePath,
			CORS:     cfg.CORS,
		}),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		ErrorLog:     slogErrorLog(log),
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("starting server", map[string]any{"addr": srv.Addr, "base_path": cfg.Server.BasePath})
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info("shutting down", nil)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

func openDatabase(ctx context.Context, cfg config.DatabaseConfig, log logger.Logger) (*pgxpool.Pool, error) {
	connectCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	pool, err := pg.NewPool(connectCtx, cfg)
	if err != nil {
		return nil, err
	}
	log.Info("database connected", map[string]any{"host": cfg.Host, "db": cfg.Name})

	if cfg.Migrate {
		results, err := pg.Migrate(ctx, pool)
		if err != nil {
			pool.Close()
			return nil, err
		}
		log.Info("migrations applied", map[string]any{"count": len(results)})
	}
	return pool, nil
}

// slogErrorLog manda los errores internos de net/http al mismo logger.
func slogErrorLog(l logger.Logger) *log.Logger {
	return slog.NewLogLogger(logger.Slog(l).Handler(), slog.LevelError)
}
