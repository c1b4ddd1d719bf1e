// Command moreply serves the auto-reply template store over HTTP.
//
// @title          MoReply API
// @version        1.0
// @description    Auto-reply template store: create, filter, edit, export and compose review replies.
// @BasePath       /api/v1
package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel/attribute"
	"gorm.io/gorm"

	"github.com/tbourn/moreply-backend/internal/config"
	httpapi "github.com/tbourn/moreply-backend/internal/http"
	"github.com/tbourn/moreply-backend/internal/observability"
	"github.com/tbourn/moreply-backend/internal/persist"
	"github.com/tbourn/moreply-backend/internal/repo"
	"github.com/tbourn/moreply-backend/internal/services"
	"github.com/tbourn/moreply-backend/internal/sysutil"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

const (
	shutdownTimeout = 10 * time.Second
	initRetryMin    = time.Second
	initRetryMax    = 30 * time.Second
)

func main() {
	// A missing .env is fine; real deployments use the environment.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(1)
	}
	logger := sysutil.SetupLogger(os.Stdout, cfg.LogLevel, cfg.LogPretty, cfg.OTEL.ServiceName)

	if err := run(cfg, logger); err != nil {
		logger.Error().Err(err).Msg("server stopped with error")
		os.Exit(1)
	}
}

func run(cfg config.Config, logger zerolog.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	appVersion := sysutil.FirstNonEmpty(os.Getenv("APP_VERSION"), version)
	shutdownOTel, err := observability.SetupOTel(ctx, cfg.OTEL, appVersion,
		attribute.String("moreply.store.backend", cfg.Store.Backend))
	if err != nil {
		return fmt.Errorf("otel: %w", err)
	}
	defer func() {
		sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := shutdownOTel(sctx); err != nil {
			logger.Warn().Err(err).Msg("otel shutdown")
		}
	}()

	slot, closeSlot, err := openSlot(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open %s slot: %w", cfg.Store.Backend, err)
	}
	defer closeSlot()

	seed := services.SeedNone
	if cfg.Store.SeedDemo {
		seed = services.SeedDemo
	}
	adapter := persist.NewAdapter(slot, cfg.Store.SlotKey, logger)
	store := services.NewTemplateStore(adapter, logger,
		services.WithSeedPolicy(seed),
		services.WithIdempotencyTTL(cfg.IdempotencyTTL),
	)

	// Requests arriving before the load finishes see loaded=false or 503.
	go initializeStore(ctx, store, adapter, logger)

	gin.SetMode(cfg.GinMode)
	r := gin.New()
	httpapi.RegisterRoutes(r, httpapi.Deps{
		Store:    store,
		Edit:     services.NewEditOverlay(store),
		Composer: services.NewComposer(store),
	}, cfg)

	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           r,
		ReadTimeout:       cfg.ReadTimeout,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
		MaxHeaderBytes:    cfg.MaxHeaderBytes,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info().
			Str("addr", srv.Addr).
			Str("backend", adapter.Backend()).
			Str("version", appVersion).
			Msg("server listening")
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

	logger.Info().Msg("shutting down")
	sctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(sctx); err != nil {
		return fmt.Errorf("graceful shutdown: %w", err)
	}
	return nil
}

// openSlot builds the storage backend named by cfg.Store.Backend and a
// function releasing its resources.
func openSlot(ctx context.Context, cfg config.Config) (persist.Slot, func(), error) {
	switch cfg.Store.Backend {
	case config.BackendSQLite:
		db, err := repo.OpenSQLite(cfg.Store.DBPath)
		if err != nil {
			return nil, nil, err
		}
		if err := repo.AutoMigrate(db); err != nil {
			closeDB(db)
			return nil, nil, err
		}
		return persist.NewGormSlot(db), func() { closeDB(db) }, nil

	case config.BackendRedis:
		rdb, err := persist.DialRedis(ctx, persist.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			return nil, nil, err
		}
		return persist.NewRedisSlot(rdb, cfg.Redis.Prefix), func() { closeRedis(rdb) }, nil

	case config.BackendMemory:
		return persist.NewMemorySlot(), func() {}, nil

	default:
		return persist.NewFileSlot(cfg.Store.Dir), func() {}, nil
	}
}

func closeDB(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
}

func closeRedis(rdb *redis.Client) { _ = rdb.Close() }

// initializeStore loads the stored templates, retrying while the backend
// cannot be read. A failed read never seeds, so stored data is not
// replaced while the backend is down.
func initializeStore(ctx context.Context, store *services.TemplateStore, adapter *persist.Adapter, logger zerolog.Logger) {
	log := logger.With().Str("backend", adapter.Backend()).Str("slot", adapter.Key()).Logger()
	backoff := initRetryMin
	for {
		err := store.Initialize(ctx)
		if err == nil || errors.Is(err, services.ErrAlreadyInitialized) {
			return
		}
		log.Error().Err(err).Dur("retry_in", backoff).Msg("initialize template store")

		select {
		case <-ctx.Done():
			return
		case <-time.After(backoff):
		}
		backoff = min(backoff*2, initRetryMax)
	}
}
