// Command api serves the Midas product tracker.
//
// @title                       Midas Product Tracker API
// @version                     1.0
// @description                 Submit retailer product URLs to track and list them by role.
// @BasePath                    /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/midas/product-tracker/internal/api"
	"github.com/midas/product-tracker/internal/api/handler"
	"github.com/midas/product-tracker/internal/core/ports"
	"github.com/midas/product-tracker/internal/core/service"
	"github.com/midas/product-tracker/internal/infrastructure/db/memory"
	mongodb "github.com/midas/product-tracker/internal/infrastructure/db/mongo"
	redisdb "github.com/midas/product-tracker/internal/infrastructure/db/redis"
	"github.com/midas/product-tracker/internal/pkg/config"
	"github.com/midas/product-tracker/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		bootLog := zerolog.New(os.Stderr)
		bootLog.Fatal().Err(err).Msg("config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: "midas",
	})

	if err := run(ctx, cfg, log); err != nil {
		log.Fatal().Err(err).Msg("server stopped with error")
	}
	log.Info().Msg("server shutdown complete")
}

func run(ctx context.Context, cfg *config.Config, log zerolog.Logger) error {
	backends := make(map[string]handler.Pinger)
	var cleanups []func(context.Context)
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		for _, fn := range cleanups {
			fn(shutdownCtx)
		}
	}()

	var repo ports.ProductRepository
	switch cfg.StoreBackend {
	case config.BackendMongo:
		client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		cleanups = append(cleanups, func(ctx context.Context) { _ = client.Disconnect(ctx) })

		mongoRepo := mongodb.NewProductRepository(db)
		if err := mongoRepo.EnsureIndexes(ctx); err != nil {
			log.Warn().Err(err).Msg("failed to ensure product indexes")
		}
		repo = mongoRepo
		backends["mongodb"] = mongodb.NewPinger(db)
	default:
		repo = memory.NewProductStore()
	}

	var guard service.SubmissionGuard
	if cfg.Redis.Addr != "" {
		rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, DB: cfg.Redis.DB})
		if err != nil {
			return err
		}
		cleanups = append(cleanups, func(context.Context) { _ = rdb.Close() })

		guard = redisdb.NewSubmissionGuard(rdb)
		backends["redis"] = redisdb.NewPinger(rdb)
	}

	e := api.NewRouter(api.Deps{
		Products:  service.NewProductService(repo, guard, logger.For("products")),
		Identity:  service.NewIdentityService(cfg.JWTSecret, cfg.TokenTTL, logger.For("identity")),
		JWTSecret: cfg.JWTSecret,
		Backends:  backends,
		Logger:    logger.For("http"),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Info().Str("addr", srv.Addr).Str("store", cfg.StoreBackend).Msg("server started")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		log.Info().Msg("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}
