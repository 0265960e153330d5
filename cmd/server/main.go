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

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/actuallystonmai/group-recommender/internal/cache"
	"github.com/actuallystonmai/group-recommender/internal/catalog"
	"github.com/actuallystonmai/group-recommender/internal/config"
	"github.com/actuallystonmai/group-recommender/internal/handler"
	"github.com/actuallystonmai/group-recommender/internal/logging"
	"github.com/actuallystonmai/group-recommender/internal/match"
	"github.com/actuallystonmai/group-recommender/internal/model"
	"github.com/actuallystonmai/group-recommender/internal/repository"
	"github.com/actuallystonmai/group-recommender/internal/router"
	"github.com/actuallystonmai/group-recommender/internal/service"
	"github.com/actuallystonmai/group-recommender/seeds"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to load config: %v\n", err)
		os.Exit(1)
	}
	logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ------------ PostgreSQL ---------------
	poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to parse database config")
	}
	poolConfig.MaxConns = int32(cfg.Database.PoolSize)
	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}
	defer pool.Close()

	if err := waitForDB(ctx, pool); err != nil {
		log.Fatal().Err(err).Msg("database not ready")
	}
	log.Info().Msg("connected to PostgreSQL")

	// ------------ Seed Data (local development) ---------------
	if len(os.Args) > 1 && os.Args[1] == "seed" {
		if err := seeds.Setup(ctx, pool); err != nil {
			log.Fatal().Err(err).Msg("failed to seed database")
		}
		return
	}

	// ------------ Catalog metadata cache (optional) ---------------
	var catalogOpts []catalog.Option
	if cfg.Redis.URL != "" {
		redisOpts, err := redis.ParseURL(cfg.Redis.URL)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to parse redis url")
		}
		rdb := redis.NewClient(redisOpts)
		defer rdb.Close()

		metadataCache := cache.NewCache(rdb, cfg.Redis.CacheTTL)
		if err := metadataCache.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("redis unreachable, catalog metadata cache disabled")
		} else {
			catalogOpts = append(catalogOpts, catalog.WithCache(metadataCache))
			log.Info().Dur("ttl", cfg.Redis.CacheTTL).Msg("catalog metadata cache enabled")
		}
	}

	// ------------ Pipeline ---------------
	repo := repository.NewRepository(pool)
	svc := service.NewService(service.Dependencies{
		Watched: repo,
		Ratings: repo,
		Catalog: catalog.NewClient(cfg.Catalog, catalogOpts...),
		Scorer:  model.NewClient(cfg.Scoring, nil),
	}, match.OptionsFromConfig(cfg.Match, cfg.Pipeline.Concurrency), cfg.Pipeline.Concurrency)

	// ---------------- Server --------------------
	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           router.Setup(handler.NewHandler(svc), cfg.Server),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func waitForDB(ctx context.Context, pool *pgxpool.Pool) error {
	for i := 0; i < 30; i++ {
		if err := pool.Ping(ctx); err == nil {
			return nil
		}
		log.Info().Msgf("waiting for database... (%d/30)", i+1)
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(time.Second):
		}
	}
	return fmt.Errorf("database connection timeout after 30s")
}
