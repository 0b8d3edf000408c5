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
	"github.com/remotework/jobnexus/internal/adapter/fetcher"
	"github.com/remotework/jobnexus/internal/adapter/memory"
	"github.com/remotework/jobnexus/internal/adapter/postgres"
	redis_adapter "github.com/remotework/jobnexus/internal/adapter/redis"
	"github.com/remotework/jobnexus/internal/adapter/scraper"
	"github.com/remotework/jobnexus/internal/delivery/http/handler"
	"github.com/remotework/jobnexus/internal/delivery/http/router"
	"github.com/remotework/jobnexus/internal/repository"
	"github.com/remotework/jobnexus/internal/usecase"
	"github.com/remotework/jobnexus/pkg/config"
	"github.com/remotework/jobnexus/pkg/logger"
	"go.uber.org/zap"
)

func main() {
	// --- Configuration ---
	cfg, err := config.Load("")
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not load config: %v\n", err)
		os.Exit(1)
	}

	// --- Logger ---
	log, err := logger.New(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "could not build logger: %v\n", err)
		os.Exit(1)
	}
	defer log.Sync()

	ctx := context.Background()
	deps := make(map[string]handler.Pinger)

	// --- Storage ---
	var (
		jobRepo     repository.JobRepository     = memory.NewJobRepo()
		failureRepo repository.FailureRepository = memory.NewFailureRepo()
		resultCache repository.ResultCache       = memory.NewResultCache(cfg.CacheTTL)
	)

	if cfg.PostgresURL != "" {
		dbpool, err := pgxpool.New(ctx, cfg.PostgresURL)
		if err != nil {
			log.Fatal("Unable to connect to database", zap.Error(err))
		}
		defer dbpool.Close()
		if err := postgres.EnsureSchema(ctx, dbpool); err != nil {
			log.Fatal("Unable to create database schema", zap.Error(err))
		}
		jobRepo = postgres.NewJobRepo(dbpool)
		failureRepo = postgres.NewFailureRepo(dbpool)
		deps["postgres"] = dbpool
		log.Info("PostgreSQL connection pool established")
	} else {
		log.Info("POSTGRES_URL not set, keeping jobs in memory")
	}

	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		defer rdb.Close()
		if err := rdb.Ping(ctx).Err(); err != nil {
			log.Fatal("Unable to connect to Redis", zap.Error(err))
		}
		resultCache = redis_adapter.NewResultCache(rdb)
		deps["redis"] = handler.PingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
		log.Info("Redis connection established")
	} else {
		log.Info("REDIS_ADDR not set, caching results in process")
	}

	// --- Fetching ---
	rotator := fetcher.NewRotator(cfg.Proxies, cfg.UserAgents)
	var pageFetcher repository.PageFetcher
	switch cfg.FetchMode {
	case config.FetchModeBrowser:
		bf := fetcher.NewBrowserFetcher(rotator, cfg.BrowserConcurrency, cfg.FetchTimeout, log)
		defer bf.Close()
		pageFetcher = bf
	default:
		pageFetcher = fetcher.NewHTTPFetcher(rotator, cfg.FetchTimeout, log)
	}
	log.Info("Page fetcher ready", zap.String("mode", cfg.FetchMode))

	// --- Use Cases ---
	extractor := usecase.NewExtractor(
		pageFetcher,
		scraper.NewHeuristic(),
		scraper.Fallback{},
		resultCache,
		failureRepo,
		cfg.CacheTTL,
		log,
	)
	jobBoard := usecase.NewJobBoard(jobRepo, log)

	// --- HTTP Server ---
	apiHandler := handler.NewHandler(extractor, jobBoard, deps, log)
	httpRouter := router.New(apiHandler, log, router.Options{
		RequestTimeout: cfg.RequestTimeout,
		ExtractRPS:     cfg.ExtractRateLimit,
		ExtractBurst:   cfg.ExtractBurst,
		AllowedOrigins: cfg.AllowedOrigins,
	})

	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      httpRouter,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Graceful Shutdown
	go func() {
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("Could not listen on port", zap.String("port", cfg.ServerPort), zap.Error(err))
		}
	}()
	log.Info("Server started", zap.String("port", cfg.ServerPort))

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error("Server forced to shutdown", zap.Error(err))
	}
	log.Info("Server exiting")
}
