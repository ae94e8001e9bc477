package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/user/scraper-service/internal/adapter/chromereader"
	"github.com/user/scraper-service/internal/adapter/pagereader"
	"github.com/user/scraper-service/internal/adapter/pdftotext"
	"github.com/user/scraper-service/internal/adapter/postgres"
	redis_adapter "github.com/user/scraper-service/internal/adapter/redis"
	"github.com/user/scraper-service/internal/adapter/spiderbridge"
	"github.com/user/scraper-service/internal/delivery/http/handler"
	"github.com/user/scraper-service/internal/delivery/http/router"
	"github.com/user/scraper-service/internal/repository"
	"github.com/user/scraper-service/internal/usecase"
	"github.com/user/scraper-service/pkg/config"
	"github.com/user/scraper-service/pkg/logger"
	"github.com/user/scraper-service/pkg/metrics"
)

func main() {
	// --- Configuration ---
	cfg := config.Load()

	// --- Logger ---
	logLevel := slog.LevelInfo
	if cfg.LogLevel == "debug" {
		logLevel = slog.LevelDebug
	}
	logger.Init(logger.Output(cfg.LogFile), logLevel)
	slog.Info("Logger initialized", "level", logLevel.String())

	// --- Metrics ---
	metrics.Init()
	slog.Info("Metrics initialized")

	// --- Database Connections ---
	ctx := context.Background()

	// PostgreSQL
	pgConnString := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.PostgresUser, cfg.PostgresPassword, cfg.PostgresHost, cfg.PostgresPort, cfg.PostgresDB)
	dbpool, err := pgxpool.New(ctx, pgConnString)
	if err != nil {
		slog.Error("Unable to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbpool.Close()
	slog.Info("PostgreSQL connection pool established")

	// Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if _, err := rdb.Ping(ctx).Result(); err != nil {
		slog.Error("Unable to connect to Redis", "error", err)
		os.Exit(1)
	}
	slog.Info("Redis connection established")

	// --- Repositories ---
	knowledgeRepo := postgres.NewKnowledgeRepo(dbpool)
	statusRepo := postgres.NewStatusRepo(dbpool)
	pageCache := redis_adapter.NewPageCache(rdb)

	var reader repository.PageReader = pagereader.NewHTTPReader(cfg.FetchTimeout)
	if cfg.RenderJS {
		reader = chromereader.NewReader(cfg.MaxConcurrency, cfg.FetchTimeout)
		slog.Info("Rendered page reading enabled")
	}
	reader = pagereader.NewCachedReader(reader, pageCache, cfg.PageCacheTTL)

	parser := pdftotext.New()
	bridge := spiderbridge.NewBridge(cfg.SpiderBin, cfg.SpiderTimeout)

	// --- Use Cases ---
	scraper := usecase.NewScraper(reader, parser, knowledgeRepo)
	bulkScraper := usecase.NewBulkScraper(reader, knowledgeRepo, cfg.MaxConcurrency)
	externalCrawl := usecase.NewExternalCrawlRunner(bridge)
	statusManager := usecase.NewStatusManager(statusRepo)

	// --- HTTP Server ---
	apiHandler := handler.NewHandler(scraper, bulkScraper, externalCrawl, statusManager, knowledgeRepo)
	httpRouter := router.New(apiHandler)

	// Bulk crawls and delegated crawls hold the connection open for the
	// whole run, so the write timeout has to outlast the spider deadline.
	server := &http.Server{
		Addr:         ":" + cfg.ServerPort,
		Handler:      httpRouter,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: cfg.SpiderTimeout + 30*time.Second,
		IdleTimeout:  120 * time.Second,
	}

	slog.Info("Starting server", "port", cfg.ServerPort)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		slog.Error("Could not listen on port", "port", cfg.ServerPort, "error", err)
		os.Exit(1)
	}
}
