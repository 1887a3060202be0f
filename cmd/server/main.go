// cmd/server/main.go
package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	openai "github.com/sashabaranov/go-openai"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"carmarket-api/internal/advisor"
	"carmarket-api/internal/common/config"
	"carmarket-api/internal/common/database"
	"carmarket-api/internal/common/logger"
	"carmarket-api/internal/common/observability"
	"carmarket-api/internal/extractor"
	"carmarket-api/internal/genai"
	"carmarket-api/internal/listings"
	"carmarket-api/internal/reconciler"
	"carmarket-api/internal/server"
	"carmarket-api/internal/store"
	"carmarket-api/pkg/catalog"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting marketplace API server...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("carmarket-api")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Redis (optional, enables the extraction cache) ---
	var extractionCache *extractor.Cache
	if cfg.Redis.Address != "" {
		var redis *database.RedisClient
		err = retryWithBackoff(func() error {
			var err error
			redis, err = database.NewRedis(cfg.Redis)
			if err != nil {
				return err
			}
			return redis.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")

		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer redis.Close()
		zapLog.Info("Redis connected successfully")

		extractionCache = extractor.NewCache(redis, time.Duration(cfg.Redis.CacheTTL)*time.Second, log)
	} else {
		zapLog.Info("Redis not configured, extraction cache disabled")
	}

	// --- Init generation client ---
	aiConfig := openai.DefaultConfig(cfg.AI.APIKey)
	if cfg.AI.BaseURL != "" {
		aiConfig.BaseURL = cfg.AI.BaseURL
	}
	limiter := rate.NewLimiter(rate.Limit(cfg.AI.RateLimit), cfg.AI.RateBurst)
	generator := genai.NewClient(
		openai.NewClientWithConfig(aiConfig),
		genai.Config{
			Model:       cfg.AI.Model,
			Temperature: float32(cfg.AI.Temperature),
			Timeout:     time.Duration(cfg.AI.Timeout) * time.Second,
		},
		limiter,
		log,
	)
	zapLog.Info("Generation client initialized", zap.String("model", cfg.AI.Model))

	// --- Wire pipeline services ---
	extractorSvc := extractor.NewService(generator, extractionCache, log)
	advisorSvc := advisor.NewService(generator, log)
	reconcilerSvc := reconciler.NewService(generator, log)
	storeClient := store.NewClient(cfg.Store, log)

	inventory := listings.Seed()
	if cfg.App.CatalogPath != "" {
		inventory, err = catalog.Load(cfg.App.CatalogPath)
		if err != nil {
			zapLog.Fatal("catalog load failed", zap.Error(err))
		}
		zapLog.Info("Inventory loaded from catalog",
			zap.String("path", cfg.App.CatalogPath),
			zap.Int("listings", len(inventory)),
		)
	}

	srv := server.NewServer(
		extractorSvc,
		advisorSvc,
		reconcilerSvc,
		storeClient,
		inventory,
		log,
		obs,
	)

	mux := srv.Routes()
	mux.Handle("GET /metrics", promhttp.Handler())

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:      mux,
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeout) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeout) * time.Second,
	}

	go func() {
		zapLog.Info("HTTP server listening", zap.Int("port", cfg.Server.Port))
		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			zapLog.Fatal("HTTP server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		zapLog.Error("Error shutting down HTTP server", zap.Error(err))
	}

	zapLog.Info("Server stopped gracefully")
}
