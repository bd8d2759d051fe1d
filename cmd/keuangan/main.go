package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tpq-asysyafii/tpq-keuangan/internal/app"
	"github.com/tpq-asysyafii/tpq-keuangan/internal/finapi"
	"github.com/tpq-asysyafii/tpq-keuangan/internal/keuangan"
	keuanganhttp "github.com/tpq-asysyafii/tpq-keuangan/internal/keuangan/http"
	"github.com/tpq-asysyafii/tpq-keuangan/internal/observability"
	"github.com/tpq-asysyafii/tpq-keuangan/internal/platform/cache"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	cfg, err := app.LoadConfig()
	if err != nil {
		slog.Default().Error("load config", slog.Any("error", err))
		os.Exit(1)
	}

	logger := app.NewLogger(cfg)

	// Pencarian metadata dilayani dari cache bila Redis tersedia; aplikasi
	// tetap jalan tanpa Redis.
	var metadataCache keuangan.MetadataCache
	if cfg.RedisAddr != "" {
		redisClient, err := cache.New(ctx, cfg.RedisAddr)
		if err != nil {
			logger.Warn("redis tidak tersedia, cache metadata dimatikan", slog.Any("error", err))
		} else {
			defer func() {
				if err := redisClient.Close(); err != nil {
					logger.Warn("redis close", slog.Any("error", err))
				}
			}()
			metadataCache = cache.NewMetadata(redisClient, logger)
		}
	}

	api := finapi.NewClient(cfg.FinanceAPIURL, cfg.FinanceAPIToken)
	metrics := observability.NewMetrics()
	service := keuangan.NewService(logger, api, metadataCache, cfg.MetadataCacheTTL, metrics)
	handler := keuanganhttp.NewHandler(logger, service, metrics)

	router := app.NewRouter(app.RouterParams{
		Logger:          logger,
		Config:          cfg,
		KeuanganHandler: handler,
		Metrics:         metrics,
	})

	server := &http.Server{
		Addr:         cfg.AppAddr,
		Handler:      router,
		ReadTimeout:  cfg.AppReadTimeout,
		WriteTimeout: cfg.AppWriteTimeout,
	}

	go func() {
		logger.Info("starting http server", slog.String("addr", cfg.AppAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("http server", slog.Any("error", err))
			stop()
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown", slog.Any("error", err))
	}
}
