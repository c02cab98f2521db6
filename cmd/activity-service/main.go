// Package main запускает HTTP-сервис записи на кружки
package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"activity-signup/internal/config"
	httpapi "activity-signup/internal/http"
	"activity-signup/internal/metrics"
	"activity-signup/internal/repository"
	"activity-signup/internal/service"
	"activity-signup/internal/web"
)

func main() {
	// Контекст для корректного завершения
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Инициализация логгера (JSON)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	// Чтение конфигурации из ENV
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	seed, err := repository.LoadSeed(cfg.SeedFile)
	if err != nil {
		log.Fatalf("failed to load seed: %v", err)
	}

	// 1. Хранилище: PostgreSQL, если задан DB_DSN, иначе память процесса
	var (
		repo      service.ActivityRepository
		txManager service.TransactionManager
	)
	if cfg.DBDSN != "" {
		db, err := repository.NewPostgres(ctx, cfg.DBDSN)
		if err != nil {
			log.Fatalf("failed to init postgres: %v", err)
		}
		defer db.Pool.Close()

		if err := db.EnsureSchema(ctx); err != nil {
			log.Fatalf("failed to prepare schema: %v", err)
		}

		activityRepo := repository.NewActivityRepo(db)
		seeded, err := activityRepo.SeedIfEmpty(ctx, seed)
		if err != nil {
			log.Fatalf("failed to seed activities: %v", err)
		}
		logger.Info("using postgres storage", slog.Bool("seeded", seeded))

		repo = activityRepo
		txManager = repository.NewTransactionManager(db)
	} else {
		memRepo := repository.NewMemoryRepo(seed)
		logger.Info("using in-memory storage", slog.Int("activities", len(seed)))

		repo = memRepo
		txManager = memRepo
	}

	// 2. Метрики
	reg, err := metrics.New()
	if err != nil {
		log.Fatalf("failed to init metrics: %v", err)
	}

	// 3. Инициализация сервиса
	activityService := service.NewActivityService(repo, txManager)

	// 4. Инициализация HTTP-обработчика
	handler := httpapi.NewHandler(activityService, reg, web.Static(), logger)

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: handler.Router(),
	}

	// Запуск сервера в горутине
	go func() {
		logger.Info("starting http server", slog.String("addr", server.Addr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", slog.Any("err", err))
			cancel()
		}
	}()

	// Graceful Shutdown
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
	case <-ctx.Done():
	}
	logger.Info("shutting down server")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		logger.Error("server shutdown error", slog.Any("err", err))
	}

	logger.Info("server stopped")
}
