package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/go-telegram/bot"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rsidorov/fitcoach_bot/internal/app"
	"github.com/rsidorov/fitcoach_bot/internal/config"
	"github.com/rsidorov/fitcoach_bot/internal/controller"
	"github.com/rsidorov/fitcoach_bot/internal/llm"
	"github.com/rsidorov/fitcoach_bot/internal/repository"
	"github.com/rsidorov/fitcoach_bot/internal/service"
	"github.com/rsidorov/fitcoach_bot/internal/storage"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	logger := app.NewLogger(cfg.Environment)
	defer logger.Sync()

	logger.Sugar().Infow("Starting fitcoach bot",
		"environment", cfg.Environment,
		"ai_workers", cfg.AIWorkers)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Подключаемся к базе
	pool, err := pgxpool.New(ctx, cfg.GetDBDSN())
	if err != nil {
		logger.Fatal("Failed to create database pool", zap.Error(err))
	}
	defer pool.Close()

	if err := pool.Ping(ctx); err != nil {
		logger.Fatal("Failed to ping database", zap.Error(err))
	}
	logger.Info("✅ Connected to database")

	// Применяем миграции
	migrator, err := app.NewMigrator(pool, cfg.MigrationsDir, logger)
	if err != nil {
		logger.Fatal("Failed to create migrator", zap.Error(err))
	}
	if err := migrator.Run(ctx); err != nil {
		logger.Fatal("Failed to run migrations", zap.Error(err))
	}
	migrator.Close()

	// Репозитории
	userRepo := repository.NewUserRepository(pool)
	groupRepo := repository.NewGroupRepository(pool)
	paymentRepo := repository.NewPaymentRepository(pool)
	progressRepo := repository.NewProgressRepository(pool)
	knowledgeRepo := repository.NewKnowledgeRepository(pool)

	// Хранилище файлов
	fileStorage, err := storage.NewLocalStorage(cfg.StorageDir, logger)
	if err != nil {
		logger.Fatal("Failed to create file storage", zap.Error(err))
	}

	// Сервисы
	userService := service.NewUserService(userRepo, logger)
	groupService := service.NewGroupService(groupRepo, userRepo, logger)
	paymentService := service.NewPaymentService(paymentRepo, userRepo, logger)
	progressService := service.NewProgressService(progressRepo, logger)
	knowledgeService := service.NewKnowledgeService(knowledgeRepo, logger)

	llmClient := llm.NewClient(cfg.LLMURL, logger)
	aiService := service.NewAIService(progressRepo, knowledgeRepo, service.NewTextExtractor(), llmClient, logger)

	// Пул воркеров генерации
	aiWorker := app.NewAIWorker(aiService, cfg.AIWorkers, logger)
	aiWorker.Start(ctx)
	defer aiWorker.Stop()

	// Создаём бота
	botInstance, err := bot.New(cfg.TelegramToken)
	if err != nil {
		logger.Fatal("Failed to create bot", zap.Error(err))
	}

	botController := controller.NewBotController(
		botInstance,
		userService,
		groupService,
		paymentService,
		progressService,
		knowledgeService,
		aiWorker,
		fileStorage,
		logger,
	)

	if err := botController.RegisterHandlers(ctx); err != nil {
		logger.Fatal("Failed to register handlers", zap.Error(err))
	}

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return botController.Start(gCtx)
	})

	if err := g.Wait(); err != nil && ctx.Err() == nil {
		logger.Error("Bot stopped with error", zap.Error(err))
	}

	logger.Info("Bot stopped")
}
