package controller

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rsidorov/fitcoach_bot/internal/app"
	"github.com/rsidorov/fitcoach_bot/internal/controller/handlers"
	"github.com/rsidorov/fitcoach_bot/internal/controller/state"
	"github.com/rsidorov/fitcoach_bot/internal/service"
	"github.com/rsidorov/fitcoach_bot/internal/storage"
	"go.uber.org/zap"
)

type BotController struct {
	bot      *bot.Bot
	handlers *handlers.Handlers
	logger   *zap.Logger
}

func NewBotController(
	botInstance *bot.Bot,
	userService *service.UserService,
	groupService *service.GroupService,
	paymentService *service.PaymentService,
	progressService *service.ProgressService,
	knowledgeService *service.KnowledgeService,
	aiWorker *app.AIWorker,
	fileStorage storage.FileStorage,
	logger *zap.Logger,
) *BotController {
	// Создаём менеджер состояний диалогов
	stateManager := state.NewManager()

	// Создаём обработчики апдейтов
	updateHandlers := handlers.NewHandlers(
		userService,
		groupService,
		paymentService,
		progressService,
		knowledgeService,
		aiWorker,
		fileStorage,
		stateManager,
		logger,
	)

	return &BotController{
		bot:      botInstance,
		handlers: updateHandlers,
		logger:   logger,
	}
}

// RegisterHandlers регистрирует все обработчики апдейтов
func (c *BotController) RegisterHandlers(ctx context.Context) error {
	// Регистрируем команды
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/start", bot.MatchTypeExact, c.handlers.HandleStart)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/help", bot.MatchTypeExact, c.handlers.HandleHelp)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "/cancel", bot.MatchTypeExact, c.handlers.HandleCancel)

	// Обработчик текстовых сообщений (пункты меню и шаги диалогов)
	c.bot.RegisterHandler(bot.HandlerTypeMessageText, "", bot.MatchTypePrefix, c.handlers.HandleTextMessage)

	// Обработчик нажатий на inline кнопки
	c.bot.RegisterHandler(bot.HandlerTypeCallbackQueryData, "", bot.MatchTypePrefix, c.handlers.HandleCallbackQuery)

	// Документы и фото идут в шаги диалогов
	c.bot.RegisterHandlerMatchFunc(func(update *models.Update) bool {
		return update.Message != nil && (update.Message.Document != nil || len(update.Message.Photo) > 0)
	}, c.handlers.HandleDefault)

	// Устанавливаем меню команд
	return c.setCommands(ctx)
}

// setCommands устанавливает список команд в меню бота
func (c *BotController) setCommands(ctx context.Context) error {
	commands := []models.BotCommand{
		{Command: "start", Description: "🚀 Начать работу с ботом"},
		{Command: "help", Description: "❓ Справка"},
		{Command: "cancel", Description: "❌ Отменить текущую операцию"},
	}

	_, err := c.bot.SetMyCommands(ctx, &bot.SetMyCommandsParams{
		Commands: commands,
	})

	if err != nil {
		c.logger.Error("Failed to set bot commands", zap.Error(err))
		return err
	}

	c.logger.Info("✅ Bot commands menu set")
	return nil
}

// Start запускает бота
func (c *BotController) Start(ctx context.Context) error {
	c.logger.Info("Starting bot...")
	c.bot.Start(ctx)
	return nil
}
