package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rsidorov/fitcoach_bot/internal/controller/state"
	"go.uber.org/zap"
)

// HandleStart обрабатывает команду /start: регистрирует пользователя
// и показывает меню в зависимости от роли
func (h *Handlers) HandleStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	from := update.Message.From

	user, err := h.userService.RegisterUser(ctx, from.ID, from.Username, from.FirstName)
	if err != nil {
		h.logger.Error("Failed to register user", zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Произошла ошибка при регистрации. Попробуйте позже.")
		return
	}

	// Новый /start сбрасывает недоигранный диалог
	h.stateManager.ClearState(from.ID)

	if user.IsTrainer {
		h.sendWithKeyboard(ctx, b, update.Message.Chat.ID,
			fmt.Sprintf("Привет, %s! Вы вошли как тренер. Выберите действие:", user.FirstName),
			trainerMenu())
		return
	}

	h.sendWithKeyboard(ctx, b, update.Message.Chat.ID,
		fmt.Sprintf("Привет, %s! Я телеграм-бот Руслана Сидорова для персональных тренировок. Выбери команду:", user.FirstName),
		studentMenu())
}

// HandleHelp обрабатывает команду /help
func (h *Handlers) HandleHelp(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil {
		return
	}

	helpText := "📚 Справка:\n\n" +
		"Для учеников:\n" +
		"• " + MenuTrainerSessions + " — баланс занятий и оплата\n" +
		"• " + MenuSchedule + " — расписание ваших групп\n" +
		"• " + MenuProgram + " — файл программы тренировок\n" +
		"• " + MenuNutrition + " — записать приём пищи\n" +
		"• " + MenuProgress + " — записать тренировку или фото\n" +
		"• " + MenuKnowledge + " — материалы тренера\n" +
		"• " + MenuAI + " — вопрос AI-помощнику\n\n" +
		"Команды:\n" +
		"/start — начать работу\n" +
		"/cancel — отменить текущую операцию\n" +
		"/help — эта справка"

	h.sendMessage(ctx, b, update.Message.Chat.ID, helpText)
}

// HandleCancel обрабатывает команду /cancel — отмена текущего диалога.
// Работает из любого состояния, скретчпад отбрасывается.
func (h *Handlers) HandleCancel(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	telegramID := update.Message.From.ID
	currentState := h.stateManager.GetState(telegramID)

	if currentState == state.StateNone {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "❌ Нет активных операций для отмены.")
		return
	}

	h.stateManager.ClearState(telegramID)

	h.sendMessage(ctx, b, update.Message.Chat.ID, "✅ Операция отменена.")
}

// HandleTextMessage обрабатывает текстовые сообщения.
// Приоритет: шаг активного диалога, потом кнопки меню, потом заглушка.
func (h *Handlers) HandleTextMessage(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil || update.Message.Text == "" {
		return
	}

	// Команды /start /help /cancel обрабатываются зарегистрированными handlers,
	// остальные слэш-команды никому не известны
	if strings.HasPrefix(update.Message.Text, "/") {
		switch strings.Fields(update.Message.Text)[0] {
		case "/start", "/help", "/cancel":
			return
		}
		h.sendMessage(ctx, b, update.Message.Chat.ID, "Неизвестная команда. Используйте /help.")
		return
	}

	telegramID := update.Message.From.ID
	currentState := h.stateManager.GetState(telegramID)

	h.logger.Debug("Text message received",
		zap.Int64("telegram_id", telegramID),
		zap.String("state", string(currentState)))

	// Шаг активного диалога важнее кнопок меню
	switch currentState {
	case state.StateGroupName:
		h.handleGroupNameStep(ctx, b, update)
		return
	case state.StateGroupSchedule:
		h.handleGroupScheduleStep(ctx, b, update)
		return
	case state.StateGroupProgram:
		h.sendMessage(ctx, b, update.Message.Chat.ID,
			"Пришлите файл программы документом или нажмите «Пропустить».")
		return
	case state.StateGroupStudents:
		h.sendMessage(ctx, b, update.Message.Chat.ID,
			"Выберите учеников кнопками под сообщением или нажмите «Завершить выбор».")
		return
	case state.StatePaymentProof:
		h.sendMessage(ctx, b, update.Message.Chat.ID,
			"Пришлите фото чека об оплате. Для отмены используйте /cancel.")
		return
	case state.StatePaymentCount:
		h.handlePaymentCountStep(ctx, b, update)
		return
	case state.StateProgressData:
		h.handleProgressTextStep(ctx, b, update)
		return
	case state.StateAIQuery:
		h.handleAIQueryStep(ctx, b, update)
		return
	case state.StateKnowledgeContent:
		h.handleKnowledgeTextStep(ctx, b, update)
		return
	}

	// Кнопки меню
	switch update.Message.Text {
	case MenuTrainerSessions:
		h.HandleTrainerSessions(ctx, b, update)
	case MenuSchedule:
		h.HandleStudentSchedule(ctx, b, update)
	case MenuProgram:
		h.HandleStudentProgram(ctx, b, update)
	case MenuNutrition:
		h.HandleNutritionStart(ctx, b, update)
	case MenuProgress:
		h.HandleProgressStart(ctx, b, update)
	case MenuKnowledge:
		h.HandleKnowledge(ctx, b, update)
	case MenuAI:
		h.HandleAIStart(ctx, b, update)
	case MenuViewStudents:
		h.HandleViewStudents(ctx, b, update)
	case MenuViewGroups:
		h.HandleViewGroups(ctx, b, update)
	case MenuCreateGroup:
		h.HandleCreateGroupStart(ctx, b, update)
	case MenuPendingPayments:
		h.HandlePendingPayments(ctx, b, update)
	default:
		h.sendMessage(ctx, b, update.Message.Chat.ID,
			"Не понимаю эту команду. Используйте кнопки меню или /help.")
	}
}

// HandleDefault обрабатывает апдейты без текстового сообщения:
// документы и фотографии в рамках активного диалога
func (h *Handlers) HandleDefault(ctx context.Context, b *bot.Bot, update *models.Update) {
	if update.Message == nil || update.Message.From == nil {
		return
	}

	msg := update.Message
	if msg.Document == nil && len(msg.Photo) == 0 {
		return
	}

	telegramID := msg.From.ID
	currentState := h.stateManager.GetState(telegramID)

	switch currentState {
	case state.StateGroupProgram:
		h.handleGroupProgramStep(ctx, b, update)
	case state.StatePaymentProof:
		h.handlePaymentProofStep(ctx, b, update)
	case state.StateProgressData:
		h.handleProgressAttachmentStep(ctx, b, update)
	case state.StateKnowledgeContent:
		h.handleKnowledgeAttachmentStep(ctx, b, update)
	default:
		h.sendMessage(ctx, b, msg.Chat.ID,
			"Я не знаю, что делать с этим файлом. Выберите действие в меню.")
	}
}
