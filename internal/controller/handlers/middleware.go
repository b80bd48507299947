package handlers

import (
	"context"
	"errors"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rsidorov/fitcoach_bot/internal/model"
	"github.com/rsidorov/fitcoach_bot/internal/service"
	"go.uber.org/zap"
)

// requireUser проверяет что отправитель зарегистрирован.
// Возвращает user и true если OK, nil и false если нет.
func (h *Handlers) requireUser(ctx context.Context, b *bot.Bot, update *models.Update) (*model.User, bool) {
	if update.Message == nil || update.Message.From == nil {
		return nil, false
	}

	telegramID := update.Message.From.ID
	user, err := h.userService.GetByTelegramID(ctx, telegramID)

	if err != nil {
		h.logger.Error("Failed to get user", zap.Int64("telegram_id", telegramID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Произошла ошибка. Попробуйте позже.")
		return nil, false
	}

	if user == nil {
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Вы не зарегистрированы. Используйте /start.")
		return nil, false
	}

	return user, true
}

// requireTrainer проверяет что отправитель — тренер. Роль каждый раз
// перечитывается из БД; при отказе никакие данные не меняются.
func (h *Handlers) requireTrainer(ctx context.Context, b *bot.Bot, update *models.Update) (*model.User, bool) {
	if update.Message == nil || update.Message.From == nil {
		return nil, false
	}

	telegramID := update.Message.From.ID
	trainer, err := h.userService.RequireTrainer(ctx, telegramID)

	switch {
	case err == nil:
		return trainer, true
	case errors.Is(err, service.ErrNotTrainer), errors.Is(err, service.ErrNotFound):
		h.sendMessage(ctx, b, update.Message.Chat.ID, "Эта функция доступна только тренерам.")
		return nil, false
	default:
		h.logger.Error("Failed to check trainer role", zap.Int64("telegram_id", telegramID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Произошла ошибка. Попробуйте позже.")
		return nil, false
	}
}

// requireTrainerCallback — та же проверка для нажатий на inline кнопки
func (h *Handlers) requireTrainerCallback(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) (*model.User, bool) {
	telegramID := callback.From.ID
	trainer, err := h.userService.RequireTrainer(ctx, telegramID)

	switch {
	case err == nil:
		return trainer, true
	case errors.Is(err, service.ErrNotTrainer), errors.Is(err, service.ErrNotFound):
		h.answerCallbackAlert(ctx, b, callback.ID, "Эта функция доступна только тренерам.")
		return nil, false
	default:
		h.logger.Error("Failed to check trainer role", zap.Int64("telegram_id", telegramID), zap.Error(err))
		h.answerCallbackAlert(ctx, b, callback.ID, "❌ Произошла ошибка. Попробуйте позже.")
		return nil, false
	}
}
