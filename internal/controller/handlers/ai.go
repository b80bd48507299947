package handlers

import (
	"context"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rsidorov/fitcoach_bot/internal/app"
	"github.com/rsidorov/fitcoach_bot/internal/controller/state"
	"go.uber.org/zap"
)

// HandleAIStart начинает диалог с AI-помощником
func (h *Handlers) HandleAIStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if _, ok := h.requireUser(ctx, b, update); !ok {
		return
	}

	h.stateManager.StartDialog(update.Message.From.ID, state.StateAIQuery)

	h.sendMessage(ctx, b, update.Message.Chat.ID,
		"🤖 AI-помощник\n\n"+
			"Задайте вопрос о тренировках или питании. "+
			"Помощник учитывает ваши последние записи прогресса и базу знаний.\n\n"+
			"Для отмены используйте /cancel")
}

// handleAIQueryStep ставит вопрос в очередь генерации
func (h *Handlers) handleAIQueryStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg := update.Message
	telegramID := msg.From.ID
	chatID := msg.Chat.ID

	query := strings.TrimSpace(msg.Text)
	if query == "" {
		h.sendError(ctx, b, chatID, "❌ Вопрос не может быть пустым. Попробуйте ещё раз:")
		return
	}

	user, err := h.userService.GetByTelegramID(ctx, telegramID)
	if err != nil || user == nil {
		h.sendError(ctx, b, chatID, "❌ Сначала выполните /start")
		h.stateManager.ClearState(telegramID)
		return
	}

	// Состояние снимается сразу: генерация идёт в фоне,
	// пользователь может продолжать работать с ботом
	h.stateManager.ClearState(telegramID)

	job := app.AIJob{
		StudentID: user.ID,
		Query:     query,
		Reply: func(text string) {
			h.sendMessage(context.Background(), b, chatID, text)
		},
	}

	if !h.aiWorker.Enqueue(job) {
		h.logger.Warn("AI queue is full", zap.Int64("user_id", user.ID))
		h.sendMessage(ctx, b, chatID, "⏳ Помощник сейчас перегружен. Попробуйте через минуту.")
		return
	}

	h.sendMessage(ctx, b, chatID, "🤖 Думаю над ответом...")
}
