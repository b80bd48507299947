package handlers

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// sendMessage отправляет сообщение и логирует если не удалось
func (h *Handlers) sendMessage(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: chatID,
		Text:   text,
	})
	if err != nil {
		h.logger.Error("Failed to send message",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

// sendError отправляет сообщение об ошибке и логирует если не удалось
func (h *Handlers) sendError(ctx context.Context, b *bot.Bot, chatID int64, text string) {
	h.sendMessage(ctx, b, chatID, text)
}

// sendWithKeyboard отправляет сообщение с клавиатурой
func (h *Handlers) sendWithKeyboard(ctx context.Context, b *bot.Bot, chatID int64, text string, keyboard models.ReplyMarkup) {
	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        text,
		ReplyMarkup: keyboard,
	})
	if err != nil {
		h.logger.Error("Failed to send message with keyboard",
			zap.Int64("chat_id", chatID),
			zap.Error(err),
		)
	}
}

// answerCallback отвечает на callback query (без alert)
func (h *Handlers) answerCallback(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       false,
	})
}

// answerCallbackAlert отвечает на callback query с alert (всплывающее окно)
func (h *Handlers) answerCallbackAlert(ctx context.Context, b *bot.Bot, callbackID string, text string) {
	b.AnswerCallbackQuery(ctx, &bot.AnswerCallbackQueryParams{
		CallbackQueryID: callbackID,
		Text:            text,
		ShowAlert:       true,
	})
}

// callbackChatID извлекает chat id из callback query
func callbackChatID(callback *models.CallbackQuery) (int64, bool) {
	if callback.Message.Message == nil {
		return 0, false
	}
	return callback.Message.Message.Chat.ID, true
}

// downloadTelegramFile скачивает файл с серверов Telegram по file id
func (h *Handlers) downloadTelegramFile(ctx context.Context, b *bot.Bot, fileID string) (io.ReadCloser, error) {
	file, err := b.GetFile(ctx, &bot.GetFileParams{FileID: fileID})
	if err != nil {
		return nil, fmt.Errorf("get file: %w", err)
	}

	url := b.FileDownloadLink(file)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build download request: %w", err)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("download file: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		resp.Body.Close()
		return nil, fmt.Errorf("download file: status %d", resp.StatusCode)
	}

	return resp.Body, nil
}

// studentMenu — главное меню ученика
func studentMenu() *models.ReplyKeyboardMarkup {
	return &models.ReplyKeyboardMarkup{
		Keyboard: [][]models.KeyboardButton{
			{{Text: MenuTrainerSessions}, {Text: MenuSchedule}},
			{{Text: MenuProgram}, {Text: MenuNutrition}},
			{{Text: MenuProgress}, {Text: MenuKnowledge}},
			{{Text: MenuAI}},
		},
		ResizeKeyboard: true,
	}
}

// trainerMenu — меню тренера
func trainerMenu() *models.ReplyKeyboardMarkup {
	return &models.ReplyKeyboardMarkup{
		Keyboard: [][]models.KeyboardButton{
			{{Text: MenuViewStudents}, {Text: MenuViewGroups}},
			{{Text: MenuCreateGroup}, {Text: MenuPendingPayments}},
			{{Text: MenuKnowledge}},
		},
		ResizeKeyboard: true,
	}
}
