package handlers

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rsidorov/fitcoach_bot/internal/controller/callbacks"
	"github.com/rsidorov/fitcoach_bot/internal/controller/state"
	"github.com/rsidorov/fitcoach_bot/internal/model"
	"github.com/rsidorov/fitcoach_bot/internal/service"
	"go.uber.org/zap"
)

// HandleKnowledge показывает базу знаний.
// Ученик видит материалы, тренер дополнительно управляет ими.
func (h *Handlers) HandleKnowledge(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}

	chatID := update.Message.Chat.ID

	items, err := h.knowledgeService.List(ctx)
	if err != nil {
		h.logger.Error("Failed to list knowledge items", zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Не удалось получить базу знаний. Попробуйте позже.")
		return
	}

	if user.IsTrainer {
		h.showKnowledgeManagement(ctx, b, chatID, items)
		return
	}

	if len(items) == 0 {
		h.sendMessage(ctx, b, chatID, "📚 База знаний пока пуста.")
		return
	}

	for _, item := range items {
		h.sendKnowledgeItem(ctx, b, chatID, item)
	}
}

// sendKnowledgeItem отправляет один материал: текст сообщением, файлы документами
func (h *Handlers) sendKnowledgeItem(ctx context.Context, b *bot.Bot, chatID int64, item *model.KnowledgeItem) {
	if item.Kind == model.KnowledgeKindText {
		h.sendMessage(ctx, b, chatID, fmt.Sprintf("📚 %s", item.Content))
		return
	}

	file, err := h.storage.Open(item.FilePath)
	if err != nil {
		h.logger.Error("Failed to open knowledge file",
			zap.Int64("item_id", item.ID),
			zap.String("path", item.FilePath),
			zap.Error(err))
		return
	}
	defer file.Close()

	_, err = b.SendDocument(ctx, &bot.SendDocumentParams{
		ChatID: chatID,
		Document: &models.InputFileUpload{
			Filename: filepath.Base(item.FilePath),
			Data:     file,
		},
	})
	if err != nil {
		h.logger.Error("Failed to send knowledge file", zap.Int64("item_id", item.ID), zap.Error(err))
	}
}

// showKnowledgeManagement показывает тренеру список материалов с кнопками удаления
func (h *Handlers) showKnowledgeManagement(ctx context.Context, b *bot.Bot, chatID int64, items []*model.KnowledgeItem) {
	var rows [][]models.InlineKeyboardButton
	for _, item := range items {
		rows = append(rows, []models.InlineKeyboardButton{{
			Text:         fmt.Sprintf("🗑 %s", knowledgeItemLabel(item)),
			CallbackData: callbacks.Action{Kind: callbacks.KindDeleteItem, ID: item.ID}.Encode(),
		}})
	}
	rows = append(rows, []models.InlineKeyboardButton{{
		Text:         "➕ Добавить материал",
		CallbackData: callbacks.Action{Kind: callbacks.KindAddItem}.Encode(),
	}})

	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        fmt.Sprintf("📚 База знаний: %d материалов.\n\nНажмите на материал чтобы удалить его:", len(items)),
		ReplyMarkup: &models.InlineKeyboardMarkup{InlineKeyboard: rows},
	})
	if err != nil {
		h.logger.Error("Failed to send knowledge management", zap.Error(err))
	}
}

// knowledgeItemLabel — короткая подпись материала для кнопки
func knowledgeItemLabel(item *model.KnowledgeItem) string {
	if item.Kind == model.KnowledgeKindText {
		const maxLabel = 40
		label := []rune(item.Content)
		if len(label) > maxLabel {
			return string(label[:maxLabel]) + "…"
		}
		return item.Content
	}
	return filepath.Base(item.FilePath)
}

// HandleAddItem начинает диалог добавления материала
func (h *Handlers) HandleAddItem(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	if _, ok := h.requireTrainerCallback(ctx, b, callback); !ok {
		return
	}

	chatID, ok := callbackChatID(callback)
	if !ok {
		return
	}

	h.stateManager.StartDialog(callback.From.ID, state.StateKnowledgeContent)
	h.answerCallback(ctx, b, callback.ID, "")

	h.sendMessage(ctx, b, chatID,
		"📚 Добавление материала\n\n"+
			"Пришлите текст, документ или фото.\n\n"+
			"Для отмены используйте /cancel")
}

// handleKnowledgeTextStep сохраняет текстовый материал
func (h *Handlers) handleKnowledgeTextStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	if _, ok := h.requireTrainer(ctx, b, update); !ok {
		return
	}

	msg := update.Message
	telegramID := msg.From.ID

	content := strings.TrimSpace(msg.Text)
	if content == "" {
		h.sendError(ctx, b, msg.Chat.ID, "❌ Материал не может быть пустым. Попробуйте ещё раз:")
		return
	}

	if _, err := h.knowledgeService.AddText(ctx, content); err != nil {
		h.logger.Error("Failed to add knowledge text", zap.Error(err))
		h.sendError(ctx, b, msg.Chat.ID, "❌ Не удалось сохранить материал. Попробуйте позже.")
		h.stateManager.ClearState(telegramID)
		return
	}

	h.stateManager.ClearState(telegramID)
	h.sendMessage(ctx, b, msg.Chat.ID, "✅ Материал добавлен в базу знаний.")
}

// handleKnowledgeAttachmentStep сохраняет материал-файл или материал-фото
func (h *Handlers) handleKnowledgeAttachmentStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	trainer, ok := h.requireTrainer(ctx, b, update)
	if !ok {
		return
	}

	msg := update.Message
	telegramID := msg.From.ID

	var (
		fileID   string
		filename string
		isImage  bool
	)
	switch {
	case msg.Document != nil:
		fileID = msg.Document.FileID
		filename = msg.Document.FileName
	case len(msg.Photo) > 0:
		fileID = msg.Photo[len(msg.Photo)-1].FileID
		filename = "image.jpg"
		isImage = true
	default:
		h.sendMessage(ctx, b, msg.Chat.ID, "Пришлите текст, документ или фото.")
		return
	}

	body, err := h.downloadTelegramFile(ctx, b, fileID)
	if err != nil {
		h.logger.Error("Failed to download knowledge file", zap.Error(err))
		h.sendError(ctx, b, msg.Chat.ID, "❌ Не удалось скачать файл. Пришлите его ещё раз.")
		return
	}
	defer body.Close()

	path, err := h.storage.Save(ctx, "knowledge", trainer.ID, filename, body)
	if err != nil {
		h.logger.Error("Failed to save knowledge file", zap.Error(err))
		h.sendError(ctx, b, msg.Chat.ID, "❌ Не удалось сохранить файл. Пришлите его ещё раз.")
		return
	}

	if isImage {
		_, err = h.knowledgeService.AddImage(ctx, path)
	} else {
		_, err = h.knowledgeService.AddFile(ctx, path)
	}
	if err != nil {
		h.logger.Error("Failed to add knowledge item", zap.String("path", path), zap.Error(err))
		h.sendError(ctx, b, msg.Chat.ID, "❌ Не удалось сохранить материал. Попробуйте позже.")
		h.stateManager.ClearState(telegramID)
		return
	}

	h.stateManager.ClearState(telegramID)
	h.sendMessage(ctx, b, msg.Chat.ID, "✅ Материал добавлен в базу знаний.")
}

// HandleDeleteItem удаляет материал из базы знаний
func (h *Handlers) HandleDeleteItem(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, action callbacks.Action) {
	if _, ok := h.requireTrainerCallback(ctx, b, callback); !ok {
		return
	}

	err := h.knowledgeService.Delete(ctx, action.ID)
	switch {
	case errors.Is(err, service.ErrNotFound):
		h.answerCallbackAlert(ctx, b, callback.ID, "Материал уже удалён.")
	case err != nil:
		h.logger.Error("Failed to delete knowledge item", zap.Int64("item_id", action.ID), zap.Error(err))
		h.answerCallbackAlert(ctx, b, callback.ID, "❌ Не удалось удалить материал.")
	default:
		h.answerCallback(ctx, b, callback.ID, "Материал удалён")
	}
}
