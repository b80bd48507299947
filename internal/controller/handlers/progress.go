package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rsidorov/fitcoach_bot/internal/controller/callbacks"
	"github.com/rsidorov/fitcoach_bot/internal/controller/state"
	"github.com/rsidorov/fitcoach_bot/internal/model"
	"go.uber.org/zap"
)

// Порядковые номера видов прогресса в callback-кнопках
var progressKindByIndex = map[int64]model.ProgressKind{
	1: model.ProgressKindTraining,
	2: model.ProgressKindPhoto,
	3: model.ProgressKindNutrition,
}

var progressKindTitles = map[model.ProgressKind]string{
	model.ProgressKindTraining:  "🏋️ Тренировка",
	model.ProgressKindPhoto:     "📷 Фото формы",
	model.ProgressKindNutrition: "🍎 Питание",
}

// HandleProgressStart показывает выбор вида записи прогресса
func (h *Handlers) HandleProgressStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if _, ok := h.requireUser(ctx, b, update); !ok {
		return
	}

	keyboard := &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{{Text: progressKindTitles[model.ProgressKindTraining], CallbackData: callbacks.Action{Kind: callbacks.KindProgressKind, ID: 1}.Encode()}},
			{{Text: progressKindTitles[model.ProgressKindPhoto], CallbackData: callbacks.Action{Kind: callbacks.KindProgressKind, ID: 2}.Encode()}},
			{{Text: progressKindTitles[model.ProgressKindNutrition], CallbackData: callbacks.Action{Kind: callbacks.KindProgressKind, ID: 3}.Encode()}},
		},
	}

	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      update.Message.Chat.ID,
		Text:        "📊 Что хотите записать?",
		ReplyMarkup: keyboard,
	})
	if err != nil {
		h.logger.Error("Failed to send progress kind selection", zap.Error(err))
	}
}

// HandleNutritionStart — короткий путь из меню сразу к записи питания
func (h *Handlers) HandleNutritionStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	if _, ok := h.requireUser(ctx, b, update); !ok {
		return
	}

	h.startProgressDialog(ctx, b, update.Message.Chat.ID, update.Message.From.ID, model.ProgressKindNutrition)
}

// HandleProgressKind обрабатывает выбор вида записи
func (h *Handlers) HandleProgressKind(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, action callbacks.Action) {
	kind, ok := progressKindByIndex[action.ID]
	if !ok {
		h.answerCallbackAlert(ctx, b, callback.ID, "Неизвестный вид записи.")
		return
	}

	chatID, ok := callbackChatID(callback)
	if !ok {
		return
	}

	h.answerCallback(ctx, b, callback.ID, "")
	h.startProgressDialog(ctx, b, chatID, callback.From.ID, kind)
}

func (h *Handlers) startProgressDialog(ctx context.Context, b *bot.Bot, chatID, telegramID int64, kind model.ProgressKind) {
	h.stateManager.StartDialog(telegramID, state.StateProgressData)
	h.stateManager.SetData(telegramID, "progress_kind", string(kind))

	var prompt string
	switch kind {
	case model.ProgressKindPhoto:
		prompt = "Пришлите фото вашей формы. Можно добавить подпись.\n\nДля отмены используйте /cancel"
	case model.ProgressKindNutrition:
		prompt = "Опишите ваш рацион текстом или пришлите фото еды.\n\nДля отмены используйте /cancel"
	default:
		prompt = "Опишите тренировку: упражнения, подходы, веса.\n\nДля отмены используйте /cancel"
	}

	h.sendMessage(ctx, b, chatID, fmt.Sprintf("%s\n\n%s", progressKindTitles[kind], prompt))
}

// handleProgressTextStep сохраняет текстовую запись прогресса
func (h *Handlers) handleProgressTextStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg := update.Message
	telegramID := msg.From.ID

	user, kind, ok := h.progressDialogContext(ctx, b, msg.Chat.ID, telegramID)
	if !ok {
		return
	}

	content := strings.TrimSpace(msg.Text)
	if content == "" {
		h.sendError(ctx, b, msg.Chat.ID, "❌ Запись не может быть пустой. Попробуйте ещё раз:")
		return
	}

	if _, err := h.progressService.AddEntry(ctx, user.ID, kind, content, ""); err != nil {
		h.logger.Error("Failed to add progress entry",
			zap.Int64("user_id", user.ID),
			zap.String("kind", string(kind)),
			zap.Error(err))
		h.sendError(ctx, b, msg.Chat.ID, "❌ Не удалось сохранить запись. Попробуйте позже.")
		h.stateManager.ClearState(telegramID)
		return
	}

	h.stateManager.ClearState(telegramID)
	h.sendMessage(ctx, b, msg.Chat.ID, "✅ Запись сохранена!")
}

// handleProgressAttachmentStep сохраняет запись прогресса с фото или документом
func (h *Handlers) handleProgressAttachmentStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg := update.Message
	telegramID := msg.From.ID

	user, kind, ok := h.progressDialogContext(ctx, b, msg.Chat.ID, telegramID)
	if !ok {
		return
	}

	var (
		fileID   string
		filename string
	)
	switch {
	case len(msg.Photo) > 0:
		fileID = msg.Photo[len(msg.Photo)-1].FileID
		filename = "photo.jpg"
	case msg.Document != nil:
		fileID = msg.Document.FileID
		filename = msg.Document.FileName
	default:
		h.sendMessage(ctx, b, msg.Chat.ID, "Пришлите фото или документ, либо опишите запись текстом.")
		return
	}

	body, err := h.downloadTelegramFile(ctx, b, fileID)
	if err != nil {
		h.logger.Error("Failed to download progress attachment", zap.Int64("user_id", user.ID), zap.Error(err))
		h.sendError(ctx, b, msg.Chat.ID, "❌ Не удалось скачать файл. Пришлите его ещё раз.")
		return
	}
	defer body.Close()

	path, err := h.storage.Save(ctx, "progress", user.ID, filename, body)
	if err != nil {
		h.logger.Error("Failed to save progress attachment", zap.Int64("user_id", user.ID), zap.Error(err))
		h.sendError(ctx, b, msg.Chat.ID, "❌ Не удалось сохранить файл. Пришлите его ещё раз.")
		return
	}

	if _, err := h.progressService.AddEntry(ctx, user.ID, kind, strings.TrimSpace(msg.Caption), path); err != nil {
		h.logger.Error("Failed to add progress entry",
			zap.Int64("user_id", user.ID),
			zap.String("kind", string(kind)),
			zap.Error(err))
		h.sendError(ctx, b, msg.Chat.ID, "❌ Не удалось сохранить запись. Попробуйте позже.")
		h.stateManager.ClearState(telegramID)
		return
	}

	h.stateManager.ClearState(telegramID)
	h.sendMessage(ctx, b, msg.Chat.ID, "✅ Запись сохранена!")
}

// progressDialogContext достаёт пользователя и вид записи текущего диалога
func (h *Handlers) progressDialogContext(ctx context.Context, b *bot.Bot, chatID, telegramID int64) (*model.User, model.ProgressKind, bool) {
	user, err := h.userService.GetByTelegramID(ctx, telegramID)
	if err != nil || user == nil {
		h.sendError(ctx, b, chatID, "❌ Сначала выполните /start")
		h.stateManager.ClearState(telegramID)
		return nil, "", false
	}

	raw, ok := h.stateManager.GetString(telegramID, "progress_kind")
	if !ok {
		h.sendError(ctx, b, chatID, "❌ Данные диалога потеряны. Начните заново.")
		h.stateManager.ClearState(telegramID)
		return nil, "", false
	}

	return user, model.ProgressKind(raw), true
}
