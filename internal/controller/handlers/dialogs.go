package handlers

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rsidorov/fitcoach_bot/internal/controller/callbacks"
	"github.com/rsidorov/fitcoach_bot/internal/controller/state"
	"github.com/rsidorov/fitcoach_bot/internal/service"
	"go.uber.org/zap"
)

// HandleCreateGroupStart начинает диалог создания группы
func (h *Handlers) HandleCreateGroupStart(ctx context.Context, b *bot.Bot, update *models.Update) {
	trainer, ok := h.requireTrainer(ctx, b, update)
	if !ok {
		return
	}

	telegramID := update.Message.From.ID

	h.logger.Info("Starting group creation",
		zap.Int64("telegram_id", telegramID),
		zap.Int64("trainer_id", trainer.ID))

	// Новый диалог перетирает любой предыдущий
	h.stateManager.StartDialog(telegramID, state.StateGroupName)

	h.sendMessage(ctx, b, update.Message.Chat.ID,
		"📝 Создание новой группы\n\n"+
			"Шаг 1 из 4: Введите название группы.\n\n"+
			"Для отмены используйте /cancel")
}

// handleGroupNameStep обрабатывает ввод названия группы
func (h *Handlers) handleGroupNameStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	trainer, ok := h.requireTrainer(ctx, b, update)
	if !ok {
		return
	}

	telegramID := update.Message.From.ID
	name := strings.TrimSpace(update.Message.Text)

	if utf8.RuneCountInString(name) < GroupNameMinLength {
		h.sendError(ctx, b, update.Message.Chat.ID,
			fmt.Sprintf("❌ Название слишком короткое. Минимум %d символа.\n\nПопробуйте ещё раз:", GroupNameMinLength))
		return
	}

	if utf8.RuneCountInString(name) > GroupNameMaxLength {
		h.sendError(ctx, b, update.Message.Chat.ID,
			fmt.Sprintf("❌ Название слишком длинное. Максимум %d символов.\n\nПопробуйте ещё раз:", GroupNameMaxLength))
		return
	}

	group, err := h.groupService.CreateGroup(ctx, name, trainer.ID)
	if err != nil {
		h.logger.Error("Failed to create group", zap.Int64("trainer_id", trainer.ID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Не удалось создать группу. Попробуйте позже.")
		h.stateManager.ClearState(telegramID)
		return
	}

	h.stateManager.SetData(telegramID, "group_id", group.ID)
	h.stateManager.SetState(telegramID, state.StateGroupSchedule)

	h.sendMessage(ctx, b, update.Message.Chat.ID,
		fmt.Sprintf("✅ Группа «%s» создана.\n\n"+
			"Шаг 2 из 4: Введите расписание группы свободным текстом.\n\n"+
			"Например: Пн/Ср 18:00\n\n"+
			"Для отмены используйте /cancel", name))
}

// handleGroupScheduleStep обрабатывает ввод расписания группы
func (h *Handlers) handleGroupScheduleStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	if _, ok := h.requireTrainer(ctx, b, update); !ok {
		return
	}

	telegramID := update.Message.From.ID
	content := strings.TrimSpace(update.Message.Text)

	if content == "" {
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Расписание не может быть пустым.\n\nПопробуйте ещё раз:")
		return
	}

	groupID, ok := h.stateManager.GetInt64(telegramID, "group_id")
	if !ok {
		h.logger.Error("Missing group_id in schedule step", zap.Int64("telegram_id", telegramID))
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Данные диалога потеряны. Начните заново.")
		h.stateManager.ClearState(telegramID)
		return
	}

	if _, err := h.groupService.SetSchedule(ctx, groupID, content); err != nil {
		h.logger.Error("Failed to set schedule", zap.Int64("group_id", groupID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Не удалось сохранить расписание. Попробуйте ещё раз:")
		return
	}

	h.stateManager.SetState(telegramID, state.StateGroupProgram)

	keyboard := &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{{Text: "Пропустить", CallbackData: callbacks.Action{Kind: callbacks.KindSkipProgram}.Encode()}},
		},
	}

	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text: "✅ Расписание сохранено.\n\n" +
			"Шаг 3 из 4: Пришлите файл программы тренировок документом или пропустите этот шаг.",
		ReplyMarkup: keyboard,
	})
	if err != nil {
		h.logger.Error("Failed to send program step prompt", zap.Error(err))
	}
}

// handleGroupProgramStep обрабатывает загрузку файла программы
func (h *Handlers) handleGroupProgramStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	trainer, ok := h.requireTrainer(ctx, b, update)
	if !ok {
		return
	}

	msg := update.Message
	telegramID := msg.From.ID

	if msg.Document == nil {
		h.sendMessage(ctx, b, msg.Chat.ID, "Пришлите программу документом или нажмите «Пропустить».")
		return
	}

	groupID, ok := h.stateManager.GetInt64(telegramID, "group_id")
	if !ok {
		h.sendError(ctx, b, msg.Chat.ID, "❌ Данные диалога потеряны. Начните заново.")
		h.stateManager.ClearState(telegramID)
		return
	}

	body, err := h.downloadTelegramFile(ctx, b, msg.Document.FileID)
	if err != nil {
		h.logger.Error("Failed to download program file", zap.Int64("group_id", groupID), zap.Error(err))
		h.sendError(ctx, b, msg.Chat.ID, "❌ Не удалось скачать файл. Пришлите его ещё раз.")
		return
	}
	defer body.Close()

	path, err := h.storage.Save(ctx, "programs", trainer.ID, msg.Document.FileName, body)
	if err != nil {
		h.logger.Error("Failed to save program file", zap.Int64("group_id", groupID), zap.Error(err))
		h.sendError(ctx, b, msg.Chat.ID, "❌ Не удалось сохранить файл. Пришлите его ещё раз.")
		return
	}

	if err := h.groupService.SetProgram(ctx, groupID, path); err != nil {
		h.logger.Error("Failed to attach program to group", zap.Int64("group_id", groupID), zap.Error(err))
		h.sendError(ctx, b, msg.Chat.ID, "❌ Не удалось сохранить программу. Пришлите файл ещё раз.")
		return
	}

	h.sendMessage(ctx, b, msg.Chat.ID, "✅ Программа сохранена.")
	h.showStudentSelection(ctx, b, msg.Chat.ID, telegramID)
}

// HandleSkipProgram обрабатывает пропуск шага с программой
func (h *Handlers) HandleSkipProgram(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	if _, ok := h.requireTrainerCallback(ctx, b, callback); !ok {
		return
	}

	telegramID := callback.From.ID

	if h.stateManager.GetState(telegramID) != state.StateGroupProgram {
		h.answerCallbackAlert(ctx, b, callback.ID, "Этот шаг уже пройден.")
		return
	}

	chatID, ok := callbackChatID(callback)
	if !ok {
		return
	}

	h.answerCallback(ctx, b, callback.ID, "Шаг пропущен")
	h.showStudentSelection(ctx, b, chatID, telegramID)
}

// showStudentSelection переводит диалог на шаг выбора учеников
func (h *Handlers) showStudentSelection(ctx context.Context, b *bot.Bot, chatID, telegramID int64) {
	students, err := h.userService.GetStudents(ctx)
	if err != nil {
		h.logger.Error("Failed to get students for selection", zap.Error(err))
		h.sendError(ctx, b, chatID, "❌ Не удалось получить список учеников. Попробуйте позже.")
		h.stateManager.ClearState(telegramID)
		return
	}

	if len(students) == 0 {
		h.sendMessage(ctx, b, chatID, "Нет зарегистрированных учеников. Группа создана пустой.")
		h.stateManager.ClearState(telegramID)
		return
	}

	h.stateManager.SetState(telegramID, state.StateGroupStudents)

	var rows [][]models.InlineKeyboardButton
	for _, s := range students {
		rows = append(rows, []models.InlineKeyboardButton{{
			Text:         s.DisplayName(),
			CallbackData: callbacks.Action{Kind: callbacks.KindAddMember, ID: s.ID}.Encode(),
		}})
	}
	rows = append(rows, []models.InlineKeyboardButton{{
		Text:         "Завершить выбор",
		CallbackData: callbacks.Action{Kind: callbacks.KindFinishGroup}.Encode(),
	}})

	_, err = b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID:      chatID,
		Text:        "Шаг 4 из 4: Выберите учеников для добавления в группу:",
		ReplyMarkup: &models.InlineKeyboardMarkup{InlineKeyboard: rows},
	})
	if err != nil {
		h.logger.Error("Failed to send student selection", zap.Error(err))
	}
}

// HandleAddMember добавляет выбранного ученика в создаваемую группу
func (h *Handlers) HandleAddMember(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, action callbacks.Action) {
	if _, ok := h.requireTrainerCallback(ctx, b, callback); !ok {
		return
	}

	telegramID := callback.From.ID

	groupID, ok := h.stateManager.GetInt64(telegramID, "group_id")
	if !ok {
		h.answerCallbackAlert(ctx, b, callback.ID, "Диалог создания группы уже завершён.")
		return
	}

	student, err := h.groupService.AddMember(ctx, groupID, action.ID)
	switch {
	case errors.Is(err, service.ErrAlreadyMember):
		h.answerCallback(ctx, b, callback.ID, fmt.Sprintf("Ученик %s уже в группе.", student.FirstName))
	case errors.Is(err, service.ErrNotFound):
		h.answerCallbackAlert(ctx, b, callback.ID, "Ошибка: группа или ученик не найдены.")
	case err != nil:
		h.logger.Error("Failed to add member",
			zap.Int64("group_id", groupID),
			zap.Int64("student_id", action.ID),
			zap.Error(err))
		h.answerCallbackAlert(ctx, b, callback.ID, "❌ Не удалось добавить ученика.")
	default:
		h.answerCallback(ctx, b, callback.ID, fmt.Sprintf("Ученик %s добавлен.", student.FirstName))
	}
}

// HandleFinishGroup завершает выбор учеников и показывает итог
func (h *Handlers) HandleFinishGroup(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	if _, ok := h.requireTrainerCallback(ctx, b, callback); !ok {
		return
	}

	telegramID := callback.From.ID

	groupID, ok := h.stateManager.GetInt64(telegramID, "group_id")
	if !ok {
		h.answerCallbackAlert(ctx, b, callback.ID, "Диалог создания группы уже завершён.")
		return
	}

	group, err := h.groupService.GetGroup(ctx, groupID)
	if err != nil {
		h.logger.Error("Failed to load group summary", zap.Int64("group_id", groupID), zap.Error(err))
		h.answerCallbackAlert(ctx, b, callback.ID, "❌ Не удалось получить группу.")
		h.stateManager.ClearState(telegramID)
		return
	}

	h.stateManager.ClearState(telegramID)
	h.answerCallback(ctx, b, callback.ID, "Группа сформирована")

	chatID, ok := callbackChatID(callback)
	if !ok {
		return
	}

	h.sendMessage(ctx, b, chatID,
		fmt.Sprintf("✅ Группа «%s» сформирована. Учеников: %d.", group.Name, len(group.Members)))
}
