package handlers

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rsidorov/fitcoach_bot/internal/controller/callbacks"
	"go.uber.org/zap"
)

// HandleTrainerSessions показывает баланс занятий и кнопку оплаты
func (h *Handlers) HandleTrainerSessions(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}

	keyboard := &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{{Text: "💳 Оплатить занятия", CallbackData: callbacks.Action{Kind: callbacks.KindPaySessions}.Encode()}},
		},
	}

	_, err := b.SendMessage(ctx, &bot.SendMessageParams{
		ChatID: update.Message.Chat.ID,
		Text: fmt.Sprintf("У вас осталось оплаченных занятий: %d.\n\n"+
			"Чтобы оплатить новые, нажмите кнопку ниже.", user.RemainingSessions),
		ReplyMarkup: keyboard,
	})
	if err != nil {
		h.logger.Error("Failed to send sessions info", zap.Error(err))
	}
}

// HandleStudentSchedule показывает расписания групп ученика
func (h *Handlers) HandleStudentSchedule(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}

	groups, err := h.groupService.GetStudentGroups(ctx, user.ID)
	if err != nil {
		h.logger.Error("Failed to get student groups", zap.Int64("user_id", user.ID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Не удалось получить расписание. Попробуйте позже.")
		return
	}

	if len(groups) == 0 {
		h.sendMessage(ctx, b, update.Message.Chat.ID,
			"Вы пока не состоите ни в одной группе. Обратитесь к тренеру.")
		return
	}

	var sb strings.Builder
	sb.WriteString("🗓 Ваше расписание:\n")
	for _, group := range groups {
		sb.WriteString(fmt.Sprintf("\nГруппа «%s»:\n", group.Name))
		if group.Schedule != nil && group.Schedule.Content != "" {
			sb.WriteString(group.Schedule.Content + "\n")
		} else {
			sb.WriteString("Расписание ещё не задано.\n")
		}
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID, sb.String())
}

// HandleStudentProgram отправляет файлы программ тренировок групп ученика
func (h *Handlers) HandleStudentProgram(ctx context.Context, b *bot.Bot, update *models.Update) {
	user, ok := h.requireUser(ctx, b, update)
	if !ok {
		return
	}

	groups, err := h.groupService.GetStudentGroups(ctx, user.ID)
	if err != nil {
		h.logger.Error("Failed to get student groups", zap.Int64("user_id", user.ID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Не удалось получить программу. Попробуйте позже.")
		return
	}

	sent := false
	for _, group := range groups {
		if group.ProgramPath == "" {
			continue
		}

		f, err := h.storage.Open(group.ProgramPath)
		if err != nil {
			h.logger.Warn("Failed to open program file",
				zap.Int64("group_id", group.ID),
				zap.String("path", group.ProgramPath),
				zap.Error(err))
			continue
		}

		_, err = b.SendDocument(ctx, &bot.SendDocumentParams{
			ChatID: update.Message.Chat.ID,
			Document: &models.InputFileUpload{
				Filename: filepath.Base(group.ProgramPath),
				Data:     f,
			},
			Caption: fmt.Sprintf("Программа группы «%s»", group.Name),
		})
		f.Close()

		if err != nil {
			h.logger.Error("Failed to send program document", zap.Int64("group_id", group.ID), zap.Error(err))
			continue
		}
		sent = true
	}

	if !sent {
		h.sendMessage(ctx, b, update.Message.Chat.ID,
			"Для ваших групп пока нет файла программы.")
	}
}
