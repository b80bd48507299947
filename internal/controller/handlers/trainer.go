package handlers

import (
	"context"
	"fmt"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rsidorov/fitcoach_bot/internal/controller/callbacks"
	"go.uber.org/zap"
)

// HandleViewStudents показывает тренеру профили всех учеников
func (h *Handlers) HandleViewStudents(ctx context.Context, b *bot.Bot, update *models.Update) {
	_, ok := h.requireTrainer(ctx, b, update)
	if !ok {
		return
	}

	students, err := h.userService.GetStudents(ctx)
	if err != nil {
		h.logger.Error("Failed to get students", zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Не удалось получить список учеников.")
		return
	}

	if len(students) == 0 {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "Нет зарегистрированных учеников.")
		return
	}

	var sb strings.Builder
	sb.WriteString("Профили учеников:\n")
	for _, student := range students {
		sb.WriteString(fmt.Sprintf("\n%s — оплачено занятий: %d",
			student.DisplayName(), student.RemainingSessions))
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID, sb.String())
}

// HandleViewGroups показывает тренеру его группы с участниками
func (h *Handlers) HandleViewGroups(ctx context.Context, b *bot.Bot, update *models.Update) {
	trainer, ok := h.requireTrainer(ctx, b, update)
	if !ok {
		return
	}

	groups, err := h.groupService.GetTrainerGroups(ctx, trainer.ID)
	if err != nil {
		h.logger.Error("Failed to get trainer groups", zap.Int64("trainer_id", trainer.ID), zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Не удалось получить список групп.")
		return
	}

	if len(groups) == 0 {
		h.sendMessage(ctx, b, update.Message.Chat.ID,
			"У вас нет созданных групп. Используйте «"+MenuCreateGroup+"».")
		return
	}

	var parts []string
	for _, group := range groups {
		var members string
		if len(group.Members) == 0 {
			members = "Нет учеников"
		} else {
			var names []string
			for _, m := range group.Members {
				names = append(names, m.DisplayName())
			}
			members = strings.Join(names, ", ")
		}
		parts = append(parts, fmt.Sprintf("ID: %d, Название: %s\nУченики: %s", group.ID, group.Name, members))
	}

	h.sendMessage(ctx, b, update.Message.Chat.ID, "Ваши группы:\n\n"+strings.Join(parts, "\n\n"))
}

// HandlePendingPayments показывает нерешённые заявки на оплату
func (h *Handlers) HandlePendingPayments(ctx context.Context, b *bot.Bot, update *models.Update) {
	_, ok := h.requireTrainer(ctx, b, update)
	if !ok {
		return
	}

	requests, err := h.paymentService.GetPending(ctx)
	if err != nil {
		h.logger.Error("Failed to get pending payments", zap.Error(err))
		h.sendError(ctx, b, update.Message.Chat.ID, "❌ Не удалось получить заявки.")
		return
	}

	if len(requests) == 0 {
		h.sendMessage(ctx, b, update.Message.Chat.ID, "Нерешённых заявок на оплату нет.")
		return
	}

	for _, request := range requests {
		studentName := "неизвестный ученик"
		if request.Student != nil {
			studentName = request.Student.DisplayName()
		}

		keyboard := paymentDecisionKeyboard(request.ID)

		_, err := b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID: update.Message.Chat.ID,
			Text: fmt.Sprintf("Заявка #%d\nУченик: %s\nЗанятий: %d\nСоздана: %s",
				request.ID, studentName, request.SessionsRequested,
				request.CreatedAt.Format("02.01.2006 15:04")),
			ReplyMarkup: keyboard,
		})
		if err != nil {
			h.logger.Error("Failed to send pending payment", zap.Int64("request_id", request.ID), zap.Error(err))
		}
	}
}

// paymentDecisionKeyboard — кнопки решения по заявке
func paymentDecisionKeyboard(requestID int64) *models.InlineKeyboardMarkup {
	return &models.InlineKeyboardMarkup{
		InlineKeyboard: [][]models.InlineKeyboardButton{
			{
				{Text: "✅ Одобрить", CallbackData: callbacks.Action{Kind: callbacks.KindApprovePayment, ID: requestID}.Encode()},
				{Text: "❌ Отклонить", CallbackData: callbacks.Action{Kind: callbacks.KindRejectPayment, ID: requestID}.Encode()},
			},
		},
	}
}
