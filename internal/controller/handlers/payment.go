package handlers

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rsidorov/fitcoach_bot/internal/controller/callbacks"
	"github.com/rsidorov/fitcoach_bot/internal/controller/state"
	"github.com/rsidorov/fitcoach_bot/internal/model"
	"github.com/rsidorov/fitcoach_bot/internal/service"
	"go.uber.org/zap"
)

// HandlePaySessions начинает диалог оплаты занятий
func (h *Handlers) HandlePaySessions(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery) {
	telegramID := callback.From.ID

	user, err := h.userService.GetByTelegramID(ctx, telegramID)
	if err != nil || user == nil {
		h.answerCallbackAlert(ctx, b, callback.ID, "Сначала выполните /start")
		return
	}

	chatID, ok := callbackChatID(callback)
	if !ok {
		return
	}

	h.stateManager.StartDialog(telegramID, state.StatePaymentProof)
	h.answerCallback(ctx, b, callback.ID, "")

	h.sendMessage(ctx, b, chatID,
		"💳 Оплата занятий\n\n"+
			"Пришлите фото чека об оплате.\n\n"+
			"Для отмены используйте /cancel")
}

// handlePaymentProofStep обрабатывает фото чека
func (h *Handlers) handlePaymentProofStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg := update.Message
	telegramID := msg.From.ID

	if len(msg.Photo) == 0 {
		h.sendMessage(ctx, b, msg.Chat.ID, "Пришлите чек фотографией.")
		return
	}

	user, err := h.userService.GetByTelegramID(ctx, telegramID)
	if err != nil || user == nil {
		h.sendError(ctx, b, msg.Chat.ID, "❌ Сначала выполните /start")
		h.stateManager.ClearState(telegramID)
		return
	}

	// Последний элемент — самое большое разрешение
	photo := msg.Photo[len(msg.Photo)-1]

	body, err := h.downloadTelegramFile(ctx, b, photo.FileID)
	if err != nil {
		h.logger.Error("Failed to download payment proof", zap.Int64("telegram_id", telegramID), zap.Error(err))
		h.sendError(ctx, b, msg.Chat.ID, "❌ Не удалось скачать фото. Пришлите его ещё раз.")
		return
	}
	defer body.Close()

	path, err := h.storage.Save(ctx, "payments", user.ID, "proof.jpg", body)
	if err != nil {
		h.logger.Error("Failed to save payment proof", zap.Int64("user_id", user.ID), zap.Error(err))
		h.sendError(ctx, b, msg.Chat.ID, "❌ Не удалось сохранить фото. Пришлите его ещё раз.")
		return
	}

	h.stateManager.SetData(telegramID, "payment_proof_path", path)
	h.stateManager.SetState(telegramID, state.StatePaymentCount)

	h.sendMessage(ctx, b, msg.Chat.ID,
		fmt.Sprintf("✅ Чек получен.\n\nСколько занятий вы оплатили? Введите число от 1 до %d.", MaxSessionsPerPayment))
}

// handlePaymentCountStep обрабатывает количество оплаченных занятий
func (h *Handlers) handlePaymentCountStep(ctx context.Context, b *bot.Bot, update *models.Update) {
	msg := update.Message
	telegramID := msg.From.ID

	count, err := strconv.Atoi(strings.TrimSpace(msg.Text))
	if err != nil || count < 1 || count > MaxSessionsPerPayment {
		h.sendError(ctx, b, msg.Chat.ID,
			fmt.Sprintf("❌ Введите число от 1 до %d:", MaxSessionsPerPayment))
		return
	}

	user, err := h.userService.GetByTelegramID(ctx, telegramID)
	if err != nil || user == nil {
		h.sendError(ctx, b, msg.Chat.ID, "❌ Сначала выполните /start")
		h.stateManager.ClearState(telegramID)
		return
	}

	proofPath, ok := h.stateManager.GetString(telegramID, "payment_proof_path")
	if !ok {
		h.sendError(ctx, b, msg.Chat.ID, "❌ Данные диалога потеряны. Начните заново.")
		h.stateManager.ClearState(telegramID)
		return
	}

	request, err := h.paymentService.SubmitRequest(ctx, user.ID, count, proofPath)
	if err != nil {
		h.logger.Error("Failed to submit payment request", zap.Int64("user_id", user.ID), zap.Error(err))
		h.sendError(ctx, b, msg.Chat.ID, "❌ Не удалось отправить заявку. Попробуйте позже.")
		h.stateManager.ClearState(telegramID)
		return
	}

	h.stateManager.ClearState(telegramID)
	h.sendMessage(ctx, b, msg.Chat.ID,
		fmt.Sprintf("✅ Заявка на %d занятий отправлена тренеру. Ожидайте подтверждения.", count))

	h.notifyTrainersAboutPayment(ctx, b, user, request)
}

// notifyTrainersAboutPayment рассылает тренерам заявку с кнопками решения
func (h *Handlers) notifyTrainersAboutPayment(ctx context.Context, b *bot.Bot, student *model.User, request *model.PaymentRequest) {
	trainers, err := h.userService.GetTrainers(ctx)
	if err != nil {
		h.logger.Error("Failed to get trainers for payment notification",
			zap.Int64("request_id", request.ID), zap.Error(err))
		return
	}

	text := fmt.Sprintf("💳 Новая заявка на оплату\n\nУченик: %s\nЗанятий: %d",
		student.DisplayName(), request.SessionsRequested)

	for _, trainer := range trainers {
		_, err := b.SendMessage(ctx, &bot.SendMessageParams{
			ChatID:      trainer.TelegramID,
			Text:        text,
			ReplyMarkup: paymentDecisionKeyboard(request.ID),
		})
		if err != nil {
			h.logger.Error("Failed to notify trainer about payment",
				zap.Int64("trainer_id", trainer.ID),
				zap.Int64("request_id", request.ID),
				zap.Error(err))
		}
	}
}

// HandleApprovePayment подтверждает заявку и начисляет занятия
func (h *Handlers) HandleApprovePayment(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, action callbacks.Action) {
	h.decidePayment(ctx, b, callback, action.ID, model.PaymentStatusApproved)
}

// HandleRejectPayment отклоняет заявку
func (h *Handlers) HandleRejectPayment(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, action callbacks.Action) {
	h.decidePayment(ctx, b, callback, action.ID, model.PaymentStatusRejected)
}

func (h *Handlers) decidePayment(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, requestID int64, status model.PaymentStatus) {
	if _, ok := h.requireTrainerCallback(ctx, b, callback); !ok {
		return
	}

	var (
		request *model.PaymentRequest
		err     error
	)
	if status == model.PaymentStatusApproved {
		request, err = h.paymentService.Approve(ctx, requestID)
	} else {
		request, err = h.paymentService.Reject(ctx, requestID)
	}

	switch {
	case errors.Is(err, service.ErrAlreadyProcessed):
		h.answerCallbackAlert(ctx, b, callback.ID, "Заявка уже обработана другим тренером.")
		return
	case errors.Is(err, service.ErrNotFound):
		h.answerCallbackAlert(ctx, b, callback.ID, "Заявка не найдена.")
		return
	case err != nil:
		h.logger.Error("Failed to decide payment request",
			zap.Int64("request_id", requestID),
			zap.String("status", string(status)),
			zap.Error(err))
		h.answerCallbackAlert(ctx, b, callback.ID, "❌ Не удалось обработать заявку.")
		return
	}

	h.answerCallback(ctx, b, callback.ID, "Готово")

	if chatID, ok := callbackChatID(callback); ok {
		var summary string
		if status == model.PaymentStatusApproved {
			summary = fmt.Sprintf("✅ Заявка #%d одобрена, начислено %d занятий.", request.ID, request.SessionsRequested)
		} else {
			summary = fmt.Sprintf("❌ Заявка #%d отклонена.", request.ID)
		}
		h.sendMessage(ctx, b, chatID, summary)
	}

	h.notifyStudentAboutDecision(ctx, b, request, status)
}

func (h *Handlers) notifyStudentAboutDecision(ctx context.Context, b *bot.Bot, request *model.PaymentRequest, status model.PaymentStatus) {
	student, err := h.userService.GetByID(ctx, request.StudentID)
	if err != nil || student == nil {
		h.logger.Error("Failed to get student for payment notification",
			zap.Int64("student_id", request.StudentID), zap.Error(err))
		return
	}

	var text string
	if status == model.PaymentStatusApproved {
		text = fmt.Sprintf("✅ Оплата подтверждена! Начислено занятий: %d.", request.SessionsRequested)
	} else {
		text = "❌ Заявка на оплату отклонена. Свяжитесь с тренером."
	}

	h.sendMessage(ctx, b, student.TelegramID, text)
}
