package handlers

import (
	"context"

	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"github.com/rsidorov/fitcoach_bot/internal/controller/callbacks"
	"go.uber.org/zap"
)

// HandleCallbackQuery разбирает callback data и передаёт действие обработчику
func (h *Handlers) HandleCallbackQuery(ctx context.Context, b *bot.Bot, update *models.Update) {
	callback := update.CallbackQuery
	if callback == nil {
		return
	}

	action, err := callbacks.Decode(callback.Data)
	if err != nil {
		h.logger.Warn("Unknown callback data",
			zap.String("data", callback.Data),
			zap.Int64("telegram_id", callback.From.ID),
			zap.Error(err))
		h.answerCallback(ctx, b, callback.ID, "")
		return
	}

	switch action.Kind {
	case callbacks.KindApprovePayment:
		h.HandleApprovePayment(ctx, b, callback, action)
	case callbacks.KindRejectPayment:
		h.HandleRejectPayment(ctx, b, callback, action)
	case callbacks.KindAddMember:
		h.HandleAddMember(ctx, b, callback, action)
	case callbacks.KindFinishGroup:
		h.HandleFinishGroup(ctx, b, callback)
	case callbacks.KindSkipProgram:
		h.HandleSkipProgram(ctx, b, callback)
	case callbacks.KindProgressKind:
		h.HandleProgressKind(ctx, b, callback, action)
	case callbacks.KindDeleteItem:
		h.HandleDeleteItem(ctx, b, callback, action)
	case callbacks.KindAddItem:
		h.HandleAddItem(ctx, b, callback)
	case callbacks.KindPaySessions:
		h.HandlePaySessions(ctx, b, callback)
	default:
		h.logger.Warn("Unhandled callback kind",
			zap.String("kind", string(action.Kind)),
			zap.Int64("telegram_id", callback.From.ID))
		h.answerCallback(ctx, b, callback.ID, "")
	}
}
