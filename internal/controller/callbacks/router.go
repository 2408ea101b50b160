package callbacks

import (
	"context"
	"strings"

	"github.com/Freeeeeet/studio_booking_bot/internal/controller/callbacks/admin"
	"github.com/Freeeeeet/studio_booking_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/studio_booking_bot/internal/controller/callbacks/client"
	"github.com/Freeeeeet/studio_booking_bot/internal/controller/callbacks/common"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// Route распределяет callback query по соответствующим обработчикам
func Route(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	data := callback.Data

	switch {
	// ===== Общая навигация =====
	case data == common.BackToMain:
		common.HandleBackToMain(ctx, b, callback, h)
	case data == common.Noop:
		common.AnswerCallback(ctx, b, callback.ID, "")

	// ===== Клиент: запись =====
	case data == common.BookStart:
		client.HandleBookStart(ctx, b, callback, h)
	case strings.HasPrefix(data, common.BookService):
		client.HandleBookService(ctx, b, callback, h)
	case strings.HasPrefix(data, common.BookDate):
		client.HandleBookDate(ctx, b, callback, h)
	case strings.HasPrefix(data, common.BookTime):
		client.HandleBookTime(ctx, b, callback, h)
	case data == common.BookNotes:
		client.HandleBookNotes(ctx, b, callback, h)
	case data == common.BookConfirm:
		client.HandleBookConfirm(ctx, b, callback, h)
	case data == common.BookAbort:
		client.HandleBookAbort(ctx, b, callback, h)

	// ===== Клиент: свои записи =====
	case data == common.MyBookings:
		client.HandleMyBookings(ctx, b, callback, h)
	case strings.HasPrefix(data, common.CancelOwn):
		client.HandleCancelOwn(ctx, b, callback, h)
	case strings.HasPrefix(data, common.ConfirmOwn):
		client.HandleConfirmCancelOwn(ctx, b, callback, h)
	case data == common.ServicesList:
		client.HandleServicesList(ctx, b, callback, h)

	// ===== Администратор: записи =====
	case data == common.AdminPanel:
		admin.HandleAdminPanel(ctx, b, callback, h)
	case data == common.AdminPending:
		admin.HandlePending(ctx, b, callback, h)
	case data == common.AdminToday:
		admin.HandleToday(ctx, b, callback, h)
	case data == common.AdminTomorrow:
		admin.HandleTomorrow(ctx, b, callback, h)
	case strings.HasPrefix(data, common.AdminWeek):
		admin.HandleWeek(ctx, b, callback, h)
	case strings.HasPrefix(data, common.AdminAll):
		admin.HandleAll(ctx, b, callback, h)
	case data == common.AdminRecent:
		admin.HandleRecent(ctx, b, callback, h)
	case strings.HasPrefix(data, common.AdminConfirm):
		admin.HandleConfirm(ctx, b, callback, h)
	case strings.HasPrefix(data, common.AdminReject):
		admin.HandleReject(ctx, b, callback, h)

	// ===== Администратор: статистика и поиск =====
	case data == common.AdminStats:
		admin.HandleStats(ctx, b, callback, h)
	case strings.HasPrefix(data, common.AdminDaily):
		admin.HandleDaily(ctx, b, callback, h)
	case data == common.AdminSearch:
		admin.HandleSearch(ctx, b, callback, h)

	// ===== Администратор: сетка слотов =====
	case strings.HasPrefix(data, common.AdminGrid):
		admin.HandleGrid(ctx, b, callback, h)
	case strings.HasPrefix(data, common.GridToggle):
		admin.HandleGridToggle(ctx, b, callback, h)

	// ===== Администратор: рассылка =====
	case data == common.AdminBroadcast:
		admin.HandleBroadcast(ctx, b, callback, h)
	case strings.HasPrefix(data, common.BroadcastGroup):
		admin.HandleBroadcastGroup(ctx, b, callback, h)
	case data == common.BroadcastSend:
		admin.HandleBroadcastSend(ctx, b, callback, h)
	case data == common.BroadcastCancel:
		admin.HandleBroadcastCancel(ctx, b, callback, h)

	default:
		h.Logger.Warn("Unknown callback",
			zap.String("data", data),
			zap.Int64("user_id", callback.From.ID))
		common.AnswerCallback(ctx, b, callback.ID, "❌ Неизвестная команда")
	}
}
