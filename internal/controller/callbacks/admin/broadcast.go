package admin

import (
	"context"
	"fmt"
	"strings"

	"github.com/Freeeeeet/studio_booking_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/studio_booking_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/studio_booking_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/studio_booking_bot/internal/controller/state"
	"github.com/Freeeeeet/studio_booking_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// GroupTitle название группы рассылки
func GroupTitle(group model.ClientGroup) string {
	switch group {
	case model.ClientGroupAll:
		return "все клиенты"
	case model.ClientGroupToday:
		return "клиенты на сегодня"
	case model.ClientGroupTomorrow:
		return "клиенты на завтра"
	}
	return string(group)
}

// HandleBroadcast выбор группы получателей
func HandleBroadcast(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		hc.ClearState()

		kb := keyboard.NewBuilder()
		for _, group := range []model.ClientGroup{model.ClientGroupAll, model.ClientGroupToday, model.ClientGroupTomorrow} {
			kb.Row(keyboard.Button("👥 "+GroupTitle(group), common.BroadcastGroup+string(group)))
		}
		kb.AddBackButton(common.AdminPanel)

		hc.Show("📣 Рассылка\n\nКому отправить сообщение?", kb.Build())
		hc.Answer("")
	})
}

// HandleBroadcastGroup запоминает группу и ждёт текст
func HandleBroadcastGroup(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		group := model.ClientGroup(strings.TrimPrefix(callback.Data, common.BroadcastGroup))
		switch group {
		case model.ClientGroupAll, model.ClientGroupToday, model.ClientGroupTomorrow:
		default:
			hc.Fail(common.ErrInvalidFormat, "broadcast_group")
			return
		}

		hc.ClearState()
		hc.SetState(callbacktypes.UserState(state.StateBroadcastText))
		hc.SetData(state.KeyBroadcastGroup, string(group))

		hc.Show(
			fmt.Sprintf("📣 Получатели: %s\n\nНапишите текст рассылки одним сообщением.", GroupTitle(group)),
			keyboard.NewBuilder().Row(keyboard.CancelButton(common.BroadcastCancel)).Build(),
		)
		hc.Answer("")
	})
}

// BroadcastPreview экран подтверждения рассылки
func BroadcastPreview(group model.ClientGroup, text string) (string, *models.InlineKeyboardMarkup) {
	preview := fmt.Sprintf("📣 Получатели: %s\n\nТекст:\n%s\n\nОтправить?", GroupTitle(group), text)
	kb := keyboard.NewBuilder().
		Row(
			keyboard.Button("📤 Отправить", common.BroadcastSend),
			keyboard.CancelButton(common.BroadcastCancel),
		).
		Build()
	return preview, kb
}

// HandleBroadcastSend отправляет рассылку
func HandleBroadcastSend(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		group, okGroup := h.StateManager.GetString(hc.TelegramID, state.KeyBroadcastGroup)
		text, okText := h.StateManager.GetString(hc.TelegramID, state.KeyBroadcastText)
		if !okGroup || !okText || h.StateManager.GetState(hc.TelegramID) != callbacktypes.UserState(state.StateBroadcastReady) {
			hc.Fail(common.ErrDialogExpired, "broadcast_send")
			return
		}
		hc.ClearState()

		// Убираем кнопки, чтобы рассылку не отправили дважды
		hc.Show("📤 Отправляю...", nil)
		hc.Answer("")

		sent, failed, err := h.NotificationService.Broadcast(ctx, model.ClientGroup(group), text)
		if err != nil {
			hc.Fail(err, "broadcast")
			return
		}

		h.Logger.Info("Broadcast finished",
			zap.Int64("admin_id", hc.TelegramID),
			zap.String("group", group),
			zap.Int("sent", sent),
			zap.Int("failed", failed))

		hc.Show(
			fmt.Sprintf("📣 Рассылка завершена.\n\n✅ Доставлено: %d\n❌ Ошибок: %d", sent, failed),
			backToPanel(),
		)
	})
}

// HandleBroadcastCancel отменяет рассылку
func HandleBroadcastCancel(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		hc.ClearState()
		hc.Show("Рассылка отменена.", backToPanel())
		hc.Answer("")
	})
}
