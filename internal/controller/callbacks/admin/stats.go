package admin

import (
	"context"
	"strings"

	"github.com/Freeeeeet/studio_booking_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/studio_booking_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/studio_booking_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/studio_booking_bot/internal/controller/state"
	"github.com/Freeeeeet/studio_booking_bot/internal/formatting"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
)

// HandleStats общая статистика
func HandleStats(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		stats, err := h.BookingService.Statistics(ctx)
		if err != nil {
			hc.Fail(err, "statistics")
			return
		}
		hc.Show(formatting.Statistics(stats), backToPanel())
		hc.Answer("")
	})
}

// HandleDaily статистика за день с навигацией по дням
func HandleDaily(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		date, err := common.DecodeDate(strings.TrimPrefix(callback.Data, common.AdminDaily), h.Location)
		if err != nil {
			hc.Fail(err, "daily_statistics")
			return
		}

		stats, err := h.BookingService.DailyStatistics(ctx, date)
		if err != nil {
			hc.Fail(err, "daily_statistics")
			return
		}

		kb := keyboard.NewBuilder().
			Row(keyboard.StepPagination(common.AdminDaily,
				"Пред.", common.EncodeDate(date.AddDate(0, 0, -1)),
				"След.", common.EncodeDate(date.AddDate(0, 0, 1)))...).
			AddBackButton(common.AdminPanel).
			Build()

		hc.Show(formatting.DailyStatistics(stats), kb)
		hc.Answer("")
	})
}

// HandleSearch ждёт строку поиска текстовым сообщением
func HandleSearch(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		hc.ClearState()
		hc.SetState(callbacktypes.UserState(state.StateAdminSearch))
		hc.Show(
			"🔍 Введите имя клиента, @username или название услуги.\n\nОтмена: /cancel",
			backToPanel(),
		)
		hc.Answer("")
	})
}
