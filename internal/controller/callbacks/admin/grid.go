package admin

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Freeeeeet/studio_booking_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/studio_booking_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/studio_booking_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/studio_booking_bot/internal/formatting"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleGrid сетка слотов дня: нажатие на свободный слот блокирует его и наоборот
func HandleGrid(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		date, err := common.DecodeDate(strings.TrimPrefix(callback.Data, common.AdminGrid), h.Location)
		if err != nil {
			hc.Fail(err, "grid")
			return
		}
		showGrid(hc, date)
		hc.Answer("")
	})
}

// HandleGridToggle меняет ручную доступность слота
func HandleGridToggle(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		args, err := common.ParseArgs(callback.Data, common.GridToggle, 2)
		if err != nil {
			hc.Fail(err, "grid_toggle")
			return
		}
		date, err := common.DecodeDate(args[0], h.Location)
		if err != nil {
			hc.Fail(err, "grid_toggle")
			return
		}
		tod, err := common.DecodeTime(args[1])
		if err != nil {
			hc.Fail(err, "grid_toggle")
			return
		}

		slots, err := h.GridService.DayGrid(ctx, date)
		if err != nil {
			hc.Fail(err, "grid_toggle")
			return
		}

		for _, slot := range slots {
			if slot.Time != tod {
				continue
			}
			if slot.BookingID != nil {
				hc.AnswerAlert(fmt.Sprintf("Слот занят записью #%d", *slot.BookingID))
				return
			}

			if err := h.GridService.SetAvailable(ctx, date, tod, !slot.Available); err != nil {
				hc.Fail(err, "set_available")
				return
			}

			h.Logger.Info("Slot availability changed",
				zap.Int64("admin_id", hc.TelegramID),
				zap.String("date", common.EncodeDate(date)),
				zap.String("time", tod.String()),
				zap.Bool("available", !slot.Available))

			showGrid(hc, date)
			if slot.Available {
				hc.Answer("⛔️ " + tod.String() + " заблокировано")
			} else {
				hc.Answer("🟢 " + tod.String() + " открыто")
			}
			return
		}

		hc.AnswerAlert("❌ Слот не найден")
	})
}

func showGrid(hc *common.HandlerContext, date time.Time) {
	h := hc.Handler

	slots, err := h.GridService.DayGrid(hc.Ctx, date)
	if err != nil {
		hc.Fail(err, "day_grid")
		return
	}

	nav := keyboard.StepPagination(common.AdminGrid,
		"Пред.", common.EncodeDate(date.AddDate(0, 0, -1)),
		"След.", common.EncodeDate(date.AddDate(0, 0, 1)))

	header := fmt.Sprintf("🧩 %s\n\n🟢 свободно  🔴 запись  ⛔️ заблокировано", formatting.FormatDateWithWeekday(date))

	if len(slots) == 0 {
		hc.Show(header+"\n\nНа этот день сетка не построена (выходной).",
			keyboard.NewBuilder().Row(nav...).AddBackButton(common.AdminPanel).Build())
		return
	}

	buttons := make([]models.InlineKeyboardButton, 0, len(slots))
	for _, slot := range slots {
		buttons = append(buttons, keyboard.Button(
			fmt.Sprintf("%s %s", formatting.SlotDisplay(slot), slot.Time),
			fmt.Sprintf("%s%s:%s", common.GridToggle, common.EncodeDate(date), common.EncodeTime(slot.Time)),
		))
	}

	kb := keyboard.NewBuilder().
		Grid(buttons, 4).
		Row(nav...).
		AddBackButton(common.AdminPanel).
		Build()

	hc.Show(header, kb)
}
