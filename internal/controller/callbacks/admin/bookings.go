package admin

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/Freeeeeet/studio_booking_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/studio_booking_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/studio_booking_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/studio_booking_bot/internal/formatting"
	"github.com/Freeeeeet/studio_booking_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

const (
	pageSize    = 10
	recentCount = 10
)

// HandlePending присылает каждую ожидающую запись отдельным сообщением с кнопками
func HandlePending(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		bookings, err := h.BookingService.Pending(ctx)
		if err != nil {
			hc.Fail(err, "pending")
			return
		}

		if len(bookings) == 0 {
			hc.Show("✅ Нет записей, ожидающих подтверждения.", backToPanel())
			hc.Answer("")
			return
		}

		hc.Answer(fmt.Sprintf("%d %s", len(bookings), formatting.PluralizeBookings(len(bookings))))
		for _, d := range bookings {
			if err := hc.SendMessage(formatting.AdminBookingCard(d), decisionKeyboard(d.ID)); err != nil {
				h.Logger.Error("Failed to send pending booking",
					zap.Int64("booking_id", d.ID),
					zap.Error(err))
			}
		}
	})
}

func decisionKeyboard(bookingID int64) *models.InlineKeyboardMarkup {
	return keyboard.NewBuilder().
		Row(
			keyboard.Button("✅ Подтвердить", fmt.Sprintf("%s%d", common.AdminConfirm, bookingID)),
			keyboard.Button("❌ Отклонить", fmt.Sprintf("%s%d", common.AdminReject, bookingID)),
		).
		Build()
}

// HandleToday подтверждённые записи на сегодня
func HandleToday(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		bookings, err := h.BookingService.TodayConfirmed(ctx)
		if err != nil {
			hc.Fail(err, "today")
			return
		}
		hc.Show(common.BookingList(
			"📅 Записи на сегодня:",
			"✅ Нет записей на сегодня.",
			bookings,
			formatting.AdminBookingCard,
		), backToPanel())
		hc.Answer("")
	})
}

// HandleTomorrow подтверждённые записи на завтра
func HandleTomorrow(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		bookings, err := h.BookingService.TomorrowConfirmed(ctx)
		if err != nil {
			hc.Fail(err, "tomorrow")
			return
		}
		hc.Show(common.BookingList(
			"📆 Записи на завтра:",
			"✅ Нет записей на завтра.",
			bookings,
			formatting.AdminBookingCard,
		), backToPanel())
		hc.Answer("")
	})
}

// HandleWeek подтверждённые записи недели со сдвигом от текущей
func HandleWeek(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		offset, err := strconv.Atoi(strings.TrimPrefix(callback.Data, common.AdminWeek))
		if err != nil {
			hc.Fail(common.ErrInvalidFormat, "week")
			return
		}

		day := today(h).AddDate(0, 0, 7*offset)
		bookings, err := h.BookingService.ByWeek(ctx, day)
		if err != nil {
			hc.Fail(err, "week")
			return
		}

		title := "🗓 Записи на неделю"
		switch offset {
		case 0:
			title += " (текущая)"
		case 1:
			title += " (следующая)"
		default:
			title += fmt.Sprintf(" с %s", formatting.FormatDate(day))
		}

		text := common.BookingList(title+":", title+":\n\nЗаписей нет.", bookings, weekCard)

		kb := keyboard.NewBuilder().
			Row(keyboard.StepPagination(common.AdminWeek,
				"Пред.", strconv.Itoa(offset-1),
				"След.", strconv.Itoa(offset+1))...).
			AddBackButton(common.AdminPanel).
			Build()

		hc.Show(text, kb)
		hc.Answer("")
	})
}

func weekCard(d *model.BookingDetails) string {
	return fmt.Sprintf("%s %s %s\n💅 %s\n👤 %s",
		formatting.GetWeekdayShortName(d.StartAt.Weekday()),
		formatting.FormatDate(d.StartAt),
		formatting.FormatTimeRange(d.StartAt, d.EndAt),
		d.ServiceName,
		formatting.ClientName(d),
	)
}

// HandleAll постраничный список всех записей
func HandleAll(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		page, err := strconv.Atoi(strings.TrimPrefix(callback.Data, common.AdminAll))
		if err != nil || page < 0 {
			hc.Fail(common.ErrInvalidFormat, "all")
			return
		}

		// берём на одну больше, чтобы понять, есть ли следующая страница
		bookings, err := h.BookingService.List(ctx, pageSize+1, page*pageSize)
		if err != nil {
			hc.Fail(err, "all")
			return
		}
		hasNext := len(bookings) > pageSize
		if hasNext {
			bookings = bookings[:pageSize]
		}

		text := common.BookingList("📚 Все записи:", "Записей пока нет.", bookings, formatting.AdminBookingCard)
		kb := keyboard.NewBuilder().
			AddPagination(common.AdminAll, page, hasNext).
			AddBackButton(common.AdminPanel).
			Build()

		hc.Show(text, kb)
		hc.Answer("")
	})
}

// HandleRecent последние созданные записи
func HandleRecent(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		bookings, err := h.BookingService.Recent(ctx, recentCount)
		if err != nil {
			hc.Fail(err, "recent")
			return
		}
		hc.Show(common.BookingList(
			"🕐 Последние записи:",
			"Записей пока нет.",
			bookings,
			formatting.AdminBookingCard,
		), backToPanel())
		hc.Answer("")
	})
}

// HandleConfirm подтверждает запись и уведомляет клиента
func HandleConfirm(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	decide(ctx, b, callback, h, common.AdminConfirm, model.BookingStatusConfirmed)
}

// HandleReject отклоняет запись и уведомляет клиента
func HandleReject(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	decide(ctx, b, callback, h, common.AdminReject, model.BookingStatusCancelled)
}

func decide(
	ctx context.Context,
	b *bot.Bot,
	callback *models.CallbackQuery,
	h *callbacktypes.Handler,
	prefix string,
	status model.BookingStatus,
) {
	common.WithAdmin(ctx, b, callback, h, func(hc *common.HandlerContext) {
		bookingID, err := common.ParseIDFromCallback(callback.Data)
		if err != nil {
			hc.Fail(err, prefix)
			return
		}

		if _, err := h.BookingService.SetStatus(ctx, bookingID, status); err != nil {
			hc.Fail(err, "set_status")
			return
		}

		h.Logger.Info("Booking status changed by admin",
			zap.Int64("booking_id", bookingID),
			zap.Int64("admin_id", hc.TelegramID),
			zap.String("status", string(status)))

		details, err := h.BookingService.GetByID(ctx, bookingID)
		if err != nil || details == nil {
			h.Logger.Error("Failed to load booking after status change",
				zap.Int64("booking_id", bookingID),
				zap.Error(err))
			hc.Answer("Готово")
			return
		}

		if err := h.NotificationService.NotifyClientStatus(ctx, details); err != nil {
			h.Logger.Warn("Failed to notify client",
				zap.Int64("booking_id", bookingID),
				zap.Int64("user_id", details.UserID),
				zap.Error(err))
		}

		display := formatting.GetBookingStatusDisplay(status)
		hc.Show(
			fmt.Sprintf("%s Запись #%d: %s\n\n%s\n\nГлавное меню админа: /admin",
				display.Emoji, bookingID, strings.ToLower(display.Text), formatting.AdminBookingCard(details)),
			nil,
		)
		hc.Answer(display.Text)
	})
}
