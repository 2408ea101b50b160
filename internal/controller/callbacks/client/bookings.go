package client

import (
	"context"
	"fmt"
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

// myBookingsLimit сколько последних записей показываем клиенту
const myBookingsLimit = 10

// HandleMyBookings показывает записи клиента
func HandleMyBookings(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUser(ctx, b, callback, h, func(hc *common.HandlerContext) {
		text, kb, err := BuildMyBookingsScreen(ctx, h, hc.User.ID)
		if err != nil {
			hc.Fail(err, "my_bookings")
			return
		}

		hc.Show(text, kb)
		hc.Answer("")
	})
}

// BuildMyBookingsScreen список записей клиента с кнопками отмены для ожидающих
func BuildMyBookingsScreen(ctx context.Context, h *callbacktypes.Handler, userID int64) (string, *models.InlineKeyboardMarkup, error) {
	bookings, err := h.BookingService.ByUser(ctx, userID)
	if err != nil {
		return "", nil, err
	}
	if len(bookings) > myBookingsLimit {
		bookings = bookings[:myBookingsLimit]
	}

	text := common.BookingList(
		"📋 Ваши записи:",
		"У вас пока нет записей.\n\nЗаписаться: /book",
		bookings,
		formatting.BookingCard,
	)

	kb := keyboard.NewBuilder()
	for _, d := range bookings {
		if d.Status == model.BookingStatusPending {
			kb.Row(keyboard.Button(
				fmt.Sprintf("❌ Отменить #%d (%s)", d.ID, formatting.FormatDateTime(d.StartAt)),
				fmt.Sprintf("%s%d", common.CancelOwn, d.ID),
			))
		}
	}
	kb.Row(keyboard.Button("💅 Новая запись", common.BookStart))
	kb.AddBackToMainButton()

	return text, kb.Build(), nil
}

// HandleCancelOwn спрашивает подтверждение отмены записи
func HandleCancelOwn(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUser(ctx, b, callback, h, func(hc *common.HandlerContext) {
		bookingID, err := common.ParseIDFromCallback(callback.Data)
		if err != nil {
			hc.Fail(err, "cancel_own")
			return
		}

		details, err := h.BookingService.GetByID(ctx, bookingID)
		if err != nil {
			hc.Fail(err, "cancel_own")
			return
		}
		if details == nil || details.UserID != hc.User.ID {
			hc.AnswerAlert("❌ Запись не найдена")
			return
		}

		hc.Show(
			"Отменить запись?\n\n"+formatting.BookingCard(details),
			keyboard.NewBuilder().
				Row(keyboard.Button("✅ Да, отменить", fmt.Sprintf("%s%d", common.ConfirmOwn, bookingID))).
				AddBackButton(common.MyBookings).
				Build(),
		)
		hc.Answer("")
	})
}

// HandleConfirmCancelOwn отменяет запись клиента
func HandleConfirmCancelOwn(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUser(ctx, b, callback, h, func(hc *common.HandlerContext) {
		bookingID, err := common.ParseIDFromCallback(callback.Data)
		if err != nil {
			hc.Fail(err, "confirm_cancel")
			return
		}

		if _, err := h.BookingService.CancelByClient(ctx, hc.User.ID, bookingID); err != nil {
			hc.Fail(err, "cancel_by_client")
			return
		}

		h.Logger.Info("Booking cancelled by client",
			zap.Int64("booking_id", bookingID),
			zap.Int64("user_id", hc.User.ID))

		text, kb, err := BuildMyBookingsScreen(ctx, h, hc.User.ID)
		if err != nil {
			hc.Fail(err, "my_bookings")
			return
		}
		hc.Show(text, kb)
		hc.Answer("Запись отменена")
	})
}

// HandleServicesList показывает прайс
func HandleServicesList(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := common.NewHandlerContext(ctx, b, callback, h)

	text, err := BuildPriceList(ctx, h)
	if err != nil {
		hc.Fail(err, "services_list")
		return
	}

	hc.Show(text, keyboard.NewBuilder().
		Row(keyboard.Button("💅 Записаться", common.BookStart)).
		AddBackToMainButton().
		Build())
	hc.Answer("")
}

// BuildPriceList текст прайса, общий для /services и кнопки меню
func BuildPriceList(ctx context.Context, h *callbacktypes.Handler) (string, error) {
	services, err := h.CatalogService.List(ctx)
	if err != nil {
		return "", err
	}
	if len(services) == 0 {
		return "😔 Сейчас нет доступных услуг.", nil
	}

	var sb strings.Builder
	sb.WriteString("💰 Услуги и цены:\n")
	for _, svc := range services {
		fmt.Fprintf(&sb, "\n💅 %s\n   %s • %s",
			svc.Name,
			formatting.FormatPriceShort(svc.Price),
			formatting.FormatDuration(svc.DurationMinutes))
		if svc.Description != "" {
			fmt.Fprintf(&sb, "\n   %s", svc.Description)
		}
	}
	return sb.String(), nil
}
