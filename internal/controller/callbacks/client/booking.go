package client

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/Freeeeeet/studio_booking_bot/internal/controller/callbacks/callbacktypes"
	"github.com/Freeeeeet/studio_booking_bot/internal/controller/callbacks/common"
	"github.com/Freeeeeet/studio_booking_bot/internal/controller/callbacks/common/keyboard"
	"github.com/Freeeeeet/studio_booking_bot/internal/controller/state"
	"github.com/Freeeeeet/studio_booking_bot/internal/formatting"
	"github.com/Freeeeeet/studio_booking_bot/internal/model"
	"github.com/go-telegram/bot"
	"github.com/go-telegram/bot/models"
	"go.uber.org/zap"
)

// HandleBookStart показывает список услуг для записи
func HandleBookStart(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUser(ctx, b, callback, h, func(hc *common.HandlerContext) {
		hc.ClearState()

		text, kb, err := BuildServicesScreen(ctx, h)
		if err != nil {
			hc.Fail(err, "book_start")
			return
		}

		hc.Show(text, kb)
		hc.Answer("")
	})
}

// BuildServicesScreen экран выбора услуги, общий для /book и кнопки меню
func BuildServicesScreen(ctx context.Context, h *callbacktypes.Handler) (string, *models.InlineKeyboardMarkup, error) {
	services, err := h.CatalogService.List(ctx)
	if err != nil {
		return "", nil, err
	}

	kb := keyboard.NewBuilder()
	for _, svc := range services {
		kb.Row(keyboard.Button(
			fmt.Sprintf("%s • %s", svc.Name, formatting.FormatPriceShort(svc.Price)),
			fmt.Sprintf("%s%d", common.BookService, svc.ID),
		))
	}
	kb.AddBackToMainButton()

	if len(services) == 0 {
		return "😔 Сейчас нет доступных услуг.", kb.Build(), nil
	}

	return "💅 Выберите услугу:", kb.Build(), nil
}

// HandleBookService показывает даты, на которые услуга помещается
func HandleBookService(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUser(ctx, b, callback, h, func(hc *common.HandlerContext) {
		serviceID, err := common.ParseIDFromCallback(callback.Data)
		if err != nil {
			hc.Fail(err, "book_service")
			return
		}

		svc, err := h.CatalogService.GetByID(ctx, serviceID)
		if err != nil {
			hc.Fail(err, "book_service")
			return
		}
		if svc == nil {
			hc.AnswerAlert("❌ Услуга не найдена")
			return
		}

		dates, err := h.AvailabilityService.AvailableDates(ctx, svc.DurationMinutes, h.BookingHorizonDays)
		if err != nil {
			hc.Fail(err, "available_dates")
			return
		}

		header := fmt.Sprintf(
			"✨ Вы выбрали: %s\n💰 Цена: %s\n⏱ Длительность: %s\n\n",
			svc.Name,
			formatting.FormatPriceShort(svc.Price),
			formatting.FormatDuration(svc.DurationMinutes),
		)

		if len(dates) == 0 {
			hc.Show(
				header+fmt.Sprintf("😔 На ближайшие %d дней нет свободных дат для этой услуги.", h.BookingHorizonDays),
				keyboard.NewBuilder().AddBackButton(common.BookStart).Build(),
			)
			hc.Answer("")
			return
		}

		buttons := make([]models.InlineKeyboardButton, 0, len(dates))
		for _, date := range dates {
			buttons = append(buttons, keyboard.Button(
				fmt.Sprintf("%s %s", formatting.GetWeekdayShortName(date.Weekday()), date.Format("02.01")),
				fmt.Sprintf("%s%d:%s", common.BookDate, svc.ID, common.EncodeDate(date)),
			))
		}

		kb := keyboard.NewBuilder().
			Grid(buttons, 3).
			AddBackButton(common.BookStart).
			Build()

		hc.Show(header+"📅 Выберите дату:", kb)
		hc.Answer("")
	})
}

// HandleBookDate показывает свободное время на выбранную дату
func HandleBookDate(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUser(ctx, b, callback, h, func(hc *common.HandlerContext) {
		args, err := common.ParseArgs(callback.Data, common.BookDate, 2)
		if err != nil {
			hc.Fail(err, "book_date")
			return
		}
		svc, date, err := parseServiceAndDate(ctx, h, args[0], args[1])
		if err != nil {
			hc.Fail(err, "book_date")
			return
		}

		text, kb, err := buildTimesScreen(ctx, h, svc, date)
		if err != nil {
			hc.Fail(err, "available_starts")
			return
		}
		if kb == nil {
			hc.AnswerAlert(text)
			return
		}

		hc.Show(text, kb)
		hc.Answer("")
	})
}

func buildTimesScreen(ctx context.Context, h *callbacktypes.Handler, svc *model.Service, date time.Time) (string, *models.InlineKeyboardMarkup, error) {
	starts, err := h.AvailabilityService.AvailableStarts(ctx, date, svc.DurationMinutes)
	if err != nil {
		return "", nil, err
	}
	if len(starts) == 0 {
		return fmt.Sprintf("На %s нет свободного времени.", formatting.FormatDate(date)), nil, nil
	}

	buttons := make([]models.InlineKeyboardButton, 0, len(starts))
	for _, t := range starts {
		buttons = append(buttons, keyboard.Button(
			t.String(),
			fmt.Sprintf("%s%d:%s:%s", common.BookTime, svc.ID, common.EncodeDate(date), common.EncodeTime(t)),
		))
	}

	kb := keyboard.NewBuilder().
		Grid(buttons, 4).
		AddBackButton(fmt.Sprintf("%s%d", common.BookService, svc.ID)).
		Build()

	text := fmt.Sprintf("💅 %s\n📅 %s\n\n⏰ Выберите время:", svc.Name, formatting.FormatDateWithWeekday(date))
	return text, kb, nil
}

// HandleBookTime запоминает выбор и показывает подтверждение
func HandleBookTime(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUser(ctx, b, callback, h, func(hc *common.HandlerContext) {
		args, err := common.ParseArgs(callback.Data, common.BookTime, 3)
		if err != nil {
			hc.Fail(err, "book_time")
			return
		}
		svc, date, err := parseServiceAndDate(ctx, h, args[0], args[1])
		if err != nil {
			hc.Fail(err, "book_time")
			return
		}
		tod, err := common.DecodeTime(args[2])
		if err != nil {
			hc.Fail(err, "book_time")
			return
		}

		start := tod.On(date)

		// Кнопка могла устареть: слот закрыли или время уже прошло
		ok, err := h.AvailabilityService.IsAvailable(ctx, start, svc.DurationMinutes)
		if err != nil {
			hc.Fail(err, "book_time")
			return
		}
		if !ok {
			showTimeTaken(hc, svc.ID, start)
			return
		}

		hc.ClearState()
		hc.SetState(callbacktypes.UserState(state.StateBookingConfirm))
		hc.SetData(state.KeyServiceID, svc.ID)
		hc.SetData(state.KeyStartAt, start)

		text, kb := BuildConfirmScreen(svc, start, nil)
		hc.Show(text, kb)
		hc.Answer("")
	})
}

// BuildConfirmScreen экран подтверждения записи
func BuildConfirmScreen(svc *model.Service, start time.Time, notes *string) (string, *models.InlineKeyboardMarkup) {
	end := start.Add(time.Duration(svc.DurationMinutes) * time.Minute)

	var sb strings.Builder
	sb.WriteString("📋 Подтверждение записи:\n\n")
	fmt.Fprintf(&sb, "💅 Услуга: %s\n", svc.Name)
	fmt.Fprintf(&sb, "💰 Цена: %s\n", formatting.FormatPriceShort(svc.Price))
	fmt.Fprintf(&sb, "⏱ Длительность: %s\n", formatting.FormatDuration(svc.DurationMinutes))
	fmt.Fprintf(&sb, "📅 Дата: %s\n", formatting.FormatDateWithWeekday(start))
	fmt.Fprintf(&sb, "⏰ Время: %s\n", formatting.FormatTimeRange(start, end))
	if notes != nil {
		fmt.Fprintf(&sb, "📝 Комментарий: %s\n", *notes)
	}
	sb.WriteString("\nПодтверждаете запись?")

	notesLabel := "📝 Добавить комментарий"
	if notes != nil {
		notesLabel = "📝 Изменить комментарий"
	}

	kb := keyboard.NewBuilder().
		Row(keyboard.ConfirmButton(common.BookConfirm)).
		Row(keyboard.Button(notesLabel, common.BookNotes)).
		Row(
			keyboard.BackButton(fmt.Sprintf("%s%d:%s", common.BookDate, svc.ID, common.EncodeDate(start))),
			keyboard.CancelButton(common.BookAbort),
		).
		Build()

	return sb.String(), kb
}

// HandleBookNotes просит клиента написать комментарий
func HandleBookNotes(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := common.NewHandlerContext(ctx, b, callback, h)

	if _, ok := h.StateManager.GetInt64(hc.TelegramID, state.KeyServiceID); !ok {
		hc.Fail(common.ErrDialogExpired, "book_notes")
		return
	}

	hc.SetState(callbacktypes.UserState(state.StateBookingNotes))
	hc.Show(
		"✍️ Напишите комментарий к записи одним сообщением.\n\nНапример, пожелания по дизайну.",
		keyboard.NewBuilder().Row(keyboard.CancelButton(common.BookAbort)).Build(),
	)
	hc.Answer("")
}

// HandleBookConfirm создаёт запись
func HandleBookConfirm(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	common.WithUser(ctx, b, callback, h, func(hc *common.HandlerContext) {
		serviceID, okService := h.StateManager.GetInt64(hc.TelegramID, state.KeyServiceID)
		start, okStart := h.StateManager.GetTime(hc.TelegramID, state.KeyStartAt)
		if !okService || !okStart || h.StateManager.GetState(hc.TelegramID) != callbacktypes.UserState(state.StateBookingConfirm) {
			hc.Fail(common.ErrDialogExpired, "book_confirm")
			return
		}

		var notes *string
		if v, ok := h.StateManager.GetString(hc.TelegramID, state.KeyNotes); ok {
			notes = &v
		}

		svc, err := h.CatalogService.GetByID(ctx, serviceID)
		if err != nil {
			hc.Fail(err, "book_confirm")
			return
		}
		if svc == nil {
			hc.Fail(fmt.Errorf("service %d: %w", serviceID, model.ErrNotFound), "book_confirm")
			return
		}

		ok, err := h.AvailabilityService.IsAvailable(ctx, start, svc.DurationMinutes)
		if err != nil {
			hc.Fail(err, "book_confirm")
			return
		}
		if !ok {
			showTimeTaken(hc, serviceID, start)
			return
		}

		booking, err := h.BookingService.Create(ctx, hc.User.ID, serviceID, start, notes)
		if errors.Is(err, model.ErrConflict) {
			showTimeTaken(hc, serviceID, start)
			return
		}
		if err != nil {
			hc.Fail(err, "create_booking")
			return
		}

		hc.ClearState()

		details, err := h.BookingService.GetByID(ctx, booking.ID)
		if err != nil || details == nil {
			h.Logger.Error("Failed to load created booking", zap.Int64("booking_id", booking.ID), zap.Error(err))
			hc.Show(fmt.Sprintf("🎉 Запись успешно оформлена! #%d", booking.ID), nil)
			hc.Answer("")
			return
		}

		hc.Show(
			fmt.Sprintf("🎉 Запись успешно оформлена! #%d\n\n%s\n\n💖 Ждем вас в салоне!", booking.ID, formatting.BookingCard(details)),
			keyboard.NewBuilder().
				Row(keyboard.Button("📋 Мои записи", common.MyBookings)).
				AddBackToMainButton().
				Build(),
		)
		hc.Answer("Запись создана")

		if _, err := h.NotificationService.NotifyAdminsNewBooking(ctx, details); err != nil {
			h.Logger.Error("Failed to notify admins", zap.Int64("booking_id", booking.ID), zap.Error(err))
		}

		if hc.User.Phone == nil {
			askPhone(hc)
		}
	})
}

// HandleBookAbort прерывает мастер записи
func HandleBookAbort(ctx context.Context, b *bot.Bot, callback *models.CallbackQuery, h *callbacktypes.Handler) {
	hc := common.NewHandlerContext(ctx, b, callback, h)
	hc.ClearState()

	hc.Show(
		"Запись отменена. Для новой записи нажмите /book",
		keyboard.NewBuilder().AddBackToMainButton().Build(),
	)
	hc.Answer("Запись отменена")
}

// showTimeTaken сбрасывает диалог и предлагает выбрать другое время
func showTimeTaken(hc *common.HandlerContext, serviceID int64, start time.Time) {
	hc.ClearState()
	hc.Show(
		"😔 Это время уже недоступно. Пожалуйста, выберите другое.",
		keyboard.NewBuilder().
			Row(keyboard.Button("⏰ Выбрать другое время",
				fmt.Sprintf("%s%d:%s", common.BookDate, serviceID, common.EncodeDate(start)))).
			AddBackToMainButton().
			Build(),
	)
	hc.Answer("")
}

func askPhone(hc *common.HandlerContext) {
	_, err := hc.Bot.SendMessage(hc.Ctx, &bot.SendMessageParams{
		ChatID:      hc.ChatID,
		Text:        "📱 Оставьте номер телефона, чтобы мастер мог связаться с вами при необходимости.",
		ReplyMarkup: keyboard.ContactRequest(),
	})
	if err != nil {
		hc.Handler.Logger.Error("Failed to ask for phone", zap.Int64("telegram_id", hc.TelegramID), zap.Error(err))
	}
}

func parseServiceAndDate(ctx context.Context, h *callbacktypes.Handler, rawID, rawDate string) (*model.Service, time.Time, error) {
	serviceID, err := strconv.ParseInt(rawID, 10, 64)
	if err != nil {
		return nil, time.Time{}, common.ErrInvalidFormat
	}

	date, err := common.DecodeDate(rawDate, h.Location)
	if err != nil {
		return nil, time.Time{}, err
	}

	svc, err := h.CatalogService.GetByID(ctx, serviceID)
	if err != nil {
		return nil, time.Time{}, err
	}
	if svc == nil {
		return nil, time.Time{}, fmt.Errorf("service %d: %w", serviceID, model.ErrNotFound)
	}

	return svc, date, nil
}
