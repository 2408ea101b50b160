package formatting

import (
	"fmt"
	"strings"

	"github.com/Freeeeeet/studio_booking_bot/internal/model"
)

// ClientName имя клиента с username для админских сообщений
func ClientName(d *model.BookingDetails) string {
	name := strings.TrimSpace(d.ClientFirstName + " " + d.ClientLastName)
	if name == "" {
		name = "Без имени"
	}
	if d.ClientUsername != "" {
		return fmt.Sprintf("%s (@%s)", name, d.ClientUsername)
	}
	return name
}

// BookingCard краткая карточка записи
func BookingCard(d *model.BookingDetails) string {
	status := GetBookingStatusDisplay(d.Status)

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s Запись #%d\n", status.Emoji, d.ID)
	fmt.Fprintf(&sb, "💅 %s\n", d.ServiceName)
	fmt.Fprintf(&sb, "📅 %s\n", FormatDate(d.StartAt))
	fmt.Fprintf(&sb, "⏰ %s\n", FormatTimeRange(d.StartAt, d.EndAt))
	fmt.Fprintf(&sb, "💰 %s\n", FormatPriceShort(d.ServicePrice))
	fmt.Fprintf(&sb, "Статус: %s", status.Text)
	return sb.String()
}

// AdminBookingCard карточка записи с данными клиента
func AdminBookingCard(d *model.BookingDetails) string {
	var sb strings.Builder
	sb.WriteString(BookingCard(d))
	fmt.Fprintf(&sb, "\n👤 %s", ClientName(d))
	if d.ClientPhone != nil && *d.ClientPhone != "" {
		fmt.Fprintf(&sb, "\n📞 %s", *d.ClientPhone)
	}
	if d.Notes != nil && *d.Notes != "" {
		fmt.Fprintf(&sb, "\n📝 %s", *d.Notes)
	}
	return sb.String()
}

// NewBookingAlert сообщение администраторам о новой записи
func NewBookingAlert(d *model.BookingDetails) string {
	return "📥 Новая запись!\n\n" + AdminBookingCard(d)
}

// StatusNotification сообщение клиенту о смене статуса
func StatusNotification(d *model.BookingDetails, address string) string {
	var sb strings.Builder

	switch d.Status {
	case model.BookingStatusConfirmed:
		sb.WriteString("🎉 Ваша запись подтверждена!\n\n")
	case model.BookingStatusCancelled:
		sb.WriteString("😔 Ваша запись отменена.\n\n")
	default:
		sb.WriteString("ℹ️ Статус записи изменён.\n\n")
	}

	fmt.Fprintf(&sb, "💅 Услуга: %s\n", d.ServiceName)
	fmt.Fprintf(&sb, "📅 Дата: %s\n", FormatDate(d.StartAt))
	fmt.Fprintf(&sb, "⏰ Время: %s\n", FormatTimeRange(d.StartAt, d.EndAt))

	if d.Status == model.BookingStatusConfirmed {
		fmt.Fprintf(&sb, "💰 Стоимость: %s\n", FormatPriceShort(d.ServicePrice))
		if address != "" {
			fmt.Fprintf(&sb, "\n📍 Адрес: %s\n", address)
		}
		sb.WriteString("\n💖 Ждем вас!")
	} else if d.Status == model.BookingStatusCancelled {
		sb.WriteString("\nВы можете выбрать другое время: /book")
	}

	return sb.String()
}

// Reminder напоминание о записи на завтра
func Reminder(d *model.BookingDetails, address string) string {
	var sb strings.Builder
	sb.WriteString("🔔 Напоминание о записи!\n\n")
	fmt.Fprintf(&sb, "Завтра, %s, у вас запись:\n", FormatDate(d.StartAt))
	fmt.Fprintf(&sb, "💅 %s\n", d.ServiceName)
	fmt.Fprintf(&sb, "⏰ Время: %s\n", FormatTimeRange(d.StartAt, d.EndAt))
	if address != "" {
		fmt.Fprintf(&sb, "\n📍 Адрес: %s\n", address)
	}
	sb.WriteString("\n💖 Ждем вас!")
	return sb.String()
}

// Statistics текст общей статистики
func Statistics(s *model.Statistics) string {
	var sb strings.Builder
	sb.WriteString("📊 Статистика\n\n")
	fmt.Fprintf(&sb, "✅ Подтверждено: %d\n", s.Confirmed)
	fmt.Fprintf(&sb, "⏳ Ожидают: %d\n", s.Pending)
	fmt.Fprintf(&sb, "❌ Отменено: %d\n", s.Cancelled)
	fmt.Fprintf(&sb, "📅 Сегодня подтверждено: %d\n", s.TodayConfirmed)
	fmt.Fprintf(&sb, "💰 Выручка: %s\n", FormatPriceShort(s.Revenue))
	fmt.Fprintf(&sb, "👥 %d %s из %d пользователей", s.UniqueClients, PluralizeClients(s.UniqueClients), s.TotalUsers)
	return sb.String()
}

// DailyStatistics текст статистики за день
func DailyStatistics(s *model.DailyStatistics) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "📊 %s, %s\n\n", GetWeekdayName(s.Date.Weekday()), FormatDate(s.Date))
	fmt.Fprintf(&sb, "Всего: %d %s\n", s.TotalCount, PluralizeBookings(s.TotalCount))
	for _, status := range []model.BookingStatus{
		model.BookingStatusConfirmed,
		model.BookingStatusPending,
		model.BookingStatusCancelled,
	} {
		display := GetBookingStatusDisplay(status)
		fmt.Fprintf(&sb, "%s %s: %d\n", display.Emoji, display.Text, s.StatusCounts[status])
	}
	fmt.Fprintf(&sb, "💰 Выручка: %s", FormatPriceShort(s.DailyRevenue))
	return sb.String()
}
