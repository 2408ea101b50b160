package formatting

import "github.com/Freeeeeet/studio_booking_bot/internal/model"

// BookingStatusDisplay представляет отображение статуса записи
type BookingStatusDisplay struct {
	Emoji string
	Text  string
}

// GetBookingStatusDisplay возвращает emoji и текст для статуса записи
func GetBookingStatusDisplay(status model.BookingStatus) BookingStatusDisplay {
	displays := map[model.BookingStatus]BookingStatusDisplay{
		model.BookingStatusPending:   {"⏳", "Ожидает подтверждения"},
		model.BookingStatusConfirmed: {"✅", "Подтверждена"},
		model.BookingStatusCancelled: {"❌", "Отменена"},
	}

	if display, ok := displays[status]; ok {
		return display
	}

	return BookingStatusDisplay{"❓", "Неизвестно"}
}

// SlotDisplay отображение ячейки сетки для администратора
func SlotDisplay(slot *model.ScheduleSlot) string {
	switch {
	case slot.BookingID != nil:
		return "🔴"
	case !slot.Available:
		return "⛔️"
	default:
		return "🟢"
	}
}
