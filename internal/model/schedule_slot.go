package model

import "time"

// ScheduleSlot ячейка расписания фиксированной ширины.
// Available отражает только ручную блокировку администратором,
// занятость вычисляется по записям.
type ScheduleSlot struct {
	ID        int64     `json:"id"`
	Date      time.Time `json:"date"` // полночь в часовом поясе студии
	Time      TimeOfDay `json:"time"`
	Available bool      `json:"available"`
	BookingID *int64    `json:"booking_id"` // заполняется только при просмотре дня
}

// StartAt возвращает момент начала слота
func (s *ScheduleSlot) StartAt() time.Time {
	return s.Time.On(s.Date)
}

// SlotMinutes ширина ячейки расписания
const SlotMinutes = 30
