package model

import "time"

type BookingStatus string

const (
	BookingStatusPending   BookingStatus = "pending"   // Ожидает подтверждения администратором
	BookingStatusConfirmed BookingStatus = "confirmed" // Подтверждено
	BookingStatusCancelled BookingStatus = "cancelled" // Отменено или отклонено
)

// ActiveBookingStatuses статусы, при которых запись занимает время в расписании
var ActiveBookingStatuses = []BookingStatus{
	BookingStatusPending,
	BookingStatusConfirmed,
}

// IsValid проверяет что статус известен
func (s BookingStatus) IsValid() bool {
	switch s {
	case BookingStatusPending, BookingStatusConfirmed, BookingStatusCancelled:
		return true
	}
	return false
}

// IsActive возвращает true если запись блокирует слоты
func (s BookingStatus) IsActive() bool {
	return s == BookingStatusPending || s == BookingStatusConfirmed
}

// CanTransitionTo проверяет допустимость перехода статуса.
// pending -> confirmed|cancelled, confirmed и cancelled конечные.
func (s BookingStatus) CanTransitionTo(next BookingStatus) bool {
	if s != BookingStatusPending {
		return false
	}
	return next == BookingStatusConfirmed || next == BookingStatusCancelled
}

type Booking struct {
	ID         int64         `json:"id"`
	UserID     int64         `json:"user_id"`
	ServiceID  int64         `json:"service_id"`
	StartAt    time.Time     `json:"start_at"`
	EndAt      time.Time     `json:"end_at"` // StartAt + длительность услуги
	Status     BookingStatus `json:"status"`
	Notes      *string       `json:"notes"`
	RemindedAt *time.Time    `json:"reminded_at"` // Когда отправлено напоминание
	CreatedAt  time.Time     `json:"created_at"`
}

// Duration возвращает длительность занятого интервала
func (b *Booking) Duration() time.Duration {
	return b.EndAt.Sub(b.StartAt)
}

// BookingDetails запись вместе с данными клиента и услуги
type BookingDetails struct {
	Booking

	ClientFirstName string  `json:"client_first_name"`
	ClientLastName  string  `json:"client_last_name"`
	ClientUsername  string  `json:"client_username"`
	ClientPhone     *string `json:"client_phone"`
	ServiceName     string  `json:"service_name"`
	ServicePrice    int64   `json:"service_price"` // в копейках
	DurationMinutes int     `json:"duration_minutes"`
}

// BookingFilter параметры выборки записей. Пустые поля не фильтруют.
type BookingFilter struct {
	UserID   *int64
	Statuses []BookingStatus
	From     *time.Time // start_at >= From
	To       *time.Time // start_at < To
	Search   string     // подстрока в имени, username или названии услуги
	OrderBy  BookingOrder
	Limit    uint64
	Offset   uint64
}

type BookingOrder string

const (
	OrderByStartAsc    BookingOrder = "start_asc"
	OrderByStartDesc   BookingOrder = "start_desc"
	OrderByCreatedDesc BookingOrder = "created_desc"
)
