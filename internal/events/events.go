// Package events публикует изменения журнала записей во внешнюю шину
package events

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Freeeeeet/studio_booking_bot/internal/model"
)

// Ключи маршрутизации
const (
	BookingCreated       = "booking.created"
	BookingStatusChanged = "booking.status_changed"
)

// Event событие журнала записей
type Event struct {
	ID             string              `json:"id"`
	Type           string              `json:"type"`
	OccurredAt     time.Time           `json:"occurred_at"`
	BookingID      int64               `json:"booking_id"`
	UserID         int64               `json:"user_id"`
	ServiceID      int64               `json:"service_id"`
	StartAt        time.Time           `json:"start_at"`
	EndAt          time.Time           `json:"end_at"`
	Status         model.BookingStatus `json:"status"`
	PreviousStatus model.BookingStatus `json:"previous_status,omitempty"`
}

// Publisher отправляет события
type Publisher interface {
	Publish(ctx context.Context, event Event) error
	Close() error
}

func NewBookingCreatedEvent(b *model.Booking, at time.Time) Event {
	return newEvent(BookingCreated, b, "", at)
}

func NewStatusChangedEvent(b *model.Booking, previous model.BookingStatus, at time.Time) Event {
	return newEvent(BookingStatusChanged, b, previous, at)
}

func newEvent(kind string, b *model.Booking, previous model.BookingStatus, at time.Time) Event {
	return Event{
		ID:             uuid.NewString(),
		Type:           kind,
		OccurredAt:     at.UTC(),
		BookingID:      b.ID,
		UserID:         b.UserID,
		ServiceID:      b.ServiceID,
		StartAt:        b.StartAt.UTC(),
		EndAt:          b.EndAt.UTC(),
		Status:         b.Status,
		PreviousStatus: previous,
	}
}

// NopPublisher используется, когда шина не настроена
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, Event) error { return nil }
func (NopPublisher) Close() error                         { return nil }
