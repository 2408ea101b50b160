package service

import (
	"context"
	"time"

	"github.com/Freeeeeet/studio_booking_bot/internal/events"
	"github.com/Freeeeeet/studio_booking_bot/internal/model"
)

// BookingRepository журнал записей
type BookingRepository interface {
	Create(ctx context.Context, booking *model.Booking) error
	GetByID(ctx context.Context, id int64) (*model.Booking, error)
	GetDetails(ctx context.Context, id int64) (*model.BookingDetails, error)
	List(ctx context.Context, filter model.BookingFilter) ([]*model.BookingDetails, error)
	ActiveInRange(ctx context.Context, from, to time.Time) ([]*model.Booking, error)
	LockDay(ctx context.Context, day time.Time) error
	UpdateStatus(ctx context.Context, id int64, from, to model.BookingStatus) (bool, error)
	MarkReminded(ctx context.Context, id int64, at time.Time) error
	Stats(ctx context.Context, todayFrom, todayTo time.Time) (*model.Statistics, error)
	ClientIDs(ctx context.Context, from, to *time.Time) ([]int64, error)
}

// SlotRepository сетка расписания
type SlotRepository interface {
	InsertIfAbsent(ctx context.Context, slots []model.ScheduleSlot) (int64, error)
	GetByDate(ctx context.Context, date time.Time) ([]*model.ScheduleSlot, error)
	GetByRange(ctx context.Context, from, to time.Time) ([]*model.ScheduleSlot, error)
	SetAvailable(ctx context.Context, date time.Time, t model.TimeOfDay, available bool) (bool, error)
}

// ServiceRepository каталог услуг
type ServiceRepository interface {
	InsertIfAbsent(ctx context.Context, services []model.Service) (int64, error)
	GetByID(ctx context.Context, id int64) (*model.Service, error)
	List(ctx context.Context) ([]*model.Service, error)
}

type UserRepository interface {
	Upsert(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id int64) (*model.User, error)
	SetPhone(ctx context.Context, id int64, phone string) (bool, error)
}

type AdminRepository interface {
	Add(ctx context.Context, userID int64) (bool, error)
	Exists(ctx context.Context, userID int64) (bool, error)
	ListIDs(ctx context.Context) ([]int64, error)
}

// TxManager выполняет fn в одной транзакции
type TxManager interface {
	WithinTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// WorkSchedule недельный шаблон работы студии
type WorkSchedule interface {
	IsClosed(wd time.Weekday) bool
	HoursFor(date time.Time) []model.TimeOfDay
}

// EventPublisher отправляет события журнала во внешнюю шину
type EventPublisher interface {
	Publish(ctx context.Context, event events.Event) error
}

// Notifier доставляет текстовое сообщение пользователю
type Notifier interface {
	Send(ctx context.Context, chatID int64, text string) error
}
