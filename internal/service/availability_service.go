package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/Freeeeeet/studio_booking_bot/internal/metrics"
	"github.com/Freeeeeet/studio_booking_bot/internal/model"
)

// AvailabilityService вычисляет свободное время по сетке и журналу записей
type AvailabilityService struct {
	slotRepo    SlotRepository
	bookingRepo BookingRepository
	schedule    WorkSchedule
	buffer      time.Duration
	metrics     *metrics.Metrics
	loc         *time.Location
	now         func() time.Time
	logger      *zap.Logger
}

func NewAvailabilityService(
	slotRepo SlotRepository,
	bookingRepo BookingRepository,
	schedule WorkSchedule,
	buffer time.Duration,
	m *metrics.Metrics,
	loc *time.Location,
	logger *zap.Logger,
) *AvailabilityService {
	return &AvailabilityService{
		slotRepo:    slotRepo,
		bookingRepo: bookingRepo,
		schedule:    schedule,
		buffer:      buffer,
		metrics:     m,
		loc:         loc,
		now:         time.Now,
		logger:      logger,
	}
}

// AvailableStarts возвращает допустимые времена начала услуги длительностью
// durationMinutes на дату date, по возрастанию
func (s *AvailabilityService) AvailableStarts(ctx context.Context, date time.Time, durationMinutes int) ([]model.TimeOfDay, error) {
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive, got %d", model.ErrValidation, durationMinutes)
	}

	started := time.Now()
	defer func() { s.metrics.ObserveAvailability(time.Since(started).Seconds()) }()

	day := model.DateOf(date, s.loc)

	slots, err := s.slotRepo.GetByDate(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("get slots: %w", err)
	}

	bookings, err := s.bookingRepo.ActiveInRange(ctx, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("get bookings: %w", err)
	}

	return availableStarts(slots, bookings, day, durationMinutes, s.now().In(s.loc), s.buffer), nil
}

// IsAvailable проверяет, что start всё ещё входит в AvailableStarts своего дня
func (s *AvailabilityService) IsAvailable(ctx context.Context, start time.Time, durationMinutes int) (bool, error) {
	local := start.In(s.loc)
	starts, err := s.AvailableStarts(ctx, local, durationMinutes)
	if err != nil {
		return false, err
	}

	return slices.Contains(starts, model.TimeOfDayOf(local)), nil
}

// AvailableDates возвращает даты в [сегодня, сегодня+horizonDays),
// на которые есть хотя бы одно допустимое время начала
func (s *AvailabilityService) AvailableDates(ctx context.Context, durationMinutes, horizonDays int) ([]time.Time, error) {
	if durationMinutes <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive, got %d", model.ErrValidation, durationMinutes)
	}
	if horizonDays <= 0 {
		return []time.Time{}, nil
	}

	started := time.Now()
	defer func() { s.metrics.ObserveAvailability(time.Since(started).Seconds()) }()

	now := s.now().In(s.loc)
	from := model.DateOf(now, s.loc)
	to := from.AddDate(0, 0, horizonDays)

	// Читаем диапазон одним запросом и раскладываем по дням
	slots, err := s.slotRepo.GetByRange(ctx, from, to.AddDate(0, 0, -1))
	if err != nil {
		return nil, fmt.Errorf("get slots: %w", err)
	}

	bookings, err := s.bookingRepo.ActiveInRange(ctx, from, to)
	if err != nil {
		return nil, fmt.Errorf("get bookings: %w", err)
	}

	slotsByDay := make(map[string][]*model.ScheduleSlot)
	for _, slot := range slots {
		key := slot.Date.Format(model.DateLayout)
		slotsByDay[key] = append(slotsByDay[key], slot)
	}

	dates := make([]time.Time, 0)
	for date := from; date.Before(to); date = date.AddDate(0, 0, 1) {
		if s.schedule.IsClosed(date.Weekday()) {
			continue
		}
		daySlots := slotsByDay[date.Format(model.DateLayout)]
		if len(daySlots) == 0 {
			continue
		}
		if len(availableStarts(daySlots, bookingsOfDay(bookings, date), date, durationMinutes, now, s.buffer)) > 0 {
			dates = append(dates, date)
		}
	}

	return dates, nil
}

// bookingsOfDay записи, пересекающие день date
func bookingsOfDay(bookings []*model.Booking, date time.Time) []*model.Booking {
	next := date.AddDate(0, 0, 1)
	result := make([]*model.Booking, 0)
	for _, b := range bookings {
		if overlaps(b.StartAt, bookingConsumedEnd(b), date, next) {
			result = append(result, b)
		}
	}
	return result
}
