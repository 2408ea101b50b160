package service

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Freeeeeet/studio_booking_bot/internal/metrics"
	"github.com/Freeeeeet/studio_booking_bot/internal/model"
)

// GridService генерирует сетку слотов и управляет ручной блокировкой
type GridService struct {
	slotRepo    SlotRepository
	bookingRepo BookingRepository
	schedule    WorkSchedule
	metrics     *metrics.Metrics
	loc         *time.Location
	now         func() time.Time
	logger      *zap.Logger
}

func NewGridService(
	slotRepo SlotRepository,
	bookingRepo BookingRepository,
	schedule WorkSchedule,
	m *metrics.Metrics,
	loc *time.Location,
	logger *zap.Logger,
) *GridService {
	return &GridService{
		slotRepo:    slotRepo,
		bookingRepo: bookingRepo,
		schedule:    schedule,
		metrics:     m,
		loc:         loc,
		now:         time.Now,
		logger:      logger,
	}
}

// Generate создаёт слоты на horizonDays дней начиная с сегодняшнего.
// Повторный вызов не создаёт дублей.
func (s *GridService) Generate(ctx context.Context, horizonDays int) (int64, error) {
	if horizonDays <= 0 {
		return 0, fmt.Errorf("%w: horizon must be positive, got %d", model.ErrValidation, horizonDays)
	}

	slots := buildGrid(s.schedule, model.DateOf(s.now(), s.loc), horizonDays)

	inserted, err := s.slotRepo.InsertIfAbsent(ctx, slots)
	if err != nil {
		return 0, fmt.Errorf("insert slots: %w", err)
	}

	s.metrics.SlotsGenerated(inserted)
	s.logger.Info("Schedule grid generated",
		zap.Int("horizon_days", horizonDays),
		zap.Int("candidates", len(slots)),
		zap.Int64("inserted", inserted),
	)

	return inserted, nil
}

// SetAvailable блокирует или разблокирует слот
func (s *GridService) SetAvailable(ctx context.Context, date time.Time, t model.TimeOfDay, available bool) error {
	if !t.Valid() || int(t)%model.SlotMinutes != 0 {
		return fmt.Errorf("%w: time %s is not on the grid", model.ErrValidation, t)
	}

	date = model.DateOf(date, s.loc)

	// Закрыть можно только слот без активной записи
	if !available {
		start := t.On(date)
		held, err := s.bookingRepo.ActiveInRange(ctx, start, start.Add(model.SlotMinutes*time.Minute))
		if err != nil {
			return fmt.Errorf("get bookings: %w", err)
		}
		if len(held) > 0 {
			return fmt.Errorf("%w: slot %s %s is held by booking %d",
				model.ErrConflict, date.Format(model.DateLayout), t, held[0].ID)
		}
	}

	found, err := s.slotRepo.SetAvailable(ctx, date, t, available)
	if err != nil {
		return fmt.Errorf("set slot availability: %w", err)
	}
	if !found {
		return fmt.Errorf("%w: slot %s %s", model.ErrNotFound, date.Format(model.DateLayout), t)
	}

	s.logger.Info("Slot availability changed",
		zap.String("date", date.Format(model.DateLayout)),
		zap.String("time", t.String()),
		zap.Bool("available", available),
	)

	return nil
}

// DayGrid возвращает слоты дня с заполненной ссылкой на занимающую запись
func (s *GridService) DayGrid(ctx context.Context, date time.Time) ([]*model.ScheduleSlot, error) {
	day := model.DateOf(date, s.loc)

	slots, err := s.slotRepo.GetByDate(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("get slots: %w", err)
	}

	bookings, err := s.bookingRepo.ActiveInRange(ctx, day, day.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("get bookings: %w", err)
	}

	for i, id := range busySlots(slots, bookings) {
		bookingID := id
		slots[i].BookingID = &bookingID
	}

	return slots, nil
}

// buildGrid строит слоты по недельному шаблону для [from, from+days)
func buildGrid(schedule WorkSchedule, from time.Time, days int) []model.ScheduleSlot {
	var slots []model.ScheduleSlot
	for i := 0; i < days; i++ {
		date := from.AddDate(0, 0, i)
		for _, t := range schedule.HoursFor(date) {
			slots = append(slots, model.ScheduleSlot{Date: date, Time: t, Available: true})
		}
	}
	return slots
}
