package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/Freeeeeet/studio_booking_bot/internal/events"
	"github.com/Freeeeeet/studio_booking_bot/internal/metrics"
	"github.com/Freeeeeet/studio_booking_bot/internal/model"
)

const searchLimit = 50

type BookingService struct {
	txManager   TxManager
	bookingRepo BookingRepository
	serviceRepo ServiceRepository
	publisher   EventPublisher
	metrics     *metrics.Metrics
	loc         *time.Location
	now         func() time.Time
	logger      *zap.Logger
}

func NewBookingService(
	txManager TxManager,
	bookingRepo BookingRepository,
	serviceRepo ServiceRepository,
	publisher EventPublisher,
	m *metrics.Metrics,
	loc *time.Location,
	logger *zap.Logger,
) *BookingService {
	return &BookingService{
		txManager:   txManager,
		bookingRepo: bookingRepo,
		serviceRepo: serviceRepo,
		publisher:   publisher,
		metrics:     m,
		loc:         loc,
		now:         time.Now,
		logger:      logger,
	}
}

// Create записывает клиента на услугу со статусом pending.
// Пересечение с активными записями проверяется в той же транзакции
// под блокировкой дня.
func (s *BookingService) Create(ctx context.Context, userID, serviceID int64, start time.Time, notes *string) (*model.Booking, error) {
	if start.IsZero() {
		return nil, fmt.Errorf("%w: start time is required", model.ErrValidation)
	}

	svc, err := s.serviceRepo.GetByID(ctx, serviceID)
	if err != nil {
		return nil, fmt.Errorf("get service: %w", err)
	}
	if svc == nil {
		return nil, fmt.Errorf("%w: service %d", model.ErrNotFound, serviceID)
	}

	start = start.In(s.loc)
	booking := &model.Booking{
		UserID:    userID,
		ServiceID: serviceID,
		StartAt:   start,
		EndAt:     start.Add(time.Duration(svc.DurationMinutes) * time.Minute),
		Status:    model.BookingStatusPending,
		Notes:     notes,
	}

	err = s.txManager.WithinTx(ctx, func(ctx context.Context) error {
		day := model.DateOf(start, s.loc)

		if err := s.bookingRepo.LockDay(ctx, day); err != nil {
			return fmt.Errorf("lock day: %w", err)
		}

		active, err := s.bookingRepo.ActiveInRange(ctx, day, day.AddDate(0, 0, 1))
		if err != nil {
			return fmt.Errorf("get active bookings: %w", err)
		}

		end := consumedEnd(start, svc.DurationMinutes)
		for _, other := range active {
			if overlaps(start, end, other.StartAt, bookingConsumedEnd(other)) {
				return fmt.Errorf("%w: overlaps booking %d", model.ErrConflict, other.ID)
			}
		}

		if err := s.bookingRepo.Create(ctx, booking); err != nil {
			return fmt.Errorf("create booking: %w", err)
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, model.ErrConflict) {
			s.metrics.BookingConflict()
			s.logger.Info("Booking rejected, time is taken",
				zap.Int64("user_id", userID),
				zap.Int64("service_id", serviceID),
				zap.Time("start_at", start),
			)
		}
		return nil, err
	}

	s.metrics.BookingCreated()
	s.logger.Info("Booking created",
		zap.Int64("booking_id", booking.ID),
		zap.Int64("user_id", userID),
		zap.Int64("service_id", serviceID),
		zap.Time("start_at", start),
	)

	s.publish(ctx, events.NewBookingCreatedEvent(booking, s.now()))

	return booking, nil
}

// SetStatus переводит запись в новый статус
func (s *BookingService) SetStatus(ctx context.Context, id int64, status model.BookingStatus) (*model.Booking, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", model.ErrValidation, status)
	}

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("%w: booking %d", model.ErrNotFound, id)
	}

	return s.transition(ctx, booking, status)
}

// CancelByClient отменяет ещё не подтверждённую запись по просьбе её владельца
func (s *BookingService) CancelByClient(ctx context.Context, userID, id int64) (*model.Booking, error) {
	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("get booking: %w", err)
	}
	if booking == nil {
		return nil, fmt.Errorf("%w: booking %d", model.ErrNotFound, id)
	}
	if booking.UserID != userID {
		return nil, fmt.Errorf("%w: booking %d belongs to another user", model.ErrForbidden, id)
	}

	return s.transition(ctx, booking, model.BookingStatusCancelled)
}

func (s *BookingService) transition(ctx context.Context, booking *model.Booking, status model.BookingStatus) (*model.Booking, error) {
	previous := booking.Status
	if !previous.CanTransitionTo(status) {
		return nil, fmt.Errorf("%w: cannot change status from %s to %s", model.ErrValidation, previous, status)
	}

	updated, err := s.bookingRepo.UpdateStatus(ctx, booking.ID, previous, status)
	if err != nil {
		return nil, fmt.Errorf("update status: %w", err)
	}
	if !updated {
		// Статус успели поменять параллельно
		return nil, fmt.Errorf("%w: booking %d is no longer %s", model.ErrValidation, booking.ID, previous)
	}

	booking.Status = status

	s.metrics.StatusChanged(string(status))
	s.logger.Info("Booking status changed",
		zap.Int64("booking_id", booking.ID),
		zap.String("from", string(previous)),
		zap.String("to", string(status)),
	)

	s.publish(ctx, events.NewStatusChangedEvent(booking, previous, s.now()))

	return booking, nil
}

// GetByID возвращает запись с данными клиента и услуги, nil если не найдена
func (s *BookingService) GetByID(ctx context.Context, id int64) (*model.BookingDetails, error) {
	return s.bookingRepo.GetDetails(ctx, id)
}

// ByUser записи клиента, новые сверху
func (s *BookingService) ByUser(ctx context.Context, userID int64) ([]*model.BookingDetails, error) {
	return s.bookingRepo.List(ctx, model.BookingFilter{
		UserID:  &userID,
		OrderBy: model.OrderByStartDesc,
	})
}

// UpcomingByUser активные записи клиента, начиная с сегодняшнего дня
func (s *BookingService) UpcomingByUser(ctx context.Context, userID int64) ([]*model.BookingDetails, error) {
	today := s.today()
	return s.bookingRepo.List(ctx, model.BookingFilter{
		UserID:   &userID,
		Statuses: model.ActiveBookingStatuses,
		From:     &today,
		OrderBy:  model.OrderByStartAsc,
	})
}

func (s *BookingService) ByStatus(ctx context.Context, status model.BookingStatus) ([]*model.BookingDetails, error) {
	if !status.IsValid() {
		return nil, fmt.Errorf("%w: unknown status %q", model.ErrValidation, status)
	}
	return s.bookingRepo.List(ctx, model.BookingFilter{
		Statuses: []model.BookingStatus{status},
		OrderBy:  model.OrderByStartAsc,
	})
}

// ByDate все записи на дату
func (s *BookingService) ByDate(ctx context.Context, date time.Time) ([]*model.BookingDetails, error) {
	from := model.DateOf(date, s.loc)
	to := from.AddDate(0, 0, 1)
	return s.bookingRepo.List(ctx, model.BookingFilter{
		From:    &from,
		To:      &to,
		OrderBy: model.OrderByStartAsc,
	})
}

// ByWeek подтверждённые записи недели (с понедельника), в которую входит date
func (s *BookingService) ByWeek(ctx context.Context, date time.Time) ([]*model.BookingDetails, error) {
	from := weekStart(model.DateOf(date, s.loc))
	to := from.AddDate(0, 0, 7)
	return s.bookingRepo.List(ctx, model.BookingFilter{
		Statuses: []model.BookingStatus{model.BookingStatusConfirmed},
		From:     &from,
		To:       &to,
		OrderBy:  model.OrderByStartAsc,
	})
}

// Pending записи, ожидающие подтверждения
func (s *BookingService) Pending(ctx context.Context) ([]*model.BookingDetails, error) {
	return s.ByStatus(ctx, model.BookingStatusPending)
}

func (s *BookingService) TodayConfirmed(ctx context.Context) ([]*model.BookingDetails, error) {
	return s.confirmedOn(ctx, s.today())
}

func (s *BookingService) TomorrowConfirmed(ctx context.Context) ([]*model.BookingDetails, error) {
	return s.confirmedOn(ctx, s.today().AddDate(0, 0, 1))
}

func (s *BookingService) confirmedOn(ctx context.Context, day time.Time) ([]*model.BookingDetails, error) {
	to := day.AddDate(0, 0, 1)
	return s.bookingRepo.List(ctx, model.BookingFilter{
		Statuses: []model.BookingStatus{model.BookingStatusConfirmed},
		From:     &day,
		To:       &to,
		OrderBy:  model.OrderByStartAsc,
	})
}

// Recent последние n созданных записей
func (s *BookingService) Recent(ctx context.Context, n int) ([]*model.BookingDetails, error) {
	if n <= 0 {
		return []*model.BookingDetails{}, nil
	}
	return s.bookingRepo.List(ctx, model.BookingFilter{
		OrderBy: model.OrderByCreatedDesc,
		Limit:   uint64(n),
	})
}

// Search ищет по имени клиента, username и названию услуги без учёта регистра
func (s *BookingService) Search(ctx context.Context, term string) ([]*model.BookingDetails, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return []*model.BookingDetails{}, nil
	}
	return s.bookingRepo.List(ctx, model.BookingFilter{
		Search:  term,
		OrderBy: model.OrderByStartDesc,
		Limit:   searchLimit,
	})
}

// List постраничный список всех записей
func (s *BookingService) List(ctx context.Context, limit, offset int) ([]*model.BookingDetails, error) {
	if limit <= 0 || offset < 0 {
		return nil, fmt.Errorf("%w: invalid page limit=%d offset=%d", model.ErrValidation, limit, offset)
	}
	return s.bookingRepo.List(ctx, model.BookingFilter{
		OrderBy: model.OrderByStartDesc,
		Limit:   uint64(limit),
		Offset:  uint64(offset),
	})
}

// Statistics общая статистика
func (s *BookingService) Statistics(ctx context.Context) (*model.Statistics, error) {
	today := s.today()
	stats, err := s.bookingRepo.Stats(ctx, today, today.AddDate(0, 0, 1))
	if err != nil {
		return nil, fmt.Errorf("get statistics: %w", err)
	}
	return stats, nil
}

// DailyStatistics статистика по записям, начинающимся в date
func (s *BookingService) DailyStatistics(ctx context.Context, date time.Time) (*model.DailyStatistics, error) {
	day := model.DateOf(date, s.loc)

	bookings, err := s.ByDate(ctx, day)
	if err != nil {
		return nil, fmt.Errorf("get bookings: %w", err)
	}

	stats := &model.DailyStatistics{
		Date:         day,
		StatusCounts: make(map[model.BookingStatus]int),
	}
	for _, b := range bookings {
		stats.TotalCount++
		stats.StatusCounts[b.Status]++
		if b.Status == model.BookingStatusConfirmed {
			stats.DailyRevenue += b.ServicePrice
		}
	}

	return stats, nil
}

// ClientIDs получатели рассылки для группы
func (s *BookingService) ClientIDs(ctx context.Context, group model.ClientGroup) ([]int64, error) {
	var day time.Time
	switch group {
	case model.ClientGroupAll:
		return s.bookingRepo.ClientIDs(ctx, nil, nil)
	case model.ClientGroupToday:
		day = s.today()
	case model.ClientGroupTomorrow:
		day = s.today().AddDate(0, 0, 1)
	default:
		return nil, fmt.Errorf("%w: unknown client group %q", model.ErrValidation, group)
	}

	next := day.AddDate(0, 0, 1)
	return s.bookingRepo.ClientIDs(ctx, &day, &next)
}

// MarkReminded отмечает отправку напоминания
func (s *BookingService) MarkReminded(ctx context.Context, id int64) error {
	if err := s.bookingRepo.MarkReminded(ctx, id, s.now()); err != nil {
		return fmt.Errorf("mark reminded: %w", err)
	}
	return nil
}

func (s *BookingService) today() time.Time {
	return model.DateOf(s.now(), s.loc)
}

// publish отправляет событие. Ошибка шины не влияет на результат операции.
func (s *BookingService) publish(ctx context.Context, event events.Event) {
	err := s.publisher.Publish(ctx, event)
	s.metrics.EventPublished(event.Type, err == nil)
	if err != nil {
		s.logger.Warn("Failed to publish booking event",
			zap.String("type", event.Type),
			zap.Int64("booking_id", event.BookingID),
			zap.Error(err),
		)
	}
}

// weekStart понедельник недели, в которую входит day
func weekStart(day time.Time) time.Time {
	offset := (int(day.Weekday()) + 6) % 7
	return day.AddDate(0, 0, -offset)
}
