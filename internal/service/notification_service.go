package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/Freeeeeet/studio_booking_bot/internal/formatting"
	"github.com/Freeeeeet/studio_booking_bot/internal/metrics"
	"github.com/Freeeeeet/studio_booking_bot/internal/model"
)

// ReminderSource часть журнала, нужная для уведомлений
type ReminderSource interface {
	TomorrowConfirmed(ctx context.Context) ([]*model.BookingDetails, error)
	MarkReminded(ctx context.Context, id int64) error
	ClientIDs(ctx context.Context, group model.ClientGroup) ([]int64, error)
}

// AdminSource список администраторов
type AdminSource interface {
	AdminIDs(ctx context.Context) ([]int64, error)
}

// NotificationService рассылает уведомления через Notifier.
// Ошибка доставки одному получателю не прерывает рассылку остальным.
type NotificationService struct {
	notifier Notifier
	ledger   ReminderSource
	admins   AdminSource
	address  string
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

func NewNotificationService(
	notifier Notifier,
	ledger ReminderSource,
	admins AdminSource,
	address string,
	m *metrics.Metrics,
	logger *zap.Logger,
) *NotificationService {
	return &NotificationService{
		notifier: notifier,
		ledger:   ledger,
		admins:   admins,
		address:  address,
		metrics:  m,
		logger:   logger,
	}
}

// NotifyAdminsNewBooking сообщает всем администраторам о новой записи
func (s *NotificationService) NotifyAdminsNewBooking(ctx context.Context, details *model.BookingDetails) (int, error) {
	ids, err := s.admins.AdminIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("get admins: %w", err)
	}

	sent, _ := s.sendAll(ctx, ids, formatting.NewBookingAlert(details))
	return sent, nil
}

// NotifyClientStatus сообщает клиенту о новом статусе записи
func (s *NotificationService) NotifyClientStatus(ctx context.Context, details *model.BookingDetails) error {
	if err := s.notifier.Send(ctx, details.UserID, formatting.StatusNotification(details, s.address)); err != nil {
		s.logger.Warn("Failed to notify client about status",
			zap.Int64("booking_id", details.ID),
			zap.Int64("user_id", details.UserID),
			zap.Error(err),
		)
		return fmt.Errorf("send status notification: %w", err)
	}
	return nil
}

// SendReminders напоминает о подтверждённых записях на завтра.
// Запись, по которой напоминание уже ушло, пропускается.
func (s *NotificationService) SendReminders(ctx context.Context) (sent, failed int, err error) {
	bookings, err := s.ledger.TomorrowConfirmed(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("get tomorrow bookings: %w", err)
	}

	for _, b := range bookings {
		if b.RemindedAt != nil {
			continue
		}

		if err := s.notifier.Send(ctx, b.UserID, formatting.Reminder(b, s.address)); err != nil {
			failed++
			s.metrics.Reminder(false)
			s.logger.Warn("Failed to send reminder",
				zap.Int64("booking_id", b.ID),
				zap.Int64("user_id", b.UserID),
				zap.Error(err),
			)
			continue
		}

		sent++
		s.metrics.Reminder(true)

		if err := s.ledger.MarkReminded(ctx, b.ID); err != nil {
			s.logger.Error("Failed to mark booking as reminded",
				zap.Int64("booking_id", b.ID),
				zap.Error(err),
			)
		}
	}

	s.logger.Info("Reminders processed",
		zap.Int("total", len(bookings)),
		zap.Int("sent", sent),
		zap.Int("failed", failed),
	)

	return sent, failed, nil
}

// Broadcast отправляет текст группе клиентов
func (s *NotificationService) Broadcast(ctx context.Context, group model.ClientGroup, text string) (sent, failed int, err error) {
	if text == "" {
		return 0, 0, fmt.Errorf("%w: empty broadcast text", model.ErrValidation)
	}

	ids, err := s.ledger.ClientIDs(ctx, group)
	if err != nil {
		return 0, 0, fmt.Errorf("get recipients: %w", err)
	}

	sent, failed = s.sendAll(ctx, ids, text)

	s.logger.Info("Broadcast finished",
		zap.String("group", string(group)),
		zap.Int("sent", sent),
		zap.Int("failed", failed),
	)

	return sent, failed, nil
}

func (s *NotificationService) sendAll(ctx context.Context, ids []int64, text string) (sent, failed int) {
	for _, id := range ids {
		if err := s.notifier.Send(ctx, id, text); err != nil {
			failed++
			s.logger.Warn("Failed to send message",
				zap.Int64("chat_id", id),
				zap.Error(err),
			)
			continue
		}
		sent++
	}
	return sent, failed
}
