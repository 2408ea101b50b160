package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Freeeeeet/studio_booking_bot/internal/model"
)

func newNotificationHarness(t *testing.T) (*harness, *fakeNotifier, *fakeAdminRepo, *NotificationService) {
	h := newHarness(t, openEveryDay(t))
	notifier := &fakeNotifier{failFor: map[int64]bool{}}
	admins := &fakeAdminRepo{}
	users := NewUserService(&fakeUserRepo{users: map[int64]*model.User{}}, admins, zaptest.NewLogger(t))
	svc := NewNotificationService(notifier, h.bookings, users, "ул. Садовая-Триумфальная, 4/10", nil, zaptest.NewLogger(t))
	return h, notifier, admins, svc
}

func confirmedTomorrow(t *testing.T, h *harness, user int64, clock string) *model.Booking {
	t.Helper()
	b, err := h.bookings.Create(context.Background(), user, 1, at("2024-06-11", clock), nil)
	require.NoError(t, err)
	_, err = h.bookings.SetStatus(context.Background(), b.ID, model.BookingStatusConfirmed)
	require.NoError(t, err)
	return b
}

func TestNotificationService_SendReminders(t *testing.T) {
	h, notifier, _, svc := newNotificationHarness(t)
	ctx := context.Background()

	first := confirmedTomorrow(t, h, 7, "10:00")
	confirmedTomorrow(t, h, 8, "12:00")
	// pending на завтра напоминание не получает
	_, err := h.bookings.Create(ctx, 7, 1, at("2024-06-11", "15:00"), nil)
	require.NoError(t, err)

	notifier.failFor[8] = true

	sent, failed, err := svc.SendReminders(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.Equal(t, 1, failed)
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, int64(7), notifier.sent[0].chatID)
	assert.Contains(t, notifier.sent[0].text, "Напоминание")
	assert.Contains(t, notifier.sent[0].text, "Садовая")

	stored, err := h.bookingRepo.GetByID(ctx, first.ID)
	require.NoError(t, err)
	assert.NotNil(t, stored.RemindedAt)

	// Повторный запуск не дублирует, но повторяет неудачные
	notifier.failFor[8] = false
	sent, failed, err = svc.SendReminders(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.Zero(t, failed)
	assert.Equal(t, int64(8), notifier.sent[1].chatID)

	sent, _, err = svc.SendReminders(ctx)
	require.NoError(t, err)
	assert.Zero(t, sent)
}

func TestNotificationService_NotifyAdminsNewBooking(t *testing.T) {
	h, notifier, admins, svc := newNotificationHarness(t)
	ctx := context.Background()
	admins.ids = []int64{100, 200, 300}
	notifier.failFor[200] = true

	b, err := h.bookings.Create(ctx, 7, 1, at("2024-06-11", "10:00"), nil)
	require.NoError(t, err)
	details, err := h.bookings.GetByID(ctx, b.ID)
	require.NoError(t, err)

	sent, err := svc.NotifyAdminsNewBooking(ctx, details)
	require.NoError(t, err)
	assert.Equal(t, 2, sent)
	for _, m := range notifier.sent {
		assert.Contains(t, m.text, "Новая запись")
		assert.Contains(t, m.text, "@anna")
	}
}

func TestNotificationService_NotifyClientStatus(t *testing.T) {
	h, notifier, _, svc := newNotificationHarness(t)
	ctx := context.Background()

	b := confirmedTomorrow(t, h, 7, "10:00")
	details, err := h.bookings.GetByID(ctx, b.ID)
	require.NoError(t, err)

	require.NoError(t, svc.NotifyClientStatus(ctx, details))
	require.Len(t, notifier.sent, 1)
	assert.Equal(t, int64(7), notifier.sent[0].chatID)
	assert.Contains(t, notifier.sent[0].text, "подтверждена")

	notifier.failFor[7] = true
	assert.Error(t, svc.NotifyClientStatus(ctx, details))
}

func TestNotificationService_Broadcast(t *testing.T) {
	h, notifier, _, svc := newNotificationHarness(t)
	ctx := context.Background()

	confirmedTomorrow(t, h, 7, "10:00")
	_, err := h.bookings.Create(ctx, 8, 1, at("2024-06-12", "10:00"), nil)
	require.NoError(t, err)

	sent, failed, err := svc.Broadcast(ctx, model.ClientGroupAll, "Скидка 10% на дизайн")
	require.NoError(t, err)
	assert.Equal(t, 2, sent)
	assert.Zero(t, failed)

	notifier.sent = nil
	sent, _, err = svc.Broadcast(ctx, model.ClientGroupTomorrow, "Завтра работаем до 20:00")
	require.NoError(t, err)
	assert.Equal(t, 1, sent)
	assert.Equal(t, int64(7), notifier.sent[0].chatID)

	_, _, err = svc.Broadcast(ctx, model.ClientGroupAll, "")
	assert.ErrorIs(t, err, model.ErrValidation)
}
