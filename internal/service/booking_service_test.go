package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Freeeeeet/studio_booking_bot/internal/events"
	"github.com/Freeeeeet/studio_booking_bot/internal/model"
)

func TestBookingService_Create(t *testing.T) {
	h := newHarness(t, openEveryDay(t))
	ctx := context.Background()
	start := at("2024-06-10", "14:00")

	b, err := h.bookings.Create(ctx, 7, 3, start, nil)
	require.NoError(t, err)

	assert.NotZero(t, b.ID)
	assert.Equal(t, model.BookingStatusPending, b.Status)
	assert.True(t, start.Equal(b.StartAt))
	assert.True(t, start.Add(90*time.Minute).Equal(b.EndAt))
	assert.Equal(t, 1, h.tx.calls)

	list, err := h.bookings.ByUser(ctx, 7)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.True(t, start.Equal(list[0].StartAt))
	assert.Equal(t, model.BookingStatusPending, list[0].Status)

	require.Len(t, h.publisher.events, 1)
	assert.Equal(t, events.BookingCreated, h.publisher.events[0].Type)
	assert.Equal(t, b.ID, h.publisher.events[0].BookingID)
}

func TestBookingService_CreateConflicts(t *testing.T) {
	h := newHarness(t, openEveryDay(t))
	ctx := context.Background()

	// 90 минут с 14:00 занимают 14:00, 14:30, 15:00
	_, err := h.bookings.Create(ctx, 7, 3, at("2024-06-10", "14:00"), nil)
	require.NoError(t, err)

	tests := []struct {
		name    string
		service int64
		start   string
		wantErr error
	}{
		{"same start", 1, "14:00", model.ErrConflict},
		{"inside", 1, "15:00", model.ErrConflict},
		{"overlaps beginning", 2, "13:30", model.ErrConflict},
		{"right after", 1, "15:30", nil},
		{"right before", 1, "13:30", nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := h.bookings.Create(ctx, 8, tt.service, at("2024-06-10", tt.start), nil)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestBookingService_CreateRoundsShortServiceToSlot(t *testing.T) {
	h := newHarness(t, openEveryDay(t))
	ctx := context.Background()

	// 20 минут занимают слот целиком
	_, err := h.bookings.Create(ctx, 7, 4, at("2024-06-10", "10:00"), nil)
	require.NoError(t, err)

	_, err = h.bookings.Create(ctx, 8, 1, at("2024-06-10", "10:20"), nil)
	assert.ErrorIs(t, err, model.ErrConflict)

	_, err = h.bookings.Create(ctx, 8, 1, at("2024-06-10", "10:30"), nil)
	assert.NoError(t, err)
}

func TestBookingService_CreateAfterCancel(t *testing.T) {
	h := newHarness(t, openEveryDay(t))
	ctx := context.Background()

	b, err := h.bookings.Create(ctx, 7, 2, at("2024-06-10", "14:00"), nil)
	require.NoError(t, err)
	_, err = h.bookings.SetStatus(ctx, b.ID, model.BookingStatusCancelled)
	require.NoError(t, err)

	_, err = h.bookings.Create(ctx, 8, 2, at("2024-06-10", "14:00"), nil)
	assert.NoError(t, err)
}

func TestBookingService_OwnerRebooksAfterCancel(t *testing.T) {
	h := newHarness(t, openEveryDay(t))
	ctx := context.Background()

	b, err := h.bookings.Create(ctx, 7, 2, at("2024-06-10", "14:00"), nil)
	require.NoError(t, err)
	_, err = h.bookings.CancelByClient(ctx, 7, b.ID)
	require.NoError(t, err)

	again, err := h.bookings.Create(ctx, 7, 2, at("2024-06-10", "14:00"), nil)
	require.NoError(t, err)
	assert.NotEqual(t, b.ID, again.ID)
	assert.Equal(t, model.BookingStatusPending, again.Status)

	_, err = h.bookings.Create(ctx, 7, 1, at("2024-06-10", "14:00"), nil)
	assert.ErrorIs(t, err, model.ErrConflict)
}

func TestBookingService_CreateErrors(t *testing.T) {
	h := newHarness(t, openEveryDay(t))
	ctx := context.Background()

	_, err := h.bookings.Create(ctx, 7, 999, at("2024-06-10", "14:00"), nil)
	assert.ErrorIs(t, err, model.ErrNotFound)

	h.ledger.failWith = errors.Join(model.ErrPersistence, errors.New("connection refused"))
	_, err = h.bookings.Create(ctx, 7, 1, at("2024-06-10", "14:00"), nil)
	assert.ErrorIs(t, err, model.ErrPersistence)
	assert.Empty(t, h.publisher.events)
}

func TestBookingService_CreateIgnoresPublishFailure(t *testing.T) {
	h := newHarness(t, openEveryDay(t))
	h.publisher.err = errors.New("broker unavailable")

	b, err := h.bookings.Create(context.Background(), 7, 1, at("2024-06-10", "14:00"), nil)
	require.NoError(t, err)
	assert.NotZero(t, b.ID)
}

func TestBookingService_SetStatus(t *testing.T) {
	tests := []struct {
		name    string
		steps   []model.BookingStatus
		wantErr error
	}{
		{"confirm", []model.BookingStatus{model.BookingStatusConfirmed}, nil},
		{"reject", []model.BookingStatus{model.BookingStatusCancelled}, nil},
		{"confirmed is terminal", []model.BookingStatus{model.BookingStatusConfirmed, model.BookingStatusCancelled}, model.ErrValidation},
		{"cancelled is terminal", []model.BookingStatus{model.BookingStatusCancelled, model.BookingStatusConfirmed}, model.ErrValidation},
		{"back to pending", []model.BookingStatus{model.BookingStatusPending}, model.ErrValidation},
		{"unknown status", []model.BookingStatus{"done"}, model.ErrValidation},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHarness(t, openEveryDay(t))
			ctx := context.Background()

			b, err := h.bookings.Create(ctx, 7, 1, at("2024-06-10", "14:00"), nil)
			require.NoError(t, err)

			for i, status := range tt.steps {
				_, err = h.bookings.SetStatus(ctx, b.ID, status)
				if i < len(tt.steps)-1 {
					require.NoError(t, err)
				}
			}

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)

			stored, err := h.bookings.GetByID(ctx, b.ID)
			require.NoError(t, err)
			assert.Equal(t, tt.steps[len(tt.steps)-1], stored.Status)

			last := h.publisher.events[len(h.publisher.events)-1]
			assert.Equal(t, events.BookingStatusChanged, last.Type)
			assert.Equal(t, model.BookingStatusPending, last.PreviousStatus)
		})
	}
}

func TestBookingService_SetStatusNotFound(t *testing.T) {
	h := newHarness(t, openEveryDay(t))
	_, err := h.bookings.SetStatus(context.Background(), 404, model.BookingStatusConfirmed)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestBookingService_CancelByClient(t *testing.T) {
	h := newHarness(t, openEveryDay(t))
	ctx := context.Background()

	b, err := h.bookings.Create(ctx, 7, 1, at("2024-06-10", "14:00"), nil)
	require.NoError(t, err)

	_, err = h.bookings.CancelByClient(ctx, 8, b.ID)
	assert.ErrorIs(t, err, model.ErrForbidden)

	cancelled, err := h.bookings.CancelByClient(ctx, 7, b.ID)
	require.NoError(t, err)
	assert.Equal(t, model.BookingStatusCancelled, cancelled.Status)

	confirmed, err := h.bookings.Create(ctx, 7, 1, at("2024-06-10", "16:00"), nil)
	require.NoError(t, err)
	_, err = h.bookings.SetStatus(ctx, confirmed.ID, model.BookingStatusConfirmed)
	require.NoError(t, err)

	_, err = h.bookings.CancelByClient(ctx, 7, confirmed.ID)
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestBookingService_Queries(t *testing.T) {
	h := newHarness(t, openEveryDay(t))
	ctx := context.Background()

	create := func(user, service int64, date, clock string, status model.BookingStatus) *model.Booking {
		b, err := h.bookings.Create(ctx, user, service, at(date, clock), nil)
		require.NoError(t, err)
		if status != model.BookingStatusPending {
			_, err = h.bookings.SetStatus(ctx, b.ID, status)
			require.NoError(t, err)
		}
		return b
	}

	todayConfirmed := create(7, 1, "2024-06-10", "12:00", model.BookingStatusConfirmed)
	create(8, 2, "2024-06-10", "15:00", model.BookingStatusPending)
	tomorrow := create(8, 3, "2024-06-11", "10:00", model.BookingStatusConfirmed)
	create(7, 1, "2024-06-16", "11:00", model.BookingStatusConfirmed) // воскресенье той же недели
	create(7, 1, "2024-06-17", "11:00", model.BookingStatusConfirmed) // следующая неделя
	create(7, 2, "2024-06-12", "11:00", model.BookingStatusCancelled)

	today, err := h.bookings.TodayConfirmed(ctx)
	require.NoError(t, err)
	require.Len(t, today, 1)
	assert.Equal(t, todayConfirmed.ID, today[0].ID)

	next, err := h.bookings.TomorrowConfirmed(ctx)
	require.NoError(t, err)
	require.Len(t, next, 1)
	assert.Equal(t, tomorrow.ID, next[0].ID)

	pending, err := h.bookings.Pending(ctx)
	require.NoError(t, err)
	assert.Len(t, pending, 1)

	week, err := h.bookings.ByWeek(ctx, mustDate("2024-06-13"))
	require.NoError(t, err)
	assert.Len(t, week, 3)

	byDate, err := h.bookings.ByDate(ctx, mustDate("2024-06-10"))
	require.NoError(t, err)
	assert.Len(t, byDate, 2)

	empty, err := h.bookings.ByDate(ctx, mustDate("2024-07-01"))
	require.NoError(t, err)
	assert.NotNil(t, empty)
	assert.Empty(t, empty)

	recent, err := h.bookings.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Greater(t, recent[0].ID, recent[1].ID)

	found, err := h.bookings.Search(ctx, "ПОКРЫТИЕМ")
	require.NoError(t, err)
	assert.Len(t, found, 1)

	found, err = h.bookings.Search(ctx, "masha")
	require.NoError(t, err)
	assert.Len(t, found, 2)

	page, err := h.bookings.List(ctx, 4, 4)
	require.NoError(t, err)
	assert.Len(t, page, 2)

	_, err = h.bookings.List(ctx, 0, 0)
	assert.ErrorIs(t, err, model.ErrValidation)

	upcoming, err := h.bookings.UpcomingByUser(ctx, 7)
	require.NoError(t, err)
	assert.Len(t, upcoming, 3)
}

func TestBookingService_DailyStatistics(t *testing.T) {
	h := newHarness(t, openEveryDay(t))
	ctx := context.Background()
	h.ledger.services[10] = &model.Service{ID: 10, Name: "A", Price: 1500, DurationMinutes: 30}
	h.ledger.services[11] = &model.Service{ID: 11, Name: "B", Price: 2000, DurationMinutes: 30}

	confirmed, err := h.bookings.Create(ctx, 7, 10, at("2024-06-10", "12:00"), nil)
	require.NoError(t, err)
	_, err = h.bookings.SetStatus(ctx, confirmed.ID, model.BookingStatusConfirmed)
	require.NoError(t, err)
	_, err = h.bookings.Create(ctx, 8, 11, at("2024-06-10", "14:00"), nil)
	require.NoError(t, err)

	stats, err := h.bookings.DailyStatistics(ctx, mustDate("2024-06-10"))
	require.NoError(t, err)

	assert.Equal(t, 2, stats.TotalCount)
	assert.Equal(t, map[model.BookingStatus]int{
		model.BookingStatusConfirmed: 1,
		model.BookingStatusPending:   1,
	}, stats.StatusCounts)
	assert.Equal(t, int64(1500), stats.DailyRevenue)
}

func TestBookingService_Statistics(t *testing.T) {
	h := newHarness(t, openEveryDay(t))
	ctx := context.Background()

	b, err := h.bookings.Create(ctx, 7, 2, at("2024-06-10", "12:00"), nil)
	require.NoError(t, err)
	_, err = h.bookings.SetStatus(ctx, b.ID, model.BookingStatusConfirmed)
	require.NoError(t, err)
	_, err = h.bookings.Create(ctx, 8, 1, at("2024-06-11", "12:00"), nil)
	require.NoError(t, err)

	stats, err := h.bookings.Statistics(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, stats.Confirmed)
	assert.Equal(t, 1, stats.Pending)
	assert.Equal(t, 1, stats.TodayConfirmed)
	assert.Equal(t, int64(200000), stats.Revenue)
	assert.Equal(t, 2, stats.UniqueClients)
}

func TestBookingService_ClientIDs(t *testing.T) {
	h := newHarness(t, openEveryDay(t))
	ctx := context.Background()

	b, err := h.bookings.Create(ctx, 7, 1, at("2024-06-11", "12:00"), nil)
	require.NoError(t, err)
	_, err = h.bookings.SetStatus(ctx, b.ID, model.BookingStatusConfirmed)
	require.NoError(t, err)
	_, err = h.bookings.Create(ctx, 8, 1, at("2024-06-11", "14:00"), nil)
	require.NoError(t, err)

	all, err := h.bookings.ClientIDs(ctx, model.ClientGroupAll)
	require.NoError(t, err)
	assert.Equal(t, []int64{7, 8}, all)

	tomorrow, err := h.bookings.ClientIDs(ctx, model.ClientGroupTomorrow)
	require.NoError(t, err)
	assert.Equal(t, []int64{7}, tomorrow)

	today, err := h.bookings.ClientIDs(ctx, model.ClientGroupToday)
	require.NoError(t, err)
	assert.Empty(t, today)

	_, err = h.bookings.ClientIDs(ctx, "vip")
	assert.ErrorIs(t, err, model.ErrValidation)
}

func TestWeekStart(t *testing.T) {
	tests := map[string]string{
		"2024-06-10": "2024-06-10",
		"2024-06-13": "2024-06-10",
		"2024-06-16": "2024-06-10",
		"2024-06-17": "2024-06-17",
	}
	for day, want := range tests {
		assert.Equal(t, want, weekStart(mustDate(day)).Format(model.DateLayout), day)
	}
}
