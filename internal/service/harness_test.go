package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"github.com/Freeeeeet/studio_booking_bot/internal/config"
	"github.com/Freeeeeet/studio_booking_bot/internal/model"
)

type harness struct {
	ledger       *ledger
	slots        *fakeSlotRepo
	bookingRepo  *fakeBookingRepo
	tx           *fakeTxManager
	publisher    *fakePublisher
	schedule     *config.Schedule
	bookings     *BookingService
	availability *AvailabilityService
	grid         *GridService
}

// openEveryDay расписание без выходных, 09:00-18:00
func openEveryDay(t *testing.T) *config.Schedule {
	t.Helper()
	days := map[time.Weekday]config.DayType{}
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		days[wd] = config.DayWeekday
	}
	var hours []model.TimeOfDay
	for tm := tod("09:00"); tm < tod("18:00"); tm = tm.Add(model.SlotMinutes) {
		hours = append(hours, tm)
	}
	schedule, err := config.NewSchedule(days, hours, hours)
	require.NoError(t, err)
	return schedule
}

func newHarness(t *testing.T, schedule *config.Schedule) *harness {
	t.Helper()
	logger := zaptest.NewLogger(t)

	h := &harness{
		ledger:    newLedger(),
		slots:     newFakeSlotRepo(),
		tx:        &fakeTxManager{},
		publisher: &fakePublisher{},
		schedule:  schedule,
	}
	h.bookingRepo = &fakeBookingRepo{l: h.ledger}

	h.bookings = NewBookingService(h.tx, h.bookingRepo, &fakeServiceRepo{l: h.ledger}, h.publisher, nil, msk, logger)
	h.bookings.now = fixedClock(testNow)

	h.availability = NewAvailabilityService(h.slots, h.bookingRepo, schedule, 30*time.Minute, nil, msk, logger)
	h.availability.now = fixedClock(testNow)

	h.grid = NewGridService(h.slots, h.bookingRepo, schedule, nil, msk, logger)
	h.grid.now = fixedClock(testNow)

	return h
}

func (h *harness) setNow(now time.Time) {
	h.bookings.now = fixedClock(now)
	h.availability.now = fixedClock(now)
	h.grid.now = fixedClock(now)
}
