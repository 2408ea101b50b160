package formatting

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Freeeeeet/studio_booking_bot/internal/model"
)

func TestFormatPrice(t *testing.T) {
	assert.Equal(t, "1500.00 ₽", FormatPrice(150000))
	assert.Equal(t, "12.05 ₽", FormatPrice(1205))
	assert.Equal(t, "1500 ₽", FormatPriceShort(150000))
	assert.Equal(t, "12.50 ₽", FormatPriceShort(1250))
}

func TestPluralizeBookings(t *testing.T) {
	tests := map[int]string{
		1:   "запись",
		2:   "записи",
		5:   "записей",
		11:  "записей",
		21:  "запись",
		24:  "записи",
		112: "записей",
	}
	for n, want := range tests {
		assert.Equal(t, want, PluralizeBookings(n), "n=%d", n)
	}
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "30 мин", FormatDuration(30))
	assert.Equal(t, "2 ч", FormatDuration(120))
	assert.Equal(t, "1 ч 30 мин", FormatDuration(90))
}

func TestStatusNotification(t *testing.T) {
	start := time.Date(2024, 6, 10, 14, 0, 0, 0, time.UTC)
	d := &model.BookingDetails{
		Booking: model.Booking{
			ID:      1,
			StartAt: start,
			EndAt:   start.Add(90 * time.Minute),
			Status:  model.BookingStatusConfirmed,
		},
		ServiceName:  "Маникюр",
		ServicePrice: 150000,
	}

	text := StatusNotification(d, "ул. Садовая, 4")
	assert.Contains(t, text, "подтверждена")
	assert.Contains(t, text, "14:00 - 15:30")
	assert.Contains(t, text, "1500 ₽")
	assert.Contains(t, text, "ул. Садовая, 4")

	d.Status = model.BookingStatusCancelled
	text = StatusNotification(d, "ул. Садовая, 4")
	assert.Contains(t, text, "отменена")
	assert.NotContains(t, text, "Адрес")
}

func TestClientName(t *testing.T) {
	d := &model.BookingDetails{ClientFirstName: "Анна", ClientUsername: "anna"}
	assert.Equal(t, "Анна (@anna)", ClientName(d))

	d = &model.BookingDetails{}
	assert.Equal(t, "Без имени", ClientName(d))
}
