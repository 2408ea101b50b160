package metrics

import (
	"net/http/httptest"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetrics_Counters(t *testing.T) {
	m := New(prometheus.NewRegistry())

	m.BookingCreated()
	m.BookingCreated()
	m.BookingConflict()
	m.StatusChanged("confirmed")
	m.SlotsGenerated(20)
	m.SlotsGenerated(0)
	m.Reminder(true)
	m.Reminder(false)
	m.EventPublished("booking.created", true)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.bookingsCreated))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.bookingConflicts))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.statusChanges.WithLabelValues("confirmed")))
	assert.Equal(t, 20.0, testutil.ToFloat64(m.slotsGenerated))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.reminders.WithLabelValues("error")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.eventsPublished.WithLabelValues("booking.created", "ok")))
}

func TestMetrics_NilSafe(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.BookingCreated()
		m.BookingConflict()
		m.StatusChanged("cancelled")
		m.ObserveAvailability(0.1)
		m.SlotsGenerated(1)
		m.Reminder(true)
		m.EventPublished("booking.created", false)
	})
}

func TestMetrics_Handler(t *testing.T) {
	m := New(prometheus.NewRegistry())
	m.BookingCreated()

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest("GET", "/metrics", nil))

	require.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "studio_booking_bookings_created_total 1")
}
