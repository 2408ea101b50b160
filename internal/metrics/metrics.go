// Package metrics содержит prometheus метрики бота
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const namespace = "studio_booking"

// Metrics набор метрик. Методы безопасны для nil.
type Metrics struct {
	bookingsCreated      prometheus.Counter
	bookingConflicts     prometheus.Counter
	statusChanges        *prometheus.CounterVec
	availabilityDuration prometheus.Histogram
	slotsGenerated       prometheus.Counter
	reminders            *prometheus.CounterVec
	eventsPublished      *prometheus.CounterVec

	gatherer prometheus.Gatherer
}

// New регистрирует метрики в реестре
func New(reg *prometheus.Registry) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		bookingsCreated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "bookings_created_total",
			Help:      "Number of bookings recorded in the ledger.",
		}),
		bookingConflicts: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_conflicts_total",
			Help:      "Number of booking attempts rejected because the time was taken.",
		}),
		statusChanges: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "booking_status_changes_total",
			Help:      "Booking status transitions by target status.",
		}, []string{"status"}),
		availabilityDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "availability_query_duration_seconds",
			Help:      "Latency of availability calculations.",
			Buckets:   prometheus.DefBuckets,
		}),
		slotsGenerated: factory.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "schedule_slots_generated_total",
			Help:      "Schedule slots inserted by the grid generator.",
		}),
		reminders: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reminders_total",
			Help:      "Reminder deliveries by result.",
		}, []string{"result"}),
		eventsPublished: factory.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "events_published_total",
			Help:      "Ledger events sent to the message bus by type and result.",
		}, []string{"type", "result"}),
		gatherer: reg,
	}
}

// Handler отдаёт метрики в формате prometheus
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.gatherer, promhttp.HandlerOpts{})
}

func (m *Metrics) BookingCreated() {
	if m == nil {
		return
	}
	m.bookingsCreated.Inc()
}

func (m *Metrics) BookingConflict() {
	if m == nil {
		return
	}
	m.bookingConflicts.Inc()
}

func (m *Metrics) StatusChanged(status string) {
	if m == nil {
		return
	}
	m.statusChanges.WithLabelValues(status).Inc()
}

func (m *Metrics) ObserveAvailability(seconds float64) {
	if m == nil {
		return
	}
	m.availabilityDuration.Observe(seconds)
}

func (m *Metrics) SlotsGenerated(n int64) {
	if m == nil || n <= 0 {
		return
	}
	m.slotsGenerated.Add(float64(n))
}

func (m *Metrics) Reminder(ok bool) {
	if m == nil {
		return
	}
	m.reminders.WithLabelValues(result(ok)).Inc()
}

func (m *Metrics) EventPublished(eventType string, ok bool) {
	if m == nil {
		return
	}
	m.eventsPublished.WithLabelValues(eventType, result(ok)).Inc()
}

func result(ok bool) string {
	if ok {
		return "ok"
	}
	return "error"
}
