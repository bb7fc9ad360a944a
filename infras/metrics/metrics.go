package metrics

import (
	"net/http"
	"salon/shared/failure"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	namespace = "salon"
	subsystem = "booking"

	OutcomeSuccess  = "success"
	OutcomeConflict = "conflict"
	OutcomeRejected = "rejected"
	OutcomeError    = "error"
)

// BookingMetrics exposes counters and histograms for the booking flows. A nil receiver is a no-op.
type BookingMetrics struct {
	reservationsTotal   *prometheus.CounterVec
	transitionsTotal    *prometheus.CounterVec
	eventsTotal         *prometheus.CounterVec
	availabilitySeconds prometheus.Histogram
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		reservationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "reservations_total",
			Help:      "Reservation create attempts by outcome",
		}, []string{"outcome"}),
		transitionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "transitions_total",
			Help:      "Reservation status transitions by source, target and outcome",
		}, []string{"from", "to", "outcome"}),
		eventsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "events_total",
			Help:      "Booking events published by type and outcome",
		}, []string{"type", "outcome"}),
		availabilitySeconds: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: subsystem,
			Name:      "availability_seconds",
			Help:      "Latency of available slot computation",
			Buckets:   prometheus.DefBuckets,
		}),
	}

	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	reg.MustRegister(m.reservationsTotal, m.transitionsTotal, m.eventsTotal, m.availabilitySeconds)

	return m
}

func (m *BookingMetrics) ObserveReservation(outcome string) {
	if m == nil {
		return
	}

	m.reservationsTotal.WithLabelValues(outcome).Inc()
}

func (m *BookingMetrics) ObserveTransition(from, to, outcome string) {
	if m == nil {
		return
	}

	m.transitionsTotal.WithLabelValues(from, to, outcome).Inc()
}

func (m *BookingMetrics) ObserveEvent(eventType, outcome string) {
	if m == nil {
		return
	}

	m.eventsTotal.WithLabelValues(eventType, outcome).Inc()
}

func (m *BookingMetrics) ObserveAvailability(started time.Time) {
	if m == nil {
		return
	}

	m.availabilitySeconds.Observe(time.Since(started).Seconds())
}

// Outcome classifies err into one of the outcome labels.
func Outcome(err error) string {
	switch {
	case err == nil:
		return OutcomeSuccess
	case failure.IsConflict(err):
		return OutcomeConflict
	case failure.GetCode(err) < http.StatusInternalServerError:
		return OutcomeRejected
	default:
		return OutcomeError
	}
}
