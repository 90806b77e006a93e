package metrics

import "github.com/prometheus/client_golang/prometheus"

// BookingMetrics exposes counters/histograms for the booking front end.
type BookingMetrics struct {
	backendTotal   *prometheus.CounterVec
	backendLatency *prometheus.HistogramVec
	bookingsTotal  *prometheus.CounterVec
	cancelsTotal   *prometheus.CounterVec
	transitions    *prometheus.CounterVec
}

// NewBookingMetrics registers the collectors on reg, or the default
// registerer when reg is nil.
func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		backendTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tennis",
			Subsystem: "backend",
			Name:      "requests_total",
			Help:      "Total booking backend requests",
		}, []string{"endpoint", "status"}),
		backendLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "tennis",
			Subsystem: "backend",
			Name:      "request_latency_seconds",
			Help:      "Latency of booking backend requests",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
		bookingsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tennis",
			Subsystem: "wizard",
			Name:      "bookings_total",
			Help:      "Booking submissions by outcome",
		}, []string{"outcome"}),
		cancelsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tennis",
			Subsystem: "lookup",
			Name:      "cancellations_total",
			Help:      "Booking cancellations by outcome",
		}, []string{"outcome"}),
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "tennis",
			Subsystem: "wizard",
			Name:      "transitions_total",
			Help:      "Wizard state transitions by target stage",
		}, []string{"stage"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.backendTotal, m.backendLatency, m.bookingsTotal, m.cancelsTotal, m.transitions)
	return m
}

// ObserveBackend records one backend round trip. status is the HTTP status
// code as text, or "error" for transport failures.
func (m *BookingMetrics) ObserveBackend(endpoint, status string, seconds float64) {
	if m == nil {
		return
	}
	m.backendTotal.WithLabelValues(endpoint, status).Inc()
	m.backendLatency.WithLabelValues(endpoint).Observe(seconds)
}

// ObserveBooking counts a booking submission by outcome.
func (m *BookingMetrics) ObserveBooking(outcome string) {
	if m == nil {
		return
	}
	m.bookingsTotal.WithLabelValues(outcome).Inc()
}

// ObserveCancel counts a cancellation attempt by outcome.
func (m *BookingMetrics) ObserveCancel(outcome string) {
	if m == nil {
		return
	}
	m.cancelsTotal.WithLabelValues(outcome).Inc()
}

// ObserveTransition counts entry into a wizard stage.
func (m *BookingMetrics) ObserveTransition(stage string) {
	if m == nil {
		return
	}
	m.transitions.WithLabelValues(stage).Inc()
}
