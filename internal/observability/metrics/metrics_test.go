package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func counterValue(t *testing.T, reg *prometheus.Registry, name string, labels map[string]string) float64 {
	t.Helper()
	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
		for _, metric := range family.GetMetric() {
			if matchLabels(metric, labels) {
				return metric.GetCounter().GetValue()
			}
		}
	}
	return 0
}

func matchLabels(metric *dto.Metric, labels map[string]string) bool {
	matched := 0
	for _, pair := range metric.GetLabel() {
		if want, ok := labels[pair.GetName()]; ok {
			if pair.GetValue() != want {
				return false
			}
			matched++
		}
	}
	return matched == len(labels)
}

func TestBookingMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewBookingMetrics(reg)

	m.ObserveBackend("book", "201", 0.2)
	m.ObserveBackend("book", "409", 0.1)
	m.ObserveBackend("book", "409", 0.1)
	m.ObserveBooking("confirmed")
	m.ObserveCancel("failed")
	m.ObserveTransition("date_chosen")

	if got := counterValue(t, reg, "tennis_backend_requests_total", map[string]string{"endpoint": "book", "status": "409"}); got != 2 {
		t.Fatalf("expected 2 conflicts, got %v", got)
	}
	if got := counterValue(t, reg, "tennis_wizard_bookings_total", map[string]string{"outcome": "confirmed"}); got != 1 {
		t.Fatalf("expected 1 confirmed booking, got %v", got)
	}
	if got := counterValue(t, reg, "tennis_lookup_cancellations_total", map[string]string{"outcome": "failed"}); got != 1 {
		t.Fatalf("expected 1 failed cancel, got %v", got)
	}
	if got := counterValue(t, reg, "tennis_wizard_transitions_total", map[string]string{"stage": "date_chosen"}); got != 1 {
		t.Fatalf("expected 1 transition, got %v", got)
	}
}

func TestBookingMetricsNilSafe(t *testing.T) {
	var m *BookingMetrics
	m.ObserveBackend("coaches", "200", 0.1)
	m.ObserveBooking("confirmed")
	m.ObserveCancel("cancelled")
	m.ObserveTransition("no_coach")
}
