package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	dto "github.com/prometheus/client_model/go"
)

func TestFrontendMetricsObserve(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewFrontendMetrics(reg)
	m.ObserveBackendCall("available_times", "200", 0.05)
	m.ObserveSubmission("success")
	m.ObserveAvailabilityFallback()
	m.ObserveStaleAvailability()
	m.ObserveChatTurn("reply")
	m.ObserveAdminMutation("cancel", "success")

	if got := testutil.ToFloat64(m.backendTotal.WithLabelValues("available_times", "200")); got != 1 {
		t.Fatalf("backend counter = %v, want 1", got)
	}
	if got := testutil.ToFloat64(m.availabilityFallback); got != 1 {
		t.Fatalf("fallback counter = %v, want 1", got)
	}
}

func TestFrontendMetricsNilSafe(t *testing.T) {
	var m *FrontendMetrics
	m.ObserveBackendCall("chatbot", "error", 0.1)
	m.ObserveSubmission("failure")
	m.ObserveAvailabilityFallback()
	m.ObserveStaleAvailability()
	m.ObserveChatTurn("fallback")
	m.ObserveAdminMutation("working_hours", "failure")
}

func TestBackendLatencyHistogramGathered(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewFrontendMetrics(reg)
	m.ObserveBackendCall("chatbot", "200", 0.2)
	m.ObserveBackendCall("chatbot", "500", 0.4)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	var family *dto.MetricFamily
	for _, mf := range mfs {
		if mf.GetName() == "elitecuts_backend_request_latency_seconds" {
			family = mf
			break
		}
	}
	if family == nil {
		t.Fatalf("latency histogram not exported")
	}
	var samples uint64
	for _, metric := range family.Metric {
		if hasLabel(metric, "endpoint", "chatbot") {
			samples += metric.GetHistogram().GetSampleCount()
		}
	}
	if samples != 2 {
		t.Fatalf("sample count = %d, want 2", samples)
	}
}

func hasLabel(metric *dto.Metric, name, value string) bool {
	for _, lp := range metric.Label {
		if lp.GetName() == name && lp.GetValue() == value {
			return true
		}
	}
	return false
}
