package metrics

import "github.com/prometheus/client_golang/prometheus"

// FrontendMetrics exposes counters/histograms for backend calls and the
// booking, admin and chat flows built on them.
type FrontendMetrics struct {
	backendTotal         *prometheus.CounterVec
	backendLatency       *prometheus.HistogramVec
	submissionsTotal     *prometheus.CounterVec
	availabilityFallback prometheus.Counter
	staleAvailability    prometheus.Counter
	chatTurnsTotal       *prometheus.CounterVec
	adminMutationsTotal  *prometheus.CounterVec
}

func NewFrontendMetrics(reg prometheus.Registerer) *FrontendMetrics {
	m := &FrontendMetrics{
		backendTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "elitecuts",
			Subsystem: "backend",
			Name:      "requests_total",
			Help:      "Total backend API calls",
		}, []string{"endpoint", "status"}),
		backendLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "elitecuts",
			Subsystem: "backend",
			Name:      "request_latency_seconds",
			Help:      "Latency of backend API calls",
			Buckets:   prometheus.DefBuckets,
		}, []string{"endpoint"}),
		submissionsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "elitecuts",
			Subsystem: "booking",
			Name:      "submissions_total",
			Help:      "Reservation submissions by outcome",
		}, []string{"outcome"}),
		availabilityFallback: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "elitecuts",
			Subsystem: "booking",
			Name:      "availability_fallback_total",
			Help:      "Availability fetches that failed and were shown as no slots",
		}),
		staleAvailability: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "elitecuts",
			Subsystem: "booking",
			Name:      "availability_stale_discarded_total",
			Help:      "Availability responses discarded because the selected date changed",
		}),
		chatTurnsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "elitecuts",
			Subsystem: "chat",
			Name:      "turns_total",
			Help:      "Chat widget turns by outcome",
		}, []string{"outcome"}),
		adminMutationsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "elitecuts",
			Subsystem: "admin",
			Name:      "mutations_total",
			Help:      "Admin dashboard mutations by kind and outcome",
		}, []string{"kind", "outcome"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(
		m.backendTotal,
		m.backendLatency,
		m.submissionsTotal,
		m.availabilityFallback,
		m.staleAvailability,
		m.chatTurnsTotal,
		m.adminMutationsTotal,
	)
	return m
}

func (m *FrontendMetrics) ObserveBackendCall(endpoint, status string, seconds float64) {
	if m == nil {
		return
	}
	m.backendTotal.WithLabelValues(endpoint, status).Inc()
	m.backendLatency.WithLabelValues(endpoint).Observe(seconds)
}

func (m *FrontendMetrics) ObserveSubmission(outcome string) {
	if m == nil {
		return
	}
	m.submissionsTotal.WithLabelValues(outcome).Inc()
}

func (m *FrontendMetrics) ObserveAvailabilityFallback() {
	if m == nil {
		return
	}
	m.availabilityFallback.Inc()
}

func (m *FrontendMetrics) ObserveStaleAvailability() {
	if m == nil {
		return
	}
	m.staleAvailability.Inc()
}

func (m *FrontendMetrics) ObserveChatTurn(outcome string) {
	if m == nil {
		return
	}
	m.chatTurnsTotal.WithLabelValues(outcome).Inc()
}

func (m *FrontendMetrics) ObserveAdminMutation(kind, outcome string) {
	if m == nil {
		return
	}
	m.adminMutationsTotal.WithLabelValues(kind, outcome).Inc()
}
