package batch

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	STATUS_SCORED    = "scored"
	STATUS_UNDEFINED = "undefined"
	STATUS_FAILED    = "failed"
	STATUS_SKIPPED   = "skipped"
)

type Metrics struct {
	users    *prometheus.CounterVec
	duration prometheus.Histogram
}

// NewMetrics. register the batch collectors on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		users: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pathcompare",
			Name:      "users_total",
			Help:      "Users processed, by outcome.",
		}, []string{"status"}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "pathcompare",
			Name:      "user_duration_seconds",
			Help:      "Time spent cleaning, detecting stays, routing and scoring one user.",
			Buckets:   prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
	}
	reg.MustRegister(m.users, m.duration)
	return m
}

func (m *Metrics) skipped(n int) {
	m.users.WithLabelValues(STATUS_SKIPPED).Add(float64(n))
}

func (m *Metrics) observe(status string, seconds float64) {
	m.users.WithLabelValues(status).Inc()
	if status != STATUS_SKIPPED {
		m.duration.Observe(seconds)
	}
}
