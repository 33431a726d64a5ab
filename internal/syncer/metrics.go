package syncer

import "github.com/prometheus/client_golang/prometheus"

// Metrics holds the Prometheus instruments published by the sync engine.
type Metrics struct {
	PassesTotal       prometheus.Counter
	UserFailuresTotal *prometheus.CounterVec
	MergedDaysTotal   prometheus.Counter
	PassDuration      prometheus.Histogram
}

// NewMetrics creates the sync instruments and registers them with reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		PassesTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "slackpulse",
			Subsystem: "sync",
			Name:      "passes_total",
			Help:      "Number of completed sync passes.",
		}),
		UserFailuresTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "slackpulse",
			Subsystem: "sync",
			Name:      "user_failures_total",
			Help:      "Number of per-user walk failures, by user id.",
		}, []string{"user_id"}),
		MergedDaysTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "slackpulse",
			Subsystem: "sync",
			Name:      "merged_days_total",
			Help:      "Number of (user, day) rows merged into the counter store.",
		}),
		PassDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "slackpulse",
			Subsystem: "sync",
			Name:      "pass_duration_seconds",
			Help:      "Wall-clock duration of sync passes.",
			Buckets:   prometheus.ExponentialBuckets(0.5, 2, 10),
		}),
	}

	reg.MustRegister(m.PassesTotal, m.UserFailuresTotal, m.MergedDaysTotal, m.PassDuration)
	return m
}
