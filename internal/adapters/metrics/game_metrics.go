package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// GameMetricsCollector records simulation activity counters and timings.
// It implements the session.Metrics port.
type GameMetricsCollector struct {
	sessionsCreated *prometheus.CounterVec
	daysProcessed   *prometheus.CounterVec
	bankruptcies    *prometheus.CounterVec
	dayDuration     prometheus.Histogram
	dailyProfit     prometheus.Histogram
}

// NewGameMetricsCollector creates and registers the game metric set
func NewGameMetricsCollector(registry *Registry) *GameMetricsCollector {
	c := &GameMetricsCollector{
		sessionsCreated: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "sessions_created_total",
				Help:      "Total number of game sessions created",
			},
			[]string{"level"},
		),
		daysProcessed: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "days_processed_total",
				Help:      "Total number of simulation days processed",
			},
			[]string{"level"},
		),
		bankruptcies: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "bankruptcies_total",
				Help:      "Total number of sessions ending in bankruptcy",
			},
			[]string{"level"},
		),
		dayDuration: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "day_processing_duration_seconds",
				Help:      "Time spent processing a single simulation day",
				Buckets:   prometheus.ExponentialBuckets(0.0001, 4, 8),
			},
		),
		dailyProfit: prometheus.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "daily_profit",
				Help:      "Distribution of per-day profit across all sessions",
				Buckets:   prometheus.LinearBuckets(-2000, 500, 12),
			},
		),
	}

	registry.MustRegister(
		c.sessionsCreated,
		c.daysProcessed,
		c.bankruptcies,
		c.dayDuration,
		c.dailyProfit,
	)

	return c
}

// RecordSessionCreated increments the session counter for a level
func (c *GameMetricsCollector) RecordSessionCreated(levelID string) {
	c.sessionsCreated.WithLabelValues(levelID).Inc()
}

// RecordDayProcessed records one processed day with its duration and profit
func (c *GameMetricsCollector) RecordDayProcessed(levelID string, seconds float64, profit float64) {
	c.daysProcessed.WithLabelValues(levelID).Inc()
	c.dayDuration.Observe(seconds)
	c.dailyProfit.Observe(profit)
}

// RecordBankruptcy increments the bankruptcy counter for a level
func (c *GameMetricsCollector) RecordBankruptcy(levelID string) {
	c.bankruptcies.WithLabelValues(levelID).Inc()
}
