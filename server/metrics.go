package main

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/nathanfoale/skycity-blackjack/server/sim"
)

var (
	HttpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "endpoint"},
	)

	HandsResolved = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blackjack_hands_total",
			Help: "Hands resolved, by outcome",
		},
		[]string{"outcome"},
	)

	SessionsFinished = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "blackjack_sessions_total",
			Help: "Sessions finished, by terminal state",
		},
		[]string{"state"},
	)

	ExperimentSeconds = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "blackjack_experiment_seconds",
			Help:    "Wall time of one experiment",
			Buckets: prometheus.ExponentialBuckets(0.01, 4, 8),
		},
	)
)

var metricsOnce sync.Once

func initMetrics() {
	metricsOnce.Do(func() {
		prometheus.MustRegister(HttpRequests)
		prometheus.MustRegister(HandsResolved)
		prometheus.MustRegister(SessionsFinished)
		prometheus.MustRegister(ExperimentSeconds)
	})
}

// observeSession is the runner's OnSession hook.
func observeSession(t sim.Trajectory) {
	SessionsFinished.WithLabelValues(t.State.String()).Inc()
	for o, n := range t.Outcomes {
		HandsResolved.WithLabelValues(string(o)).Add(float64(n))
	}
}
