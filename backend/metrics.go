package backend

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	executionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "qclassify",
			Subsystem: "backend",
			Name:      "executions_total",
			Help:      "Total number of circuit executions",
		},
		// status: success/error
		[]string{"backend", "status"},
	)

	executionDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "qclassify",
			Subsystem: "backend",
			Name:      "execution_duration_seconds",
			Help:      "Duration of circuit executions",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"backend"},
	)
)
