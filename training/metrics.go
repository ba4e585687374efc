package training

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	trainingDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "qclassify",
			Subsystem: "training",
			Name:      "run_duration_seconds",
			Help:      "Wall time of completed training runs.",
			Buckets:   prometheus.ExponentialBuckets(0.1, 4, 8),
		},
		[]string{"method"},
	)
	trainingEvaluations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "qclassify",
			Subsystem: "training",
			Name:      "objective_evaluations_total",
			Help:      "Objective evaluations performed across training runs.",
		},
		[]string{"method"},
	)
)
