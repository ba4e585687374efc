package classifier

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	circuitsAssembled = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "qclassify",
			Subsystem: "classifier",
			Name:      "circuits_assembled_total",
			Help:      "Programs assembled through the session Circuit call.",
		},
	)
	executionsCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: "qclassify",
			Subsystem: "classifier",
			Name:      "executions_completed_total",
			Help:      "Backend executions that produced a scalar output.",
		},
	)
)
