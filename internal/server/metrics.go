package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// formulasGenerated counts formulas returned by the worksheet endpoint
	formulasGenerated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "kidsmath_formulas_generated_total",
		Help: "Total formulas generated by the worksheet endpoint",
	})

	// evaluations counts evaluate requests by result
	evaluations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "kidsmath_evaluations_total",
		Help: "Expression evaluations by result",
	}, []string{"result"})

	// generateDuration tracks worksheet generation latency
	generateDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "kidsmath_generate_duration_seconds",
		Help:    "Worksheet generation duration in seconds",
		Buckets: prometheus.ExponentialBuckets(0.0001, 2, 14), // 0.1ms to ~1.6s
	})
)
