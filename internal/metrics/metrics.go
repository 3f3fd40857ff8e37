package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "careerpath_recommendations_total",
			Help: "Total number of recommendation sets returned, by generation source",
		},
		[]string{"source"},
	)

	GatewayFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "careerpath_gateway_failures_total",
			Help: "Total number of external model calls that produced no text",
		},
		[]string{"reason"},
	)

	NormalizerRejections = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "careerpath_normalizer_rejections_total",
			Help: "Total number of external responses rejected by the normalizer",
		},
		[]string{"reason"},
	)

	GatewayDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "careerpath_gateway_duration_seconds",
			Help:    "Duration of external model calls in seconds",
			Buckets: []float64{0.25, 0.5, 1, 2, 5, 10, 20, 30},
		},
	)
)
