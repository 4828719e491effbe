package server

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "promptcoach",
		Name:      "http_requests_total",
		Help:      "HTTP requests by route, method, and status.",
	}, []string{"route", "method", "status"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "promptcoach",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency by route.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"route"})

	estimatesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "promptcoach",
		Name:      "estimates_total",
		Help:      "Impact estimates computed, by model.",
	}, []string{"model_id"})

	catalogModels = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "promptcoach",
		Name:      "catalog_models",
		Help:      "Models in the active reference catalog.",
	})
)
