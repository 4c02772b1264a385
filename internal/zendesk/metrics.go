package zendesk

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "zendesk_requests_total",
		Help: "Outbound Zendesk API calls by operation and outcome",
	}, []string{"operation", "outcome"})

	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "zendesk_request_duration_seconds",
		Help:    "Latency of outbound Zendesk API calls",
		Buckets: prometheus.DefBuckets,
	}, []string{"operation"})

	searchPages = promauto.NewCounter(prometheus.CounterOpts{
		Name: "zendesk_search_pages_total",
		Help: "Search result pages fetched from Zendesk",
	})
)
