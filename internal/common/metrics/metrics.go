package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	LLMRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llm_requests_total",
			Help: "Total number of chat-completion requests by task",
		},
		[]string{"task"},
	)

	LLMRequestsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "llm_requests_failed_total",
			Help: "Total number of failed chat-completion requests by task",
		},
		[]string{"task", "error_code"},
	)

	LLMRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "llm_request_duration_seconds",
			Help: "Duration of chat-completion round trips in seconds",
		},
		[]string{"task"},
	)

	HotelSourceRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hotel_source_requests_total",
			Help: "Total number of hotel-search provider requests by endpoint",
		},
		[]string{"endpoint"},
	)

	HotelSourceHotels = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "hotel_source_hotels_total",
			Help: "Total number of factual hotel records fetched",
		},
	)
)
