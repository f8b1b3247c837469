package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks HTTP request latency per method and status.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5},
		},
		[]string{"method", "status"},
	)

	// DonationsCreated counts created donations by type.
	DonationsCreated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "donations_created_total",
			Help: "Number of donations created, by donation type",
		},
		[]string{"type"},
	)

	// CampaignsCreated counts created campaigns.
	CampaignsCreated = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "campaigns_created_total",
			Help: "Number of campaigns created",
		},
	)

	// MessagesSent counts chat messages sent.
	MessagesSent = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "chat_messages_sent_total",
			Help: "Number of chat messages sent",
		},
	)

	// StreamSubscribers gauges currently connected realtime message streams.
	StreamSubscribers = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "chat_stream_subscribers",
			Help: "Currently connected realtime message stream clients",
		},
	)
)
