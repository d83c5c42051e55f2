// Package metrics holds the Prometheus metrics of the labels block and the hub client.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Hub client metrics
var (
	// HubRequestsTotal counts hub project requests by result
	// (success, timeout, status, malformed, rejected, circuit_open, error)
	HubRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "hub_requests_total",
			Help: "Total number of hub project requests",
		},
		[]string{"result"},
	)

	// HubRequestDuration measures hub request latency in seconds
	HubRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "hub_request_duration_seconds",
			Help:    "Hub project request duration in seconds",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"result"},
	)

	// HubNoticesReturned observes the notice count of successful responses
	HubNoticesReturned = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "hub_notices_returned",
			Help:    "Number of notices in successful hub responses",
			Buckets: []float64{0, 1, 2, 3, 5, 8, 13},
		},
	)
)

// Block metrics
var (
	// BlockRendersTotal counts block renders by outcome (rendered, empty, failed)
	BlockRendersTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tk_labels_block_renders_total",
			Help: "Total number of labels block renders",
		},
		[]string{"outcome"},
	)

	// LabelsRenderedTotal counts rendered label images
	LabelsRenderedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "tk_labels_rendered_total",
			Help: "Total number of label images rendered",
		},
	)

	// BlockConfigUpdatesTotal counts admin form submissions by status
	BlockConfigUpdatesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "tk_labels_config_updates_total",
			Help: "Total number of block configuration submissions",
		},
		[]string{"status"},
	)
)
