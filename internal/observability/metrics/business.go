package metrics

import "time"

// RecordHubRequest records one hub request.
func RecordHubRequest(result string, duration time.Duration, notices int) {
	HubRequestsTotal.WithLabelValues(result).Inc()
	HubRequestDuration.WithLabelValues(result).Observe(duration.Seconds())
	if result == "success" {
		HubNoticesReturned.Observe(float64(notices))
	}
}

// RecordBlockRender records one block render and the labels it produced.
func RecordBlockRender(outcome string, labels int) {
	BlockRendersTotal.WithLabelValues(outcome).Inc()
	if labels > 0 {
		LabelsRenderedTotal.Add(float64(labels))
	}
}

// RecordConfigUpdate records an admin form submission.
func RecordConfigUpdate(success bool) {
	status := "success"
	if !success {
		status = "failure"
	}
	BlockConfigUpdatesTotal.WithLabelValues(status).Inc()
}
