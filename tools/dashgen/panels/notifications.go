package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// NotificationsByBackend returns a bar chart with sent and failed
// notifications per backend.
func NotificationsByBackend() *timeseries.PanelBuilder {
	return series("Notifications", "Notifications sent and failed per backend over the last hour", TSWidth).
		WithTarget(PromQuery(
			`sum by (backend) (increase(awb_tracker_notifications_sent_total[1h]))`,
			"sent {{backend}}", "A",
		)).
		WithTarget(PromQuery(
			`sum by (backend) (increase(awb_tracker_notification_failures_total[1h]))`,
			"failed {{backend}}", "B",
		)).
		Legend(tableLegend("sum")).
		DrawStyle(common.GraphDrawStyleBars)
}

// NotificationLatency returns a timeseries panel with dispatch durations.
func NotificationLatency() *timeseries.PanelBuilder {
	return withPercentiles(
		series("Notification Latency", "p95 time to deliver a status change to every backend", TSWidth),
		"notification_duration_seconds", "1h", 95,
	).Unit("s")
}
