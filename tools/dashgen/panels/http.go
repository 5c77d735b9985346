package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// RequestRate returns a timeseries panel showing the status API request rate.
func RequestRate() *timeseries.PanelBuilder {
	return series("API Request Rate", "Status and quota API requests per second", TSWidth).
		WithTarget(PromQuery(`awb_tracker:http_requests:rate5m`, "req/s", "A")).
		WithTarget(PromQuery(`awb_tracker:http_errors:rate5m`, "5xx/s", "B")).
		Unit("reqps").
		Legend(tableLegend("mean", "max"))
}

// LatencyPercentiles returns a timeseries panel showing p50 and p99 API
// latencies.
func LatencyPercentiles() *timeseries.PanelBuilder {
	return withPercentiles(
		series("API Latency", "Status and quota API request duration percentiles", TSWidth),
		"http_request_duration_seconds", "5m", 50, 99,
	).
		Unit("s").
		Legend(tableLegend("mean", "max"))
}
