package panels

import (
	"fmt"

	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// APICallsRate returns a timeseries panel showing the DHL call rate.
func APICallsRate() *timeseries.PanelBuilder {
	return series("API Calls Rate", "DHL tracking calls per second", ThirdWidth).
		WithTarget(PromQuery(`awb_tracker:dhl_api_calls:rate5m`, "calls/s", "A")).
		WithTarget(PromQuery(`awb_tracker:fetch_errors:rate5m`, "errors/s", "B")).
		Unit("reqps")
}

// FetchLatency returns a timeseries panel with DHL request latency
// percentiles.
func FetchLatency() *timeseries.PanelBuilder {
	return withPercentiles(
		series("Fetch Latency", "DHL tracking request duration percentiles", ThirdWidth),
		"fetch_duration_seconds", "15m", 50, 99,
	).
		Unit("s").
		Thresholds(warnAbove(5, 20))
}

// DailyUsage returns a timeseries panel plotting the rolling 24h DHL usage
// against the configured quota. The limit line is hidden when unlimited.
func DailyUsage() *timeseries.PanelBuilder {
	return series("Daily Usage vs Limit", "Rolling 24h DHL call count and the configured daily quota", ThirdWidth).
		WithTarget(PromQuery(fmt.Sprintf(`awb_tracker_dhl_daily_usage{job=%q}`, Job), "usage", "A")).
		WithTarget(PromQuery(fmt.Sprintf(`awb_tracker_dhl_daily_limit{job=%q} > 0`, Job), "limit", "B"))
}

// LimitHits returns a stat panel counting checks skipped for an exhausted
// quota in the past 24 hours.
func LimitHits() *stat.PanelBuilder {
	return alarmStat("Quota Skips (24h)", "Checks skipped because the DHL daily quota was used up",
		`increase(awb_tracker_dhl_daily_limit_hits_total[24h])`, warnAbove(1, 60)).
		GraphMode(common.BigValueGraphModeArea)
}
