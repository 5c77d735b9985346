package panels

import (
	"fmt"

	"github.com/grafana/grafana-foundation-sdk/go/gauge"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
)

// HealthzStat returns a stat panel showing the health check status.
func HealthzStat() *stat.PanelBuilder {
	return alarmStat("Healthz", "Health check status (1 = ok, 0 = failing)",
		`awb_tracker_healthz_up`, upAt(1))
}

// ReadyzStat returns a stat panel showing whether a first cycle completed.
func ReadyzStat() *stat.PanelBuilder {
	return alarmStat("Readyz", "1 once the first polling cycle has completed",
		`awb_tracker_readyz_up`, upAt(1))
}

// QuotaGauge returns a gauge panel showing DHL daily usage as a percentage
// of the configured quota. It stays empty when no quota is configured.
func QuotaGauge() *gauge.PanelBuilder {
	return gauge.NewPanelBuilder().
		Title("DHL Quota %").
		Description("Tracking calls in the rolling 24h window as percentage of the configured quota").
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(quotaUsedRatio+" * 100", "", "A")).
		Unit("percent").
		Min(0).
		Max(100).
		Thresholds(warnAbove(80, 95)).
		ColorScheme(thresholdColors())
}

// UptimeStat returns a stat panel showing process uptime.
func UptimeStat() *stat.PanelBuilder {
	return singleStat("Uptime", "Time since process start",
		fmt.Sprintf(`time() - process_start_time_seconds{job=%q}`, Job)).
		Unit("s")
}
