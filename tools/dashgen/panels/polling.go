package panels

import (
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// CurrentStep returns a stat panel with the counter of the latest checkpoint.
func CurrentStep() *stat.PanelBuilder {
	return singleStat("Current Step", "Counter of the most recently observed checkpoint",
		`awb_tracker_last_step_id`).
		GraphMode(common.BigValueGraphModeArea)
}

// SinceLastUpdate returns a stat panel showing time since the status
// changed, yellow after a day and red after three.
func SinceLastUpdate() *stat.PanelBuilder {
	return alarmStat("Since Last Update", "Time since the shipment status last changed",
		`time() - awb_tracker_last_update_timestamp`, warnAbove(86400, 259200)).
		Unit("s")
}

// NextPoll returns a stat panel showing time until the next scheduled cycle.
func NextPoll() *stat.PanelBuilder {
	return singleStat("Next Poll", "Time until the next scheduled polling cycle",
		`awb_tracker_next_poll_timestamp - time()`).
		Unit("s")
}

// SelectorMisses returns a stat panel counting histories without a latest
// checkpoint over the past day.
func SelectorMisses() *stat.PanelBuilder {
	return alarmStat("Selector Misses (24h)", "Histories where no checkpoint matched the history length",
		`increase(awb_tracker_selector_misses_total[24h])`, warnAbove(1, 5))
}

// CyclesByOutcome returns a timeseries panel with the cycle rate per
// outcome: updated, unchanged, selector_miss, quota_exhausted or no_data.
func CyclesByOutcome() *timeseries.PanelBuilder {
	return series("Cycles by Outcome", "Polling cycles per second, by outcome", TSWidth).
		WithTarget(PromQuery(`awb_tracker:poll_cycles:rate5m`, "{{outcome}}", "A")).
		Unit("ops").
		Legend(tableLegend("mean", "max"))
}

// CycleDuration returns a timeseries panel with p50 and p95 cycle durations.
func CycleDuration() *timeseries.PanelBuilder {
	return withPercentiles(
		series("Cycle Duration", "Polling cycle duration percentiles", TSWidth),
		"poll_cycle_duration_seconds", "15m", 50, 95,
	).Unit("s")
}
