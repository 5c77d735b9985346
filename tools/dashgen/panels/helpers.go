// Package panels provides Grafana dashboard panel builders for awb-tracker
// metrics.
package panels

import (
	"fmt"

	"github.com/grafana/grafana-foundation-sdk/go/cog"
	"github.com/grafana/grafana-foundation-sdk/go/common"
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"
	"github.com/grafana/grafana-foundation-sdk/go/prometheus"
	"github.com/grafana/grafana-foundation-sdk/go/stat"
	"github.com/grafana/grafana-foundation-sdk/go/timeseries"
)

// Job is the Prometheus job label the tracker is scraped under.
const Job = "awb-tracker"

// Panel sizes on the 24-column grid. A row holds four stats, two wide
// series or three narrow ones.
const (
	StatWidth  = 6
	StatHeight = 4

	TSWidth    = 12
	ThirdWidth = 8
	TSHeight   = 8
)

// quotaUsedRatio is the share of the configured daily quota in use. The
// limit gauge is 0 when no quota is set, which leaves the series empty.
const quotaUsedRatio = `awb_tracker_dhl_daily_usage / (awb_tracker_dhl_daily_limit > 0)`

// DSRef points at the ${datasource} template variable.
func DSRef() dashboard.DataSourceRef {
	return dashboard.DataSourceRef{
		Type: cog.ToPtr("prometheus"),
		Uid:  cog.ToPtr("${datasource}"),
	}
}

// PromQuery builds a Prometheus target.
func PromQuery(expr, legendFormat, refID string) *prometheus.DataqueryBuilder {
	return prometheus.NewDataqueryBuilder().
		Expr(expr).
		LegendFormat(legendFormat).
		RefId(refID)
}

// quantile returns a histogram_quantile expression over one of the tracker's
// histograms, named without the awb_tracker_ prefix and _bucket suffix.
func quantile(percentile int, histogram, window string) string {
	return fmt.Sprintf(
		`histogram_quantile(%.2f, sum(rate(awb_tracker_%s_bucket[%s])) by (le))`,
		float64(percentile)/100, histogram, window,
	)
}

// withPercentiles adds one pN target per percentile, with ref ids from A.
func withPercentiles(
	b *timeseries.PanelBuilder,
	histogram, window string,
	percentiles ...int,
) *timeseries.PanelBuilder {
	for i, p := range percentiles {
		b = b.WithTarget(PromQuery(
			quantile(p, histogram, window),
			fmt.Sprintf("p%d", p),
			string(rune('A'+i)),
		))
	}
	return b
}

// singleStat is a value-only stat over expr, green unless overridden.
func singleStat(title, description, expr string) *stat.PanelBuilder {
	return stat.NewPanelBuilder().
		Title(title).
		Description(description).
		Datasource(DSRef()).
		Height(StatHeight).
		Span(StatWidth).
		WithTarget(PromQuery(expr, "", "A")).
		Thresholds(steps("green")).
		ColorScheme(thresholdColors()).
		GraphMode(common.BigValueGraphModeNone)
}

// alarmStat is a singleStat whose background follows the thresholds.
func alarmStat(
	title, description, expr string,
	thresholds cog.Builder[dashboard.ThresholdsConfig],
) *stat.PanelBuilder {
	return singleStat(title, description, expr).
		Thresholds(thresholds).
		ColorMode(common.BigValueColorModeBackground)
}

// series is a line chart with a shared tooltip. Callers add the targets.
func series(title, description string, span uint32) *timeseries.PanelBuilder {
	return timeseries.NewPanelBuilder().
		Title(title).
		Description(description).
		Datasource(DSRef()).
		Height(TSHeight).
		Span(span).
		FillOpacity(10).
		LineWidth(2).
		Tooltip(common.NewVizTooltipOptionsBuilder().
			Mode(common.TooltipDisplayModeMulti).
			Sort(common.SortOrderDescending)).
		Thresholds(steps("green")).
		ColorScheme(paletteColors()).
		DrawStyle(common.GraphDrawStyleLine)
}

// step switches the threshold color at value.
type step struct {
	value float64
	color string
}

// steps builds absolute thresholds that start at base.
func steps(base string, next ...step) cog.Builder[dashboard.ThresholdsConfig] {
	ts := []dashboard.Threshold{{Color: base}}
	for _, s := range next {
		ts = append(ts, dashboard.Threshold{Value: cog.ToPtr(s.value), Color: s.color})
	}
	return dashboard.NewThresholdsConfigBuilder().
		Mode(dashboard.ThresholdsModeAbsolute).
		Steps(ts)
}

// warnAbove turns yellow at warn and red at crit.
func warnAbove(warn, crit float64) cog.Builder[dashboard.ThresholdsConfig] {
	return steps("green", step{warn, "yellow"}, step{crit, "red"})
}

// upAt is red below v and green from v on.
func upAt(v float64) cog.Builder[dashboard.ThresholdsConfig] {
	return steps("red", step{v, "green"})
}

func thresholdColors() cog.Builder[dashboard.FieldColor] {
	return dashboard.NewFieldColorBuilder().Mode(dashboard.FieldColorModeIdThresholds)
}

func paletteColors() cog.Builder[dashboard.FieldColor] {
	return dashboard.NewFieldColorBuilder().Mode(dashboard.FieldColorModeIdPaletteClassic)
}

// tableLegend shows the legend as a table under the chart.
func tableLegend(calcs ...string) *common.VizLegendOptionsBuilder {
	return common.NewVizLegendOptionsBuilder().
		DisplayMode(common.LegendDisplayModeTable).
		Placement(common.LegendPlacementBottom).
		Calcs(calcs)
}
