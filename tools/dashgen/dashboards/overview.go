// Package dashboards assembles Grafana dashboard definitions from panel builders.
package dashboards

import (
	"github.com/grafana/grafana-foundation-sdk/go/dashboard"

	"github.com/donaldgifford/awb-tracker/tools/dashgen/panels"
)

// UID is the dashboard's stable identifier.
const UID = "awb-tracker-overview"

// BuildOverview constructs the AWB Tracker dashboard with all metric rows.
func BuildOverview() *dashboard.DashboardBuilder {
	b := dashboard.NewDashboardBuilder("AWB Tracker").
		Uid(UID).
		Tags([]string{"awb-tracker", "dhl"}).
		Refresh("1m").
		Time("now-24h", "now").
		Timezone("browser").
		Editable().
		Tooltip(dashboard.DashboardCursorSyncCrosshair).
		WithVariable(datasourceVar())

	b.WithRow(dashboard.NewRowBuilder("Overview").
		WithPanel(panels.HealthzStat()).
		WithPanel(panels.ReadyzStat()).
		WithPanel(panels.QuotaGauge()).
		WithPanel(panels.UptimeStat()))

	b.WithRow(dashboard.NewRowBuilder("Shipment").
		WithPanel(panels.CurrentStep()).
		WithPanel(panels.SinceLastUpdate()).
		WithPanel(panels.NextPoll()).
		WithPanel(panels.SelectorMisses()).
		WithPanel(panels.CyclesByOutcome()).
		WithPanel(panels.CycleDuration()))

	b.WithRow(dashboard.NewRowBuilder("DHL API").
		WithPanel(panels.APICallsRate()).
		WithPanel(panels.FetchLatency()).
		WithPanel(panels.DailyUsage()).
		WithPanel(panels.LimitHits()))

	b.WithRow(dashboard.NewRowBuilder("Notifications").
		WithPanel(panels.NotificationsByBackend()).
		WithPanel(panels.NotificationLatency()))

	b.WithRow(dashboard.NewRowBuilder("API").
		WithPanel(panels.RequestRate()).
		WithPanel(panels.LatencyPercentiles()))

	return b
}

func datasourceVar() *dashboard.DatasourceVariableBuilder {
	return dashboard.NewDatasourceVariableBuilder("datasource").
		Label("Datasource").
		Type("prometheus")
}
