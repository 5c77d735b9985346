package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testKnown = map[string]bool{
	"awb_tracker_poll_cycles_total":      true,
	"awb_tracker_fetch_duration_seconds": true,
	"awb_tracker:poll_cycles:rate5m":     true,
}

func TestMetricNames(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		expr string
		want []string
	}{
		{
			name: "plain selector",
			expr: `awb_tracker_poll_cycles_total`,
			want: []string{"awb_tracker_poll_cycles_total"},
		},
		{
			name: "histogram quantile",
			expr: `histogram_quantile(0.95, sum(rate(awb_tracker_fetch_duration_seconds_bucket[5m])) by (le))`,
			want: []string{"awb_tracker_fetch_duration_seconds_bucket"},
		},
		{
			name: "binary expression",
			expr: `awb_tracker:poll_cycles:rate5m / up`,
			want: []string{"awb_tracker:poll_cycles:rate5m", "up"},
		},
		{
			name: "name matcher",
			expr: `{__name__="awb_tracker_poll_cycles_total", outcome="updated"}`,
			want: []string{"awb_tracker_poll_cycles_total"},
		},
		{
			name: "no metrics",
			expr: `time()`,
			want: []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := MetricNames(tt.expr)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestMetricNames_InvalidExpr(t *testing.T) {
	t.Parallel()
	_, err := MetricNames(`rate(awb_tracker_poll_cycles_total[5m]`)
	assert.Error(t, err)
}

func TestKnown(t *testing.T) {
	t.Parallel()

	assert.True(t, Known("awb_tracker_poll_cycles_total", testKnown))
	assert.True(t, Known("awb_tracker_fetch_duration_seconds_bucket", testKnown))
	assert.True(t, Known("awb_tracker_fetch_duration_seconds_count", testKnown))
	assert.False(t, Known("awb_tracker_poll_cycles_total_bucket", testKnown))
	assert.False(t, Known("other_http_requests_total", testKnown))
}

func TestExpr(t *testing.T) {
	t.Parallel()

	assert.True(t, Expr("q", `rate(awb_tracker_poll_cycles_total[5m])`, testKnown).Ok())

	res := Expr("q", `rate(awb_tracker_missing_total[5m])`, testKnown)
	require.False(t, res.Ok())
	assert.Contains(t, res.Errors[0], `unknown metric "awb_tracker_missing_total"`)

	res = Expr("q", `sum(`, testKnown)
	require.False(t, res.Ok())
	assert.Contains(t, res.Errors[0], "invalid PromQL")

	res = Expr("q", `vector(1)`, testKnown)
	assert.True(t, res.Ok())
	assert.Len(t, res.Warnings, 1)
}

func TestDashboard_WalksNestedExprs(t *testing.T) {
	t.Parallel()

	dash := map[string]any{
		"panels": []any{
			map[string]any{
				"targets": []any{
					map[string]any{"expr": "awb_tracker_poll_cycles_total", "legendFormat": "{{outcome}}"},
				},
				"panels": []any{
					map[string]any{"targets": []any{map[string]any{"expr": "nope_total"}}},
				},
			},
		},
	}

	res := Dashboard(dash, testKnown)
	require.Len(t, res.Errors, 1)
	assert.Contains(t, res.Errors[0], "nope_total")
}

func TestDashboard_NoQueries(t *testing.T) {
	t.Parallel()
	res := Dashboard(map[string]any{"title": "empty"}, testKnown)
	assert.False(t, res.Ok())
}
