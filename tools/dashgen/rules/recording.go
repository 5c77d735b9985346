package rules

// RecordingRules returns a PrometheusRule CR containing pre-computed rate
// expressions used by dashboards and alert rules.
func RecordingRules() PrometheusRule {
	return newPrometheusRule("awb-tracker-recording-rules", RuleGroup{
		Name: "awb-tracker-recording",
		Rules: []Rule{
			{
				Record: "awb_tracker:poll_cycles:rate5m",
				Expr:   `sum by (outcome) (rate(awb_tracker_poll_cycles_total[5m]))`,
			},
			{
				Record: "awb_tracker:dhl_api_calls:rate5m",
				Expr:   `rate(awb_tracker_dhl_api_calls_total[5m])`,
			},
			{
				Record: "awb_tracker:fetch_errors:rate5m",
				Expr:   `rate(awb_tracker_fetch_errors_total[5m])`,
			},
			{
				Record: "awb_tracker:http_requests:rate5m",
				Expr:   `sum(rate(awb_tracker_http_requests_total[5m]))`,
			},
			{
				Record: "awb_tracker:http_errors:rate5m",
				Expr:   `sum(rate(awb_tracker_http_requests_total{status=~"5.."}[5m]))`,
			},
		},
	})
}
