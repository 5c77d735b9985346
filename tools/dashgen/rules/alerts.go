package rules

// AlertRules returns a PrometheusRule CR with the tracker's alert rules.
func AlertRules() PrometheusRule {
	return newPrometheusRule("awb-tracker-alerts", RuleGroup{
		Name: "awb-tracker-alerts",
		Rules: []Rule{
			{
				Alert:  "AwbTrackerDown",
				Expr:   `absent(up{job="awb-tracker"})`,
				For:    "5m",
				Labels: map[string]string{"severity": "critical"},
				Annotations: map[string]string{
					"summary":     "AWB tracker is down",
					"description": "The awb-tracker job has been absent for more than 5 minutes. A fetch without usable data stops the tracker.",
				},
			},
			{
				Alert:  "AwbTrackerNotReady",
				Expr:   `awb_tracker_readyz_up == 0`,
				For:    "15m",
				Labels: map[string]string{"severity": "warning"},
				Annotations: map[string]string{
					"summary":     "AWB tracker has not completed a cycle",
					"description": "The readiness probe has reported not-ready for 15 minutes.",
				},
			},
			{
				Alert:  "AwbTrackerSelectorMisses",
				Expr:   `increase(awb_tracker_selector_misses_total[1h]) > 3`,
				For:    "0m",
				Labels: map[string]string{"severity": "warning"},
				Annotations: map[string]string{
					"summary":     "DHL histories have no latest checkpoint",
					"description": "More than 3 histories in the last hour had no checkpoint whose counter equals the history length.",
				},
			},
			{
				Alert:  "AwbTrackerQuotaHigh",
				Expr:   `awb_tracker_dhl_daily_usage > 0.8 * (awb_tracker_dhl_daily_limit > 0)`,
				For:    "5m",
				Labels: map[string]string{"severity": "warning"},
				Annotations: map[string]string{
					"summary":     "DHL daily usage is above 80% of the configured quota",
					"description": "Tracking calls in the rolling 24h window exceed 80% of dhl.rate_limit.daily_limit.",
				},
			},
			{
				Alert:  "AwbTrackerLimitReached",
				Expr:   `increase(awb_tracker_dhl_daily_limit_hits_total[5m]) > 0`,
				For:    "0m",
				Labels: map[string]string{"severity": "warning"},
				Annotations: map[string]string{
					"summary":     "DHL daily quota has been reached",
					"description": "Checks are skipped until the rolling 24h window resets.",
				},
			},
			{
				Alert:  "AwbTrackerNotificationFailures",
				Expr:   `increase(awb_tracker_notification_failures_total[15m]) > 0`,
				For:    "1m",
				Labels: map[string]string{"severity": "warning"},
				Annotations: map[string]string{
					"summary":     "Notification delivery failures detected",
					"description": "One or more status change notifications (desktop popup or Discord webhook) failed to send.",
				},
			},
		},
	})
}
