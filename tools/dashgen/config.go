package main

import "errors"

// KnownMetrics is the set of metric names exported by awb-tracker plus
// recording rule names referenced in dashboards and alerts.
var KnownMetrics = map[string]bool{
	// Polling metrics.
	"awb_tracker_poll_cycles_total":           true,
	"awb_tracker_poll_cycle_duration_seconds": true,
	"awb_tracker_last_step_id":                true,
	"awb_tracker_last_update_timestamp":       true,
	"awb_tracker_next_poll_timestamp":         true,
	"awb_tracker_selector_misses_total":       true,

	// DHL API metrics.
	"awb_tracker_fetch_duration_seconds":     true,
	"awb_tracker_fetch_errors_total":         true,
	"awb_tracker_dhl_api_calls_total":        true,
	"awb_tracker_dhl_daily_usage":            true,
	"awb_tracker_dhl_daily_limit":            true,
	"awb_tracker_dhl_daily_limit_hits_total": true,

	// Notification metrics.
	"awb_tracker_notifications_sent_total":      true,
	"awb_tracker_notification_failures_total":   true,
	"awb_tracker_notification_duration_seconds": true,

	// Endpoint metrics.
	"awb_tracker_http_request_duration_seconds": true,
	"awb_tracker_http_requests_total":           true,
	"awb_tracker_healthz_up":                    true,
	"awb_tracker_readyz_up":                     true,

	// Recording rules.
	"awb_tracker:poll_cycles:rate5m":   true,
	"awb_tracker:dhl_api_calls:rate5m": true,
	"awb_tracker:fetch_errors:rate5m":  true,
	"awb_tracker:http_requests:rate5m": true,
	"awb_tracker:http_errors:rate5m":   true,

	// Standard Prometheus metrics referenced in dashboards.
	"up":                         true,
	"process_start_time_seconds": true,
}

// Config controls which artifacts the generator produces and where they go.
type Config struct {
	OutputDir        string
	DashboardEnabled bool
	RulesEnabled     bool
}

// DefaultConfig returns a Config that generates all artifacts into ../../deploy
// (relative to tools/dashgen/).
func DefaultConfig() Config {
	return Config{
		OutputDir:        "../../deploy",
		DashboardEnabled: true,
		RulesEnabled:     true,
	}
}

// Validate checks that the config is usable.
func (c Config) Validate() error {
	if c.OutputDir == "" {
		return errors.New("output directory must be set")
	}
	if !c.DashboardEnabled && !c.RulesEnabled {
		return errors.New("at least one of dashboard or rules must be enabled")
	}
	return nil
}
