// Package metrics defines Prometheus metrics for awb-tracker.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "awb_tracker"

// Polling metrics.
var (
	PollCyclesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "poll_cycles_total",
		Help:      "Total number of polling cycles by outcome.",
	}, []string{"outcome"})

	PollCycleDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "poll_cycle_duration_seconds",
		Help:      "Duration of polling cycles in seconds.",
		Buckets:   prometheus.DefBuckets,
	})

	LastStepID = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "last_step_id",
		Help:      "Counter of the most recently observed checkpoint.",
	})

	LastUpdateTimestamp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "last_update_timestamp",
		Help:      "Unix timestamp of the last detected status change.",
	})

	NextPollTimestamp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "next_poll_timestamp",
		Help:      "Unix timestamp of the next scheduled poll.",
	})

	SelectorMissesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "selector_misses_total",
		Help:      "Total number of histories with no checkpoint matching their length.",
	})
)

// DHL API metrics.
var (
	FetchDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "fetch_duration_seconds",
		Help:      "Duration of DHL tracking requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	})

	FetchErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "fetch_errors_total",
		Help:      "Total number of DHL tracking requests that yielded no usable data.",
	})

	DHLAPICallsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "dhl_api_calls_total",
		Help:      "Total cumulative DHL API calls.",
	})

	DHLDailyUsage = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "dhl_daily_usage",
		Help:      "Current daily DHL API call count within the rolling 24-hour window.",
	})

	DHLDailyLimit = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "dhl_daily_limit",
		Help:      "Configured daily DHL API call quota, 0 when unlimited.",
	})

	DHLDailyLimitHits = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "dhl_daily_limit_hits_total",
		Help:      "Total number of times the daily DHL API limit was reached.",
	})
)

// Notification metrics.
var (
	NotificationsSentTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_sent_total",
		Help:      "Total number of notifications delivered, by backend.",
	}, []string{"backend"})

	NotificationFailuresTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notification_failures_total",
		Help:      "Total number of notification send failures, by backend.",
	}, []string{"backend"})

	NotificationDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "notification_duration_seconds",
		Help:      "Duration of notification dispatch in seconds.",
		Buckets:   prometheus.DefBuckets,
	})
)

// Endpoint metrics.
var (
	HTTPRequestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "http_request_duration_seconds",
		Help:      "Duration of API requests in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "http_requests_total",
		Help:      "Total number of API requests.",
	}, []string{"method", "path", "status"})

	HealthzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "healthz_up",
		Help:      "1 if the last /healthz probe succeeded, 0 otherwise.",
	})

	ReadyzUp = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "readyz_up",
		Help:      "1 if the last /readyz probe succeeded, 0 otherwise.",
	})
)
