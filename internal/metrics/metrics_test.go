package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsRegistered(t *testing.T) {
	t.Parallel()

	// Verify all metrics are non-nil (registered via promauto on package init).
	assert.NotNil(t, PollCyclesTotal)
	assert.NotNil(t, PollCycleDuration)
	assert.NotNil(t, LastStepID)
	assert.NotNil(t, LastUpdateTimestamp)
	assert.NotNil(t, NextPollTimestamp)
	assert.NotNil(t, SelectorMissesTotal)
	assert.NotNil(t, FetchDuration)
	assert.NotNil(t, FetchErrorsTotal)
	assert.NotNil(t, DHLAPICallsTotal)
	assert.NotNil(t, DHLDailyUsage)
	assert.NotNil(t, DHLDailyLimitHits)
	assert.NotNil(t, DHLDailyLimit)
	assert.NotNil(t, NotificationsSentTotal)
	assert.NotNil(t, NotificationFailuresTotal)
	assert.NotNil(t, NotificationDuration)
	assert.NotNil(t, HTTPRequestDuration)
	assert.NotNil(t, HTTPRequestsTotal)
	assert.NotNil(t, HealthzUp)
	assert.NotNil(t, ReadyzUp)
}

func TestPollCyclesTotal_Labels(t *testing.T) {
	t.Parallel()

	before := testutil.ToFloat64(PollCyclesTotal.WithLabelValues("metrics-test"))
	PollCyclesTotal.WithLabelValues("metrics-test").Inc()
	after := testutil.ToFloat64(PollCyclesTotal.WithLabelValues("metrics-test"))

	assert.InDelta(t, before+1, after, 0.0001)
}
