package dhl_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/awb-tracker/internal/dhl"
)

func TestRateLimiter_Wait(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		rate    float64
		burst   int
		daily   int64
		calls   int
		wantErr bool
	}{
		{
			name:  "allows calls within rate",
			rate:  100,
			burst: 10,
			daily: 250,
			calls: 3,
		},
		{
			name:  "allows burst",
			rate:  100,
			burst: 5,
			daily: 250,
			calls: 5,
		},
		{
			name:  "zero daily limit disables the quota",
			rate:  1000,
			burst: 100,
			daily: 0,
			calls: 500,
		},
		{
			name:    "rejects when daily limit reached",
			rate:    100,
			burst:   10,
			daily:   2,
			calls:   3,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			rl := dhl.NewRateLimiter(tt.rate, tt.burst, tt.daily)

			var lastErr error
			for range tt.calls {
				lastErr = rl.Wait(context.Background())
				if lastErr != nil {
					break
				}
			}

			if tt.wantErr {
				require.ErrorIs(t, lastErr, dhl.ErrDailyLimitReached)
			} else {
				require.NoError(t, lastErr)
			}
		})
	}
}

func TestRateLimiter_Remaining(t *testing.T) {
	t.Parallel()

	rl := dhl.NewRateLimiter(100, 10, 3)

	assert.Equal(t, int64(3), rl.MaxDaily())
	assert.Equal(t, int64(0), rl.DailyCount())
	assert.Equal(t, int64(3), rl.Remaining())
	assert.True(t, rl.ResetAt().IsZero())

	require.NoError(t, rl.Wait(context.Background()))
	require.NoError(t, rl.Wait(context.Background()))
	assert.Equal(t, int64(2), rl.DailyCount())
	assert.Equal(t, int64(1), rl.Remaining())
	assert.False(t, rl.ResetAt().IsZero())
}

func TestRateLimiter_Unlimited(t *testing.T) {
	t.Parallel()

	rl := dhl.NewRateLimiter(1000, 10, 0)

	assert.True(t, rl.Unlimited())
	assert.Equal(t, int64(0), rl.MaxDaily())
	assert.Equal(t, int64(-1), rl.Remaining())

	require.NoError(t, rl.Wait(context.Background()))
	assert.Equal(t, int64(1), rl.DailyCount())
	assert.Equal(t, int64(-1), rl.Remaining())
	assert.False(t, dhl.NewRateLimiter(1, 1, 250).Unlimited())
}

func TestRateLimiter_WindowRollsOver(t *testing.T) {
	t.Parallel()

	var mu sync.Mutex
	currentTime := time.Date(2026, 10, 19, 9, 0, 0, 0, time.UTC)

	rl := dhl.NewRateLimiter(
		100, 10, 2,
		dhl.WithRateLimiterNowFunc(func() time.Time {
			mu.Lock()
			defer mu.Unlock()
			return currentTime
		}),
	)

	require.NoError(t, rl.Wait(context.Background()))
	require.NoError(t, rl.Wait(context.Background()))
	require.ErrorIs(t, rl.Wait(context.Background()), dhl.ErrDailyLimitReached)
	assert.Equal(t, time.Date(2026, 10, 20, 9, 0, 0, 0, time.UTC), rl.ResetAt())

	// Still inside the window.
	mu.Lock()
	currentTime = currentTime.Add(23 * time.Hour)
	mu.Unlock()
	require.ErrorIs(t, rl.Wait(context.Background()), dhl.ErrDailyLimitReached)

	// Window expired.
	mu.Lock()
	currentTime = currentTime.Add(time.Hour)
	mu.Unlock()
	require.NoError(t, rl.Wait(context.Background()))
	assert.Equal(t, int64(1), rl.DailyCount())
}

func TestRateLimiter_ContextCanceled(t *testing.T) {
	t.Parallel()

	// Very slow rate limiter: 1 per 10 seconds, burst 1.
	rl := dhl.NewRateLimiter(0.1, 1, 250)

	// First call should succeed (uses burst).
	require.NoError(t, rl.Wait(context.Background()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := rl.Wait(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rate limiter wait")

	// The cancelled call does not consume quota.
	assert.Equal(t, int64(1), rl.DailyCount())
}
