package dhl

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"golang.org/x/time/rate"
)

// ErrDailyLimitReached is returned when the daily API call quota has been exhausted.
var ErrDailyLimitReached = errors.New("daily API limit reached")

// quotaWindow is the length of the rolling quota window.
const quotaWindow = 24 * time.Hour

// RateLimiter spaces tracking calls with a token bucket and enforces a
// rolling 24-hour call quota. The window opens on the first call after
// construction or after the previous window expired. A quota of zero or less
// disables the daily limit; calls are still counted.
type RateLimiter struct {
	limiter  *rate.Limiter
	maxDaily int64
	nowFunc  func() time.Time

	mu      sync.Mutex
	used    int64
	resetAt time.Time
}

// RateLimiterOption configures the RateLimiter.
type RateLimiterOption func(*RateLimiter)

// WithRateLimiterNowFunc overrides the time function for testing.
func WithRateLimiterNowFunc(f func() time.Time) RateLimiterOption {
	return func(r *RateLimiter) {
		r.nowFunc = f
	}
}

// NewRateLimiter creates a rate limiter allowing perSecond calls with the
// given burst, and at most maxDaily calls per rolling 24 hours. Pass 0 for no
// daily quota.
func NewRateLimiter(
	perSecond float64,
	burst int,
	maxDaily int64,
	opts ...RateLimiterOption,
) *RateLimiter {
	r := &RateLimiter{
		limiter:  rate.NewLimiter(rate.Limit(perSecond), burst),
		maxDaily: maxDaily,
		nowFunc:  time.Now,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Wait reserves one call from the daily quota, then blocks until the token
// bucket allows it or ctx is done. A call cancelled while waiting gives its
// quota slot back.
func (r *RateLimiter) Wait(ctx context.Context) error {
	if err := r.reserve(); err != nil {
		return err
	}

	if err := r.limiter.Wait(ctx); err != nil {
		r.release()
		return fmt.Errorf("rate limiter wait: %w", err)
	}
	return nil
}

// MaxDaily returns the configured daily call quota, 0 when unlimited.
func (r *RateLimiter) MaxDaily() int64 {
	if r.Unlimited() {
		return 0
	}
	return r.maxDaily
}

// Unlimited reports whether the daily quota is disabled.
func (r *RateLimiter) Unlimited() bool {
	return r.maxDaily <= 0
}

// DailyCount returns the number of calls made in the current window.
func (r *RateLimiter) DailyCount() int64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rollLocked()
	return r.used
}

// Remaining returns the number of calls left in the current window, or -1
// when there is no daily quota.
func (r *RateLimiter) Remaining() int64 {
	if r.Unlimited() {
		return -1
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rollLocked()
	return max(r.maxDaily-r.used, 0)
}

// ResetAt returns when the current window expires. It is the zero time when
// no window is open.
func (r *RateLimiter) ResetAt() time.Time {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rollLocked()
	return r.resetAt
}

func (r *RateLimiter) reserve() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.rollLocked()
	if !r.Unlimited() && r.used >= r.maxDaily {
		return fmt.Errorf("%w (%d/%d, resets %s)",
			ErrDailyLimitReached, r.used, r.maxDaily, r.resetAt.Format(time.RFC3339))
	}
	if r.resetAt.IsZero() {
		r.resetAt = r.nowFunc().Add(quotaWindow)
	}
	r.used++
	return nil
}

func (r *RateLimiter) release() {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.used > 0 {
		r.used--
	}
}

func (r *RateLimiter) rollLocked() {
	if !r.resetAt.IsZero() && !r.nowFunc().Before(r.resetAt) {
		r.used = 0
		r.resetAt = time.Time{}
	}
}
