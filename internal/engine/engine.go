// Package engine runs the polling loop: fetch the shipment history, detect a
// status change, and report it.
package engine

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"

	"github.com/donaldgifford/awb-tracker/internal/console"
	"github.com/donaldgifford/awb-tracker/internal/dhl"
	"github.com/donaldgifford/awb-tracker/internal/metrics"
	"github.com/donaldgifford/awb-tracker/internal/notify"
	"github.com/donaldgifford/awb-tracker/pkg/tracking"
)

// Console lines printed by each cycle.
const (
	msgAsking   = "====> asking DHL about updates..."
	msgNoUpdate = "====> No update available..."
	msgDone     = "====> done!"
	msgNoData   = "Error: given DHL AWB code is not valid, or DHL API returned some data I cannot use..."
	msgNoQuota  = "====> daily DHL call quota used up, skipping this check..."
)

const (
	defaultNotifyTimeout = 30 * time.Second
	defaultDrainTimeout  = 5 * time.Second
)

// Poller fetches a shipment's checkpoints on a schedule and reports status
// changes. Its only memory between cycles is the tracking.State passed into
// and returned from each cycle.
type Poller struct {
	awb      string
	client   dhl.Client
	notifier notify.Notifier
	printer  *console.Printer
	schedule cron.Schedule
	log      *slog.Logger

	now              func() time.Time
	startImmediately bool
	notifyTimeout    time.Duration
	drainTimeout     time.Duration

	pending sync.WaitGroup

	mu     sync.Mutex
	status Status
}

// Status is a read-only snapshot of the most recent completed cycle, kept for
// reporting. The loop never reads it back.
type Status struct {
	AWB         string    `json:"awb"`
	LastCheck   time.Time `json:"last_check"`
	LastOutcome string    `json:"last_outcome,omitempty"`
	StepID      int       `json:"step_id"`
	Description string    `json:"description,omitempty"`
	LastChange  time.Time `json:"last_change"`
}

// Option configures the Poller.
type Option func(*Poller)

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Poller) {
		p.log = l
	}
}

// WithSchedule sets when cycles run. The next run is computed from the
// completion time of the previous cycle.
func WithSchedule(s cron.Schedule) Option {
	return func(p *Poller) {
		p.schedule = s
	}
}

// WithStartImmediately runs the first cycle without waiting one period.
func WithStartImmediately(v bool) Option {
	return func(p *Poller) {
		p.startImmediately = v
	}
}

// WithNotifyTimeout bounds each notification dispatch.
func WithNotifyTimeout(d time.Duration) Option {
	return func(p *Poller) {
		p.notifyTimeout = d
	}
}

// WithDrainTimeout bounds how long Run waits for in-flight notifications
// before returning.
func WithDrainTimeout(d time.Duration) Option {
	return func(p *Poller) {
		p.drainTimeout = d
	}
}

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(p *Poller) {
		p.now = now
	}
}

// NewPoller creates a Poller for awb with injected dependencies.
func NewPoller(
	awb string,
	c dhl.Client,
	n notify.Notifier,
	pr *console.Printer,
	opts ...Option,
) *Poller {
	p := &Poller{
		awb:           awb,
		client:        c,
		notifier:      n,
		printer:       pr,
		schedule:      cron.Every(time.Minute),
		log:           slog.Default(),
		now:           time.Now,
		notifyTimeout: defaultNotifyTimeout,
		drainTimeout:  defaultDrainTimeout,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.status = Status{AWB: awb, StepID: tracking.NoStep}
	return p
}

// Ready reports whether at least one cycle has completed.
func (p *Poller) Ready() bool {
	return !p.Status().LastCheck.IsZero()
}

// Status returns the snapshot of the most recent completed cycle.
func (p *Poller) Status() Status {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.status
}

// record updates the status snapshot. latest is nil when no checkpoint could
// be selected.
func (p *Poller) record(outcome string, latest *tracking.Checkpoint, changed bool) {
	p.mu.Lock()
	defer p.mu.Unlock()

	now := p.now()
	p.status.LastCheck = now
	p.status.LastOutcome = outcome
	if latest != nil {
		p.status.StepID = latest.Counter
		p.status.Description = latest.Description
	}
	if changed {
		p.status.LastChange = now
	}
}

// Run executes cycles until ctx is cancelled or a fetch yields no data. The
// next cycle is scheduled only after the previous one finished, so at most
// one request is outstanding. Cancellation returns nil and the final state.
// A failed fetch returns an error wrapping dhl.ErrNoData. Cycles skipped for
// an exhausted quota keep the loop running.
func (p *Poller) Run(ctx context.Context, state tracking.State) (tracking.State, error) {
	defer p.drain()

	p.log.Info("poller started", "awb", p.awb, "start_immediately", p.startImmediately)

	first := true
	for {
		if !first || !p.startImmediately {
			if err := p.sleepUntilNext(ctx); err != nil {
				p.log.Info("poller stopped", "last_step_id", state.LastStepID)
				return state, nil
			}
		}
		first = false

		next, err := p.Cycle(ctx, state)
		if err != nil {
			if ctx.Err() != nil {
				p.log.Info("poller stopped", "last_step_id", state.LastStepID)
				return state, nil
			}
			return state, err
		}
		state = next
	}
}

func (p *Poller) sleepUntilNext(ctx context.Context) error {
	now := p.now()
	next := p.schedule.Next(now)
	metrics.NextPollTimestamp.Set(float64(next.Unix()))
	p.log.Debug("next poll scheduled", "at", next.Format(time.RFC3339))

	timer := time.NewTimer(next.Sub(now))
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Cycle runs one fetch-and-evaluate step and returns the next state. A fetch
// without usable data returns an error wrapping dhl.ErrNoData and no
// notification is sent. A history without a latest checkpoint, or a call
// rejected by the daily quota, is reported and leaves the state unchanged.
func (p *Poller) Cycle(ctx context.Context, state tracking.State) (tracking.State, error) {
	start := time.Now()
	log := p.log.With("cycle_id", uuid.NewString(), "awb", p.awb)
	defer func() {
		metrics.PollCycleDuration.Observe(time.Since(start).Seconds())
	}()

	p.printer.Info(msgAsking)

	checkpoints, err := p.client.Checkpoints(ctx, p.awb)
	if errors.Is(err, dhl.ErrDailyLimitReached) {
		metrics.PollCyclesTotal.WithLabelValues("quota_exhausted").Inc()
		log.Warn("daily quota exhausted", "error", err)
		p.printer.Quiet(msgNoQuota)
		p.record("quota_exhausted", nil, false)
		p.printer.Info(msgDone)
		return state, nil
	}
	if err != nil {
		metrics.PollCyclesTotal.WithLabelValues("no_data").Inc()
		if ctx.Err() == nil {
			log.Error("fetching checkpoints failed", "error", err)
			p.printer.Alert(msgNoData)
		}
		return state, fmt.Errorf("fetching checkpoints for %s: %w", p.awb, err)
	}

	next, outcome, latest, err := tracking.Evaluate(state, checkpoints)
	switch {
	case errors.Is(err, tracking.ErrNoLatestCheckpoint):
		metrics.SelectorMissesTotal.Inc()
		metrics.PollCyclesTotal.WithLabelValues("selector_miss").Inc()
		log.Warn("history has no latest checkpoint", "checkpoints", len(checkpoints), "error", err)
		p.printer.Alert("Error: DHL returned a history without a latest step, skipping this check...")
		p.record("selector_miss", nil, false)
	case err != nil:
		return state, err
	case outcome == tracking.OutcomeUpdated:
		metrics.PollCyclesTotal.WithLabelValues(outcome.String()).Inc()
		metrics.LastStepID.Set(float64(next.LastStepID))
		metrics.LastUpdateTimestamp.Set(float64(p.now().Unix()))
		log.Info("status changed",
			"previous_step_id", state.LastStepID,
			"step_id", latest.Counter,
			"status", latest.Description,
		)

		u := notify.Update{AWB: p.awb, PreviousStepID: state.LastStepID, Checkpoint: latest}
		p.printer.Alert(u.Message())
		p.dispatch(log, u)
		p.record(outcome.String(), &latest, true)
	default:
		metrics.PollCyclesTotal.WithLabelValues(outcome.String()).Inc()
		log.Debug("status unchanged", "step_id", latest.Counter)
		p.printer.Quiet(msgNoUpdate)
		p.record(outcome.String(), &latest, false)
	}

	p.printer.Info(msgDone)
	return next, nil
}

// dispatch sends u on its own goroutine so a slow or failing backend never
// delays the loop.
func (p *Poller) dispatch(log *slog.Logger, u notify.Update) {
	p.pending.Add(1)
	go func() {
		defer p.pending.Done()

		ctx, cancel := context.WithTimeout(context.Background(), p.notifyTimeout)
		defer cancel()

		start := time.Now()
		err := p.notifier.Notify(ctx, u)
		metrics.NotificationDuration.Observe(time.Since(start).Seconds())
		if err != nil {
			log.Warn("notification failed", "error", err)
		}
	}()
}

// drain waits for in-flight notifications, up to the drain timeout.
func (p *Poller) drain() {
	done := make(chan struct{})
	go func() {
		p.pending.Wait()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(p.drainTimeout):
		p.log.Warn("gave up waiting for notifications", "timeout", p.drainTimeout)
	}
}
