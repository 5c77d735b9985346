package notify

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/donaldgifford/awb-tracker/internal/metrics"
)

// Fanout implements Notifier by delivering to every registered backend in
// order. One backend failing does not stop the others.
type Fanout struct {
	backends []namedNotifier
	log      *slog.Logger
}

type namedNotifier struct {
	name string
	n    Notifier
}

// NewFanout creates an empty Fanout.
func NewFanout(log *slog.Logger) *Fanout {
	return &Fanout{log: log}
}

// Add registers a backend under name, used in logs and metric labels.
func (f *Fanout) Add(name string, n Notifier) *Fanout {
	f.backends = append(f.backends, namedNotifier{name: name, n: n})
	return f
}

// Len returns the number of registered backends.
func (f *Fanout) Len() int {
	return len(f.backends)
}

// Notify delivers u to each backend and joins their errors.
func (f *Fanout) Notify(ctx context.Context, u Update) error {
	var errs []error
	for _, b := range f.backends {
		if err := b.n.Notify(ctx, u); err != nil {
			metrics.NotificationFailuresTotal.WithLabelValues(b.name).Inc()
			f.log.Warn("notification failed", "backend", b.name, "error", err)
			errs = append(errs, fmt.Errorf("%s: %w", b.name, err))
			continue
		}
		metrics.NotificationsSentTotal.WithLabelValues(b.name).Inc()
		f.log.Debug("notification sent", "backend", b.name, "step", u.Checkpoint.Counter)
	}
	return errors.Join(errs...)
}
