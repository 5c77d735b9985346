package notify

import (
	"context"
	"log/slog"
)

// NoOpNotifier implements Notifier by logging discarded updates. It is used
// when no notification backend is enabled.
type NoOpNotifier struct {
	log *slog.Logger
}

// NewNoOpNotifier creates a notifier that discards updates with a log message.
func NewNoOpNotifier(log *slog.Logger) *NoOpNotifier {
	return &NoOpNotifier{log: log}
}

// Notify logs and discards an update.
func (n *NoOpNotifier) Notify(_ context.Context, u Update) error {
	n.log.Debug("notification discarded (no backend configured)",
		"awb", u.AWB,
		"step", u.Checkpoint.Counter,
		"status", u.Checkpoint.Description,
	)
	return nil
}
