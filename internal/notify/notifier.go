// Package notify defines the notification interface and implementations
// for status change delivery.
package notify

import (
	"context"

	"github.com/donaldgifford/awb-tracker/pkg/tracking"
)

// Update describes a detected status change for a shipment.
type Update struct {
	AWB            string
	PreviousStepID int
	Checkpoint     tracking.Checkpoint
}

// Message returns the text shown on the console and in notifications.
func (u Update) Message() string {
	return "====> DHL update available!\n====> New status: " + u.Checkpoint.Description
}

// Notifier delivers status change notifications.
type Notifier interface {
	Notify(ctx context.Context, u Update) error
}
