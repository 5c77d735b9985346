// Package dhl provides the DHL shipment tracking client abstracted behind an
// interface for testability.
package dhl

import (
	"context"
	"errors"

	"github.com/donaldgifford/awb-tracker/pkg/tracking"
)

// ErrNoData is returned when the tracking endpoint yields nothing usable:
// transport failures, non-200 responses, malformed JSON, or an empty result.
var ErrNoData = errors.New("no usable tracking data")

// Client defines the interface for fetching a shipment's checkpoints.
type Client interface {
	Checkpoints(ctx context.Context, awb string) ([]tracking.Checkpoint, error)
}
