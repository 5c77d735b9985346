// Package tracking defines the shipment checkpoint types and the pure step
// selection and evaluation logic used by the poller.
package tracking

import (
	"errors"
	"fmt"
)

// NoStep is the last-seen step id before any checkpoint has been observed.
const NoStep = -1

// ErrNoLatestCheckpoint is returned when no checkpoint's counter equals the
// number of checkpoints in the history.
var ErrNoLatestCheckpoint = errors.New("no checkpoint matches history length")

// Checkpoint is one recorded event in a shipment's delivery history.
type Checkpoint struct {
	Counter     int    `json:"counter"`
	Description string `json:"description"`
	Date        string `json:"date,omitempty"`
	Time        string `json:"time,omitempty"`
	Location    string `json:"location,omitempty"`
}

// Outcome describes what a polling cycle concluded.
type Outcome int

// Outcome constants.
const (
	OutcomeUnchanged Outcome = iota
	OutcomeUpdated
)

func (o Outcome) String() string {
	switch o {
	case OutcomeUpdated:
		return "updated"
	default:
		return "unchanged"
	}
}

// State is the poller's memory between cycles.
type State struct {
	LastStepID int
}

// NewState returns a State that has not seen any step yet.
func NewState() State {
	return State{LastStepID: NoStep}
}

// Seen reports whether any step has been observed.
func (s State) Seen() bool {
	return s.LastStepID != NoStep
}

// Latest returns the checkpoint whose counter equals len(checkpoints). The
// carrier returns counters 1..N, so that is the most recent event regardless
// of the order on the wire.
func Latest(checkpoints []Checkpoint) (Checkpoint, error) {
	n := len(checkpoints)
	for i := range checkpoints {
		if checkpoints[i].Counter == n {
			return checkpoints[i], nil
		}
	}
	return Checkpoint{}, fmt.Errorf("%w (%d checkpoints)", ErrNoLatestCheckpoint, n)
}

// Evaluate selects the latest checkpoint and compares it against state. It
// returns the next state, the outcome, and the selected checkpoint. On error
// the input state is returned unchanged.
func Evaluate(state State, checkpoints []Checkpoint) (State, Outcome, Checkpoint, error) {
	latest, err := Latest(checkpoints)
	if err != nil {
		return state, OutcomeUnchanged, Checkpoint{}, err
	}

	if latest.Counter == state.LastStepID {
		return state, OutcomeUnchanged, latest, nil
	}

	return State{LastStepID: latest.Counter}, OutcomeUpdated, latest, nil
}
