package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/awb-tracker/internal/engine"
)

// StatusProvider exposes the poller's last completed cycle.
type StatusProvider interface {
	Status() engine.Status
}

// StatusHandler provides the tracker status endpoint.
type StatusHandler struct {
	provider StatusProvider
}

// NewStatusHandler creates a new StatusHandler.
func NewStatusHandler(p StatusProvider) *StatusHandler {
	return &StatusHandler{provider: p}
}

// StatusOutput is the response body for the status endpoint.
type StatusOutput struct {
	Body struct {
		AWB         string     `json:"awb"                    example:"1234567890"           doc:"Air waybill being tracked"`
		StepID      int        `json:"step_id"                example:"4"                    doc:"Counter of the latest checkpoint, -1 before the first observation"`
		Description string     `json:"description,omitempty"  example:"Out for delivery"     doc:"Description of the latest checkpoint"`
		LastOutcome string     `json:"last_outcome,omitempty" example:"unchanged"            doc:"Outcome of the last cycle: updated, unchanged or selector_miss"`
		LastCheck   *time.Time `json:"last_check,omitempty"   example:"2026-10-19T14:30:00Z" doc:"When the last cycle completed"`
		LastChange  *time.Time `json:"last_change,omitempty"  example:"2026-10-19T09:12:00Z" doc:"When the status last changed"`
	}
}

// GetStatus returns what the tracker last saw.
func (h *StatusHandler) GetStatus(_ context.Context, _ *struct{}) (*StatusOutput, error) {
	if h.provider == nil {
		return nil, huma.Error503ServiceUnavailable("tracker not running")
	}

	st := h.provider.Status()
	resp := &StatusOutput{}
	resp.Body.AWB = st.AWB
	resp.Body.StepID = st.StepID
	resp.Body.Description = st.Description
	resp.Body.LastOutcome = st.LastOutcome
	resp.Body.LastCheck = timePtr(st.LastCheck)
	resp.Body.LastChange = timePtr(st.LastChange)

	return resp, nil
}

func timePtr(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}

// RegisterStatusRoutes registers the status endpoint with the Huma API.
func RegisterStatusRoutes(api huma.API, h *StatusHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-status",
		Method:      http.MethodGet,
		Path:        "/api/v1/status",
		Summary:     "Get tracking status",
		Description: "Returns the latest checkpoint seen for the tracked AWB and when it was checked.",
		Tags:        []string{"tracking"},
	}, h.GetStatus)
}
