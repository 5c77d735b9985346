package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/donaldgifford/awb-tracker/internal/dhl"
)

// QuotaHandler provides the DHL call quota endpoint.
type QuotaHandler struct {
	rl *dhl.RateLimiter
}

// NewQuotaHandler creates a new QuotaHandler.
func NewQuotaHandler(rl *dhl.RateLimiter) *QuotaHandler {
	return &QuotaHandler{rl: rl}
}

// QuotaOutput is the response body for the quota endpoint.
type QuotaOutput struct {
	Body struct {
		DailyLimit int64     `json:"daily_limit" example:"250"                  doc:"Configured daily tracking call limit, 0 when unlimited"`
		DailyUsed  int64     `json:"daily_used"  example:"42"                   doc:"Calls made in the current 24-hour window"`
		Remaining  int64     `json:"remaining"   example:"208"                  doc:"Calls left in the current window, -1 when unlimited"`
		ResetAt    time.Time `json:"reset_at"    example:"2026-10-19T14:30:00Z" doc:"When the current window expires"`
	}
}

// GetQuota returns the current DHL quota usage.
func (h *QuotaHandler) GetQuota(_ context.Context, _ *struct{}) (*QuotaOutput, error) {
	resp := &QuotaOutput{}
	if h.rl == nil {
		return resp, nil
	}

	resp.Body.DailyLimit = h.rl.MaxDaily()
	resp.Body.DailyUsed = h.rl.DailyCount()
	resp.Body.Remaining = h.rl.Remaining()
	resp.Body.ResetAt = h.rl.ResetAt()

	return resp, nil
}

// RegisterQuotaRoutes registers the quota endpoint with the Huma API.
func RegisterQuotaRoutes(api huma.API, h *QuotaHandler) {
	huma.Register(api, huma.Operation{
		OperationID: "get-quota",
		Method:      http.MethodGet,
		Path:        "/api/v1/quota",
		Summary:     "Get DHL call quota",
		Description: "Returns the tracking calls used in the current 24-hour window, what remains, and when the window resets.",
		Tags:        []string{"dhl"},
	}, h.GetQuota)
}
