// Package handlers implements the HTTP handlers exposed next to the polling
// loop: liveness and readiness probes, the DHL quota and the tracker status.
package handlers

// ErrorResponse is the standard error response body.
type ErrorResponse struct {
	Error string `json:"error" example:"something went wrong"`
}

// StatusResponse is a generic status response body.
type StatusResponse struct {
	Status string `json:"status" example:"ok"`
}
