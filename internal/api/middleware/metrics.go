// Package middleware provides Echo middleware for the awb-tracker API.
package middleware

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/donaldgifford/awb-tracker/internal/metrics"
)

// unmatchedPath labels requests that hit no registered route, keeping the
// path label bounded.
const unmatchedPath = "unmatched"

// probeGauges maps probe paths to their up/down gauge. Probes and scrapes are
// kept out of the request histogram and counter.
var probeGauges = map[string]prometheus.Gauge{
	"/healthz": metrics.HealthzUp,
	"/readyz":  metrics.ReadyzUp,
	"/metrics": nil,
}

// Metrics returns Echo middleware that records request duration and status
// for the API routes, and sets the probe gauges for /healthz and /readyz.
func Metrics() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()
			err := next(c)

			path := c.Path()
			if path == "" {
				path = c.Request().URL.Path
			}
			status := responseStatus(c, err)

			if gauge, probe := probeGauges[path]; probe {
				if gauge != nil {
					gauge.Set(upValue(status))
				}
				return err
			}

			if c.Path() == "" || status == http.StatusNotFound {
				path = unmatchedPath
			}

			labels := []string{c.Request().Method, path, strconv.Itoa(status)}
			metrics.HTTPRequestDuration.WithLabelValues(labels...).Observe(time.Since(start).Seconds())
			metrics.HTTPRequestsTotal.WithLabelValues(labels...).Inc()

			return err
		}
	}
}

// responseStatus returns the status the client will see. Errors returned by
// handlers are written by the error handler after middleware has run.
func responseStatus(c echo.Context, err error) int {
	if err == nil || c.Response().Committed {
		return c.Response().Status
	}
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return he.Code
	}
	return http.StatusInternalServerError
}

func upValue(status int) float64 {
	if status >= 200 && status < 300 {
		return 1
	}
	return 0
}
