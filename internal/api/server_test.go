package api_test

import (
	"context"
	"io"
	"log/slog"
	"net"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/awb-tracker/internal/api"
	"github.com/donaldgifford/awb-tracker/internal/dhl"
	"github.com/donaldgifford/awb-tracker/internal/engine"
)

type fakeTracker struct {
	ready  bool
	status engine.Status
}

func (f *fakeTracker) Ready() bool           { return f.ready }
func (f *fakeTracker) Status() engine.Status { return f.status }

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestServer_Routes(t *testing.T) {
	t.Parallel()

	tracker := &fakeTracker{
		ready:  true,
		status: engine.Status{AWB: "1234567890", StepID: 3, Description: "Arrived at facility"},
	}
	srv := api.NewServer("test", tracker, dhl.NewRateLimiter(1, 1, 250), quietLogger())

	tests := []struct {
		name         string
		path         string
		wantStatus   int
		wantContains string
	}{
		{name: "healthz", path: "/healthz", wantStatus: http.StatusOK, wantContains: `"ok"`},
		{name: "readyz", path: "/readyz", wantStatus: http.StatusOK, wantContains: `"ready"`},
		{name: "metrics", path: "/metrics", wantStatus: http.StatusOK, wantContains: "awb_tracker_"},
		{name: "status", path: "/api/v1/status", wantStatus: http.StatusOK, wantContains: "Arrived at facility"},
		{name: "quota", path: "/api/v1/quota", wantStatus: http.StatusOK, wantContains: `"daily_limit":250`},
		{name: "openapi", path: "/openapi.json", wantStatus: http.StatusOK, wantContains: "/api/v1/status"},
		{name: "unknown", path: "/nope", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, tt.path, http.NoBody)
			rec := httptest.NewRecorder()
			srv.Handler().ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantContains != "" {
				assert.Contains(t, rec.Body.String(), tt.wantContains)
			}
		})
	}
}

func TestServer_ReadyzBeforeFirstCycle(t *testing.T) {
	t.Parallel()

	srv := api.NewServer("test", &fakeTracker{}, nil, quietLogger())

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/readyz", http.NoBody))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestServer_ServeStopsOnCancel(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	srv := api.NewServer("test", &fakeTracker{ready: true}, nil, quietLogger())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() {
		done <- srv.Serve(ctx, ln)
	}()

	url := "http://" + ln.Addr().String() + "/healthz"
	require.Eventually(t, func() bool {
		resp, err := http.Get(url) //nolint:noctx // local test server
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
