package cmd

import (
	"bytes"
	"context"
	"log/slog"
	"net"
	"net/http"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/donaldgifford/awb-tracker/internal/api"
	"github.com/donaldgifford/awb-tracker/internal/dhl"
	"github.com/donaldgifford/awb-tracker/internal/engine"
)

type lockedBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *lockedBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *lockedBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

type idleTracker struct{}

func (idleTracker) Ready() bool           { return false }
func (idleTracker) Status() engine.Status { return engine.Status{StepID: -1} }

func TestStartAPIServer_LogsListenFailureImmediately(t *testing.T) {
	t.Parallel()

	taken, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer taken.Close()

	logs := &lockedBuffer{}
	log := slog.New(slog.NewTextHandler(logs, nil))
	srv := api.NewServer("test", idleTracker{}, dhl.NewRateLimiter(1, 1, 0), log)

	stop := startAPIServer(context.Background(), srv, taken.Addr().String(), log)

	// The failure is reported while tracking is still running, before stop.
	require.Eventually(t, func() bool {
		return strings.Contains(logs.String(), "api server failed")
	}, 2*time.Second, 5*time.Millisecond)
	assert.Contains(t, logs.String(), taken.Addr().String())

	stop()
}

func TestStartAPIServer_ServesUntilStopped(t *testing.T) {
	t.Parallel()

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	logs := &lockedBuffer{}
	log := slog.New(slog.NewTextHandler(logs, nil))
	srv := api.NewServer("test", idleTracker{}, dhl.NewRateLimiter(1, 1, 0), log)

	stop := startAPIServer(context.Background(), srv, addr, log)

	require.Eventually(t, func() bool {
		resp, err := http.Get("http://" + addr + "/healthz") //nolint:noctx // local test server
		if err != nil {
			return false
		}
		_ = resp.Body.Close()
		return resp.StatusCode == http.StatusOK
	}, 2*time.Second, 10*time.Millisecond)

	stop()
	assert.NotContains(t, logs.String(), "api server failed")
}
