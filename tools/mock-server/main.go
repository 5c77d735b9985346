// Package main implements a mock DHL tracking endpoint for local development.
// It replays a shipment history from a JSON fixture, revealing one more
// checkpoint every few requests, so the tracker can be exercised without
// hitting the real service.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"sync"
	"time"
)

type trackingResponse struct {
	Results []trackingResult `json:"results"`
}

type trackingResult struct {
	ID          string            `json:"id"`
	Label       string            `json:"label"`
	Checkpoints []json.RawMessage `json:"checkpoints"`
}

func main() {
	port := flag.Int("port", 8089, "port to listen on")
	fixtureFile := flag.String("fixture", "tools/mock-server/testdata/shipment.json", "path to the shipment history fixture")
	every := flag.Int("every", 2, "reveal one more checkpoint every N requests")
	failAfter := flag.Int("fail-after", 0, "answer with an empty result set after N requests (0 disables)")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	fixture, err := loadFixture(*fixtureFile)
	if err != nil {
		logger.Error("failed to load fixture", "path", *fixtureFile, "error", err)
		os.Exit(1)
	}
	logger.Info("loaded fixture", "checkpoints", len(fixture.Checkpoints))

	replay := newReplay(fixture, *every, *failAfter)

	mux := http.NewServeMux()
	mux.HandleFunc("GET /shipmentTracking", trackingHandler(logger, replay))

	addr := fmt.Sprintf(":%d", *port)
	logger.Info("starting mock DHL server", "addr", addr)

	srv := &http.Server{
		Addr:         addr,
		Handler:      requestLogger(logger, mux),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}
	if err := srv.ListenAndServe(); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func loadFixture(path string) (*trackingResult, error) {
	data, err := os.ReadFile(path) //nolint:gosec // fixture path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading fixture: %w", err)
	}
	var resp trackingResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		return nil, fmt.Errorf("parsing fixture: %w", err)
	}
	if len(resp.Results) == 0 || len(resp.Results[0].Checkpoints) == 0 {
		return nil, fmt.Errorf("fixture %s has no checkpoints", path)
	}
	return &resp.Results[0], nil
}

func requestLogger(logger *slog.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		logger.Debug("request", "method", r.Method, "path", r.URL.Path, "query", r.URL.RawQuery)
		next.ServeHTTP(w, r)
	})
}

// replay tracks how much of the fixture has been revealed.
type replay struct {
	fixture   *trackingResult
	every     int
	failAfter int

	mu       sync.Mutex
	requests int
}

func newReplay(fixture *trackingResult, every, failAfter int) *replay {
	return &replay{fixture: fixture, every: max(every, 1), failAfter: failAfter}
}

// next returns the checkpoints visible for the next request, or nil once the
// configured failure point is reached.
func (r *replay) next() []json.RawMessage {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.requests++
	if r.failAfter > 0 && r.requests > r.failAfter {
		return nil
	}

	visible := min(1+(r.requests-1)/r.every, len(r.fixture.Checkpoints))
	return r.fixture.Checkpoints[:visible]
}

func trackingHandler(logger *slog.Logger, r *replay) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		awb := req.URL.Query().Get("AWB")
		if awb == "" {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusBadRequest)
			//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
			json.NewEncoder(w).Encode(map[string]string{"error": "missing AWB parameter"})
			return
		}

		resp := trackingResponse{Results: []trackingResult{}}
		if checkpoints := r.next(); checkpoints != nil {
			resp.Results = append(resp.Results, trackingResult{
				ID:          awb,
				Label:       r.fixture.Label,
				Checkpoints: checkpoints,
			})
		}

		w.Header().Set("Content-Type", "application/json")
		//nolint:errcheck,gosec // best-effort write to HTTP response in mock server
		json.NewEncoder(w).Encode(resp)
		logger.Info("tracking", "awb", awb, "results", len(resp.Results))
	}
}
