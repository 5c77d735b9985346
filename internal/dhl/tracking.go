package dhl

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/donaldgifford/awb-tracker/internal/metrics"
	"github.com/donaldgifford/awb-tracker/pkg/tracking"
)

const (
	defaultEndpoint     = "https://www.dhl.fr/shipmentTracking"
	defaultCountryCode  = "fr"
	defaultLanguageCode = "fr"
	defaultCacheBuster  = "1542895666503"

	// maxBodyBytes caps how much of a response is read.
	maxBodyBytes = 4 << 20
)

// TrackingClient implements Client using the public DHL shipment tracking
// endpoint.
type TrackingClient struct {
	endpoint     string
	countryCode  string
	languageCode string
	cacheBuster  string
	client       *http.Client
	rateLimiter  *RateLimiter
}

// TrackingOption configures the TrackingClient.
type TrackingOption func(*TrackingClient)

// WithEndpoint overrides the default tracking endpoint.
func WithEndpoint(u string) TrackingOption {
	return func(c *TrackingClient) {
		c.endpoint = u
	}
}

// WithLocale overrides the country and language codes sent with each request.
func WithLocale(countryCode, languageCode string) TrackingOption {
	return func(c *TrackingClient) {
		c.countryCode = countryCode
		c.languageCode = languageCode
	}
}

// WithCacheBuster overrides the static "_" query parameter.
func WithCacheBuster(v string) TrackingOption {
	return func(c *TrackingClient) {
		c.cacheBuster = v
	}
}

// WithHTTPClient overrides the default HTTP client.
func WithHTTPClient(hc *http.Client) TrackingOption {
	return func(c *TrackingClient) {
		c.client = hc
	}
}

// WithRateLimiter injects a rate limiter that controls per-second and daily
// API call limits. When set, every Checkpoints() call goes through Wait() first.
func WithRateLimiter(r *RateLimiter) TrackingOption {
	return func(c *TrackingClient) {
		c.rateLimiter = r
		if r != nil {
			metrics.DHLDailyLimit.Set(float64(r.MaxDaily()))
		}
	}
}

// NewTrackingClient creates a new DHL tracking client.
func NewTrackingClient(opts ...TrackingOption) *TrackingClient {
	c := &TrackingClient{
		endpoint:     defaultEndpoint,
		countryCode:  defaultCountryCode,
		languageCode: defaultLanguageCode,
		cacheBuster:  defaultCacheBuster,
		client:       &http.Client{Timeout: 30 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type trackingAPIResponse struct {
	Results []trackingResult `json:"results"`
}

type trackingResult struct {
	ID          string                `json:"id"`
	Label       string                `json:"label"`
	Checkpoints []tracking.Checkpoint `json:"checkpoints"`
}

// Checkpoints implements Client.Checkpoints. A call stopped by the rate
// limiter never reaches the endpoint; an exhausted quota wraps
// ErrDailyLimitReached. Every failure of the request itself wraps ErrNoData.
func (c *TrackingClient) Checkpoints(
	ctx context.Context,
	awb string,
) ([]tracking.Checkpoint, error) {
	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	start := time.Now()
	defer func() {
		metrics.FetchDuration.Observe(time.Since(start).Seconds())
	}()

	checkpoints, err := c.fetch(ctx, awb)
	if err != nil {
		metrics.FetchErrorsTotal.Inc()
		return nil, fmt.Errorf("%w: %w", ErrNoData, err)
	}
	return checkpoints, nil
}

func (c *TrackingClient) wait(ctx context.Context) error {
	if c.rateLimiter == nil {
		return nil
	}
	if err := c.rateLimiter.Wait(ctx); err != nil {
		if errors.Is(err, ErrDailyLimitReached) {
			metrics.DHLDailyLimitHits.Inc()
		}
		return fmt.Errorf("rate limit: %w", err)
	}
	metrics.DHLDailyUsage.Set(float64(c.rateLimiter.DailyCount()))
	return nil
}

func (c *TrackingClient) fetch(ctx context.Context, awb string) ([]tracking.Checkpoint, error) {
	metrics.DHLAPICallsTotal.Inc()

	u, err := c.buildTrackingURL(awb)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, http.NoBody)
	if err != nil {
		return nil, fmt.Errorf("creating HTTP request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("executing tracking request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("reading response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("DHL API error (status %d): %s", resp.StatusCode, truncate(string(body), 200))
	}

	var apiResp trackingAPIResponse
	if err := json.Unmarshal(body, &apiResp); err != nil {
		return nil, fmt.Errorf("parsing tracking response: %w", err)
	}

	if len(apiResp.Results) == 0 {
		return nil, errors.New("response has no results")
	}

	checkpoints := apiResp.Results[0].Checkpoints
	if len(checkpoints) == 0 {
		return nil, errors.New("first result has no checkpoints")
	}

	return checkpoints, nil
}

func (c *TrackingClient) buildTrackingURL(awb string) (string, error) {
	u, err := url.Parse(c.endpoint)
	if err != nil {
		return "", fmt.Errorf("parsing endpoint %q: %w", c.endpoint, err)
	}

	params := u.Query()
	params.Set("AWB", awb)
	params.Set("countryCode", c.countryCode)
	params.Set("languageCode", c.languageCode)
	if c.cacheBuster != "" {
		params.Set("_", c.cacheBuster)
	}
	u.RawQuery = params.Encode()

	return u.String(), nil
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen-3] + "..."
}
