package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/donaldgifford/awb-tracker/pkg/tracking"
)

const (
	colorDHLYellow = 0xFFCC00
	colorDHLRed    = 0xD40511 // first observation
)

// DiscordNotifier implements Notifier via Discord webhook.
type DiscordNotifier struct {
	webhookURL string
	client     *http.Client
}

// NewDiscordNotifier creates a new DiscordNotifier.
func NewDiscordNotifier(webhookURL string, opts ...DiscordOption) *DiscordNotifier {
	d := &DiscordNotifier{
		webhookURL: webhookURL,
		client:     http.DefaultClient,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DiscordOption configures a DiscordNotifier.
type DiscordOption func(*DiscordNotifier)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(c *http.Client) DiscordOption {
	return func(d *DiscordNotifier) {
		d.client = c
	}
}

// discordWebhookPayload is the Discord webhook JSON structure.
type discordWebhookPayload struct {
	Embeds []discordEmbed `json:"embeds"`
}

type discordEmbed struct {
	Title       string              `json:"title"`
	Color       int                 `json:"color"`
	Description string              `json:"description,omitempty"`
	Fields      []discordEmbedField `json:"fields,omitempty"`
}

type discordEmbedField struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline"`
}

// Notify sends the update as a single Discord embed.
func (d *DiscordNotifier) Notify(ctx context.Context, u Update) error {
	payload := discordWebhookPayload{
		Embeds: []discordEmbed{buildEmbed(u)},
	}
	return d.post(ctx, payload)
}

func buildEmbed(u Update) discordEmbed {
	cp := u.Checkpoint

	fields := []discordEmbedField{
		{Name: "AWB", Value: u.AWB, Inline: true},
		{Name: "Step", Value: strconv.Itoa(cp.Counter), Inline: true},
	}
	if cp.Location != "" {
		fields = append(fields, discordEmbedField{Name: "Location", Value: cp.Location, Inline: true})
	}
	if when := joinNonEmpty(cp.Date, cp.Time); when != "" {
		fields = append(fields, discordEmbedField{Name: "When", Value: when, Inline: true})
	}

	color := colorDHLYellow
	if u.PreviousStepID == tracking.NoStep {
		color = colorDHLRed
	}

	return discordEmbed{
		Title:       "DHL update available",
		Color:       color,
		Description: cp.Description,
		Fields:      fields,
	}
}

func joinNonEmpty(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + " " + b
	}
}

func (d *DiscordNotifier) post(ctx context.Context, payload discordWebhookPayload) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("marshaling discord payload: %w", err)
	}

	req, err := http.NewRequestWithContext(
		ctx,
		http.MethodPost,
		d.webhookURL,
		bytes.NewReader(body),
	)
	if err != nil {
		return fmt.Errorf("creating discord request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("sending discord webhook: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		return fmt.Errorf("discord rate limited (429)")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, readErr := io.ReadAll(resp.Body)
		if readErr != nil {
			return fmt.Errorf("discord returned %d (body unreadable)", resp.StatusCode)
		}
		return fmt.Errorf("discord returned %d: %s", resp.StatusCode, respBody)
	}

	return nil
}
