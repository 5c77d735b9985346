package cmd

import (
	"log/slog"
	"net/http"

	"github.com/donaldgifford/awb-tracker/internal/config"
	"github.com/donaldgifford/awb-tracker/internal/dhl"
	"github.com/donaldgifford/awb-tracker/internal/notify"
)

func newRateLimiter(cfg *config.Config) *dhl.RateLimiter {
	rl := cfg.DHL.RateLimit
	return dhl.NewRateLimiter(rl.PerSecond, rl.Burst, rl.DailyLimit)
}

func newTrackingClient(cfg *config.Config, rl *dhl.RateLimiter) *dhl.TrackingClient {
	return dhl.NewTrackingClient(
		dhl.WithEndpoint(cfg.DHL.Endpoint),
		dhl.WithLocale(cfg.DHL.CountryCode, cfg.DHL.LanguageCode),
		dhl.WithCacheBuster(cfg.DHL.CacheBuster),
		dhl.WithHTTPClient(&http.Client{Timeout: cfg.DHL.Timeout}),
		dhl.WithRateLimiter(rl),
	)
}

// buildNotifier returns the configured backends behind a Fanout, or a no-op
// notifier when every backend is disabled.
func buildNotifier(cfg *config.Config, log *slog.Logger) notify.Notifier {
	fanout := notify.NewFanout(log)

	if cfg.Notifications.Desktop.Enabled {
		fanout.Add("desktop", notify.NewDesktopNotifier(
			notify.WithTitle(cfg.Notifications.Desktop.Title),
		))
	}
	if cfg.Notifications.Discord.Enabled {
		fanout.Add("discord", notify.NewDiscordNotifier(cfg.Notifications.Discord.WebhookURL))
	}

	if fanout.Len() == 0 {
		return notify.NewNoOpNotifier(log)
	}
	return fanout
}
