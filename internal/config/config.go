// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	Tracking      TrackingConfig      `yaml:"tracking"`
	DHL           DHLConfig           `yaml:"dhl"`
	Schedule      ScheduleConfig      `yaml:"schedule"`
	Notifications NotificationsConfig `yaml:"notifications"`
	Console       ConsoleConfig       `yaml:"console"`
	Metrics       MetricsConfig       `yaml:"metrics"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// TrackingConfig identifies the shipment being watched.
type TrackingConfig struct {
	AWB string `yaml:"awb"`
}

// DHLConfig defines the tracking endpoint settings.
type DHLConfig struct {
	Endpoint     string          `yaml:"endpoint"`
	CountryCode  string          `yaml:"country_code"`
	LanguageCode string          `yaml:"language_code"`
	CacheBuster  string          `yaml:"cache_buster"`
	Timeout      time.Duration   `yaml:"timeout"`
	RateLimit    RateLimitConfig `yaml:"rate_limit"`
}

// RateLimitConfig defines DHL API rate limiting settings. A DailyLimit of 0
// disables the daily quota.
type RateLimitConfig struct {
	PerSecond  float64 `yaml:"per_second"`
	Burst      int     `yaml:"burst"`
	DailyLimit int64   `yaml:"daily_limit"`
}

// ScheduleConfig defines when polling cycles run.
type ScheduleConfig struct {
	Cron             string `yaml:"cron"`
	StartImmediately bool   `yaml:"start_immediately"`
}

// NotificationsConfig defines notification targets.
type NotificationsConfig struct {
	Desktop DesktopConfig `yaml:"desktop"`
	Discord DiscordConfig `yaml:"discord"`
}

// DesktopConfig defines OS popup settings.
type DesktopConfig struct {
	Enabled bool   `yaml:"enabled"` // default: true
	Title   string `yaml:"title"`
}

// DiscordConfig defines Discord webhook settings.
type DiscordConfig struct {
	Enabled    bool   `yaml:"enabled"`
	WebhookURL string `yaml:"webhook_url"`
}

// ConsoleConfig defines status line output.
type ConsoleConfig struct {
	Color  bool `yaml:"color"`  // default: true
	Banner bool `yaml:"banner"` // default: true
}

// MetricsConfig defines the optional Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Addr    string `yaml:"addr"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json, pretty
}

// Option adjusts how Load behaves.
type Option func(*loadOptions)

type loadOptions struct {
	allowMissing bool
	overrides    []func(*Config)
}

// AllowMissing makes a nonexistent config file equivalent to an empty one.
func AllowMissing() Option {
	return func(o *loadOptions) {
		o.allowMissing = true
	}
}

// WithOverride applies fn after the file is decoded and before defaults and
// validation run. Used for CLI flag and environment overrides.
func WithOverride(fn func(*Config)) Option {
	return func(o *loadOptions) {
		o.overrides = append(o.overrides, fn)
	}
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string, opts ...Option) (*Config, error) {
	lo := &loadOptions{}
	for _, opt := range opts {
		opt(lo)
	}

	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		if !lo.allowMissing || !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("reading config file: %w", err)
		}
		data = nil
	}

	cfg, err := Parse(data)
	if err != nil {
		return nil, err
	}

	for _, fn := range lo.overrides {
		fn(cfg)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

// Parse decodes YAML content after expanding environment variables. Defaults
// are not applied and the result is not validated.
func Parse(data []byte) (*Config, error) {
	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	// Boolean fields that default to true are seeded before decoding so an
	// explicit false in the file still wins.
	cfg := &Config{
		Notifications: NotificationsConfig{Desktop: DesktopConfig{Enabled: true}},
		Console:       ConsoleConfig{Color: true, Banner: true},
	}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	cfg.Tracking.AWB = strings.TrimSpace(cfg.Tracking.AWB)
	applyDHLDefaults(&cfg.DHL)
	applyScheduleDefaults(&cfg.Schedule)
	applyNotificationDefaults(&cfg.Notifications)
	applyMetricsDefaults(&cfg.Metrics)
	applyLoggingDefaults(&cfg.Logging)
}

func applyDHLDefaults(d *DHLConfig) {
	if d.Endpoint == "" {
		d.Endpoint = "https://www.dhl.fr/shipmentTracking"
	}
	if d.CountryCode == "" {
		d.CountryCode = "fr"
	}
	if d.LanguageCode == "" {
		d.LanguageCode = "fr"
	}
	if d.CacheBuster == "" {
		d.CacheBuster = "1542895666503"
	}
	if d.Timeout == 0 {
		d.Timeout = 30 * time.Second
	}
	applyRateLimitDefaults(&d.RateLimit)
}

func applyRateLimitDefaults(r *RateLimitConfig) {
	if r.PerSecond == 0 {
		r.PerSecond = 1.0
	}
	if r.Burst == 0 {
		r.Burst = 1
	}
}

func applyScheduleDefaults(s *ScheduleConfig) {
	if s.Cron == "" {
		s.Cron = "@every 1m"
	}
}

func applyNotificationDefaults(n *NotificationsConfig) {
	if n.Desktop.Title == "" {
		n.Desktop.Title = "DHL tracker"
	}
}

func applyMetricsDefaults(m *MetricsConfig) {
	if m.Addr == "" {
		m.Addr = "127.0.0.1:9464"
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	if cfg.Tracking.AWB == "" {
		errs = append(errs, fmt.Errorf("tracking.awb is required"))
	} else if strings.ContainsAny(cfg.Tracking.AWB, " \t/?&#") {
		errs = append(errs, fmt.Errorf("tracking.awb contains invalid characters (got %q)", cfg.Tracking.AWB))
	}

	if len(cfg.DHL.CountryCode) != 2 {
		errs = append(errs, fmt.Errorf("dhl.country_code must be a 2-letter code (got %q)", cfg.DHL.CountryCode))
	}
	if len(cfg.DHL.LanguageCode) != 2 {
		errs = append(errs, fmt.Errorf("dhl.language_code must be a 2-letter code (got %q)", cfg.DHL.LanguageCode))
	}
	if cfg.DHL.Timeout < 0 {
		errs = append(errs, fmt.Errorf("dhl.timeout must not be negative"))
	}
	if cfg.DHL.RateLimit.PerSecond < 0 || cfg.DHL.RateLimit.Burst < 0 || cfg.DHL.RateLimit.DailyLimit < 0 {
		errs = append(errs, fmt.Errorf("dhl.rate_limit values must not be negative"))
	}

	if _, err := cron.ParseStandard(cfg.Schedule.Cron); err != nil {
		errs = append(errs, fmt.Errorf("schedule.cron %q is invalid: %w", cfg.Schedule.Cron, err))
	}

	if cfg.Notifications.Discord.Enabled && cfg.Notifications.Discord.WebhookURL == "" {
		errs = append(
			errs,
			fmt.Errorf("notifications.discord.webhook_url is required when discord is enabled"),
		)
	}

	switch cfg.Logging.Format {
	case "text", "json", "pretty":
	default:
		errs = append(
			errs,
			fmt.Errorf("logging.format must be one of: text, json, pretty (got %q)", cfg.Logging.Format),
		)
	}

	return errors.Join(errs...)
}
