package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Browser   BrowserConfig
	Scraper   ScraperConfig
	Runner    RunnerConfig
	Auth      AuthConfig
	RateLimit RateLimitConfig
	Cache     CacheConfig
	Webhook   WebhookConfig
	Log       LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"
}

// BrowserConfig controls the rod browser instance.
type BrowserConfig struct {
	// Headless controls whether the browser runs headless.
	Headless bool // default: true

	// NoSandbox disables Chrome's sandbox (needed in Docker).
	NoSandbox bool // default: false

	// BrowserBin overrides the Chromium binary path.
	BrowserBin string

	// Proxy is an optional proxy URL for all requests.
	Proxy string

	// Stealth enables anti-bot-detection evasions before navigation.
	Stealth bool // default: false
}

// ScraperConfig controls per-target navigation behavior.
type ScraperConfig struct {
	// NavTimeout bounds a single navigation including the settle wait.
	NavTimeout time.Duration // default: 30s

	// SettleWindow is how long the network must stay quiet before a page
	// counts as loaded.
	SettleWindow time.Duration // default: 300ms

	// ProbeTimeout bounds the contact/about link probe.
	ProbeTimeout time.Duration // default: 2s

	// BlockedResourceTypes lists resource types to block during navigation,
	// e.g. "Image", "Font", "Media". Empty by default: blocking uses the
	// Fetch domain, which disables the network-idle wait.
	BlockedResourceTypes []string

	// DebugScreenshotPath and DebugHTMLPath are where postmortem artifacts
	// land when a target fails mid-scrape.
	DebugScreenshotPath string // default: "error_screenshot.png"
	DebugHTMLPath       string // default: "error_page.html"
}

// RunnerConfig controls the batch runner.
type RunnerConfig struct {
	// Concurrency is the number of targets processed at once. 1 (the
	// default) preserves the strictly sequential model; higher values use a
	// bounded worker pool with one page per in-flight target.
	Concurrency int // default: 1
}

// AuthConfig controls API key authentication.
type AuthConfig struct {
	// Enabled toggles API key authentication.
	Enabled bool // default: false

	// APIKeys is the list of valid API keys.
	APIKeys []string
}

// RateLimitConfig controls per-key rate limiting.
type RateLimitConfig struct {
	// RequestsPerSecond is the sustained rate per API key.
	RequestsPerSecond float64 // default: 2

	// Burst is the maximum burst size per API key.
	Burst int // default: 5
}

// CacheConfig controls the per-target contact record cache on the API path.
type CacheConfig struct {
	// MaxEntries is the maximum number of cached records.
	MaxEntries int // default: 1000

	// TTL is how long a cached record stays valid.
	TTL time.Duration // default: 1h
}

// WebhookConfig controls the optional batch-completion webhook.
type WebhookConfig struct {
	// URL is the endpoint to notify when a batch run completes. Empty
	// disables delivery.
	URL string

	// Secret signs the payload with HMAC-SHA256 when non-empty.
	Secret string
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "text"
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host: envOr("SCRAPO_HOST", "0.0.0.0"),
			Port: envIntOr("SCRAPO_PORT", 8080),
			Mode: envOr("SCRAPO_MODE", "release"),
		},
		Browser: BrowserConfig{
			Headless:   envBoolOr("SCRAPO_HEADLESS", true),
			NoSandbox:  envBoolOr("SCRAPO_NO_SANDBOX", false),
			BrowserBin: os.Getenv("SCRAPO_BROWSER_BIN"),
			Proxy:      os.Getenv("SCRAPO_PROXY"),
			Stealth:    envBoolOr("SCRAPO_STEALTH", false),
		},
		Scraper: ScraperConfig{
			NavTimeout:           envDurationOr("SCRAPO_NAV_TIMEOUT", 30*time.Second),
			SettleWindow:         envDurationOr("SCRAPO_SETTLE_WINDOW", 300*time.Millisecond),
			ProbeTimeout:         envDurationOr("SCRAPO_PROBE_TIMEOUT", 2*time.Second),
			BlockedResourceTypes: envSliceOr("SCRAPO_BLOCKED_RESOURCES", nil),
			DebugScreenshotPath:  envOr("SCRAPO_DEBUG_SCREENSHOT", "error_screenshot.png"),
			DebugHTMLPath:        envOr("SCRAPO_DEBUG_HTML", "error_page.html"),
		},
		Runner: RunnerConfig{
			Concurrency: envIntOr("SCRAPO_CONCURRENCY", 1),
		},
		Auth: AuthConfig{
			Enabled: envBoolOr("SCRAPO_AUTH_ENABLED", false),
			APIKeys: envSliceOr("SCRAPO_API_KEYS", nil),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: envFloatOr("SCRAPO_RATE_RPS", 2.0),
			Burst:             envIntOr("SCRAPO_RATE_BURST", 5),
		},
		Cache: CacheConfig{
			MaxEntries: envIntOr("SCRAPO_CACHE_MAX_ENTRIES", 1000),
			TTL:        envDurationOr("SCRAPO_CACHE_TTL", time.Hour),
		},
		Webhook: WebhookConfig{
			URL:    os.Getenv("SCRAPO_WEBHOOK_URL"),
			Secret: os.Getenv("SCRAPO_WEBHOOK_SECRET"),
		},
		Log: LogConfig{
			Level:  envOr("SCRAPO_LOG_LEVEL", "info"),
			Format: envOr("SCRAPO_LOG_FORMAT", "text"),
		},
	}
}

// --- helper functions ---

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envIntOr(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return fallback
}

func envBoolOr(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envFloatOr(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func envSliceOr(key string, fallback []string) []string {
	if v := os.Getenv(key); v != "" {
		parts := strings.Split(v, ",")
		result := make([]string, 0, len(parts))
		for _, p := range parts {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				result = append(result, trimmed)
			}
		}
		return result
	}
	return fallback
}
