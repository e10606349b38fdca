package config

import (
	"os"
	"strconv"
	"time"
)

// DefaultUserAgent identifies the scraper to the target server.
const DefaultUserAgent = "Mozilla/5.0 (compatible; MinimalWebScraper/1.0; +https://github.com/use-agent/pagescrape)"

// Config holds all application configuration.
type Config struct {
	Server  ServerConfig
	Scraper ScraperConfig
	Log     LogConfig
}

// ServerConfig controls the HTTP server.
type ServerConfig struct {
	Host string // default: "0.0.0.0"
	Port int    // default: 8080
	Mode string // "debug", "release", "test"; default: "release"
}

// ScraperConfig controls fetching and extraction.
type ScraperConfig struct {
	// FetchTimeout bounds the whole upstream exchange, body included.
	FetchTimeout time.Duration // default: 8s

	// MaxHTMLLength is the body size cap, in characters.
	MaxHTMLLength int // default: 15000

	// PreviewLength is the number of characters kept in htmlPreview.
	PreviewLength int // default: 1200

	UserAgent string

	// Proxy is an optional http(s) proxy URL for upstream requests.
	Proxy string

	// TLSFingerprint dials TLS with a Chrome ClientHello instead of Go's.
	TLSFingerprint bool // default: false
}

// LogConfig controls structured logging.
type LogConfig struct {
	Level  string // default: "info"
	Format string // "json" or "text"; default: "json"
}

// Load reads configuration from environment variables with sane defaults.
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Host: envOr("PAGESCRAPE_HOST", "0.0.0.0"),
			Port: envIntOr("PAGESCRAPE_PORT", 8080),
			Mode: envOr("PAGESCRAPE_MODE", "release"),
		},
		Scraper: ScraperConfig{
			FetchTimeout:   envDurationOr("PAGESCRAPE_FETCH_TIMEOUT", 8*time.Second),
			MaxHTMLLength:  envIntOr("PAGESCRAPE_MAX_HTML_LENGTH", 15000),
			PreviewLength:  envIntOr("PAGESCRAPE_PREVIEW_LENGTH", 1200),
			UserAgent:      envOr("PAGESCRAPE_USER_AGENT", DefaultUserAgent),
			Proxy:          os.Getenv("PAGESCRAPE_PROXY"),
			TLSFingerprint: envBoolOr("PAGESCRAPE_TLS_FINGERPRINT", false),
		},
		Log: LogConfig{
			Level:  envOr("PAGESCRAPE_LOG_LEVEL", "info"),
			Format: envOr("PAGESCRAPE_LOG_FORMAT", "json"),
		},
	}
}

// Defaults returns the scraper configuration used when nothing is overridden.
func Defaults() ScraperConfig {
	return ScraperConfig{
		FetchTimeout:  8 * time.Second,
		MaxHTMLLength: 15000,
		PreviewLength: 1200,
		UserAgent:     DefaultUserAgent,
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

func envDurationOr(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
