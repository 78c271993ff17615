package config

import (
	"os"
	"strconv"
	"strings"
)

// Config carries every tunable of the service. Components receive it (or
// fields of it) at construction time; nothing reads the environment after
// Load returns.
type Config struct {
	Env     string
	Port    string
	DataDir string
	// BaseURL is the public base for feed self-links and enclosures.
	BaseURL string

	FeedTitle       string
	FeedDescription string

	ExcerptLimit       int
	ExcerptAllowedTags []string

	ConvertextBin      string
	ConvertTimeoutSec  int
	EpubTimeoutSec     int
	FetchRatePerSecond float64
}

// Load reads the configuration from the environment.
func Load() *Config {
	return &Config{
		Env:                getEnv("ENV", "development"),
		Port:               getEnv("PORT", "8080"),
		DataDir:            getEnv("DATA_DIR", "./data"),
		BaseURL:            strings.TrimRight(getEnv("BASE_URL", "http://localhost:8080"), "/"),
		FeedTitle:          getEnv("FEED_TITLE", "EPUB Downloads Feed"),
		FeedDescription:    getEnv("FEED_DESCRIPTION", "Submitted documents, converted and republished"),
		ExcerptLimit:       getEnvInt("EXCERPT_LIMIT", 200),
		ExcerptAllowedTags: getEnvList("EXCERPT_ALLOWED_TAGS", []string{"p", "a", "strong", "em", "ul", "li", "br"}),
		ConvertextBin:      getEnv("CONVERTEXT_BIN", "convertext"),
		ConvertTimeoutSec:  getEnvInt("CONVERT_TIMEOUT_SECONDS", 60),
		EpubTimeoutSec:     getEnvInt("EPUB_TIMEOUT_SECONDS", 120),
		FetchRatePerSecond: getEnvFloat("FETCH_RATE_PER_SECOND", 2),
	}
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvList(key string, fallback []string) []string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(value, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
