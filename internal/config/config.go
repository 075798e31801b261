package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds every tunable the binaries read from the environment.
// The credential is looked up separately so a missing key can be fatal
// while everything here has a working default.
type Config struct {
	DefaultOrigin string
	Pause         time.Duration
	MapsBaseURL   string

	RetryMaxAttempts int
	RetryBaseDelay   time.Duration
	RetryMultiplier  float64

	RedisAddr   string
	CacheTTL    time.Duration
	DatabaseURL string
}

// Load reads the full configuration, applying defaults where the
// environment is silent.
func Load() Config {
	return Config{
		DefaultOrigin: Get("DEFAULT_ORIGIN_CITY", "New York, NY, USA"),
		Pause:         GetDuration("REQUEST_PAUSE", 100*time.Millisecond),
		MapsBaseURL:   Get("MAPS_BASE_URL", "https://maps.googleapis.com"),

		RetryMaxAttempts: GetInt("RETRY_MAX_ATTEMPTS", 4),
		RetryBaseDelay:   GetDuration("RETRY_BASE_DELAY", 200*time.Millisecond),
		RetryMultiplier:  GetFloat("RETRY_MULTIPLIER", 2),

		RedisAddr:   Get("REDIS_ADDR", ""),
		CacheTTL:    GetDuration("CACHE_TTL", 24*time.Hour),
		DatabaseURL: Get("DATABASE_URL", ""),
	}
}

func Get(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func GetInt(key string, fallback int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func GetFloat(key string, fallback float64) float64 {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}

// GetDuration accepts Go duration strings ("150ms", "2s"). Bare numbers
// are read as seconds, matching how the original tool's users wrote
// their pause settings.
func GetDuration(key string, fallback time.Duration) time.Duration {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return fallback
	}

	if d, err := time.ParseDuration(v); err == nil {
		return d
	}
	if f, err := strconv.ParseFloat(v, 64); err == nil {
		return time.Duration(f * float64(time.Second))
	}

	return fallback
}
