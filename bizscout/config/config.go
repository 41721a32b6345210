package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	WebhookURL     string
	WebhookTimeout time.Duration

	BrowserHeadless      bool
	BrowserNavTimeout    time.Duration
	BrowserLookupTimeout time.Duration
	BrowserSettleDelay   time.Duration
	SearchTimeout        time.Duration
	SelectorsFile        string

	DBUser     string
	DBPassword string
	DBHost     string
	DBPort     string
	DBName     string

	MinIOEndpoint  string
	MinIOAccessKey string
	MinIOSecretKey string
	MinIOBucket    string
	MinIOSecure    bool
	CacheTTL       time.Duration

	// RequestTimeout caps one HTTP request. Zero derives it from the stage timeouts.
	RequestTimeout time.Duration

	JWTSecret      string
	RateLimitRPS   float64
	RateLimitBurst int

	LogDir string
}

func LoadConfig() Config {
	// a missing .env is fine, the process environment wins anyway
	_ = godotenv.Load()

	return Config{
		Port: getEnv("PORT", "5000"),

		WebhookURL:     getEnv("WEBHOOK_URL", getEnv("ZAPIER_WEBHOOK_URL", "")),
		WebhookTimeout: getDuration("WEBHOOK_TIMEOUT", 10*time.Second),

		BrowserHeadless:      getBool("BROWSER_HEADLESS", true),
		BrowserNavTimeout:    getDuration("BROWSER_NAV_TIMEOUT", 15*time.Second),
		BrowserLookupTimeout: getDuration("BROWSER_LOOKUP_TIMEOUT", 2*time.Second),
		BrowserSettleDelay:   getDuration("BROWSER_SETTLE_DELAY", 3*time.Second),
		SearchTimeout:        getDuration("SEARCH_TIMEOUT", 15*time.Second),
		SelectorsFile:        getEnv("SELECTORS_FILE", ""),

		DBUser:     getEnv("DB_USER", ""),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBHost:     getEnv("DB_HOST", ""),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBName:     getEnv("DB_NAME", ""),

		MinIOEndpoint:  getEnv("MINIO_ENDPOINT", ""),
		MinIOAccessKey: getEnv("MINIO_ACCESS_KEY", ""),
		MinIOSecretKey: getEnv("MINIO_SECRET_KEY", ""),
		MinIOBucket:    getEnv("MINIO_BUCKET", "bizscout"),
		MinIOSecure:    getBool("MINIO_SECURE", false),
		CacheTTL:       getDuration("CACHE_TTL", 24*time.Hour),

		RequestTimeout: getDuration("REQUEST_TIMEOUT", 0),

		JWTSecret:      getEnv("JWT_SECRET", ""),
		RateLimitRPS:   getFloat("RATE_LIMIT_RPS", 2),
		RateLimitBurst: getInt("RATE_LIMIT_BURST", 5),

		LogDir: getEnv("LOG_DIR", "./logs"),
	}
}

// mapsLookupSlots counts the element lookups a maps attempt can spend its
// full lookup timeout on: eight optional fields plus five review sub-lookups.
const mapsLookupSlots = 13

// RequestBudget is the worst-case duration of one /extract call: a maps
// attempt that times out on every lookup, the search fallback and the
// webhook post, plus a little slack.
func (c Config) RequestBudget() time.Duration {
	if c.RequestTimeout > 0 {
		return c.RequestTimeout
	}
	maps := c.BrowserNavTimeout + c.BrowserSettleDelay + mapsLookupSlots*c.BrowserLookupTimeout
	return maps + c.SearchTimeout + c.WebhookTimeout + 5*time.Second
}

// DatabaseEnabled reports whether extraction history should be persisted.
func (c Config) DatabaseEnabled() bool {
	return c.DBHost != "" && c.DBName != ""
}

// CacheEnabled reports whether extracted records are cached in MinIO.
func (c Config) CacheEnabled() bool {
	return c.MinIOEndpoint != ""
}

func getEnv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value != "" {
		return value
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(getEnv(key, ""))
	if err != nil {
		return fallback
	}
	return v
}

func getFloat(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(getEnv(key, ""), 64)
	if err != nil {
		return fallback
	}
	return v
}

// getDuration accepts Go duration strings ("2s", "500ms") or bare seconds.
func getDuration(key string, fallback time.Duration) time.Duration {
	raw := getEnv(key, "")
	if raw == "" {
		return fallback
	}
	if d, err := time.ParseDuration(raw); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(raw); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}
