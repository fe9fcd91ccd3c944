package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// Redis Config
const REDIS_DB_ADDRESS = "redis:6379"
const REDIS_DB_PASSWORD = ""
const REDIS_DB = 0

// Status feed config
const STATUS_FEED_ENDPOINT = "https://crowd-status.example.com/status.json"
const STATUS_FEED_REFRESH_SCHEDULE_MINUTES = 5
const STATUS_FEED_MAX_RETRIES = 3
const STATUS_FEED_RETRY_WAIT_SECONDS = 2

// Resources file paths
const RESOURCES_PATH_PREFIX = "resources"
const STATUS_FEED_RESOURCE = "status.json"
const GEO_REFERENCE_RESOURCE = "geo_reference.json"

const APP_ENV_DEV = "dev"
const APP_ENV_PROD = "prod"

// Config holds the runtime settings resolved from the environment.
type Config struct {
	AppEnv string

	ServerPort string

	StatusFeedURL             string
	StatusFeedTimeout         time.Duration
	StatusFeedRefreshInterval time.Duration
	StatusFeedMaxRetries      int
	StatusFeedRetryWait       time.Duration

	// Empty RedisAddr selects the in-memory client.
	RedisAddr     string
	RedisPassword string
	RedisDB       int

	RateLimitPerMinute int
	CORSAllowedOrigins []string

	// Proxies whose X-Forwarded-For header is trusted by the rate limiter.
	TrustedProxies []string

	SessionIdleTimeout     time.Duration
	SessionJanitorInterval time.Duration
}

// Load reads the environment once. Every setting has a default.
func Load() *Config {
	return &Config{
		AppEnv:                    getEnvString("APP_ENV", APP_ENV_PROD),
		ServerPort:                getEnvString("SERVER_PORT", "8080"),
		StatusFeedURL:             getEnvString("STATUS_FEED_URL", STATUS_FEED_ENDPOINT),
		StatusFeedTimeout:         getEnvDuration("STATUS_FEED_TIMEOUT", 10*time.Second),
		StatusFeedRefreshInterval: getEnvDuration("STATUS_FEED_REFRESH_INTERVAL", STATUS_FEED_REFRESH_SCHEDULE_MINUTES*time.Minute),
		StatusFeedMaxRetries:      getEnvInt("STATUS_FEED_MAX_RETRIES", STATUS_FEED_MAX_RETRIES),
		StatusFeedRetryWait:       getEnvDuration("STATUS_FEED_RETRY_WAIT", STATUS_FEED_RETRY_WAIT_SECONDS*time.Second),
		RedisAddr:                 os.Getenv("REDIS_ADDR"),
		RedisPassword:             getEnvString("REDIS_PASSWORD", REDIS_DB_PASSWORD),
		RedisDB:                   getEnvInt("REDIS_DB", REDIS_DB),
		RateLimitPerMinute:        getEnvInt("RATE_LIMIT_PER_MINUTE", 120),
		CORSAllowedOrigins:        splitList(getEnvString("CORS_ALLOWED_ORIGINS", "*")),
		TrustedProxies:            splitList(os.Getenv("TRUSTED_PROXIES")),
		SessionIdleTimeout:        getEnvDuration("SESSION_IDLE_TIMEOUT", 30*time.Minute),
		SessionJanitorInterval:    getEnvDuration("SESSION_JANITOR_INTERVAL", time.Minute),
	}
}

// IsDev reports whether the file-backed feed should be used.
func (c *Config) IsDev() bool {
	return c.AppEnv == APP_ENV_DEV
}

// BaseDir returns the absolute path of the project root directory
func BaseDir() string {
	// Check if PROJECT_ROOT is set
	if root := os.Getenv("PROJECT_ROOT"); root != "" {
		return root
	}

	// Default to the current working directory
	wd, err := os.Getwd()
	if err != nil {
		panic("Unable to determine working directory: " + err.Error())
	}

	return wd
}

func GetResourcePath(resource_file string) string {
	return filepath.Join(BaseDir(), RESOURCES_PATH_PREFIX, resource_file)
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return defaultVal
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
