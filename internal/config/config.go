package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	// Remote collaborators
	APIBaseURL  string
	HTTPTimeout time.Duration

	// Session
	SessionSecret string

	// Local cache
	StorePath string

	// Refresh cadence
	RequestPollMillis  int
	FriendsCacheMins   int
	TimeCapsuleSweep   bool
	NotificationBuffer int

	// Feed paging
	PageSize int

	// Application
	AppEnv   string
	LogLevel string
}

func LoadConfig() (*Config, error) {
	cfg := &Config{
		APIBaseURL:  getEnv("API_BASE_URL", ""),
		HTTPTimeout: time.Duration(getEnvInt("HTTP_TIMEOUT_SECONDS", 15)) * time.Second,

		SessionSecret: getEnv("SESSION_SECRET", ""),

		StorePath: getEnv("STORE_PATH", "campusconnect.db"),

		RequestPollMillis:  getEnvInt("REQUEST_POLL_MILLIS", 500),
		FriendsCacheMins:   getEnvInt("FRIENDS_CACHE_MINUTES", 5),
		TimeCapsuleSweep:   getEnvBool("TIME_CAPSULE_SWEEP", true),
		NotificationBuffer: getEnvInt("NOTIFICATION_BUFFER", 64),

		PageSize: getEnvInt("PAGE_SIZE", 20),

		AppEnv:   getEnv("APP_ENV", "development"),
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.APIBaseURL == "" {
		return fmt.Errorf("API_BASE_URL is required")
	}
	if c.StorePath == "" {
		return fmt.Errorf("STORE_PATH is required")
	}
	if c.SessionSecret != "" && len(c.SessionSecret) < 32 {
		return fmt.Errorf("SESSION_SECRET must be at least 32 characters when set")
	}
	if c.RequestPollMillis <= 0 {
		return fmt.Errorf("REQUEST_POLL_MILLIS must be positive")
	}
	if c.FriendsCacheMins <= 0 {
		return fmt.Errorf("FRIENDS_CACHE_MINUTES must be positive")
	}
	if c.PageSize <= 0 {
		return fmt.Errorf("PAGE_SIZE must be positive")
	}
	return nil
}

func (c *Config) GetRequestPollInterval() time.Duration {
	return time.Duration(c.RequestPollMillis) * time.Millisecond
}

func (c *Config) GetFriendsCacheWindow() time.Duration {
	return time.Duration(c.FriendsCacheMins) * time.Minute
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}
