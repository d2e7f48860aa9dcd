package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// Application settings
type Config struct {
	Server   ServerConfig
	Logging  LoggingConfig
	Upstream UpstreamConfig
	Watch    WatchConfig
}

// Server settings
type ServerConfig struct {
	Port            string
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

// Career backend client settings
type UpstreamConfig struct {
	BaseURL            string
	RequestTimeout     time.Duration
	RateLimitPerSecond int
	RateBurst          int
}

// Auto-refresh loop settings
type WatchConfig struct {
	RefreshInterval time.Duration
}

// Logging settings
type LoggingConfig struct {
	Level string
}

func Load() (*Config, error) {
	config := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			RequestTimeout:  getDurationEnv("REQUEST_TIMEOUT", "30s"),
			ShutdownTimeout: getDurationEnv("SHUTDOWN_TIMEOUT", "10s"),
		},
		Upstream: UpstreamConfig{
			BaseURL:            getEnv("CAREER_API_URL", "http://localhost:8000"),
			RequestTimeout:     getDurationEnv("UPSTREAM_TIMEOUT", "30s"),
			RateLimitPerSecond: getIntEnv("UPSTREAM_RATE_LIMIT", 100),
			RateBurst:          getIntEnv("UPSTREAM_RATE_BURST", 10),
		},
		Watch: WatchConfig{
			RefreshInterval: getDurationEnv("WATCH_REFRESH_INTERVAL", "30s"),
		},
		Logging: LoggingConfig{
			Level: getEnv("LOG_LEVEL", "info"),
		},
	}

	if config.Upstream.BaseURL == "" {
		return nil, fmt.Errorf("CAREER_API_URL must not be empty")
	}
	if config.Watch.RefreshInterval < time.Second {
		return nil, fmt.Errorf("WATCH_REFRESH_INTERVAL must be at least 1s, got %s", config.Watch.RefreshInterval)
	}

	return config, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getDurationEnv(key, defaultValue string) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	duration, _ := time.ParseDuration(defaultValue)
	return duration
}
